package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by scripts.
const (
	// Backend errors
	ErrServerOffline = "SERVER_OFFLINE"
	ErrAPIError      = "API_ERROR"
	ErrUnauthorized  = "UNAUTHORIZED"
	ErrCanceled      = "CANCELED"

	// Placement errors
	ErrPlacementIncomplete = "PLACEMENT_INCOMPLETE"

	// Config errors
	ErrConfigInvalid   = "CONFIG_INVALID"
	ErrServerNotFound  = "SERVER_NOT_FOUND"
	ErrDuplicateName   = "DUPLICATE_NAME"
	ErrConfirmRequired = "CONFIRMATION_REQUIRED"

	// Reference errors
	ErrRefNotFound  = "REF_NOT_FOUND"
	ErrRefAmbiguous = "REF_AMBIGUOUS"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput    = "INVALID_INPUT"
	ErrMissingArgument = "MISSING_ARGUMENT"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnDataIntegrity       = "DATA_INTEGRITY"
	WarnActiveServerMissing = "ACTIVE_SERVER_MISSING"
	WarnNoMatches           = "NO_MATCHES"
)
