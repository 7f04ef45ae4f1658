package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// jsonOutput is the --json flag.
var jsonOutput bool

// errAlreadyReported is returned once a failure has been written as a JSON
// envelope, so the process exits non-zero without printing it again.
var errAlreadyReported = errors.New("error already reported")

// jsonFailureWritten records that an error envelope went to stdout during
// this run. Execute turns it into a non-zero exit.
var jsonFailureWritten bool

// Response is the envelope every --json invocation prints exactly once.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo carries one of the stable codes from errors.go.
type ErrorInfo struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Suggestion string      `json:"suggestion,omitempty"`
}

type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Ref     string `json:"ref,omitempty"`
}

// Meta describes where the data came from.
type Meta struct {
	Count       int    `json:"count,omitempty"`
	Server      string `json:"server,omitempty"`
	APIURL      string `json:"api_url,omitempty"`
	FetchTimeMs int64  `json:"fetch_time_ms,omitempty"`
}

func isJSONOutput() bool { return jsonOutput }

// writeResponse prints resp to stdout. HTML escaping is off so names like
// "Nuts & bolts" stay readable.
func writeResponse(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "hpt: write JSON: %v\n", err)
	}
}

func outputSuccess(data interface{}, meta *Meta) {
	outputSuccessWithWarnings(data, nil, meta)
}

func outputSuccessWithWarnings(data interface{}, warnings []Warning, meta *Meta) {
	writeResponse(Response{OK: true, Data: data, Warnings: warnings, Meta: meta})
}

func outputError(code, message string, details interface{}, suggestion string) {
	jsonFailureWritten = true
	writeResponse(Response{Error: &ErrorInfo{
		Code:       code,
		Message:    message,
		Details:    details,
		Suggestion: suggestion,
	}})
}

// handleError reports err under code. With --json the envelope is printed
// and nil returned so Cobra stays quiet; the exit status is settled in
// Execute. Otherwise err comes back with the suggestion appended.
func handleError(code string, err error, suggestion string) error {
	return handleErrorWithDetails(code, err, suggestion, nil)
}

func handleErrorMsg(code, message, suggestion string) error {
	return handleError(code, errors.New(message), suggestion)
}

func handleErrorWithDetails(code string, err error, suggestion string, details interface{}) error {
	if !jsonOutput {
		return withSuggestion(err, suggestion)
	}
	outputError(code, err.Error(), details, suggestion)
	return nil
}

// failReported ends a command that already printed its failure, making
// Cobra exit non-zero without adding output of its own.
func failReported(cmd *cobra.Command) error {
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return errAlreadyReported
}

// handlePreRunError is handleError for PersistentPreRunE, where a nil
// return would let the command run anyway.
func handlePreRunError(cmd *cobra.Command, code string, err error, suggestion string) error {
	if !jsonOutput {
		return withSuggestion(err, suggestion)
	}
	outputError(code, err.Error(), nil, suggestion)
	return failReported(cmd)
}

func withSuggestion(err error, suggestion string) error {
	if suggestion == "" {
		return err
	}
	return fmt.Errorf("%w\n\n%s", err, suggestion)
}
