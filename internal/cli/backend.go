package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/hobbyparts/hpt/internal/api"
	"github.com/hobbyparts/hpt/internal/config"
	"github.com/hobbyparts/hpt/internal/resolve"
	"github.com/hobbyparts/hpt/internal/ui"
)

const (
	offlineSuggestion      = "The server is unreachable or the address is wrong. Check api_url (hpt config show) or run 'hpt health'"
	unauthorizedSuggestion = "Pass --token, set $" + config.EnvToken + ", or set token_env for the server in config.toml"
)

// newClient builds an API client for the resolved endpoint.
func newClient() *api.Client {
	ep := getEndpoint()

	timeout := timeoutFlag
	if timeout == 0 && getConfig() != nil {
		t, err := getConfig().RequestTimeout()
		if err != nil {
			logger.Warn().Err(err).Msg("ignoring timeout from config")
		}
		timeout = t
	}

	return api.New(api.Options{
		BaseURL:   ep.APIURL,
		Auth:      api.AuthContext{Token: ep.Token},
		Timeout:   timeout,
		Logger:    getLogger(),
		UserAgent: userAgent(),
	})
}

// fetchSnapshot loads the base collections behind a spinner and reports how
// long the fetch took.
func fetchSnapshot(cmd *cobra.Command, opts api.SnapshotOptions) (*api.Snapshot, time.Duration, error) {
	spinner := ui.NewSpinner("Fetching inventory...")
	if !isJSONOutput() {
		spinner.Start()
	}

	start := time.Now()
	snap, err := newClient().Snapshot(commandContext(cmd), opts)
	elapsed := time.Since(start)
	spinner.Stop()

	if err != nil {
		logger.Debug().Strs("failed", collectionNames(snap.Failed())).Msg("snapshot incomplete")
	}
	return snap, elapsed, err
}

func collectionNames(cs []api.Collection) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}

func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// responseMeta describes the backend a response came from.
func responseMeta(count int, elapsed time.Duration) *Meta {
	ep := getEndpoint()
	return &Meta{
		Count:       count,
		Server:      ep.Server,
		APIURL:      ep.APIURL,
		FetchTimeMs: elapsed.Milliseconds(),
	}
}

// handleBackendError maps client errors to stable error codes.
func handleBackendError(err error) error {
	switch {
	case api.IsOffline(err):
		return handleError(ErrServerOffline, err, offlineSuggestion)
	case api.IsUnauthorized(err):
		return handleError(ErrUnauthorized, err, unauthorizedSuggestion)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return handleError(ErrCanceled, err, "")
	default:
		return handleError(ErrAPIError, err, "")
	}
}

// handleResolveError maps reference resolution failures to error codes.
func handleResolveError(err error, suggestion string) error {
	var amb *resolve.AmbiguousError
	if errors.As(err, &amb) {
		return handleErrorWithDetails(ErrRefAmbiguous, err, "Use the numeric ID instead", amb.Matches)
	}
	return handleError(ErrRefNotFound, err, suggestion)
}
