package errutil

import (
	"context"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/Qctopus/contingento-engine/pkg/utils/logging"
)

// hubFrom prefers the request-scoped hub over the global one.
func hubFrom(ctx context.Context) *sentry.Hub {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// capture reports the error to Sentry. No-op until the SDK is configured.
func capture(ctx context.Context, err error) {
	hub := hubFrom(ctx)
	if hub == nil || hub.Client() == nil {
		return
	}
	hub.CaptureException(err)
}

// Handle logs the error with a message, reports it to Sentry, and returns
// it unchanged. Ensures every error carries its goerr context into the log.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	capture(ctx, err)

	return err
}

// HandleHTTP logs the error and writes an HTTP error response. Only
// server-side errors are reported to Sentry; 4xx responses are expected
// traffic.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error("HTTP error",
			"status", statusCode,
			"error", err.Error(),
		)
	}

	if statusCode >= http.StatusInternalServerError {
		capture(ctx, err)
	}

	http.Error(w, err.Error(), statusCode)
}
