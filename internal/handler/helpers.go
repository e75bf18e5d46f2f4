package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"imagefolders/internal/domain"
	"imagefolders/internal/httputil"
)

// handleError converts domain errors to HTTP responses. Anything that is not
// a domain error is logged and reported as a generic server error.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	logger.Error("request failed",
		"error", err,
		"method", r.Method,
		"path", r.URL.Path,
	)
	httputil.RespondError(w, http.StatusInternalServerError, "Server Error")
}

// parseBody decodes a JSON body, reporting malformed input as a validation error
func parseBody(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		return domain.NewValidation("Invalid request body")
	}
	return nil
}
