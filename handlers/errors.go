// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
)

// writeServiceError maps hub errors to HTTP statuses. subject names the
// record in 404 and 409 messages.
func writeServiceError(w http.ResponseWriter, err error, subject string) {
	var verr *hub.ValidationError
	switch {
	case errors.As(err, &verr):
		middleware.ErrorResponse(w, http.StatusBadRequest, verr.Error())
	case errors.Is(err, hub.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, subject+" not found")
	case errors.Is(err, hub.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, subject+" conflicts with an existing record")
	default:
		slog.Error("request failed", "subject", subject, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Storage error")
	}
}
