// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
	"github.com/danielhkuo/lotto-hub/models"
)

type CustomizationHandler struct {
	svc *hub.Service
	cfg cliparse.Config
}

func NewCustomizationHandler(svc *hub.Service, cfg cliparse.Config) *CustomizationHandler {
	return &CustomizationHandler{svc: svc, cfg: cfg}
}

// GetCustomization handles GET /customization
func (h *CustomizationHandler) GetCustomization(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.svc.Customization())
}

// UpdateCustomization handles PUT /customization
func (h *CustomizationHandler) UpdateCustomization(w http.ResponseWriter, r *http.Request) {
	var req models.AppCustomization
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	c, err := h.svc.UpdateCustomization(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Customization")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, c)
}
