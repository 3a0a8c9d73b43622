// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"

	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
	"github.com/danielhkuo/lotto-hub/models"
)

type VerifyHandler struct {
	svc *hub.Service
	cfg cliparse.Config
}

func NewVerifyHandler(svc *hub.Service, cfg cliparse.Config) *VerifyHandler {
	return &VerifyHandler{svc: svc, cfg: cfg}
}

// Verify handles GET /verify?id=
// Public: returns only what can be shown to anyone holding the code.
func (h *VerifyHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	v, err := h.svc.VerifySale(id)
	if err != nil {
		writeServiceError(w, err, "Sale")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, v)
}

// RecordSale handles POST /verify/sales
func (h *VerifyHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	var sale models.Sale
	if err := middleware.ParseJSONBody(r, &sale); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	recorded, err := h.svc.RecordSale(r.Context(), sale)
	if errors.Is(err, hub.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "Sale id already exists")
		return
	}
	if err != nil {
		writeServiceError(w, err, "Sale")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RecordSaleResponse{
		Message: "Sale recorded",
		SaleID:  recorded.ID,
	})
}
