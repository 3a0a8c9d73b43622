// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
	"github.com/danielhkuo/lotto-hub/models"
)

type SalesHandler struct {
	svc *hub.Service
	cfg cliparse.Config
}

func NewSalesHandler(svc *hub.Service, cfg cliparse.Config) *SalesHandler {
	return &SalesHandler{svc: svc, cfg: cfg}
}

// CreateSale handles POST /sales
func (h *SalesHandler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSaleRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sale, err := h.svc.CreateSale(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Sale")
		return
	}

	if claims, ok := middleware.ClaimsFrom(r.Context()); ok {
		slog.Info("sale placed", "sale_id", sale.ID, "seller", claims.UID)
	}

	middleware.JSONResponse(w, http.StatusCreated, sale)
}

// ListSales handles GET /sales?lottery_id=&draw_time=
// Without filters the whole ledger is returned, most recent first.
func (h *SalesHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	lotteryID := r.URL.Query().Get("lottery_id")
	drawTime := r.URL.Query().Get("draw_time")

	if lotteryID == "" && drawTime == "" {
		middleware.JSONResponse(w, http.StatusOK, models.SalesResponse{Sales: h.svc.Sales()})
		return
	}
	if lotteryID == "" || drawTime == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lottery_id and draw_time must be given together")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SalesResponse{Sales: h.svc.SalesByDraw(lotteryID, drawTime)})
}

// GetSale handles GET /sales/{id}
func (h *SalesHandler) GetSale(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.SaleDetail(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Sale")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, detail)
}

// GetReceipt handles GET /sales/{id}/receipt
func (h *SalesHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	detail, err := h.svc.SaleDetail(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Sale")
		return
	}

	receipt := RenderReceipt(detail, h.svc.Customization(), h.svc.Location(), time.Now())

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(receipt))
}
