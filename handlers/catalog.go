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

type CatalogHandler struct {
	svc *hub.Service
	cfg cliparse.Config
}

func NewCatalogHandler(svc *hub.Service, cfg cliparse.Config) *CatalogHandler {
	return &CatalogHandler{svc: svc, cfg: cfg}
}

// ListLotteries handles GET /lotteries
func (h *CatalogHandler) ListLotteries(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.LotteriesResponse{Lotteries: h.svc.Lotteries()})
}

// GetLottery handles GET /lotteries/{id}
func (h *CatalogHandler) GetLottery(w http.ResponseWriter, r *http.Request) {
	lottery, err := h.svc.Lottery(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Lottery")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, lottery)
}

// CreateLottery handles POST /lotteries
func (h *CatalogHandler) CreateLottery(w http.ResponseWriter, r *http.Request) {
	var req models.LotteryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lottery, err := h.svc.CreateLottery(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Lottery")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, lottery)
}

// UpdateLottery handles PUT /lotteries/{id}
func (h *CatalogHandler) UpdateLottery(w http.ResponseWriter, r *http.Request) {
	var req models.LotteryRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	lottery, err := h.svc.UpdateLottery(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, "Lottery")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, lottery)
}

// DeleteLottery handles DELETE /lotteries/{id}
func (h *CatalogHandler) DeleteLottery(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteLottery(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Lottery")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListSpecialPlays handles GET /special-plays
func (h *CatalogHandler) ListSpecialPlays(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, models.SpecialPlaysResponse{SpecialPlays: h.svc.SpecialPlays()})
}

// GetSpecialPlay handles GET /special-plays/{id}
func (h *CatalogHandler) GetSpecialPlay(w http.ResponseWriter, r *http.Request) {
	play, err := h.svc.SpecialPlay(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "Special play")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, play)
}

// CreateSpecialPlay handles POST /special-plays
func (h *CatalogHandler) CreateSpecialPlay(w http.ResponseWriter, r *http.Request) {
	var req models.SpecialPlayRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	play, err := h.svc.CreateSpecialPlay(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Special play")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, play)
}

// UpdateSpecialPlay handles PUT /special-plays/{id}
func (h *CatalogHandler) UpdateSpecialPlay(w http.ResponseWriter, r *http.Request) {
	var req models.SpecialPlayRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	play, err := h.svc.UpdateSpecialPlay(r.Context(), r.PathValue("id"), req)
	if err != nil {
		writeServiceError(w, err, "Special play")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, play)
}

// DeleteSpecialPlay handles DELETE /special-plays/{id}
func (h *CatalogHandler) DeleteSpecialPlay(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteSpecialPlay(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err, "Special play")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
