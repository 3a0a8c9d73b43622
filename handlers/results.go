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

type ResultsHandler struct {
	svc *hub.Service
	cfg cliparse.Config
}

func NewResultsHandler(svc *hub.Service, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{svc: svc, cfg: cfg}
}

// ListResults handles GET /results?date=
// Without a date every registered draw is returned.
func (h *ResultsHandler) ListResults(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{Results: h.svc.AllResults()})
		return
	}
	if err := hub.ParseDate(date); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{Results: h.svc.Results(date)})
}

// AddResult handles POST /results
func (h *ResultsHandler) AddResult(w http.ResponseWriter, r *http.Request) {
	var req models.AddResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.svc.AddResult(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Result")
		return
	}
	middleware.JSONResponse(w, http.StatusCreated, res)
}

// UpdateResult handles PUT /results/{date}/{lottery_id}/{draw_time}
func (h *ResultsHandler) UpdateResult(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateResultRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	res, err := h.svc.UpdateResult(r.Context(), r.PathValue("date"), r.PathValue("lottery_id"), r.PathValue("draw_time"), req)
	if err != nil {
		writeServiceError(w, err, "Result")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, res)
}

// DeleteResult handles DELETE /results/{date}/{lottery_id}/{draw_time}
func (h *ResultsHandler) DeleteResult(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteResult(r.Context(), r.PathValue("date"), r.PathValue("lottery_id"), r.PathValue("draw_time"))
	if err != nil {
		writeServiceError(w, err, "Result")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
