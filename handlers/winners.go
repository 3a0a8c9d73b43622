// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/middleware"
	"github.com/danielhkuo/lotto-hub/models"
)

type WinnersHandler struct {
	svc *hub.Service
	cfg cliparse.Config
}

func NewWinnersHandler(svc *hub.Service, cfg cliparse.Config) *WinnersHandler {
	return &WinnersHandler{svc: svc, cfg: cfg}
}

// ListWinners handles GET /winners?date=&lottery_id=&draw_time=&paid=
func (h *WinnersHandler) ListWinners(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := hub.WinnerFilter{
		Date:      q.Get("date"),
		LotteryID: q.Get("lottery_id"),
		DrawTime:  q.Get("draw_time"),
	}

	if filter.Date != "" {
		if err := hub.ParseDate(filter.Date); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if raw := q.Get("paid"); raw != "" {
		paid, err := strconv.ParseBool(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "paid must be true or false")
			return
		}
		filter.Paid = &paid
	}

	middleware.JSONResponse(w, http.StatusOK, models.WinnersResponse{Winners: h.svc.Winners(filter)})
}

// MarkPaid handles POST /winners/{id}/pay
func (h *WinnersHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	winner, err := h.svc.MarkWinnerPaid(r.Context(), r.PathValue("id"))
	if errors.Is(err, hub.ErrConflict) {
		middleware.ErrorResponse(w, http.StatusConflict, "Winner already paid")
		return
	}
	if err != nil {
		writeServiceError(w, err, "Winner")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, winner)
}
