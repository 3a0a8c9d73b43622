// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"log/slog"
	"slices"

	"github.com/danielhkuo/lotto-hub/models"
)

// WinnerFilter narrows a winner listing. Empty fields match everything.
type WinnerFilter struct {
	Date      string
	LotteryID string
	DrawTime  string
	Paid      *bool
}

func (f WinnerFilter) match(w models.Winner) bool {
	if f.Date != "" && w.DrawDate != f.Date {
		return false
	}
	if f.LotteryID != "" && w.LotteryID != f.LotteryID {
		return false
	}
	if f.DrawTime != "" && w.DrawTime != f.DrawTime {
		return false
	}
	if f.Paid != nil && w.Paid != *f.Paid {
		return false
	}
	return true
}

// Winners lists winners joined with their sale and lottery. Records whose
// sale or lottery is gone show "N/A".
func (s *Service) Winners(filter WinnerFilter) []models.WinnerView {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := []models.WinnerView{}
	for _, w := range s.st.winners {
		if !filter.match(w) {
			continue
		}

		customer := models.NotAvailable
		if sale, ok := findSale(s.st.sales, w.SaleID); ok && sale.CustomerName != "" {
			customer = sale.CustomerName
		}

		views = append(views, models.WinnerView{
			Winner:       w,
			LotteryName:  s.lotteryName(w.LotteryID),
			CustomerName: customer,
		})
	}
	return views
}

// Winner returns one winner by id.
func (s *Service) Winner(id string) (models.Winner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := slices.IndexFunc(s.st.winners, func(w models.Winner) bool { return w.ID == id })
	if idx < 0 {
		return models.Winner{}, ErrNotFound
	}
	return s.st.winners[idx], nil
}

// MarkWinnerPaid records a prize payout. Payment cannot be undone, so a
// second call reports ErrConflict.
func (s *Service) MarkWinnerPaid(ctx context.Context, id string) (models.Winner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.st.winners, func(w models.Winner) bool { return w.ID == id })
	if idx < 0 {
		return models.Winner{}, ErrNotFound
	}
	if s.st.winners[idx].Paid {
		return models.Winner{}, ErrConflict
	}

	now := s.now()
	next := s.st.clone()
	next.winners[idx].Paid = true
	next.winners[idx].PaidAt = &now

	if err := s.commit(ctx, "mark winner paid", next, CollectionWinners); err != nil {
		return models.Winner{}, err
	}

	slog.Info("winner paid", "winner_id", id, "sale_id", next.winners[idx].SaleID)
	return next.winners[idx], nil
}
