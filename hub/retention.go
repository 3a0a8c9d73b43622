// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"log/slog"
	"time"

	"github.com/danielhkuo/lotto-hub/models"
)

// PurgeStats counts what a purge removed.
type PurgeStats struct {
	Sales   int
	Results int
	Winners int
}

func (p PurgeStats) Total() int {
	return p.Sales + p.Results + p.Winners
}

// SetRetention swaps the purge horizons, e.g. after a settings reload.
func (s *Service) SetRetention(r Retention) {
	s.mu.Lock()
	s.ret = r
	s.mu.Unlock()
}

func (s *Service) Retention() Retention {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ret
}

// Purge drops sales, results and winners older than their horizons. Sale
// age counts from the end of the sale's draw day.
func (s *Service) Purge(ctx context.Context) (PurgeStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	next := s.st.clone()
	var stats PurgeStats
	var changed []string

	if s.ret.Sales > 0 {
		kept := make([]models.Sale, 0, len(next.sales))
		for _, sale := range next.sales {
			if !now.Before(s.saleExpiry(sale)) {
				stats.Sales++
				continue
			}
			kept = append(kept, sale)
		}
		if stats.Sales > 0 {
			next.sales = kept
			changed = append(changed, CollectionSales)
		}
	}

	if s.ret.Winners > 0 {
		cutoff := now.Add(-s.ret.Winners)
		kept := make([]models.Winner, 0, len(next.winners))
		for _, w := range next.winners {
			if w.ResolvedAt.Before(cutoff) {
				stats.Winners++
				continue
			}
			kept = append(kept, w)
		}
		if stats.Winners > 0 {
			next.winners = kept
			changed = append(changed, CollectionWinners)
		}
	}

	if s.ret.Results > 0 {
		// Dates sort lexically, so the cutoff date compares as a string
		cutoff := s.dateOf(now.Add(-s.ret.Results))
		for date, byLottery := range next.results {
			if date < cutoff {
				stats.Results += countResults(byLottery)
				delete(next.results, date)
			}
		}
		if stats.Results > 0 {
			changed = append(changed, CollectionResults)
		}
	}

	if len(changed) == 0 {
		return stats, nil
	}
	if err := s.commit(ctx, "purge", next, changed...); err != nil {
		return PurgeStats{}, err
	}

	slog.Info("purged expired records", "sales", stats.Sales, "results", stats.Results, "winners", stats.Winners)
	return stats, nil
}

// saleExpiry is when a sale may be purged. A sale plays the draws of the
// day it was sold, so the horizon starts when that day ends.
func (s *Service) saleExpiry(sale models.Sale) time.Time {
	local := sale.SoldAt.In(s.loc)
	endOfDay := time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, s.loc)
	return endOfDay.Add(s.ret.Sales)
}

// RunSweeper purges expired records every interval until ctx is done.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Purge(ctx); err != nil {
				slog.Error("retention sweep failed", "error", err)
			}
		}
	}
}
