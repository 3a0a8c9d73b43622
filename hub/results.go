// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"log/slog"
	"slices"
	"sort"

	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/resolver"
)

func getResult(r models.ResultRegister, key resolver.DrawKey) ([]string, bool) {
	prizes, ok := r[key.Date][key.LotteryID][key.DrawTime]
	return prizes, ok
}

func setResult(r models.ResultRegister, key resolver.DrawKey, prizes []string) {
	byLottery, ok := r[key.Date]
	if !ok {
		byLottery = make(map[string]map[string][]string)
		r[key.Date] = byLottery
	}
	byDraw, ok := byLottery[key.LotteryID]
	if !ok {
		byDraw = make(map[string][]string)
		byLottery[key.LotteryID] = byDraw
	}
	byDraw[key.DrawTime] = prizes
}

// deleteResult removes the entry and any levels it leaves empty.
func deleteResult(r models.ResultRegister, key resolver.DrawKey) {
	delete(r[key.Date][key.LotteryID], key.DrawTime)
	if len(r[key.Date][key.LotteryID]) == 0 {
		delete(r[key.Date], key.LotteryID)
	}
	if len(r[key.Date]) == 0 {
		delete(r, key.Date)
	}
}

// AddResult registers today's prizes for a draw, replacing any earlier
// entry, and resolves its winners.
func (s *Service) AddResult(ctx context.Context, req models.AddResultRequest) (models.ResultResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lottery, ok := findLottery(s.st.lotteries, req.LotteryID)
	if !ok {
		return models.ResultResponse{}, invalid("lottery_id", "unknown lottery %q", req.LotteryID)
	}
	if !lottery.HasDrawTime(req.DrawTime) {
		return models.ResultResponse{}, invalid("draw_time", "%s has no %s draw", lottery.Name, req.DrawTime)
	}
	prizes, err := validatePrizes(req.Prizes, lottery.NumberOfDigits)
	if err != nil {
		return models.ResultResponse{}, err
	}

	key := resolver.DrawKey{Date: s.Today(), LotteryID: lottery.ID, DrawTime: req.DrawTime}
	return s.applyResult(ctx, "add result", key, prizes)
}

// UpdateResult changes the prizes of a registered draw and re-resolves its
// winners. Paid winners that still match stay paid; winners that no
// longer match are removed. Winners whose sale was purged are kept.
func (s *Service) UpdateResult(ctx context.Context, date, lotteryID, drawTime string, req models.UpdateResultRequest) (models.ResultResponse, error) {
	if err := ParseDate(date); err != nil {
		return models.ResultResponse{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := resolver.DrawKey{Date: date, LotteryID: lotteryID, DrawTime: drawTime}
	if _, ok := getResult(s.st.results, key); !ok {
		return models.ResultResponse{}, ErrNotFound
	}

	// A deleted lottery no longer says how long its numbers are; fall
	// back to the length of the prizes already registered.
	digits := 0
	if lottery, ok := findLottery(s.st.lotteries, lotteryID); ok {
		digits = lottery.NumberOfDigits
	} else {
		existing, _ := getResult(s.st.results, key)
		for _, p := range existing {
			if p != "" {
				digits = len(p)
				break
			}
		}
	}

	prizes, err := validatePrizes(req.Prizes, digits)
	if err != nil {
		return models.ResultResponse{}, err
	}
	return s.applyResult(ctx, "update result", key, prizes)
}

// applyResult writes prizes under key and merges freshly resolved winners
// in the same commit. Callers hold s.mu.
func (s *Service) applyResult(ctx context.Context, op string, key resolver.DrawKey, prizes []string) (models.ResultResponse, error) {
	next := s.st.clone()
	setResult(next.results, key, prizes)

	fresh := resolver.Resolve(key, s.candidateSales(key), prizes, s.now())
	fresh = append(fresh, orphanedWinners(s.st.winners, s.st.sales, key)...)
	next.winners = resolver.Merge(next.winners, key, fresh)

	if err := s.commit(ctx, op, next, CollectionResults, CollectionWinners); err != nil {
		return models.ResultResponse{}, err
	}

	winners := []models.Winner{}
	for _, w := range next.winners {
		if key.Matches(w) {
			winners = append(winners, w)
		}
	}

	slog.Info("result registered",
		"date", key.Date,
		"lottery_id", key.LotteryID,
		"draw_time", key.DrawTime,
		"winners", len(winners),
	)

	return models.ResultResponse{
		Result:  models.WinningResult{Date: key.Date, LotteryID: key.LotteryID, DrawTime: key.DrawTime, Prizes: slices.Clone(prizes)},
		Winners: winners,
	}, nil
}

// orphanedWinners are the winners of key whose sale has left the ledger.
// They cannot be re-checked against new prizes, so they are kept as they
// are.
func orphanedWinners(winners []models.Winner, sales []models.Sale, key resolver.DrawKey) []models.Winner {
	out := []models.Winner{}
	for _, w := range winners {
		if !key.Matches(w) {
			continue
		}
		if _, ok := findSale(sales, w.SaleID); !ok {
			out = append(out, w)
		}
	}
	return out
}

// candidateSales are the sales placed on the draw on the draw's date.
func (s *Service) candidateSales(key resolver.DrawKey) []models.Sale {
	out := []models.Sale{}
	for _, sale := range s.st.sales {
		if sale.HasDraw(key.LotteryID, key.DrawTime) && s.dateOf(sale.SoldAt) == key.Date {
			out = append(out, sale)
		}
	}
	return out
}

// DeleteResult removes a registered draw together with its winners.
func (s *Service) DeleteResult(ctx context.Context, date, lotteryID, drawTime string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := resolver.DrawKey{Date: date, LotteryID: lotteryID, DrawTime: drawTime}
	if _, ok := getResult(s.st.results, key); !ok {
		return ErrNotFound
	}

	next := s.st.clone()
	deleteResult(next.results, key)
	next.winners = resolver.Remove(next.winners, key)

	if err := s.commit(ctx, "delete result", next, CollectionResults, CollectionWinners); err != nil {
		return err
	}

	slog.Info("result deleted", "date", date, "lottery_id", lotteryID, "draw_time", drawTime)
	return nil
}

// Result returns the prizes registered for one draw.
func (s *Service) Result(date, lotteryID, drawTime string) (models.WinningResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	key := resolver.DrawKey{Date: date, LotteryID: lotteryID, DrawTime: drawTime}
	prizes, ok := getResult(s.st.results, key)
	if !ok {
		return models.WinningResult{}, ErrNotFound
	}
	return models.WinningResult{Date: date, LotteryID: lotteryID, DrawTime: drawTime, Prizes: slices.Clone(prizes)}, nil
}

// Results lists the draws registered on date.
func (s *Service) Results(date string) []models.WinningResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return flattenResults(s.st.results, func(d string) bool { return d == date })
}

// AllResults lists every registered draw, newest date first.
func (s *Service) AllResults() []models.WinningResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return flattenResults(s.st.results, func(string) bool { return true })
}

func flattenResults(r models.ResultRegister, include func(date string) bool) []models.WinningResult {
	out := []models.WinningResult{}
	for date, byLottery := range r {
		if !include(date) {
			continue
		}
		for lotteryID, byDraw := range byLottery {
			for drawTime, prizes := range byDraw {
				out = append(out, models.WinningResult{
					Date:      date,
					LotteryID: lotteryID,
					DrawTime:  drawTime,
					Prizes:    slices.Clone(prizes),
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].LotteryID != out[j].LotteryID {
			return out[i].LotteryID < out[j].LotteryID
		}
		return drawTimeLess(out[i].DrawTime, out[j].DrawTime)
	})
	return out
}

func drawTimeLess(a, b string) bool {
	ta, errA := parseDrawTime(a)
	tb, errB := parseDrawTime(b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}
