// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/danielhkuo/lotto-hub/auth"
	"github.com/danielhkuo/lotto-hub/models"
	"github.com/shopspring/decimal"
)

// CreateSale prices and records a sale. A regular sale is placed on exactly
// one draw of a lottery; a special play sale may span several draws and is
// charged once per draw.
func (s *Service) CreateSale(ctx context.Context, req models.CreateSaleRequest) (models.Sale, error) {
	if len(req.Tickets) == 0 {
		return models.Sale{}, invalid("tickets", "at least one ticket is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	digits, unitCost, err := s.priceDraws(req.SpecialPlayID, req.Draws)
	if err != nil {
		return models.Sale{}, err
	}

	saleID, err := auth.NewID()
	if err != nil {
		return models.Sale{}, err
	}

	tickets := make([]models.Ticket, 0, len(req.Tickets))
	for i, line := range req.Tickets {
		number := strings.TrimSpace(line.TicketNumber)
		if !validTicketNumber(number, digits) {
			return models.Sale{}, invalid("tickets", "ticket %d must be %d digits", i+1, digits)
		}
		if line.Fractions < 1 {
			return models.Sale{}, invalid("tickets", "ticket %d needs at least one fraction", i+1)
		}

		ticketID, err := auth.NewID()
		if err != nil {
			return models.Sale{}, err
		}
		tickets = append(tickets, models.Ticket{
			ID:           ticketID,
			TicketNumber: number,
			Fractions:    line.Fractions,
			Cost:         unitCost.Mul(decimal.NewFromInt(int64(line.Fractions))),
		})
	}

	sale := models.Sale{
		ID:            saleID,
		Draws:         slices.Clone(req.Draws),
		SpecialPlayID: req.SpecialPlayID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Tickets:       tickets,
		SoldAt:        s.now(),
	}
	sale.TotalCost = sale.ExpectedTotal()

	next := s.st.clone()
	next.sales = append(next.sales, sale)
	if err := s.commit(ctx, "create sale", next, CollectionSales); err != nil {
		return models.Sale{}, err
	}

	slog.Info("sale created", "sale_id", sale.ID, "tickets", len(tickets), "total", sale.TotalCost.String())
	return sale, nil
}

// priceDraws checks the requested draws against the catalog and returns
// the ticket length and per-fraction price that apply.
func (s *Service) priceDraws(specialPlayID string, draws []models.DrawRef) (int, decimal.Decimal, error) {
	if len(draws) == 0 {
		return 0, decimal.Zero, invalid("draws", "at least one draw is required")
	}

	if specialPlayID == "" {
		if len(draws) != 1 {
			return 0, decimal.Zero, invalid("draws", "a regular sale is placed on exactly one draw")
		}
		draw := draws[0]
		lottery, ok := findLottery(s.st.lotteries, draw.LotteryID)
		if !ok {
			return 0, decimal.Zero, invalid("draws", "unknown lottery %q", draw.LotteryID)
		}
		if !lottery.HasDrawTime(draw.DrawTime) {
			return 0, decimal.Zero, invalid("draws", "%s has no %s draw", lottery.Name, draw.DrawTime)
		}
		return lottery.NumberOfDigits, lottery.Cost, nil
	}

	play, ok := findSpecialPlay(s.st.specialPlays, specialPlayID)
	if !ok {
		return 0, decimal.Zero, invalid("special_play_id", "unknown special play %q", specialPlayID)
	}
	seen := make(map[models.DrawRef]bool)
	for _, draw := range draws {
		if seen[draw] {
			return 0, decimal.Zero, invalid("draws", "draw %s %s listed twice", draw.LotteryID, draw.DrawTime)
		}
		seen[draw] = true
		if !play.Covers(draw) {
			return 0, decimal.Zero, invalid("draws", "%s does not cover %s %s", play.Name, draw.LotteryID, draw.DrawTime)
		}
	}
	return play.NumberOfDigits, play.Cost, nil
}

// RecordSale stores a sale created elsewhere, keeping its id. Draws and
// ticket numbers are checked against the current catalog. Ticket costs are
// taken as given but the total must agree with them.
func (s *Service) RecordSale(ctx context.Context, sale models.Sale) (models.Sale, error) {
	if sale.ID == "" {
		return models.Sale{}, invalid("id", "is required")
	}
	if !ValidSaleID(sale.ID) {
		return models.Sale{}, invalid("id", "must be 1-64 letters, digits, '-' or '_'")
	}
	if len(sale.Tickets) == 0 {
		return models.Sale{}, invalid("tickets", "at least one ticket is required")
	}

	sale.Draws = slices.Clone(sale.Draws)
	sale.Tickets = slices.Clone(sale.Tickets)
	for i := range sale.Tickets {
		t := &sale.Tickets[i]
		t.TicketNumber = strings.TrimSpace(t.TicketNumber)
		if t.Fractions < 1 {
			return models.Sale{}, invalid("tickets", "ticket %d needs at least one fraction", i+1)
		}
		if t.Cost.IsNegative() {
			return models.Sale{}, invalid("tickets", "ticket %d has a negative cost", i+1)
		}
		if t.ID == "" {
			id, err := auth.NewID()
			if err != nil {
				return models.Sale{}, err
			}
			t.ID = id
		}
	}
	if !sale.TotalCost.Equal(sale.ExpectedTotal()) {
		return models.Sale{}, invalid("total_cost", "expected %s", sale.ExpectedTotal().String())
	}
	if sale.SoldAt.IsZero() {
		sale.SoldAt = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	digits, _, err := s.priceDraws(sale.SpecialPlayID, sale.Draws)
	if err != nil {
		return models.Sale{}, err
	}
	for i, t := range sale.Tickets {
		if !validTicketNumber(t.TicketNumber, digits) {
			return models.Sale{}, invalid("tickets", "ticket %d must be %d digits", i+1, digits)
		}
	}

	if slices.ContainsFunc(s.st.sales, func(existing models.Sale) bool { return existing.ID == sale.ID }) {
		return models.Sale{}, ErrConflict
	}

	next := s.st.clone()
	next.sales = append(next.sales, sale)
	if err := s.commit(ctx, "record sale", next, CollectionSales); err != nil {
		return models.Sale{}, err
	}

	slog.Info("sale recorded", "sale_id", sale.ID)
	return sale, nil
}

// SalesByDraw returns the sales placed on a draw, most recent first.
func (s *Service) SalesByDraw(lotteryID, drawTime string) []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Sale{}
	for _, sale := range s.st.sales {
		if sale.HasDraw(lotteryID, drawTime) {
			out = append(out, sale)
		}
	}
	sortRecentFirst(out)
	return out
}

// Sales returns the whole ledger, most recent first.
func (s *Service) Sales() []models.Sale {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := slices.Clone(s.st.sales)
	sortRecentFirst(out)
	return out
}

func sortRecentFirst(sales []models.Sale) {
	sort.SliceStable(sales, func(i, j int) bool { return sales[i].SoldAt.After(sales[j].SoldAt) })
}

func (s *Service) Sale(id string) (models.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := findSale(s.st.sales, id)
	if !ok {
		return models.Sale{}, ErrNotFound
	}
	return sale, nil
}

func findSale(sales []models.Sale, id string) (models.Sale, bool) {
	for _, sale := range sales {
		if sale.ID == id {
			return sale, true
		}
	}
	return models.Sale{}, false
}

// SaleDetail returns a sale with the names of what it was sold for.
func (s *Service) SaleDetail(id string) (models.SaleDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := findSale(s.st.sales, id)
	if !ok {
		return models.SaleDetail{}, ErrNotFound
	}

	detail := models.SaleDetail{Sale: sale, LotteryNames: make([]string, len(sale.Draws))}
	for i, d := range sale.Draws {
		detail.LotteryNames[i] = s.lotteryName(d.LotteryID)
	}
	if sale.SpecialPlayID != "" {
		detail.SpecialPlayName = models.NotAvailable
		if play, ok := findSpecialPlay(s.st.specialPlays, sale.SpecialPlayID); ok {
			detail.SpecialPlayName = play.Name
		}
	}
	return detail, nil
}

// lotteryName resolves a lottery id for display. Callers hold s.mu.
func (s *Service) lotteryName(id string) string {
	if l, ok := findLottery(s.st.lotteries, id); ok {
		return l.Name
	}
	return models.NotAvailable
}
