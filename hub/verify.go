// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"strings"

	"github.com/danielhkuo/lotto-hub/models"
)

// VerifySale returns the public view of a sale: who bought it, for which
// draws, the ticket numbers and what was paid. Contact details and ticket
// prices stay hidden.
func (s *Service) VerifySale(id string) (models.Verification, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return models.Verification{}, invalid("id", "is required")
	}
	if !ValidSaleID(id) {
		return models.Verification{}, invalid("id", "is malformed")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	sale, ok := findSale(s.st.sales, id)
	if !ok {
		return models.Verification{}, ErrNotFound
	}

	v := models.Verification{
		ID:           sale.ID,
		CustomerName: sale.CustomerName,
		LotteryName:  models.NotAvailable,
		DrawTime:     models.NotAvailable,
		Draws:        make([]models.VerifiedDraw, len(sale.Draws)),
		Tickets:      make([]models.VerifiedTicket, len(sale.Tickets)),
		TotalCost:    sale.TotalCost,
		CreatedAt:    sale.SoldAt,
	}
	if v.CustomerName == "" {
		v.CustomerName = models.NotAvailable
	}

	for i, d := range sale.Draws {
		v.Draws[i] = models.VerifiedDraw{LotteryName: s.lotteryName(d.LotteryID), DrawTime: d.DrawTime}
	}
	if len(v.Draws) > 0 {
		v.LotteryName = v.Draws[0].LotteryName
		v.DrawTime = v.Draws[0].DrawTime
	}
	for i, t := range sale.Tickets {
		v.Tickets[i] = models.VerifiedTicket{TicketNumber: t.TicketNumber}
	}

	return v, nil
}
