// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package resolver matches sold tickets against a draw's prize numbers and
// merges the resulting winners into an existing winner list.
package resolver

import (
	"time"

	"github.com/danielhkuo/lotto-hub/models"
)

// MaxPrizes is the number of prize tiers a draw can have.
const MaxPrizes = 3

// DrawKey identifies one registered draw.
type DrawKey struct {
	Date      string
	LotteryID string
	DrawTime  string
}

// Matches reports whether w belongs to the draw.
func (k DrawKey) Matches(w models.Winner) bool {
	return w.DrawDate == k.Date && w.LotteryID == k.LotteryID && w.DrawTime == k.DrawTime
}

// WinnerID derives the winner id for a ticket in a draw. A ticket can win
// at most once per draw; special plays put the same ticket on several
// draws, so the draw is part of the id.
func WinnerID(ticketID string, key DrawKey) string {
	return ticketID + "@" + key.LotteryID + "@" + key.DrawTime + "@" + key.Date
}

// Resolve returns the winners among sales for the draw. Each ticket is
// compared with the prizes in order and takes the tier of the first match,
// so duplicated prize numbers always award the better tier. Empty prizes,
// tickets without fractions and non-numeric ticket numbers never match.
func Resolve(key DrawKey, sales []models.Sale, prizes []string, now time.Time) []models.Winner {
	winners := []models.Winner{}
	seen := make(map[string]bool)

	for _, sale := range sales {
		if !sale.HasDraw(key.LotteryID, key.DrawTime) {
			continue
		}
		for _, ticket := range sale.Tickets {
			if ticket.Fractions <= 0 || !IsNumeric(ticket.TicketNumber) {
				continue
			}

			tier := PrizeTier(ticket.TicketNumber, prizes)
			if tier == 0 {
				continue
			}

			id := WinnerID(ticket.ID, key)
			if seen[id] {
				continue
			}
			seen[id] = true

			winners = append(winners, models.Winner{
				ID:            id,
				TicketID:      ticket.ID,
				SaleID:        sale.ID,
				LotteryID:     key.LotteryID,
				DrawTime:      key.DrawTime,
				DrawDate:      key.Date,
				TicketNumber:  ticket.TicketNumber,
				PrizeTier:     tier,
				Fractions:     ticket.Fractions,
				SpecialPlayID: sale.SpecialPlayID,
				ResolvedAt:    now,
			})
		}
	}

	return winners
}

// PrizeTier returns the 1-based tier of the first prize equal to number,
// or 0 when nothing matches.
func PrizeTier(number string, prizes []string) int {
	for i, prize := range prizes {
		if i >= MaxPrizes {
			break
		}
		if prize != "" && prize == number {
			return i + 1
		}
	}
	return 0
}

// Merge replaces the winners of key in existing with fresh. A fresh winner
// whose id was already present keeps its paid state and first resolution
// time, so re-running a draw never un-pays or duplicates a winner. Winners
// of other draws are returned unchanged and in their original order.
func Merge(existing []models.Winner, key DrawKey, fresh []models.Winner) []models.Winner {
	previous := make(map[string]models.Winner)
	merged := make([]models.Winner, 0, len(existing)+len(fresh))

	for _, w := range existing {
		if key.Matches(w) {
			previous[w.ID] = w
			continue
		}
		merged = append(merged, w)
	}

	for _, w := range fresh {
		if old, ok := previous[w.ID]; ok {
			w.Paid = old.Paid
			w.PaidAt = old.PaidAt
			w.ResolvedAt = old.ResolvedAt
		}
		merged = append(merged, w)
	}

	return merged
}

// Remove drops every winner of key.
func Remove(existing []models.Winner, key DrawKey) []models.Winner {
	kept := make([]models.Winner, 0, len(existing))
	for _, w := range existing {
		if !key.Matches(w) {
			kept = append(kept, w)
		}
	}
	return kept
}

// IsNumeric reports whether s is a non-empty string of ASCII digits.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
