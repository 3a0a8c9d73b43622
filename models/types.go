package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Role constants
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// NotAvailable is shown in place of data whose source record is gone.
const NotAvailable = "N/A"

// Domain types

type Lottery struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Icon           Icon            `json:"icon"`
	NumberOfDigits int             `json:"number_of_digits"`
	Cost           decimal.Decimal `json:"cost"`
	DrawTimes      []string        `json:"draw_times"`
}

// HasDrawTime reports whether drawTime is one of the lottery's draws.
func (l Lottery) HasDrawTime(drawTime string) bool {
	for _, dt := range l.DrawTimes {
		if dt == drawTime {
			return true
		}
	}
	return false
}

type SpecialPlayTarget struct {
	LotteryID string   `json:"lottery_id"`
	DrawTimes []string `json:"draw_times"`
}

type SpecialPlay struct {
	ID             string              `json:"id"`
	Name           string              `json:"name"`
	Icon           Icon                `json:"icon"`
	NumberOfDigits int                 `json:"number_of_digits"`
	Cost           decimal.Decimal     `json:"cost"`
	AppliesTo      []SpecialPlayTarget `json:"applies_to"`
}

// Covers reports whether the play can be sold for the given draw.
func (p SpecialPlay) Covers(draw DrawRef) bool {
	for _, target := range p.AppliesTo {
		if target.LotteryID != draw.LotteryID {
			continue
		}
		for _, dt := range target.DrawTimes {
			if dt == draw.DrawTime {
				return true
			}
		}
	}
	return false
}

type DrawRef struct {
	LotteryID string `json:"lottery_id"`
	DrawTime  string `json:"draw_time"`
}

type Ticket struct {
	ID           string          `json:"id"`
	TicketNumber string          `json:"ticket_number"`
	Fractions    int             `json:"fractions"`
	Cost         decimal.Decimal `json:"cost"`
}

type Sale struct {
	ID            string          `json:"id"`
	Draws         []DrawRef       `json:"draws"`
	SpecialPlayID string          `json:"special_play_id,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	CustomerPhone string          `json:"customer_phone,omitempty"`
	Tickets       []Ticket        `json:"tickets"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	SoldAt        time.Time       `json:"sold_at"`
}

// HasDraw reports whether the sale was placed on the given draw.
func (s Sale) HasDraw(lotteryID, drawTime string) bool {
	for _, d := range s.Draws {
		if d.LotteryID == lotteryID && d.DrawTime == drawTime {
			return true
		}
	}
	return false
}

// ExpectedTotal is the sum of ticket costs, multiplied by the number of
// draws for special plays.
func (s Sale) ExpectedTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, t := range s.Tickets {
		sum = sum.Add(t.Cost)
	}
	if s.SpecialPlayID != "" {
		return sum.Mul(decimal.NewFromInt(int64(len(s.Draws))))
	}
	return sum
}

type WinningResult struct {
	Date      string   `json:"date"`
	LotteryID string   `json:"lottery_id"`
	DrawTime  string   `json:"draw_time"`
	Prizes    []string `json:"prizes"`
}

// ResultRegister is the persisted layout of winning results:
// date -> lottery id -> draw time -> prize numbers.
type ResultRegister map[string]map[string]map[string][]string

type Winner struct {
	ID            string     `json:"id"`
	TicketID      string     `json:"ticket_id"`
	SaleID        string     `json:"sale_id"`
	LotteryID     string     `json:"lottery_id"`
	DrawTime      string     `json:"draw_time"`
	DrawDate      string     `json:"draw_date"`
	TicketNumber  string     `json:"ticket_number"`
	PrizeTier     int        `json:"prize_tier"`
	Fractions     int        `json:"fractions"`
	SpecialPlayID string     `json:"special_play_id,omitempty"`
	Paid          bool       `json:"paid"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	ResolvedAt    time.Time  `json:"resolved_at"`
}

type AppCustomization struct {
	AppName string `json:"app_name"`
	Logo    Icon   `json:"logo"`
}

// DefaultCustomization is used when nothing has been saved yet.
func DefaultCustomization() AppCustomization {
	return AppCustomization{AppName: "Lotto Hub", Logo: DefaultIcon}
}

// Request types

type LotteryRequest struct {
	Name           string          `json:"name"`
	Icon           Icon            `json:"icon"`
	NumberOfDigits int             `json:"number_of_digits"`
	Cost           decimal.Decimal `json:"cost"`
	DrawTimes      []string        `json:"draw_times"`
}

type SpecialPlayRequest struct {
	Name           string              `json:"name"`
	Icon           Icon                `json:"icon"`
	NumberOfDigits int                 `json:"number_of_digits"`
	Cost           decimal.Decimal     `json:"cost"`
	AppliesTo      []SpecialPlayTarget `json:"applies_to"`
}

type TicketLine struct {
	TicketNumber string `json:"ticket_number"`
	Fractions    int    `json:"fractions"`
}

type CreateSaleRequest struct {
	Draws         []DrawRef    `json:"draws"`
	SpecialPlayID string       `json:"special_play_id,omitempty"`
	CustomerName  string       `json:"customer_name,omitempty"`
	CustomerPhone string       `json:"customer_phone,omitempty"`
	Tickets       []TicketLine `json:"tickets"`
}

type AddResultRequest struct {
	LotteryID string   `json:"lottery_id"`
	DrawTime  string   `json:"draw_time"`
	Prizes    []string `json:"prizes"`
}

type UpdateResultRequest struct {
	Prizes []string `json:"prizes"`
}

// Response types

type ResultResponse struct {
	Result  WinningResult `json:"result"`
	Winners []Winner      `json:"winners"`
}

type RecordSaleResponse struct {
	Message string `json:"message"`
	SaleID  string `json:"sale_id"`
}

type VerifiedTicket struct {
	TicketNumber string `json:"ticket_number"`
}

type VerifiedDraw struct {
	LotteryName string `json:"lottery_name"`
	DrawTime    string `json:"draw_time"`
}

// Verification is the redacted public view of a sale.
type Verification struct {
	ID           string           `json:"id"`
	CustomerName string           `json:"customer_name"`
	LotteryName  string           `json:"lottery_name"`
	DrawTime     string           `json:"draw_time"`
	Draws        []VerifiedDraw   `json:"draws"`
	Tickets      []VerifiedTicket `json:"tickets"`
	TotalCost    decimal.Decimal  `json:"total_cost"`
	CreatedAt    time.Time        `json:"created_at"`
}

type SaleDetail struct {
	Sale            Sale     `json:"sale"`
	LotteryNames    []string `json:"lottery_names"`
	SpecialPlayName string   `json:"special_play_name,omitempty"`
}

type WinnerView struct {
	Winner       Winner `json:"winner"`
	LotteryName  string `json:"lottery_name"`
	CustomerName string `json:"customer_name"`
}

type LotteriesResponse struct {
	Lotteries []Lottery `json:"lotteries"`
}

type SpecialPlaysResponse struct {
	SpecialPlays []SpecialPlay `json:"special_plays"`
}

type SalesResponse struct {
	Sales []Sale `json:"sales"`
}

type WinnersResponse struct {
	Winners []WinnerView `json:"winners"`
}

type ResultsResponse struct {
	Results []WinningResult `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
