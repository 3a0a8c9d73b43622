// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/danielhkuo/lotto-hub/models"
)

const receiptWidth = 40

// RenderReceipt formats a sale as a plain-text receipt for printing.
func RenderReceipt(detail models.SaleDetail, app models.AppCustomization, loc *time.Location, now time.Time) string {
	sale := detail.Sale
	var b strings.Builder

	rule := strings.Repeat("-", receiptWidth)
	center := func(s string) {
		pad := (receiptWidth - len([]rune(s))) / 2
		if pad < 0 {
			pad = 0
		}
		b.WriteString(strings.Repeat(" ", pad) + s + "\n")
	}

	center(app.AppName)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Sale:     %s\n", sale.ID)
	fmt.Fprintf(&b, "Sold:     %s (%s)\n",
		sale.SoldAt.In(loc).Format("2006-01-02 03:04 PM"),
		humanize.RelTime(sale.SoldAt, now, "ago", "from now"))

	customer := sale.CustomerName
	if customer == "" {
		customer = models.NotAvailable
	}
	fmt.Fprintf(&b, "Customer: %s\n", customer)
	if sale.CustomerPhone != "" {
		fmt.Fprintf(&b, "Phone:    %s\n", sale.CustomerPhone)
	}
	if detail.SpecialPlayName != "" {
		fmt.Fprintf(&b, "Play:     %s\n", detail.SpecialPlayName)
	}

	b.WriteString(rule + "\n")
	b.WriteString("Draws\n")
	for i, d := range sale.Draws {
		name := models.NotAvailable
		if i < len(detail.LotteryNames) {
			name = detail.LotteryNames[i]
		}
		fmt.Fprintf(&b, "  %-26s %s\n", name, d.DrawTime)
	}

	b.WriteString(rule + "\n")
	b.WriteString("Tickets\n")
	for _, t := range sale.Tickets {
		fmt.Fprintf(&b, "  %-12s x%-6s %16s\n", t.TicketNumber, humanize.Comma(int64(t.Fractions)), money(t.Cost))
	}

	b.WriteString(rule + "\n")
	if len(sale.Draws) > 1 {
		fmt.Fprintf(&b, "%-24s %15s\n", "Draws", humanize.Comma(int64(len(sale.Draws))))
	}
	fmt.Fprintf(&b, "%-24s %15s\n", "TOTAL", money(sale.TotalCost))
	b.WriteString(rule + "\n")
	center("Verify with code " + sale.ID)

	return b.String()
}

// money renders d with two decimals and thousands separators. The digits
// come from the decimal itself, never from a float.
func money(d decimal.Decimal) string {
	whole, frac, _ := strings.Cut(d.Abs().StringFixed(2), ".")
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok {
		return d.StringFixed(2)
	}
	out := humanize.BigComma(n) + "." + frac
	if d.Round(2).IsNegative() {
		out = "-" + out
	}
	return out
}
