// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/danielhkuo/lotto-hub/models"
	"github.com/shopspring/decimal"
)

func TestCreateLotteryValidation(t *testing.T) {
	valid := models.LotteryRequest{
		Name:           "Pega 3",
		NumberOfDigits: 3,
		Cost:           decimal.NewFromInt(5),
		DrawTimes:      []string{"11:00 AM"},
	}

	tests := []struct {
		name   string
		modify func(*models.LotteryRequest)
		field  string
	}{
		{"missing name", func(r *models.LotteryRequest) { r.Name = "  " }, "name"},
		{"zero digits", func(r *models.LotteryRequest) { r.NumberOfDigits = 0 }, "number_of_digits"},
		{"too many digits", func(r *models.LotteryRequest) { r.NumberOfDigits = 11 }, "number_of_digits"},
		{"free", func(r *models.LotteryRequest) { r.Cost = decimal.Zero }, "cost"},
		{"no draw times", func(r *models.LotteryRequest) { r.DrawTimes = nil }, "draw_times"},
		{"five draw times", func(r *models.LotteryRequest) {
			r.DrawTimes = []string{"09:00 AM", "10:00 AM", "11:00 AM", "12:00 PM", "01:00 PM"}
		}, "draw_times"},
		{"bad draw time", func(r *models.LotteryRequest) { r.DrawTimes = []string{"25:00"} }, "draw_times"},
		{"duplicate draw time", func(r *models.LotteryRequest) { r.DrawTimes = []string{"11:00 AM", "11:00 AM"} }, "draw_times"},
		{"unknown icon", func(r *models.LotteryRequest) { r.Icon = "unicorn" }, "icon"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t)
			req := valid
			tt.modify(&req)

			_, err := svc.CreateLottery(context.Background(), req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("Field = %s, want %s", verr.Field, tt.field)
			}
		})
	}
}

func TestLotteryCRUD(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	lottery := createLotoReal(t, svc)

	if lottery.Icon != models.IconCrown {
		t.Errorf("Icon = %s", lottery.Icon)
	}

	got, err := svc.Lottery(lottery.ID)
	if err != nil || got.Name != "Loto Real" {
		t.Fatalf("Lottery() = %+v, %v", got, err)
	}

	updated, err := svc.UpdateLottery(ctx, lottery.ID, models.LotteryRequest{
		Name:           "Loto Real Plus",
		NumberOfDigits: 6,
		Cost:           decimal.NewFromInt(30),
		DrawTimes:      []string{"02:00 PM"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Icon != models.DefaultIcon || updated.Name != "Loto Real Plus" {
		t.Errorf("Unexpected update: %+v", updated)
	}

	if _, err := svc.UpdateLottery(ctx, "missing", models.LotteryRequest{
		Name: "x", NumberOfDigits: 1, Cost: decimal.NewFromInt(1), DrawTimes: []string{"02:00 PM"},
	}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	if err := svc.DeleteLottery(ctx, lottery.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Lottery(lottery.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.DeleteLottery(ctx, lottery.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSpecialPlayFollowsCatalog(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	lottery := createLotoReal(t, svc)

	if _, err := svc.CreateSpecialPlay(ctx, models.SpecialPlayRequest{
		Name: "Bad", NumberOfDigits: 2, Cost: decimal.NewFromInt(1),
		AppliesTo: []models.SpecialPlayTarget{{LotteryID: lottery.ID, DrawTimes: []string{"09:00 AM"}}},
	}); !IsValidation(err) {
		t.Errorf("Expected validation error for unknown draw, got %v", err)
	}

	play, err := svc.CreateSpecialPlay(ctx, models.SpecialPlayRequest{
		Name: "Pale", NumberOfDigits: 6, Cost: decimal.NewFromInt(10),
		AppliesTo: []models.SpecialPlayTarget{{LotteryID: lottery.ID, DrawTimes: []string{"08:00 PM", "02:00 PM"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	// Dropping a draw time removes it from the play
	if _, err := svc.UpdateLottery(ctx, lottery.ID, models.LotteryRequest{
		Name: "Loto Real", NumberOfDigits: 6, Cost: decimal.NewFromInt(25), DrawTimes: []string{"08:00 PM"},
	}); err != nil {
		t.Fatal(err)
	}
	play, _ = svc.SpecialPlay(play.ID)
	if len(play.AppliesTo) != 1 || len(play.AppliesTo[0].DrawTimes) != 1 || play.AppliesTo[0].DrawTimes[0] != "08:00 PM" {
		t.Errorf("Unexpected targets after update: %+v", play.AppliesTo)
	}

	// Deleting the lottery strips it entirely
	if err := svc.DeleteLottery(ctx, lottery.ID); err != nil {
		t.Fatal(err)
	}
	play, _ = svc.SpecialPlay(play.ID)
	if len(play.AppliesTo) != 0 {
		t.Errorf("Deleted lottery still targeted: %+v", play.AppliesTo)
	}

	if err := svc.DeleteSpecialPlay(ctx, play.ID); err != nil {
		t.Fatal(err)
	}
	if len(svc.SpecialPlays()) != 0 {
		t.Error("Special play not deleted")
	}
}

func TestSpecialPlayDigitsFollowLottery(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()
	lottery := createLotoReal(t, svc)

	_, err := svc.CreateSpecialPlay(ctx, models.SpecialPlayRequest{
		Name: "Short", NumberOfDigits: 4, Cost: decimal.NewFromInt(10),
		AppliesTo: []models.SpecialPlayTarget{{LotteryID: lottery.ID, DrawTimes: []string{"02:00 PM"}}},
	})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "number_of_digits" {
		t.Errorf("Expected number_of_digits validation error, got %v", err)
	}

	play, err := svc.CreateSpecialPlay(ctx, models.SpecialPlayRequest{
		Name: "Pale", NumberOfDigits: 6, Cost: decimal.NewFromInt(10),
		AppliesTo: []models.SpecialPlayTarget{{LotteryID: lottery.ID, DrawTimes: []string{"02:00 PM"}}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.UpdateLottery(ctx, lottery.ID, models.LotteryRequest{
		Name: "Loto Real", NumberOfDigits: 4, Cost: decimal.NewFromInt(25), DrawTimes: []string{"02:00 PM", "08:00 PM"},
	}); err != nil {
		t.Fatal(err)
	}
	play, _ = svc.SpecialPlay(play.ID)
	if len(play.AppliesTo) != 0 {
		t.Errorf("Play with stale digit count still targets the lottery: %+v", play.AppliesTo)
	}

	_, err = svc.CreateSale(ctx, models.CreateSaleRequest{
		SpecialPlayID: play.ID,
		Draws:         []models.DrawRef{{LotteryID: lottery.ID, DrawTime: "02:00 PM"}},
		Tickets:       []models.TicketLine{{TicketNumber: "123456", Fractions: 1}},
	})
	if !IsValidation(err) {
		t.Errorf("Expected the detached play to be unsellable, got %v", err)
	}
}

func TestUpdateCustomization(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if got := svc.Customization(); got != models.DefaultCustomization() {
		t.Errorf("Expected default customization, got %+v", got)
	}

	long := make([]byte, MaxAppNameLength+1)
	for i := range long {
		long[i] = 'a'
	}
	for _, name := range []string{"", string(long)} {
		if _, err := svc.UpdateCustomization(ctx, models.AppCustomization{AppName: name}); !IsValidation(err) {
			t.Errorf("Expected validation error for %q, got %v", name, err)
		}
	}

	c, err := svc.UpdateCustomization(ctx, models.AppCustomization{AppName: " Banca Ana "})
	if err != nil {
		t.Fatal(err)
	}
	if c.AppName != "Banca Ana" || c.Logo != models.DefaultIcon {
		t.Errorf("Unexpected customization: %+v", c)
	}
}

func TestPurge(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()
	lottery := createLotoReal(t, svc)

	sellTicket(t, svc, lottery.ID, "02:00 PM", "123456", 1)
	if _, err := svc.AddResult(ctx, models.AddResultRequest{LotteryID: lottery.ID, DrawTime: "02:00 PM", Prizes: []string{"123456"}}); err != nil {
		t.Fatal(err)
	}

	// Nothing has expired yet
	stats, err := svc.Purge(ctx)
	if err != nil || stats.Total() != 0 {
		t.Fatalf("Purge() = %+v, %v", stats, err)
	}

	// Sold at 13:30, so the sale horizon runs from midnight
	clk.Advance(13 * time.Hour)
	stats, err = svc.Purge(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Total() != 0 {
		t.Errorf("After 13h: %+v", stats)
	}

	clk.Advance(12 * time.Hour)
	stats, _ = svc.Purge(ctx)
	if stats.Sales != 1 || stats.Winners != 1 || stats.Results != 0 {
		t.Errorf("After 25h: %+v", stats)
	}

	clk.Advance(7 * 24 * time.Hour)
	stats, _ = svc.Purge(ctx)
	if stats.Results != 1 {
		t.Errorf("After 8 days: %+v", stats)
	}
	if len(svc.AllResults()) != 0 {
		t.Error("Results should be gone")
	}
}

func TestPurgeKeepsSalesUntilTheirDrawDayEnds(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()
	lottery := createLotoReal(t, svc)

	clk.t = time.Date(2025, 3, 10, 7, 0, 0, 0, time.UTC)
	sellTicket(t, svc, lottery.ID, "08:00 PM", "123456", 1)

	clk.Advance(12*time.Hour + 10*time.Minute)
	stats, err := svc.Purge(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sales != 0 {
		t.Fatalf("Sale purged before its draw: %+v", stats)
	}

	clk.Advance(time.Hour)
	res, err := svc.AddResult(ctx, models.AddResultRequest{LotteryID: lottery.ID, DrawTime: "08:00 PM", Prizes: []string{"123456"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Winners) != 1 {
		t.Errorf("Expected the morning sale to win the evening draw, got %d winners", len(res.Winners))
	}
}

func TestReResolutionKeepsWinnersOfPurgedSales(t *testing.T) {
	svc, _, clk := newTestService(t)
	ctx := context.Background()
	lottery := createLotoReal(t, svc)
	sellTicket(t, svc, lottery.ID, "02:00 PM", "123456", 1)
	sellTicket(t, svc, lottery.ID, "02:00 PM", "654321", 1)

	res, err := svc.AddResult(ctx, models.AddResultRequest{LotteryID: lottery.ID, DrawTime: "02:00 PM", Prizes: []string{"123456", "654321"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Winners) != 2 {
		t.Fatalf("Expected 2 winners, got %d", len(res.Winners))
	}
	paidID := res.Winners[0].ID
	if res.Winners[0].TicketNumber != "123456" {
		paidID = res.Winners[1].ID
	}
	if _, err := svc.MarkWinnerPaid(ctx, paidID); err != nil {
		t.Fatal(err)
	}

	// Past the sale horizon, inside the winner horizon
	clk.Advance(23 * time.Hour)
	stats, err := svc.Purge(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sales != 2 || stats.Winners != 0 {
		t.Fatalf("Purge() = %+v", stats)
	}

	tests := []struct {
		name   string
		prizes []string
	}{
		{"same prizes", []string{"123456", "654321"}},
		{"changed prizes", []string{"999999"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.UpdateResult(ctx, "2025-03-10", lottery.ID, "02:00 PM", models.UpdateResultRequest{Prizes: tt.prizes})
			if err != nil {
				t.Fatal(err)
			}
			if len(res.Winners) != 2 {
				t.Fatalf("Expected both winners to survive, got %d", len(res.Winners))
			}
			w, err := svc.Winner(paidID)
			if err != nil {
				t.Fatal(err)
			}
			if !w.Paid || w.PaidAt == nil {
				t.Errorf("Paid winner lost its paid state: %+v", w)
			}
		})
	}
}

func TestPurgeDisabledHorizon(t *testing.T) {
	svc, _, clk := newTestService(t)
	svc.SetRetention(Retention{})
	lottery := createLotoReal(t, svc)
	sellTicket(t, svc, lottery.ID, "02:00 PM", "123456", 1)

	clk.Advance(30 * 24 * time.Hour)
	stats, err := svc.Purge(context.Background())
	if err != nil || stats.Total() != 0 {
		t.Errorf("Purge() with zero horizons = %+v, %v", stats, err)
	}
	if len(svc.Sales()) != 1 {
		t.Error("Sale purged despite disabled retention")
	}
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		svc.RunSweeper(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunSweeper did not stop")
	}
}
