// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/testutil"
)

// TestConcurrentSales verifies that simultaneous sales from several sellers
// are all recorded with distinct ids
func TestConcurrentSales(t *testing.T) {
	svc, _ := testutil.SetupTestHub(t)
	cfg := testutil.GetTestConfig()
	salesHandler := NewSalesHandler(svc, cfg)
	lottery := testutil.CreateTestLottery(t, svc, "Concurrent")

	numSales := 20
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numSales; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			saleReq := models.CreateSaleRequest{
				Draws:   []models.DrawRef{{LotteryID: lottery.ID, DrawTime: "02:00 PM"}},
				Tickets: []models.TicketLine{{TicketNumber: fmt.Sprintf("%06d", idx), Fractions: 1}},
			}
			req := testutil.MakeRequest("POST", "/sales", saleReq, nil)
			w := httptest.NewRecorder()

			salesHandler.CreateSale(w, req)

			if w.Code == http.StatusCreated {
				successCount.Add(1)
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numSales {
		t.Errorf("Expected %d successful sales, got %d", numSales, successCount.Load())
	}

	sales := svc.Sales()
	if len(sales) != numSales {
		t.Fatalf("Expected %d sales stored, got %d", numSales, len(sales))
	}
	seen := make(map[string]bool)
	for _, s := range sales {
		if seen[s.ID] {
			t.Errorf("Duplicate sale id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

// TestConcurrentPayouts verifies that a winner can only be paid once even
// when several cashiers try at the same time
func TestConcurrentPayouts(t *testing.T) {
	svc, _ := testutil.SetupTestHub(t)
	cfg := testutil.GetTestConfig()
	winnersHandler := NewWinnersHandler(svc, cfg)
	lottery := testutil.CreateTestLottery(t, svc, "Concurrent")
	testutil.CreateTestSale(t, svc, lottery.ID, "08:00 PM", "888888", 1)
	res := testutil.AddTestResult(t, svc, lottery.ID, "08:00 PM", "888888")
	winnerID := res.Winners[0].ID

	numAttempts := 10
	var okCount, conflictCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			req := testutil.MakeRequest("POST", "/winners/"+url.PathEscape(winnerID)+"/pay", nil, nil)
			req.SetPathValue("id", winnerID)
			w := httptest.NewRecorder()

			winnersHandler.MarkPaid(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusConflict:
				conflictCount.Add(1)
			}
		}()
	}

	wg.Wait()

	if okCount.Load() != 1 {
		t.Errorf("Expected exactly 1 payout, got %d", okCount.Load())
	}
	if int(conflictCount.Load()) != numAttempts-1 {
		t.Errorf("Expected %d conflicts, got %d", numAttempts-1, conflictCount.Load())
	}
}

// TestConcurrentResultsAndSales runs result registration alongside sales on
// other draws and checks winners only come from the registered draw
func TestConcurrentResultsAndSales(t *testing.T) {
	svc, _ := testutil.SetupTestHub(t)
	cfg := testutil.GetTestConfig()
	salesHandler := NewSalesHandler(svc, cfg)
	resultsHandler := NewResultsHandler(svc, cfg)
	lottery := testutil.CreateTestLottery(t, svc, "Concurrent")
	testutil.CreateTestSale(t, svc, lottery.ID, "02:00 PM", "123123", 1)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/sales", models.CreateSaleRequest{
				Draws:   []models.DrawRef{{LotteryID: lottery.ID, DrawTime: "08:00 PM"}},
				Tickets: []models.TicketLine{{TicketNumber: "123123", Fractions: 1}},
			}, nil)
			salesHandler.CreateSale(httptest.NewRecorder(), req)
		}()
		go func() {
			defer wg.Done()
			req := testutil.MakeRequest("POST", "/results", models.AddResultRequest{
				LotteryID: lottery.ID,
				DrawTime:  "02:00 PM",
				Prizes:    []string{"123123"},
			}, nil)
			resultsHandler.AddResult(httptest.NewRecorder(), req)
		}()
	}
	wg.Wait()

	winners := svc.Winners(hub.WinnerFilter{})
	if len(winners) != 1 {
		t.Fatalf("Expected re-registration to keep a single winner, got %d", len(winners))
	}
	if winners[0].Winner.DrawTime != "02:00 PM" {
		t.Errorf("Winner from wrong draw: %+v", winners[0].Winner)
	}
	if got := len(svc.SalesByDraw(lottery.ID, "08:00 PM")); got != 10 {
		t.Errorf("Expected 10 evening sales, got %d", got)
	}
}
