// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/testutil"
	"github.com/shopspring/decimal"
)

// TestFullSalesWorkflow tests the complete end-to-end workflow:
// 1. Create lottery
// 2. Sell tickets
// 3. Register the draw result
// 4. List winners
// 5. Pay a winner
// 6. Correct the result
// 7. Verify a sale
func TestFullSalesWorkflow(t *testing.T) {
	svc, _ := testutil.SetupTestHub(t)
	cfg := testutil.GetTestConfig()
	catalogHandler := NewCatalogHandler(svc, cfg)
	salesHandler := NewSalesHandler(svc, cfg)
	resultsHandler := NewResultsHandler(svc, cfg)
	winnersHandler := NewWinnersHandler(svc, cfg)
	verifyHandler := NewVerifyHandler(svc, cfg)

	// Step 1: Create a lottery
	createReq := models.LotteryRequest{
		Name:           "Loto Real",
		Icon:           models.IconCrown,
		NumberOfDigits: 2,
		Cost:           decimal.NewFromInt(20),
		DrawTimes:      []string{"12:55 PM"},
	}
	body, _ := json.Marshal(createReq)
	req := httptest.NewRequest("POST", "/lotteries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	catalogHandler.CreateLottery(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Create lottery failed: %d - %s", w.Code, w.Body.String())
	}
	var lottery models.Lottery
	json.NewDecoder(w.Body).Decode(&lottery)
	t.Logf("Step 1 - Created lottery: %s", lottery.ID)

	// Step 2: Sell three tickets
	numbers := []string{"07", "42", "99"}
	saleIDs := make(map[string]string, len(numbers))
	for _, number := range numbers {
		saleReq := models.CreateSaleRequest{
			Draws:        []models.DrawRef{{LotteryID: lottery.ID, DrawTime: "12:55 PM"}},
			CustomerName: "Customer " + number,
			Tickets:      []models.TicketLine{{TicketNumber: number, Fractions: 2}},
		}
		req := testutil.MakeRequest("POST", "/sales", saleReq, nil)
		w := httptest.NewRecorder()
		salesHandler.CreateSale(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Step 2 - Sale of %s failed: %d - %s", number, w.Code, w.Body.String())
		}
		var sale models.Sale
		json.NewDecoder(w.Body).Decode(&sale)
		if !sale.TotalCost.Equal(decimal.NewFromInt(40)) {
			t.Errorf("Step 2 - Expected total 40, got %s", sale.TotalCost)
		}
		saleIDs[number] = sale.ID
	}
	t.Logf("Step 2 - Sold %d tickets", len(saleIDs))

	// Step 3: Register the result
	req = testutil.MakeRequest("POST", "/results", models.AddResultRequest{
		LotteryID: lottery.ID,
		DrawTime:  "12:55 PM",
		Prizes:    []string{"42", "07", "13"},
	}, nil)
	w = httptest.NewRecorder()
	resultsHandler.AddResult(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("Step 3 - Add result failed: %d - %s", w.Code, w.Body.String())
	}
	var result models.ResultResponse
	json.NewDecoder(w.Body).Decode(&result)
	if len(result.Winners) != 2 {
		t.Fatalf("Step 3 - Expected 2 winners, got %d", len(result.Winners))
	}

	// Step 4: List winners
	req = testutil.MakeRequest("GET", "/winners?date="+testDate, nil, nil)
	w = httptest.NewRecorder()
	winnersHandler.ListWinners(w, req)

	var winners models.WinnersResponse
	json.NewDecoder(w.Body).Decode(&winners)
	tiers := make(map[string]int)
	var firstPrizeID string
	for _, v := range winners.Winners {
		tiers[v.Winner.TicketNumber] = v.Winner.PrizeTier
		if v.Winner.PrizeTier == 1 {
			firstPrizeID = v.Winner.ID
		}
	}
	if tiers["42"] != 1 || tiers["07"] != 2 {
		t.Errorf("Step 4 - Unexpected tiers: %v", tiers)
	}
	if _, ok := tiers["99"]; ok {
		t.Error("Step 4 - 99 should not win")
	}

	// Step 5: Pay first prize
	req = testutil.MakeRequest("POST", "/winners/"+url.PathEscape(firstPrizeID)+"/pay", nil, nil)
	req.SetPathValue("id", firstPrizeID)
	w = httptest.NewRecorder()
	winnersHandler.MarkPaid(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 5 - Pay failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 6: Correct the second prize to 99
	req = resultRequest("PUT", testDate, lottery.ID, "12:55 PM", models.UpdateResultRequest{Prizes: []string{"42", "99", "13"}})
	w = httptest.NewRecorder()
	resultsHandler.UpdateResult(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 6 - Update result failed: %d - %s", w.Code, w.Body.String())
	}

	paid := true
	paidWinners := svc.Winners(hub.WinnerFilter{Paid: &paid})
	if len(paidWinners) != 1 || paidWinners[0].Winner.ID != firstPrizeID {
		t.Errorf("Step 6 - Paid winner lost: %+v", paidWinners)
	}
	all := svc.Winners(hub.WinnerFilter{})
	numbersWon := make(map[string]bool)
	for _, v := range all {
		numbersWon[v.Winner.TicketNumber] = true
	}
	if len(all) != 2 || !numbersWon["42"] || !numbersWon["99"] || numbersWon["07"] {
		t.Errorf("Step 6 - Unexpected winners after correction: %v", numbersWon)
	}

	// Step 7: Verify a sale
	req = testutil.MakeRequest("GET", "/verify?id="+saleIDs["99"], nil, nil)
	w = httptest.NewRecorder()
	verifyHandler.Verify(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Verify failed: %d - %s", w.Code, w.Body.String())
	}
	var v models.Verification
	json.NewDecoder(w.Body).Decode(&v)
	if v.CustomerName != "Customer 99" || v.LotteryName != "Loto Real" {
		t.Errorf("Step 7 - Unexpected verification: %+v", v)
	}
}

func TestDeletedLotteryShowsNA(t *testing.T) {
	svc, _ := testutil.SetupTestHub(t)
	cfg := testutil.GetTestConfig()
	catalogHandler := NewCatalogHandler(svc, cfg)
	winnersHandler := NewWinnersHandler(svc, cfg)
	verifyHandler := NewVerifyHandler(svc, cfg)

	lottery := testutil.CreateTestLottery(t, svc, "Temporal")
	sale := testutil.CreateTestSale(t, svc, lottery.ID, "02:00 PM", "313131", 1)
	testutil.AddTestResult(t, svc, lottery.ID, "02:00 PM", "313131")

	req := testutil.MakeRequest("DELETE", "/lotteries/"+lottery.ID, nil, nil)
	req.SetPathValue("id", lottery.ID)
	w := httptest.NewRecorder()
	catalogHandler.DeleteLottery(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	req = testutil.MakeRequest("GET", "/winners", nil, nil)
	w = httptest.NewRecorder()
	winnersHandler.ListWinners(w, req)
	var winners models.WinnersResponse
	testutil.AssertJSON(t, w, &winners)
	if len(winners.Winners) != 1 || winners.Winners[0].LotteryName != models.NotAvailable {
		t.Errorf("Expected one winner with N/A lottery, got %+v", winners.Winners)
	}

	req = testutil.MakeRequest("GET", "/verify?id="+sale.ID, nil, nil)
	w = httptest.NewRecorder()
	verifyHandler.Verify(w, req)
	var v models.Verification
	testutil.AssertJSON(t, w, &v)
	if v.LotteryName != models.NotAvailable {
		t.Errorf("Expected N/A lottery name, got %q", v.LotteryName)
	}
}
