// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/lotto-hub/auth"
	"github.com/danielhkuo/lotto-hub/cliparse"
	"github.com/danielhkuo/lotto-hub/hub"
	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/store"
	"github.com/shopspring/decimal"
)

// TestTime is the fixed clock of hubs built by NewTestHub.
var TestTime = time.Date(2025, 3, 10, 13, 30, 0, 0, time.UTC)

// SetupTestHub creates an empty hub on an in-memory store, with dates
// computed in UTC and the clock frozen at TestTime.
func SetupTestHub(t *testing.T) (*hub.Service, *store.Memory) {
	t.Helper()

	mem := store.NewMemory()
	svc := hub.New(mem, hub.Options{
		Location:  time.UTC,
		Retention: hub.DefaultRetention(),
		Now:       func() time.Time { return TestTime },
	})
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("Failed to load test hub: %v", err)
	}
	return svc, mem
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:        3318,
		StoreType:   cliparse.StoreMemory,
		TokenSecret: "test-token-secret",
		Timezone:    "UTC",
	}
}

// AuthHeader returns an Authorization header for a fresh token with role
func AuthHeader(t *testing.T, cfg cliparse.Config, role string) map[string]string {
	t.Helper()

	token, err := auth.IssueToken("test-"+role, role, time.Hour, cfg.TokenSecret, time.Now())
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return map[string]string{"Authorization": "Bearer " + token}
}

// CreateTestLottery adds a 6-digit lottery costing 25 with 02:00 PM and
// 08:00 PM draws.
func CreateTestLottery(t *testing.T, svc *hub.Service, name string) models.Lottery {
	t.Helper()

	l, err := svc.CreateLottery(context.Background(), models.LotteryRequest{
		Name:           name,
		Icon:           models.IconClover,
		NumberOfDigits: 6,
		Cost:           decimal.NewFromInt(25),
		DrawTimes:      []string{"02:00 PM", "08:00 PM"},
	})
	if err != nil {
		t.Fatalf("Failed to create test lottery: %v", err)
	}
	return l
}

// CreateTestSale sells one ticket on a single draw
func CreateTestSale(t *testing.T, svc *hub.Service, lotteryID, drawTime, number string, fractions int) models.Sale {
	t.Helper()

	sale, err := svc.CreateSale(context.Background(), models.CreateSaleRequest{
		Draws:         []models.DrawRef{{LotteryID: lotteryID, DrawTime: drawTime}},
		CustomerName:  "Test Customer",
		CustomerPhone: "555-0100",
		Tickets:       []models.TicketLine{{TicketNumber: number, Fractions: fractions}},
	})
	if err != nil {
		t.Fatalf("Failed to create test sale: %v", err)
	}
	return sale
}

// AddTestResult registers today's prizes for a draw
func AddTestResult(t *testing.T, svc *hub.Service, lotteryID, drawTime string, prizes ...string) models.ResultResponse {
	t.Helper()

	res, err := svc.AddResult(context.Background(), models.AddResultRequest{
		LotteryID: lotteryID,
		DrawTime:  drawTime,
		Prizes:    prizes,
	})
	if err != nil {
		t.Fatalf("Failed to add test result: %v", err)
	}
	return res
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
