// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/store"
)

// Persisted collection names
const (
	CollectionSales         = "sales"
	CollectionResults       = "winningResults"
	CollectionWinners       = "winners"
	CollectionLotteries     = "lotteries"
	CollectionSpecialPlays  = "specialPlays"
	CollectionCustomization = "appCustomization"
)

// Retention holds the purge horizons. A zero horizon keeps records forever.
type Retention struct {
	Sales   time.Duration
	Winners time.Duration
	Results time.Duration
}

// DefaultRetention keeps results for a week, sales for 12 hours and
// winners for a day after they were resolved.
func DefaultRetention() Retention {
	return Retention{
		Sales:   12 * time.Hour,
		Winners: 24 * time.Hour,
		Results: 7 * 24 * time.Hour,
	}
}

type Options struct {
	// Location decides which calendar date a draw belongs to.
	Location  *time.Location
	Retention Retention
	Now       func() time.Time
}

type state struct {
	lotteries     []models.Lottery
	specialPlays  []models.SpecialPlay
	sales         []models.Sale
	results       models.ResultRegister
	winners       []models.Winner
	customization models.AppCustomization
}

func emptyState() state {
	return state{
		lotteries:     []models.Lottery{},
		specialPlays:  []models.SpecialPlay{},
		sales:         []models.Sale{},
		results:       models.ResultRegister{},
		winners:       []models.Winner{},
		customization: models.DefaultCustomization(),
	}
}

// clone copies every collection so the copy can be changed without
// touching readers of the original.
func (s state) clone() state {
	next := state{
		lotteries:     slices.Clone(s.lotteries),
		specialPlays:  slices.Clone(s.specialPlays),
		sales:         slices.Clone(s.sales),
		results:       make(models.ResultRegister, len(s.results)),
		winners:       slices.Clone(s.winners),
		customization: s.customization,
	}
	for date, byLottery := range s.results {
		lotteries := make(map[string]map[string][]string, len(byLottery))
		for lotteryID, byDraw := range byLottery {
			draws := make(map[string][]string, len(byDraw))
			for drawTime, prizes := range byDraw {
				draws[drawTime] = slices.Clone(prizes)
			}
			lotteries[lotteryID] = draws
		}
		next.results[date] = lotteries
	}
	return next
}

func (s state) document(name string) any {
	switch name {
	case CollectionSales:
		return s.sales
	case CollectionResults:
		return s.results
	case CollectionWinners:
		return s.winners
	case CollectionLotteries:
		return s.lotteries
	case CollectionSpecialPlays:
		return s.specialPlays
	case CollectionCustomization:
		return s.customization
	}
	panic("hub: unknown collection " + name)
}

// Service owns the application state. Reads run concurrently; mutations
// are serialized and only become visible once the backend accepted them.
type Service struct {
	mu    sync.RWMutex
	store store.Persister
	loc   *time.Location
	now   func() time.Time
	ret   Retention
	st    state
}

func New(p store.Persister, opts Options) *Service {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store: p,
		loc:   opts.Location,
		now:   opts.Now,
		ret:   opts.Retention,
		st:    emptyState(),
	}
}

// Load replaces the in-memory state with the persisted collections.
// Collections that cannot be parsed fall back to their defaults and
// malformed records are dropped; only backend failures are returned.
func (s *Service) Load(ctx context.Context) error {
	next := emptyState()

	loaders := []struct {
		name string
		load func([]byte) (int, error)
	}{
		{CollectionLotteries, func(b []byte) (int, error) { return decodeLotteries(b, &next) }},
		{CollectionSpecialPlays, func(b []byte) (int, error) { return decodeSpecialPlays(b, &next) }},
		{CollectionSales, func(b []byte) (int, error) { return decodeSales(b, &next) }},
		{CollectionResults, func(b []byte) (int, error) { return decodeResults(b, &next) }},
		{CollectionWinners, func(b []byte) (int, error) { return decodeWinners(b, &next) }},
		{CollectionCustomization, func(b []byte) (int, error) { return decodeCustomization(b, &next) }},
	}

	for _, l := range loaders {
		data, err := s.store.Load(ctx, l.name)
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return &StorageError{Op: "load " + l.name, Err: err}
		}

		dropped, err := l.load(data)
		if err != nil {
			slog.Warn("discarding unreadable collection", "collection", l.name, "error", err)
			continue
		}
		if dropped > 0 {
			slog.Warn("dropped malformed records", "collection", l.name, "count", dropped)
		}
	}

	s.mu.Lock()
	s.st = next
	s.mu.Unlock()

	slog.Info("state loaded",
		"lotteries", len(next.lotteries),
		"special_plays", len(next.specialPlays),
		"sales", len(next.sales),
		"result_dates", len(next.results),
		"winners", len(next.winners),
	)
	return nil
}

// commit persists the named collections of next in one batch and, if the
// backend accepts it, makes next the current state. Callers hold s.mu.
func (s *Service) commit(ctx context.Context, op string, next state, changed ...string) error {
	docs := make(map[string][]byte, len(changed))
	for _, name := range changed {
		data, err := json.Marshal(next.document(name))
		if err != nil {
			return &StorageError{Op: op, Err: fmt.Errorf("encode %s: %w", name, err)}
		}
		docs[name] = data
	}

	if err := s.store.Save(ctx, docs); err != nil {
		slog.Error("failed to persist changes", "op", op, "error", err)
		return &StorageError{Op: op, Err: err}
	}

	s.st = next
	return nil
}

// Today is the current draw date in the service's time zone.
func (s *Service) Today() string {
	return s.now().In(s.loc).Format(DateLayout)
}

func (s *Service) dateOf(t time.Time) string {
	return t.In(s.loc).Format(DateLayout)
}

// Location returns the time zone draw dates are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}
