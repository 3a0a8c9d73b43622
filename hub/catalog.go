// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"log/slog"
	"slices"

	"github.com/danielhkuo/lotto-hub/auth"
	"github.com/danielhkuo/lotto-hub/models"
)

func findLottery(lotteries []models.Lottery, id string) (models.Lottery, bool) {
	for _, l := range lotteries {
		if l.ID == id {
			return l, true
		}
	}
	return models.Lottery{}, false
}

func findSpecialPlay(plays []models.SpecialPlay, id string) (models.SpecialPlay, bool) {
	for _, p := range plays {
		if p.ID == id {
			return p, true
		}
	}
	return models.SpecialPlay{}, false
}

// Lotteries returns the catalog in creation order.
func (s *Service) Lotteries() []models.Lottery {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.st.lotteries)
}

func (s *Service) Lottery(id string) (models.Lottery, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := findLottery(s.st.lotteries, id)
	if !ok {
		return models.Lottery{}, ErrNotFound
	}
	return l, nil
}

func (s *Service) CreateLottery(ctx context.Context, req models.LotteryRequest) (models.Lottery, error) {
	id, err := auth.NewID()
	if err != nil {
		return models.Lottery{}, err
	}
	lottery, err := newLottery(id, req)
	if err != nil {
		return models.Lottery{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	next.lotteries = append(next.lotteries, lottery)
	if err := s.commit(ctx, "create lottery", next, CollectionLotteries); err != nil {
		return models.Lottery{}, err
	}

	slog.Info("lottery created", "lottery_id", id, "name", lottery.Name)
	return lottery, nil
}

// UpdateLottery replaces a lottery's definition. Draw times it no longer
// has are removed from special plays that targeted them, and plays whose
// digit count no longer matches lose the lottery altogether.
func (s *Service) UpdateLottery(ctx context.Context, id string, req models.LotteryRequest) (models.Lottery, error) {
	lottery, err := newLottery(id, req)
	if err != nil {
		return models.Lottery{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.st.lotteries, func(l models.Lottery) bool { return l.ID == id })
	if idx < 0 {
		return models.Lottery{}, ErrNotFound
	}

	next := s.st.clone()
	next.lotteries[idx] = lottery
	next.specialPlays = pruneTargets(next.specialPlays, func(p models.SpecialPlay, t models.SpecialPlayTarget) models.SpecialPlayTarget {
		if t.LotteryID != id {
			return t
		}
		if p.NumberOfDigits != lottery.NumberOfDigits {
			return models.SpecialPlayTarget{LotteryID: id}
		}
		kept := make([]string, 0, len(t.DrawTimes))
		for _, dt := range t.DrawTimes {
			if lottery.HasDrawTime(dt) {
				kept = append(kept, dt)
			}
		}
		return models.SpecialPlayTarget{LotteryID: t.LotteryID, DrawTimes: kept}
	})

	if err := s.commit(ctx, "update lottery", next, CollectionLotteries, CollectionSpecialPlays); err != nil {
		return models.Lottery{}, err
	}

	slog.Info("lottery updated", "lottery_id", id)
	return lottery, nil
}

// DeleteLottery removes a lottery and strips it from every special play.
// Sales, results and winners that reference it are kept.
func (s *Service) DeleteLottery(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.st.lotteries, func(l models.Lottery) bool { return l.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := s.st.clone()
	next.lotteries = slices.Delete(next.lotteries, idx, idx+1)
	next.specialPlays = pruneTargets(next.specialPlays, func(_ models.SpecialPlay, t models.SpecialPlayTarget) models.SpecialPlayTarget {
		if t.LotteryID == id {
			return models.SpecialPlayTarget{LotteryID: id}
		}
		return t
	})

	if err := s.commit(ctx, "delete lottery", next, CollectionLotteries, CollectionSpecialPlays); err != nil {
		return err
	}

	slog.Info("lottery deleted", "lottery_id", id)
	return nil
}

// pruneTargets rewrites every special play target with fn and drops
// targets left without draw times. Plays keep their identity even when no
// target remains, so they can be re-pointed by an update.
func pruneTargets(plays []models.SpecialPlay, fn func(models.SpecialPlay, models.SpecialPlayTarget) models.SpecialPlayTarget) []models.SpecialPlay {
	out := make([]models.SpecialPlay, len(plays))
	for i, p := range plays {
		targets := make([]models.SpecialPlayTarget, 0, len(p.AppliesTo))
		for _, t := range p.AppliesTo {
			t = fn(p, t)
			if len(t.DrawTimes) > 0 {
				targets = append(targets, t)
			}
		}
		p.AppliesTo = targets
		out[i] = p
	}
	return out
}

// SpecialPlays returns all special plays in creation order.
func (s *Service) SpecialPlays() []models.SpecialPlay {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.st.specialPlays)
}

func (s *Service) SpecialPlay(id string) (models.SpecialPlay, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := findSpecialPlay(s.st.specialPlays, id)
	if !ok {
		return models.SpecialPlay{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) CreateSpecialPlay(ctx context.Context, req models.SpecialPlayRequest) (models.SpecialPlay, error) {
	id, err := auth.NewID()
	if err != nil {
		return models.SpecialPlay{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	play, err := newSpecialPlay(id, req, s.st.lotteries)
	if err != nil {
		return models.SpecialPlay{}, err
	}

	next := s.st.clone()
	next.specialPlays = append(next.specialPlays, play)
	if err := s.commit(ctx, "create special play", next, CollectionSpecialPlays); err != nil {
		return models.SpecialPlay{}, err
	}

	slog.Info("special play created", "special_play_id", id, "name", play.Name)
	return play, nil
}

func (s *Service) UpdateSpecialPlay(ctx context.Context, id string, req models.SpecialPlayRequest) (models.SpecialPlay, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.st.specialPlays, func(p models.SpecialPlay) bool { return p.ID == id })
	if idx < 0 {
		return models.SpecialPlay{}, ErrNotFound
	}

	play, err := newSpecialPlay(id, req, s.st.lotteries)
	if err != nil {
		return models.SpecialPlay{}, err
	}

	next := s.st.clone()
	next.specialPlays[idx] = play
	if err := s.commit(ctx, "update special play", next, CollectionSpecialPlays); err != nil {
		return models.SpecialPlay{}, err
	}

	slog.Info("special play updated", "special_play_id", id)
	return play, nil
}

func (s *Service) DeleteSpecialPlay(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := slices.IndexFunc(s.st.specialPlays, func(p models.SpecialPlay) bool { return p.ID == id })
	if idx < 0 {
		return ErrNotFound
	}

	next := s.st.clone()
	next.specialPlays = slices.Delete(next.specialPlays, idx, idx+1)
	if err := s.commit(ctx, "delete special play", next, CollectionSpecialPlays); err != nil {
		return err
	}

	slog.Info("special play deleted", "special_play_id", id)
	return nil
}
