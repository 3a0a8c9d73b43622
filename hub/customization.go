// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"context"
	"log/slog"

	"github.com/danielhkuo/lotto-hub/models"
)

func (s *Service) Customization() models.AppCustomization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.customization
}

func (s *Service) UpdateCustomization(ctx context.Context, c models.AppCustomization) (models.AppCustomization, error) {
	valid, err := validateCustomization(c)
	if err != nil {
		return models.AppCustomization{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.st.clone()
	next.customization = valid
	if err := s.commit(ctx, "update customization", next, CollectionCustomization); err != nil {
		return models.AppCustomization{}, err
	}

	slog.Info("customization updated", "app_name", valid.AppName)
	return valid, nil
}
