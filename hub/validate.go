// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/resolver"
	"github.com/shopspring/decimal"
)

const (
	MaxDigits        = 10
	MaxDrawTimes     = 4
	MaxAppNameLength = 60

	drawTimeLayout = "03:04 PM"
	DateLayout     = "2006-01-02"
)

var saleIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidSaleID reports whether id can name a sale.
func ValidSaleID(id string) bool {
	return saleIDPattern.MatchString(id)
}

// ParseDate validates a YYYY-MM-DD draw date.
func ParseDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return invalid("date", "must be YYYY-MM-DD")
	}
	return nil
}

func parseDrawTime(s string) (time.Time, error) {
	t, err := time.Parse(drawTimeLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, invalid("draw_times", "%q is not an hh:mm AM/PM time", s)
	}
	return t, nil
}

// normalizeDrawTimes trims, checks and sorts draw times by time of day.
func normalizeDrawTimes(drawTimes []string) ([]string, error) {
	if len(drawTimes) == 0 || len(drawTimes) > MaxDrawTimes {
		return nil, invalid("draw_times", "must have between 1 and %d entries", MaxDrawTimes)
	}

	type entry struct {
		label string
		at    time.Time
	}
	entries := make([]entry, 0, len(drawTimes))
	seen := make(map[string]bool)
	for _, dt := range drawTimes {
		at, err := parseDrawTime(dt)
		if err != nil {
			return nil, err
		}
		label := at.Format(drawTimeLayout)
		if seen[label] {
			return nil, invalid("draw_times", "duplicate draw time %s", label)
		}
		seen[label] = true
		entries = append(entries, entry{label: label, at: at})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].at.Before(entries[j].at) })

	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.label
	}
	return out, nil
}

func validateGame(name string, icon models.Icon, digits int, cost decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return invalid("name", "is required")
	}
	if digits < 1 || digits > MaxDigits {
		return invalid("number_of_digits", "must be between 1 and %d", MaxDigits)
	}
	if !cost.IsPositive() {
		return invalid("cost", "must be greater than zero")
	}
	if err := icon.Validate(); err != nil {
		return invalid("icon", "%v", err)
	}
	return nil
}

func newLottery(id string, req models.LotteryRequest) (models.Lottery, error) {
	if err := validateGame(req.Name, req.Icon, req.NumberOfDigits, req.Cost); err != nil {
		return models.Lottery{}, err
	}
	drawTimes, err := normalizeDrawTimes(req.DrawTimes)
	if err != nil {
		return models.Lottery{}, err
	}
	return models.Lottery{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Icon:           req.Icon.OrDefault(),
		NumberOfDigits: req.NumberOfDigits,
		Cost:           req.Cost,
		DrawTimes:      drawTimes,
	}, nil
}

// newSpecialPlay validates the play against the catalog it will live in.
func newSpecialPlay(id string, req models.SpecialPlayRequest, lotteries []models.Lottery) (models.SpecialPlay, error) {
	if len(req.AppliesTo) == 0 {
		return models.SpecialPlay{}, invalid("applies_to", "must name at least one lottery")
	}
	return buildSpecialPlay(id, req, lotteries)
}

// buildSpecialPlay validates everything but the presence of targets. Stored
// plays can lose all their targets when their lotteries are deleted.
func buildSpecialPlay(id string, req models.SpecialPlayRequest, lotteries []models.Lottery) (models.SpecialPlay, error) {
	if err := validateGame(req.Name, req.Icon, req.NumberOfDigits, req.Cost); err != nil {
		return models.SpecialPlay{}, err
	}

	targets := make([]models.SpecialPlayTarget, 0, len(req.AppliesTo))
	seen := make(map[string]bool)
	for _, target := range req.AppliesTo {
		lottery, ok := findLottery(lotteries, target.LotteryID)
		if !ok {
			return models.SpecialPlay{}, invalid("applies_to", "unknown lottery %q", target.LotteryID)
		}
		if seen[target.LotteryID] {
			return models.SpecialPlay{}, invalid("applies_to", "lottery %q listed twice", target.LotteryID)
		}
		seen[target.LotteryID] = true
		if lottery.NumberOfDigits != req.NumberOfDigits {
			return models.SpecialPlay{}, invalid("number_of_digits", "lottery %q draws %d digits", target.LotteryID, lottery.NumberOfDigits)
		}

		drawTimes, err := normalizeDrawTimes(target.DrawTimes)
		if err != nil {
			return models.SpecialPlay{}, invalid("applies_to", "lottery %q: %v", target.LotteryID, err)
		}
		for _, dt := range drawTimes {
			if !lottery.HasDrawTime(dt) {
				return models.SpecialPlay{}, invalid("applies_to", "lottery %q has no %s draw", target.LotteryID, dt)
			}
		}
		targets = append(targets, models.SpecialPlayTarget{LotteryID: target.LotteryID, DrawTimes: drawTimes})
	}

	return models.SpecialPlay{
		ID:             id,
		Name:           strings.TrimSpace(req.Name),
		Icon:           req.Icon.OrDefault(),
		NumberOfDigits: req.NumberOfDigits,
		Cost:           req.Cost,
		AppliesTo:      targets,
	}, nil
}

// validatePrizes checks a prize list for a lottery with the given number of
// digits. Empty slots are allowed as long as one prize is set; duplicate
// prizes are accepted and resolve to the better tier.
func validatePrizes(prizes []string, digits int) ([]string, error) {
	if len(prizes) == 0 || len(prizes) > resolver.MaxPrizes {
		return nil, invalid("prizes", "must have between 1 and %d entries", resolver.MaxPrizes)
	}

	out := make([]string, len(prizes))
	set := 0
	for i, p := range prizes {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !resolver.IsNumeric(p) || len(p) != digits {
			return nil, invalid("prizes", "prize %d must be %d digits", i+1, digits)
		}
		out[i] = p
		set++
	}
	if set == 0 {
		return nil, invalid("prizes", "at least one prize is required")
	}
	return out, nil
}

func validTicketNumber(number string, digits int) bool {
	return resolver.IsNumeric(number) && len(number) == digits
}

func validateCustomization(c models.AppCustomization) (models.AppCustomization, error) {
	name := strings.TrimSpace(c.AppName)
	if name == "" {
		return models.AppCustomization{}, invalid("app_name", "is required")
	}
	if len([]rune(name)) > MaxAppNameLength {
		return models.AppCustomization{}, invalid("app_name", "must be at most %d characters", MaxAppNameLength)
	}
	if err := c.Logo.Validate(); err != nil {
		return models.AppCustomization{}, invalid("logo", "%v", err)
	}
	return models.AppCustomization{AppName: name, Logo: c.Logo.OrDefault()}, nil
}
