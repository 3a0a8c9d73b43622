// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package hub

import (
	"encoding/json"
	"strings"

	"github.com/danielhkuo/lotto-hub/models"
	"github.com/danielhkuo/lotto-hub/resolver"
)

// Each decoder unmarshals one collection into st and returns how many
// records it dropped. Records are decoded one by one so a single bad entry
// does not cost the rest of the collection.

func decodeList[T any](data []byte, keep func(T) bool) ([]T, int, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, err
	}

	out := make([]T, 0, len(raw))
	dropped := 0
	for _, r := range raw {
		var v T
		if err := json.Unmarshal(r, &v); err != nil || !keep(v) {
			dropped++
			continue
		}
		out = append(out, v)
	}
	return out, dropped, nil
}

func lotteryRequest(l models.Lottery) models.LotteryRequest {
	return models.LotteryRequest{
		Name:           l.Name,
		Icon:           l.Icon.OrDefault(),
		NumberOfDigits: l.NumberOfDigits,
		Cost:           l.Cost,
		DrawTimes:      l.DrawTimes,
	}
}

func decodeLotteries(data []byte, st *state) (int, error) {
	seen := make(map[string]bool)
	lotteries, dropped, err := decodeList(data, func(l models.Lottery) bool {
		if l.ID == "" || seen[l.ID] {
			return false
		}
		if _, err := newLottery(l.ID, lotteryRequest(l)); err != nil {
			return false
		}
		seen[l.ID] = true
		return true
	})
	if err != nil {
		return 0, err
	}

	// Normalize draw times and icons the same way new entries are
	for i, l := range lotteries {
		lotteries[i], _ = newLottery(l.ID, lotteryRequest(l))
	}
	st.lotteries = lotteries
	return dropped, nil
}

func specialPlayRequest(p models.SpecialPlay) models.SpecialPlayRequest {
	return models.SpecialPlayRequest{
		Name:           p.Name,
		Icon:           p.Icon.OrDefault(),
		NumberOfDigits: p.NumberOfDigits,
		Cost:           p.Cost,
		AppliesTo:      p.AppliesTo,
	}
}

// decodeSpecialPlays runs after decodeLotteries so targets can be checked
// against the loaded catalog.
func decodeSpecialPlays(data []byte, st *state) (int, error) {
	seen := make(map[string]bool)
	plays, dropped, err := decodeList(data, func(p models.SpecialPlay) bool {
		if p.ID == "" || seen[p.ID] {
			return false
		}
		if _, err := buildSpecialPlay(p.ID, specialPlayRequest(p), st.lotteries); err != nil {
			return false
		}
		seen[p.ID] = true
		return true
	})
	if err != nil {
		return 0, err
	}

	for i, p := range plays {
		plays[i], _ = buildSpecialPlay(p.ID, specialPlayRequest(p), st.lotteries)
	}
	st.specialPlays = plays
	return dropped, nil
}

func decodeSales(data []byte, st *state) (int, error) {
	seen := make(map[string]bool)
	sales, dropped, err := decodeList(data, func(s models.Sale) bool {
		if !ValidSaleID(s.ID) || seen[s.ID] || len(s.Draws) == 0 || len(s.Tickets) == 0 || s.SoldAt.IsZero() {
			return false
		}
		for _, t := range s.Tickets {
			if t.ID == "" || t.TicketNumber == "" {
				return false
			}
		}
		seen[s.ID] = true
		return true
	})
	if err != nil {
		return 0, err
	}
	st.sales = sales
	return dropped, nil
}

func decodeResults(data []byte, st *state) (int, error) {
	var register models.ResultRegister
	if err := json.Unmarshal(data, &register); err != nil {
		return 0, err
	}

	dropped := 0
	clean := models.ResultRegister{}
	for date, byLottery := range register {
		if ParseDate(date) != nil {
			dropped += countResults(byLottery)
			continue
		}
		for lotteryID, byDraw := range byLottery {
			for drawTime, prizes := range byDraw {
				if lotteryID == "" || !usablePrizes(prizes) {
					dropped++
					continue
				}
				if _, err := parseDrawTime(drawTime); err != nil {
					dropped++
					continue
				}
				setResult(clean, resolver.DrawKey{Date: date, LotteryID: lotteryID, DrawTime: drawTime}, prizes)
			}
		}
	}

	st.results = clean
	return dropped, nil
}

func countResults(byLottery map[string]map[string][]string) int {
	n := 0
	for _, byDraw := range byLottery {
		n += len(byDraw)
	}
	return n
}

func usablePrizes(prizes []string) bool {
	if len(prizes) == 0 || len(prizes) > resolver.MaxPrizes {
		return false
	}
	for _, p := range prizes {
		if strings.TrimSpace(p) != "" {
			return true
		}
	}
	return false
}

func decodeWinners(data []byte, st *state) (int, error) {
	seen := make(map[string]bool)
	winners, dropped, err := decodeList(data, func(w models.Winner) bool {
		if w.ID == "" || seen[w.ID] || w.LotteryID == "" || w.DrawTime == "" || ParseDate(w.DrawDate) != nil {
			return false
		}
		if w.PrizeTier < 1 || w.PrizeTier > resolver.MaxPrizes {
			return false
		}
		seen[w.ID] = true
		return true
	})
	if err != nil {
		return 0, err
	}
	st.winners = winners
	return dropped, nil
}

func decodeCustomization(data []byte, st *state) (int, error) {
	var c models.AppCustomization
	if err := json.Unmarshal(data, &c); err != nil {
		return 0, err
	}
	valid, err := validateCustomization(models.AppCustomization{AppName: c.AppName, Logo: c.Logo.OrDefault()})
	if err != nil {
		return 1, nil
	}
	st.customization = valid
	return 0, nil
}
