// Package calc derives combat level and efficient hours bossed from highscores data.
package calc

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cdfisher/osrs-tools/internal/apperr"
	"github.com/cdfisher/osrs-tools/internal/highscores"
)

// Levels are the skill levels that feed the combat formula.
type Levels struct {
	Attack    int
	Defence   int
	Strength  int
	Hitpoints int
	Ranged    int
	Prayer    int
	Magic     int
}

// LevelsFrom reads the combat skills of a snapshot.
func LevelsFrom(s *highscores.Snapshot) Levels {
	level := func(key highscores.Key) int {
		r, _ := s.Skill(key)
		return r.Level
	}
	return Levels{
		Attack:    level("attack"),
		Defence:   level("defence"),
		Strength:  level("strength"),
		Hitpoints: level("hitpoints"),
		Ranged:    level("ranged"),
		Prayer:    level("prayer"),
		Magic:     level("magic"),
	}
}

var (
	quarter    = decimal.RequireFromString("0.25")
	styleRatio = decimal.NewFromInt(13).Div(decimal.NewFromInt(40))
)

// CombatLevel applies the in-game combat formula.
func CombatLevel(l Levels) int {
	base := quarter.Mul(decimal.NewFromInt(int64(l.Defence + l.Hitpoints + l.Prayer/2)))

	melee := styleRatio.Mul(decimal.NewFromInt(int64(l.Attack + l.Strength)))
	ranged := styleRatio.Mul(decimal.NewFromInt(int64(l.Ranged * 3 / 2)))
	magic := styleRatio.Mul(decimal.NewFromInt(int64(l.Magic * 3 / 2)))

	return int(base.Add(decimal.Max(melee, ranged, magic)).Floor().IntPart())
}

// BossHours is one boss's contribution to EHB.
type BossHours struct {
	Boss      highscores.Key
	KillCount int64
	Hours     decimal.Decimal
}

// BossEHB returns kc divided by the boss's kill rate. Bosses that do not count
// for the account type, and non-positive kill counts, contribute zero.
func BossEHB(boss highscores.Key, kc int64, ironman bool) (decimal.Decimal, error) {
	rate, ok := EHBRates[boss]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no ehb rate for boss %q", apperr.ErrNotFound, boss)
	}
	r := rate.forAccount(ironman)
	if kc <= 0 || r <= 0 {
		return decimal.Zero, nil
	}
	return decimal.NewFromInt(kc).Div(decimal.NewFromFloat(r)), nil
}

// Breakdown returns per-boss hours for kill counts in canonical boss order,
// skipping bosses that contribute nothing.
func Breakdown(killCounts []int64, ironman bool) ([]BossHours, error) {
	if len(killCounts) != len(highscores.Bosses) {
		return nil, fmt.Errorf("%w: expected %d kill counts, got %d", apperr.ErrConfiguration, len(highscores.Bosses), len(killCounts))
	}

	var out []BossHours
	for i, key := range highscores.Keys(highscores.Bosses) {
		hours, err := BossEHB(key, killCounts[i], ironman)
		if err != nil {
			return nil, err
		}
		if hours.IsPositive() {
			out = append(out, BossHours{Boss: key, KillCount: killCounts[i], Hours: hours})
		}
	}
	return out, nil
}

// EHB sums efficient hours bossed over kill counts in canonical boss order,
// rounded to two decimal places.
func EHB(killCounts []int64, ironman bool) (decimal.Decimal, error) {
	parts, err := Breakdown(killCounts, ironman)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p.Hours)
	}
	return total.Round(2), nil
}
