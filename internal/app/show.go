package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/cdfisher/osrs-tools/internal/calc"
	"github.com/cdfisher/osrs-tools/internal/highscores"
)

// Highscores prints a player's skills, activities and bosses.
func (a *App) Highscores(ctx context.Context, opts HighscoresOptions) error {
	snap, err := a.lookup(ctx, opts.Player, opts.Category)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.Out, "%s (%s) fetched %s\n\n", snap.Player(), snap.Category(), timestamp(snap.FetchedAt()))

	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Skill\tRank\tLevel\tExperience")
	for _, e := range highscores.Skills {
		r, _ := snap.Skill(e.Key)
		fmt.Fprintf(writer, "%s\t%s\t%d\t%d\n", e.Name, formatRank(r.Rank), r.Level, r.Experience)
	}
	writer.Flush()

	fmt.Fprintln(a.Out)
	writer = tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Activity\tRank\tScore")
	for _, e := range highscores.Activities {
		r, _ := snap.Activity(e.Key)
		if r.Rank == highscores.Unranked && !opts.All {
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", e.Name, formatRank(r.Rank), formatRank(r.Score))
	}
	for _, e := range highscores.Bosses {
		r, _ := snap.Boss(e.Key)
		if r.Rank == highscores.Unranked && !opts.All {
			continue
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\n", e.Name, formatRank(r.Rank), formatRank(r.KillCount))
	}
	writer.Flush()

	if unknown := snap.Unrecognized(); len(unknown) > 0 {
		names := make([]string, len(unknown))
		for i, u := range unknown {
			names[i] = u.Name
		}
		fmt.Fprintf(a.Out, "\nskipped unrecognized entries: %s\n", sanitizeInline(strings.Join(names, ", ")))
	}
	return nil
}

// Ironman prints whether a player is on the ironman board.
func (a *App) Ironman(ctx context.Context, player string) error {
	iron, err := a.newHighscores().IsIronman(ctx, player)
	if err != nil {
		return err
	}
	status := "not an ironman"
	if iron {
		status = "ironman"
	}
	fmt.Fprintf(a.Out, "%s: %s\n", player, status)
	return nil
}

// Combat prints a player's combat level.
func (a *App) Combat(ctx context.Context, player, category string) error {
	snap, err := a.lookup(ctx, player, category)
	if err != nil {
		return err
	}
	levels := calc.LevelsFrom(snap)
	fmt.Fprintf(a.Out, "%s: combat level %d\n", snap.Player(), calc.CombatLevel(levels))
	return nil
}

// EHB prints a player's efficient hours bossed with a per-boss breakdown.
func (a *App) EHB(ctx context.Context, opts EHBOptions) error {
	hs := a.newHighscores()

	var ironman bool
	switch strings.ToLower(opts.Account) {
	case "", "auto":
		iron, err := hs.IsIronman(ctx, opts.Player)
		if err != nil {
			return err
		}
		ironman = iron
	case "main":
	case "ironman", "iron":
		ironman = true
	default:
		return fmt.Errorf("unknown account type %q (expected auto, main or ironman)", opts.Account)
	}

	snap, err := a.lookup(ctx, opts.Player, opts.Category)
	if err != nil {
		return err
	}

	kcs := snap.KillCounts()
	parts, err := calc.Breakdown(kcs, ironman)
	if err != nil {
		return err
	}
	total, err := calc.EHB(kcs, ironman)
	if err != nil {
		return err
	}

	account := "main"
	if ironman {
		account = "ironman"
	}

	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Boss\tKills\tHours")
	for _, p := range parts {
		entryName := string(p.Boss)
		if e, ok := bossEntry(p.Boss); ok {
			entryName = e.Name
		}
		fmt.Fprintf(writer, "%s\t%d\t%s\n", entryName, p.KillCount, formatDecimal(p.Hours, 2))
	}
	writer.Flush()
	fmt.Fprintf(a.Out, "\n%s (%s): %s EHB\n", snap.Player(), account, formatDecimal(total, 2))
	return nil
}

func (a *App) lookup(ctx context.Context, player, category string) (*highscores.Snapshot, error) {
	if strings.TrimSpace(player) == "" {
		return nil, errors.New("a player name is required")
	}
	c, err := a.Config.ResolveCategory(category)
	if err != nil {
		return nil, err
	}
	return a.newHighscores().Lookup(ctx, player, c)
}

func bossEntry(key highscores.Key) (highscores.Entry, bool) {
	for _, e := range highscores.Bosses {
		if e.Key == key {
			return e, true
		}
	}
	return highscores.Entry{}, false
}

func formatRank(v int64) string {
	if v == highscores.Unranked {
		return "-"
	}
	return strconv.FormatInt(v, 10)
}

func formatDecimal(d decimal.Decimal, places int32) string {
	return d.StringFixed(places)
}

func sanitizeInline(v string) string {
	cleaned := strings.ReplaceAll(v, "\n", " ")
	cleaned = strings.ReplaceAll(cleaned, "\r", " ")
	return cleaned
}
