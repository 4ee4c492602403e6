package app

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strconv"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/cdfisher/osrs-tools/internal/highscores"
)

// Export writes a player's highscores as CSV and/or a PNG chart of skill levels.
func (a *App) Export(ctx context.Context, opts ExportOptions) error {
	if opts.CSVPath == "" && opts.PNGPath == "" {
		return errors.New("at least one of --csv or --png must be provided")
	}

	snap, err := a.lookup(ctx, opts.Player, opts.Category)
	if err != nil {
		return err
	}

	if opts.CSVPath != "" {
		path := a.exportPath(opts.CSVPath)
		if err := writeSnapshotCSV(path, snap); err != nil {
			return err
		}
		a.Logger.Info().Str("path", path).Msg("csv written")
	}

	if opts.PNGPath != "" {
		path := a.exportPath(opts.PNGPath)
		if err := writeLevelsPNG(path, snap); err != nil {
			return err
		}
		a.Logger.Info().Str("path", path).Msg("chart written")
	}

	return nil
}

// exportPath places relative paths under export.dir.
func (a *App) exportPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(a.Config.ResolveExportDir(""), path)
}

func writeSnapshotCSV(path string, snap *highscores.Snapshot) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"kind", "key", "name", "rank", "level", "value"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, e := range highscores.Skills {
		r, _ := snap.Skill(e.Key)
		record := []string{string(highscores.KindSkill), string(e.Key), e.Name, formatRank(r.Rank), strconv.Itoa(r.Level), strconv.FormatInt(r.Experience, 10)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	for _, e := range highscores.Activities {
		r, _ := snap.Activity(e.Key)
		record := []string{string(highscores.KindActivity), string(e.Key), e.Name, formatRank(r.Rank), "", formatRank(r.Score)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	for _, e := range highscores.Bosses {
		r, _ := snap.Boss(e.Key)
		record := []string{string(highscores.KindBoss), string(e.Key), e.Name, formatRank(r.Rank), "", formatRank(r.KillCount)}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func writeLevelsPNG(path string, snap *highscores.Snapshot) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	levels := snap.Levels()
	// Overall is an aggregate and would dwarf the skill bars.
	bars := make([]chart.Value, 0, len(highscores.Skills)-1)
	for i, e := range highscores.Skills[1:] {
		bars = append(bars, chart.Value{Label: e.Name, Value: float64(levels[i+1])})
	}

	const barWidth, barSpacing = 48, 16
	graph := chart.BarChart{
		Title:      snap.Player() + " skill levels",
		Width:      len(bars)*(barWidth+barSpacing) + 160,
		Height:     640,
		BarWidth:   barWidth,
		BarSpacing: barSpacing,
		Background: chart.Style{
			Padding: chart.Box{Top: 48, Left: 24, Right: 24, Bottom: 60},
		},
		YAxis: chart.YAxis{
			Name:  "Level",
			Range: &chart.ContinuousRange{Min: 0, Max: 99},
			ValueFormatter: func(v interface{}) string {
				return chart.FloatValueFormatterWithFormat(v, "%.0f")
			},
		},
		Bars: bars,
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return graph.Render(chart.PNG, file)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
