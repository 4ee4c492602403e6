package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/cdfisher/osrs-tools/internal/prices"
	"github.com/cdfisher/osrs-tools/internal/service"
)

// Price prints the current price record of each query. Unknown items are
// reported with a few similarly named suggestions and do not abort the rest.
func (a *App) Price(ctx context.Context, opts PriceOptions) error {
	if len(opts.Queries) == 0 {
		return errors.New("at least one item name or id is required")
	}

	checker, err := a.openPrices(ctx, opts.Mode, opts.Window)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	if checker.Mode() == prices.ModeAverage {
		fmt.Fprintln(writer, "Item\tID\tAvg High\tAvg Low\tMargin\tROI%\tHigh Vol\tLow Vol")
	} else {
		fmt.Fprintln(writer, "Item\tID\tHigh\tLow\tMargin\tROI%\tHigh Time (UTC)\tLow Time (UTC)")
	}

	var missing []string
	for _, query := range opts.Queries {
		rec, err := checker.PriceInfo(query)
		if err != nil {
			if !prices.IsNotFound(err) {
				return err
			}
			missing = append(missing, query)
			continue
		}

		name, err := checker.ItemName(rec.ID())
		if err != nil {
			name = query
		}

		switch p := rec.(type) {
		case prices.LatestPrice:
			fmt.Fprintf(writer, "%s\t%d\t%d\t%d\t%s\t%s\t%s\t%s\n",
				sanitizeInline(name), p.ItemID, p.High, p.Low,
				formatDecimal(p.Margin(), 0), formatDecimal(p.ROI(), 2),
				timestamp(p.HighTime), timestamp(p.LowTime))
		case prices.AveragePrice:
			fmt.Fprintf(writer, "%s\t%d\t%d\t%d\t%s\t%s\t%d\t%d\n",
				sanitizeInline(name), p.ItemID, p.High, p.Low,
				formatDecimal(p.Margin(), 0), formatDecimal(p.ROI(), 2),
				p.HighVolume, p.LowVolume)
		}
	}
	writer.Flush()

	for _, query := range missing {
		line := fmt.Sprintf("no price found for %q", query)
		if opts.Suggest > 0 {
			if suggestions := checker.Suggest(query, opts.Suggest); len(suggestions) > 0 {
				line += "; did you mean: " + strings.Join(suggestions, ", ")
			}
		}
		fmt.Fprintln(a.Out, line)
	}

	a.Logger.Debug().
		Str("mode", checker.Mode().String()).
		Time("last_updated", checker.LastUpdated()).
		Int("queries", len(opts.Queries)).
		Int("missing", len(missing)).
		Msg("price lookup finished")
	return nil
}

// MarginCheck evaluates item margins once and alerts through the configured
// notifier for items above the ROI threshold.
func (a *App) MarginCheck(ctx context.Context, opts MarginCheckOptions) error {
	items := opts.Items
	if len(items) == 0 {
		items = a.Config.Alerting.Items
	}
	if len(items) == 0 {
		return errors.New("no items to check; pass --item or set alerting.items")
	}

	checker, err := a.openPrices(ctx, opts.Mode, opts.Window)
	if err != nil {
		return err
	}

	notifier := a.newNotifier()
	if a.Config.Alerting.Enabled && notifier == nil {
		a.Logger.Warn().Msg("alerting enabled but no channel configured; results are printed only")
	}

	checkerSvc := service.NewMarginChecker(a.Config, checker, notifier, a.Logger)
	results := checkerSvc.Check(ctx, items)

	writer := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(writer, "Item\tHigh\tLow\tMargin\tROI%\tAlerted\tError")
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(writer, "%s\t-\t-\t-\t-\tno\t%s\n", sanitizeInline(r.Query), sanitizeInline(r.Err.Error()))
			continue
		}
		alerted := "no"
		if r.Alerted {
			alerted = "yes"
		}
		fmt.Fprintf(writer, "%s\t%d\t%d\t%s\t%s\t%s\t\n",
			sanitizeInline(r.ItemName), r.Record.HighPrice(), r.Record.LowPrice(),
			formatDecimal(r.Record.Margin(), 0), formatDecimal(r.Record.ROI(), 2), alerted)
	}
	writer.Flush()

	a.Logger.Info().
		Int("items", len(results)).
		Int("failed", failed).
		Str("threshold_pct", checkerSvc.Threshold().String()).
		Msg("margin check finished")
	if failed == len(results) {
		return errors.New("every item lookup failed")
	}
	return nil
}
