package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cdfisher/osrs-tools/internal/alerting"
	"github.com/cdfisher/osrs-tools/internal/config"
	"github.com/cdfisher/osrs-tools/internal/prices"
)

// PriceSource is the subset of *prices.Checker a margin check needs.
type PriceSource interface {
	PriceInfo(query string) (prices.Record, error)
	ItemName(id int) (string, error)
	Mode() prices.Mode
	Window() prices.Window
}

var _ PriceSource = (*prices.Checker)(nil)

// MarginResult is the outcome for one queried item.
type MarginResult struct {
	Query    string
	ItemName string
	Record   prices.Record
	Alerted  bool
	Err      error
}

// MarginChecker evaluates item margins against one price snapshot and alerts
// on items whose ROI exceeds the threshold.
type MarginChecker struct {
	source   PriceSource
	notifier alerting.Notifier
	logger   zerolog.Logger
	now      func() time.Time

	threshold decimal.Decimal
	alertsOn  bool
}

// NewMarginChecker constructs the one-shot margin checker.
func NewMarginChecker(cfg *config.Config, source PriceSource, notifier alerting.Notifier, logger zerolog.Logger) *MarginChecker {
	threshold := decimal.Zero
	if cfg.Alerting.Enabled && cfg.Alerting.ROIThresholdPct > 0 {
		threshold = decimal.NewFromFloat(cfg.Alerting.ROIThresholdPct)
	}

	return &MarginChecker{
		source:    source,
		notifier:  notifier,
		logger:    logger.With().Str("component", "service").Logger(),
		now:       time.Now,
		threshold: threshold,
		alertsOn:  cfg.Alerting.Enabled,
	}
}

// Threshold returns the active ROI threshold in percent; zero disables alerts.
func (m *MarginChecker) Threshold() decimal.Decimal { return m.threshold }

// Check resolves every query. Lookup failures are reported per item and do
// not stop the remaining queries.
func (m *MarginChecker) Check(ctx context.Context, queries []string) []MarginResult {
	results := make([]MarginResult, 0, len(queries))
	checkedAt := m.now().UTC()

	for _, query := range queries {
		if ctx.Err() != nil {
			results = append(results, MarginResult{Query: query, Err: ctx.Err()})
			continue
		}

		rec, err := m.source.PriceInfo(query)
		if err != nil {
			m.logger.Warn().Err(err).Str("query", query).Msg("price lookup failed")
			results = append(results, MarginResult{Query: query, Err: err})
			continue
		}

		name, err := m.source.ItemName(rec.ID())
		if err != nil {
			name = query
		}
		result := MarginResult{Query: query, ItemName: name, Record: rec}

		roi := rec.ROI()
		m.logger.Debug().Int("item_id", rec.ID()).Str("roi_pct", roi.String()).Msg("margin evaluated")

		if m.alertsOn && m.notifier != nil && !m.threshold.IsZero() && roi.GreaterThan(m.threshold) {
			note := alerting.Notification{
				CheckedAt:    checkedAt,
				ItemID:       rec.ID(),
				ItemName:     name,
				Feed:         m.feed(),
				High:         rec.HighPrice(),
				Low:          rec.LowPrice(),
				Margin:       rec.Margin(),
				ROIPct:       roi,
				ThresholdPct: m.threshold,
			}
			if err := m.notifier.Notify(ctx, note); err != nil {
				m.logger.Error().Err(err).Int("item_id", rec.ID()).Msg("failed to dispatch alert")
			} else {
				result.Alerted = true
			}
		}

		results = append(results, result)
	}

	return results
}

func (m *MarginChecker) feed() string {
	if m.source.Mode() == prices.ModeAverage {
		return string(m.source.Window()) + " average"
	}
	return m.source.Mode().String()
}
