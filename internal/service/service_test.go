package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cdfisher/osrs-tools/internal/alerting"
	"github.com/cdfisher/osrs-tools/internal/apperr"
	"github.com/cdfisher/osrs-tools/internal/config"
	"github.com/cdfisher/osrs-tools/internal/prices"
)

type stubSource struct {
	records map[string]prices.Record
	names   map[int]string
}

func (s stubSource) PriceInfo(query string) (prices.Record, error) {
	rec, ok := s.records[query]
	if !ok {
		return nil, fmt.Errorf("%w: %s", apperr.ErrNotFound, query)
	}
	return rec, nil
}

func (s stubSource) ItemName(id int) (string, error) { return s.names[id], nil }
func (s stubSource) Mode() prices.Mode               { return prices.ModeAverage }
func (s stubSource) Window() prices.Window           { return prices.Window5m }

type recordingNotifier struct {
	notes []alerting.Notification
	err   error
}

func (r *recordingNotifier) Notify(_ context.Context, n alerting.Notification) error {
	if r.err != nil {
		return r.err
	}
	r.notes = append(r.notes, n)
	return nil
}

func testSource() stubSource {
	return stubSource{
		records: map[string]prices.Record{
			"whip":  prices.AveragePrice{ItemID: 4151, High: 1550000, Low: 1450000, Window: prices.Window5m},
			"lobby": prices.AveragePrice{ItemID: 379, High: 101, Low: 100, Window: prices.Window5m},
		},
		names: map[int]string{4151: "Abyssal whip", 379: "Lobster"},
	}
}

func enabledConfig(threshold float64) *config.Config {
	return &config.Config{Alerting: config.AlertingConfig{Enabled: true, ROIThresholdPct: threshold}}
}

func TestCheckAlertsAboveThreshold(t *testing.T) {
	notifier := &recordingNotifier{}
	checker := NewMarginChecker(enabledConfig(2), testSource(), notifier, zerolog.Nop())

	results := checker.Check(context.Background(), []string{"whip", "lobby", "dragon claws"})
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if !results[0].Alerted || results[0].ItemName != "Abyssal whip" {
		t.Fatalf("whip should alert: %+v", results[0])
	}
	if results[1].Alerted {
		t.Fatal("1% roi must not alert at a 2% threshold")
	}
	if !errors.Is(results[2].Err, apperr.ErrNotFound) {
		t.Fatalf("expected not found for unknown item, got %v", results[2].Err)
	}

	if len(notifier.notes) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.notes))
	}
	note := notifier.notes[0]
	if note.Feed != "5m average" || !note.ROIPct.Equal(decimal.RequireFromString("6.90")) || note.ItemID != 4151 {
		t.Fatalf("unexpected notification %+v", note)
	}
}

func TestCheckWithAlertsDisabled(t *testing.T) {
	notifier := &recordingNotifier{}
	cfg := &config.Config{Alerting: config.AlertingConfig{Enabled: false, ROIThresholdPct: 1}}
	checker := NewMarginChecker(cfg, testSource(), notifier, zerolog.Nop())

	results := checker.Check(context.Background(), []string{"whip"})
	if results[0].Alerted || len(notifier.notes) != 0 {
		t.Fatal("disabled alerting must not notify")
	}
	if !checker.Threshold().IsZero() {
		t.Fatalf("threshold should be zero when disabled, got %s", checker.Threshold())
	}
}

func TestNotifierFailureIsNotFatal(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("telegram down")}
	checker := NewMarginChecker(enabledConfig(2), testSource(), notifier, zerolog.Nop())

	results := checker.Check(context.Background(), []string{"whip", "lobby"})
	if len(results) != 2 || results[0].Alerted || results[0].Err != nil {
		t.Fatalf("unexpected results %+v", results)
	}
}
