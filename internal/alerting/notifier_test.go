package alerting

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

func sampleNotification() Notification {
	return Notification{
		CheckedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ItemID:       4151,
		ItemName:     "Abyssal whip",
		Feed:         "latest",
		High:         1500000,
		Low:          1450000,
		Margin:       decimal.NewFromInt(50000),
		ROIPct:       decimal.RequireFromString("3.45"),
		ThresholdPct: decimal.NewFromInt(2),
	}
}

func TestTelegramNotifierSuccess(t *testing.T) {
	received := make(map[string]string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/bottoken/sendMessage") {
			t.Errorf("path should contain sendMessage, got %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())
	if err := notifier.Notify(context.Background(), sampleNotification()); err != nil {
		t.Fatalf("notify should succeed: %v", err)
	}

	if received["chat_id"] != "chat" {
		t.Fatalf("unexpected chat_id: %#v", received)
	}
	text := received["text"]
	for _, want := range []string{"Abyssal whip (4151)", "Buy: 1,450,000 gp / Sell: 1,500,000 gp", "ROI: 3.45% (threshold 2.00%)"} {
		if !strings.Contains(text, want) {
			t.Fatalf("message %q should contain %q", text, want)
		}
	}
}

func TestTelegramNotifierError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false})
	}))
	defer srv.Close()

	notifier := NewTelegramNotifier("token", "chat", srv.URL, time.Second, testLogger())
	if err := notifier.Notify(context.Background(), sampleNotification()); err == nil {
		t.Fatal("ok=false should fail")
	}
}

func TestRenderMessageGroupsThousands(t *testing.T) {
	cases := []struct {
		low, high int64
		want      string
	}{
		{0, 999, "Buy: 0 gp / Sell: 999 gp"},
		{1000, 2147483647, "Buy: 1,000 gp / Sell: 2,147,483,647 gp"},
		{-45000, 12, "Buy: -45,000 gp / Sell: 12 gp"},
	}
	for _, tc := range cases {
		note := sampleNotification()
		note.Low, note.High = tc.low, tc.high
		if got := renderMessage(note); !strings.Contains(got, tc.want) {
			t.Fatalf("message %q should contain %q", got, tc.want)
		}
	}
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
