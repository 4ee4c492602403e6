package alerting

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Notification describes one item whose flip margin crossed the threshold.
type Notification struct {
	CheckedAt    time.Time
	ItemID       int
	ItemName     string
	Feed         string
	High         int64
	Low          int64
	Margin       decimal.Decimal
	ROIPct       decimal.Decimal
	ThresholdPct decimal.Decimal
	Note         string
}

// Notifier delivers margin notifications.
type Notifier interface {
	Notify(ctx context.Context, notification Notification) error
}

// TelegramNotifier pushes messages through the Telegram Bot API.
type TelegramNotifier struct {
	botToken string
	chatID   string
	baseURL  string
	client   *http.Client
	logger   zerolog.Logger
}

// NewTelegramNotifier constructs a Telegram notifier.
func NewTelegramNotifier(botToken, chatID, baseURL string, timeout time.Duration, logger zerolog.Logger) *TelegramNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "alert_telegram").Logger(),
	}
}

// Notify calls sendMessage with the rendered notification.
func (n *TelegramNotifier) Notify(ctx context.Context, note Notification) error {
	payload := map[string]string{
		"chat_id": n.chatID,
		"text":    renderMessage(note),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	var result struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err == nil {
		if !result.OK {
			return fmt.Errorf("telegram returned ok=false")
		}
	}

	n.logger.Info().
		Int("item_id", note.ItemID).
		Str("roi_pct", note.ROIPct.StringFixed(2)).
		Msg("margin alert sent (telegram)")
	return nil
}

func renderMessage(note Notification) string {
	printer := message.NewPrinter(language.English)
	builder := strings.Builder{}
	builder.WriteString("[OSRS Margin Alert]\n")
	builder.WriteString(fmt.Sprintf("Item: %s (%d)\n", note.ItemName, note.ItemID))
	if note.Feed != "" {
		builder.WriteString(fmt.Sprintf("Feed: %s\n", note.Feed))
	}
	builder.WriteString(printer.Sprintf("Buy: %d gp / Sell: %d gp\n", note.Low, note.High))
	builder.WriteString(fmt.Sprintf("Margin: %s gp\n", note.Margin.StringFixed(0)))
	builder.WriteString(fmt.Sprintf("ROI: %s%% (threshold %s%%)\n", note.ROIPct.StringFixed(2), note.ThresholdPct.StringFixed(2)))
	if !note.CheckedAt.IsZero() {
		builder.WriteString(fmt.Sprintf("Checked: %s UTC\n", note.CheckedAt.UTC().Format(time.RFC3339)))
	}
	if note.Note != "" {
		builder.WriteString(note.Note)
	}
	return builder.String()
}

var _ Notifier = (*TelegramNotifier)(nil)
