package prices

import (
	"fmt"
	"strings"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

// Mode selects the price feed a Checker reads.
type Mode int

const (
	// ModeLatest reads the most recent instant-buy and instant-sell prices.
	ModeLatest Mode = iota
	// ModeAverage reads volume-weighted averages over a Window.
	ModeAverage
)

func (m Mode) String() string {
	switch m {
	case ModeLatest:
		return "latest"
	case ModeAverage:
		return "average"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode accepts "latest" or "average".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latest":
		return ModeLatest, nil
	case "average", "avg":
		return ModeAverage, nil
	default:
		return 0, fmt.Errorf("%w: unknown price mode %q", apperr.ErrConfiguration, s)
	}
}

// Window is an averaging period; its value is the API endpoint name.
type Window string

const (
	Window5m Window = "5m"
	Window1h Window = "1h"
)

// ParseWindow accepts the endpoint names and their spelled-out forms.
func ParseWindow(s string) (Window, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "5m", "5-minute":
		return Window5m, nil
	case "1h", "1-hour":
		return Window1h, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: 5m, 1h)", apperr.ErrInvalidWindow, s)
	}
}
