package prices

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cdfisher/osrs-tools/internal/apperr"
	"github.com/cdfisher/osrs-tools/internal/fetcher"
	"github.com/cdfisher/osrs-tools/internal/version"
)

// DefaultBaseURL is the real-time prices API root.
const DefaultBaseURL = "https://prices.runescape.wiki/api/v1/osrs"

// Options configure a Checker.
type Options struct {
	// UserAgent must describe the caller and how to contact them.
	UserAgent string
	Mode      Mode
	// Window is required in ModeAverage and ignored otherwise.
	Window  string
	BaseURL string
	// KeepUpdated is recorded but no background refresh is performed.
	KeepUpdated bool
}

// Checker holds one price snapshot and the item name index.
type Checker struct {
	fetcher     *fetcher.Client
	baseURL     string
	header      http.Header
	mode        Mode
	window      Window
	keepUpdated bool
	names       *NameIndex
	logger      zerolog.Logger
	now         func() time.Time

	mu          sync.RWMutex
	records     map[int]Record
	lastUpdated time.Time
}

type latestResponse struct {
	Data map[string]latestEntry `json:"data"`
}

type latestEntry struct {
	High     *int64 `json:"high"`
	HighTime *int64 `json:"highTime"`
	Low      *int64 `json:"low"`
	LowTime  *int64 `json:"lowTime"`
}

type averageResponse struct {
	Data      map[string]averageEntry `json:"data"`
	Timestamp *int64                  `json:"timestamp"`
}

type averageEntry struct {
	AvgHighPrice    *int64 `json:"avgHighPrice"`
	HighPriceVolume int64  `json:"highPriceVolume"`
	AvgLowPrice     *int64 `json:"avgLowPrice"`
	LowPriceVolume  int64  `json:"lowPriceVolume"`
}

// Open validates opts, fetches the item mapping once and then the first price snapshot.
func Open(ctx context.Context, f *fetcher.Client, opts Options, logger zerolog.Logger) (*Checker, error) {
	if strings.TrimSpace(opts.UserAgent) == "" {
		return nil, fmt.Errorf("%w: a descriptive user agent with contact details is required by the prices API", apperr.ErrConfiguration)
	}

	c := &Checker{
		fetcher:     f,
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		header:      http.Header{},
		mode:        opts.Mode,
		keepUpdated: opts.KeepUpdated,
		logger:      logger.With().Str("component", "prices").Logger(),
		now:         time.Now,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	c.header.Set("User-Agent", version.UserAgent(opts.UserAgent))

	switch opts.Mode {
	case ModeLatest:
	case ModeAverage:
		w, err := ParseWindow(opts.Window)
		if err != nil {
			return nil, err
		}
		c.window = w
	default:
		return nil, fmt.Errorf("%w: unknown price mode %s", apperr.ErrConfiguration, opts.Mode)
	}

	items, err := fetcher.Get[[]Item](ctx, f, c.request("mapping"))
	if err != nil {
		return nil, fmt.Errorf("fetch item mapping: %w", err)
	}
	c.names = NewNameIndex(*items)
	c.logger.Debug().Int("items", c.names.Len()).Msg("item mapping loaded")

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// Refresh re-fetches the price document and replaces every record. The name
// index is left untouched.
func (c *Checker) Refresh(ctx context.Context) error {
	var (
		records map[int]Record
		err     error
	)
	switch c.mode {
	case ModeAverage:
		records, err = c.fetchAverage(ctx)
	default:
		records, err = c.fetchLatest(ctx)
	}
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.records = records
	c.lastUpdated = c.now()
	c.mu.Unlock()

	c.logger.Debug().Str("mode", c.mode.String()).Int("records", len(records)).Msg("prices refreshed")
	return nil
}

// PriceInfo returns the record for query. A query that parses as an integer
// is an item id and is never prefix-matched against names.
func (c *Checker) PriceInfo(query string) (Record, error) {
	id, err := c.resolve(query)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	rec, ok := c.records[id]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no %s price for item %d", apperr.ErrNotFound, c.mode, id)
	}
	return rec, nil
}

// Latest is PriceInfo for a Checker opened in ModeLatest.
func (c *Checker) Latest(query string) (LatestPrice, error) {
	rec, err := c.PriceInfo(query)
	if err != nil {
		return LatestPrice{}, err
	}
	p, ok := rec.(LatestPrice)
	if !ok {
		return LatestPrice{}, fmt.Errorf("%w: checker serves %s prices", apperr.ErrConfiguration, c.mode)
	}
	return p, nil
}

// Average is PriceInfo for a Checker opened in ModeAverage.
func (c *Checker) Average(query string) (AveragePrice, error) {
	rec, err := c.PriceInfo(query)
	if err != nil {
		return AveragePrice{}, err
	}
	p, ok := rec.(AveragePrice)
	if !ok {
		return AveragePrice{}, fmt.Errorf("%w: checker serves %s prices", apperr.ErrConfiguration, c.mode)
	}
	return p, nil
}

// ItemName returns the display name for id.
func (c *Checker) ItemName(id int) (string, error) { return c.names.Name(id) }

// ItemID returns the id for an exact, case-insensitive item name.
func (c *Checker) ItemID(name string) (int, error) { return c.names.ID(name) }

// Suggest lists up to n item names close to query.
func (c *Checker) Suggest(query string, n int) []string { return c.names.Suggest(query, n) }

// Names exposes the item name index.
func (c *Checker) Names() *NameIndex { return c.names }

// Mode reports which price feed the Checker serves.
func (c *Checker) Mode() Mode { return c.mode }

// Window is empty in ModeLatest.
func (c *Checker) Window() Window { return c.window }

// KeepUpdated reports the flag passed to Open. The Checker never refreshes on its own.
func (c *Checker) KeepUpdated() bool { return c.keepUpdated }

// LastUpdated returns when the current records were fetched.
func (c *Checker) LastUpdated() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastUpdated
}

// Len returns the number of priced items.
func (c *Checker) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// resolve treats any integer query as an item id, however large, and only
// sends other queries through name resolution.
func (c *Checker) resolve(query string) (int, error) {
	trimmed := strings.TrimSpace(query)
	id, err := strconv.Atoi(trimmed)
	if err == nil {
		return id, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%w: item id %s", apperr.ErrNotFound, trimmed)
	}
	return c.names.Resolve(query)
}

func (c *Checker) request(endpoint string) fetcher.Request {
	return fetcher.Request{
		URL:     c.baseURL + "/" + endpoint,
		Header:  c.header,
		Subject: endpoint,
		Policy:  fetcher.PricingPolicy,
	}
}

func (c *Checker) fetchLatest(ctx context.Context) (map[int]Record, error) {
	resp, err := fetcher.Get[latestResponse](ctx, c.fetcher, c.request("latest"))
	if err != nil {
		return nil, fmt.Errorf("fetch latest prices: %w", err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: latest prices response has no data", apperr.ErrMalformedResponse)
	}

	records := make(map[int]Record, len(resp.Data))
	for key, e := range resp.Data {
		id, err := itemID(key)
		if err != nil {
			return nil, err
		}
		records[id] = LatestPrice{
			ItemID:   id,
			High:     value(e.High),
			Low:      value(e.Low),
			HighTime: unixTime(e.HighTime),
			LowTime:  unixTime(e.LowTime),
		}
	}
	return records, nil
}

func (c *Checker) fetchAverage(ctx context.Context) (map[int]Record, error) {
	resp, err := fetcher.Get[averageResponse](ctx, c.fetcher, c.request(string(c.window)))
	if err != nil {
		return nil, fmt.Errorf("fetch %s average prices: %w", c.window, err)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: %s prices response has no data", apperr.ErrMalformedResponse, c.window)
	}

	stamp := unixTime(resp.Timestamp)
	records := make(map[int]Record, len(resp.Data))
	for key, e := range resp.Data {
		id, err := itemID(key)
		if err != nil {
			return nil, err
		}
		records[id] = AveragePrice{
			ItemID:     id,
			High:       value(e.AvgHighPrice),
			Low:        value(e.AvgLowPrice),
			Window:     c.window,
			HighVolume: e.HighPriceVolume,
			LowVolume:  e.LowPriceVolume,
			Timestamp:  stamp,
		}
	}
	return records, nil
}

func itemID(key string) (int, error) {
	id, err := strconv.Atoi(key)
	if err != nil {
		return 0, fmt.Errorf("%w: item key %q is not an id", apperr.ErrMalformedResponse, key)
	}
	return id, nil
}

// IsNotFound reports whether err is a failed item lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
