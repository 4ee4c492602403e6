package highscores

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cdfisher/osrs-tools/internal/apperr"
	"github.com/cdfisher/osrs-tools/internal/fetcher"
)

// Unranked marks a rank, score or kill count the player has no entry for.
const Unranked = -1

// SkillRecord holds one skill's standing.
type SkillRecord struct {
	Rank       int64
	Level      int
	Experience int64
}

// ActivityRecord holds one minigame or clue standing.
type ActivityRecord struct {
	Rank  int64
	Score int64
}

// BossRecord holds one boss standing.
type BossRecord struct {
	Rank      int64
	KillCount int64
}

// Unrecognized describes an upstream entry skipped during parsing.
type Unrecognized struct {
	Kind  Kind
	Name  string
	Index int
}

// Options configure the highscores client.
type Options struct {
	BaseURL string
}

// Client builds highscores snapshots through the retrying fetcher.
type Client struct {
	fetcher *fetcher.Client
	baseURL string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewClient constructs a highscores client.
func NewClient(f *fetcher.Client, opts Options, logger zerolog.Logger) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		fetcher: f,
		baseURL: baseURL,
		logger:  logger.With().Str("component", "highscores").Logger(),
		now:     time.Now,
	}
}

// Snapshot is one player's standing on one board. It is replaced as a whole by Refresh.
type Snapshot struct {
	client   *Client
	player   string
	category Category

	mu           sync.RWMutex
	records      records
	unrecognized []Unrecognized
	fetchedAt    time.Time
}

// Lookup fetches and parses player's entries on the category's board.
func (c *Client) Lookup(ctx context.Context, player string, category Category) (*Snapshot, error) {
	s := &Snapshot{client: c, player: player, category: category}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Refresh re-fetches the snapshot. The previous records stay visible until the
// new document has been fetched and parsed; on error they are kept.
func (s *Snapshot) Refresh(ctx context.Context) error {
	doc, err := s.client.fetchDocument(ctx, s.player, s.category)
	if err != nil {
		return err
	}

	recs, unknown := parseDocument(doc)
	for _, u := range unknown {
		s.client.logger.Warn().
			Str("player", s.player).
			Str("kind", string(u.Kind)).
			Str("name", u.Name).
			Int("index", u.Index).
			Msg("unrecognized highscores entry, possible upstream schema change")
	}

	s.mu.Lock()
	s.records = recs
	s.unrecognized = unknown
	s.fetchedAt = s.client.now()
	s.mu.Unlock()
	return nil
}

// Player returns the queried display name.
func (s *Snapshot) Player() string { return s.player }

// Category returns the queried board.
func (s *Snapshot) Category() Category { return s.category }

// FetchedAt returns when the current records were fetched.
func (s *Snapshot) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// Unrecognized lists the entries skipped by the last parse.
func (s *Snapshot) Unrecognized() []Unrecognized {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Unrecognized(nil), s.unrecognized...)
}

// Skill returns the record for a canonical skill key.
func (s *Snapshot) Skill(key Key) (SkillRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records.skills[key]
	return r, ok
}

// Activity returns the record for a canonical activity key.
func (s *Snapshot) Activity(key Key) (ActivityRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records.activities[key]
	return r, ok
}

// Boss returns the record for a canonical boss key.
func (s *Snapshot) Boss(key Key) (BossRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records.bosses[key]
	return r, ok
}

// Scores returns skill experience, then activity scores, then boss kill
// counts, in canonical order and floored at zero. All three parts come from
// the same fetch.
func (s *Snapshot) Scores() []int64 {
	recs := s.current()
	out := make([]int64, 0, len(Skills)+len(Activities)+len(Bosses))
	out = append(out, recs.experience()...)
	out = append(out, recs.activityScores()...)
	out = append(out, recs.killCounts()...)
	return out
}

// Levels returns skill levels in canonical order, floored at one.
func (s *Snapshot) Levels() []int {
	recs := s.current()
	out := make([]int, len(Skills))
	for i, e := range Skills {
		out[i] = max(recs.skills[e.Key].Level, 1)
	}
	return out
}

// Experience returns skill experience in canonical order, floored at zero.
func (s *Snapshot) Experience() []int64 { return s.current().experience() }

// ActivityScores returns activity scores in canonical order, floored at zero.
func (s *Snapshot) ActivityScores() []int64 { return s.current().activityScores() }

// KillCounts returns boss kill counts in canonical order, floored at zero.
func (s *Snapshot) KillCounts() []int64 { return s.current().killCounts() }

// current returns the record set of the latest fetch. Refresh swaps in new
// maps and never mutates old ones, so the result is safe to read unlocked.
func (s *Snapshot) current() records {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.records
}

func (r records) experience() []int64 {
	out := make([]int64, len(Skills))
	for i, e := range Skills {
		out[i] = max(r.skills[e.Key].Experience, 0)
	}
	return out
}

func (r records) activityScores() []int64 {
	out := make([]int64, len(Activities))
	for i, e := range Activities {
		out[i] = max(r.activities[e.Key].Score, 0)
	}
	return out
}

func (r records) killCounts() []int64 {
	out := make([]int64, len(Bosses))
	for i, e := range Bosses {
		out[i] = max(r.bosses[e.Key].KillCount, 0)
	}
	return out
}

func (c *Client) fetchDocument(ctx context.Context, player string, category Category) (*document, error) {
	if strings.TrimSpace(player) == "" {
		return nil, fmt.Errorf("%w: player name is required", apperr.ErrConfiguration)
	}
	u, err := BuildURL(c.baseURL, category, player)
	if err != nil {
		return nil, err
	}

	doc, err := fetcher.Get[document](ctx, c.fetcher, fetcher.Request{
		URL:     u,
		Subject: player,
		Policy:  fetcher.HighscoresPolicy,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s highscores for %q: %w", category, player, err)
	}
	if doc.Skills == nil && doc.Activities == nil {
		return nil, fmt.Errorf("%w: highscores document for %q has neither skills nor activities", apperr.ErrMalformedResponse, player)
	}
	return doc, nil
}
