package highscores

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

// Category selects one of the ranked leaderboards.
type Category string

const (
	CategoryDefault         Category = "default"
	CategoryIronman         Category = "ironman"
	CategoryUltimate        Category = "ultimate"
	CategoryHardcoreIronman Category = "hardcore_ironman"
	CategorySeasonal        Category = "seasonal"
	CategoryDeadman         Category = "deadman"
	CategoryTournament      Category = "tournament"
	CategoryFreshStart      Category = "fresh_start"
	CategorySkiller         Category = "skiller"
	CategorySkillerDefence  Category = "skiller_defence"
)

// DefaultBaseURL is the highscores host.
const DefaultBaseURL = "https://secure.runescape.com"

var categorySlugs = map[Category]string{
	CategoryDefault:         "hiscore_oldschool",
	CategoryIronman:         "hiscore_oldschool_ironman",
	CategoryUltimate:        "hiscore_oldschool_ultimate",
	CategoryHardcoreIronman: "hiscore_oldschool_hardcore_ironman",
	CategorySeasonal:        "hiscore_oldschool_seasonal",
	CategoryDeadman:         "hiscore_oldschool_deadman",
	CategoryTournament:      "hiscore_oldschool_tournament",
	CategoryFreshStart:      "hiscore_oldschool_fresh_start",
	CategorySkiller:         "hiscore_oldschool_skiller",
	CategorySkillerDefence:  "hiscore_oldschool_skiller_defence",
}

// Categories returns every valid category, sorted by name.
func Categories() []Category {
	out := make([]Category, 0, len(categorySlugs))
	for c := range categorySlugs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseCategory validates a category name from user input. It ignores case and
// surrounding space, so "IRONMAN" parses; Category.Slug stays strict. An empty
// name selects the default board.
func ParseCategory(name string) (Category, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CategoryDefault, nil
	}
	c := Category(name)
	if _, ok := categorySlugs[c]; !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrInvalidCategory, name)
	}
	return c, nil
}

// Slug returns the URL path component of the category's board.
func (c Category) Slug() (string, error) {
	slug, ok := categorySlugs[c]
	if !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrInvalidCategory, string(c))
	}
	return slug, nil
}

// BuildURL returns the index_lite JSON endpoint for player on the category's board.
func BuildURL(baseURL string, c Category, player string) (string, error) {
	slug, err := c.Slug()
	if err != nil {
		return "", err
	}
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return fmt.Sprintf("%s/m=%s/index_lite.json?player=%s", base, slug, url.QueryEscape(player)), nil
}
