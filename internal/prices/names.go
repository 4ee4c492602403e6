package prices

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

// Item is one entry of the item mapping endpoint.
type Item struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Examine  string `json:"examine"`
	Members  bool   `json:"members"`
	Limit    int    `json:"limit"`
	Value    int64  `json:"value"`
	HighAlch int64  `json:"highalch"`
	LowAlch  int64  `json:"lowalch"`
	Icon     string `json:"icon"`
}

// NameIndex maps item ids to display names and lowercase names to ids.
type NameIndex struct {
	names map[int]string
	ids   map[string]int
	// order holds each lowercase name once, at its first occurrence.
	order []string
}

// NewNameIndex builds an index from the mapping in upstream order. When two
// items share a lowercase name the later id wins, but the name keeps the scan
// position of its first occurrence.
func NewNameIndex(items []Item) *NameIndex {
	ix := &NameIndex{
		names: make(map[int]string, len(items)),
		ids:   make(map[string]int, len(items)),
		order: make([]string, 0, len(items)),
	}
	for _, item := range items {
		lower := strings.ToLower(item.Name)
		if _, seen := ix.ids[lower]; !seen {
			ix.order = append(ix.order, lower)
		}
		ix.ids[lower] = item.ID
		ix.names[item.ID] = item.Name
	}
	return ix
}

// Len returns the number of distinct lowercase names.
func (ix *NameIndex) Len() int { return len(ix.order) }

// Name returns the display name of id.
func (ix *NameIndex) Name(id int) (string, error) {
	name, ok := ix.names[id]
	if !ok {
		return "", fmt.Errorf("%w: item id %d", apperr.ErrNotFound, id)
	}
	return name, nil
}

// ID returns the id of an exact, case-insensitive name.
func (ix *NameIndex) ID(name string) (int, error) {
	id, ok := ix.ids[strings.ToLower(name)]
	if !ok {
		return 0, fmt.Errorf("%w: item %q", apperr.ErrNotFound, name)
	}
	return id, nil
}

// Resolve returns the id of the first name, in mapping order, that starts with
// the lowercased query. It is a first match, not a best match. A blank query
// matches nothing and returns ErrNotFound rather than the first mapped item.
func (ix *NameIndex) Resolve(query string) (int, error) {
	q := strings.ToLower(query)
	if strings.TrimSpace(q) == "" {
		return 0, fmt.Errorf("%w: empty item query", apperr.ErrNotFound)
	}
	for _, name := range ix.order {
		if strings.HasPrefix(name, q) {
			return ix.ids[name], nil
		}
	}
	return 0, fmt.Errorf("%w: no item matching %q", apperr.ErrNotFound, query)
}

// Suggest returns up to n display names closest to query by edit distance.
// Ties keep mapping order.
func (ix *NameIndex) Suggest(query string, n int) []string {
	if n <= 0 || len(ix.order) == 0 {
		return nil
	}
	q := strings.ToLower(strings.TrimSpace(query))

	type candidate struct {
		name     string
		distance int
	}
	candidates := make([]candidate, len(ix.order))
	for i, name := range ix.order {
		candidates[i] = candidate{name: name, distance: levenshtein.ComputeDistance(q, name)}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	n = min(n, len(candidates))
	out := make([]string, n)
	for i := range out {
		out[i] = ix.names[ix.ids[candidates[i].name]]
	}
	return out
}
