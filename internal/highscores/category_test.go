package highscores

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{in: "", want: CategoryDefault},
		{in: " Ironman ", want: CategoryIronman},
		{in: "IRONMAN", want: CategoryIronman},
		{in: "hardcore_ironman", want: CategoryHardcoreIronman},
		{in: "skiller_defence", want: CategorySkillerDefence},
		{in: "hardcore", wantErr: true},
	}
	for _, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.wantErr {
			if !errors.Is(err, apperr.ErrInvalidCategory) {
				t.Fatalf("%q: expected ErrInvalidCategory, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("%q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
	if _, err := Category("IRONMAN").Slug(); !errors.Is(err, apperr.ErrInvalidCategory) {
		t.Fatalf("Slug should not fold case, got %v", err)
	}
}

func TestBuildURL(t *testing.T) {
	got, err := BuildURL("https://secure.runescape.com/", CategoryUltimate, "Iron Man")
	if err != nil {
		t.Fatalf("build url: %v", err)
	}
	want := "https://secure.runescape.com/m=hiscore_oldschool_ultimate/index_lite.json?player=Iron+Man"
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if len(Categories()) != 10 {
		t.Fatalf("expected 10 categories, got %d", len(Categories()))
	}
}

func TestEntryTables(t *testing.T) {
	if len(Skills) != 24 || Skills[0].Key != "overall" {
		t.Fatalf("skills table should start with overall and hold 24 entries")
	}
	seen := map[Key]bool{}
	for _, table := range [][]Entry{Skills, Activities, Bosses} {
		for _, e := range table {
			if seen[e.Key] {
				t.Fatalf("duplicate key %s", e.Key)
			}
			seen[e.Key] = true
		}
	}
	keys := Keys(Bosses)
	if len(keys) != len(Bosses) || keys[0] != "abyssal_sire" || keys[len(keys)-1] != Bosses[len(Bosses)-1].Key {
		t.Fatalf("unexpected boss keys %v", keys)
	}
	entry, kind, ok := LookupName("Vet'ion")
	if !ok || kind != KindBoss || entry.Key != "vet_ion" {
		t.Fatalf("unexpected lookup result %+v %s %v", entry, kind, ok)
	}
	if _, err := KindOf("sailing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIsIronman(t *testing.T) {
	cases := []struct {
		name       string
		ironStatus int
		mainStatus int
		want       bool
		wantErr    error
		wantHits   int32
	}{
		{name: "on ironman board", ironStatus: http.StatusOK, mainStatus: http.StatusOK, want: true, wantHits: 1},
		{name: "main account", ironStatus: http.StatusNotFound, mainStatus: http.StatusOK, want: false, wantHits: 2},
		{name: "unknown player", ironStatus: http.StatusNotFound, mainStatus: http.StatusNotFound, wantErr: apperr.ErrPlayerNotFound, wantHits: 2},
		{name: "ironman board down", ironStatus: http.StatusServiceUnavailable, mainStatus: http.StatusOK, wantErr: apperr.ErrUpstream, wantHits: 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				hits.Add(1)
				status := tc.mainStatus
				if r.URL.Path == "/m=hiscore_oldschool_ironman/index_lite.json" {
					status = tc.ironStatus
				}
				if status != http.StatusOK {
					w.WriteHeader(status)
					return
				}
				_, _ = w.Write([]byte(`{"skills":[{"id":0,"name":"Overall","rank":1,"level":32,"xp":1000}],"activities":[]}`))
			}))
			defer srv.Close()

			got, err := newTestClient(srv.URL, zerolog.Nop()).IsIronman(context.Background(), "Iron Man")
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			if hits.Load() != tc.wantHits {
				t.Fatalf("expected %d requests, got %d", tc.wantHits, hits.Load())
			}
		})
	}
}
