package fetcher

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/rs/zerolog"

	"github.com/cdfisher/osrs-tools/internal/apperr"
)

type payload struct {
	Attempt int `json:"attempt"`
}

func TestHighscoresPolicyExhaustsOnRepeated404(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{}, noopLogger())
	_, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Subject: "zezima", Policy: HighscoresPolicy})
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if got := hits.Load(); got != 6 {
		t.Fatalf("expected 6 attempts, got %d", got)
	}
	status, ok := apperr.Status(err)
	if !ok || status != http.StatusNotFound {
		t.Fatalf("expected last status 404, got %d", status)
	}
}

func TestHighscoresPolicySucceedsOnFifthAttempt(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		if n <= 4 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"attempt":` + strconv.Itoa(int(n)) + `}`))
	}))
	defer srv.Close()

	c := New(Options{}, noopLogger())
	got, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Policy: HighscoresPolicy})
	if err != nil {
		t.Fatalf("fifth attempt should succeed: %v", err)
	}
	if got.Attempt != 5 {
		t.Fatalf("expected body of attempt 5, got %d", got.Attempt)
	}
	if hits.Load() != 5 {
		t.Fatalf("expected 5 requests, got %d", hits.Load())
	}
}

func TestHighscoresPolicyDoesNotRetryServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(Options{}, noopLogger())
	_, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Policy: HighscoresPolicy})
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("503 must not be retried by the highscores policy, got %d attempts", hits.Load())
	}
}

func TestPricingPolicyRetriesAnyFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(Options{}, noopLogger())
	_, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Subject: "latest", Policy: PricingPolicy})
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if errors.Is(err, apperr.ErrNotFound) {
		t.Fatal("pricing exhaustion must not report not-found")
	}
	if hits.Load() != 6 {
		t.Fatalf("expected 6 attempts, got %d", hits.Load())
	}
}

func TestMalformedBodyIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer srv.Close()

	c := New(Options{}, noopLogger())
	_, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Policy: PricingPolicy})
	if !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("malformed body must not be retried, got %d attempts", hits.Load())
	}
}

func TestInvalidUTF8IsMalformed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{'"', 0xff, 0xfe, '"'})
	}))
	defer srv.Close()

	c := New(Options{}, noopLogger())
	if _, err := Get[string](context.Background(), c, Request{URL: srv.URL}); !errors.Is(err, apperr.ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestHeadersAreForwarded(t *testing.T) {
	var ua, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		accept = r.Header.Get("Accept")
		_, _ = w.Write([]byte(`{"attempt":1}`))
	}))
	defer srv.Close()

	header := http.Header{}
	header.Set("User-Agent", "price bot - @someone on Discord")

	c := New(Options{}, noopLogger())
	if _, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Header: header}); err != nil {
		t.Fatalf("request should succeed: %v", err)
	}
	if ua != "price bot - @someone on Discord" {
		t.Fatalf("User-Agent not forwarded: %q", ua)
	}
	if accept != "application/json" {
		t.Fatalf("unexpected Accept header %q", accept)
	}
}

func TestCompressedBodies(t *testing.T) {
	encoders := map[string]func(*bytes.Buffer) io.WriteCloser{
		"br":   func(b *bytes.Buffer) io.WriteCloser { return brotli.NewWriter(b) },
		"gzip": func(b *bytes.Buffer) io.WriteCloser { return gzip.NewWriter(b) },
	}

	for encoding, newWriter := range encoders {
		t.Run(encoding, func(t *testing.T) {
			var buf bytes.Buffer
			w := newWriter(&buf)
			if _, err := w.Write([]byte(`{"attempt":7}`)); err != nil {
				t.Fatalf("compress: %v", err)
			}
			if err := w.Close(); err != nil {
				t.Fatalf("close writer: %v", err)
			}
			compressed := buf.Bytes()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Encoding", encoding)
				_, _ = w.Write(compressed)
			}))
			defer srv.Close()

			c := New(Options{}, noopLogger())
			got, err := Get[payload](context.Background(), c, Request{URL: srv.URL})
			if err != nil {
				t.Fatalf("decode %s body: %v", encoding, err)
			}
			if got.Attempt != 7 {
				t.Fatalf("expected 7, got %d", got.Attempt)
			}
		})
	}
}

func TestNegativeMaxRetriesDisablesRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(Options{MaxRetries: -1}, noopLogger())
	if c.Attempts() != 1 {
		t.Fatalf("expected a single attempt, got %d", c.Attempts())
	}
	if _, err := Get[payload](context.Background(), c, Request{URL: srv.URL, Policy: HighscoresPolicy}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 request, got %d", hits.Load())
	}
}

func TestRetryDelayHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := New(Options{RetryDelay: time.Hour}, noopLogger())
	_, err := Get[payload](ctx, c, Request{URL: srv.URL, Policy: HighscoresPolicy})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestTransportFailureIsUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := New(Options{Timeout: time.Second}, noopLogger())
	if _, err := Get[payload](context.Background(), c, Request{URL: url}); !errors.Is(err, apperr.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func noopLogger() zerolog.Logger {
	return zerolog.Nop()
}
