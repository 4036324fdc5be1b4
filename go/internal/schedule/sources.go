package schedule

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/matchday/go/internal/models"
)

// SourceKind names where a kickoff instant came from. Lower values win.
type SourceKind int

const (
	SourcePreloadedTimestamp SourceKind = iota + 1
	SourcePreloadedDate
	SourceFetchedTimestamp
	SourceFetchedDate
	SourceFallback
)

func (k SourceKind) String() string {
	switch k {
	case SourcePreloadedTimestamp:
		return "preloaded_timestamp"
	case SourcePreloadedDate:
		return "preloaded_date"
	case SourceFetchedTimestamp:
		return "fetched_timestamp"
	case SourceFetchedDate:
		return "fetched_date"
	case SourceFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Source is one candidate for a match's kickoff instant.
type Source struct {
	Kind   SourceKind
	Lookup func(ctx context.Context) (time.Time, bool)
}

// FetchFunc loads a fixture from the live feed.
type FetchFunc func(ctx context.Context) (*models.Fixture, error)

// FallbackFunc deterministically generates a kickoff for matches no feed knows about.
type FallbackFunc func(matchID string) (time.Time, bool)

// PreloadedTimestamp reads the numeric unix timestamp of a fixture the caller already holds.
func PreloadedTimestamp(f *models.Fixture) Source {
	return Source{Kind: SourcePreloadedTimestamp, Lookup: func(context.Context) (time.Time, bool) {
		return fromTimestamp(f)
	}}
}

// PreloadedDate reads the ISO date string of a fixture the caller already holds.
func PreloadedDate(f *models.Fixture) Source {
	return Source{Kind: SourcePreloadedDate, Lookup: func(context.Context) (time.Time, bool) {
		return fromDate(f)
	}}
}

// FetchedFixture shares one fetch between the fetched timestamp and fetched
// date sources. A successful fetch is kept; a failed one is retried on the
// next lookup.
type FetchedFixture struct {
	fetch FetchFunc

	mu      sync.Mutex
	fetched bool
	fixture *models.Fixture
}

// NewFetchedFixture wraps fetch so it runs lazily until it succeeds.
func NewFetchedFixture(fetch FetchFunc) *FetchedFixture {
	return &FetchedFixture{fetch: fetch}
}

func (f *FetchedFixture) get(ctx context.Context) *models.Fixture {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fetched || f.fetch == nil {
		return f.fixture
	}

	fixture, err := f.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("kickoff fetch failed, treating fetched sources as absent until the next attempt")
		return nil
	}
	f.fixture = fixture
	f.fetched = true
	return f.fixture
}

// Timestamp is the fetched fixture's numeric timestamp source.
func (f *FetchedFixture) Timestamp() Source {
	return Source{Kind: SourceFetchedTimestamp, Lookup: func(ctx context.Context) (time.Time, bool) {
		return fromTimestamp(f.get(ctx))
	}}
}

// Date is the fetched fixture's ISO date source.
func (f *FetchedFixture) Date() Source {
	return Source{Kind: SourceFetchedDate, Lookup: func(ctx context.Context) (time.Time, bool) {
		return fromDate(f.get(ctx))
	}}
}

// Fallback wraps a deterministic generator for matchID.
func Fallback(matchID string, gen FallbackFunc) Source {
	return Source{Kind: SourceFallback, Lookup: func(context.Context) (time.Time, bool) {
		if gen == nil {
			return time.Time{}, false
		}
		return gen(matchID)
	}}
}

// Candidates builds the standard precedence chain. Any argument may be nil.
func Candidates(matchID string, preloaded *models.Fixture, fetch FetchFunc, gen FallbackFunc) []Source {
	var out []Source
	if preloaded != nil {
		out = append(out, PreloadedTimestamp(preloaded), PreloadedDate(preloaded))
	}
	if fetch != nil {
		fetched := NewFetchedFixture(fetch)
		out = append(out, fetched.Timestamp(), fetched.Date())
	}
	if gen != nil {
		out = append(out, Fallback(matchID, gen))
	}
	return out
}

func fromTimestamp(f *models.Fixture) (time.Time, bool) {
	if f == nil || f.Timestamp <= 0 {
		return time.Time{}, false
	}
	return time.Unix(f.Timestamp, 0).UTC(), true
}

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func fromDate(f *models.Fixture) (time.Time, bool) {
	if f == nil {
		return time.Time{}, false
	}
	return ParseDate(f.Date)
}

// ParseDate parses the ISO date formats fixture feeds use. Dates without a
// zone are taken as UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
