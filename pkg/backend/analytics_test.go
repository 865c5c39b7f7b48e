package backend

import (
	"context"
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/geo"
)

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}

type fakeGeo struct {
	calls   int32
	country geo.Country
}

func (g *fakeGeo) ResolveCountry(ctx context.Context, ip string) geo.Country {
	atomic.AddInt32(&g.calls, 1)
	return g.country
}

func newTestBackend(t *testing.T, now time.Time, resolver geo.Resolver) (*backend, db.Database) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.sqlite")
	database, err := db.New(context.Background(), "sqlite", dsn, nil)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if resolver == nil {
		resolver = &fakeGeo{}
	}
	b := NewBackend(database, fakeClock{now: now}, resolver, nil, nil, Options{}).(*backend)
	return b, database
}

func TestRecordVisit(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	resolver := &fakeGeo{country: geo.Country{Code: "KR", Name: "South Korea"}}
	b, database := newTestBackend(t, now, resolver)

	b.RecordVisit("/pricing", "8.8.8.8", "Mozilla/5.0")

	visits, err := database.RecentVisits(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 1 {
		t.Fatalf("got %d visits", len(visits))
	}
	v := visits[0]
	if v.PagePath != "/pricing" || v.IPMasked != "8.8.xxx.xxx" || v.UserAgent != "Mozilla/5.0" {
		t.Errorf("visit = %+v", v)
	}
	if v.CountryCode == nil || *v.CountryCode != "KR" || v.CountryName == nil || *v.CountryName != "South Korea" {
		t.Errorf("country not recorded: %+v", v)
	}
	if !v.CreatedAt.Equal(now) {
		t.Errorf("created_at = %v, want clock time %v", v.CreatedAt, now)
	}
}

func TestRecordVisitNonRoutable(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	resolver := &fakeGeo{country: geo.Country{Code: "KR", Name: "South Korea"}}
	b, database := newTestBackend(t, now, resolver)

	b.RecordVisit("/", "192.168.1.10", "")

	if n := atomic.LoadInt32(&resolver.calls); n != 0 {
		t.Errorf("geo resolver called %d times for a private address", n)
	}

	visits, err := database.RecentVisits(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 1 {
		t.Fatalf("got %d visits, the row itself must still be recorded", len(visits))
	}
	if visits[0].CountryCode != nil {
		t.Errorf("country set for private address: %v", *visits[0].CountryCode)
	}
	if visits[0].IPMasked != "192.168.xxx.xxx" {
		t.Errorf("masked = %q", visits[0].IPMasked)
	}
}

func TestRecordVisitTruncatesUserAgent(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, database := newTestBackend(t, now, nil)

	long := make([]byte, 2*maxUserAgentLength)
	for i := range long {
		long[i] = 'a'
	}
	b.RecordVisit("/", "garbage", string(long))

	visits, err := database.RecentVisits(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 1 {
		t.Fatalf("got %d visits", len(visits))
	}
	if got := len(visits[0].UserAgent); got != maxUserAgentLength {
		t.Errorf("user agent length = %d, want %d", got, maxUserAgentLength)
	}
	if visits[0].IPMasked != "xxx.xxx.xxx.xxx" {
		t.Errorf("masked = %q", visits[0].IPMasked)
	}
}

func TestAnalyticsStatsBuckets(t *testing.T) {
	// Friday 2024-03-15 noon: day starts the 15th, week starts Monday
	// the 11th, month starts the 1st.
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, database := newTestBackend(t, now, nil)

	seed := []struct {
		ip string
		at time.Time
	}{
		{"1.1.1.1", time.Date(2024, 3, 15, 9, 0, 0, 0, clock.Location)},  // today
		{"1.1.1.1", time.Date(2024, 3, 15, 11, 0, 0, 0, clock.Location)}, // same visitor again
		{"2.2.2.2", time.Date(2024, 3, 14, 23, 59, 0, 0, clock.Location)}, // yesterday, still this week
		{"3.3.3.3", time.Date(2024, 3, 10, 12, 0, 0, 0, clock.Location)},  // Sunday, previous week
		{"4.4.4.4", time.Date(2024, 2, 20, 12, 0, 0, 0, clock.Location)},  // previous month
	}
	for _, s := range seed {
		err := database.CreateVisit(&db.Visit{
			IPAddress: s.ip,
			IPMasked:  "masked",
			PagePath:  "/",
			CreatedAt: s.at,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	stats := b.AnalyticsStats()
	if stats.TotalVisits != 5 {
		t.Errorf("total visits = %d, want 5", stats.TotalVisits)
	}
	if stats.UniqueVisitors != 4 {
		t.Errorf("unique visitors = %d, want 4", stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 1 {
		t.Errorf("visitors today = %d, want 1", stats.VisitorsToday)
	}
	if stats.VisitorsThisWeek != 2 {
		t.Errorf("visitors this week = %d, want 2", stats.VisitorsThisWeek)
	}
	if stats.VisitorsMonth != 3 {
		t.Errorf("visitors this month = %d, want 3", stats.VisitorsMonth)
	}
}

func TestCollapse(t *testing.T) {
	if got := collapse("ok", int64(7), nil); got != 7 {
		t.Errorf("got %d", got)
	}
	if got := collapse("broken", int64(7), errors.New("boom")); got != 0 {
		t.Errorf("got %d, want zero on error", got)
	}
	if got := collapse("broken slice", []string{"x"}, errors.New("boom")); got != nil {
		t.Errorf("got %v, want nil on error", got)
	}
}

func TestCountryStatsNeverNil(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, _ := newTestBackend(t, now, nil)

	stats := b.CountryStats()
	if stats == nil {
		t.Fatal("empty breakdown must be an empty slice, not nil")
	}
	if len(stats) != 0 {
		t.Errorf("got %d rows", len(stats))
	}
}

func TestRecentVisitsMasksOutput(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	resolver := &fakeGeo{country: geo.Country{Code: "US", Name: "United States"}}
	b, _ := newTestBackend(t, now, resolver)

	b.RecordVisit("/about", "8.8.4.4", "agent")

	visits := b.RecentVisits()
	if len(visits) != 1 {
		t.Fatalf("got %d visits", len(visits))
	}
	if visits[0].IPMasked != "8.8.xxx.xxx" {
		t.Errorf("masked = %q", visits[0].IPMasked)
	}
	if visits[0].CountryCode != "US" || visits[0].CountryName != "United States" {
		t.Errorf("country = %q/%q", visits[0].CountryCode, visits[0].CountryName)
	}
}
