package db

import (
	"testing"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/clock"
)

func addVisit(t *testing.T, d Database, ip, masked string, country *string, name *string, at time.Time) {
	t.Helper()
	err := d.CreateVisit(&Visit{
		IPAddress:   ip,
		IPMasked:    masked,
		PagePath:    "/",
		CountryCode: country,
		CountryName: name,
		CreatedAt:   at,
	})
	if err != nil {
		t.Fatalf("creating visit: %v", err)
	}
}

func TestVisitCounts(t *testing.T) {
	d := newTestDB(t)
	now := time.Now().In(clock.Location)

	addVisit(t, d, "1.2.3.4", "1.2.xxx.xxx", nil, nil, now)
	addVisit(t, d, "1.2.3.4", "1.2.xxx.xxx", nil, nil, now)
	addVisit(t, d, "5.6.7.8", "5.6.xxx.xxx", nil, nil, now)

	total, err := d.CountVisits()
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}

	// Two visits from the same address are one visitor.
	unique, err := d.CountUniqueVisitors()
	if err != nil {
		t.Fatal(err)
	}
	if unique != 2 {
		t.Errorf("unique = %d, want 2", unique)
	}
}

func TestCountUniqueVisitorsSince(t *testing.T) {
	d := newTestDB(t)
	now := time.Now().In(clock.Location)
	dayStart := clock.StartOfDay(now)

	// One visitor just before midnight, two after.
	addVisit(t, d, "1.1.1.1", "1.1.xxx.xxx", nil, nil, dayStart.Add(-time.Minute))
	addVisit(t, d, "2.2.2.2", "2.2.xxx.xxx", nil, nil, dayStart)
	addVisit(t, d, "3.3.3.3", "3.3.xxx.xxx", nil, nil, dayStart.Add(time.Hour))
	addVisit(t, d, "3.3.3.3", "3.3.xxx.xxx", nil, nil, dayStart.Add(2*time.Hour))

	n, err := d.CountUniqueVisitorsSince(dayStart)
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("since day start = %d, want 2", n)
	}
}

func TestCountryBreakdown(t *testing.T) {
	d := newTestDB(t)
	now := time.Now().In(clock.Location)

	kr, krName := "KR", "South Korea"
	us, usName := "US", "United States"
	de, deName := "DE", "Germany"

	// KR: two distinct IPs, one of them twice. US and DE: one each.
	addVisit(t, d, "1.1.1.1", "1.1.xxx.xxx", &kr, &krName, now)
	addVisit(t, d, "1.1.1.1", "1.1.xxx.xxx", &kr, &krName, now)
	addVisit(t, d, "2.2.2.2", "2.2.xxx.xxx", &kr, &krName, now)
	addVisit(t, d, "3.3.3.3", "3.3.xxx.xxx", &us, &usName, now)
	addVisit(t, d, "4.4.4.4", "4.4.xxx.xxx", &de, &deName, now)
	// Ungeolocated visits never show up in the breakdown.
	addVisit(t, d, "5.5.5.5", "5.5.xxx.xxx", nil, nil, now)

	stats, err := d.CountryBreakdown(20)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 3 {
		t.Fatalf("got %d rows, want 3: %+v", len(stats), stats)
	}
	if stats[0].CountryCode != "KR" || stats[0].VisitorCount != 2 {
		t.Errorf("top row = %+v, want KR with 2", stats[0])
	}
	// DE and US tie at one visitor each; code breaks the tie.
	if stats[1].CountryCode != "DE" || stats[2].CountryCode != "US" {
		t.Errorf("tie order = %s, %s, want DE, US", stats[1].CountryCode, stats[2].CountryCode)
	}
	if stats[0].CountryName != "South Korea" {
		t.Errorf("name = %q", stats[0].CountryName)
	}

	stats, err = d.CountryBreakdown(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) != 1 {
		t.Errorf("limit 1 returned %d rows", len(stats))
	}
}

func TestRecentVisits(t *testing.T) {
	d := newTestDB(t)
	now := time.Now().In(clock.Location)

	addVisit(t, d, "1.1.1.1", "1.1.xxx.xxx", nil, nil, now.Add(-2*time.Hour))
	addVisit(t, d, "2.2.2.2", "2.2.xxx.xxx", nil, nil, now)
	addVisit(t, d, "3.3.3.3", "3.3.xxx.xxx", nil, nil, now.Add(-time.Hour))

	visits, err := d.RecentVisits(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 2 {
		t.Fatalf("got %d visits", len(visits))
	}
	if visits[0].IPMasked != "2.2.xxx.xxx" || visits[1].IPMasked != "3.3.xxx.xxx" {
		t.Errorf("order = %s, %s", visits[0].IPMasked, visits[1].IPMasked)
	}
}

func TestPurgeVisitsBefore(t *testing.T) {
	d := newTestDB(t)
	now := time.Now().In(clock.Location)

	addVisit(t, d, "1.1.1.1", "1.1.xxx.xxx", nil, nil, now.AddDate(0, 0, -100))
	addVisit(t, d, "2.2.2.2", "2.2.xxx.xxx", nil, nil, now.AddDate(0, 0, -40))
	addVisit(t, d, "3.3.3.3", "3.3.xxx.xxx", nil, nil, now)

	purged, err := d.PurgeVisitsBefore(now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatal(err)
	}
	if purged != 2 {
		t.Errorf("purged = %d, want 2", purged)
	}

	total, err := d.CountVisits()
	if err != nil {
		t.Fatal(err)
	}
	if total != 1 {
		t.Errorf("remaining = %d, want 1", total)
	}
}
