package backend

import (
	"testing"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
)

func TestPurgeVisits(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, database := newTestBackend(t, now, nil)
	b.opts.VisitMaxAgeDays = 30

	for _, age := range []int{60, 31, 29, 0} {
		err := database.CreateVisit(&db.Visit{
			IPAddress: "1.1.1.1",
			IPMasked:  "1.1.xxx.xxx",
			PagePath:  "/",
			CreatedAt: now.AddDate(0, 0, -age),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	b.purgeVisits()

	remaining, err := database.CountVisits()
	if err != nil {
		t.Fatal(err)
	}
	if remaining != 2 {
		t.Errorf("remaining = %d, want the two visits younger than 30 days", remaining)
	}
}

func TestStartPurgerDaemonDisabled(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, _ := newTestBackend(t, now, nil)

	// Retention off: the call must return immediately instead of
	// blocking until the stop channel closes.
	done := make(chan struct{})
	go func() {
		b.StartPurgerDaemon(make(chan struct{}))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("daemon started with retention disabled")
	}
}
