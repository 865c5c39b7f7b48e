package backend

import (
	"time"

	"github.com/sirupsen/logrus"
	"k8s.io/apimachinery/pkg/util/wait"
)

// StartPurgerDaemon prunes visit-ledger rows older than the configured
// retention. With retention disabled (the default) the ledger grows
// unbounded and the daemon never starts.
func (b *backend) StartPurgerDaemon(stopCh <-chan struct{}) {
	if b.opts.VisitMaxAgeDays <= 0 {
		logrus.Info("visit retention disabled, purge daemon not starting")
		return
	}

	logrus.Infof("starting visit purge daemon. Purge interval: %vs, max visit age: %v days",
		b.opts.PurgeIntervalSeconds, b.opts.VisitMaxAgeDays)
	wait.JitterUntil(b.purgeVisits, time.Duration(b.opts.PurgeIntervalSeconds)*time.Second, .002, true, stopCh)
}

func (b *backend) purgeVisits() {
	cutoff := b.clock.Now().AddDate(0, 0, -int(b.opts.VisitMaxAgeDays))

	purged, err := b.db.PurgeVisitsBefore(cutoff)
	if err != nil {
		logrus.Errorf("problem purging old visits: %v", err)
		return
	}
	logrus.Infof("Visits purged from DB: %v", purged)
}
