package backend

import (
	"context"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/ipaddr"
	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/sirupsen/logrus"
)

const maxUserAgentLength = 500

// RecordVisit appends one ledger row for a tracked page view. It is
// deliberately infallible from the caller's side: classification,
// geolocation and storage problems are logged and swallowed so that
// tracking can never break the page that triggered it.
func (b *backend) RecordVisit(pagePath, rawIP, userAgent string) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("recovered while recording visit: %v", r)
		}
	}()

	routable, masked := ipaddr.ClassifyAndMask(rawIP)

	if len(userAgent) > maxUserAgentLength {
		userAgent = userAgent[:maxUserAgentLength]
	}

	visit := &db.Visit{
		IPAddress: rawIP,
		IPMasked:  masked,
		PagePath:  pagePath,
		UserAgent: userAgent,
		CreatedAt: b.clock.Now(),
	}

	if routable {
		// The resolver enforces its own timeout; an aborted page
		// request cannot cancel a recording already in flight.
		if country := b.geo.ResolveCountry(context.Background(), rawIP); !country.IsZero() {
			code, name := country.Code, country.Name
			visit.CountryCode = &code
			visit.CountryName = &name
		}
	}

	if err := b.db.CreateVisit(visit); err != nil {
		logrus.WithError(err).Error("failed to record visit")
	}
}

// collapse is the uniform analytics failure boundary: a storage error
// is logged and the zero value reported, so the admin page renders.
func collapse[T any](what string, v T, err error) T {
	if err != nil {
		logrus.WithError(err).Errorf("analytics query failed: %s", what)
		var zero T
		return zero
	}
	return v
}

func (b *backend) AnalyticsStats() model.AnalyticsStats {
	now := b.clock.Now()
	totalVisits, totalVisitsErr := b.db.CountVisits()
	uniqueVisitors, uniqueVisitorsErr := b.db.CountUniqueVisitors()
	visitorsToday, visitorsTodayErr := b.db.CountUniqueVisitorsSince(clock.StartOfDay(now))
	visitorsWeek, visitorsWeekErr := b.db.CountUniqueVisitorsSince(clock.StartOfWeek(now))
	visitorsMonth, visitorsMonthErr := b.db.CountUniqueVisitorsSince(clock.StartOfMonth(now))
	return model.AnalyticsStats{
		TotalVisits:      collapse("total visits", totalVisits, totalVisitsErr),
		UniqueVisitors:   collapse("unique visitors", uniqueVisitors, uniqueVisitorsErr),
		VisitorsToday:    collapse("visitors today", visitorsToday, visitorsTodayErr),
		VisitorsThisWeek: collapse("visitors this week", visitorsWeek, visitorsWeekErr),
		VisitorsMonth:    collapse("visitors this month", visitorsMonth, visitorsMonthErr),
	}
}

const countryStatsLimit = 20

func (b *backend) CountryStats() []model.CountryStat {
	breakdown, breakdownErr := b.db.CountryBreakdown(countryStatsLimit)
	stats := collapse("country breakdown", breakdown, breakdownErr)
	if stats == nil {
		stats = []model.CountryStat{}
	}
	return stats
}

const recentVisitsLimit = 50

func (b *backend) RecentVisits() []model.RecentVisit {
	recent, recentErr := b.db.RecentVisits(recentVisitsLimit)
	visits := collapse("recent visits", recent, recentErr)

	out := make([]model.RecentVisit, 0, len(visits))
	for _, v := range visits {
		rv := model.RecentVisit{
			IPMasked:  v.IPMasked,
			PagePath:  v.PagePath,
			CreatedAt: v.CreatedAt,
		}
		if v.CountryCode != nil {
			rv.CountryCode = *v.CountryCode
		}
		if v.CountryName != nil {
			rv.CountryName = *v.CountryName
		}
		out = append(out, rv)
	}
	return out
}
