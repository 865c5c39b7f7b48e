package backend

import (
	"fmt"
	"sort"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/model"
)

func (b *backend) DashboardStats() (model.DashboardStats, error) {
	now := b.clock.Now()
	monthStart := clock.StartOfMonth(now)
	lastMonthStart := clock.StartOfMonth(monthStart.AddDate(0, 0, -1))
	lastMonthEnd := monthStart.Add(-time.Second)
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)

	stats := model.DashboardStats{}
	var err error

	if stats.TotalPosts, err = b.db.CountPostsBetween(time.Time{}, time.Time{}); err != nil {
		return stats, err
	}
	if stats.PublishedPosts, err = b.db.CountPublishedPosts(); err != nil {
		return stats, err
	}
	if stats.TotalInquiries, err = b.db.CountInquiriesBetween(time.Time{}, time.Time{}); err != nil {
		return stats, err
	}
	if stats.TotalViews, err = b.db.SumViewCounts(); err != nil {
		return stats, err
	}
	if stats.RecentActivity, err = b.db.CountPostsBetween(weekAgo, time.Time{}); err != nil {
		return stats, err
	}

	postsThisMonth, err := b.db.CountPostsBetween(monthStart, time.Time{})
	if err != nil {
		return stats, err
	}
	postsLastMonth, err := b.db.CountPostsBetween(lastMonthStart, lastMonthEnd)
	if err != nil {
		return stats, err
	}
	inquiriesThisMonth, err := b.db.CountInquiriesBetween(monthStart, time.Time{})
	if err != nil {
		return stats, err
	}
	inquiriesLastMonth, err := b.db.CountInquiriesBetween(lastMonthStart, lastMonthEnd)
	if err != nil {
		return stats, err
	}
	postsLastWeek, err := b.db.CountPostsBetween(twoWeeksAgo, weekAgo)
	if err != nil {
		return stats, err
	}

	stats.Changes.Posts = changeStat(postsThisMonth, postsLastMonth)
	stats.Changes.Inquiries = changeStat(inquiriesThisMonth, inquiriesLastMonth)
	stats.Changes.Activity = changeStat(stats.RecentActivity, postsLastWeek)

	return stats, nil
}

func changeStat(current, previous int64) model.ChangeStat {
	if previous == 0 {
		if current > 0 {
			return model.ChangeStat{Percentage: "+100%", Type: "positive"}
		}
		return model.ChangeStat{Percentage: "0%", Type: "neutral"}
	}

	change := float64(current-previous) / float64(previous) * 100
	switch {
	case change > 0:
		return model.ChangeStat{Percentage: fmt.Sprintf("+%.0f%%", change), Type: "positive"}
	case change < 0:
		return model.ChangeStat{Percentage: fmt.Sprintf("%.0f%%", change), Type: "negative"}
	default:
		return model.ChangeStat{Percentage: "0%", Type: "neutral"}
	}
}

const recentActivityLimit = 10

func (b *backend) RecentActivity() ([]model.ActivityItem, error) {
	inquiries, err := b.db.RecentInquiries(5)
	if err != nil {
		return nil, err
	}
	posts, err := b.db.RecentPosts(5)
	if err != nil {
		return nil, err
	}

	items := make([]model.ActivityItem, 0, len(inquiries)+len(posts))
	for _, inq := range inquiries {
		items = append(items, model.ActivityItem{
			Type:      "inquiry",
			Message:   fmt.Sprintf("New inquiry from %s", inq.Name),
			CreatedAt: inq.CreatedAt,
		})
	}
	for _, p := range posts {
		action := "Created draft"
		if p.IsPublished {
			action = "Published"
		}
		items = append(items, model.ActivityItem{
			Type:      "post",
			Message:   fmt.Sprintf("%s post: %s", action, truncate(p.Title, 50)),
			CreatedAt: p.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	if len(items) > recentActivityLimit {
		items = items[:recentActivityLimit]
	}
	return items, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
