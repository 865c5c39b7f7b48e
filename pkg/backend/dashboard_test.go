package backend

import (
	"testing"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/model"
)

func TestChangeStat(t *testing.T) {
	tests := []struct {
		name     string
		current  int64
		previous int64
		want     model.ChangeStat
	}{
		{"growth from zero", 5, 0, model.ChangeStat{Percentage: "+100%", Type: "positive"}},
		{"nothing either period", 0, 0, model.ChangeStat{Percentage: "0%", Type: "neutral"}},
		{"doubled", 10, 5, model.ChangeStat{Percentage: "+100%", Type: "positive"}},
		{"halved", 5, 10, model.ChangeStat{Percentage: "-50%", Type: "negative"}},
		{"flat", 7, 7, model.ChangeStat{Percentage: "0%", Type: "neutral"}},
		{"dropped to zero", 0, 4, model.ChangeStat{Percentage: "-100%", Type: "negative"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := changeStat(tt.current, tt.previous); got != tt.want {
				t.Errorf("changeStat(%d, %d) = %+v, want %+v", tt.current, tt.previous, got, tt.want)
			}
		})
	}
}

func TestDashboardStats(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, _ := newTestBackend(t, now, nil)

	if _, err := b.CreatePost(model.PostRequest{Title: "a", Slug: "a", Content: "body", IsPublished: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreatePost(model.PostRequest{Title: "b", Slug: "b", Content: "body"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.SubmitInquiry(model.InquiryRequest{Name: "Kim", Email: "k@e.com", Subject: "s", Message: "m"}); err != nil {
		t.Fatal(err)
	}

	stats, err := b.DashboardStats()
	if err != nil {
		t.Fatal(err)
	}
	if stats.TotalPosts != 2 {
		t.Errorf("total posts = %d", stats.TotalPosts)
	}
	if stats.PublishedPosts != 1 {
		t.Errorf("published posts = %d", stats.PublishedPosts)
	}
	if stats.TotalInquiries != 1 {
		t.Errorf("total inquiries = %d", stats.TotalInquiries)
	}
	if stats.TotalViews != 0 {
		t.Errorf("total views = %d", stats.TotalViews)
	}
}

func TestRecentActivity(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, _ := newTestBackend(t, now, nil)

	if _, err := b.CreatePost(model.PostRequest{Title: "Launch", Slug: "launch", Content: "body", IsPublished: true}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.CreatePost(model.PostRequest{Title: "Draft", Slug: "draft", Content: "body"}); err != nil {
		t.Fatal(err)
	}
	if _, err := b.SubmitInquiry(model.InquiryRequest{Name: "Kim", Email: "k@e.com", Subject: "s", Message: "m"}); err != nil {
		t.Fatal(err)
	}

	items, err := b.RecentActivity()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items", len(items))
	}

	var sawInquiry, sawPublished, sawDraft bool
	for _, item := range items {
		switch item.Message {
		case "New inquiry from Kim":
			sawInquiry = true
		case "Published post: Launch":
			sawPublished = true
		case "Created draft post: Draft":
			sawDraft = true
		}
	}
	if !sawInquiry || !sawPublished || !sawDraft {
		t.Errorf("items = %+v", items)
	}

	// Newest first.
	for i := 1; i < len(items); i++ {
		if items[i].CreatedAt.After(items[i-1].CreatedAt) {
			t.Errorf("items out of order at %d", i)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 50); got != "short" {
		t.Errorf("got %q", got)
	}
	long := "this title is definitely longer than the fifty character limit imposed"
	got := truncate(long, 50)
	if len(got) != 53 || got[:50] != long[:50] {
		t.Errorf("got %q", got)
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := totalPages(tt.total, tt.limit); got != tt.want {
			t.Errorf("totalPages(%d, %d) = %d, want %d", tt.total, tt.limit, got, tt.want)
		}
	}
}

func TestSubmitInquiryWithoutNotifier(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, clock.Location)
	b, _ := newTestBackend(t, now, nil)

	// Notifier is nil here; submission must work regardless.
	inquiry, err := b.SubmitInquiry(model.InquiryRequest{Name: "Kim", Email: "k@e.com", Subject: "s", Message: "m"})
	if err != nil {
		t.Fatal(err)
	}
	if inquiry.ID == 0 {
		t.Error("inquiry not persisted")
	}
}
