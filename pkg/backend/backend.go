package backend

import (
	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/geo"
	"github.com/basalt-io/basalt-cms/pkg/mail"
	"github.com/basalt-io/basalt-cms/pkg/model"
)

type PostPage struct {
	Posts      []db.Post `json:"posts"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

type InquiryPage struct {
	Inquiries  []db.Inquiry `json:"inquiries"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
	TotalPages int          `json:"total_pages"`
}

type Backend interface {
	// content
	ListCategories() ([]db.Category, error)
	CreateCategory(req model.CategoryRequest) (db.Category, error)
	UpdateCategory(id uint, req model.CategoryUpdateRequest) (db.Category, error)
	DeleteCategory(id uint) error
	PublicPosts(opts model.PostListOptions) (PostPage, error)
	PublicPostBySlug(slug string) (db.Post, error)
	AdminPosts(page, limit int) (PostPage, error)
	GetPost(id uint) (db.Post, error)
	CreatePost(req model.PostRequest) (db.Post, error)
	UpdatePost(id uint, req model.PostUpdateRequest) (db.Post, error)
	DeletePost(id uint) error

	// inquiries
	SubmitInquiry(req model.InquiryRequest) (db.Inquiry, error)
	Inquiries(opts model.InquiryListOptions) (InquiryPage, error)
	InquiryByID(id uint) (db.Inquiry, error)
	UpdateInquiry(id uint, req model.InquiryUpdateRequest) (db.Inquiry, error)
	DeleteInquiry(id uint) error
	InquiryStatistics() (model.InquiryStats, error)

	// visit ledger + analytics
	RecordVisit(pagePath, rawIP, userAgent string)
	AnalyticsStats() model.AnalyticsStats
	CountryStats() []model.CountryStat
	RecentVisits() []model.RecentVisit

	// admin dashboard
	DashboardStats() (model.DashboardStats, error)
	RecentActivity() ([]model.ActivityItem, error)

	// uploads
	Upload(data []byte, filename, contentType string) (model.UploadResponse, error)

	StartPurgerDaemon(done <-chan struct{})
}

type Options struct {
	// VisitMaxAgeDays bounds visit-ledger growth. Zero or negative
	// keeps records forever and disables the purge daemon.
	VisitMaxAgeDays      int64
	PurgeIntervalSeconds int64
}

type backend struct {
	db       db.Database
	clock    clock.Clock
	geo      geo.Resolver
	uploader *Uploader
	notifier *mail.Notifier
	opts     Options
}

func NewBackend(database db.Database, clk clock.Clock, resolver geo.Resolver, uploader *Uploader, notifier *mail.Notifier, opts Options) Backend {
	if opts.PurgeIntervalSeconds <= 0 {
		opts.PurgeIntervalSeconds = 3600
	}
	return &backend{
		db:       database,
		clock:    clk,
		geo:      resolver,
		uploader: uploader,
		notifier: notifier,
		opts:     opts,
	}
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
