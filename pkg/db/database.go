package db

import (
	"context"
	"fmt"
	"time"

	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database interface {
	// admins
	GetAdminByUsername(username string) (Admin, error)
	CreateAdmin(username, passwordHash string) (Admin, error)
	CountAdmins() (int64, error)

	// categories
	ListCategories() ([]Category, error)
	GetCategory(id uint) (Category, error)
	CreateCategory(req model.CategoryRequest) (Category, error)
	UpdateCategory(id uint, req model.CategoryUpdateRequest) (Category, error)
	DeleteCategory(id uint) error

	// posts
	ListPublishedPosts(opts model.PostListOptions) ([]Post, int64, error)
	GetPublishedPostBySlug(slug string) (Post, error)
	ListPosts(page, limit int) ([]Post, int64, error)
	GetPost(id uint) (Post, error)
	CreatePost(req model.PostRequest) (Post, error)
	UpdatePost(id uint, req model.PostUpdateRequest) (Post, error)
	DeletePost(id uint) error
	CountPostsBetween(from, to time.Time) (int64, error)
	CountPublishedPosts() (int64, error)
	SumViewCounts() (int64, error)
	RecentPosts(limit int) ([]Post, error)

	// inquiries
	CreateInquiry(req model.InquiryRequest) (Inquiry, error)
	ListInquiries(opts model.InquiryListOptions) ([]Inquiry, int64, error)
	GetInquiryMarkRead(id uint) (Inquiry, error)
	UpdateInquiry(id uint, req model.InquiryUpdateRequest) (Inquiry, error)
	DeleteInquiry(id uint) error
	InquiryStats(todayStart time.Time) (model.InquiryStats, error)
	CountInquiriesBetween(from, to time.Time) (int64, error)
	RecentInquiries(limit int) ([]Inquiry, error)

	// visit ledger
	CreateVisit(v *Visit) error
	CountVisits() (int64, error)
	CountUniqueVisitors() (int64, error)
	CountUniqueVisitorsSince(since time.Time) (int64, error)
	CountryBreakdown(limit int) ([]model.CountryStat, error)
	RecentVisits(limit int) ([]Visit, error)
	PurgeVisitsBefore(cutoff time.Time) (int64, error)
}

type database struct {
	db *gorm.DB
}

// New creates a new database connection
func New(ctx context.Context, dialect string, dsn string, config *gorm.Config) (Database, error) {
	if config == nil {
		config = &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		}
	}

	var db *gorm.DB
	var err error

	if dialect == "sqlite" {
		db, err = gorm.Open(sqlite.Open(dsn), config)
		if err == nil {
			db.Exec("PRAGMA foreign_keys = ON")
		}
	} else if dialect == "mysql" {
		db, err = gorm.Open(mysql.Open(dsn), config)
	} else {
		return nil, fmt.Errorf("unsupported dialect: %s", dialect)
	}

	if err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&Admin{},
		&Category{},
		&Post{},
		&Inquiry{},
		&Visit{},
	); err != nil {
		return nil, err
	}

	return &database{db: db}, nil
}

func (d *database) GetAdminByUsername(username string) (Admin, error) {
	admin := Admin{}
	sql := d.db.Where("username = ?", username).Limit(1).Find(&admin)
	return admin, sql.Error
}

func (d *database) CreateAdmin(username, passwordHash string) (Admin, error) {
	admin := Admin{
		Username:     username,
		PasswordHash: passwordHash,
	}
	sql := d.db.Create(&admin)
	return admin, sql.Error
}

func (d *database) CountAdmins() (int64, error) {
	var n int64
	sql := d.db.Model(&Admin{}).Count(&n)
	return n, sql.Error
}
