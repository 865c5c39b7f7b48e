package db

import (
	"time"

	"github.com/basalt-io/basalt-cms/pkg/model"
)

type Admin struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100" json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:100" json:"name"`
	Slug        string    `gorm:"uniqueIndex;size:100" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Post struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Title        string    `gorm:"size:255;index" json:"title"`
	Slug         string    `gorm:"uniqueIndex;size:255" json:"slug"`
	Content      string    `gorm:"type:text" json:"content"`
	Excerpt      string    `gorm:"type:text" json:"excerpt,omitempty"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnail_url,omitempty"`
	CategoryID   *uint     `gorm:"index" json:"category_id,omitempty"`
	Category     *Category `gorm:"constraint:OnDelete:SET NULL;" json:"category,omitempty"`
	Tags         string    `gorm:"type:text" json:"tags,omitempty"`
	IsPublished  bool      `gorm:"index" json:"is_published"`
	ViewCount    int64     `json:"view_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Inquiry struct {
	ID           uint                `gorm:"primarykey" json:"id"`
	Name         string              `gorm:"size:100" json:"name"`
	Email        string              `gorm:"size:100" json:"email"`
	CountryCode  string              `gorm:"size:10" json:"country_code,omitempty"`
	Phone        string              `gorm:"size:20" json:"phone,omitempty"`
	Company      string              `gorm:"size:100" json:"company,omitempty"`
	Subject      string              `gorm:"size:200" json:"subject"`
	Message      string              `gorm:"type:text" json:"message"`
	ServiceType  string              `gorm:"size:100" json:"service_type,omitempty"`
	UrgencyLevel model.UrgencyLevel  `gorm:"size:20;index" json:"urgency_level"`
	Status       model.InquiryStatus `gorm:"size:20;index" json:"status"`
	IsRead       bool                `gorm:"index" json:"is_read"`
	CreatedAt    time.Time           `json:"created_at"`
}

// Visit is one row per tracked page view. Rows are append-only:
// nothing updates them after creation and CreatedAt is stamped by the
// caller from the fixed-timezone clock. CountryCode and CountryName
// are both set or both nil.
type Visit struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	IPAddress   string    `gorm:"size:45;not null" json:"-"`
	IPMasked    string    `gorm:"size:45" json:"ip_masked"`
	PagePath    string    `gorm:"size:500;not null" json:"page_path"`
	CountryCode *string   `gorm:"size:2" json:"country_code,omitempty"`
	CountryName *string   `gorm:"size:100" json:"country_name,omitempty"`
	UserAgent   string    `gorm:"size:500" json:"user_agent,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}
