package model

import (
	"strings"
	"time"
)

type ErrorResponse struct {
	Status  int         `json:"status,omitempty"`
	Message string      `json:"msg,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AdminInfo struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

type TokenResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	TokenType    string     `json:"token_type"`
	Admin        *AdminInfo `json:"admin,omitempty"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

func (r CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidation("name", "category name must be provided")
	}
	if strings.TrimSpace(r.Slug) == "" {
		return NewValidation("slug", "category slug must be provided")
	}
	return nil
}

// CategoryUpdateRequest is a patch: nil fields are left unchanged.
type CategoryUpdateRequest struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

type PostRequest struct {
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Content      string `json:"content"`
	Excerpt      string `json:"excerpt,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	CategoryID   *uint  `json:"category_id,omitempty"`
	Tags         string `json:"tags,omitempty"`
	IsPublished  bool   `json:"is_published"`
}

func (r PostRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return NewValidation("title", "post title must be provided")
	}
	if strings.TrimSpace(r.Slug) == "" {
		return NewValidation("slug", "post slug must be provided")
	}
	if strings.TrimSpace(r.Content) == "" {
		return NewValidation("content", "post content must be provided")
	}
	return nil
}

// PostUpdateRequest is a patch: nil fields are left unchanged. Setting
// CategoryID to 0 clears the category.
type PostUpdateRequest struct {
	Title        *string `json:"title,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	Content      *string `json:"content,omitempty"`
	Excerpt      *string `json:"excerpt,omitempty"`
	ThumbnailURL *string `json:"thumbnail_url,omitempty"`
	CategoryID   *uint   `json:"category_id,omitempty"`
	Tags         *string `json:"tags,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
}

// PostListOptions filters the public listing. Category and CategoryID
// are mutually exclusive; CategoryID wins when both are set.
type PostListOptions struct {
	Page       int
	Limit      int
	CategoryID uint
	Category   string
	Search     string
}

func (o PostListOptions) Validate() error {
	if o.Page < 1 {
		return NewValidation("page", "page must be >= 1")
	}
	if o.Limit < 1 {
		return NewValidation("limit", "limit must be > 0")
	}
	return nil
}

type InquiryRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	CountryCode  string       `json:"country_code,omitempty"`
	Phone        string       `json:"phone,omitempty"`
	Company      string       `json:"company,omitempty"`
	Subject      string       `json:"subject"`
	Message      string       `json:"message"`
	ServiceType  string       `json:"service_type,omitempty"`
	UrgencyLevel UrgencyLevel `json:"urgency_level,omitempty"`
}

func (r InquiryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidation("name", "name must be provided")
	}
	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		return NewValidation("email", "a valid email must be provided")
	}
	if strings.TrimSpace(r.Subject) == "" {
		return NewValidation("subject", "subject must be provided")
	}
	if strings.TrimSpace(r.Message) == "" {
		return NewValidation("message", "message must be provided")
	}
	if r.UrgencyLevel != "" {
		if err := r.UrgencyLevel.IsValid(); err != nil {
			return NewValidation("urgency_level", "%v", err)
		}
	}
	return nil
}

// InquiryUpdateRequest is a patch over the admin-mutable fields.
type InquiryUpdateRequest struct {
	Status       *InquiryStatus `json:"status,omitempty"`
	UrgencyLevel *UrgencyLevel  `json:"urgency_level,omitempty"`
}

func (r InquiryUpdateRequest) Validate() error {
	if r.Status != nil {
		if err := r.Status.IsValid(); err != nil {
			return NewValidation("status", "%v", err)
		}
	}
	if r.UrgencyLevel != nil {
		if err := r.UrgencyLevel.IsValid(); err != nil {
			return NewValidation("urgency_level", "%v", err)
		}
	}
	return nil
}

type InquiryListOptions struct {
	Page   int
	Limit  int
	IsRead *bool
	Status *InquiryStatus
}

type InquiryStats struct {
	Total  int64 `json:"total"`
	Unread int64 `json:"unread"`
	Today  int64 `json:"today"`
}

type TrackRequest struct {
	PagePath string `json:"page_path"`
}

type AnalyticsStats struct {
	TotalVisits      int64 `json:"total_visits"`
	UniqueVisitors   int64 `json:"unique_visitors"`
	VisitorsToday    int64 `json:"visitors_today"`
	VisitorsThisWeek int64 `json:"visitors_this_week"`
	VisitorsMonth    int64 `json:"visitors_this_month"`
}

type CountryStat struct {
	CountryCode  string `json:"country_code"`
	CountryName  string `json:"country_name"`
	VisitorCount int64  `json:"visitor_count"`
}

// RecentVisit exposes only the masked address, never the raw one.
type RecentVisit struct {
	IPMasked    string    `json:"ip_masked"`
	PagePath    string    `json:"page_path"`
	CountryCode string    `json:"country_code,omitempty"`
	CountryName string    `json:"country_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type UploadResponse struct {
	URL              string `json:"url"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"original_filename"`
	Storage          string `json:"storage"`
}

type ChangeStat struct {
	Percentage string `json:"percentage"`
	Type       string `json:"type"` // positive, negative or neutral
}

type DashboardStats struct {
	TotalPosts     int64 `json:"total_posts"`
	PublishedPosts int64 `json:"published_posts"`
	TotalInquiries int64 `json:"total_inquiries"`
	TotalViews     int64 `json:"total_views"`
	RecentActivity int64 `json:"recent_activity"`

	Changes struct {
		Posts     ChangeStat `json:"posts"`
		Inquiries ChangeStat `json:"inquiries"`
		Activity  ChangeStat `json:"activity"`
	} `json:"changes"`
}

type ActivityItem struct {
	Type      string    `json:"type"` // inquiry or post
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
