package db

import (
	"time"

	"github.com/basalt-io/basalt-cms/pkg/model"
	"gorm.io/gorm"
)

func (d *database) CreateInquiry(req model.InquiryRequest) (Inquiry, error) {
	urgency := req.UrgencyLevel
	if urgency == "" {
		urgency = model.UrgencyNormal
	}

	inquiry := Inquiry{
		Name:         req.Name,
		Email:        req.Email,
		CountryCode:  req.CountryCode,
		Phone:        req.Phone,
		Company:      req.Company,
		Subject:      req.Subject,
		Message:      req.Message,
		ServiceType:  req.ServiceType,
		UrgencyLevel: urgency,
		Status:       model.StatusNew,
		IsRead:       false,
	}
	sql := d.db.Create(&inquiry)
	return inquiry, sql.Error
}

func (d *database) ListInquiries(opts model.InquiryListOptions) ([]Inquiry, int64, error) {
	query := d.db.Model(&Inquiry{})
	if opts.IsRead != nil {
		query = query.Where("is_read = ?", *opts.IsRead)
	}
	if opts.Status != nil {
		query = query.Where("status = ?", *opts.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var inquiries []Inquiry
	sql := query.Order("created_at desc").
		Offset((opts.Page - 1) * opts.Limit).
		Limit(opts.Limit).
		Find(&inquiries)
	return inquiries, total, sql.Error
}

// GetInquiryMarkRead fetches an inquiry and flips is_read on first
// view. The status field is left untouched.
func (d *database) GetInquiryMarkRead(id uint) (Inquiry, error) {
	var inquiry Inquiry
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Where("id = ?", id).Limit(1).Find(&inquiry)
		if sql.Error != nil {
			return sql.Error
		}
		if inquiry.ID == 0 {
			return model.NewNotFound("inquiry")
		}

		if !inquiry.IsRead {
			sql = tx.Model(&Inquiry{}).Where("id = ?", inquiry.ID).Update("is_read", true)
			if sql.Error != nil {
				return sql.Error
			}
			inquiry.IsRead = true
		}
		return nil
	})
	return inquiry, err
}

func (d *database) UpdateInquiry(id uint, req model.InquiryUpdateRequest) (Inquiry, error) {
	var inquiry Inquiry
	err := d.db.Transaction(func(tx *gorm.DB) error {
		sql := tx.Where("id = ?", id).Limit(1).Find(&inquiry)
		if sql.Error != nil {
			return sql.Error
		}
		if inquiry.ID == 0 {
			return model.NewNotFound("inquiry")
		}

		if req.Status != nil {
			inquiry.Status = *req.Status
			// A status change implies the inquiry has been looked at.
			inquiry.IsRead = true
		}
		if req.UrgencyLevel != nil {
			inquiry.UrgencyLevel = *req.UrgencyLevel
		}

		return tx.Save(&inquiry).Error
	})
	return inquiry, err
}

func (d *database) DeleteInquiry(id uint) error {
	sql := d.db.Delete(&Inquiry{}, id)
	if sql.Error != nil {
		return sql.Error
	}
	if sql.RowsAffected == 0 {
		return model.NewNotFound("inquiry")
	}
	return nil
}

func (d *database) InquiryStats(todayStart time.Time) (model.InquiryStats, error) {
	stats := model.InquiryStats{}

	if err := d.db.Model(&Inquiry{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := d.db.Model(&Inquiry{}).Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return stats, err
	}
	if err := d.db.Model(&Inquiry{}).Where("created_at >= ?", todayStart).Count(&stats.Today).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (d *database) CountInquiriesBetween(from, to time.Time) (int64, error) {
	query := d.db.Model(&Inquiry{})
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at <= ?", to)
	}
	var n int64
	sql := query.Count(&n)
	return n, sql.Error
}

func (d *database) RecentInquiries(limit int) ([]Inquiry, error) {
	var inquiries []Inquiry
	sql := d.db.Order("created_at desc").Limit(limit).Find(&inquiries)
	return inquiries, sql.Error
}
