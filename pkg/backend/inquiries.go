package backend

import (
	"github.com/basalt-io/basalt-cms/pkg/clock"
	"github.com/basalt-io/basalt-cms/pkg/db"
	"github.com/basalt-io/basalt-cms/pkg/model"
	"github.com/sirupsen/logrus"
)

func (b *backend) SubmitInquiry(req model.InquiryRequest) (db.Inquiry, error) {
	inquiry, err := b.db.CreateInquiry(req)
	if err != nil {
		return inquiry, err
	}

	// Notification is fire-and-forget: the submission response never
	// waits on SMTP and never reports its failure.
	if b.notifier.Enabled() {
		go func(inq db.Inquiry) {
			if err := b.notifier.NotifyInquiry(inq); err != nil {
				logrus.WithError(err).WithField("inquiry", inq.ID).Error("inquiry notification failed")
			}
		}(inquiry)
	}

	return inquiry, nil
}

func (b *backend) Inquiries(opts model.InquiryListOptions) (InquiryPage, error) {
	inquiries, total, err := b.db.ListInquiries(opts)
	if err != nil {
		return InquiryPage{}, err
	}
	return InquiryPage{
		Inquiries:  inquiries,
		Total:      total,
		Page:       opts.Page,
		Limit:      opts.Limit,
		TotalPages: totalPages(total, opts.Limit),
	}, nil
}

func (b *backend) InquiryByID(id uint) (db.Inquiry, error) {
	return b.db.GetInquiryMarkRead(id)
}

func (b *backend) UpdateInquiry(id uint, req model.InquiryUpdateRequest) (db.Inquiry, error) {
	return b.db.UpdateInquiry(id, req)
}

func (b *backend) DeleteInquiry(id uint) error {
	return b.db.DeleteInquiry(id)
}

func (b *backend) InquiryStatistics() (model.InquiryStats, error) {
	return b.db.InquiryStats(clock.StartOfDay(b.clock.Now()))
}
