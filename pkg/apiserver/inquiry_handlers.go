package apiserver

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/basalt-io/basalt-cms/pkg/model"
)

func (h *handler) createInquiry(w http.ResponseWriter, r *http.Request) {
	var input model.InquiryRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}
	if err := input.Validate(); err != nil {
		handleError(w, err)
		return
	}

	inquiry, err := h.backend.SubmitInquiry(input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, inquiry)
}

func (h *handler) listInquiries(w http.ResponseWriter, r *http.Request) {
	page, err := queryInt(r, "page", 1)
	if err != nil {
		handleError(w, err)
		return
	}
	limit, err := queryInt(r, "limit", 10)
	if err != nil {
		handleError(w, err)
		return
	}
	if page < 1 || limit < 1 {
		handleError(w, model.NewValidation("page", "page must be >= 1 and limit > 0"))
		return
	}

	opts := model.InquiryListOptions{Page: page, Limit: limit}

	if raw := r.URL.Query().Get("is_read"); raw != "" {
		isRead, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(w, model.NewValidation("is_read", "is_read must be a boolean"))
			return
		}
		opts.IsRead = &isRead
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.InquiryStatus(raw)
		if err := status.IsValid(); err != nil {
			handleError(w, model.NewValidation("status", "%v", err))
			return
		}
		opts.Status = &status
	}

	result, err := h.backend.Inquiries(opts)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, result)
}

func (h *handler) inquiryStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.backend.InquiryStatistics()
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, stats)
}

func (h *handler) getInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	inquiry, err := h.backend.InquiryByID(id)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, inquiry)
}

func (h *handler) updateInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	var input model.InquiryUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		handleError(w, model.NewValidation("body", "invalid request body"))
		return
	}
	if err := input.Validate(); err != nil {
		handleError(w, err)
		return
	}

	inquiry, err := h.backend.UpdateInquiry(id, input)
	if err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, inquiry)
}

func (h *handler) deleteInquiry(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, err)
		return
	}

	if err := h.backend.DeleteInquiry(id); err != nil {
		handleError(w, err)
		return
	}
	writeSuccess(w, map[string]string{"message": "inquiry deleted"})
}
