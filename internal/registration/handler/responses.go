package handler

import (
	"time"

	"github.com/google/uuid"

	"flock/internal/domain"
	"flock/internal/registration/models"
	"flock/internal/registration/service"
)

// RegistrationResponse is the wire shape of a single registration. Status is
// rendered in the domain's vocabulary ("approved" outside the events domain).
type RegistrationResponse struct {
	ID        uuid.UUID  `json:"id"`
	SubjectID string     `json:"subject_id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Status    string     `json:"status"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// FromRegistration converts a domain registration to its response shape.
func FromRegistration(reg *models.Registration, d domain.Descriptor) *RegistrationResponse {
	return &RegistrationResponse{
		ID:        reg.ID,
		SubjectID: reg.SubjectID,
		Email:     reg.Contact.Email,
		Name:      reg.Contact.Name,
		Phone:     reg.Contact.Phone,
		Status:    d.DispositionLabel(reg.Status),
		UserID:    reg.UserID,
		CreatedAt: reg.CreatedAt,
	}
}

// PageResponse is the listing surface's response: one page of items plus the
// aggregation over the full filtered collection.
type PageResponse struct {
	Items        []*RegistrationResponse `json:"items"`
	Total        int                     `json:"total"`
	Page         int                     `json:"page"`
	PageSize     int                     `json:"page_size"`
	StatusCounts map[string]int          `json:"status_counts"`
}

// FromPage converts an aggregated page to its response shape.
func FromPage(page *models.Page, pageNum, pageSize int, d domain.Descriptor) *PageResponse {
	items := make([]*RegistrationResponse, 0, len(page.Items))
	for _, reg := range page.Items {
		items = append(items, FromRegistration(reg, d))
	}
	return &PageResponse{
		Items:        items,
		Total:        page.Total,
		Page:         pageNum,
		PageSize:     pageSize,
		StatusCounts: FromStatusCounts(page.StatusCounts),
	}
}

// FromStatusCounts renders counts keyed by canonical status names.
func FromStatusCounts(counts models.StatusCounts) map[string]int {
	out := make(map[string]int, len(counts))
	for status, n := range counts {
		out[status.String()] = n
	}
	return out
}

// TransitionResponse reports a disposition change. Notice is set only for
// partial success, worded so it never implies the status change failed.
type TransitionResponse struct {
	Registration *RegistrationResponse `json:"registration"`
	Notified     bool                  `json:"notified"`
	Notice       string                `json:"notice,omitempty"`
}

// FromTransitionResult converts a transition outcome to its response shape.
func FromTransitionResult(result *service.TransitionResult, d domain.Descriptor) *TransitionResponse {
	resp := &TransitionResponse{
		Registration: FromRegistration(result.Registration, d),
		Notified:     result.Notified,
	}
	if !result.Notified {
		resp.Notice = "status updated, but the notification could not be sent"
	}
	return resp
}
