package model

import (
	"math"
	"time"
)

// ProjectType is the category a visitor picks on the contact form.
type ProjectType string

const (
	ProjectTypeWebApp      ProjectType = "webapp"
	ProjectTypeMobile      ProjectType = "mobile"
	ProjectTypeSystem      ProjectType = "system" // legacy system modernization
	ProjectTypeIntegration ProjectType = "integration"
	ProjectTypeDatabase    ProjectType = "database"
	ProjectTypeConsulting  ProjectType = "consulting"
)

// ProjectTypes lists the categories offered by the contact form.
var ProjectTypes = []ProjectType{
	ProjectTypeWebApp,
	ProjectTypeMobile,
	ProjectTypeSystem,
	ProjectTypeIntegration,
	ProjectTypeDatabase,
	ProjectTypeConsulting,
}

// Known reports whether p is one of the form's categories. The API stores
// unknown values as-is; this is only used for reporting.
func (p ProjectType) Known() bool {
	for _, t := range ProjectTypes {
		if t == p {
			return true
		}
	}
	return false
}

// Contact is one contact-form submission. Records are never updated after
// insert; the only mutation is deletion.
type Contact struct {
	ID                    string      `json:"_id"`
	Name                  string      `json:"name"`
	Email                 string      `json:"email"`
	Company               string      `json:"company,omitempty"`
	ProjectType           ProjectType `json:"projectType"`
	Message               string      `json:"message"`
	WantsFreeConsultation bool        `json:"wantsFreeConsultation"`
	CreatedAt             time.Time   `json:"createdAt"`
	IP                    string      `json:"ip,omitempty"`
	UserAgent             string      `json:"userAgent,omitempty"`
}

// ContactListOptions carries filter and pagination parameters for listing contacts.
type ContactListOptions struct {
	Page  int
	Limit int
	// ProjectType is matched exactly. Empty means no filter.
	ProjectType string
	// Search is a case-insensitive substring matched against name, email
	// and company. Empty means no filter.
	Search string
}

// Skip returns the number of records before the requested page. It
// saturates at math.MaxInt instead of overflowing.
func (o ContactListOptions) Skip() int {
	if o.Page < 1 || o.Limit < 1 {
		return 0
	}
	if o.Page-1 > math.MaxInt/o.Limit {
		return math.MaxInt
	}
	return (o.Page - 1) * o.Limit
}

// Filtered reports whether any filter is set.
func (o ContactListOptions) Filtered() bool {
	return o.ProjectType != "" || o.Search != ""
}

// Pagination describes one page of a listing. Total counts the filter set.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// NewPagination computes the page count as ceil(total/limit).
func NewPagination(page, limit int, total int64) Pagination {
	var pages int64
	if limit > 0 {
		pages = (total + int64(limit) - 1) / int64(limit)
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// ContactPage is one page of contacts plus its pagination block.
type ContactPage struct {
	Contacts   []*Contact
	Pagination Pagination
}

// ContactStats summarizes the whole collection for the admin dashboard.
type ContactStats struct {
	Total                int64            `json:"total"`
	ThisMonth            int64            `json:"thisMonth"`
	ConsultationRequests int64            `json:"consultationRequests"`
	ByProjectType        map[string]int64 `json:"byProjectType"`
}
