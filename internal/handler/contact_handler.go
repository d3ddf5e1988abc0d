package handler

import (
	"encoding/json"
	"net/http"

	"github.com/joedev/portfolio-api/internal/model"
	"github.com/joedev/portfolio-api/internal/service"
)

const (
	maxBodyBytes        = 1 << 20
	defaultPublicLimit  = 10
	submitSuccessMessage = "Contact submission saved successfully"
)

// ContactHandler serves /api/contacts: public submission and, when enabled,
// the unauthenticated paginated listing.
type ContactHandler struct {
	contactService service.ContactService
	publicListing  bool
}

// NewContactHandler creates a ContactHandler. publicListing controls whether
// GET is served or answered with 405.
func NewContactHandler(contactService service.ContactService, publicListing bool) *ContactHandler {
	return &ContactHandler{contactService: contactService, publicListing: publicListing}
}

func (h *ContactHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost:
		h.Submit(w, r)
	case r.Method == http.MethodGet && h.publicListing:
		h.List(w, r)
	default:
		methodNotAllowed(w)
	}
}

// submitRequest is the expected JSON body for POST /api/contacts. Unknown
// fields are ignored.
type submitRequest struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Company               string `json:"company"`
	ProjectType           string `json:"projectType"`
	Message               string `json:"message"`
	WantsFreeConsultation bool   `json:"wantsFreeConsultation"`
}

type submitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Submit handles POST /api/contacts. Only malformed JSON is rejected.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, failureResponse{Success: false, Error: "Invalid request body"})
		return
	}

	c := &model.Contact{
		Name:                  req.Name,
		Email:                 req.Email,
		Company:               req.Company,
		ProjectType:           model.ProjectType(req.ProjectType),
		Message:               req.Message,
		WantsFreeConsultation: req.WantsFreeConsultation,
		IP:                    ClientIP(r),
		UserAgent:             r.UserAgent(),
	}

	if err := h.contactService.Submit(r.Context(), c); err != nil {
		internalError(w, r, "submit contact", err)
		return
	}

	writeJSON(w, http.StatusCreated, submitResponse{
		Success: true,
		Message: submitSuccessMessage,
		ID:      c.ID,
	})
}

// listResponse is the JSON body for both the public and the admin listing.
type listResponse struct {
	Success    bool             `json:"success"`
	Data       []*model.Contact `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

// List handles GET /api/contacts. Query params: page, limit. No filters.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultPublicLimit)
	writeContactPage(w, r, h.contactService, model.ContactListOptions{Page: page, Limit: limit})
}

func writeContactPage(w http.ResponseWriter, r *http.Request, svc service.ContactService, opts model.ContactListOptions) {
	result, err := svc.List(r.Context(), opts)
	if err != nil {
		internalError(w, r, "list contacts", err)
		return
	}

	contacts := result.Contacts
	if contacts == nil {
		contacts = []*model.Contact{}
	}
	writeJSON(w, http.StatusOK, listResponse{
		Success:    true,
		Data:       contacts,
		Pagination: result.Pagination,
	})
}
