package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/joedev/portfolio-api/internal/model"
	"github.com/joedev/portfolio-api/internal/repository"
	"github.com/joedev/portfolio-api/internal/service"
	"github.com/joedev/portfolio-api/pkg/auth"
)

const defaultAdminLimit = 20

// AdminHandler serves /api/admin and /api/admin/stats. Login is the only
// operation reachable without a token; everything else passes through
// auth.RequireAdmin before the contact service is touched.
type AdminHandler struct {
	authService    service.AdminAuthService
	contactService service.ContactService

	protected http.Handler
	stats     http.Handler
}

// NewAdminHandler creates an AdminHandler verifying bearer tokens with tokens.
func NewAdminHandler(authService service.AdminAuthService, contactService service.ContactService, tokens auth.TokenVerifier) *AdminHandler {
	h := &AdminHandler{authService: authService, contactService: contactService}
	requireAdmin := auth.RequireAdmin(tokens)
	h.protected = requireAdmin(http.HandlerFunc(h.serveAuthenticated))
	h.stats = requireAdmin(http.HandlerFunc(h.serveStats))
	return h
}

func (h *AdminHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		h.Login(w, r)
		return
	}
	h.protected.ServeHTTP(w, r)
}

// Stats returns the token-protected handler for /api/admin/stats.
func (h *AdminHandler) Stats() http.Handler {
	return h.stats
}

func (h *AdminHandler) serveAuthenticated(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.List(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (h *AdminHandler) serveStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	stats, err := h.contactService.Stats(r.Context())
	if err != nil {
		internalError(w, r, "contact stats", err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{Success: true, Data: stats})
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
	Message string `json:"message"`
}

type statsResponse struct {
	Success bool                `json:"success"`
	Data    *model.ContactStats `json:"data"`
}

// Login handles POST /api/admin. An unparsable body is treated as a wrong
// password.
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnauthorized, resultResponse{Success: false, Message: "Invalid credentials"})
		return
	}

	session, err := h.authService.Login(r.Context(), req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeJSON(w, http.StatusUnauthorized, resultResponse{Success: false, Message: "Invalid credentials"})
			return
		}
		internalError(w, r, "admin login", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Token:   session.Token,
		Message: "Login successful",
	})
}

// List handles GET /api/admin.
// Query params: page, limit, projectType (exact), search (name/email/company).
func (h *AdminHandler) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r, defaultAdminLimit)
	q := r.URL.Query()
	writeContactPage(w, r, h.contactService, model.ContactListOptions{
		Page:        page,
		Limit:       limit,
		ProjectType: q.Get("projectType"),
		Search:      q.Get("search"),
	})
}

// Delete handles DELETE /api/admin?id=<id>.
func (h *AdminHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		writeJSON(w, http.StatusNotFound, resultResponse{Success: false, Message: "Contact not found"})
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, resultResponse{Success: false, Message: "Contact not found"})
			return
		}
		internalError(w, r, "delete contact", err)
		return
	}

	if claims, ok := auth.AdminClaimsFromContext(r.Context()); ok {
		slog.Info("admin removed contact", "id", id, "token_issued_at", time.UnixMilli(claims.Timestamp).UTC())
	}

	writeJSON(w, http.StatusOK, resultResponse{Success: true, Message: "Contact deleted"})
}
