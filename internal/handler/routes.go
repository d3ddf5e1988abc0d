package handler

import "net/http"

// Routes registers the API on a new ServeMux. Method dispatch for the contact
// and admin paths happens inside their handlers so unsupported verbs get the
// JSON 405 body.
func Routes(h *Handler, contacts *ContactHandler, admin *AdminHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.Health)
	mux.Handle("/api/contacts", contacts)
	mux.Handle("/api/admin", admin)
	mux.Handle("/api/admin/stats", admin.Stats())
	return mux
}
