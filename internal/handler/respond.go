package handler

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"strconv"
)

const maxListLimit = 100

// errorResponse is the body for 405 and 401 responses.
type errorResponse struct {
	Error string `json:"error"`
}

// resultResponse is the soft-failure/success body used by delete and login.
type resultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// failureResponse carries a store error through to the caller.
type failureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"})
}

// internalError logs err and passes its message to the client.
func internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.ErrorContext(r.Context(), op+" failed", "error", err, "path", r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, failureResponse{
		Success: false,
		Error:   "Internal server error",
		Message: err.Error(),
	})
}

// positiveIntParam parses a query parameter, falling back to def when it is
// missing, malformed or below 1.
func positiveIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return def
	}
	return n
}

// pageParams reads page and limit with the given default limit. page is
// capped so that (page-1)*limit fits in an int.
func pageParams(r *http.Request, defaultLimit int) (page, limit int) {
	page = positiveIntParam(r, "page", 1)
	limit = positiveIntParam(r, "limit", defaultLimit)
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if maxPage := math.MaxInt/limit + 1; page > maxPage {
		page = maxPage
	}
	return page, limit
}
