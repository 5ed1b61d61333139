package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akarim/code-notebook/internal/apperror"
	"github.com/akarim/code-notebook/internal/auth"
	"github.com/akarim/code-notebook/internal/service"
)

// SnippetHandler exposes snippet saving and listing over HTTP.
type SnippetHandler struct {
	snippets *service.SnippetService
	logger   *slog.Logger
}

// NewSnippetHandler creates a SnippetHandler.
func NewSnippetHandler(snippets *service.SnippetService, logger *slog.Logger) *SnippetHandler {
	return &SnippetHandler{snippets: snippets, logger: logger}
}

// saveSnippetRequest is the body of POST /api/snippets.
type saveSnippetRequest struct {
	Title       string   `json:"title"`
	Code        string   `json:"code"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

// HandleSave stores a snippet for the caller and returns the created record.
//
// HTTP: POST /api/snippets (auth required)
func (h *SnippetHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req saveSnippetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON request body"))
		return
	}

	snippet, err := h.snippets.Save(r.Context(), userID, req.Title, req.Code, req.Description, req.Tags)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, snippet)
}

// HandleList returns all of the caller's snippets, newest first. Anonymous
// callers get an empty list, not an error.
//
// HTTP: GET /api/snippets (auth optional)
func (h *SnippetHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	snippets, err := h.snippets.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snippets)
}
