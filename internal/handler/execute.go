package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/akarim/code-notebook/internal/apperror"
	"github.com/akarim/code-notebook/internal/auth"
	"github.com/akarim/code-notebook/internal/model"
	"github.com/akarim/code-notebook/internal/service"
)

// ExecutionHandler exposes code execution and execution history over HTTP.
type ExecutionHandler struct {
	executions *service.ExecutionService
	logger     *slog.Logger
}

// NewExecutionHandler creates an ExecutionHandler.
func NewExecutionHandler(executions *service.ExecutionService, logger *slog.Logger) *ExecutionHandler {
	return &ExecutionHandler{executions: executions, logger: logger}
}

// executeRequest is the body of POST /api/execute.
type executeRequest struct {
	Code   string `json:"code"`
	Locale string `json:"locale"`
}

// HandleExecute runs a piece of code and returns the outcome.
//
// HTTP: POST /api/execute (auth required)
func (h *ExecutionHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON request body"))
		return
	}

	result, err := h.executions.Execute(r.Context(), userID, req.Code, model.Locale(req.Locale))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// HandleHistory returns the caller's recent executions, newest first.
// Anonymous callers get an empty list, not an error.
//
// HTTP: GET /api/executions (auth optional)
func (h *ExecutionHandler) HandleHistory(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	executions, err := h.executions.History(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, executions)
}
