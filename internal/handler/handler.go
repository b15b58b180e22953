// Package handler contains chi HTTP handlers that expose the activity board
// to a browser: the rendered page plus the form posts that drive it.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Shivanand-hulikatti/activity-board/internal/board"
	"github.com/Shivanand-hulikatti/activity-board/internal/view"
	"github.com/a-h/templ"
)

// BoardHandler holds the HTTP handlers for one activity board.
type BoardHandler struct {
	board  *board.Board
	logger *slog.Logger
}

// NewBoardHandler constructs a BoardHandler.
func NewBoardHandler(b *board.Board, logger *slog.Logger) *BoardHandler {
	return &BoardHandler{board: b, logger: logger}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1 MB limit
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "invalid form body: "+err.Error())
		return false
	}
	return true
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// Page handles GET /
// Every page view fetches the catalog before rendering, as a page load does.
func (h *BoardHandler) Page(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Load(r.Context()); err != nil {
		h.logger.Warn("page_load_catalog_failed", "error", err.Error())
	}
	templ.Handler(h.board.Page()).ServeHTTP(w, r)
}

// Signup handles POST /signup
// Fills the signup form from the posted fields and submits it.
func (h *BoardHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	h.board.SetForm(r.PostForm.Get("email"), r.PostForm.Get("activity"))
	if err := h.board.Submit(r.Context()); err != nil {
		h.logger.Info("signup_rejected", "error", err.Error())
	}
	redirectHome(w, r)
}

// Unregister handles POST /unregister
// Clicks the delete affordance matching the posted activity and email.
func (h *BoardHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}
	btn, ok := h.board.FindDeleteButton(r.PostForm.Get("activity"), r.PostForm.Get("email"))
	if !ok {
		writeError(w, http.StatusNotFound, "participant is not on the current board")
		return
	}
	if err := h.board.ClickDelete(r.Context(), btn); err != nil {
		if errors.Is(err, board.ErrNotAttached) {
			writeError(w, http.StatusNotFound, "participant is not on the current board")
			return
		}
		h.logger.Info("unregister_rejected", "error", err.Error())
	}
	redirectHome(w, r)
}

// Refresh handles POST /refresh
func (h *BoardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.board.Load(r.Context()); err != nil {
		h.logger.Warn("refresh_failed", "error", err.Error())
	}
	redirectHome(w, r)
}

// State handles GET /board
// Returns a JSON snapshot of the board regions.
func (h *BoardHandler) State(w http.ResponseWriter, r *http.Request) {
	snap := h.board.Snapshot()
	if snap.Activities == nil {
		snap.Activities = []string{}
	}
	if snap.DeleteButtons == nil {
		snap.DeleteButtons = []view.DeleteAffordance{}
	}
	writeJSON(w, http.StatusOK, snap)
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
