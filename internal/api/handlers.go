// Package api exposes HTTP handlers for the activities service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"example.com/activities/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/activities", h.activities)
	mux.HandleFunc("/activities/", h.activityAction)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) activities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	h.listActivities(w, r)
}

// activityAction dispatches /activities/{name}/signup and
// /activities/{name}/unregister. Activity names may contain spaces, literal
// or percent-encoded; r.URL.Path arrives decoded, and the name is matched
// exactly against the stored key.
func (h *Handler) activityAction(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/activities/")
	idx := strings.LastIndex(rest, "/")
	if idx <= 0 {
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
		return
	}
	name, action := rest[:idx], rest[idx+1:]

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "missing email parameter")
		return
	}

	switch action {
	case "signup":
		h.signup(w, r, name, email)
	case "unregister":
		h.unregister(w, r, name, email)
	default:
		writeError(w, http.StatusNotFound, "not_found", "unknown route")
	}
}

func (h *Handler) listActivities(w http.ResponseWriter, r *http.Request) {
	snapshot := h.service.ListActivities(r.Context())

	out := make(map[string]ActivityView, len(snapshot))
	for name, act := range snapshot {
		out[name] = toActivityView(act)
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request, name, email string) {
	act, err := h.service.SignUp(r.Context(), name, email)
	if err != nil {
		writeRosterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, act.Name),
	})
}

func (h *Handler) unregister(w http.ResponseWriter, r *http.Request, name, email string) {
	act, err := h.service.Unregister(r.Context(), name, email)
	if err != nil {
		writeRosterError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, act.Name),
	})
}

// writeRosterError maps the roster taxonomy onto HTTP statuses: unknown
// activity is 404, everything else the caller did wrong is 400.
func writeRosterError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, "already_signed_up", err.Error())
	case errors.Is(err, domain.ErrActivityFull):
		writeError(w, http.StatusBadRequest, "activity_full", err.Error())
	case errors.Is(err, domain.ErrNotRegistered):
		writeError(w, http.StatusBadRequest, "not_registered", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
	}
}

// ActivityView exposes one activity in the list payload.
type ActivityView struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// MessageResponse carries the human-readable confirmation for mutations.
type MessageResponse struct {
	Message string `json:"message"`
}

func toActivityView(act domain.Activity) ActivityView {
	participants := act.Participants
	if participants == nil {
		participants = []string{}
	}
	return ActivityView{
		Description:     act.Description,
		Schedule:        act.Schedule,
		MaxParticipants: act.MaxParticipants,
		Participants:    participants,
	}
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
