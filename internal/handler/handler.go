// Package handler exposes the JSON HTTP surface: answer validation, user
// management, and the health and info probes.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/testepapers/test-e-portal-api-service/internal/model"
	"github.com/testepapers/test-e-portal-api-service/internal/service"
	"github.com/testepapers/test-e-portal-api-service/internal/store"
)

const serviceName = "test-e-portal-api-service"

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store   *store.Store
	service *service.Service
	profile string
}

// New creates a new Handler. profile is reported by GET /info.
func New(s *store.Store, svc *service.Service, profile string) *Handler {
	return &Handler{store: s, service: svc, profile: profile}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/validate", h.handleValidate)
	r.Get("/health", h.handleHealth)
	r.Get("/info", h.handleInfo)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", h.handleListUsers)
		r.Post("/", h.handleCreateUser)
		r.Get("/{id}", h.handleGetUser)
		r.Get("/email/{email}", h.handleGetUserByEmail)
	})
}

func (h *Handler) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req model.ValidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body is not valid JSON")
		return
	}
	if req.Input.QuestionID == 0 {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "input.questionId is required")
		return
	}

	resp, err := h.service.ValidateAnswer(r.Context(), req.Input.QuestionID, req.Input.Answer)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrQuestionNotFound):
			writeError(w, http.StatusNotFound, "QUESTION_NOT_FOUND", err.Error())
		case errors.Is(err, service.ErrUnknownQuestionType):
			writeError(w, http.StatusBadRequest, "UNKNOWN_QUESTION_TYPE", err.Error())
		default:
			slog.Error("validate answer", "questionID", req.Input.QuestionID, "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to validate answer")
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{
		Status:    "UP",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Service:   serviceName,
	})
}

func (h *Handler) handleInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, model.InfoResponse{
		ActiveProfile: h.profile,
		CurrentTime:   time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		slog.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to list users")
		return
	}
	if users == nil {
		users = []model.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

// createUserRequest is the inbound body for POST /api/users. The password
// is accepted here and stored only as a hash.
type createUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request body is not valid JSON")
		return
	}
	if req.Name == "" || req.Email == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "name and email are required")
		return
	}

	id, err := h.store.CreateUser(r.Context(), model.User{Name: req.Name, Email: req.Email}, req.Password)
	if err != nil {
		slog.Error("create user", "email", req.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create user")
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		slog.Error("fetch created user", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to create user")
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *Handler) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid user id")
		return
	}

	user, err := h.store.GetUser(r.Context(), id)
	if err != nil {
		h.writeUserError(w, id, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) handleGetUserByEmail(w http.ResponseWriter, r *http.Request) {
	email := chi.URLParam(r, "email")
	user, err := h.store.GetUserByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
			return
		}
		slog.Error("get user by email", "email", email, "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch user")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *Handler) writeUserError(w http.ResponseWriter, id int64, err error) {
	if errors.Is(err, store.ErrUserNotFound) {
		writeError(w, http.StatusNotFound, "USER_NOT_FOUND", err.Error())
		return
	}
	slog.Error("get user", "id", id, "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to fetch user")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, model.ErrorResponse{Message: message, Code: code})
}
