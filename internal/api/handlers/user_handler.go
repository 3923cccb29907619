package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/isdelr/tasklist/internal/auth"
	"github.com/isdelr/tasklist/internal/models"
	"github.com/isdelr/tasklist/internal/services"
	"github.com/rs/zerolog/log"
)

// TokenIssuer signs bearer tokens for API clients.
type TokenIssuer interface {
	Issue(s auth.Session) (string, time.Time, error)
}

// UserHandler exposes registration and token login as JSON for non-browser clients.
type UserHandler struct {
	service services.AuthServiceProvider
	tokens  TokenIssuer
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.AuthServiceProvider, tokens TokenIssuer) *UserHandler {
	return &UserHandler{service: service, tokens: tokens}
}

// AuthPayload defines the structure for register and login requests.
type AuthPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register handles new user registration.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.service.Register(r.Context(), payload.Username, payload.Password)
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	case errors.Is(err, services.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "Username already exists")
		return
	case err != nil:
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to register user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "Registered"})
}

// Login verifies credentials and returns a bearer token.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.service.Authenticate(r.Context(), payload.Username, payload.Password)
	switch {
	case errors.Is(err, services.ErrValidation):
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		log.Warn().Str("username", payload.Username).Msg("Failed authentication attempt")
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	case err != nil:
		log.Error().Err(err).Str("username", payload.Username).Msg("Failed to authenticate user")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	token, expires, err := h.tokens.Issue(auth.Session{UserID: user.ID, Username: user.Username})
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to generate token")
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expires.UTC().Format(time.RFC3339),
		"user":       user,
	})
}

// GetMe returns the user behind the current session.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	sess, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not logged in")
		return
	}
	writeJSON(w, http.StatusOK, models.User{ID: sess.UserID, Username: sess.Username})
}
