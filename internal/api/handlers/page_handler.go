package handlers

import (
	"errors"
	"net/http"

	"github.com/isdelr/tasklist/internal/auth"
	"github.com/isdelr/tasklist/internal/services"
	"github.com/isdelr/tasklist/internal/web"
	"github.com/rs/zerolog/log"
)

// PageHandler serves the server-rendered pages and the login/logout flow.
type PageHandler struct {
	auth     services.AuthServiceProvider
	sessions auth.SessionStore
	views    *web.Renderer
}

// NewPageHandler creates a new PageHandler.
func NewPageHandler(authService services.AuthServiceProvider, sessions auth.SessionStore, views *web.Renderer) *PageHandler {
	return &PageHandler{auth: authService, sessions: sessions, views: views}
}

// Home renders the public landing page.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "index.html", web.PageData{})
}

// RegisterForm renders the empty registration form.
func (h *PageHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register.html", web.PageData{})
}

// Register creates an account and sends the user to the login page.
func (h *PageHandler) Register(w http.ResponseWriter, r *http.Request) {
	username, password := r.PostFormValue("username"), r.PostFormValue("password")

	err := h.auth.Register(r.Context(), username, password)
	if err != nil {
		data := web.PageData{Form: web.FormValues{Username: username}}
		switch {
		case errors.Is(err, services.ErrValidation):
			data.Error = "Username and password are required."
		case errors.Is(err, services.ErrDuplicateUsername):
			data.Error = "Username already exists."
		default:
			h.serverError(w, r, err, "Failed to register user")
			return
		}
		h.render(w, r, http.StatusOK, "register.html", data)
		return
	}

	log.Info().Str("username", username).Msg("User registered")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// LoginForm renders the empty login form.
func (h *PageHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", web.PageData{})
}

// Login verifies credentials and starts a session.
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	username, password := r.PostFormValue("username"), r.PostFormValue("password")

	user, err := h.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		data := web.PageData{Form: web.FormValues{Username: username}}
		switch {
		case errors.Is(err, services.ErrValidation):
			data.Error = "Please enter username and password."
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Warn().Str("username", username).Msg("Failed authentication attempt")
			data.Error = "Invalid username or password."
		default:
			h.serverError(w, r, err, "Failed to authenticate user")
			return
		}
		h.render(w, r, http.StatusOK, "login.html", data)
		return
	}

	if err := h.sessions.Set(w, auth.Session{UserID: user.ID, Username: user.Username}); err != nil {
		h.serverError(w, r, err, "Failed to start session")
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout clears the session, whether or not one exists.
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// Dashboard renders the task page. Must sit behind auth.RequirePageSession.
func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "dashboard.html", web.PageData{})
}

func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, page string, data web.PageData) {
	if sess, ok := auth.FromContext(r.Context()); ok {
		data.Username = sess.Username
	}
	if err := h.views.Render(w, status, page, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *PageHandler) serverError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	log.Error().Err(err).Str("path", r.URL.Path).Msg(msg)
	h.render(w, r, http.StatusInternalServerError, "error.html", web.PageData{Error: "Something went wrong. Please try again."})
}
