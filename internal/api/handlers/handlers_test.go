package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/tasklist/internal/auth"
	"github.com/isdelr/tasklist/internal/models"
	"github.com/isdelr/tasklist/internal/web"
	"github.com/rs/zerolog"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

var errStore = errors.New("disk I/O error")

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

type failingTasks struct{}

func (failingTasks) CreateTask(context.Context, int64, string) (int64, error) { return 0, errStore }
func (failingTasks) GetTasksForUser(context.Context, int64) ([]models.Task, error) {
	return nil, errStore
}
func (failingTasks) DeleteTask(context.Context, int64, int64) (bool, error) { return false, errStore }

type failingAuth struct{}

func (failingAuth) Register(context.Context, string, string) error { return errStore }
func (failingAuth) Authenticate(context.Context, string, string) (models.User, error) {
	return models.User{}, errStore
}

type nopSessions struct{}

func (nopSessions) Get(*http.Request) (auth.Session, bool)      { return auth.Session{}, false }
func (nopSessions) Set(http.ResponseWriter, auth.Session) error { return nil }
func (nopSessions) Clear(http.ResponseWriter)                   {}

func withSession(r *http.Request) *http.Request {
	return r.WithContext(auth.WithSession(r.Context(), auth.Session{UserID: 1, Username: "alice"}))
}

func TestTaskHandlerStoreFailures(t *testing.T) {
	h := NewTaskHandler(failingTasks{})

	r := chi.NewRouter()
	r.Get("/api/tasks", h.List)
	r.Post("/api/tasks", h.Create)
	r.Delete("/api/tasks/{id}", h.Delete)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/tasks", nil),
		httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"task":"x"}`)),
		httptest.NewRequest(http.MethodDelete, "/api/tasks/5", nil),
	} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, withSession(req))
		assert.Equal(t, rec.Code, http.StatusInternalServerError, req.Method)
		assert.Equal(t, rec.Body.String(), "{\"error\":\"Internal server error\"}\n")
	}
}

func TestTaskHandlerWithoutSession(t *testing.T) {
	h := NewTaskHandler(failingTasks{})
	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/tasks", nil))
	assert.Equal(t, rec.Code, http.StatusUnauthorized)
}

func TestPageHandlerStoreFailure(t *testing.T) {
	views, err := web.NewRenderer()
	assert.NilError(t, err)
	h := NewPageHandler(failingAuth{}, nopSessions{}, views)

	form := url.Values{"username": {"alice"}, "password": {"pw"}}
	for name, fn := range map[string]http.HandlerFunc{"register": h.Register, "login": h.Login} {
		req := httptest.NewRequest(http.MethodPost, "/"+name, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		fn(rec, req)

		assert.Equal(t, rec.Code, http.StatusInternalServerError, name)
		assert.Check(t, is.Contains(rec.Body.String(), "Something went wrong"))
		assert.Check(t, !strings.Contains(rec.Body.String(), errStore.Error()))
	}
}

func TestLogoutWithoutSession(t *testing.T) {
	views, err := web.NewRenderer()
	assert.NilError(t, err)
	h := NewPageHandler(failingAuth{}, nopSessions{}, views)

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))
	assert.Equal(t, rec.Code, http.StatusFound)
	assert.Equal(t, rec.Header().Get("Location"), "/")
}
