package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/tasklist/internal/api/handlers"
	"github.com/isdelr/tasklist/internal/auth"
	"github.com/isdelr/tasklist/internal/services"
	"github.com/isdelr/tasklist/internal/web"
)

// Deps bundles what the router needs to build its handlers.
type Deps struct {
	AuthService    services.AuthServiceProvider
	TaskService    services.TaskServiceProvider
	Sessions       auth.SessionStore
	Tokens         handlers.TokenIssuer
	Views          *web.Renderer
	AllowedOrigins []string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(auth.LoadSession(deps.Sessions))

	pageHandler := handlers.NewPageHandler(deps.AuthService, deps.Sessions, deps.Views)
	taskHandler := handlers.NewTaskHandler(deps.TaskService)
	userHandler := handlers.NewUserHandler(deps.AuthService, deps.Tokens)

	r.Handle("/static/*", http.StripPrefix("/static/", web.StaticHandler()))

	r.Get("/", pageHandler.Home)
	r.Get("/register", pageHandler.RegisterForm)
	r.Post("/register", pageHandler.Register)
	r.Get("/login", pageHandler.LoginForm)
	r.Post("/login", pageHandler.Login)
	r.Get("/logout", pageHandler.Logout)
	r.With(auth.RequirePageSession).Get("/dashboard", pageHandler.Dashboard)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   deps.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(auth.RequireAPISession).Get("/me", userHandler.GetMe)
		})

		r.Route("/tasks", func(r chi.Router) {
			r.Use(auth.RequireAPISession)
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	return r
}
