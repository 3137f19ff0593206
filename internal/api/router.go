package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lmercadier/devfeed-be/internal/api/handlers"
	"github.com/lmercadier/devfeed-be/internal/auth"
	"github.com/lmercadier/devfeed-be/internal/services"
	"github.com/lmercadier/devfeed-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	hub *websocket.Hub,
	tokens *auth.Tokens,
	identity services.IdentityServiceProvider,
	themes services.ThemeServiceProvider,
	content services.ContentServiceProvider,
	comments services.CommentServiceProvider,
	events services.EventServiceProvider,
	corsOrigin string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// The session boundary: verify the bearer token once and resolve its
	// subject into a typed principal for everything downstream.
	requireAuth := auth.Middleware(tokens, func(subjectEmail string) (auth.Principal, error) {
		user, err := identity.CurrentUser(subjectEmail)
		if err != nil {
			return auth.Principal{}, err
		}
		return auth.Principal{ID: user.ID, Name: user.Name, Email: user.Email, Username: user.Username}, nil
	})

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(identity, tokens)
	userHandler := handlers.NewUserHandler(identity)
	themeHandler := handlers.NewThemeHandler(themes, identity)
	articleHandler := handlers.NewArticleHandler(content)
	commentHandler := handlers.NewCommentHandler(comments)
	eventHandler := handlers.NewEventHandler(events)
	wsHandler := handlers.NewWebSocketHandler(hub)

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Live activity stream
		r.Get("/ws", wsHandler.Serve)
		r.Get("/ws/themes/{id}", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/me", authHandler.GetMe)
		})

		r.Route("/themes", func(r chi.Router) {
			r.Get("/", themeHandler.List)
			r.Get("/{id}", themeHandler.Get)
			r.Get("/{id}/articles", articleHandler.ListByTheme)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Post("/{id}/follow", themeHandler.Follow)
				r.Delete("/{id}/follow", themeHandler.Unfollow)
			})
		})

		r.Route("/articles", func(r chi.Router) {
			r.Get("/{id}", articleHandler.Get)
			r.Get("/{id}/comments", commentHandler.List)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Get("/feed", articleHandler.Feed)
				r.Post("/", articleHandler.Create)
				r.Put("/{id}", articleHandler.Update)
				r.Delete("/{id}", articleHandler.Delete)
				r.Post("/{id}/comments", commentHandler.Create)
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{id}", userHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(requireAuth)
				r.Put("/{id}", userHandler.Update)
				r.Delete("/{id}", userHandler.Delete)
			})
		})

		r.Get("/events", eventHandler.GetRecent)
	})

	return r
}
