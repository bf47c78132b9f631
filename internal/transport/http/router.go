package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dmarkovic/jobster/internal/transport/http/handlers"
	"github.com/dmarkovic/jobster/internal/transport/http/middleware"
	"github.com/dmarkovic/jobster/internal/transport/ws"
)

type RouterDeps struct {
	Auth          *handlers.AuthHandler
	Catalog       *handlers.CatalogHandler
	Applications  *handlers.ApplicationHandler
	Rooms         *handlers.RoomHandler
	Notifications *handlers.NotificationHandler
	Profile       *handlers.ProfileHandler
	Contact       *handlers.ContactHandler

	Hub       *ws.Hub
	JWTSecret string
	Principal middleware.PrincipalLoader
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "ok"}`))
	})

	auth := middleware.Auth(deps.JWTSecret, deps.Principal)

	r.Route("/api/v1", func(r chi.Router) {
		// Public
		r.Post("/auth/register", deps.Auth.Register)
		r.Post("/auth/login", deps.Auth.Login)
		r.Post("/contact", deps.Contact.Submit)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(auth)

			r.Post("/auth/logout", deps.Auth.Logout)

			r.Get("/jobs", deps.Catalog.List)
			r.Post("/jobs", deps.Catalog.Create)
			r.Get("/jobs/{id}", deps.Catalog.Get)
			r.Post("/jobs/{id}/apply", deps.Applications.Apply)

			r.Get("/applications", deps.Applications.ListMine)
			r.Get("/applications/{id}", deps.Applications.Get)
			r.Patch("/applications/{id}", deps.Applications.Decide)
			r.Get("/applicants", deps.Applications.ListApplicants)

			r.Get("/profile", deps.Profile.Show)

			r.Get("/notifications", deps.Notifications.List)
			r.Post("/notifications/{id}/read", deps.Notifications.MarkRead)

			r.Get("/rooms", deps.Rooms.List)
			r.Post("/rooms", deps.Rooms.Open)
			r.Get("/rooms/{id}/messages", deps.Rooms.ListMessages)
			r.Post("/rooms/{id}/messages", deps.Rooms.SendMessage)
		})

		// WebSocket authenticates via query token, not the Bearer header.
		r.Get("/rooms/ws", ws.ServeWS(deps.Hub, deps.JWTSecret))
	})

	return r
}
