package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Get("/workshop-types", h.ListWorkshopTypes)

		r.Group(func(pr chi.Router) {
			pr.Use(h.accessToken)

			pr.Get("/profile", h.GetProfile)
			pr.Put("/profile", h.UpdateProfile)

			pr.Get("/workshops/form", h.CreateWorkshopForm)
			pr.Get("/workshops", h.ListWorkshops)
			pr.Post("/workshops", h.CreateWorkshop)

			pr.Get("/proposals/form", h.ProposeDateForm)
			pr.Get("/proposals", h.ListProposals)
			pr.Post("/proposals", h.ProposeDate)
		})
	})

	return r
}
