package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/afetlink/afetlink-backend/internal/handlers"
	"github.com/afetlink/afetlink-backend/internal/middleware"
)

func SetupRoutes(r *chi.Mux) {
	auth := middleware.Authenticate(handlers.JWTSecret())

	r.Route("/api", func(r chi.Router) {
		// Open endpoints: the scraper pipeline and public registration.
		r.Post("/scraped-datas", handlers.CreateScrapedReport)
		r.Get("/scraped-datas", handlers.GetScrapedReports)
		r.Post("/scraped-datas/mark-used", handlers.MarkScrapedReportUsed)
		r.Post("/sign-in", handlers.SignIn)
		r.Post("/volunteer-datas", handlers.CreateVolunteer)

		// Staff endpoints (any valid token).
		r.Group(func(r chi.Router) {
			r.Use(auth)
			r.Post("/filtered-datas", handlers.CreateCase)
			r.Delete("/filtered-datas/{id}", handlers.DeleteCase)
			r.Get("/filtered-datas/cities", handlers.GetCityCases)
			r.Get("/filtered-datas/district-cases/{il}", handlers.GetDistrictCases)
			r.Get("/filtered-datas/district/{il}/{ilce}", handlers.GetDistrictData)
			r.Post("/filtered-datas/district", handlers.GetDistrictData)
			r.Post("/create-admin", handlers.CreateAdmin)
			r.Get("/volunteer-datas", handlers.GetVolunteers)
			r.Get("/hashtags", handlers.GetHashtags)

			// Admin / superadmin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)
				r.Post("/create-worker", handlers.CreateWorker)
				r.Post("/hashtags", handlers.CreateHashtag)
				r.Put("/hashtags/{id}", handlers.UpdateHashtag)
				r.Delete("/hashtags/{id}", handlers.DeleteHashtag)
			})
		})
	})
}
