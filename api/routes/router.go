package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/luisortegam/fieldvisits-backend/api/controllers"
	"github.com/luisortegam/fieldvisits-backend/api/middleware"
	"github.com/luisortegam/fieldvisits-backend/internal/directory"
	"github.com/luisortegam/fieldvisits-backend/internal/schedule"
	"github.com/luisortegam/fieldvisits-backend/internal/visits"
	"github.com/luisortegam/fieldvisits-backend/pkg/config"
	"github.com/luisortegam/fieldvisits-backend/pkg/db"
	"github.com/luisortegam/fieldvisits-backend/pkg/logger"
	"github.com/luisortegam/fieldvisits-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	directoryService *directory.Service,
	visitService visits.Service,
	scheduleService *schedule.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, cfg.Schedule.TransferIdempotencyTTL, logg))

		r.Get("/operators", controllers.ListOperators(directoryService, logg))
		r.Get("/customers", controllers.ListCustomers(directoryService, logg))
		r.Get("/customers/{customerID}/branches", controllers.ListCustomerBranches(directoryService, logg))

		r.Route("/visits", func(r chi.Router) {
			r.Get("/", controllers.ListVisits(visitService, logg))
			r.Get("/{visitID}", controllers.GetVisit(visitService, logg))
			r.Patch("/{visitID}", controllers.UpdateVisit(visitService, logg))
			r.Delete("/{visitID}", controllers.DeleteVisit(visitService, logg))
		})

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/assignments", controllers.ResolveAssignment(scheduleService, logg))
			r.Post("/transfers", controllers.TransferMonth(scheduleService, logg))
			r.Get("/calendar", controllers.CalendarMonth(scheduleService, logg))
		})
	})

	return r
}
