package routes

import (
	"catalitium/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health     *handler.HealthHandler
	jobs       *handler.JobsHandler
	engagement *handler.EngagementHandler
	ingest     *handler.IngestHandler
}

func NewRegistry(
	health *handler.HealthHandler,
	jobs *handler.JobsHandler,
	engagement *handler.EngagementHandler,
	ingest *handler.IngestHandler,
) *Registry {
	return &Registry{
		health:     health,
		jobs:       jobs,
		engagement: engagement,
		ingest:     ingest,
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.health.RegisterRoutes(app)

	api := app.Group("/api")
	r.jobs.RegisterRoutes(api)
	r.ingest.RegisterRoutes(api)

	// Engagement endpoints predate the /api prefix and keep their paths.
	r.engagement.RegisterRoutes(app)
}
