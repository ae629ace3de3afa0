package routes

import (
	v1 "brainswap/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	deps v1.Deps
}

func NewRegistry(deps v1.Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	if r.deps.Health != nil {
		r.deps.Health.RegisterRoutes(app)
	}

	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.deps)
}
