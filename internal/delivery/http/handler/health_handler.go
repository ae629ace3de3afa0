package handler

import (
	"context"
	"time"

	"brainswap/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

// Pinger is anything whose liveness the health endpoint reports.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store Pinger
	cache Pinger
}

func NewHealthHandler(store, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health reports per-dependency status. The cache being down degrades the
// service but does not fail the check; the document store being down does.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	data := map[string]string{
		"store": "ok",
		"cache": "ok",
	}
	status := fiber.StatusOK

	if h.store != nil {
		if err := h.store.Ping(ctx); err != nil {
			data["store"] = "down"
			status = fiber.StatusServiceUnavailable
		}
	}
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "down"
		}
	}

	if status != fiber.StatusOK {
		return response.Error(c, status, "", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
