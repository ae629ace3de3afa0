package handler

import (
	"errors"

	"brainswap/internal/delivery/http/dto"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/pkg/response"
	"brainswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	uc usecase.MatchingUsecase
}

func NewMatchHandler(uc usecase.MatchingUsecase) *MatchHandler {
	return &MatchHandler{uc: uc}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/matches", h.ListMatches)
}

func (h *MatchHandler) ListMatches(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	matches, err := h.uc.ListMutualMatches(c.Context(), userID)
	if err != nil {
		return mapMatchingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMutualMatches(matches))
}

func mapMatchingUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrFetchFailed):
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
