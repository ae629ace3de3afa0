package handler

import (
	"context"
	"errors"

	"brainswap/internal/delivery/http/dto"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/domain/connection"
	"brainswap/internal/pkg/response"
	"brainswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ConnectionHandler struct {
	uc usecase.ConnectionUsecase
}

type sendRequestRequest struct {
	To uuid.UUID `json:"to"`
}

func NewConnectionHandler(uc usecase.ConnectionUsecase) *ConnectionHandler {
	return &ConnectionHandler{uc: uc}
}

func (h *ConnectionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/connections")
	grp.Get("", h.ListConnections)
	grp.Post("/requests", h.SendRequest)
	grp.Get("/requests", h.ListPendingRequests)
	grp.Post("/requests/:request_id/accept", h.AcceptRequest)
	grp.Post("/requests/:request_id/reject", h.RejectRequest)
}

func (h *ConnectionHandler) SendRequest(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req sendRequestRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.SendRequest(c.Context(), userID, req.To)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromRequest(created))
}

func (h *ConnectionHandler) AcceptRequest(c fiber.Ctx) error {
	return h.resolve(c, h.uc.AcceptRequest)
}

func (h *ConnectionHandler) RejectRequest(c fiber.Ctx) error {
	return h.resolve(c, h.uc.RejectRequest)
}

func (h *ConnectionHandler) ListPendingRequests(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	out, err := h.uc.ListPendingRequests(c.Context(), userID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromRequests(out))
}

func (h *ConnectionHandler) ListConnections(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	users, err := h.uc.ListConnections(c.Context(), userID)
	if err != nil {
		return mapConnectionUsecaseError(err)
	}

	out := make([]dto.ConnectionProfileResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromConnection(u))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *ConnectionHandler) resolve(c fiber.Ctx, op func(ctx context.Context, userID, requestID uuid.UUID) error) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	requestID, err := uuid.Parse(c.Params("request_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := op(c.Context(), userID, requestID); err != nil {
		return mapConnectionUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapConnectionUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUserNotFound), errors.Is(err, connection.ErrRequestNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyConnected):
		return middleware.NewAppError(fiber.StatusConflict, "Users already connected", nil, err)
	case errors.Is(err, usecase.ErrRequestPending):
		return middleware.NewAppError(fiber.StatusConflict, "Request already pending", nil, err)
	case errors.Is(err, usecase.ErrRequestNotOpen):
		return middleware.NewAppError(fiber.StatusConflict, "Request already resolved", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
