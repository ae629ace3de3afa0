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

type ChatHandler struct {
	uc usecase.ChatUsecase
}

type sendMessageRequest struct {
	To   uuid.UUID `json:"to"`
	Text string    `json:"text"`
}

func NewChatHandler(uc usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{uc: uc}
}

func (h *ChatHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/messages")
	grp.Post("", h.Send)
	grp.Get("/:peer_id", h.History)
}

func (h *ChatHandler) Send(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req sendMessageRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msg, err := h.uc.SendMessage(c.Context(), userID, req.To, req.Text)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromMessage(msg))
}

func (h *ChatHandler) History(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	peerID, err := uuid.Parse(c.Params("peer_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	msgs, err := h.uc.History(c.Context(), userID, peerID)
	if err != nil {
		return mapChatUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromMessages(msgs))
}

func mapChatUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrNotConnected):
		return middleware.NewAppError(fiber.StatusForbidden, "Users are not connected", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
