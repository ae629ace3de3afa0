package handler

import (
	"context"
	"errors"

	"brainswap/internal/delivery/http/dto"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/domain/proposal"
	"brainswap/internal/pkg/response"
	"brainswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProposalHandler struct {
	uc usecase.ProposalUsecase
}

type createProposalRequest struct {
	To    uuid.UUID `json:"to"`
	Date  string    `json:"date"`
	Time  string    `json:"time"`
	Skill string    `json:"skill"`
}

func NewProposalHandler(uc usecase.ProposalUsecase) *ProposalHandler {
	return &ProposalHandler{uc: uc}
}

func (h *ProposalHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/proposals")
	grp.Post("", h.Create)
	grp.Get("/received", h.ListReceived)
	grp.Get("/sent", h.ListSent)
}

func (h *ProposalHandler) Create(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createProposalRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateProposal(c.Context(), userID, usecase.CreateProposalInput{
		To:    req.To,
		Date:  req.Date,
		Time:  req.Time,
		Skill: req.Skill,
	})
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromProposal(created))
}

func (h *ProposalHandler) ListReceived(c fiber.Ctx) error {
	return h.list(c, h.uc.ListReceived)
}

func (h *ProposalHandler) ListSent(c fiber.Ctx) error {
	return h.list(c, h.uc.ListSent)
}

func (h *ProposalHandler) list(c fiber.Ctx, op func(ctx context.Context, userID uuid.UUID) ([]proposal.SessionProposal, error)) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	out, err := op(c.Context(), userID)
	if err != nil {
		return mapProposalUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromProposals(out))
}

func mapProposalUsecaseError(err error) error {
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
