package handler

import (
	"context"
	"net/url"

	"brainswap/internal/delivery/http/dto"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/domain/user"
	"brainswap/internal/pkg/response"
	"brainswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserSkillHandler struct {
	uc usecase.UserUsecase
}

type skillRequest struct {
	Name string `json:"name"`
}

func NewUserSkillHandler(uc usecase.UserUsecase) *UserSkillHandler {
	return &UserSkillHandler{uc: uc}
}

func (h *UserSkillHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/me/skills/teach", h.AddTeachSkill)
	r.Delete("/me/skills/teach/:name", h.RemoveTeachSkill)
	r.Post("/me/skills/learn", h.AddLearnSkill)
	r.Delete("/me/skills/learn/:name", h.RemoveLearnSkill)
}

func (h *UserSkillHandler) AddTeachSkill(c fiber.Ctx) error {
	return h.applyFromBody(c, h.uc.AddTeachSkill)
}

func (h *UserSkillHandler) RemoveTeachSkill(c fiber.Ctx) error {
	return h.applyFromParam(c, h.uc.RemoveTeachSkill)
}

func (h *UserSkillHandler) AddLearnSkill(c fiber.Ctx) error {
	return h.applyFromBody(c, h.uc.AddLearnSkill)
}

func (h *UserSkillHandler) RemoveLearnSkill(c fiber.Ctx) error {
	return h.applyFromParam(c, h.uc.RemoveLearnSkill)
}

type skillOp func(ctx context.Context, userID uuid.UUID, name string) (user.User, error)

func (h *UserSkillHandler) applyFromBody(c fiber.Ctx, op skillOp) error {
	var req skillRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.apply(c, op, req.Name)
}

func (h *UserSkillHandler) applyFromParam(c fiber.Ctx, op skillOp) error {
	name, err := urlDecodedParam(c, "name")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	return h.apply(c, op, name)
}

func (h *UserSkillHandler) apply(c fiber.Ctx, op skillOp, name string) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := op(c.Context(), userID, name)
	if err != nil {
		return mapUserUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromUser(usr))
}

// urlDecodedParam reads a path parameter that may carry spaces, such as
// skill names.
func urlDecodedParam(c fiber.Ctx, key string) (string, error) {
	return url.PathUnescape(c.Params(key))
}
