package handler

import (
	"errors"

	"brainswap/internal/delivery/http/dto"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/domain/quiz"
	"brainswap/internal/pkg/response"
	"brainswap/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type QuizHandler struct {
	uc usecase.QuizUsecase
}

type generateQuizRequest struct {
	Skill string `json:"skill"`
}

type startVerificationRequest struct {
	Skill string `json:"skill"`
}

type submitAnswerRequest struct {
	Selected string `json:"selected"`
}

func NewQuizHandler(uc usecase.QuizUsecase) *QuizHandler {
	return &QuizHandler{uc: uc}
}

func (h *QuizHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/quizzes")
	grp.Post("/generate", h.Generate)
	grp.Post("/verify", h.StartVerification)
	grp.Post("/sessions/:session_id/answer", h.SubmitAnswer)
	grp.Get("/sessions/:session_id", h.SessionStatus)
}

func (h *QuizHandler) Generate(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req generateQuizRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	n, err := h.uc.GenerateQuiz(c.Context(), userID, req.Skill)
	if err != nil {
		return mapQuizUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"skill":          req.Skill,
		"question_count": n,
	})
}

func (h *QuizHandler) StartVerification(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req startVerificationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.StartVerification(c.Context(), userID, req.Skill)
	if err != nil {
		return mapQuizUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, dto.FromQuizSession(view))
}

func (h *QuizHandler) SubmitAnswer(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req submitAnswerRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.SubmitAnswer(c.Context(), userID, sessionID, req.Selected)
	if err != nil {
		return mapQuizUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromQuizAnswer(view))
}

func (h *QuizHandler) SessionStatus(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	sessionID, err := uuid.Parse(c.Params("session_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	view, err := h.uc.SessionStatus(c.Context(), userID, sessionID)
	if err != nil {
		return mapQuizUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromQuizStatus(view))
}

func mapQuizUsecaseError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrTeachSkillNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Teach skill not found", nil, err)
	case errors.Is(err, usecase.ErrQuizSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Quiz session not found", nil, err)
	case errors.Is(err, usecase.ErrQuizNotReady):
		return middleware.NewAppError(fiber.StatusConflict, "No quiz generated for this skill yet", nil, err)
	case errors.Is(err, usecase.ErrQuizGenUnavailable):
		return middleware.NewAppError(fiber.StatusServiceUnavailable, "Quiz generator unavailable", nil, err)
	case errors.Is(err, quiz.ErrNotAwaitingAnswer):
		return middleware.NewAppError(fiber.StatusConflict, "No answer expected right now", nil, err)
	case errors.Is(err, quiz.ErrSessionDone):
		return middleware.NewAppError(fiber.StatusConflict, "Quiz already finished", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
