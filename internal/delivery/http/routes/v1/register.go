package v1

import (
	"brainswap/internal/delivery/http/handler"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything the route tree mounts.
type Deps struct {
	AuthMw *middleware.AuthMiddleware

	Health     *handler.HealthHandler
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	UserSkill  *handler.UserSkillHandler
	Match      *handler.MatchHandler
	Proposal   *handler.ProposalHandler
	Connection *handler.ConnectionHandler
	Quiz       *handler.QuizHandler
	Chat       *handler.ChatHandler

	ChatWS *ws.Handler
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	if deps.Auth != nil {
		deps.Auth.RegisterRoutes(r.Group("/auth"))
	}

	if deps.AuthMw == nil {
		return
	}
	protected := r.Group("", deps.AuthMw.Middleware())

	if deps.User != nil {
		deps.User.RegisterRoutes(protected.Group("/users"))
	}
	if deps.UserSkill != nil {
		deps.UserSkill.RegisterRoutes(protected.Group("/users"))
	}
	if deps.Match != nil {
		deps.Match.RegisterRoutes(protected)
	}
	if deps.Proposal != nil {
		deps.Proposal.RegisterRoutes(protected)
	}
	if deps.Connection != nil {
		deps.Connection.RegisterRoutes(protected)
	}
	if deps.Quiz != nil {
		deps.Quiz.RegisterRoutes(protected)
	}
	if deps.Chat != nil {
		deps.Chat.RegisterRoutes(protected)
	}
	if deps.ChatWS != nil {
		protected.Get("/ws/chat", deps.ChatWS.HandleChatWS)
	}
}
