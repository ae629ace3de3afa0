package app

import (
	"fmt"
	"log"
	"strings"

	"brainswap/internal/config"
	"brainswap/internal/delivery/http/handler"
	"brainswap/internal/delivery/http/middleware"
	"brainswap/internal/delivery/http/routes"
	v1 "brainswap/internal/delivery/http/routes/v1"
	"brainswap/internal/pkg/jwt"
	"brainswap/internal/repository"
	"brainswap/internal/usecase"
	"brainswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap wires the whole service and returns it together with a cleanup
// for the underlying connections.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	logger := log.Default()

	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	registerGlobalMiddleware(f, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	userRepo := repository.NewDocUserRepository(c.Store, logger)
	proposalRepo := repository.NewDocProposalRepository(c.Store)
	requestRepo := repository.NewDocRequestRepository(c.Store)
	messageRepo := repository.NewDocMessageRepository(c.Store)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo)
	matchingUC := usecase.NewMatchingUsecase(userRepo, logger)
	proposalUC := usecase.NewProposalUsecase(proposalRepo, userRepo)
	connectionUC := usecase.NewConnectionUsecase(requestRepo, userRepo, logger)
	chatUC := usecase.NewChatUsecase(messageRepo, userRepo, hub)
	quizUC := usecase.NewQuizUsecase(userRepo, c.Cache, c.QuizGen, cfg.Redis.QuizTTL, logger)

	registry := routes.NewRegistry(v1.Deps{
		AuthMw:     middleware.NewAuthMiddleware(jwtSvc),
		Health:     handler.NewHealthHandler(c.Store, c.Cache),
		Auth:       handler.NewAuthHandler(authUC),
		User:       handler.NewUserHandler(userUC),
		UserSkill:  handler.NewUserSkillHandler(userUC),
		Match:      handler.NewMatchHandler(matchingUC),
		Proposal:   handler.NewProposalHandler(proposalUC),
		Connection: handler.NewConnectionHandler(connectionUC),
		Quiz:       handler.NewQuizHandler(quizUC),
		Chat:       handler.NewChatHandler(chatUC),
		ChatWS:     ws.NewHandler(hub, logger),
	})
	registry.Register(f)

	return &App{Fiber: f}, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
