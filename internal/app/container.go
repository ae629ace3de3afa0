package app

import (
	"context"
	"log"
	"time"

	"brainswap/internal/config"
	"brainswap/internal/docstore"
	"brainswap/internal/docstore/postgres"
	"brainswap/internal/infrastructure/cache"
	"brainswap/internal/infrastructure/quizgen"
)

// Container owns the process-wide infrastructure handles.
type Container struct {
	Config config.Config
	Logger *log.Logger

	Store   docstore.Store
	Cache   *cache.Redis
	QuizGen quizgen.Client
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureSchema(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}

	return &Container{
		Config:  cfg,
		Logger:  logger,
		Store:   store,
		Cache:   cache.NewRedis(cfg.Redis, logger),
		QuizGen: quizgen.NewClient(cfg.QuizGen.BaseURL, cfg.QuizGen.Timeout, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	return c.Store.Close()
}
