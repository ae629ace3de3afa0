package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainswap/internal/app"
	"brainswap/internal/config"
)

// shutdownGrace bounds how long in-flight requests get to finish once a
// termination signal arrives.
const shutdownGrace = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	application, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Fatalf("http port: %v", err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("%s listening on %s", cfg.App.AppName, addr)
		serveErr <- application.Fiber.Listen(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		if err != nil {
			log.Fatalf("listen: %v", err)
		}
	case sig := <-stop:
		log.Printf("received %s, draining connections", sig)
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := application.Fiber.ShutdownWithContext(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}
}
