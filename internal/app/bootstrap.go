package app

import (
	"context"
	"fmt"
	"strings"

	"catalitium/internal/config"
	"catalitium/internal/delivery/http/handler"
	"catalitium/internal/delivery/http/middleware"
	"catalitium/internal/delivery/http/routes"
	"catalitium/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	a := build(container)

	if err := container.Rebuilder.Start(context.Background()); err != nil {
		_ = container.Close()
		return nil, nil, err
	}

	cleanup := func() error { return container.Close() }
	return a, cleanup, nil
}

func build(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	errMw := middleware.NewErrorMiddleware()
	f.Use(accessLog.Middleware())
	f.Use(errMw.Middleware())

	searchUC := usecase.NewJobSearchUsecase(c.Jobs, c.Cache, c.Emitter, c.Config.Search, c.Config.Redis.TTL, c.Logger)
	detailUC := usecase.NewJobDetailUsecase(c.Jobs, c.Config.Search, c.Logger)
	insightUC := usecase.NewInsightUsecase(c.Jobs, c.Cache, c.Config.Redis.TTL, c.Logger)
	trendsUC := usecase.NewTrendsUsecase(c.Jobs, c.Cache, c.Config.Redis.TTL, c.Logger)
	engagementUC := usecase.NewEngagementUsecase(c.Subscribers, c.Contacts, c.Jobs, c.Logger)
	ingestUC := usecase.NewIngestUsecase(c.Jobs, c.Logger)

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB),
		handler.NewJobsHandler(searchUC, detailUC, insightUC, trendsUC, c.SuggestIndex),
		handler.NewEngagementHandler(engagementUC),
		handler.NewIngestHandler(ingestUC, c.Cache, c.Logger),
	)
	registry.Register(f)

	return &App{Fiber: f}
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
