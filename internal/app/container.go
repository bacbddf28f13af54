package app

import (
	"context"
	"log"
	"os"
	"time"

	"catalitium/internal/analytics"
	"catalitium/internal/config"
	"catalitium/internal/database"
	dbpostgres "catalitium/internal/database/postgres"
	"catalitium/internal/infrastructure/cache"
	"catalitium/internal/repository"
	"catalitium/internal/suggest"
)

// Container owns the process-lifetime infrastructure: the database pool, the
// redis cache, the analytics worker, and the autocomplete index with its
// rebuild scheduler.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB      database.DB
	Cache   *cache.Redis
	Emitter *analytics.Emitter

	Jobs        repository.JobRepository
	Subscribers repository.SubscriberRepository
	Contacts    repository.ContactRepository
	Events      repository.EventRepository

	SuggestIndex *suggest.Index
	Rebuilder    *suggest.Rebuilder
}

func NewContainer(cfg config.Config) (*Container, error) {
	logger := log.New(os.Stdout, "", log.LstdFlags)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	redisCache := cache.NewRedis(cfg.Redis, logger)

	jobs := repository.NewPostgresJobRepository(db)
	events := repository.NewPostgresEventRepository(db)

	index := suggest.NewIndex(jobs, cfg.Search.SuggestLimit, cfg.Search.SuggestMinPrefix, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		DB:           db,
		Cache:        redisCache,
		Emitter:      analytics.NewEmitter(events, logger),
		Jobs:         jobs,
		Subscribers:  repository.NewPostgresSubscriberRepository(db),
		Contacts:     repository.NewPostgresContactRepository(db),
		Events:       events,
		SuggestIndex: index,
		Rebuilder:    suggest.NewRebuilder(index, cfg.Search.SuggestRebuildEvery, logger),
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Rebuilder != nil {
		c.Rebuilder.Stop()
	}
	if c.Emitter != nil {
		c.Emitter.Close()
	}
	if c.Cache != nil {
		c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
