package cmd

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vnnews/crawler/internal/classify"
	"github.com/vnnews/crawler/internal/config"
	"github.com/vnnews/crawler/internal/database"
	"github.com/vnnews/crawler/internal/fetch"
	"github.com/vnnews/crawler/internal/ingest"
	"github.com/vnnews/crawler/internal/logger"
	"github.com/vnnews/crawler/internal/media"
	"github.com/vnnews/crawler/internal/pipeline"
	"github.com/vnnews/crawler/internal/sanitize"
	"github.com/vnnews/crawler/internal/storage"
)

// app holds the wired dependency graph shared by all commands.
type app struct {
	cfg        *config.Config
	log        logger.Interface
	db         *sqlx.DB
	engine     *ingest.Engine
	sources    *database.SourceRepository
	categories *database.CategoryRepository
}

// buildApp loads configuration and wires every component, outermost last.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	if debug {
		cfg.App.Debug = true
		cfg.Logger.Level = "debug"
	}

	log := logger.New(cfg.Logger)

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init storage: %w", err)
	}

	client := fetch.New(cfg.HTTP, log)
	articles := database.NewArticleRepository(db)
	sources := database.NewSourceRepository(db)
	categories := database.NewCategoryRepository(db)

	pipe := pipeline.New(
		sanitize.New(cfg.Sanitizer),
		media.NewRewriter(store, client, log),
		cfg.Crawler.MediaSubdir,
		log,
	)
	classifier := classify.New(cfg.Classifier, categories, log)
	engine := ingest.New(articles, sources, classifier, pipe, client, cfg.Crawler, log)

	return &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		engine:     engine,
		sources:    sources,
		categories: categories,
	}, nil
}

// close releases the app's resources.
func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.log.Error("closing database", "error", err)
	}
}
