package app

import (
	"context"
	"fmt"

	"github.com/spacebio/articles-api/config"
	"github.com/spacebio/articles-api/handlers"
	"github.com/spacebio/articles-api/repositories/graph"
	"github.com/spacebio/articles-api/services/articles"
	"github.com/spacebio/articles-api/services/gemini"
	"github.com/spacebio/articles-api/services/rag"
	"go.uber.org/zap"
)

// Dependencies holds all application dependencies.
// This is the central wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger
	Graph  *graph.DB

	// Providers
	Gemini *gemini.Client

	// Services
	RagService     *rag.Service
	ArticleService *articles.Service

	// Handlers
	RagHandler     *handlers.RagHandler
	ArticleHandler *handlers.ArticleHandler
	HealthHandler  *handlers.HealthHandler
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initGraph(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize graph database: %w", err)
	}

	deps.initProviders(cfg)
	deps.initServices(cfg)
	deps.initHandlers()

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initGraph establishes and verifies the Neo4j connection
func (d *Dependencies) initGraph(ctx context.Context, cfg *config.Config) error {
	db, err := graph.NewDB(ctx, cfg.Neo4j, d.Logger)
	if err != nil {
		return err
	}
	d.Graph = db

	d.Logger.Info("graph database connection established",
		zap.String("uri", cfg.Neo4j.URI),
		zap.String("database", cfg.Neo4j.Database))
	return nil
}

func (d *Dependencies) initProviders(cfg *config.Config) {
	d.Gemini = gemini.NewClient(cfg.Gemini)

	d.Logger.Info("gemini client initialized",
		zap.String("generation_model", cfg.Gemini.GenerationModel),
		zap.String("embedding_model", cfg.Gemini.EmbeddingModel))
}

func (d *Dependencies) initServices(cfg *config.Config) {
	chunkRepo := graph.NewChunkRepository(d.Graph, d.Logger)
	articleRepo := graph.NewArticleRepository(d.Graph, d.Logger)

	assembler := rag.NewAssembler(rag.NewCleaner(nil), cfg.Rag.SummaryLength)
	synthesizer := rag.NewSynthesizer(d.Gemini)

	d.RagService = rag.NewService(
		d.Gemini,
		chunkRepo,
		assembler,
		synthesizer,
		d.Gemini,
		rag.Options{
			PrimaryWidth: cfg.Rag.PrimaryWidth,
			RelatedWidth: cfg.Rag.RelatedWidth,
			MaxRelated:   cfg.Rag.MaxRelated,
		},
		d.Logger,
	)
	d.ArticleService = articles.NewService(articleRepo, d.Logger)

	d.Logger.Info("services initialized")
}

func (d *Dependencies) initHandlers() {
	d.RagHandler = handlers.NewRagHandler(d.RagService, d.Logger)
	d.ArticleHandler = handlers.NewArticleHandler(d.ArticleService, d.Logger)
	d.HealthHandler = handlers.NewHealthHandler(d.Graph, d.Logger)
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.Graph != nil {
		if err := d.Graph.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close graph driver: %w", err))
		} else {
			d.Logger.Info("graph database connection closed")
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}
	return nil
}
