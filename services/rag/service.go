package rag

import (
	"context"

	"github.com/google/uuid"
	"github.com/spacebio/articles-api/models"
	"github.com/spacebio/articles-api/repositories"
	"github.com/spacebio/articles-api/services"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Embedder is the black-box embedding provider.
type Embedder interface {
	EmbedContent(ctx context.Context, text string) ([]float64, error)
}

// Options holds the retrieval widths of the pipeline. PrimaryWidth is used in
// both modes: answer quality benefits from the full grounding set even when no
// related cards are requested. RelatedWidth is the wider search that only
// sources discovery cards.
type Options struct {
	PrimaryWidth int
	RelatedWidth int
	MaxRelated   int
}

const funFactPrompt = `Genera un dato curioso, sorprendente y breve (máximo 30 palabras) sobre biología espacial o la vida en el espacio.
La respuesta debe empezar obligatoriamente con "Sabías que...".
Sé creativo y asegúrate de que sea interesante para un público general.`

// Service orchestrates the question-answering pipeline: embed the question,
// retrieve grounding chunks, partition them into context and related cards,
// and synthesize a cited answer.
type Service struct {
	embedder    Embedder
	searcher    repositories.ChunkSearcher
	assembler   *Assembler
	synthesizer *Synthesizer
	generator   Generator
	opts        Options
	logger      *zap.Logger
}

// NewService creates a new Service
func NewService(
	embedder Embedder,
	searcher repositories.ChunkSearcher,
	assembler *Assembler,
	synthesizer *Synthesizer,
	generator Generator,
	opts Options,
	logger *zap.Logger,
) *Service {
	return &Service{
		embedder:    embedder,
		searcher:    searcher,
		assembler:   assembler,
		synthesizer: synthesizer,
		generator:   generator,
		opts:        opts,
		logger:      logger,
	}
}

// Ask answers a question grounded in the article corpus. searchMode addition-
// ally surfaces related-article cards sourced from a wider retrieval. The
// envelope shape is identical in both modes; when retrieval finds nothing the
// answer is a fixed not-found message and no generation call is made.
func (s *Service) Ask(ctx context.Context, question string, searchMode bool) (*AnswerEnvelope, error) {
	log := s.logger.With(
		zap.String("ask_id", uuid.New().String()),
		zap.Bool("search_mode", searchMode))
	log.Info("question received", zap.String("question", question))

	log.Debug("step 1: embedding question")
	embedding, err := s.embedder.EmbedContent(ctx, question)
	if err != nil {
		return nil, services.WrapExternal("embedding provider failed", err)
	}

	log.Debug("step 2: retrieving chunks",
		zap.Int("primary_width", s.opts.PrimaryWidth),
		zap.Int("related_width", s.opts.RelatedWidth))
	primary, candidates, err := s.retrieve(ctx, embedding, searchMode)
	if err != nil {
		return nil, err
	}

	if len(primary) == 0 {
		log.Info("no chunks matched the question")
		return &AnswerEnvelope{
			Answer:          NotFoundAnswer,
			RelatedArticles: []RelatedArticleCard{},
		}, nil
	}

	log.Debug("step 3: assembling context",
		zap.Int("primary_chunks", len(primary)),
		zap.Int("candidate_chunks", len(candidates)))
	maxRelated := 0
	if searchMode {
		maxRelated = s.opts.MaxRelated
	}
	sources, related := s.assembler.Assemble(append(primary, candidates...), len(primary), maxRelated)

	log.Debug("step 4: synthesizing answer", zap.Int("sources", len(sources)))
	answer, err := s.synthesizer.Synthesize(ctx, question, sources)
	if err != nil {
		return nil, err
	}

	log.Info("answer generated",
		zap.Int("primary_sources", len(sources)),
		zap.Int("related_articles", len(related)))

	return &AnswerEnvelope{Answer: answer, RelatedArticles: related}, nil
}

// retrieve runs the primary search, plus the wider related-card search in
// search mode. The two searches are independent, so they run concurrently;
// ordering and dedup are handled afterwards by the assembler.
func (s *Service) retrieve(ctx context.Context, embedding []float64, searchMode bool) (primary, wide []models.ChunkMatch, err error) {
	if !searchMode {
		primary, err = s.searcher.Search(ctx, embedding, s.opts.PrimaryWidth)
		if err != nil {
			return nil, nil, services.WrapInternal("chunk retrieval failed", err)
		}
		return primary, nil, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var searchErr error
		primary, searchErr = s.searcher.Search(gctx, embedding, s.opts.PrimaryWidth)
		return searchErr
	})
	g.Go(func() error {
		var searchErr error
		wide, searchErr = s.searcher.Search(gctx, embedding, s.opts.RelatedWidth)
		return searchErr
	})
	if err := g.Wait(); err != nil {
		return nil, nil, services.WrapInternal("chunk retrieval failed", err)
	}
	return primary, wide, nil
}

// FunFact returns a single-shot generated curiosity. It never fails from the
// caller's perspective: provider errors fall back to a fixed fact.
func (s *Service) FunFact(ctx context.Context) string {
	fact, err := s.generator.GenerateContent(ctx, funFactPrompt)
	if err != nil {
		s.logger.Warn("fun fact generation failed, using fallback", zap.Error(err))
		return FunFactFallback
	}
	return fact
}
