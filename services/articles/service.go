package articles

import (
	"context"
	"fmt"

	"github.com/spacebio/articles-api/models"
	"github.com/spacebio/articles-api/repositories"
	"github.com/spacebio/articles-api/services"
	"go.uber.org/zap"
)

// Service exposes read access to the article corpus.
type Service struct {
	repo   repositories.ArticleRepository
	logger *zap.Logger
}

// NewService creates a new Service
func NewService(repo repositories.ArticleRepository, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List returns the stored articles ordered by title.
func (s *Service) List(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, services.WrapInternal("failed to list articles", err)
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

// Get returns one article with its chunks and entities.
func (s *Service) Get(ctx context.Context, id int64) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, services.WrapInternal(fmt.Sprintf("failed to load article %d", id), err)
	}
	if article == nil {
		return nil, services.ErrArticleNotFound
	}
	return article, nil
}
