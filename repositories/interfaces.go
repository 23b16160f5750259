package repositories

import (
	"context"

	"github.com/spacebio/articles-api/models"
)

// ChunkSearcher queries the vector index for the chunks nearest to an
// embedding. Results arrive in descending score order, each joined to its
// owning article; an empty slice is a valid outcome, not an error.
type ChunkSearcher interface {
	Search(ctx context.Context, embedding []float64, limit int) ([]models.ChunkMatch, error)
}

// ArticleRepository provides read access to stored articles.
type ArticleRepository interface {
	FindAll(ctx context.Context) ([]models.Article, error)
	// FindByID returns the article with its chunks and mentioned entities,
	// or nil when no article has the given id.
	FindByID(ctx context.Context, id int64) (*models.Article, error)
}
