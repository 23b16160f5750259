package graph

import (
	"context"
	"fmt"

	"github.com/spacebio/articles-api/models"
	"go.uber.org/zap"
)

// chunkSearchQuery asks the vector index for the nearest chunks and joins each
// one to its owning article. Orphan chunks fail the MATCH and are excluded.
const chunkSearchQuery = `
CALL db.index.vector.queryNodes('chunk_embeddings', $limit, $embedding)
YIELD node AS chunk, score
MATCH (chunk)<-[:HAS_CHUNK]-(article:Article)
RETURN chunk.text AS text, article.title AS title, article.link AS link, score
ORDER BY score DESC`

// ChunkRepository performs similarity searches over the chunk vector index.
type ChunkRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewChunkRepository creates a new ChunkRepository
func NewChunkRepository(db *DB, logger *zap.Logger) *ChunkRepository {
	return &ChunkRepository{
		db:     db,
		logger: logger,
	}
}

// Search returns at most limit chunks nearest to the embedding, in descending
// score order. An empty result is a valid outcome.
func (r *ChunkRepository) Search(ctx context.Context, embedding []float64, limit int) ([]models.ChunkMatch, error) {
	if limit < 1 {
		return nil, fmt.Errorf("search limit must be at least 1, got %d", limit)
	}

	session := r.db.readSession(ctx)
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, chunkSearchQuery, map[string]any{
		"limit":     limit,
		"embedding": embedding,
	})
	if err != nil {
		return nil, fmt.Errorf("chunk similarity query failed: %w", err)
	}

	var matches []models.ChunkMatch
	for result.Next(ctx) {
		values := result.Record().AsMap()
		match := models.ChunkMatch{
			Text:  stringValue(values, "text"),
			Title: stringValue(values, "title"),
			Link:  stringValue(values, "link"),
		}
		if score, ok := values["score"].(float64); ok {
			match.Score = score
		}
		matches = append(matches, match)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("chunk similarity result iteration failed: %w", err)
	}

	r.logger.Debug("similarity search completed",
		zap.Int("limit", limit),
		zap.Int("matches", len(matches)))

	return matches, nil
}

func stringValue(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
