package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/spacebio/articles-api/models"
	"go.uber.org/zap"
)

const (
	findAllArticlesQuery = `MATCH (a:Article) RETURN a ORDER BY a.title LIMIT 50`

	findArticleByIDQuery = `
MATCH (a:Article {article_id: $id})
OPTIONAL MATCH (a)-[:HAS_CHUNK]->(c:Chunk)
OPTIONAL MATCH (a)-[:MENTIONS]->(e:Entity)
RETURN a, collect(DISTINCT c) AS chunks, collect(DISTINCT e) AS entities`
)

// ArticleRepository reads Article nodes and their related chunks and entities.
type ArticleRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(db *DB, logger *zap.Logger) *ArticleRepository {
	return &ArticleRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll lists stored articles ordered by title, capped at 50.
func (r *ArticleRepository) FindAll(ctx context.Context) ([]models.Article, error) {
	session := r.db.readSession(ctx)
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, findAllArticlesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("article listing query failed: %w", err)
	}

	var articles []models.Article
	for result.Next(ctx) {
		value, ok := result.Record().Get("a")
		if !ok {
			continue
		}
		node, ok := value.(neo4j.Node)
		if !ok {
			continue
		}
		articles = append(articles, articleFromNode(node))
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("article listing iteration failed: %w", err)
	}

	return articles, nil
}

// FindByID returns an article with its collected chunks and entities, or nil
// when no article carries the id.
func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*models.Article, error) {
	session := r.db.readSession(ctx)
	defer func() { _ = session.Close(ctx) }()

	result, err := session.Run(ctx, findArticleByIDQuery, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("article lookup query failed: %w", err)
	}

	if !result.Next(ctx) {
		if err := result.Err(); err != nil {
			return nil, fmt.Errorf("article lookup iteration failed: %w", err)
		}
		return nil, nil
	}
	record := result.Record()

	value, ok := record.Get("a")
	if !ok {
		return nil, nil
	}
	node, ok := value.(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("article lookup returned unexpected value %T", value)
	}

	article := articleFromNode(node)
	article.Chunks = chunksFromRecord(record, "chunks")
	article.Entities = entitiesFromRecord(record, "entities")

	r.logger.Debug("article lookup completed",
		zap.Int64("article_id", id),
		zap.Int("chunks", len(article.Chunks)),
		zap.Int("entities", len(article.Entities)))

	return &article, nil
}

func articleFromNode(node neo4j.Node) models.Article {
	article := models.Article{}
	if id, ok := node.Props["article_id"].(int64); ok {
		article.ArticleID = id
	}
	if title, ok := node.Props["title"].(string); ok {
		article.Title = title
	}
	if link, ok := node.Props["link"].(string); ok {
		article.Link = link
	}
	return article
}

func chunksFromRecord(record *neo4j.Record, key string) []models.Chunk {
	var chunks []models.Chunk
	for _, node := range nodesFromRecord(record, key) {
		chunk := models.Chunk{}
		if id, ok := node.Props["chunk_id"].(int64); ok {
			chunk.ChunkID = id
		}
		if text, ok := node.Props["text"].(string); ok {
			chunk.Text = text
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func entitiesFromRecord(record *neo4j.Record, key string) []models.Entity {
	var entities []models.Entity
	for _, node := range nodesFromRecord(record, key) {
		entity := models.Entity{}
		if name, ok := node.Props["name"].(string); ok {
			entity.Name = name
		}
		if kind, ok := node.Props["type"].(string); ok {
			entity.Type = kind
		}
		entities = append(entities, entity)
	}
	return entities
}

func nodesFromRecord(record *neo4j.Record, key string) []neo4j.Node {
	value, ok := record.Get(key)
	if !ok {
		return nil
	}
	raw, ok := value.([]any)
	if !ok {
		return nil
	}
	nodes := make([]neo4j.Node, 0, len(raw))
	for _, item := range raw {
		if node, ok := item.(neo4j.Node); ok {
			nodes = append(nodes, node)
		}
	}
	return nodes
}
