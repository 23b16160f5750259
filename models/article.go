package models

// Article represents a scientific article stored in the graph.
type Article struct {
	ArticleID int64   `json:"article_id"`
	Title     string  `json:"title"`
	Link      string  `json:"link"`
	Chunks    []Chunk `json:"chunks,omitempty"`
	// Entities mentioned by the article (organisms, missions, conditions)
	Entities []Entity `json:"entities,omitempty"`
}

// Chunk is a segment of an article's text, the unit indexed for similarity search.
type Chunk struct {
	ChunkID int64  `json:"chunk_id"`
	Text    string `json:"text"`
}

// Entity is a named concept linked to an article via a MENTIONS relationship.
type Entity struct {
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}
