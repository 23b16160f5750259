package models

// ChunkMatch is a similarity-search hit: a chunk's text joined to its owning
// article, with the index-reported similarity score (higher is more relevant).
type ChunkMatch struct {
	Text  string  `json:"text"`
	Title string  `json:"title"`
	Link  string  `json:"link"`
	Score float64 `json:"score"`
}
