package rag

// PrimarySource is a retrieved chunk used to ground the answer: the article
// identity plus the raw chunk text fed into the generation prompt.
type PrimarySource struct {
	Title string
	Link  string
	Text  string
}

// RelatedArticleCard is a discovery suggestion for an article that is not
// among the primary sources.
type RelatedArticleCard struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Link    string `json:"link"`
}

// AnswerEnvelope is the uniform result of an ask, regardless of mode.
type AnswerEnvelope struct {
	Answer          string               `json:"answer"`
	RelatedArticles []RelatedArticleCard `json:"relatedArticles"`
}

const (
	// NotFoundAnswer is returned when retrieval yields no matches. The
	// frontend matches on this exact string.
	NotFoundAnswer = "Lo siento, no pude encontrar información relevante para tu pregunta."

	// FunFactFallback is returned when the fun-fact generation call fails.
	FunFactFallback = "Sabías que... el traje espacial de un astronauta pesa alrededor de 130 kg en la Tierra, pero nada en el espacio."

	// ReferencesHeader opens the mandatory bibliography section of every
	// grounded answer.
	ReferencesHeader = "### Referencias"
)
