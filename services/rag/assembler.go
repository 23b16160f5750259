package rag

import (
	"github.com/spacebio/articles-api/models"
)

// Assembler partitions retrieved chunks into the primary context set that
// grounds the answer and a deduplicated set of related-article cards.
type Assembler struct {
	cleaner       *Cleaner
	summaryLength int
}

// NewAssembler creates a new Assembler
func NewAssembler(cleaner *Cleaner, summaryLength int) *Assembler {
	return &Assembler{
		cleaner:       cleaner,
		summaryLength: summaryLength,
	}
}

// Assemble takes results in retrieval rank order. The first primaryCount
// become primary sources verbatim, raw text included; articles may repeat
// within the primary set since multiple chunks of one article can ground the
// answer. The remaining results are scanned in rank order for related cards,
// skipping any link already seen, until maxRelated cards are collected.
func (a *Assembler) Assemble(results []models.ChunkMatch, primaryCount, maxRelated int) ([]PrimarySource, []RelatedArticleCard) {
	if primaryCount > len(results) {
		primaryCount = len(results)
	}

	primaries := make([]PrimarySource, 0, primaryCount)
	seenLinks := make(map[string]struct{}, primaryCount)
	for _, match := range results[:primaryCount] {
		primaries = append(primaries, PrimarySource{
			Title: match.Title,
			Link:  match.Link,
			Text:  match.Text,
		})
		seenLinks[match.Link] = struct{}{}
	}

	related := make([]RelatedArticleCard, 0, maxRelated)
	for _, match := range results[primaryCount:] {
		if len(related) >= maxRelated {
			break
		}
		if _, seen := seenLinks[match.Link]; seen {
			continue
		}
		related = append(related, RelatedArticleCard{
			Title:   match.Title,
			Summary: a.summarize(match.Text),
			Link:    match.Link,
		})
		seenLinks[match.Link] = struct{}{}
	}

	return primaries, related
}

// summarize cleans the chunk text and truncates it to the configured length,
// appending an ellipsis only when truncation occurred.
func (a *Assembler) summarize(text string) string {
	cleaned := a.cleaner.Clean(text)
	runes := []rune(cleaned)
	if len(runes) <= a.summaryLength {
		return cleaned
	}
	return string(runes[:a.summaryLength]) + "..."
}
