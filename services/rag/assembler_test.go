package rag

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spacebio/articles-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAssembler() *Assembler {
	return NewAssembler(NewCleaner(nil), 120)
}

func match(title, link, text string, score float64) models.ChunkMatch {
	return models.ChunkMatch{Text: text, Title: title, Link: link, Score: score}
}

func TestAssemblePartitionsPrimaryAndRelated(t *testing.T) {
	results := []models.ChunkMatch{
		match("A", "https://pmc.ncbi.nlm.nih.gov/a", "chunk a1", 0.95),
		match("B", "https://pmc.ncbi.nlm.nih.gov/b", "chunk b1", 0.93),
		match("A", "https://pmc.ncbi.nlm.nih.gov/a", "chunk a2", 0.91),
		match("C", "https://pmc.ncbi.nlm.nih.gov/c", "chunk c1", 0.88),
		match("D", "https://pmc.ncbi.nlm.nih.gov/d", "chunk d1", 0.85),
	}

	primaries, related := newTestAssembler().Assemble(results, 2, 4)

	require.Len(t, primaries, 2)
	assert.Equal(t, "chunk a1", primaries[0].Text)
	assert.Equal(t, "chunk b1", primaries[1].Text)

	// A repeats in rank position 3 but its link is already primary
	require.Len(t, related, 2)
	assert.Equal(t, "C", related[0].Title)
	assert.Equal(t, "D", related[1].Title)
}

func TestAssemblePrimarySetKeepsRepeatedArticles(t *testing.T) {
	results := []models.ChunkMatch{
		match("A", "https://pmc.ncbi.nlm.nih.gov/a", "chunk a1", 0.9),
		match("A", "https://pmc.ncbi.nlm.nih.gov/a", "chunk a2", 0.8),
	}

	primaries, related := newTestAssembler().Assemble(results, 2, 4)

	// Two chunks of one article both ground the answer
	require.Len(t, primaries, 2)
	assert.Equal(t, primaries[0].Link, primaries[1].Link)
	assert.Empty(t, related)
}

func TestAssembleNeverDuplicatesPrimaryLinkInRelated(t *testing.T) {
	results := make([]models.ChunkMatch, 0, 15)
	for i := 0; i < 5; i++ {
		link := fmt.Sprintf("https://pmc.ncbi.nlm.nih.gov/%d", i%3)
		results = append(results, match(fmt.Sprintf("P%d", i%3), link, "primary text", 1.0-float64(i)*0.01))
	}
	for i := 0; i < 10; i++ {
		link := fmt.Sprintf("https://pmc.ncbi.nlm.nih.gov/wide-%d", i)
		results = append(results, match(fmt.Sprintf("W%d", i), link, "wide text", 0.8-float64(i)*0.01))
	}

	primaries, related := newTestAssembler().Assemble(results, 5, 4)

	primaryLinks := make(map[string]struct{})
	for _, p := range primaries {
		primaryLinks[p.Link] = struct{}{}
	}
	for _, card := range related {
		_, clash := primaryLinks[card.Link]
		assert.False(t, clash, "related card %q duplicates a primary source", card.Link)
	}
	assert.Len(t, related, 4)
}

func TestAssembleCapsRelatedCards(t *testing.T) {
	var results []models.ChunkMatch
	results = append(results, match("P", "https://pmc.ncbi.nlm.nih.gov/p", "primary", 0.99))
	for i := 0; i < 8; i++ {
		results = append(results, match(
			fmt.Sprintf("R%d", i),
			fmt.Sprintf("https://pmc.ncbi.nlm.nih.gov/r%d", i),
			"related text", 0.9-float64(i)*0.05))
	}

	_, related := newTestAssembler().Assemble(results, 1, 4)

	require.Len(t, related, 4)
	// Rank order preserved, not alphabetical
	for i, card := range related {
		assert.Equal(t, fmt.Sprintf("R%d", i), card.Title)
	}
}

func TestAssembleSummaryTruncation(t *testing.T) {
	long := strings.Repeat("palabra ", 40) // well over 120 chars
	short := "Short summary."
	results := []models.ChunkMatch{
		match("P", "https://pmc.ncbi.nlm.nih.gov/p", "primary", 0.99),
		match("L", "https://pmc.ncbi.nlm.nih.gov/l", long, 0.9),
		match("S", "https://pmc.ncbi.nlm.nih.gov/s", short, 0.8),
	}

	_, related := newTestAssembler().Assemble(results, 1, 4)

	require.Len(t, related, 2)
	assert.Len(t, []rune(related[0].Summary), 123)
	assert.True(t, strings.HasSuffix(related[0].Summary, "..."))
	assert.Equal(t, short, related[1].Summary)
	for _, card := range related {
		assert.LessOrEqual(t, len([]rune(card.Summary)), 123)
	}
}

func TestAssembleSummaryIsCleaned(t *testing.T) {
	results := []models.ChunkMatch{
		match("P", "https://pmc.ncbi.nlm.nih.gov/p", "primary", 0.99),
		match("R", "https://pmc.ncbi.nlm.nih.gov/r",
			"Cell walls   thicken in orbit.\nAll rights reserved.", 0.9),
	}

	_, related := newTestAssembler().Assemble(results, 1, 4)

	require.Len(t, related, 1)
	assert.Equal(t, "Cell walls thicken in orbit.", related[0].Summary)
}

func TestAssembleEmptyResults(t *testing.T) {
	primaries, related := newTestAssembler().Assemble(nil, 5, 4)

	assert.Empty(t, primaries)
	assert.Empty(t, related)
	assert.NotNil(t, related)
}

func TestAssembleFewerResultsThanPrimaryCount(t *testing.T) {
	results := []models.ChunkMatch{
		match("A", "https://pmc.ncbi.nlm.nih.gov/a", "only chunk", 0.9),
	}

	primaries, related := newTestAssembler().Assemble(results, 5, 4)

	require.Len(t, primaries, 1)
	assert.Empty(t, related)
}
