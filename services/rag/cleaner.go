package rag

import (
	"regexp"
	"strings"
)

// DefaultBoilerplate lists the publisher furniture that shows up verbatim in
// the indexed article text and adds nothing to a summary.
var DefaultBoilerplate = []string{
	"This article has been cited by other articles in PMC.",
	"This is an open-access article distributed under the terms of the Creative Commons Attribution License.",
	"The authors declare no conflict of interest.",
	"Author manuscript; available in PMC.",
	"All rights reserved.",
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// Cleaner strips boilerplate phrases and normalizes whitespace in raw article
// text before it is surfaced as a related-article summary. Prompt context is
// never cleaned; it keeps the original formatting.
type Cleaner struct {
	phrases []*regexp.Regexp
}

// NewCleaner creates a Cleaner with the given phrase set; nil selects
// DefaultBoilerplate. Phrases match case-insensitively as exact substrings.
func NewCleaner(phrases []string) *Cleaner {
	if phrases == nil {
		phrases = DefaultBoilerplate
	}
	compiled := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		if phrase == "" {
			continue
		}
		compiled = append(compiled, regexp.MustCompile(`(?i)`+regexp.QuoteMeta(phrase)))
	}
	return &Cleaner{phrases: compiled}
}

// Clean removes every configured phrase, collapses whitespace runs to single
// spaces and trims the result. Clean is idempotent: removal repeats until no
// phrase matches, so occurrences formed across a cut are removed too.
func (c *Cleaner) Clean(text string) string {
	for _, phrase := range c.phrases {
		for phrase.MatchString(text) {
			text = phrase.ReplaceAllString(text, "")
		}
	}
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
