package content

import (
	"regexp"
	"strings"

	"github.com/fraudshield/go-fraud-screening-pipeline/internal/config"
)

// ContextSignal describes how URL-dominant a piece of text is
type ContextSignal struct {
	URLs              []string `json:"urls"`
	ContextWordCount  int      `json:"contextWordCount"`
	URLRatio          float64  `json:"urlRatio"`
	HasMinimalContext bool     `json:"hasMinimalContext"`
}

// urlRegex matches schemed URLs, www.-prefixed tokens, and bare domain-like
// tokens optionally followed by a path, in a single pass
var urlRegex = regexp.MustCompile(`(?i)\b(?:https?://[^\s]+|www\.[^\s]+|[a-z0-9][a-z0-9-]*(?:\.[a-z0-9][a-z0-9-]*)*\.[a-z]{2,}(?:/[^\s]*)?)`)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// Heuristic gates whether submitted text needs more user context before a
// deep analysis is worth running. The thresholds are empirically chosen
// product constants carried in configuration.
type Heuristic struct {
	cfg config.HeuristicConfig
}

// NewHeuristic creates a heuristic with the given thresholds
func NewHeuristic(cfg config.HeuristicConfig) *Heuristic {
	return &Heuristic{cfg: cfg}
}

// Score extracts URLs from the text and measures the surrounding context.
// Text with no URLs never signals minimal context; text that is mostly URL,
// or whose non-URL remainder is only a few words, does.
func (h *Heuristic) Score(text string) ContextSignal {
	urls := urlRegex.FindAllString(text, -1)
	if len(urls) == 0 {
		return ContextSignal{
			URLs:              nil,
			ContextWordCount:  countContextWords(text),
			URLRatio:          0,
			HasMinimalContext: false,
		}
	}

	urlLength := 0
	for _, u := range urls {
		urlLength += len(u)
	}

	remainder := urlRegex.ReplaceAllString(text, " ")
	remainder = whitespaceRegex.ReplaceAllString(remainder, " ")

	wordCount := countContextWords(remainder)

	ratio := 0.0
	if len(text) > 0 {
		ratio = float64(urlLength) / float64(len(text))
	}

	return ContextSignal{
		URLs:              urls,
		ContextWordCount:  wordCount,
		URLRatio:          ratio,
		HasMinimalContext: wordCount < h.cfg.MinContextWords || ratio > h.cfg.URLRatioThreshold,
	}
}

// countContextWords counts whitespace-separated tokens longer than one
// character
func countContextWords(text string) int {
	count := 0
	for _, token := range strings.Fields(text) {
		if len(token) > 1 {
			count++
		}
	}
	return count
}
