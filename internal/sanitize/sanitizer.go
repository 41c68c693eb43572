package sanitize

import (
	"regexp"
	"strings"
)

// Result is the outcome of sanitizing a piece of text. When Blocked is true,
// SanitizedText is always empty; when Blocked is false, SanitizedText is
// always set, possibly equal to the input.
type Result struct {
	Blocked       bool
	SanitizedText string
	Reason        string
}

// blockPattern pairs a regex with the human-readable reason reported when the
// pattern matches
type blockPattern struct {
	regex  *regexp.Regexp
	reason string
}

// blockPatterns match input whose injection intent is unambiguous. A match
// rejects the whole request; the user must edit the content.
var blockPatterns = []blockPattern{
	{
		regex:  regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above|earlier)\s+(instructions?|prompts?|messages?)`),
		reason: "Content attempts to override analysis instructions",
	},
	{
		regex:  regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior|above|earlier)\s+(instructions?|prompts?|messages?)`),
		reason: "Content attempts to override analysis instructions",
	},
	{
		regex:  regexp.MustCompile(`(?i)forget\s+(everything|all)\s+(you|above|before)`),
		reason: "Content attempts to override analysis instructions",
	},
	{
		regex:  regexp.MustCompile(`(?i)\bsystem\s*(prompt|message|instructions?)\s*:`),
		reason: "Content attempts to inject a system-level directive",
	},
	{
		regex:  regexp.MustCompile(`(?i)\bnew\s+instructions?\s*:`),
		reason: "Content attempts to inject a system-level directive",
	},
	{
		regex:  regexp.MustCompile(`(?i)you\s+are\s+(now|no\s+longer)\s+`),
		reason: "Content attempts to redefine the analyzer's role",
	},
	{
		regex:  regexp.MustCompile(`(?i)\b(pretend|act\s+as\s+if)\s+you\s+are\b`),
		reason: "Content attempts to redefine the analyzer's role",
	},
	{
		regex:  regexp.MustCompile(`(?i)</?\s*(system|assistant|instructions?)\s*>`),
		reason: "Content attempts to escape the prompt quoting context",
	},
	{
		regex:  regexp.MustCompile(`(?i)\[\s*/?\s*INST\s*\]`),
		reason: "Content attempts to escape the prompt quoting context",
	},
	{
		regex:  regexp.MustCompile(`(?i)respond\s+with\s+.{0,40}\b(low|minimal|no)\s+risk\b`),
		reason: "Content attempts to dictate the risk verdict",
	},
}

// stripPatterns match benign noise removed without blocking: control
// characters, zero-width characters, and forged OCR delimiter tags (the real
// delimiter is applied by the assembler after sanitization, so any occurrence
// inside raw input is user-controlled).
var stripPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`),
	regexp.MustCompile("[\u200B\u200C\u200D\u2060\uFEFF]"),
	regexp.MustCompile(`(?i)\[\s*/?\s*OCR_EXTRACTED_TEXT\s*\]`),
}

// Sanitizer scans text for prompt-injection patterns. The same instance is
// used for user-typed text and for OCR-extracted text; an image can encode
// the same attack as typed input, so OCR text is never exempted.
type Sanitizer struct{}

// NewSanitizer creates a sanitizer with the default pattern set
func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize scans text, blocking on unambiguous injection and stripping
// benign noise otherwise.
func (s *Sanitizer) Sanitize(text string) Result {
	for _, bp := range blockPatterns {
		if bp.regex.MatchString(text) {
			return Result{
				Blocked: true,
				Reason:  bp.reason,
			}
		}
	}

	sanitized := text
	for _, pattern := range stripPatterns {
		sanitized = pattern.ReplaceAllString(sanitized, "")
	}

	return Result{
		Blocked:       false,
		SanitizedText: strings.TrimSpace(sanitized),
	}
}
