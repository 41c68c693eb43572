// Package content merges user text with OCR output and scores whether the
// result carries enough context for deep analysis.
package content

import "strings"

// OCR delimiter tags. The pair is fixed and applied only here, after both
// inputs have passed sanitization, so downstream prompt construction can
// structurally distinguish typed text from text recovered from an image.
const (
	OCROpenTag  = "[OCR_EXTRACTED_TEXT]"
	OCRCloseTag = "[/OCR_EXTRACTED_TEXT]"
)

// Assemble merges user-supplied text and OCR-extracted text into one payload.
// OCR text is always appended after user text, never interleaved. Blank OCR
// text returns the user text verbatim, even when it is itself empty.
func Assemble(userText, ocrText string) string {
	if strings.TrimSpace(ocrText) == "" {
		return userText
	}

	wrapped := OCROpenTag + "\n" + strings.TrimSpace(ocrText) + "\n" + OCRCloseTag

	trimmedUser := strings.TrimSpace(userText)
	if trimmedUser == "" {
		return wrapped
	}

	return trimmedUser + "\n\n" + wrapped
}
