package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleBlankOCRReturnsUserTextVerbatim(t *testing.T) {
	assert.Equal(t, "hello", Assemble("hello", ""))
	assert.Equal(t, "hello", Assemble("hello", "   \n\t "))
	assert.Equal(t, "", Assemble("", ""))
	assert.Equal(t, "  padded  ", Assemble("  padded  ", ""))
}

func TestAssembleOCROnly(t *testing.T) {
	result := Assemble("", "invoice text")

	assert.Equal(t, OCROpenTag+"\ninvoice text\n"+OCRCloseTag, result)
	assert.False(t, strings.HasPrefix(result, "\n"), "no leading blank line from an absent user section")
}

func TestAssembleUserAndOCR(t *testing.T) {
	result := Assemble("is this invoice real?", "TOTAL DUE: $400")

	assert.Equal(t,
		"is this invoice real?\n\n"+OCROpenTag+"\nTOTAL DUE: $400\n"+OCRCloseTag,
		result,
	)
}

func TestAssembleOCRAlwaysAppendedAfterUserText(t *testing.T) {
	result := Assemble("user part", "ocr part")

	userIdx := strings.Index(result, "user part")
	ocrIdx := strings.Index(result, OCROpenTag)
	assert.Less(t, userIdx, ocrIdx)
	assert.True(t, strings.HasSuffix(result, OCRCloseTag))
}

func TestAssembleTrimsInputs(t *testing.T) {
	result := Assemble("  question  ", "  extracted  ")
	assert.Equal(t, "question\n\n"+OCROpenTag+"\nextracted\n"+OCRCloseTag, result)
}
