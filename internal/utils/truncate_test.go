package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateBase64StringShortPassthrough(t *testing.T) {
	assert.Equal(t, "hello world", TruncateBase64String("hello world"))
	assert.Equal(t, "aGVsbG8=", TruncateBase64String("aGVsbG8="))
}

func TestTruncateBase64StringWholeString(t *testing.T) {
	long := strings.Repeat("A", 500) + "=="

	truncated := TruncateBase64String(long)
	assert.True(t, len(truncated) < len(long))
	assert.Contains(t, truncated, "chars truncated")
	assert.True(t, strings.HasPrefix(truncated, strings.Repeat("A", 50)))
}

func TestTruncateBase64StringDataURL(t *testing.T) {
	payload := strings.Repeat("Zm9v", 100)
	input := "see attachment data:image/png;base64," + payload + " for details"

	truncated := TruncateBase64String(input)
	assert.Contains(t, truncated, "data:image/png;base64,")
	assert.Contains(t, truncated, "chars truncated")
	assert.Contains(t, truncated, "see attachment")
	assert.Contains(t, truncated, "for details")
}

func TestTruncateBase64StringLeavesProse(t *testing.T) {
	prose := strings.Repeat("this is a normal sentence with spaces ", 10)
	assert.Equal(t, prose, TruncateBase64String(prose))
}

func TestTruncateBase64InDataRecursion(t *testing.T) {
	long := strings.Repeat("B", 400)
	data := map[string]interface{}{
		"text": "short",
		"image": map[string]interface{}{
			"base64": long,
		},
		"items": []interface{}{long, "keep"},
		"count": 3,
	}

	out := TruncateBase64InData(data).(map[string]interface{})
	assert.Equal(t, "short", out["text"])
	assert.Equal(t, 3, out["count"])

	image := out["image"].(map[string]interface{})
	assert.Contains(t, image["base64"], "chars truncated")

	items := out["items"].([]interface{})
	assert.Contains(t, items[0], "chars truncated")
	assert.Equal(t, "keep", items[1])
}

func TestGenerateIDs(t *testing.T) {
	sessionID := GenerateSessionID()
	assert.Len(t, sessionID, 36, "session id should be a uuid")
	assert.NotEqual(t, sessionID, GenerateSessionID())

	requestID := GenerateRequestID()
	assert.Len(t, requestID, 16)
	assert.NotEqual(t, requestID, GenerateRequestID())
}
