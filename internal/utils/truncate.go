package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// Image payloads arrive base64-encoded and can be megabytes long. Logging them
// verbatim makes log lines unusable, so any long base64 run is collapsed to
// its head and tail before a log entry is written.

const base64TruncateThreshold = 100

var dataURLRegex = regexp.MustCompile(`(?i)(data:[^;]+;base64,)([A-Za-z0-9+/]{100,}={0,2})`)

// TruncateBase64InData truncates base64 payloads in arbitrary structured log data
func TruncateBase64InData(data interface{}) interface{} {
	switch v := data.(type) {
	case string:
		return TruncateBase64String(v)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for k, val := range v {
			out[k] = TruncateBase64InData(val)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, val := range v {
			out[i] = TruncateBase64InData(val)
		}
		return out
	default:
		return data
	}
}

// TruncateBase64String collapses long base64 runs in a string to head...tail form
func TruncateBase64String(s string) string {
	// Embedded data URLs anywhere in the string
	s = dataURLRegex.ReplaceAllStringFunc(s, func(match string) string {
		sub := dataURLRegex.FindStringSubmatch(match)
		if len(sub) != 3 {
			return match
		}
		return sub[1] + truncatePayload(sub[2])
	})

	// Whole-string raw base64 (no data URL prefix), e.g. an ImageData.Base64 field
	if len(s) > base64TruncateThreshold && isLikelyBase64(s) {
		return truncatePayload(s)
	}

	return s
}

func truncatePayload(payload string) string {
	if len(payload) <= base64TruncateThreshold {
		return payload
	}
	return payload[:50] + "...[" + fmt.Sprintf("%d chars truncated", len(payload)-100) + "]..." + payload[len(payload)-50:]
}

func isLikelyBase64(s string) bool {
	trimmed := strings.TrimRight(s, "=")
	for _, r := range trimmed {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '+' && r != '/' {
			return false
		}
	}
	return true
}
