package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ModelCapability is one entry of the externally loaded capability table.
// The table is the primary source of truth for what a backend model supports;
// substring-based inference on the model id is only a fallback for ids the
// table does not know.
type ModelCapability struct {
	ID                       string `json:"id"`
	SupportsStructuredOutput bool   `json:"supports_structured_output"`
	SupportsNativeJSONSchema bool   `json:"supports_native_json_schema"`
	MaxTokens                int    `json:"max_tokens"`
}

// LoadModelCapabilities loads a capability table from a JSON file.
// A missing file yields an empty table, not an error: the router falls back
// to inference for every model id.
func LoadModelCapabilities(filePath string) ([]ModelCapability, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read model capability table %s: %w", filePath, err)
	}

	var capabilities []ModelCapability
	if err := json.Unmarshal(data, &capabilities); err != nil {
		return nil, fmt.Errorf("failed to parse model capability table %s: %w", filePath, err)
	}

	return capabilities, nil
}
