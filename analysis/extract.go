package analysis

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSON pulls a JSON object out of model output. Gemini is asked for
// strict JSON but tends to wrap it in a ```json fence anyway, so the fence
// is tried first, then the outermost brace pair.
func extractJSON(text string) (json.RawMessage, error) {
	if idx := strings.Index(text, "```json"); idx >= 0 {
		rest := text[idx+len("```json"):]
		if end := strings.Index(rest, "```"); end >= 0 {
			candidate := strings.TrimSpace(rest[:end])
			if json.Valid([]byte(candidate)) {
				return json.RawMessage(candidate), nil
			}
		}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	candidate := text[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return nil, fmt.Errorf("model output contains malformed JSON")
	}
	return json.RawMessage(candidate), nil
}
