package assistant

import "strings"

// ExtractPayload isolates the structured payload embedded in a completion:
// the span from the first '{' to the last '}'. This is a best-effort
// heuristic, not a balanced-brace parser; nested braces inside string values
// survive only because the span is outermost. When the completion carries no
// '{' (or no closing brace after it), the input is returned unchanged and
// the caller's parse step will reject it. Never fails.
func ExtractPayload(completion string) string {
	start := strings.Index(completion, "{")
	if start < 0 {
		return completion
	}
	end := strings.LastIndex(completion, "}")
	if end < start {
		return completion
	}
	return completion[start : end+1]
}
