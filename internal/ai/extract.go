package ai

import "strings"

// extractJSON pulls the JSON payload out of free-form model text. Models
// frequently wrap JSON in markdown code fences, so: if a "```json" marker is
// present anywhere, the substring between it and the next fence is used;
// otherwise if any "```" fence is present, the substring between the first
// pair is used; otherwise the full text is returned verbatim.
//
// The matching is substring-based, not a real fence parser; it is kept
// behind this single function so a stricter extractor can be substituted
// without touching the orchestrator's error contract.
func extractJSON(s string) string {
	if _, after, found := strings.Cut(s, "```json"); found {
		payload, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(payload)
	}

	if _, after, found := strings.Cut(s, "```"); found {
		payload, _, _ := strings.Cut(after, "```")
		return strings.TrimSpace(payload)
	}

	return s
}
