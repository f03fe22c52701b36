package llm

import "strings"

// SanitizeModelJSON prepares free-form model output for JSON parsing:
// surrounding whitespace is trimmed, a leading ```json or ``` fence marker and
// a trailing ``` marker are removed (each independently of the other), and if
// a brace-delimited span exists the working string is replaced with the span
// from the first '{' to the last '}'. The span isolation discards any
// explanatory prose the model emitted despite instructions; it deliberately
// does not check brace balance.
func SanitizeModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			return s[i : j+1]
		}
	}
	return s
}
