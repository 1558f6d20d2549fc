package util

import "strings"

// RepairJSON coerces a chat completion into a JSON document: it drops a
// markdown fence and any prose around the outermost object or array. The
// second result reports whether s was changed.
func RepairJSON(s string) (string, bool) {
	out := stripFence(strings.TrimSpace(s))

	open := strings.IndexAny(out, "{[")
	if open < 0 {
		return out, out != s
	}
	out = out[open:]
	if end := strings.LastIndexAny(out, "}]"); end >= 0 {
		out = out[:end+1]
	}
	return out, out != s
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	s = strings.TrimSpace(s[3 : len(s)-3])
	if len(s) >= 4 && strings.EqualFold(s[:4], "json") {
		s = strings.TrimSpace(s[4:])
	}
	return s
}
