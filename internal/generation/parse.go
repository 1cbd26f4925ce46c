package generation

import "strings"

// parseOutline splits raw model output into titles: one per non-blank line,
// trimmed, truncated to n. It never pads.
func parseOutline(raw string, n int) []string {
	titles := make([]string, 0, n)
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		titles = append(titles, line)
		if len(titles) == n {
			break
		}
	}
	return titles
}
