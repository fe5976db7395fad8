package fileutil

import "strings"

// NonEmpty drops blank entries and keeps the rest verbatim, surrounding
// spaces included.
func NonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	return out
}

// CountLines counts lines the way editors do: a trailing newline does not
// start a new line, and empty content has zero lines.
func CountLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
