package output

import (
	"path/filepath"
	"strings"
)

// RenderMarkdown renders each file as its path followed by a fenced block.
// Full content carries the file extension as the language hint; reduced
// content carries none since it is not valid source.
func RenderMarkdown(contexts []FileContext) string {
	var b strings.Builder
	for _, fc := range contexts {
		hint := ""
		if fc.Mode == ModeFull {
			hint = strings.TrimPrefix(filepath.Ext(fc.Path), ".")
		}
		b.WriteString(fc.Path)
		b.WriteString("\n```")
		b.WriteString(hint)
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(fc.Content, " \t\r\n"))
		b.WriteString("\n```\n\n")
	}
	return b.String()
}

// Totals sums lines and skeleton tokens across contexts
func Totals(contexts []FileContext) (lines, tokens int) {
	for _, fc := range contexts {
		lines += fc.Lines
		tokens += fc.Tokens
	}
	return lines, tokens
}
