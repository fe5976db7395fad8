package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/skelly-dev/ctxgrab/internal/output"
	"github.com/skelly-dev/ctxgrab/internal/resolve"
)

type FileSummary struct {
	Path     string `json:"path"`
	Mode     string `json:"mode"`
	Lines    int    `json:"lines"`
	Tokens   int    `json:"tokens,omitempty"`
	Fallback string `json:"fallback,omitempty"`
}

type RunSummary struct {
	Mode           string        `json:"mode"`
	Depth          int           `json:"depth,omitempty"`
	RootPath       string        `json:"root_path"`
	Inputs         int           `json:"inputs"`
	Files          int           `json:"files"`
	Lines          int           `json:"lines"`
	Tokens         int           `json:"tokens,omitempty"`
	Destination    string        `json:"destination,omitempty"`
	ClipboardError string        `json:"clipboard_error,omitempty"`
	DurationMS     int64         `json:"duration_ms"`
	FileSummaries  []FileSummary `json:"file_summaries"`
}

// SuccessDocument is the --json output of a successful run.
type SuccessDocument struct {
	Summary RunSummary           `json:"summary"`
	Files   []output.FileContext `json:"files"`
	Issues  []resolve.Issue      `json:"issues,omitempty"`
}

func newRunSummary(mode output.Mode, depth int, rootPath string, inputs int, contexts []output.FileContext) RunSummary {
	lines, tokens := output.Totals(contexts)
	summary := RunSummary{
		Mode:          string(mode),
		RootPath:      rootPath,
		Inputs:        inputs,
		Files:         len(contexts),
		Lines:         lines,
		Tokens:        tokens,
		FileSummaries: make([]FileSummary, 0, len(contexts)),
	}
	if mode == output.ModeSkeleton {
		summary.Depth = depth
	}
	for _, fc := range contexts {
		summary.FileSummaries = append(summary.FileSummaries, FileSummary{
			Path:     fc.Path,
			Mode:     string(fc.Mode),
			Lines:    fc.Lines,
			Tokens:   fc.Tokens,
			Fallback: fc.Fallback,
		})
	}
	return summary
}

// PrintRunSummary reports where the payload went and what it contains.
func PrintRunSummary(w io.Writer, p Palette, summary RunSummary) {
	count, unit := summary.Lines, "lines"
	switch output.Mode(summary.Mode) {
	case output.ModeSkeleton:
		count, unit = summary.Tokens, "tokens"
	case output.ModeTags:
		count, unit = summary.Tokens, "definitions"
	}

	if summary.Destination == "clipboard" {
		fmt.Fprintf(w, "%s (%s files, %s %s)\n",
			p.Success.Sprint("Context copied to clipboard"),
			p.Meta.Sprint(summary.Files),
			p.Meta.Sprint(count),
			p.Meta.Sprint(unit))
	} else {
		if summary.ClipboardError != "" {
			fmt.Fprintln(w, p.Warning.Sprint("Failed to copy to clipboard."))
			fmt.Fprintf(w, "    %s: %s\n", p.Warning.Sprint("Error"), p.Warning.Sprint(summary.ClipboardError))
			fmt.Fprintf(w, "    %s\n", p.Meta.Sprint("Full context was printed to stdout as a fallback."))
		}
		fmt.Fprintf(w, "%s (%s files, %s %s)\n",
			p.Success.Sprint("Context written to stdout"),
			p.Meta.Sprint(summary.Files),
			p.Meta.Sprint(count),
			p.Meta.Sprint(unit))
	}

	fmt.Fprintln(w, p.Meta.Sprint(strings.Repeat("=", 40)))
	fmt.Fprintln(w, p.File.Sprint("Included files:"))
	for i, file := range summary.FileSummaries {
		fmt.Fprintf(w, "  %s %s %s\n",
			p.Meta.Sprintf("%d.", i+1),
			p.File.Sprint(file.Path),
			p.Meta.Sprintf("(%d lines)", file.Lines))
		if file.Fallback != "" {
			fmt.Fprintf(w, "     %s\n", p.Warning.Sprintf("full content used: %s", file.Fallback))
		}
	}
	fmt.Fprintln(w, p.Meta.Sprint(strings.Repeat("=", 40)))
}

func SummarizePaths(paths []string, max int) string {
	if len(paths) <= max {
		return strings.Join(paths, ", ")
	}
	return fmt.Sprintf("%s ... (+%d more)", strings.Join(paths[:max], ", "), len(paths)-max)
}
