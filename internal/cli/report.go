package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/skelly-dev/ctxgrab/internal/config"
	"github.com/skelly-dev/ctxgrab/internal/ignore"
	"github.com/skelly-dev/ctxgrab/internal/resolve"
)

// Palette holds the styles used for diagnostics. It is passed to every
// renderer explicitly so output can be tested without a terminal.
type Palette struct {
	Error     *color.Color
	Warning   *color.Color
	Success   *color.Color
	File      *color.Color
	Meta      *color.Color
	Ambiguous *color.Color
}

// NewPalette builds a palette for out according to a config color mode.
func NewPalette(mode string, out io.Writer) Palette {
	p := Palette{
		Error:     color.New(color.FgRed, color.Bold),
		Warning:   color.New(color.FgYellow),
		Success:   color.New(color.FgGreen, color.Bold),
		File:      color.New(color.FgCyan, color.Bold),
		Meta:      color.New(color.Faint),
		Ambiguous: color.New(color.FgMagenta, color.Bold),
	}

	enabled := false
	switch mode {
	case config.ColorAlways:
		enabled = true
	case config.ColorNever:
		enabled = false
	default:
		_, noColorEnv := os.LookupEnv("NO_COLOR")
		enabled = !noColorEnv && isTerminal(out)
	}

	for _, c := range p.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p Palette) all() []*color.Color {
	return []*color.Color{p.Error, p.Warning, p.Success, p.File, p.Meta, p.Ambiguous}
}

// ReportIssues prints non-fatal diagnostics as "[severity] path: message".
func ReportIssues(w io.Writer, p Palette, issues []resolve.Issue) {
	for _, issue := range issues {
		style := p.Warning
		if issue.Severity == "error" {
			style = p.Error
		}
		subject := issue.Path
		if subject == "" {
			subject = issue.Input
		}
		if issue.Input != "" && issue.Path != "" && issue.Input != issue.Path {
			fmt.Fprintf(w, "%s %s (input %q): %s\n", style.Sprintf("[%s]", issue.Severity), subject, issue.Input, issue.Message)
			continue
		}
		fmt.Fprintf(w, "%s %s: %s\n", style.Sprintf("[%s]", issue.Severity), subject, issue.Message)
	}
}

// FailureReport is everything shown when some inputs did not resolve.
type FailureReport struct {
	Error string `json:"error"`
	*resolve.Result
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

// PrintFailureReport lists every unresolved input grouped by kind, followed
// by the files that did resolve.
func PrintFailureReport(w io.Writer, p Palette, report FailureReport, maxAmbiguous int) {
	result := report.Result
	rule := p.Meta.Sprint(strings.Repeat("-", 50))

	fmt.Fprintln(w, p.Error.Sprint("Could not proceed due to unresolved inputs:"))
	fmt.Fprintln(w, rule)

	if len(result.InvalidPatterns) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.Error.Sprint("The following glob patterns are invalid:"))
		for _, res := range result.InvalidPatterns {
			fmt.Fprintf(w, "  %s %s %s\n",
				p.Meta.Sprint("•"),
				p.Error.Sprintf("Input: '%s'", res.Input),
				p.Meta.Sprintf("(%s)", res.PatternError))
		}
	}

	if len(result.MissingPaths) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.Error.Sprint("The following specified paths do not exist:"))
		for _, res := range result.MissingPaths {
			fmt.Fprintf(w, "  %s %s %s\n",
				p.Meta.Sprint("•"),
				p.Error.Sprintf("Input: '%s'", res.Input),
				p.Meta.Sprintf("(checked: %q)", res.PathTried))
			printSuggestions(w, p, report.Suggestions[res.Input])
		}
	}

	if len(result.NotFound) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.Warning.Sprint("The following inputs could not be found:"))
		for _, res := range result.NotFound {
			fmt.Fprintf(w, "  %s %s\n", p.Meta.Sprint("•"), p.Warning.Sprintf("Input: '%s'", res.Input))
			printSuggestions(w, p, report.Suggestions[res.Input])
		}
		fmt.Fprintf(w, "  %s\n", p.Meta.Sprintf("Name search skips %s and %s entries; pass the path itself to include those files.",
			strings.Join(ignore.DefaultRules, " "), ignoreFileName))
	}

	if len(result.Ambiguous) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.Ambiguous.Sprint("The following inputs are ambiguous:"))
		for _, res := range result.Ambiguous {
			fmt.Fprintf(w, "  %s %s %s %s\n",
				p.Meta.Sprint("•"),
				p.Ambiguous.Sprint("Input"),
				p.Warning.Sprintf("'%s'", res.Input),
				p.Ambiguous.Sprint("matched:"))
			for i, candidate := range res.Candidates {
				if i >= maxAmbiguous {
					remaining := len(res.Candidates) - maxAmbiguous
					suffix := "es"
					if remaining == 1 {
						suffix = ""
					}
					fmt.Fprintf(w, "    %s ... and %s more match%s.\n", p.Meta.Sprint("→"), p.Meta.Sprint(remaining), suffix)
					break
				}
				fmt.Fprintf(w, "    %s %s\n", p.Meta.Sprint("→"), p.File.Sprintf("%q", candidate))
			}
		}
	}

	if len(result.Files) > 0 {
		fmt.Fprintf(w, "\n%s\n", p.Success.Sprint("However, these files were successfully resolved:"))
		for _, file := range result.Files {
			fmt.Fprintf(w, "  %s %s\n", p.Meta.Sprint("✓"), p.File.Sprintf("%q", file.DisplayPath))
		}
	}

	fmt.Fprintf(w, "\n%s\n", p.Meta.Sprint("Please resolve the issues above and try again."))
}

func printSuggestions(w io.Writer, p Palette, suggestions []string) {
	if len(suggestions) == 0 {
		return
	}
	fmt.Fprintf(w, "      %s %s\n", p.Meta.Sprint("did you mean:"), p.File.Sprint(SummarizePaths(suggestions, 5)))
}
