package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/skelly-dev/ctxgrab/internal/config"
	"github.com/skelly-dev/ctxgrab/internal/fileutil"
	"github.com/skelly-dev/ctxgrab/internal/languages"
	"github.com/skelly-dev/ctxgrab/internal/output"
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/skelly-dev/ctxgrab/internal/resolve"
	"github.com/skelly-dev/ctxgrab/internal/search"
	"github.com/spf13/cobra"
)

const suggestionsPerInput = 3

// ErrNoFiles is returned when every input resolved but none produced a file.
var ErrNoFiles = errors.New("no files were found or resolved based on your input")

// clipboardWriter is replaced in tests.
var clipboardWriter output.ClipboardWriter = output.SystemClipboard

// ReportedError marks an error whose details were already printed.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}

func RunGrab(cmd *cobra.Command, args []string) error {
	start := time.Now()
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	flags, err := readGrabFlags(cmd)
	if err != nil {
		return err
	}

	registry := languages.NewDefaultRegistry()
	if flags.listLanguages {
		return printLanguages(stdout, registry, flags.asJSON)
	}

	inputs := fileutil.NonEmpty(args)
	if len(inputs) == 0 {
		return errNoInputs
	}

	rootPath, err := resolveWorkingDirectory()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(rootPath, flags)
	if err != nil {
		return err
	}
	ignoreRules, err := LoadIgnoreRules(rootPath)
	if err != nil {
		return err
	}
	ignoreRules = append(ignoreRules, cfg.Ignore...)

	palette := NewPalette(cfg.Color, stderr)

	resolver, err := resolve.NewResolver(rootPath, resolve.Options{
		IgnoreRules: ignoreRules,
		Concurrency: cfg.Concurrency,
	})
	if err != nil {
		return err
	}
	result := resolve.Aggregate(resolver.ResolveAll(inputs))
	ReportIssues(stderr, palette, result.Issues)

	if result.Failed() {
		report := FailureReport{Error: result.Err().Error(), Result: result}
		if cfg.Suggestions {
			report.Suggestions = suggest(resolver, result)
		}
		if flags.asJSON {
			if err := fileutil.PrintJSON(stdout, report); err != nil {
				return err
			}
		} else {
			PrintFailureReport(stderr, palette, report, cfg.MaxAmbiguousShown)
		}
		return &ReportedError{Err: result.Err()}
	}

	if len(result.Files) == 0 {
		fmt.Fprintln(stderr, palette.Warning.Sprint("No files were found or resolved based on your input."))
		return &ReportedError{Err: ErrNoFiles}
	}

	mode := outputMode(cfg)
	progress := newProgressReporter(stderr, "reading", len(result.Files), flags.asJSON)
	builder := output.NewBuilder(parser.NewExtractor(registry), output.Options{
		Mode:        mode,
		Depth:       cfg.Depth,
		Concurrency: cfg.Concurrency,
		OnFile:      progress.Update,
	})
	contexts, issues := builder.Build(ctx, result.Files)
	progress.Done()
	ReportIssues(stderr, palette, issues)

	if len(contexts) == 0 {
		fmt.Fprintln(stderr, palette.Warning.Sprint("None of the resolved files could be read."))
		return &ReportedError{Err: ErrNoFiles}
	}

	summary := newRunSummary(mode, cfg.Depth, rootPath, len(inputs), contexts)

	if flags.asJSON {
		summary.DurationMS = time.Since(start).Milliseconds()
		return fileutil.PrintJSON(stdout, SuccessDocument{
			Summary: summary,
			Files:   contexts,
			Issues:  append(result.Issues, issues...),
		})
	}

	markdown := output.RenderMarkdown(contexts)
	delivery, err := output.Deliver(markdown, cfg.Output == config.OutputClipboard, stdout, clipboardWriter)
	if err != nil {
		return err
	}
	summary.Destination = config.OutputStdout
	if delivery.Clipboard {
		summary.Destination = config.OutputClipboard
	}
	if delivery.ClipboardErr != nil {
		summary.ClipboardError = delivery.ClipboardErr.Error()
	}
	summary.DurationMS = time.Since(start).Milliseconds()
	PrintRunSummary(stderr, palette, summary)
	return nil
}

// outputMode picks the file representation. A configured tags mode wins
// over a configured depth.
func outputMode(cfg *config.Config) output.Mode {
	switch {
	case !cfg.SkeletonEnabled():
		return output.ModeFull
	case cfg.Tags:
		return output.ModeTags
	default:
		return output.ModeSkeleton
	}
}

// suggest proposes similar paths for inputs that matched nothing.
func suggest(resolver *resolve.Resolver, result *resolve.Result) map[string][]string {
	missing := make([]resolve.Resolution, 0, len(result.NotFound)+len(result.MissingPaths))
	for _, res := range result.Unresolved() {
		if res.Kind == resolve.KindNotFound || res.Kind == resolve.KindPathDoesNotExist {
			missing = append(missing, res)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	index := search.Build(resolver.SearchableFiles())
	suggestions := make(map[string][]string, len(missing))
	for _, res := range missing {
		if paths := search.Suggest(index, res.Input, suggestionsPerInput); len(paths) > 0 {
			suggestions[res.Input] = paths
		}
	}
	return suggestions
}

type languageInfo struct {
	Language   string   `json:"language"`
	Extensions []string `json:"extensions"`
}

func printLanguages(w io.Writer, registry *parser.Registry, asJSON bool) error {
	langs := make([]languageInfo, 0)
	for _, lang := range registry.Languages() {
		langs = append(langs, languageInfo{Language: lang, Extensions: registry.ExtensionsFor(lang)})
	}
	if asJSON {
		return fileutil.PrintJSON(w, langs)
	}
	for _, info := range langs {
		fmt.Fprintf(w, "%-12s %s\n", info.Language, strings.Join(info.Extensions, ", "))
	}
	return nil
}
