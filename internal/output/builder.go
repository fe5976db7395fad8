// Package output assembles resolved files into the Markdown payload handed to
// the user and delivers it to the clipboard or stdout.
package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/skelly-dev/ctxgrab/internal/fileutil"
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/skelly-dev/ctxgrab/internal/resolve"
	"github.com/sourcegraph/conc/pool"
)

// Mode selects how a file is represented.
type Mode string

const (
	ModeFull     Mode = "full"
	ModeSkeleton Mode = "skeleton"
	ModeTags     Mode = "tags"
)

// FileContext is the rendered representation of one resolved file.
type FileContext struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Mode     Mode   `json:"mode"`
	Content  string `json:"content"`
	Fallback string `json:"fallback,omitempty"`
	Lines    int    `json:"lines"`
	Tokens   int    `json:"tokens,omitempty"`
	Hash     string `json:"hash"`
}

// Options configures a Builder.
type Options struct {
	Mode        Mode
	Depth       int
	Concurrency int
	// OnFile is called after each file is processed. It may be called
	// from several goroutines at once.
	OnFile func(path string)
}

// Builder turns resolved files into FileContexts.
type Builder struct {
	extractor *parser.Extractor
	opts      Options
}

// NewBuilder creates a builder that extracts with extractor
func NewBuilder(extractor *parser.Extractor, opts Options) *Builder {
	if opts.Mode == "" {
		opts.Mode = ModeFull
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = runtime.NumCPU()
	}
	return &Builder{extractor: extractor, opts: opts}
}

type buildSlot struct {
	ctx    FileContext
	ok     bool
	issues []resolve.Issue
}

// Build processes files concurrently and returns contexts in input order.
// Files that cannot be read are skipped; files that cannot be reduced fall
// back to their full content. Both cases are reported as issues.
func (b *Builder) Build(ctx context.Context, files []resolve.ResolvedFile) ([]FileContext, []resolve.Issue) {
	slots := make([]buildSlot, len(files))
	p := pool.New().WithMaxGoroutines(b.opts.Concurrency)
	for i, file := range files {
		p.Go(func() {
			slots[i] = b.buildOne(ctx, file)
			if b.opts.OnFile != nil {
				b.opts.OnFile(file.DisplayPath)
			}
		})
	}
	p.Wait()

	contexts := make([]FileContext, 0, len(files))
	issues := make([]resolve.Issue, 0)
	for _, slot := range slots {
		issues = append(issues, slot.issues...)
		if slot.ok {
			contexts = append(contexts, slot.ctx)
		}
	}
	return contexts, issues
}

func (b *Builder) buildOne(ctx context.Context, file resolve.ResolvedFile) buildSlot {
	if err := ctx.Err(); err != nil {
		return buildSlot{issues: []resolve.Issue{fileIssue(file, "error", "skipped: %v", err)}}
	}

	data, err := os.ReadFile(file.CanonicalPath)
	if err != nil {
		return buildSlot{issues: []resolve.Issue{fileIssue(file, "warning", "could not read file: %v", err)}}
	}

	grammar := b.grammarFor(file.DisplayPath)
	fc := FileContext{
		Path:     file.DisplayPath,
		Language: languageName(grammar, file.DisplayPath),
		Mode:     ModeFull,
		Content:  string(data),
		Lines:    fileutil.CountLines(string(data)),
		Hash:     fileutil.HashContent(data),
	}
	if b.opts.Mode == ModeFull {
		return buildSlot{ctx: fc, ok: true}
	}

	reduced, tokens, err := b.reduce(ctx, data, grammar, file.DisplayPath)
	if err != nil {
		fc.Fallback = err.Error()
		return buildSlot{
			ctx:    fc,
			ok:     true,
			issues: []resolve.Issue{fileIssue(file, "warning", "using full content: %v", err)},
		}
	}

	fc.Mode = b.opts.Mode
	fc.Content = reduced
	fc.Tokens = tokens
	return buildSlot{ctx: fc, ok: true}
}

func (b *Builder) reduce(ctx context.Context, data []byte, grammar parser.Grammar, path string) (string, int, error) {
	if grammar == nil {
		return "", 0, fmt.Errorf("%w: no grammar for %s", parser.ErrUnsupportedLanguage, filepath.Base(path))
	}
	language := grammar.Language()

	if b.opts.Mode == ModeTags {
		tags, err := b.extractor.Tags(ctx, data, language)
		if err != nil {
			return "", 0, err
		}
		return parser.RenderTags(tags), len(tags), nil
	}

	skeleton, err := b.extractor.Skeleton(ctx, data, language, b.opts.Depth)
	if err != nil {
		return "", 0, err
	}
	tokens := 0
	if skeleton != parser.NoStructure {
		tokens = len(strings.Fields(skeleton))
	}
	return skeleton, tokens, nil
}

// grammarFor dispatches on the file extension only, so a file named
// "notes.python" is not mistaken for Python source.
func (b *Builder) grammarFor(path string) parser.Grammar {
	if b.extractor == nil {
		return nil
	}
	g, ok := b.extractor.Registry().GetGrammarForFile(path)
	if !ok {
		return nil
	}
	return g
}

// languageName names the grammar, or the bare extension when there is none.
func languageName(g parser.Grammar, path string) string {
	if g != nil {
		return g.Language()
	}
	return strings.TrimPrefix(filepath.Ext(path), ".")
}

func fileIssue(file resolve.ResolvedFile, severity, format string, args ...any) resolve.Issue {
	return resolve.Issue{
		Path:     file.DisplayPath,
		Severity: severity,
		Message:  fmt.Sprintf(format, args...),
	}
}
