// Package resolve maps raw user input tokens (paths, directories, glob
// patterns, partial file names) onto files in a working directory.
//
// Each token is tried as a literal path first, then as a glob pattern when it
// contains glob metacharacters, and finally as a substring of every file path
// under the working directory. Only the last phase can be ambiguous.
package resolve

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/skelly-dev/ctxgrab/internal/ignore"
)

const globMetaChars = "*?[{"

// Options configures a Resolver.
type Options struct {
	// IgnoreRules are gitignore-like rules applied to the fuzzy search walk,
	// on top of the matcher defaults.
	IgnoreRules []string
	// Concurrency bounds ResolveAll. Zero means runtime.NumCPU().
	Concurrency int
}

// Resolver resolves input tokens against a fixed working directory.
// It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	canon       *Canonicalizer
	ignore      *ignore.Matcher
	concurrency int
}

// NewResolver creates a resolver anchored at workingDir.
func NewResolver(workingDir string, opts Options) (*Resolver, error) {
	canon, err := NewCanonicalizer(workingDir)
	if err != nil {
		return nil, err
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	return &Resolver{
		canon:       canon,
		ignore:      ignore.NewMatcher(opts.IgnoreRules),
		concurrency: concurrency,
	}, nil
}

// Canonicalizer exposes the path canonicalizer used by the resolver.
func (r *Resolver) Canonicalizer() *Canonicalizer {
	return r.canon
}

// Resolve maps one input token to a Resolution. It never fails outright:
// filesystem problems are recorded as issues on the returned value.
func (r *Resolver) Resolve(input string) Resolution {
	a := &attempt{input: input}

	res, ok := r.directMatch(a)
	if !ok {
		if IsGlobPattern(input) {
			res = r.globMatch(a)
		} else {
			res = r.fuzzyMatch(a)
		}
	}

	res.Issues = a.issues
	return res
}

// IsGlobPattern reports whether input contains glob metacharacters.
func IsGlobPattern(input string) bool {
	return strings.ContainsAny(input, globMetaChars)
}

// attempt accumulates diagnostics for a single token.
type attempt struct {
	input  string
	issues []Issue
}

func (a *attempt) warn(path string, format string, args ...any) {
	a.issues = append(a.issues, Issue{
		Input:    a.input,
		Path:     path,
		Severity: "warning",
		Message:  fmt.Sprintf(format, args...),
	})
}

func (r *Resolver) target(input string) string {
	if filepath.IsAbs(input) {
		return filepath.Clean(input)
	}
	return filepath.Join(r.canon.WorkingDir(), input)
}

func (r *Resolver) directMatch(a *attempt) (Resolution, bool) {
	path := r.target(a.input)
	info, err := os.Stat(path)
	if err != nil {
		return Resolution{}, false
	}

	switch {
	case info.Mode().IsRegular():
		file, err := r.canon.Canonicalize(path)
		if err != nil {
			a.warn(path, "found explicit file but could not process it: %v", err)
			return NotFound(a.input), true
		}
		return Success(a.input, []ResolvedFile{file}), true
	case info.IsDir():
		return Success(a.input, r.expandDirectory(a, path)), true
	}

	return Resolution{}, false
}

func (r *Resolver) expandDirectory(a *attempt, dir string) []ResolvedFile {
	files := make([]ResolvedFile, 0)
	opts := WalkOptions{
		OnError: func(path string, err error) {
			a.warn(r.canon.Display(path), "skipped while expanding directory: %v", err)
		},
	}
	WalkFiles(dir, opts, func(path string) {
		file, err := r.canon.Canonicalize(path)
		if err != nil {
			a.warn(r.canon.Display(path), "could not process file in directory: %v", err)
			return
		}
		files = append(files, file)
	})
	return files
}

func (r *Resolver) globMatch(a *attempt) Resolution {
	base, pattern := r.globRoot(a.input)
	matches, err := doublestar.Glob(os.DirFS(base), pattern, doublestar.WithFilesOnly())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return InvalidPattern(a.input, err.Error())
		}
		a.warn(base, "glob expansion failed: %v", err)
		return NotFound(a.input)
	}

	files := make([]ResolvedFile, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(base, filepath.FromSlash(match))
		info, err := os.Stat(path)
		if err != nil {
			a.warn(r.canon.Display(path), "glob matched file but could not stat it: %v", err)
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		file, err := r.canon.Canonicalize(path)
		if err != nil {
			a.warn(r.canon.Display(path), "glob matched file but could not process it: %v", err)
			continue
		}
		files = append(files, file)
	}

	if len(files) == 0 {
		return NotFound(a.input)
	}
	return Success(a.input, files)
}

// globRoot splits a token into a directory to search from and a slash
// separated pattern relative to it. Relative patterns that stay inside the
// working directory are matched from it directly so metacharacters in the
// working directory's own path are never interpreted.
func (r *Resolver) globRoot(input string) (string, string) {
	if !filepath.IsAbs(input) {
		cleaned := filepath.ToSlash(filepath.Clean(input))
		if cleaned != ".." && !strings.HasPrefix(cleaned, "../") {
			return r.canon.WorkingDir(), cleaned
		}
	}

	base, pattern := doublestar.SplitPattern(filepath.ToSlash(r.target(input)))
	if base == "" {
		base = "/"
	}
	return filepath.FromSlash(base), pattern
}

func (r *Resolver) fuzzyMatch(a *attempt) Resolution {
	root := r.canon.WorkingDir()
	candidates := make([]string, 0)
	opts := WalkOptions{
		Skip: r.ignore.ShouldIgnore,
		OnError: func(path string, err error) {
			a.warn(r.canon.Display(path), "skipped during search: %v", err)
		},
	}
	WalkFiles(root, opts, func(path string) {
		if strings.Contains(r.canon.Display(path), a.input) {
			candidates = append(candidates, path)
		}
	})

	sort.Strings(candidates)
	candidates = r.dedupeByIdentity(candidates)

	switch len(candidates) {
	case 0:
		if looksLikePath(a.input) {
			return PathDoesNotExist(a.input, r.target(a.input))
		}
		return NotFound(a.input)
	case 1:
		file, err := r.canon.Canonicalize(candidates[0])
		if err != nil {
			a.warn(r.canon.Display(candidates[0]), "found unique match but failed to process it: %v", err)
			return NotFound(a.input)
		}
		return Success(a.input, []ResolvedFile{file})
	default:
		display := make([]string, 0, len(candidates))
		for _, candidate := range candidates {
			display = append(display, r.canon.Display(candidate))
		}
		return Ambiguous(a.input, display)
	}
}

// SearchableFiles lists the display paths the fuzzy phase would consider,
// in walk order. Unreadable entries are silently skipped.
func (r *Resolver) SearchableFiles() []string {
	paths := make([]string, 0)
	WalkFiles(r.canon.WorkingDir(), WalkOptions{Skip: r.ignore.ShouldIgnore}, func(path string) {
		paths = append(paths, r.canon.Display(path))
	})
	return paths
}

// dedupeByIdentity drops candidates that point at a file already listed, for
// example through a symlink. Paths that cannot be canonicalized are kept.
func (r *Resolver) dedupeByIdentity(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		key := path
		if resolved, err := filepath.EvalSymlinks(path); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, path)
	}
	return out
}

func looksLikePath(input string) bool {
	return strings.ContainsRune(input, filepath.Separator) || strings.Contains(input, "/")
}
