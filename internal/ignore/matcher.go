// Package ignore implements gitignore-like path exclusion for file walks.
package ignore

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

type rule struct {
	pattern  string
	negated  bool
	dirOnly  bool
	anchored bool
}

// Matcher applies gitignore-like rules with "last rule wins" behavior.
type Matcher struct {
	rules []rule
}

// DefaultRules are applied before user rules. Users can re-include paths with
// negated rules.
var DefaultRules = []string{
	".git/",
	".hg/",
	".svn/",
	"node_modules/",
	"__pycache__/",
	".venv/",
}

// NewMatcher builds a matcher from .ctxgrabignore lines and configured rules.
// Lines that are blank, comments or invalid patterns are dropped.
func NewMatcher(userRules []string) *Matcher {
	rules := make([]rule, 0, len(DefaultRules)+len(userRules))
	for _, lines := range [][]string{DefaultRules, userRules} {
		for _, line := range lines {
			if parsed, ok := parseRule(line); ok {
				rules = append(rules, parsed)
			}
		}
	}
	return &Matcher{rules: rules}
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	if relPath == "" || relPath == "." {
		return false
	}
	ignored := false
	for _, r := range m.rules {
		if r.matches(relPath, isDir) {
			ignored = !r.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.HasSuffix(line, "/") {
		parsed.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" || !doublestar.ValidatePattern(line) {
		return rule{}, false
	}
	parsed.pattern = line
	return parsed, true
}

// matches applies the rule to a normalized relative path. Directory-only
// rules match when the path is, or lies beneath, a matching directory.
func (r rule) matches(relPath string, isDir bool) bool {
	if !r.dirOnly {
		return r.matchesPath(relPath)
	}
	for _, dir := range directories(relPath, isDir) {
		if r.matchesPath(dir) {
			return true
		}
	}
	return false
}

// matchesPath follows gitignore placement rules: anchored patterns match from
// the root, patterns containing a slash match at any segment boundary, and
// bare names match any single segment.
func (r rule) matchesPath(relPath string) bool {
	if r.anchored {
		return matchPattern(r.pattern, relPath)
	}

	segments := strings.Split(relPath, "/")
	if strings.Contains(r.pattern, "/") {
		for i := range segments {
			if matchPattern(r.pattern, strings.Join(segments[i:], "/")) {
				return true
			}
		}
		return false
	}

	for _, segment := range segments {
		if matchPattern(r.pattern, segment) {
			return true
		}
	}
	return false
}

// directories lists relPath's directory prefixes, shallowest first. relPath
// itself is included when it names a directory.
func directories(relPath string, isDir bool) []string {
	segments := strings.Split(relPath, "/")
	n := len(segments)
	if !isDir {
		n--
	}
	dirs := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		dirs = append(dirs, strings.Join(segments[:i], "/"))
	}
	return dirs
}

// matchPattern matches slash separated paths: "*" stays within one segment
// and "**" spans any number of segments.
func matchPattern(pattern, value string) bool {
	ok, err := doublestar.Match(pattern, value)
	return err == nil && ok
}

func normalizePath(p string) string {
	p = filepath.ToSlash(p)
	p = strings.TrimPrefix(p, "./")
	p = strings.TrimPrefix(p, "/")
	return p
}
