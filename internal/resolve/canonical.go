package resolve

import (
	"fmt"
	"path/filepath"
)

// Canonicalizer turns filesystem paths into ResolvedFile values anchored at a
// working directory.
type Canonicalizer struct {
	workingDir string
}

// NewCanonicalizer resolves workingDir to its absolute, symlink-free form so
// display paths are computed against the physical directory.
func NewCanonicalizer(workingDir string) (*Canonicalizer, error) {
	abs, err := filepath.Abs(workingDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory %q: %w", workingDir, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve working directory %q: %w", workingDir, err)
	}
	return &Canonicalizer{workingDir: resolved}, nil
}

// WorkingDir returns the canonical working directory.
func (c *Canonicalizer) WorkingDir() string {
	return c.workingDir
}

// Canonicalize resolves path to an absolute, symlink-resolved file identity.
func (c *Canonicalizer) Canonicalize(path string) (ResolvedFile, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(c.workingDir, path)
	}
	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return ResolvedFile{}, fmt.Errorf("failed to canonicalize %s: %w", path, err)
	}
	return ResolvedFile{
		DisplayPath:   c.Display(canonical),
		CanonicalPath: canonical,
	}, nil
}

// Display returns path relative to the working directory, or path itself when
// no relative form exists.
func (c *Canonicalizer) Display(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	rel, err := filepath.Rel(c.workingDir, path)
	if err != nil {
		return path
	}
	return rel
}
