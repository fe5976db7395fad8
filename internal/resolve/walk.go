package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
)

// WalkOptions controls WalkFiles.
type WalkOptions struct {
	// Skip is consulted with the path relative to the walk root. Skipped
	// directories are not descended into.
	Skip func(relPath string, isDir bool) bool
	// OnError receives entries that could not be read; they are skipped.
	OnError func(path string, err error)
}

// WalkFiles calls fn for every regular file beneath root in lexical order,
// following symbolic links. A directory already on the current descent path
// is not entered again, so link cycles terminate.
func WalkFiles(root string, opts WalkOptions, fn func(path string)) {
	w := &walker{
		root:      root,
		opts:      opts,
		fn:        fn,
		ancestors: make(map[string]bool),
	}
	w.walkDir(root)
}

type walker struct {
	root      string
	opts      WalkOptions
	fn        func(path string)
	ancestors map[string]bool
}

func (w *walker) walkDir(dir string) {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		w.fail(dir, err)
		return
	}
	if w.ancestors[resolved] {
		return
	}
	w.ancestors[resolved] = true
	defer delete(w.ancestors, resolved)

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.fail(dir, err)
		return
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		mode := entry.Type()
		if mode&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				w.fail(path, err)
				continue
			}
			mode = info.Mode().Type()
		}

		isDir := mode.IsDir()
		if w.skip(path, isDir) {
			continue
		}

		switch {
		case isDir:
			w.walkDir(path)
		case mode.IsRegular():
			w.fn(path)
		}
	}
}

func (w *walker) skip(path string, isDir bool) bool {
	if w.opts.Skip == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.opts.Skip(rel, isDir)
}

func (w *walker) fail(path string, err error) {
	if w.opts.OnError != nil {
		w.opts.OnError(path, err)
	}
}
