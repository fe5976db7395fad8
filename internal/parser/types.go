package parser

import (
	"errors"

	sitter "github.com/smacker/go-tree-sitter"
)

// Grammar defines the interface each language must implement
type Grammar interface {
	// Language returns the language name (e.g., "go", "python")
	Language() string

	// Extensions returns file extensions this grammar handles
	Extensions() []string

	// SitterLanguage returns the tree-sitter grammar
	SitterLanguage() *sitter.Language

	// TagsQuery returns a tree-sitter query whose captures named
	// "definition.<kind>" mark definition nodes. Empty disables tag mode.
	TagsQuery() string
}

// NoStructure is returned instead of an empty skeleton.
const NoStructure = "(No structure found)"

var (
	// ErrUnsupportedLanguage is returned when no grammar is registered.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrParseFailure is returned when tree-sitter produces no tree.
	ErrParseFailure = errors.New("parse failure")
	// ErrInvalidDepth is returned for negative skeleton depths.
	ErrInvalidDepth = errors.New("invalid skeleton depth")
)

// Tag is a definition found by a grammar's tags query.
type Tag struct {
	Name      string `json:"name,omitempty"`
	Kind      string `json:"kind"`
	StartByte uint32 `json:"start_byte"`
	Line      int    `json:"line"`
	LineText  string `json:"line_text"`
}
