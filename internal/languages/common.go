package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	sitter "github.com/smacker/go-tree-sitter"
)

// grammar is a static parser.Grammar backed by a tree-sitter language.
type grammar struct {
	name       string
	extensions []string
	language   func() *sitter.Language
	tags       string
}

var _ parser.Grammar = grammar{}

func (g grammar) Language() string {
	return g.name
}

func (g grammar) Extensions() []string {
	out := make([]string, len(g.extensions))
	copy(out, g.extensions)
	return out
}

func (g grammar) SitterLanguage() *sitter.Language {
	return g.language()
}

func (g grammar) TagsQuery() string {
	return g.tags
}
