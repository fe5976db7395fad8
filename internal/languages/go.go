package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/golang"
)

const goTags = `
(function_declaration) @definition.function
(method_declaration) @definition.method
(type_declaration) @definition.type
(source_file (const_declaration) @definition.constant)
(source_file (var_declaration) @definition.variable)
`

// NewGoGrammar returns the grammar for Go source files
func NewGoGrammar() parser.Grammar {
	return grammar{
		name:       "go",
		extensions: []string{".go"},
		language:   golang.GetLanguage,
		tags:       goTags,
	}
}
