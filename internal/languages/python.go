package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/python"
)

const pythonTags = `
(class_definition) @definition.class
(function_definition) @definition.function
`

// NewPythonGrammar returns the grammar for Python source files
func NewPythonGrammar() parser.Grammar {
	return grammar{
		name:       "python",
		extensions: []string{".py", ".pyi", ".pyw"},
		language:   python.GetLanguage,
		tags:       pythonTags,
	}
}
