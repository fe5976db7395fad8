package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/java"
)

const javaTags = `
(class_declaration) @definition.class
(interface_declaration) @definition.interface
(enum_declaration) @definition.enum
(constructor_declaration) @definition.method
(method_declaration) @definition.method
`

// NewJavaGrammar returns the grammar for Java source files
func NewJavaGrammar() parser.Grammar {
	return grammar{
		name:       "java",
		extensions: []string{".java"},
		language:   java.GetLanguage,
		tags:       javaTags,
	}
}
