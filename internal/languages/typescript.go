package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

const javascriptTags = `
(class_declaration) @definition.class
(function_declaration) @definition.function
(generator_function_declaration) @definition.function
(method_definition) @definition.method
`

// TypeScript and TSX share one grammar family.
const typescriptTags = javascriptTags + `
(abstract_class_declaration) @definition.class
(interface_declaration) @definition.interface
(type_alias_declaration) @definition.type
(enum_declaration) @definition.enum
`

// NewJavaScriptGrammar returns the grammar for JavaScript and JSX files
func NewJavaScriptGrammar() parser.Grammar {
	return grammar{
		name:       "javascript",
		extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
		language:   javascript.GetLanguage,
		tags:       javascriptTags,
	}
}

// NewTypeScriptGrammar returns the grammar for TypeScript files
func NewTypeScriptGrammar() parser.Grammar {
	return grammar{
		name:       "typescript",
		extensions: []string{".ts", ".mts", ".cts"},
		language:   typescript.GetLanguage,
		tags:       typescriptTags,
	}
}

// NewTSXGrammar returns the grammar for TSX files
func NewTSXGrammar() parser.Grammar {
	return grammar{
		name:       "tsx",
		extensions: []string{".tsx"},
		language:   tsx.GetLanguage,
		tags:       typescriptTags,
	}
}
