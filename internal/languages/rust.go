package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/rust"
)

const rustTags = `
(function_item) @definition.function
(struct_item) @definition.struct
(enum_item) @definition.enum
(trait_item) @definition.trait
(impl_item) @definition.impl
(mod_item) @definition.module
(macro_definition) @definition.macro
`

// NewRustGrammar returns the grammar for Rust source files
func NewRustGrammar() parser.Grammar {
	return grammar{
		name:       "rust",
		extensions: []string{".rs"},
		language:   rust.GetLanguage,
		tags:       rustTags,
	}
}
