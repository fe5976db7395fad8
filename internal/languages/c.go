package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
)

const cTags = `
(function_definition) @definition.function
(struct_specifier body: (field_declaration_list)) @definition.struct
(enum_specifier body: (enumerator_list)) @definition.enum
(type_definition) @definition.type
`

const cppTags = cTags + `
(class_specifier body: (field_declaration_list)) @definition.class
(namespace_definition) @definition.module
`

// NewCGrammar returns the grammar for C sources and headers
func NewCGrammar() parser.Grammar {
	return grammar{
		name:       "c",
		extensions: []string{".c", ".h"},
		language:   c.GetLanguage,
		tags:       cTags,
	}
}

// NewCppGrammar returns the grammar for C++ sources and headers
func NewCppGrammar() parser.Grammar {
	return grammar{
		name:       "cpp",
		extensions: []string{".cc", ".cpp", ".cxx", ".hh", ".hpp", ".hxx"},
		language:   cpp.GetLanguage,
		tags:       cppTags,
	}
}
