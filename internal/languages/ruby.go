package languages

import (
	"github.com/skelly-dev/ctxgrab/internal/parser"
	"github.com/smacker/go-tree-sitter/ruby"
)

const rubyTags = `
(class) @definition.class
(module) @definition.module
(method) @definition.method
(singleton_method) @definition.method
`

// NewRubyGrammar returns the grammar for Ruby source files
func NewRubyGrammar() parser.Grammar {
	return grammar{
		name:       "ruby",
		extensions: []string{".rb", ".rake"},
		language:   ruby.GetLanguage,
		tags:       rubyTags,
	}
}
