package languages

import "github.com/skelly-dev/ctxgrab/internal/parser"

// NewDefaultRegistry creates a registry with all supported language grammars
func NewDefaultRegistry() *parser.Registry {
	r := parser.NewRegistry()

	r.Register(NewGoGrammar())
	r.Register(NewPythonGrammar())
	r.Register(NewRubyGrammar())
	r.Register(NewJavaScriptGrammar())
	r.Register(NewTypeScriptGrammar())
	r.Register(NewTSXGrammar())
	r.Register(NewRustGrammar())
	r.Register(NewCGrammar())
	r.Register(NewCppGrammar())
	r.Register(NewJavaGrammar())

	return r
}
