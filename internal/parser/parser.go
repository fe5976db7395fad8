// Package parser turns source files into compact structural summaries using
// tree-sitter grammars registered per language.
package parser

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Registry holds all registered language grammars
type Registry struct {
	grammars  map[string]Grammar // language name -> grammar
	extToLang map[string]string  // extension -> language name
}

// NewRegistry creates a new grammar registry
func NewRegistry() *Registry {
	return &Registry{
		grammars:  make(map[string]Grammar),
		extToLang: make(map[string]string),
	}
}

// Register adds a language grammar to the registry
func (r *Registry) Register(g Grammar) {
	lang := g.Language()
	r.grammars[lang] = g
	for _, ext := range g.Extensions() {
		r.extToLang[strings.ToLower(ext)] = lang
	}
}

// GetGrammarForFile returns the appropriate grammar for a file
func (r *Registry) GetGrammarForFile(filename string) (Grammar, bool) {
	return r.lookupExtension(filepath.Ext(filename))
}

// Lookup resolves a language identifier, which may be a language name
// ("rust"), a bare extension ("rs") or a dotted extension (".rs").
func (r *Registry) Lookup(language string) (Grammar, error) {
	key := strings.ToLower(strings.TrimSpace(language))
	if g, ok := r.grammars[key]; ok {
		return g, nil
	}
	if key != "" && !strings.HasPrefix(key, ".") {
		key = "." + key
	}
	if g, ok := r.lookupExtension(key); ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, language)
}

func (r *Registry) lookupExtension(ext string) (Grammar, bool) {
	lang, ok := r.extToLang[strings.ToLower(ext)]
	if !ok {
		return nil, false
	}
	g, ok := r.grammars[lang]
	return g, ok
}

// Languages returns the registered language names, sorted
func (r *Registry) Languages() []string {
	langs := make([]string, 0, len(r.grammars))
	for lang := range r.grammars {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// ExtensionsFor returns the sorted extensions mapped to a language
func (r *Registry) ExtensionsFor(language string) []string {
	exts := make([]string, 0)
	for ext, lang := range r.extToLang {
		if lang == language {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}
