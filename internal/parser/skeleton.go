package parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Extractor produces skeletons for source code in any registered language.
// It is safe for concurrent use; each call parses with its own parser.
type Extractor struct {
	registry *Registry
}

// NewExtractor creates an extractor backed by registry
func NewExtractor(registry *Registry) *Extractor {
	return &Extractor{registry: registry}
}

// Registry returns the grammar registry used for dispatch
func (e *Extractor) Registry() *Registry {
	return e.registry
}

// Skeleton parses source and flattens its syntax tree to maxDepth.
//
// Depth counts tree levels from the root (depth 0). A node at depth d is
// visited when d <= maxDepth+1, so maxDepth 0 keeps only terminals that are
// direct children of the root and each increment exposes one more level.
func (e *Extractor) Skeleton(ctx context.Context, source []byte, language string, maxDepth int) (string, error) {
	if maxDepth < 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidDepth, maxDepth)
	}

	tree, err := e.parse(ctx, source, language)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	tokens := FlattenTree(tree.RootNode(), source, maxDepth)
	if len(tokens) == 0 {
		return NoStructure, nil
	}
	return strings.Join(tokens, " "), nil
}

// FlattenTree returns the trimmed, non-empty text of every leaf reachable
// from root within maxDepth, in source order.
func FlattenTree(root *sitter.Node, source []byte, maxDepth int) []string {
	tokens := make([]string, 0)
	if root == nil {
		return tokens
	}
	collectTokens(root, 0, maxDepth+1, source, &tokens)
	return tokens
}

func collectTokens(node *sitter.Node, depth, limit int, source []byte, tokens *[]string) {
	if depth > limit {
		return
	}

	count := int(node.ChildCount())
	if count == 0 {
		if text := strings.TrimSpace(node.Content(source)); text != "" {
			*tokens = append(*tokens, text)
		}
		return
	}

	for i := 0; i < count; i++ {
		collectTokens(node.Child(i), depth+1, limit, source, tokens)
	}
}

func (e *Extractor) parse(ctx context.Context, source []byte, language string) (*sitter.Tree, error) {
	grammar, err := e.registry.Lookup(language)
	if err != nil {
		return nil, err
	}

	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(grammar.SitterLanguage())

	tree, err := p.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParseFailure, grammar.Language(), err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("%w: %s: no syntax tree produced", ErrParseFailure, grammar.Language())
	}
	return tree, nil
}
