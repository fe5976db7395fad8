package parser

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

const definitionCapturePrefix = "definition."

// Tags runs the language's tags query over source and returns one tag per
// captured definition, ordered by start byte, with consecutive entries that
// share the same source line collapsed.
func (e *Extractor) Tags(ctx context.Context, source []byte, language string) ([]Tag, error) {
	grammar, err := e.registry.Lookup(language)
	if err != nil {
		return nil, err
	}
	pattern := grammar.TagsQuery()
	if pattern == "" {
		return nil, fmt.Errorf("%w: %q has no tags query", ErrUnsupportedLanguage, grammar.Language())
	}

	tree, err := e.parse(ctx, source, language)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	query, err := sitter.NewQuery([]byte(pattern), grammar.SitterLanguage())
	if err != nil {
		return nil, fmt.Errorf("invalid tags query for %s: %w", grammar.Language(), err)
	}
	defer query.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	tags := make([]Tag, 0)
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		for _, capture := range match.Captures {
			name := query.CaptureNameForId(capture.Index)
			if !strings.HasPrefix(name, definitionCapturePrefix) {
				continue
			}
			tags = append(tags, newTag(capture.Node, strings.TrimPrefix(name, definitionCapturePrefix), source))
		}
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].StartByte < tags[j].StartByte
	})
	return dedupeConsecutiveLines(tags), nil
}

// RenderTags joins tag lines with newlines, or returns NoStructure.
func RenderTags(tags []Tag) string {
	if len(tags) == 0 {
		return NoStructure
	}
	lines := make([]string, 0, len(tags))
	for _, tag := range tags {
		lines = append(lines, tag.LineText)
	}
	return strings.Join(lines, "\n")
}

func newTag(node *sitter.Node, kind string, source []byte) Tag {
	tag := Tag{
		Kind:      kind,
		StartByte: node.StartByte(),
		Line:      int(node.StartPoint().Row) + 1,
		LineText:  lineAt(source, node.StartByte()),
	}
	if nameNode := node.ChildByFieldName("name"); nameNode != nil {
		tag.Name = strings.TrimSpace(nameNode.Content(source))
	}
	return tag
}

// lineAt returns the full source line containing offset, without the
// trailing newline or trailing whitespace.
func lineAt(source []byte, offset uint32) string {
	start := int(offset)
	if start > len(source) {
		start = len(source)
	}
	lineStart := bytes.LastIndexByte(source[:start], '\n') + 1
	lineEnd := bytes.IndexByte(source[start:], '\n')
	if lineEnd == -1 {
		lineEnd = len(source)
	} else {
		lineEnd += start
	}
	return strings.TrimRight(string(source[lineStart:lineEnd]), " \t\r")
}

func dedupeConsecutiveLines(tags []Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if n := len(out); n > 0 && out[n-1].LineText == tag.LineText {
			continue
		}
		out = append(out, tag)
	}
	return out
}
