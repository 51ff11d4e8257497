package graphql

import (
	"fmt"
	"strings"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// DefaultMaxDepth admits analyze { nodes { id } }, the deepest query the
// schema has.
const DefaultMaxDepth = 3

// depthWalker measures field nesting. Fragments add no depth of their own;
// a spread already on the stack is skipped so cyclic fragments terminate.
type depthWalker struct {
	fragments map[string]*ast.FragmentDefinition
	onStack   map[string]bool
}

func newDepthWalker(doc *ast.Document) *depthWalker {
	w := &depthWalker{
		fragments: make(map[string]*ast.FragmentDefinition),
		onStack:   make(map[string]bool),
	}
	for _, def := range doc.Definitions {
		if frag, ok := def.(*ast.FragmentDefinition); ok {
			w.fragments[frag.Name.Value] = frag
		}
	}
	return w
}

func (w *depthWalker) walk(set *ast.SelectionSet, level int) int {
	deepest := level
	if set == nil {
		return deepest
	}

	for _, selection := range set.Selections {
		var d int
		switch node := selection.(type) {
		case *ast.Field:
			// Introspection (__schema, __type) is exempt
			if strings.HasPrefix(node.Name.Value, "__") || node.SelectionSet == nil {
				continue
			}
			d = w.walk(node.SelectionSet, level+1)
		case *ast.InlineFragment:
			d = w.walk(node.SelectionSet, level)
		case *ast.FragmentSpread:
			name := node.Name.Value
			frag := w.fragments[name]
			if frag == nil || w.onStack[name] {
				continue
			}
			w.onStack[name] = true
			d = w.walk(frag.SelectionSet, level)
			delete(w.onStack, name)
		}
		deepest = max(deepest, d)
	}
	return deepest
}

// QueryDepth returns the deepest field nesting over every operation in
// doc. A top-level scalar field counts as depth 1.
func QueryDepth(doc *ast.Document) int {
	w := newDepthWalker(doc)
	depth := 0
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			depth = max(depth, w.walk(op.SelectionSet, 1))
		}
	}
	return depth
}

// ValidateQueryDepth parses query and rejects it when it nests deeper than
// maxDepth.
func ValidateQueryDepth(query string, maxDepth int) error {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return fmt.Errorf("failed to parse query: %w", err)
	}

	if depth := QueryDepth(doc); depth > maxDepth {
		return fmt.Errorf("query depth %d exceeds maximum allowed depth %d", depth, maxDepth)
	}
	return nil
}
