package expression

import (
	"fmt"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/shopspring/decimal"
)

const envIdentifier = "$env"

// exprValue converts a column value into a value expr operates on natively
func exprValue(v interface{}) interface{} {
	switch tv := v.(type) {
	case int64:
		return int(tv)
	case decimal.Decimal:
		return tv.InexactFloat64()
	case []interface{}:
		out := make([]interface{}, len(tv))
		for i, e := range tv {
			out[i] = exprValue(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(tv))
		for k, e := range tv {
			out[k] = exprValue(e)
		}
		return out
	}
	return v
}

// reference is a column referenced by an expression, optionally scoped to a side of a join
type reference struct {
	scope string
	name  string
	// bare identifiers may also name functions or variables of the expression
	bare bool
}

// referenceCollector gathers the column references made by an expression
type referenceCollector struct {
	scopes map[string]bool
	refs   []reference
	seen   map[reference]bool
}

func (c *referenceCollector) add(ref reference) {
	if !c.seen[ref] {
		c.seen[ref] = true
		c.refs = append(c.refs, ref)
	}
}

// Visit implements ast.Visitor
func (c *referenceCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		if n.Value != envIdentifier && !c.scopes[n.Value] && len(c.scopes) == 0 {
			c.add(reference{name: n.Value, bare: true})
		}
	case *ast.MemberNode:
		ident, ok := n.Node.(*ast.IdentifierNode)
		if !ok {
			return
		}
		prop, ok := n.Property.(*ast.StringNode)
		if !ok {
			return
		}
		if ident.Value == envIdentifier {
			c.add(reference{name: prop.Value})
		} else if c.scopes[ident.Value] {
			c.add(reference{scope: ident.Value, name: prop.Value})
		}
	}
}

// collectReferences parses src and returns the columns it references. With scopes, only
// members of those identifiers count as references.
func collectReferences(src string, scopes ...string) ([]reference, error) {
	tree, err := parser.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("Unable to parse expression %q: %w", src, err)
	}
	c := &referenceCollector{
		scopes: make(map[string]bool, len(scopes)),
		seen:   make(map[reference]bool),
	}
	for _, s := range scopes {
		c.scopes[s] = true
	}
	ast.Walk(&tree.Node, c)
	return c.refs, nil
}

// resolveReferences maps each reference to a column index, failing for unknown columns.
// Bare identifiers which are not columns are dropped, and left for the compiler to check.
func resolveReferences(refs []reference, schemas map[string]flowsome.Schema) ([]reference, []int, error) {
	resolved := make([]reference, 0, len(refs))
	indices := make([]int, 0, len(refs))
	for _, ref := range refs {
		schema, ok := schemas[ref.scope]
		if !ok {
			return nil, nil, &errors.SchemaError{Column: ref.name, Reason: fmt.Sprintf("unknown scope %q", ref.scope)}
		}
		col, err := schema.GetColumn(ref.name)
		if err != nil {
			if ref.bare {
				continue
			}
			return nil, nil, err
		}
		resolved = append(resolved, ref)
		indices = append(indices, col.Index())
	}
	return resolved, indices, nil
}
