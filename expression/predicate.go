package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/flowsome/flowsome"
)

// Predicate is a compiled boolean expression over the columns of a Row
type Predicate struct {
	src     string
	program *vm.Program
	names   []string
	refs    []reference
	indices []int
	env     map[string]interface{}
}

// CompilePredicate compiles an expression over the columns of schema. Columns are
// referenced by name, or as $env["column name"]. Unknown columns are reported here,
// rather than during execution.
func CompilePredicate(src string, schema flowsome.Schema) (flowsome.FilterOperation, error) {
	p, err := NewPredicate(src, schema)
	if err != nil {
		return nil, err
	}
	return p.Evaluate, nil
}

// NewPredicate compiles an expression over the columns of schema
func NewPredicate(src string, schema flowsome.Schema) (*Predicate, error) {
	refs, err := collectReferences(src)
	if err != nil {
		return nil, err
	}
	refs, indices, err := resolveReferences(refs, map[string]flowsome.Schema{"": schema})
	if err != nil {
		return nil, err
	}
	names := schema.ColumnNames()
	env := make(map[string]interface{}, len(names))
	for _, name := range names {
		env[name] = nil
	}
	program, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("Unable to compile expression %q: %w", src, err)
	}
	return &Predicate{
		src:     src,
		program: program,
		names:   names,
		refs:    refs,
		indices: indices,
		env:     env,
	}, nil
}

// Evaluate runs the expression against a Row. An expression which fails because
// it operates on a null value evaluates to false.
func (p *Predicate) Evaluate(row flowsome.Row) (bool, error) {
	for i, name := range p.names {
		v, err := row.GetAt(i)
		if err != nil {
			return false, err
		}
		p.env[name] = exprValue(v)
	}
	output, err := expr.Run(p.program, p.env)
	if err != nil {
		for _, idx := range p.indices {
			if v, _ := row.GetAt(idx); v == nil {
				return false, nil
			}
		}
		return false, fmt.Errorf("Unable to evaluate %q: %w", p.src, err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("Expression %q should return a boolean, got %T", p.src, output)
	}
	return result, nil
}

// ToString returns the source of this Predicate
func (p *Predicate) ToString() string {
	return p.src
}
