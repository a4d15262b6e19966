package expression

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/flowsome/flowsome"
)

const (
	leftScope  = "left"
	rightScope = "right"
)

// CompileJoinPredicate compiles an expression over a pair of Rows being joined. Columns
// are referenced as left.name and right.name (or left["column name"]). Comparisons
// involving null values are false.
func CompileJoinPredicate(src string, leftSchema flowsome.Schema, rightSchema flowsome.Schema) (flowsome.JoinPredicate, error) {
	refs, err := collectReferences(src, leftScope, rightScope)
	if err != nil {
		return nil, err
	}
	schemas := map[string]flowsome.Schema{leftScope: leftSchema, rightScope: rightSchema}
	refs, indices, err := resolveReferences(refs, schemas)
	if err != nil {
		return nil, err
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("Join condition %q does not reference any columns of left or right", src)
	}
	left := emptyEnv(leftSchema)
	right := emptyEnv(rightSchema)
	env := map[string]interface{}{leftScope: left, rightScope: right}
	program, err := expr.Compile(src, expr.Env(env), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("Unable to compile join condition %q: %w", src, err)
	}
	jp := &joinPredicate{
		src:     src,
		program: program,
		refs:    refs,
		indices: indices,
		env:     env,
		left:    left,
		right:   right,
	}
	return jp.evaluate, nil
}

func emptyEnv(schema flowsome.Schema) map[string]interface{} {
	env := make(map[string]interface{}, schema.NumColumns())
	for _, name := range schema.ColumnNames() {
		env[name] = nil
	}
	return env
}

type joinPredicate struct {
	src     string
	program *vm.Program
	refs    []reference
	indices []int
	env     map[string]interface{}
	left    map[string]interface{}
	right   map[string]interface{}
}

func fillEnv(env map[string]interface{}, row flowsome.Row) error {
	if row == nil {
		for k := range env {
			env[k] = nil
		}
		return nil
	}
	for i, name := range row.Schema().ColumnNames() {
		v, err := row.GetAt(i)
		if err != nil {
			return err
		}
		env[name] = exprValue(v)
	}
	return nil
}

func (jp *joinPredicate) evaluate(left flowsome.Row, right flowsome.Row) (bool, error) {
	if err := fillEnv(jp.left, left); err != nil {
		return false, err
	}
	if err := fillEnv(jp.right, right); err != nil {
		return false, err
	}
	output, err := expr.Run(jp.program, jp.env)
	if err != nil {
		for i, ref := range jp.refs {
			row := left
			if ref.scope == rightScope {
				row = right
			}
			if v, _ := row.GetAt(jp.indices[i]); v == nil {
				return false, nil
			}
		}
		return false, fmt.Errorf("Unable to evaluate join condition %q: %w", jp.src, err)
	}
	result, ok := output.(bool)
	if !ok {
		return false, fmt.Errorf("Join condition %q should return a boolean, got %T", jp.src, output)
	}
	return result, nil
}
