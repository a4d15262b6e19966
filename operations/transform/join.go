package transform

import (
	"fmt"
	"strings"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	"github.com/flowsome/flowsome/expression"
	"github.com/flowsome/flowsome/internal/partition"
	"github.com/flowsome/flowsome/internal/pindex/hashmap"
	iutil "github.com/flowsome/flowsome/internal/util"
	"github.com/hashicorp/go-multierror"
)

// JoinKind determines which unmatched Rows a Join retains
type JoinKind string

const (
	// InnerJoin retains only matched pairs of Rows
	InnerJoin JoinKind = "inner"
	// LeftJoin also retains unmatched left Rows
	LeftJoin JoinKind = "left"
	// RightJoin also retains unmatched right Rows
	RightJoin JoinKind = "right"
	// OuterJoin also retains unmatched Rows from both sides
	OuterJoin JoinKind = "outer"
	// CrossJoin pairs every left Row with every right Row
	CrossJoin JoinKind = "cross"
)

// RightSuffix is appended to the names of right columns which clash with left columns
const RightSuffix = "_right"

// ParseJoinKind looks up a JoinKind by name, case-insensitively
func ParseJoinKind(name string) (JoinKind, error) {
	switch kind := JoinKind(strings.ToLower(strings.TrimSpace(name))); kind {
	case InnerJoin, LeftJoin, RightJoin, OuterJoin, CrossJoin:
		return kind, nil
	case "":
		return InnerJoin, nil
	case "full", "full_outer":
		return OuterJoin, nil
	}
	return "", &errors.JoinSpecError{Reason: fmt.Sprintf("unknown join kind %q", name)}
}

// JoinOn pairs a left column with a right column whose values must be equal
type JoinOn struct {
	Left  flowsome.ColumnRef
	Right flowsome.ColumnRef
}

// On is a convenience constructor for JoinOns
func On(left string, right string) JoinOn {
	return JoinOn{Left: flowsome.Col(left), Right: flowsome.Col(right)}
}

// JoinSpec describes a Join against another DataFrame. Exactly one of On, Predicate
// and Expr must be given, except for cross joins which accept none of them.
type JoinSpec struct {
	Right     flowsome.DataFrame
	Kind      JoinKind
	On        []JoinOn
	Predicate flowsome.JoinPredicate
	Expr      string // Expr is a predicate expression over left.column and right.column
}

func (spec *JoinSpec) validate() error {
	if spec.Right == nil {
		return &errors.JoinSpecError{Reason: "a right-hand DataFrame is required"}
	}
	switch spec.Kind {
	case InnerJoin, LeftJoin, RightJoin, OuterJoin, CrossJoin:
	default:
		return &errors.JoinSpecError{Reason: fmt.Sprintf("unknown join kind %q", spec.Kind)}
	}
	conditions := 0
	if len(spec.On) > 0 {
		conditions++
	}
	if spec.Predicate != nil {
		conditions++
	}
	if spec.Expr != "" {
		conditions++
	}
	if spec.Kind == CrossJoin {
		if conditions > 0 {
			return &errors.JoinSpecError{Reason: "a cross join does not accept a join condition"}
		}
		return nil
	}
	if conditions != 1 {
		return &errors.JoinSpecError{Reason: "exactly one of On, Predicate or Expr must be given"}
	}
	return nil
}

// joinLayout describes how the columns of a left and right Row form an output Row
type joinLayout struct {
	schema     flowsome.Schema
	numLeft    int
	rightCols  []int // rightCols holds the output position of each right column, or -1 for coalesced keys
	coalesceTo []int // coalesceTo holds the right column feeding each coalesced left key column, or -1
}

func createJoinLayout(left flowsome.Schema, right flowsome.Schema, on [][2]flowsome.Column) (*joinLayout, error) {
	newSchema := left.Clone()
	layout := &joinLayout{
		numLeft:    left.NumColumns(),
		rightCols:  make([]int, right.NumColumns()),
		coalesceTo: make([]int, left.NumColumns()),
	}
	for i := range layout.coalesceTo {
		layout.coalesceTo[i] = -1
	}
	coalesced := make(map[int]bool)
	for _, pair := range on {
		if pair[0].Name() == pair[1].Name() {
			coalesced[pair[1].Index()] = true
			layout.coalesceTo[pair[0].Index()] = pair[1].Index()
		}
	}
	for i, name := range right.ColumnNames() {
		if coalesced[i] {
			layout.rightCols[i] = -1
			continue
		}
		col, _ := right.GetColumnAt(i)
		outName := name
		if newSchema.HasColumn(outName) {
			outName = name + RightSuffix
		}
		if _, err := newSchema.CreateColumn(outName, col.Type()); err != nil {
			return nil, err
		}
		layout.rightCols[i] = newSchema.NumColumns() - 1
	}
	layout.schema = newSchema
	return layout, nil
}

// combine builds an output Row from a left and a right Row, either of which may be nil
func (l *joinLayout) combine(left []interface{}, right []interface{}) []interface{} {
	values := make([]interface{}, l.schema.NumColumns())
	if left != nil {
		copy(values, left)
	}
	if right != nil {
		for i, pos := range l.rightCols {
			if pos >= 0 {
				values[pos] = right[i]
			}
		}
		if left == nil {
			for i, ri := range l.coalesceTo {
				if ri >= 0 {
					values[i] = right[ri]
				}
			}
		}
	}
	return values
}

// joinTask streams left Rows against a materialized right-hand DataFrame. Matches are emitted
// in left order, and unmatched right Rows (for right and outer joins) follow at the end.
type joinTask struct {
	spec        *JoinSpec
	layout      *joinLayout
	leftKeys    []int
	rightKeys   []int
	predicate   flowsome.JoinPredicate
	rightSchema flowsome.Schema
	rightRows   [][]interface{}
	rightIndex  *hashmap.Index
	matched     []bool
}

func (s *joinTask) RunInitialize(sctx flowsome.StageContext) error {
	table, err := sctx.Materialize(s.spec.Right)
	if err != nil {
		return fmt.Errorf("Unable to materialize right side of join: %w", err)
	}
	if err := table.Schema().Equals(s.rightSchema); err != nil {
		return fmt.Errorf("Right side of join produced an unexpected schema: %w", err)
	}
	s.rightRows = make([][]interface{}, table.NumRows())
	for i := range s.rightRows {
		s.rightRows[i] = table.GetRow(i).Values()
	}
	s.matched = make([]bool, len(s.rightRows))
	s.rightIndex = nil
	if len(s.rightKeys) > 0 {
		s.rightIndex = hashmap.CreateIndex()
		for i, values := range s.rightRows {
			key, ok, err := encodeJoinKey(values, s.rightKeys)
			if err != nil {
				return err
			}
			if ok {
				s.rightIndex.Append(key, i)
			}
		}
	}
	return nil
}

// encodeJoinKey encodes the key columns of a Row. Rows with a null key never match.
func encodeJoinKey(values []interface{}, indices []int) ([]byte, bool, error) {
	keyValues := make([]interface{}, len(indices))
	for i, idx := range indices {
		if values[idx] == nil {
			return nil, false, nil
		}
		keyValues[i] = values[idx]
	}
	key, err := iutil.EncodeKey(keyValues)
	return key, err == nil, err
}

// candidates returns the positions of right Rows which match a left Row
func (s *joinTask) candidates(left flowsome.Row, values []interface{}) ([]int, error) {
	if s.rightIndex != nil {
		key, ok, err := encodeJoinKey(values, s.leftKeys)
		if err != nil || !ok {
			return nil, err
		}
		matches, _ := s.rightIndex.Get(key)
		return matches, nil
	}
	matches := []int{}
	for i, rvalues := range s.rightRows {
		if s.predicate != nil {
			ok, err := s.predicate(left, partition.CreateRow(rvalues, s.rightSchema))
			if err != nil {
				return nil, err
			} else if !ok {
				continue
			}
		}
		matches = append(matches, i)
	}
	return matches, nil
}

func (s *joinTask) RunWorker(sctx flowsome.StageContext, previous flowsome.OperablePartition) ([]flowsome.OperablePartition, error) {
	var multierr *multierror.Error
	keepLeft := s.spec.Kind == LeftJoin || s.spec.Kind == OuterJoin
	builder := partition.CreateBuilder(sctx.TargetPartitionSize(), s.layout.schema)
	for i := 0; i < previous.GetNumRows(); i++ {
		row := previous.GetRow(i)
		values := row.Values()
		matches, err := s.candidates(row, values)
		if err != nil {
			multierr = multierror.Append(multierr, err)
			continue
		}
		for _, ri := range matches {
			s.matched[ri] = true
			if err := builder.Append(s.layout.combine(values, s.rightRows[ri])); err != nil {
				return nil, err
			}
		}
		if len(matches) == 0 && keepLeft {
			if err := builder.Append(s.layout.combine(values, nil)); err != nil {
				return nil, err
			}
		}
	}
	return builder.Partitions(), multierr.ErrorOrNil()
}

func (s *joinTask) RunFinalize(sctx flowsome.StageContext) ([]flowsome.OperablePartition, error) {
	builder := partition.CreateBuilder(sctx.TargetPartitionSize(), s.layout.schema)
	if s.spec.Kind == RightJoin || s.spec.Kind == OuterJoin {
		for i, values := range s.rightRows {
			if s.matched[i] {
				continue
			}
			if err := builder.Append(s.layout.combine(nil, values)); err != nil {
				return nil, err
			}
		}
	}
	s.rightRows = nil
	s.rightIndex = nil
	s.matched = nil
	return builder.Partitions(), nil
}

// Join combines each Row with the Rows of another DataFrame. The result holds the left
// columns followed by the right columns. Equality keys with identical names on both
// sides are coalesced into a single column, and other right columns whose names clash
// with a left column are suffixed with RightSuffix. Equality joins are performed with a
// hash index over the right-hand side, and predicate joins with a nested loop. Null
// keys never match.
func Join(spec *JoinSpec) *flowsome.DataFrameOperation {
	return &flowsome.DataFrameOperation{
		TaskType: flowsome.JoinTaskType,
		Do: func(d flowsome.DataFrame) (*flowsome.DataFrameOperationResult, error) {
			if spec == nil {
				return nil, &errors.JoinSpecError{Reason: "a join specification is required"}
			}
			if err := spec.validate(); err != nil {
				return nil, err
			}
			leftSchema := d.GetSchema()
			rightSchema := spec.Right.GetSchema().Clone()
			pairs := make([][2]flowsome.Column, len(spec.On))
			leftKeys := make([]int, len(spec.On))
			rightKeys := make([]int, len(spec.On))
			for i, on := range spec.On {
				lcol, err := leftSchema.Resolve(on.Left)
				if err != nil {
					return nil, err
				}
				rcol, err := rightSchema.Resolve(on.Right)
				if err != nil {
					return nil, err
				}
				if iutil.ValueFamily(lcol.Type()) != iutil.ValueFamily(rcol.Type()) {
					return nil, &errors.SchemaError{
						Column: lcol.Name(),
						Reason: fmt.Sprintf("cannot join %s with %s column %s", lcol.Type().Name(), rcol.Type().Name(), rcol.Name()),
					}
				}
				pairs[i] = [2]flowsome.Column{lcol, rcol}
				leftKeys[i] = lcol.Index()
				rightKeys[i] = rcol.Index()
			}
			layout, err := createJoinLayout(leftSchema, rightSchema, pairs)
			if err != nil {
				return nil, err
			}
			predicate := spec.Predicate
			if spec.Expr != "" {
				predicate, err = expression.CompileJoinPredicate(spec.Expr, leftSchema, rightSchema)
				if err != nil {
					return nil, err
				}
			}
			if predicate != nil {
				predicate = iutil.SafeJoinPredicate(predicate)
			}
			return &flowsome.DataFrameOperationResult{
				Task: &joinTask{
					spec:        spec,
					layout:      layout,
					leftKeys:    leftKeys,
					rightKeys:   rightKeys,
					predicate:   predicate,
					rightSchema: rightSchema,
				},
				DataSchema: layout.schema,
			}, nil
		},
	}
}
