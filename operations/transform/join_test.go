package transform

import (
	"testing"

	"github.com/flowsome/flowsome"
	"github.com/flowsome/flowsome/errors"
	ftesting "github.com/flowsome/flowsome/testing"
	"github.com/stretchr/testify/require"
)

func createVisitsFrame(t *testing.T) flowsome.DataFrame {
	return createTestFrame(t,
		[]string{"id", "city", "visits"},
		[]flowsome.ColumnType{&flowsome.Int64ColumnType{}, &flowsome.StringColumnType{}, &flowsome.Int64ColumnType{}},
		[][]interface{}{
			{2, "rome", 3},
			{1, "oslo", 1},
			{2, "lima", 7},
			{9, "kyiv", 2},
			{nil, "nowhere", 0},
		},
	)
}

func joinPeople(t *testing.T, kind JoinKind) flowsome.Table {
	frame, err := createPeopleFrame(t).To(
		Select(flowsome.Col("id"), flowsome.Col("name")),
		Join(&JoinSpec{Right: createVisitsFrame(t), Kind: kind, On: []JoinOn{On("id", "id")}}),
	)
	require.Nil(t, err)
	return runFrame(t, frame)
}

func TestInnerJoin(t *testing.T) {
	table := joinPeople(t, InnerJoin)
	require.Equal(t, []string{"id", "name", "city", "visits"}, table.Schema().ColumnNames())
	require.Equal(t, [][]interface{}{
		{int64(1), "alice", "oslo", int64(1)},
		{int64(2), "bob", "rome", int64(3)},
		{int64(2), "bob", "lima", int64(7)},
	}, ftesting.Rows(table))
}

func TestLeftJoin(t *testing.T) {
	table := joinPeople(t, LeftJoin)
	require.Equal(t, 6, table.NumRows())
	require.Equal(t, []interface{}{int64(3), "carol", nil, nil}, table.GetRow(3).Values())
}

func TestRightJoin(t *testing.T) {
	table := joinPeople(t, RightJoin)
	require.Equal(t, [][]interface{}{
		{int64(1), "alice", "oslo", int64(1)},
		{int64(2), "bob", "rome", int64(3)},
		{int64(2), "bob", "lima", int64(7)},
		{int64(9), nil, "kyiv", int64(2)},
		{nil, nil, "nowhere", int64(0)},
	}, ftesting.Rows(table))
}

func TestOuterJoin(t *testing.T) {
	table := joinPeople(t, OuterJoin)
	// 3 matches, 3 unmatched people, 2 unmatched visits
	require.Equal(t, 8, table.NumRows())
}

func TestJoinRowCounts(t *testing.T) {
	inner := joinPeople(t, InnerJoin).NumRows()
	left := joinPeople(t, LeftJoin).NumRows()
	outer := joinPeople(t, OuterJoin).NumRows()
	require.LessOrEqual(t, inner, left)
	require.GreaterOrEqual(t, left, 5)
	require.GreaterOrEqual(t, outer, 5)
}

func TestCrossJoin(t *testing.T) {
	frame, err := createPeopleFrame(t).To(
		Select(flowsome.Col("id")),
		Join(&JoinSpec{Right: createVisitsFrame(t), Kind: CrossJoin}),
	)
	require.Nil(t, err)
	table := runFrame(t, frame)
	require.Equal(t, []string{"id", "id_right", "city", "visits"}, table.Schema().ColumnNames())
	require.Equal(t, 25, table.NumRows())
}

func TestPredicateJoin(t *testing.T) {
	frame, err := createPeopleFrame(t).To(
		Select(flowsome.Col("id"), flowsome.Col("name")),
		Join(&JoinSpec{Right: createVisitsFrame(t), Kind: InnerJoin, Expr: `left.id == right.id && right.visits > 2`}),
	)
	require.Nil(t, err)
	table := runFrame(t, frame)
	require.Equal(t, []string{"id", "name", "id_right", "city", "visits"}, table.Schema().ColumnNames())
	require.Equal(t, [][]interface{}{
		{int64(2), "bob", int64(2), "rome", int64(3)},
		{int64(2), "bob", int64(2), "lima", int64(7)},
	}, ftesting.Rows(table))

	frame, err = createPeopleFrame(t).To(
		Join(&JoinSpec{Right: createVisitsFrame(t), Kind: LeftJoin, Predicate: func(l flowsome.Row, r flowsome.Row) (bool, error) {
			return !l.IsNil("age") && !r.IsNil("id"), nil
		}}),
	)
	require.Nil(t, err)
	table = runFrame(t, frame)
	// 4 people with ages match 4 visits each, and carol is kept unmatched
	require.Equal(t, 17, table.NumRows())
}

func TestJoinOnDifferentNames(t *testing.T) {
	frame, err := createPeopleFrame(t).To(
		RenameColumn("id", "person_id"),
		Select(flowsome.Col("person_id"), flowsome.Col("city")),
		Join(&JoinSpec{Right: createVisitsFrame(t), Kind: InnerJoin, On: []JoinOn{On("person_id", "id")}}),
	)
	require.Nil(t, err)
	require.Equal(t, []string{"person_id", "city", "id", "city_right", "visits"}, frame.GetSchema().ColumnNames())
}

func TestJoinSpecErrors(t *testing.T) {
	var specErr *errors.JoinSpecError
	var schemaErr *errors.SchemaError
	right := createVisitsFrame(t)
	_, err := createPeopleFrame(t).To(Join(nil))
	require.ErrorAs(t, err, &specErr)
	_, err = createPeopleFrame(t).To(Join(&JoinSpec{Kind: InnerJoin, On: []JoinOn{On("id", "id")}}))
	require.ErrorAs(t, err, &specErr)
	_, err = createPeopleFrame(t).To(Join(&JoinSpec{Right: right, Kind: "sideways", On: []JoinOn{On("id", "id")}}))
	require.ErrorAs(t, err, &specErr)
	_, err = createPeopleFrame(t).To(Join(&JoinSpec{Right: right, Kind: InnerJoin}))
	require.ErrorAs(t, err, &specErr)
	_, err = createPeopleFrame(t).To(Join(&JoinSpec{Right: right, Kind: CrossJoin, On: []JoinOn{On("id", "id")}}))
	require.ErrorAs(t, err, &specErr)
	_, err = createPeopleFrame(t).To(Join(&JoinSpec{Right: right, Kind: InnerJoin, On: []JoinOn{On("id", "missing")}}))
	require.ErrorAs(t, err, &schemaErr)
	_, err = createPeopleFrame(t).To(Join(&JoinSpec{Right: right, Kind: InnerJoin, On: []JoinOn{On("name", "id")}}))
	require.ErrorAs(t, err, &schemaErr)
}

func TestParseJoinKind(t *testing.T) {
	kind, err := ParseJoinKind("LEFT")
	require.Nil(t, err)
	require.Equal(t, LeftJoin, kind)
	kind, err = ParseJoinKind("full")
	require.Nil(t, err)
	require.Equal(t, OuterJoin, kind)
	kind, err = ParseJoinKind("")
	require.Nil(t, err)
	require.Equal(t, InnerJoin, kind)
	_, err = ParseJoinKind("anti")
	require.NotNil(t, err)
}
