package worksheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gsheet/pkg/transport"
)

func TestRowMap(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertRows(ctx, 1, [][]interface{}{
		{"a", "b", "c"},
		{1, 2},
	}, TableOptions{}))

	m, err := w.RowMap(ctx, 2, MapOptions{})
	require.NoError(t, err)
	// "c" has no value in row 2, so it maps to ""
	assert.Equal(t, map[string]string{"a": "1", "b": "2", "c": ""}, m)
}

func TestRowMapSelfRejected(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	_, err := w.RowMap(ctx, 1, MapOptions{MapTo: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRowMapLastDuplicateWins(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertRows(ctx, 1, [][]interface{}{
		{"a", "b", "a"},
		{1, 2, 3},
	}, TableOptions{}))

	m, err := w.RowMap(ctx, 2, MapOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3", "b": "2"}, m)
}

func TestColumnMap(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertColumn(ctx, 1, []interface{}{"x", "y"}, SliceOptions{}))
	require.NoError(t, w.InsertColumn(ctx, 2, []interface{}{"7"}, SliceOptions{}))

	m, err := w.ColumnMap(ctx, 2, MapOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"x": "7", "y": ""}, m)
}

func TestInsertRowMapOverwriteFalseLeavesCells(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertRows(ctx, 1, [][]interface{}{
		{"a", "b", "c"},
		{1, 2, 3},
	}, TableOptions{}))

	// "b" is not in the map: its cell must keep its value
	err := w.InsertRowMap(ctx, 2, map[string]interface{}{"a": 9, "c": 7}, MapOptions{})
	require.NoError(t, err)

	row, err := w.Row(ctx, 2, SliceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "2", "7"}, row)
}

func TestInsertRowMapOverwriteTrueBlanksCells(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertRows(ctx, 1, [][]interface{}{
		{"a", "b", "c"},
		{1, 2, 3},
	}, TableOptions{}))

	err := w.InsertRowMap(ctx, 2, map[string]interface{}{"a": 9, "c": 7}, MapOptions{Overwrite: true})
	require.NoError(t, err)

	row, err := w.Row(ctx, 2, SliceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "", "7"}, row)
}

func TestInsertRowMapAppendMissing(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(5, 5)
	require.NoError(t, w.InsertRow(ctx, 1, []interface{}{"a", "b", "c"}, SliceOptions{}))
	s.updates = nil

	err := w.InsertRowMap(ctx, 2, map[string]interface{}{"a": 1, "d": 4}, MapOptions{AppendMissing: true})
	require.NoError(t, err)

	// the key axis gained exactly "d"
	header, err := w.Row(ctx, 1, SliceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, header)

	idx, err := w.ColumnIndexOf(ctx, "d", KeyOptions{})
	require.NoError(t, err)
	assert.Equal(t, 4, idx)

	v, err := w.Value(ctx, 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "4", v)

	// the keys extension is written before the data
	require.Len(t, s.updates, 2)
	assert.Equal(t, "'Data'!D1:D1", s.updates[0])
	assert.Equal(t, "'Data'!A2:D2", s.updates[1])
}

func TestInsertRowMapEmptyKeyAxis(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)

	// no key axis yet: appending is allowed
	err := w.InsertRowMap(ctx, 2, map[string]interface{}{"x": 1}, MapOptions{AppendMissing: true})
	require.NoError(t, err)

	idx, err := w.ColumnIndexOf(ctx, "x", KeyOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	v, err := w.Value(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "1", v)

	// without AppendMissing there is nothing to match against
	w2, _ := newTestSheet(5, 5)
	err = w2.InsertRowMap(ctx, 2, map[string]interface{}{"x": 1}, MapOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInsertRowMapsBatchSharedKeySet(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(6, 6)
	require.NoError(t, w.InsertRow(ctx, 1, []interface{}{"a", "b"}, SliceOptions{}))

	maps := []map[string]interface{}{
		{"a": 1, "c": 3},
		{"b": 2, "d": 4},
	}
	err := w.InsertRowMaps(ctx, 2, maps, MapOptions{AppendMissing: true})
	require.NoError(t, err)

	header, err := w.Row(ctx, 1, SliceOptions{})
	require.NoError(t, err)
	// union of unmatched keys, appended once, shared by both rows
	assert.Equal(t, []string{"a", "b", "c", "d"}, header)

	rows, err := w.Rows(ctx, TableOptions{Fill: true})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"1", "", "3", ""}, rows[1])
	assert.Equal(t, []string{"", "2", "", "4"}, rows[2])
}

func TestInsertColumnMap(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertColumn(ctx, 1, []interface{}{"a", "b"}, SliceOptions{}))

	err := w.InsertColumnMap(ctx, 2, map[string]interface{}{"b": 5, "c": 6}, MapOptions{AppendMissing: true})
	require.NoError(t, err)

	keys, err := w.Column(ctx, 1, SliceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)

	col, err := w.Column(ctx, 2, SliceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"", "5", "6"}, col)
}

func TestInsertMapValidation(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(5, 5)
	require.NoError(t, w.InsertRow(ctx, 1, []interface{}{"a"}, SliceOptions{}))

	// empty input map
	err := w.InsertRowMap(ctx, 2, map[string]interface{}{}, MapOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// mapTo inside the target rows
	err = w.InsertRowMap(ctx, 1, map[string]interface{}{"a": 1}, MapOptions{MapTo: 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// mapTo outside current bounds
	err = w.InsertRowMap(ctx, 2, map[string]interface{}{"a": 1}, MapOptions{MapTo: 9})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// blank map key
	err = w.InsertRowMap(ctx, 2, map[string]interface{}{" ": 1}, MapOptions{})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestInsertRowMapNoRollbackAfterKeysWrite(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(5, 5)
	require.NoError(t, w.InsertRow(ctx, 1, []interface{}{"a"}, SliceOptions{}))

	// keys extension succeeds, data write fails
	s.failUpdate = &transport.RemoteError{Code: 500, Message: "boom"}
	s.updatesUntilFail = 1

	err := w.InsertRowMap(ctx, 2, map[string]interface{}{"a": 1, "b": 2}, MapOptions{AppendMissing: true})
	require.Error(t, err)

	// the appended key stays: the sequence is not transactional
	s.failUpdate = nil
	header, err := w.Row(ctx, 1, SliceOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, header)
	row, err := w.Row(ctx, 2, SliceOptions{})
	require.NoError(t, err)
	assert.Empty(t, row)
}

func TestInsertRowMapIdempotent(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(6, 6)
	require.NoError(t, w.InsertRow(ctx, 1, []interface{}{"a", "b"}, SliceOptions{}))

	m := map[string]interface{}{"a": 1, "b": 2, "c": 3}
	o := MapOptions{AppendMissing: true}
	require.NoError(t, w.InsertRowMap(ctx, 2, m, o))
	first, err := w.Rows(ctx, TableOptions{})
	require.NoError(t, err)

	require.NoError(t, w.InsertRowMap(ctx, 2, m, o))
	second, err := w.Rows(ctx, TableOptions{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
