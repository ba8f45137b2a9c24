package worksheet

import (
	"context"
	"fmt"

	"gsheet/pkg/a1"
	"gsheet/pkg/transport"
)

// checkAxisValues rejects the payloads an axis write cannot carry: an
// empty slice, or nested sequences (axis writes must be flat).
func checkAxisValues(values []interface{}) error {
	if len(values) == 0 {
		return fmt.Errorf("%w: values must not be empty", ErrInvalidArgument)
	}
	for _, v := range values {
		switch v.(type) {
		case []interface{}, []string, [][]interface{}, [][]string:
			return fmt.Errorf("%w: axis values must be flat", ErrInvalidArgument)
		}
	}
	return nil
}

// fill pads every slice to the maximum observed length with "".
func fill(table [][]string) {
	max := 0
	for _, s := range table {
		if len(s) > max {
			max = len(s)
		}
	}
	for i, s := range table {
		for len(s) < max {
			s = append(s, "")
		}
		table[i] = s
	}
}

// Row reads a slice of one row. Missing data yields an empty slice,
// not an error; trailing empty cells are omitted by the remote.
func (w *Worksheet) Row(ctx context.Context, row int, o SliceOptions) ([]string, error) {
	if err := checkPos("row", row); err != nil {
		return nil, err
	}
	o = o.normalize()
	if err := o.validate(); err != nil {
		return nil, err
	}
	rng, err := w.rowRange(ctx, row, o.From, o.Length)
	if err != nil {
		return nil, err
	}
	data, err := w.store.Get(ctx, rng, transport.Rows)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []string{}, nil
	}
	return data[0], nil
}

// Column reads a slice of one column.
func (w *Worksheet) Column(ctx context.Context, col int, o SliceOptions) ([]string, error) {
	if err := checkPos("column", col); err != nil {
		return nil, err
	}
	o = o.normalize()
	if err := o.validate(); err != nil {
		return nil, err
	}
	rng, err := w.columnRange(ctx, col, o.From, o.Length)
	if err != nil {
		return nil, err
	}
	data, err := w.store.Get(ctx, rng, transport.Columns)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return []string{}, nil
	}
	return data[0], nil
}

// Rows reads a block of whole rows. Without Fill the result is ragged,
// exactly as the remote reports it.
func (w *Worksheet) Rows(ctx context.Context, o TableOptions) ([][]string, error) {
	o = o.normalize()
	if err := o.validate(); err != nil {
		return nil, err
	}
	rng, err := w.rowsRange(ctx, o.FromRow, o.FromColumn, o.Length, o.Count)
	if err != nil {
		return nil, err
	}
	data, err := w.store.Get(ctx, rng, transport.Rows)
	if err != nil {
		return nil, err
	}
	if o.Fill {
		fill(data)
	}
	return data, nil
}

// Columns reads a block of whole columns.
func (w *Worksheet) Columns(ctx context.Context, o TableOptions) ([][]string, error) {
	o = o.normalize()
	if err := o.validate(); err != nil {
		return nil, err
	}
	rng, err := w.columnsRange(ctx, o.FromColumn, o.FromRow, o.Length, o.Count)
	if err != nil {
		return nil, err
	}
	data, err := w.store.Get(ctx, rng, transport.Columns)
	if err != nil {
		return nil, err
	}
	if o.Fill {
		fill(data)
	}
	return data, nil
}

// InsertRow writes values into one row starting at o.From. The value
// count determines the span; o.Length is ignored.
func (w *Worksheet) InsertRow(ctx context.Context, row int, values []interface{}, o SliceOptions) error {
	if err := checkPos("row", row); err != nil {
		return err
	}
	if err := checkAxisValues(values); err != nil {
		return err
	}
	o = o.normalize()
	if err := checkPos("from", o.From); err != nil {
		return err
	}
	rng, err := w.rowRange(ctx, row, o.From, len(values))
	if err != nil {
		return err
	}
	return w.store.Update(ctx, rng, transport.Rows, [][]interface{}{values})
}

// InsertColumn writes values into one column starting at o.From.
func (w *Worksheet) InsertColumn(ctx context.Context, col int, values []interface{}, o SliceOptions) error {
	if err := checkPos("column", col); err != nil {
		return err
	}
	if err := checkAxisValues(values); err != nil {
		return err
	}
	o = o.normalize()
	if err := checkPos("from", o.From); err != nil {
		return err
	}
	rng, err := w.columnRange(ctx, col, o.From, len(values))
	if err != nil {
		return err
	}
	return w.store.Update(ctx, rng, transport.Columns, [][]interface{}{values})
}

// InsertRows writes a rectangular block of rows in one call. Inner
// slices may be ragged; the range spans the longest one.
func (w *Worksheet) InsertRows(ctx context.Context, fromRow int, rows [][]interface{}, o TableOptions) error {
	if err := checkPos("fromRow", fromRow); err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: rows must not be empty", ErrInvalidArgument)
	}
	o = o.normalize()
	maxLen := 0
	for _, r := range rows {
		if err := checkAxisValues(r); err != nil {
			return err
		}
		if len(r) > maxLen {
			maxLen = len(r)
		}
	}
	rng, err := w.rowsRange(ctx, fromRow, o.FromColumn, maxLen, len(rows))
	if err != nil {
		return err
	}
	return w.store.Update(ctx, rng, transport.Rows, rows)
}

// InsertColumns writes a rectangular block of columns in one call.
func (w *Worksheet) InsertColumns(ctx context.Context, fromCol int, cols [][]interface{}, o TableOptions) error {
	if err := checkPos("fromColumn", fromCol); err != nil {
		return err
	}
	if len(cols) == 0 {
		return fmt.Errorf("%w: columns must not be empty", ErrInvalidArgument)
	}
	o = o.normalize()
	maxLen := 0
	for _, c := range cols {
		if err := checkAxisValues(c); err != nil {
			return err
		}
		if len(c) > maxLen {
			maxLen = len(c)
		}
	}
	rng, err := w.columnsRange(ctx, fromCol, o.FromRow, maxLen, len(cols))
	if err != nil {
		return err
	}
	return w.store.Update(ctx, rng, transport.Columns, cols)
}

// Value reads a single cell, "" when the cell is empty.
func (w *Worksheet) Value(ctx context.Context, row, col int) (string, error) {
	if err := checkPos("row", row); err != nil {
		return "", err
	}
	if err := checkPos("column", col); err != nil {
		return "", err
	}
	rng, err := w.rowRange(ctx, row, col, 1)
	if err != nil {
		return "", err
	}
	data, err := w.store.Get(ctx, rng, transport.Rows)
	if err != nil {
		return "", err
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return "", nil
	}
	return data[0][0], nil
}

// ValueByRef reads a single cell addressed in A1 notation.
func (w *Worksheet) ValueByRef(ctx context.Context, ref string) (string, error) {
	col, row, err := a1.ParseCellReference(ref)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return w.Value(ctx, row, col)
}

// UpdateValue writes a single cell.
func (w *Worksheet) UpdateValue(ctx context.Context, row, col int, value interface{}) error {
	if err := checkPos("row", row); err != nil {
		return err
	}
	if err := checkPos("column", col); err != nil {
		return err
	}
	if err := checkAxisValues([]interface{}{value}); err != nil {
		return err
	}
	rng, err := w.rowRange(ctx, row, col, 1)
	if err != nil {
		return err
	}
	return w.store.Update(ctx, rng, transport.Rows, [][]interface{}{{value}})
}

// UpdateValueByRef writes a single cell addressed in A1 notation.
func (w *Worksheet) UpdateValueByRef(ctx context.Context, ref string, value interface{}) error {
	col, row, err := a1.ParseCellReference(ref)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	return w.UpdateValue(ctx, row, col, value)
}

// LastRow returns the index of the last row containing any data, 0 for
// an empty sheet.
func (w *Worksheet) LastRow(ctx context.Context) (int, error) {
	rng, err := w.rowsRange(ctx, 1, 1, -1, -1)
	if err != nil {
		return 0, err
	}
	data, err := w.store.Get(ctx, rng, transport.Rows)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// LastColumn returns the index of the last column containing any data.
func (w *Worksheet) LastColumn(ctx context.Context) (int, error) {
	rng, err := w.columnsRange(ctx, 1, 1, -1, -1)
	if err != nil {
		return 0, err
	}
	data, err := w.store.Get(ctx, rng, transport.Columns)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}

// AppendRow writes values into the first row after the last one
// containing data.
func (w *Worksheet) AppendRow(ctx context.Context, values []interface{}, o SliceOptions) error {
	last, err := w.LastRow(ctx)
	if err != nil {
		return err
	}
	return w.InsertRow(ctx, last+1, values, o)
}

// AppendColumn writes values into the first column after the last one
// containing data.
func (w *Worksheet) AppendColumn(ctx context.Context, values []interface{}, o SliceOptions) error {
	last, err := w.LastColumn(ctx)
	if err != nil {
		return err
	}
	return w.InsertColumn(ctx, last+1, values, o)
}

// ClearRow clears cell contents along one row without changing bounds.
func (w *Worksheet) ClearRow(ctx context.Context, row int, o SliceOptions) error {
	if err := checkPos("row", row); err != nil {
		return err
	}
	o = o.normalize()
	if err := o.validate(); err != nil {
		return err
	}
	rng, err := w.rowRange(ctx, row, o.From, o.Length)
	if err != nil {
		return err
	}
	return w.store.Clear(ctx, rng)
}

// ClearColumn clears cell contents along one column.
func (w *Worksheet) ClearColumn(ctx context.Context, col int, o SliceOptions) error {
	if err := checkPos("column", col); err != nil {
		return err
	}
	o = o.normalize()
	if err := o.validate(); err != nil {
		return err
	}
	rng, err := w.columnRange(ctx, col, o.From, o.Length)
	if err != nil {
		return err
	}
	return w.store.Clear(ctx, rng)
}

// ClearCell clears a single cell.
func (w *Worksheet) ClearCell(ctx context.Context, row, col int) error {
	if err := checkPos("row", row); err != nil {
		return err
	}
	if err := checkPos("column", col); err != nil {
		return err
	}
	rng, err := w.rowRange(ctx, row, col, 1)
	if err != nil {
		return err
	}
	return w.store.Clear(ctx, rng)
}

// ClearRange clears a rectangle addressed by two A1 references.
func (w *Worksheet) ClearRange(ctx context.Context, from, to string) error {
	fromCol, fromRow, err := a1.ParseCellReference(from)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	toCol, toRow, err := a1.ParseCellReference(to)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	if _, err := w.ensureSize(ctx, toRow, toCol); err != nil {
		return err
	}
	return w.store.Clear(ctx, w.rangeString(fromCol, fromRow, toCol, toRow))
}
