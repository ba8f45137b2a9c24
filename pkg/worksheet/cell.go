package worksheet

import (
	"context"
	"fmt"

	"gsheet/pkg/a1"
)

// Cell is one grid cell with a back-reference to its worksheet. Cells
// returned by find operations are read-only; their Update fails with
// ErrReadOnlyCell.
type Cell struct {
	ws       *Worksheet
	Row      int
	Col      int
	Value    string
	readOnly bool
}

// Label returns the cell's A1 reference, e.g. "C7".
func (c *Cell) Label() string {
	return a1.CellLabel(c.Col, c.Row)
}

func (c *Cell) ReadOnly() bool { return c.readOnly }

// Update writes the cell and records the new value locally.
func (c *Cell) Update(ctx context.Context, value interface{}) error {
	if c.readOnly {
		return fmt.Errorf("%w: %s", ErrReadOnlyCell, c.Label())
	}
	if err := c.ws.UpdateValue(ctx, c.Row, c.Col, value); err != nil {
		return err
	}
	c.Value = fmt.Sprint(value)
	return nil
}

// Refresh re-reads the cell's current remote value.
func (c *Cell) Refresh(ctx context.Context) error {
	v, err := c.ws.Value(ctx, c.Row, c.Col)
	if err != nil {
		return err
	}
	c.Value = v
	return nil
}

// CellAt fetches a single writable cell by coordinate.
func (w *Worksheet) CellAt(ctx context.Context, row, col int) (*Cell, error) {
	v, err := w.Value(ctx, row, col)
	if err != nil {
		return nil, err
	}
	return &Cell{ws: w, Row: row, Col: col, Value: v}, nil
}

// CellByKeys fetches the cell at the intersection of the row labeled
// rowKey (column 1) and the column labeled colKey (row 1). Returns nil
// when either key is absent.
func (w *Worksheet) CellByKeys(ctx context.Context, rowKey, colKey interface{}) (*Cell, error) {
	row, err := w.RowIndexOf(ctx, rowKey, KeyOptions{})
	if err != nil {
		return nil, err
	}
	col, err := w.ColumnIndexOf(ctx, colKey, KeyOptions{})
	if err != nil {
		return nil, err
	}
	if row < 1 || col < 1 {
		return nil, nil
	}
	return w.CellAt(ctx, row, col)
}

// RowCells reads a slice of one row as writable cells.
func (w *Worksheet) RowCells(ctx context.Context, row int, o SliceOptions) ([]*Cell, error) {
	o = o.normalize()
	values, err := w.Row(ctx, row, o)
	if err != nil {
		return nil, err
	}
	cells := make([]*Cell, len(values))
	for i, v := range values {
		cells[i] = &Cell{ws: w, Row: row, Col: o.From + i, Value: v}
	}
	return cells, nil
}

// RowCellMap reads one row as key->cell, pairing against the key row
// o.MapTo. Keys whose position lies past the end of the data row get a
// fresh empty cell carrying the coordinate the value would occupy, so
// the caller can populate it.
func (w *Worksheet) RowCellMap(ctx context.Context, row int, o MapOptions) (map[string]*Cell, error) {
	if err := checkPos("row", row); err != nil {
		return nil, err
	}
	o = o.normalize()
	if o.MapTo == row {
		return nil, fmt.Errorf("%w: cannot map row %d to itself", ErrInvalidArgument, row)
	}
	keys, err := w.Row(ctx, o.MapTo, SliceOptions{From: o.From, Length: o.Length})
	if err != nil {
		return nil, err
	}
	values, err := w.Row(ctx, row, SliceOptions{From: o.From, Length: o.Length})
	if err != nil {
		return nil, err
	}
	m := make(map[string]*Cell, len(keys))
	for i, k := range keys {
		if k == "" {
			continue
		}
		c := &Cell{ws: w, Row: row, Col: o.From + i}
		if i < len(values) {
			c.Value = values[i]
		}
		m[k] = c
	}
	return m, nil
}

// FindCells scans the sheet for cells whose value equals value
// exactly. The returned cells are read-only.
func (w *Worksheet) FindCells(ctx context.Context, value string) ([]*Cell, error) {
	rows, err := w.Rows(ctx, TableOptions{})
	if err != nil {
		return nil, err
	}
	var found []*Cell
	for ri, row := range rows {
		for ci, v := range row {
			if v == value {
				found = append(found, &Cell{
					ws:       w,
					Row:      ri + 1,
					Col:      ci + 1,
					Value:    v,
					readOnly: true,
				})
			}
		}
	}
	return found, nil
}
