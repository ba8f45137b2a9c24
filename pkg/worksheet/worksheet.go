// Package worksheet implements range-addressed and key-indexed access
// to a single remote worksheet. A Worksheet tracks the grid's last
// known bounds and grows the remote grid before any out-of-bounds
// range is read or written.
package worksheet

import (
	"context"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"gsheet/pkg/a1"
	"gsheet/pkg/transport"
)

var (
	// ErrInvalidArgument is returned for malformed coordinates, empty
	// or nested axis values, and self-referential key mappings. It is
	// always raised before any remote call.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrReadOnlyCell is returned when updating a cell obtained from a
	// find operation.
	ErrReadOnlyCell = errors.New("cell is read-only")
)

// Worksheet is a handle on one sheet of a remote spreadsheet. The
// tracked bounds are the only state that survives across calls; all
// data is fetched fresh per call.
//
// A Worksheet is not safe for concurrent use: two calls that both
// grow bounds or both append to the same key axis can race on the
// remote grid.
type Worksheet struct {
	store       transport.Store
	sheetID     int64
	title       string
	rowCount    int
	columnCount int
}

// New wraps a sheet described by remote metadata.
func New(store transport.Store, info transport.SheetInfo) *Worksheet {
	return &Worksheet{
		store:       store,
		sheetID:     info.ID,
		title:       info.Title,
		rowCount:    info.RowCount,
		columnCount: info.ColumnCount,
	}
}

func (w *Worksheet) Title() string    { return w.title }
func (w *Worksheet) ID() int64        { return w.sheetID }
func (w *Worksheet) RowCount() int    { return w.rowCount }
func (w *Worksheet) ColumnCount() int { return w.columnCount }

// ensureSize grows the remote grid so that it covers at least rows x
// cols, and reports whether a resize happened. Bounds only change
// after the remote confirms; a failed resize leaves them untouched.
func (w *Worksheet) ensureSize(ctx context.Context, rows, cols int) (bool, error) {
	newRows, newCols := w.rowCount, w.columnCount
	if rows > newRows {
		newRows = rows
	}
	if cols > newCols {
		newCols = cols
	}
	if newRows == w.rowCount && newCols == w.columnCount {
		return false, nil
	}
	if err := w.store.Resize(ctx, w.sheetID, newRows, newCols); err != nil {
		return false, err
	}
	log.Debugf("grew sheet %q from %dx%d to %dx%d", w.title, w.rowCount, w.columnCount, newRows, newCols)
	w.rowCount, w.columnCount = newRows, newCols
	return true, nil
}

func (w *Worksheet) rangeString(fromCol, fromRow, toCol, toRow int) string {
	return fmt.Sprintf("'%s'!%s:%s", w.title, a1.CellLabel(fromCol, fromRow), a1.CellLabel(toCol, toRow))
}

// rowRange builds the range for a slice of one row, growing bounds
// first. length -1 spans to the current column bound.
func (w *Worksheet) rowRange(ctx context.Context, row, fromCol, length int) (string, error) {
	toCol := fromCol
	if length > 0 {
		toCol = fromCol + length - 1
	}
	if _, err := w.ensureSize(ctx, row, toCol); err != nil {
		return "", err
	}
	if length < 0 {
		toCol = w.columnCount
	}
	return w.rangeString(fromCol, row, toCol, row), nil
}

// columnRange builds the range for a slice of one column. length -1
// spans to the current row bound.
func (w *Worksheet) columnRange(ctx context.Context, col, fromRow, length int) (string, error) {
	toRow := fromRow
	if length > 0 {
		toRow = fromRow + length - 1
	}
	if _, err := w.ensureSize(ctx, toRow, col); err != nil {
		return "", err
	}
	if length < 0 {
		toRow = w.rowCount
	}
	return w.rangeString(col, fromRow, col, toRow), nil
}

// rowsRange builds the range for a block of whole rows: length bounds
// each row's column span, count bounds the number of rows.
func (w *Worksheet) rowsRange(ctx context.Context, fromRow, fromCol, length, count int) (string, error) {
	toCol := fromCol
	if length > 0 {
		toCol = fromCol + length - 1
	}
	toRow := fromRow
	if count > 0 {
		toRow = fromRow + count - 1
	}
	if _, err := w.ensureSize(ctx, toRow, toCol); err != nil {
		return "", err
	}
	if length < 0 {
		toCol = w.columnCount
	}
	if count < 0 {
		toRow = w.rowCount
	}
	return w.rangeString(fromCol, fromRow, toCol, toRow), nil
}

// columnsRange is the transpose of rowsRange: length bounds each
// column's row span, count bounds the number of columns.
func (w *Worksheet) columnsRange(ctx context.Context, fromCol, fromRow, length, count int) (string, error) {
	toRow := fromRow
	if length > 0 {
		toRow = fromRow + length - 1
	}
	toCol := fromCol
	if count > 0 {
		toCol = fromCol + count - 1
	}
	if _, err := w.ensureSize(ctx, toRow, toCol); err != nil {
		return "", err
	}
	if length < 0 {
		toRow = w.rowCount
	}
	if count < 0 {
		toCol = w.columnCount
	}
	return w.rangeString(fromCol, fromRow, toCol, toRow), nil
}

func checkPos(name string, v int) error {
	if v < 1 {
		return fmt.Errorf("%w: %s must be >= 1, got %d", ErrInvalidArgument, name, v)
	}
	return nil
}

// spans accept -1 as "to the end".
func checkSpan(name string, v int) error {
	if v < 1 && v != -1 {
		return fmt.Errorf("%w: %s must be >= 1 or -1, got %d", ErrInvalidArgument, name, v)
	}
	return nil
}
