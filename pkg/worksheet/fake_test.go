package worksheet

import (
	"context"
	"fmt"
	"strings"

	"gsheet/pkg/a1"
	"gsheet/pkg/transport"
)

// fakeStore is an in-memory transport.Store with remote semantics:
// trailing empty cells and slices are trimmed from Get results, nil
// update entries leave cells untouched, and writes outside the grid
// fail the way the real service does.
type fakeStore struct {
	rows, cols int
	grid       [][]string

	resizes int
	updates []string // ranges, in order

	failGet    error
	failUpdate error
	failResize error
	// updatesUntilFail delays failUpdate by that many successful
	// update calls.
	updatesUntilFail int
}

func newFakeStore(rows, cols int) *fakeStore {
	s := &fakeStore{rows: rows, cols: cols}
	s.grid = make([][]string, rows)
	for i := range s.grid {
		s.grid[i] = make([]string, cols)
	}
	return s
}

func (s *fakeStore) set(row, col int, v string) {
	s.grid[row-1][col-1] = v
}

func (s *fakeStore) parseRange(rng string) (fromCol, fromRow, toCol, toRow int, err error) {
	_, span, ok := strings.Cut(rng, "!")
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("malformed range %q", rng)
	}
	from, to, ok := strings.Cut(span, ":")
	if !ok {
		return 0, 0, 0, 0, fmt.Errorf("malformed span %q", span)
	}
	if fromCol, fromRow, err = a1.ParseCellReference(from); err != nil {
		return
	}
	toCol, toRow, err = a1.ParseCellReference(to)
	return
}

func (s *fakeStore) Get(ctx context.Context, rng string, dim transport.Dimension) ([][]string, error) {
	if s.failGet != nil {
		return nil, s.failGet
	}
	fromCol, fromRow, toCol, toRow, err := s.parseRange(rng)
	if err != nil {
		return nil, err
	}
	if toRow > s.rows || toCol > s.cols {
		return nil, &transport.RemoteError{Code: 400, Message: "range exceeds grid limits"}
	}
	var out [][]string
	if dim == transport.Rows {
		for r := fromRow; r <= toRow; r++ {
			var slice []string
			for c := fromCol; c <= toCol; c++ {
				slice = append(slice, s.grid[r-1][c-1])
			}
			out = append(out, trimTrailing(slice))
		}
	} else {
		for c := fromCol; c <= toCol; c++ {
			var slice []string
			for r := fromRow; r <= toRow; r++ {
				slice = append(slice, s.grid[r-1][c-1])
			}
			out = append(out, trimTrailing(slice))
		}
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func trimTrailing(slice []string) []string {
	for len(slice) > 0 && slice[len(slice)-1] == "" {
		slice = slice[:len(slice)-1]
	}
	return slice
}

func (s *fakeStore) Update(ctx context.Context, rng string, dim transport.Dimension, values [][]interface{}) error {
	if s.failUpdate != nil {
		if s.updatesUntilFail == 0 {
			return s.failUpdate
		}
		s.updatesUntilFail--
	}
	fromCol, fromRow, toCol, toRow, err := s.parseRange(rng)
	if err != nil {
		return err
	}
	if toRow > s.rows || toCol > s.cols {
		return &transport.RemoteError{Code: 400, Message: "range exceeds grid limits"}
	}
	for i, slice := range values {
		for j, v := range slice {
			if v == nil {
				continue
			}
			var r, c int
			if dim == transport.Rows {
				r, c = fromRow+i, fromCol+j
			} else {
				r, c = fromRow+j, fromCol+i
			}
			if r > s.rows || c > s.cols {
				return &transport.RemoteError{Code: 400, Message: "write exceeds grid limits"}
			}
			s.set(r, c, fmt.Sprint(v))
		}
	}
	s.updates = append(s.updates, rng)
	return nil
}

func (s *fakeStore) Clear(ctx context.Context, rng string) error {
	fromCol, fromRow, toCol, toRow, err := s.parseRange(rng)
	if err != nil {
		return err
	}
	for r := fromRow; r <= toRow && r <= s.rows; r++ {
		for c := fromCol; c <= toCol && c <= s.cols; c++ {
			s.set(r, c, "")
		}
	}
	return nil
}

func (s *fakeStore) Resize(ctx context.Context, sheetID int64, rowCount, columnCount int) error {
	if s.failResize != nil {
		return s.failResize
	}
	grid := make([][]string, rowCount)
	for i := range grid {
		grid[i] = make([]string, columnCount)
		if i < s.rows {
			copy(grid[i], s.grid[i])
		}
	}
	s.grid = grid
	s.rows, s.cols = rowCount, columnCount
	s.resizes++
	return nil
}

// newTestSheet pairs a fake store with a worksheet handle seeded to
// the same bounds.
func newTestSheet(rows, cols int) (*Worksheet, *fakeStore) {
	s := newFakeStore(rows, cols)
	w := New(s, transport.SheetInfo{ID: 7, Title: "Data", RowCount: rows, ColumnCount: cols})
	return w, s
}
