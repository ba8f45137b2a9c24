package worksheet

import (
	"context"
	"errors"
	"testing"

	"gsheet/pkg/transport"
)

func TestEnsureSizeGrowsBeforeWrite(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(3, 3)

	// row 5 is out of bounds, the write must resize first
	if err := w.InsertRow(ctx, 5, []interface{}{"a", "b"}, SliceOptions{}); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if s.resizes != 1 {
		t.Errorf("resizes = %d, want 1", s.resizes)
	}
	if w.RowCount() != 5 || w.ColumnCount() != 3 {
		t.Errorf("bounds = %dx%d, want 5x3", w.RowCount(), w.ColumnCount())
	}
	got, err := w.Row(ctx, 5, SliceOptions{})
	if err != nil {
		t.Fatalf("Row: %v", err)
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Row(5) = %v", got)
	}
}

func TestEnsureSizeNoRemoteCallWithinBounds(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(5, 5)
	if err := w.InsertRow(ctx, 2, []interface{}{"x"}, SliceOptions{}); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if s.resizes != 0 {
		t.Errorf("resizes = %d, want 0", s.resizes)
	}
}

func TestEnsureSizeFailureLeavesBounds(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(3, 3)
	s.failResize = &transport.RemoteError{Code: 500, Message: "boom"}

	err := w.InsertRow(ctx, 10, []interface{}{"a"}, SliceOptions{})
	var re *transport.RemoteError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want RemoteError", err)
	}
	if w.RowCount() != 3 || w.ColumnCount() != 3 {
		t.Errorf("bounds changed to %dx%d after failed resize", w.RowCount(), w.ColumnCount())
	}
}

func TestRangeStrings(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(5, 5)

	tests := []struct {
		name string
		op   func() error
		want string
	}{
		{
			"row slice",
			func() error { return w.InsertRow(ctx, 1, []interface{}{1, 2, 3}, SliceOptions{From: 2}) },
			"'Data'!B1:D1",
		},
		{
			"column slice",
			func() error { return w.InsertColumn(ctx, 3, []interface{}{1, 2}, SliceOptions{From: 4}) },
			"'Data'!C4:C5",
		},
		{
			"table rows",
			func() error {
				return w.InsertRows(ctx, 2, [][]interface{}{{1, 2}, {3}}, TableOptions{})
			},
			"'Data'!A2:B3",
		},
	}
	for _, tt := range tests {
		s.updates = nil
		if err := tt.op(); err != nil {
			t.Fatalf("%s: %v", tt.name, err)
		}
		if len(s.updates) != 1 || s.updates[0] != tt.want {
			t.Errorf("%s: wrote range %v, want %s", tt.name, s.updates, tt.want)
		}
	}
}

func TestOpenEndedRangeUsesPostExpansionBound(t *testing.T) {
	ctx := context.Background()
	w, s := newTestSheet(4, 4)

	// from beyond the current column bound: the open-ended row slice
	// grows the grid first, then spans to the new bound
	if _, err := w.Row(ctx, 1, SliceOptions{From: 6}); err != nil {
		t.Fatalf("Row: %v", err)
	}
	if w.ColumnCount() != 6 {
		t.Errorf("ColumnCount = %d, want 6", w.ColumnCount())
	}
	if s.resizes != 1 {
		t.Errorf("resizes = %d, want 1", s.resizes)
	}
}

func TestInvalidCoordinates(t *testing.T) {
	ctx := context.Background()
	w, _ := newTestSheet(3, 3)

	cases := []error{
		func() error { _, err := w.Row(ctx, 0, SliceOptions{}); return err }(),
		func() error { _, err := w.Column(ctx, -1, SliceOptions{}); return err }(),
		func() error { _, err := w.Row(ctx, 1, SliceOptions{From: -2}); return err }(),
		func() error { _, err := w.Row(ctx, 1, SliceOptions{Length: -5}); return err }(),
		w.InsertRow(ctx, 0, []interface{}{"x"}, SliceOptions{}),
	}
	for i, err := range cases {
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("case %d: err = %v, want ErrInvalidArgument", i, err)
		}
	}
}
