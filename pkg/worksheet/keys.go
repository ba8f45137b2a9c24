package worksheet

import (
	"context"
	"fmt"
	"strings"
)

// toKeyString coerces an arbitrary key to its string form. Blank keys
// are rejected here so every key-based operation validates the same
// way.
func toKeyString(key interface{}) (string, error) {
	if key == nil {
		return "", fmt.Errorf("%w: key must not be nil", ErrInvalidArgument)
	}
	s := strings.TrimSpace(fmt.Sprint(key))
	if s == "" {
		return "", fmt.Errorf("%w: key must not be blank", ErrInvalidArgument)
	}
	return s, nil
}

// RowIndexOf returns the 1-based index of the row whose cell in the
// key column (o.In) equals key, or -1 when absent. With o.Eager the
// key is appended below the existing keys and its new index returned.
func (w *Worksheet) RowIndexOf(ctx context.Context, key interface{}, o KeyOptions) (int, error) {
	k, err := toKeyString(key)
	if err != nil {
		return 0, err
	}
	o = o.normalize()
	if err := checkPos("in", o.In); err != nil {
		return 0, err
	}
	keys, err := w.Column(ctx, o.In, SliceOptions{})
	if err != nil {
		return 0, err
	}
	for i, v := range keys {
		if v == k {
			return i + 1, nil
		}
	}
	if !o.Eager {
		return -1, nil
	}
	pos := len(keys) + 1
	if err := w.UpdateValue(ctx, pos, o.In, k); err != nil {
		return 0, err
	}
	return pos, nil
}

// ColumnIndexOf returns the 1-based index of the column whose cell in
// the key row (o.In) equals key, or -1 when absent. With o.Eager the
// key is appended after the existing keys and its new index returned.
func (w *Worksheet) ColumnIndexOf(ctx context.Context, key interface{}, o KeyOptions) (int, error) {
	k, err := toKeyString(key)
	if err != nil {
		return 0, err
	}
	o = o.normalize()
	if err := checkPos("in", o.In); err != nil {
		return 0, err
	}
	keys, err := w.Row(ctx, o.In, SliceOptions{})
	if err != nil {
		return 0, err
	}
	for i, v := range keys {
		if v == k {
			return i + 1, nil
		}
	}
	if !o.Eager {
		return -1, nil
	}
	pos := len(keys) + 1
	if err := w.UpdateValue(ctx, o.In, pos, k); err != nil {
		return 0, err
	}
	return pos, nil
}

// RowByKey reads the row labeled key in the key column. Absence is
// not an error: a nil slice is returned.
func (w *Worksheet) RowByKey(ctx context.Context, key interface{}, o ByKeyOptions) ([]string, error) {
	o = o.normalize()
	row, err := w.RowIndexOf(ctx, key, KeyOptions{In: o.In})
	if err != nil {
		return nil, err
	}
	if row < 1 {
		return nil, nil
	}
	return w.Row(ctx, row, SliceOptions{From: o.From, Length: o.Length})
}

// ColumnByKey reads the column labeled key in the key row.
func (w *Worksheet) ColumnByKey(ctx context.Context, key interface{}, o ByKeyOptions) ([]string, error) {
	o = o.normalize()
	col, err := w.ColumnIndexOf(ctx, key, KeyOptions{In: o.In})
	if err != nil {
		return nil, err
	}
	if col < 1 {
		return nil, nil
	}
	return w.Column(ctx, col, SliceOptions{From: o.From, Length: o.Length})
}

// InsertRowByKey writes values into the row labeled key, creating the
// key below the existing keys when absent. Returns the row written.
func (w *Worksheet) InsertRowByKey(ctx context.Context, key interface{}, values []interface{}, o ByKeyOptions) (int, error) {
	o = o.normalize()
	row, err := w.RowIndexOf(ctx, key, KeyOptions{In: o.In, Eager: true})
	if err != nil {
		return 0, err
	}
	if err := w.InsertRow(ctx, row, values, SliceOptions{From: o.From}); err != nil {
		return 0, err
	}
	return row, nil
}

// InsertColumnByKey writes values into the column labeled key,
// creating the key when absent. Returns the column written.
func (w *Worksheet) InsertColumnByKey(ctx context.Context, key interface{}, values []interface{}, o ByKeyOptions) (int, error) {
	o = o.normalize()
	col, err := w.ColumnIndexOf(ctx, key, KeyOptions{In: o.In, Eager: true})
	if err != nil {
		return 0, err
	}
	if err := w.InsertColumn(ctx, col, values, SliceOptions{From: o.From}); err != nil {
		return 0, err
	}
	return col, nil
}

// ValueByKeys reads the cell at the intersection of the row labeled
// rowKey (looked up in column 1) and the column labeled colKey (looked
// up in row 1). Absence of either key yields "", not an error.
func (w *Worksheet) ValueByKeys(ctx context.Context, rowKey, colKey interface{}) (string, error) {
	row, err := w.RowIndexOf(ctx, rowKey, KeyOptions{})
	if err != nil {
		return "", err
	}
	col, err := w.ColumnIndexOf(ctx, colKey, KeyOptions{})
	if err != nil {
		return "", err
	}
	if row < 1 || col < 1 {
		return "", nil
	}
	return w.Value(ctx, row, col)
}

// UpdateValueByKeys writes the cell at the intersection of two keys,
// creating either key when absent.
func (w *Worksheet) UpdateValueByKeys(ctx context.Context, rowKey, colKey, value interface{}) error {
	row, err := w.RowIndexOf(ctx, rowKey, KeyOptions{Eager: true})
	if err != nil {
		return err
	}
	col, err := w.ColumnIndexOf(ctx, colKey, KeyOptions{Eager: true})
	if err != nil {
		return err
	}
	return w.UpdateValue(ctx, row, col, value)
}
