package worksheet

import (
	"context"
	"fmt"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// RowMap reads one row as a key->value map, pairing it positionally
// against the key row o.MapTo. Positions past the end of the data row
// map to "". Blank key cells are skipped; a duplicated key keeps the
// value at its last occurrence.
func (w *Worksheet) RowMap(ctx context.Context, row int, o MapOptions) (map[string]string, error) {
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
	return pairAxes(keys, values), nil
}

// ColumnMap reads one column as a key->value map, pairing it against
// the key column o.MapTo.
func (w *Worksheet) ColumnMap(ctx context.Context, col int, o MapOptions) (map[string]string, error) {
	if err := checkPos("column", col); err != nil {
		return nil, err
	}
	o = o.normalize()
	if o.MapTo == col {
		return nil, fmt.Errorf("%w: cannot map column %d to itself", ErrInvalidArgument, col)
	}
	keys, err := w.Column(ctx, o.MapTo, SliceOptions{From: o.From, Length: o.Length})
	if err != nil {
		return nil, err
	}
	values, err := w.Column(ctx, col, SliceOptions{From: o.From, Length: o.Length})
	if err != nil {
		return nil, err
	}
	return pairAxes(keys, values), nil
}

func pairAxes(keys, values []string) map[string]string {
	m := make(map[string]string, len(keys))
	for i, k := range keys {
		if k == "" {
			continue
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		m[k] = v
	}
	return m
}

// InsertRowMap reconciles one key->value map into a single row. Keys
// are matched against the key row o.MapTo.
func (w *Worksheet) InsertRowMap(ctx context.Context, row int, m map[string]interface{}, o MapOptions) error {
	return w.InsertRowMaps(ctx, row, []map[string]interface{}{m}, o)
}

// InsertColumnMap reconciles one key->value map into a single column.
func (w *Worksheet) InsertColumnMap(ctx context.Context, col int, m map[string]interface{}, o MapOptions) error {
	return w.InsertColumnMaps(ctx, col, []map[string]interface{}{m}, o)
}

// InsertRowMaps reconciles a batch of maps into consecutive rows
// starting at fromRow, all matched against the key row o.MapTo.
//
// For each map, keys found in the key row produce values at their
// positions; positions whose key the map lacks are blanked when
// o.Overwrite is set and left untouched otherwise. With
// o.AppendMissing, keys present in any input map but absent from the
// key row are appended to it (one write, before the data write) and
// every map's output is extended to the same key set.
//
// The two writes are not transactional: a failure after the key
// extension leaves the new keys in place with no data beneath them.
func (w *Worksheet) InsertRowMaps(ctx context.Context, fromRow int, maps []map[string]interface{}, o MapOptions) error {
	if err := checkPos("fromRow", fromRow); err != nil {
		return err
	}
	o = o.normalize()
	if o.MapTo >= fromRow && o.MapTo < fromRow+len(maps) {
		return fmt.Errorf("%w: mapTo row %d lies inside the target rows", ErrInvalidArgument, o.MapTo)
	}
	if o.MapTo > w.rowCount {
		return fmt.Errorf("%w: mapTo row %d is outside the sheet (%d rows)", ErrInvalidArgument, o.MapTo, w.rowCount)
	}
	t := mapTarget{
		readKeys: func(ctx context.Context) ([]string, error) {
			return w.Row(ctx, o.MapTo, SliceOptions{From: o.From, Length: o.Length})
		},
		writeKeys: func(ctx context.Context, at int, keys []interface{}) error {
			return w.InsertRow(ctx, o.MapTo, keys, SliceOptions{From: at})
		},
		writeData: func(ctx context.Context, blocks [][]interface{}) error {
			return w.InsertRows(ctx, fromRow, blocks, TableOptions{FromColumn: o.From})
		},
	}
	return w.insertMapped(ctx, t, maps, o)
}

// InsertColumnMaps reconciles a batch of maps into consecutive columns
// starting at fromCol, matched against the key column o.MapTo.
func (w *Worksheet) InsertColumnMaps(ctx context.Context, fromCol int, maps []map[string]interface{}, o MapOptions) error {
	if err := checkPos("fromColumn", fromCol); err != nil {
		return err
	}
	o = o.normalize()
	if o.MapTo >= fromCol && o.MapTo < fromCol+len(maps) {
		return fmt.Errorf("%w: mapTo column %d lies inside the target columns", ErrInvalidArgument, o.MapTo)
	}
	if o.MapTo > w.columnCount {
		return fmt.Errorf("%w: mapTo column %d is outside the sheet (%d columns)", ErrInvalidArgument, o.MapTo, w.columnCount)
	}
	t := mapTarget{
		readKeys: func(ctx context.Context) ([]string, error) {
			return w.Column(ctx, o.MapTo, SliceOptions{From: o.From, Length: o.Length})
		},
		writeKeys: func(ctx context.Context, at int, keys []interface{}) error {
			return w.InsertColumn(ctx, o.MapTo, keys, SliceOptions{From: at})
		},
		writeData: func(ctx context.Context, blocks [][]interface{}) error {
			return w.InsertColumns(ctx, fromCol, blocks, TableOptions{FromRow: o.From})
		},
	}
	return w.insertMapped(ctx, t, maps, o)
}

// mapTarget abstracts the axis direction of a mapped write so rows and
// columns share one reconciliation path.
type mapTarget struct {
	readKeys  func(ctx context.Context) ([]string, error)
	writeKeys func(ctx context.Context, at int, keys []interface{}) error
	writeData func(ctx context.Context, blocks [][]interface{}) error
}

// insertMapped folds input maps against the current key axis and
// issues the reconciled writes. Unmentioned positions become nil
// entries (skipped on the wire) unless o.Overwrite blanks them.
func (w *Worksheet) insertMapped(ctx context.Context, t mapTarget, maps []map[string]interface{}, o MapOptions) error {
	if len(maps) == 0 {
		return fmt.Errorf("%w: no input maps", ErrInvalidArgument)
	}
	for _, m := range maps {
		if len(m) == 0 {
			return fmt.Errorf("%w: input map must not be empty", ErrInvalidArgument)
		}
		for k := range m {
			if strings.TrimSpace(k) == "" {
				return fmt.Errorf("%w: input map key must not be blank", ErrInvalidArgument)
			}
		}
	}

	keys, err := t.readKeys(ctx)
	if err != nil {
		return err
	}
	// A sheet with no key axis yet is fine as long as we are allowed
	// to create the keys.
	if len(keys) == 0 && !o.AppendMissing {
		return fmt.Errorf("%w: key axis is empty and AppendMissing is not set", ErrInvalidArgument)
	}

	outputs := make([][]interface{}, len(maps))
	for mi, m := range maps {
		out := make([]interface{}, len(keys))
		for i, k := range keys {
			if v, ok := m[k]; ok {
				out[i] = v
			} else if o.Overwrite {
				out[i] = ""
			}
		}
		outputs[mi] = out
	}

	if o.AppendMissing {
		missing := missingKeys(keys, maps)
		if len(missing) > 0 {
			for mi, m := range maps {
				for _, k := range missing {
					if v, ok := m[k]; ok {
						outputs[mi] = append(outputs[mi], v)
					} else {
						outputs[mi] = append(outputs[mi], "")
					}
				}
			}
			appended := make([]interface{}, len(missing))
			for i, k := range missing {
				appended[i] = k
			}
			log.Debugf("appending %d keys to key axis of %q", len(missing), w.title)
			// The key axis must contain every key before the data
			// lands, so this write completes first.
			if err := t.writeKeys(ctx, o.From+len(keys), appended); err != nil {
				return err
			}
		}
	}

	return t.writeData(ctx, outputs)
}

// missingKeys is the union of input-map keys absent from the key axis.
// Input maps are unordered, so the union is sorted to keep the
// appended key order deterministic.
func missingKeys(keys []string, maps []map[string]interface{}) []string {
	present := make(map[string]bool, len(keys))
	for _, k := range keys {
		present[k] = true
	}
	var missing []string
	for _, m := range maps {
		for k := range m {
			if !present[k] {
				present[k] = true
				missing = append(missing, k)
			}
		}
	}
	sort.Strings(missing)
	return missing
}
