package worksheet

// SliceOptions windows a single row or column operation. The zero
// value means "from position 1, to the end".
type SliceOptions struct {
	From   int // first position along the axis, 1-based
	Length int // number of cells, -1 (or 0) = to the end of data
}

func (o SliceOptions) normalize() SliceOptions {
	if o.From == 0 {
		o.From = 1
	}
	if o.Length == 0 {
		o.Length = -1
	}
	return o
}

func (o SliceOptions) validate() error {
	if err := checkPos("from", o.From); err != nil {
		return err
	}
	return checkSpan("length", o.Length)
}

// TableOptions windows a whole-table read or write. Length bounds one
// slice's extent, Count bounds the number of slices; -1 (or 0) means
// the current grid bound. Fill pads ragged results with "" so every
// slice has the maximum observed length.
type TableOptions struct {
	FromRow    int
	FromColumn int
	Length     int
	Count      int
	Fill       bool
}

func (o TableOptions) normalize() TableOptions {
	if o.FromRow == 0 {
		o.FromRow = 1
	}
	if o.FromColumn == 0 {
		o.FromColumn = 1
	}
	if o.Length == 0 {
		o.Length = -1
	}
	if o.Count == 0 {
		o.Count = -1
	}
	return o
}

func (o TableOptions) validate() error {
	if err := checkPos("fromRow", o.FromRow); err != nil {
		return err
	}
	if err := checkPos("fromColumn", o.FromColumn); err != nil {
		return err
	}
	if err := checkSpan("length", o.Length); err != nil {
		return err
	}
	return checkSpan("count", o.Count)
}

// KeyOptions controls key lookups along an axis. In is the position of
// the key axis (the column holding row keys, or the row holding column
// keys); it defaults to 1. Eager appends the key when absent instead
// of reporting -1.
type KeyOptions struct {
	In    int
	Eager bool
}

func (o KeyOptions) normalize() KeyOptions {
	if o.In == 0 {
		o.In = 1
	}
	return o
}

// ByKeyOptions windows a by-key row/column read or write. From
// defaults to 2 so the key cell itself is skipped.
type ByKeyOptions struct {
	In     int // key axis position, default 1
	From   int // first data position, default 2
	Length int // -1 (or 0) = to the end
}

func (o ByKeyOptions) normalize() ByKeyOptions {
	if o.In == 0 {
		o.In = 1
	}
	if o.From == 0 {
		o.From = 2
	}
	if o.Length == 0 {
		o.Length = -1
	}
	return o
}

// MapOptions controls map-shaped reads and writes. MapTo is the
// position of the key axis (default 1). From offsets both the key and
// data axes. AppendMissing extends the key axis with input keys it
// does not yet contain. Overwrite blanks cells whose key the input map
// lacks; when false those cells are left untouched.
type MapOptions struct {
	MapTo         int
	From          int
	Length        int
	AppendMissing bool
	Overwrite     bool
}

func (o MapOptions) normalize() MapOptions {
	if o.MapTo == 0 {
		o.MapTo = 1
	}
	if o.From == 0 {
		o.From = 1
	}
	if o.Length == 0 {
		o.Length = -1
	}
	return o
}
