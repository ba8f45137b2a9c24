// Package transport is the wire layer between the worksheet engine and
// the remote spreadsheet service. The engine only sees the Store
// interface; the Google Sheets implementation lives in google.go.
package transport

import (
	"context"
	"fmt"
)

// Dimension selects the major dimension of a ranged read or write.
type Dimension string

const (
	Rows    Dimension = "ROWS"
	Columns Dimension = "COLUMNS"
)

// ValueInput controls how the remote service interprets written values.
type ValueInput string

const (
	// UserEntered parses input as if typed into the UI (numbers,
	// dates, formulas).
	UserEntered ValueInput = "USER_ENTERED"
	// Raw stores input verbatim.
	Raw ValueInput = "RAW"
)

// Store is the value-level surface the worksheet engine consumes.
//
// Get returns raw rows (or columns, per dim) exactly as the remote
// reports them: trailing empty cells are omitted, so inner slices may
// be shorter than the requested span. An empty range yields an empty
// result, not an error.
//
// Update writes a rectangular block. A nil entry inside values is sent
// as a null and leaves the corresponding remote cell untouched.
type Store interface {
	Get(ctx context.Context, rng string, dim Dimension) ([][]string, error)
	Update(ctx context.Context, rng string, dim Dimension, values [][]interface{}) error
	Clear(ctx context.Context, rng string) error
	Resize(ctx context.Context, sheetID int64, rowCount, columnCount int) error
}

// SheetInfo is the identity and grid extent of one worksheet, as
// reported by the remote spreadsheet metadata.
type SheetInfo struct {
	ID          int64
	Title       string
	RowCount    int
	ColumnCount int
}

// RemoteError is a non-success response from the remote service. It
// carries the server-reported message when one was present, else the
// raw body or error text.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("remote operation failed (%d): %s", e.Code, e.Message)
	}
	return fmt.Sprintf("remote operation failed: %s", e.Message)
}
