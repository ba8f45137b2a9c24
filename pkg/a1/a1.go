// Package a1 converts between numeric grid coordinates and spreadsheet
// A1 notation. Column labels use bijective base-26: there is no zero
// digit, so 1=A, 26=Z, 27=AA.
package a1

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var ErrInvalidReference = errors.New("invalid cell reference")

var cellRefPattern = regexp.MustCompile(`^([A-Z]+)([0-9]+)$`)

// ColumnLabel returns the letter label for a 1-based column index.
// Returns "" for index < 1.
func ColumnLabel(index int) string {
	if index < 1 {
		return ""
	}
	var b []byte
	for index > 0 {
		index--
		b = append(b, byte('A'+index%26))
		index /= 26
	}
	// letters were produced least-significant first
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}

// ColumnIndex returns the 1-based column index for a letter label,
// or 0 if the label is empty or contains a non-letter.
func ColumnIndex(label string) int {
	label = strings.ToUpper(strings.TrimSpace(label))
	index := 0
	for _, c := range label {
		if c < 'A' || c > 'Z' {
			return 0
		}
		index = index*26 + int(c-'A') + 1
	}
	return index
}

// CellLabel returns the A1 label for a cell, e.g. CellLabel(3, 7) == "C7".
func CellLabel(col, row int) string {
	return ColumnLabel(col) + strconv.Itoa(row)
}

// ParseCellReference splits an A1 reference into its column and row,
// e.g. "C7" -> (3, 7). Input is trimmed and case-insensitive.
func ParseCellReference(ref string) (col, row int, err error) {
	normalized := strings.ToUpper(strings.TrimSpace(ref))
	m := cellRefPattern.FindStringSubmatch(normalized)
	if m == nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	col = ColumnIndex(m[1])
	row, err = strconv.Atoi(m[2])
	if err != nil || row < 1 || col < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidReference, ref)
	}
	return col, row, nil
}
