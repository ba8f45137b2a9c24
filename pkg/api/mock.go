package api

import (
	"context"

	"gsheet/pkg/worksheet"
)

type mockSheet struct {
	RowFunc        func(row int, o worksheet.SliceOptions) ([]string, error)
	ColumnFunc     func(col int, o worksheet.SliceOptions) ([]string, error)
	RowMapFunc     func(row int, o worksheet.MapOptions) (map[string]string, error)
	ValueByRefFunc func(ref string) (string, error)

	InsertRowCalls    []worksheet.SliceOptions
	InsertRowValues   [][]interface{}
	InsertRowErr      error
	InsertColumnErr   error
	UpdateRefCalls    map[string]interface{}
	InsertRowMapCalls []worksheet.MapOptions
	InsertRowMapErr   error
}

func (m *mockSheet) Row(_ context.Context, row int, o worksheet.SliceOptions) ([]string, error) {
	return m.RowFunc(row, o)
}

func (m *mockSheet) Column(_ context.Context, col int, o worksheet.SliceOptions) ([]string, error) {
	return m.ColumnFunc(col, o)
}

func (m *mockSheet) InsertRow(_ context.Context, row int, values []interface{}, o worksheet.SliceOptions) error {
	m.InsertRowCalls = append(m.InsertRowCalls, o)
	m.InsertRowValues = append(m.InsertRowValues, values)
	return m.InsertRowErr
}

func (m *mockSheet) InsertColumn(_ context.Context, col int, values []interface{}, o worksheet.SliceOptions) error {
	return m.InsertColumnErr
}

func (m *mockSheet) ValueByRef(_ context.Context, ref string) (string, error) {
	return m.ValueByRefFunc(ref)
}

func (m *mockSheet) UpdateValueByRef(_ context.Context, ref string, value interface{}) error {
	if m.UpdateRefCalls == nil {
		m.UpdateRefCalls = make(map[string]interface{})
	}
	m.UpdateRefCalls[ref] = value
	return nil
}

func (m *mockSheet) RowMap(_ context.Context, row int, o worksheet.MapOptions) (map[string]string, error) {
	return m.RowMapFunc(row, o)
}

func (m *mockSheet) InsertRowMap(_ context.Context, row int, in map[string]interface{}, o worksheet.MapOptions) error {
	m.InsertRowMapCalls = append(m.InsertRowMapCalls, o)
	return m.InsertRowMapErr
}
