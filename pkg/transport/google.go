package transport

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Client talks to the Google Sheets v4 API for a single spreadsheet.
// It implements Store.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	valueInput    ValueInput
}

// NewClient builds a client from a service-account credentials file.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string, valueInput ValueInput) (*Client, error) {
	srv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	if valueInput == "" {
		valueInput = UserEntered
	}
	return &Client{
		service:       srv,
		spreadsheetID: spreadsheetID,
		valueInput:    valueInput,
	}, nil
}

func (c *Client) Get(ctx context.Context, rng string, dim Dimension) ([][]string, error) {
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		MajorDimension(string(dim)).
		Context(ctx).Do()
	if err != nil {
		return nil, remoteError(err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = make([]string, len(row))
		for j, v := range row {
			if v != nil {
				out[i][j] = fmt.Sprint(v)
			}
		}
	}
	return out, nil
}

func (c *Client) Update(ctx context.Context, rng string, dim Dimension, values [][]interface{}) error {
	vr := &sheets.ValueRange{
		MajorDimension: string(dim),
		Values:         values,
	}
	_, err := c.service.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption(string(c.valueInput)).
		Context(ctx).Do()
	if err != nil {
		return remoteError(err)
	}
	log.Debugf("updated range %s", rng)
	return nil
}

func (c *Client) Clear(ctx context.Context, rng string) error {
	_, err := c.service.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &sheets.ClearValuesRequest{}).
		Context(ctx).Do()
	if err != nil {
		return remoteError(err)
	}
	return nil
}

func (c *Client) Resize(ctx context.Context, sheetID int64, rowCount, columnCount int) error {
	req := &sheets.Request{
		UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
			Properties: &sheets.SheetProperties{
				SheetId: sheetID,
				GridProperties: &sheets.GridProperties{
					RowCount:    int64(rowCount),
					ColumnCount: int64(columnCount),
				},
			},
			Fields: "gridProperties.rowCount,gridProperties.columnCount",
		},
	}
	_, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{req},
	}).Context(ctx).Do()
	if err != nil {
		return remoteError(err)
	}
	log.Debugf("resized sheet %d to %dx%d", sheetID, rowCount, columnCount)
	return nil
}

// Describe fetches spreadsheet metadata and reports every worksheet's
// identity and grid extent.
func (c *Client) Describe(ctx context.Context) ([]SheetInfo, error) {
	ss, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, remoteError(err)
	}
	infos := make([]SheetInfo, 0, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		info := SheetInfo{
			ID:    sh.Properties.SheetId,
			Title: sh.Properties.Title,
		}
		if gp := sh.Properties.GridProperties; gp != nil {
			info.RowCount = int(gp.RowCount)
			info.ColumnCount = int(gp.ColumnCount)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// SheetByTitle looks up one worksheet by title, creating it when
// createIfMissing is set.
func (c *Client) SheetByTitle(ctx context.Context, title string, createIfMissing bool) (SheetInfo, error) {
	infos, err := c.Describe(ctx)
	if err != nil {
		return SheetInfo{}, err
	}
	for _, info := range infos {
		if info.Title == title {
			return info, nil
		}
	}
	if !createIfMissing {
		return SheetInfo{}, &RemoteError{Message: fmt.Sprintf("no sheet titled %q", title)}
	}
	return c.AddSheet(ctx, title)
}

// AddSheet creates a new worksheet with the default grid size.
func (c *Client) AddSheet(ctx context.Context, title string) (SheetInfo, error) {
	req := &sheets.Request{
		AddSheet: &sheets.AddSheetRequest{
			Properties: &sheets.SheetProperties{Title: title},
		},
	}
	resp, err := c.service.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests:                     []*sheets.Request{req},
		IncludeSpreadsheetInResponse: false,
	}).Context(ctx).Do()
	if err != nil {
		return SheetInfo{}, remoteError(err)
	}
	for _, r := range resp.Replies {
		if r.AddSheet != nil && r.AddSheet.Properties != nil {
			p := r.AddSheet.Properties
			info := SheetInfo{ID: p.SheetId, Title: p.Title}
			if p.GridProperties != nil {
				info.RowCount = int(p.GridProperties.RowCount)
				info.ColumnCount = int(p.GridProperties.ColumnCount)
			}
			return info, nil
		}
	}
	return SheetInfo{}, &RemoteError{Message: "add sheet returned no properties"}
}

// remoteError converts a googleapi failure into a RemoteError, keeping
// the server message when one is present.
func remoteError(err error) error {
	if gErr, ok := err.(*googleapi.Error); ok {
		msg := gErr.Message
		if msg == "" {
			msg = strings.TrimSpace(gErr.Body)
		}
		if msg == "" {
			msg = gErr.Error()
		}
		return &RemoteError{Code: gErr.Code, Message: msg}
	}
	return &RemoteError{Message: err.Error()}
}
