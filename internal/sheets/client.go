package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

type Client struct {
	service *sheets.Service
}

func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	service, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		service: service,
	}, nil
}

// ReadRange fetches cell values for the given A1-notation range.
// A sheet with no values yields a nil slice, not an error.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	resp, err := c.service.Spreadsheets.Values.Get(spreadsheetID, range_).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range: %w", err)
	}

	return resp.Values, nil
}

// FirstSheetTitle looks up spreadsheet metadata and returns the title of the
// first sheet, or "" if the spreadsheet reports no sheets.
func (c *Client) FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	resp, err := c.service.Spreadsheets.Get(spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	if len(resp.Sheets) == 0 || resp.Sheets[0].Properties == nil {
		return "", nil
	}

	return resp.Sheets[0].Properties.Title, nil
}
