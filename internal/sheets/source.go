package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"signup_pulse/internal/retry"

	"github.com/rs/zerolog/log"
)

// readSpan is the column span read on every fetch. Deliberately wider than
// the current header so columns added to the sheet later are picked up.
const readSpan = "A1:Z"

type api interface {
	ReadRange(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)
	FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error)
}

// Source reads the raw contents of a single configured spreadsheet.
// The first sheet's title is resolved once and cached for the life of the
// process; title renames in the source are not detected.
type Source struct {
	client        api
	spreadsheetID string
	guard         retry.Config

	mu            sync.Mutex
	title         string
	titleResolved bool
}

func NewSource(client *Client, spreadsheetID string) *Source {
	return &Source{
		client:        client,
		spreadsheetID: spreadsheetID,
		guard: retry.Config{
			// Fetch failures propagate to the caller as-is, so no retries
			// here, only the transport timeout.
			MaxRetries: 0,
			Timeout:    15 * time.Second,
		},
	}
}

// ResolveSheetTitle returns the cached first-sheet title, performing the
// metadata lookup on first use. An empty title means the spreadsheet
// reported no sheets; FetchRows then falls back to an untitled range.
func (s *Source) ResolveSheetTitle(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.titleResolved {
		return s.title, nil
	}

	title, err := retry.WithGuard(ctx, s.guard, func(ctx context.Context) (string, error) {
		return s.client.FirstSheetTitle(ctx, s.spreadsheetID)
	})
	if err != nil {
		return "", err
	}

	if title == "" {
		log.Warn().Str("spreadsheet_id", s.spreadsheetID).Msg("Spreadsheet reports no sheets, using untitled range")
	}

	s.title = title
	s.titleResolved = true
	log.Debug().Str("title", title).Msg("Resolved sheet title")
	return title, nil
}

// FetchRows reads the full column span of the first sheet and returns the
// rows as raw text cells. A sheet with no values yields an empty result.
func (s *Source) FetchRows(ctx context.Context) ([][]string, error) {
	title, err := s.ResolveSheetTitle(ctx)
	if err != nil {
		return nil, err
	}

	readRange := readSpan
	if title != "" {
		readRange = title + "!" + readSpan
	}

	values, err := retry.WithGuard(ctx, s.guard, func(ctx context.Context) ([][]interface{}, error) {
		return s.client.ReadRange(ctx, s.spreadsheetID, readRange)
	})
	if err != nil {
		return nil, err
	}

	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cellString(cell)
		}
		rows[i] = cells
	}

	log.Debug().Int("rows", len(rows)).Str("range", readRange).Msg("Fetched sheet rows")
	return rows, nil
}

// cellString converts a raw cell value to its text form, nil becoming "".
func cellString(cell interface{}) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprintf("%v", cell)
}
