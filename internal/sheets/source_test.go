package sheets

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	title         string
	titleErr      error
	values        [][]interface{}
	readErr       error
	metadataCalls int
	readCalls     int
	lastRange     string
}

func (f *fakeAPI) FirstSheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	f.metadataCalls++
	return f.title, f.titleErr
}

func (f *fakeAPI) ReadRange(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error) {
	f.readCalls++
	f.lastRange = range_
	return f.values, f.readErr
}

func newTestSource(api *fakeAPI) *Source {
	s := NewSource(nil, "sheet-id")
	s.client = api
	return s
}

func TestResolveSheetTitleCachedAfterFirstLookup(t *testing.T) {
	api := &fakeAPI{title: "Signups 2026"}
	source := newTestSource(api)

	title, err := source.ResolveSheetTitle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Signups 2026", title)

	title, err = source.ResolveSheetTitle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Signups 2026", title)
	assert.Equal(t, 1, api.metadataCalls, "title must be resolved at most once")
}

func TestResolveSheetTitleFailureIsNotCached(t *testing.T) {
	api := &fakeAPI{titleErr: errors.New("metadata lookup failed")}
	source := newTestSource(api)

	_, err := source.ResolveSheetTitle(context.Background())
	require.Error(t, err)

	// A later call retries the lookup instead of caching the failure.
	api.titleErr = nil
	api.title = "Hoja 1"
	title, err := source.ResolveSheetTitle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Hoja 1", title)
	assert.Equal(t, 2, api.metadataCalls)
}

func TestFetchRowsUsesTitledRange(t *testing.T) {
	api := &fakeAPI{
		title: "Signups",
		values: [][]interface{}{
			{"email", "timestamp"},
			{"a@x.com", nil, 42, true},
		},
	}
	source := newTestSource(api)

	rows, err := source.FetchRows(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Signups!A1:Z", api.lastRange)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"email", "timestamp"}, rows[0])
	assert.Equal(t, []string{"a@x.com", "", "42", "true"}, rows[1])
}

func TestFetchRowsFallsBackToUntitledRange(t *testing.T) {
	api := &fakeAPI{title: ""}
	source := newTestSource(api)

	rows, err := source.FetchRows(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "A1:Z", api.lastRange)
	assert.Empty(t, rows)
}

func TestFetchRowsReusesCachedTitle(t *testing.T) {
	api := &fakeAPI{title: "Signups"}
	source := newTestSource(api)

	_, err := source.FetchRows(context.Background())
	require.NoError(t, err)
	_, err = source.FetchRows(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, api.metadataCalls)
	assert.Equal(t, 2, api.readCalls)
}

func TestFetchRowsPropagatesReadFailure(t *testing.T) {
	readErr := errors.New("googleapi: 403 forbidden")
	api := &fakeAPI{title: "Signups", readErr: readErr}
	source := newTestSource(api)

	_, err := source.FetchRows(context.Background())
	assert.ErrorIs(t, err, readErr)
}
