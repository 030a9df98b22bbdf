package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSheetsService_NotConfigured(t *testing.T) {
	svc := NewSheetsServiceImpl(nil, "", "", nopLogger{})

	_, err := svc.SyncResults(context.Background(), nil)
	assert.ErrorIs(t, err, ErrSheetsNotConfigured)
}

func TestSheetsService_CreatesOnce(t *testing.T) {
	client := &fakeSheetsClient{}
	svc := NewSheetsServiceImpl(client, "", "owner@example.com", nopLogger{})

	url, err := svc.SyncResults(context.Background(), sampleResults(t))
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/sheet-1", url)
	assert.Equal(t, "create,permission,public,replace", client.methods())
	assert.Equal(t, []string{"sheet-1", "owner@example.com", sheetsPermissionRole}, client.calls[1].args)

	replace := client.calls[3]
	assert.Equal(t, []string{"sheet-1", sheetsClearRange, sheetsStartCell}, replace.args)
	require.Len(t, replace.values, 2)
	assert.Equal(t, "Deporte", replace.values[0][0])
	assert.Equal(t, "Lakers vs Celtics", replace.values[1][1])

	_, err = svc.SyncResults(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "create,permission,public,replace,replace", client.methods())
}

func TestSheetsService_ExistingSpreadsheet(t *testing.T) {
	client := &fakeSheetsClient{}
	svc := NewSheetsServiceImpl(client, "existing", "", nopLogger{})

	url, err := svc.SyncResults(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d/existing", url)
	assert.Equal(t, "replace", client.methods())
}

func TestSheetsService_ClientError(t *testing.T) {
	client := &fakeSheetsClient{err: errors.New("quota exceeded")}
	svc := NewSheetsServiceImpl(client, "", "", nopLogger{})

	_, err := svc.SyncResults(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Equal(t, "create", client.methods())
}
