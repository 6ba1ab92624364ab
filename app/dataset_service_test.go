package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	profileadapter "datasense/adapters/profile"
	"datasense/internal/session"
)

func newTestDatasetService() *DatasetService {
	return NewDatasetService(profileadapter.NewAnalyzer(), session.NewStore(), nil)
}

func TestProcessUploadCSV(t *testing.T) {
	svc := newTestDatasetService()

	ds, err := svc.ProcessUpload(context.Background(), "people.csv", []byte("name,age\nalice,30\nbob,na"))
	require.NoError(t, err)

	assert.NotEmpty(t, ds.ID)
	assert.Equal(t, "people.csv", ds.OriginalFilename)
	assert.Equal(t, 2, ds.RecordCount)
	assert.Equal(t, 2, ds.FieldCount)
	assert.InDelta(t, 0.25, ds.MissingRate, 1e-9)
	require.Len(t, ds.Columns, 2)

	cached, err := svc.Get(ds.ID)
	require.NoError(t, err)
	assert.Same(t, ds, cached)
}

func TestProcessUploadTSV(t *testing.T) {
	svc := newTestDatasetService()

	ds, err := svc.ProcessUpload(context.Background(), "data.tsv", []byte("a\tb\n1\t2"))
	require.NoError(t, err)
	assert.Equal(t, 1, ds.RecordCount)
	assert.Equal(t, []string{"a", "b"}, ds.Table.Headers)
}

// Degenerate content degrades to an empty dataset, never an error
func TestProcessUploadEmptyFile(t *testing.T) {
	svc := newTestDatasetService()

	ds, err := svc.ProcessUpload(context.Background(), "empty.csv", []byte(""))
	require.NoError(t, err)
	assert.Equal(t, 0, ds.RecordCount)
	assert.Equal(t, 0, ds.FieldCount)
}

func TestGetUnknownDataset(t *testing.T) {
	svc := newTestDatasetService()
	_, err := svc.Get("no-such-id")
	require.Error(t, err)
}

func TestSummaryBlock(t *testing.T) {
	svc := newTestDatasetService()
	ds, err := svc.ProcessUpload(context.Background(), "sales.csv",
		[]byte("region,revenue\nnorth,100\nsouth,250\nnorth,175"))
	require.NoError(t, err)

	summary := SummaryBlock(ds)
	assert.Contains(t, summary, "sales.csv")
	assert.Contains(t, summary, "3 rows, 2 columns")
	assert.Contains(t, summary, "**region** (string)")
	assert.Contains(t, summary, "**revenue** (number)")
	assert.True(t, strings.Contains(summary, "mean 175"), "summary should include inline numeric stats: %s", summary)
}
