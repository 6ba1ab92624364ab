package app

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	profileadapter "datasense/adapters/profile"
	"datasense/adapters/tabular"
	"datasense/domain/dataset"
	"datasense/domain/table"
	"datasense/internal"
	"datasense/internal/errors"
	"datasense/internal/session"
	"datasense/ports"
)

// DatasetService handles the upload pipeline: parse the raw file into a
// typed table, profile every column, and cache the result for the
// session. Persistence is optional and best-effort.
type DatasetService struct {
	analyzer *profileadapter.Analyzer
	store    *session.Store
	repo     ports.DatasetRepository
	logger   *internal.Logger
}

// NewDatasetService creates the upload pipeline. repo may be nil when
// persistence is disabled.
func NewDatasetService(analyzer *profileadapter.Analyzer, store *session.Store, repo ports.DatasetRepository) *DatasetService {
	return &DatasetService{
		analyzer: analyzer,
		store:    store,
		repo:     repo,
		logger:   internal.DefaultLogger,
	}
}

// ProcessUpload parses and profiles one uploaded file. The file format
// is chosen by extension: .xlsx goes through the workbook parser,
// .tsv splits on tabs, everything else on commas. Degenerate content
// yields an empty dataset, never an error; only corrupt workbook bytes
// fail.
func (s *DatasetService) ProcessUpload(ctx context.Context, filename string, data []byte) (*dataset.Dataset, error) {
	t, err := parseByExtension(filename, data)
	if err != nil {
		return nil, err
	}

	columns := s.analyzer.Analyze(t)

	ds := &dataset.Dataset{
		ID:               uuid.NewString(),
		OriginalFilename: filename,
		RecordCount:      len(t.Rows),
		FieldCount:       len(t.Headers),
		MissingRate:      dataset.MissingRateOf(columns, len(t.Rows)),
		CreatedAt:        time.Now().UTC(),
		Table:            t,
		Columns:          columns,
	}

	s.store.Put(ds)
	s.logger.Info("dataset %s processed: %d columns, %d rows", ds.ID, ds.FieldCount, ds.RecordCount)

	if s.repo != nil {
		if err := s.repo.Create(ctx, ds); err != nil {
			// Persistence is supplementary; the in-memory dataset stays
			// usable for the session.
			s.logger.Error("failed to persist dataset %s: %v", ds.ID, err)
		}
	}

	return ds, nil
}

// Get returns a cached dataset by ID
func (s *DatasetService) Get(id string) (*dataset.Dataset, error) {
	ds, ok := s.store.Get(id)
	if !ok {
		return nil, errors.NotFound("dataset")
	}
	return ds, nil
}

func parseByExtension(filename string, data []byte) (*table.Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return tabular.ParseWorkbook(data)
	case ".tsv":
		return tabular.ParseDelimited(string(data), '\t'), nil
	default:
		return tabular.ParseDelimited(string(data), ','), nil
	}
}
