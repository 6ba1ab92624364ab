package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"

	"datasense/domain/dataset"
	"datasense/internal/errors"
	"datasense/ports"
)

// datasetRepository persists dataset records and their column profiles.
// Raw cell data is never persisted; only metadata and the profile.
type datasetRepository struct {
	db *sqlx.DB
}

// NewDatasetRepository creates a Postgres-backed dataset repository
func NewDatasetRepository(db *sqlx.DB) ports.DatasetRepository {
	return &datasetRepository{db: db}
}

// Migrate bootstraps the datasets table
func Migrate(db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		original_filename TEXT NOT NULL,
		record_count INTEGER NOT NULL,
		field_count INTEGER NOT NULL,
		missing_rate DOUBLE PRECISION NOT NULL,
		columns JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return errors.DatabaseError("failed to create datasets table", err)
	}
	return nil
}

func (r *datasetRepository) Create(ctx context.Context, ds *dataset.Dataset) error {
	columnsJSON, err := json.Marshal(ds.Columns)
	if err != nil {
		return errors.Wrap(err, "failed to marshal column profiles")
	}

	query := `INSERT INTO datasets (
		id, original_filename, record_count, field_count, missing_rate, columns, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err = r.db.ExecContext(ctx, query,
		ds.ID, ds.OriginalFilename, ds.RecordCount, ds.FieldCount,
		ds.MissingRate, columnsJSON, ds.CreatedAt,
	)
	if err != nil {
		return errors.DatabaseError("failed to create dataset", err)
	}
	return nil
}

func (r *datasetRepository) GetByID(ctx context.Context, id string) (*dataset.Dataset, error) {
	query := `SELECT id, original_filename, record_count, field_count, missing_rate, columns, created_at
		FROM datasets WHERE id = $1`

	var ds dataset.Dataset
	var columnsJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ds.ID, &ds.OriginalFilename, &ds.RecordCount, &ds.FieldCount,
		&ds.MissingRate, &columnsJSON, &ds.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("dataset")
		}
		return nil, errors.DatabaseError("failed to get dataset", err)
	}

	if err := json.Unmarshal(columnsJSON, &ds.Columns); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal column profiles")
	}
	return &ds, nil
}

func (r *datasetRepository) List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error) {
	query := `SELECT id, original_filename, record_count, field_count, missing_rate, columns, created_at
		FROM datasets ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, errors.DatabaseError("failed to list datasets", err)
	}
	defer rows.Close()

	var out []*dataset.Dataset
	for rows.Next() {
		var ds dataset.Dataset
		var columnsJSON []byte
		if err := rows.Scan(
			&ds.ID, &ds.OriginalFilename, &ds.RecordCount, &ds.FieldCount,
			&ds.MissingRate, &columnsJSON, &ds.CreatedAt,
		); err != nil {
			return nil, errors.DatabaseError("failed to scan dataset", err)
		}
		if err := json.Unmarshal(columnsJSON, &ds.Columns); err != nil {
			return nil, errors.Wrap(err, "failed to unmarshal column profiles")
		}
		out = append(out, &ds)
	}
	return out, rows.Err()
}

func (r *datasetRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM datasets WHERE id = $1`, id); err != nil {
		return errors.DatabaseError("failed to delete dataset", err)
	}
	return nil
}
