package ports

import (
	"context"

	"datasense/domain/dataset"
)

// DatasetRepository persists dataset records and their column profiles
type DatasetRepository interface {
	Create(ctx context.Context, ds *dataset.Dataset) error
	GetByID(ctx context.Context, id string) (*dataset.Dataset, error)
	List(ctx context.Context, limit, offset int) ([]*dataset.Dataset, error)
	Delete(ctx context.Context, id string) error
}
