package ports

import (
	"context"

	"HazardBoard/internal/domain"
)

// DatasetSource loads the cleaned article rows the dashboard will serve.
// Implementations own parsing and type coercion; rows they return are
// expected to satisfy the store's ingestion contract.
type DatasetSource interface {
	Load(ctx context.Context) ([]domain.Article, error)
}
