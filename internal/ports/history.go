package ports

import (
	"context"

	"rosync/internal/types"
)

type HistoryPort interface {
	Record(ctx context.Context, record types.RunRecord) error
	Recent(ctx context.Context, limit int) ([]types.RunRecord, error)
	Close() error
}
