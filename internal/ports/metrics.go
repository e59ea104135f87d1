package ports

import "rosync/internal/types"

type MetricsPort interface {
	ObserveRun(record types.RunRecord)
	Flush() error
}
