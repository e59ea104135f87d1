package ports

import "rosync/internal/types"

type ReportPort interface {
	WriteReport(path string, report types.SyncReport) error
}
