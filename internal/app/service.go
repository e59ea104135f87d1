package app

import (
	"time"

	"github.com/google/uuid"

	"rosync/internal/adapters"
	"rosync/internal/ports"
	"rosync/internal/schema"
)

type Service struct {
	Registry  *schema.Registry
	Desired   ports.DesiredStatePort
	Connector ports.DeviceConnectorPort
	Reports   ports.ReportPort
	// History and Metrics are optional.
	History ports.HistoryPort
	Metrics ports.MetricsPort
	Clock   func() time.Time
	NewID   func() string
}

func NewService() Service {
	return Service{
		Registry:  schema.Default(),
		Desired:   adapters.NewDesiredFileAdapter(),
		Connector: adapters.NewDeviceConnectorAdapter(),
		Reports:   adapters.NewReportFileAdapter(),
		Clock:     time.Now,
		NewID:     uuid.NewString,
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

func (s Service) newRunID() string {
	if s.NewID == nil {
		return uuid.NewString()
	}
	return s.NewID()
}
