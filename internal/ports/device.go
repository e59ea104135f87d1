package ports

import (
	"context"

	"rosync/internal/types"
)

// DevicePort is the live device a reconciliation run reads from and
// writes to.
type DevicePort interface {
	Version(ctx context.Context) (string, error)
	List(ctx context.Context, path types.Path) ([]types.Entry, error)
	Add(ctx context.Context, path types.Path, fields types.Fields) (string, error)
	// Update applies changes to the entry with id; an empty id addresses
	// the single entry of a single-value path.
	Update(ctx context.Context, path types.Path, id string, changes types.Changes) error
	Remove(ctx context.Context, path types.Path, ids ...string) error
	Invoke(ctx context.Context, path types.Path, command string, args types.Fields) error
}

type DeviceTarget struct {
	Backend            string
	Host               string
	Username           string
	Password           string
	TLS                bool
	InsecureSkipVerify bool
	TimeoutSec         int
	StateFile          string
}

type DeviceConnectorPort interface {
	Connect(ctx context.Context, target DeviceTarget) (DevicePort, error)
}
