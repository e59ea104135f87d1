package ports

import "rosync/internal/types"

type DesiredStatePort interface {
	Load(path string) (types.DesiredState, error)
}
