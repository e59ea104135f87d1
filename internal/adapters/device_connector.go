package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"rosync/internal/ports"
)

const (
	DeviceBackendREST = "rest"
	DeviceBackendFile = "file"
)

type DeviceConnectorAdapter struct{}

func NewDeviceConnectorAdapter() DeviceConnectorAdapter {
	return DeviceConnectorAdapter{}
}

func (DeviceConnectorAdapter) Connect(ctx context.Context, target ports.DeviceTarget) (ports.DevicePort, error) {
	backend := strings.ToLower(strings.TrimSpace(target.Backend))
	if backend == "" {
		backend = DeviceBackendREST
	}
	switch backend {
	case DeviceBackendREST:
		if strings.TrimSpace(target.Host) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("device host is required for the rest backend")
		}
		if strings.TrimSpace(target.Username) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("device username is required for the rest backend")
		}
		log.Ctx(ctx).Debug().Str("host", target.Host).Bool("tls", target.TLS).Msg("connecting to device")
		return NewDeviceRESTAdapter(target.Host, target.Username, target.Password, target.TLS, target.InsecureSkipVerify, target.TimeoutSec), nil
	case DeviceBackendFile:
		if strings.TrimSpace(target.StateFile) == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("device state file is required for the file backend")
		}
		log.Ctx(ctx).Debug().Str("state_file", target.StateFile).Msg("opening file device")
		device, err := LoadDeviceFileAdapter(target.StateFile)
		if err != nil {
			return nil, err
		}
		return device, nil
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported device backend: %s", target.Backend))
	}
}

var _ ports.DeviceConnectorPort = DeviceConnectorAdapter{}
