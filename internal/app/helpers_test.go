package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"rosync/internal/adapters"
	"rosync/internal/ports"
)

type workspace struct {
	Dir         string
	DesiredPath string
	StatePath   string
}

func newWorkspace(t *testing.T) workspace {
	t.Helper()
	dir := t.TempDir()
	ws := workspace{
		Dir:         dir,
		DesiredPath: filepath.Join(dir, "desired-state.yaml"),
		StatePath:   filepath.Join(dir, "device-state.yaml"),
	}
	copyFile(t, filepath.Join("..", "..", "fixtures", "desired-state.yaml"), ws.DesiredPath)
	copyFile(t, filepath.Join("..", "..", "fixtures", "device-state.yaml"), ws.StatePath)
	return ws
}

func (w workspace) target() ports.DeviceTarget {
	return ports.DeviceTarget{Backend: adapters.DeviceBackendFile, StateFile: w.StatePath}
}

func copyFile(t *testing.T, from, to string) {
	t.Helper()
	data, err := os.ReadFile(from)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(to, data, 0644))
}

func newTestService(t *testing.T) Service {
	t.Helper()
	service := NewService()
	clock := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	service.Clock = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	next := 0
	service.NewID = func() string {
		next++
		return fmt.Sprintf("run-%d", next)
	}
	return service
}
