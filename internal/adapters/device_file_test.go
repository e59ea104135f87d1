package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosync/internal/ports"
	"rosync/internal/types"
)

func copyFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "fixtures", name))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func fieldValue(t *testing.T, entry types.Entry, name string) types.Value {
	t.Helper()
	value, ok := entry.Fields.Get(name)
	require.True(t, ok, "entry %s has no field %s", entry.ID, name)
	return value
}

func TestDeviceFileAdapterLoad(t *testing.T) {
	adapter, err := LoadDeviceFileAdapter(copyFixture(t, "device-state.yaml"))
	require.NoError(t, err)

	version, err := adapter.Version(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "7.16.1 (stable)", version)

	entries, err := adapter.List(t.Context(), types.ParsePath("ip address"))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "*1", entries[0].ID)
	assert.True(t, entries[2].Dynamic)
	assert.Equal(t, types.Bool(false), fieldValue(t, entries[0], "disabled"))
	assert.Equal(t, []string{"address", "interface", "network", "disabled"}, entries[0].Fields.Keys())

	missing, err := adapter.List(t.Context(), types.ParsePath("ip route"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestDeviceFileAdapterMutationsPersist(t *testing.T) {
	path := copyFixture(t, "device-state.yaml")
	adapter, err := LoadDeviceFileAdapter(path)
	require.NoError(t, err)
	ctx := t.Context()
	filter := types.ParsePath("ip firewall filter")

	id, err := adapter.Add(ctx, filter, types.FieldsOf("chain", "forward", "action", "drop"))
	require.NoError(t, err)
	assert.Equal(t, "*A", id)

	changes := types.Changes{}
	changes.Set("action", types.SetTo(types.Text("reject")))
	changes.Set("in-interface", types.Unset())
	require.NoError(t, adapter.Update(ctx, filter, "*4", changes))
	require.NoError(t, adapter.Remove(ctx, filter, "*6"))
	require.NoError(t, adapter.Invoke(ctx, filter, "move", types.FieldsOf("numbers", id, "destination", "*4")))

	reloaded, err := LoadDeviceFileAdapter(path)
	require.NoError(t, err)
	entries, err := reloaded.List(ctx, filter)
	require.NoError(t, err)
	var ids []string
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	assert.Equal(t, []string{"*A", "*4", "*5"}, ids)
	assert.Equal(t, types.Text("reject"), fieldValue(t, entries[1], "action"))
	assert.False(t, entries[1].Fields.Has("in-interface"))
	assert.Equal(t, 11, reloaded.Snapshot().NextID)
}

func TestDeviceFileAdapterSingleValueUpdate(t *testing.T) {
	adapter, err := LoadDeviceFileAdapter(copyFixture(t, "device-state.yaml"))
	require.NoError(t, err)
	identity := types.ParsePath("system identity")

	changes := types.Changes{}
	changes.Set("name", types.SetTo(types.Text("core-1")))
	require.NoError(t, adapter.Update(t.Context(), identity, "", changes))

	entries, err := adapter.List(t.Context(), identity)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.Text("core-1"), fieldValue(t, entries[0], "name"))
}

func TestDeviceFileAdapterSkipsEquivalentUpdate(t *testing.T) {
	path := copyFixture(t, "device-state.yaml")
	adapter, err := LoadDeviceFileAdapter(path)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	addresses := types.ParsePath("ip address")

	changes := types.Changes{}
	changes.Set("disabled", types.SetTo(types.Text("no")))
	require.NoError(t, adapter.Update(t.Context(), addresses, "*1", changes))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	entries, err := adapter.List(t.Context(), addresses)
	require.NoError(t, err)
	assert.Equal(t, types.Bool(false), fieldValue(t, entries[0], "disabled"))
}

func TestDeviceFileAdapterErrors(t *testing.T) {
	adapter, err := LoadDeviceFileAdapter(copyFixture(t, "device-state.yaml"))
	require.NoError(t, err)
	ctx := t.Context()
	filter := types.ParsePath("ip firewall filter")

	err = adapter.Remove(ctx, filter, "*99")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	err = adapter.Invoke(ctx, filter, "reset-counters", types.Fields{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	_, err = LoadDeviceFileAdapter(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestDeviceConnectorAdapter(t *testing.T) {
	connector := NewDeviceConnectorAdapter()
	ctx := t.Context()

	device, err := connector.Connect(ctx, ports.DeviceTarget{Backend: "file", StateFile: copyFixture(t, "device-state.yaml")})
	require.NoError(t, err)
	assert.IsType(t, DeviceFileAdapter{}, device)

	_, err = connector.Connect(ctx, ports.DeviceTarget{Backend: "rest"})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = connector.Connect(ctx, ports.DeviceTarget{Backend: "telnet"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported device backend")
}
