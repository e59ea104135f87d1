package core

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rosync/internal/schema"
	"rosync/internal/types"
)

func syncRequest(path string, policies types.Policies, data ...types.RawEntry) SyncRequest {
	return SyncRequest{Path: types.ParsePath(path), Data: data, Policies: policies}
}

func removeAbsent() types.Policies {
	return types.Policies{AbsentEntries: types.AbsentEntriesRemove}
}

func TestReconcileCreatesAndUpdatesThenConverges(t *testing.T) {
	ctx := context.Background()
	device := newFakeDevice("7.16")
	device.seed("test keyed", types.FieldsOf("name", "a", "mtu", 1500))
	engine := NewEngine(testRegistry(), device)

	req := syncRequest("test keyed", types.Policies{},
		types.RawOf("name", "a", "mtu", 9000),
		types.RawOf("name", "b", "comment", "new"),
	)
	result, err := engine.Reconcile(ctx, req)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, types.PlanSummary{Updates: 1, Creations: 1}, result.Plan.Summary())
	require.Len(t, result.NewData, 2)
	assert.Equal(t, "*2", result.NewData[1].ID)
	assert.Equal(t, []string{"a", "b"}, device.names("test keyed"))

	calls := len(device.calls)
	again, err := engine.Reconcile(ctx, req)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.True(t, again.Plan.IsEmpty())
	assert.Len(t, device.calls, calls)
	assert.Equal(t, again.OldData, again.NewData)
}

func TestReconcileDryRunDoesNotMutate(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test keyed", types.FieldsOf("name", "a"))
	engine := NewEngine(testRegistry(), device)

	req := syncRequest("test keyed", removeAbsent(), types.RawOf("name", "b"))
	req.DryRun = true
	result, err := engine.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Empty(t, device.calls)
	assert.Equal(t, types.PlanSummary{Removals: 1, Creations: 1}, result.Plan.Summary())

	require.Len(t, result.NewData, 1)
	assert.Empty(t, result.NewData[0].ID)
	name, _ := result.NewData[0].Fields.Get("name")
	assert.Equal(t, types.Text("b"), name)
	assert.Equal(t, []string{"a"}, device.names("test keyed"))
}

func TestReconcileExecutionOrder(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test keyed",
		types.FieldsOf("name", "old"),
		types.FieldsOf("name", "a", "mtu", 1500),
	)
	engine := NewEngine(testRegistry(), device)

	_, err := engine.Reconcile(context.Background(), syncRequest("test keyed", removeAbsent(),
		types.RawOf("name", "c"),
		types.RawOf("name", "a", "mtu", 9000),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"remove [*1]",
		"update *2 mtu=9000",
		`add name="c"`,
	}, device.calls)
}

func TestReconcileEnsureOrder(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test keyed",
		types.FieldsOf("name", "A"),
		types.FieldsOf("name", "B"),
		types.FieldsOf("name", "C"),
	)
	engine := NewEngine(testRegistry(), device)

	policies := removeAbsent()
	policies.EnsureOrder = true
	result, err := engine.Reconcile(context.Background(), syncRequest("test keyed", policies,
		types.RawOf("name", "C"),
		types.RawOf("name", "B"),
		types.RawOf("name", "A"),
	))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Plan.Summary().Moves)
	assert.Equal(t, []string{"move *3 *1", "move *2 *1"}, device.calls)
	assert.Equal(t, []string{"C", "B", "A"}, device.names("test keyed"))
}

func TestReconcileEnsureOrderMovesCreatedEntries(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test keyed", types.FieldsOf("name", "A"))
	engine := NewEngine(testRegistry(), device)

	policies := removeAbsent()
	policies.EnsureOrder = true
	_, err := engine.Reconcile(context.Background(), syncRequest("test keyed", policies,
		types.RawOf("name", "B"),
		types.RawOf("name", "A"),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{`add name="B"`, "move *2 *1"}, device.calls)
	assert.Equal(t, []string{"B", "A"}, device.names("test keyed"))
}

func TestReconcileEnsureOrderRequiresRemoval(t *testing.T) {
	engine := NewEngine(testRegistry(), newFakeDevice("7.16"))
	_, err := engine.Reconcile(context.Background(), syncRequest("test keyed", types.Policies{EnsureOrder: true}, types.RawOf("name", "a")))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReconcileFixedEntries(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test fixed", types.FieldsOf("name", "ether1", "mtu", 1500))
	engine := NewEngine(testRegistry(), device)

	result, err := engine.Reconcile(context.Background(), syncRequest("test fixed", types.Policies{}, types.RawOf("name", "ether1", "mtu", 9000)))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Plan.Summary().Updates)

	_, err = engine.Reconcile(context.Background(), syncRequest("test fixed", types.Policies{}, types.RawOf("name", "ether2")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot create entry")

	_, err = engine.Reconcile(context.Background(), syncRequest("test fixed", removeAbsent(), types.RawOf("name", "ether2")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Cannot remove entry")
}

func TestReconcileVersionSelection(t *testing.T) {
	old := NewEngine(testRegistry(), newFakeDevice("6.49.10"))
	_, err := old.Reconcile(context.Background(), syncRequest("test versioned", types.Policies{}, types.RawOf("name", "a")))
	require.Error(t, err)
	assert.True(t, IsVersionUnsupported(err))
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "only on 7")

	device := newFakeDevice("7.1beta4")
	current := NewEngine(testRegistry(), device)
	result, err := current.Reconcile(context.Background(), syncRequest("test versioned", types.Policies{}, types.RawOf("name", "a")))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Plan.Summary().Creations)
}

func TestReconcileRejectsUnsupportedPaths(t *testing.T) {
	engine := NewEngine(testRegistry(), newFakeDevice("7.16"))

	tests := []struct {
		path string
		code errbuilder.ErrCode
	}{
		{"test opaque", errbuilder.CodeFailedPrecondition},
		{"test partial", errbuilder.CodeFailedPrecondition},
		{"test missing", errbuilder.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			_, err := engine.Reconcile(context.Background(), syncRequest(tt.path, types.Policies{}, types.RawOf("name", "a")))
			require.Error(t, err)
			assert.Equal(t, tt.code, errbuilder.CodeOf(err))
			assert.False(t, IsVersionUnsupported(err))
		})
	}
}

func TestReconcileRestrict(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test keyed",
		types.FieldsOf("name", "a", "comment", "managed"),
		types.FieldsOf("name", "b", "comment", "other"),
	)
	engine := NewEngine(testRegistry(), device)

	req := syncRequest("test keyed", removeAbsent(), types.RawOf("name", "c", "comment", "managed"))
	req.Restrict = []types.RestrictRule{{Field: "comment", Values: []types.Value{types.Text("managed")}}}
	result, err := engine.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, types.PlanSummary{Removals: 1, Creations: 1}, result.Plan.Summary())
	assert.Equal(t, "*1", result.Plan.Removals[0].ID)
	assert.Equal(t, []string{"b", "c"}, device.names("test keyed"))

	req.Data = []types.RawEntry{types.RawOf("name", "d", "comment", "other")}
	_, err = engine.Reconcile(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match the restrict criteria")

	req.Restrict = []types.RestrictRule{{Field: "colour"}}
	_, err = engine.Reconcile(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReconcileSingleValue(t *testing.T) {
	device := newFakeDevice("7.16")
	device.entries["test single"] = []types.Entry{{Fields: types.FieldsOf("name", "MikroTik", "enabled", false, "uptime", "1h")}}
	engine := NewEngine(testRegistry(), device)

	result, err := engine.Reconcile(context.Background(), syncRequest("test single", types.Policies{}, types.RawOf("name", "router1")))
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, []string{`update  name="router1"`}, device.calls)
	require.Len(t, result.NewData, 1)
	name, _ := result.NewData[0].Fields.Get("name")
	assert.Equal(t, types.Text("router1"), name)

	_, err = engine.Reconcile(context.Background(), syncRequest("test single", types.Policies{},
		types.RawOf("name", "a"), types.RawOf("name", "b")))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	device.entries["test single"] = nil
	_, err = engine.Reconcile(context.Background(), syncRequest("test single", types.Policies{}, types.RawOf("name", "a")))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestReconcileStratified(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test stratified",
		types.FieldsOf("chain", "forward", "action", "accept", "name", "r1"),
		types.FieldsOf("chain", "input", "action", "drop"),
	)
	engine := NewEngine(testRegistry(), device)

	result, err := engine.Reconcile(context.Background(), syncRequest("test stratified", removeAbsent(),
		types.RawOf("chain", "forward", "action", "accept", "name", "r1"),
		types.RawOf("chain", "forward", "action", "drop"),
	))
	require.NoError(t, err)
	assert.Equal(t, types.PlanSummary{Removals: 1, Creations: 1}, result.Plan.Summary())
	assert.Equal(t, "*2", result.Plan.Removals[0].ID)
	assert.Equal(t, []string{"remove [*2]", `add chain="forward", action="drop"`}, device.calls)

	_, err = engine.Reconcile(context.Background(), syncRequest("test stratified", removeAbsent(), types.RawOf("action", "drop")))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestReconcileStopsOnDeviceFailure(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test keyed", types.FieldsOf("name", "old"))
	device.failOn = "add"
	engine := NewEngine(testRegistry(), device)

	_, err := engine.Reconcile(context.Background(), syncRequest("test keyed", removeAbsent(), types.RawOf("name", "new")))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "failed to create entry")
	assert.Empty(t, device.names("test keyed"))
}

func TestReconcileFixedEntriesDryRun(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test fixed", types.FieldsOf("name", "ether1", "mtu", 1500))
	engine := NewEngine(testRegistry(), device)

	req := syncRequest("test fixed", removeAbsent(), types.RawOf("name", "ether2"))
	req.DryRun = true
	_, err := engine.Reconcile(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Empty(t, device.calls)
	assert.Equal(t, []string{"ether1"}, device.names("test fixed"))
}

func TestReconcileStratifiedReadOnlyMismatch(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("test stratified", types.FieldsOf("chain", "forward", "action", "accept", "packets", 100))
	engine := NewEngine(testRegistry(), device)
	policies := types.Policies{ReadOnly: types.ReadOnlyValidate, AbsentEntries: types.AbsentEntriesRemove}

	result, err := engine.Reconcile(context.Background(), syncRequest("test stratified", policies,
		types.RawOf("chain", "forward", "action", "accept", "packets", 100)))
	require.NoError(t, err)
	assert.False(t, result.Changed)

	_, err = engine.Reconcile(context.Background(), syncRequest("test stratified", policies,
		types.RawOf("chain", "forward", "action", "accept", "packets", 50)))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), `Read-only key "packets" with value 50 cannot be set on a new entry at index 0.`)
	assert.Empty(t, device.calls)
	assert.Len(t, device.entries["test stratified"], 1)
}

func TestReconcileKeyedReadOnlyOnNewEntry(t *testing.T) {
	device := newFakeDevice("7.16")
	engine := NewEngine(testRegistry(), device)

	_, err := engine.Reconcile(context.Background(), syncRequest("test keyed", types.Policies{ReadOnly: types.ReadOnlyValidate},
		types.RawOf("name", "a", "running", true)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Read-only key "running" with value true cannot be set on a new entry at index 0.`)
	assert.Empty(t, device.calls)
}

func TestReconcileDefaultRegistryAddsAddress(t *testing.T) {
	device := newFakeDevice("7.16")
	device.seed("ip address", types.FieldsOf("address", "1.1.1.1/32", "interface", "ether1", "disabled", false))
	engine := NewEngine(schema.Default(), device)

	req := syncRequest("ip address", types.Policies{},
		types.RawOf("address", "1.1.1.1/32", "interface", "ether1", "disabled", "no"),
		types.RawOf("address", "2.2.2.2/32", "interface", "ether1"),
	)
	result, err := engine.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, types.PlanSummary{Creations: 1}, result.Plan.Summary())
	assert.Equal(t, []string{`add address="2.2.2.2/32", interface="ether1"`}, device.calls)

	again, err := engine.Reconcile(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, again.Changed)
	assert.Len(t, device.calls, 1)
}

func TestReconcileDefaultRegistryIPSettings(t *testing.T) {
	device := newFakeDevice("7.16")
	device.entries["ip settings"] = []types.Entry{{Fields: types.FieldsOf(
		"accept-redirects", false,
		"icmp-rate-limit", 10,
		"icmp-rate-mask", "0x1818",
		"max-neighbor-entries", 8192,
		"rp-filter", false,
		"tcp-syncookies", false,
		"ipv4-fast-path-active", true,
	)}}
	engine := NewEngine(schema.Default(), device)

	for _, content := range []types.EntriesContentPolicy{types.EntriesContentIgnore, types.EntriesContentRemove} {
		t.Run(string(content), func(t *testing.T) {
			device.calls = nil
			device.entries["ip settings"][0].Fields.Set("icmp-rate-limit", types.Int(10))

			req := syncRequest("ip settings", types.Policies{EntriesContent: content}, types.RawOf("icmp-rate-limit", 20))
			result, err := engine.Reconcile(context.Background(), req)
			require.NoError(t, err)
			assert.True(t, result.Changed)
			require.Len(t, result.Plan.Updates, 1)
			assert.Equal(t, []string{"icmp-rate-limit"}, result.Plan.Updates[0].Changes.Keys())
			assert.Equal(t, []string{"update  icmp-rate-limit=20"}, device.calls)

			again, err := engine.Reconcile(context.Background(), req)
			require.NoError(t, err)
			assert.False(t, again.Changed)
			assert.Len(t, device.calls, 1)
		})
	}
}
