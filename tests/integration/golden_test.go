package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"rosync/internal/adapters"
	"rosync/internal/app"
	"rosync/internal/ports"
	"rosync/internal/types"
	"rosync/tests/testutil"
)

// syncFixtures copies the sample device state into a temp dir and
// reconciles it against the sample desired state.
func syncFixtures(t *testing.T, dryRun bool) (string, app.SyncResult) {
	t.Helper()
	root := testutil.RepoRoot(t)
	statePath := testutil.CopyFixture(t, "device-state.yaml")

	result, err := app.NewService().Sync(t.Context(), app.SyncRequest{
		DesiredPath: filepath.Join(root, "fixtures", "desired-state.yaml"),
		Target:      ports.DeviceTarget{Backend: "file", StateFile: statePath},
		DryRun:      dryRun,
	})
	require.NoError(t, err)
	return statePath, result
}

// TestGoldenSync converges the sample device and compares the resulting
// state file against the committed golden state. The comparison is
// semantic: field order inside an entry does not matter, entry order does.
//
// To update the golden file after an intentional change, delete
// testdata/golden/device-state.yaml and re-run the test.
func TestGoldenSync(t *testing.T) {
	root := testutil.RepoRoot(t)
	goldenPath := filepath.Join(root, "tests", "integration", "testdata", "golden", "device-state.yaml")

	statePath, result := syncFixtures(t, false)
	assert.True(t, result.Changed)

	device, err := adapters.LoadDeviceFileAdapter(statePath)
	require.NoError(t, err)
	actual := device.Snapshot()

	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		data, err := yaml.Marshal(actual)
		require.NoError(t, err)
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755))
		require.NoError(t, os.WriteFile(goldenPath, data, 0o644))
		t.Logf("golden file written: %s (commit it)", goldenPath)
		return
	}

	data, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	var expected adapters.DeviceState
	require.NoError(t, yaml.Unmarshal(data, &expected))
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Fatalf("golden mismatch (-want +got), delete the golden file and re-run to regenerate:\n%s", diff)
	}
}

// TestGoldenSyncStructure checks properties of a run that hold regardless
// of the exact golden content.
func TestGoldenSyncStructure(t *testing.T) {
	statePath, first := syncFixtures(t, false)

	t.Run("tasks run in file order", func(t *testing.T) {
		var paths []string
		for _, task := range first.Tasks {
			paths = append(paths, task.Path)
		}
		assert.Equal(t, []string{"system identity", "ip address", "ip firewall filter"}, paths)
		assert.Equal(t, "7.16.1 (stable)", first.Version)
	})

	t.Run("every task changed the device", func(t *testing.T) {
		for _, task := range first.Tasks {
			assert.True(t, task.Changed, "task %s", task.Path)
			assert.NotEmpty(t, task.RunID)
		}
	})

	t.Run("dynamic entries are never touched", func(t *testing.T) {
		device, err := adapters.LoadDeviceFileAdapter(statePath)
		require.NoError(t, err)
		entries, err := device.List(t.Context(), types.ParsePath("ip address"))
		require.NoError(t, err)
		var dynamic []string
		for _, entry := range entries {
			if entry.Dynamic {
				dynamic = append(dynamic, entry.ID)
			}
		}
		assert.Equal(t, []string{"*3"}, dynamic)
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		before, err := os.ReadFile(statePath)
		require.NoError(t, err)
		result, err := app.NewService().Sync(t.Context(), app.SyncRequest{
			DesiredPath: filepath.Join(testutil.RepoRoot(t), "fixtures", "desired-state.yaml"),
			Target:      ports.DeviceTarget{Backend: "file", StateFile: statePath},
		})
		require.NoError(t, err)
		assert.False(t, result.Changed)
		for _, task := range result.Tasks {
			assert.True(t, task.Result.Plan.IsEmpty(), "task %s", task.Path)
		}
		after, err := os.ReadFile(statePath)
		require.NoError(t, err)
		assert.Equal(t, string(before), string(after))
	})
}

// TestGoldenSyncDryRun verifies a dry run predicts the golden state
// without writing it.
func TestGoldenSyncDryRun(t *testing.T) {
	root := testutil.RepoRoot(t)
	statePath, result := syncFixtures(t, true)
	assert.True(t, result.Changed)

	seeded, err := os.ReadFile(filepath.Join(root, "fixtures", "device-state.yaml"))
	require.NoError(t, err)
	current, err := os.ReadFile(statePath)
	require.NoError(t, err)
	assert.Equal(t, string(seeded), string(current))

	identity := result.Tasks[0].Result.NewData
	require.Len(t, identity, 1)
	name, _ := identity[0].Fields.Get("name")
	assert.Equal(t, types.Text("edge-router"), name)
}
