package adapters

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"rosync/internal/ports"
	"rosync/internal/types"
)

// DeviceState is the on-disk form of a file-backed device.
type DeviceState struct {
	Version string                   `yaml:"version"`
	NextID  int                      `yaml:"next_id"`
	Paths   map[string][]types.Entry `yaml:"paths"`
}

// DeviceFileAdapter simulates a device with a YAML state file. Every
// mutation is written back before it returns.
type DeviceFileAdapter struct {
	Path string

	mu    *sync.Mutex
	state *DeviceState
}

func LoadDeviceFileAdapter(path string) (DeviceFileAdapter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DeviceFileAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("device state file not found: %s", path)).
			WithCause(err)
	}
	var state DeviceState
	if err := yaml.Unmarshal(data, &state); err != nil {
		return DeviceFileAdapter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse device state yaml").
			WithCause(err)
	}
	if state.Paths == nil {
		state.Paths = map[string][]types.Entry{}
	}
	if state.NextID <= 0 {
		state.NextID = nextFreeID(state)
	}
	return DeviceFileAdapter{Path: path, mu: &sync.Mutex{}, state: &state}, nil
}

func nextFreeID(state DeviceState) int {
	next := 1
	for _, entries := range state.Paths {
		for _, entry := range entries {
			var n int
			if _, err := fmt.Sscanf(entry.ID, "*%X", &n); err == nil && n >= next {
				next = n + 1
			}
		}
	}
	return next
}

func (a DeviceFileAdapter) Version(context.Context) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Version == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("device state file has no version")
	}
	return a.state.Version, nil
}

// List reports values the way the device API does: each stored value is
// read back in its canonical form, so "no" lists as false.
func (a DeviceFileAdapter) List(_ context.Context, path types.Path) ([]types.Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	entries := a.state.Paths[path.String()]
	out := make([]types.Entry, 0, len(entries))
	for _, entry := range entries {
		listed := types.Entry{ID: entry.ID, Dynamic: entry.Dynamic, Builtin: entry.Builtin}
		for _, name := range entry.Fields.Keys() {
			value, _ := entry.Fields.Get(name)
			listed.Fields.Set(name, value.Canonical())
		}
		out = append(out, listed)
	}
	return out, nil
}

func (a DeviceFileAdapter) Add(_ context.Context, path types.Path, fields types.Fields) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := fmt.Sprintf("*%X", a.state.NextID)
	a.state.NextID++
	key := path.String()
	a.state.Paths[key] = append(a.state.Paths[key], types.Entry{ID: id, Fields: fields.Clone()})
	return id, a.persist()
}

func (a DeviceFileAdapter) Update(_ context.Context, path types.Path, id string, changes types.Changes) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	entries := a.state.Paths[path.String()]
	idx := -1
	for i := range entries {
		if id == "" || entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no such item %q at %q", id, path.String()))
	}
	before := entries[idx].Fields.Clone()
	for _, name := range changes.Keys() {
		state, _ := changes.Get(name)
		if value, ok := state.Value(); ok {
			entries[idx].Fields.Set(name, value)
			continue
		}
		entries[idx].Fields.Delete(name)
	}
	if before.Equal(entries[idx].Fields) {
		return nil
	}
	return a.persist()
}

func (a DeviceFileAdapter) Remove(_ context.Context, path types.Path, ids ...string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	key := path.String()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]types.Entry, 0, len(a.state.Paths[key]))
	for _, entry := range a.state.Paths[key] {
		if drop[entry.ID] {
			delete(drop, entry.ID)
			continue
		}
		kept = append(kept, entry)
	}
	for id := range drop {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no such item %q at %q", id, key))
	}
	a.state.Paths[key] = kept
	return a.persist()
}

// Invoke supports the move command: numbers is placed directly before
// destination.
func (a DeviceFileAdapter) Invoke(_ context.Context, path types.Path, command string, args types.Fields) error {
	if command != "move" {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("unsupported command %q", command))
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	key := path.String()
	numbers, _ := args.Get("numbers")
	destination, _ := args.Get("destination")

	entries := append([]types.Entry(nil), a.state.Paths[key]...)
	from := indexOfID(entries, numbers.String())
	if from < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no such item %q at %q", numbers.String(), key))
	}
	moved := entries[from]
	entries = append(entries[:from], entries[from+1:]...)
	to := indexOfID(entries, destination.String())
	if to < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("no such item %q at %q", destination.String(), key))
	}
	entries = append(entries[:to], append([]types.Entry{moved}, entries[to:]...)...)
	a.state.Paths[key] = entries
	return a.persist()
}

// Snapshot returns a copy of the current state.
func (a DeviceFileAdapter) Snapshot() DeviceState {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := DeviceState{Version: a.state.Version, NextID: a.state.NextID, Paths: map[string][]types.Entry{}}
	for key, entries := range a.state.Paths {
		copied := make([]types.Entry, 0, len(entries))
		for _, entry := range entries {
			copied = append(copied, entry.Clone())
		}
		out.Paths[key] = copied
	}
	return out
}

func indexOfID(entries []types.Entry, id string) int {
	for i, entry := range entries {
		if entry.ID == id {
			return i
		}
	}
	return -1
}

func (a DeviceFileAdapter) persist() error {
	data, err := yaml.Marshal(a.state)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode device state").
			WithCause(err)
	}
	tmp := a.Path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create device state directory").
			WithCause(err)
	}
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write device state").
			WithCause(err)
	}
	if err := os.Rename(tmp, a.Path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace device state").
			WithCause(err)
	}
	return nil
}

var _ ports.DevicePort = DeviceFileAdapter{}
