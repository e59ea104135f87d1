package core

import (
	"context"
	"fmt"

	"rosync/internal/schema"
	"rosync/internal/types"
)

// fakeDevice keeps entries in memory and records every mutating call.
type fakeDevice struct {
	version string
	entries map[string][]types.Entry
	nextID  int
	calls   []string
	failOn  string
}

func newFakeDevice(version string) *fakeDevice {
	return &fakeDevice{version: version, entries: map[string][]types.Entry{}, nextID: 1}
}

func (d *fakeDevice) seed(path string, entries ...types.Fields) {
	for _, fields := range entries {
		d.entries[path] = append(d.entries[path], types.Entry{ID: d.newID(), Fields: fields})
	}
}

func (d *fakeDevice) newID() string {
	id := fmt.Sprintf("*%X", d.nextID)
	d.nextID++
	return id
}

func (d *fakeDevice) fail(call string) error {
	if d.failOn != "" && d.failOn == call {
		return fmt.Errorf("device refused %s", call)
	}
	return nil
}

func (d *fakeDevice) Version(context.Context) (string, error) {
	return d.version, nil
}

func (d *fakeDevice) List(_ context.Context, path types.Path) ([]types.Entry, error) {
	out := make([]types.Entry, 0, len(d.entries[path.String()]))
	for _, entry := range d.entries[path.String()] {
		out = append(out, entry.Clone())
	}
	return out, nil
}

func (d *fakeDevice) Add(_ context.Context, path types.Path, fields types.Fields) (string, error) {
	d.calls = append(d.calls, "add "+types.FormatFields(fields))
	if err := d.fail("add"); err != nil {
		return "", err
	}
	id := d.newID()
	d.entries[path.String()] = append(d.entries[path.String()], types.Entry{ID: id, Fields: fields.Clone()})
	return id, nil
}

func (d *fakeDevice) Update(_ context.Context, path types.Path, id string, changes types.Changes) error {
	d.calls = append(d.calls, fmt.Sprintf("update %s %s", id, types.FormatChanges(changes)))
	if err := d.fail("update"); err != nil {
		return err
	}
	entries := d.entries[path.String()]
	for i := range entries {
		if id != "" && entries[i].ID != id {
			continue
		}
		for _, name := range changes.Keys() {
			state, _ := changes.Get(name)
			if value, ok := state.Value(); ok {
				entries[i].Fields.Set(name, value)
			} else {
				entries[i].Fields.Delete(name)
			}
		}
		return nil
	}
	return fmt.Errorf("no such item %s", id)
}

func (d *fakeDevice) Remove(_ context.Context, path types.Path, ids ...string) error {
	d.calls = append(d.calls, fmt.Sprintf("remove %v", ids))
	if err := d.fail("remove"); err != nil {
		return err
	}
	drop := map[string]bool{}
	for _, id := range ids {
		drop[id] = true
	}
	var kept []types.Entry
	for _, entry := range d.entries[path.String()] {
		if !drop[entry.ID] {
			kept = append(kept, entry)
		}
	}
	d.entries[path.String()] = kept
	return nil
}

func (d *fakeDevice) Invoke(_ context.Context, path types.Path, command string, args types.Fields) error {
	numbers, _ := args.Get("numbers")
	destination, _ := args.Get("destination")
	d.calls = append(d.calls, fmt.Sprintf("%s %s %s", command, numbers, destination))
	if err := d.fail(command); err != nil {
		return err
	}
	entries := d.entries[path.String()]
	from, to := -1, -1
	for i, entry := range entries {
		if entry.ID == numbers.String() {
			from = i
		}
	}
	if from < 0 {
		return fmt.Errorf("no such item %s", numbers)
	}
	moved := entries[from]
	entries = append(entries[:from], entries[from+1:]...)
	for i, entry := range entries {
		if entry.ID == destination.String() {
			to = i
		}
	}
	if to < 0 {
		return fmt.Errorf("no such item %s", destination)
	}
	entries = append(entries[:to], append([]types.Entry{moved}, entries[to:]...)...)
	d.entries[path.String()] = entries
	return nil
}

func (d *fakeDevice) names(path string) []string {
	var out []string
	for _, entry := range d.entries[path] {
		value, _ := entry.Fields.Get("name")
		out = append(out, value.String())
	}
	return out
}

func comment() schema.Field {
	return schema.Field{CanDisable: true, RemoveValue: schema.Str("")}
}

func testRegistry() *schema.Registry {
	keyed := schema.Resource{
		Mode: schema.ModeKeyed,
		Keys: []string{"name"},
		Fields: map[string]schema.Field{
			"name":     {},
			"comment":  comment(),
			"disabled": {Default: schema.Flag(false)},
			"mtu":      {Default: schema.Num(1500)},
			"note":     {},
			"running":  {ReadOnly: true},
			"secret":   {WriteOnly: true},
		},
		FullyUnderstood: true,
	}
	return schema.MustNewRegistry(map[string]schema.Selector{
		"test keyed": schema.Unversioned(keyed),
		"test stratified": schema.Unversioned(schema.Resource{
			Mode: schema.ModeStratified,
			Keys: []string{"chain"},
			Fields: map[string]schema.Field{
				"chain":    {Required: true},
				"action":   {Default: schema.Str("accept")},
				"name":     {},
				"comment":  comment(),
				"disabled": {Default: schema.Flag(false)},
				"packets":  {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"test single": schema.Unversioned(schema.Resource{
			Mode: schema.ModeSingleValue,
			Fields: map[string]schema.Field{
				"name":    {Default: schema.Str("MikroTik")},
				"enabled": {Default: schema.Flag(false)},
				"uptime":  {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"test fixed": schema.Unversioned(schema.Resource{
			Mode:         schema.ModeKeyed,
			Keys:         []string{"name"},
			FixedEntries: true,
			Fields: map[string]schema.Field{
				"name": {},
				"mtu":  {Default: schema.Num(1500)},
			},
			FullyUnderstood: true,
		}),
		"test versioned": schema.Versioned(
			schema.Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: schema.Supported(keyed)},
			schema.Range{Op: types.ConstraintOpAny, Outcome: schema.Unsupported("only on 7")},
		),
		"test opaque": schema.Unversioned(schema.Resource{
			Mode:   schema.ModeIdentifierOnly,
			Fields: map[string]schema.Field{"name": {}},
		}),
		"test partial": schema.Unversioned(schema.Resource{
			Mode:   schema.ModeKeyed,
			Keys:   []string{"name"},
			Fields: map[string]schema.Field{"name": {}},
		}),
	})
}
