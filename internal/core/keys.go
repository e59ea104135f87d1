package core

import (
	"fmt"
	"strings"

	"rosync/internal/schema"
	"rosync/internal/types"
)

const absentKeyPart = "\x00"

// fieldsKey identifies an entry by the values of keys.
func fieldsKey(fields types.Fields, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := fields.Get(key)
		if !ok {
			parts = append(parts, absentKeyPart)
			continue
		}
		canonical := value.Canonical()
		parts = append(parts, canonical.Kind().String()+":"+canonical.String())
	}
	return strings.Join(parts, "\x1f")
}

func desiredKey(desired types.Desired, keys []string) string {
	return fieldsKey(setFields(desired), keys)
}

// setFields returns the set values of desired, skipping unset fields.
func setFields(desired types.Desired) types.Fields {
	out := types.Fields{}
	for _, name := range desired.Keys() {
		state, _ := desired.Get(name)
		if value, ok := state.Value(); ok {
			out.Set(name, value)
		}
	}
	return out
}

func formatKey(fields types.Fields, keys []string) string {
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		value, ok := fields.Get(key)
		if !ok {
			parts = append(parts, key+"=<absent>")
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, value.Quoted()))
	}
	return strings.Join(parts, ", ")
}

func checkPrimaryKeys(keys []string, desired []types.Desired) error {
	seen := map[string]int{}
	for i, entry := range desired {
		for _, key := range keys {
			state, ok := entry.Get(key)
			if !ok || state.IsUnset() {
				return invalidEntry("Every element in data must contain %q. For example, the element at index #%d does not provide it.", key, i)
			}
		}
		id := desiredKey(entry, keys)
		if first, dup := seen[id]; dup {
			return invalidEntry("Every primary key combination must be unique. The element at index #%d has the same key (%s) as the element at index #%d.",
				i, formatKey(setFields(entry), keys), first)
		}
		seen[id] = i
	}
	return nil
}

func checkStratifyKeys(keys []string, desired []types.Desired) error {
	for i, entry := range desired {
		for _, key := range keys {
			state, ok := entry.Get(key)
			if !ok || state.IsUnset() {
				return invalidEntry("Every element in data must contain %q. For example, the element at index #%d does not provide it.", key, i)
			}
		}
	}
	return nil
}

// creationFields is what gets sent to the device to create desired.
// Unset fields are written as their remove value or left out. A read-only
// field with a value cannot be satisfied by a new entry.
func creationFields(resource schema.Resource, desired types.Desired, forText string) (types.Fields, error) {
	out := types.Fields{}
	for _, name := range desired.Keys() {
		state, _ := desired.Get(name)
		field := resource.Fields[name]
		if field.ReadOnly {
			if value, ok := state.Value(); ok {
				return types.Fields{}, invalidEntry("Read-only key %q with value %s cannot be set on a new entry%s.", name, value.Quoted(), forText)
			}
			continue
		}
		if value, ok := state.Value(); ok {
			out.Set(name, value)
			continue
		}
		if field.RemoveValue != nil {
			out.Set(name, *field.RemoveValue)
		}
	}
	return out, nil
}
