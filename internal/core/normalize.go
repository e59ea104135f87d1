package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/schema"
	"rosync/internal/types"
)

func invalidEntry(format string, args ...any) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf(format, args...))
}

// NormalizeEntry validates one desired entry against resource and returns
// its normalized form, where every disable request (negated key, null value
// or the field's remove value) is Unset. forText locates the entry in
// error messages, e.g. " at index 2".
func NormalizeEntry(raw types.RawEntry, resource schema.Resource, policies types.Policies, forText string) (types.Desired, error) {
	out := types.Desired{}
	seen := map[string]string{}
	present := map[string]bool{}
	for _, item := range raw {
		name, negated := strings.CutPrefix(item.Key, "!")
		field, ok := resource.Fields[name]
		if !ok {
			return types.Desired{}, invalidEntry("Unknown key %q%s.", item.Key, forText)
		}
		if previous, dup := seen[name]; dup {
			if previous != item.Key {
				return types.Desired{}, invalidEntry("Not both %q and %q can be specified%s.", name, "!"+name, forText)
			}
			return types.Desired{}, invalidEntry("Key %q is specified more than once%s.", item.Key, forText)
		}
		seen[name] = item.Key

		if negated {
			if !field.CanDisable {
				return types.Desired{}, invalidEntry("Key %q must not be disabled%s.", item.Key, forText)
			}
			if !item.Null && !item.Value.IsEmptyText() && (field.RemoveValue == nil || !field.RemoveValue.Equal(item.Value)) {
				return types.Desired{}, invalidEntry("Disabled key %q must not have a value%s.", item.Key, forText)
			}
			out.Set(name, types.Unset())
			continue
		}
		if item.Null {
			if !field.CanDisable {
				return types.Desired{}, invalidEntry("Key %q must not be disabled (value null)%s.", name, forText)
			}
			present[name] = true
			out.Set(name, types.Unset())
			continue
		}
		if field.ReadOnly {
			switch policies.ReadOnly {
			case types.ReadOnlyError:
				return types.Desired{}, invalidEntry("Key %q is read-only%s, and handle_read_only=error.", name, forText)
			case types.ReadOnlyIgnore:
				continue
			}
		}
		if field.WriteOnly && policies.WriteOnly == types.WriteOnlyError {
			return types.Desired{}, invalidEntry("Key %q is write-only%s, and handle_write_only=error.", name, forText)
		}
		present[name] = true
		if field.CanDisable && field.RemoveValue != nil && field.RemoveValue.Equal(item.Value) {
			out.Set(name, types.Unset())
			continue
		}
		out.Set(name, types.SetTo(item.Value))
	}

	for _, name := range resource.FieldNames() {
		if resource.Fields[name].Required && !present[name] {
			return types.Desired{}, invalidEntry("Key %q must be present%s.", name, forText)
		}
	}
	for _, group := range resource.RequiredOneOf {
		if countPresent(group, present) == 0 {
			return types.Desired{}, invalidEntry("At least one of the keys %s must be present%s.", quoteAll(group), forText)
		}
	}
	for _, group := range resource.MutuallyExclusive {
		if countPresent(group, present) > 1 {
			return types.Desired{}, invalidEntry("At most one of the keys %s may be present%s.", quoteAll(group), forText)
		}
	}
	return out, nil
}

func countPresent(group []string, present map[string]bool) int {
	count := 0
	for _, name := range group {
		if present[name] {
			count++
		}
	}
	return count
}

func quoteAll(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, name := range names {
		quoted = append(quoted, fmt.Sprintf("%q", name))
	}
	return strings.Join(quoted, ", ")
}
