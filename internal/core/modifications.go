package core

import (
	"rosync/internal/schema"
	"rosync/internal/types"
)

// Modifications is the outcome of comparing one current entry with one
// desired entry.
type Modifications struct {
	Changes types.Changes
	// Updated is the current entry with Changes applied.
	Updated types.Fields
	// Compatible is false when the pair cannot be reconciled under the
	// active policies. Only reported in trial mode.
	Compatible bool
}

// Calculator computes the field changes turning a current entry into a
// desired one.
type Calculator struct {
	Resource schema.Resource
	Policies types.Policies
}

func NewCalculator(resource schema.Resource, policies types.Policies) Calculator {
	return Calculator{Resource: resource, Policies: policies}
}

// Find compares current with desired. With trial set, a pairing that
// would need a forbidden removal or violates a read-only value yields
// Compatible=false instead of an error.
func (c Calculator) Find(current types.Fields, desired types.Desired, forText string, trial bool) (Modifications, error) {
	incompatible := Modifications{Compatible: false}
	changes := types.Changes{}
	updated := current.Clone()

	for _, name := range desired.Keys() {
		state, _ := desired.Get(name)
		field := c.Resource.Fields[name]
		currentValue, has := current.Get(name)

		value, isSet := state.Value()
		if !isSet {
			if !has {
				continue
			}
			if field.RemoveValue != nil {
				if !currentValue.Equal(*field.RemoveValue) {
					changes.Set(name, types.SetTo(*field.RemoveValue))
					updated.Set(name, *field.RemoveValue)
				}
				continue
			}
			changes.Set(name, types.Unset())
			updated.Delete(name)
			continue
		}

		if !has && field.Default != nil && field.Default.Equal(value) && !field.CanDisable {
			continue
		}
		if field.ReadOnly {
			if !has || !currentValue.Equal(value) {
				if trial {
					return incompatible, nil
				}
				shown := "<absent>"
				if has {
					shown = currentValue.Quoted()
				}
				return Modifications{}, invalidEntry("Read-only key %q has value %s, but should have new value %s%s.", name, shown, value.Quoted(), forText)
			}
			continue
		}
		if field.WriteOnly && c.Policies.WriteOnly == types.WriteOnlyCreateOnly {
			continue
		}
		if !has || !currentValue.Equal(value) {
			changes.Set(name, types.SetTo(value))
			updated.Set(name, value)
		}
	}

	if c.Policies.EntriesContent != types.EntriesContentIgnore {
		for _, name := range current.Keys() {
			if desired.Has(name) {
				continue
			}
			field, known := c.Resource.Fields[name]
			if !known || field.ReadOnly || len(field.ComputedFrom) > 0 {
				continue
			}
			currentValue, _ := current.Get(name)
			if field.IsNeutral(currentValue) {
				continue
			}
			switch {
			case field.CanDisable:
				switch {
				case field.Default != nil:
					changes.Set(name, types.SetTo(*field.Default))
					updated.Set(name, *field.Default)
				case field.RemoveValue != nil:
					changes.Set(name, types.SetTo(*field.RemoveValue))
					updated.Set(name, *field.RemoveValue)
				default:
					changes.Set(name, types.Unset())
					updated.Delete(name)
				}
			case field.Default != nil:
				changes.Set(name, types.SetTo(*field.Default))
				updated.Set(name, *field.Default)
			case c.Policies.EntriesContent == types.EntriesContentRemove:
				if trial {
					return incompatible, nil
				}
				return Modifications{}, invalidEntry("Key %q cannot be removed%s.", name, forText)
			}
		}
		for _, name := range c.Resource.FieldNames() {
			field := c.Resource.Fields[name]
			if !field.CanDisable || field.Default == nil {
				continue
			}
			if current.Has(name) || desired.Has(name) {
				continue
			}
			changes.Set(name, types.SetTo(*field.Default))
			updated.Set(name, *field.Default)
		}
	}

	return Modifications{Changes: changes, Updated: updated, Compatible: true}, nil
}
