package schema

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Mode is the structural mode of a resource.
type Mode string

const (
	// ModeKeyed paths identify entries by a tuple of primary key fields.
	ModeKeyed Mode = "keyed"
	// ModeStratified paths are ordered lists grouped by stratify fields.
	ModeStratified     Mode = "stratified"
	ModeIdentifierOnly Mode = "identifier_only"
	ModeSingleValue    Mode = "single_value"
	ModeUnknown        Mode = "unknown"
)

// VersionedField is added to a resource when every condition holds.
type VersionedField struct {
	When  []string
	Name  string
	Field Field

	conditions []condition
}

// Resource describes one path.
type Resource struct {
	Mode Mode
	// Keys holds the primary keys of a keyed resource or the stratify keys
	// of a stratified one.
	Keys              []string
	Fields            map[string]Field
	FixedEntries      bool
	RequiredOneOf     [][]string
	MutuallyExclusive [][]string
	FullyUnderstood   bool
	VersionedFields   []VersionedField
}

func (r Resource) HasVersionedFields() bool {
	return len(r.VersionedFields) > 0
}

// FieldNames returns the field names in sorted order.
func (r Resource) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r Resource) validate() error {
	switch r.Mode {
	case ModeKeyed:
		if len(r.Keys) == 0 {
			return fmt.Errorf("keyed resource needs at least one primary key")
		}
	case ModeStratified:
	case ModeIdentifierOnly, ModeSingleValue, ModeUnknown:
		if len(r.Keys) > 0 {
			return fmt.Errorf("%s resource cannot declare keys", r.Mode)
		}
	default:
		return fmt.Errorf("unknown structural mode %q", r.Mode)
	}
	if r.FixedEntries && r.Mode != ModeKeyed {
		return fmt.Errorf("fixed entries require primary keys")
	}
	if r.Mode == ModeUnknown && r.FullyUnderstood {
		return fmt.Errorf("resource with unknown mechanism cannot be fully understood")
	}
	for _, key := range r.Keys {
		if _, ok := r.Fields[key]; !ok {
			return fmt.Errorf("key %q is not a field", key)
		}
	}
	for _, group := range append(append([][]string{}, r.RequiredOneOf...), r.MutuallyExclusive...) {
		for _, name := range group {
			if _, ok := r.Fields[name]; !ok {
				return fmt.Errorf("constraint field %q is not a field", name)
			}
		}
	}
	for name, field := range r.Fields {
		if err := field.Validate(); err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		for _, source := range field.ComputedFrom {
			if _, ok := r.Fields[source]; !ok {
				return fmt.Errorf("field %q is computed from unknown field %q", name, source)
			}
		}
	}
	for i := range r.VersionedFields {
		versioned := &r.VersionedFields[i]
		if _, ok := r.Fields[versioned.Name]; ok {
			return fmt.Errorf("versioned field %q is already a base field", versioned.Name)
		}
		if err := versioned.Field.Validate(); err != nil {
			return fmt.Errorf("versioned field %q: %w", versioned.Name, err)
		}
		if len(versioned.When) == 0 {
			return fmt.Errorf("versioned field %q has no conditions", versioned.Name)
		}
		conditions, err := parseConditions(versioned.When)
		if err != nil {
			return fmt.Errorf("versioned field %q: %w", versioned.Name, err)
		}
		versioned.conditions = conditions
	}
	return nil
}

// specialize returns a copy of r with every versioned field whose
// conditions hold for version folded into Fields.
func (r Resource) specialize(version Version) (Resource, error) {
	out := r
	out.Fields = make(map[string]Field, len(r.Fields)+len(r.VersionedFields))
	for name, field := range r.Fields {
		out.Fields[name] = field
	}
	out.VersionedFields = nil
	for _, versioned := range r.VersionedFields {
		conditions := versioned.conditions
		if conditions == nil {
			parsed, err := parseConditions(versioned.When)
			if err != nil {
				return Resource{}, err
			}
			conditions = parsed
		}
		if !allHold(conditions, version) {
			continue
		}
		if _, ok := out.Fields[versioned.Name]; ok {
			return Resource{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("field %q is declared twice for version %s", versioned.Name, version))
		}
		out.Fields[versioned.Name] = versioned.Field
	}
	return out, nil
}
