package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one configuration entry as reported by the device.
type Entry struct {
	ID      string
	Dynamic bool
	Builtin bool
	Fields  Fields
}

const (
	idKey      = ".id"
	dynamicKey = "dynamic"
	builtinKey = "builtin"
)

func (e Entry) Clone() Entry {
	return Entry{ID: e.ID, Dynamic: e.Dynamic, Builtin: e.Builtin, Fields: e.Fields.Clone()}
}

func (e Entry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if e.ID != "" {
		appendPair(node, idKey, e.ID)
	}
	if e.Dynamic {
		appendPair(node, dynamicKey, true)
	}
	if e.Builtin {
		appendPair(node, builtinKey, true)
	}
	appendFieldsNode(node, e.Fields)
	return node, nil
}

func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: entry must be a mapping", node.Line)
	}
	out := Entry{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valueNode := node.Content[i+1]
		switch key {
		case idKey:
			out.ID = valueNode.Value
		case dynamicKey:
			if err := valueNode.Decode(&out.Dynamic); err != nil {
				return err
			}
		case builtinKey:
			if err := valueNode.Decode(&out.Builtin); err != nil {
				return err
			}
		default:
			value, err := valueFromNode(valueNode)
			if err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
			out.Fields.Set(key, value)
		}
	}
	*e = out
	return nil
}

// RawField is one key of a desired entry as the user wrote it. Key may be
// negated ("!comment"); Null marks an explicit null value.
type RawField struct {
	Key   string
	Value Value
	Null  bool
}

type RawEntry []RawField

func rawEntryFromNode(node *yaml.Node) (RawEntry, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: entry must be a mapping", node.Line)
	}
	out := make(RawEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		valueNode := node.Content[i+1]
		if isNullNode(valueNode) {
			out = append(out, RawField{Key: key, Null: true})
			continue
		}
		value, err := valueFromNode(valueNode)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", key, err)
		}
		out = append(out, RawField{Key: key, Value: value})
	}
	return out, nil
}

func (r *RawEntry) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := rawEntryFromNode(node)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r RawEntry) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, field := range r {
		if field.Null {
			appendPair(node, field.Key, nil)
			continue
		}
		appendPair(node, field.Key, field.Value.Interface())
	}
	return node, nil
}

// RawOf builds a RawEntry from alternating key/value pairs; a nil value
// becomes an explicit null.
func RawOf(pairs ...any) RawEntry {
	if len(pairs)%2 != 0 {
		panic("types.RawOf: odd number of arguments")
	}
	out := RawEntry{}
	for i := 0; i < len(pairs); i += 2 {
		key := pairs[i].(string)
		switch typed := pairs[i+1].(type) {
		case nil:
			out = append(out, RawField{Key: key, Null: true})
		case Value:
			out = append(out, RawField{Key: key, Value: typed})
		default:
			value, err := ValueOf(typed)
			if err != nil {
				panic(fmt.Sprintf("types.RawOf: %s: %v", key, err))
			}
			out = append(out, RawField{Key: key, Value: value})
		}
	}
	return out
}

// FieldState is the desired state of one field: either set to a value or
// unset (disabled).
type FieldState struct {
	value Value
	unset bool
}

func SetTo(value Value) FieldState {
	return FieldState{value: value}
}

func Unset() FieldState {
	return FieldState{unset: true}
}

func (s FieldState) IsUnset() bool {
	return s.unset
}

// Value returns the set value; ok is false for an unset state.
func (s FieldState) Value() (Value, bool) {
	if s.unset {
		return Value{}, false
	}
	return s.value, true
}

func (s FieldState) String() string {
	if s.unset {
		return "<unset>"
	}
	return s.value.Quoted()
}

// Desired is a normalized desired entry.
type Desired = OrderedMap[FieldState]

// Changes is the ordered set of field modifications for one entry.
type Changes = OrderedMap[FieldState]

func FormatChanges(changes Changes) string {
	parts := make([]string, 0, changes.Len())
	for _, key := range changes.Keys() {
		state, _ := changes.Get(key)
		if state.IsUnset() {
			parts = append(parts, "!"+key)
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%s", key, state.String()))
	}
	return strings.Join(parts, ", ")
}

// ChangesYAML renders changes with unset fields in negated form.
func ChangesYAML(changes Changes) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, key := range changes.Keys() {
		state, _ := changes.Get(key)
		if value, ok := state.Value(); ok {
			appendPair(node, key, value.Interface())
			continue
		}
		appendPair(node, "!"+key, nil)
	}
	return node
}
