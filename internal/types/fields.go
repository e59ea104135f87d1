package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OrderedMap keeps field names in insertion order. The zero value is ready
// to use.
type OrderedMap[V comparable] struct {
	keys   []string
	values map[string]V
}

func (m *OrderedMap[V]) Set(key string, value V) {
	if m.values == nil {
		m.values = map[string]V{}
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m OrderedMap[V]) Get(key string) (V, bool) {
	value, ok := m.values[key]
	return value, ok
}

func (m OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *OrderedMap[V]) Delete(key string) {
	if _, ok := m.values[key]; !ok {
		return
	}
	delete(m.values, key)
	for i, existing := range m.keys {
		if existing == key {
			m.keys = append(m.keys[:i:i], m.keys[i+1:]...)
			break
		}
	}
}

func (m OrderedMap[V]) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m OrderedMap[V]) Len() int {
	return len(m.keys)
}

func (m OrderedMap[V]) Clone() OrderedMap[V] {
	out := OrderedMap[V]{}
	for _, key := range m.keys {
		out.Set(key, m.values[key])
	}
	return out
}

// Equal compares content; key order is ignored. Values with an Equal
// method, such as Value, are compared with it.
func (m OrderedMap[V]) Equal(other OrderedMap[V]) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, key := range m.keys {
		value, ok := other.values[key]
		if !ok || !valuesEqual(m.values[key], value) {
			return false
		}
	}
	return true
}

func valuesEqual[V comparable](a, b V) bool {
	if eq, ok := any(a).(interface{ Equal(V) bool }); ok {
		return eq.Equal(b)
	}
	return a == b
}

// Fields is an entry's field name to value mapping.
type Fields = OrderedMap[Value]

// FieldsOf builds Fields from alternating key/value pairs.
func FieldsOf(pairs ...any) Fields {
	if len(pairs)%2 != 0 {
		panic("types.FieldsOf: odd number of arguments")
	}
	out := Fields{}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("types.FieldsOf: key %v is not a string", pairs[i]))
		}
		switch typed := pairs[i+1].(type) {
		case Value:
			out.Set(key, typed)
		default:
			value, err := ValueOf(typed)
			if err != nil {
				panic(fmt.Sprintf("types.FieldsOf: %s: %v", key, err))
			}
			out.Set(key, value)
		}
	}
	return out
}

func FormatFields(fields Fields) string {
	parts := make([]string, 0, fields.Len())
	for _, key := range fields.Keys() {
		value, _ := fields.Get(key)
		parts = append(parts, fmt.Sprintf("%s=%s", key, value.Quoted()))
	}
	return strings.Join(parts, ", ")
}

func appendFieldsNode(node *yaml.Node, fields Fields) {
	for _, key := range fields.Keys() {
		value, _ := fields.Get(key)
		appendPair(node, key, value.Interface())
	}
}

func appendPair(node *yaml.Node, key string, value any) {
	keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
	valueNode := &yaml.Node{}
	_ = valueNode.Encode(value)
	node.Content = append(node.Content, keyNode, valueNode)
}
