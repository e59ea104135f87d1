package schema

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"rosync/internal/types"
)

// Registry maps paths to their selectors. It is immutable after
// construction and safe for concurrent use.
type Registry struct {
	selectors map[string]Selector
}

// NewRegistry validates every selector and returns the registry. Any
// invalid declaration is an authoring error.
func NewRegistry(selectors map[string]Selector) (*Registry, error) {
	out := make(map[string]Selector, len(selectors))
	for key, selector := range selectors {
		path := types.ParsePath(key)
		if path.IsEmpty() {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("schema registry contains an empty path")
		}
		if err := selector.validate(); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("invalid schema for path %q", path.String())).
				WithCause(err)
		}
		out[path.String()] = selector
	}
	return &Registry{selectors: out}, nil
}

func MustNewRegistry(selectors map[string]Selector) *Registry {
	registry, err := NewRegistry(selectors)
	if err != nil {
		panic(err)
	}
	return registry
}

func (r *Registry) Lookup(path types.Path) (Selector, bool) {
	selector, ok := r.selectors[path.String()]
	return selector, ok
}

// Paths returns every registered path in sorted order.
func (r *Registry) Paths() []types.Path {
	keys := make([]string, 0, len(r.selectors))
	for key := range r.selectors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := make([]types.Path, 0, len(keys))
	for _, key := range keys {
		out = append(out, types.ParsePath(key))
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of all built-in paths.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = MustNewRegistry(builtinSelectors())
	})
	return defaultRegistry
}

func builtinSelectors() map[string]Selector {
	out := map[string]Selector{}
	for _, group := range []map[string]Selector{
		interfacePaths(),
		ipPaths(),
		ipv6Paths(),
		routingPaths(),
		systemPaths(),
	} {
		for key, selector := range group {
			if _, exists := out[key]; exists {
				panic(fmt.Sprintf("schema: path %q registered twice", key))
			}
			out[key] = selector
		}
	}
	return out
}
