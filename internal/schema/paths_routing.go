package schema

import "rosync/internal/types"

const routingV7Only = "routing configuration of this path exists starting with RouterOS 7"

func routingPaths() map[string]Selector {
	return map[string]Selector{
		"routing bgp connection": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeKeyed,
				Keys: []string{"name"},
				Fields: map[string]Field{
					"address-families": {Default: Str("ip")},
					"as":               {Required: true},
					"comment":          comment(),
					"connect":          {Default: Flag(true)},
					"disabled":         disabled(),
					"hold-time":        {Default: Str("3m")},
					"keepalive-time":   {Default: Str("1m")},
					"listen":           {Default: Flag(true)},
					"local.address":    {CanDisable: true},
					"local.role":       {Required: true},
					"multihop":         {Default: Flag(false)},
					"name":             {},
					"remote.address":   {CanDisable: true},
					"remote.as":        {CanDisable: true},
					"router-id":        {CanDisable: true},
					"routing-table":    {Default: Str("main")},
					"templates":        {CanDisable: true},
					"vrf":              {Default: Str("main")},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported(routingV7Only)},
		),
		"routing ospf instance": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeKeyed,
				Keys: []string{"name"},
				Fields: map[string]Field{
					"comment":           comment(),
					"disabled":          disabled(),
					"name":              {},
					"originate-default": {Default: Str("never")},
					"redistribute":      {Default: Str("")},
					"router-id":         {Default: Str("main")},
					"routing-table":     {Default: Str("main")},
					"version":           {Default: Num(2)},
					"vrf":               {Default: Str("main")},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported(routingV7Only)},
		),
		"routing ospf area": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeKeyed,
				Keys: []string{"name"},
				Fields: map[string]Field{
					"area-id":  {Default: Str("0.0.0.0")},
					"comment":  comment(),
					"default-cost": {CanDisable: true},
					"disabled": disabled(),
					"instance": {Required: true},
					"name":     {},
					"no-summaries": {CanDisable: true},
					"type":     {Default: Str("default")},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported(routingV7Only)},
		),
		"routing filter": Versioned(
			Range{Op: types.ConstraintOpLt, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeStratified,
				Keys: []string{"chain"},
				Fields: map[string]Field{
					"action":       {Default: Str("passthrough")},
					"chain":        {},
					"comment":      comment(),
					"disabled":     disabled(),
					"prefix":       {Default: Str("0.0.0.0/0")},
					"prefix-length": {CanDisable: true},
					"set-distance": {CanDisable: true},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported("replaced by routing filter rule in RouterOS 7")},
		),
		"routing filter rule": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.1", Outcome: Supported(Resource{
				Mode: ModeStratified,
				Keys: []string{"chain"},
				Fields: map[string]Field{
					"chain":    {},
					"comment":  comment(),
					"disabled": disabled(),
					"rule":     {Required: true},
				},
				FullyUnderstood: true,
			})},
		),
		"routing table": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeKeyed,
				Keys: []string{"name"},
				Fields: map[string]Field{
					"comment":  comment(),
					"disabled": disabled(),
					"fib":      {Default: Flag(false)},
					"name":     {},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported(routingV7Only)},
		),
	}
}
