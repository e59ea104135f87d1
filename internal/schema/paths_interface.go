package schema

import "rosync/internal/types"

func comment() Field {
	return Field{CanDisable: true, RemoveValue: Str("")}
}

func disabled() Field {
	return Field{Default: Flag(false)}
}

func interfacePaths() map[string]Selector {
	return map[string]Selector{
		"interface bridge": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"admin-mac":          {},
				"ageing-time":        {Default: Str("5m")},
				"arp":                {Default: Str("enabled")},
				"arp-timeout":        {Default: Str("auto")},
				"auto-mac":           {Default: Flag(true)},
				"comment":            comment(),
				"dhcp-snooping":      {Default: Flag(false)},
				"disabled":           disabled(),
				"fast-forward":       {Default: Flag(true)},
				"forward-delay":      {Default: Str("15s")},
				"igmp-snooping":      {Default: Flag(false)},
				"max-message-age":    {Default: Str("20s")},
				"mtu":                {Default: Str("auto")},
				"name":               {},
				"priority":           {Default: Str("0x8000")},
				"protocol-mode":      {Default: Str("rstp")},
				"transmit-hold-count": {Default: Num(6)},
				"vlan-filtering":     {Default: Flag(false)},
				"actual-mtu":         {ReadOnly: true},
				"running":            {ReadOnly: true},
			},
			VersionedFields: []VersionedField{
				{When: []string{">= 7.0"}, Name: "ingress-filtering", Field: Field{Default: Flag(true)}},
				{When: []string{"< 7.0"}, Name: "ingress-filtering", Field: Field{Default: Flag(false)}},
				{When: []string{">= 7.13"}, Name: "port-cost-mode", Field: Field{Default: Str("long")}},
				{When: []string{">= 7.0", "< 7.13"}, Name: "mvrp", Field: Field{Default: Flag(false)}},
			},
			FullyUnderstood: true,
		}),
		"interface bridge port": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"interface"},
			Fields: map[string]Field{
				"auto-isolate":      {Default: Flag(false)},
				"bpdu-guard":        {Default: Flag(false)},
				"bridge":            {Required: true},
				"broadcast-flood":   {Default: Flag(true)},
				"comment":           comment(),
				"disabled":          disabled(),
				"edge":              {Default: Str("auto")},
				"fast-leave":        {Default: Flag(false)},
				"frame-types":       {Default: Str("admit-all")},
				"horizon":           {Default: Str("none")},
				"hw":                {Default: Flag(true)},
				"ingress-filtering": {Default: Flag(true)},
				"interface":         {},
				"learn":             {Default: Str("auto")},
				"multicast-router":  {Default: Str("temporary-query")},
				"path-cost":         {Default: Num(10)},
				"point-to-point":    {Default: Str("auto")},
				"priority":          {Default: Str("0x80")},
				"pvid":              {Default: Num(1)},
				"restricted-role":   {Default: Flag(false)},
				"restricted-tcn":    {Default: Flag(false)},
				"tag-stacking":      {Default: Flag(false)},
				"trusted":           {Default: Flag(false)},
				"unknown-multicast-flood": {Default: Flag(true)},
				"unknown-unicast-flood":   {Default: Flag(true)},
			},
			FullyUnderstood: true,
		}),
		"interface bridge vlan": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"bridge", "vlan-ids"},
			Fields: map[string]Field{
				"bridge":    {},
				"comment":   comment(),
				"disabled":  disabled(),
				"tagged":    {Default: Str("")},
				"untagged":  {Default: Str("")},
				"vlan-ids":  {},
				"current-tagged":   {ReadOnly: true},
				"current-untagged": {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"interface ethernet": Unversioned(Resource{
			Mode:         ModeKeyed,
			Keys:         []string{"default-name"},
			FixedEntries: true,
			Fields: map[string]Field{
				"advertise":        {},
				"arp":              {Default: Str("enabled")},
				"arp-timeout":      {Default: Str("auto")},
				"auto-negotiation": {Default: Flag(true)},
				"comment":          comment(),
				"default-name":     {},
				"disabled":         disabled(),
				"l2mtu":            {},
				"loop-protect":     {Default: Str("default")},
				"mac-address":      {},
				"mtu":              {Default: Num(1500)},
				"name":             {},
				"orig-mac-address": {ReadOnly: true},
				"rx-flow-control":  {Default: Str("off")},
				"tx-flow-control":  {Default: Str("off")},
				"speed":            {},
				"running":          {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"interface list": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"comment": comment(),
				"exclude": {Default: Str("")},
				"include": {Default: Str("")},
				"name":    {},
			},
			FullyUnderstood: true,
		}),
		"interface list member": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"list", "interface"},
			Fields: map[string]Field{
				"comment":   comment(),
				"disabled":  disabled(),
				"interface": {},
				"list":      {},
			},
			FullyUnderstood: true,
		}),
		"interface vlan": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"arp":              {Default: Str("enabled")},
				"arp-timeout":      {Default: Str("auto")},
				"comment":          comment(),
				"disabled":         disabled(),
				"interface":        {Required: true},
				"loop-protect":     {Default: Str("default")},
				"mtu":              {Default: Num(1500)},
				"name":             {},
				"use-service-tag":  {Default: Flag(false)},
				"vlan-id":          {Required: true},
				"mac-address":      {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"interface wireguard": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeKeyed,
				Keys: []string{"name"},
				Fields: map[string]Field{
					"comment":     comment(),
					"disabled":    disabled(),
					"listen-port": {},
					"mtu":         {Default: Num(1420)},
					"name":        {},
					"private-key": {},
					"public-key":  {ReadOnly: true},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported("WireGuard is supported starting with RouterOS 7")},
		),
		"interface wireguard peers": Versioned(
			Range{Op: types.ConstraintOpGte, Version: "7.0", Outcome: Supported(Resource{
				Mode: ModeKeyed,
				Keys: []string{"public-key", "interface"},
				Fields: map[string]Field{
					"allowed-address":      {Required: true},
					"comment":              comment(),
					"disabled":             disabled(),
					"endpoint-address":     {Default: Str("")},
					"endpoint-port":        {Default: Num(0)},
					"interface":            {},
					"persistent-keepalive": {CanDisable: true, RemoveValue: Str("0s")},
					"preshared-key":        {CanDisable: true, RemoveValue: Str("")},
					"public-key":           {},
					"last-handshake":       {ReadOnly: true},
					"rx":                   {ReadOnly: true},
					"tx":                   {ReadOnly: true},
				},
				VersionedFields: []VersionedField{
					{When: []string{">= 7.15"}, Name: "name", Field: Field{CanDisable: true, RemoveValue: Str("")}},
					{When: []string{">= 7.15"}, Name: "private-key", Field: Field{WriteOnly: true}},
				},
				FullyUnderstood: true,
			})},
			Range{Op: types.ConstraintOpAny, Outcome: Unsupported("WireGuard is supported starting with RouterOS 7")},
		),
		"interface ethernet switch port": Unversioned(Resource{
			Mode: ModeIdentifierOnly,
			Fields: map[string]Field{
				"default-vlan-id": {Default: Num(0)},
				"name":            {},
				"vlan-header":     {Default: Str("leave-as-is")},
				"vlan-mode":       {Default: Str("disabled")},
			},
			FullyUnderstood: true,
		}),
		"interface wireless security-profiles": Unversioned(Resource{
			Mode: ModeUnknown,
			Fields: map[string]Field{
				"authentication-types": {},
				"mode":                 {Default: Str("none")},
				"name":                 {},
				"wpa2-pre-shared-key":  {WriteOnly: true},
			},
		}),
	}
}
