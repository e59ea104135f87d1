package schema

func ipv6Paths() map[string]Selector {
	return map[string]Selector{
		"ipv6 address": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"address", "interface"},
			Fields: map[string]Field{
				"address":   {},
				"advertise": {Default: Flag(true)},
				"comment":   comment(),
				"disabled":  disabled(),
				"eui-64":    {Default: Flag(false)},
				"from-pool": {Default: Str("")},
				"interface": {},
				"no-dad":    {Default: Flag(false)},
				"actual-interface": {ReadOnly: true},
				"link-local":       {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"ipv6 settings": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"accept-redirects":              {Default: Str("yes-if-forwarding-disabled")},
				"accept-router-advertisements":  {Default: Str("yes-if-forwarding-disabled")},
				"forward":                       {Default: Flag(true)},
				"max-neighbor-entries":          {Default: Num(8192)},
			},
			VersionedFields: []VersionedField{
				{When: []string{">= 7.0"}, Name: "disable-ipv6", Field: Field{Default: Flag(false)}},
				{When: []string{">= 7.10"}, Name: "allow-fast-path", Field: Field{Default: Flag(true)}},
			},
			FullyUnderstood: true,
		}),
		"ipv6 firewall address-list": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"address", "list"},
			Fields: map[string]Field{
				"address":  {},
				"comment":  comment(),
				"disabled": disabled(),
				"list":     {},
				"timeout":  {CanDisable: true},
			},
			FullyUnderstood: true,
		}),
		"ipv6 firewall filter": Unversioned(Resource{
			Mode: ModeStratified,
			Keys: []string{"chain"},
			Fields: map[string]Field{
				"action":             {Default: Str("accept")},
				"chain":              {},
				"comment":            comment(),
				"connection-state":   {CanDisable: true},
				"disabled":           disabled(),
				"dst-address":        {CanDisable: true},
				"dst-address-list":   {CanDisable: true},
				"dst-port":           {CanDisable: true},
				"icmp-options":       {CanDisable: true},
				"in-interface":       {CanDisable: true},
				"in-interface-list":  {CanDisable: true},
				"jump-target":        {CanDisable: true},
				"log":                {Default: Flag(false)},
				"log-prefix":         {Default: Str("")},
				"out-interface":      {CanDisable: true},
				"out-interface-list": {CanDisable: true},
				"protocol":           {CanDisable: true},
				"reject-with":        {CanDisable: true},
				"src-address":        {CanDisable: true},
				"src-address-list":   {CanDisable: true},
				"src-port":           {CanDisable: true},
			},
			FullyUnderstood: true,
		}),
		"ipv6 nd": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"interface"},
			Fields: map[string]Field{
				"advertise-dns":                    {Default: Flag(true)},
				"advertise-mac-address":            {Default: Flag(true)},
				"comment":                          comment(),
				"disabled":                         disabled(),
				"hop-limit":                        {Default: Str("unspecified")},
				"interface":                        {},
				"managed-address-configuration":    {Default: Flag(false)},
				"mtu":                              {Default: Str("unspecified")},
				"other-configuration":              {Default: Flag(false)},
				"ra-delay":                         {Default: Str("3s")},
				"ra-interval":                      {Default: Str("3m20s-10m")},
				"ra-lifetime":                      {Default: Str("30m")},
				"reachable-time":                   {Default: Str("unspecified")},
				"retransmit-interval":              {Default: Str("unspecified")},
			},
			FullyUnderstood: true,
		}),
	}
}
