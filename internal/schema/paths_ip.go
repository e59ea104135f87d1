package schema

func firewallRuleFields(extra map[string]Field) map[string]Field {
	fields := map[string]Field{
		"action":                    {Default: Str("accept")},
		"address-list":              {CanDisable: true},
		"address-list-timeout":      {CanDisable: true},
		"chain":                     {},
		"comment":                   comment(),
		"connection-bytes":          {CanDisable: true},
		"connection-limit":          {CanDisable: true},
		"connection-mark":           {CanDisable: true},
		"connection-nat-state":      {CanDisable: true},
		"connection-rate":           {CanDisable: true},
		"connection-state":          {CanDisable: true},
		"connection-type":           {CanDisable: true},
		"content":                   {CanDisable: true},
		"disabled":                  disabled(),
		"dscp":                      {CanDisable: true},
		"dst-address":               {CanDisable: true},
		"dst-address-list":          {CanDisable: true},
		"dst-address-type":          {CanDisable: true},
		"dst-limit":                 {CanDisable: true},
		"dst-port":                  {CanDisable: true},
		"fragment":                  {CanDisable: true},
		"icmp-options":              {CanDisable: true},
		"in-bridge-port":            {CanDisable: true},
		"in-interface":              {CanDisable: true},
		"in-interface-list":         {CanDisable: true},
		"ingress-priority":          {CanDisable: true},
		"ipsec-policy":              {CanDisable: true},
		"jump-target":               {CanDisable: true},
		"layer7-protocol":           {CanDisable: true},
		"limit":                     {CanDisable: true},
		"log":                       {Default: Flag(false)},
		"log-prefix":                {Default: Str("")},
		"nth":                       {CanDisable: true},
		"out-bridge-port":           {CanDisable: true},
		"out-interface":             {CanDisable: true},
		"out-interface-list":        {CanDisable: true},
		"packet-mark":               {CanDisable: true},
		"packet-size":               {CanDisable: true},
		"per-connection-classifier": {CanDisable: true},
		"port":                      {CanDisable: true},
		"protocol":                  {CanDisable: true},
		"psd":                       {CanDisable: true},
		"random":                    {CanDisable: true},
		"routing-mark":              {CanDisable: true},
		"src-address":               {CanDisable: true},
		"src-address-list":          {CanDisable: true},
		"src-address-type":          {CanDisable: true},
		"src-mac-address":           {CanDisable: true},
		"src-port":                  {CanDisable: true},
		"tcp-flags":                 {CanDisable: true},
		"tcp-mss":                   {CanDisable: true},
		"time":                      {CanDisable: true},
		"tls-host":                  {CanDisable: true},
		"ttl":                       {CanDisable: true},
		"bytes":                     {ReadOnly: true},
		"packets":                   {ReadOnly: true},
		"invalid":                   {ReadOnly: true},
	}
	for name, field := range extra {
		fields[name] = field
	}
	return fields
}

func ipPaths() map[string]Selector {
	return map[string]Selector{
		"ip address": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"address", "interface"},
			Fields: map[string]Field{
				"address":          {},
				"comment":          comment(),
				"disabled":         disabled(),
				"interface":        {},
				"network":          {ComputedFrom: []string{"address"}},
				"actual-interface": {ReadOnly: true},
				"invalid":          {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"ip settings": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"accept-redirects":       {Default: Flag(false)},
				"accept-source-route":    {Default: Flag(false)},
				"allow-fast-path":        {Default: Flag(true)},
				"arp-timeout":            {Default: Str("30s")},
				"icmp-rate-limit":        {Default: Num(10)},
				"icmp-rate-mask":         {Default: Str("0x1818")},
				"ip-forward":             {Default: Flag(true)},
				"max-neighbor-entries":   {Default: Num(8192)},
				"rp-filter":              {Default: Str("no")},
				"secure-redirects":       {Default: Flag(true)},
				"send-redirects":         {Default: Flag(true)},
				"tcp-syncookies":         {Default: Flag(false)},
				"ipv4-fast-path-active":  {ReadOnly: true},
				"ipv4-fast-path-bytes":   {ReadOnly: true},
				"ipv4-fast-path-packets": {ReadOnly: true},
			},
			VersionedFields: []VersionedField{
				{When: []string{"< 7.0"}, Name: "route-cache", Field: Field{Default: Flag(true)}},
				{When: []string{">= 7.1"}, Name: "ipv4-multipath-hash-policy", Field: Field{Default: Str("l3")}},
				{When: []string{">= 7.13"}, Name: "tcp-timestamps", Field: Field{Default: Str("random-offset")}},
			},
			FullyUnderstood: true,
		}),
		"ip dns": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"allow-remote-requests":       {Default: Flag(false)},
				"cache-max-ttl":               {Default: Str("1w")},
				"cache-size":                  {Default: Num(2048)},
				"max-concurrent-queries":      {Default: Num(100)},
				"max-concurrent-tcp-sessions": {Default: Num(20)},
				"max-udp-packet-size":         {Default: Num(4096)},
				"query-server-timeout":        {Default: Str("2s")},
				"query-total-timeout":         {Default: Str("10s")},
				"servers":                     {Default: Str("")},
				"cache-used":                  {ReadOnly: true},
				"dynamic-servers":             {ReadOnly: true},
			},
			VersionedFields: []VersionedField{
				{When: []string{">= 6.47"}, Name: "use-doh-server", Field: Field{Default: Str("")}},
				{When: []string{">= 6.47"}, Name: "verify-doh-cert", Field: Field{Default: Flag(false)}},
				{When: []string{">= 7.8"}, Name: "doh-max-concurrent-queries", Field: Field{Default: Num(50)}},
				{When: []string{">= 7.8"}, Name: "doh-max-server-connections", Field: Field{Default: Num(5)}},
				{When: []string{">= 7.8"}, Name: "doh-timeout", Field: Field{Default: Str("5s")}},
			},
			FullyUnderstood: true,
		}),
		"ip dns static": Unversioned(Resource{
			Mode: ModeStratified,
			Fields: map[string]Field{
				"address":         {},
				"cname":           {},
				"comment":         comment(),
				"disabled":        disabled(),
				"forward-to":      {},
				"match-subdomain": {Default: Flag(false)},
				"mx-exchange":     {},
				"mx-preference":   {},
				"name":            {},
				"regexp":          {},
				"text":            {},
				"ttl":             {Default: Str("1d")},
				"type":            {Default: Str("A")},
				"address-list":    {Default: Str("")},
			},
			RequiredOneOf:     [][]string{{"name", "regexp"}},
			MutuallyExclusive: [][]string{{"name", "regexp"}},
			FullyUnderstood:   true,
		}),
		"ip firewall address-list": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"address", "list"},
			Fields: map[string]Field{
				"address":       {},
				"comment":       comment(),
				"disabled":      disabled(),
				"list":          {},
				"timeout":       {CanDisable: true},
				"creation-time": {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"ip firewall filter": Unversioned(Resource{
			Mode: ModeStratified,
			Keys: []string{"chain"},
			Fields: firewallRuleFields(map[string]Field{
				"reject-with": {CanDisable: true},
			}),
			VersionedFields: []VersionedField{
				{When: []string{">= 7.0"}, Name: "hw-offload", Field: Field{CanDisable: true}},
			},
			FullyUnderstood: true,
		}),
		"ip firewall nat": Unversioned(Resource{
			Mode: ModeStratified,
			Keys: []string{"chain"},
			Fields: firewallRuleFields(map[string]Field{
				"to-addresses": {CanDisable: true},
				"to-ports":     {CanDisable: true},
			}),
			FullyUnderstood: true,
		}),
		"ip firewall mangle": Unversioned(Resource{
			Mode: ModeStratified,
			Keys: []string{"chain"},
			Fields: firewallRuleFields(map[string]Field{
				"new-connection-mark": {CanDisable: true},
				"new-dscp":            {CanDisable: true},
				"new-mss":             {CanDisable: true},
				"new-packet-mark":     {CanDisable: true},
				"new-priority":        {CanDisable: true},
				"new-routing-mark":    {CanDisable: true},
				"new-ttl":             {CanDisable: true},
				"passthrough":         {Default: Flag(true)},
			}),
			FullyUnderstood: true,
		}),
		"ip pool": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"comment":   comment(),
				"name":      {},
				"next-pool": {CanDisable: true, RemoveValue: Str("none")},
				"ranges":    {Required: true},
			},
			FullyUnderstood: true,
		}),
		"ip dhcp-server": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"add-arp":          {Default: Flag(false)},
				"address-pool":     {Default: Str("static-only")},
				"always-broadcast": {Default: Flag(false)},
				"authoritative":    {Default: Str("yes")},
				"bootp-support":    {Default: Str("static")},
				"comment":          comment(),
				"disabled":         disabled(),
				"interface":        {Required: true},
				"lease-script":     {Default: Str("")},
				"name":             {},
				"use-radius":       {Default: Flag(false)},
			},
			VersionedFields: []VersionedField{
				{When: []string{"< 7.0"}, Name: "lease-time", Field: Field{Default: Str("10m")}},
				{When: []string{">= 7.0"}, Name: "lease-time", Field: Field{Default: Str("30m")}},
			},
			FullyUnderstood: true,
		}),
		"ip dhcp-server network": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"address"},
			Fields: map[string]Field{
				"address":        {},
				"boot-file-name": {Default: Str("")},
				"comment":        comment(),
				"dhcp-option":    {Default: Str("")},
				"dns-none":       {Default: Flag(false)},
				"dns-server":     {Default: Str("")},
				"domain":         {Default: Str("")},
				"gateway":        {Default: Str("")},
				"netmask":        {CanDisable: true, RemoveValue: Num(0)},
				"next-server":    {CanDisable: true},
				"ntp-server":     {Default: Str("")},
				"wins-server":    {Default: Str("")},
			},
			FullyUnderstood: true,
		}),
		"ip dhcp-server lease": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"server", "address"},
			Fields: map[string]Field{
				"address":       {},
				"address-lists": {Default: Str("")},
				"client-id":     {CanDisable: true, RemoveValue: Str("")},
				"comment":       comment(),
				"disabled":      disabled(),
				"lease-time":    {Default: Str("0s")},
				"mac-address":   {CanDisable: true, RemoveValue: Str("")},
				"server":        {},
				"status":        {ReadOnly: true},
				"host-name":     {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"ip route": Unversioned(Resource{
			Mode: ModeStratified,
			Fields: map[string]Field{
				"blackhole":     {CanDisable: true},
				"check-gateway": {CanDisable: true},
				"comment":       comment(),
				"disabled":      disabled(),
				"distance":      {Default: Num(1)},
				"dst-address":   {},
				"gateway":       {},
				"pref-src":      {CanDisable: true},
				"scope":         {Default: Num(30)},
				"target-scope":  {Default: Num(10)},
				"active":        {ReadOnly: true},
				"immediate-gw":  {ReadOnly: true},
			},
			VersionedFields: []VersionedField{
				{When: []string{"< 7.0"}, Name: "routing-mark", Field: Field{CanDisable: true}},
				{When: []string{"< 7.0"}, Name: "type", Field: Field{CanDisable: true, RemoveValue: Str("unicast")}},
				{When: []string{">= 7.0"}, Name: "routing-table", Field: Field{Default: Str("main")}},
				{When: []string{">= 7.0"}, Name: "vrf-interface", Field: Field{CanDisable: true}},
				{When: []string{">= 7.4"}, Name: "suppress-hw-offload", Field: Field{Default: Flag(false)}},
			},
			FullyUnderstood: true,
		}),
		"ip service": Unversioned(Resource{
			Mode:         ModeKeyed,
			Keys:         []string{"name"},
			FixedEntries: true,
			Fields: map[string]Field{
				"address":     {Default: Str("")},
				"certificate": {CanDisable: true, RemoveValue: Str("none")},
				"disabled":    disabled(),
				"name":        {},
				"port":        {},
				"tls-version": {CanDisable: true},
				"invalid":     {ReadOnly: true},
			},
			VersionedFields: []VersionedField{
				{When: []string{">= 7.0"}, Name: "vrf", Field: Field{Default: Str("main")}},
				{When: []string{">= 7.16"}, Name: "max-sessions", Field: Field{Default: Num(20)}},
			},
			FullyUnderstood: true,
		}),
		"queue simple": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"comment":   comment(),
				"disabled":  disabled(),
				"max-limit": {Default: Str("0/0")},
				"name":      {},
				"target":    {},
			},
		}),
	}
}
