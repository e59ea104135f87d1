package schema

func systemPaths() map[string]Selector {
	return map[string]Selector{
		"system identity": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"name": {Default: Str("MikroTik")},
			},
			FullyUnderstood: true,
		}),
		"system clock": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"time-zone-autodetect": {Default: Flag(true)},
				"time-zone-name":       {Default: Str("manual")},
				"date":                 {ReadOnly: true},
				"time":                 {ReadOnly: true},
				"gmt-offset":           {ReadOnly: true},
				"dst-active":           {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"system ntp client": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"enabled": {Default: Flag(false)},
			},
			VersionedFields: []VersionedField{
				{When: []string{"< 7.0"}, Name: "primary-ntp", Field: Field{Default: Str("0.0.0.0")}},
				{When: []string{"< 7.0"}, Name: "secondary-ntp", Field: Field{Default: Str("0.0.0.0")}},
				{When: []string{"< 7.0"}, Name: "server-dns-names", Field: Field{Default: Str("")}},
				{When: []string{">= 7.0"}, Name: "mode", Field: Field{Default: Str("unicast")}},
				{When: []string{">= 7.0"}, Name: "servers", Field: Field{Default: Str("")}},
				{When: []string{">= 7.0"}, Name: "vrf", Field: Field{Default: Str("main")}},
			},
			FullyUnderstood: true,
		}),
		"system logging": Unversioned(Resource{
			Mode: ModeStratified,
			Fields: map[string]Field{
				"action":   {Default: Str("memory")},
				"disabled": disabled(),
				"prefix":   {Default: Str("")},
				"topics":   {Default: Str("")},
			},
			FullyUnderstood: true,
		}),
		"system logging action": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"bsd-syslog":          {Default: Flag(false)},
				"disk-file-count":     {Default: Num(2)},
				"disk-file-name":      {Default: Str("log")},
				"disk-lines-per-file": {Default: Num(1000)},
				"disk-stop-on-full":   {Default: Flag(false)},
				"memory-lines":        {Default: Num(1000)},
				"memory-stop-on-full": {Default: Flag(false)},
				"name":                {},
				"remember":            {Default: Flag(true)},
				"remote":              {Default: Str("0.0.0.0")},
				"remote-port":         {Default: Num(514)},
				"src-address":         {Default: Str("0.0.0.0")},
				"syslog-facility":     {Default: Str("daemon")},
				"syslog-severity":     {Default: Str("auto")},
				"syslog-time-format":  {Default: Str("bsd-syslog")},
				"target":              {Required: true},
			},
			FullyUnderstood: true,
		}),
		"system scheduler": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"comment":    comment(),
				"disabled":   disabled(),
				"interval":   {Default: Str("0s")},
				"name":       {},
				"on-event":   {Default: Str("")},
				"policy":     {Default: Str("ftp,reboot,read,write,policy,test,password,sniff,sensitive,romon")},
				"start-date": {},
				"start-time": {Default: Str("startup")},
				"next-run":   {ReadOnly: true},
				"owner":      {ReadOnly: true},
				"run-count":  {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"snmp": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"contact":        {Default: Str("")},
				"enabled":        {Default: Flag(false)},
				"engine-id":      {Default: Str("")},
				"location":       {Default: Str("")},
				"src-address":    {Default: Str("::")},
				"trap-community": {Default: Str("public")},
				"trap-generators": {Default: Str("temp-exception")},
				"trap-target":    {Default: Str("")},
				"trap-version":   {Default: Num(1)},
			},
			FullyUnderstood: true,
		}),
		"snmp community": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"addresses":               {Default: Str("::/0")},
				"authentication-password": {WriteOnly: true},
				"authentication-protocol": {Default: Str("MD5")},
				"comment":                 comment(),
				"disabled":                disabled(),
				"encryption-password":     {WriteOnly: true},
				"encryption-protocol":     {Default: Str("DES")},
				"name":                    {},
				"read-access":             {Default: Flag(true)},
				"security":                {Default: Str("none")},
				"write-access":            {Default: Flag(false)},
			},
			FullyUnderstood: true,
		}),
		"user": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"address":        {Default: Str("")},
				"comment":        comment(),
				"disabled":       disabled(),
				"group":          {Required: true},
				"name":           {},
				"password":       {WriteOnly: true},
				"last-logged-in": {ReadOnly: true},
			},
			FullyUnderstood: true,
		}),
		"user group": Unversioned(Resource{
			Mode: ModeKeyed,
			Keys: []string{"name"},
			Fields: map[string]Field{
				"comment": comment(),
				"name":    {},
				"policy":  {Required: true},
				"skin":    {Default: Str("default")},
			},
			FullyUnderstood: true,
		}),
		"tool romon": Unversioned(Resource{
			Mode: ModeSingleValue,
			Fields: map[string]Field{
				"enabled": {Default: Flag(false)},
				"id":      {Default: Str("00:00:00:00:00:00")},
				"secrets": {Default: Str("")},
			},
			FullyUnderstood: true,
		}),
	}
}
