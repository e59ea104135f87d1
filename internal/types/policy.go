package types

// Policies configures how one reconciliation run treats differences
// between the desired and the current state.
type Policies struct {
	AbsentEntries  AbsentEntriesPolicy  `yaml:"handle_absent_entries"`
	EntriesContent EntriesContentPolicy `yaml:"handle_entries_content"`
	ReadOnly       ReadOnlyPolicy       `yaml:"handle_read_only"`
	WriteOnly      WriteOnlyPolicy      `yaml:"handle_write_only"`
	EnsureOrder    bool                 `yaml:"ensure_order"`
}

func DefaultPolicies() Policies {
	return Policies{
		AbsentEntries:  AbsentEntriesIgnore,
		EntriesContent: EntriesContentIgnore,
		ReadOnly:       ReadOnlyError,
		WriteOnly:      WriteOnlyCreateOnly,
	}
}

// WithDefaults fills empty policy values with their defaults.
func (p Policies) WithDefaults() Policies {
	defaults := DefaultPolicies()
	if p.AbsentEntries == "" {
		p.AbsentEntries = defaults.AbsentEntries
	}
	if p.EntriesContent == "" {
		p.EntriesContent = defaults.EntriesContent
	}
	if p.ReadOnly == "" {
		p.ReadOnly = defaults.ReadOnly
	}
	if p.WriteOnly == "" {
		p.WriteOnly = defaults.WriteOnly
	}
	return p
}
