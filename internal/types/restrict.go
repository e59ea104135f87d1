package types

// RestrictRule limits a run to the entries whose Field matches. An absent
// field matches when MatchDisabled is set; a present one when it equals one
// of Values or matches Regex. Invert negates the outcome.
type RestrictRule struct {
	Field         string  `yaml:"field"`
	MatchDisabled bool    `yaml:"match_disabled"`
	Values        []Value `yaml:"values"`
	Regex         string  `yaml:"regex"`
	Invert        bool    `yaml:"invert"`
}
