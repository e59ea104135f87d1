package types

import "strings"

// Path names a configuration resource collection, e.g. "ip firewall filter".
type Path []string

func ParsePath(raw string) Path {
	return Path(strings.Fields(raw))
}

func (p Path) String() string {
	return strings.Join(p, " ")
}

func (p Path) IsEmpty() bool {
	return len(p) == 0
}

func (p Path) MarshalYAML() (any, error) {
	return p.String(), nil
}

func (p *Path) UnmarshalYAML(unmarshal func(any) error) error {
	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}
	*p = ParsePath(raw)
	return nil
}
