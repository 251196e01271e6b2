package xmlpath

import (
	"errors"
	"fmt"
	"strings"
)

// Step is one element selection in a path.
type Step struct {
	Prefix string
	Local  string

	// Optional [@AttrName='AttrValue'] filter.
	AttrName  string
	AttrValue string
}

// Path is a parsed element path.
type Path struct {
	Raw        string
	Descendant bool
	Steps      []Step
}

// QName returns the prefixed name of the step.
func (s Step) QName() string {
	return s.Prefix + ":" + s.Local
}

// HasFilter reports whether the step carries an attribute filter.
func (s Step) HasFilter() bool {
	return s.AttrName != ""
}

// String returns the step in path syntax.
func (s Step) String() string {
	if !s.HasFilter() {
		return s.QName()
	}

	return fmt.Sprintf("%s[@%s='%s']", s.QName(), s.AttrName, s.AttrValue)
}

// String returns the path in canonical syntax.
func (p Path) String() string {
	parts := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		parts = append(parts, s.String())
	}

	lead := "/"
	if p.Descendant {
		lead = "//"
	}

	return lead + strings.Join(parts, "/")
}

// Prefixes returns the distinct prefixes used by the path, in order of use.
func (p Path) Prefixes() []string {
	var out []string

	seen := map[string]struct{}{}

	for _, s := range p.Steps {
		if _, ok := seen[s.Prefix]; ok {
			continue
		}

		seen[s.Prefix] = struct{}{}
		out = append(out, s.Prefix)
	}

	return out
}

// Leaf returns the last step of the path.
func (p Path) Leaf() Step {
	return p.Steps[len(p.Steps)-1]
}

// Parse parses a path string into a Path.
// Supports: "/a:B/a:C", "//a:C", "/a:B/a:C[@x='y']".
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{}, errors.New("empty path")
	}

	p := Path{Raw: raw}

	rest := raw

	switch {
	case strings.HasPrefix(rest, "//"):
		p.Descendant = true
		rest = rest[2:]
	case strings.HasPrefix(rest, "/"):
		rest = rest[1:]
	default:
		return Path{}, fmt.Errorf("invalid path %q: must start with / or //", raw)
	}

	for _, part := range splitSteps(rest) {
		if part == "" {
			return Path{}, fmt.Errorf("invalid path %q: empty segment", raw)
		}

		step, err := parseStep(part)
		if err != nil {
			return Path{}, fmt.Errorf("invalid path %q: %w", raw, err)
		}

		p.Steps = append(p.Steps, step)
	}

	return p, nil
}

// MustParse is like Parse but panics on error.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return p
}

// splitSteps splits on "/" outside of quoted filter values.
func splitSteps(s string) []string {
	var parts []string

	start := 0
	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case c == '/':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}

	return append(parts, s[start:])
}

func parseStep(s string) (Step, error) {
	name := s

	var step Step

	if i := strings.IndexByte(s, '['); i >= 0 {
		name = s[:i]

		filter := s[i:]
		if !strings.HasPrefix(filter, "[@") || !strings.HasSuffix(filter, "]") {
			return Step{}, fmt.Errorf("unsupported filter %q", filter)
		}

		attr, value, ok := strings.Cut(filter[2:len(filter)-1], "=")
		if !ok || len(value) < 2 {
			return Step{}, fmt.Errorf("filter %q must compare an attribute to a quoted value", filter)
		}

		q := value[0]
		if (q != '\'' && q != '"') || value[len(value)-1] != q {
			return Step{}, fmt.Errorf("filter %q has mismatched quotes", filter)
		}

		if !isValidName(attr) {
			return Step{}, fmt.Errorf("invalid attribute name %q", attr)
		}

		step.AttrName = attr
		step.AttrValue = value[1 : len(value)-1]
	}

	prefix, local, ok := strings.Cut(name, ":")
	if !ok {
		return Step{}, fmt.Errorf("element %q has no namespace prefix", name)
	}

	if !isValidName(prefix) {
		return Step{}, fmt.Errorf("invalid prefix %q", prefix)
	}

	if !isValidName(local) {
		return Step{}, fmt.Errorf("invalid element name %q", local)
	}

	step.Prefix = prefix
	step.Local = local

	return step, nil
}

// isValidName checks a (simplified) XML NCName.
func isValidName(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		if i == 0 {
			if !isLetter(r) && r != '_' {
				return false
			}

			continue
		}

		if !isLetter(r) && !isDigit(r) && r != '_' && r != '-' && r != '.' {
			return false
		}
	}

	return true
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
