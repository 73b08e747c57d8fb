package sketch

import (
	"strings"

	"github.com/depsketch/depsketch/pkg/errors"
)

// placeholder is the positional substitution token.
const placeholder = "%s"

// substituter replaces placeholder tokens with values from an ordered
// list, consuming the list strictly left-to-right across lines. One
// substituter lives for exactly one stanza; the cursor never carries over.
type substituter struct {
	values []string
	next   int
}

func newSubstituter(values []string) *substituter {
	return &substituter{values: values}
}

// apply replaces every placeholder in line with the next unused value.
// Substituted values are not rescanned, so a value may itself contain the
// placeholder token. With a nil value list the engine is disabled and the
// line passes through untouched; an exhausted non-nil list is an error.
func (s *substituter) apply(line string) (string, error) {
	if s.values == nil {
		return line, nil
	}

	var b strings.Builder
	for {
		idx := strings.Index(line, placeholder)
		if idx < 0 {
			b.WriteString(line)
			return b.String(), nil
		}
		if s.next >= len(s.values) {
			return "", errors.New(errors.ErrCodeSubstitution,
				"placeholder %d has no substitution value (%d supplied)", s.next+1, len(s.values))
		}
		b.WriteString(line[:idx])
		b.WriteString(s.values[s.next])
		s.next++
		line = line[idx+len(placeholder):]
	}
}
