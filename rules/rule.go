package rules

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// MaxNeighbors is the size of the 3D Moore neighbourhood.
const MaxNeighbors = 26

// Rule holds the birth and survival neighbour counts of one automaton variant.
// The zero value has no birth or survival conditions; use New to build one.
type Rule struct {
	birth   []int
	survive []int
	max     int

	// bit n set when n is a member, only for n <= MaxNeighbors
	birthMask   uint32
	surviveMask uint32
}

// InvalidRuleError reports a rule that cannot be constructed.
type InvalidRuleError struct {
	Reason string
	Input  string
}

func (e *InvalidRuleError) Error() string {
	if e.Input == "" {
		return fmt.Sprintf("invalid rule: %s", e.Reason)
	}
	return fmt.Sprintf("invalid rule %q: %s", e.Input, e.Reason)
}

func invalidRule(input, format string, args ...interface{}) error {
	return errors.WithStack(&InvalidRuleError{Reason: fmt.Sprintf(format, args...), Input: input})
}

// New builds a Rule from birth and survive neighbour counts. Duplicates are
// dropped and Max is derived from the union of both sets.
//
// Negative counts and an empty birth set are rejected. An empty survive set is
// allowed and means every live cell dies each generation.
func New(birth, survive []int) (Rule, error) {
	if len(birth) == 0 {
		return Rule{}, invalidRule("", "birth set is empty")
	}
	for _, n := range birth {
		if n < 0 {
			return Rule{}, invalidRule("", "negative birth count %d", n)
		}
	}
	for _, n := range survive {
		if n < 0 {
			return Rule{}, invalidRule("", "negative survive count %d", n)
		}
	}

	r := Rule{
		birth:   normalize(birth),
		survive: normalize(survive),
		max:     -1,
	}
	r.birthMask = mask(r.birth)
	r.surviveMask = mask(r.survive)
	if len(r.birth) > 0 {
		r.max = r.birth[len(r.birth)-1]
	}
	if len(r.survive) > 0 {
		r.max = max(r.max, r.survive[len(r.survive)-1])
	}
	return r, nil
}

// MustNew is New that panics on error, for package-level rule tables.
func MustNew(birth, survive []int) Rule {
	r, err := New(birth, survive)
	if err != nil {
		panic(err)
	}
	return r
}

func normalize(in []int) []int {
	out := slices.Clone(in)
	slices.Sort(out)
	return slices.Compact(out)
}

func mask(set []int) (m uint32) {
	for _, n := range set {
		if n <= MaxNeighbors {
			m |= 1 << uint(n)
		}
	}
	return
}

// Birth returns the sorted birth counts.
func (r Rule) Birth() []int { return slices.Clone(r.birth) }

// Survive returns the sorted survive counts.
func (r Rule) Survive() []int { return slices.Clone(r.survive) }

// Max returns the largest count in either set. Neighbour counting may stop
// once the running total exceeds it, since no larger value is a member.
func (r Rule) Max() int { return r.max }

// Birthable reports whether a dead cell with n live neighbours is born.
func (r Rule) Birthable(n int) bool {
	if n < 0 || n > r.max {
		return false
	}
	if n <= MaxNeighbors {
		return r.birthMask&(1<<uint(n)) != 0
	}
	_, found := slices.BinarySearch(r.birth, n)
	return found
}

// Survivable reports whether a live cell with n live neighbours stays alive.
func (r Rule) Survivable(n int) bool {
	if n < 0 || n > r.max {
		return false
	}
	if n <= MaxNeighbors {
		return r.surviveMask&(1<<uint(n)) != 0
	}
	_, found := slices.BinarySearch(r.survive, n)
	return found
}

// Equal reports whether both rules have the same sets.
func (r Rule) Equal(o Rule) bool {
	return slices.Equal(r.birth, o.birth) && slices.Equal(r.survive, o.survive)
}

// String renders the rule in B/S notation, e.g. B3/S23. Counts are comma
// separated when any of them has more than one digit.
func (r Rule) String() string {
	return "B" + join(r.birth, r.max >= 10) + "/S" + join(r.survive, r.max >= 10)
}

func join(set []int, commas bool) string {
	parts := make([]string, len(set))
	for i, n := range set {
		parts[i] = strconv.Itoa(n)
	}
	if commas {
		return strings.Join(parts, ",")
	}
	return strings.Join(parts, "")
}
