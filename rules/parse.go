package rules

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Parse reads a rule in B/S notation. Both "B3/S23" and "S23/B3" are accepted,
// case-insensitively. Each digit is one neighbour count unless the part holds
// commas, in which case it is a comma separated list ("B3,6/S12,13").
func Parse(s string) (Rule, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 2 {
		return Rule{}, invalidRule(s, "expected B<counts>/S<counts>")
	}

	var (
		birth, survive []int
		seenB, seenS   bool
	)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return Rule{}, invalidRule(s, "missing B or S prefix")
		}
		var dst *[]int
		switch unicode.ToUpper(rune(part[0])) {
		case 'B':
			if seenB {
				return Rule{}, invalidRule(s, "birth given twice")
			}
			seenB, dst = true, &birth
		case 'S':
			if seenS {
				return Rule{}, invalidRule(s, "survive given twice")
			}
			seenS, dst = true, &survive
		default:
			return Rule{}, invalidRule(s, "unexpected prefix %q", part[0])
		}

		counts, err := parseCounts(s, part[1:])
		if err != nil {
			return Rule{}, err
		}
		*dst = counts
	}

	r, err := New(birth, survive)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[Parse] rule %q", s)
	}
	return r, nil
}

func parseCounts(input, body string) ([]int, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, nil
	}
	if strings.Contains(body, ",") {
		return parseList(input, body)
	}
	counts := make([]int, 0, len(body))
	for _, c := range body {
		if c < '0' || c > '9' {
			return nil, invalidRule(input, "unexpected character %q", c)
		}
		counts = append(counts, int(c-'0'))
	}
	return counts, nil
}

func parseList(input, list string) ([]int, error) {
	list = strings.TrimSpace(list)
	if list == "" {
		return nil, nil
	}
	fields := strings.Split(list, ",")
	counts := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, invalidRule(input, "%q is not an integer", f)
		}
		counts = append(counts, n)
	}
	return counts, nil
}

// ParseLists builds a rule from two comma separated lists of counts, the way
// custom rules are typed in by hand ("3" and "2,3"). An empty survive list is
// the empty set.
func ParseLists(birth, survive string) (Rule, error) {
	b, err := parseList(birth, birth)
	if err != nil {
		return Rule{}, err
	}
	s, err := parseList(survive, survive)
	if err != nil {
		return Rule{}, err
	}
	r, err := New(b, s)
	if err != nil {
		return Rule{}, errors.Wrapf(err, "[ParseLists] birth %q survive %q", birth, survive)
	}
	return r, nil
}
