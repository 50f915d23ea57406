// Package filter narrows a check list by fuzzy matching one check attribute
// against include and exclude criteria.
package filter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/dkoosis/chasten/pkg/checks"
)

// DefaultConfidence is the similarity threshold used when none is given.
const DefaultConfidence = 80

// Attribute names the check field a criterion is matched against.
type Attribute int

const (
	AttributeNone Attribute = iota
	AttributeName
	AttributeCode
	AttributeID
	AttributePattern
)

var attributeNames = map[Attribute]string{
	AttributeNone:    "none",
	AttributeName:    "name",
	AttributeCode:    "code",
	AttributeID:      "id",
	AttributePattern: "pattern",
}

func (a Attribute) String() string {
	if s, ok := attributeNames[a]; ok {
		return s
	}
	return "attribute(" + strconv.Itoa(int(a)) + ")"
}

// MarshalText lets criteria serialize as their attribute name.
func (a Attribute) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses an attribute name.
func (a *Attribute) UnmarshalText(text []byte) error {
	parsed, err := ParseAttribute(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseAttribute maps a name to its Attribute, case-insensitively.
func ParseAttribute(s string) (Attribute, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for a, name := range attributeNames {
		if name == want {
			return a, nil
		}
	}
	return AttributeNone, fmt.Errorf("unknown check attribute %q (expected name, code, id, pattern, or none)", s)
}

// Value returns the attribute's value on c.
func (a Attribute) Value(c checks.Check) string {
	switch a {
	case AttributeName:
		return c.Name
	case AttributeCode:
		return c.Code
	case AttributeID:
		return c.ID
	case AttributePattern:
		return c.Pattern
	default:
		return ""
	}
}

// Criterion is one include or exclude rule. A zero Confidence selects
// DefaultConfidence; other values are clamped to [0,100].
type Criterion struct {
	Attribute  Attribute `json:"attribute"`
	Match      string    `json:"match"`
	Confidence int       `json:"confidence"`
}

// Absent reports whether c filters nothing.
func (c *Criterion) Absent() bool {
	return c == nil || c.Attribute == AttributeNone || c.Match == ""
}

func (c *Criterion) threshold() int {
	switch {
	case c.Confidence == 0:
		return DefaultConfidence
	case c.Confidence < 0:
		return 0
	case c.Confidence > 100:
		return 100
	default:
		return c.Confidence
	}
}

// ParseCriterion builds a criterion from the command-line triple
// attribute,match[,confidence]. An empty slice yields nil.
func ParseCriterion(parts []string) (*Criterion, error) {
	if len(parts) == 0 {
		return nil, nil
	}
	if len(parts) < 2 || len(parts) > 3 {
		return nil, fmt.Errorf("criterion needs attribute,match[,confidence], got %d value(s)", len(parts))
	}
	attr, err := ParseAttribute(parts[0])
	if err != nil {
		return nil, err
	}
	c := &Criterion{Attribute: attr, Match: parts[1], Confidence: DefaultConfidence}
	if len(parts) == 3 {
		conf, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil || conf < 0 || conf > 100 {
			return nil, fmt.Errorf("confidence must be an integer from 0 to 100, got %q", parts[2])
		}
		c.Confidence = conf
	}
	return c, nil
}

// ParseCriterionFlag parses a single attribute,match[,confidence] flag value.
// The match text may itself contain commas: only a trailing field that looks
// like an integer is taken as the confidence. An empty value yields nil.
func ParseCriterionFlag(value string) (*Criterion, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	attr, rest, ok := strings.Cut(value, ",")
	if !ok {
		return ParseCriterion([]string{attr})
	}
	if i := strings.LastIndex(rest, ","); i >= 0 {
		if _, err := strconv.Atoi(strings.TrimSpace(rest[i+1:])); err == nil {
			return ParseCriterion([]string{attr, rest[:i], rest[i+1:]})
		}
	}
	return ParseCriterion([]string{attr, rest})
}

// Filter keeps, in include mode, the checks scoring at least the criterion's
// confidence; in exclude mode, those scoring below it. An absent criterion
// returns the input unchanged.
func Filter(in []checks.Check, c *Criterion, include bool) []checks.Check {
	if c.Absent() {
		return in
	}
	threshold := c.threshold()
	out := make([]checks.Check, 0, len(in))
	for _, chk := range in {
		matched := Similarity(c.Match, c.Attribute.Value(chk)) >= threshold
		if matched == include {
			out = append(out, chk)
		}
	}
	return out
}

// Apply runs the include pass and then the exclude pass.
func Apply(in []checks.Check, include, exclude *Criterion) []checks.Check {
	return Filter(Filter(in, include, true), exclude, false)
}

// Similarity scores how well a matches b from 0 to 100: the best
// case-insensitive Levenshtein similarity between the shorter string and any
// equally long window of the longer one.
func Similarity(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	lev := metrics.NewLevenshtein()
	lev.CaseSensitive = false

	needle := string(short)
	best := 0.0
	for i := 0; i+len(short) <= len(long); i++ {
		s := strutil.Similarity(needle, string(long[i:i+len(short)]), lev)
		if s > best {
			best = s
			if best == 1 {
				break
			}
		}
	}
	return int(math.Round(best * 100))
}
