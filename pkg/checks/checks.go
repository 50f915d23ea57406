// Package checks defines declared checks and the bounds evaluation applied to
// their match counts.
package checks

// Check is a rule read from a checks document. Pattern is opaque here; it is
// handed to the search collaborator unchanged.
type Check struct {
	ID          string `yaml:"id" json:"id"`
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description,omitempty" json:"description"`
	Pattern     string `yaml:"pattern" json:"pattern"`
	Code        string `yaml:"code" json:"code"`
	Count       *Count `yaml:"count,omitempty" json:"count,omitempty"`
}

// Count holds the optional occurrence bounds of a check.
type Count struct {
	Min *int `yaml:"min" json:"min"`
	Max *int `yaml:"max" json:"max"`
}

// File is the top-level shape of a checks document.
type File struct {
	Checks []Check `yaml:"checks" json:"checks"`
}

// Bounds returns the declared minimum and maximum, nil when absent.
func (c Check) Bounds() (minCount, maxCount *int) {
	if c.Count == nil {
		return nil, nil
	}
	return c.Count.Min, c.Count.Max
}

// Enforceable reports whether the check declares at least one bound.
func (c Check) Enforceable() bool {
	minCount, maxCount := c.Bounds()
	return IsEnforceable(minCount, maxCount)
}

// IsEnforceable is false only when both bounds are absent.
func IsEnforceable(minCount, maxCount *int) bool {
	return minCount != nil || maxCount != nil
}

// Evaluate reports whether count satisfies the declared bounds. With both
// bounds the interval is closed, so inverted bounds (min > max) never pass.
// A single bound is tested alone: count >= min, or count <= max.
func Evaluate(count int, minCount, maxCount *int) bool {
	switch {
	case minCount != nil && maxCount != nil:
		return *minCount <= count && count <= *maxCount
	case minCount != nil:
		return count >= *minCount
	case maxCount != nil:
		return count <= *maxCount
	default:
		return true
	}
}

// Passed is the verdict recorded on a result: non-enforceable checks always
// pass, others pass when Evaluate does.
func Passed(count int, minCount, maxCount *int) bool {
	if !IsEnforceable(minCount, maxCount) {
		return true
	}
	return Evaluate(count, minCount, maxCount)
}

// Int returns a pointer to v, for building bounds in code and tests.
func Int(v int) *int { return &v }
