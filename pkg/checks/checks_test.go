package checks

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEnforceable(t *testing.T) {
	tests := []struct {
		name     string
		minCount, maxCount *int
		want     bool
	}{
		{"neither", nil, nil, false},
		{"min only", Int(1), nil, true},
		{"max only", nil, Int(10), true},
		{"both", Int(1), Int(10), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEnforceable(tt.minCount, tt.maxCount))
		})
	}
}

func TestEvaluate_BothBoundsIsClosedInterval(t *testing.T) {
	for lo := 0; lo <= 6; lo++ {
		for hi := 0; hi <= 6; hi++ {
			for count := 0; count <= 8; count++ {
				want := lo <= count && count <= hi
				assert.Equal(t, want, Evaluate(count, Int(lo), Int(hi)),
					"count=%d min=%d max=%d", count, lo, hi)
			}
		}
	}
}

func TestEvaluate_InvertedBoundsNeverPass(t *testing.T) {
	for count := -2; count <= 20; count++ {
		assert.False(t, Evaluate(count, Int(10), Int(1)), "count=%d", count)
	}
}

func TestEvaluate_SingleBound(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		minCount, maxCount *int
		want     bool
	}{
		{"min satisfied", 5, Int(5), nil, true},
		{"min violated", 4, Int(5), nil, false},
		{"max satisfied", 5, nil, Int(5), true},
		{"max violated", 6, nil, Int(5), false},
		{"zero with max", 0, nil, Int(0), true},
		{"no bounds", 1000, nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.count, tt.minCount, tt.maxCount))
		})
	}
}

func TestPassed_NonEnforceableAlwaysPasses(t *testing.T) {
	for _, count := range []int{0, 1, 99} {
		assert.True(t, Passed(count, nil, nil))
	}
}

func TestPassed_Scenarios(t *testing.T) {
	// min=1,max=10: zero matches fails, five pass.
	assert.False(t, Passed(0, Int(1), Int(10)))
	assert.True(t, Passed(5, Int(1), Int(10)))
}

func TestCheck_Bounds(t *testing.T) {
	c := Check{Name: "test"}
	lo, hi := c.Bounds()
	assert.Nil(t, lo)
	assert.Nil(t, hi)
	assert.False(t, c.Enforceable())

	c.Count = &Count{Max: Int(10)}
	lo, hi = c.Bounds()
	assert.Nil(t, lo)
	assert.Equal(t, 10, *hi)
	assert.True(t, c.Enforceable())
}
