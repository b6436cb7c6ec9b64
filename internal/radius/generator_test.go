package radius

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddAll(t *testing.T) {
	empty := AddAll()
	for _, d := range []float64{0, 90, 359} {
		assert.Equal(t, 0.0, empty(d))
	}
	assert.Equal(t, 5.0, AddAll(Constant(2), Constant(3))(123))
}

func TestMinMax(t *testing.T) {
	id := Generator(func(d float64) float64 { return d })
	assert.Equal(t, 10.0, Max(Constant(10), id)(5))
	assert.Equal(t, 20.0, Max(Constant(10), id)(20))
	assert.Equal(t, 5.0, Min(Constant(10), id)(5))
	assert.Equal(t, -3.0, Min(Constant(-3))(99))
	assert.Equal(t, 0.0, Max()(1))
}

func TestBinaryOps(t *testing.T) {
	id := Generator(func(d float64) float64 { return d })
	assert.Equal(t, 12.0, Multiply(Constant(3), id)(4))
	assert.Equal(t, 7.0, Add(Constant(3), id)(4))
	assert.Equal(t, -4.0, Invert(id)(4))
	// order does not matter
	assert.Equal(t, Add(id, Constant(3))(4), Add(Constant(3), id)(4))
}

func TestAtLeastIsAdditive(t *testing.T) {
	assert.Equal(t, -110.0, AtLeast(90, Constant(-200))(0))
	assert.Equal(t, 100.0, AtLeast(90, Constant(10))(45))
}

func TestDistanceFrom(t *testing.T) {
	tests := []struct {
		anchor, degree, want float64
	}{
		{350, 10, 20},
		{10, 350, 20},
		{0, 180, 180},
		{90, 90, 0},
		{45, 90, 45},
	}
	for _, tt := range tests {
		fn := DistanceFrom(func() float64 { return tt.anchor })
		assert.InDelta(t, tt.want, fn(tt.degree), 1e-9, "anchor=%v degree=%v", tt.anchor, tt.degree)
	}
}

func TestDistanceFromReadsAnchorPerCall(t *testing.T) {
	anchor := 0.0
	fn := DistanceFrom(func() float64 { return anchor })
	assert.Equal(t, 30.0, fn(30))
	anchor = 30
	assert.Equal(t, 0.0, fn(30))
}

func TestIncrement(t *testing.T) {
	t.Run("36 degree steps", func(t *testing.T) {
		got := Increment(func(d float64) float64 { return d }, 360, 36, 0)
		assert.Equal(t, []float64{0, 36, 72, 108, 144, 180, 216, 252, 288, 324}, got)
	})

	t.Run("descending", func(t *testing.T) {
		got := Increment(func(d float64) float64 { return d }, 0, 90, 360)
		assert.Equal(t, []float64{360, 270, 180, 90}, got)
	})

	t.Run("always samples once", func(t *testing.T) {
		got := Increment(func(d float64) float64 { return d }, 0, 1, 0)
		assert.Equal(t, []float64{0}, got)
	})

	t.Run("non-positive step falls back to one", func(t *testing.T) {
		got := Increment(func(d float64) float64 { return d }, 3, 0, 0)
		assert.Equal(t, []float64{0, 1, 2}, got)
	})

	t.Run("maps to any type", func(t *testing.T) {
		got := Increment(func(d float64) string {
			if d < 180 {
				return "front"
			}
			return "back"
		}, 360, 180, 0)
		assert.Equal(t, []string{"front", "back"}, got)
	})
}
