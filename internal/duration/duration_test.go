package duration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Duration
		expected Duration
	}{
		{"halves", Half, Half, Bar},
		{"thirds", New(1, 3), New(1, 3), New(2, 3)},
		{"mixed denominators", New(1, 4), New(1, 6), New(5, 12)},
		{"zero identity", Quarter, Zero, Quarter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.a.Add(tt.b).Equal(tt.expected))
		})
	}
}

func TestSub(t *testing.T) {
	assert.True(t, Bar.Sub(Half).Equal(Half))
	assert.True(t, New(3, 4).Sub(New(1, 2)).Equal(Quarter))
}

func TestMul(t *testing.T) {
	assert.True(t, Half.Mul(Half).Equal(Quarter))
	assert.True(t, Half.MulInt(4).Equal(New(2, 1)))
	assert.True(t, New(1, 3).MulInt(3).Equal(Bar))
}

func TestDiv(t *testing.T) {
	assert.True(t, Bar.DivInt(3).Equal(New(1, 3)))
	assert.True(t, Bar.Div(New(1, 3)).Equal(New(3, 1)))
	assert.True(t, IntOverDuration(4, New(1, 2)).Equal(New(8, 1)))
}

func TestDivIntNonPositivePanics(t *testing.T) {
	assert.Panics(t, func() { Bar.DivInt(0) })
	assert.Panics(t, func() { Bar.DivInt(-1) })
}

func TestNewZeroDenominatorPanics(t *testing.T) {
	assert.Panics(t, func() { New(1, 0) })
}

func TestEqualityIgnoresRepresentation(t *testing.T) {
	assert.True(t, New(2, 4).Equal(New(1, 2)))
	assert.Equal(t, New(2, 4), New(1, 2))
}

func TestOrdering(t *testing.T) {
	assert.True(t, Quarter.Less(Half))
	assert.True(t, Half.Greater(Quarter))
	assert.True(t, Half.LessEqual(Half))
	assert.True(t, Half.GreaterEqual(Half))
	assert.False(t, Half.Less(Quarter))
}

func TestCommutativeAndAssociative(t *testing.T) {
	a, b, c := New(1, 3), New(1, 4), New(1, 6)
	assert.True(t, a.Add(b).Equal(b.Add(a)))
	assert.True(t, a.Mul(b).Equal(b.Mul(a)))
	assert.True(t, a.Add(b).Add(c).Equal(a.Add(b.Add(c))))
	assert.True(t, a.Mul(b).Mul(c).Equal(a.Mul(b.Mul(c))))
}

func TestDistributive(t *testing.T) {
	a, b, c := New(1, 3), New(1, 4), New(2, 5)
	left := a.Mul(b.Add(c))
	right := a.Mul(b).Add(a.Mul(c))
	assert.True(t, left.Equal(right))
}

func TestDivThenMulRoundTrips(t *testing.T) {
	a, b := New(3, 7), New(5, 11)
	assert.True(t, a.Div(b).Mul(b).Equal(a))
}

func TestAddSubRoundTrips(t *testing.T) {
	a, b := New(3, 7), New(5, 11)
	assert.True(t, a.Add(b.Sub(a)).Equal(b))
}

func TestString(t *testing.T) {
	assert.Equal(t, "1/2", Half.String())
	assert.Equal(t, "3/4", New(3, 4).String())
}

func TestMarshalJSON(t *testing.T) {
	data, err := New(1, 3).MarshalJSON()
	assert.NoError(t, err)
	assert.JSONEq(t, `{"num":1,"den":3}`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	var d Duration
	assert.NoError(t, d.UnmarshalJSON([]byte(`{"num":2,"den":4}`)))
	assert.True(t, d.Equal(Half))
}
