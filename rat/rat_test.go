package rat

import (
	"fmt"
	"math"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerceExactKinds(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{3, "3"},
		{int64(-7), "-7"},
		{int8(-128), "-128"},
		{uint64(18446744073709551615), "18446744073709551615"},
		{"0.1", "1/10"},
		{"3/4", "3/4"},
		{"-2/6", "-1/3"},
		{"1e3", "1000"},
		{"  2/3  ", "2/3"},
		{"-0.25", "-1/4"},
		{big.NewRat(22, 7), "22/7"},
		{*big.NewRat(1, 2), "1/2"},
		{big.NewInt(42), "42"},
		{float64(0.5), "1/2"},
		{float64(0.1), "1/10"},
		{float32(0.25), "1/4"},
	}
	for _, tc := range cases {
		v, err := Coerce(tc.in)
		require.NoError(t, err, "coercing %v (%T)", tc.in, tc.in)
		assert.Equal(t, tc.want, v.String(), "coercing %v (%T)", tc.in, tc.in)
	}
}

func TestFromFloat64Truncation(t *testing.T) {
	// 1/3 has no finite decimal expansion; the conversion keeps exactly
	// 15 significant digits.
	v, err := FromFloat64(1.0 / 3.0)
	require.NoError(t, err)
	want, ok := new(big.Rat).SetString("0.333333333333333")
	require.True(t, ok)
	assert.Zero(t, v.Rat().Cmp(want))
}

func TestFromFloat64Infinities(t *testing.T) {
	v, err := FromFloat64(math.Inf(1))
	require.NoError(t, err)
	assert.True(t, v.IsInf(1))

	v, err = FromFloat64(math.Inf(-1))
	require.NoError(t, err)
	assert.True(t, v.IsInf(-1))

	_, err = FromFloat64(math.NaN())
	assert.Error(t, err)
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "12abc", "1/0x2", "one third", "nan"} {
		_, err := Parse(s)
		assert.Error(t, err, "parsing %q", s)
	}
}

func TestParseInfinitySpellings(t *testing.T) {
	for _, s := range []string{"inf", "+inf", "Infinity", " inf "} {
		v, err := Parse(s)
		require.NoError(t, err, "parsing %q", s)
		assert.True(t, v.IsInf(1), "parsing %q", s)
	}
	v, err := Parse("-inf")
	require.NoError(t, err)
	assert.True(t, v.IsInf(-1))
}

func TestCoerceNonNumeric(t *testing.T) {
	for _, in := range []any{nil, struct{}{}, []int{1}, map[string]int{}} {
		v, err := Coerce(in)
		assert.ErrorIs(t, err, ErrNonNumeric, "coercing %T", in)
		assert.True(t, v.IsFinite())
		assert.Zero(t, v.Sign())
	}
}

func TestCmpConsultsKindFirst(t *testing.T) {
	huge := FromInt64(1 << 60)
	assert.Equal(t, -1, NegativeInf().Cmp(huge.Neg()))
	assert.Equal(t, 1, Inf().Cmp(huge))
	assert.Equal(t, 0, Inf().Cmp(Inf()))
	assert.Equal(t, -1, NegativeInf().Cmp(Inf()))
	assert.Equal(t, 0, FromInt64(2).Cmp(FromInt64(2)))
}

func TestArithmetic(t *testing.T) {
	half, err := Parse("1/2")
	require.NoError(t, err)
	third, err := Parse("1/3")
	require.NoError(t, err)

	assert.Equal(t, "5/6", half.Add(third).String())
	assert.Equal(t, "1/6", half.Mul(third).String())
	assert.Equal(t, "-1/2", half.Neg().String())

	assert.True(t, Inf().Add(FromInt64(5)).IsInf(1))
	assert.True(t, NegativeInf().Add(NegativeInf()).IsInf(-1))
	assert.True(t, Inf().Mul(FromInt64(-2)).IsInf(-1))
	assert.True(t, Inf().Mul(Zero()).IsFinite())
}

func TestFloat64RoundTrip(t *testing.T) {
	v, err := Parse("3/8")
	require.NoError(t, err)
	assert.Equal(t, 0.375, v.Float64())
	assert.True(t, math.IsInf(Inf().Float64(), 1))
	assert.True(t, math.IsInf(NegativeInf().Float64(), -1))
}

func TestValueCopiesArePure(t *testing.T) {
	a := FromInt64(2)
	b := a.Add(FromInt64(3))
	assert.Equal(t, "2", a.String())
	assert.Equal(t, "5", b.String())

	r := a.Rat()
	r.SetInt64(99)
	assert.Equal(t, "2", a.String())
}

func TestCoerceProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("integers round-trip exactly", prop.ForAll(
		func(n int64) bool {
			v, err := Coerce(n)
			if err != nil {
				return false
			}
			return v.Rat().Cmp(new(big.Rat).SetInt64(n)) == 0
		},
		gen.Int64(),
	))

	properties.Property("fraction strings round-trip exactly", prop.ForAll(
		func(p int64, q int64) bool {
			if q == 0 {
				return true
			}
			v, err := Coerce(fmt.Sprintf("%d/%d", p, q))
			if err != nil {
				return false
			}
			return v.Rat().Cmp(big.NewRat(p, q)) == 0
		},
		gen.Int64(),
		gen.Int64(),
	))

	properties.Property("floats agree to 15 significant digits", prop.ForAll(
		func(f float64) bool {
			if math.Abs(f) < 1e-12 {
				return true
			}
			v, err := FromFloat64(f)
			if err != nil {
				return false
			}
			got := v.Float64()
			return math.Abs(got-f) <= math.Abs(f)*1e-14
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.TestingRun(t)
}
