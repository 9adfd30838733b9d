// Package rat provides the exact numeric representation used when building
// LP problems: a rational number tagged with an explicit infinity, so that
// unbounded quantities are never approximated by a large rational.
//
// Heterogeneous inputs (integers, decimals, fractions, floats, strings) are
// converted through Coerce. Exact kinds round-trip without precision loss;
// native floats are truncated to 15 significant digits before parsing, which
// is a documented approximation rather than a bug.
package rat

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Kind discriminates the value union. Arithmetic and comparisons consult
// the kind before touching the rational payload.
type Kind uint8

const (
	// Finite is an exact rational number.
	Finite Kind = iota
	// PosInf is positive infinity.
	PosInf
	// NegInf is negative infinity.
	NegInf
)

// ErrNonNumeric marks inputs that cannot be rationalized at all, such as
// symbolic expressions. Callers may substitute an exact zero; this is the
// best-effort fallback, not a hard failure.
var ErrNonNumeric = errors.New("rat: value is not numeric")

// Value is an exact rational number or a signed infinity.
// The zero Value is the exact rational 0.
type Value struct {
	kind Kind
	num  big.Rat
}

// Zero returns the exact rational 0.
func Zero() Value {
	return Value{}
}

// Inf returns positive infinity, suitable for unbounded upper bounds.
func Inf() Value {
	return Value{kind: PosInf}
}

// NegativeInf returns negative infinity, suitable for unbounded lower bounds.
func NegativeInf() Value {
	return Value{kind: NegInf}
}

// FromInt64 returns the exact rational n.
func FromInt64(n int64) Value {
	var v Value
	v.num.SetInt64(n)
	return v
}

// FromRat returns an exact copy of r.
func FromRat(r *big.Rat) Value {
	var v Value
	v.num.Set(r)
	return v
}

// FromFloat64 converts a native float by formatting it with 15 significant
// digits in general notation and parsing the result as a rational. Digits
// beyond the 15th are intentionally dropped. Float infinities map to the
// infinity kinds; NaN is an error.
func FromFloat64(f float64) (Value, error) {
	switch {
	case math.IsInf(f, 1):
		return Inf(), nil
	case math.IsInf(f, -1):
		return NegativeInf(), nil
	case math.IsNaN(f):
		return Value{}, fmt.Errorf("rat: cannot represent NaN")
	}
	return Parse(fmt.Sprintf("%.15g", f))
}

// Parse converts a numeric string to a Value. Decimal, scientific, and
// fraction ("p/q") notation are accepted, as are "inf"/"-inf" spellings.
// Malformed strings are a parse error, never silently coerced.
func Parse(s string) (Value, error) {
	t := strings.TrimSpace(s)
	switch strings.ToLower(t) {
	case "inf", "+inf", "infinity", "+infinity":
		return Inf(), nil
	case "-inf", "-infinity":
		return NegativeInf(), nil
	}
	var v Value
	if _, ok := v.num.SetString(t); !ok {
		return Value{}, fmt.Errorf("rat: cannot parse %q as a rational", s)
	}
	return v, nil
}

// Coerce converts an arbitrary numeric-like input to a Value.
//
// Supported inputs convert exactly (floats modulo the 15-digit truncation
// of FromFloat64). Anything else returns the zero Value together with
// ErrNonNumeric so the caller can decide between fallback and failure.
func Coerce(x any) (Value, error) {
	switch v := x.(type) {
	case Value:
		return v, nil
	case *Value:
		return *v, nil
	case int:
		return FromInt64(int64(v)), nil
	case int8:
		return FromInt64(int64(v)), nil
	case int16:
		return FromInt64(int64(v)), nil
	case int32:
		return FromInt64(int64(v)), nil
	case int64:
		return FromInt64(v), nil
	case uint:
		return fromUint64(uint64(v)), nil
	case uint8:
		return FromInt64(int64(v)), nil
	case uint16:
		return FromInt64(int64(v)), nil
	case uint32:
		return FromInt64(int64(v)), nil
	case uint64:
		return fromUint64(v), nil
	case float32:
		return FromFloat64(float64(v))
	case float64:
		return FromFloat64(v)
	case string:
		return Parse(v)
	case *big.Rat:
		return FromRat(v), nil
	case big.Rat:
		return FromRat(&v), nil
	case *big.Int:
		var out Value
		out.num.SetInt(v)
		return out, nil
	case big.Int:
		var out Value
		out.num.SetInt(&v)
		return out, nil
	case nil:
		return Value{}, ErrNonNumeric
	default:
		return Value{}, ErrNonNumeric
	}
}

func fromUint64(n uint64) Value {
	var v Value
	v.num.SetInt(new(big.Int).SetUint64(n))
	return v
}

// Kind returns the value's discriminator.
func (v Value) Kind() Kind {
	return v.kind
}

// IsFinite reports whether v is an exact rational.
func (v Value) IsFinite() bool {
	return v.kind == Finite
}

// IsInf reports whether v is an infinity with the given sign
// (sign > 0 positive, sign < 0 negative, 0 either).
func (v Value) IsInf(sign int) bool {
	switch v.kind {
	case PosInf:
		return sign >= 0
	case NegInf:
		return sign <= 0
	}
	return false
}

// Sign returns -1, 0 or +1 depending on the sign of v.
func (v Value) Sign() int {
	switch v.kind {
	case PosInf:
		return 1
	case NegInf:
		return -1
	}
	return v.num.Sign()
}

// Rat returns a fresh copy of the rational payload.
// It panics if v is infinite; check IsFinite first.
func (v Value) Rat() *big.Rat {
	if v.kind != Finite {
		panic("rat: Rat called on infinite value")
	}
	return new(big.Rat).Set(&v.num)
}

// Float64 returns the nearest float, with infinities mapping to ±Inf.
func (v Value) Float64() float64 {
	switch v.kind {
	case PosInf:
		return math.Inf(1)
	case NegInf:
		return math.Inf(-1)
	}
	f, _ := v.num.Float64()
	return f
}

// Cmp compares v and w, consulting the infinity kinds first.
func (v Value) Cmp(w Value) int {
	if v.kind != Finite || w.kind != Finite {
		vs, ws := infRank(v), infRank(w)
		if vs < ws {
			return -1
		}
		if vs > ws {
			return 1
		}
		return 0
	}
	return v.num.Cmp(&w.num)
}

func infRank(v Value) int {
	switch v.kind {
	case NegInf:
		return -1
	case PosInf:
		return 1
	}
	return 0
}

// Add returns v + w. An infinite operand dominates; the indeterminate
// sum of opposite infinities collapses to the exact zero.
func (v Value) Add(w Value) Value {
	if v.kind != Finite || w.kind != Finite {
		r := infRank(v) + infRank(w)
		switch {
		case r > 0:
			return Inf()
		case r < 0:
			return NegativeInf()
		case v.kind != Finite && w.kind != Finite:
			return Value{}
		case v.kind != Finite:
			return v
		default:
			return w
		}
	}
	var out Value
	out.num.Add(&v.num, &w.num)
	return out
}

// Mul returns v * w. The sign of an infinite product follows the operand
// signs; an infinity times zero is zero.
func (v Value) Mul(w Value) Value {
	if v.kind != Finite || w.kind != Finite {
		s := v.Sign() * w.Sign()
		switch {
		case s > 0:
			return Inf()
		case s < 0:
			return NegativeInf()
		default:
			return Value{}
		}
	}
	var out Value
	out.num.Mul(&v.num, &w.num)
	return out
}

// Neg returns -v.
func (v Value) Neg() Value {
	switch v.kind {
	case PosInf:
		return NegativeInf()
	case NegInf:
		return Inf()
	}
	var out Value
	out.num.Neg(&v.num)
	return out
}

// String renders the value as "p/q", an integer, or "+inf"/"-inf".
func (v Value) String() string {
	switch v.kind {
	case PosInf:
		return "+inf"
	case NegInf:
		return "-inf"
	}
	return v.num.RatString()
}
