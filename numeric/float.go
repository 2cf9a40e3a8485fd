package numeric

import (
	"fmt"
	"math/big"
)

// DefaultPrec is the precision used by the hardware-double fast path,
// matching IEEE-754 binary64's 53-bit mantissa.
const DefaultPrec = 53

// Float is a rounded float value at a fixed precision. It wraps big.Float
// so that both the hardware-double case (Prec == DefaultPrec) and the
// arbitrary-precision case share one representation and one set of
// correctly-rounded primitives, the way ntru/csign.go builds every
// residual computation on big.Float.SetPrec rather than float64.
type Float struct {
	v *big.Float
}

// DomainError reports an operation that has no defined real result
// (log of a non-positive number, sqrt of a negative number, 0/0).
type DomainError struct {
	Op     string
	Detail string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("numeric: %s: %s", e.Op, e.Detail)
}

// FromFloat64 builds a Float carrying the exact value of f at precision prec.
func FromFloat64(f float64, prec uint) Float {
	return Float{v: new(big.Float).SetPrec(prec).SetFloat64(f)}
}

// FromInt64 builds an exact integer Float at precision prec.
func FromInt64(n int64, prec uint) Float {
	return Float{v: new(big.Float).SetPrec(prec).SetInt64(n)}
}

// FromBig adopts an existing big.Float (copied, never aliased).
func FromBig(b *big.Float) Float {
	return Float{v: new(big.Float).Set(b)}
}

// Prec returns the value's bit precision.
func (x Float) Prec() uint {
	if x.v == nil {
		return 0
	}
	return x.v.Prec()
}

// Float64 returns the nearest float64 to x.
func (x Float) Float64() float64 {
	f, _ := x.v.Float64()
	return f
}

// Big returns a defensive copy of the underlying big.Float.
func (x Float) Big() *big.Float {
	return new(big.Float).Set(x.v)
}

// Sign returns -1, 0 or +1.
func (x Float) Sign() int {
	return x.v.Sign()
}

// IsZero reports whether x is exactly zero.
func (x Float) IsZero() bool {
	return x.v.Sign() == 0
}

// Cmp compares x and y as real numbers.
func (x Float) Cmp(y Float) int {
	return x.v.Cmp(y.v)
}

// Neg returns -x exactly (negation never rounds).
func (x Float) Neg() Float {
	return Float{v: new(big.Float).SetPrec(x.v.Prec()).Neg(x.v)}
}

// Abs returns |x| exactly.
func (x Float) Abs() Float {
	return Float{v: new(big.Float).SetPrec(x.v.Prec()).Abs(x.v)}
}

func result(prec uint, dir Direction) *big.Float {
	z := new(big.Float)
	z.SetPrec(prec)
	z.SetMode(dir.mode())
	return z
}

// Add returns x+y rounded to prec bits in direction dir. big.Float's
// arithmetic primitives are correctly rounded, so this is exact outward
// rounding, not an approximation.
func Add(x, y Float, prec uint, dir Direction) Float {
	return Float{v: result(prec, dir).Add(x.v, y.v)}
}

// Sub returns x-y rounded to prec bits in direction dir.
func Sub(x, y Float, prec uint, dir Direction) Float {
	return Float{v: result(prec, dir).Sub(x.v, y.v)}
}

// Mul returns x*y rounded to prec bits in direction dir.
func Mul(x, y Float, prec uint, dir Direction) Float {
	return Float{v: result(prec, dir).Mul(x.v, y.v)}
}

// Div returns x/y rounded to prec bits in direction dir. Division by an
// exact zero is a DomainError, not an infinity.
func Div(x, y Float, prec uint, dir Direction) (Float, error) {
	if y.IsZero() {
		return Float{}, &DomainError{Op: "div", Detail: "division by zero"}
	}
	return Float{v: result(prec, dir).Quo(x.v, y.v)}, nil
}

// Sqrt returns sqrt(x) rounded to prec bits in direction dir. Negative x
// is a DomainError; big.Float.Sqrt itself only accepts non-negative
// operands in Go's stdlib, so this guards the same contract explicitly.
func Sqrt(x Float, prec uint, dir Direction) (Float, error) {
	if x.Sign() < 0 {
		return Float{}, &DomainError{Op: "sqrt", Detail: "negative operand"}
	}
	return Float{v: result(prec, dir).Sqrt(x.v)}, nil
}

// Div2 returns x/2. Division by two is exact for a binary floating
// point value (only the exponent changes), so no rounding direction is
// needed.
func Div2(x Float, prec uint) Float {
	return Float{v: new(big.Float).SetPrec(prec).Quo(x.v, big.NewFloat(2))}
}

// Min returns the smaller of x, y (no rounding: the operands are already
// representable).
func Min(x, y Float) Float {
	if x.v.Cmp(y.v) <= 0 {
		return x
	}
	return y
}

// Max returns the larger of x, y.
func Max(x, y Float) Float {
	if x.v.Cmp(y.v) >= 0 {
		return x
	}
	return y
}

// PosInf returns +Infinity at precision prec.
func PosInf(prec uint) Float {
	return Float{v: new(big.Float).SetPrec(prec).SetInf(false)}
}

// NegInf returns -Infinity at precision prec.
func NegInf(prec uint) Float {
	return Float{v: new(big.Float).SetPrec(prec).SetInf(true)}
}

// IsInf reports whether x is +/-Infinity.
func (x Float) IsInf() bool {
	return x.v.IsInf()
}

func (x Float) String() string {
	return x.v.Text('g', int(x.v.Prec()/3+4))
}
