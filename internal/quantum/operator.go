package quantum

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"strings"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDimensionMismatch is the panic value for arithmetic between
	// operators or states of different dimension.
	ErrDimensionMismatch = errors.New("quantum: dimension mismatch")

	// ErrInvalidDimension indicates a non-positive Hilbert space dimension.
	ErrInvalidDimension = errors.New("quantum: dimension must be positive")
)

// Operator is an immutable square operator on an n-dimensional Hilbert space.
type Operator struct {
	m *mat.CDense
	n int
}

// NewOperator builds an n×n operator from row-major data. The slice is copied.
func NewOperator(n int, data []complex128) *Operator {
	if n <= 0 {
		panic(ErrInvalidDimension)
	}
	if len(data) != n*n {
		panic(fmt.Errorf("%w: %d elements for %dx%d operator", ErrDimensionMismatch, len(data), n, n))
	}
	buf := make([]complex128, n*n)
	copy(buf, data)
	return &Operator{m: mat.NewCDense(n, n, buf), n: n}
}

// FromRows builds an operator from a square slice of rows.
func FromRows(rows [][]complex128) *Operator {
	n := len(rows)
	data := make([]complex128, 0, n*n)
	for _, r := range rows {
		if len(r) != n {
			panic(fmt.Errorf("%w: row of length %d in %dx%d operator", ErrDimensionMismatch, len(r), n, n))
		}
		data = append(data, r...)
	}
	return NewOperator(n, data)
}

// Zero returns the n×n zero operator.
func Zero(n int) *Operator {
	return NewOperator(n, make([]complex128, n*n))
}

// Identity returns the n×n identity.
func Identity(n int) *Operator {
	return Diagonal(onesLike(n)...)
}

// Diagonal returns an operator with the given diagonal entries.
func Diagonal(d ...complex128) *Operator {
	n := len(d)
	data := make([]complex128, n*n)
	for i, v := range d {
		data[i*n+i] = v
	}
	return NewOperator(n, data)
}

func onesLike(n int) []complex128 {
	d := make([]complex128, n)
	for i := range d {
		d[i] = 1
	}
	return d
}

func (o *Operator) Dim() int { return o.n }

func (o *Operator) At(i, j int) complex128 { return o.m.At(i, j) }

// Data returns a row-major copy of the matrix elements.
func (o *Operator) Data() []complex128 {
	data := make([]complex128, o.n*o.n)
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			data[i*o.n+j] = o.m.At(i, j)
		}
	}
	return data
}

func (o *Operator) mustMatch(other *Operator) {
	if o.n != other.n {
		panic(fmt.Errorf("%w: %dx%d and %dx%d", ErrDimensionMismatch, o.n, o.n, other.n, other.n))
	}
}

// elementwise applies f to every pair of entries and returns the result.
func (o *Operator) elementwise(other *Operator, f func(a, b complex128) complex128) *Operator {
	o.mustMatch(other)
	data := make([]complex128, o.n*o.n)
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			data[i*o.n+j] = f(o.m.At(i, j), other.m.At(i, j))
		}
	}
	return &Operator{m: mat.NewCDense(o.n, o.n, data), n: o.n}
}

func (o *Operator) Add(other *Operator) *Operator {
	return o.elementwise(other, func(a, b complex128) complex128 { return a + b })
}

func (o *Operator) Sub(other *Operator) *Operator {
	return o.elementwise(other, func(a, b complex128) complex128 { return a - b })
}

// Scale multiplies every element by c.
func (o *Operator) Scale(c complex128) *Operator {
	data := o.Data()
	for i := range data {
		data[i] *= c
	}
	return &Operator{m: mat.NewCDense(o.n, o.n, data), n: o.n}
}

// ScaleReal is Scale for a real factor.
func (o *Operator) ScaleReal(f float64) *Operator {
	return o.Scale(complex(f, 0))
}

// Mul returns the matrix product o·other.
func (o *Operator) Mul(other *Operator) *Operator {
	o.mustMatch(other)
	n := o.n
	data := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for k := 0; k < n; k++ {
			a := o.m.At(i, k)
			if a == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				data[i*n+j] += a * other.m.At(k, j)
			}
		}
	}
	return &Operator{m: mat.NewCDense(n, n, data), n: n}
}

// Dag returns the conjugate transpose.
func (o *Operator) Dag() *Operator {
	m := mat.NewCDense(o.n, o.n, nil)
	m.Copy(o.m.H())
	return &Operator{m: m, n: o.n}
}

func (o *Operator) Trace() complex128 {
	var tr complex128
	for i := 0; i < o.n; i++ {
		tr += o.m.At(i, i)
	}
	return tr
}

// Apply returns o|psi>.
func (o *Operator) Apply(psi Ket) Ket {
	if len(psi) != o.n {
		panic(fmt.Errorf("%w: %dx%d operator on %d-dim ket", ErrDimensionMismatch, o.n, o.n, len(psi)))
	}
	out := make(Ket, o.n)
	for i := 0; i < o.n; i++ {
		var sum complex128
		for j := 0; j < o.n; j++ {
			sum += o.m.At(i, j) * psi[j]
		}
		out[i] = sum
	}
	return out
}

// IsHermitian reports whether o equals its adjoint within tol.
func (o *Operator) IsHermitian(tol float64) bool {
	return EqualApprox(o, o.Dag(), tol)
}

func (o *Operator) String() string {
	var sb strings.Builder
	for i := 0; i < o.n; i++ {
		sb.WriteString("[")
		for j := 0; j < o.n; j++ {
			if j > 0 {
				sb.WriteString(" ")
			}
			v := o.m.At(i, j)
			fmt.Fprintf(&sb, "%.4g%+.4gi", real(v), imag(v))
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}

// EqualApprox reports whether a and b have the same dimension and every
// element differs by at most tol.
func EqualApprox(a, b *Operator, tol float64) bool {
	if a.n != b.n {
		return false
	}
	for i := 0; i < a.n; i++ {
		for j := 0; j < a.n; j++ {
			if cmplx.Abs(a.m.At(i, j)-b.m.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// Commutator returns [a, b] = ab - ba.
func Commutator(a, b *Operator) *Operator {
	return a.Mul(b).Sub(b.Mul(a))
}

// AntiCommutator returns {a, b} = ab + ba.
func AntiCommutator(a, b *Operator) *Operator {
	return a.Mul(b).Add(b.Mul(a))
}

// Expect returns Tr(op·rho) for a density matrix rho.
func Expect(op, rho *Operator) complex128 {
	op.mustMatch(rho)
	var sum complex128
	for i := 0; i < op.n; i++ {
		for k := 0; k < op.n; k++ {
			sum += op.m.At(i, k) * rho.m.At(k, i)
		}
	}
	return sum
}

// Purity returns Tr(rho²), 1 for pure states.
func Purity(rho *Operator) float64 {
	return real(Expect(rho, rho))
}

// MaxAbs returns the largest element magnitude.
func (o *Operator) MaxAbs() float64 {
	m := 0.0
	for i := 0; i < o.n; i++ {
		for j := 0; j < o.n; j++ {
			m = math.Max(m, cmplx.Abs(o.m.At(i, j)))
		}
	}
	return m
}
