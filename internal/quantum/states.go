package quantum

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Ket is a column state vector. Treat it as immutable once built.
type Ket []complex128

// Basis returns the k-th basis vector of an n-dimensional space.
func Basis(n, k int) Ket {
	if n <= 0 {
		panic(ErrInvalidDimension)
	}
	if k < 0 || k >= n {
		panic(fmt.Errorf("quantum: basis index %d out of range for dimension %d", k, n))
	}
	psi := make(Ket, n)
	psi[k] = 1
	return psi
}

func (k Ket) Dim() int { return len(k) }

func (k Ket) Clone() Ket {
	c := make(Ket, len(k))
	copy(c, k)
	return c
}

// Norm returns sqrt(<k|k>).
func (k Ket) Norm() float64 {
	sum := 0.0
	for _, v := range k {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

// Normalize returns k scaled to unit norm. A zero vector is returned as is.
func (k Ket) Normalize() Ket {
	n := k.Norm()
	out := k.Clone()
	if n == 0 {
		return out
	}
	for i := range out {
		out[i] /= complex(n, 0)
	}
	return out
}

// Inner returns <k|other>.
func (k Ket) Inner(other Ket) complex128 {
	if len(k) != len(other) {
		panic(fmt.Errorf("%w: inner product of %d- and %d-dim kets", ErrDimensionMismatch, len(k), len(other)))
	}
	var sum complex128
	for i := range k {
		sum += cmplx.Conj(k[i]) * other[i]
	}
	return sum
}

// Density returns the projector |k><k|.
func (k Ket) Density() *Operator {
	n := len(k)
	data := make([]complex128, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			data[i*n+j] = k[i] * cmplx.Conj(k[j])
		}
	}
	return NewOperator(n, data)
}

// ExpectKet returns <psi|op|psi>.
func ExpectKet(op *Operator, psi Ket) complex128 {
	return psi.Inner(op.Apply(psi))
}
