package quantum

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-12

func TestPauliAlgebra(t *testing.T) {
	sx, sy, sz := SigmaX(), SigmaY(), SigmaZ()
	id := Identity(2)

	assert.True(t, EqualApprox(sx.Mul(sx), id, tol), "sx^2 should be identity")
	assert.True(t, EqualApprox(sy.Mul(sy), id, tol), "sy^2 should be identity")
	assert.True(t, EqualApprox(sz.Mul(sz), id, tol), "sz^2 should be identity")

	// [sx, sy] = 2i sz
	assert.True(t, EqualApprox(Commutator(sx, sy), sz.Scale(2i), tol))

	for _, op := range []*Operator{sx, sy, sz} {
		assert.True(t, op.IsHermitian(tol))
		assert.InDelta(t, 0, real(op.Trace()), tol)
	}
}

func TestLadderOperators(t *testing.T) {
	sm := Destroy(2)
	ground, excited := Basis(2, 0), Basis(2, 1)

	lowered := sm.Apply(excited)
	assert.InDelta(t, 1, real(lowered[0]), tol)
	assert.InDelta(t, 0, real(lowered[1]), tol)

	assert.InDelta(t, 0, ground.Norm()-1, tol)
	assert.InDelta(t, 0, sm.Apply(ground).Norm(), tol)

	n := Number(2)
	assert.InDelta(t, 0, real(ExpectKet(n, ground)), tol)
	assert.InDelta(t, 1, real(ExpectKet(n, excited)), tol)

	// a†a for n=2 equals (1 - sz)/2
	expected := Identity(2).Sub(SigmaZ()).ScaleReal(0.5)
	assert.True(t, EqualApprox(n, expected, tol))

	assert.True(t, EqualApprox(SigmaPlus(), sm.Dag(), tol))
}

func TestDestroyLargerSpace(t *testing.T) {
	a := Destroy(4)
	psi := Basis(4, 3)
	out := a.Apply(psi)
	assert.InDelta(t, math.Sqrt(3), real(out[2]), tol)

	n := Number(4)
	for k := 0; k < 4; k++ {
		assert.InDelta(t, float64(k), real(n.At(k, k)), tol)
	}
}

func TestDagConjugateTranspose(t *testing.T) {
	op := NewOperator(2, []complex128{1 + 2i, 3 - 1i, -4i, 5})
	d := op.Dag()

	assert.Equal(t, []complex128{1 - 2i, 4i, 3 + 1i, 5}, d.Data())
	assert.Equal(t, []complex128{1 + 2i, 3 - 1i, -4i, 5}, op.Data())
	assert.True(t, EqualApprox(op, d.Dag(), 0))
	assert.True(t, SigmaY().Dag().IsHermitian(tol))
}

func TestArithmeticDoesNotMutate(t *testing.T) {
	sx := SigmaX()
	before := sx.Data()

	_ = sx.Add(SigmaZ())
	_ = sx.Scale(3)
	_ = sx.Mul(SigmaY())
	_ = sx.Dag()

	assert.Equal(t, before, sx.Data())
}

func TestNewOperatorCopiesData(t *testing.T) {
	data := []complex128{1, 2, 3, 4}
	op := NewOperator(2, data)
	data[0] = 99
	assert.Equal(t, complex128(1), op.At(0, 0))
}

func TestDimensionMismatchPanics(t *testing.T) {
	assert.PanicsWithError(t, "quantum: dimension mismatch: 2x2 and 3x3", func() {
		SigmaX().Add(Identity(3))
	})
	assert.Panics(t, func() { SigmaX().Apply(Basis(3, 0)) })
	assert.Panics(t, func() { Basis(2, 2) })
	assert.Panics(t, func() { NewOperator(2, []complex128{1, 2, 3}) })
}

func TestDensityAndExpect(t *testing.T) {
	psi := Ket{1, 1}.Normalize()
	rho := psi.Density()

	require.Equal(t, 2, rho.Dim())
	assert.InDelta(t, 1, real(rho.Trace()), tol)
	assert.InDelta(t, 1, Purity(rho), tol)

	// |+> is the +1 eigenstate of sx
	assert.InDelta(t, 1, real(Expect(SigmaX(), rho)), tol)
	assert.InDelta(t, 0, real(Expect(SigmaZ(), rho)), tol)
	assert.InDelta(t, real(ExpectKet(SigmaX(), psi)), real(Expect(SigmaX(), rho)), tol)

	mixed := Identity(2).ScaleReal(0.5)
	assert.InDelta(t, 0.5, Purity(mixed), tol)
}

func TestAntiCommutator(t *testing.T) {
	assert.True(t, EqualApprox(AntiCommutator(SigmaX(), SigmaY()), Zero(2), tol))
	assert.True(t, EqualApprox(AntiCommutator(SigmaZ(), SigmaZ()), Identity(2).ScaleReal(2), tol))
}
