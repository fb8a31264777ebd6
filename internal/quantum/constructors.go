package quantum

import "math"

// SigmaX returns the Pauli X operator.
func SigmaX() *Operator {
	return FromRows([][]complex128{
		{0, 1},
		{1, 0},
	})
}

// SigmaY returns the Pauli Y operator.
func SigmaY() *Operator {
	return FromRows([][]complex128{
		{0, -1i},
		{1i, 0},
	})
}

// SigmaZ returns the Pauli Z operator, diag(1, -1).
func SigmaZ() *Operator {
	return Diagonal(1, -1)
}

// SigmaMinus is the two-level lowering operator, equal to Destroy(2).
func SigmaMinus() *Operator {
	return Destroy(2)
}

// SigmaPlus is the two-level raising operator, equal to Create(2).
func SigmaPlus() *Operator {
	return Create(2)
}

// Destroy returns the truncated annihilation operator a with
// a|k> = sqrt(k)|k-1>.
func Destroy(n int) *Operator {
	data := make([]complex128, n*n)
	for k := 1; k < n; k++ {
		data[(k-1)*n+k] = complex(math.Sqrt(float64(k)), 0)
	}
	return NewOperator(n, data)
}

// Create returns the truncated creation operator a†.
func Create(n int) *Operator {
	return Destroy(n).Dag()
}

// Number returns a†a.
func Number(n int) *Operator {
	return Create(n).Mul(Destroy(n))
}
