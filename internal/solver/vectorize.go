package solver

import (
	"github.com/san-kum/rabisim/internal/dynamo"
	"github.com/san-kum/rabisim/internal/quantum"
)

// Complex quantities are flattened to real state vectors as all real parts
// followed by all imaginary parts, so the real-valued integrators apply.

func packKet(psi quantum.Ket) dynamo.State {
	n := len(psi)
	x := make(dynamo.State, 2*n)
	for i, v := range psi {
		x[i] = real(v)
		x[n+i] = imag(v)
	}
	return x
}

func unpackKet(x dynamo.State) quantum.Ket {
	n := len(x) / 2
	psi := make(quantum.Ket, n)
	for i := range psi {
		psi[i] = complex(x[i], x[n+i])
	}
	return psi
}

func packOperator(op *quantum.Operator) dynamo.State {
	data := op.Data()
	m := len(data)
	x := make(dynamo.State, 2*m)
	for i, v := range data {
		x[i] = real(v)
		x[m+i] = imag(v)
	}
	return x
}

func unpackOperator(x dynamo.State, n int) *quantum.Operator {
	m := n * n
	data := make([]complex128, m)
	for i := range data {
		data[i] = complex(x[i], x[m+i])
	}
	return quantum.NewOperator(n, data)
}
