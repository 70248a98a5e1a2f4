// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import "fmt"

// MatMul performs 2D float32 matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Uses a naive O(n³) kernel.
func MatMul(a, b *Tensor) *Tensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(fmt.Sprintf("matmul: only 2D tensors supported, got %dD and %dD", len(aShape), len(bShape)))
	}
	if a.DType() != Float32 || b.DType() != Float32 {
		panic(fmt.Sprintf("matmul: only float32 supported, got %s and %s", a.DType(), b.DType()))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]

	if k != kAlt {
		panic(fmt.Sprintf("matmul: shape mismatch [%d,%d] @ [%d,%d]", m, k, kAlt, n))
	}

	result := Zeros(Shape{m, n}, Float32)
	c, av, bv := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()

	// C[i,j] = sum_k A[i,k] * B[k,j]
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			sum := float32(0)
			for kIdx := 0; kIdx < k; kIdx++ {
				sum += av[i*k+kIdx] * bv[kIdx*n+j]
			}
			c[i*n+j] = sum
		}
	}

	return result
}

// Transpose returns a transposed copy of a 2D float32 tensor.
func Transpose(x *Tensor) *Tensor {
	shape := x.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("transpose: only 2D tensors supported, got %dD", len(shape)))
	}
	if x.DType() != Float32 {
		panic(fmt.Sprintf("transpose: only float32 supported, got %s", x.DType()))
	}

	rows, cols := shape[0], shape[1]
	result := Zeros(Shape{cols, rows}, Float32)
	out, in := result.AsFloat32(), x.AsFloat32()

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[j*rows+i] = in[i*cols+j]
		}
	}

	return result
}

// Add performs element-wise float32 addition.
//
// The shapes must either match exactly, or b must be a vector whose
// length equals a's trailing dimension (row-wise broadcast, the bias
// case).
func Add(a, b *Tensor) *Tensor {
	if a.DType() != Float32 || b.DType() != Float32 {
		panic(fmt.Sprintf("add: only float32 supported, got %s and %s", a.DType(), b.DType()))
	}

	result := Zeros(a.Shape(), Float32)
	out, av, bv := result.AsFloat32(), a.AsFloat32(), b.AsFloat32()

	switch {
	case a.Shape().Equal(b.Shape()):
		for i := range av {
			out[i] = av[i] + bv[i]
		}
	case len(b.Shape()) == 1 && b.Shape()[0] == a.Shape()[len(a.Shape())-1]:
		n := b.Shape()[0]
		for i := range av {
			out[i] = av[i] + bv[i%n]
		}
	default:
		panic(fmt.Sprintf("add: shapes not compatible: %v vs %v", a.Shape(), b.Shape()))
	}

	return result
}

// ReLU applies max(0, x) element-wise to a float32 tensor.
func ReLU(x *Tensor) *Tensor {
	if x.DType() != Float32 {
		panic(fmt.Sprintf("relu: only float32 supported, got %s", x.DType()))
	}

	result := Zeros(x.Shape(), Float32)
	out, in := result.AsFloat32(), x.AsFloat32()

	for i, v := range in {
		if v > 0 {
			out[i] = v
		}
	}

	return result
}
