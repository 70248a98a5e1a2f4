// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxrasdfg/pytorch/tensor"
)

func TestMatMul(t *testing.T) {
	// [[1, 2], [3, 4]] @ [[5, 6], [7, 8]] = [[19, 22], [43, 50]]
	a, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	b, err := tensor.FromFloat32([]float32{5, 6, 7, 8}, tensor.Shape{2, 2})
	require.NoError(t, err)

	c := tensor.MatMul(a, b)
	assert.True(t, c.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{19, 22, 43, 50}, c.AsFloat32())
}

func TestMatMul_Rectangular(t *testing.T) {
	// (1, 3) @ (3, 2) -> (1, 2)
	a, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{1, 3})
	require.NoError(t, err)
	b, err := tensor.FromFloat32([]float32{1, 4, 2, 5, 3, 6}, tensor.Shape{3, 2})
	require.NoError(t, err)

	c := tensor.MatMul(a, b)
	assert.True(t, c.Shape().Equal(tensor.Shape{1, 2}))
	assert.Equal(t, []float32{14, 32}, c.AsFloat32())
}

func TestMatMul_ShapeMismatch(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
	b := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
	assert.Panics(t, func() { tensor.MatMul(a, b) })

	c := tensor.Zeros(tensor.Shape{3}, tensor.Float32)
	assert.Panics(t, func() { tensor.MatMul(a, c) })
}

func TestTranspose(t *testing.T) {
	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)

	y := tensor.Transpose(x)
	assert.True(t, y.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, y.AsFloat32())

	// Transpose materializes a copy, not a view.
	x.AsFloat32()[0] = 99
	assert.Equal(t, float32(1), y.AsFloat32()[0])
}

func TestAdd_SameShape(t *testing.T) {
	a, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	require.NoError(t, err)
	b, err := tensor.FromFloat32([]float32{10, 20, 30, 40}, tensor.Shape{2, 2})
	require.NoError(t, err)

	c := tensor.Add(a, b)
	assert.Equal(t, []float32{11, 22, 33, 44}, c.AsFloat32())
}

func TestAdd_BiasBroadcast(t *testing.T) {
	a, err := tensor.FromFloat32([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	require.NoError(t, err)
	bias, err := tensor.FromFloat32([]float32{10, 20, 30}, tensor.Shape{3})
	require.NoError(t, err)

	c := tensor.Add(a, bias)
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, c.AsFloat32())
}

func TestAdd_IncompatibleShapes(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3}, tensor.Float32)
	b := tensor.Zeros(tensor.Shape{2}, tensor.Float32)
	assert.Panics(t, func() { tensor.Add(a, b) })
}

func TestReLU(t *testing.T) {
	x, err := tensor.FromFloat32([]float32{-2, -0.5, 0, 0.5, 2}, tensor.Shape{5})
	require.NoError(t, err)

	y := tensor.ReLU(x)
	assert.Equal(t, []float32{0, 0, 0, 0.5, 2}, y.AsFloat32())

	// Input untouched.
	assert.Equal(t, float32(-2), x.AsFloat32()[0])
}
