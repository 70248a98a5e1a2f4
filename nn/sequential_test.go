// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxrasdfg/pytorch/nn"
	"github.com/cxrasdfg/pytorch/tensor"
)

func TestSequential_Creation(t *testing.T) {
	model := nn.NewSequential(
		nn.NewLinear(4, 3),
		nn.NewReLU(),
		nn.NewLinear(3, 2),
	)

	assert.Equal(t, 3, model.Len())
	assert.Equal(t, []string{"0", "1", "2"}, model.ChildNames())
	assert.Len(t, model.Parameters(), 4) // two linear layers, weight+bias each
}

func TestSequential_Forward(t *testing.T) {
	first := nn.NewLinear(2, 2)
	copy(first.Weight().Tensor().AsFloat32(), []float32{1, 0, 0, -1})
	copy(first.Bias().Tensor().AsFloat32(), []float32{0, 0})

	model := nn.NewSequential(first, nn.NewReLU())

	input, err := tensor.FromFloat32([]float32{3, 5}, tensor.Shape{1, 2})
	require.NoError(t, err)

	// First layer: [3, -5]; ReLU clamps to [3, 0].
	output := model.Forward(input)
	assert.Equal(t, []float32{3, 0}, output.AsFloat32())
}

func TestSequential_Clone(t *testing.T) {
	model := nn.NewSequential(
		nn.NewLinear(4, 3),
		nn.NewReLU(),
		nn.NewLinear(3, 2),
	)

	cloned, err := model.Clone()
	require.NoError(t, err)
	clone, ok := cloned.(*nn.Sequential)
	require.True(t, ok)

	require.Equal(t, model.Len(), clone.Len())
	assert.Equal(t, model.ChildNames(), clone.ChildNames())

	// Same computation, different parameter storage.
	input := tensor.Randn(tensor.Shape{2, 4})
	assert.Equal(t, model.Forward(input).AsFloat32(), clone.Forward(input).AsFloat32())

	original := model.At(0).(*nn.Linear)
	copied := clone.At(0).(*nn.Linear)
	require.NotSame(t, original, copied)

	original.Weight().Tensor().AsFloat32()[0] += 1
	assert.NotEqual(t,
		original.Weight().Tensor().AsFloat32()[0],
		copied.Weight().Tensor().AsFloat32()[0])
}

// TestSequential_CloneAsChild exercises the overridden container clone
// through the generic child-dispatch path.
type wrapperNet struct {
	nn.Cloneable[wrapperNet]
	body *nn.Sequential
}

func (m *wrapperNet) Reset() {
	m.body = nn.Register(m, "body", nn.NewSequential(
		nn.NewLinear(2, 2),
		nn.NewReLU(),
	))
}

func TestSequential_CloneAsChild(t *testing.T) {
	original := nn.Init(&wrapperNet{})

	cloned, err := original.Clone()
	require.NoError(t, err)
	clone := cloned.(*wrapperNet)

	require.NotSame(t, original.body, clone.body)
	require.Equal(t, 2, clone.body.Len())

	srcLinear := original.body.At(0).(*nn.Linear)
	cpLinear := clone.body.At(0).(*nn.Linear)
	assert.Equal(t,
		srcLinear.Weight().Tensor().AsFloat32(),
		cpLinear.Weight().Tensor().AsFloat32())

	srcLinear.Weight().Tensor().AsFloat32()[0] += 1
	assert.NotEqual(t,
		srcLinear.Weight().Tensor().AsFloat32()[0],
		cpLinear.Weight().Tensor().AsFloat32()[0])
}

func TestReLU_CloneStateless(t *testing.T) {
	relu := nn.NewReLU()

	cloned, err := relu.Clone()
	require.NoError(t, err)
	clone, ok := cloned.(*nn.ReLU)
	require.True(t, ok)

	assert.Empty(t, clone.ParameterNames())
	assert.Empty(t, clone.BufferNames())
	assert.Empty(t, clone.ChildNames())
}
