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

func TestRegistration_Order(t *testing.T) {
	m := newTreeNet(2)

	assert.Equal(t, []string{"gain"}, m.ParameterNames())
	assert.Equal(t, []string{"steps"}, m.BufferNames())
	assert.Equal(t, []string{"child"}, m.ChildNames())
	assert.Equal(t, []string{"weight", "bias"}, m.child.ParameterNames())
}

func TestRegistration_Lookups(t *testing.T) {
	m := newTreeNet(2)

	p, ok := m.Parameter("gain")
	require.True(t, ok)
	assert.Equal(t, "gain", p.Name())

	_, ok = m.Parameter("weight") // child parameter, not searched
	assert.False(t, ok)

	b, ok := m.Buffer("steps")
	require.True(t, ok)
	assert.Equal(t, tensor.Int64, b.DType())

	c, ok := m.Child("child")
	require.True(t, ok)
	assert.Same(t, m.child, c)
}

func TestRegistration_Panics(t *testing.T) {
	m := newLeafNet(2)

	// Duplicate names within a mapping.
	assert.Panics(t, func() { m.RegisterParameter("weight", tensor.Randn(tensor.Shape{2})) })

	// Empty and dotted names.
	assert.Panics(t, func() { m.RegisterParameter("", tensor.Randn(tensor.Shape{2})) })
	assert.Panics(t, func() { m.RegisterBuffer("a.b", tensor.Randn(tensor.Shape{2})) })
	assert.Panics(t, func() { m.RegisterModule("", newLeafNet(2)) })

	// Nil values.
	assert.Panics(t, func() { m.RegisterParameter("p", nil) })
	assert.Panics(t, func() { m.RegisterBuffer("b", nil) })
	assert.Panics(t, func() { m.RegisterModule("m", nil) })
}

func TestRegistration_SameNameAcrossMappings(t *testing.T) {
	m := newLeafNet(2)

	// Uniqueness holds per mapping, not across mappings.
	assert.NotPanics(t, func() { m.RegisterBuffer("weight", tensor.Zeros(tensor.Shape{2}, tensor.Float32)) })
}

func TestParameters_Recursive(t *testing.T) {
	m := newTreeNet(2)

	params := m.Parameters()
	require.Len(t, params, 3)
	assert.Equal(t, "gain", params[0].Name())
	assert.Equal(t, "weight", params[1].Name())
	assert.Equal(t, "bias", params[2].Name())
}

func TestNamedParameters_DottedPaths(t *testing.T) {
	m := newTreeNet(2)

	named := m.NamedParameters()
	require.Len(t, named, 3)
	assert.Contains(t, named, "gain")
	assert.Contains(t, named, "child.weight")
	assert.Contains(t, named, "child.bias")

	buffers := m.NamedBuffers()
	require.Len(t, buffers, 1)
	assert.Contains(t, buffers, "steps")
}

func TestStateDict_RoundTrip(t *testing.T) {
	src := newTreeNet(2)
	gain, _ := src.Parameter("gain")
	copy(gain.Tensor().AsFloat32(), []float32{1, 2})
	steps, _ := src.Buffer("steps")
	steps.AsInt64()[0] = 5

	sd := src.StateDict()
	require.Len(t, sd, 4) // gain, steps, child.weight, child.bias

	dst := newTreeNet(2)
	require.NoError(t, dst.LoadStateDict(sd))

	dstGain, _ := dst.Parameter("gain")
	assert.Equal(t, []float32{1, 2}, dstGain.Tensor().AsFloat32())
	dstSteps, _ := dst.Buffer("steps")
	assert.Equal(t, int64(5), dstSteps.AsInt64()[0])

	// Loaded by value, not by reference.
	gain.Tensor().AsFloat32()[0] = 9
	assert.Equal(t, float32(1), dstGain.Tensor().AsFloat32()[0])
}

func TestLoadStateDict_MissingKey(t *testing.T) {
	m := newLeafNet(2)

	err := m.LoadStateDict(map[string]*tensor.Tensor{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "weight" in state dict`)
}

func TestLoadStateDict_ShapeMismatch(t *testing.T) {
	m := newLeafNet(2)

	sd := m.StateDict()
	sd["weight"] = tensor.Zeros(tensor.Shape{3}, tensor.Float32)
	err := m.LoadStateDict(sd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `shape mismatch for "weight"`)
}

func TestLoadStateDict_DTypeMismatch(t *testing.T) {
	m := newTreeNet(2)

	sd := m.StateDict()
	sd["steps"] = tensor.Zeros(tensor.Shape{}, tensor.Int32)
	err := m.LoadStateDict(sd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `dtype mismatch for "steps"`)
}

func TestTrain_Recursive(t *testing.T) {
	m := newTreeNet(2)
	require.True(t, m.IsTraining())
	require.True(t, m.child.IsTraining())

	m.Train(false)
	assert.False(t, m.IsTraining())
	assert.False(t, m.child.IsTraining())

	m.Train(true)
	assert.True(t, m.child.IsTraining())
}

func TestApply_PreOrder(t *testing.T) {
	m := newTreeNet(2)

	var visited []nn.Module
	nn.Apply(m, func(mod nn.Module) {
		visited = append(visited, mod)
	})

	require.Len(t, visited, 2)
	assert.Same(t, nn.Module(m), visited[0])
	assert.Same(t, nn.Module(m.child), visited[1])
}

// TestParameter covers the Parameter accessors.
func TestParameter(t *testing.T) {
	data, err := tensor.FromFloat32([]float32{1, 2, 3}, tensor.Shape{3})
	require.NoError(t, err)
	param := nn.NewParameter("test_param", data)

	assert.Equal(t, "test_param", param.Name())
	assert.Same(t, data, param.Tensor())
	assert.Nil(t, param.Grad())

	grad, err := tensor.FromFloat32([]float32{0.1, 0.2, 0.3}, tensor.Shape{3})
	require.NoError(t, err)
	param.SetGrad(grad)
	assert.Same(t, grad, param.Grad())

	param.ZeroGrad()
	assert.Nil(t, param.Grad())
}
