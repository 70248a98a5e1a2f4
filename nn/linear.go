// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/cxrasdfg/pytorch/tensor"
)

// Linear implements a fully connected (dense) layer.
//
// Performs the transformation: y = x @ W.T + b
// where:
//   - x is the input tensor with shape [batch_size, in_features]
//   - W is the weight matrix with shape [out_features, in_features]
//   - b is the bias vector with shape [out_features]
//   - y is the output tensor with shape [batch_size, out_features]
//
// Weights are initialized using Xavier/Glorot initialization.
// Biases are initialized to zeros.
//
// Example:
//
//	layer := nn.NewLinear(784, 128)
//	output := layer.Forward(input) // [32, 784] -> [32, 128]
type Linear struct {
	Cloneable[Linear]

	// InFeatures and OutFeatures are plain fields so a shallow copy
	// carries them over and Reset can rebuild the parameters from them.
	InFeatures  int
	OutFeatures int

	weight *Parameter // [out_features, in_features]
	bias   *Parameter // [out_features]
}

// NewLinear creates a new Linear layer.
//
// Weights are initialized using Xavier/Glorot uniform distribution.
// Biases are initialized to zeros.
func NewLinear(inFeatures, outFeatures int) *Linear {
	return Init(&Linear{
		InFeatures:  inFeatures,
		OutFeatures: outFeatures,
	})
}

// Reset registers the weight and bias parameters.
func (l *Linear) Reset() {
	weightShape := tensor.Shape{l.OutFeatures, l.InFeatures}
	l.weight = l.RegisterParameter("weight", Xavier(l.InFeatures, l.OutFeatures, weightShape))
	l.bias = l.RegisterParameter("bias", tensor.Zeros(tensor.Shape{l.OutFeatures}, tensor.Float32))
}

// Forward computes y = x @ W.T + b.
//
// Input shape: [batch_size, in_features]
// Output shape: [batch_size, out_features]
func (l *Linear) Forward(input *tensor.Tensor) *tensor.Tensor {
	inputShape := input.Shape()
	if len(inputShape) != 2 {
		panic(fmt.Sprintf("Linear.Forward: expected 2D input [batch, features], got shape %v", inputShape))
	}
	if inputShape[1] != l.InFeatures {
		panic(fmt.Sprintf("Linear.Forward: expected input with %d features, got %d", l.InFeatures, inputShape[1]))
	}

	// [batch, in] @ [in, out] = [batch, out]
	output := tensor.MatMul(input, tensor.Transpose(l.weight.Tensor()))
	return tensor.Add(output, l.bias.Tensor())
}

// Weight returns the weight parameter.
func (l *Linear) Weight() *Parameter {
	return l.weight
}

// Bias returns the bias parameter.
func (l *Linear) Bias() *Parameter {
	return l.bias
}
