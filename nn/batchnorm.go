// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"
	"math"

	"github.com/cxrasdfg/pytorch/tensor"
)

// BatchNorm1d normalizes a [batch, features] input per feature.
//
// In training mode it normalizes with batch statistics and updates the
// running estimates; in evaluation mode it normalizes with the running
// estimates. The running estimates live in buffers (running_mean,
// running_var, num_batches_tracked), so they persist with the module
// and are carried over by Clone, StateDict and LoadStateDict without
// being learnable.
type BatchNorm1d struct {
	Cloneable[BatchNorm1d]

	NumFeatures int
	Eps         float64
	Momentum    float64
	Affine      bool

	weight *Parameter // scale, [features], ones
	bias   *Parameter // shift, [features], zeros

	runningMean *tensor.Tensor // [features], float32
	runningVar  *tensor.Tensor // [features], float32
	numBatches  *tensor.Tensor // scalar, int64
}

// NewBatchNorm1d creates a BatchNorm1d layer with affine parameters,
// eps 1e-5 and momentum 0.1.
func NewBatchNorm1d(numFeatures int) *BatchNorm1d {
	return Init(&BatchNorm1d{
		NumFeatures: numFeatures,
		Eps:         1e-5,
		Momentum:    0.1,
		Affine:      true,
	})
}

// Reset registers the affine parameters and the running-statistics
// buffers.
func (bn *BatchNorm1d) Reset() {
	shape := tensor.Shape{bn.NumFeatures}
	if bn.Affine {
		bn.weight = bn.RegisterParameter("weight", tensor.Ones(shape, tensor.Float32))
		bn.bias = bn.RegisterParameter("bias", tensor.Zeros(shape, tensor.Float32))
	}
	bn.runningMean = bn.RegisterBuffer("running_mean", tensor.Zeros(shape, tensor.Float32))
	bn.runningVar = bn.RegisterBuffer("running_var", tensor.Ones(shape, tensor.Float32))
	bn.numBatches = bn.RegisterBuffer("num_batches_tracked", tensor.Zeros(tensor.Shape{}, tensor.Int64))
}

// Forward normalizes the input per feature.
//
// Input shape: [batch_size, num_features]
func (bn *BatchNorm1d) Forward(input *tensor.Tensor) *tensor.Tensor {
	shape := input.Shape()
	if len(shape) != 2 {
		panic(fmt.Sprintf("BatchNorm1d.Forward: expected 2D input [batch, features], got shape %v", shape))
	}
	if shape[1] != bn.NumFeatures {
		panic(fmt.Sprintf("BatchNorm1d.Forward: expected input with %d features, got %d", bn.NumFeatures, shape[1]))
	}

	n, f := shape[0], shape[1]
	in := input.AsFloat32()

	mean := make([]float32, f)
	variance := make([]float32, f)

	if bn.IsTraining() {
		// Batch statistics, biased variance for normalization.
		for j := 0; j < f; j++ {
			sum := float32(0)
			for i := 0; i < n; i++ {
				sum += in[i*f+j]
			}
			mean[j] = sum / float32(n)
		}
		for j := 0; j < f; j++ {
			sum := float32(0)
			for i := 0; i < n; i++ {
				d := in[i*f+j] - mean[j]
				sum += d * d
			}
			variance[j] = sum / float32(n)
		}
		bn.updateRunningStats(mean, variance, n)
	} else {
		copy(mean, bn.runningMean.AsFloat32())
		copy(variance, bn.runningVar.AsFloat32())
	}

	output := tensor.Zeros(input.Shape(), tensor.Float32)
	out := output.AsFloat32()
	for j := 0; j < f; j++ {
		invStd := float32(1.0 / math.Sqrt(float64(variance[j])+bn.Eps))
		scale, shift := float32(1), float32(0)
		if bn.Affine {
			scale = bn.weight.Tensor().AsFloat32()[j]
			shift = bn.bias.Tensor().AsFloat32()[j]
		}
		for i := 0; i < n; i++ {
			out[i*f+j] = (in[i*f+j]-mean[j])*invStd*scale + shift
		}
	}
	return output
}

// updateRunningStats folds the batch statistics into the running
// estimates. The running variance uses the unbiased estimator.
func (bn *BatchNorm1d) updateRunningStats(mean, variance []float32, n int) {
	momentum := float32(bn.Momentum)
	rm := bn.runningMean.AsFloat32()
	rv := bn.runningVar.AsFloat32()
	for j := range rm {
		rm[j] = (1-momentum)*rm[j] + momentum*mean[j]
		unbiased := variance[j]
		if n > 1 {
			unbiased = variance[j] * float32(n) / float32(n-1)
		}
		rv[j] = (1-momentum)*rv[j] + momentum*unbiased
	}
	bn.numBatches.AsInt64()[0]++
}

// Weight returns the scale parameter, or nil if Affine is false.
func (bn *BatchNorm1d) Weight() *Parameter {
	return bn.weight
}

// Bias returns the shift parameter, or nil if Affine is false.
func (bn *BatchNorm1d) Bias() *Parameter {
	return bn.bias
}

// RunningMean returns the running mean buffer.
func (bn *BatchNorm1d) RunningMean() *tensor.Tensor {
	return bn.runningMean
}

// RunningVar returns the running variance buffer.
func (bn *BatchNorm1d) RunningVar() *tensor.Tensor {
	return bn.runningVar
}

// NumBatchesTracked returns the number of batches seen in training mode.
func (bn *BatchNorm1d) NumBatchesTracked() int64 {
	return bn.numBatches.AsInt64()[0]
}
