// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/cxrasdfg/pytorch/tensor"
)

// ReLU applies the rectified linear unit element-wise: max(0, x).
//
// ReLU has no parameters, buffers or children; cloning it produces an
// independent empty-structured module.
type ReLU struct {
	Cloneable[ReLU]
}

// NewReLU creates a new ReLU activation.
func NewReLU() *ReLU {
	return Init(&ReLU{})
}

// Reset registers nothing: ReLU is stateless.
func (r *ReLU) Reset() {}

// Forward applies max(0, x) element-wise.
func (r *ReLU) Forward(input *tensor.Tensor) *tensor.Tensor {
	return tensor.ReLU(input)
}
