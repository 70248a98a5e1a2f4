// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the dense array type used by the nn package.
//
// # Overview
//
// A Tensor is a shaped view over a reference-counted byte buffer with
// runtime type information:
//   - Shape and row-major strides
//   - DataType (float32, float64, float16, int32, int64, uint8, bool)
//   - Reference-counted storage shared between shallow clones
//
// # Basic Usage
//
//	w := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32)
//	x, err := tensor.FromFloat32([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//
//	// In-place content copy: preserves the destination's shape and
//	// strides, overwrites only the data.
//	err = w.CopyFrom(v)
//
// # Memory Management
//
// Clone shares the underlying buffer and increments its reference
// count; Release decrements it. Content duplication is explicit, via
// CopyFrom into a freshly allocated tensor.
//
// # Operations
//
// The package carries the small set of float32 kernels the nn layers
// need for their forward passes: MatMul, Transpose, Add and ReLU.
package tensor
