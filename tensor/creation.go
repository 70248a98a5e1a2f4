// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Zeros creates a tensor filled with zeros.
//
// Example:
//
//	t := tensor.Zeros(tensor.Shape{3, 4}, tensor.Float32)
func Zeros(shape Shape, dtype DataType) *Tensor {
	t, err := New(shape, dtype)
	if err != nil {
		panic(err) // Shape validation should prevent this
	}
	// Data is already zero-initialized by make()
	return t
}

// Ones creates a tensor filled with ones.
func Ones(shape Shape, dtype DataType) *Tensor {
	t := Zeros(shape, dtype)
	switch dtype {
	case Float32:
		data := t.AsFloat32()
		for i := range data {
			data[i] = 1
		}
	case Float64:
		data := t.AsFloat64()
		for i := range data {
			data[i] = 1
		}
	case Float16:
		one := float16.Fromfloat32(1)
		data := t.AsFloat16()
		for i := range data {
			data[i] = one
		}
	case Int32:
		data := t.AsInt32()
		for i := range data {
			data[i] = 1
		}
	case Int64:
		data := t.AsInt64()
		for i := range data {
			data[i] = 1
		}
	case Uint8:
		data := t.AsUint8()
		for i := range data {
			data[i] = 1
		}
	case Bool:
		data := t.AsBool()
		for i := range data {
			data[i] = true
		}
	}
	return t
}

// Full creates a float32 tensor filled with a specific value.
func Full(shape Shape, value float32) *Tensor {
	t := Zeros(shape, Float32)
	data := t.AsFloat32()
	for i := range data {
		data[i] = value
	}
	return t
}

// FromFloat32 creates a float32 tensor from a slice.
//
// The slice length must match the shape's element count. The data is
// copied into freshly allocated storage.
func FromFloat32(data []float32, shape Shape) (*Tensor, error) {
	t, err := New(shape, Float32)
	if err != nil {
		return nil, err
	}
	if len(data) != t.NumElements() {
		return nil, errors.Errorf("data length %d does not match shape %v (%d elements)",
			len(data), shape, t.NumElements())
	}
	copy(t.AsFloat32(), data)
	return t, nil
}

// Randn creates a float32 tensor with values drawn from N(0, 1).
func Randn(shape Shape) *Tensor {
	t := Zeros(shape, Float32)
	data := t.AsFloat32()
	for i := range data {
		//nolint:gosec // math/rand for weight initialization (not security-critical)
		data[i] = float32(rand.NormFloat64())
	}
	return t
}
