// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"strconv"

	"github.com/pkg/errors"

	"github.com/cxrasdfg/pytorch/tensor"
)

// Forwarder is a module with a forward pass. Forward is not part of
// Module itself: the clone machinery and containers work on modules of
// unknown concrete type, and not every module computes anything.
type Forwarder interface {
	Module
	Forward(input *tensor.Tensor) *tensor.Tensor
}

// Sequential is a container module that chains modules together.
//
// Each module's output becomes the next module's input:
//
//	model := nn.NewSequential(
//	    nn.NewLinear(784, 128),
//	    nn.NewReLU(),
//	    nn.NewLinear(128, 10),
//	)
//
//	output := model.Forward(input)
//
// Children are registered under their position ("0", "1", ...).
type Sequential struct {
	Cloneable[Sequential]

	modules []Forwarder
}

// NewSequential creates a new Sequential container.
func NewSequential(modules ...Forwarder) *Sequential {
	s := Init(&Sequential{})
	for _, m := range modules {
		s.Append(m)
	}
	return s
}

// Reset registers nothing. Sequential holds an arbitrary list of
// modules it cannot rebuild from scratch, so it overrides Clone
// instead of relying on the Reset-based protocol.
func (s *Sequential) Reset() {}

// Append adds a module to the end of the chain, registering it under
// its position.
func (s *Sequential) Append(m Forwarder) *Sequential {
	s.RegisterModule(strconv.Itoa(len(s.modules)), m)
	s.modules = append(s.modules, m)
	return s
}

// Len returns the number of chained modules.
func (s *Sequential) Len() int {
	return len(s.modules)
}

// At returns the i-th chained module.
func (s *Sequential) At(i int) Forwarder {
	return s.modules[i]
}

// Forward applies all modules in sequence.
func (s *Sequential) Forward(input *tensor.Tensor) *tensor.Tensor {
	output := input
	for _, m := range s.modules {
		output = m.Forward(output)
	}
	return output
}

// Clone deep-copies the container by cloning each chained module.
// This replaces the inherited Reset-based clone, which cannot rebuild
// a dynamic module list.
func (s *Sequential) Clone() (Module, error) {
	clone := Init(&Sequential{})
	clone.training = s.training
	for i, m := range s.modules {
		c, err := m.Clone()
		if err != nil {
			return nil, errors.Wrapf(err, "cloning submodule %d", i)
		}
		f, ok := c.(Forwarder)
		if !ok {
			return nil, errors.Errorf("cloned submodule %d of type %T has no forward pass", i, c)
		}
		clone.Append(f)
	}
	return clone, nil
}
