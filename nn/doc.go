// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides composable neural network modules with generic
// deep-clone support.
//
// # Overview
//
// A module owns three ordered, name-keyed mappings: parameters
// (learnable tensors), buffers (persistent but not learnable tensors)
// and children (nested modules). Concrete modules embed Cloneable and
// are constructed with Init:
//
//	type Net struct {
//	    nn.Cloneable[Net]
//	    fc1 *nn.Linear
//	    fc2 *nn.Linear
//	}
//
//	func NewNet() *Net {
//	    return nn.Init(&Net{})
//	}
//
//	func (n *Net) Reset() {
//	    n.fc1 = nn.Register(n, "fc1", nn.NewLinear(784, 128))
//	    n.fc2 = nn.Register(n, "fc2", nn.NewLinear(128, 10))
//	}
//
// All registration calls belong in Reset, not in the constructor: Init
// invokes Reset once, and Clone relies on Reset rebuilding the same
// structure on a fresh copy.
//
// # Cloning
//
// Clone produces an independent copy of a module graph: same names,
// same nesting, same values, distinct storage.
//
//	clone, err := net.Clone()
//
// Clone works through the Module interface without knowing the
// concrete type; the embedded Cloneable[Net] recovers it. A Reset that
// does not mirror the constructor's registrations is reported as an
// error naming the diverging mapping.
//
// # Layers
//
//	linear := nn.NewLinear(inFeatures, outFeatures)
//	relu := nn.NewReLU()
//	norm := nn.NewBatchNorm1d(features)
//	model := nn.NewSequential(linear, relu, norm)
//
// # Parameter Management
//
// Access parameters for optimization or inspection:
//
//	for _, param := range model.Parameters() {
//	    fmt.Println(param.Name(), param.Tensor().Shape())
//	}
//
// StateDict and LoadStateDict exchange parameters and buffers between
// structurally identical modules using dotted names ("fc1.weight").
package nn
