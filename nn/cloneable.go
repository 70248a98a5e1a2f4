// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cxrasdfg/pytorch/tensor"
)

// Cloneable supplies the Clone implementation for a concrete module
// type D. Clone on the Module interface cannot know the concrete type
// of the module it is called on; Cloneable is compiled against D and
// recovers it without any central type registry. Concrete modules
// embed it, naming themselves as the type argument, and are
// constructed with Init:
//
//	type Net struct {
//	    nn.Cloneable[Net]
//	    ...
//	}
//
//	func NewNet() *Net { return nn.Init(&Net{}) }
//
// Clone shallow-copies the module, discards the copied mappings, runs
// Reset on the structurally empty copy and then copies parameter and
// buffer contents and recursively clones children. Reset must
// therefore re-run exactly the registration calls the module was
// constructed with; a Reset that registers a different structure is
// reported as an error.
type Cloneable[D any] struct {
	Base

	// self is the concrete instance this Cloneable is embedded in,
	// bound by Init. It is what lets Clone see the whole derived
	// struct rather than just Base.
	self *D
}

func (c *Cloneable[D]) bindSelf(self Module) {
	d, ok := any(self).(*D)
	if !ok {
		panic(fmt.Sprintf("nn: %T embeds nn.Cloneable with the wrong type argument", self))
	}
	c.self = d
}

// Clone performs a recursive deep copy of the module, such that all
// parameters, buffers and submodules in the cloned module are
// distinct from those in the original.
func (c *Cloneable[D]) Clone() (Module, error) {
	if c.self == nil {
		return nil, errors.Errorf("module was not constructed with nn.Init; cannot clone")
	}

	src := &c.Base

	// Shallow copy: plain fields (sizes, hyperparameters, flags) carry
	// over; the three mappings come along as aliases of the source's
	// tables and must not be touched in place.
	cp := *c.self
	m, ok := any(&cp).(Module)
	if !ok {
		return nil, errors.Errorf("%T does not implement nn.Module; cannot clone", c.self)
	}
	m.bindSelf(m)

	// Replace the aliased mappings with fresh empty ones, then let
	// Reset rebuild the structure from scratch.
	b := m.base()
	b.parameters = orderedDict[*Parameter]{}
	b.buffers = orderedDict[*tensor.Tensor]{}
	b.children = orderedDict[Module]{}
	m.Reset()

	if b.parameters.Len() != src.parameters.Len() {
		return nil, errors.Errorf(
			"the cloned module has %d parameters after Reset, but the original has %d; "+
				"are you sure you called RegisterParameter inside Reset and not the constructor?",
			b.parameters.Len(), src.parameters.Len())
	}
	for _, name := range src.parameters.Keys() {
		srcParam, _ := src.parameters.Get(name)
		cpParam, ok := b.parameters.Get(name)
		if !ok {
			return nil, errors.Errorf(
				"the cloned module has no parameter %q after Reset, but the original does; "+
					"are you sure you called RegisterParameter inside Reset and not the constructor?", name)
		}
		if err := cpParam.Tensor().CopyFrom(srcParam.Tensor()); err != nil {
			return nil, errors.Wrapf(err, "copying parameter %q", name)
		}
	}

	if b.buffers.Len() != src.buffers.Len() {
		return nil, errors.Errorf(
			"the cloned module has %d buffers after Reset, but the original has %d; "+
				"are you sure you called RegisterBuffer inside Reset and not the constructor?",
			b.buffers.Len(), src.buffers.Len())
	}
	for _, name := range src.buffers.Keys() {
		srcBuf, _ := src.buffers.Get(name)
		cpBuf, ok := b.buffers.Get(name)
		if !ok {
			return nil, errors.Errorf(
				"the cloned module has no buffer %q after Reset, but the original does; "+
					"are you sure you called RegisterBuffer inside Reset and not the constructor?", name)
		}
		if err := cpBuf.CopyFrom(srcBuf); err != nil {
			return nil, errors.Wrapf(err, "copying buffer %q", name)
		}
	}

	if b.children.Len() != src.children.Len() {
		return nil, errors.Errorf(
			"the cloned module has %d child modules after Reset, but the original has %d; "+
				"are you sure you called RegisterModule inside Reset and not the constructor?",
			b.children.Len(), src.children.Len())
	}
	for _, name := range src.children.Keys() {
		srcChild, _ := src.children.Get(name)
		cpChild, ok := b.children.Get(name)
		if !ok {
			return nil, errors.Errorf(
				"the cloned module has no child module %q after Reset, but the original does; "+
					"are you sure you called RegisterModule inside Reset and not the constructor?", name)
		}
		if err := cpChild.cloneInto(srcChild); err != nil {
			return nil, errors.Wrapf(err, "cloning child module %q", name)
		}
	}

	return m, nil
}

// cloneInto overwrites the receiver with a clone of source. The child
// registered under a given name should be the same concrete type as
// the corresponding source child, but Reset is user code, so the type
// is verified rather than assumed.
func (c *Cloneable[D]) cloneInto(source Module) error {
	cl, err := source.Clone()
	if err != nil {
		return err
	}
	typed, ok := any(cl).(*D)
	if !ok {
		return errors.Errorf(
			"attempted to clone submodule of type %T into a submodule of type %T", cl, c.self)
	}

	self := c.self
	*self = *typed
	// The assignment dragged in the temporary clone's self pointer;
	// rebind the receiver to itself.
	c.self = self
	return nil
}
