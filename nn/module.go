// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/cxrasdfg/pytorch/tensor"
)

// Module is the base interface for all neural network components.
//
// A Module owns three ordered, name-keyed mappings: parameters,
// buffers and child modules. The interface is satisfied by embedding
// Base, or Cloneable for modules that support Clone; it cannot be
// implemented from scratch outside this package.
//
// Reset must (re)populate the three mappings from scratch by running
// the registration calls. It is invoked once by Init at construction
// and again by Clone on a structurally empty copy, so registration
// calls belong in Reset and nowhere else.
type Module interface {
	// Reset registers all parameters, buffers and child modules.
	Reset()

	// Clone performs a recursive deep copy of the module: same names,
	// same nesting, same values, distinct storage. The base
	// implementation fails; embedding Cloneable provides it.
	Clone() (Module, error)

	// base exposes the structural state to package internals.
	base() *Base

	// cloneInto overwrites the receiver's state with a clone of source.
	// The receiver and source must be the same concrete type.
	cloneInto(source Module) error

	// bindSelf attaches the concrete instance so Clone can recover its
	// runtime type later. Called by Init.
	bindSelf(self Module)
}

// Base holds the structural state shared by every module: the three
// ordered mappings and the training-mode flag. It provides the
// registration and traversal API, and default-failing Clone entry
// points for modules that do not embed Cloneable.
type Base struct {
	parameters orderedDict[*Parameter]
	buffers    orderedDict[*tensor.Tensor]
	children   orderedDict[Module]
	training   bool
}

func (b *Base) base() *Base { return b }

// Clone fails: Base alone has no way to construct an instance of the
// concrete module type. Embed Cloneable to make a module clonable.
func (b *Base) Clone() (Module, error) {
	return nil, errors.New("clone is not supported by this module; embed nn.Cloneable and construct with nn.Init to enable cloning")
}

func (b *Base) cloneInto(source Module) error {
	return errors.New("clone is not supported by this module; embed nn.Cloneable and construct with nn.Init to enable cloning")
}

func (b *Base) bindSelf(self Module) {}

// Init finishes construction of a module: it binds the concrete
// instance to its embedded cloning support, marks the module as
// training and invokes Reset to register parameters, buffers and
// children. Every module constructor must call it:
//
//	func NewNet() *Net {
//	    return nn.Init(&Net{})
//	}
func Init[M Module](m M) M {
	m.bindSelf(m)
	m.base().training = true
	m.Reset()
	return m
}

// checkName panics on names the mappings cannot hold. Dotted paths are
// reserved for StateDict addressing.
func checkName(kind, name string) {
	if name == "" {
		panic(fmt.Sprintf("nn: %s name must not be empty", kind))
	}
	if strings.Contains(name, ".") {
		panic(fmt.Sprintf("nn: %s name %q must not contain a period", kind, name))
	}
}

// RegisterParameter registers a learnable tensor under name and
// returns the created Parameter. Panics on empty, dotted or duplicate
// names, or a nil tensor.
func (b *Base) RegisterParameter(name string, t *tensor.Tensor) *Parameter {
	checkName("parameter", name)
	if t == nil {
		panic(fmt.Sprintf("nn: parameter %q must not be nil", name))
	}
	if _, ok := b.parameters.Get(name); ok {
		panic(fmt.Sprintf("nn: parameter %q is already registered", name))
	}
	p := NewParameter(name, t)
	b.parameters.Insert(name, p)
	return p
}

// RegisterBuffer registers a persistent, non-learnable tensor under
// name and returns it. Panics on empty, dotted or duplicate names, or
// a nil tensor.
func (b *Base) RegisterBuffer(name string, t *tensor.Tensor) *tensor.Tensor {
	checkName("buffer", name)
	if t == nil {
		panic(fmt.Sprintf("nn: buffer %q must not be nil", name))
	}
	if _, ok := b.buffers.Get(name); ok {
		panic(fmt.Sprintf("nn: buffer %q is already registered", name))
	}
	b.buffers.Insert(name, t)
	return t
}

// RegisterModule registers a child module under name and returns it.
// Panics on empty, dotted or duplicate names, or a nil module.
func (b *Base) RegisterModule(name string, child Module) Module {
	checkName("module", name)
	if child == nil {
		panic(fmt.Sprintf("nn: child module %q must not be nil", name))
	}
	if _, ok := b.children.Get(name); ok {
		panic(fmt.Sprintf("nn: child module %q is already registered", name))
	}
	b.children.Insert(name, child)
	return child
}

// Register registers child under name on parent and returns it with
// its concrete type preserved, so Reset can assign struct fields:
//
//	n.fc1 = nn.Register(n, "fc1", nn.NewLinear(784, 128))
func Register[M Module](parent Module, name string, child M) M {
	parent.base().RegisterModule(name, child)
	return child
}

// Parameter returns the parameter registered under name on this
// module (children are not searched).
func (b *Base) Parameter(name string) (*Parameter, bool) {
	return b.parameters.Get(name)
}

// Buffer returns the buffer registered under name on this module.
func (b *Base) Buffer(name string) (*tensor.Tensor, bool) {
	return b.buffers.Get(name)
}

// Child returns the child module registered under name.
func (b *Base) Child(name string) (Module, bool) {
	return b.children.Get(name)
}

// ParameterNames returns this module's own parameter names in
// registration order.
func (b *Base) ParameterNames() []string {
	return append([]string(nil), b.parameters.Keys()...)
}

// BufferNames returns this module's own buffer names in registration
// order.
func (b *Base) BufferNames() []string {
	return append([]string(nil), b.buffers.Keys()...)
}

// ChildNames returns this module's child names in registration order.
func (b *Base) ChildNames() []string {
	return append([]string(nil), b.children.Keys()...)
}

// Parameters returns all trainable parameters of this module and its
// children, in registration order, depth-first.
func (b *Base) Parameters() []*Parameter {
	out := append([]*Parameter(nil), b.parameters.Values()...)
	for _, child := range b.children.Values() {
		out = append(out, child.base().Parameters()...)
	}
	return out
}

// Buffers returns all buffers of this module and its children, in
// registration order, depth-first.
func (b *Base) Buffers() []*tensor.Tensor {
	out := append([]*tensor.Tensor(nil), b.buffers.Values()...)
	for _, child := range b.children.Values() {
		out = append(out, child.base().Buffers()...)
	}
	return out
}

// Children returns this module's direct children in registration order.
func (b *Base) Children() []Module {
	return b.children.Values()
}

// NamedParameters returns all parameters of this module and its
// children keyed by dotted path (e.g. "fc1.weight").
func (b *Base) NamedParameters() map[string]*Parameter {
	out := make(map[string]*Parameter)
	b.collectParameters("", out)
	return out
}

func (b *Base) collectParameters(prefix string, out map[string]*Parameter) {
	for _, name := range b.parameters.Keys() {
		p, _ := b.parameters.Get(name)
		out[prefix+name] = p
	}
	for _, name := range b.children.Keys() {
		child, _ := b.children.Get(name)
		child.base().collectParameters(prefix+name+".", out)
	}
}

// NamedBuffers returns all buffers of this module and its children
// keyed by dotted path.
func (b *Base) NamedBuffers() map[string]*tensor.Tensor {
	out := make(map[string]*tensor.Tensor)
	b.collectBuffers("", out)
	return out
}

func (b *Base) collectBuffers(prefix string, out map[string]*tensor.Tensor) {
	for _, name := range b.buffers.Keys() {
		t, _ := b.buffers.Get(name)
		out[prefix+name] = t
	}
	for _, name := range b.children.Keys() {
		child, _ := b.children.Get(name)
		child.base().collectBuffers(prefix+name+".", out)
	}
}

// StateDict returns all parameters and buffers of this module and its
// children keyed by dotted path. The tensors are the module's own,
// not copies.
func (b *Base) StateDict() map[string]*tensor.Tensor {
	out := make(map[string]*tensor.Tensor)
	for name, p := range b.NamedParameters() {
		out[name] = p.Tensor()
	}
	for name, t := range b.NamedBuffers() {
		out[name] = t
	}
	return out
}

// LoadStateDict copies values from a state dictionary into this
// module's parameters and buffers in place. Every parameter and
// buffer of the module must be present in the dictionary with a
// matching shape and dtype.
func (b *Base) LoadStateDict(stateDict map[string]*tensor.Tensor) error {
	return b.loadState("", stateDict)
}

func (b *Base) loadState(prefix string, stateDict map[string]*tensor.Tensor) error {
	for _, name := range b.parameters.Keys() {
		p, _ := b.parameters.Get(name)
		if err := loadTensor(prefix+name, p.Tensor(), stateDict); err != nil {
			return err
		}
	}
	for _, name := range b.buffers.Keys() {
		t, _ := b.buffers.Get(name)
		if err := loadTensor(prefix+name, t, stateDict); err != nil {
			return err
		}
	}
	for _, name := range b.children.Keys() {
		child, _ := b.children.Get(name)
		if err := child.base().loadState(prefix+name+".", stateDict); err != nil {
			return err
		}
	}
	return nil
}

func loadTensor(path string, dst *tensor.Tensor, stateDict map[string]*tensor.Tensor) error {
	src, ok := stateDict[path]
	if !ok {
		return errors.Errorf("missing %q in state dict", path)
	}
	if !src.Shape().Equal(dst.Shape()) {
		return errors.Errorf("shape mismatch for %q: expected %v, got %v", path, dst.Shape(), src.Shape())
	}
	if src.DType() != dst.DType() {
		return errors.Errorf("dtype mismatch for %q: expected %s, got %s", path, dst.DType(), src.DType())
	}
	return dst.CopyFrom(src)
}

// Train sets the training-mode flag on this module and, recursively,
// on all children. Layers such as BatchNorm1d behave differently in
// training and evaluation mode.
func (b *Base) Train(mode bool) {
	b.training = mode
	for _, child := range b.children.Values() {
		child.base().Train(mode)
	}
}

// IsTraining reports whether the module is in training mode. Modules
// start out training; Clone preserves the flag.
func (b *Base) IsTraining() bool {
	return b.training
}

// Apply calls fn on m and then on every descendant module, pre-order,
// children in registration order.
func Apply(m Module, fn func(Module)) {
	fn(m)
	for _, child := range m.base().children.Values() {
		Apply(child, fn)
	}
}
