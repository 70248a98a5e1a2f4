// Copyright 2026 GoTorch Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import "fmt"

// orderedDict is an insertion-ordered, unique-key mapping from names
// to values. The zero value is an empty dict ready for use.
//
// Iteration order is registration order everywhere in this package;
// Clone matches source to copy by name, not by index, but reports and
// copies in this order.
type orderedDict[T any] struct {
	keys  []string
	items map[string]T
}

// Len returns the number of entries.
func (d *orderedDict[T]) Len() int {
	return len(d.keys)
}

// Get returns the value registered under name.
func (d *orderedDict[T]) Get(name string) (T, bool) {
	v, ok := d.items[name]
	return v, ok
}

// Insert registers value under name, appending to the iteration order.
// Panics on duplicate names; callers validate names first.
func (d *orderedDict[T]) Insert(name string, value T) {
	if d.items == nil {
		d.items = make(map[string]T)
	}
	if _, ok := d.items[name]; ok {
		panic(fmt.Sprintf("nn: duplicate key %q", name))
	}
	d.keys = append(d.keys, name)
	d.items[name] = value
}

// Keys returns the names in insertion order. The slice is shared; do
// not modify it.
func (d *orderedDict[T]) Keys() []string {
	return d.keys
}

// Values returns the values in insertion order.
func (d *orderedDict[T]) Values() []T {
	values := make([]T, 0, len(d.keys))
	for _, k := range d.keys {
		values = append(values, d.items[k])
	}
	return values
}
