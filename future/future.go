// Copyright 2018 The Jadep Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package future implements the one-shot result cells the concurrent
// loader publishes scan outcomes through: a result is produced exactly
// once, then read any number of times, possibly from other goroutines.
package future

// Value is a write-once future: Get blocks until the result has been
// published, and every Get observes the same result.
type Value struct {
	value interface{}

	// ready is closed once value is set.
	ready chan struct{}
}

// NewValue returns a Value whose result is computed by f() on a fresh
// goroutine; NewValue itself does not block. Use it when the producing
// computation should overlap with the caller.
func NewValue(f func() interface{}) *Value {
	v := &Value{ready: make(chan struct{})}
	go func() {
		v.value = f()
		close(v.ready)
	}()
	return v
}

// Immediate returns a Value already resolved to value, with no goroutine
// behind it. The concurrent loader publishes class-scan results this
// way: the scan runs to completion under the loader lock, and the
// resolved cell lets later requests for the same root read the outcome
// without rescanning.
func Immediate(value interface{}) *Value {
	v := &Value{value: value, ready: make(chan struct{})}
	close(v.ready)
	return v
}

// Get returns the published result, blocking until it is ready.
func (v *Value) Get() interface{} {
	<-v.ready
	return v.value
}
