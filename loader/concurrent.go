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

package loader

import (
	"sync"

	"github.com/chiefpi/tasty-query/future"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/trees"
)

// ConcurrentLoader serializes access to a Loader so multiple goroutines
// can share one symbol table. Scans run under a single mutex (the
// underlying Loader is single-threaded by contract); each root's scan
// result is published through a one-shot future, so repeated requests
// for the same root observe the first scan's outcome without rescanning.
type ConcurrentLoader struct {
	mu    sync.Mutex
	base  *Loader
	scans map[*symbols.ClassSymbol]*future.Value
}

type scanResult struct {
	initialised bool
	err         error
}

// NewConcurrentLoader wraps base. The caller must stop using base
// directly.
func NewConcurrentLoader(base *Loader) *ConcurrentLoader {
	return &ConcurrentLoader{base: base, scans: make(map[*symbols.ClassSymbol]*future.Value)}
}

// InitPackages initializes the package inventory; safe to call from any
// goroutine, and idempotent like the underlying call.
func (c *ConcurrentLoader) InitPackages() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.InitPackages()
}

// ScanPackage scans pkg under the loader lock.
func (c *ConcurrentLoader) ScanPackage(pkg *symbols.PackageClassSymbol) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.ScanPackage(pkg)
}

// ScanClass scans cls at most once across all goroutines and returns the
// (possibly memoized) result.
func (c *ConcurrentLoader) ScanClass(cls *symbols.ClassSymbol) (bool, error) {
	c.mu.Lock()
	f, ok := c.scans[cls]
	if !ok {
		var res scanResult
		res.initialised, res.err = c.base.ScanClass(cls)
		f = future.Immediate(res)
		c.scans[cls] = f
	}
	c.mu.Unlock()
	res := f.Get().(scanResult)
	return res.initialised, res.err
}

// TopLevelTasty returns cls's decoded top-level forest, if any. The
// forest itself is immutable after the scan that produced it.
func (c *ConcurrentLoader) TopLevelTasty(cls *symbols.ClassSymbol) ([]trees.Tree, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.base.TopLevelTasty(cls)
}
