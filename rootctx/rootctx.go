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

// Package rootctx implements the ambient Context threaded through tree
// and type computations: the base context (root package, symbol lookup),
// a file-scoped context (debug path of the TASTy/class entry currently
// being decoded) and a class-scoped context (the root class symbol being
// populated).
package rootctx

import (
	"strings"

	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/symbols"
)

// Context is the base ambient service: it knows the root package symbol
// and can resolve a dotted path to the symbol it names.
type Context struct {
	Root *symbols.PackageClassSymbol
}

// NewContext returns a Context rooted at root.
func NewContext(root *symbols.PackageClassSymbol) *Context {
	return &Context{Root: root}
}

// FindSymbol resolves a dotted path such as "scala.collection.List" to the
// symbol it names, by walking sub-packages from the root and then, if the
// path's last segment names a class rather than a package, looking it up
// as a type-named member of the last package reached. Returns (nil,
// false) if any segment is unresolved.
func (c *Context) FindSymbol(path string) (symbols.Symbol, bool) {
	if path == "" {
		return c.Root, true
	}
	segs := strings.Split(path, ".")
	var owner *symbols.PackageClassSymbol = c.Root
	for i, seg := range segs {
		name := names.SimpleName{Text: seg}
		if i == len(segs)-1 {
			// Try the term-name package binding, then the type-named
			// class binding.
			if sym, ok := owner.Lookup(name); ok {
				if pkg, ok := sym.(*symbols.PackageClassSymbol); ok {
					return pkg, true
				}
			}
			if sym, ok := owner.Lookup(name.ToTypeName()); ok {
				return sym, true
			}
			return nil, false
		}
		sym, ok := owner.Lookup(name)
		if !ok {
			return nil, false
		}
		pkg, ok := sym.(*symbols.PackageClassSymbol)
		if !ok {
			return nil, false
		}
		owner = pkg
	}
	return owner, true
}

// FileContext scopes a Context to the debug path of the class/TASTy entry
// currently being decoded, for attaching diagnostics to a source location.
type FileContext struct {
	*Context
	DebugPath string
}

// WithFile returns a FileContext for debugPath, layered over c.
func (c *Context) WithFile(debugPath string) *FileContext {
	return &FileContext{Context: c, DebugPath: debugPath}
}

// ClassContext further scopes a FileContext to the root class symbol
// currently being populated by root-scan.
type ClassContext struct {
	*FileContext
	Class *symbols.ClassSymbol
}

// WithClass returns a ClassContext for cls, layered over f.
func (f *FileContext) WithClass(cls *symbols.ClassSymbol) *ClassContext {
	return &ClassContext{FileContext: f, Class: cls}
}
