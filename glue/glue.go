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

// Package glue adapts decoder events into the symbol table, type
// algebra, and tree model: it drives a TASTy entry's staged unpicklers,
// assembles their event stream into a typed forest via TreeBuilder, and
// flips the root class to initialised when the forest defines it.
package glue

import (
	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/loader"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/terrors"
	"github.com/chiefpi/tasty-query/trees"
	"github.com/chiefpi/tasty-query/vlog"
)

// UnpickleTasty is the standard loader.TastyUnpickleFunc: it parses the
// position section, then the tree section, and reports whether the root
// class became initialised. The root token pins this to a root scan.
func UnpickleTasty(ctx *rootctx.ClassContext, root *loader.LoadRoot, data tastyformat.TastyData, newUnpickler tastyformat.Factory) ([]trees.Tree, bool, error) {
	vlog.V(vlog.Roots).Printf("glue: unpickling %s", data.DebugPath)
	unpickler, err := newUnpickler(data.Bytes)
	if err != nil {
		return nil, false, terrors.WrapDecoderError("open tasty "+data.DebugPath, err)
	}
	positions, err := unpickler.PositionSection()
	if err != nil {
		return nil, false, terrors.WrapDecoderError("position section of "+data.DebugPath, err)
	}
	if err := positions.Unpickle(); err != nil {
		return nil, false, terrors.WrapDecoderError("position section of "+data.DebugPath, err)
	}
	treeSection, err := unpickler.TreeSection()
	if err != nil {
		return nil, false, terrors.WrapDecoderError("tree section of "+data.DebugPath, err)
	}
	builder, err := NewTreeBuilder(ctx)
	if err != nil {
		return nil, false, err
	}
	if err := treeSection.Unpickle(builder); err != nil {
		return nil, false, terrors.WrapDecoderError("tree section of "+data.DebugPath, err)
	}
	if err := builder.Err(); err != nil {
		return nil, false, err
	}
	if !builder.DefinedRootClass() {
		vlog.V(vlog.Roots).Printf("glue: %s does not define %s", data.DebugPath, ctx.Class)
		return builder.Forest(), false, nil
	}
	ctx.Class.MarkInitialised()
	return builder.Forest(), true, nil
}

// NewLoader wires a loader with this package's TASTy adapter, the given
// classfile parser, and the given unpickler factory.
func NewLoader(ctx *rootctx.Context, cp loader.Classpath, parser classfile.Parser, factory tastyformat.Factory) *loader.Loader {
	return loader.NewLoader(ctx, loader.Options{
		Classpath:     cp,
		Parser:        parser,
		NewUnpickler:  factory,
		UnpickleTasty: UnpickleTasty,
	})
}
