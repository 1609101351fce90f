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

// Package tastyformat declares the contract of the TASTy-decoding
// collaborator: bytes in, a stream of tree-construction events out. The
// byte-level framing, name table, and section layout are the
// collaborator's concern; this package defines the staged unpickler
// surface the loader drives and the Builder event protocol the glue
// package consumes events through.
package tastyformat

import (
	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/trees"
	"github.com/chiefpi/tasty-query/types"
)

// TastyData is one TASTy entry on the classpath: its simple name (no
// package, no extension), a path for diagnostics, and the raw bytes.
type TastyData struct {
	SimpleName string
	DebugPath  string
	Bytes      []byte
}

// Factory builds an Unpickler over one TASTy entry's bytes.
type Factory func(bytes []byte) (Unpickler, error)

// Unpickler is a staged decoder for one TASTy entry: the position
// section must be unpickled before the tree section, matching the order
// the sections appear in the format.
type Unpickler interface {
	// PositionSection returns the position-section decoder.
	PositionSection() (PositionUnpickler, error)

	// TreeSection returns the tree-section decoder. Spans decoded by
	// the position section surface through Builder.Begin.
	TreeSection() (TreeUnpickler, error)
}

// PositionUnpickler decodes the position section; the resulting spans
// are attached to the tree events the tree section emits afterwards.
type PositionUnpickler interface {
	Unpickle() error
}

// TreeUnpickler decodes the tree section, emitting one Begin/End pair
// per tree node (payload events in between) to the supplied Builder.
type TreeUnpickler interface {
	Unpickle(b Builder) error
}

// TreeKind tags a Begin event with the node variant being constructed.
type TreeKind int

const (
	KindPackageDef TreeKind = iota
	KindImport
	KindExport
	KindImportSelector
	KindClassDef
	KindTemplate
	KindValDef
	KindDefDef
	KindTypeMember
	KindTypeParam
	KindBind
	KindSelect
	KindSelectIn
	KindSuper
	KindApply
	KindTypeApply
	KindTyped
	KindAssign
	KindNamedArg
	KindBlock
	KindIf
	KindInlineIf
	KindLambda
	KindMatch
	KindInlineMatch
	KindCaseDef
	KindAlternative
	KindUnapply
	KindSeqLiteral
	KindWhile
	KindThrow
	KindTry
	KindReturn
	KindInlined
	KindLiteral
	KindNew
	KindIdent
	KindFreeIdent
	KindImportIdent
	KindReferencedPackage
	KindThis
	KindEmptyTree
	KindTypeIdent
	KindSelectTypeTree
	KindSingletonTypeTree
	KindAppliedTypeTree
	KindAndTypeTree
	KindOrTypeTree
	KindByNameTypeTree
	KindRefinedTypeTree
	KindTypeBoundsTree
	KindTypeLambdaTree
	KindMatchTypeTree
	KindTypeCaseDef
	KindEmptyTypeTree
	KindTypeWrapper
)

// Builder receives tree-construction events from a TreeUnpickler. The
// protocol is a stack machine: Begin opens a node, payload events
// (Name/Constant/Type/Symbol/SectionBreak) attach to the innermost open
// node, nested Begin/End pairs build its children in projection order,
// and End closes the node, attaching it to its parent (or to the
// top-level forest when the stack is empty).
//
// Child order follows each variant's payload order; absent slots are
// filled with KindEmptyTree / KindEmptyTypeTree events rather than
// omitted. SectionBreak separates a node's variable-length child
// sections: a DefDef's curried parameter lists from its result/body, a
// Template's ctor/parents/self/body, an Unapply's fun/implicits/patterns,
// and a Try's expr/cases/finalizer.
type Builder interface {
	Begin(kind TreeKind, span trees.Span)
	Name(n names.Name)
	Constant(c types.Constant)
	Type(t types.Type)
	Symbol(sym symbols.Symbol)
	SectionBreak()
	End() error
}
