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

// Package trees implements the typed AST: a closed family of ~40 node
// variants, each with a lazily computed, memoized Type, generic
// subtree/type-tree traversal, and, for definition nodes, a one-shot
// back-pointer to the symbol they declare.
package trees

import (
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/types"
)

// Span is a source position range, as recorded by the position section of
// a TASTy file. Decoding the position section itself is the unpickler
// collaborator's concern; trees only carry the resulting offsets.
type Span struct {
	Start, End int
}

// Tree is the closed sum of typed AST node variants. All implementations
// live in this package.
type Tree interface {
	// isTree closes the sum over this package.
	isTree()

	// Span returns the source range this node occupies.
	Span() Span

	// Subtrees returns this node's term-level children, in a fixed,
	// deterministic order per variant.
	Subtrees() []Tree

	// TypeTrees returns the type-tree children discovered at this node
	// (e.g. a ValDef's `tpt`).
	TypeTrees() []Tree

	// Tpe computes (and memoizes) this node's type. A failed
	// computation is not memoized and may be retried.
	Tpe(ctx *rootctx.Context) (types.Type, error)
}

// TypeTree is implemented by the subset of Tree that denotes a type
// rather than a term: TypeIdent, SelectTypeTree, SingletonTypeTree,
// AppliedTypeTree, RefinedTypeTree, TypeBoundsTree, TypeLambdaTree,
// MatchTypeTree, ByNameTypeTree, AndTypeTree, OrTypeTree, TypeWrapper,
// and EmptyTypeTree.
type TypeTree interface {
	Tree
	// ToType projects this type-tree to a types.Type.
	ToType(ctx *rootctx.Context) (types.Type, error)
}

// DefTree is implemented by the node variants that declare a symbol:
// ClassDef, ValDef, DefDef, TypeMember, TypeParam, and Bind. PackageDef
// carries no symbol and is not a DefTree.
type DefTree interface {
	Tree
	symbols.DefiningTree
}

// typeMemo is the compute-once slot embedded in the Tree nodes that cache
// their computed type (nodes such as Literal and Block recompute it on
// each call): a plain, non-atomic field suffices because the loader is
// single-threaded cooperative. A failed computation leaves done false so
// the caller may retry.
type typeMemo struct {
	tpe  types.Type
	done bool
}

func (m *typeMemo) get(calc func() (types.Type, error)) (types.Type, error) {
	if m.done {
		return m.tpe, nil
	}
	t, err := calc()
	if err != nil {
		return nil, err
	}
	m.tpe = t
	m.done = true
	return t, nil
}

// symbolSlot is the one-shot symbol back-pointer embedded in every
// DefTree node.
type symbolSlot struct {
	sym symbols.Symbol
}

// DefinedSymbol implements symbols.DefiningTree.
func (s *symbolSlot) DefinedSymbol() symbols.Symbol { return s.sym }

// noSubtrees and noTypeTrees are shared empty slices for the many leaf
// nodes (Literal, EmptyTree, Ident family, ...) whose Subtrees/TypeTrees
// projections are empty; the projection is total and always returns a
// (possibly empty) slice, never nil-as-error.
var noSubtrees []Tree
var noTypeTrees []Tree
