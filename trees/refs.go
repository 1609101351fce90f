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

package trees

import (
	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/terrors"
	"github.com/chiefpi/tasty-query/types"
)

// Ident is a simple term reference by name: `x`. The decoder records the
// resolved reference type alongside the name when it is known; when Tp is
// nil the type falls back to a prefix-less TermRef.
type Ident struct {
	span Span
	memo typeMemo
	Name names.Name
	Tp   types.Type // may be nil
}

func NewIdent(span Span, name names.Name) *Ident {
	return &Ident{span: span, Name: name}
}

func NewTypedIdent(span Span, name names.Name, tp types.Type) *Ident {
	return &Ident{span: span, Name: name, Tp: tp}
}

func (*Ident) isTree()             {}
func (t *Ident) Span() Span        { return t.span }
func (t *Ident) Subtrees() []Tree  { return noSubtrees }
func (t *Ident) TypeTrees() []Tree { return noTypeTrees }
func (t *Ident) Tpe(*rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		if t.Tp != nil {
			return t.Tp, nil
		}
		return types.TermRef{Prefix: types.NoPrefix, Name: t.Name}, nil
	})
}

// FreeIdent is a reference to a binding that is free in the decoded
// fragment (e.g. a captured local in an inlined body); its type always
// arrives precomputed from the decoder.
type FreeIdent struct {
	span Span
	Name names.Name
	Tp   types.Type
}

func NewFreeIdent(span Span, name names.Name, tp types.Type) *FreeIdent {
	return &FreeIdent{span: span, Name: name, Tp: tp}
}

func (*FreeIdent) isTree()             {}
func (t *FreeIdent) Span() Span        { return t.span }
func (t *FreeIdent) Subtrees() []Tree  { return noSubtrees }
func (t *FreeIdent) TypeTrees() []Tree { return noTypeTrees }
func (t *FreeIdent) Tpe(*rootctx.Context) (types.Type, error) {
	if t.Tp == nil {
		return nil, terrors.NewTypeComputationError("FreeIdent")
	}
	return t.Tp, nil
}

// ImportIdent is a name occurrence inside an Import/Export selector. It
// does not denote a value by itself, so it has no useful type.
type ImportIdent struct {
	span Span
	Name names.Name
}

func NewImportIdent(span Span, name names.Name) *ImportIdent {
	return &ImportIdent{span: span, Name: name}
}

func (*ImportIdent) isTree()             {}
func (t *ImportIdent) Span() Span        { return t.span }
func (t *ImportIdent) Subtrees() []Tree  { return noSubtrees }
func (t *ImportIdent) TypeTrees() []Tree { return noTypeTrees }
func (t *ImportIdent) Tpe(*rootctx.Context) (types.Type, error) {
	return types.NoType, nil
}

// ReferencedPackage is a reference to a package by fully qualified name,
// as the qualifier of an Import/Export or a package-qualified selection.
type ReferencedPackage struct {
	span     Span
	FullName names.Name
}

func NewReferencedPackage(span Span, fullName names.Name) *ReferencedPackage {
	return &ReferencedPackage{span: span, FullName: fullName}
}

func (*ReferencedPackage) isTree()             {}
func (t *ReferencedPackage) Span() Span        { return t.span }
func (t *ReferencedPackage) Subtrees() []Tree  { return noSubtrees }
func (t *ReferencedPackage) TypeTrees() []Tree { return noTypeTrees }
func (t *ReferencedPackage) Tpe(*rootctx.Context) (types.Type, error) {
	return types.PackageRef{FullName: t.FullName}, nil
}

// This is a `q.this` reference. When the qualifier resolves to a package
// the type is the package ref itself; otherwise the qualifier's type ref
// is wrapped in a ThisType.
type This struct {
	span Span
	memo typeMemo
	Qual Tree
}

func NewThis(span Span, qual Tree) *This {
	return &This{span: span, Qual: qual}
}

func (*This) isTree()            {}
func (t *This) Span() Span       { return t.span }
func (t *This) Subtrees() []Tree { return noSubtrees }
func (t *This) TypeTrees() []Tree {
	if _, ok := t.Qual.(TypeTree); ok {
		return []Tree{t.Qual}
	}
	return noTypeTrees
}
func (t *This) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		if rp, ok := t.Qual.(*ReferencedPackage); ok {
			return types.PackageRef{FullName: rp.FullName}, nil
		}
		qualTpe, err := ToType(ctx, t.Qual)
		if err != nil {
			return nil, err
		}
		if pr, ok := qualTpe.(types.PackageRef); ok {
			return pr, nil
		}
		return types.ThisType{Ref: qualTpe}, nil
	})
}
