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
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/types"
)

// defTreeType returns NoType: every definition node (PackageDef, ClassDef,
// ValDef, DefDef, TypeMember, TypeParam, Bind, Import, Export,
// ImportSelector) computes to NoType.
func defTreeType() (types.Type, error) { return types.NoType, nil }

// PackageDef is the root of a compilation unit's tree: a package id and
// the statements (classes, nested package defs, ...) it contains.
type PackageDef struct {
	span  Span
	Pid   Tree
	Stats []Tree
}

func NewPackageDef(span Span, pid Tree, stats []Tree) *PackageDef {
	return &PackageDef{span: span, Pid: pid, Stats: stats}
}

func (*PackageDef) isTree()            {}
func (t *PackageDef) Span() Span       { return t.span }
func (t *PackageDef) Subtrees() []Tree { return t.Stats }
func (t *PackageDef) TypeTrees() []Tree { return noTypeTrees }
func (t *PackageDef) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// Import brings names into scope from expr, subject to selectors.
type Import struct {
	span       Span
	Expr       Tree
	Selectors  []Tree
}

func NewImport(span Span, expr Tree, selectors []Tree) *Import {
	return &Import{span: span, Expr: expr, Selectors: selectors}
}

func (*Import) isTree()      {}
func (t *Import) Span() Span { return t.span }
func (t *Import) Subtrees() []Tree {
	return append([]Tree{t.Expr}, t.Selectors...)
}
func (t *Import) TypeTrees() []Tree                           { return noTypeTrees }
func (t *Import) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// Export re-exports names from expr, subject to selectors.
type Export struct {
	span      Span
	Expr      Tree
	Selectors []Tree
}

func NewExport(span Span, expr Tree, selectors []Tree) *Export {
	return &Export{span: span, Expr: expr, Selectors: selectors}
}

func (*Export) isTree()      {}
func (t *Export) Span() Span { return t.span }
func (t *Export) Subtrees() []Tree {
	return append([]Tree{t.Expr}, t.Selectors...)
}
func (t *Export) TypeTrees() []Tree                           { return noTypeTrees }
func (t *Export) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// ImportSelector is one clause of an Import/Export list: `a => b` (or just
// `a`, when Renamed is EmptyTree), optionally guarded by a Bound type-tree
// (`a: T`, used for given-selector bounds).
type ImportSelector struct {
	span     Span
	Imported Tree
	Renamed  Tree
	Bound    Tree
}

func NewImportSelector(span Span, imported, renamed, bound Tree) *ImportSelector {
	return &ImportSelector{span: span, Imported: imported, Renamed: renamed, Bound: bound}
}

func (*ImportSelector) isTree()      {}
func (t *ImportSelector) Span() Span { return t.span }
func (t *ImportSelector) Subtrees() []Tree {
	return []Tree{t.Imported, t.Renamed}
}
func (t *ImportSelector) TypeTrees() []Tree {
	if t.Bound == nil {
		return noTypeTrees
	}
	return []Tree{t.Bound}
}
func (t *ImportSelector) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// ClassDef declares a class, trait, or object: a name and its Template.
type ClassDef struct {
	span Span
	symbolSlot
	Name     names.Name
	Template Tree
}

func NewClassDef(span Span, name names.Name, template Tree, sym symbols.Symbol) *ClassDef {
	return &ClassDef{span: span, symbolSlot: symbolSlot{sym: sym}, Name: name, Template: template}
}

func (*ClassDef) isTree()            {}
func (t *ClassDef) Span() Span       { return t.span }
func (t *ClassDef) Subtrees() []Tree { return []Tree{t.Template} }
func (t *ClassDef) TypeTrees() []Tree { return noTypeTrees }
func (t *ClassDef) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// Template is a class/trait/object body: its primary constructor,
// parent types, optional self-type annotation, and member statements.
type Template struct {
	span    Span
	Ctor    Tree
	Parents []Tree
	Self    Tree
	Body    []Tree
}

func NewTemplate(span Span, ctor Tree, parents []Tree, self Tree, body []Tree) *Template {
	return &Template{span: span, Ctor: ctor, Parents: parents, Self: self, Body: body}
}

func (*Template) isTree()      {}
func (t *Template) Span() Span { return t.span }
func (t *Template) Subtrees() []Tree {
	all := make([]Tree, 0, 2+len(t.Parents)+len(t.Body))
	all = append(all, t.Ctor)
	all = append(all, t.Parents...)
	if t.Self != nil {
		all = append(all, t.Self)
	}
	all = append(all, t.Body...)
	return all
}
func (t *Template) TypeTrees() []Tree {
	var out []Tree
	for _, p := range t.Parents {
		if _, ok := p.(TypeTree); ok {
			out = append(out, p)
		}
	}
	return out
}
func (t *Template) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// ValDef declares a value: `val`/`var`/parameter binding.
type ValDef struct {
	span Span
	symbolSlot
	Name names.Name
	Tpt  Tree
	Rhs  Tree
}

func NewValDef(span Span, name names.Name, tpt, rhs Tree, sym symbols.Symbol) *ValDef {
	return &ValDef{span: span, symbolSlot: symbolSlot{sym: sym}, Name: name, Tpt: tpt, Rhs: rhs}
}

func (*ValDef) isTree()      {}
func (t *ValDef) Span() Span { return t.span }
func (t *ValDef) Subtrees() []Tree {
	if t.Rhs == nil {
		return noSubtrees
	}
	return []Tree{t.Rhs}
}
func (t *ValDef) TypeTrees() []Tree {
	if t.Tpt == nil {
		return noTypeTrees
	}
	return []Tree{t.Tpt}
}
func (t *ValDef) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// DefDef declares a method: a name, curried parameter lists, a result
// type-tree and a body.
type DefDef struct {
	span Span
	symbolSlot
	Name       names.Name
	ParamLists [][]Tree
	ResultTpt  Tree
	Rhs        Tree
}

func NewDefDef(span Span, name names.Name, paramLists [][]Tree, resultTpt, rhs Tree, sym symbols.Symbol) *DefDef {
	return &DefDef{span: span, symbolSlot: symbolSlot{sym: sym}, Name: name, ParamLists: paramLists, ResultTpt: resultTpt, Rhs: rhs}
}

func (*DefDef) isTree()      {}
func (t *DefDef) Span() Span { return t.span }
func (t *DefDef) Subtrees() []Tree {
	var out []Tree
	for _, pl := range t.ParamLists {
		out = append(out, pl...)
	}
	if t.Rhs != nil {
		out = append(out, t.Rhs)
	}
	return out
}
func (t *DefDef) TypeTrees() []Tree {
	if t.ResultTpt == nil {
		return noTypeTrees
	}
	return []Tree{t.ResultTpt}
}
func (t *DefDef) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// TypeMember declares a type member: `type T = X` (Rhs is a TypeTree
// alias) or `type T >: Lo <: Hi` (Rhs is a ResolvedBounds, already
// carrying a types.Type and so excluded from TypeTrees).
type TypeMember struct {
	span Span
	symbolSlot
	Name names.Name
	Rhs  Tree
}

func NewTypeMember(span Span, name names.Name, rhs Tree, sym symbols.Symbol) *TypeMember {
	return &TypeMember{span: span, symbolSlot: symbolSlot{sym: sym}, Name: name, Rhs: rhs}
}

func (*TypeMember) isTree()            {}
func (t *TypeMember) Span() Span       { return t.span }
func (t *TypeMember) Subtrees() []Tree { return noSubtrees }
func (t *TypeMember) TypeTrees() []Tree {
	if _, ok := t.Rhs.(TypeTree); ok {
		return []Tree{t.Rhs}
	}
	return noTypeTrees
}
func (t *TypeMember) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// TypeParam declares a type parameter: a name and its bounds (a TypeTree,
// or already-resolved ResolvedBounds, per the same rule as TypeMember).
type TypeParam struct {
	span Span
	symbolSlot
	Name   names.Name
	Bounds Tree
}

func NewTypeParam(span Span, name names.Name, bounds Tree, sym symbols.Symbol) *TypeParam {
	return &TypeParam{span: span, symbolSlot: symbolSlot{sym: sym}, Name: name, Bounds: bounds}
}

func (*TypeParam) isTree()            {}
func (t *TypeParam) Span() Span       { return t.span }
func (t *TypeParam) Subtrees() []Tree { return noSubtrees }
func (t *TypeParam) TypeTrees() []Tree {
	if _, ok := t.Bounds.(TypeTree); ok {
		return []Tree{t.Bounds}
	}
	return noTypeTrees
}
func (t *TypeParam) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// Bind declares a pattern-match binding: `case x @ pattern =>`.
type Bind struct {
	span Span
	symbolSlot
	Name names.Name
	Body Tree
}

func NewBind(span Span, name names.Name, body Tree, sym symbols.Symbol) *Bind {
	return &Bind{span: span, symbolSlot: symbolSlot{sym: sym}, Name: name, Body: body}
}

func (*Bind) isTree()            {}
func (t *Bind) Span() Span       { return t.span }
func (t *Bind) Subtrees() []Tree { return []Tree{t.Body} }
func (t *Bind) TypeTrees() []Tree { return noTypeTrees }
func (t *Bind) Tpe(*rootctx.Context) (types.Type, error) { return defTreeType() }

// ResolvedBounds wraps an already-computed types.RealTypeBounds as a Tree
// payload, for the case where TypeMember/TypeParam's bounds arrived
// pre-resolved from the decoder rather than as a TypeBoundsTree. It
// deliberately does not implement TypeTree, which keeps it out of the
// TypeTrees projection.
type ResolvedBounds struct {
	span   Span
	Bounds types.RealTypeBounds
}

func NewResolvedBounds(span Span, bounds types.RealTypeBounds) *ResolvedBounds {
	return &ResolvedBounds{span: span, Bounds: bounds}
}

func (*ResolvedBounds) isTree()            {}
func (t *ResolvedBounds) Span() Span       { return t.span }
func (t *ResolvedBounds) Subtrees() []Tree { return noSubtrees }
func (t *ResolvedBounds) TypeTrees() []Tree { return noTypeTrees }
func (t *ResolvedBounds) Tpe(*rootctx.Context) (types.Type, error) { return t.Bounds, nil }
