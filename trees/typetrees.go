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

// ToType projects a tree in type position to a types.Type: a TypeTree
// projects via its own ToType rule, a ResolvedBounds yields its bounds,
// and anything else is a type-computation error.
func ToType(ctx *rootctx.Context, t Tree) (types.Type, error) {
	switch v := t.(type) {
	case TypeTree:
		return v.ToType(ctx)
	case *ResolvedBounds:
		return v.Bounds, nil
	case nil:
		return nil, terrors.NewTypeComputationError("<nil type tree>")
	default:
		return nil, terrors.NewTypeComputationError("tree not in type position")
	}
}

// EmptyTypeTree is the sentinel absent type-tree (an unascribed Lambda,
// an ImportSelector without a bound). Projecting it yields NoType.
type EmptyTypeTree struct{}

var theEmptyTypeTree = &EmptyTypeTree{}

// TheEmptyTypeTree returns the shared EmptyTypeTree instance.
func TheEmptyTypeTree() *EmptyTypeTree { return theEmptyTypeTree }

func (*EmptyTypeTree) isTree()             {}
func (*EmptyTypeTree) Span() Span          { return Span{} }
func (*EmptyTypeTree) Subtrees() []Tree    { return noSubtrees }
func (*EmptyTypeTree) TypeTrees() []Tree   { return noTypeTrees }
func (*EmptyTypeTree) Tpe(*rootctx.Context) (types.Type, error) { return types.NoType, nil }
func (*EmptyTypeTree) ToType(*rootctx.Context) (types.Type, error) {
	return types.NoType, nil
}

// TypeIdent is a simple type reference by name: `Int`. The decoder
// records the enclosing prefix when it resolves one; with no prefix the
// reference is left prefix-less.
type TypeIdent struct {
	span   Span
	memo   typeMemo
	Name   names.Name
	Prefix types.Type // may be nil
}

func NewTypeIdent(span Span, name names.Name) *TypeIdent {
	return &TypeIdent{span: span, Name: name}
}

func NewPrefixedTypeIdent(span Span, name names.Name, prefix types.Type) *TypeIdent {
	return &TypeIdent{span: span, Name: name, Prefix: prefix}
}

func (*TypeIdent) isTree()             {}
func (t *TypeIdent) Span() Span        { return t.span }
func (t *TypeIdent) Subtrees() []Tree  { return noSubtrees }
func (t *TypeIdent) TypeTrees() []Tree { return noTypeTrees }
func (t *TypeIdent) ToType(*rootctx.Context) (types.Type, error) {
	prefix := t.Prefix
	if prefix == nil {
		prefix = types.NoPrefix
	}
	return types.NewTypeRefByName(prefix, t.Name.ToTypeName()), nil
}
func (t *TypeIdent) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// TypeWrapper adapts an already-decoded types.Type into type-tree
// position, for the cases where the decoder hands back a type instead of
// a type-tree (shared prefixes, interned constants).
type TypeWrapper struct {
	span Span
	Tp   types.Type
}

func NewTypeWrapper(span Span, tp types.Type) *TypeWrapper {
	return &TypeWrapper{span: span, Tp: tp}
}

func (*TypeWrapper) isTree()             {}
func (t *TypeWrapper) Span() Span        { return t.span }
func (t *TypeWrapper) Subtrees() []Tree  { return noSubtrees }
func (t *TypeWrapper) TypeTrees() []Tree { return noTypeTrees }
func (t *TypeWrapper) ToType(*rootctx.Context) (types.Type, error) {
	return t.Tp, nil
}
func (t *TypeWrapper) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.Tp, nil
}

// SelectTypeTree is a type member selection through a term qualifier:
// `qual.T`.
type SelectTypeTree struct {
	span Span
	memo typeMemo
	Qual Tree
	Name names.Name
}

func NewSelectTypeTree(span Span, qual Tree, name names.Name) *SelectTypeTree {
	return &SelectTypeTree{span: span, Qual: qual, Name: name}
}

func (*SelectTypeTree) isTree()             {}
func (t *SelectTypeTree) Span() Span        { return t.span }
func (t *SelectTypeTree) Subtrees() []Tree  { return []Tree{t.Qual} }
func (t *SelectTypeTree) TypeTrees() []Tree { return noTypeTrees }
func (t *SelectTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	qualTpe, err := t.Qual.Tpe(ctx)
	if err != nil {
		return nil, err
	}
	return types.Select(qualTpe, t.Name.ToTypeName())
}
func (t *SelectTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// SingletonTypeTree is a singleton type over a stable path: `x.type`.
type SingletonTypeTree struct {
	span Span
	memo typeMemo
	Ref  Tree
}

func NewSingletonTypeTree(span Span, ref Tree) *SingletonTypeTree {
	return &SingletonTypeTree{span: span, Ref: ref}
}

func (*SingletonTypeTree) isTree()             {}
func (t *SingletonTypeTree) Span() Span        { return t.span }
func (t *SingletonTypeTree) Subtrees() []Tree  { return []Tree{t.Ref} }
func (t *SingletonTypeTree) TypeTrees() []Tree { return noTypeTrees }
func (t *SingletonTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	return t.Ref.Tpe(ctx)
}
func (t *SingletonTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// AppliedTypeTree is a generic type application: `List[Int]`.
type AppliedTypeTree struct {
	span  Span
	memo  typeMemo
	Tycon Tree
	Args  []Tree
}

func NewAppliedTypeTree(span Span, tycon Tree, args []Tree) *AppliedTypeTree {
	return &AppliedTypeTree{span: span, Tycon: tycon, Args: args}
}

func (*AppliedTypeTree) isTree()            {}
func (t *AppliedTypeTree) Span() Span       { return t.span }
func (t *AppliedTypeTree) Subtrees() []Tree { return noSubtrees }
func (t *AppliedTypeTree) TypeTrees() []Tree {
	return append([]Tree{t.Tycon}, t.Args...)
}
func (t *AppliedTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	tycon, err := ToType(ctx, t.Tycon)
	if err != nil {
		return nil, err
	}
	args := make([]types.Type, len(t.Args))
	for i, a := range t.Args {
		args[i], err = ToType(ctx, a)
		if err != nil {
			return nil, err
		}
	}
	return types.AppliedType{Tycon: tycon, Args: args}, nil
}
func (t *AppliedTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// AndTypeTree is an intersection type: `A & B`.
type AndTypeTree struct {
	span Span
	memo typeMemo
	A, B Tree
}

func NewAndTypeTree(span Span, a, b Tree) *AndTypeTree {
	return &AndTypeTree{span: span, A: a, B: b}
}

func (*AndTypeTree) isTree()             {}
func (t *AndTypeTree) Span() Span        { return t.span }
func (t *AndTypeTree) Subtrees() []Tree  { return noSubtrees }
func (t *AndTypeTree) TypeTrees() []Tree { return []Tree{t.A, t.B} }
func (t *AndTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	a, err := ToType(ctx, t.A)
	if err != nil {
		return nil, err
	}
	b, err := ToType(ctx, t.B)
	if err != nil {
		return nil, err
	}
	return types.AndType{A: a, B: b}, nil
}
func (t *AndTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// OrTypeTree is a union type: `A | B`.
type OrTypeTree struct {
	span Span
	memo typeMemo
	A, B Tree
}

func NewOrTypeTree(span Span, a, b Tree) *OrTypeTree {
	return &OrTypeTree{span: span, A: a, B: b}
}

func (*OrTypeTree) isTree()             {}
func (t *OrTypeTree) Span() Span        { return t.span }
func (t *OrTypeTree) Subtrees() []Tree  { return noSubtrees }
func (t *OrTypeTree) TypeTrees() []Tree { return []Tree{t.A, t.B} }
func (t *OrTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	a, err := ToType(ctx, t.A)
	if err != nil {
		return nil, err
	}
	b, err := ToType(ctx, t.B)
	if err != nil {
		return nil, err
	}
	return types.OrType{A: a, B: b}, nil
}
func (t *OrTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// ByNameTypeTree is a by-name parameter type: `=> T`.
type ByNameTypeTree struct {
	span   Span
	memo   typeMemo
	Result Tree
}

func NewByNameTypeTree(span Span, result Tree) *ByNameTypeTree {
	return &ByNameTypeTree{span: span, Result: result}
}

func (*ByNameTypeTree) isTree()             {}
func (t *ByNameTypeTree) Span() Span        { return t.span }
func (t *ByNameTypeTree) Subtrees() []Tree  { return noSubtrees }
func (t *ByNameTypeTree) TypeTrees() []Tree { return []Tree{t.Result} }
func (t *ByNameTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	r, err := ToType(ctx, t.Result)
	if err != nil {
		return nil, err
	}
	return types.ExprType{Result: r}, nil
}
func (t *ByNameTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// RefinedTypeTree refines an underlying type with one member
// declaration: `Parent { type T ... }`. Successive refinements nest.
type RefinedTypeTree struct {
	span       Span
	memo       typeMemo
	Parent     Tree
	MemberName names.Name
	Info       Tree
}

func NewRefinedTypeTree(span Span, parent Tree, memberName names.Name, info Tree) *RefinedTypeTree {
	return &RefinedTypeTree{span: span, Parent: parent, MemberName: memberName, Info: info}
}

func (*RefinedTypeTree) isTree()             {}
func (t *RefinedTypeTree) Span() Span        { return t.span }
func (t *RefinedTypeTree) Subtrees() []Tree  { return noSubtrees }
func (t *RefinedTypeTree) TypeTrees() []Tree { return []Tree{t.Parent, t.Info} }
func (t *RefinedTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	parent, err := ToType(ctx, t.Parent)
	if err != nil {
		return nil, err
	}
	info, err := ToType(ctx, t.Info)
	if err != nil {
		return nil, err
	}
	return types.RefinedType{Parent: parent, MemberName: t.MemberName, Info: info}, nil
}
func (t *RefinedTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// TypeBoundsTree is an abstract member's bounds: `>: Lo <: Hi`. An absent
// bound (EmptyTypeTree) defaults to Nothing below and Any above.
type TypeBoundsTree struct {
	span   Span
	memo   typeMemo
	Lo, Hi Tree
}

func NewTypeBoundsTree(span Span, lo, hi Tree) *TypeBoundsTree {
	return &TypeBoundsTree{span: span, Lo: lo, Hi: hi}
}

func (*TypeBoundsTree) isTree()             {}
func (t *TypeBoundsTree) Span() Span        { return t.span }
func (t *TypeBoundsTree) Subtrees() []Tree  { return noSubtrees }
func (t *TypeBoundsTree) TypeTrees() []Tree { return []Tree{t.Lo, t.Hi} }
func (t *TypeBoundsTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	lo, err := ToType(ctx, t.Lo)
	if err != nil {
		return nil, err
	}
	hi, err := ToType(ctx, t.Hi)
	if err != nil {
		return nil, err
	}
	if lo == types.NoType {
		lo = types.NothingType
	}
	if hi == types.NoType {
		hi = types.AnyType
	}
	return types.RealTypeBounds{Lo: lo, Hi: hi}, nil
}
func (t *TypeBoundsTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// TypeLambdaTree is a type-level function literal: `[X] =>> Body`. Each
// parameter's bounds collapse to Nothing..Any until higher-kinded
// parameter references resolve through the lambda itself.
type TypeLambdaTree struct {
	span   Span
	memo   typeMemo
	Params []*TypeParam
	Body   Tree
}

func NewTypeLambdaTree(span Span, params []*TypeParam, body Tree) *TypeLambdaTree {
	return &TypeLambdaTree{span: span, Params: params, Body: body}
}

func (*TypeLambdaTree) isTree()            {}
func (t *TypeLambdaTree) Span() Span       { return t.span }
func (t *TypeLambdaTree) Subtrees() []Tree { return noSubtrees }
func (t *TypeLambdaTree) TypeTrees() []Tree {
	out := make([]Tree, 0, len(t.Params)+1)
	for _, p := range t.Params {
		out = append(out, p)
	}
	return append(out, t.Body)
}
func (t *TypeLambdaTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	params := make([]types.TypeLambdaParam, len(t.Params))
	for i, p := range t.Params {
		params[i] = types.TypeLambdaParam{Name: p.Name, Bounds: types.DefaultBounds()}
	}
	body, err := ToType(ctx, t.Body)
	if err != nil {
		return nil, err
	}
	return types.TypeLambda{Params: params, Result: body}, nil
}
func (t *TypeLambdaTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// MatchTypeTree is a type-level match: `Selector match { cases }`,
// optionally bounded by Bound.
type MatchTypeTree struct {
	span     Span
	memo     typeMemo
	Bound    Tree // may be EmptyTypeTree
	Selector Tree
	Cases    []*TypeCaseDef
}

func NewMatchTypeTree(span Span, bound, selector Tree, cases []*TypeCaseDef) *MatchTypeTree {
	return &MatchTypeTree{span: span, Bound: bound, Selector: selector, Cases: cases}
}

func (*MatchTypeTree) isTree()            {}
func (t *MatchTypeTree) Span() Span       { return t.span }
func (t *MatchTypeTree) Subtrees() []Tree { return noSubtrees }
func (t *MatchTypeTree) TypeTrees() []Tree {
	out := []Tree{t.Bound, t.Selector}
	for _, c := range t.Cases {
		out = append(out, c)
	}
	return out
}
func (t *MatchTypeTree) ToType(ctx *rootctx.Context) (types.Type, error) {
	bound, err := ToType(ctx, t.Bound)
	if err != nil {
		return nil, err
	}
	if bound == types.NoType {
		bound = types.AnyType
	}
	sel, err := ToType(ctx, t.Selector)
	if err != nil {
		return nil, err
	}
	cases := make([]types.MatchTypeCase, len(t.Cases))
	for i, c := range t.Cases {
		pat, err := ToType(ctx, c.Pattern)
		if err != nil {
			return nil, err
		}
		res, err := ToType(ctx, c.Body)
		if err != nil {
			return nil, err
		}
		cases[i] = types.MatchTypeCase{Pattern: pat, Result: res}
	}
	return types.MatchType{Bound: bound, Scrutinee: sel, Cases: cases}, nil
}
func (t *MatchTypeTree) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return t.ToType(ctx) })
}

// TypeCaseDef is one `case Pattern => Body` arm of a MatchTypeTree.
type TypeCaseDef struct {
	span          Span
	Pattern, Body Tree
}

func NewTypeCaseDef(span Span, pattern, body Tree) *TypeCaseDef {
	return &TypeCaseDef{span: span, Pattern: pattern, Body: body}
}

func (*TypeCaseDef) isTree()             {}
func (t *TypeCaseDef) Span() Span        { return t.span }
func (t *TypeCaseDef) Subtrees() []Tree  { return noSubtrees }
func (t *TypeCaseDef) TypeTrees() []Tree { return []Tree{t.Pattern, t.Body} }
func (t *TypeCaseDef) ToType(ctx *rootctx.Context) (types.Type, error) {
	return ToType(ctx, t.Body)
}
func (t *TypeCaseDef) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.ToType(ctx)
}
