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
	"github.com/chiefpi/tasty-query/terrors"
	"github.com/chiefpi/tasty-query/types"
)

// Select is a term member selection: `qual.name`.
type Select struct {
	span Span
	memo typeMemo
	Qual Tree
	Name names.Name
}

func NewSelect(span Span, qual Tree, name names.Name) *Select {
	return &Select{span: span, Qual: qual, Name: name}
}

func (*Select) isTree()            {}
func (t *Select) Span() Span       { return t.span }
func (t *Select) Subtrees() []Tree { return []Tree{t.Qual} }
func (t *Select) TypeTrees() []Tree { return noTypeTrees }
func (t *Select) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		qualTpe, err := t.Qual.Tpe(ctx)
		if err != nil {
			return nil, err
		}
		return types.Select(qualTpe, t.Name)
	})
}

// SelectIn is a Select disambiguated by an explicit signature and
// declaring owner, used to pick one overload directly (bypassing
// widenOverloads).
type SelectIn struct {
	span        Span
	memo        typeMemo
	Qual        Tree
	SignedName  names.Name
	SelectOwner symbols.Symbol
}

func NewSelectIn(span Span, qual Tree, signedName names.Name, owner symbols.Symbol) *SelectIn {
	return &SelectIn{span: span, Qual: qual, SignedName: signedName, SelectOwner: owner}
}

func (*SelectIn) isTree()            {}
func (t *SelectIn) Span() Span       { return t.span }
func (t *SelectIn) Subtrees() []Tree { return []Tree{t.Qual} }
func (t *SelectIn) TypeTrees() []Tree { return noTypeTrees }
func (t *SelectIn) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		qualTpe, err := t.Qual.Tpe(ctx)
		if err != nil {
			return nil, err
		}
		return types.SelectIn(qualTpe, t.SignedName, t.SelectOwner)
	})
}

// Super is `qual.super[mix]`, selecting a parent class's view of qual.
// Its type is approximated by qual's own type; resolving the selected
// parent's view would need linearization data the decoder does not
// surface.
type Super struct {
	span Span
	memo typeMemo
	Qual Tree
	Mix  Tree // may be nil
}

func NewSuper(span Span, qual, mix Tree) *Super {
	return &Super{span: span, Qual: qual, Mix: mix}
}

func (*Super) isTree()      {}
func (t *Super) Span() Span { return t.span }
func (t *Super) Subtrees() []Tree { return []Tree{t.Qual} }
func (t *Super) TypeTrees() []Tree { return noTypeTrees }
func (t *Super) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		return t.Qual.Tpe(ctx)
	})
}

// Apply is a term application: `fun(args)`.
type Apply struct {
	span Span
	memo typeMemo
	Fun  Tree
	Args []Tree
}

func NewApply(span Span, fun Tree, args []Tree) *Apply {
	return &Apply{span: span, Fun: fun, Args: args}
}

func (*Apply) isTree()      {}
func (t *Apply) Span() Span { return t.span }
func (t *Apply) Subtrees() []Tree {
	return append([]Tree{t.Fun}, t.Args...)
}
func (t *Apply) TypeTrees() []Tree { return noTypeTrees }
func (t *Apply) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		funTpe, err := t.Fun.Tpe(ctx)
		if err != nil {
			return nil, err
		}
		m, err := types.AsMethodType(funTpe)
		if err != nil {
			return nil, err
		}
		// No dependent-parameter substitution: ResultType is
		// returned verbatim.
		return m.ResultType(), nil
	})
}

// TypeApply is a type-level application: `fun[typeArgs]`.
type TypeApply struct {
	span     Span
	memo     typeMemo
	Fun      Tree
	TypeArgs []Tree
}

func NewTypeApply(span Span, fun Tree, typeArgs []Tree) *TypeApply {
	return &TypeApply{span: span, Fun: fun, TypeArgs: typeArgs}
}

func (*TypeApply) isTree()            {}
func (t *TypeApply) Span() Span       { return t.span }
func (t *TypeApply) Subtrees() []Tree { return []Tree{t.Fun} }
func (t *TypeApply) TypeTrees() []Tree { return t.TypeArgs }
func (t *TypeApply) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		funTpe, err := t.Fun.Tpe(ctx)
		if err != nil {
			return nil, err
		}
		p, err := types.AsPolyType(funTpe)
		if err != nil {
			return nil, err
		}
		// No type-parameter substitution: ResultType is returned
		// verbatim.
		return p.ResultType(), nil
	})
}

// Typed is an explicitly ascribed expression: `expr: tpt`.
type Typed struct {
	span Span
	memo typeMemo
	Expr Tree
	Tpt  Tree
}

func NewTyped(span Span, expr, tpt Tree) *Typed {
	return &Typed{span: span, Expr: expr, Tpt: tpt}
}

func (*Typed) isTree()            {}
func (t *Typed) Span() Span       { return t.span }
func (t *Typed) Subtrees() []Tree { return []Tree{t.Expr} }
func (t *Typed) TypeTrees() []Tree { return []Tree{t.Tpt} }
func (t *Typed) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		return ToType(ctx, t.Tpt)
	})
}

// Assign is a mutable-variable assignment: `lhs = rhs`.
type Assign struct {
	span Span
	Lhs  Tree
	Rhs  Tree
}

func NewAssign(span Span, lhs, rhs Tree) *Assign {
	return &Assign{span: span, Lhs: lhs, Rhs: rhs}
}

func (*Assign) isTree()            {}
func (t *Assign) Span() Span       { return t.span }
func (t *Assign) Subtrees() []Tree { return []Tree{t.Lhs, t.Rhs} }
func (t *Assign) TypeTrees() []Tree { return noTypeTrees }
func (t *Assign) Tpe(*rootctx.Context) (types.Type, error) { return types.UnitType, nil }

// NamedArg is a named-argument application clause: `name = arg`.
type NamedArg struct {
	span Span
	Name names.Name
	Arg  Tree
}

func NewNamedArg(span Span, name names.Name, arg Tree) *NamedArg {
	return &NamedArg{span: span, Name: name, Arg: arg}
}

func (*NamedArg) isTree()            {}
func (t *NamedArg) Span() Span       { return t.span }
func (t *NamedArg) Subtrees() []Tree { return []Tree{t.Arg} }
func (t *NamedArg) TypeTrees() []Tree { return noTypeTrees }
func (t *NamedArg) Tpe(ctx *rootctx.Context) (types.Type, error) { return t.Arg.Tpe(ctx) }

// Block is a sequence of statements followed by a result expression.
type Block struct {
	span  Span
	Stats []Tree
	Expr  Tree
}

func NewBlock(span Span, stats []Tree, expr Tree) *Block {
	return &Block{span: span, Stats: stats, Expr: expr}
}

func (*Block) isTree()      {}
func (t *Block) Span() Span { return t.span }
func (t *Block) Subtrees() []Tree {
	return append(append([]Tree{}, t.Stats...), t.Expr)
}
func (t *Block) TypeTrees() []Tree { return noTypeTrees }
func (t *Block) Tpe(ctx *rootctx.Context) (types.Type, error) { return t.Expr.Tpe(ctx) }

// If is a conditional expression; InlineIf is its `inline if` variant,
// sharing the same shape and type rule.
type If struct {
	span               Span
	memo               typeMemo
	Cond, Then, ElseP   Tree
}

func NewIf(span Span, cond, thenPart, elsePart Tree) *If {
	return &If{span: span, Cond: cond, Then: thenPart, ElseP: elsePart}
}

func (*If) isTree()            {}
func (t *If) Span() Span       { return t.span }
func (t *If) Subtrees() []Tree { return []Tree{t.Cond, t.Then, t.ElseP} }
func (t *If) TypeTrees() []Tree { return noTypeTrees }
func (t *If) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return joinBranches(ctx, t.Then, t.ElseP) })
}

// InlineIf is the inline-if variant of If; same shape, same type rule.
type InlineIf struct {
	span             Span
	memo             typeMemo
	Cond, Then, ElseP Tree
}

func NewInlineIf(span Span, cond, thenPart, elsePart Tree) *InlineIf {
	return &InlineIf{span: span, Cond: cond, Then: thenPart, ElseP: elsePart}
}

func (*InlineIf) isTree()            {}
func (t *InlineIf) Span() Span       { return t.span }
func (t *InlineIf) Subtrees() []Tree { return []Tree{t.Cond, t.Then, t.ElseP} }
func (t *InlineIf) TypeTrees() []Tree { return noTypeTrees }
func (t *InlineIf) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return joinBranches(ctx, t.Then, t.ElseP) })
}

func joinBranches(ctx *rootctx.Context, a, b Tree) (types.Type, error) {
	aTpe, err := a.Tpe(ctx)
	if err != nil {
		return nil, err
	}
	bTpe, err := b.Tpe(ctx)
	if err != nil {
		return nil, err
	}
	// The branch join is an unnormalized OrType.
	return types.OrType{A: aTpe, B: bTpe}, nil
}

// Lambda is a function literal backed by a synthetic method: `meth` is
// the DefDef (or a reference to it) implementing the function body, and
// `tpt`, when present, is the ascribed function type.
type Lambda struct {
	span Span
	memo typeMemo
	Meth Tree
	Tpt  Tree // may be nil
}

func NewLambda(span Span, meth, tpt Tree) *Lambda {
	return &Lambda{span: span, Meth: meth, Tpt: tpt}
}

func (*Lambda) isTree()            {}
func (t *Lambda) Span() Span       { return t.span }
func (t *Lambda) Subtrees() []Tree { return []Tree{t.Meth} }
func (t *Lambda) TypeTrees() []Tree {
	if t.Tpt == nil {
		return noTypeTrees
	}
	return []Tree{t.Tpt}
}
func (t *Lambda) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		if t.Tpt != nil {
			return ToType(ctx, t.Tpt)
		}
		// Function-type synthesis for an untyped Lambda is not
		// implemented; the error is preserved until a dedicated
		// pass can supply it.
		return nil, terrors.NewTypeComputationError("Lambda")
	})
}

// Match is a pattern match expression; InlineMatch is its `inline match`
// variant, sharing the same shape and type rule.
type Match struct {
	span     Span
	memo     typeMemo
	Selector Tree
	Cases    []Tree
}

func NewMatch(span Span, selector Tree, cases []Tree) *Match {
	return &Match{span: span, Selector: selector, Cases: cases}
}

func (*Match) isTree()      {}
func (t *Match) Span() Span { return t.span }
func (t *Match) Subtrees() []Tree {
	return append([]Tree{t.Selector}, t.Cases...)
}
func (t *Match) TypeTrees() []Tree { return noTypeTrees }
func (t *Match) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return joinCases(ctx, t.Cases) })
}

// InlineMatch is the inline-match variant of Match; same shape, same type
// rule.
type InlineMatch struct {
	span     Span
	memo     typeMemo
	Selector Tree
	Cases    []Tree
}

func NewInlineMatch(span Span, selector Tree, cases []Tree) *InlineMatch {
	return &InlineMatch{span: span, Selector: selector, Cases: cases}
}

func (*InlineMatch) isTree()      {}
func (t *InlineMatch) Span() Span { return t.span }
func (t *InlineMatch) Subtrees() []Tree {
	return append([]Tree{t.Selector}, t.Cases...)
}
func (t *InlineMatch) TypeTrees() []Tree { return noTypeTrees }
func (t *InlineMatch) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return joinCases(ctx, t.Cases) })
}

func joinCases(ctx *rootctx.Context, cases []Tree) (types.Type, error) {
	if len(cases) == 0 {
		return types.NothingType, nil
	}
	acc, err := cases[0].Tpe(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range cases[1:] {
		t, err := c.Tpe(ctx)
		if err != nil {
			return nil, err
		}
		acc = types.OrType{A: acc, B: t}
	}
	return acc, nil
}

// CaseDef is one `case pattern if guard => body` clause of a Match.
type CaseDef struct {
	span    Span
	Pattern Tree
	Guard   Tree // may be nil
	Body    Tree
}

func NewCaseDef(span Span, pattern, guard, body Tree) *CaseDef {
	return &CaseDef{span: span, Pattern: pattern, Guard: guard, Body: body}
}

func (*CaseDef) isTree()      {}
func (t *CaseDef) Span() Span { return t.span }
func (t *CaseDef) Subtrees() []Tree {
	if t.Guard == nil {
		return []Tree{t.Pattern, t.Body}
	}
	return []Tree{t.Pattern, t.Guard, t.Body}
}
func (t *CaseDef) TypeTrees() []Tree { return noTypeTrees }
func (t *CaseDef) Tpe(ctx *rootctx.Context) (types.Type, error) { return t.Body.Tpe(ctx) }

// Alternative is a pattern alternative: `case a | b | c =>`. By
// convention it reports the first alternative's type; patterns do not
// themselves carry useful types past matching.
type Alternative struct {
	span  Span
	Trees []Tree
}

func NewAlternative(span Span, trees []Tree) *Alternative {
	return &Alternative{span: span, Trees: trees}
}

func (*Alternative) isTree()            {}
func (t *Alternative) Span() Span       { return t.span }
func (t *Alternative) Subtrees() []Tree { return t.Trees }
func (t *Alternative) TypeTrees() []Tree { return noTypeTrees }
func (t *Alternative) Tpe(ctx *rootctx.Context) (types.Type, error) {
	if len(t.Trees) == 0 {
		return types.NoType, nil
	}
	return t.Trees[0].Tpe(ctx)
}

// Unapply is an extractor pattern: `fun(implicits)(patterns)`. Like the
// definition nodes, it reports NoType.
type Unapply struct {
	span      Span
	Fun       Tree
	Implicits []Tree
	Patterns  []Tree
}

func NewUnapply(span Span, fun Tree, implicits, patterns []Tree) *Unapply {
	return &Unapply{span: span, Fun: fun, Implicits: implicits, Patterns: patterns}
}

func (*Unapply) isTree()      {}
func (t *Unapply) Span() Span { return t.span }
func (t *Unapply) Subtrees() []Tree {
	all := make([]Tree, 0, 1+len(t.Implicits)+len(t.Patterns))
	all = append(all, t.Fun)
	all = append(all, t.Implicits...)
	all = append(all, t.Patterns...)
	return all
}
func (t *Unapply) TypeTrees() []Tree { return noTypeTrees }
func (t *Unapply) Tpe(*rootctx.Context) (types.Type, error) { return types.NoType, nil }

// SeqLiteral is a literal sequence, primarily used for varargs: `Seq(a, b,
// c)` encoded without the call syntax.
type SeqLiteral struct {
	span    Span
	memo    typeMemo
	Elems   []Tree
	Elemtpt Tree
}

func NewSeqLiteral(span Span, elems []Tree, elemtpt Tree) *SeqLiteral {
	return &SeqLiteral{span: span, Elems: elems, Elemtpt: elemtpt}
}

func (*SeqLiteral) isTree()            {}
func (t *SeqLiteral) Span() Span       { return t.span }
func (t *SeqLiteral) Subtrees() []Tree { return t.Elems }
func (t *SeqLiteral) TypeTrees() []Tree {
	if t.Elemtpt == nil {
		return noTypeTrees
	}
	return []Tree{t.Elemtpt}
}
func (t *SeqLiteral) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		if t.Elemtpt == nil {
			return types.NoType, nil
		}
		return ToType(ctx, t.Elemtpt)
	})
}

// While is a `while (cond) body` loop.
type While struct {
	span       Span
	Cond, Body Tree
}

func NewWhile(span Span, cond, body Tree) *While {
	return &While{span: span, Cond: cond, Body: body}
}

func (*While) isTree()            {}
func (t *While) Span() Span       { return t.span }
func (t *While) Subtrees() []Tree { return []Tree{t.Cond, t.Body} }
func (t *While) TypeTrees() []Tree { return noTypeTrees }
func (t *While) Tpe(*rootctx.Context) (types.Type, error) { return types.UnitType, nil }

// Throw is a `throw expr` expression.
type Throw struct {
	span Span
	Expr Tree
}

func NewThrow(span Span, expr Tree) *Throw {
	return &Throw{span: span, Expr: expr}
}

func (*Throw) isTree()            {}
func (t *Throw) Span() Span       { return t.span }
func (t *Throw) Subtrees() []Tree { return []Tree{t.Expr} }
func (t *Throw) TypeTrees() []Tree { return noTypeTrees }
func (t *Throw) Tpe(*rootctx.Context) (types.Type, error) { return types.NothingType, nil }

// Try is a `try expr catch { cases } finally finalizer` expression.
type Try struct {
	span      Span
	memo      typeMemo
	Expr      Tree
	Cases     []Tree
	Finalizer Tree // may be nil
}

func NewTry(span Span, expr Tree, cases []Tree, finalizer Tree) *Try {
	return &Try{span: span, Expr: expr, Cases: cases, Finalizer: finalizer}
}

func (*Try) isTree()      {}
func (t *Try) Span() Span { return t.span }
func (t *Try) Subtrees() []Tree {
	all := make([]Tree, 0, 2+len(t.Cases))
	all = append(all, t.Expr)
	all = append(all, t.Cases...)
	if t.Finalizer != nil {
		all = append(all, t.Finalizer)
	}
	return all
}
func (t *Try) TypeTrees() []Tree { return noTypeTrees }
func (t *Try) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) {
		exprTpe, err := t.Expr.Tpe(ctx)
		if err != nil {
			return nil, err
		}
		acc := exprTpe
		for _, c := range t.Cases {
			cTpe, err := c.Tpe(ctx)
			if err != nil {
				return nil, err
			}
			acc = types.OrType{A: acc, B: cTpe}
		}
		return acc, nil
	})
}

// Return is a `return expr` from the enclosing method `from`.
type Return struct {
	span Span
	Expr Tree // may be nil (bare `return`)
	From Tree
}

func NewReturn(span Span, expr, from Tree) *Return {
	return &Return{span: span, Expr: expr, From: from}
}

func (*Return) isTree()      {}
func (t *Return) Span() Span { return t.span }
func (t *Return) Subtrees() []Tree {
	if t.Expr == nil {
		return []Tree{t.From}
	}
	return []Tree{t.Expr, t.From}
}
func (t *Return) TypeTrees() []Tree { return noTypeTrees }
func (t *Return) Tpe(*rootctx.Context) (types.Type, error) { return types.NothingType, nil }

// Inlined wraps the expansion of an inline call: `expr` is the expanded
// body, `caller` names the original call site, and `bindings` are the
// synthetic ValDefs binding the call's arguments.
type Inlined struct {
	span     Span
	Expr     Tree
	Caller   Tree
	Bindings []Tree
}

func NewInlined(span Span, expr, caller Tree, bindings []Tree) *Inlined {
	return &Inlined{span: span, Expr: expr, Caller: caller, Bindings: bindings}
}

func (*Inlined) isTree()      {}
func (t *Inlined) Span() Span { return t.span }
func (t *Inlined) Subtrees() []Tree {
	return append([]Tree{t.Expr}, t.Bindings...)
}
func (t *Inlined) TypeTrees() []Tree { return noTypeTrees }
func (t *Inlined) Tpe(ctx *rootctx.Context) (types.Type, error) { return t.Expr.Tpe(ctx) }

// Literal is a constant-valued expression.
type Literal struct {
	span     Span
	Constant types.Constant
}

func NewLiteral(span Span, c types.Constant) *Literal {
	return &Literal{span: span, Constant: c}
}

func (*Literal) isTree()            {}
func (t *Literal) Span() Span       { return t.span }
func (t *Literal) Subtrees() []Tree { return noSubtrees }
func (t *Literal) TypeTrees() []Tree { return noTypeTrees }
func (t *Literal) Tpe(*rootctx.Context) (types.Type, error) {
	return types.ConstantType{Value: t.Constant}, nil
}

// New is a `new tpt` object-creation expression, before the constructor
// Apply around it.
type New struct {
	span Span
	memo typeMemo
	Tpt  Tree
}

func NewNew(span Span, tpt Tree) *New {
	return &New{span: span, Tpt: tpt}
}

func (*New) isTree()            {}
func (t *New) Span() Span       { return t.span }
func (t *New) Subtrees() []Tree { return noSubtrees }
func (t *New) TypeTrees() []Tree { return []Tree{t.Tpt} }
func (t *New) Tpe(ctx *rootctx.Context) (types.Type, error) {
	return t.memo.get(func() (types.Type, error) { return ToType(ctx, t.Tpt) })
}

// EmptyTree is the sentinel "no tree" value, used wherever a field is
// absent (e.g. ValDef.Rhs for an abstract val). Its type is NoType.
type EmptyTree struct{}

var theEmptyTree = &EmptyTree{}

// TheEmptyTree returns the shared EmptyTree instance.
func TheEmptyTree() *EmptyTree { return theEmptyTree }

func (*EmptyTree) isTree()            {}
func (*EmptyTree) Span() Span         { return Span{} }
func (*EmptyTree) Subtrees() []Tree   { return noSubtrees }
func (*EmptyTree) TypeTrees() []Tree  { return noTypeTrees }
func (*EmptyTree) Tpe(*rootctx.Context) (types.Type, error) { return types.NoType, nil }
