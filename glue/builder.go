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

package glue

import (
	"fmt"

	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/trees"
	"github.com/chiefpi/tasty-query/types"
)

// frame is one open node on the builder stack.
type frame struct {
	kind     tastyformat.TreeKind
	span     trees.Span
	names    []names.Name
	consts   []types.Constant
	typs     []types.Type
	syms     []symbols.Symbol
	children []trees.Tree
	breaks   []int // child indexes where SectionBreak fired
	sym      symbols.Symbol
}

// sections splits f's children at its SectionBreak positions.
func (f *frame) sections() [][]trees.Tree {
	out := make([][]trees.Tree, 0, len(f.breaks)+1)
	prev := 0
	for _, b := range f.breaks {
		out = append(out, f.children[prev:b])
		prev = b
	}
	return append(out, f.children[prev:])
}

// TreeBuilder assembles a typed-AST forest from a tree section's event
// stream. It creates the symbols each definition node declares (members
// under the enclosing class, locals under the enclosing method), links
// every definition back to its symbol, and recognizes when the forest
// defines the root class being scanned.
type TreeBuilder struct {
	ctx  *rootctx.ClassContext
	root *symbols.PackageClassSymbol

	stack     []*frame
	forest    []trees.Tree
	declaring []symbols.DeclaringSymbol
	owners    []symbols.Symbol

	definedRootClass bool
	err              error
}

// NewTreeBuilder returns a builder for the root scan described by ctx.
// The root's owning package anchors both the declaring-symbol stack and
// top-level class lookup.
func NewTreeBuilder(ctx *rootctx.ClassContext) (*TreeBuilder, error) {
	pkg, ok := ctx.Class.Owner().(*symbols.PackageClassSymbol)
	if !ok {
		return nil, fmt.Errorf("glue: %s is not a package-owned root", ctx.Class)
	}
	return &TreeBuilder{
		ctx:       ctx,
		root:      pkg,
		declaring: []symbols.DeclaringSymbol{pkg},
		owners:    []symbols.Symbol{pkg},
	}, nil
}

// Forest returns the completed top-level trees.
func (b *TreeBuilder) Forest() []trees.Tree { return b.forest }

// DefinedRootClass reports whether the event stream contained a ClassDef
// for the class this scan was started for.
func (b *TreeBuilder) DefinedRootClass() bool { return b.definedRootClass }

// Err returns the first protocol or symbol-table error encountered.
func (b *TreeBuilder) Err() error { return b.err }

func (b *TreeBuilder) top() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *TreeBuilder) fail(format string, args ...interface{}) {
	if b.err == nil {
		b.err = fmt.Errorf("glue: "+format, args...)
	}
}

// Begin implements tastyformat.Builder.
func (b *TreeBuilder) Begin(kind tastyformat.TreeKind, span trees.Span) {
	if b.err != nil {
		return
	}
	b.stack = append(b.stack, &frame{kind: kind, span: span})
}

// Name implements tastyformat.Builder. For definition kinds the name
// event is also the point where the declared symbol is created: member
// declarations (direct children of a Template) enter the enclosing
// class's table, everything else becomes a local symbol.
func (b *TreeBuilder) Name(n names.Name) {
	if b.err != nil {
		return
	}
	f := b.top()
	if f == nil {
		b.fail("Name(%s) with no open node", n)
		return
	}
	f.names = append(f.names, n)
	if f.sym != nil {
		return
	}
	switch f.kind {
	case tastyformat.KindClassDef:
		b.beginClassSymbol(f, n)
	case tastyformat.KindValDef, tastyformat.KindDefDef, tastyformat.KindTypeMember, tastyformat.KindTypeParam, tastyformat.KindBind:
		b.beginRegularSymbol(f, n)
		if f.kind == tastyformat.KindDefDef && f.sym != nil {
			b.owners = append(b.owners, f.sym)
		}
	}
}

func (b *TreeBuilder) beginClassSymbol(f *frame, n names.Name) {
	typeName := n.ToTypeName()
	// Top-level classes were entered during the package scan; reuse
	// those symbols (in particular the root class this scan is for).
	// Nested classes always get fresh symbols under their enclosing
	// class.
	if existing, ok := b.root.Lookup(typeName); ok && len(b.declaring) == 1 {
		cls, isClass := existing.(*symbols.ClassSymbol)
		if !isClass {
			b.fail("%s names a non-class symbol %T", typeName, existing)
			return
		}
		if cls == b.ctx.Class {
			b.definedRootClass = true
		}
		f.sym = cls
	} else {
		cls, err := symbols.CreateClassSymbol(b.declaring[len(b.declaring)-1], typeName)
		if err != nil {
			b.fail("creating class symbol: %v", err)
			return
		}
		f.sym = cls
	}
	b.declaring = append(b.declaring, f.sym.(*symbols.ClassSymbol))
	b.owners = append(b.owners, f.sym)
}

func (b *TreeBuilder) beginRegularSymbol(f *frame, n names.Name) {
	if b.parentKind() == tastyformat.KindTemplate {
		sym, err := symbols.CreateSymbol(b.declaring[len(b.declaring)-1], n)
		if err != nil {
			b.fail("creating member symbol: %v", err)
			return
		}
		f.sym = sym
		return
	}
	f.sym = symbols.NewLocalSymbol(b.owners[len(b.owners)-1], n)
}

func (b *TreeBuilder) parentKind() tastyformat.TreeKind {
	if len(b.stack) < 2 {
		return tastyformat.KindEmptyTree
	}
	return b.stack[len(b.stack)-2].kind
}

// Constant implements tastyformat.Builder.
func (b *TreeBuilder) Constant(c types.Constant) {
	if b.err != nil {
		return
	}
	f := b.top()
	if f == nil {
		b.fail("Constant with no open node")
		return
	}
	f.consts = append(f.consts, c)
}

// Type implements tastyformat.Builder.
func (b *TreeBuilder) Type(t types.Type) {
	if b.err != nil {
		return
	}
	f := b.top()
	if f == nil {
		b.fail("Type with no open node")
		return
	}
	f.typs = append(f.typs, t)
}

// Symbol implements tastyformat.Builder.
func (b *TreeBuilder) Symbol(sym symbols.Symbol) {
	if b.err != nil {
		return
	}
	f := b.top()
	if f == nil {
		b.fail("Symbol with no open node")
		return
	}
	f.syms = append(f.syms, sym)
}

// SectionBreak implements tastyformat.Builder.
func (b *TreeBuilder) SectionBreak() {
	if b.err != nil {
		return
	}
	f := b.top()
	if f == nil {
		b.fail("SectionBreak with no open node")
		return
	}
	f.breaks = append(f.breaks, len(f.children))
}

// End implements tastyformat.Builder: it closes the innermost open node,
// constructs the tree variant its frame describes, and attaches it to
// the parent (or the top-level forest).
func (b *TreeBuilder) End() error {
	if b.err != nil {
		return b.err
	}
	f := b.top()
	if f == nil {
		b.fail("End with no open node")
		return b.err
	}
	b.stack = b.stack[:len(b.stack)-1]

	node, err := b.construct(f)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b.err
	}

	switch f.kind {
	case tastyformat.KindClassDef:
		if f.sym != nil {
			b.declaring = b.declaring[:len(b.declaring)-1]
			b.owners = b.owners[:len(b.owners)-1]
		}
	case tastyformat.KindDefDef:
		if f.sym != nil {
			b.owners = b.owners[:len(b.owners)-1]
		}
	}

	if d, ok := node.(trees.DefTree); ok && f.sym != nil {
		if err := symbols.SetTree(f.sym, d); err != nil {
			b.fail("linking %s: %v", f.sym, err)
			return b.err
		}
	}

	if parent := b.top(); parent != nil {
		parent.children = append(parent.children, node)
	} else {
		b.forest = append(b.forest, node)
	}
	return nil
}

func (f *frame) needChildren(n int) error {
	if len(f.children) != n {
		return fmt.Errorf("glue: node kind %d has %d children, want %d", f.kind, len(f.children), n)
	}
	return nil
}

func (f *frame) needName() (names.Name, error) {
	if len(f.names) == 0 {
		return nil, fmt.Errorf("glue: node kind %d is missing its name", f.kind)
	}
	return f.names[0], nil
}

// orNil converts the empty-tree sentinels to nil for optional fields.
func orNil(t trees.Tree) trees.Tree {
	switch t.(type) {
	case *trees.EmptyTree, *trees.EmptyTypeTree:
		return nil
	default:
		return t
	}
}

func (b *TreeBuilder) construct(f *frame) (trees.Tree, error) {
	switch f.kind {
	case tastyformat.KindPackageDef:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: PackageDef without a pid")
		}
		return trees.NewPackageDef(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindImport:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: Import without an expr")
		}
		return trees.NewImport(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindExport:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: Export without an expr")
		}
		return trees.NewExport(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindImportSelector:
		if err := f.needChildren(3); err != nil {
			return nil, err
		}
		return trees.NewImportSelector(f.span, f.children[0], f.children[1], f.children[2]), nil

	case tastyformat.KindClassDef:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewClassDef(f.span, name, f.children[0], f.sym), nil

	case tastyformat.KindTemplate:
		secs := f.sections()
		if len(secs) != 4 {
			return nil, fmt.Errorf("glue: Template has %d sections, want ctor/parents/self/body", len(secs))
		}
		var ctor trees.Tree = trees.TheEmptyTree()
		if len(secs[0]) == 1 {
			ctor = secs[0][0]
		}
		var self trees.Tree
		if len(secs[2]) == 1 {
			self = secs[2][0]
		}
		return trees.NewTemplate(f.span, ctor, secs[1], self, secs[3]), nil

	case tastyformat.KindValDef:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewValDef(f.span, name, f.children[0], orNil(f.children[1]), f.sym), nil

	case tastyformat.KindDefDef:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		secs := f.sections()
		if len(secs) < 2 {
			return nil, fmt.Errorf("glue: DefDef needs a params section and a result/body section")
		}
		tail := secs[len(secs)-1]
		if len(tail) != 2 {
			return nil, fmt.Errorf("glue: DefDef tail section has %d children, want resultTpt and rhs", len(tail))
		}
		paramLists := make([][]trees.Tree, 0, len(secs)-1)
		for _, sec := range secs[:len(secs)-1] {
			paramLists = append(paramLists, sec)
		}
		return trees.NewDefDef(f.span, name, paramLists, tail[0], orNil(tail[1]), f.sym), nil

	case tastyformat.KindTypeMember:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewTypeMember(f.span, name, f.children[0], f.sym), nil

	case tastyformat.KindTypeParam:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewTypeParam(f.span, name, f.children[0], f.sym), nil

	case tastyformat.KindBind:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewBind(f.span, name, f.children[0], f.sym), nil

	case tastyformat.KindSelect:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewSelect(f.span, f.children[0], name), nil

	case tastyformat.KindSelectIn:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		owner := symbols.Symbol(b.ctx.Class)
		if len(f.syms) > 0 {
			owner = f.syms[0]
		}
		return trees.NewSelectIn(f.span, f.children[0], name, owner), nil

	case tastyformat.KindSuper:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewSuper(f.span, f.children[0], orNil(f.children[1])), nil

	case tastyformat.KindApply:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: Apply without a fun")
		}
		return trees.NewApply(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindTypeApply:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: TypeApply without a fun")
		}
		return trees.NewTypeApply(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindTyped:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewTyped(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindAssign:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewAssign(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindNamedArg:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewNamedArg(f.span, name, f.children[0]), nil

	case tastyformat.KindBlock:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: Block without a result expr")
		}
		n := len(f.children)
		return trees.NewBlock(f.span, f.children[:n-1], f.children[n-1]), nil

	case tastyformat.KindIf:
		if err := f.needChildren(3); err != nil {
			return nil, err
		}
		return trees.NewIf(f.span, f.children[0], f.children[1], f.children[2]), nil

	case tastyformat.KindInlineIf:
		if err := f.needChildren(3); err != nil {
			return nil, err
		}
		return trees.NewInlineIf(f.span, f.children[0], f.children[1], f.children[2]), nil

	case tastyformat.KindLambda:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewLambda(f.span, f.children[0], orNil(f.children[1])), nil

	case tastyformat.KindMatch:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: Match without a selector")
		}
		return trees.NewMatch(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindInlineMatch:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: InlineMatch without a selector")
		}
		return trees.NewInlineMatch(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindCaseDef:
		if err := f.needChildren(3); err != nil {
			return nil, err
		}
		return trees.NewCaseDef(f.span, f.children[0], orNil(f.children[1]), f.children[2]), nil

	case tastyformat.KindAlternative:
		return trees.NewAlternative(f.span, f.children), nil

	case tastyformat.KindUnapply:
		secs := f.sections()
		if len(secs) != 3 || len(secs[0]) != 1 {
			return nil, fmt.Errorf("glue: Unapply wants fun/implicits/patterns sections")
		}
		return trees.NewUnapply(f.span, secs[0][0], secs[1], secs[2]), nil

	case tastyformat.KindSeqLiteral:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: SeqLiteral without an element type")
		}
		n := len(f.children)
		return trees.NewSeqLiteral(f.span, f.children[:n-1], f.children[n-1]), nil

	case tastyformat.KindWhile:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewWhile(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindThrow:
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewThrow(f.span, f.children[0]), nil

	case tastyformat.KindTry:
		secs := f.sections()
		if len(secs) != 3 || len(secs[0]) != 1 {
			return nil, fmt.Errorf("glue: Try wants expr/cases/finalizer sections")
		}
		var finalizer trees.Tree
		if len(secs[2]) == 1 {
			finalizer = orNil(secs[2][0])
		}
		return trees.NewTry(f.span, secs[0][0], secs[1], finalizer), nil

	case tastyformat.KindReturn:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewReturn(f.span, orNil(f.children[0]), f.children[1]), nil

	case tastyformat.KindInlined:
		if len(f.children) < 2 {
			return nil, fmt.Errorf("glue: Inlined wants expr and caller")
		}
		return trees.NewInlined(f.span, f.children[0], orNil(f.children[1]), f.children[2:]), nil

	case tastyformat.KindLiteral:
		if len(f.consts) != 1 {
			return nil, fmt.Errorf("glue: Literal wants exactly one constant")
		}
		return trees.NewLiteral(f.span, f.consts[0]), nil

	case tastyformat.KindNew:
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewNew(f.span, f.children[0]), nil

	case tastyformat.KindIdent:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if len(f.typs) > 0 {
			return trees.NewTypedIdent(f.span, name, f.typs[0]), nil
		}
		return trees.NewIdent(f.span, name), nil

	case tastyformat.KindFreeIdent:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if len(f.typs) != 1 {
			return nil, fmt.Errorf("glue: FreeIdent wants its reference type")
		}
		return trees.NewFreeIdent(f.span, name, f.typs[0]), nil

	case tastyformat.KindImportIdent:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		return trees.NewImportIdent(f.span, name), nil

	case tastyformat.KindReferencedPackage:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		return trees.NewReferencedPackage(f.span, name), nil

	case tastyformat.KindThis:
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewThis(f.span, f.children[0]), nil

	case tastyformat.KindEmptyTree:
		return trees.TheEmptyTree(), nil

	case tastyformat.KindTypeIdent:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if len(f.typs) > 0 {
			return trees.NewPrefixedTypeIdent(f.span, name, f.typs[0]), nil
		}
		return trees.NewTypeIdent(f.span, name), nil

	case tastyformat.KindSelectTypeTree:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewSelectTypeTree(f.span, f.children[0], name), nil

	case tastyformat.KindSingletonTypeTree:
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewSingletonTypeTree(f.span, f.children[0]), nil

	case tastyformat.KindAppliedTypeTree:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: AppliedTypeTree without a tycon")
		}
		return trees.NewAppliedTypeTree(f.span, f.children[0], f.children[1:]), nil

	case tastyformat.KindAndTypeTree:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewAndTypeTree(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindOrTypeTree:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewOrTypeTree(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindByNameTypeTree:
		if err := f.needChildren(1); err != nil {
			return nil, err
		}
		return trees.NewByNameTypeTree(f.span, f.children[0]), nil

	case tastyformat.KindRefinedTypeTree:
		name, err := f.needName()
		if err != nil {
			return nil, err
		}
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewRefinedTypeTree(f.span, f.children[0], name, f.children[1]), nil

	case tastyformat.KindTypeBoundsTree:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewTypeBoundsTree(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindTypeLambdaTree:
		if len(f.children) < 1 {
			return nil, fmt.Errorf("glue: TypeLambdaTree without a body")
		}
		n := len(f.children)
		params := make([]*trees.TypeParam, 0, n-1)
		for _, c := range f.children[:n-1] {
			p, ok := c.(*trees.TypeParam)
			if !ok {
				return nil, fmt.Errorf("glue: TypeLambdaTree parameter is %T, want TypeParam", c)
			}
			params = append(params, p)
		}
		return trees.NewTypeLambdaTree(f.span, params, f.children[n-1]), nil

	case tastyformat.KindMatchTypeTree:
		if len(f.children) < 2 {
			return nil, fmt.Errorf("glue: MatchTypeTree wants bound and selector")
		}
		cases := make([]*trees.TypeCaseDef, 0, len(f.children)-2)
		for _, c := range f.children[2:] {
			tc, ok := c.(*trees.TypeCaseDef)
			if !ok {
				return nil, fmt.Errorf("glue: MatchTypeTree case is %T, want TypeCaseDef", c)
			}
			cases = append(cases, tc)
		}
		return trees.NewMatchTypeTree(f.span, f.children[0], f.children[1], cases), nil

	case tastyformat.KindTypeCaseDef:
		if err := f.needChildren(2); err != nil {
			return nil, err
		}
		return trees.NewTypeCaseDef(f.span, f.children[0], f.children[1]), nil

	case tastyformat.KindEmptyTypeTree:
		return trees.TheEmptyTypeTree(), nil

	case tastyformat.KindTypeWrapper:
		if len(f.typs) != 1 {
			return nil, fmt.Errorf("glue: TypeWrapper wants exactly one type")
		}
		return trees.NewTypeWrapper(f.span, f.typs[0]), nil

	default:
		return nil, fmt.Errorf("glue: unknown tree kind %d", f.kind)
	}
}
