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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/decoderfakes"
	"github.com/chiefpi/tasty-query/loader"
	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/trees"
	"github.com/chiefpi/tasty-query/types"
)

func sn(text string) names.Name { return names.SimpleName{Text: text} }
func tn(text string) names.Name { return sn(text).ToTypeName() }

// decodeRoot runs the full pipeline for one TASTy-only root: package
// init, package scan, class scan with a scripted event stream, and
// returns the decoded top-level forest plus the root's class symbol.
func decodeRoot(t *testing.T, pkgName, className string, events []decoderfakes.Event) (*loader.Loader, *symbols.ClassSymbol, []trees.Tree) {
	t.Helper()
	cp := loader.Classpath{{
		Name: pkgName,
		Tastys: []tastyformat.TastyData{{
			SimpleName: className,
			DebugPath:  pkgName + "/" + className + ".tasty",
			Bytes:      []byte{0x5C, 0xA1},
		}},
	}}
	ctx := rootctx.NewContext(symbols.NewPackageRoot())
	l := NewLoader(ctx, cp, &decoderfakes.Parser{}, decoderfakes.Factory(events))
	require.NoError(t, l.InitPackages())

	sym, ok := ctx.FindSymbol(pkgName)
	require.True(t, ok, "package %s not found", pkgName)
	pkg := sym.(*symbols.PackageClassSymbol)
	require.NoError(t, l.ScanPackage(pkg))

	clsSym, ok := pkg.Lookup(tn(className))
	require.True(t, ok, "root %s not entered", className)
	cls := clsSym.(*symbols.ClassSymbol)

	initialised, err := l.ScanClass(cls)
	require.NoError(t, err)
	require.True(t, initialised, "root %s did not initialise", className)

	forest, ok := l.TopLevelTasty(cls)
	require.True(t, ok, "no top-level forest for %s", className)
	return l, cls, forest
}

// findNode returns the first node in the forest for which pred is true.
func findNode(forest []trees.Tree, pred func(trees.Tree) bool) trees.Tree {
	var found trees.Tree
	for _, root := range forest {
		trees.WalkTree(root, func(n trees.Tree) {
			if found == nil && pred(n) {
				found = n
			}
		})
	}
	return found
}

// classDefScript wraps body events in PackageDef(pkg, ClassDef(name,
// Template(ctor, parents=[], self=none, body))).
func classDefScript(pkgName, className string, templateBody []decoderfakes.Event) []decoderfakes.Event {
	return decoderfakes.Script(
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindPackageDef)},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindReferencedPackage), decoderfakes.Name(sn(pkgName)), decoderfakes.End()},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindClassDef), decoderfakes.Name(tn(className))},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindTemplate)},
		ctorScript(),
		[]decoderfakes.Event{decoderfakes.Break()}, // ctor | parents
		[]decoderfakes.Event{decoderfakes.Break()}, // parents | self
		[]decoderfakes.Event{decoderfakes.Break()}, // self | body
		templateBody,
		[]decoderfakes.Event{decoderfakes.End()}, // Template
		[]decoderfakes.Event{decoderfakes.End()}, // ClassDef
		[]decoderfakes.Event{decoderfakes.End()}, // PackageDef
	)
}

// ctorScript is a primary constructor `def <init>(): Unit`.
func ctorScript() []decoderfakes.Event {
	return []decoderfakes.Event{
		decoderfakes.Begin(tastyformat.KindDefDef),
		decoderfakes.Name(sn("<init>")),
		decoderfakes.Break(), // empty param list section | result+body
		decoderfakes.Begin(tastyformat.KindTypeIdent), decoderfakes.Name(sn("Unit")), decoderfakes.End(),
		decoderfakes.Begin(tastyformat.KindEmptyTree), decoderfakes.End(),
		decoderfakes.End(),
	}
}

func TestEmptyClassScenario(t *testing.T) {
	events := decoderfakes.Script(
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindPackageDef)},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindReferencedPackage), decoderfakes.Name(sn("empty_class")), decoderfakes.End()},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindClassDef), decoderfakes.Name(tn("EmptyClass"))},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindTemplate)},
		ctorScript(),
		[]decoderfakes.Event{decoderfakes.Break()},
		// parents: the java.lang.Object constructor application.
		[]decoderfakes.Event{
			decoderfakes.Begin(tastyformat.KindApply),
			decoderfakes.Begin(tastyformat.KindSelect),
			decoderfakes.Name(sn("<init>")),
			decoderfakes.Begin(tastyformat.KindNew),
			decoderfakes.Begin(tastyformat.KindTypeIdent), decoderfakes.Name(sn("Object")), decoderfakes.End(),
			decoderfakes.End(), // New
			decoderfakes.End(), // Select
			decoderfakes.End(), // Apply
		},
		[]decoderfakes.Event{decoderfakes.Break()},
		[]decoderfakes.Event{decoderfakes.Break()},
		[]decoderfakes.Event{decoderfakes.End()}, // Template
		[]decoderfakes.Event{decoderfakes.End()}, // ClassDef
		[]decoderfakes.Event{decoderfakes.End()}, // PackageDef
	)
	_, cls, forest := decodeRoot(t, "empty_class", "EmptyClass", events)

	require.Len(t, forest, 1)
	pkgDef, ok := forest[0].(*trees.PackageDef)
	require.True(t, ok, "top-level tree is %T, want PackageDef", forest[0])
	pid, ok := pkgDef.Pid.(*trees.ReferencedPackage)
	require.True(t, ok)
	require.Equal(t, "empty_class", pid.FullName.String())

	require.Len(t, pkgDef.Stats, 1)
	classDef, ok := pkgDef.Stats[0].(*trees.ClassDef)
	require.True(t, ok, "stat is %T, want ClassDef", pkgDef.Stats[0])
	require.Equal(t, "EmptyClass", classDef.Name.String())
	require.Same(t, cls, classDef.DefinedSymbol())

	template, ok := classDef.Template.(*trees.Template)
	require.True(t, ok)
	_, ok = template.Ctor.(*trees.DefDef)
	require.True(t, ok, "ctor is %T, want DefDef", template.Ctor)
	require.Len(t, template.Parents, 1)
	_, ok = template.Parents[0].(*trees.Apply)
	require.True(t, ok, "parent is %T, want constructor Apply", template.Parents[0])
	require.Nil(t, template.Self)
	require.Empty(t, template.Body)

	linked, ok := cls.Tree()
	require.True(t, ok, "root class has no defining tree")
	require.Same(t, classDef, linked)
}

func TestNestedPackageScenario(t *testing.T) {
	events := decoderfakes.Script(
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindPackageDef)},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindReferencedPackage), decoderfakes.Name(sn("simple_trees")), decoderfakes.End()},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindPackageDef)},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindReferencedPackage), decoderfakes.Name(names.NewQualified(names.QualPackage, sn("simple_trees"), "nested")), decoderfakes.End()},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindClassDef), decoderfakes.Name(tn("InNestedPackage"))},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindTemplate)},
		ctorScript(),
		[]decoderfakes.Event{decoderfakes.Break(), decoderfakes.Break(), decoderfakes.Break()},
		[]decoderfakes.Event{decoderfakes.End(), decoderfakes.End()}, // Template, ClassDef
		[]decoderfakes.Event{decoderfakes.End(), decoderfakes.End()}, // inner, outer PackageDef
	)
	_, _, forest := decodeRoot(t, "simple_trees.nested", "InNestedPackage", events)

	outer, ok := forest[0].(*trees.PackageDef)
	require.True(t, ok)
	require.Equal(t, "simple_trees", outer.Pid.(*trees.ReferencedPackage).FullName.String())
	require.Len(t, outer.Stats, 1)
	inner, ok := outer.Stats[0].(*trees.PackageDef)
	require.True(t, ok, "outer stat is %T, want nested PackageDef", outer.Stats[0])
	require.Equal(t, "simple_trees.nested", inner.Pid.(*trees.ReferencedPackage).FullName.String())
}

func TestMultipleImportsScenario(t *testing.T) {
	selector := func(name string) []decoderfakes.Event {
		return []decoderfakes.Event{
			decoderfakes.Begin(tastyformat.KindImportSelector),
			decoderfakes.Begin(tastyformat.KindImportIdent), decoderfakes.Name(sn(name)), decoderfakes.End(),
			decoderfakes.Begin(tastyformat.KindEmptyTree), decoderfakes.End(),
			decoderfakes.Begin(tastyformat.KindEmptyTypeTree), decoderfakes.End(),
			decoderfakes.End(),
		}
	}
	importEvents := decoderfakes.Script(
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindImport)},
		[]decoderfakes.Event{decoderfakes.Begin(tastyformat.KindReferencedPackage), decoderfakes.Name(sn("imported_files")), decoderfakes.End()},
		selector("A"),
		selector("B"),
		[]decoderfakes.Event{decoderfakes.End()},
	)
	events := classDefScript("imports", "MultipleImports", importEvents)
	_, _, forest := decodeRoot(t, "imports", "MultipleImports", events)

	node := findNode(forest, func(n trees.Tree) bool {
		_, ok := n.(*trees.Import)
		return ok
	})
	require.NotNil(t, node, "no Import in forest")
	imp := node.(*trees.Import)
	require.Equal(t, "imported_files", imp.Expr.(*trees.ReferencedPackage).FullName.String())
	require.Len(t, imp.Selectors, 2)
	for i, want := range []string{"A", "B"} {
		sel := imp.Selectors[i].(*trees.ImportSelector)
		require.Equal(t, want, sel.Imported.(*trees.ImportIdent).Name.String())
		_, isEmpty := sel.Renamed.(*trees.EmptyTree)
		require.True(t, isEmpty, "selector %d renamed is %T", i, sel.Renamed)
		_, isEmptyTpt := sel.Bound.(*trees.EmptyTypeTree)
		require.True(t, isEmptyTpt, "selector %d bound is %T", i, sel.Bound)
	}
}

func TestIdentityMethodScenario(t *testing.T) {
	defDefEvents := []decoderfakes.Event{
		decoderfakes.Begin(tastyformat.KindDefDef),
		decoderfakes.Name(sn("id")),
		decoderfakes.Begin(tastyformat.KindValDef),
		decoderfakes.Name(sn("x")),
		decoderfakes.Begin(tastyformat.KindTypeIdent), decoderfakes.Name(sn("Int")), decoderfakes.End(),
		decoderfakes.Begin(tastyformat.KindEmptyTree), decoderfakes.End(),
		decoderfakes.End(), // ValDef
		decoderfakes.Break(),
		decoderfakes.Begin(tastyformat.KindTypeIdent), decoderfakes.Name(sn("Int")), decoderfakes.End(),
		decoderfakes.Begin(tastyformat.KindIdent), decoderfakes.Name(sn("x")), decoderfakes.End(),
		decoderfakes.End(), // DefDef
	}
	events := classDefScript("simple_trees", "IdentityMethod", defDefEvents)
	_, _, forest := decodeRoot(t, "simple_trees", "IdentityMethod", events)

	node := findNode(forest, func(n trees.Tree) bool {
		d, ok := n.(*trees.DefDef)
		return ok && d.Name.String() == "id"
	})
	require.NotNil(t, node, "no DefDef(id) in forest")
	def := node.(*trees.DefDef)

	require.Len(t, def.ParamLists, 1)
	require.Len(t, def.ParamLists[0], 1)
	param := def.ParamLists[0][0].(*trees.ValDef)
	require.Equal(t, "x", param.Name.String())
	require.Equal(t, "Int", param.Tpt.(*trees.TypeIdent).Name.String())
	require.Nil(t, param.Rhs)
	require.NotNil(t, param.DefinedSymbol())

	require.Equal(t, "Int", def.ResultTpt.(*trees.TypeIdent).Name.String())
	require.Equal(t, "x", def.Rhs.(*trees.Ident).Name.String())

	defSym := def.DefinedSymbol()
	require.NotNil(t, defSym)
	linked, ok := defSym.Tree()
	require.True(t, ok, "def symbol has no defining tree")
	require.Same(t, def, linked)
}

func TestConstantsScenario(t *testing.T) {
	constants := []struct {
		name  string
		value types.Constant
	}{
		{"unitVal", types.NewUnitConstant()},
		{"falseVal", types.NewBoolConstant(false)},
		{"trueVal", types.NewBoolConstant(true)},
		{"byteVal", types.NewByteConstant(1)},
		{"shortVal", types.NewShortConstant(1)},
		{"intVal", types.NewIntConstant(1)},
		{"longVal", types.NewLongConstant(1)},
		{"charVal", types.NewCharConstant('a')},
		{"floatVal", types.NewFloatConstant(1.1)},
		{"doubleVal", types.NewDoubleConstant(1.1)},
		{"stringVal", types.NewStringConstant("string")},
		{"nullVal", types.NewNullConstant()},
	}
	var body []decoderfakes.Event
	for _, c := range constants {
		body = append(body,
			decoderfakes.Begin(tastyformat.KindValDef),
			decoderfakes.Name(sn(c.name)),
			decoderfakes.Begin(tastyformat.KindEmptyTypeTree), decoderfakes.End(),
			decoderfakes.Begin(tastyformat.KindLiteral), decoderfakes.Constant(c.value), decoderfakes.End(),
			decoderfakes.End(),
		)
	}
	events := classDefScript("simple_trees", "Constants", body)
	_, _, forest := decodeRoot(t, "simple_trees", "Constants", events)

	for _, c := range constants {
		node := findNode(forest, func(n trees.Tree) bool {
			v, ok := n.(*trees.ValDef)
			return ok && v.Name.String() == c.name
		})
		require.NotNil(t, node, "no ValDef(%s) in forest", c.name)
		val := node.(*trees.ValDef)
		lit, ok := val.Rhs.(*trees.Literal)
		require.True(t, ok, "ValDef(%s).Rhs is %T, want Literal", c.name, val.Rhs)
		require.True(t, lit.Constant.Equal(c.value), "ValDef(%s) constant = %v, want %v", c.name, lit.Constant, c.value)

		tpe, err := lit.Tpe(nil)
		require.NoError(t, err)
		ct, ok := tpe.(types.ConstantType)
		require.True(t, ok)
		require.True(t, ct.Value.Equal(c.value))
	}
}

func TestHigherKindedScenario(t *testing.T) {
	body := []decoderfakes.Event{
		decoderfakes.Begin(tastyformat.KindTypeParam),
		decoderfakes.Name(tn("A")),
		decoderfakes.Begin(tastyformat.KindTypeBoundsTree),
		decoderfakes.Begin(tastyformat.KindEmptyTypeTree), decoderfakes.End(),
		decoderfakes.Begin(tastyformat.KindTypeLambdaTree),
		decoderfakes.Begin(tastyformat.KindTypeParam),
		decoderfakes.Name(tn("_$1")),
		decoderfakes.Begin(tastyformat.KindTypeBoundsTree),
		decoderfakes.Begin(tastyformat.KindEmptyTypeTree), decoderfakes.End(),
		decoderfakes.Begin(tastyformat.KindEmptyTypeTree), decoderfakes.End(),
		decoderfakes.End(), // TypeBoundsTree
		decoderfakes.End(), // TypeParam _$1
		decoderfakes.Begin(tastyformat.KindTypeIdent), decoderfakes.Name(sn("Any")), decoderfakes.End(),
		decoderfakes.End(), // TypeLambdaTree
		decoderfakes.End(), // TypeBoundsTree
		decoderfakes.End(), // TypeParam A
	}
	events := classDefScript("simple_trees", "HigherKinded", body)
	l, _, forest := decodeRoot(t, "simple_trees", "HigherKinded", events)

	node := findNode(forest, func(n trees.Tree) bool {
		p, ok := n.(*trees.TypeParam)
		return ok && p.Name.String() == "A"
	})
	require.NotNil(t, node, "no TypeParam(A) in forest")
	paramA := node.(*trees.TypeParam)
	require.NotNil(t, paramA.DefinedSymbol())

	bounds, err := trees.ToType(l.Context(), paramA.Bounds)
	require.NoError(t, err)
	rb, ok := bounds.(types.RealTypeBounds)
	require.True(t, ok, "bounds are %T, want RealTypeBounds", bounds)
	require.Equal(t, types.NothingType, rb.Lo)

	lambda, ok := rb.Hi.(types.TypeLambda)
	require.True(t, ok, "upper bound is %T, want TypeLambda", rb.Hi)
	require.Len(t, lambda.Params, 1)
	require.Equal(t, "_$1", lambda.Params[0].Name.String())
	require.Equal(t, types.DefaultBounds(), lambda.Params[0].Bounds)

	result, ok := lambda.ResultType().(types.TypeRef)
	require.True(t, ok, "lambda result is %T, want TypeRef", lambda.ResultType())
	require.Equal(t, "Any", result.Name.String())
}

func TestScala2AndJavaRootsInitialiseThroughParser(t *testing.T) {
	parser := &decoderfakes.Parser{Kinds: map[string]classfile.Kind{
		"S": classfile.Scala2{},
		"J": classfile.Java{},
	}}
	cp := loader.Classpath{{
		Name: "p",
		Classes: []classfile.ClassData{
			{SimpleName: "S", DebugPath: "p/S.class", Bytes: []byte{1}},
			{SimpleName: "J", DebugPath: "p/J.class", Bytes: []byte{2}},
		},
	}}
	ctx := rootctx.NewContext(symbols.NewPackageRoot())
	l := NewLoader(ctx, cp, parser, nil)
	require.NoError(t, l.InitPackages())
	sym, _ := ctx.FindSymbol("p")
	pkg := sym.(*symbols.PackageClassSymbol)
	require.NoError(t, l.ScanPackage(pkg))

	for _, name := range []string{"S", "J"} {
		clsSym, ok := pkg.Lookup(tn(name))
		require.True(t, ok)
		cls := clsSym.(*symbols.ClassSymbol)
		initialised, err := l.ScanClass(cls)
		require.NoError(t, err)
		require.True(t, initialised)
	}
	require.Equal(t, []string{"S"}, parser.Scala2Loaded)
	require.Equal(t, []string{"J"}, parser.JavaLoaded)
}
