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

package loader

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/terrors"
	"github.com/chiefpi/tasty-query/trees"
)

func classData(name string) classfile.ClassData {
	return classfile.ClassData{SimpleName: name, DebugPath: name + ".class", Bytes: []byte{0xCA, 0xFE}}
}

func tastyData(name string) tastyformat.TastyData {
	return tastyformat.TastyData{SimpleName: name, DebugPath: name + ".tasty", Bytes: []byte{0x5C, 0xA1}}
}

// kindParser returns canned kinds per simple name; Other otherwise.
type kindParser struct {
	kinds  map[string]classfile.Kind
	loaded []string
}

func (p *kindParser) ReadKind(data classfile.ClassData) (classfile.Kind, error) {
	if k, ok := p.kinds[data.SimpleName]; ok {
		return k, nil
	}
	return classfile.Other{}, nil
}

func (p *kindParser) LoadScala2Class(ctx *rootctx.ClassContext, s classfile.Structure, annots int) error {
	p.loaded = append(p.loaded, "scala2:"+ctx.Class.Name().String())
	ctx.Class.MarkInitialised()
	return nil
}

func (p *kindParser) LoadJavaClass(ctx *rootctx.ClassContext, s classfile.Structure, sig string) error {
	p.loaded = append(p.loaded, "java:"+ctx.Class.Name().String())
	ctx.Class.MarkInitialised()
	return nil
}

// markUnpickle marks the root initialised and returns a canned forest.
func markUnpickle(forest []trees.Tree) TastyUnpickleFunc {
	return func(ctx *rootctx.ClassContext, root *LoadRoot, data tastyformat.TastyData, newUnpickler tastyformat.Factory) ([]trees.Tree, bool, error) {
		ctx.Class.MarkInitialised()
		return forest, true, nil
	}
}

func newTestLoader(t *testing.T, cp Classpath, parser classfile.Parser, unpickle TastyUnpickleFunc) *Loader {
	t.Helper()
	ctx := rootctx.NewContext(symbols.NewPackageRoot())
	l := NewLoader(ctx, Options{Classpath: cp, Parser: parser, UnpickleTasty: unpickle})
	require.NoError(t, l.InitPackages())
	return l
}

func findPackage(t *testing.T, l *Loader, path string) *symbols.PackageClassSymbol {
	t.Helper()
	sym, ok := l.Context().FindSymbol(path)
	require.True(t, ok, "package %s not found", path)
	pkg, ok := sym.(*symbols.PackageClassSymbol)
	require.True(t, ok, "%s is not a package", path)
	return pkg
}

func findRoot(t *testing.T, l *Loader, pkg *symbols.PackageClassSymbol, name string) *symbols.ClassSymbol {
	t.Helper()
	sym, ok := pkg.Lookup(names.SimpleName{Text: name}.ToTypeName())
	require.True(t, ok, "root %s not entered", name)
	cls, ok := sym.(*symbols.ClassSymbol)
	require.True(t, ok, "%s is not a class symbol", name)
	return cls
}

func TestInitPackagesBuildsOwnerChain(t *testing.T) {
	cp := Classpath{{Name: "a.b.c", Classes: []classfile.ClassData{classData("X")}}}
	l := newTestLoader(t, cp, &kindParser{}, nil)

	c := findPackage(t, l, "a.b.c")
	b := findPackage(t, l, "a.b")
	a := findPackage(t, l, "a")
	require.Same(t, b, c.Owner())
	require.Same(t, a, b.Owner())
	require.Same(t, l.Context().Root, a.Owner())
}

func TestInitPackagesIsIdempotent(t *testing.T) {
	cp := Classpath{{Name: "a", Classes: []classfile.ClassData{classData("X")}}}
	l := newTestLoader(t, cp, &kindParser{}, nil)
	pkgBefore := findPackage(t, l, "a")

	require.NoError(t, l.InitPackages())
	require.Same(t, pkgBefore, findPackage(t, l, "a"))
}

func TestScanPackageEntersRootsAndClassifiesEntries(t *testing.T) {
	cp := Classpath{{
		Name:    "p",
		Classes: []classfile.ClassData{classData("Both"), classData("JustClass")},
		Tastys:  []tastyformat.TastyData{tastyData("Both"), tastyData("JustTasty")},
	}}
	l := newTestLoader(t, cp, &kindParser{}, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	require.True(t, pkg.Initialised())

	both := findRoot(t, l, pkg, "Both")
	entry, ok := l.Entry(both)
	require.True(t, ok)
	require.IsType(t, ClassAndTasty{}, entry)

	justClass := findRoot(t, l, pkg, "JustClass")
	entry, ok = l.Entry(justClass)
	require.True(t, ok)
	require.IsType(t, ClassOnly{}, entry)

	justTasty := findRoot(t, l, pkg, "JustTasty")
	entry, ok = l.Entry(justTasty)
	require.True(t, ok)
	require.IsType(t, TastyOnly{}, entry)
}

func TestScanPackageSkipsNestedAndModuleClasses(t *testing.T) {
	cp := Classpath{{
		Name: "p",
		Classes: []classfile.ClassData{
			classData("Top"),
			classData("Top$Inner"),
			classData("Top$"),
			classData("defs$package"),
		},
	}}
	l := newTestLoader(t, cp, &kindParser{}, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))

	findRoot(t, l, pkg, "Top")
	findRoot(t, l, pkg, "defs$package")
	_, nested := pkg.Lookup(names.SimpleName{Text: "Top$Inner"}.ToTypeName())
	require.False(t, nested, "nested class entered as a root")
	// Top$ exists as Top's object-class symbol (entered by the root
	// enter sequence), but carries no entry of its own.
	pending := l.PendingRoots(pkg)
	require.Len(t, pending, 2)
}

func TestScanPackageIsIdempotent(t *testing.T) {
	cp := Classpath{{Name: "p", Classes: []classfile.ClassData{classData("X")}}}
	l := newTestLoader(t, cp, &kindParser{}, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	// A second scan is a no-op: the first scan already removed the
	// package's data from the inventory, so no root is entered again.
	require.NoError(t, l.ScanPackage(pkg))
}

func TestScanClassDispatchesScala2AndJava(t *testing.T) {
	parser := &kindParser{kinds: map[string]classfile.Kind{
		"S": classfile.Scala2{RuntimeAnnotStart: 7},
		"J": classfile.Java{GenericSignature: "sig"},
	}}
	cp := Classpath{{Name: "p", Classes: []classfile.ClassData{classData("S"), classData("J")}}}
	l := newTestLoader(t, cp, parser, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))

	s := findRoot(t, l, pkg, "S")
	initialised, err := l.ScanClass(s)
	require.NoError(t, err)
	require.True(t, initialised)

	j := findRoot(t, l, pkg, "J")
	initialised, err = l.ScanClass(j)
	require.NoError(t, err)
	require.True(t, initialised)

	require.Equal(t, []string{"scala2:S", "java:J"}, parser.loaded)
}

func TestScanClassShortCircuitsOnSecondCall(t *testing.T) {
	parser := &kindParser{kinds: map[string]classfile.Kind{"S": classfile.Scala2{}}}
	cp := Classpath{{Name: "p", Classes: []classfile.ClassData{classData("S")}}}
	l := newTestLoader(t, cp, parser, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	s := findRoot(t, l, pkg, "S")

	initialised, err := l.ScanClass(s)
	require.NoError(t, err)
	require.True(t, initialised)

	initialised, err = l.ScanClass(s)
	require.NoError(t, err)
	require.False(t, initialised, "second ScanClass must be a no-op")
	require.Len(t, parser.loaded, 1)
}

func TestScanClassTastyKindWithoutTastyFails(t *testing.T) {
	parser := &kindParser{kinds: map[string]classfile.Kind{"X": classfile.TASTy{}}}
	cp := Classpath{{Name: "p", Classes: []classfile.ClassData{classData("X")}}}
	l := newTestLoader(t, cp, parser, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	x := findRoot(t, l, pkg, "X")

	_, err := l.ScanClass(x)
	require.ErrorIs(t, err, terrors.ErrMissingTopLevelTasty)
	require.False(t, x.Initialised())

	// The entry is consumed: retrying short-circuits instead of
	// re-reading the classfile.
	initialised, err := l.ScanClass(x)
	require.NoError(t, err)
	require.False(t, initialised)
}

func TestScanClassUnpicklesTastyAndRecordsForest(t *testing.T) {
	forest := []trees.Tree{trees.TheEmptyTree()}
	parser := &kindParser{kinds: map[string]classfile.Kind{"X": classfile.TASTy{}}}
	cp := Classpath{{
		Name:    "p",
		Classes: []classfile.ClassData{classData("X")},
		Tastys:  []tastyformat.TastyData{tastyData("X")},
	}}
	l := newTestLoader(t, cp, parser, markUnpickle(forest))
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	x := findRoot(t, l, pkg, "X")

	initialised, err := l.ScanClass(x)
	require.NoError(t, err)
	require.True(t, initialised)

	got, ok := l.TopLevelTasty(x)
	require.True(t, ok)
	require.Equal(t, forest, got)
}

func TestTopLevelTastyRejectsObjectClassShadow(t *testing.T) {
	forest := []trees.Tree{trees.TheEmptyTree()}
	cp := Classpath{{Name: "p", Tastys: []tastyformat.TastyData{tastyData("X")}}}
	l := newTestLoader(t, cp, &kindParser{}, markUnpickle(forest))
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	x := findRoot(t, l, pkg, "X")

	initialised, err := l.ScanClass(x)
	require.NoError(t, err)
	require.True(t, initialised)

	// The object-class symbol X$ shadows the real class X: it must not
	// surface X's forest.
	shadowName := names.SuffixedName{Tag: names.ObjectClass, Base: names.SimpleName{Text: "X"}}.ToTypeName()
	shadowSym, ok := pkg.Lookup(shadowName)
	require.True(t, ok)
	shadow := shadowSym.(*symbols.ClassSymbol)
	shadow.MarkInitialised()
	_, ok = l.TopLevelTasty(shadow)
	require.False(t, ok)
}

func TestScanClassPropagatesDecoderErrors(t *testing.T) {
	decoderErr := errors.New("truncated constant pool")
	parser := &erroringParser{err: decoderErr}
	cp := Classpath{{Name: "p", Classes: []classfile.ClassData{classData("X")}}}
	l := newTestLoader(t, cp, parser, nil)
	pkg := findPackage(t, l, "p")
	require.NoError(t, l.ScanPackage(pkg))
	x := findRoot(t, l, pkg, "X")

	_, err := l.ScanClass(x)
	require.ErrorIs(t, err, decoderErr)
	require.False(t, x.Initialised())
}

type erroringParser struct {
	err error
}

func (p *erroringParser) ReadKind(classfile.ClassData) (classfile.Kind, error) {
	return nil, p.err
}

func (p *erroringParser) LoadScala2Class(*rootctx.ClassContext, classfile.Structure, int) error {
	return p.err
}

func (p *erroringParser) LoadJavaClass(*rootctx.ClassContext, classfile.Structure, string) error {
	return p.err
}

func TestPackageNameInternsSubnames(t *testing.T) {
	l := newTestLoader(t, nil, &kindParser{}, nil)
	first := l.PackageName("a.b.c")
	second := l.PackageName("a.b.c")
	require.Equal(t, first, second)

	q, ok := first.(names.QualifiedName)
	require.True(t, ok)
	require.Equal(t, names.QualPackage, q.Tag)
	subs := names.Subnames(first)
	require.Len(t, subs, 3)
	require.Equal(t, "a", subs[0].String())
	require.Equal(t, "a.b", subs[1].String())
	require.Equal(t, "a.b.c", subs[2].String())
}
