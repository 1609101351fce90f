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

// Package loader implements the classpath inventory and the
// demand-driven root scanner: a one-time package initialization pass, an
// at-most-once scan per package that enters top-level roots, and an
// at-most-once scan per root that dispatches its backing bytes to the
// classfile or TASTy decoder.
package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/terrors"
	"github.com/chiefpi/tasty-query/trees"
	"github.com/chiefpi/tasty-query/vlog"
)

// topLevelModuleSuffix is the class-name suffix carrying a package's
// top-level definitions; a '$' inside it does not make the class nested.
const topLevelModuleSuffix = "$package"

// Entry ties a root class symbol to its available backing bytes: exactly
// one of ClassAndTasty, TastyOnly, ClassOnly per root, consumed by
// ScanClass.
type Entry interface {
	isEntry()
	debugPath() string
}

// ClassAndTasty is a root backed by both a classfile and a TASTy entry.
type ClassAndTasty struct {
	Class classfile.ClassData
	Tasty tastyformat.TastyData
}

func (ClassAndTasty) isEntry()            {}
func (e ClassAndTasty) debugPath() string { return e.Class.DebugPath }

// TastyOnly is a root backed by a TASTy entry alone.
type TastyOnly struct {
	Tasty tastyformat.TastyData
}

func (TastyOnly) isEntry()            {}
func (e TastyOnly) debugPath() string { return e.Tasty.DebugPath }

// ClassOnly is a root backed by a classfile alone.
type ClassOnly struct {
	Class classfile.ClassData
}

func (ClassOnly) isEntry()            {}
func (e ClassOnly) debugPath() string { return e.Class.DebugPath }

// LoadRoot is the capability token under which a root's symbols may be
// populated: only ScanClass constructs a meaningful one, so any decoder
// hook that takes a *LoadRoot can only run inside a root scan.
type LoadRoot struct {
	cls *symbols.ClassSymbol
}

// Class returns the root class symbol this token was issued for.
func (r *LoadRoot) Class() *symbols.ClassSymbol { return r.cls }

// TastyUnpickleFunc decodes one TASTy entry under a root-scan token: it
// returns the decoded top-level forest and whether the root class became
// initialised as a result. The glue package provides the standard
// implementation.
type TastyUnpickleFunc func(ctx *rootctx.ClassContext, root *LoadRoot, data tastyformat.TastyData, newUnpickler tastyformat.Factory) ([]trees.Tree, bool, error)

// Options configures a Loader: the classpath inventory plus the decoder
// collaborators the root scan dispatches to.
type Options struct {
	Classpath     Classpath
	Parser        classfile.Parser
	NewUnpickler  tastyformat.Factory
	UnpickleTasty TastyUnpickleFunc
}

// Loader owns the classpath inventory and the per-root scan state. It is
// not safe for concurrent use; wrap it in a ConcurrentLoader to share it
// across goroutines.
type Loader struct {
	ctx  *rootctx.Context
	opts Options

	searched         bool
	packages         map[*symbols.PackageClassSymbol][]PackageData
	lookup           map[*symbols.ClassSymbol]Entry
	topLevelTastys   map[*symbols.ClassSymbol][]trees.Tree
	packageNameCache map[string]names.Name
}

// NewLoader returns a Loader over ctx's symbol table and opts' classpath.
func NewLoader(ctx *rootctx.Context, opts Options) *Loader {
	return &Loader{
		ctx:              ctx,
		opts:             opts,
		packages:         make(map[*symbols.PackageClassSymbol][]PackageData),
		lookup:           make(map[*symbols.ClassSymbol]Entry),
		topLevelTastys:   make(map[*symbols.ClassSymbol][]trees.Tree),
		packageNameCache: make(map[string]names.Name),
	}
}

// Context returns the context this loader populates.
func (l *Loader) Context() *rootctx.Context { return l.ctx }

// PackageName returns the package-qualified name for a dotted path,
// collapsing equal instances through the loader's interning cache.
func (l *Loader) PackageName(dotted string) names.Name {
	if dotted == "" {
		return names.EmptyTermName
	}
	if n, ok := l.packageNameCache[dotted]; ok {
		return n
	}
	var n names.Name
	if i := strings.LastIndexByte(dotted, '.'); i >= 0 {
		n = names.NewQualified(names.QualPackage, l.PackageName(dotted[:i]), dotted[i+1:])
	} else {
		n = names.SimpleName{Text: dotted}
	}
	l.packageNameCache[dotted] = n
	return n
}

// InitPackages builds the package inventory: every PackageData's dotted
// name is split into segments and walked from the root, creating package
// symbols for missing segments. Idempotent; a second call is a no-op.
func (l *Loader) InitPackages() error {
	if l.searched {
		return nil
	}
	for _, pd := range l.opts.Classpath {
		pkg := l.ctx.Root
		if pd.Name != "" {
			for _, seg := range strings.Split(pd.Name, ".") {
				next, err := symbols.CreatePackageSymbolIfNew(pkg, names.SimpleName{Text: seg})
				if err != nil {
					return fmt.Errorf("initializing package %s: %w", pd.Name, err)
				}
				pkg = next
			}
		}
		l.packages[pkg] = append(l.packages[pkg], pd)
		vlog.V(vlog.Inventory).Printf("loader: registered package %q (%d classes, %d tastys)", pd.Name, len(pd.Classes), len(pd.Tastys))
	}
	l.searched = true
	return nil
}

// isModuleClassName reports whether simple name encodes a module class:
// it ends in '$' and is longer than the bare '$'.
func isModuleClassName(name string) bool {
	return len(name) > 1 && strings.HasSuffix(name, "$")
}

// isNestedClassName reports whether simple name encodes a nested class:
// a '$' appears before the final character, not counting the top-level
// definitions suffix.
func isNestedClassName(name string) bool {
	base := strings.TrimSuffix(name, topLevelModuleSuffix)
	if len(base) < 2 {
		return false
	}
	return strings.ContainsRune(base[:len(base)-1], '$')
}

// ScanPackage enumerates pkg's classpath entries, entering one root per
// retained top-level class or standalone TASTy file. At-most-once: the
// package is removed from the inventory on entry, so a second call is a
// no-op. Marks pkg initialised on exit.
func (l *Loader) ScanPackage(pkg *symbols.PackageClassSymbol) error {
	datas, ok := l.packages[pkg]
	if !ok {
		return nil
	}
	delete(l.packages, pkg)

	for _, pd := range datas {
		tastys := make(map[string]tastyformat.TastyData, len(pd.Tastys))
		for _, t := range pd.Tastys {
			tastys[t.SimpleName] = t
		}
		for _, c := range pd.Classes {
			if isNestedClassName(c.SimpleName) || isModuleClassName(c.SimpleName) {
				vlog.V(vlog.Entries).Printf("loader: skipping non-root class %s in %s", c.SimpleName, pd.Name)
				continue
			}
			var entry Entry
			if t, ok := tastys[c.SimpleName]; ok {
				entry = ClassAndTasty{Class: c, Tasty: t}
				delete(tastys, c.SimpleName)
			} else {
				entry = ClassOnly{Class: c}
			}
			if err := l.enterRoot(pkg, c.SimpleName, entry); err != nil {
				return err
			}
		}
		remaining := make([]string, 0, len(tastys))
		for name := range tastys {
			remaining = append(remaining, name)
		}
		sort.Strings(remaining)
		for _, name := range remaining {
			if isNestedClassName(name) || isModuleClassName(name) {
				continue
			}
			if err := l.enterRoot(pkg, name, TastyOnly{Tasty: tastys[name]}); err != nil {
				return err
			}
		}
	}
	pkg.MarkScanned()
	return nil
}

func (l *Loader) enterRoot(pkg *symbols.PackageClassSymbol, simpleName string, entry Entry) error {
	name := names.SimpleName{Text: simpleName}
	if _, ok := pkg.Lookup(name.ToTypeName()); ok {
		// A shadowed duplicate from a later classpath entry.
		vlog.V(vlog.Inventory).Printf("loader: root %s already entered in %s, skipping %s", simpleName, pkg, entry.debugPath())
		return nil
	}
	res, err := symbols.EnterPackage(pkg, name)
	if err != nil {
		return fmt.Errorf("entering root %s in %s: %w", simpleName, pkg, err)
	}
	l.lookup[res.TypeClass] = entry
	vlog.V(vlog.Inventory).Printf("loader: entered root %s (%T)", res.TypeClass, entry)
	return nil
}

// Entry returns the pending (not yet scanned) entry for cls.
func (l *Loader) Entry(cls *symbols.ClassSymbol) (Entry, bool) {
	e, ok := l.lookup[cls]
	return e, ok
}

// RootEntry pairs a root class symbol with its pending entry.
type RootEntry struct {
	Class *symbols.ClassSymbol
	Entry Entry
}

// PendingRoots returns pkg's not-yet-scanned roots, sorted by name.
func (l *Loader) PendingRoots(pkg *symbols.PackageClassSymbol) []RootEntry {
	var out []RootEntry
	for cls, e := range l.lookup {
		if cls.Owner() == symbols.Symbol(pkg) {
			out = append(out, RootEntry{Class: cls, Entry: e})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Class.Name().String() < out[j].Class.Name().String()
	})
	return out
}

// ScanClass inspects cls's backing bytes: classfile kinds dispatch to the
// parser's follow-up loads, TASTy bytes are unpickled into a top-level
// forest. At-most-once: the entry is removed on entry, so a duplicate
// call short-circuits to (false, nil). A scan error consumes the entry
// and leaves the root uninitialised.
func (l *Loader) ScanClass(cls *symbols.ClassSymbol) (bool, error) {
	entry, ok := l.lookup[cls]
	if !ok {
		return false, nil
	}
	delete(l.lookup, cls)

	root := &LoadRoot{cls: cls}
	classCtx := l.ctx.WithFile(entry.debugPath()).WithClass(cls)
	vlog.V(vlog.Roots).Printf("loader: scanning root %s from %s", cls, entry.debugPath())

	switch e := entry.(type) {
	case TastyOnly:
		return l.unpickleTasty(classCtx, root, e.Tasty)
	case ClassOnly:
		return l.scanClassfile(classCtx, root, entry, e.Class)
	case ClassAndTasty:
		return l.scanClassfile(classCtx, root, entry, e.Class)
	default:
		return false, fmt.Errorf("loader: unknown entry %T for %s", entry, cls)
	}
}

func (l *Loader) scanClassfile(ctx *rootctx.ClassContext, root *LoadRoot, entry Entry, data classfile.ClassData) (bool, error) {
	kind, err := l.opts.Parser.ReadKind(data)
	if err != nil {
		return false, terrors.WrapDecoderError("read kind of "+data.DebugPath, err)
	}
	switch k := kind.(type) {
	case classfile.Scala2:
		if err := l.opts.Parser.LoadScala2Class(ctx, k.Structure, k.RuntimeAnnotStart); err != nil {
			return false, terrors.WrapDecoderError("load scala-2 class "+data.DebugPath, err)
		}
		return ctx.Class.Initialised(), nil
	case classfile.Java:
		if err := l.opts.Parser.LoadJavaClass(ctx, k.Structure, k.GenericSignature); err != nil {
			return false, terrors.WrapDecoderError("load java class "+data.DebugPath, err)
		}
		return ctx.Class.Initialised(), nil
	case classfile.TASTy:
		ct, ok := entry.(ClassAndTasty)
		if !ok {
			return false, &terrors.MissingTopLevelTastyError{Class: ctx.Class.String()}
		}
		return l.unpickleTasty(ctx, root, ct.Tasty)
	case classfile.Other:
		return false, nil
	default:
		return false, fmt.Errorf("loader: unknown class kind %T for %s", kind, data.DebugPath)
	}
}

func (l *Loader) unpickleTasty(ctx *rootctx.ClassContext, root *LoadRoot, data tastyformat.TastyData) (bool, error) {
	if l.opts.UnpickleTasty == nil {
		return false, fmt.Errorf("loader: no TASTy decoder wired for %s", data.DebugPath)
	}
	forest, initialised, err := l.opts.UnpickleTasty(ctx, root, data, l.opts.NewUnpickler)
	if err != nil {
		return false, err
	}
	if !initialised {
		return false, nil
	}
	l.topLevelTastys[ctx.Class] = forest
	return true, nil
}

// TopLevelTasty returns the top-level forest decoded for cls: only roots
// directly owned by a package, already initialised, and not the
// object-class shadow of a class that exists in its own right.
func (l *Loader) TopLevelTasty(cls *symbols.ClassSymbol) ([]trees.Tree, bool) {
	owner, ok := cls.Owner().(*symbols.PackageClassSymbol)
	if !ok || !cls.Initialised() {
		return nil, false
	}
	if tn, isType := cls.Name().(names.TypeName); isType && names.IsObjectClassName(tn.Underlying) {
		plain := tn.Underlying.(names.SuffixedName).Base.ToTypeName()
		if _, shadowed := owner.Lookup(plain); shadowed {
			return nil, false
		}
	}
	forest, ok := l.topLevelTastys[cls]
	return forest, ok
}
