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

// Package symbols implements the symbol table: named, owned declarations
// rooted at a package hierarchy, with at-most-once initialization and an
// optional one-shot back-pointer to the tree that defines each symbol.
package symbols

import (
	"fmt"

	"github.com/chiefpi/tasty-query/names"
)

// DefiningTree is the minimal surface a symbol's back-pointer needs. It is
// satisfied structurally by trees.Tree (specifically by DefTree
// implementations), without this package importing trees: the tree owns
// the symbol, the symbol only points back at it.
type DefiningTree interface {
	// DefinedSymbol returns the symbol this tree node declares.
	DefinedSymbol() Symbol
}

// DeclaringSymbol is implemented by the symbol kinds that own declared
// members keyed by name: packages own sub-packages and top-level classes,
// classes own their vals/defs/type members/nested classes.
type DeclaringSymbol interface {
	Symbol

	// Lookup finds a direct child symbol by name.
	Lookup(name names.Name) (Symbol, bool)

	addMember(name names.Name, sym Symbol)
	removeMember(name names.Name)
}

// Symbol is the closed sum of symbol-table entries: PackageClassSymbol,
// ClassSymbol, RegularSymbol, and the NoSymbol sentinel.
type Symbol interface {
	// isSymbol closes the sum over this package.
	isSymbol()

	// Name returns the symbol's interned name.
	Name() names.Name

	// Owner returns the enclosing symbol, or NoSymbol at the root.
	Owner() Symbol

	// Initialised reports whether the symbol has completed its
	// one-shot population (root-scan for classes, package-scan for
	// packages; always true for RegularSymbol on construction).
	Initialised() bool

	// Tree returns the back-pointer to this symbol's defining tree, if
	// one has been linked via SetTree.
	Tree() (DefiningTree, bool)

	// String renders a fully qualified, human-readable name.
	String() string
}

type base struct {
	name        names.Name
	owner       Symbol
	initialised bool
	tree        DefiningTree
	hasTree     bool
}

func (b *base) Name() names.Name { return b.name }
func (b *base) Owner() Symbol    { return b.owner }
func (b *base) Initialised() bool { return b.initialised }

func (b *base) Tree() (DefiningTree, bool) {
	return b.tree, b.hasTree
}

func (b *base) String() string {
	if b.owner == nil || b.owner.Name().IsEmpty() {
		return b.name.String()
	}
	return b.owner.String() + "." + b.name.String()
}

// noSymbol is the sentinel representing "no owner" / "not found".
type noSymbol struct{}

func (noSymbol) isSymbol()              {}
func (noSymbol) Name() names.Name       { return names.EmptyTermName }
func (noSymbol) Owner() Symbol          { return NoSymbol }
func (noSymbol) Initialised() bool      { return true }
func (noSymbol) Tree() (DefiningTree, bool) { return nil, false }
func (noSymbol) String() string         { return "<no symbol>" }

// NoSymbol is the unique sentinel instance with no name, no owner, and no
// defining tree. It is its own owner so owner-chain traversals terminate.
var NoSymbol Symbol = noSymbol{}

// PackageClassSymbol is a package: it holds sub-packages and top-level
// class symbols keyed by name, and becomes Initialised once scanPackage
// has enumerated its backing PackageData (see the loader package).
type PackageClassSymbol struct {
	base
	members map[names.Name]Symbol
}

func (*PackageClassSymbol) isSymbol() {}

// Lookup finds a direct child symbol by name.
func (p *PackageClassSymbol) Lookup(name names.Name) (Symbol, bool) {
	s, ok := p.members[name]
	return s, ok
}

func (p *PackageClassSymbol) addMember(name names.Name, sym Symbol) {
	p.members[name] = sym
}

func (p *PackageClassSymbol) removeMember(name names.Name) {
	delete(p.members, name)
}

// MarkScanned sets the package's Initialised flag; scanPackage in the
// loader package calls this exactly once per package, at exit.
func (p *PackageClassSymbol) MarkScanned() {
	p.initialised = true
}

// ClassSymbol is a named class/trait/object-class, owned either by a
// package (a "root", the unit of demand-driven decoding) or by another
// class. IsPackageObject marks the synthetic class backing a package's
// companion object ("package object" in source terms).
type ClassSymbol struct {
	base
	outer           Symbol
	isPackageObject bool
	members         map[names.Name]Symbol
}

func (*ClassSymbol) isSymbol() {}

// Lookup finds a direct declared member by name.
func (c *ClassSymbol) Lookup(name names.Name) (Symbol, bool) {
	s, ok := c.members[name]
	return s, ok
}

func (c *ClassSymbol) addMember(name names.Name, sym Symbol) {
	c.members[name] = sym
}

func (c *ClassSymbol) removeMember(name names.Name) {
	delete(c.members, name)
}

// Outer returns the lexically enclosing symbol (may differ from Owner for
// nested classes reached through non-package owners).
func (c *ClassSymbol) Outer() Symbol { return c.outer }

// IsPackageObject reports whether this class backs a package-level module.
func (c *ClassSymbol) IsPackageObject() bool { return c.isPackageObject }

// MarkPackageObject flags this class as the synthetic backing class of a
// package-level module. Decoders call this while populating the root.
func (c *ClassSymbol) MarkPackageObject() { c.isPackageObject = true }

// MarkInitialised transitions the class from unpopulated to populated; the
// loader calls this once root-scan (class-file parse or TASTy unpickle)
// has finished constructing its members. A second call is a programming
// error and panics, since §3 requires exactly one false->true transition.
func (c *ClassSymbol) MarkInitialised() {
	if c.initialised {
		panic(fmt.Sprintf("symbol %s already initialised", c.String()))
	}
	c.initialised = true
}

// RegularSymbol covers vals, defs, type members, type parameters, and
// pattern binds: any declaration that is not itself a package or class.
type RegularSymbol struct {
	base
}

func (*RegularSymbol) isSymbol() {}

// NewPackageRoot returns the symbol for the unnamed root package, owned by
// NoSymbol. All other packages are created underneath it via
// CreatePackageSymbolIfNew.
func NewPackageRoot() *PackageClassSymbol {
	return &PackageClassSymbol{
		base:    base{name: names.EmptyTermName, owner: NoSymbol, initialised: true},
		members: make(map[names.Name]Symbol),
	}
}

// CreateSymbol creates a new RegularSymbol named name, owned by owner. It
// fails if owner already has a member of that name, whatever its kind.
func CreateSymbol(owner DeclaringSymbol, name names.Name) (*RegularSymbol, error) {
	if existing, ok := owner.Lookup(name); ok {
		return nil, fmt.Errorf("symbols: %s already has a member named %s (%T)", owner, name, existing)
	}
	sym := &RegularSymbol{base: base{name: name, owner: owner, initialised: true}}
	owner.addMember(name, sym)
	return sym, nil
}

// NewLocalSymbol returns a RegularSymbol owned by owner but not entered
// into any member map: method parameters, pattern binds, and other
// declarations that are local to a body rather than members of a table.
func NewLocalSymbol(owner Symbol, name names.Name) *RegularSymbol {
	return &RegularSymbol{base: base{name: name, owner: owner, initialised: true}}
}

// CreateClassSymbol creates a new ClassSymbol named typeName (which must
// be in the type namespace), owned by owner. It fails if owner already has
// a member of that name.
func CreateClassSymbol(owner DeclaringSymbol, typeName names.Name) (*ClassSymbol, error) {
	if existing, ok := owner.Lookup(typeName); ok {
		return nil, fmt.Errorf("symbols: %s already has a member named %s (%T)", owner, typeName, existing)
	}
	sym := &ClassSymbol{
		base:    base{name: typeName, owner: owner},
		outer:   owner,
		members: make(map[names.Name]Symbol),
	}
	owner.addMember(typeName, sym)
	return sym, nil
}

// CreatePackageSymbolIfNew returns the PackageClassSymbol named name under
// parentPackage, creating it if absent. The operation is idempotent: a
// second call with the same name returns the existing symbol.
func CreatePackageSymbolIfNew(parentPackage *PackageClassSymbol, name names.Name) (*PackageClassSymbol, error) {
	if existing, ok := parentPackage.Lookup(name); ok {
		pkg, ok := existing.(*PackageClassSymbol)
		if !ok {
			return nil, fmt.Errorf("symbols: %s already has a non-package member named %s", parentPackage, name)
		}
		return pkg, nil
	}
	pkg := &PackageClassSymbol{
		base:    base{name: name, owner: parentPackage},
		members: make(map[names.Name]Symbol),
	}
	parentPackage.addMember(name, pkg)
	return pkg, nil
}

// EnterPackageResult bundles the three symbols created by EnterPackage.
type EnterPackageResult struct {
	Term        *RegularSymbol
	ObjectClass *ClassSymbol
	TypeClass   *ClassSymbol
}

// EnterPackage runs the root enter sequence for a root named name, owned
// by owner: a term object symbol, the object's backing
// class symbol (name with the object-class suffix), and the class symbol
// for name-as-a-type. All three are created atomically; if any of the
// three names is already bound, nothing is created and an error is
// returned.
func EnterPackage(owner *PackageClassSymbol, name names.Name) (EnterPackageResult, error) {
	typeName := name.ToTypeName()
	objectClassName := names.SuffixedName{Tag: names.ObjectClass, Base: name}.ToTypeName()

	for _, n := range []names.Name{name, objectClassName, typeName} {
		if _, ok := owner.Lookup(n); ok {
			return EnterPackageResult{}, fmt.Errorf("symbols: EnterPackage(%s) in %s: %s already bound", name, owner, n)
		}
	}

	term, err := CreateSymbol(owner, name)
	if err != nil {
		return EnterPackageResult{}, err
	}
	objectClass, err := CreateClassSymbol(owner, objectClassName)
	if err != nil {
		owner.removeMember(name)
		return EnterPackageResult{}, err
	}
	typeClass, err := CreateClassSymbol(owner, typeName)
	if err != nil {
		owner.removeMember(name)
		owner.removeMember(objectClassName)
		return EnterPackageResult{}, err
	}
	return EnterPackageResult{Term: term, ObjectClass: objectClass, TypeClass: typeClass}, nil
}

// SetTree links sym to its defining tree. It is a one-shot operation: a
// second call returns an error rather than overwriting the back-pointer.
func SetTree(sym Symbol, tree DefiningTree) error {
	b := baseOf(sym)
	if b == nil {
		return fmt.Errorf("symbols: SetTree: %T has no tree back-pointer slot", sym)
	}
	if b.hasTree {
		return fmt.Errorf("symbols: SetTree: %s already has a defining tree", sym)
	}
	b.tree = tree
	b.hasTree = true
	return nil
}

// baseOf extracts the embedded *base for the symbol kinds that carry one;
// NoSymbol has none.
func baseOf(sym Symbol) *base {
	switch s := sym.(type) {
	case *PackageClassSymbol:
		return &s.base
	case *ClassSymbol:
		return &s.base
	case *RegularSymbol:
		return &s.base
	default:
		return nil
	}
}
