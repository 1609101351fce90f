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

// Package types implements the type algebra: an immutable, closed family
// of type terms (ground types, reference types, structural types,
// polymorphic/method types) plus the select/selectIn/widenOverloads
// operations that compute one type from another.
//
// Structural equality for these types is by value (Go's == or reflect
// equality over the struct literal); the package does not provide its own
// interning, which is an optional concern left to a context-scoped table.
package types

import (
	"fmt"

	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/symbols"
)

// Type is the closed sum of the type algebra. All implementations live in
// this package.
type Type interface {
	// isType closes the sum over this package.
	isType()

	// String renders the type the way the defining compiler would,
	// approximately (this is a diagnostic rendering, not a parser for
	// the source language).
	String() string
}

// PrefixType is implemented by the types.Type variants legal as the
// `prefix` of a TermRef/TypeRef/PackageTypeRef: NoPrefix, PackageRef,
// TermRef, TypeRef, and ThisType.
type PrefixType interface {
	Type
	isPrefixType()
}

// ---- Leaf / ground types ----

type noType struct{}

func (noType) isType()         {}
func (noType) String() string  { return "<notype>" }

// NoType is the sentinel "no type" value: the type of definition trees and
// of a failed computation's placeholder.
var NoType Type = noType{}

type noPrefix struct{}

func (noPrefix) isType()        {}
func (noPrefix) isPrefixType()  {}
func (noPrefix) String() string { return "<noprefix>" }

// NoPrefix marks a reference with no qualifying prefix (a local or
// top-level binding referenced without a `this`/module path).
var NoPrefix Type = noPrefix{}

type anyType struct{}

func (anyType) isType()        {}
func (anyType) String() string { return "Any" }

// AnyType is the top of the subtyping lattice.
var AnyType Type = anyType{}

type nothingType struct{}

func (nothingType) isType()        {}
func (nothingType) String() string { return "Nothing" }

// NothingType is the bottom of the subtyping lattice; also the type of
// Throw and Return expressions.
var NothingType Type = nothingType{}

type unitType struct{}

func (unitType) isType()        {}
func (unitType) String() string { return "Unit" }

// UnitType is the type of side-effecting expressions with no useful
// result: While loops, Assign.
var UnitType Type = unitType{}

// ConstantType is the singleton type of a literal value.
type ConstantType struct {
	Value Constant
}

func (ConstantType) isType() {}
func (t ConstantType) String() string {
	return fmt.Sprintf("%s", t.Value)
}

// ---- Reference types ----

// PackageRef is a reference to a package by its fully qualified name.
type PackageRef struct {
	FullName names.Name
}

func (PackageRef) isType()       {}
func (PackageRef) isPrefixType() {}
func (r PackageRef) String() string {
	return r.FullName.String()
}

// TermRef is a reference to a term (value) member: a prefix (the type
// through which the member is reached) and the member's name.
type TermRef struct {
	Prefix Type
	Name   names.Name
}

func (TermRef) isType()       {}
func (TermRef) isPrefixType() {}
func (r TermRef) String() string {
	if r.Prefix == nil || r.Prefix == NoPrefix {
		return r.Name.String()
	}
	return r.Prefix.String() + "." + r.Name.String()
}

// TypeRef is a reference to a type member, named either by a name (not
// yet resolved to a symbol) or, once resolved, directly by its
// symbols.Symbol. At most one of Name/Sym needs to be meaningful, but both
// may be set once a name reference has been resolved.
type TypeRef struct {
	Prefix Type
	Name   names.Name
	Sym    symbols.Symbol
}

func (TypeRef) isType()       {}
func (TypeRef) isPrefixType() {}
func (r TypeRef) String() string {
	name := r.Name
	if name == nil && r.Sym != nil {
		name = r.Sym.Name()
	}
	if r.Prefix == nil || r.Prefix == NoPrefix {
		return name.String()
	}
	return r.Prefix.String() + "#" + name.String()
}

// NewTypeRefByName builds an unresolved TypeRef known only by name.
func NewTypeRefByName(prefix Type, name names.Name) TypeRef {
	return TypeRef{Prefix: prefix, Name: name}
}

// NewTypeRefBySymbol builds a resolved TypeRef that points directly at a
// ClassSymbol or other type-bearing symbol.
func NewTypeRefBySymbol(prefix Type, sym symbols.Symbol) TypeRef {
	return TypeRef{Prefix: prefix, Name: sym.Name(), Sym: sym}
}

// PackageTypeRef is a TypeRef specialized to mark references to a
// package's own type, as opposed to a member type reached through it.
type PackageTypeRef struct {
	Prefix Type
	Name   names.Name
}

func (PackageTypeRef) isType()       {}
func (PackageTypeRef) isPrefixType() {}
func (r PackageTypeRef) String() string {
	return r.Name.String() + ".type"
}

// IsPathType reports whether t denotes a stable value path, and is
// therefore legal input to Select/SelectIn: TermRef, ThisType, and
// PackageRef are path types; everything else is not.
func IsPathType(t Type) bool {
	switch t.(type) {
	case TermRef, ThisType, PackageRef:
		return true
	default:
		return false
	}
}
