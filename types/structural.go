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

package types

import (
	"fmt"

	"github.com/chiefpi/tasty-query/names"
)

// ThisType is the singleton type of `this` inside a class body, or a
// package reference reached via `this` in a package-qualified context.
type ThisType struct {
	Ref Type // a TypeRef or PackageRef
}

func (ThisType) isType()       {}
func (ThisType) isPrefixType() {}
func (t ThisType) String() string {
	return t.Ref.String() + ".this"
}

// AppliedType is a generic type applied to type arguments, e.g.
// `List[Int]`.
type AppliedType struct {
	Tycon Type
	Args  []Type
}

func (AppliedType) isType() {}
func (t AppliedType) String() string {
	return fmt.Sprintf("%s%s", t.Tycon, argsString(t.Args))
}

func argsString(args []Type) string {
	if len(args) == 0 {
		return ""
	}
	s := "["
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return s + "]"
}

// AndType is the intersection of two types (`A & B`).
type AndType struct {
	A, B Type
}

func (AndType) isType() {}
func (t AndType) String() string {
	return t.A.String() + " & " + t.B.String()
}

// OrType is the union of two types (`A | B`); also the unnormalized join
// used for If/Match/Try branches.
type OrType struct {
	A, B Type
}

func (OrType) isType() {}
func (t OrType) String() string {
	return t.A.String() + " | " + t.B.String()
}

// RefinedType refines parent with a single additional or narrowed member
// named MemberName, whose declared type/bounds is Info. Multiple
// refinements nest: `{ def x: Int; val y: String }` is two nested
// RefinedTypes.
type RefinedType struct {
	Parent     Type
	MemberName names.Name
	Info       Type
}

func (RefinedType) isType() {}
func (t RefinedType) String() string {
	return fmt.Sprintf("%s { %s: %s }", t.Parent, t.MemberName, t.Info)
}

// TypeAlias wraps a target type as a type member's "info", marking it as
// an alias (`type T = Target`) rather than abstract bounds.
type TypeAlias struct {
	Target Type
}

func (TypeAlias) isType() {}
func (t TypeAlias) String() string {
	return "= " + t.Target.String()
}

// RealTypeBounds is a type member's abstract bounds (`type T >: Lo <: Hi`).
type RealTypeBounds struct {
	Lo, Hi Type
}

func (RealTypeBounds) isType() {}
func (b RealTypeBounds) String() string {
	return fmt.Sprintf(">: %s <: %s", b.Lo, b.Hi)
}

// DefaultBounds returns the widest possible bounds, Nothing..Any: the
// collapsed bounds used for a TypeLambdaTree parameter, and a convenient
// default elsewhere.
func DefaultBounds() RealTypeBounds {
	return RealTypeBounds{Lo: NothingType, Hi: AnyType}
}

// MatchTypeCase is one `case Pattern => Result` arm of a MatchType.
type MatchTypeCase struct {
	Pattern Type
	Result  Type
}

// MatchType is a type-level match: `Scrutinee match { cases }`, bounded
// above by Bound. Cases are kept in declaration order; no reduction is
// performed.
type MatchType struct {
	Bound     Type
	Scrutinee Type
	Cases     []MatchTypeCase
}

func (MatchType) isType() {}

func (t MatchType) String() string {
	s := t.Scrutinee.String() + " match {"
	for i, c := range t.Cases {
		if i > 0 {
			s += ";"
		}
		s += fmt.Sprintf(" case %s => %s", c.Pattern, c.Result)
	}
	return s + " }"
}

// ExprType is a by-name parameter's type (`=> T`).
type ExprType struct {
	Result Type
}

func (ExprType) isType() {}
func (t ExprType) String() string {
	return "=> " + t.Result.String()
}
