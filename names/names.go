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

// Package names implements the closed family of interned textual
// identifiers used throughout the symbol table, type algebra and tree
// model: simple names, qualified names, signed (overload-disambiguating)
// names, compiler-synthesized unique names, suffixed names and the
// type-namespace wrapper.
package names

import (
	"fmt"
	"strings"
)

// QualifierTag selects the flavor of a QualifiedName.
type QualifierTag int8

const (
	// QualMember separates an owner from a member, e.g. "Outer.Inner".
	QualMember QualifierTag = iota
	// QualPackage separates package segments, e.g. "scala.collection".
	QualPackage
	// QualExpanded is a compiler-expanded private member name.
	QualExpanded
)

func (t QualifierTag) String() string {
	switch t {
	case QualMember:
		return "."
	case QualPackage:
		return "."
	case QualExpanded:
		return "$$"
	default:
		return fmt.Sprintf("QualifierTag(%d)", int8(t))
	}
}

// SuffixTag selects the flavor of a SuffixedName. ObjectClass is, by far,
// the only one this module needs: it marks the class backing a module
// ("object" in source terms), e.g. "Foo" -> "Foo$".
type SuffixTag int8

// ObjectClass is the sole supported SuffixTag: the companion-module suffix.
const ObjectClass SuffixTag = 0

func (t SuffixTag) suffixText() string {
	switch t {
	case ObjectClass:
		return "$"
	default:
		return ""
	}
}

// Signature disambiguates overloaded members: the erased parameter type
// names plus the erased result type name, exactly as TASTy records them on
// a SignedName.
type Signature struct {
	ParamSigs []string
	ResSig    string
}

// String renders a Signature for debugging/diagnostics.
func (s Signature) String() string {
	return fmt.Sprintf("(%s)%s", strings.Join(s.ParamSigs, ","), s.ResSig)
}

// Equal reports whether two Signatures are structurally identical.
func (s Signature) Equal(o Signature) bool {
	if s.ResSig != o.ResSig || len(s.ParamSigs) != len(o.ParamSigs) {
		return false
	}
	for i := range s.ParamSigs {
		if s.ParamSigs[i] != o.ParamSigs[i] {
			return false
		}
	}
	return true
}

// Name is the closed sum of interned textual identifiers. All
// implementations live in this package; the interface cannot be
// implemented outside it.
type Name interface {
	// isName is unexported: it closes the Name sum over this package.
	isName()

	// String renders the name the way the defining compiler would.
	String() string

	// IsEmpty reports whether this is the sentinel empty term name.
	IsEmpty() bool

	// IsTypeName reports whether this name lives in the type namespace.
	IsTypeName() bool

	// ToTypeName wraps this name (if not already wrapped) as a TypeName.
	ToTypeName() Name

	// ToTermName unwraps a TypeName back to its underlying term name; a
	// no-op on any other variant.
	ToTermName() Name
}

// SimpleName is a bare identifier, e.g. "scala" or "List".
type SimpleName struct {
	Text string
}

func (SimpleName) isName() {}

func (n SimpleName) String() string { return n.Text }

// IsEmpty reports whether n is the sentinel empty term name "".
func (n SimpleName) IsEmpty() bool { return n.Text == "" }

func (SimpleName) IsTypeName() bool { return false }

func (n SimpleName) ToTypeName() Name { return TypeName{Underlying: n} }

func (n SimpleName) ToTermName() Name { return n }

// EmptyTermName is the sentinel empty name: the name of the root package
// and of synthetic positions with no declared identifier.
var EmptyTermName Name = SimpleName{Text: ""}

// Wildcard is the sentinel "_" name used in import selectors and patterns.
var Wildcard Name = SimpleName{Text: "_"}

// QualifiedName composes a prefix and a suffix under a QualifierTag, e.g.
// the package name "scala.collection" or a private-expanded member name.
type QualifiedName struct {
	Tag    QualifierTag
	Prefix Name
	Suffix SimpleName
}

func (QualifiedName) isName() {}

func (n QualifiedName) String() string {
	return n.Prefix.String() + n.Tag.String() + n.Suffix.Text
}

func (QualifiedName) IsEmpty() bool { return false }

func (QualifiedName) IsTypeName() bool { return false }

func (n QualifiedName) ToTypeName() Name { return TypeName{Underlying: n} }

func (n QualifiedName) ToTermName() Name { return n }

// NewQualified builds a QualifiedName, collapsing a SimpleName("") prefix
// into just the suffix (a prefix-less name is not itself qualified).
func NewQualified(tag QualifierTag, prefix Name, suffix string) Name {
	if prefix == nil || prefix.IsEmpty() {
		return SimpleName{Text: suffix}
	}
	return QualifiedName{Tag: tag, Prefix: prefix, Suffix: SimpleName{Text: suffix}}
}

// SignedName disambiguates an overloaded member by its erased signature
// and, optionally, the name under which it was originally declared
// (target), used when an alias/bridge differs from the real method name.
type SignedName struct {
	Base      Name
	Signature Signature
	Target    Name
}

func (SignedName) isName() {}

func (n SignedName) String() string {
	return fmt.Sprintf("%s%s", n.Base.String(), n.Signature.String())
}

func (SignedName) IsEmpty() bool { return false }

func (SignedName) IsTypeName() bool { return false }

func (n SignedName) ToTypeName() Name { return TypeName{Underlying: n} }

func (n SignedName) ToTermName() Name { return n }

// UniqueName is a compiler-synthesized identifier such as "x$1" for an
// anonymous binding: a prefix, the name it was uniquified from, and an
// index disambiguating repeated synthesis of the same prefix.
type UniqueName struct {
	Prefix     string
	Underlying Name
	Index      int
}

func (UniqueName) isName() {}

func (n UniqueName) String() string {
	return fmt.Sprintf("%s%s%d", n.Underlying.String(), n.Prefix, n.Index)
}

func (UniqueName) IsEmpty() bool { return false }

func (UniqueName) IsTypeName() bool { return false }

func (n UniqueName) ToTypeName() Name { return TypeName{Underlying: n} }

func (n UniqueName) ToTermName() Name { return n }

// SuffixedName attaches a fixed textual suffix to a base name. The only
// supported tag, ObjectClass, marks the synthetic class that backs a
// singleton module/object.
type SuffixedName struct {
	Tag  SuffixTag
	Base Name
}

func (SuffixedName) isName() {}

func (n SuffixedName) String() string {
	return n.Base.String() + n.Tag.suffixText()
}

func (SuffixedName) IsEmpty() bool { return false }

func (SuffixedName) IsTypeName() bool { return false }

func (n SuffixedName) ToTypeName() Name { return TypeName{Underlying: n} }

func (n SuffixedName) ToTermName() Name { return n }

// IsObjectClassName reports whether n carries the ObjectClass suffix tag.
func IsObjectClassName(n Name) bool {
	sn, ok := n.(SuffixedName)
	return ok && sn.Tag == ObjectClass
}

// TypeName wraps a name to mark it as belonging to the type namespace,
// distinct from the term namespace occupied by the same textual name.
type TypeName struct {
	Underlying Name
}

func (TypeName) isName() {}

func (n TypeName) String() string { return n.Underlying.String() }

func (n TypeName) IsEmpty() bool { return n.Underlying.IsEmpty() }

func (TypeName) IsTypeName() bool { return true }

func (n TypeName) ToTypeName() Name { return n }

func (n TypeName) ToTermName() Name { return n.Underlying }

// Select composes a qualified member name "a.b" from a and the simple text
// b, in the member-qualified form.
func Select(a Name, b string) Name {
	return NewQualified(QualMember, a, b)
}

// Last returns the final simple-name segment of n: its own text for a
// SimpleName, the suffix for a QualifiedName, and so on, recursing through
// TypeName/SignedName/UniqueName/SuffixedName wrappers.
func Last(n Name) string {
	switch v := n.(type) {
	case SimpleName:
		return v.Text
	case QualifiedName:
		return v.Suffix.Text
	case SignedName:
		return Last(v.Base)
	case UniqueName:
		return Last(v.Underlying)
	case SuffixedName:
		return Last(v.Base)
	case TypeName:
		return Last(v.Underlying)
	default:
		return n.String()
	}
}

// Subnames returns the left-associative prefix expansion of a
// package-qualified name: for "a.b.c" it returns ["a", "a.b", "a.b.c"].
// A non-qualified name returns itself as the sole element.
func Subnames(n Name) []Name {
	if q, ok := n.(QualifiedName); ok && q.Tag == QualPackage {
		return append(Subnames(q.Prefix), n)
	}
	return []Name{n}
}

// IsWildcard reports whether n is the "_" wildcard sentinel.
func IsWildcard(n Name) bool {
	s, ok := n.(SimpleName)
	return ok && s.Text == "_"
}
