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
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/terrors"
)

// Select computes the type of selecting name from t, used for
// `Select(qual, name)` trees: t must be a path type
// (TermRef, ThisType, or PackageRef), and the result's prefix is t
// itself. Returns terrors.ErrBadSelection otherwise.
func Select(t Type, name names.Name) (Type, error) {
	if !IsPathType(t) {
		return nil, fmt.Errorf("%w: select(%s) on %s", terrors.ErrBadSelection, name, t)
	}
	if name.IsTypeName() {
		return TypeRef{Prefix: t, Name: name}, nil
	}
	return TermRef{Prefix: t, Name: name}, nil
}

// SelectIn computes the type of selecting signedName from t. Like
// Select, t must be a path type. For a type name the declaring owner is
// recorded as the resulting TypeRef's Sym; for a term name the result is
// a plain TermRef and the owner is not recorded.
func SelectIn(t Type, signedName names.Name, owner symbols.Symbol) (Type, error) {
	if !IsPathType(t) {
		return nil, fmt.Errorf("%w: selectIn(%s) on %s", terrors.ErrBadSelection, signedName, t)
	}
	if signedName.IsTypeName() {
		return TypeRef{Prefix: t, Name: signedName, Sym: owner}, nil
	}
	return TermRef{Prefix: t, Name: signedName}, nil
}

// WidenOverloads is the identity on anything but an OverloadedType; for
// an OverloadedType it picks the single alternative, or fails with
// terrors.ErrAmbiguousOverload if there is more (or less) than one.
func WidenOverloads(t Type) (Type, error) {
	o, ok := t.(OverloadedType)
	if !ok {
		return t, nil
	}
	if len(o.Alternatives) == 1 {
		return o.Alternatives[0], nil
	}
	return nil, fmt.Errorf("%w: %d alternatives in %s", terrors.ErrAmbiguousOverload, len(o.Alternatives), o)
}

// AsMethodType widens t and requires the result to be a MethodType,
// returning terrors.ErrNonMethodReference otherwise. Used to compute the
// type of an Apply tree.
func AsMethodType(t Type) (MethodType, error) {
	widened, err := WidenOverloads(t)
	if err != nil {
		return MethodType{}, err
	}
	m, ok := widened.(MethodType)
	if !ok {
		return MethodType{}, fmt.Errorf("%w: %s is not a method type", terrors.ErrNonMethodReference, widened)
	}
	return m, nil
}

// AsPolyType widens t and requires the result to be a PolyType, returning
// terrors.ErrNonMethodReference otherwise. Used to compute the type of a
// TypeApply tree.
func AsPolyType(t Type) (PolyType, error) {
	widened, err := WidenOverloads(t)
	if err != nil {
		return PolyType{}, err
	}
	p, ok := widened.(PolyType)
	if !ok {
		return PolyType{}, fmt.Errorf("%w: %s is not a poly type", terrors.ErrNonMethodReference, widened)
	}
	return p, nil
}
