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
	"strings"

	"github.com/chiefpi/tasty-query/names"
)

// MethodType is the type of a method with one parameter list: parallel
// arrays of parameter names and types, plus the result.
//
// Dependent parameter types (a later parameter's type mentioning an
// earlier one) are not modeled: ResultType returns the declared result
// type verbatim, with no parameter substitution.
type MethodType struct {
	ParamNames []names.Name
	ParamTypes []Type
	Result     Type
}

func (MethodType) isType() {}

func (m MethodType) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, n := range m.ParamNames {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", n, m.ParamTypes[i])
	}
	b.WriteByte(')')
	b.WriteString(m.Result.String())
	return b.String()
}

// ResultType returns the method's declared result type.
func (m MethodType) ResultType() Type { return m.Result }

// PolyType is the type of a method with a single type-parameter list:
// parallel arrays of type-parameter names and bounds, plus the result
// type of applying all type parameters.
//
// Like MethodType, type-parameter substitution into Result is not
// performed: ResultType returns the declared result verbatim.
type PolyType struct {
	ParamNames []names.Name
	Bounds     []RealTypeBounds
	Result     Type
}

func (PolyType) isType() {}

func (p PolyType) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, n := range p.ParamNames {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", n, p.Bounds[i])
	}
	b.WriteByte(']')
	b.WriteString(p.Result.String())
	return b.String()
}

// ResultType returns the poly-method's declared result type.
func (p PolyType) ResultType() Type { return p.Result }

// TypeLambdaParam is one parameter of a TypeLambda: a name (often
// synthetic, e.g. "_$1" for a wildcard/higher-kinded parameter) and its
// bounds.
type TypeLambdaParam struct {
	Name   names.Name
	Bounds RealTypeBounds
}

// TypeLambda is a type-level function, used to encode higher-kinded type
// parameters and type aliases with parameters, e.g. `[X] =>> List[X]`.
type TypeLambda struct {
	Params []TypeLambdaParam
	Result Type
}

func (TypeLambda) isType() {}

func (l TypeLambda) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, p := range l.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s %s", p.Name, p.Bounds)
	}
	b.WriteString("] =>> ")
	if l.Result != nil {
		b.WriteString(l.Result.String())
	}
	return b.String()
}

// ResultType returns the lambda's body type, resolving any TypeParamRefs
// that point back into this same lambda (they already do, structurally;
// ResultType is a plain accessor, not a substitution step).
func (l TypeLambda) ResultType() Type { return l.Result }

// TypeParamRef is a reference to the index-th parameter of a binding
// TypeLambda. The binder is always a *TypeLambda; PolyType parameters
// are not referenced through TypeParamRef.
type TypeParamRef struct {
	Binding *TypeLambda
	Index   int
}

func (TypeParamRef) isType() {}

func (r TypeParamRef) String() string {
	return r.ParamName().String()
}

// ParamName returns the name of the referenced parameter.
func (r TypeParamRef) ParamName() names.Name {
	return r.Binding.Params[r.Index].Name
}

// OverloadedType represents an unresolved overload set: the type of a
// Select/SelectIn target before WidenOverloads has picked (or failed to
// pick) a single alternative.
type OverloadedType struct {
	Alternatives []Type
}

func (OverloadedType) isType() {}

func (o OverloadedType) String() string {
	var b strings.Builder
	b.WriteString("<overloaded> {")
	for i, a := range o.Alternatives {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(a.String())
	}
	b.WriteString("}")
	return b.String()
}
