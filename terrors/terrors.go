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

// Package terrors defines the small, closed error taxonomy used across
// the type algebra, tree model and loader: sentinel values for
// errors.Is, plus a couple of parameterized wrappers for errors that
// need to carry a node or symbol.
package terrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for each failure class. Callers compare with
// errors.Is, since concrete errors are usually wrapped with additional
// context via fmt.Errorf("...: %w", ...).
var (
	// ErrTypeComputation is returned when a tree's type cannot be
	// derived: an unsupported node, or missing information.
	ErrTypeComputation = errors.New("type computation error")

	// ErrNonMethodReference is returned when Apply or TypeApply is
	// applied to a function type that does not widen to a MethodType
	// (respectively PolyType).
	ErrNonMethodReference = errors.New("non-method reference")

	// ErrBadSelection is returned when Select's qualifier type is not a
	// path type.
	ErrBadSelection = errors.New("bad selection: qualifier is not a path type")

	// ErrMissingTopLevelTasty is returned when a classfile declares a
	// TASTy-backed class kind but no companion TASTy entry is present.
	ErrMissingTopLevelTasty = errors.New("missing top-level tasty for class")

	// ErrAmbiguousOverload is returned when widenOverloads cannot
	// disambiguate an overload set to a single alternative.
	ErrAmbiguousOverload = errors.New("ambiguous overload")
)

// TypeComputationError wraps ErrTypeComputation with the description of
// the tree node that failed, so the diagnostic and errors.Is(err,
// ErrTypeComputation) both work.
type TypeComputationError struct {
	Node string
	Err  error
}

func (e *TypeComputationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("type computation error on %s: %v", e.Node, e.Err)
	}
	return fmt.Sprintf("type computation error on %s", e.Node)
}

func (e *TypeComputationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrTypeComputation
}

// NewTypeComputationError builds a TypeComputationError for the given
// node description (typically the tree variant's name, e.g. "Lambda").
func NewTypeComputationError(node string) error {
	return &TypeComputationError{Node: node}
}

// MissingTopLevelTastyError names the class symbol that declared TASTy
// but had no companion TASTy entry.
type MissingTopLevelTastyError struct {
	Class string
}

func (e *MissingTopLevelTastyError) Error() string {
	return fmt.Sprintf("missing top-level tasty for class %s", e.Class)
}

func (e *MissingTopLevelTastyError) Unwrap() error { return ErrMissingTopLevelTasty }

// DecoderError wraps an error propagated verbatim from an external
// decoder collaborator (classfile.Parser, tastyformat.Unpickler).
type DecoderError struct {
	Op  string
	Err error
}

func (e *DecoderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *DecoderError) Unwrap() error { return e.Err }

// WrapDecoderError wraps err (as returned by a classfile/tastyformat
// collaborator) with the operation name that invoked it. Returns nil if
// err is nil.
func WrapDecoderError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &DecoderError{Op: op, Err: err}
}
