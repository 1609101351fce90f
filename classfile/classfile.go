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

// Package classfile declares the contract of the classfile-parsing
// collaborator: bytes in, a Kind discriminant out, plus the follow-up
// loads that populate a root class symbol from Scala-2 pickles or Java
// generic signatures. Decoding the constant pool and attributes is the
// collaborator's concern; this package defines only the surface the
// loader dispatches on.
package classfile

import (
	"github.com/chiefpi/tasty-query/rootctx"
)

// ClassData is one classfile on the classpath: its simple name (no
// package, no extension), a path for diagnostics, and the raw bytes.
type ClassData struct {
	SimpleName string
	DebugPath  string
	Bytes      []byte
}

// Structure is the parser's partially decoded view of a classfile,
// threaded opaquely from ReadKind into the follow-up Load calls. The
// loader never inspects it.
type Structure struct {
	Data ClassData
}

// Kind is the closed discriminant ReadKind produces. The loader
// dispatches on it: Scala2 and Java trigger follow-up loads, TASTy
// redirects to the companion TASTy entry, Other is silently ignored.
type Kind interface {
	isKind()
}

// Scala2 marks a class compiled by the legacy compiler; its members are
// encoded in a runtime-visible annotation starting at RuntimeAnnotStart.
type Scala2 struct {
	Structure         Structure
	RuntimeAnnotStart int
}

func (Scala2) isKind() {}

// Java marks a plain Java class; GenericSignature is the Signature
// attribute's text, or "" when absent.
type Java struct {
	Structure        Structure
	GenericSignature string
}

func (Java) isKind() {}

// TASTy marks a class whose definition lives in a companion TASTy entry;
// the classfile itself carries no member data the loader needs.
type TASTy struct{}

func (TASTy) isKind() {}

// Other marks classfiles the loader should skip (e.g. synthetic
// artifacts of other JVM languages).
type Other struct{}

func (Other) isKind() {}

// Parser is the classfile-parsing collaborator. Load calls populate the
// context's class symbol and mark it initialised as a side effect.
type Parser interface {
	// ReadKind classifies data without fully decoding it.
	ReadKind(data ClassData) (Kind, error)

	// LoadScala2Class decodes a legacy-encoded class into ctx.Class.
	LoadScala2Class(ctx *rootctx.ClassContext, s Structure, runtimeAnnotStart int) error

	// LoadJavaClass decodes a Java class's signatures into ctx.Class.
	LoadJavaClass(ctx *rootctx.ClassContext, s Structure, genericSignature string) error
}
