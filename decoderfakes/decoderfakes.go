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

// Package decoderfakes provides scripted fakes for the decoder
// collaborators: a TASTy unpickler that replays a recorded event stream,
// and a classfile parser with canned kinds per class name. Tests use
// them to drive the loader and glue without real bytes.
package decoderfakes

import (
	"fmt"

	"github.com/chiefpi/tasty-query/classfile"
	"github.com/chiefpi/tasty-query/names"
	"github.com/chiefpi/tasty-query/rootctx"
	"github.com/chiefpi/tasty-query/symbols"
	"github.com/chiefpi/tasty-query/tastyformat"
	"github.com/chiefpi/tasty-query/trees"
	"github.com/chiefpi/tasty-query/types"
)

// Op discriminates recorded Builder calls.
type Op int

const (
	OpBegin Op = iota
	OpName
	OpConstant
	OpType
	OpSymbol
	OpBreak
	OpEnd
)

// Event is one recorded Builder call.
type Event struct {
	Op       Op
	Kind     tastyformat.TreeKind
	Span     trees.Span
	Name     names.Name
	Constant types.Constant
	Type     types.Type
	Symbol   symbols.Symbol
}

// Begin, Name, Constant, TypeEv, SymbolEv, Break, End build script events.
func Begin(kind tastyformat.TreeKind) Event { return Event{Op: OpBegin, Kind: kind} }
func Name(n names.Name) Event               { return Event{Op: OpName, Name: n} }
func Constant(c types.Constant) Event       { return Event{Op: OpConstant, Constant: c} }
func TypeEv(t types.Type) Event             { return Event{Op: OpType, Type: t} }
func SymbolEv(s symbols.Symbol) Event       { return Event{Op: OpSymbol, Symbol: s} }
func Break() Event                          { return Event{Op: OpBreak} }
func End() Event                            { return Event{Op: OpEnd} }

// Leaf returns the two events of a childless node.
func Leaf(kind tastyformat.TreeKind) []Event {
	return []Event{Begin(kind), End()}
}

// Script concatenates event fragments into one stream.
func Script(fragments ...[]Event) []Event {
	var out []Event
	for _, f := range fragments {
		out = append(out, f...)
	}
	return out
}

// Unpickler replays a scripted event stream through both staged
// sections; the position section is a no-op.
type Unpickler struct {
	Events []Event

	// PositionErr / TreeErr force the respective section to fail.
	PositionErr error
	TreeErr     error
}

// Factory returns a tastyformat.Factory that ignores the input bytes and
// replays events.
func Factory(events []Event) tastyformat.Factory {
	return func([]byte) (tastyformat.Unpickler, error) {
		return &Unpickler{Events: events}, nil
	}
}

func (u *Unpickler) PositionSection() (tastyformat.PositionUnpickler, error) {
	return positionUnpickler{err: u.PositionErr}, nil
}

func (u *Unpickler) TreeSection() (tastyformat.TreeUnpickler, error) {
	if u.TreeErr != nil {
		return nil, u.TreeErr
	}
	return treeUnpickler{events: u.Events}, nil
}

type positionUnpickler struct {
	err error
}

func (p positionUnpickler) Unpickle() error { return p.err }

type treeUnpickler struct {
	events []Event
}

func (t treeUnpickler) Unpickle(b tastyformat.Builder) error {
	for _, e := range t.events {
		switch e.Op {
		case OpBegin:
			b.Begin(e.Kind, e.Span)
		case OpName:
			b.Name(e.Name)
		case OpConstant:
			b.Constant(e.Constant)
		case OpType:
			b.Type(e.Type)
		case OpSymbol:
			b.Symbol(e.Symbol)
		case OpBreak:
			b.SectionBreak()
		case OpEnd:
			if err := b.End(); err != nil {
				return err
			}
		default:
			return fmt.Errorf("decoderfakes: unknown op %d", e.Op)
		}
	}
	return nil
}

// Parser is a classfile.Parser with canned kinds keyed by simple class
// name; unknown names classify as Other. Load calls mark the class
// initialised and record the name.
type Parser struct {
	Kinds map[string]classfile.Kind

	Scala2Loaded []string
	JavaLoaded   []string
}

func (p *Parser) ReadKind(data classfile.ClassData) (classfile.Kind, error) {
	if k, ok := p.Kinds[data.SimpleName]; ok {
		return k, nil
	}
	return classfile.Other{}, nil
}

func (p *Parser) LoadScala2Class(ctx *rootctx.ClassContext, s classfile.Structure, runtimeAnnotStart int) error {
	p.Scala2Loaded = append(p.Scala2Loaded, ctx.Class.Name().String())
	ctx.Class.MarkInitialised()
	return nil
}

func (p *Parser) LoadJavaClass(ctx *rootctx.ClassContext, s classfile.Structure, genericSignature string) error {
	p.JavaLoaded = append(p.JavaLoaded, ctx.Class.Name().String())
	ctx.Class.MarkInitialised()
	return nil
}
