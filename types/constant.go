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

import "fmt"

// ConstantTag discriminates the kind of value a Constant carries. TASTy's
// constant pool has one slot per primitive kind plus String, Null, and
// Unit; ClassOf backs literal `classOf[T]` expressions.
type ConstantTag int8

const (
	UnitConstant ConstantTag = iota
	BooleanConstant
	ByteConstant
	ShortConstant
	CharConstant
	IntConstant
	LongConstant
	FloatConstant
	DoubleConstant
	StringConstant
	NullConstant
	ClassOfConstant
)

// Constant is the payload of a Literal tree / ConstantType: a tagged
// primitive value, exactly as decoded from the TASTy constant table.
type Constant struct {
	Tag   ConstantTag
	Value interface{}
	// ClassOfType holds the referenced Type when Tag == ClassOfConstant;
	// Value is unused in that case.
	ClassOfType Type
}

func (c Constant) String() string {
	switch c.Tag {
	case UnitConstant:
		return "()"
	case NullConstant:
		return "null"
	case StringConstant:
		return fmt.Sprintf("%q", c.Value)
	case CharConstant:
		return fmt.Sprintf("'%c'", c.Value)
	case ClassOfConstant:
		return fmt.Sprintf("classOf[%s]", c.ClassOfType)
	default:
		return fmt.Sprintf("%v", c.Value)
	}
}

// Equal reports whether two constants carry the same tag and value.
func (c Constant) Equal(o Constant) bool {
	if c.Tag != o.Tag {
		return false
	}
	if c.Tag == ClassOfConstant {
		return c.ClassOfType == o.ClassOfType
	}
	return c.Value == o.Value
}

// NewUnitConstant, NewBoolConstant, ... construct Constants of each
// primitive kind, one per slot of the constant table.
func NewUnitConstant() Constant                 { return Constant{Tag: UnitConstant, Value: struct{}{}} }
func NewBoolConstant(v bool) Constant            { return Constant{Tag: BooleanConstant, Value: v} }
func NewByteConstant(v int8) Constant            { return Constant{Tag: ByteConstant, Value: v} }
func NewShortConstant(v int16) Constant          { return Constant{Tag: ShortConstant, Value: v} }
func NewCharConstant(v rune) Constant            { return Constant{Tag: CharConstant, Value: v} }
func NewIntConstant(v int32) Constant            { return Constant{Tag: IntConstant, Value: v} }
func NewLongConstant(v int64) Constant           { return Constant{Tag: LongConstant, Value: v} }
func NewFloatConstant(v float32) Constant        { return Constant{Tag: FloatConstant, Value: v} }
func NewDoubleConstant(v float64) Constant       { return Constant{Tag: DoubleConstant, Value: v} }
func NewStringConstant(v string) Constant        { return Constant{Tag: StringConstant, Value: v} }
func NewNullConstant() Constant                  { return Constant{Tag: NullConstant, Value: nil} }
func NewClassOfConstant(t Type) Constant         { return Constant{Tag: ClassOfConstant, ClassOfType: t} }
