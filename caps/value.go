// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps

import (
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Kind identifies the payload carried by a Value.
type Kind uint8

// Payload kinds a capability can carry
const (
	KindInvalid Kind = iota
	KindBool
	KindUint32
	KindUint64
	KindFloat32
	KindText
	KindUint32x2
	KindUint32x3
	KindFloat32x2
)

var kindNames = [...]string{
	KindInvalid:   "invalid",
	KindBool:      "bool",
	KindUint32:    "uint32",
	KindUint64:    "uint64",
	KindFloat32:   "float32",
	KindText:      "text",
	KindUint32x2:  "uint32x2",
	KindUint32x3:  "uint32x3",
	KindFloat32x2: "float32x2",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Value is a single capability value of one of the fixed payload kinds.
// The zero Value has KindInvalid and cannot be unpacked.
type Value struct {
	kind Kind
	b    bool
	u    uint64
	f    float32
	s    string
	ua   [3]uint32
	fv   glm.Vec2
}

// Bool creates a boolean value.
func Bool(v bool) Value {
	return Value{kind: KindBool, b: v}
}

// Uint32 creates a 32-bit unsigned value.
func Uint32(v uint32) Value {
	return Value{kind: KindUint32, u: uint64(v)}
}

// Uint64 creates a 64-bit unsigned value.
func Uint64(v uint64) Value {
	return Value{kind: KindUint64, u: v}
}

// Float32 creates a float value.
func Float32(v float32) Value {
	return Value{kind: KindFloat32, f: v}
}

// Text creates a string value.
func Text(v string) Value {
	return Value{kind: KindText, s: v}
}

// Uint32x2 creates a pair of unsigned values.
func Uint32x2(x, y uint32) Value {
	return Value{kind: KindUint32x2, ua: [3]uint32{x, y, 0}}
}

// Uint32x3 creates a triple of unsigned values.
func Uint32x3(x, y, z uint32) Value {
	return Value{kind: KindUint32x3, ua: [3]uint32{x, y, z}}
}

// Float32x2 creates a pair of float values, usually a range.
func Float32x2(v glm.Vec2) Value {
	return Value{kind: KindFloat32x2, fv: v}
}

// Kind returns the payload kind.
func (v Value) Kind() Kind {
	return v.kind
}

// Bool unpacks a boolean payload.
func (v Value) Bool() bool {
	v.expect(KindBool)
	return v.b
}

// Uint32 unpacks a 32-bit unsigned payload.
func (v Value) Uint32() uint32 {
	v.expect(KindUint32)
	return uint32(v.u)
}

// Uint64 unpacks a 64-bit unsigned payload.
func (v Value) Uint64() uint64 {
	v.expect(KindUint64)
	return v.u
}

// Float32 unpacks a float payload.
func (v Value) Float32() float32 {
	v.expect(KindFloat32)
	return v.f
}

// Text unpacks a string payload.
func (v Value) Text() string {
	v.expect(KindText)
	return v.s
}

// Uint32x2 unpacks an unsigned pair.
func (v Value) Uint32x2() [2]uint32 {
	v.expect(KindUint32x2)
	return [2]uint32{v.ua[0], v.ua[1]}
}

// Uint32x3 unpacks an unsigned triple.
func (v Value) Uint32x3() [3]uint32 {
	v.expect(KindUint32x3)
	return v.ua
}

// Float32x2 unpacks a float pair.
func (v Value) Float32x2() glm.Vec2 {
	v.expect(KindFloat32x2)
	return v.fv
}

func (v Value) expect(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("caps: %s value unpacked as %s", v.kind, k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindBool:
		return fmt.Sprintf("%t", v.b)
	case KindUint32, KindUint64:
		return fmt.Sprintf("%d", v.u)
	case KindFloat32:
		return fmt.Sprintf("%g", v.f)
	case KindText:
		return fmt.Sprintf("%q", v.s)
	case KindUint32x2:
		return fmt.Sprintf("[%d %d]", v.ua[0], v.ua[1])
	case KindUint32x3:
		return fmt.Sprintf("[%d %d %d]", v.ua[0], v.ua[1], v.ua[2])
	case KindFloat32x2:
		return fmt.Sprintf("[%g %g]", v.fv[0], v.fv[1])
	}
	return "<invalid>"
}
