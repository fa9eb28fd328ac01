// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package caps_test

import (
	"testing"

	qt "github.com/frankban/quicktest"
	glm "github.com/go-gl/mathgl/mgl32"

	"github.com/devblok/devsel/caps"
)

func TestValueKinds(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		value caps.Value
		kind  caps.Kind
		text  string
	}{
		{caps.Bool(true), caps.KindBool, "true"},
		{caps.Uint32(7), caps.KindUint32, "7"},
		{caps.Uint64(1 << 40), caps.KindUint64, "1099511627776"},
		{caps.Float32(1.5), caps.KindFloat32, "1.5"},
		{caps.Text("llvmpipe"), caps.KindText, `"llvmpipe"`},
		{caps.Uint32x2(4096, 2048), caps.KindUint32x2, "[4096 2048]"},
		{caps.Uint32x3(1, 2, 3), caps.KindUint32x3, "[1 2 3]"},
		{caps.Float32x2(glm.Vec2{-1, 1}), caps.KindFloat32x2, "[-1 1]"},
		{caps.Value{}, caps.KindInvalid, "<invalid>"},
	}

	for _, test := range tests {
		c.Check(test.value.Kind(), qt.Equals, test.kind)
		c.Check(test.value.String(), qt.Equals, test.text)
	}
}

func TestValueUnpack(t *testing.T) {
	c := qt.New(t)

	c.Assert(caps.Bool(true).Bool(), qt.IsTrue)
	c.Assert(caps.Uint32(42).Uint32(), qt.Equals, uint32(42))
	c.Assert(caps.Uint64(42).Uint64(), qt.Equals, uint64(42))
	c.Assert(caps.Float32(0.25).Float32(), qt.Equals, float32(0.25))
	c.Assert(caps.Text("a").Text(), qt.Equals, "a")
	c.Assert(caps.Uint32x2(1, 2).Uint32x2(), qt.Equals, [2]uint32{1, 2})
	c.Assert(caps.Uint32x3(1, 2, 3).Uint32x3(), qt.Equals, [3]uint32{1, 2, 3})
	c.Assert(caps.Float32x2(glm.Vec2{1, 2}).Float32x2(), qt.Equals, glm.Vec2{1, 2})
}

func TestValueWrongKindPanics(t *testing.T) {
	c := qt.New(t)

	c.Assert(func() { caps.Uint32(1).Bool() }, qt.PanicMatches, `caps: uint32 value unpacked as bool`)
	c.Assert(func() { caps.Uint32(1).Uint64() }, qt.PanicMatches, `caps: uint32 value unpacked as uint64`)
	c.Assert(func() { caps.Uint32x2(1, 2).Uint32x3() }, qt.PanicMatches, `caps: uint32x2 value unpacked as uint32x3`)
	c.Assert(func() { caps.Value{}.Text() }, qt.PanicMatches, `caps: invalid value unpacked as text`)
}

func TestValueComparable(t *testing.T) {
	c := qt.New(t)

	c.Assert(caps.Uint32x2(1, 2) == caps.Uint32x2(1, 2), qt.IsTrue)
	c.Assert(caps.Uint32(1) == caps.Uint64(1), qt.IsFalse)
	c.Assert(caps.Text("x") == caps.Text("y"), qt.IsFalse)
}
