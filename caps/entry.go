// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package caps describes device capabilities as data. Every capability is a
// row in one of three tables (features, properties, queue properties) that
// knows how to write the capability into a Chain, read it back, and decide
// whether an available value satisfies a required one.
package caps

import (
	"fmt"

	glm "github.com/go-gl/mathgl/mgl32"
)

// Relation is the rule a Check applies between a required and an available value.
type Relation uint8

// Relations between required and available values
const (
	// Equal needs the available value to be identical.
	Equal Relation = iota + 1
	// AtMost needs required <= available.
	AtMost
	// Superset needs every required bit to be set in available.
	Superset
	// Implies needs available to be true whenever required is true.
	Implies
)

func (r Relation) String() string {
	switch r {
	case Equal:
		return "equal"
	case AtMost:
		return "at most"
	case Superset:
		return "superset"
	case Implies:
		return "implies"
	}
	return fmt.Sprintf("relation(%d)", r)
}

// Entry is one row of a capability table.
type Entry struct {
	Name     string
	Kind     Kind
	Relation Relation

	// Symbols optionally names the values of enum and flag capabilities.
	Symbols map[string]uint32

	Set   func(c *Chain, v Value)
	Get   func(c *Chain) Value
	Check func(required, available Value) bool
}

// Satisfied reads the capability from c and checks it against required.
func (e Entry) Satisfied(required Value, c *Chain) bool {
	return e.Check(required, e.Get(c))
}

func boolField(name string, field func(*Chain) *bool) Entry {
	return Entry{
		Name:     name,
		Kind:     KindBool,
		Relation: Implies,
		Set:      func(c *Chain, v Value) { *field(c) = v.Bool() },
		Get:      func(c *Chain) Value { return Bool(*field(c)) },
		Check: func(required, available Value) bool {
			return !required.Bool() || available.Bool()
		},
	}
}

func uint32Field(name string, rel Relation, field func(*Chain) *uint32) Entry {
	cmp := compareUint32(rel)
	return Entry{
		Name:     name,
		Kind:     KindUint32,
		Relation: rel,
		Set:      func(c *Chain, v Value) { *field(c) = v.Uint32() },
		Get:      func(c *Chain) Value { return Uint32(*field(c)) },
		Check: func(required, available Value) bool {
			return cmp(required.Uint32(), available.Uint32())
		},
	}
}

func symbolField(name string, rel Relation, symbols map[string]uint32, field func(*Chain) *uint32) Entry {
	e := uint32Field(name, rel, field)
	e.Symbols = symbols
	return e
}

func uint64Field(name string, rel Relation, field func(*Chain) *uint64) Entry {
	cmp := compareUint64(rel)
	return Entry{
		Name:     name,
		Kind:     KindUint64,
		Relation: rel,
		Set:      func(c *Chain, v Value) { *field(c) = v.Uint64() },
		Get:      func(c *Chain) Value { return Uint64(*field(c)) },
		Check: func(required, available Value) bool {
			return cmp(required.Uint64(), available.Uint64())
		},
	}
}

func float32Field(name string, rel Relation, field func(*Chain) *float32) Entry {
	cmp := compareFloat32(rel)
	return Entry{
		Name:     name,
		Kind:     KindFloat32,
		Relation: rel,
		Set:      func(c *Chain, v Value) { *field(c) = v.Float32() },
		Get:      func(c *Chain) Value { return Float32(*field(c)) },
		Check: func(required, available Value) bool {
			return cmp(required.Float32(), available.Float32())
		},
	}
}

func textField(name string, field func(*Chain) *string) Entry {
	return Entry{
		Name:     name,
		Kind:     KindText,
		Relation: Equal,
		Set:      func(c *Chain, v Value) { *field(c) = v.Text() },
		Get:      func(c *Chain) Value { return Text(*field(c)) },
		Check: func(required, available Value) bool {
			return required.Text() == available.Text()
		},
	}
}

func uint32x2Field(name string, rel Relation, field func(*Chain) *[2]uint32) Entry {
	cmp := compareUint32(rel)
	return Entry{
		Name:     name,
		Kind:     KindUint32x2,
		Relation: rel,
		Set:      func(c *Chain, v Value) { *field(c) = v.Uint32x2() },
		Get: func(c *Chain) Value {
			f := field(c)
			return Uint32x2(f[0], f[1])
		},
		Check: func(required, available Value) bool {
			r, a := required.Uint32x2(), available.Uint32x2()
			return cmp(r[0], a[0]) && cmp(r[1], a[1])
		},
	}
}

func uint32x3Field(name string, rel Relation, field func(*Chain) *[3]uint32) Entry {
	cmp := compareUint32(rel)
	return Entry{
		Name:     name,
		Kind:     KindUint32x3,
		Relation: rel,
		Set:      func(c *Chain, v Value) { *field(c) = v.Uint32x3() },
		Get: func(c *Chain) Value {
			f := field(c)
			return Uint32x3(f[0], f[1], f[2])
		},
		Check: func(required, available Value) bool {
			r, a := required.Uint32x3(), available.Uint32x3()
			for i := range r {
				if !cmp(r[i], a[i]) {
					return false
				}
			}
			return true
		},
	}
}

func float32x2Field(name string, rel Relation, field func(*Chain) *glm.Vec2) Entry {
	cmp := compareFloat32(rel)
	return Entry{
		Name:     name,
		Kind:     KindFloat32x2,
		Relation: rel,
		Set:      func(c *Chain, v Value) { *field(c) = v.Float32x2() },
		Get:      func(c *Chain) Value { return Float32x2(*field(c)) },
		Check: func(required, available Value) bool {
			r, a := required.Float32x2(), available.Float32x2()
			return cmp(r[0], a[0]) && cmp(r[1], a[1])
		},
	}
}

func compareUint32(rel Relation) func(r, a uint32) bool {
	switch rel {
	case Equal:
		return func(r, a uint32) bool { return r == a }
	case AtMost:
		return func(r, a uint32) bool { return r <= a }
	case Superset:
		return func(r, a uint32) bool { return a&r == r }
	}
	panic(fmt.Sprintf("caps: %s is not a uint32 relation", rel))
}

func compareUint64(rel Relation) func(r, a uint64) bool {
	switch rel {
	case Equal:
		return func(r, a uint64) bool { return r == a }
	case AtMost:
		return func(r, a uint64) bool { return r <= a }
	}
	panic(fmt.Sprintf("caps: %s is not a uint64 relation", rel))
}

func compareFloat32(rel Relation) func(r, a float32) bool {
	switch rel {
	case Equal:
		return func(r, a float32) bool { return r == a }
	case AtMost:
		return func(r, a float32) bool { return r <= a }
	}
	panic(fmt.Sprintf("caps: %s is not a float32 relation", rel))
}
