// Package uniform binds reactive cells to named shader uniforms.
//
// A uniform is one of a closed set of kinds, modelled as the sealed Value
// interface. A Table follows the bound cells and hands only the uniforms that
// changed since the previous Flush to the caller's upload function.
package uniform

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind names the GLSL type of a uniform value.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindVec2
	KindVec3
	KindMat3
	KindMat4
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindVec2:
		return "vec2"
	case KindVec3:
		return "vec3"
	case KindMat3:
		return "mat3"
	case KindMat4:
		return "mat4"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a uniform value. The set of implementations is closed.
type Value interface {
	Kind() Kind
	isValue()
}

type (
	Int   int32
	Float float32
	Vec2  mgl32.Vec2
	Vec3  mgl32.Vec3
	Mat3  mgl32.Mat3
	Mat4  mgl32.Mat4
)

func (Int) Kind() Kind   { return KindInt }
func (Float) Kind() Kind { return KindFloat }
func (Vec2) Kind() Kind  { return KindVec2 }
func (Vec3) Kind() Kind  { return KindVec3 }
func (Mat3) Kind() Kind  { return KindMat3 }
func (Mat4) Kind() Kind  { return KindMat4 }

func (Int) isValue()   {}
func (Float) isValue() {}
func (Vec2) isValue()  {}
func (Vec3) isValue()  {}
func (Mat3) isValue()  {}
func (Mat4) isValue()  {}

// Components returns the value flattened to float32 in column-major order,
// the layout glUniform*fv expects. Int is converted.
func Components(v Value) []float32 {
	switch v := v.(type) {
	case Int:
		return []float32{float32(v)}
	case Float:
		return []float32{float32(v)}
	case Vec2:
		return v[:]
	case Vec3:
		return v[:]
	case Mat3:
		return v[:]
	case Mat4:
		return v[:]
	default:
		panic(fmt.Sprintf("uniform: unknown value %T", v))
	}
}
