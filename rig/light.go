package rig

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/scenegraph-go/rx"
)

// minRange keeps the attenuation finite for a zero or negative range.
const minRange = 1e-3

// PointLight is a light whose color and range are edited from a UI panel.
// Edits land in dirty cells and are published once per frame by Check.
type PointLight struct {
	Position *rx.Assign[mgl32.Vec3]
	Color    *rx.Dirty[mgl32.Vec3]
	Range    *rx.Dirty[float32]

	// constant, linear and quadratic terms
	Attenuation *rx.Reactive[mgl32.Vec3]

	Ambient *rx.Reactive[mgl32.Vec3]
	Diffuse *rx.Reactive[mgl32.Vec3]
}

// NewPointLight creates a light whose attenuation follows lightRange.
func NewPointLight(position, color mgl32.Vec3, lightRange float32) *PointLight {
	l := &PointLight{
		Position: rx.NewAssign(position),
		Color:    rx.NewDirty(color),
		Range:    rx.NewDirty(lightRange),
	}

	l.Attenuation = rx.Derive1(Attenuation, l.Range)
	l.Ambient = rx.Derive1(func(c mgl32.Vec3) mgl32.Vec3 { return c.Mul(0.1) }, l.Color)
	l.Diffuse = rx.Derive1(func(c mgl32.Vec3) mgl32.Vec3 { return c.Mul(0.8) }, l.Color)

	return l
}

// Check publishes pending UI edits. It reports whether anything changed.
func (l *PointLight) Check() bool {
	color := l.Color.Check()
	lightRange := l.Range.Check()
	return color || lightRange
}

// Intensity is the attenuation factor at distance d from the light.
func (l *PointLight) Intensity(d float32) float32 {
	k := l.Attenuation.Get()
	return 1 / (k[0] + k[1]*d + k[2]*d*d)
}

// IntensityAt is Intensity at the distance to p.
func (l *PointLight) IntensityAt(p mgl32.Vec3) float32 {
	return l.Intensity(p.Sub(l.Position.Get()).Len())
}

// Close stops the derived cells from following the leaves.
func (l *PointLight) Close() {
	l.Diffuse.Close()
	l.Ambient.Close()
	l.Attenuation.Close()
}

// Attenuation returns constant, linear and quadratic coefficients that fade
// a point light out over lightRange units: linear 4.5/r, quadratic 75/r².
func Attenuation(lightRange float32) mgl32.Vec3 {
	r := math32.Max(lightRange, minRange)
	return mgl32.Vec3{1, 4.5 / r, 75 / (r * r)}
}
