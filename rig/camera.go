// Package rig wires the usual scene inputs (camera placement, light
// parameters) to the matrices and coefficients a shader consumes.
package rig

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/scenegraph-go/rx"
)

// Camera holds leaf inputs and the matrices derived from them.
// Leaves are written by input handling; derived cells follow.
type Camera struct {
	Position *rx.Assign[mgl32.Vec3]
	Target   *rx.Assign[mgl32.Vec3]
	Up       *rx.Assign[mgl32.Vec3]

	// vertical field of view, in degrees
	Fov    *rx.Assign[float32]
	Aspect *rx.Assign[float32]
	Near   *rx.Assign[float32]
	Far    *rx.Assign[float32]

	View           *rx.Reactive[mgl32.Mat4]
	Projection     *rx.Reactive[mgl32.Mat4]
	ViewProjection *rx.Reactive[mgl32.Mat4]
}

type cameraConfig struct {
	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	fov, aspect, near, far float32
}

// CameraOption configures NewCamera.
type CameraOption func(*cameraConfig)

// WithPosition sets the initial eye position.
func WithPosition(p mgl32.Vec3) CameraOption {
	return func(c *cameraConfig) { c.position = p }
}

// WithTarget sets the initial look-at point.
func WithTarget(t mgl32.Vec3) CameraOption {
	return func(c *cameraConfig) { c.target = t }
}

// WithUp sets the initial up vector.
func WithUp(up mgl32.Vec3) CameraOption {
	return func(c *cameraConfig) { c.up = up }
}

// WithPerspective sets the field of view in degrees, the aspect ratio and the clip planes.
func WithPerspective(fov, aspect, near, far float32) CameraOption {
	return func(c *cameraConfig) {
		c.fov, c.aspect, c.near, c.far = fov, aspect, near, far
	}
}

// NewCamera defaults to a camera at (0, 0, 3) looking at the origin,
// 45° field of view, 4:3 aspect, planes at 0.1 and 100.
func NewCamera(opts ...CameraOption) *Camera {
	cfg := cameraConfig{
		position: mgl32.Vec3{0, 0, 3},
		up:       mgl32.Vec3{0, 1, 0},
		fov:      45,
		aspect:   4.0 / 3.0,
		near:     0.1,
		far:      100,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Camera{
		Position: rx.NewAssign(cfg.position),
		Target:   rx.NewAssign(cfg.target),
		Up:       rx.NewAssign(cfg.up),
		Fov:      rx.NewAssign(cfg.fov),
		Aspect:   rx.NewAssign(cfg.aspect),
		Near:     rx.NewAssign(cfg.near),
		Far:      rx.NewAssign(cfg.far),
	}

	c.View = rx.Derive3(mgl32.LookAtV, c.Position, c.Target, c.Up)
	c.Projection = rx.NewReactive(func() mgl32.Mat4 {
		return mgl32.Perspective(mgl32.DegToRad(c.Fov.Get()), c.Aspect.Get(), c.Near.Get(), c.Far.Get())
	}, c.Fov, c.Aspect, c.Near, c.Far)
	c.ViewProjection = rx.Derive2(mgl32.Mat4.Mul4, c.Projection, c.View)

	return c
}

// Orbit places the camera on a sphere around its target.
// yaw and pitch are in radians, yaw 0 looks down -Z.
func (c *Camera) Orbit(yaw, pitch, radius float32) {
	offset := mgl32.Vec3{
		math32.Cos(pitch) * math32.Sin(yaw),
		math32.Sin(pitch),
		math32.Cos(pitch) * math32.Cos(yaw),
	}

	c.Position.Set(c.Target.Get().Add(offset.Mul(radius)))
}

// Move translates position and target together.
func (c *Camera) Move(delta mgl32.Vec3) {
	c.Target.Set(c.Target.Get().Add(delta))
	c.Position.Set(c.Position.Get().Add(delta))
}

// BindView keeps target equal to this camera's view matrix, so a cell owned
// by another scene can follow this camera.
func (c *Camera) BindView(target rx.Target[mgl32.Mat4]) *rx.Binder[mgl32.Mat4] {
	return rx.Bind1(target, func(m mgl32.Mat4) mgl32.Mat4 { return m }, c.View)
}

// Close stops every derived matrix from following the leaves.
func (c *Camera) Close() {
	c.ViewProjection.Close()
	c.Projection.Close()
	c.View.Close()
}

// NormalMatrix follows model with the inverse transpose of its upper 3x3,
// for transforming normals.
func NormalMatrix(model rx.Value[mgl32.Mat4]) *rx.Reactive[mgl32.Mat3] {
	return rx.Derive1(func(m mgl32.Mat4) mgl32.Mat3 {
		return m.Mat3().Inv().Transpose()
	}, model)
}
