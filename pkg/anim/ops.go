package anim

import "github.com/Faultbox/midgard-anim/pkg/math"

// ValueOps is the per-type policy a Track uses to turn raw keyframe
// components of type V into sampled values of type T.
//
// Only rotations need non-trivial Interpolate, AdjustHermiteResult and
// Neighborhood behaviour; scalar and vector policies are plain arithmetic.
type ValueOps[T any, V any] interface {
	// Cast converts a keyframe value. Rotation values are renormalized.
	Cast(v V) T
	// Tangent converts a keyframe tangent without any normalization.
	Tangent(v V) T
	// Pack copies the leading components of src into a keyframe array.
	Pack(src []float32) V
	// Components returns N, the arity of V.
	Components() int
	// Identity is the neutral value returned for degenerate tracks.
	Identity() T
	Interpolate(a, b T, t float32) T
	AdjustHermiteResult(v T) T
	Neighborhood(a T, b *T)
	Add(a, b T) T
	Scale(v T, s float32) T
}

type scalarOps struct{}

func (scalarOps) Cast(v [1]float32) float32 { return v[0] }
func (scalarOps) Tangent(v [1]float32) float32 { return v[0] }
func (scalarOps) Components() int { return 1 }
func (scalarOps) Identity() float32 { return 0 }

func (scalarOps) Pack(src []float32) [1]float32 {
	var v [1]float32
	copy(v[:], src)
	return v
}

func (scalarOps) Interpolate(a, b, t float32) float32 {
	return a*(1-t) + b*t
}

func (scalarOps) AdjustHermiteResult(v float32) float32 { return v }
func (scalarOps) Neighborhood(a float32, b *float32) {}
func (scalarOps) Add(a, b float32) float32 { return a + b }
func (scalarOps) Scale(v float32, s float32) float32 { return v * s }

type vectorOps struct{}

func (vectorOps) Cast(v [3]float32) math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }
func (vectorOps) Tangent(v [3]float32) math.Vec3 { return math.Vec3{X: v[0], Y: v[1], Z: v[2]} }
func (vectorOps) Components() int { return 3 }
func (vectorOps) Identity() math.Vec3 { return math.Vec3{} }

func (vectorOps) Pack(src []float32) [3]float32 {
	var v [3]float32
	copy(v[:], src)
	return v
}

func (vectorOps) Interpolate(a, b math.Vec3, t float32) math.Vec3 {
	return a.Lerp(b, t)
}

func (vectorOps) AdjustHermiteResult(v math.Vec3) math.Vec3 { return v }
func (vectorOps) Neighborhood(a math.Vec3, b *math.Vec3) {}
func (vectorOps) Add(a, b math.Vec3) math.Vec3 { return a.Add(b) }
func (vectorOps) Scale(v math.Vec3, s float32) math.Vec3 { return v.Scale(s) }

type quatOps struct{}

func (quatOps) Cast(v [4]float32) math.Quat {
	return math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}.Normalize()
}

func (quatOps) Tangent(v [4]float32) math.Quat {
	return math.Quat{X: v[0], Y: v[1], Z: v[2], W: v[3]}
}

func (quatOps) Components() int { return 4 }
func (quatOps) Identity() math.Quat { return math.QuatIdentity() }

func (quatOps) Pack(src []float32) [4]float32 {
	var v [4]float32
	copy(v[:], src)
	return v
}

// Interpolate is a shortest-path nlerp, not a slerp.
func (quatOps) Interpolate(a, b math.Quat, t float32) math.Quat {
	if a.Dot(b) < 0 {
		b = b.Neg()
	}
	return a.Nlerp(b, t)
}

func (quatOps) AdjustHermiteResult(v math.Quat) math.Quat {
	return v.Normalize()
}

// Neighborhood moves b into the hemisphere of a. Hermite sums its four
// terms independently, so the flip has to happen before summation.
func (quatOps) Neighborhood(a math.Quat, b *math.Quat) {
	if a.Dot(*b) < 0 {
		*b = b.Neg()
	}
}

func (quatOps) Add(a, b math.Quat) math.Quat { return a.Add(b) }
func (quatOps) Scale(v math.Quat, s float32) math.Quat { return v.Scale(s) }
