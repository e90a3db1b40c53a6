package math

import "github.com/go-gl/mathgl/mgl32"

// Transform is a translation, rotation and non-uniform scale applied in
// scale, rotate, translate order.
type Transform struct {
	Position Vec3
	Rotation Quat
	Scale    Vec3
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{
		Rotation: QuatIdentity(),
		Scale:    Vec3One(),
	}
}

// Combine returns the transform that applies child and then parent.
func Combine(parent, child Transform) Transform {
	return Transform{
		Position: parent.Rotation.Rotate(parent.Scale.Mul(child.Position)).Add(parent.Position),
		Rotation: parent.Rotation.Mul(child.Rotation),
		Scale:    parent.Scale.Mul(child.Scale),
	}
}

// Inverse returns the inverse transform. It is exact for uniform scale;
// with non-uniform scale the result only approximates the inverse, since a
// skewed inverse cannot be expressed as TRS.
func (t Transform) Inverse() Transform {
	invRot := t.Rotation.Inverse()
	invScale := Vec3{invComponent(t.Scale.X), invComponent(t.Scale.Y), invComponent(t.Scale.Z)}
	return Transform{
		Position: invRot.Rotate(invScale.Mul(t.Position.Scale(-1))),
		Rotation: invRot,
		Scale:    invScale,
	}
}

func invComponent(f float32) float32 {
	if f > -0.000001 && f < 0.000001 {
		return 0
	}
	return 1 / f
}

// TransformPoint applies scale, rotation and translation to p.
func (t Transform) TransformPoint(p Vec3) Vec3 {
	return t.Rotation.Rotate(t.Scale.Mul(p)).Add(t.Position)
}

// TransformVector applies scale and rotation to v, ignoring translation.
func (t Transform) TransformVector(v Vec3) Vec3 {
	return t.Rotation.Rotate(t.Scale.Mul(v))
}

// Mat4 returns the column-major matrix T * R * S.
func (t Transform) Mat4() mgl32.Mat4 {
	r := t.Rotation
	rot := mgl32.Quat{W: r.W, V: mgl32.Vec3{r.X, r.Y, r.Z}}.Normalize()
	return mgl32.Translate3D(t.Position.X, t.Position.Y, t.Position.Z).
		Mul4(rot.Mat4()).
		Mul4(mgl32.Scale3D(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// TransformFromMat4 decomposes an affine matrix without shear into TRS.
// A mirrored matrix (negative determinant) comes back with a negative X
// scale and a proper rotation.
func TransformFromMat4(m mgl32.Mat4) Transform {
	pos := m.Col(3).Vec3()
	axes := [3]mgl32.Vec3{m.Col(0).Vec3(), m.Col(1).Vec3(), m.Col(2).Vec3()}

	var scale [3]float32
	for i, axis := range axes {
		scale[i] = axis.Len()
		if scale[i] > 0.000001 {
			axes[i] = axis.Mul(1 / scale[i])
		}
	}
	if m.Mat3().Det() < 0 {
		scale[0] = -scale[0]
		axes[0] = axes[0].Mul(-1)
	}

	rm := mgl32.Ident4()
	for i, axis := range axes {
		rm.SetCol(i, axis.Vec4(0))
	}
	q := mgl32.Mat4ToQuat(rm).Normalize()

	return Transform{
		Position: Vec3{pos[0], pos[1], pos[2]},
		Rotation: Quat{X: q.V[0], Y: q.V[1], Z: q.V[2], W: q.W},
		Scale:    Vec3{scale[0], scale[1], scale[2]},
	}
}
