package pose

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	amath "github.com/Faultbox/midgard-anim/pkg/math"
)

func near(a, b amath.Vec3) bool {
	const eps = 0.0001
	return math.Abs(float64(a.X-b.X)) <= eps &&
		math.Abs(float64(a.Y-b.Y)) <= eps &&
		math.Abs(float64(a.Z-b.Z)) <= eps
}

func translation(x, y, z float32) amath.Transform {
	t := amath.IdentityTransform()
	t.Position = amath.Vec3{X: x, Y: y, Z: z}
	return t
}

// chain builds root -> 1 -> 2, each offset one unit along X.
func chain() *Pose {
	p := New(3)
	for i := 0; i < 3; i++ {
		p.SetLocalTransform(i, translation(1, 0, 0))
	}
	p.SetParent(1, 0)
	p.SetParent(2, 1)
	return p
}

func TestNew(t *testing.T) {
	p := New(4)
	if p.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", p.Len())
	}
	for i := 0; i < p.Len(); i++ {
		if p.Parent(i) != Root {
			t.Errorf("joint %d parent = %d, want Root", i, p.Parent(i))
		}
		if p.LocalTransform(i) != amath.IdentityTransform() {
			t.Errorf("joint %d should start at identity", i)
		}
	}
}

func TestGlobalTransform(t *testing.T) {
	p := chain()

	tests := []struct {
		joint int
		want  amath.Vec3
	}{
		{0, amath.Vec3{X: 1}},
		{1, amath.Vec3{X: 2}},
		{2, amath.Vec3{X: 3}},
	}
	for _, tt := range tests {
		if got := p.GlobalTransform(tt.joint).Position; !near(got, tt.want) {
			t.Errorf("GlobalTransform(%d).Position = %v, want %v", tt.joint, got, tt.want)
		}
	}
}

func TestGlobalTransformRotatedParent(t *testing.T) {
	p := chain()
	root := p.LocalTransform(0)
	root.Rotation = amath.QuatFromAxisAngle(amath.Vec3{Z: 1}, float32(math.Pi/2))
	p.SetLocalTransform(0, root)

	// Children now extend along +Y from the root
	if got := p.GlobalTransform(2).Position; !near(got, amath.Vec3{X: 1, Y: 2}) {
		t.Errorf("GlobalTransform(2).Position = %v, want (1,2,0)", got)
	}
}

func TestGlobalTransformCycle(t *testing.T) {
	p := chain()
	p.SetParent(0, 2)

	// Must terminate
	_ = p.GlobalTransform(2)
}

func TestMatrixPalette(t *testing.T) {
	p := chain()
	p.Resize(4)
	p.SetLocalTransform(3, translation(0, 5, 0))

	palette := p.MatrixPalette(nil)
	if len(palette) != 4 {
		t.Fatalf("palette length = %d, want 4", len(palette))
	}
	for i := range palette {
		want := p.GlobalTransform(i).Mat4()
		if !palette[i].ApproxEqualThreshold(want, 0.0001) {
			t.Errorf("palette[%d] = %v, want %v", i, palette[i], want)
		}
	}

	origin := mgl32.TransformCoordinate(mgl32.Vec3{}, palette[2])
	if !near(amath.Vec3{X: origin[0], Y: origin[1], Z: origin[2]}, amath.Vec3{X: 3}) {
		t.Errorf("joint 2 origin = %v, want (3,0,0)", origin)
	}

	// Storage is reused when large enough
	again := p.MatrixPalette(palette)
	if &again[0] != &palette[0] {
		t.Error("MatrixPalette should reuse dst when it has capacity")
	}
}

func TestMatrixPaletteStorageOrder(t *testing.T) {
	stretch := amath.IdentityTransform()
	stretch.Scale = amath.Vec3{X: 2, Y: 1, Z: 1}
	turn := amath.IdentityTransform()
	turn.Rotation = amath.QuatFromAxisAngle(amath.Vec3{Z: 1}, float32(math.Pi/4))

	// root, child, grandchild stored parent first
	forward := New(3)
	forward.SetLocalTransform(0, stretch)
	forward.SetLocalTransform(1, turn)
	forward.SetLocalTransform(2, turn)
	forward.SetParent(1, 0)
	forward.SetParent(2, 1)

	// the same hierarchy stored grandchild first
	reversed := New(3)
	reversed.SetLocalTransform(2, stretch)
	reversed.SetLocalTransform(1, turn)
	reversed.SetLocalTransform(0, turn)
	reversed.SetParent(1, 2)
	reversed.SetParent(0, 1)

	want := stretch.Mat4().Mul4(turn.Mat4()).Mul4(turn.Mat4())
	a := forward.MatrixPalette(nil)
	b := reversed.MatrixPalette(nil)

	if !a[2].ApproxEqualThreshold(want, 0.0001) {
		t.Errorf("parent-first grandchild = %v, want %v", a[2], want)
	}
	if !b[0].ApproxEqualThreshold(want, 0.0001) {
		t.Errorf("child-first grandchild = %v, want %v", b[0], want)
	}
	if !a[1].ApproxEqualThreshold(b[1], 0.0001) || !a[0].ApproxEqualThreshold(b[2], 0.0001) {
		t.Error("palette depends on joint storage order")
	}

	// Stretching a rotated frame shears it: the grandchild X axis stays unit length
	if x := want.Col(0).Vec3(); !mgl32.FloatEqualThreshold(x.Len(), 1, 0.0001) {
		t.Errorf("grandchild X axis = %v, want unit length", x)
	}
}

func TestMatrixPaletteCycle(t *testing.T) {
	p := New(3)
	p.SetLocalTransform(0, translation(1, 0, 0))
	p.SetLocalTransform(1, translation(0, 1, 0))
	p.SetParent(0, 1)
	p.SetParent(1, 0)
	p.SetParent(2, 1)

	palette := p.MatrixPalette(nil)
	if len(palette) != 3 {
		t.Fatalf("palette length = %d, want 3", len(palette))
	}
	// Joint 1 closes the loop when reached from 0, so it acts as a root
	if !palette[1].ApproxEqualThreshold(translation(0, 1, 0).Mat4(), 0.0001) {
		t.Errorf("palette[1] = %v, want its local matrix", palette[1])
	}
	if !palette[2].ApproxEqualThreshold(palette[1], 0.0001) {
		t.Errorf("palette[2] = %v, want parent matrix %v", palette[2], palette[1])
	}
}

func TestCopyIsDeep(t *testing.T) {
	p := chain()
	c := p.Copy()
	if !p.Equal(c) {
		t.Fatal("copy should equal source")
	}

	c.SetLocalTransform(1, translation(9, 9, 9))
	c.SetParent(2, Root)
	if p.Equal(c) {
		t.Error("modifying the copy changed the source")
	}
	if p.LocalTransform(1) != translation(1, 0, 0) || p.Parent(2) != 1 {
		t.Error("source pose was modified through its copy")
	}
}

func TestResizeShrink(t *testing.T) {
	p := chain()
	p.Resize(1)
	if p.Len() != 1 {
		t.Errorf("Len() = %d, want 1", p.Len())
	}
	p.Resize(2)
	if p.Parent(1) != Root || p.LocalTransform(1) != amath.IdentityTransform() {
		t.Error("regrown joint should be an identity root")
	}
}
