// Package pose holds per-joint local transforms and the joint hierarchy
// that animation clips sample into.
package pose

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// Root marks a joint without a parent.
const Root = -1

// Pose is an indexed set of joint-local transforms plus a parent index per
// joint. A Pose is not safe for concurrent writes.
type Pose struct {
	joints  []math.Transform
	parents []int
}

// New returns a pose of n root joints at the identity transform.
func New(n int) *Pose {
	p := &Pose{}
	p.Resize(n)
	return p
}

// Len returns the number of joints.
func (p *Pose) Len() int {
	return len(p.joints)
}

// Resize changes the joint count. Added joints are identity roots.
func (p *Pose) Resize(n int) {
	old := len(p.joints)
	if n <= old {
		p.joints = p.joints[:n]
		p.parents = p.parents[:n]
		return
	}
	for i := old; i < n; i++ {
		p.joints = append(p.joints, math.IdentityTransform())
		p.parents = append(p.parents, Root)
	}
}

// Copy returns a deep copy.
func (p *Pose) Copy() *Pose {
	c := &Pose{}
	c.CopyFrom(p)
	return c
}

// CopyFrom overwrites p with other, reusing p's storage when possible.
func (p *Pose) CopyFrom(other *Pose) {
	p.joints = append(p.joints[:0], other.joints...)
	p.parents = append(p.parents[:0], other.parents...)
}

// LocalTransform returns the transform of joint i relative to its parent.
func (p *Pose) LocalTransform(i int) math.Transform {
	return p.joints[i]
}

// SetLocalTransform replaces the local transform of joint i.
func (p *Pose) SetLocalTransform(i int, t math.Transform) {
	p.joints[i] = t
}

// Parent returns the parent of joint i, or Root.
func (p *Pose) Parent(i int) int {
	return p.parents[i]
}

// SetParent sets the parent of joint i. Use Root for root joints.
func (p *Pose) SetParent(i, parent int) {
	p.parents[i] = parent
}

// GlobalTransform returns the model-space transform of joint i by walking
// up its parent chain. The walk stops after Len steps, so a malformed
// cyclic hierarchy cannot hang it.
func (p *Pose) GlobalTransform(i int) math.Transform {
	result := p.joints[i]
	for steps, parent := 0, p.parents[i]; parent >= 0 && parent < len(p.joints) && steps < len(p.joints); steps++ {
		result = math.Combine(p.joints[parent], result)
		parent = p.parents[parent]
	}
	return result
}

// MatrixPalette writes the model-space matrix of every joint into dst,
// growing it as needed, and returns it. Each matrix is the parent's matrix
// times the joint's local matrix, so shear from non-uniformly scaled
// ancestors is kept and the result does not depend on joint storage order.
// A joint whose parent chain loops back on itself is treated as a root at
// the point where the loop closes.
func (p *Pose) MatrixPalette(dst []mgl32.Mat4) []mgl32.Mat4 {
	n := len(p.joints)
	if cap(dst) < n {
		dst = make([]mgl32.Mat4, n)
	}
	dst = dst[:n]

	const (
		pending = iota
		visiting
		done
	)
	state := make([]uint8, n)
	chain := make([]int, 0, n)

	for i := 0; i < n; i++ {
		// Collect the ancestors of i that still need a matrix, child first.
		chain = chain[:0]
		for j := i; j >= 0 && j < n && state[j] == pending; j = p.parents[j] {
			state[j] = visiting
			chain = append(chain, j)
		}

		for k := len(chain) - 1; k >= 0; k-- {
			j := chain[k]
			local := p.joints[j].Mat4()
			if parent := p.parents[j]; parent >= 0 && parent < n && state[parent] == done {
				dst[j] = dst[parent].Mul4(local)
			} else {
				dst[j] = local
			}
			state[j] = done
		}
	}
	return dst
}

// Equal reports whether both poses hold identical transforms and parents.
func (p *Pose) Equal(other *Pose) bool {
	if len(p.joints) != len(other.joints) {
		return false
	}
	for i := range p.joints {
		if p.joints[i] != other.joints[i] || p.parents[i] != other.parents[i] {
			return false
		}
	}
	return true
}
