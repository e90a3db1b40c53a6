// Package gltfimport converts glTF 2.0 scenes into rest poses and animation
// clips. Every node becomes a joint whose id is the node index.
package gltfimport

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"

	"github.com/Faultbox/midgard-anim/pkg/math"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

// UnnamedNode is reported by JointNames for nodes without a name.
const UnnamedNode = "EMPTY NODE"

// Load opens a .gltf or .glb file with its buffers.
func Load(path string) (*gltf.Document, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open gltf %q", path)
	}
	return doc, nil
}

// RestPose builds a pose from the node transforms and child lists.
func RestPose(doc *gltf.Document) *pose.Pose {
	p := pose.New(len(doc.Nodes))
	for i, node := range doc.Nodes {
		p.SetLocalTransform(i, localTransform(node))
		for _, child := range node.Children {
			if c := int(child); c >= 0 && c < len(doc.Nodes) {
				p.SetParent(c, i)
			}
		}
	}
	return p
}

// JointNames returns the node names indexed by joint id.
func JointNames(doc *gltf.Document) []string {
	names := make([]string, len(doc.Nodes))
	for i, node := range doc.Nodes {
		names[i] = node.Name
		if names[i] == "" {
			names[i] = UnnamedNode
		}
	}
	return names
}

var identityMatrix = [16]float32{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}

// localTransform prefers an explicit matrix over the TRS properties.
func localTransform(node *gltf.Node) math.Transform {
	if node.Matrix != identityMatrix && node.Matrix != ([16]float32{}) {
		return math.TransformFromMat4(mgl32.Mat4(node.Matrix))
	}
	t, r, s := node.Translation, node.Rotation, node.Scale
	return math.Transform{
		Position: math.Vec3{X: t[0], Y: t[1], Z: t[2]},
		Rotation: math.Quat{X: r[0], Y: r[1], Z: r[2], W: r[3]}.Normalize(),
		Scale:    math.Vec3{X: s[0], Y: s[1], Z: s[2]},
	}
}

// indexOf unwraps a glTF index that may be optional.
func indexOf[I uint32 | *uint32](i I) (int, bool) {
	switch v := any(i).(type) {
	case uint32:
		return int(v), true
	case *uint32:
		if v == nil {
			return 0, false
		}
		return int(*v), true
	}
	return 0, false
}

func clipName(a *gltf.Animation, i int) string {
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("animation_%d", i)
}
