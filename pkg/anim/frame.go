// Package anim evaluates keyframed animation curves and samples them into
// joint-local poses.
package anim

// Frame is one keyframe of a curve with N components. V is the raw
// component array: [1]float32, [3]float32 or [4]float32.
//
// In and Out are Hermite tangents. They are only read by Cubic tracks and
// are never normalized, even on rotation tracks.
type Frame[V any] struct {
	Time  float32
	Value V
	In    V
	Out   V
}

// Keyframe types for the three track kinds.
type (
	ScalarFrame     = Frame[[1]float32]
	VectorFrame     = Frame[[3]float32]
	QuaternionFrame = Frame[[4]float32]
)
