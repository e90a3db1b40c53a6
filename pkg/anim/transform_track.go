package anim

import "github.com/Faultbox/midgard-anim/pkg/math"

// TransformTrack animates the local transform of one joint with independent
// position, rotation and scale curves. A curve with fewer than two
// keyframes is treated as not authored and never contributes.
type TransformTrack struct {
	id       int
	Position VectorTrack
	Rotation QuaternionTrack
	Scale    VectorTrack
}

// NewTransformTrack returns an empty track bound to joint id.
func NewTransformTrack(id int) *TransformTrack {
	return &TransformTrack{id: id}
}

// ID returns the joint this track animates.
func (tt *TransformTrack) ID() int {
	return tt.id
}

// IsValid reports whether any of the three curves is animated.
func (tt *TransformTrack) IsValid() bool {
	return tt.Position.IsAnimated() || tt.Rotation.IsAnimated() || tt.Scale.IsAnimated()
}

// StartTime returns the earliest start time of the animated curves.
// The result is meaningless when IsValid is false.
func (tt *TransformTrack) StartTime() float32 {
	var result float32
	set := false
	for _, r := range tt.ranges() {
		if r.ok && (!set || r.start < result) {
			result = r.start
			set = true
		}
	}
	return result
}

// EndTime returns the latest end time of the animated curves.
// The result is meaningless when IsValid is false.
func (tt *TransformTrack) EndTime() float32 {
	var result float32
	set := false
	for _, r := range tt.ranges() {
		if r.ok && (!set || r.end > result) {
			result = r.end
			set = true
		}
	}
	return result
}

type curveRange struct {
	start, end float32
	ok         bool
}

func (tt *TransformTrack) ranges() [3]curveRange {
	var out [3]curveRange
	if tt.Position.IsAnimated() {
		out[0] = curveRange{tt.Position.StartTime(), tt.Position.EndTime(), true}
	}
	if tt.Rotation.IsAnimated() {
		out[1] = curveRange{tt.Rotation.StartTime(), tt.Rotation.EndTime(), true}
	}
	if tt.Scale.IsAnimated() {
		out[2] = curveRange{tt.Scale.StartTime(), tt.Scale.EndTime(), true}
	}
	return out
}

// Sample evaluates the animated curves at time and writes them over ref.
// Channels without animation keep the values from ref, usually the rest pose.
func (tt *TransformTrack) Sample(ref math.Transform, time float32, looping bool) math.Transform {
	result := ref
	if tt.Position.IsAnimated() {
		result.Position = tt.Position.Sample(time, looping)
	}
	if tt.Rotation.IsAnimated() {
		result.Rotation = tt.Rotation.Sample(time, looping)
	}
	if tt.Scale.IsAnimated() {
		result.Scale = tt.Scale.Sample(time, looping)
	}
	return result
}
