package anim

import (
	"errors"
	"fmt"
	gomath "math"
	"sort"

	"github.com/Faultbox/midgard-anim/pkg/math"
)

// ErrKeyframeLayout is returned when flat keyframe data does not match the
// track arity or is not sorted by time.
var ErrKeyframeLayout = errors.New("invalid keyframe layout")

// Track is a keyframed curve producing values of type T from keyframes
// with raw components V. Use the ScalarTrack, VectorTrack and
// QuaternionTrack instantiations; their zero values are empty Linear tracks.
//
// Frames must be sorted by non-decreasing time. A track with fewer than two
// frames is not animated and samples to the neutral value.
type Track[T any, V any, O ValueOps[T, V]] struct {
	frames        []Frame[V]
	interpolation Interpolation
	ops           O
}

// Track instantiations for scalar, vector and rotation curves.
type (
	ScalarTrack     = Track[float32, [1]float32, scalarOps]
	VectorTrack     = Track[math.Vec3, [3]float32, vectorOps]
	QuaternionTrack = Track[math.Quat, [4]float32, quatOps]
)

// Resize sets the number of keyframes. New keyframes are zeroed.
func (t *Track[T, V, O]) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(t.frames) {
		clear(t.frames[n:])
		t.frames = t.frames[:n]
		return
	}
	t.frames = append(t.frames, make([]Frame[V], n-len(t.frames))...)
}

// Len returns the number of keyframes.
func (t *Track[T, V, O]) Len() int {
	return len(t.frames)
}

// Frame returns the i-th keyframe for in-place editing during import.
func (t *Track[T, V, O]) Frame(i int) *Frame[V] {
	return &t.frames[i]
}

// Frames returns the keyframes. The slice is shared with the track and
// must not be modified while the track is being sampled.
func (t *Track[T, V, O]) Frames() []Frame[V] {
	return t.frames
}

// Interpolation returns the interpolation mode.
func (t *Track[T, V, O]) Interpolation() Interpolation {
	return t.interpolation
}

// SetInterpolation sets the interpolation mode.
func (t *Track[T, V, O]) SetInterpolation(interp Interpolation) {
	t.interpolation = interp
}

// IsAnimated reports whether the track has more than one keyframe.
func (t *Track[T, V, O]) IsAnimated() bool {
	return len(t.frames) > 1
}

// StartTime returns the time of the first keyframe.
// The track must not be empty.
func (t *Track[T, V, O]) StartTime() float32 {
	return t.frames[0].Time
}

// EndTime returns the time of the last keyframe.
// The track must not be empty.
func (t *Track[T, V, O]) EndTime() float32 {
	return t.frames[len(t.frames)-1].Time
}

// Load replaces the keyframes from flat arrays. values holds N components
// per keyframe, or 3N for Cubic in in-tangent, value, out-tangent order.
func (t *Track[T, V, O]) Load(interp Interpolation, times, values []float32) error {
	n := t.ops.Components()
	stride := n
	if interp == Cubic {
		stride = 3 * n
	}
	if len(values) != len(times)*stride {
		return fmt.Errorf("%w: %d keyframes of %s data need %d values, got %d",
			ErrKeyframeLayout, len(times), interp, len(times)*stride, len(values))
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			return fmt.Errorf("%w: keyframe %d at %v precedes keyframe %d at %v",
				ErrKeyframeLayout, i, times[i], i-1, times[i-1])
		}
	}

	t.interpolation = interp
	t.Resize(len(times))
	for i, time := range times {
		base := i * stride
		frame := &t.frames[i]
		frame.Time = time
		if interp == Cubic {
			frame.In = t.ops.Pack(values[base:])
			frame.Value = t.ops.Pack(values[base+n:])
			frame.Out = t.ops.Pack(values[base+2*n:])
			continue
		}
		frame.Value = t.ops.Pack(values[base:])
	}
	return nil
}

// Sample evaluates the track at time. Looping tracks wrap time into
// [start, end); others clamp it to [start, end].
//
// Sample panics if the interpolation mode is not one of Constant, Linear
// or Cubic.
func (t *Track[T, V, O]) Sample(time float32, looping bool) T {
	switch t.interpolation {
	case Constant:
		return t.sampleConstant(time, looping)
	case Linear:
		return t.sampleLinear(time, looping)
	case Cubic:
		return t.sampleCubic(time, looping)
	}
	panic(fmt.Sprintf("anim: unsupported interpolation %v", t.interpolation))
}

// AdjustTimeToFitTrack maps time into the track's own [start, end] range.
// It returns 0 for tracks that are not animated or have zero duration.
func (t *Track[T, V, O]) AdjustTimeToFitTrack(time float32, looping bool) float32 {
	if len(t.frames) <= 1 {
		return 0
	}
	return fitRange(time, t.StartTime(), t.EndTime(), looping)
}

// FrameIndex returns the index i of the segment containing time, such that
// frames[i].Time <= time < frames[i+1].Time, clamped to [0, Len()-2].
// It returns -1 for tracks that are not animated.
func (t *Track[T, V, O]) FrameIndex(time float32, looping bool) int {
	if len(t.frames) <= 1 {
		return -1
	}
	return t.segmentIndex(t.AdjustTimeToFitTrack(time, looping))
}

// lastFrameAtOrBefore returns the index of the last keyframe whose time is
// not after time, or -1 if every keyframe is later.
func (t *Track[T, V, O]) lastFrameAtOrBefore(time float32) int {
	return sort.Search(len(t.frames), func(i int) bool {
		return t.frames[i].Time > time
	}) - 1
}

// segmentIndex takes an already adjusted time.
func (t *Track[T, V, O]) segmentIndex(time float32) int {
	return clampIndex(t.lastFrameAtOrBefore(time), len(t.frames)-2)
}

func (t *Track[T, V, O]) sampleConstant(time float32, looping bool) T {
	if len(t.frames) <= 1 {
		return t.ops.Identity()
	}
	// Unlike the blending modes this may select the final keyframe, so a
	// clamped step curve holds the last value past the end.
	i := clampIndex(t.lastFrameAtOrBefore(t.AdjustTimeToFitTrack(time, looping)), len(t.frames)-1)
	return t.ops.Cast(t.frames[i].Value)
}

func (t *Track[T, V, O]) sampleLinear(time float32, looping bool) T {
	if len(t.frames) <= 1 {
		return t.ops.Identity()
	}

	trackTime := t.AdjustTimeToFitTrack(time, looping)
	i := t.segmentIndex(trackTime)
	this, next := &t.frames[i], &t.frames[i+1]

	frameDelta := next.Time - this.Time
	if frameDelta <= 0 {
		return t.ops.Identity()
	}
	u := (trackTime - this.Time) / frameDelta

	return t.ops.Interpolate(t.ops.Cast(this.Value), t.ops.Cast(next.Value), u)
}

func (t *Track[T, V, O]) sampleCubic(time float32, looping bool) T {
	if len(t.frames) <= 1 {
		return t.ops.Identity()
	}

	trackTime := t.AdjustTimeToFitTrack(time, looping)
	i := t.segmentIndex(trackTime)
	this, next := &t.frames[i], &t.frames[i+1]

	frameDelta := next.Time - this.Time
	if frameDelta <= 0 {
		return t.ops.Identity()
	}
	u := (trackTime - this.Time) / frameDelta

	// Tangents go through Tangent, not Cast: a rotation tangent is not a
	// rotation and must not be normalized.
	p1 := t.ops.Cast(this.Value)
	s1 := t.ops.Scale(t.ops.Tangent(this.Out), frameDelta)
	p2 := t.ops.Cast(next.Value)
	s2 := t.ops.Scale(t.ops.Tangent(next.In), frameDelta)

	return t.hermite(u, p1, s1, p2, s2)
}

func (t *Track[T, V, O]) hermite(u float32, p1, s1, p2, s2 T) T {
	uu := u * u
	uuu := uu * u

	t.ops.Neighborhood(p1, &p2)

	h1 := 2*uuu - 3*uu + 1
	h2 := -2*uuu + 3*uu
	h3 := uuu - 2*uu + u
	h4 := uuu - uu

	points := t.ops.Add(t.ops.Scale(p1, h1), t.ops.Scale(p2, h2))
	slopes := t.ops.Add(t.ops.Scale(s1, h3), t.ops.Scale(s2, h4))

	return t.ops.AdjustHermiteResult(t.ops.Add(points, slopes))
}

// fitRange wraps (looping) or clamps time into [start, end].
// A non-positive duration maps every time to 0.
func fitRange(time, start, end float32, looping bool) float32 {
	duration := end - start
	if duration <= 0 {
		return 0
	}

	if looping {
		time = float32(gomath.Mod(float64(time-start), float64(duration)))
		if time < 0 {
			time += duration
		}
		return time + start
	}

	if time < start {
		return start
	}
	if time > end {
		return end
	}
	return time
}

func clampIndex(i, hi int) int {
	if i < 0 {
		return 0
	}
	if i > hi {
		return hi
	}
	return i
}
