package anim

import "github.com/Faultbox/midgard-anim/pkg/math"

// DefaultClipName is used for clips created without a name.
const DefaultClipName = "No name given"

// Pose is the destination a Clip samples into: joint-local transforms
// indexed by joint id.
type Pose interface {
	LocalTransform(joint int) math.Transform
	SetLocalTransform(joint int, t math.Transform)
}

// Clip is a named set of per-joint transform tracks that plays over the
// union of their time ranges.
//
// Clips are read-only while playing and may be sampled from several
// goroutines at once, as long as each goroutine samples into its own Pose.
type Clip struct {
	name      string
	tracks    []*TransformTrack
	byJoint   map[int]*TransformTrack
	startTime float32
	endTime   float32
	looping   bool
}

// NewClip returns an empty looping clip.
func NewClip(name string) *Clip {
	if name == "" {
		name = DefaultClipName
	}
	return &Clip{
		name:    name,
		byJoint: make(map[int]*TransformTrack),
		looping: true,
	}
}

// Name returns the clip name.
func (c *Clip) Name() string { return c.name }

// SetName renames the clip.
func (c *Clip) SetName(name string) { c.name = name }

// Looping reports whether sampling wraps around the clip range.
func (c *Clip) Looping() bool { return c.looping }

// SetLooping sets whether sampling wraps or clamps.
func (c *Clip) SetLooping(looping bool) { c.looping = looping }

// StartTime returns the start of the clip range.
func (c *Clip) StartTime() float32 { return c.startTime }

// EndTime returns the end of the clip range.
func (c *Clip) EndTime() float32 { return c.endTime }

// Duration returns EndTime - StartTime.
func (c *Clip) Duration() float32 { return c.endTime - c.startTime }

// Len returns the number of transform tracks.
func (c *Clip) Len() int { return len(c.tracks) }

// TrackAt returns the i-th track in creation order.
func (c *Clip) TrackAt(i int) *TransformTrack { return c.tracks[i] }

// Track returns the track for a joint without creating one.
func (c *Clip) Track(joint int) (*TransformTrack, bool) {
	tt, ok := c.byJoint[joint]
	return tt, ok
}

// JointIDs returns the animated joint ids in track creation order.
func (c *Clip) JointIDs() []int {
	ids := make([]int, len(c.tracks))
	for i, tt := range c.tracks {
		ids[i] = tt.ID()
	}
	return ids
}

// GetOrCreateTrack returns the track for joint, creating an empty one on
// first use. Importers populate clips one channel at a time through it.
func (c *Clip) GetOrCreateTrack(joint int) *TransformTrack {
	if tt, ok := c.byJoint[joint]; ok {
		return tt
	}
	if c.byJoint == nil {
		c.byJoint = make(map[int]*TransformTrack)
	}
	tt := NewTransformTrack(joint)
	c.tracks = append(c.tracks, tt)
	c.byJoint[joint] = tt
	return tt
}

// RecalculateDuration sets the clip range to the union of the ranges of all
// valid tracks, or to [0, 0] if none is valid. Call it after import and
// before the first Sample.
func (c *Clip) RecalculateDuration() {
	c.startTime, c.endTime = 0, 0
	set := false
	for _, tt := range c.tracks {
		if !tt.IsValid() {
			continue
		}
		start, end := tt.StartTime(), tt.EndTime()
		if !set || start < c.startTime {
			c.startTime = start
		}
		if !set || end > c.endTime {
			c.endTime = end
		}
		set = true
	}
}

// AdjustTimeToFitRange wraps or clamps time into the clip range according
// to the clip's looping flag. Zero-length clips map every time to 0.
func (c *Clip) AdjustTimeToFitRange(time float32) float32 {
	return fitRange(time, c.startTime, c.endTime, c.looping)
}

// Sample writes the clip's animated channels at time into p and returns the
// time actually sampled after wrapping or clamping. Joints without a track
// are left untouched. A zero-length clip returns 0 without writing.
//
// Every joint id in the clip must be a valid index into p.
func (c *Clip) Sample(p Pose, time float32) float32 {
	if c.Duration() == 0 {
		return 0
	}

	time = c.AdjustTimeToFitRange(time)
	for _, tt := range c.tracks {
		joint := tt.ID()
		local := p.LocalTransform(joint)
		p.SetLocalTransform(joint, tt.Sample(local, time, c.looping))
	}
	return time
}
