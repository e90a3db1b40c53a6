// Package player advances clips over time and keeps the sampled pose, the
// way a host render loop would drive them.
package player

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-anim/internal/config"
	"github.com/Faultbox/midgard-anim/pkg/anim"
	"github.com/Faultbox/midgard-anim/pkg/pose"
)

var (
	// ErrNoClips is returned by New when there is nothing to play.
	ErrNoClips = errors.New("no animation clips")
	// ErrUnknownClip is returned when a clip name is not loaded.
	ErrUnknownClip = errors.New("unknown clip")
)

// Player owns the current pose and playback time of one active clip.
type Player struct {
	clips  []*anim.Clip
	byName map[string]*anim.Clip
	rest   *pose.Pose
	pose   *pose.Pose
	clip   *anim.Clip
	time   float32
	speed  float32
	log    *zap.Logger
}

// New creates a player over clips. cfg.Looping is applied to every clip and
// cfg.Clip picks the starting clip, defaulting to the first one. A nil log
// disables logging.
func New(clips []*anim.Clip, rest *pose.Pose, cfg config.PlaybackConfig, log *zap.Logger) (*Player, error) {
	if len(clips) == 0 {
		return nil, ErrNoClips
	}
	if log == nil {
		log = zap.NewNop()
	}

	p := &Player{
		clips:  clips,
		byName: make(map[string]*anim.Clip, len(clips)),
		rest:   rest,
		pose:   rest.Copy(),
		speed:  cfg.Speed,
		log:    log,
	}
	for _, c := range clips {
		c.SetLooping(cfg.Looping)
		// First clip wins on duplicate names
		if _, dup := p.byName[c.Name()]; !dup {
			p.byName[c.Name()] = c
		}
	}

	name := cfg.Clip
	if name == "" {
		name = clips[0].Name()
	}
	if err := p.SetClip(name); err != nil {
		return nil, err
	}
	return p, nil
}

// SetClip switches playback to the named clip, restoring the rest pose and
// rewinding to the clip start.
func (p *Player) SetClip(name string) error {
	c, ok := p.byName[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownClip, name)
	}

	p.clip = c
	p.time = c.StartTime()
	p.pose.CopyFrom(p.rest)
	p.log.Debug("clip selected",
		zap.String("clip", name),
		zap.Float32("start", c.StartTime()),
		zap.Float32("end", c.EndTime()),
		zap.Bool("looping", c.Looping()))
	return nil
}

// Update advances playback by dt seconds scaled by the playback speed and
// samples the clip into the pose. It reports whether a looping clip reached
// or passed its end during the step, however far past the end it went.
func (p *Player) Update(dt float32) bool {
	prev := p.time
	target := prev + dt*p.speed
	p.time = p.clip.Sample(p.pose, target)

	wrapped := p.clip.Looping() && p.clip.Duration() > 0 && target >= p.clip.EndTime()
	if wrapped {
		p.log.Debug("clip wrapped",
			zap.String("clip", p.clip.Name()),
			zap.Float32("from", prev),
			zap.Float32("to", p.time))
	}
	return wrapped
}

// Time returns the playback time after the last Update.
func (p *Player) Time() float32 {
	return p.time
}

// Clip returns the active clip.
func (p *Player) Clip() *anim.Clip {
	return p.clip
}

// Pose returns the pose written by Update. It is reused between calls.
func (p *Player) Pose() *pose.Pose {
	return p.pose
}

// ClipNames lists the loaded clips in load order.
func (p *Player) ClipNames() []string {
	names := make([]string, len(p.clips))
	for i, c := range p.clips {
		names[i] = c.Name()
	}
	return names
}
