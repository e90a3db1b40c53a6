package gltfimport

import (
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/midgard-anim/pkg/anim"
)

// AnimationClips converts every glTF animation into a clip. Channels that
// target the same node share one TransformTrack. Morph target weights are
// not part of a joint transform and are skipped.
func AnimationClips(doc *gltf.Document) ([]*anim.Clip, error) {
	clips := make([]*anim.Clip, 0, len(doc.Animations))
	for i, a := range doc.Animations {
		clip := anim.NewClip(clipName(a, i))
		for j, ch := range a.Channels {
			if err := loadChannel(doc, a, ch, clip); err != nil {
				return nil, errors.Wrapf(err, "Failed to load animation %q channel %d", clip.Name(), j)
			}
		}
		clip.RecalculateDuration()
		clips = append(clips, clip)
	}
	return clips, nil
}

func loadChannel(doc *gltf.Document, a *gltf.Animation, ch *gltf.Channel, clip *anim.Clip) error {
	joint, ok := indexOf(ch.Target.Node)
	if !ok {
		// Targets supplied by extensions are not joints
		return nil
	}
	if joint >= len(doc.Nodes) {
		return errors.Errorf("target node %d out of range (%d nodes)", joint, len(doc.Nodes))
	}

	si, ok := indexOf(ch.Sampler)
	if !ok || si >= len(a.Samplers) {
		return errors.Errorf("sampler %d out of range (%d samplers)", si, len(a.Samplers))
	}
	sampler := a.Samplers[si]

	interp := interpolation(sampler.Interpolation)
	times, err := readAccessor(doc, sampler.Input)
	if err != nil {
		return errors.Wrap(err, "input")
	}
	values, err := readAccessor(doc, sampler.Output)
	if err != nil {
		return errors.Wrap(err, "output")
	}

	switch ch.Target.Path {
	case gltf.TRSTranslation:
		err = clip.GetOrCreateTrack(joint).Position.Load(interp, times, values)
	case gltf.TRSRotation:
		err = clip.GetOrCreateTrack(joint).Rotation.Load(interp, times, values)
	case gltf.TRSScale:
		err = clip.GetOrCreateTrack(joint).Scale.Load(interp, times, values)
	default:
		return nil
	}
	return errors.Wrapf(err, "%v track of node %d", ch.Target.Path, joint)
}

func interpolation(i gltf.Interpolation) anim.Interpolation {
	switch i {
	case gltf.InterpolationStep:
		return anim.Constant
	case gltf.InterpolationCubicSpline:
		return anim.Cubic
	default:
		return anim.Linear
	}
}

// readAccessor returns the accessor contents as a flat float slice.
// Normalized integer data (allowed for rotations) is mapped to [-1, 1].
func readAccessor[I uint32 | *uint32](doc *gltf.Document, index I) ([]float32, error) {
	ai, ok := indexOf(index)
	if !ok || ai >= len(doc.Accessors) {
		return nil, errors.Errorf("accessor %d out of range (%d accessors)", ai, len(doc.Accessors))
	}

	data, err := modeler.ReadAccessor(doc, doc.Accessors[ai], nil)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to read accessor %d", ai)
	}

	switch v := data.(type) {
	case []float32:
		return v, nil
	case [][2]float32:
		out := make([]float32, 0, 2*len(v))
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][3]float32:
		out := make([]float32, 0, 3*len(v))
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]float32:
		out := make([]float32, 0, 4*len(v))
		for _, e := range v {
			out = append(out, e[:]...)
		}
		return out, nil
	case [][4]int8:
		return denormalize(v, 127), nil
	case [][4]uint8:
		return denormalize(v, 255), nil
	case [][4]int16:
		return denormalize(v, 32767), nil
	case [][4]uint16:
		return denormalize(v, 65535), nil
	}
	return nil, errors.Errorf("accessor %d has unsupported layout %T", ai, data)
}

// denormalize maps normalized integer components to floats, clamping the
// extra negative value of signed types to -1.
func denormalize[E int8 | uint8 | int16 | uint16](src [][4]E, maxValue float32) []float32 {
	out := make([]float32, 0, 4*len(src))
	for _, e := range src {
		for _, c := range e {
			out = append(out, max(float32(c)/maxValue, -1))
		}
	}
	return out
}
