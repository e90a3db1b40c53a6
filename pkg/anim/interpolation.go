package anim

import (
	"fmt"
	"strings"
)

// Interpolation selects how a track blends between neighbouring keyframes.
type Interpolation int

const (
	// Linear blends values linearly; rotations take the shortest nlerp path.
	// It is the zero value, matching the glTF default.
	Linear Interpolation = iota
	// Constant holds each keyframe value until the next keyframe.
	Constant
	// Cubic evaluates a Hermite spline using per-keyframe tangents.
	Cubic
)

// String returns the interpolation name.
func (i Interpolation) String() string {
	switch i {
	case Linear:
		return "linear"
	case Constant:
		return "constant"
	case Cubic:
		return "cubic"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation converts a name to an Interpolation. The glTF sampler
// names (STEP, LINEAR, CUBICSPLINE) are accepted as well.
func ParseInterpolation(s string) (Interpolation, error) {
	switch strings.ToLower(s) {
	case "linear":
		return Linear, nil
	case "constant", "step":
		return Constant, nil
	case "cubic", "cubicspline":
		return Cubic, nil
	default:
		return Linear, fmt.Errorf("unknown interpolation %q", s)
	}
}
