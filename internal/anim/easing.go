package anim

import "github.com/fogleman/ease"

// Easing shapes the interpolation parameter between a keyframe and the next
// one on its track.
type Easing int

const (
	EasingLinear Easing = iota
	EasingIn
	EasingOut
	EasingInOut
)

// Apply maps the raw parameter t in [0,1] to the eased parameter.
// EaseIn and EaseOut are the quadratic curves; EaseInOut is the cubic
// smoothstep 3t²−2t³.
func (e Easing) Apply(t float64) float64 {
	switch e {
	case EasingIn:
		return ease.InQuad(t)
	case EasingOut:
		return ease.OutQuad(t)
	case EasingInOut:
		return t * t * (3 - 2*t)
	default:
		return ease.Linear(t)
	}
}

func (e Easing) String() string {
	switch e {
	case EasingLinear:
		return "linear"
	case EasingIn:
		return "easeIn"
	case EasingOut:
		return "easeOut"
	case EasingInOut:
		return "easeInOut"
	}
	return "linear"
}

// ParseEasing maps a document string back to an Easing mode. Unknown names
// report ok=false and fall back to linear.
func ParseEasing(name string) (Easing, bool) {
	switch name {
	case "linear", "":
		return EasingLinear, true
	case "easeIn":
		return EasingIn, true
	case "easeOut":
		return EasingOut, true
	case "easeInOut":
		return EasingInOut, true
	}
	return EasingLinear, false
}
