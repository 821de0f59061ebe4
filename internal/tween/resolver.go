// Package tween resolves effective property values at arbitrary frame
// positions. Resolution is pure: identical (object, property, frame) input
// against unchanged track state yields bit-identical output, which keeps
// scrubbing deterministic and lets onion-skin frames resolve out of playback
// order.
package tween

import (
	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
)

// scaleFloor keeps eased scale components strictly positive even when a
// curve overshoots.
const scaleFloor = 1e-6

// State is the fully resolved transform and appearance of one object at one
// frame, ready for compositing.
type State struct {
	Position    anim.Vec2
	Rotation    float64
	Scale       anim.Vec2
	Fill        anim.Color
	Stroke      anim.Color
	StrokeWidth float64
}

// Resolve computes the effective value of one property at a frame.
//
// An empty track yields the object's static default. A single keyframe holds
// its value across all frames. With two or more keyframes the bracketing pair
// is located by binary search, the local parameter t is eased by the leading
// keyframe's mode, and the pair is blended per value kind. Outside the
// covered range the boundary keyframe's value holds; there is no
// extrapolation.
func Resolve(o *project.Object, prop anim.Property, frame int) anim.Value {
	t := o.Track(prop)
	if t == nil || t.Len() == 0 {
		return clampValue(prop, o.Base(prop))
	}
	ka, kb, _ := t.Bracket(frame)
	if ka.Frame == kb.Frame {
		return clampValue(prop, ka.Value)
	}
	raw := float64(frame-ka.Frame) / float64(kb.Frame-ka.Frame)
	if raw < 0 {
		raw = 0
	}
	if raw > 1 {
		raw = 1
	}
	eased := ka.Easing.Apply(raw)
	return clampValue(prop, ka.Value.Lerp(kb.Value, eased))
}

// ResolveObject resolves every animatable property of an object at a frame.
func ResolveObject(o *project.Object, frame int) State {
	return State{
		Position:    Resolve(o, anim.PropPosition, frame).Vec,
		Rotation:    Resolve(o, anim.PropRotation, frame).Scalar,
		Scale:       Resolve(o, anim.PropScale, frame).Vec,
		Fill:        Resolve(o, anim.PropFill, frame).Color,
		Stroke:      Resolve(o, anim.PropStroke, frame).Color,
		StrokeWidth: Resolve(o, anim.PropStrokeWidth, frame).Scalar,
	}
}

// clampValue clamps defensively at the resolver boundary: easing overshoot
// must not produce a negative stroke width, out-of-range color channels, or a
// degenerate scale.
func clampValue(prop anim.Property, v anim.Value) anim.Value {
	switch prop {
	case anim.PropStrokeWidth:
		if v.Scalar < 0 {
			v.Scalar = 0
		}
	case anim.PropScale:
		if v.Vec.X < scaleFloor {
			v.Vec.X = scaleFloor
		}
		if v.Vec.Y < scaleFloor {
			v.Vec.Y = scaleFloor
		}
	case anim.PropFill, anim.PropStroke:
		v.Color = v.Color.Clamped()
	}
	return v
}
