package project

import (
	"github.com/google/uuid"

	"github.com/ivlev/animstudio/internal/anim"
)

// Object is a drawable entity owned by exactly one layer. Its identity is
// stable for the whole session: identifiers are allocated once and never
// reused, so undo/redo cannot resurrect a reference that collides with a
// newer entity.
//
// The transform/appearance fields are the static defaults used whenever the
// matching property track is empty.
type Object struct {
	ID       uuid.UUID
	Name     string
	Geometry Geometry

	Position    anim.Vec2
	Rotation    float64
	Scale       anim.Vec2
	Fill        anim.Color
	Stroke      anim.Color
	StrokeWidth float64

	tracks map[anim.Property]*anim.Track
}

// NewObject allocates an object with a fresh identifier and neutral defaults.
func NewObject(name string, geometry Geometry) *Object {
	return &Object{
		ID:          uuid.New(),
		Name:        name,
		Geometry:    geometry,
		Scale:       anim.Vec2{X: 1, Y: 1},
		Fill:        anim.Color{R: 0.8, G: 0.8, B: 0.8, A: 1},
		Stroke:      anim.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
		StrokeWidth: 1,
		tracks:      make(map[anim.Property]*anim.Track),
	}
}

// Track returns the keyframe track for a property, or nil if the property has
// no keyframes yet.
func (o *Object) Track(p anim.Property) *anim.Track {
	return o.tracks[p]
}

// EnsureTrack returns the track for a property, creating an empty one if
// needed.
func (o *Object) EnsureTrack(p anim.Property) *anim.Track {
	if o.tracks == nil {
		o.tracks = make(map[anim.Property]*anim.Track)
	}
	t := o.tracks[p]
	if t == nil {
		t = &anim.Track{}
		o.tracks[p] = t
	}
	return t
}

// AnimatedProperties lists the properties that currently carry keyframes, in
// canonical order.
func (o *Object) AnimatedProperties() []anim.Property {
	var out []anim.Property
	for _, p := range anim.Properties() {
		if t := o.tracks[p]; t != nil && t.Len() > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Base returns the static default for a property as a Value.
func (o *Object) Base(p anim.Property) anim.Value {
	switch p {
	case anim.PropPosition:
		return anim.Vec(o.Position.X, o.Position.Y)
	case anim.PropRotation:
		return anim.Angle(o.Rotation)
	case anim.PropScale:
		return anim.Vec(o.Scale.X, o.Scale.Y)
	case anim.PropFill:
		return anim.Rgba(o.Fill.R, o.Fill.G, o.Fill.B, o.Fill.A)
	case anim.PropStroke:
		return anim.Rgba(o.Stroke.R, o.Stroke.G, o.Stroke.B, o.Stroke.A)
	case anim.PropStrokeWidth:
		return anim.Scalar(o.StrokeWidth)
	}
	return anim.Scalar(0)
}

// Clone deep-copies the object, tracks included. The identifier is preserved:
// clones exist to carry state across command revert, not to mint entities.
func (o *Object) Clone() *Object {
	c := *o
	c.Geometry = o.Geometry.Clone()
	c.tracks = make(map[anim.Property]*anim.Track, len(o.tracks))
	for p, t := range o.tracks {
		c.tracks[p] = t.Clone()
	}
	return &c
}
