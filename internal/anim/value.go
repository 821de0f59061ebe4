package anim

import "math"

// Vec2 is a 2D vector used for positions and scale factors.
type Vec2 struct {
	X float64
	Y float64
}

// Lerp blends two vectors component-wise.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{
		X: lerp(v.X, o.X, t),
		Y: lerp(v.Y, o.Y, t),
	}
}

// Color is an RGBA color. Channels are stored in the range [0,1] and blended
// per channel in the storage space, without gamma conversion.
type Color struct {
	R float64
	G float64
	B float64
	A float64
}

// Lerp blends two colors channel-wise.
func (c Color) Lerp(o Color, t float64) Color {
	return Color{
		R: lerp(c.R, o.R, t),
		G: lerp(c.G, o.G, t),
		B: lerp(c.B, o.B, t),
		A: lerp(c.A, o.A, t),
	}
}

// Clamped returns the color with every channel forced into [0,1].
func (c Color) Clamped() Color {
	return Color{
		R: clamp01(c.R),
		G: clamp01(c.G),
		B: clamp01(c.B),
		A: clamp01(c.A),
	}
}

// Kind identifies the interpolation behavior of a Value.
type Kind int

const (
	KindScalar Kind = iota
	KindVec2
	KindColor
	KindAngle
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVec2:
		return "vec2"
	case KindColor:
		return "color"
	case KindAngle:
		return "angle"
	}
	return "unknown"
}

// Value is a tagged variant over the interpolable value kinds. Exactly one of
// the payload fields is meaningful, selected by Kind (Scalar doubles as the
// payload for KindAngle, in radians).
type Value struct {
	Kind   Kind
	Scalar float64
	Vec    Vec2
	Color  Color
}

// Scalar wraps a plain float value.
func Scalar(v float64) Value {
	return Value{Kind: KindScalar, Scalar: v}
}

// Angle wraps an angle in radians.
func Angle(rad float64) Value {
	return Value{Kind: KindAngle, Scalar: rad}
}

// Vec wraps a 2D vector value.
func Vec(x, y float64) Value {
	return Value{Kind: KindVec2, Vec: Vec2{X: x, Y: y}}
}

// Rgba wraps an RGBA color value.
func Rgba(r, g, b, a float64) Value {
	return Value{Kind: KindColor, Color: Color{R: r, G: g, B: b, A: a}}
}

// Lerp interpolates between two values of the same kind. Angles follow the
// shorter path around the circle so a 350°→10° tween passes through 0°, not
// 180°. Mismatched kinds fall back to the receiver unchanged.
func (v Value) Lerp(o Value, t float64) Value {
	if v.Kind != o.Kind {
		return v
	}
	switch v.Kind {
	case KindScalar:
		return Scalar(lerp(v.Scalar, o.Scalar, t))
	case KindAngle:
		return Angle(lerpAngle(v.Scalar, o.Scalar, t))
	case KindVec2:
		return Value{Kind: KindVec2, Vec: v.Vec.Lerp(o.Vec, t)}
	case KindColor:
		return Value{Kind: KindColor, Color: v.Color.Lerp(o.Color, t)}
	}
	return v
}

// NormalizeAngle wraps an angle into [0, 2π).
func NormalizeAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	return rad
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// lerpAngle blends along the shorter angular path. If the raw delta exceeds
// π it is wrapped by a full turn before blending.
func lerpAngle(a, b, t float64) float64 {
	diff := b - a
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}
	for diff < -math.Pi {
		diff += 2 * math.Pi
	}
	return a + diff*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
