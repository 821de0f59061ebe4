package anim

// Property identifies one animatable property of an object. Each property of
// each object has its own independent keyframe track.
type Property int

const (
	PropPosition Property = iota
	PropRotation
	PropScale
	PropFill
	PropStroke
	PropStrokeWidth
)

// Properties returns every animatable property in canonical order.
func Properties() []Property {
	return []Property{
		PropPosition,
		PropRotation,
		PropScale,
		PropFill,
		PropStroke,
		PropStrokeWidth,
	}
}

// Kind returns the value kind a property's keyframes must carry.
func (p Property) Kind() Kind {
	switch p {
	case PropPosition, PropScale:
		return KindVec2
	case PropRotation:
		return KindAngle
	case PropFill, PropStroke:
		return KindColor
	case PropStrokeWidth:
		return KindScalar
	}
	return KindScalar
}

func (p Property) String() string {
	switch p {
	case PropPosition:
		return "position"
	case PropRotation:
		return "rotation"
	case PropScale:
		return "scale"
	case PropFill:
		return "fill"
	case PropStroke:
		return "stroke"
	case PropStrokeWidth:
		return "strokeWidth"
	}
	return "unknown"
}

// ParseProperty maps a document string back to a Property.
func ParseProperty(name string) (Property, bool) {
	for _, p := range Properties() {
		if p.String() == name {
			return p, true
		}
	}
	return PropPosition, false
}
