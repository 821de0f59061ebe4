package project

import "github.com/ivlev/animstudio/internal/anim"

// GeometryKind tags the concrete shape variant of an object.
type GeometryKind int

const (
	GeometryRectangle GeometryKind = iota
	GeometryEllipse
	GeometryLine
	GeometryPath
)

func (k GeometryKind) String() string {
	switch k {
	case GeometryRectangle:
		return "rectangle"
	case GeometryEllipse:
		return "ellipse"
	case GeometryLine:
		return "line"
	case GeometryPath:
		return "path"
	}
	return "unknown"
}

// Geometry is the shape-specific payload of an object. The animatable
// properties (transform, paint) live on the object itself; geometry only
// describes the outline to draw.
type Geometry interface {
	Kind() GeometryKind
	Clone() Geometry
}

// Rectangle is an axis-aligned rectangle centered on the object position.
type Rectangle struct {
	Width        float64
	Height       float64
	CornerRadius float64
}

func (r Rectangle) Kind() GeometryKind { return GeometryRectangle }
func (r Rectangle) Clone() Geometry    { return r }

// Ellipse is centered on the object position.
type Ellipse struct {
	RadiusX float64
	RadiusY float64
}

func (e Ellipse) Kind() GeometryKind { return GeometryEllipse }
func (e Ellipse) Clone() Geometry    { return e }

// Line runs from the object position to the given end offset.
type Line struct {
	EndX float64
	EndY float64
}

func (l Line) Kind() GeometryKind { return GeometryLine }
func (l Line) Clone() Geometry    { return l }

// PathPoint is one anchor of a path. Control handles are optional; HasIn and
// HasOut report whether the corresponding handle is set.
type PathPoint struct {
	Position   anim.Vec2
	ControlIn  anim.Vec2
	ControlOut anim.Vec2
	HasIn      bool
	HasOut     bool
	Pressure   float64
}

// Path is a sequence of anchors, optionally closed.
type Path struct {
	Points []PathPoint
	Closed bool
}

func (p Path) Kind() GeometryKind { return GeometryPath }

func (p Path) Clone() Geometry {
	points := make([]PathPoint, len(p.Points))
	copy(points, p.Points)
	return Path{Points: points, Closed: p.Closed}
}
