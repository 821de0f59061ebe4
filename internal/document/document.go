// Package document reads and writes the persisted project format. The shape
// of the document is dictated by the core data model: frame timing, an
// ordered list of layers, each with an ordered list of objects carrying
// shape geometry and per-property keyframe records. Command history is never
// persisted; a reloaded project starts with empty history.
package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
)

const Version = "1.0"

type Document struct {
	Version      string     `json:"version"`
	Name         string     `json:"name"`
	CanvasWidth  int        `json:"canvasWidth"`
	CanvasHeight int        `json:"canvasHeight"`
	Background   ColorDoc   `json:"background"`
	FrameRate    int        `json:"frameRate"`
	TotalFrames  int        `json:"totalFrames"`
	Layers       []LayerDoc `json:"layers"`
}

type LayerDoc struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Visible bool        `json:"visible"`
	Locked  bool        `json:"locked"`
	Opacity float64     `json:"opacity"`
	Objects []ObjectDoc `json:"objects"`
}

type ObjectDoc struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	Shape       ShapeDoc                 `json:"shape"`
	Position    [2]float64               `json:"position"`
	Rotation    float64                  `json:"rotation"`
	Scale       [2]float64               `json:"scale"`
	Fill        ColorDoc                 `json:"fill"`
	Stroke      ColorDoc                 `json:"stroke"`
	StrokeWidth float64                  `json:"strokeWidth"`
	Tracks      map[string][]KeyframeDoc `json:"tracks,omitempty"`
}

type ShapeDoc struct {
	Kind string `json:"kind"`

	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	CornerRadius float64 `json:"cornerRadius,omitempty"`

	RadiusX float64 `json:"radiusX,omitempty"`
	RadiusY float64 `json:"radiusY,omitempty"`

	EndX float64 `json:"endX,omitempty"`
	EndY float64 `json:"endY,omitempty"`

	Points []PointDoc `json:"points,omitempty"`
	Closed bool       `json:"closed,omitempty"`
}

type PointDoc struct {
	Position   [2]float64  `json:"position"`
	ControlIn  *[2]float64 `json:"controlIn,omitempty"`
	ControlOut *[2]float64 `json:"controlOut,omitempty"`
	Pressure   float64     `json:"pressure"`
}

// KeyframeDoc is one {frame, value, easing} record. Exactly one value field
// is set, matching the track's property kind.
type KeyframeDoc struct {
	Frame  int         `json:"frame"`
	Scalar *float64    `json:"scalar,omitempty"`
	Vec    *[2]float64 `json:"vec,omitempty"`
	Color  *ColorDoc   `json:"color,omitempty"`
	Easing string      `json:"easing"`
}

// ColorDoc stores the exact float channels so colors survive save/load
// without 8-bit quantization. The hex string is a redundant human-readable
// mirror; it is only consulted when rgba is absent.
type ColorDoc struct {
	Hex   string      `json:"hex"`
	Rgba  *[4]float64 `json:"rgba,omitempty"`
	Alpha float64     `json:"alpha"`
}

func encodeColor(c anim.Color) ColorDoc {
	cc := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
	return ColorDoc{
		Hex:   cc.Hex(),
		Rgba:  &[4]float64{c.R, c.G, c.B, c.A},
		Alpha: c.A,
	}
}

func (d ColorDoc) decode() (anim.Color, error) {
	if d.Rgba != nil {
		for _, ch := range d.Rgba {
			if ch < 0 || ch > 1 {
				return anim.Color{}, fmt.Errorf("color channel %v out of range", ch)
			}
		}
		return anim.Color{R: d.Rgba[0], G: d.Rgba[1], B: d.Rgba[2], A: d.Rgba[3]}, nil
	}
	c, err := colorful.Hex(d.Hex)
	if err != nil {
		return anim.Color{}, fmt.Errorf("color %q: %w", d.Hex, err)
	}
	if d.Alpha < 0 || d.Alpha > 1 {
		return anim.Color{}, fmt.Errorf("color alpha %v out of range", d.Alpha)
	}
	return anim.Color{R: c.R, G: c.G, B: c.B, A: d.Alpha}, nil
}

// FromProject captures the persistable state of a project.
func FromProject(p *project.Project) *Document {
	d := &Document{
		Version:      Version,
		Name:         p.Name,
		CanvasWidth:  p.CanvasWidth,
		CanvasHeight: p.CanvasHeight,
		Background:   encodeColor(p.Background),
		FrameRate:    p.FrameRate,
		TotalFrames:  p.TotalFrames,
	}
	for _, l := range p.Layers() {
		ld := LayerDoc{
			ID:      l.ID.String(),
			Name:    l.Name,
			Visible: l.Visible,
			Locked:  l.Locked,
			Opacity: l.Opacity,
		}
		for _, o := range l.Objects() {
			ld.Objects = append(ld.Objects, encodeObject(o))
		}
		d.Layers = append(d.Layers, ld)
	}
	return d
}

func encodeObject(o *project.Object) ObjectDoc {
	od := ObjectDoc{
		ID:          o.ID.String(),
		Name:        o.Name,
		Shape:       encodeShape(o.Geometry),
		Position:    [2]float64{o.Position.X, o.Position.Y},
		Rotation:    o.Rotation,
		Scale:       [2]float64{o.Scale.X, o.Scale.Y},
		Fill:        encodeColor(o.Fill),
		Stroke:      encodeColor(o.Stroke),
		StrokeWidth: o.StrokeWidth,
	}
	for _, prop := range o.AnimatedProperties() {
		t := o.Track(prop)
		var keys []KeyframeDoc
		for _, k := range t.Keys() {
			keys = append(keys, encodeKeyframe(k))
		}
		if od.Tracks == nil {
			od.Tracks = make(map[string][]KeyframeDoc)
		}
		od.Tracks[prop.String()] = keys
	}
	return od
}

func encodeShape(g project.Geometry) ShapeDoc {
	switch s := g.(type) {
	case project.Rectangle:
		return ShapeDoc{Kind: s.Kind().String(), Width: s.Width, Height: s.Height, CornerRadius: s.CornerRadius}
	case project.Ellipse:
		return ShapeDoc{Kind: s.Kind().String(), RadiusX: s.RadiusX, RadiusY: s.RadiusY}
	case project.Line:
		return ShapeDoc{Kind: s.Kind().String(), EndX: s.EndX, EndY: s.EndY}
	case project.Path:
		d := ShapeDoc{Kind: s.Kind().String(), Closed: s.Closed}
		for _, pt := range s.Points {
			pd := PointDoc{Position: [2]float64{pt.Position.X, pt.Position.Y}, Pressure: pt.Pressure}
			if pt.HasIn {
				pd.ControlIn = &[2]float64{pt.ControlIn.X, pt.ControlIn.Y}
			}
			if pt.HasOut {
				pd.ControlOut = &[2]float64{pt.ControlOut.X, pt.ControlOut.Y}
			}
			d.Points = append(d.Points, pd)
		}
		return d
	}
	return ShapeDoc{Kind: "unknown"}
}

func encodeKeyframe(k anim.Keyframe) KeyframeDoc {
	kd := KeyframeDoc{Frame: k.Frame, Easing: k.Easing.String()}
	switch k.Value.Kind {
	case anim.KindScalar, anim.KindAngle:
		v := k.Value.Scalar
		kd.Scalar = &v
	case anim.KindVec2:
		kd.Vec = &[2]float64{k.Value.Vec.X, k.Value.Vec.Y}
	case anim.KindColor:
		c := encodeColor(k.Value.Color)
		kd.Color = &c
	}
	return kd
}

// ToProject validates the document and materializes a project. Malformed
// documents are rejected wholesale: no partially built project escapes.
func (d *Document) ToProject() (*project.Project, error) {
	if d.FrameRate <= 0 {
		return nil, fmt.Errorf("frameRate %d must be positive", d.FrameRate)
	}
	if d.TotalFrames <= 0 {
		return nil, fmt.Errorf("totalFrames %d must be positive", d.TotalFrames)
	}
	p := project.Empty(d.Name, d.FrameRate, d.TotalFrames)
	if d.CanvasWidth > 0 {
		p.CanvasWidth = d.CanvasWidth
	}
	if d.CanvasHeight > 0 {
		p.CanvasHeight = d.CanvasHeight
	}
	if d.Background.Hex != "" {
		bg, err := d.Background.decode()
		if err != nil {
			return nil, err
		}
		p.Background = bg
	}
	seen := make(map[uuid.UUID]bool)
	for i, ld := range d.Layers {
		l, err := decodeLayer(p, ld, seen)
		if err != nil {
			return nil, fmt.Errorf("layer %d (%s): %w", i, ld.Name, err)
		}
		p.InsertLayer(p.LayerCount(), l)
	}
	return p, nil
}

func decodeLayer(p *project.Project, ld LayerDoc, seen map[uuid.UUID]bool) (*project.Layer, error) {
	id, err := uuid.Parse(ld.ID)
	if err != nil {
		return nil, fmt.Errorf("layer id: %w", err)
	}
	if seen[id] {
		return nil, fmt.Errorf("duplicate id %s", id)
	}
	seen[id] = true
	if ld.Opacity < 0 || ld.Opacity > 1 {
		return nil, fmt.Errorf("opacity %v out of range", ld.Opacity)
	}
	l := project.NewLayer(ld.Name)
	l.ID = id
	l.Visible = ld.Visible
	l.Locked = ld.Locked
	l.Opacity = ld.Opacity
	for i, od := range ld.Objects {
		o, err := decodeObject(p, od, seen)
		if err != nil {
			return nil, fmt.Errorf("object %d (%s): %w", i, od.Name, err)
		}
		l.InsertObject(l.ObjectCount(), o)
	}
	return l, nil
}

func decodeObject(p *project.Project, od ObjectDoc, seen map[uuid.UUID]bool) (*project.Object, error) {
	id, err := uuid.Parse(od.ID)
	if err != nil {
		return nil, fmt.Errorf("object id: %w", err)
	}
	if seen[id] {
		return nil, fmt.Errorf("duplicate id %s", id)
	}
	seen[id] = true
	g, err := decodeShape(od.Shape)
	if err != nil {
		return nil, err
	}
	fill, err := od.Fill.decode()
	if err != nil {
		return nil, fmt.Errorf("fill: %w", err)
	}
	stroke, err := od.Stroke.decode()
	if err != nil {
		return nil, fmt.Errorf("stroke: %w", err)
	}
	if od.StrokeWidth < 0 {
		return nil, fmt.Errorf("strokeWidth %v negative", od.StrokeWidth)
	}
	o := project.NewObject(od.Name, g)
	o.ID = id
	o.Position = anim.Vec2{X: od.Position[0], Y: od.Position[1]}
	o.Rotation = od.Rotation
	o.Scale = anim.Vec2{X: od.Scale[0], Y: od.Scale[1]}
	o.Fill = fill
	o.Stroke = stroke
	o.StrokeWidth = od.StrokeWidth

	for name, keys := range od.Tracks {
		prop, ok := anim.ParseProperty(name)
		if !ok {
			return nil, fmt.Errorf("unknown property %q", name)
		}
		track := o.EnsureTrack(prop)
		for _, kd := range keys {
			if kd.Frame < 0 || kd.Frame >= p.TotalFrames {
				return nil, fmt.Errorf("%s keyframe at %d outside [0,%d)", name, kd.Frame, p.TotalFrames)
			}
			v, err := decodeValue(prop, kd)
			if err != nil {
				return nil, fmt.Errorf("%s keyframe at %d: %w", name, kd.Frame, err)
			}
			easing, ok := anim.ParseEasing(kd.Easing)
			if !ok {
				return nil, fmt.Errorf("%s keyframe at %d: unknown easing %q", name, kd.Frame, kd.Easing)
			}
			track.Set(anim.Keyframe{Frame: kd.Frame, Value: v, Easing: easing})
		}
	}
	return o, nil
}

func decodeShape(sd ShapeDoc) (project.Geometry, error) {
	switch sd.Kind {
	case "rectangle":
		return project.Rectangle{Width: sd.Width, Height: sd.Height, CornerRadius: sd.CornerRadius}, nil
	case "ellipse":
		return project.Ellipse{RadiusX: sd.RadiusX, RadiusY: sd.RadiusY}, nil
	case "line":
		return project.Line{EndX: sd.EndX, EndY: sd.EndY}, nil
	case "path":
		pa := project.Path{Closed: sd.Closed}
		for _, pd := range sd.Points {
			pt := project.PathPoint{
				Position: anim.Vec2{X: pd.Position[0], Y: pd.Position[1]},
				Pressure: pd.Pressure,
			}
			if pd.ControlIn != nil {
				pt.ControlIn = anim.Vec2{X: pd.ControlIn[0], Y: pd.ControlIn[1]}
				pt.HasIn = true
			}
			if pd.ControlOut != nil {
				pt.ControlOut = anim.Vec2{X: pd.ControlOut[0], Y: pd.ControlOut[1]}
				pt.HasOut = true
			}
			pa.Points = append(pa.Points, pt)
		}
		return pa, nil
	}
	return nil, fmt.Errorf("unknown shape kind %q", sd.Kind)
}

func decodeValue(prop anim.Property, kd KeyframeDoc) (anim.Value, error) {
	switch prop.Kind() {
	case anim.KindScalar:
		if kd.Scalar == nil {
			return anim.Value{}, fmt.Errorf("missing scalar value")
		}
		return anim.Scalar(*kd.Scalar), nil
	case anim.KindAngle:
		if kd.Scalar == nil {
			return anim.Value{}, fmt.Errorf("missing angle value")
		}
		return anim.Angle(*kd.Scalar), nil
	case anim.KindVec2:
		if kd.Vec == nil {
			return anim.Value{}, fmt.Errorf("missing vec value")
		}
		return anim.Vec(kd.Vec[0], kd.Vec[1]), nil
	case anim.KindColor:
		if kd.Color == nil {
			return anim.Value{}, fmt.Errorf("missing color value")
		}
		c, err := kd.Color.decode()
		if err != nil {
			return anim.Value{}, err
		}
		return anim.Rgba(c.R, c.G, c.B, c.A), nil
	}
	return anim.Value{}, fmt.Errorf("unhandled kind")
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Decode parses a document from JSON.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode project document: %w", err)
	}
	return &d, nil
}

// Save writes a project to a file.
func Save(p *project.Project, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return FromProject(p).Encode(f)
}

// Load reads and validates a project file.
func Load(path string) (*project.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	d, err := Decode(f)
	if err != nil {
		return nil, err
	}
	return d.ToProject()
}
