// Package render is a reference consumer of scene snapshots: it rasterizes
// resolved frames for preview, PNG sequence export and sprite sheets. The
// host engine owns real rendering; nothing here reaches past the snapshot
// interface into tracks or history.
package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
	"github.com/ivlev/animstudio/internal/scene"
)

// Frame rasterizes one snapshot.
func Frame(s *scene.Snapshot) image.Image {
	dc := gg.NewContext(s.Width, s.Height)
	drawBackground(dc, s)
	for _, of := range s.Objects {
		drawObject(dc, of, 1, nil)
	}
	return dc.Image()
}

// FrameWithOnion rasterizes the edited frame with ghost overlays beneath it,
// so the current drawing always reads on top.
func FrameWithOnion(s *scene.Snapshot, ghosts []scene.Ghost) image.Image {
	dc := gg.NewContext(s.Width, s.Height)
	drawBackground(dc, s)
	for _, g := range ghosts {
		tint := g.Tint
		tint.A = g.Alpha
		for _, of := range g.Snapshot.Objects {
			drawObject(dc, of, g.Alpha, &tint)
		}
	}
	for _, of := range s.Objects {
		drawObject(dc, of, 1, nil)
	}
	return dc.Image()
}

func drawBackground(dc *gg.Context, s *scene.Snapshot) {
	bg := s.Background.Clamped()
	dc.SetRGBA(bg.R, bg.G, bg.B, bg.A)
	dc.Clear()
}

// drawObject paints one compositing entry. alpha scales the final opacity on
// top of the layer opacity; tint, when set, multiplies the RGB channels
// (used for onion-skin ghosts).
func drawObject(dc *gg.Context, of scene.ObjectFrame, alpha float64, tint *anim.Color) {
	st := of.State
	dc.Push()
	dc.Translate(st.Position.X, st.Position.Y)
	dc.Rotate(st.Rotation)
	dc.Scale(st.Scale.X, st.Scale.Y)

	tracePath(dc, of.Geometry)

	fill := paintColor(st.Fill, of.LayerOpacity*alpha, tint)
	stroke := paintColor(st.Stroke, of.LayerOpacity*alpha, tint)

	closedShape := of.Geometry.Kind() != project.GeometryLine
	if closedShape {
		dc.SetRGBA(fill.R, fill.G, fill.B, fill.A)
		dc.FillPreserve()
	}
	if st.StrokeWidth > 0 {
		dc.SetRGBA(stroke.R, stroke.G, stroke.B, stroke.A)
		dc.SetLineWidth(st.StrokeWidth)
		dc.Stroke()
	} else {
		dc.ClearPath()
	}
	dc.Pop()
}

func paintColor(c anim.Color, opacity float64, tint *anim.Color) anim.Color {
	if tint != nil {
		c = anim.Color{R: c.R * tint.R, G: c.G * tint.G, B: c.B * tint.B, A: tint.A}
	}
	c.A *= opacity
	return c.Clamped()
}

// tracePath builds the geometry outline in object-local coordinates,
// centered on the origin.
func tracePath(dc *gg.Context, g project.Geometry) {
	switch s := g.(type) {
	case project.Rectangle:
		if s.CornerRadius > 0 {
			dc.DrawRoundedRectangle(-s.Width/2, -s.Height/2, s.Width, s.Height, s.CornerRadius)
		} else {
			dc.DrawRectangle(-s.Width/2, -s.Height/2, s.Width, s.Height)
		}
	case project.Ellipse:
		dc.DrawEllipse(0, 0, s.RadiusX, s.RadiusY)
	case project.Line:
		dc.MoveTo(0, 0)
		dc.LineTo(s.EndX, s.EndY)
	case project.Path:
		if len(s.Points) == 0 {
			return
		}
		dc.MoveTo(s.Points[0].Position.X, s.Points[0].Position.Y)
		for i := 1; i < len(s.Points); i++ {
			prev := s.Points[i-1]
			pt := s.Points[i]
			if prev.HasOut || pt.HasIn {
				c1 := prev.Position
				if prev.HasOut {
					c1 = prev.ControlOut
				}
				c2 := pt.Position
				if pt.HasIn {
					c2 = pt.ControlIn
				}
				dc.CubicTo(c1.X, c1.Y, c2.X, c2.Y, pt.Position.X, pt.Position.Y)
			} else {
				dc.LineTo(pt.Position.X, pt.Position.Y)
			}
		}
		if s.Closed {
			dc.ClosePath()
		}
	}
}
