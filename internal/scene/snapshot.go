// Package scene composes the layer graph and the tween resolver into
// render-ready frame descriptions. Building a snapshot never mutates project
// state; it is a pure read-side composition.
package scene

import (
	"github.com/google/uuid"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
	"github.com/ivlev/animstudio/internal/tween"
)

// ObjectFrame is one entry of the compositing list: an object's geometry plus
// its resolved transform and appearance at the snapshot's frame.
type ObjectFrame struct {
	ObjectID     uuid.UUID
	LayerID      uuid.UUID
	LayerOpacity float64
	Geometry     project.Geometry
	State        tween.State
}

// Snapshot is the fully resolved description of one frame. Objects are listed
// in painter's order: the first entry is drawn first (bottom layer, backmost
// object), so a renderer just walks the slice.
type Snapshot struct {
	Frame      int
	Width      int
	Height     int
	Background anim.Color
	Objects    []ObjectFrame
}

// Ghost is a reduced-opacity overlay of an adjacent frame for onion
// skinning. Offset is relative to the edited frame (negative = before). Tint
// multiplies object colors; Alpha replaces their opacity.
type Ghost struct {
	Offset   int
	Alpha    float64
	Tint     anim.Color
	Snapshot *Snapshot
}

// BuildFrame resolves every visible layer's objects at the given frame.
// Hidden layers are skipped entirely; locked layers still render (the lock
// guards editing intent, not output).
func BuildFrame(p *project.Project, frame int) (*Snapshot, error) {
	if err := p.ValidFrame(frame); err != nil {
		return nil, err
	}
	s := &Snapshot{
		Frame:      frame,
		Width:      p.CanvasWidth,
		Height:     p.CanvasHeight,
		Background: p.Background,
	}
	layers := p.Layers()
	// Layers are stored top-to-bottom; painter's order walks them bottom-up.
	for i := len(layers) - 1; i >= 0; i-- {
		l := layers[i]
		if !l.Visible {
			continue
		}
		for _, o := range l.Objects() {
			s.Objects = append(s.Objects, ObjectFrame{
				ObjectID:     o.ID,
				LayerID:      l.ID,
				LayerOpacity: l.Opacity,
				Geometry:     o.Geometry,
				State:        tween.ResolveObject(o, frame),
			})
		}
	}
	return s, nil
}
