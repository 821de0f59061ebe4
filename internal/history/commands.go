package history

import (
	"github.com/google/uuid"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
)

// AddLayer inserts a prepared layer at a position in the stacking order.
type AddLayer struct {
	Layer *project.Layer
	Index int
}

func (c *AddLayer) Name() string { return "add layer" }

func (c *AddLayer) Apply(p *project.Project) error {
	p.InsertLayer(c.Index, c.Layer)
	return nil
}

func (c *AddLayer) Revert(p *project.Project) error {
	_, _, err := p.RemoveLayer(c.Layer.ID)
	return err
}

// RemoveLayer deletes a layer together with every object it owns. The layer
// is captured on first apply so revert can restore it, objects, tracks and
// selection entries included, in one step.
type RemoveLayer struct {
	LayerID uuid.UUID

	removed  *project.Layer
	index    int
	selected []uuid.UUID
}

func (c *RemoveLayer) Name() string { return "delete layer" }

func (c *RemoveLayer) Apply(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	c.selected = c.selected[:0]
	for _, o := range l.Objects() {
		if p.IsSelected(o.ID) {
			c.selected = append(c.selected, o.ID)
		}
		p.Deselect(o.ID)
	}
	removed, index, err := p.RemoveLayer(c.LayerID)
	if err != nil {
		return err
	}
	c.removed = removed
	c.index = index
	return nil
}

func (c *RemoveLayer) Revert(p *project.Project) error {
	if c.removed == nil {
		return project.ErrUnknownEntity
	}
	p.InsertLayer(c.index, c.removed)
	p.Select(c.selected...)
	return nil
}

// MoveLayer reorders the layer stack.
type MoveLayer struct {
	From int
	To   int
}

func (c *MoveLayer) Name() string { return "reorder layer" }

func (c *MoveLayer) Apply(p *project.Project) error {
	return p.MoveLayer(c.From, c.To)
}

func (c *MoveLayer) Revert(p *project.Project) error {
	return p.MoveLayer(c.To, c.From)
}

// SetLayerVisible toggles a layer's visibility flag.
type SetLayerVisible struct {
	LayerID uuid.UUID
	Visible bool

	prev bool
}

func (c *SetLayerVisible) Name() string { return "toggle visibility" }

func (c *SetLayerVisible) Apply(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	c.prev = l.Visible
	l.Visible = c.Visible
	return nil
}

func (c *SetLayerVisible) Revert(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	l.Visible = c.prev
	return nil
}

// SetLayerLocked toggles a layer's lock flag.
type SetLayerLocked struct {
	LayerID uuid.UUID
	Locked  bool

	prev bool
}

func (c *SetLayerLocked) Name() string { return "toggle lock" }

func (c *SetLayerLocked) Apply(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	c.prev = l.Locked
	l.Locked = c.Locked
	return nil
}

func (c *SetLayerLocked) Revert(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	l.Locked = c.prev
	return nil
}

// SetLayerOpacity changes a layer's compositing opacity.
type SetLayerOpacity struct {
	LayerID uuid.UUID
	Opacity float64

	prev float64
}

func (c *SetLayerOpacity) Name() string { return "set layer opacity" }

func (c *SetLayerOpacity) Apply(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	c.prev = l.Opacity
	l.Opacity = c.Opacity
	return nil
}

func (c *SetLayerOpacity) Revert(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	l.Opacity = c.prev
	return nil
}

// AddObject inserts a prepared object into a layer. Index -1 appends on top.
type AddObject struct {
	LayerID uuid.UUID
	Object  *project.Object
	Index   int
}

func (c *AddObject) Name() string { return "add object" }

func (c *AddObject) Apply(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	index := c.Index
	if index < 0 {
		index = l.ObjectCount()
	}
	l.InsertObject(index, c.Object)
	return nil
}

func (c *AddObject) Revert(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	if _, _, ok := l.RemoveObject(c.Object.ID); !ok {
		return project.ErrUnknownEntity
	}
	p.Deselect(c.Object.ID)
	return nil
}

// RemoveObject deletes an object. Its keyframe tracks travel with it, so one
// revert restores object, tracks and selection membership together.
type RemoveObject struct {
	ObjectID uuid.UUID

	layerID     uuid.UUID
	index       int
	removed     *project.Object
	wasSelected bool
}

func (c *RemoveObject) Name() string { return "delete object" }

func (c *RemoveObject) Apply(p *project.Project) error {
	l, _, ok := p.Object(c.ObjectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	removed, index, ok := l.RemoveObject(c.ObjectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	c.layerID = l.ID
	c.index = index
	c.removed = removed
	c.wasSelected = p.IsSelected(c.ObjectID)
	p.Deselect(c.ObjectID)
	return nil
}

func (c *RemoveObject) Revert(p *project.Project) error {
	l, ok := p.Layer(c.layerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	l.InsertObject(c.index, c.removed)
	if c.wasSelected {
		p.Select(c.ObjectID)
	}
	return nil
}

// ReparentObject moves an object to another layer. Identity and keyframe
// tracks are untouched; only ownership changes.
type ReparentObject struct {
	ObjectID  uuid.UUID
	ToLayerID uuid.UUID
	ToIndex   int

	fromLayerID uuid.UUID
	fromIndex   int
}

func (c *ReparentObject) Name() string { return "move object to layer" }

func (c *ReparentObject) Apply(p *project.Project) error {
	target, ok := p.Layer(c.ToLayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	from, _, ok := p.Object(c.ObjectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	o, index, _ := from.RemoveObject(c.ObjectID)
	c.fromLayerID = from.ID
	c.fromIndex = index
	to := c.ToIndex
	if to < 0 {
		to = target.ObjectCount()
	}
	target.InsertObject(to, o)
	return nil
}

func (c *ReparentObject) Revert(p *project.Project) error {
	from, _, ok := p.Object(c.ObjectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	origin, ok := p.Layer(c.fromLayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	o, _, _ := from.RemoveObject(c.ObjectID)
	origin.InsertObject(c.fromIndex, o)
	return nil
}

// ReorderObject shifts an object within its layer's z-order.
type ReorderObject struct {
	LayerID uuid.UUID
	From    int
	To      int
}

func (c *ReorderObject) Name() string { return "reorder object" }

func (c *ReorderObject) Apply(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	if !l.MoveObject(c.From, c.To) {
		return project.ErrUnknownEntity
	}
	return nil
}

func (c *ReorderObject) Revert(p *project.Project) error {
	l, ok := p.Layer(c.LayerID)
	if !ok {
		return project.ErrUnknownEntity
	}
	if !l.MoveObject(c.To, c.From) {
		return project.ErrUnknownEntity
	}
	return nil
}

// SetKeyframe inserts or replaces a keyframe. The replaced keyframe, if any,
// is captured on first apply so revert can put it back.
type SetKeyframe struct {
	ObjectID uuid.UUID
	Property anim.Property
	Keyframe anim.Keyframe

	captured bool
	replaced *anim.Keyframe
}

func (c *SetKeyframe) Name() string { return "set keyframe" }

func (c *SetKeyframe) Apply(p *project.Project) error {
	if !c.captured {
		if _, o, ok := p.Object(c.ObjectID); ok {
			if t := o.Track(c.Property); t != nil {
				if prev, found := t.At(c.Keyframe.Frame); found {
					c.replaced = &prev
				}
			}
		}
		c.captured = true
	}
	return p.SetKeyframe(c.ObjectID, c.Property, c.Keyframe)
}

func (c *SetKeyframe) Revert(p *project.Project) error {
	if c.replaced != nil {
		return p.SetKeyframe(c.ObjectID, c.Property, *c.replaced)
	}
	_, _, err := p.DeleteKeyframe(c.ObjectID, c.Property, c.Keyframe.Frame)
	return err
}

// DeleteKeyframe removes a keyframe; a no-op when the frame holds none.
type DeleteKeyframe struct {
	ObjectID uuid.UUID
	Property anim.Property
	Frame    int

	removed *anim.Keyframe
}

func (c *DeleteKeyframe) Name() string { return "delete keyframe" }

func (c *DeleteKeyframe) Apply(p *project.Project) error {
	removed, found, err := p.DeleteKeyframe(c.ObjectID, c.Property, c.Frame)
	if err != nil {
		return err
	}
	if found {
		c.removed = &removed
	} else {
		c.removed = nil
	}
	return nil
}

func (c *DeleteKeyframe) Revert(p *project.Project) error {
	if c.removed == nil {
		return nil
	}
	return p.SetKeyframe(c.ObjectID, c.Property, *c.removed)
}

// TranslateObject shifts an object's base position and every keyframe on its
// position track by a delta. Being a pure delta it needs no captured state.
type TranslateObject struct {
	ObjectID uuid.UUID
	Delta    anim.Vec2
}

func (c *TranslateObject) Name() string { return "move object" }

func (c *TranslateObject) Apply(p *project.Project) error {
	return c.shift(p, c.Delta)
}

func (c *TranslateObject) Revert(p *project.Project) error {
	return c.shift(p, anim.Vec2{X: -c.Delta.X, Y: -c.Delta.Y})
}

func (c *TranslateObject) shift(p *project.Project, d anim.Vec2) error {
	_, o, ok := p.Object(c.ObjectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	o.Position.X += d.X
	o.Position.Y += d.Y
	if t := o.Track(anim.PropPosition); t != nil {
		for _, k := range t.Keys() {
			k.Value.Vec.X += d.X
			k.Value.Vec.Y += d.Y
			t.Set(k)
		}
	}
	p.Touch()
	return nil
}
