package project

import (
	"sort"

	"github.com/google/uuid"

	"github.com/ivlev/animstudio/internal/anim"
)

// Project is the root aggregate: an ordered sequence of layers (top to
// bottom), the global timing parameters, and the transient selection. All
// mutation happens on a single logical thread; the revision counter lets
// read-side caches detect any change.
type Project struct {
	Name         string
	CanvasWidth  int
	CanvasHeight int
	Background   anim.Color
	FrameRate    int
	TotalFrames  int

	layers    []*Layer
	selection map[uuid.UUID]struct{}
	rev       uint64
}

// New creates a project with a single empty layer, mirroring a fresh
// authoring session.
func New(name string, frameRate, totalFrames int) *Project {
	p := &Project{
		Name:         name,
		CanvasWidth:  1920,
		CanvasHeight: 1080,
		Background:   anim.Color{R: 1, G: 1, B: 1, A: 1},
		FrameRate:    frameRate,
		TotalFrames:  totalFrames,
		selection:    make(map[uuid.UUID]struct{}),
	}
	p.layers = []*Layer{NewLayer("Layer 1")}
	return p
}

// Empty creates a project without any layers, for use by the document codec.
func Empty(name string, frameRate, totalFrames int) *Project {
	p := New(name, frameRate, totalFrames)
	p.layers = nil
	return p
}

// Rev is the revision counter. It advances on every mutation and never goes
// backwards, including across undo.
func (p *Project) Rev() uint64 {
	return p.rev
}

// Touch advances the revision counter, invalidating read-side caches.
func (p *Project) Touch() {
	p.rev++
}

// ValidFrame checks a frame index against [0, TotalFrames).
func (p *Project) ValidFrame(frame int) error {
	if frame < 0 || frame >= p.TotalFrames {
		return ErrInvalidFrame
	}
	return nil
}

// Layers returns the layers in top-to-bottom order.
func (p *Project) Layers() []*Layer {
	out := make([]*Layer, len(p.layers))
	copy(out, p.layers)
	return out
}

// LayerCount reports the number of layers.
func (p *Project) LayerCount() int {
	return len(p.layers)
}

// Layer looks up a layer by identifier.
func (p *Project) Layer(id uuid.UUID) (*Layer, bool) {
	for _, l := range p.layers {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// LayerIndex returns the position of a layer, or -1.
func (p *Project) LayerIndex(id uuid.UUID) int {
	for i, l := range p.layers {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// LayerAt returns the layer at an index.
func (p *Project) LayerAt(index int) (*Layer, bool) {
	if index < 0 || index >= len(p.layers) {
		return nil, false
	}
	return p.layers[index], true
}

// Object finds an object anywhere in the graph, together with its owning
// layer.
func (p *Project) Object(id uuid.UUID) (*Layer, *Object, bool) {
	for _, l := range p.layers {
		if o, ok := l.Object(id); ok {
			return l, o, true
		}
	}
	return nil, nil, false
}

// InsertLayer places a layer at the given index (clamped).
func (p *Project) InsertLayer(index int, l *Layer) {
	if index < 0 {
		index = 0
	}
	if index > len(p.layers) {
		index = len(p.layers)
	}
	p.layers = append(p.layers, nil)
	copy(p.layers[index+1:], p.layers[index:])
	p.layers[index] = l
	p.Touch()
}

// RemoveLayer detaches a layer, returning it and the index it occupied.
func (p *Project) RemoveLayer(id uuid.UUID) (*Layer, int, error) {
	i := p.LayerIndex(id)
	if i < 0 {
		return nil, 0, ErrUnknownEntity
	}
	l := p.layers[i]
	p.layers = append(p.layers[:i], p.layers[i+1:]...)
	p.Touch()
	return l, i, nil
}

// MoveLayer shifts a layer from one index to another.
func (p *Project) MoveLayer(from, to int) error {
	if from < 0 || from >= len(p.layers) || to < 0 || to >= len(p.layers) {
		return ErrUnknownEntity
	}
	l := p.layers[from]
	p.layers = append(p.layers[:from], p.layers[from+1:]...)
	p.layers = append(p.layers, nil)
	copy(p.layers[to+1:], p.layers[to:])
	p.layers[to] = l
	p.Touch()
	return nil
}

// SetKeyframe inserts or replaces a keyframe on an object's property track.
// It validates the frame range and the value kind before touching any state.
func (p *Project) SetKeyframe(objectID uuid.UUID, prop anim.Property, k anim.Keyframe) error {
	if err := p.ValidFrame(k.Frame); err != nil {
		return err
	}
	if k.Value.Kind != prop.Kind() {
		return ErrValueKind
	}
	_, o, ok := p.Object(objectID)
	if !ok {
		return ErrUnknownEntity
	}
	o.EnsureTrack(prop).Set(k)
	p.Touch()
	return nil
}

// DeleteKeyframe removes the keyframe at frame, if present. Absence is not an
// error; removed reports whether anything changed.
func (p *Project) DeleteKeyframe(objectID uuid.UUID, prop anim.Property, frame int) (anim.Keyframe, bool, error) {
	if frame < 0 || frame >= p.TotalFrames {
		return anim.Keyframe{}, false, ErrInvalidFrame
	}
	_, o, ok := p.Object(objectID)
	if !ok {
		return anim.Keyframe{}, false, ErrUnknownEntity
	}
	t := o.Track(prop)
	if t == nil {
		return anim.Keyframe{}, false, nil
	}
	removed, found := t.Delete(frame)
	if found {
		p.Touch()
	}
	return removed, found, nil
}

// KeyframesOf returns the keyframes of one property track in frame order.
func (p *Project) KeyframesOf(objectID uuid.UUID, prop anim.Property) ([]anim.Keyframe, error) {
	_, o, ok := p.Object(objectID)
	if !ok {
		return nil, ErrUnknownEntity
	}
	t := o.Track(prop)
	if t == nil {
		return nil, nil
	}
	return t.Keys(), nil
}

// Select adds objects to the selection. Unknown identifiers are ignored.
func (p *Project) Select(ids ...uuid.UUID) {
	for _, id := range ids {
		if _, _, ok := p.Object(id); ok {
			p.selection[id] = struct{}{}
		}
	}
}

// Deselect removes objects from the selection.
func (p *Project) Deselect(ids ...uuid.UUID) {
	for _, id := range ids {
		delete(p.selection, id)
	}
}

// ClearSelection empties the selection.
func (p *Project) ClearSelection() {
	p.selection = make(map[uuid.UUID]struct{})
}

// IsSelected reports whether an object is selected.
func (p *Project) IsSelected(id uuid.UUID) bool {
	_, ok := p.selection[id]
	return ok
}

// Selected returns the selected object identifiers in a deterministic order.
func (p *Project) Selected() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(p.selection))
	for id := range p.selection {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
