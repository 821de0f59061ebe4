// Package editor is the single mutation surface of the authoring core. Every
// state change, user-driven or programmatic, is wrapped in a command and
// recorded in the project's history, so any action can be undone atomically.
//
// Intent methods model tool/UI gestures and honor layer locks. The
// programmatic Apply path (used by generators and tests) skips the lock
// check: the lock is a UI-intent guard, not a data-integrity guard.
package editor

import (
	"github.com/google/uuid"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/history"
	"github.com/ivlev/animstudio/internal/project"
)

type Editor struct {
	project *project.Project
	history *history.History
}

// New wires an editor around a project. maxHistoryDepth bounds the undo
// stack (0 = unlimited, oldest dropped on overflow).
func New(p *project.Project, maxHistoryDepth int) *Editor {
	return &Editor{
		project: p,
		history: history.New(maxHistoryDepth),
	}
}

func (e *Editor) Project() *project.Project { return e.project }
func (e *Editor) History() *history.History { return e.history }

// Apply executes a command programmatically, bypassing layer locks but still
// recording it for undo.
func (e *Editor) Apply(cmd history.Command) error {
	return e.history.Execute(e.project, cmd)
}

// Undo reverts the latest command. An empty history is a harmless no-op.
func (e *Editor) Undo() error {
	if _, err := e.history.Undo(e.project); err != nil && err != project.ErrEmptyHistory {
		return err
	}
	return nil
}

// Redo re-applies the latest undone command. An empty redo stack is a
// harmless no-op.
func (e *Editor) Redo() error {
	if _, err := e.history.Redo(e.project); err != nil && err != project.ErrEmptyHistory {
		return err
	}
	return nil
}

// AddLayer creates a layer on top of the stack.
func (e *Editor) AddLayer(name string) (*project.Layer, error) {
	l := project.NewLayer(name)
	if err := e.Apply(&history.AddLayer{Layer: l, Index: 0}); err != nil {
		return nil, err
	}
	return l, nil
}

// DeleteLayer removes a layer and cascades to every object it owns, as one
// undoable unit.
func (e *Editor) DeleteLayer(id uuid.UUID) error {
	if _, ok := e.project.Layer(id); !ok {
		return project.ErrUnknownEntity
	}
	return e.Apply(&history.RemoveLayer{LayerID: id})
}

// MoveLayer reorders the layer stack.
func (e *Editor) MoveLayer(id uuid.UUID, to int) error {
	from := e.project.LayerIndex(id)
	if from < 0 {
		return project.ErrUnknownEntity
	}
	if to == from {
		return nil
	}
	return e.Apply(&history.MoveLayer{From: from, To: to})
}

// SetLayerVisible toggles visibility. Allowed on locked layers: it does not
// touch layer content.
func (e *Editor) SetLayerVisible(id uuid.UUID, visible bool) error {
	return e.Apply(&history.SetLayerVisible{LayerID: id, Visible: visible})
}

// SetLayerLocked toggles the lock flag.
func (e *Editor) SetLayerLocked(id uuid.UUID, locked bool) error {
	return e.Apply(&history.SetLayerLocked{LayerID: id, Locked: locked})
}

// SetLayerOpacity sets the compositing opacity, clamped to [0,1].
func (e *Editor) SetLayerOpacity(id uuid.UUID, opacity float64) error {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return e.Apply(&history.SetLayerOpacity{LayerID: id, Opacity: opacity})
}

// AddObject creates an object on a layer at a position. Rejected with
// ErrLayerLocked when the layer is locked.
func (e *Editor) AddObject(layerID uuid.UUID, name string, g project.Geometry, at anim.Vec2) (*project.Object, error) {
	l, ok := e.project.Layer(layerID)
	if !ok {
		return nil, project.ErrUnknownEntity
	}
	if l.Locked {
		return nil, project.ErrLayerLocked
	}
	o := project.NewObject(name, g)
	o.Position = at
	if err := e.Apply(&history.AddObject{LayerID: layerID, Object: o, Index: -1}); err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteObject removes an object, its keyframe tracks, and its selection
// membership as one atomic command.
func (e *Editor) DeleteObject(id uuid.UUID) error {
	l, _, ok := e.project.Object(id)
	if !ok {
		return project.ErrUnknownEntity
	}
	if l.Locked {
		return project.ErrLayerLocked
	}
	return e.Apply(&history.RemoveObject{ObjectID: id})
}

// ReparentObject moves an object to another layer, keeping its identity and
// keyframe tracks. Both layers must be unlocked.
func (e *Editor) ReparentObject(id, toLayer uuid.UUID, toIndex int) error {
	from, _, ok := e.project.Object(id)
	if !ok {
		return project.ErrUnknownEntity
	}
	target, ok := e.project.Layer(toLayer)
	if !ok {
		return project.ErrUnknownEntity
	}
	if from.Locked || target.Locked {
		return project.ErrLayerLocked
	}
	return e.Apply(&history.ReparentObject{ObjectID: id, ToLayerID: toLayer, ToIndex: toIndex})
}

// SetKeyframe inserts or replaces a keyframe through the intent path.
func (e *Editor) SetKeyframe(objectID uuid.UUID, prop anim.Property, frame int, v anim.Value, easing anim.Easing) error {
	l, _, ok := e.project.Object(objectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	if l.Locked {
		return project.ErrLayerLocked
	}
	return e.Apply(&history.SetKeyframe{
		ObjectID: objectID,
		Property: prop,
		Keyframe: anim.Keyframe{Frame: frame, Value: v, Easing: easing},
	})
}

// DeleteKeyframe removes a keyframe through the intent path.
func (e *Editor) DeleteKeyframe(objectID uuid.UUID, prop anim.Property, frame int) error {
	l, _, ok := e.project.Object(objectID)
	if !ok {
		return project.ErrUnknownEntity
	}
	if l.Locked {
		return project.ErrLayerLocked
	}
	return e.Apply(&history.DeleteKeyframe{ObjectID: objectID, Property: prop, Frame: frame})
}

// Select replaces the selection. Selection is transient and not undoable.
func (e *Editor) Select(ids ...uuid.UUID) {
	e.project.ClearSelection()
	e.project.Select(ids...)
}

// SelectAlso extends the selection.
func (e *Editor) SelectAlso(ids ...uuid.UUID) {
	e.project.Select(ids...)
}

// ClearSelection empties the selection.
func (e *Editor) ClearSelection() {
	e.project.ClearSelection()
}

// MoveSelection translates every selected object by a delta as one composite
// command. If any selected object sits on a locked layer the whole gesture is
// rejected and nothing moves.
func (e *Editor) MoveSelection(delta anim.Vec2) error {
	selected := e.project.Selected()
	if len(selected) == 0 {
		return nil
	}
	cmd := history.NewComposite("move selection")
	for _, id := range selected {
		l, _, ok := e.project.Object(id)
		if !ok {
			return project.ErrUnknownEntity
		}
		if l.Locked {
			return project.ErrLayerLocked
		}
		cmd.Append(&history.TranslateObject{ObjectID: id, Delta: delta})
	}
	return e.Apply(cmd)
}

// zOrderEdge moves the selection to the front or back of each owning layer.
func (e *Editor) zOrderEdge(name string, front bool) error {
	selected := e.project.Selected()
	if len(selected) == 0 {
		return nil
	}
	cmd := history.NewComposite(name)
	for _, l := range e.project.Layers() {
		locked := l.Locked
		// Walk the selected objects of this layer in z-order so relative
		// order inside the selection is preserved.
		var hit []int
		for i, o := range l.Objects() {
			if e.project.IsSelected(o.ID) {
				hit = append(hit, i)
			}
		}
		if len(hit) == 0 {
			continue
		}
		if locked {
			return project.ErrLayerLocked
		}
		top := l.ObjectCount() - 1
		if front {
			// Bottom-most selected first. Each move shifts the later ones
			// down by one, hence the -i adjustment.
			for i, from := range hit {
				cmd.Append(&history.ReorderObject{LayerID: l.ID, From: from - i, To: top})
			}
		} else {
			// Top-most selected first; earlier moves shift the rest up.
			for i := len(hit) - 1; i >= 0; i-- {
				cmd.Append(&history.ReorderObject{LayerID: l.ID, From: hit[i] + (len(hit) - 1 - i), To: 0})
			}
		}
	}
	if cmd.Len() == 0 {
		return nil
	}
	return e.Apply(cmd)
}

// zOrderStep moves the selection one z-order slot up or down in each owning
// layer. A selected object blocked by the layer edge, or by another selected
// object already against it, stays put.
func (e *Editor) zOrderStep(name string, up bool) error {
	selected := e.project.Selected()
	if len(selected) == 0 {
		return nil
	}
	cmd := history.NewComposite(name)
	for _, l := range e.project.Layers() {
		var hit []int
		for i, o := range l.Objects() {
			if e.project.IsSelected(o.ID) {
				hit = append(hit, i)
			}
		}
		if len(hit) == 0 {
			continue
		}
		if l.Locked {
			return project.ErrLayerLocked
		}
		if up {
			// Top-most first: a one-slot swap never disturbs the selected
			// objects below it.
			ceiling := l.ObjectCount() - 1
			for i := len(hit) - 1; i >= 0; i-- {
				if hit[i] == ceiling {
					ceiling--
					continue
				}
				cmd.Append(&history.ReorderObject{LayerID: l.ID, From: hit[i], To: hit[i] + 1})
			}
		} else {
			floor := 0
			for _, from := range hit {
				if from == floor {
					floor++
					continue
				}
				cmd.Append(&history.ReorderObject{LayerID: l.ID, From: from, To: from - 1})
			}
		}
	}
	if cmd.Len() == 0 {
		return nil
	}
	return e.Apply(cmd)
}

// BringToFront moves the selected objects to the top of their layers.
func (e *Editor) BringToFront() error {
	return e.zOrderEdge("bring to front", true)
}

// SendToBack moves the selected objects to the bottom of their layers.
func (e *Editor) SendToBack() error {
	return e.zOrderEdge("send to back", false)
}

// BringForward moves the selected objects one z-order slot toward the front.
func (e *Editor) BringForward() error {
	return e.zOrderStep("bring forward", true)
}

// SendBackward moves the selected objects one z-order slot toward the back.
func (e *Editor) SendBackward() error {
	return e.zOrderStep("send backward", false)
}
