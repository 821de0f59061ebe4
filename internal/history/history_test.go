package history

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
)

func newProjectWithObject(t *testing.T) (*project.Project, *project.Object) {
	t.Helper()
	p := project.New("test", 24, 120)
	l, ok := p.LayerAt(0)
	require.True(t, ok)
	o := project.NewObject("dot", project.Ellipse{RadiusX: 5, RadiusY: 5})
	l.InsertObject(0, o)
	return p, o
}

func TestUndoRedoRoundTrip(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)

	for i := 0; i < 5; i++ {
		err := h.Execute(p, &SetKeyframe{
			ObjectID: o.ID,
			Property: anim.PropStrokeWidth,
			Keyframe: anim.Keyframe{Frame: i * 10, Value: anim.Scalar(float64(i))},
		})
		require.NoError(t, err)
	}
	require.Equal(t, 5, o.Track(anim.PropStrokeWidth).Len())

	for h.CanUndo() {
		_, err := h.Undo(p)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, o.Track(anim.PropStrokeWidth).Len())

	for h.CanRedo() {
		_, err := h.Redo(p)
		require.NoError(t, err)
	}
	assert.Equal(t, 5, o.Track(anim.PropStrokeWidth).Len())
}

func TestExecuteAfterUndoDiscardsRedo(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)

	require.NoError(t, h.Execute(p, &TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 1}}))
	require.NoError(t, h.Execute(p, &TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 2}}))
	_, err := h.Undo(p)
	require.NoError(t, err)
	require.True(t, h.CanRedo())

	require.NoError(t, h.Execute(p, &TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{Y: 1}}))
	assert.False(t, h.CanRedo(), "a new command starts a new branch of history")
}

func TestMaxDepthDropsOldest(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(2)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.Execute(p, &TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 1}}))
	}
	assert.Equal(t, 2, h.UndoDepth())

	// Only the two newest commands can be unwound.
	_, err := h.Undo(p)
	require.NoError(t, err)
	_, err = h.Undo(p)
	require.NoError(t, err)
	_, err = h.Undo(p)
	assert.ErrorIs(t, err, project.ErrEmptyHistory)
	assert.Equal(t, 1.0, o.Position.X, "the dropped oldest command stays applied")
}

func TestEmptyStacks(t *testing.T) {
	p, _ := newProjectWithObject(t)
	h := New(0)

	_, err := h.Undo(p)
	assert.ErrorIs(t, err, project.ErrEmptyHistory)
	_, err = h.Redo(p)
	assert.ErrorIs(t, err, project.ErrEmptyHistory)
}

func TestFailedApplyRecordsNothing(t *testing.T) {
	p, _ := newProjectWithObject(t)
	h := New(0)

	err := h.Execute(p, &RemoveObject{ObjectID: uuid.New()})
	assert.ErrorIs(t, err, project.ErrUnknownEntity)
	assert.False(t, h.CanUndo())
}

func TestSetKeyframeRevertRestoresReplaced(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)

	require.NoError(t, h.Execute(p, &SetKeyframe{
		ObjectID: o.ID,
		Property: anim.PropStrokeWidth,
		Keyframe: anim.Keyframe{Frame: 5, Value: anim.Scalar(1), Easing: anim.EasingOut},
	}))
	require.NoError(t, h.Execute(p, &SetKeyframe{
		ObjectID: o.ID,
		Property: anim.PropStrokeWidth,
		Keyframe: anim.Keyframe{Frame: 5, Value: anim.Scalar(9)},
	}))

	_, err := h.Undo(p)
	require.NoError(t, err)
	k, ok := o.Track(anim.PropStrokeWidth).At(5)
	require.True(t, ok)
	assert.Equal(t, 1.0, k.Value.Scalar)
	assert.Equal(t, anim.EasingOut, k.Easing)
}

func TestDeleteKeyframeUndo(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)
	require.NoError(t, p.SetKeyframe(o.ID, anim.PropRotation, anim.Keyframe{Frame: 7, Value: anim.Angle(1.5)}))

	require.NoError(t, h.Execute(p, &DeleteKeyframe{ObjectID: o.ID, Property: anim.PropRotation, Frame: 7}))
	assert.Equal(t, 0, o.Track(anim.PropRotation).Len())

	_, err := h.Undo(p)
	require.NoError(t, err)
	k, ok := o.Track(anim.PropRotation).At(7)
	require.True(t, ok)
	assert.Equal(t, 1.5, k.Value.Scalar)
}

func TestCompositeAtomicity(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)

	cmd := NewComposite("broken gesture")
	cmd.Append(&TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 10}})
	cmd.Append(&RemoveObject{ObjectID: uuid.New()})

	err := h.Execute(p, cmd)
	assert.ErrorIs(t, err, project.ErrUnknownEntity)
	assert.Equal(t, 0.0, o.Position.X, "applied prefix rolled back")
	assert.False(t, h.CanUndo())
}

func TestCompositeRevertsInReverse(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)

	cmd := NewComposite("nudge twice")
	cmd.Append(&TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 3}})
	cmd.Append(&TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 4}})
	require.NoError(t, h.Execute(p, cmd))
	assert.Equal(t, 7.0, o.Position.X)

	_, err := h.Undo(p)
	require.NoError(t, err)
	assert.Equal(t, 0.0, o.Position.X)
	assert.Equal(t, 1, h.RedoDepth())
}

func TestRemoveLayerRevertRestoresEverything(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)
	l, _ := p.LayerAt(0)
	require.NoError(t, p.SetKeyframe(o.ID, anim.PropStrokeWidth, anim.Keyframe{Frame: 3, Value: anim.Scalar(2)}))
	p.Select(o.ID)

	require.NoError(t, h.Execute(p, &RemoveLayer{LayerID: l.ID}))
	assert.Equal(t, 0, p.LayerCount())
	assert.False(t, p.IsSelected(o.ID))

	_, err := h.Undo(p)
	require.NoError(t, err)
	require.Equal(t, 1, p.LayerCount())
	_, restored, ok := p.Object(o.ID)
	require.True(t, ok)
	assert.Equal(t, 1, restored.Track(anim.PropStrokeWidth).Len())
	assert.True(t, p.IsSelected(o.ID))
}

func TestTranslateObjectShiftsTrack(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)
	require.NoError(t, p.SetKeyframe(o.ID, anim.PropPosition, anim.Keyframe{Frame: 0, Value: anim.Vec(10, 10)}))
	require.NoError(t, p.SetKeyframe(o.ID, anim.PropPosition, anim.Keyframe{Frame: 10, Value: anim.Vec(50, 10)}))

	require.NoError(t, h.Execute(p, &TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 5, Y: -5}}))
	keys := o.Track(anim.PropPosition).Keys()
	assert.Equal(t, anim.Vec2{X: 15, Y: 5}, keys[0].Value.Vec)
	assert.Equal(t, anim.Vec2{X: 55, Y: 5}, keys[1].Value.Vec)

	_, err := h.Undo(p)
	require.NoError(t, err)
	keys = o.Track(anim.PropPosition).Keys()
	assert.Equal(t, anim.Vec2{X: 10, Y: 10}, keys[0].Value.Vec)
}

func TestRevAdvancesAcrossUndo(t *testing.T) {
	p, o := newProjectWithObject(t)
	h := New(0)

	require.NoError(t, h.Execute(p, &TranslateObject{ObjectID: o.ID, Delta: anim.Vec2{X: 1}}))
	afterExec := p.Rev()
	_, err := h.Undo(p)
	require.NoError(t, err)
	assert.Greater(t, p.Rev(), afterExec, "undo is a mutation too")
}
