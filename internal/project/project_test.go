package project

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animstudio/internal/anim"
)

func TestNewProjectHasOneLayer(t *testing.T) {
	p := New("test", 24, 120)
	require.Equal(t, 1, p.LayerCount())
	l, ok := p.LayerAt(0)
	require.True(t, ok)
	assert.Equal(t, "Layer 1", l.Name)
	assert.True(t, l.Visible)
	assert.False(t, l.Locked)
	assert.Equal(t, 1.0, l.Opacity)
}

func TestValidFrame(t *testing.T) {
	p := New("test", 24, 120)
	assert.NoError(t, p.ValidFrame(0))
	assert.NoError(t, p.ValidFrame(119))
	assert.ErrorIs(t, p.ValidFrame(-1), ErrInvalidFrame)
	assert.ErrorIs(t, p.ValidFrame(120), ErrInvalidFrame)
}

func TestRevAdvancesOnMutation(t *testing.T) {
	p := New("test", 24, 120)
	before := p.Rev()
	p.InsertLayer(0, NewLayer("above"))
	assert.Greater(t, p.Rev(), before)
}

func TestLayerStacking(t *testing.T) {
	p := New("test", 24, 120)
	top := NewLayer("top")
	p.InsertLayer(0, top)

	assert.Equal(t, 0, p.LayerIndex(top.ID))
	require.NoError(t, p.MoveLayer(0, 1))
	assert.Equal(t, 1, p.LayerIndex(top.ID))

	removed, index, err := p.RemoveLayer(top.ID)
	require.NoError(t, err)
	assert.Same(t, top, removed)
	assert.Equal(t, 1, index)

	_, _, err = p.RemoveLayer(top.ID)
	assert.ErrorIs(t, err, ErrUnknownEntity)
}

func TestMoveLayerOutOfRange(t *testing.T) {
	p := New("test", 24, 120)
	assert.ErrorIs(t, p.MoveLayer(0, 5), ErrUnknownEntity)
}

func TestObjectLookupAcrossLayers(t *testing.T) {
	p := New("test", 24, 120)
	back := NewLayer("back")
	p.InsertLayer(1, back)
	o := NewObject("dot", Ellipse{RadiusX: 1, RadiusY: 1})
	back.InsertObject(0, o)

	l, found, ok := p.Object(o.ID)
	require.True(t, ok)
	assert.Same(t, back, l)
	assert.Same(t, o, found)

	_, _, ok = p.Object(uuid.New())
	assert.False(t, ok)
}

func TestSetKeyframeValidation(t *testing.T) {
	p := New("test", 24, 120)
	l, _ := p.LayerAt(0)
	o := NewObject("dot", Rectangle{Width: 2, Height: 2})
	l.InsertObject(0, o)

	err := p.SetKeyframe(o.ID, anim.PropPosition, anim.Keyframe{Frame: 200, Value: anim.Vec(0, 0)})
	assert.ErrorIs(t, err, ErrInvalidFrame)

	err = p.SetKeyframe(o.ID, anim.PropPosition, anim.Keyframe{Frame: 10, Value: anim.Scalar(1)})
	assert.ErrorIs(t, err, ErrValueKind)

	err = p.SetKeyframe(uuid.New(), anim.PropPosition, anim.Keyframe{Frame: 10, Value: anim.Vec(0, 0)})
	assert.ErrorIs(t, err, ErrUnknownEntity)

	require.NoError(t, p.SetKeyframe(o.ID, anim.PropPosition, anim.Keyframe{Frame: 10, Value: anim.Vec(5, 5)}))
	keys, err := p.KeyframesOf(o.ID, anim.PropPosition)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, 10, keys[0].Frame)
}

func TestDeleteKeyframeAbsentIsNoError(t *testing.T) {
	p := New("test", 24, 120)
	l, _ := p.LayerAt(0)
	o := NewObject("dot", Rectangle{Width: 2, Height: 2})
	l.InsertObject(0, o)

	_, found, err := p.DeleteKeyframe(o.ID, anim.PropRotation, 10)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSelection(t *testing.T) {
	p := New("test", 24, 120)
	l, _ := p.LayerAt(0)
	a := NewObject("a", Rectangle{Width: 1, Height: 1})
	b := NewObject("b", Rectangle{Width: 1, Height: 1})
	l.InsertObject(0, a)
	l.InsertObject(1, b)

	p.Select(a.ID, b.ID, uuid.New())
	assert.True(t, p.IsSelected(a.ID))
	assert.True(t, p.IsSelected(b.ID))
	assert.Len(t, p.Selected(), 2, "unknown ids are ignored")

	first := p.Selected()
	second := p.Selected()
	assert.Equal(t, first, second, "selection order is deterministic")

	p.Deselect(a.ID)
	assert.False(t, p.IsSelected(a.ID))
	p.ClearSelection()
	assert.Empty(t, p.Selected())
}

func TestLayerObjectOrder(t *testing.T) {
	l := NewLayer("l")
	a := NewObject("a", Rectangle{Width: 1, Height: 1})
	b := NewObject("b", Rectangle{Width: 1, Height: 1})
	c := NewObject("c", Rectangle{Width: 1, Height: 1})
	l.InsertObject(0, a)
	l.InsertObject(1, b)
	l.InsertObject(99, c) // clamped to append

	assert.Equal(t, 2, l.ObjectIndex(c.ID))
	require.True(t, l.MoveObject(0, 2))
	assert.Equal(t, []string{"b", "c", "a"}, layerNames(l))

	removed, index, ok := l.RemoveObject(c.ID)
	require.True(t, ok)
	assert.Same(t, c, removed)
	assert.Equal(t, 1, index)
}

func layerNames(l *Layer) []string {
	var out []string
	for _, o := range l.Objects() {
		out = append(out, o.Name)
	}
	return out
}

func TestObjectCloneKeepsIdentityDeepCopiesTracks(t *testing.T) {
	o := NewObject("a", Rectangle{Width: 1, Height: 1})
	o.EnsureTrack(anim.PropRotation).Set(anim.Keyframe{Frame: 1, Value: anim.Angle(1)})

	c := o.Clone()
	assert.Equal(t, o.ID, c.ID)
	c.Track(anim.PropRotation).Set(anim.Keyframe{Frame: 2, Value: anim.Angle(2)})
	assert.Equal(t, 1, o.Track(anim.PropRotation).Len())
}
