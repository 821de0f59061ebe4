package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/tween"
)

func TestBouncingBallStructure(t *testing.T) {
	e, err := BouncingBall(24, 120)
	require.NoError(t, err)
	p := e.Project()

	require.Equal(t, 2, p.LayerCount())
	ballLayer, _ := p.LayerAt(0)
	effects, _ := p.LayerAt(1)
	assert.Equal(t, "Ball", ballLayer.Name)
	assert.Equal(t, "Effects", effects.Name)
	assert.True(t, effects.Locked, "generation writes through the lock")

	require.Equal(t, 1, ballLayer.ObjectCount())
	require.Equal(t, 1, effects.ObjectCount())

	ball := ballLayer.Objects()[0]
	assert.ElementsMatch(t,
		[]anim.Property{anim.PropPosition, anim.PropScale},
		ball.AnimatedProperties())

	shadow := effects.Objects()[0]
	assert.ElementsMatch(t,
		[]anim.Property{anim.PropScale, anim.PropFill},
		shadow.AnimatedProperties())
}

func TestBouncingBallKeyframesInRange(t *testing.T) {
	e, err := BouncingBall(24, 120)
	require.NoError(t, err)
	p := e.Project()

	for _, l := range p.Layers() {
		for _, o := range l.Objects() {
			for _, prop := range o.AnimatedProperties() {
				for _, k := range o.Track(prop).Keys() {
					assert.NoError(t, p.ValidFrame(k.Frame), "%s %s frame %d", o.Name, prop, k.Frame)
				}
			}
		}
	}
}

func TestBouncingBallStartsHighEndsOnGround(t *testing.T) {
	e, err := BouncingBall(24, 120)
	require.NoError(t, err)
	p := e.Project()
	ballLayer, _ := p.LayerAt(0)
	ball := ballLayer.Objects()[0]

	first := tween.Resolve(ball, anim.PropPosition, 0)
	last := tween.Resolve(ball, anim.PropPosition, p.TotalFrames-1)
	assert.Less(t, first.Vec.Y, last.Vec.Y, "canvas Y grows downward")
}

func TestBouncingBallBouncesDecay(t *testing.T) {
	e, err := BouncingBall(24, 240)
	require.NoError(t, err)
	p := e.Project()
	ballLayer, _ := p.LayerAt(0)
	ball := ballLayer.Objects()[0]

	// Peaks are the local minima of Y along the position track.
	keys := ball.Track(anim.PropPosition).Keys()
	var peaks []float64
	for i := 1; i < len(keys)-1; i++ {
		y := keys[i].Value.Vec.Y
		if y < keys[i-1].Value.Vec.Y && y < keys[i+1].Value.Vec.Y {
			peaks = append(peaks, y)
		}
	}
	require.GreaterOrEqual(t, len(peaks), 2)
	for i := 1; i < len(peaks); i++ {
		assert.Greater(t, peaks[i], peaks[i-1], "each bounce peaks lower")
	}
}

func TestBouncingBallFullyUndoable(t *testing.T) {
	e, err := BouncingBall(24, 120)
	require.NoError(t, err)
	p := e.Project()

	for e.History().CanUndo() {
		require.NoError(t, e.Undo())
	}
	require.Equal(t, 1, p.LayerCount(), "back to the fresh-project shape")
	l, _ := p.LayerAt(0)
	assert.Equal(t, 0, l.ObjectCount())
}
