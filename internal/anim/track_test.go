package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackSetKeepsFrameOrder(t *testing.T) {
	tr := &Track{}
	tr.Set(Keyframe{Frame: 30, Value: Scalar(3)})
	tr.Set(Keyframe{Frame: 10, Value: Scalar(1)})
	tr.Set(Keyframe{Frame: 20, Value: Scalar(2)})

	keys := tr.Keys()
	require.Len(t, keys, 3)
	assert.Equal(t, []int{10, 20, 30}, []int{keys[0].Frame, keys[1].Frame, keys[2].Frame})
}

func TestTrackSetReplacesOccupiedFrame(t *testing.T) {
	tr := &Track{}
	tr.Set(Keyframe{Frame: 5, Value: Scalar(1)})
	tr.Set(Keyframe{Frame: 5, Value: Scalar(9), Easing: EasingInOut})

	require.Equal(t, 1, tr.Len())
	k, ok := tr.At(5)
	require.True(t, ok)
	assert.Equal(t, 9.0, k.Value.Scalar)
	assert.Equal(t, EasingInOut, k.Easing)
}

func TestTrackDelete(t *testing.T) {
	tr := &Track{}
	tr.Set(Keyframe{Frame: 5, Value: Scalar(1)})

	removed, ok := tr.Delete(5)
	require.True(t, ok)
	assert.Equal(t, 1.0, removed.Value.Scalar)
	assert.Equal(t, 0, tr.Len())

	_, ok = tr.Delete(5)
	assert.False(t, ok, "deleting an absent frame is a no-op")
}

func TestTrackBracket(t *testing.T) {
	tr := &Track{}
	tr.Set(Keyframe{Frame: 10, Value: Scalar(1)})
	tr.Set(Keyframe{Frame: 20, Value: Scalar(2)})
	tr.Set(Keyframe{Frame: 40, Value: Scalar(4)})

	cases := []struct {
		name   string
		frame  int
		wantA  int
		wantB  int
	}{
		{"before first holds first", 3, 10, 10},
		{"on first", 10, 10, 20},
		{"between", 15, 10, 20},
		{"middle pair", 25, 20, 40},
		{"on last", 40, 40, 40},
		{"after last holds last", 99, 40, 40},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ka, kb, ok := tr.Bracket(tc.frame)
			require.True(t, ok)
			assert.Equal(t, tc.wantA, ka.Frame)
			assert.Equal(t, tc.wantB, kb.Frame)
		})
	}
}

func TestTrackBracketEmpty(t *testing.T) {
	tr := &Track{}
	_, _, ok := tr.Bracket(0)
	assert.False(t, ok)
}

func TestTrackBracketSingleKey(t *testing.T) {
	tr := &Track{}
	tr.Set(Keyframe{Frame: 7, Value: Scalar(7)})
	for _, frame := range []int{0, 7, 100} {
		ka, kb, ok := tr.Bracket(frame)
		require.True(t, ok)
		assert.Equal(t, ka, kb)
		assert.Equal(t, 7, ka.Frame)
	}
}

func TestTrackCloneIsIndependent(t *testing.T) {
	tr := &Track{}
	tr.Set(Keyframe{Frame: 1, Value: Scalar(1)})
	c := tr.Clone()
	c.Set(Keyframe{Frame: 2, Value: Scalar(2)})
	assert.Equal(t, 1, tr.Len())
	assert.Equal(t, 2, c.Len())
}
