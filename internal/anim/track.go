package anim

import "sort"

// Keyframe pins a property value at a frame. Easing governs interpolation
// from this keyframe to the next one on the track.
type Keyframe struct {
	Frame  int
	Value  Value
	Easing Easing
}

// Track is the sparse, frame-ordered set of keyframes for one property of one
// object. Keys are kept sorted by frame so bracket lookup stays O(log k)
// during playback.
type Track struct {
	keys []Keyframe
}

// Len reports the number of keyframes on the track.
func (t *Track) Len() int {
	return len(t.keys)
}

// Set inserts a keyframe, replacing any existing keyframe at the same frame.
func (t *Track) Set(k Keyframe) {
	i := sort.Search(len(t.keys), func(j int) bool { return t.keys[j].Frame >= k.Frame })
	if i < len(t.keys) && t.keys[i].Frame == k.Frame {
		t.keys[i] = k
		return
	}
	t.keys = append(t.keys, Keyframe{})
	copy(t.keys[i+1:], t.keys[i:])
	t.keys[i] = k
}

// Delete removes the keyframe at frame, reporting whether one was present.
func (t *Track) Delete(frame int) (Keyframe, bool) {
	i := sort.Search(len(t.keys), func(j int) bool { return t.keys[j].Frame >= frame })
	if i >= len(t.keys) || t.keys[i].Frame != frame {
		return Keyframe{}, false
	}
	removed := t.keys[i]
	t.keys = append(t.keys[:i], t.keys[i+1:]...)
	return removed, true
}

// At returns the keyframe exactly at frame, if any.
func (t *Track) At(frame int) (Keyframe, bool) {
	i := sort.Search(len(t.keys), func(j int) bool { return t.keys[j].Frame >= frame })
	if i < len(t.keys) && t.keys[i].Frame == frame {
		return t.keys[i], true
	}
	return Keyframe{}, false
}

// Keys returns a copy of the keyframes in frame order.
func (t *Track) Keys() []Keyframe {
	out := make([]Keyframe, len(t.keys))
	copy(out, t.keys)
	return out
}

// Bracket locates the keyframe pair (ka, kb) with ka.Frame ≤ frame ≤ kb.Frame.
// Outside the covered range, or on a single-key track, ka == kb (the boundary
// value holds, there is no extrapolation). ok is false on an empty track.
func (t *Track) Bracket(frame int) (ka, kb Keyframe, ok bool) {
	if len(t.keys) == 0 {
		return Keyframe{}, Keyframe{}, false
	}
	i := sort.Search(len(t.keys), func(j int) bool { return t.keys[j].Frame > frame })
	switch {
	case i == 0:
		return t.keys[0], t.keys[0], true
	case i == len(t.keys):
		last := t.keys[len(t.keys)-1]
		return last, last, true
	default:
		return t.keys[i-1], t.keys[i], true
	}
}

// Clone deep-copies the track.
func (t *Track) Clone() *Track {
	c := &Track{keys: make([]Keyframe, len(t.keys))}
	copy(c.keys, t.keys)
	return c
}
