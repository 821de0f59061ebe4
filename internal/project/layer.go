package project

import "github.com/google/uuid"

// Layer owns an ordered sequence of objects. The sequence order is the
// z-order: earlier objects sit behind later ones. Layers themselves are
// ordered top-to-bottom in the project for compositing.
type Layer struct {
	ID      uuid.UUID
	Name    string
	Visible bool
	Locked  bool
	Opacity float64

	objects []*Object
}

// NewLayer allocates a visible, unlocked, fully opaque layer.
func NewLayer(name string) *Layer {
	return &Layer{
		ID:      uuid.New(),
		Name:    name,
		Visible: true,
		Opacity: 1,
	}
}

// Objects returns the objects in z-order (back to front).
func (l *Layer) Objects() []*Object {
	out := make([]*Object, len(l.objects))
	copy(out, l.objects)
	return out
}

// ObjectCount reports how many objects the layer owns.
func (l *Layer) ObjectCount() int {
	return len(l.objects)
}

// Object looks up an owned object by identifier.
func (l *Layer) Object(id uuid.UUID) (*Object, bool) {
	for _, o := range l.objects {
		if o.ID == id {
			return o, true
		}
	}
	return nil, false
}

// ObjectIndex returns the z-order index of an object, or -1.
func (l *Layer) ObjectIndex(id uuid.UUID) int {
	for i, o := range l.objects {
		if o.ID == id {
			return i
		}
	}
	return -1
}

// InsertObject places an object at the given z-order index. Indexes outside
// the valid range clamp to the ends.
func (l *Layer) InsertObject(index int, o *Object) {
	if index < 0 {
		index = 0
	}
	if index > len(l.objects) {
		index = len(l.objects)
	}
	l.objects = append(l.objects, nil)
	copy(l.objects[index+1:], l.objects[index:])
	l.objects[index] = o
}

// RemoveObject detaches an object, returning it together with the z-order
// index it occupied.
func (l *Layer) RemoveObject(id uuid.UUID) (*Object, int, bool) {
	i := l.ObjectIndex(id)
	if i < 0 {
		return nil, 0, false
	}
	o := l.objects[i]
	l.objects = append(l.objects[:i], l.objects[i+1:]...)
	return o, i, true
}

// MoveObject shifts an object from one z-order index to another.
func (l *Layer) MoveObject(from, to int) bool {
	if from < 0 || from >= len(l.objects) || to < 0 || to >= len(l.objects) {
		return false
	}
	o := l.objects[from]
	l.objects = append(l.objects[:from], l.objects[from+1:]...)
	l.objects = append(l.objects, nil)
	copy(l.objects[to+1:], l.objects[to:])
	l.objects[to] = o
	return true
}
