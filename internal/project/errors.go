package project

import "errors"

// Error taxonomy of the authoring core. All are recoverable: a failed
// operation leaves the project unchanged.
var (
	// ErrInvalidFrame reports a frame index outside [0, totalFrames).
	ErrInvalidFrame = errors.New("frame index out of range")

	// ErrUnknownEntity reports a stale layer or object identifier, e.g. one
	// held by a caller across an undo that deleted the entity.
	ErrUnknownEntity = errors.New("unknown layer or object")

	// ErrLayerLocked reports a user-intent mutation rejected because the
	// target layer is locked. Programmatic operations are not subject to it.
	ErrLayerLocked = errors.New("layer is locked")

	// ErrEmptyHistory reports undo/redo with nothing to act on.
	ErrEmptyHistory = errors.New("history is empty")

	// ErrValueKind reports a keyframe value whose kind does not match the
	// target property.
	ErrValueKind = errors.New("value kind does not match property")
)
