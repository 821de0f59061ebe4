package history

import "github.com/ivlev/animstudio/internal/project"

// History is the undo/redo machinery of one project. It is owned by the
// project's editor and passed by reference to whatever issues mutations;
// there is no process-wide history.
//
// Invariant: replaying the undo stack in order from an empty project of the
// same shape reproduces the current state, because every command is a pure
// delta.
type History struct {
	undo     []Command
	redo     []Command
	maxDepth int
}

// New creates a history. maxDepth bounds the undo stack; 0 means unlimited.
// On overflow the oldest entry is dropped.
func New(maxDepth int) *History {
	return &History{maxDepth: maxDepth}
}

// Execute applies a command and records it. A newly executed command clears
// the redo stack: a new branch of history discards the old future. On apply
// failure nothing is recorded and the project is unchanged.
func (h *History) Execute(p *project.Project, cmd Command) error {
	if err := cmd.Apply(p); err != nil {
		return err
	}
	p.Touch()
	h.undo = append(h.undo, cmd)
	if h.maxDepth > 0 && len(h.undo) > h.maxDepth {
		copy(h.undo, h.undo[1:])
		h.undo = h.undo[:len(h.undo)-1]
	}
	h.redo = h.redo[:0]
	return nil
}

// Undo reverts the most recent command and moves it to the redo stack.
// Returns ErrEmptyHistory when there is nothing to undo.
func (h *History) Undo(p *project.Project) (string, error) {
	if len(h.undo) == 0 {
		return "", project.ErrEmptyHistory
	}
	cmd := h.undo[len(h.undo)-1]
	if err := cmd.Revert(p); err != nil {
		return cmd.Name(), err
	}
	p.Touch()
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, cmd)
	return cmd.Name(), nil
}

// Redo re-applies the most recently undone command.
func (h *History) Redo(p *project.Project) (string, error) {
	if len(h.redo) == 0 {
		return "", project.ErrEmptyHistory
	}
	cmd := h.redo[len(h.redo)-1]
	if err := cmd.Apply(p); err != nil {
		return cmd.Name(), err
	}
	p.Touch()
	h.redo = h.redo[:len(h.redo)-1]
	h.undo = append(h.undo, cmd)
	return cmd.Name(), nil
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth reports the undo stack size.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth reports the redo stack size.
func (h *History) RedoDepth() int { return len(h.redo) }

// Clear discards both stacks. Used on project load/save boundaries: history
// is never persisted.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}
