package history

import (
	"fmt"

	"github.com/ivlev/animstudio/internal/project"
)

// Command is one reversible mutation of the project. Apply and Revert are
// exact inverses: applying then reverting leaves the project bit-identical.
// Commands carry deltas (what changed), not whole-project snapshots, to bound
// history memory.
type Command interface {
	Name() string
	Apply(p *project.Project) error
	Revert(p *project.Project) error
}

// Composite bundles several commands into a single undoable unit, so one undo
// reverts an entire user-visible action (a cascade delete, a multi-object
// drag) atomically.
type Composite struct {
	name string
	cmds []Command
}

// NewComposite builds a composite command. The sub-commands apply in order
// and revert in reverse order.
func NewComposite(name string, cmds ...Command) *Composite {
	return &Composite{name: name, cmds: cmds}
}

// Append adds a sub-command. Only valid before the composite is executed.
func (c *Composite) Append(cmd Command) {
	c.cmds = append(c.cmds, cmd)
}

// Len reports the number of sub-commands.
func (c *Composite) Len() int {
	return len(c.cmds)
}

func (c *Composite) Name() string {
	return c.name
}

// Apply runs the sub-commands in order. If one fails, the already-applied
// prefix is reverted so the project is left unchanged.
func (c *Composite) Apply(p *project.Project) error {
	for i, cmd := range c.cmds {
		if err := cmd.Apply(p); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rerr := c.cmds[j].Revert(p); rerr != nil {
					return fmt.Errorf("%s: rollback of %s failed: %w", c.name, c.cmds[j].Name(), rerr)
				}
			}
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}

// Revert undoes the sub-commands in reverse order.
func (c *Composite) Revert(p *project.Project) error {
	for i := len(c.cmds) - 1; i >= 0; i-- {
		if err := c.cmds[i].Revert(p); err != nil {
			return fmt.Errorf("%s: %w", c.name, err)
		}
	}
	return nil
}
