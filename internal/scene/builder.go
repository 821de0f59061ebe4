package scene

import (
	"github.com/ivlev/animstudio/internal/anim"
	"github.com/ivlev/animstudio/internal/project"
)

// OnionOptions configures the onion-skin window around the edited frame.
type OnionOptions struct {
	Enabled      bool
	FramesBefore int
	FramesAfter  int
	// BaseAlpha is the ghost opacity at offset 1; it falls off as
	// BaseAlpha/offset further out.
	BaseAlpha float64
}

// DefaultOnion mirrors the editing defaults: two ghosts either side at 0.3
// base opacity.
func DefaultOnion() OnionOptions {
	return OnionOptions{Enabled: true, FramesBefore: 2, FramesAfter: 2, BaseAlpha: 0.3}
}

var (
	ghostBeforeTint = anim.Color{R: 1.0, G: 0.3, B: 0.3, A: 1}
	ghostAfterTint  = anim.Color{R: 0.3, G: 1.0, B: 0.3, A: 1}
)

// Builder caches resolved snapshots for smooth scrubbing and playback. The
// cache is keyed by frame and stamped with the project revision, so any
// mutation to the keyframe store or the layer graph invalidates it
// wholesale. Not safe for concurrent use; batch exporters call BuildFrame
// directly instead.
type Builder struct {
	project *project.Project
	rev     uint64
	cache   map[int]*Snapshot
}

// NewBuilder creates a caching snapshot builder for one project.
func NewBuilder(p *project.Project) *Builder {
	return &Builder{
		project: p,
		cache:   make(map[int]*Snapshot),
	}
}

// BuildFrame returns the snapshot for a frame, resolving it at most once per
// project revision.
func (b *Builder) BuildFrame(frame int) (*Snapshot, error) {
	if b.rev != b.project.Rev() {
		b.cache = make(map[int]*Snapshot)
		b.rev = b.project.Rev()
	}
	if s, ok := b.cache[frame]; ok {
		return s, nil
	}
	s, err := BuildFrame(b.project, frame)
	if err != nil {
		return nil, err
	}
	b.cache[frame] = s
	return s, nil
}

// OnionSkins resolves the ghost frames around the edited frame. Offsets that
// fall outside [0, totalFrames) are skipped. Ghosts before the frame carry a
// red tint, ghosts after a green one, both fading with distance.
func (b *Builder) OnionSkins(frame int, opt OnionOptions) ([]Ghost, error) {
	if err := b.project.ValidFrame(frame); err != nil {
		return nil, err
	}
	if !opt.Enabled {
		return nil, nil
	}
	var ghosts []Ghost
	for offset := opt.FramesBefore; offset >= 1; offset-- {
		f := frame - offset
		if f < 0 {
			continue
		}
		s, err := b.BuildFrame(f)
		if err != nil {
			return nil, err
		}
		ghosts = append(ghosts, Ghost{
			Offset:   -offset,
			Alpha:    opt.BaseAlpha / float64(offset),
			Tint:     ghostBeforeTint,
			Snapshot: s,
		})
	}
	for offset := 1; offset <= opt.FramesAfter; offset++ {
		f := frame + offset
		if f >= b.project.TotalFrames {
			continue
		}
		s, err := b.BuildFrame(f)
		if err != nil {
			return nil, err
		}
		ghosts = append(ghosts, Ghost{
			Offset:   offset,
			Alpha:    opt.BaseAlpha / float64(offset),
			Tint:     ghostAfterTint,
			Snapshot: s,
		})
	}
	return ghosts, nil
}
