// Package playback tracks the playhead during real-time preview. The host
// loop drives it with wall-clock deltas; the accumulator converts those into
// whole-frame steps at the project frame rate. Nothing here blocks or
// mutates project state.
package playback

// State is the playhead state machine.
type State struct {
	Playing bool
	Frame   int

	loopStart   int
	loopEnd     int
	hasLoop     bool
	accumulator float64
}

// New creates a stopped playhead at frame 0.
func New() *State {
	return &State{}
}

// Toggle starts or stops playback. Stopping drops the partial-frame
// accumulator so resuming starts on a clean tick.
func (s *State) Toggle() {
	s.Playing = !s.Playing
	if !s.Playing {
		s.accumulator = 0
	}
}

// SetLoop restricts playback to [start, end] inclusive.
func (s *State) SetLoop(start, end int) {
	if start > end {
		start, end = end, start
	}
	s.loopStart = start
	s.loopEnd = end
	s.hasLoop = true
}

// ClearLoop removes the loop range.
func (s *State) ClearLoop() {
	s.hasLoop = false
}

// Loop reports the active loop range, if any.
func (s *State) Loop() (start, end int, ok bool) {
	return s.loopStart, s.loopEnd, s.hasLoop
}

// Advance consumes elapsed wall-clock seconds and steps the playhead by
// however many whole frames fit. Inside a loop range the playhead wraps to
// the loop start; otherwise it wraps to frame 0 at totalFrames. Returns the
// number of frames stepped.
func (s *State) Advance(elapsed float64, frameRate, totalFrames int) int {
	if !s.Playing || frameRate <= 0 || totalFrames <= 0 {
		return 0
	}
	s.accumulator += elapsed
	frameDuration := 1.0 / float64(frameRate)
	// The stored loop range may outlive a timeline trim; bound it here so the
	// playhead never leaves [0, totalFrames).
	loopEnd := s.loopEnd
	if loopEnd > totalFrames-1 {
		loopEnd = totalFrames - 1
	}
	loopStart := s.loopStart
	if loopStart > loopEnd {
		loopStart = loopEnd
	}
	steps := 0
	for s.accumulator >= frameDuration {
		s.accumulator -= frameDuration
		s.Frame++
		steps++
		if s.hasLoop {
			if s.Frame > loopEnd {
				s.Frame = loopStart
			}
		} else if s.Frame >= totalFrames {
			s.Frame = 0
		}
	}
	return steps
}

// Seek moves the playhead directly, clamping into [0, totalFrames).
func (s *State) Seek(frame, totalFrames int) {
	if frame < 0 {
		frame = 0
	}
	if frame >= totalFrames {
		frame = totalFrames - 1
	}
	s.Frame = frame
	s.accumulator = 0
}
