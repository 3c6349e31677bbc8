package input

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/gocarina/gocsv"
)

// Keyframe is one row of an input script. Keys and Pointer stay in effect
// from Tick until the next keyframe; Toggle fires once, at Tick.
type Keyframe struct {
	Tick   int  `csv:"tick"`
	Toggle bool `csv:"toggle"`
	Keys
	Pointer
}

// Script replays keyframed input into a State.
type Script struct {
	frames []Keyframe
	next   int
	active *Keyframe
}

// NewScript builds a script from keyframes. Frames are ordered by tick;
// frames sharing a tick keep their relative order.
func NewScript(frames []Keyframe) *Script {
	sorted := make([]Keyframe, len(frames))
	copy(sorted, frames)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tick < sorted[j].Tick })
	return &Script{frames: sorted}
}

// ReadScript parses a CSV script with a header row.
func ReadScript(r io.Reader) (*Script, error) {
	var frames []Keyframe
	if err := gocsv.Unmarshal(r, &frames); err != nil {
		return nil, fmt.Errorf("parsing input script: %w", err)
	}
	return NewScript(frames), nil
}

// LoadScript reads a CSV script from disk.
func LoadScript(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input script: %w", err)
	}
	defer f.Close()
	return ReadScript(f)
}

// Apply advances the script to tick and writes the resulting input into s.
// Ticks must be non-decreasing across calls.
func (sc *Script) Apply(tick int, s *State) {
	for sc.next < len(sc.frames) && sc.frames[sc.next].Tick <= tick {
		f := &sc.frames[sc.next]
		if f.Toggle && f.Tick == tick {
			s.Emit(EventToggleCameraMode)
		}
		sc.active = f
		sc.next++
	}

	if sc.active == nil {
		s.SetKeys(Keys{})
		s.SetPointer(Pointer{})
		return
	}
	s.SetKeys(sc.active.Keys)
	s.SetPointer(sc.active.Pointer)
}

// Done reports whether every keyframe has been applied.
func (sc *Script) Done() bool {
	return sc.next >= len(sc.frames)
}

// Len returns the number of keyframes.
func (sc *Script) Len() int {
	return len(sc.frames)
}
