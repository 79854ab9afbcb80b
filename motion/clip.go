// Package motion defines the animation clip values consumed and produced by
// the retargeting core. The output clip of a retarget operation uses the
// same track representation as the input so it can feed straight into
// downstream playback.
//
// Quaternion convention: right-handed, and wherever a rotation is
// serialized its components are ordered (x, y, z, w). Every rotation stored
// in a track is unit length.
package motion

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrUnevenTracks is returned by Clip.Validate when the rotation tracks of
// a clip do not all share one frame count, or a track's timestamp and value
// arrays differ in length.
var ErrUnevenTracks = errors.New("clip tracks have mismatched frame counts")

// RotationTrack is a time-sampled local-rotation track for one joint.
// Times and Values are parallel arrays.
type RotationTrack struct {
	Joint  string
	Times  []float32
	Values []mgl32.Quat
}

// PositionTrack is a time-sampled local-position track, conventionally
// carried by the hierarchical root joint.
type PositionTrack struct {
	Joint  string
	Times  []float32
	Values []mgl32.Vec3
}

// Clip is a skeletal animation: rotation tracks for a subset of joints and
// at most one position track. Duration is the last timestamp.
type Clip struct {
	Name      string
	Duration  float32
	Rotations []RotationTrack
	Position  *PositionTrack
}

// FrameCount returns the shared frame count of the rotation tracks, or 0
// for a clip without rotation tracks.
func (c *Clip) FrameCount() int {
	if len(c.Rotations) == 0 {
		return 0
	}
	return len(c.Rotations[0].Times)
}

// Empty reports whether the clip carries no rotation tracks. An empty clip
// is a valid, representable result, not an error.
func (c *Clip) Empty() bool {
	return len(c.Rotations) == 0 || c.FrameCount() == 0
}

// Track returns the rotation track for the named joint, or nil.
func (c *Clip) Track(joint string) *RotationTrack {
	for i := range c.Rotations {
		if c.Rotations[i].Joint == joint {
			return &c.Rotations[i]
		}
	}
	return nil
}

// Validate checks the structural invariants of the clip: constant frame
// count across all rotation tracks and parallel time/value arrays.
func (c *Clip) Validate() error {
	frames := c.FrameCount()
	for i := range c.Rotations {
		t := &c.Rotations[i]
		if len(t.Times) != frames || len(t.Values) != frames {
			return fmt.Errorf("rotation track %q: %w", t.Joint, ErrUnevenTracks)
		}
	}
	if c.Position != nil && len(c.Position.Times) != len(c.Position.Values) {
		return fmt.Errorf("position track %q: %w", c.Position.Joint, ErrUnevenTracks)
	}
	return nil
}
