package retarget

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motionrig/retarget/motion"
)

// Retarget converts one source clip into a clip for the target skeleton:
// one local-rotation track per mapped, non-skip target joint whose source
// joint is animated in this clip, sharing the source timestamps and frame
// count, plus the re-based root translation track. A clip without rotation
// tracks yields a structurally valid empty clip, never an error.
//
// The whole operation is a bounded, deterministic O(frames × joints)
// computation; callers wanting responsiveness run it off their UI thread.
func (ctx *Context) Retarget(clip *motion.Clip) (*motion.Clip, error) {
	out := &motion.Clip{Name: clip.Name}
	if clip.Empty() {
		return out, nil
	}
	if err := clip.Validate(); err != nil {
		return nil, err
	}

	b := ctx.bind(clip)
	frames := clip.FrameCount()
	times := clip.Rotations[0].Times

	var outJoints []int
	for ti, si := range b.srcFor {
		if si >= 0 && ctx.mode[ti] != ModeSkip {
			outJoints = append(outJoints, ti)
		}
	}

	tracks := make([]motion.RotationTrack, len(outJoints))
	for k, ti := range outJoints {
		tracks[k] = motion.RotationTrack{
			Joint:  ctx.target.Joint(ti).Name,
			Times:  times,
			Values: make([]mgl32.Quat, frames),
		}
	}

	sc := ctx.newScratch()
	ctx.sourceWorldPass(b, 0, sc.srcWorld0)
	for f := 0; f < frames; f++ {
		ctx.sourceWorldPass(b, f, sc.srcWorld)
		ctx.targetLocalPass(b, sc)
		for k, ti := range outJoints {
			tracks[k].Values[f] = sc.tgtLocal[ti]
		}
	}

	out.Rotations = tracks
	out.Duration = clip.Duration
	if out.Duration == 0 {
		out.Duration = times[frames-1]
	}
	out.Position = ctx.scaleRootTrack(clip.Position)
	return out, nil
}
