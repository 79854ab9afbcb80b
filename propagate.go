package retarget

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motionrig/retarget/motion"
)

// binding resolves one clip's tracks against the context: per source joint
// the rotation track (nil when absent) and the per-call effective mapping.
// A mapped target joint whose source joint carries no track in this clip is
// treated as unmapped for the whole call, so the internal propagation
// matches what a downstream player holding that joint at rest will show.
type binding struct {
	tracks []*motion.RotationTrack
	srcFor []int
}

func (ctx *Context) bind(clip *motion.Clip) *binding {
	b := &binding{
		tracks: make([]*motion.RotationTrack, ctx.source.Len()),
		srcFor: make([]int, len(ctx.srcFor)),
	}
	for i := range clip.Rotations {
		t := &clip.Rotations[i]
		si, ok := ctx.source.IndexOf(t.Joint)
		if !ok {
			ctx.logger.Debug("clip track targets unknown source joint", "joint", t.Joint)
			continue
		}
		b.tracks[si] = t
	}
	copy(b.srcFor, ctx.srcFor)
	for ti, si := range b.srcFor {
		if si >= 0 && b.tracks[si] == nil {
			// Partial marker set: drop the joint for this call.
			b.srcFor[ti] = -1
		}
	}
	return b
}

// scratch holds the per-call working buffers. Each Retarget call owns its
// own scratch, so a shared Context stays safe under concurrent use.
type scratch struct {
	srcWorld  []mgl32.Quat // accumulated source world rotations, current frame
	srcWorld0 []mgl32.Quat // accumulated source world rotations at frame 0
	tgtWorld  []mgl32.Quat // accumulated target world rotations, current frame
	tgtLocal  []mgl32.Quat // computed target local rotations, current frame
}

func (ctx *Context) newScratch() *scratch {
	return &scratch{
		srcWorld:  make([]mgl32.Quat, ctx.source.Len()),
		srcWorld0: make([]mgl32.Quat, ctx.source.Len()),
		tgtWorld:  make([]mgl32.Quat, ctx.target.Len()),
		tgtLocal:  make([]mgl32.Quat, ctx.target.Len()),
	}
}

// sourceWorldPass accumulates source world rotations for one frame in
// parent-before-child order. Joints without a track contribute identity.
func (ctx *Context) sourceWorldPass(b *binding, frame int, dst []mgl32.Quat) {
	for i := 0; i < ctx.source.Len(); i++ {
		local := mgl32.QuatIdent()
		if t := b.tracks[i]; t != nil {
			local = t.Values[frame]
		}
		if p := ctx.source.Joint(i).Parent; p < 0 {
			dst[i] = local.Normalize()
		} else {
			dst[i] = dst[p].Mul(local).Normalize()
		}
	}
}

// targetLocalPass converts the accumulated source world rotations into
// target local rotations for one frame. Every joint's own world rotation is
// recorded before its children are visited, since children read it in the
// same pass.
func (ctx *Context) targetLocalPass(b *binding, sc *scratch) {
	for ti := 0; ti < ctx.target.Len(); ti++ {
		j := ctx.target.Joint(ti)
		parentWorld := mgl32.QuatIdent()
		if j.Parent >= 0 {
			parentWorld = sc.tgtWorld[j.Parent]
		}
		si := b.srcFor[ti]
		var local mgl32.Quat
		if si < 0 || ctx.mode[ti] == ModeSkip {
			local = j.Rotation
		} else {
			var desired mgl32.Quat
			if ctx.mode[ti] == ModeDelta {
				// Change since the posed rest, re-applied on top of the
				// direction-corrected target rest. At frame 0 this is
				// exactly the corrected rest orientation.
				delta := sc.srcWorld[si].Mul(sc.srcWorld0[si].Inverse()).Normalize()
				desired = delta.Mul(ctx.offset[ti])
			} else {
				desired = sc.srcWorld[si].Mul(ctx.offset[ti])
			}
			local = parentWorld.Inverse().Mul(desired).Normalize()
		}
		sc.tgtLocal[ti] = local
		sc.tgtWorld[ti] = parentWorld.Mul(local).Normalize()
	}
}
