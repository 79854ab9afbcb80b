package retarget

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/motionrig/retarget/skeleton"
)

// boneAxis is the canonical direction a rest bone extends along, used to
// pick the best-aligned child when a joint has several. The target rig
// follows the Blender/Rigify convention of bones pointing along +Y.
var boneAxis = mgl32.Vec3{0, 1, 0}

const dirEpsilon = 1e-6

// restDirection computes a representative world-space rest direction for
// joint j: the offset toward the child best aligned with the canonical bone
// axis after applying the joint's world rest rotation. Zero-length offsets
// are skipped; a joint without usable children falls back to its own offset
// from its parent. ok is false when no non-degenerate direction exists.
func restDirection(rp *skeleton.RestPose, j int) (dir mgl32.Vec3, ok bool) {
	s := rp.Skeleton()
	world := rp.WorldRotation(j)
	var bestScore float32
	for _, c := range s.Children(j) {
		off := s.Joint(c).Translation
		if off.LenSqr() < dirEpsilon {
			continue
		}
		w := world.Rotate(off).Normalize()
		score := w.Dot(boneAxis)
		if !ok || score > bestScore {
			dir, bestScore, ok = w, score, true
		}
	}
	if ok {
		return dir, true
	}
	jt := s.Joint(j)
	if jt.Parent >= 0 && jt.Translation.LenSqr() >= dirEpsilon {
		return rp.ParentWorldRotation(j).Rotate(jt.Translation).Normalize(), true
	}
	return mgl32.Vec3{}, false
}

// solveOffsets computes the per-joint corrective quaternion: the rotation
// taking the target's rest direction onto the source's, composed with the
// target's own world rest rotation. The mapping root and the table's
// exception joints keep the raw world rest rotation, as does any joint with
// a degenerate direction.
//
// The source direction comes from the source rest pose: for identity-rest
// formats the rest rotations are identity so this is the raw local child
// offset, while posed-rest formats encode the frame-0 standing pose in
// their rest rotations, which is exactly the frame the delta is measured
// against.
func solveOffsets(ctx *Context, table *boneTable) []mgl32.Quat {
	offsets := make([]mgl32.Quat, ctx.target.Len())
	for ti := range offsets {
		world := ctx.targetRest.WorldRotation(ti)
		offsets[ti] = world
		si := ctx.srcFor[ti]
		if si < 0 || ctx.mode[ti] == ModeSkip {
			continue
		}
		name := ctx.target.Joint(ti).Name
		if name == MappingRoot || table.noCorrection[name] {
			continue
		}
		tdir, tok := restDirection(ctx.targetRest, ti)
		sdir, sok := restDirection(ctx.sourceRest, si)
		if !tok || !sok {
			ctx.logger.Debug("degenerate rest direction, correction skipped", "joint", name)
			continue
		}
		offsets[ti] = mgl32.QuatBetweenVectors(tdir, sdir).Mul(world).Normalize()
	}
	return offsets
}
