package retarget

import (
	"github.com/motionrig/retarget/motion"
	"github.com/motionrig/retarget/skeleton"

	"github.com/go-gl/mathgl/mgl32"
)

// rootScale computes the uniform root translation scale: target body height
// over source rest height. The source height is measured from accumulated
// world rest positions rather than a bounding box, since some source rigs
// rest in an angled pose. A degenerate source height yields scale 1.
func rootScale(sourceRest *skeleton.RestPose, bodyHeight float32) float32 {
	h := sourceRest.Height()
	if h <= dirEpsilon || bodyHeight <= 0 {
		return 1
	}
	return bodyHeight / h
}

// scaleRootTrack re-bases and re-scales the source position track onto the
// target joint resolved by the root binding policy: the target's rest
// local position plus the source displacement from frame 0, scaled per
// axis. Returns nil when no target joint can carry the translation.
func (ctx *Context) scaleRootTrack(src *motion.PositionTrack) *motion.PositionTrack {
	if src == nil || len(src.Values) == 0 {
		return nil
	}
	ti, ok := ctx.rootBinding(src.Joint)
	if !ok {
		ctx.logger.Debug("no target joint for root translation", "joint", src.Joint)
		return nil
	}
	base := ctx.target.Joint(ti).Translation
	origin := src.Values[0]
	values := make([]mgl32.Vec3, len(src.Values))
	for i, v := range src.Values {
		values[i] = base.Add(v.Sub(origin).Mul(ctx.scale))
	}
	return &motion.PositionTrack{
		Joint:  ctx.target.Joint(ti).Name,
		Times:  src.Times,
		Values: values,
	}
}
