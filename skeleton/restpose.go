package skeleton

import "github.com/go-gl/mathgl/mgl32"

// RestPose caches per-joint world-space rest data for one skeleton: the
// accumulated world rest rotation, the parent's world rest rotation (used
// to convert desired world rotations back to local space) and the world
// rest position. Built once per skeleton with a single root-to-leaf walk.
type RestPose struct {
	s           *Skeleton
	world       []mgl32.Quat
	parentWorld []mgl32.Quat
	positions   []mgl32.Vec3
}

// NewRestPose computes the rest pose caches for s.
func NewRestPose(s *Skeleton) *RestPose {
	rp := &RestPose{
		s:           s,
		world:       make([]mgl32.Quat, s.Len()),
		parentWorld: make([]mgl32.Quat, s.Len()),
		positions:   make([]mgl32.Vec3, s.Len()),
	}
	// Joints are parent-before-child, so one pass suffices.
	for i := 0; i < s.Len(); i++ {
		j := s.Joint(i)
		if j.Parent < 0 {
			rp.parentWorld[i] = mgl32.QuatIdent()
			rp.world[i] = j.Rotation
			rp.positions[i] = j.Translation
			continue
		}
		rp.parentWorld[i] = rp.world[j.Parent]
		rp.world[i] = rp.parentWorld[i].Mul(j.Rotation).Normalize()
		rp.positions[i] = rp.positions[j.Parent].Add(rp.parentWorld[i].Rotate(j.Translation))
	}
	return rp
}

// Skeleton returns the skeleton this rest pose was computed for.
func (rp *RestPose) Skeleton() *Skeleton { return rp.s }

// WorldRotation returns joint i's world-space rest rotation.
func (rp *RestPose) WorldRotation(i int) mgl32.Quat { return rp.world[i] }

// ParentWorldRotation returns the world-space rest rotation of joint i's
// parent (identity for the root).
func (rp *RestPose) ParentWorldRotation(i int) mgl32.Quat { return rp.parentWorld[i] }

// WorldPosition returns joint i's world-space rest position, accumulated
// through the position and rotation chain rather than taken from a
// bounding box, since some rigs rest in an angled pose.
func (rp *RestPose) WorldPosition(i int) mgl32.Vec3 { return rp.positions[i] }

// Height returns the vertical extent of the rest pose: the difference
// between the highest and lowest world-space joint position.
func (rp *RestPose) Height() float32 {
	if len(rp.positions) == 0 {
		return 0
	}
	min, max := rp.positions[0].Y(), rp.positions[0].Y()
	for _, p := range rp.positions[1:] {
		if p.Y() < min {
			min = p.Y()
		}
		if p.Y() > max {
			max = p.Y()
		}
	}
	return max - min
}
