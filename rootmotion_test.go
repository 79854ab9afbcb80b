package retarget

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/motionrig/retarget/motion"
	"github.com/motionrig/retarget/skeleton"
)

func walkClip() *motion.Clip {
	clip := &motion.Clip{Rotations: []motion.RotationTrack{
		identityTrack("hip", 2),
		identityTrack("neck", 2),
		identityTrack("head", 2),
	}}
	clip.Position = &motion.PositionTrack{
		Joint:  "hip",
		Times:  clip.Rotations[0].Times,
		Values: []mgl32.Vec3{{0, 1, 0}, {0, 1, 1}},
	}
	return clip
}

func TestRootMotionScale(t *testing.T) {
	target := testTarget(t)
	source := testSource(t) // rest height 2

	ctx, err := NewContext(target, source, FormatMocapNET, &Options{BodyHeight: 4})
	if err != nil {
		t.Fatal(err)
	}
	if mgl32.Abs(ctx.Scale()-2) > eps {
		t.Fatal("scale: ", ctx.Scale())
	}

	out, err := ctx.Retarget(walkClip())
	if err != nil {
		t.Fatal(err)
	}
	p := out.Position
	if p == nil || p.Joint != "DEF-spine" {
		t.Fatal("position track: ", p)
	}
	// Displacements are re-based onto the target rest position and scaled:
	// frame 0 sits at the target rest, frame 1 moved 1 unit, scaled by 2.
	if p.Values[0].Len() > eps {
		t.Error("frame 0: ", p.Values[0])
	}
	if p.Values[1].Sub(mgl32.Vec3{0, 0, 2}).Len() > eps {
		t.Error("frame 1: ", p.Values[1])
	}

	// Doubling the body height doubles the displacement.
	ctx2, err := NewContext(target, source, FormatMocapNET, &Options{BodyHeight: 8})
	if err != nil {
		t.Fatal(err)
	}
	out2, err := ctx2.Retarget(walkClip())
	if err != nil {
		t.Fatal(err)
	}
	if out2.Position.Values[1].Sub(mgl32.Vec3{0, 0, 4}).Len() > eps {
		t.Error("doubled: ", out2.Position.Values[1])
	}
}

func TestRootMotionDefaultHeight(t *testing.T) {
	// Without an explicit body height the target rest height (2) is used,
	// matching the source rest height (2), so the scale is 1.
	ctx, err := NewContext(testTarget(t), testSource(t), FormatMocapNET, nil)
	if err != nil {
		t.Fatal(err)
	}
	if mgl32.Abs(ctx.Scale()-1) > eps {
		t.Error("scale: ", ctx.Scale())
	}
}

func TestRootMotionFallback(t *testing.T) {
	target := testTarget(t)
	// The translation-bearing joint is an organizational root with no
	// target counterpart; the track falls through to its first mapped child.
	source := mustSkeleton(t, []skeleton.JointDef{
		{Name: "reference"},
		{Name: "hip", Parent: "reference"},
		{Name: "neck", Parent: "hip", Translation: mgl32.Vec3{0, 1, 0}},
		{Name: "head", Parent: "neck", Translation: mgl32.Vec3{0, 1, 0}},
	})
	ctx, err := NewContext(target, source, FormatMocapNET, nil)
	if err != nil {
		t.Fatal(err)
	}
	clip := &motion.Clip{
		Rotations: []motion.RotationTrack{
			identityTrack("hip", 2),
			identityTrack("neck", 2),
			identityTrack("head", 2),
		},
		Position: &motion.PositionTrack{
			Joint:  "reference",
			Times:  []float32{0, 1.0 / 30},
			Values: []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}},
		},
	}
	out, err := ctx.Retarget(clip)
	if err != nil {
		t.Fatal(err)
	}
	if out.Position == nil || out.Position.Joint != "DEF-spine" {
		t.Error("fallback binding: ", out.Position)
	}
}

func TestRootMotionNamedFallback(t *testing.T) {
	source := mustSkeleton(t, []skeleton.JointDef{
		{Name: "reference"},
		{Name: "hip", Parent: "reference"},
		{Name: "neck", Parent: "hip", Translation: mgl32.Vec3{0, 1, 0}},
		{Name: "head", Parent: "neck", Translation: mgl32.Vec3{0, 1, 0}},
	})
	ctx, err := NewContext(testTarget(t), source, FormatMocapNET, &Options{
		Policy: &Policy{RootFallback: "neck"},
	})
	if err != nil {
		t.Fatal(err)
	}
	clip := &motion.Clip{
		Rotations: []motion.RotationTrack{identityTrack("hip", 1), identityTrack("neck", 1)},
		Position: &motion.PositionTrack{
			Joint:  "reference",
			Times:  []float32{0},
			Values: []mgl32.Vec3{{0, 0, 0}},
		},
	}
	out, err := ctx.Retarget(clip)
	if err != nil {
		t.Fatal(err)
	}
	if out.Position == nil || out.Position.Joint != "DEF-spine.004" {
		t.Error("named fallback: ", out.Position)
	}
}

func TestRootMotionUnresolvable(t *testing.T) {
	ctx, err := NewContext(testTarget(t), testSource(t), FormatMocapNET, nil)
	if err != nil {
		t.Fatal(err)
	}
	clip := &motion.Clip{
		Rotations: []motion.RotationTrack{identityTrack("hip", 1)},
		Position: &motion.PositionTrack{
			Joint:  "unknown",
			Times:  []float32{0},
			Values: []mgl32.Vec3{{0, 0, 0}},
		},
	}
	out, err := ctx.Retarget(clip)
	if err != nil {
		t.Fatal(err)
	}
	if out.Position != nil {
		t.Error("unresolvable root should drop the track")
	}
}
