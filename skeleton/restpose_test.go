package skeleton

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRestPose(t *testing.T) {
	const eps = 0.000001

	s, err := New(chainDefs())
	if err != nil {
		t.Fatal(err)
	}
	rp := NewRestPose(s)

	head, _ := s.IndexOf("head")
	if p := rp.WorldPosition(head); p.Sub(mgl32.Vec3{0, 2, 0}).Len() > eps {
		t.Error("head position: ", p)
	}
	if h := rp.Height(); math.Abs(float64(h-2)) > eps {
		t.Error("height: ", h)
	}
	if q := rp.WorldRotation(head); mgl32.Abs(q.W-1) > eps || q.V.Len() > eps {
		t.Error("head world rotation: ", q)
	}
}

func TestRestPoseRotatedChain(t *testing.T) {
	const eps = 0.00001

	// 90 degrees about Z at the root turns the chain's +Y into -X.
	rot := mgl32.QuatRotate(float32(math.Pi/2), mgl32.Vec3{0, 0, 1})
	s, err := New([]JointDef{
		{Name: "root", Rotation: rot},
		{Name: "mid", Parent: "root", Translation: mgl32.Vec3{0, 1, 0}},
		{Name: "tip", Parent: "mid", Translation: mgl32.Vec3{0, 1, 0}},
	})
	if err != nil {
		t.Fatal(err)
	}
	rp := NewRestPose(s)

	tip, _ := s.IndexOf("tip")
	if p := rp.WorldPosition(tip); p.Sub(mgl32.Vec3{-2, 0, 0}).Len() > eps {
		t.Error("tip position: ", p)
	}
	mid, _ := s.IndexOf("mid")
	if q := rp.ParentWorldRotation(mid); q.Sub(rot).Len() > eps {
		t.Error("mid parent world: ", q)
	}
}
