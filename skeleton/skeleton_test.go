package skeleton

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func chainDefs() []JointDef {
	return []JointDef{
		{Name: "hip"},
		{Name: "spine", Parent: "hip", Translation: mgl32.Vec3{0, 1, 0}},
		{Name: "head", Parent: "spine", Translation: mgl32.Vec3{0, 1, 0}},
		{Name: "thigh", Parent: "hip", Translation: mgl32.Vec3{0.2, 0, 0}},
	}
}

func TestNew(t *testing.T) {
	s, err := New(chainDefs())
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 4 {
		t.Error("len: ", s.Len())
	}
	if s.Root() != 0 {
		t.Error("root: ", s.Root())
	}
	if i, ok := s.IndexOf("spine"); !ok || i != 1 {
		t.Error("spine index: ", i, ok)
	}
	if _, ok := s.IndexOf("tail"); ok {
		t.Error("tail should not resolve")
	}
	children := s.Children(0)
	if len(children) != 2 || children[0] != 1 || children[1] != 3 {
		t.Error("root children: ", children)
	}
	if s.Joint(2).Parent != 1 {
		t.Error("head parent: ", s.Joint(2).Parent)
	}

	// Unset rotations normalize to identity.
	q := s.Joint(1).Rotation
	if q.W != 1 || q.V.Len() != 0 {
		t.Error("rest rotation not identity: ", q)
	}
}

func TestNewErrors(t *testing.T) {
	cases := []struct {
		defs []JointDef
		want error
	}{
		{nil, ErrNoRoot},
		{[]JointDef{{Name: "a", Parent: "missing"}}, ErrUnknownParent},
		{[]JointDef{{Name: "a"}, {Name: "b"}}, ErrMultipleRoots},
		{[]JointDef{{Name: "a"}, {Name: "a", Parent: "a"}}, ErrDuplicateJoint},
		{[]JointDef{{Name: "a"}, {Name: "", Parent: "a"}}, ErrEmptyName},
		// Child declared before its parent.
		{[]JointDef{{Name: "b", Parent: "a"}, {Name: "a"}}, ErrUnknownParent},
	}
	for i, c := range cases {
		if _, err := New(c.defs); !errors.Is(err, c.want) {
			t.Error("case ", i, ": ", err)
		}
	}
}

func TestNames(t *testing.T) {
	s, _ := New(chainDefs())
	names := s.Names()
	want := []string{"hip", "spine", "head", "thigh"}
	for i, n := range want {
		if names[i] != n {
			t.Error("names: ", names)
		}
	}
}
