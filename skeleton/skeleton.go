// Package skeleton defines the joint hierarchy shared by the retargeting
// source and target rigs. A Skeleton is validated when it is built and is
// immutable afterwards; joints are stored parent-before-child so a single
// forward loop visits every parent before its children.
package skeleton

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrNoRoot is returned by New when no joint declares an empty parent.
	ErrNoRoot = errors.New("skeleton has no root joint")

	// ErrMultipleRoots is returned by New when more than one joint declares
	// an empty parent.
	ErrMultipleRoots = errors.New("skeleton has multiple root joints")

	// ErrUnknownParent is returned by New when a joint references a parent
	// that does not exist or is declared after the joint itself. Requiring
	// parents to precede their children also rules out cycles.
	ErrUnknownParent = errors.New("parent joint not defined before child")

	// ErrDuplicateJoint is returned by New when two joints share a name.
	ErrDuplicateJoint = errors.New("duplicate joint name")

	// ErrEmptyName is returned by New when a joint has no name.
	ErrEmptyName = errors.New("joint name must not be empty")
)

// JointDef describes one joint of a rig as supplied by the caller.
// Parent is the name of an already-declared joint, or "" for the root.
// Rotation is the local rest rotation and must be (close to) unit length.
type JointDef struct {
	Name        string
	Parent      string
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// Joint is one node of a frozen Skeleton. ID is the joint's index in the
// skeleton's joint list and Parent is the parent's index (-1 for the root).
type Joint struct {
	ID          int
	Name        string
	Parent      int
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
}

// Skeleton is an ordered, immutable joint tree. Exactly one joint is the
// root and every other joint's parent precedes it in the list.
type Skeleton struct {
	joints   []Joint
	byName   map[string]int
	children [][]int
	root     int
}

// New validates defs and freezes them into a Skeleton. It fails on the
// first structural defect rather than repairing the hierarchy.
func New(defs []JointDef) (*Skeleton, error) {
	if len(defs) == 0 {
		return nil, ErrNoRoot
	}
	s := &Skeleton{
		joints:   make([]Joint, 0, len(defs)),
		byName:   make(map[string]int, len(defs)),
		children: make([][]int, len(defs)),
		root:     -1,
	}
	for i, d := range defs {
		if d.Name == "" {
			return nil, fmt.Errorf("joint %d: %w", i, ErrEmptyName)
		}
		if _, ok := s.byName[d.Name]; ok {
			return nil, fmt.Errorf("joint %q: %w", d.Name, ErrDuplicateJoint)
		}
		parent := -1
		if d.Parent == "" {
			if s.root >= 0 {
				return nil, fmt.Errorf("joint %q: %w", d.Name, ErrMultipleRoots)
			}
			s.root = i
		} else {
			p, ok := s.byName[d.Parent]
			if !ok {
				return nil, fmt.Errorf("joint %q references %q: %w", d.Name, d.Parent, ErrUnknownParent)
			}
			parent = p
			s.children[p] = append(s.children[p], i)
		}
		rot := d.Rotation
		if rot.Len() == 0 {
			rot = mgl32.QuatIdent()
		}
		s.joints = append(s.joints, Joint{
			ID:          i,
			Name:        d.Name,
			Parent:      parent,
			Translation: d.Translation,
			Rotation:    rot.Normalize(),
		})
		s.byName[d.Name] = i
	}
	if s.root < 0 {
		return nil, ErrNoRoot
	}
	return s, nil
}

// Len returns the number of joints.
func (s *Skeleton) Len() int { return len(s.joints) }

// Joint returns the joint at index i.
func (s *Skeleton) Joint(i int) Joint { return s.joints[i] }

// Root returns the index of the root joint.
func (s *Skeleton) Root() int { return s.root }

// IndexOf resolves a joint name to its index.
func (s *Skeleton) IndexOf(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Children returns the child indices of joint i, in declaration order.
// The returned slice must not be modified.
func (s *Skeleton) Children(i int) []int { return s.children[i] }

// Names returns the joint names in declaration order.
func (s *Skeleton) Names() []string {
	names := make([]string, len(s.joints))
	for i, j := range s.joints {
		names[i] = j.Name
	}
	return names
}
