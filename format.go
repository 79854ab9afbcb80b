// Package retarget maps a parsed motion-capture animation onto the fixed
// Rigify-style target rig. The hot path is quaternion-only: joint names are
// resolved to dense indices once, when a Context is built, and the per-frame
// propagator never touches a string.
package retarget

import (
	"fmt"
	"strings"

	"github.com/motionrig/retarget/skeleton"
)

// Format identifies the joint-naming convention of a source skeleton.
type Format int

const (
	// FormatMocapNET is the Daz/Poser-flavored naming emitted by MocapNET
	// BVH exports (hip, abdomen, chest, lCollar, lShldr, lButtock, ...).
	// It is also the fallback when no convention is recognized.
	FormatMocapNET Format = iota

	// FormatCMU is the CMU motion capture database convention
	// (Hips, LowerBack, Spine, Spine1, LHipJoint, LeftUpLeg, ...).
	FormatCMU

	// FormatMixamo is Adobe Mixamo's "mixamorig:"-prefixed convention.
	FormatMixamo

	// FormatSMPL is the SMPL body model convention (Pelvis, L_Hip, L_Knee,
	// Spine1..Spine3). SMPL exports carry a posed rest: frame 0 encodes the
	// standing pose instead of identity rotations.
	FormatSMPL

	// FormatClassicBVH covers the classic BioVision sample rigs
	// (Hips, Chest, Neck, LeftCollar, LeftElbow, LeftWrist) whose spine has
	// one fewer segment than the CMU-style rigs.
	FormatClassicBVH
)

var formatNames = map[Format]string{
	FormatMocapNET:   "mocapnet",
	FormatCMU:        "cmu",
	FormatMixamo:     "mixamo",
	FormatSMPL:       "smpl",
	FormatClassicBVH: "classic-bvh",
}

func (f Format) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat resolves a format tag name as used on the command line.
func ParseFormat(name string) (Format, error) {
	for f, n := range formatNames {
		if n == name {
			return f, nil
		}
	}
	return FormatMocapNET, fmt.Errorf("unknown source format %q", name)
}

// Formats returns all known format tags in classification order.
func Formats() []Format {
	return []Format{FormatMixamo, FormatSMPL, FormatCMU, FormatClassicBVH, FormatMocapNET}
}

// Classify inspects a source skeleton's joint name set and returns its
// format tag. The checks are ordered: each convention is recognized by
// joints unique to it, and the presence of a mid-spine joint separates the
// CMU-style rigs from the classic BioVision ones. Classify is total: a name
// set matching no known convention yields FormatMocapNET.
func Classify(names []string) Format {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	switch {
	case set["mixamorig:Hips"] || hasPrefix(names, "mixamorig:"):
		return FormatMixamo
	case set["Pelvis"] && set["L_Hip"]:
		return FormatSMPL
	case set["LowerBack"] || set["LHipJoint"]:
		return FormatCMU
	case set["LeftCollar"] && !set["Spine"]:
		return FormatClassicBVH
	default:
		return FormatMocapNET
	}
}

// ClassifySkeleton is Classify over a skeleton's joint names.
func ClassifySkeleton(s *skeleton.Skeleton) Format {
	return Classify(s.Names())
}

func hasPrefix(names []string, prefix string) bool {
	for _, n := range names {
		if strings.HasPrefix(n, prefix) {
			return true
		}
	}
	return false
}
