package retarget

// Target rig joint names. The target is the fixed Rigify-style DEF skeleton
// of the character: one spine chain plus symmetric limbs.
const (
	TargetHips       = "DEF-spine"
	TargetSpine      = "DEF-spine.001"
	TargetChest      = "DEF-spine.002"
	TargetChestUpper = "DEF-spine.003"
	TargetNeck       = "DEF-spine.004"
	TargetHead       = "DEF-spine.006"
)

// MappingRoot is the target joint treated as the hierarchy root for mapping
// purposes. It has several divergent children (spine and both thighs) and no
// reliable forward direction, so it is always exempt from direction
// correction.
const MappingRoot = TargetHips

// boneTable is the hand-authored mapping for one source format. bones maps
// source joint names to target joint names; an empty value is an explicit
// "no target counterpart" entry, kept in the table so the omission is
// visibly deliberate. Topology differences are encoded here too: a format
// whose spine has fewer segments maps its joints to explicit target
// segments, never by positional offset.
type boneTable struct {
	bones map[string]string

	// skip lists target joints that stay inert even though a mapping
	// exists, e.g. shoulder joints that should remain rigid.
	skip map[string]bool

	// noCorrection lists target joints exempt from direction correction
	// because the source/target topology mismatch would make it harmful,
	// e.g. an ankle whose source offset points down while the target foot
	// points forward.
	noCorrection map[string]bool

	// posedRest marks formats whose rest pose carries non-identity
	// rotations: frame 0 encodes the standing pose, so motion must be
	// retargeted as a delta from it.
	posedRest bool
}

// target resolves a source joint name; ok is false for unmapped names.
func (t *boneTable) target(src string) (string, bool) {
	dst, ok := t.bones[src]
	if !ok || dst == "" {
		return "", false
	}
	return dst, true
}

var mocapnetTable = &boneTable{
	bones: map[string]string{
		"hip":      TargetHips,
		"abdomen":  TargetSpine,
		"chest":    TargetChest,
		"neck":     TargetNeck,
		"head":     TargetHead,
		"lCollar":  "DEF-shoulder.L",
		"lShldr":   "DEF-upper_arm.L",
		"lForeArm": "DEF-forearm.L",
		"lHand":    "DEF-hand.L",
		"rCollar":  "DEF-shoulder.R",
		"rShldr":   "DEF-upper_arm.R",
		"rForeArm": "DEF-forearm.R",
		"rHand":    "DEF-hand.R",
		"lButtock": "",
		"rButtock": "",
		"lEye":     "",
		"rEye":     "",
		"lThigh":   "DEF-thigh.L",
		"lShin":    "DEF-shin.L",
		"lFoot":    "DEF-foot.L",
		"rThigh":   "DEF-thigh.R",
		"rShin":    "DEF-shin.R",
		"rFoot":    "DEF-foot.R",
	},
	// Daz-style collar rotations fight the fixed shoulder; keep it rigid
	// and let the upper arm carry the motion.
	skip: map[string]bool{
		"DEF-shoulder.L": true,
		"DEF-shoulder.R": true,
	},
	noCorrection: map[string]bool{
		"DEF-foot.L": true,
		"DEF-foot.R": true,
	},
}

var cmuTable = &boneTable{
	bones: map[string]string{
		"Hips":           TargetHips,
		"LowerBack":      TargetSpine,
		"Spine":          TargetChest,
		"Spine1":         TargetChestUpper,
		"Neck":           TargetNeck,
		"Neck1":          "",
		"Head":           TargetHead,
		"LeftShoulder":   "DEF-shoulder.L",
		"LeftArm":        "DEF-upper_arm.L",
		"LeftForeArm":    "DEF-forearm.L",
		"LeftHand":       "DEF-hand.L",
		"LeftFingerBase": "",
		"LeftHandIndex1": "",
		"LThumb":         "",
		"LHipJoint":      "",
		"LeftUpLeg":      "DEF-thigh.L",
		"LeftLeg":        "DEF-shin.L",
		"LeftFoot":       "DEF-foot.L",
		"LeftToeBase":    "DEF-toe.L",
		"RightShoulder":  "DEF-shoulder.R",
		"RightArm":       "DEF-upper_arm.R",
		"RightForeArm":   "DEF-forearm.R",
		"RightHand":      "DEF-hand.R",
		"RightFingerBase": "",
		"RightHandIndex1": "",
		"RThumb":          "",
		"RHipJoint":       "",
		"RightUpLeg":      "DEF-thigh.R",
		"RightLeg":        "DEF-shin.R",
		"RightFoot":       "DEF-foot.R",
		"RightToeBase":    "DEF-toe.R",
	},
	skip: map[string]bool{},
	noCorrection: map[string]bool{
		"DEF-foot.L": true,
		"DEF-foot.R": true,
	},
}

var mixamoTable = &boneTable{
	bones: map[string]string{
		"mixamorig:Hips":         TargetHips,
		"mixamorig:Spine":        TargetSpine,
		"mixamorig:Spine1":       TargetChest,
		"mixamorig:Spine2":       TargetChestUpper,
		"mixamorig:Neck":         TargetNeck,
		"mixamorig:Head":         TargetHead,
		"mixamorig:HeadTop_End":  "",
		"mixamorig:LeftShoulder": "DEF-shoulder.L",
		"mixamorig:LeftArm":      "DEF-upper_arm.L",
		"mixamorig:LeftForeArm":  "DEF-forearm.L",
		"mixamorig:LeftHand":     "DEF-hand.L",
		"mixamorig:LeftUpLeg":    "DEF-thigh.L",
		"mixamorig:LeftLeg":      "DEF-shin.L",
		"mixamorig:LeftFoot":     "DEF-foot.L",
		"mixamorig:LeftToeBase":  "DEF-toe.L",
		"mixamorig:LeftToe_End":  "",
		"mixamorig:RightShoulder": "DEF-shoulder.R",
		"mixamorig:RightArm":      "DEF-upper_arm.R",
		"mixamorig:RightForeArm":  "DEF-forearm.R",
		"mixamorig:RightHand":     "DEF-hand.R",
		"mixamorig:RightUpLeg":    "DEF-thigh.R",
		"mixamorig:RightLeg":      "DEF-shin.R",
		"mixamorig:RightFoot":     "DEF-foot.R",
		"mixamorig:RightToeBase":  "DEF-toe.R",
		"mixamorig:RightToe_End":  "",
	},
	skip: map[string]bool{},
	noCorrection: map[string]bool{
		"DEF-foot.L": true,
		"DEF-foot.R": true,
	},
}

var smplTable = &boneTable{
	bones: map[string]string{
		"Pelvis":     TargetHips,
		"Spine1":     TargetSpine,
		"Spine2":     TargetChest,
		"Spine3":     TargetChestUpper,
		"Neck":       TargetNeck,
		"Head":       TargetHead,
		"L_Collar":   "DEF-shoulder.L",
		"L_Shoulder": "DEF-upper_arm.L",
		"L_Elbow":    "DEF-forearm.L",
		"L_Wrist":    "DEF-hand.L",
		"L_Hand":     "",
		"L_Hip":      "DEF-thigh.L",
		"L_Knee":     "DEF-shin.L",
		"L_Ankle":    "DEF-foot.L",
		"L_Foot":     "DEF-toe.L",
		"R_Collar":   "DEF-shoulder.R",
		"R_Shoulder": "DEF-upper_arm.R",
		"R_Elbow":    "DEF-forearm.R",
		"R_Wrist":    "DEF-hand.R",
		"R_Hand":     "",
		"R_Hip":      "DEF-thigh.R",
		"R_Knee":     "DEF-shin.R",
		"R_Ankle":    "DEF-foot.R",
		"R_Foot":     "DEF-toe.R",
	},
	skip: map[string]bool{},
	noCorrection: map[string]bool{
		"DEF-foot.L": true,
		"DEF-foot.R": true,
	},
	posedRest: true,
}

// Classic BioVision rigs have no mid-spine joint: the single Chest segment
// maps to the target's chest, leaving DEF-spine.001 at rest.
var classicBVHTable = &boneTable{
	bones: map[string]string{
		"Hips":          TargetHips,
		"Chest":         TargetChest,
		"Neck":          TargetNeck,
		"Head":          TargetHead,
		"LeftCollar":    "DEF-shoulder.L",
		"LeftShoulder":  "DEF-upper_arm.L",
		"LeftElbow":     "DEF-forearm.L",
		"LeftWrist":     "DEF-hand.L",
		"LeftHip":       "DEF-thigh.L",
		"LeftKnee":      "DEF-shin.L",
		"LeftAnkle":     "DEF-foot.L",
		"RightCollar":   "DEF-shoulder.R",
		"RightShoulder": "DEF-upper_arm.R",
		"RightElbow":    "DEF-forearm.R",
		"RightWrist":    "DEF-hand.R",
		"RightHip":      "DEF-thigh.R",
		"RightKnee":     "DEF-shin.R",
		"RightAnkle":    "DEF-foot.R",
	},
	skip: map[string]bool{},
	noCorrection: map[string]bool{
		"DEF-foot.L": true,
		"DEF-foot.R": true,
	},
}

var tables = map[Format]*boneTable{
	FormatMocapNET:   mocapnetTable,
	FormatCMU:        cmuTable,
	FormatMixamo:     mixamoTable,
	FormatSMPL:       smplTable,
	FormatClassicBVH: classicBVHTable,
}

// tableFor returns the mapping table for f, falling back to the MocapNET
// table for unknown tags so the lookup is total.
func tableFor(f Format) *boneTable {
	if t, ok := tables[f]; ok {
		return t
	}
	return mocapnetTable
}
