package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/motionrig/retarget/motion"
	"github.com/motionrig/retarget/skeleton"
)

// JSON interchange documents. Quaternions are serialized [x, y, z, w];
// an omitted rotation means identity.

type jointJSON struct {
	Name        string      `json:"name"`
	Parent      string      `json:"parent,omitempty"`
	Translation [3]float32  `json:"translation"`
	Rotation    *[4]float32 `json:"rotation,omitempty"`
}

type skeletonJSON struct {
	Joints []jointJSON `json:"joints"`
}

type rotationTrackJSON struct {
	Joint     string       `json:"joint"`
	Times     []float32    `json:"times"`
	Rotations [][4]float32 `json:"rotations"`
}

type positionTrackJSON struct {
	Joint  string       `json:"joint"`
	Times  []float32    `json:"times"`
	Values [][3]float32 `json:"values"`
}

type clipJSON struct {
	Name     string              `json:"name,omitempty"`
	Duration float32             `json:"duration,omitempty"`
	Tracks   []rotationTrackJSON `json:"tracks"`
	Position *positionTrackJSON  `json:"position,omitempty"`
}

func loadSkeleton(path string) (*skeleton.Skeleton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc skeletonJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	defs := make([]skeleton.JointDef, len(doc.Joints))
	for i, j := range doc.Joints {
		rot := mgl32.QuatIdent()
		if j.Rotation != nil {
			r := *j.Rotation
			rot = mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		}
		defs[i] = skeleton.JointDef{
			Name:        j.Name,
			Parent:      j.Parent,
			Translation: mgl32.Vec3(j.Translation),
			Rotation:    rot,
		}
	}
	s, err := skeleton.New(defs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func loadClip(path string) (*motion.Clip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc clipJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	clip := &motion.Clip{Name: doc.Name, Duration: doc.Duration}
	for _, t := range doc.Tracks {
		values := make([]mgl32.Quat, len(t.Rotations))
		for f, r := range t.Rotations {
			values[f] = mgl32.Quat{W: r[3], V: mgl32.Vec3{r[0], r[1], r[2]}}
		}
		clip.Rotations = append(clip.Rotations, motion.RotationTrack{
			Joint:  t.Joint,
			Times:  t.Times,
			Values: values,
		})
	}
	if p := doc.Position; p != nil {
		values := make([]mgl32.Vec3, len(p.Values))
		for f, v := range p.Values {
			values[f] = mgl32.Vec3(v)
		}
		clip.Position = &motion.PositionTrack{Joint: p.Joint, Times: p.Times, Values: values}
	}
	if err := clip.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

func saveClipJSON(path string, clip *motion.Clip) error {
	doc := clipJSON{Name: clip.Name, Duration: clip.Duration}
	for _, t := range clip.Rotations {
		rotations := make([][4]float32, len(t.Values))
		for f, q := range t.Values {
			rotations[f] = [4]float32{q.X(), q.Y(), q.Z(), q.W}
		}
		doc.Tracks = append(doc.Tracks, rotationTrackJSON{
			Joint:     t.Joint,
			Times:     t.Times,
			Rotations: rotations,
		})
	}
	if p := clip.Position; p != nil {
		values := make([][3]float32, len(p.Values))
		for f, v := range p.Values {
			values[f] = [3]float32{v.X(), v.Y(), v.Z()}
		}
		doc.Position = &positionTrackJSON{Joint: p.Joint, Times: p.Times, Values: values}
	}
	data, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
