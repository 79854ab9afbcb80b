// Package converter packages retargeted clips for downstream playback.
package converter

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/motionrig/retarget/motion"
	"github.com/motionrig/retarget/skeleton"
)

// ClipToGLTFOption configures the glTF conversion.
type ClipToGLTFOption struct {
	Scale float32 // scene scale applied to translations; default 1
}

type clipToGltf struct {
	*ClipToGLTFOption
	*gltf.Document
	JointToNode map[string]uint32
}

// NewClipToGLTFConverter returns a converter that builds one glTF document
// per (target skeleton, output clip) pair: a node per joint carrying the
// rest pose TRS, plus one animation with the clip's rotation and
// translation channels. Quaternions are written in (x, y, z, w) order, as
// glTF requires.
func NewClipToGLTFConverter(options *ClipToGLTFOption) *clipToGltf {
	if options == nil {
		options = &ClipToGLTFOption{}
	}
	if options.Scale == 0 {
		options.Scale = 1
	}
	return &clipToGltf{
		ClipToGLTFOption: options,
		Document:         gltf.NewDocument(),
		JointToNode:      map[string]uint32{},
	}
}

func (c *clipToGltf) addJointNodes(s *skeleton.Skeleton) {
	scale := c.Scale
	for i := 0; i < s.Len(); i++ {
		j := s.Joint(i)
		q := j.Rotation
		node := &gltf.Node{
			Name: j.Name,
			Translation: [3]float32{
				j.Translation.X() * scale,
				j.Translation.Y() * scale,
				j.Translation.Z() * scale,
			},
			Rotation: [4]float32{q.X(), q.Y(), q.Z(), q.W},
		}
		c.JointToNode[j.Name] = uint32(len(c.Nodes))
		c.Nodes = append(c.Nodes, node)
	}
	for i := 0; i < s.Len(); i++ {
		j := s.Joint(i)
		if j.Parent < 0 {
			c.Scenes[0].Nodes = append(c.Scenes[0].Nodes, c.JointToNode[j.Name])
			continue
		}
		parent := c.Nodes[c.JointToNode[s.Joint(j.Parent).Name]]
		parent.Children = append(parent.Children, c.JointToNode[j.Name])
	}
}

func timesEquals(a, b []float32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (c *clipToGltf) addAnimation(clip *motion.Clip) {
	a := gltf.Animation{Name: clip.Name}

	var prevTimes []float32
	var prevAcc uint32
	input := func(times []float32) uint32 {
		if prevTimes != nil && timesEquals(times, prevTimes) {
			return prevAcc
		}
		prevTimes = times
		prevAcc = modeler.WriteAccessor(c.Document, gltf.TargetArrayBuffer, times)
		return prevAcc
	}

	for i := range clip.Rotations {
		t := &clip.Rotations[i]
		n, ok := c.JointToNode[t.Joint]
		if !ok {
			continue
		}
		rotations := make([][4]float32, len(t.Values))
		for f, q := range t.Values {
			rotations[f] = [4]float32{q.X(), q.Y(), q.Z(), q.W}
		}
		keysAcc := input(t.Times)
		samplesAcc := modeler.WriteTangent(c.Document, rotations)
		a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
			Input:         gltf.Index(keysAcc),
			Output:        gltf.Index(samplesAcc),
			Interpolation: gltf.InterpolationLinear,
		})
		a.Channels = append(a.Channels, &gltf.Channel{
			Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
			Target: gltf.ChannelTarget{
				Node: gltf.Index(n),
				Path: gltf.TRSRotation,
			},
		})
	}

	if p := clip.Position; p != nil {
		if n, ok := c.JointToNode[p.Joint]; ok {
			translations := make([][3]float32, len(p.Values))
			for f, v := range p.Values {
				translations[f] = [3]float32{
					v.X() * c.Scale,
					v.Y() * c.Scale,
					v.Z() * c.Scale,
				}
			}
			keysAcc := input(p.Times)
			samplesAcc := modeler.WritePosition(c.Document, translations)
			a.Samplers = append(a.Samplers, &gltf.AnimationSampler{
				Input:         gltf.Index(keysAcc),
				Output:        gltf.Index(samplesAcc),
				Interpolation: gltf.InterpolationLinear,
			})
			a.Channels = append(a.Channels, &gltf.Channel{
				Sampler: gltf.Index(uint32(len(a.Samplers) - 1)),
				Target: gltf.ChannelTarget{
					Node: gltf.Index(n),
					Path: gltf.TRSTranslation,
				},
			})
		}
	}

	if len(a.Channels) > 0 {
		c.Animations = append(c.Animations, &a)
	}
}

// Convert builds the glTF document for target + clip.
func (c *clipToGltf) Convert(target *skeleton.Skeleton, clip *motion.Clip) (*gltf.Document, error) {
	if target == nil {
		return nil, fmt.Errorf("convert clip: nil target skeleton")
	}
	c.addJointNodes(target)
	if clip != nil && !clip.Empty() {
		c.addAnimation(clip)
	}
	return c.Document, nil
}
