package animation

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-robot/common"
	"github.com/Carmen-Shannon/oxy-robot/engine/model"

	"github.com/go-gl/mathgl/mgl32"
)

// sampleVector returns the channel value at time t.
// Times before the first key hold the first value; times after the last key hold the last.
func sampleVector(keys []model.VectorKeyframe, t float32, step bool) mgl32.Vec3 {
	n := len(keys)
	if n == 1 || t <= keys[0].Time {
		return keys[0].Value
	}
	if t >= keys[n-1].Time {
		return keys[n-1].Value
	}
	i := sort.Search(n, func(i int) bool { return keys[i].Time > t })
	a, b := keys[i-1], keys[i]
	if step {
		return a.Value
	}
	f := (t - a.Time) / (b.Time - a.Time)
	return lerpVec3(a.Value, b.Value, f)
}

// sampleQuat is sampleVector for rotation keys, using shortest-path slerp.
func sampleQuat(keys []model.QuaternionKeyframe, t float32, step bool) mgl32.Quat {
	n := len(keys)
	if n == 1 || t <= keys[0].Time {
		return common.QuatFromXYZW(keys[0].Value)
	}
	if t >= keys[n-1].Time {
		return common.QuatFromXYZW(keys[n-1].Value)
	}
	i := sort.Search(n, func(i int) bool { return keys[i].Time > t })
	a, b := keys[i-1], keys[i]
	if step {
		return common.QuatFromXYZW(a.Value)
	}
	f := (t - a.Time) / (b.Time - a.Time)
	return slerp(common.QuatFromXYZW(a.Value), common.QuatFromXYZW(b.Value), f)
}

func lerpVec3(a, b mgl32.Vec3, f float32) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(f))
}

// slerp interpolates along the shorter arc between a and b.
func slerp(a, b mgl32.Quat, f float32) mgl32.Quat {
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}
	return mgl32.QuatSlerp(a, b, f).Normalize()
}

// poseAccumulator sums weighted per-bone samples. Each component keeps its own weight so
// that a clip animating only rotation leaves translation to the other clips and the rest pose.
type poseAccumulator struct {
	translation []mgl32.Vec3
	rotation    []mgl32.Quat
	scale       []mgl32.Vec3

	tWeight []float32
	rWeight []float32
	sWeight []float32
}

func newPoseAccumulator(boneCount int) *poseAccumulator {
	return &poseAccumulator{
		translation: make([]mgl32.Vec3, boneCount),
		rotation:    make([]mgl32.Quat, boneCount),
		scale:       make([]mgl32.Vec3, boneCount),
		tWeight:     make([]float32, boneCount),
		rWeight:     make([]float32, boneCount),
		sWeight:     make([]float32, boneCount),
	}
}

func (p *poseAccumulator) reset() {
	clear(p.tWeight)
	clear(p.rWeight)
	clear(p.sWeight)
}

// accumulate blends one clip, sampled at t, into the running totals with the given weight.
// Each new contribution is mixed in by weight / cumulativeWeight, which yields the
// weighted average of every contribution.
func (p *poseAccumulator) accumulate(clip *model.AnimationClip, t, weight float32) {
	if weight <= 0 {
		return
	}
	for i := range clip.Channels {
		ch := &clip.Channels[i]
		b := int(ch.BoneIndex)
		if b < 0 || b >= len(p.tWeight) {
			continue
		}
		if len(ch.PositionKeys) > 0 {
			v := sampleVector(ch.PositionKeys, t, ch.PositionStep)
			p.tWeight[b] += weight
			p.translation[b] = lerpVec3(p.translation[b], v, weight/p.tWeight[b])
		}
		if len(ch.RotationKeys) > 0 {
			q := sampleQuat(ch.RotationKeys, t, ch.RotationStep)
			p.rWeight[b] += weight
			if p.rWeight[b] == weight {
				p.rotation[b] = q
			} else {
				p.rotation[b] = slerp(p.rotation[b], q, weight/p.rWeight[b])
			}
		}
		if len(ch.ScaleKeys) > 0 {
			v := sampleVector(ch.ScaleKeys, t, ch.ScaleStep)
			p.sWeight[b] += weight
			p.scale[b] = lerpVec3(p.scale[b], v, weight/p.sWeight[b])
		}
	}
}

// resolve writes the final pose into out. Components whose total weight is below one are
// pulled toward the rest transform by the missing weight.
func (p *poseAccumulator) resolve(rest []model.Transform, out []model.Transform) {
	for b := range out {
		r := rest[b]
		t, q, s := mgl32.Vec3(r.Translation), common.QuatFromXYZW(r.Rotation), mgl32.Vec3(r.Scale)

		if w := p.tWeight[b]; w > 0 {
			t = lerpVec3(p.translation[b], t, max(0, 1-w))
		}
		if w := p.rWeight[b]; w > 0 {
			q = slerp(p.rotation[b], q, max(0, 1-w))
		}
		if w := p.sWeight[b]; w > 0 {
			s = lerpVec3(p.scale[b], s, max(0, 1-w))
		}

		out[b] = model.Transform{Translation: t, Rotation: common.QuatToXYZW(q), Scale: s}
	}
}
