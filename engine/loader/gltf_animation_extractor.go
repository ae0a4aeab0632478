package loader

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-robot/engine/model"
)

const (
	gltfPathTranslation = "translation"
	gltfPathRotation    = "rotation"
	gltfPathScale       = "scale"

	gltfInterpolationStep        = "STEP"
	gltfInterpolationCubicSpline = "CUBICSPLINE"
)

// gltfAnimationExtractorImpl is the implementation of the gltfAnimationExtractor interface.
type gltfAnimationExtractorImpl struct {
	parser gltfParser
}

// gltfAnimationExtractor converts glTF animations into per-bone TRS keyframe clips.
type gltfAnimationExtractor interface {
	// ExtractAnimations converts every animation in document order. Channels that target
	// nodes outside nodeToBone, and morph weight channels, are dropped.
	//
	// Parameters:
	//   - nodeToBone: joint node index to bone index
	//
	// Returns:
	//   - []*model.AnimationClip: one clip per glTF animation
	//   - error: error if a sampler is malformed
	ExtractAnimations(nodeToBone map[int]int32) ([]*model.AnimationClip, error)
}

var _ gltfAnimationExtractor = &gltfAnimationExtractorImpl{}

// newGLTFAnimationExtractor creates an animation extractor over a parsed document.
func newGLTFAnimationExtractor(parser gltfParser) gltfAnimationExtractor {
	return &gltfAnimationExtractorImpl{parser: parser}
}

func (e *gltfAnimationExtractorImpl) ExtractAnimations(nodeToBone map[int]int32) ([]*model.AnimationClip, error) {
	doc := e.parser.Document()
	clips := make([]*model.AnimationClip, 0, len(doc.Animations))
	for i := range doc.Animations {
		clip, err := e.extract(i, nodeToBone)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

func (e *gltfAnimationExtractorImpl) extract(index int, nodeToBone map[int]int32) (*model.AnimationClip, error) {
	anim := &e.parser.Document().Animations[index]
	name := anim.Name
	if name == "" {
		name = fmt.Sprintf("animation_%d", index)
	}

	clip := &model.AnimationClip{Name: name}
	byBone := make(map[int32]*model.AnimationChannel)

	for i, ch := range anim.Channels {
		if ch.Target.Node == nil {
			continue
		}
		bone, ok := nodeToBone[*ch.Target.Node]
		if !ok {
			continue
		}
		switch ch.Target.Path {
		case gltfPathTranslation, gltfPathRotation, gltfPathScale:
		default:
			continue
		}
		if ch.Sampler < 0 || ch.Sampler >= len(anim.Samplers) {
			return nil, fmt.Errorf("animation %q channel %d: invalid sampler %d", name, i, ch.Sampler)
		}
		sampler := anim.Samplers[ch.Sampler]

		times, _, err := e.parser.ReadFloats(sampler.Input)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d: failed to read times: %w", name, i, err)
		}
		values, width, err := e.parser.ReadFloats(sampler.Output)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d: failed to read values: %w", name, i, err)
		}
		want := 3
		if ch.Target.Path == gltfPathRotation {
			want = 4
		}
		if width != want {
			return nil, fmt.Errorf("animation %q channel %d: %s output has %d components", name, i, ch.Target.Path, width)
		}
		if len(times) > 0 {
			clip.Duration = max(clip.Duration, times[len(times)-1])
		}

		// Cubic spline output stores (in-tangent, value, out-tangent) per key; keep the value.
		stride, offset := width, 0
		if sampler.Interpolation == gltfInterpolationCubicSpline {
			stride, offset = width*3, width
		}
		keyCount := min(len(times), len(values)/max(stride, 1))

		out, ok := byBone[bone]
		if !ok {
			out = &model.AnimationChannel{BoneIndex: bone}
			byBone[bone] = out
		}

		step := sampler.Interpolation == gltfInterpolationStep

		switch ch.Target.Path {
		case gltfPathTranslation, gltfPathScale:
			keys := make([]model.VectorKeyframe, keyCount)
			for k := range keys {
				base := k*stride + offset
				keys[k] = model.VectorKeyframe{Time: times[k], Value: [3]float32(values[base : base+3])}
			}
			if ch.Target.Path == gltfPathTranslation {
				out.PositionKeys, out.PositionStep = keys, step
			} else {
				out.ScaleKeys, out.ScaleStep = keys, step
			}
		case gltfPathRotation:
			keys := make([]model.QuaternionKeyframe, keyCount)
			for k := range keys {
				base := k*stride + offset
				keys[k] = model.QuaternionKeyframe{Time: times[k], Value: [4]float32(values[base : base+4])}
			}
			out.RotationKeys, out.RotationStep = keys, step
		}
	}

	clip.Channels = make([]model.AnimationChannel, 0, len(byBone))
	for _, ch := range byBone {
		clip.Channels = append(clip.Channels, *ch)
	}
	sort.Slice(clip.Channels, func(i, j int) bool {
		return clip.Channels[i].BoneIndex < clip.Channels[j].BoneIndex
	})
	return clip, nil
}
