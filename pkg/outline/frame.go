package outline

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"outline/pkg/scene"
)

// TargetID names a render target within a frame plan
type TargetID int

const (
	TargetScreen TargetID = iota
	TargetMask
	TargetGradient
	TargetOutline
)

func (t TargetID) String() string {
	switch t {
	case TargetScreen:
		return "screen"
	case TargetMask:
		return "mask"
	case TargetGradient:
		return "gradient"
	case TargetOutline:
		return "outline"
	}
	return fmt.Sprintf("TargetID(%d)", int(t))
}

// PassKind is the kind of work one pass submits
type PassKind int

const (
	PassClearScene PassKind = iota
	PassBackground
	PassMask
	PassKernel
	PassComposite
	PassOffsetOutline
	PassLitObject
)

var passNames = map[PassKind]string{
	PassClearScene:    "clear",
	PassBackground:    "background",
	PassMask:          "mask",
	PassKernel:        "kernel",
	PassComposite:     "composite",
	PassOffsetOutline: "offset-outline",
	PassLitObject:     "lit-object",
}

func (k PassKind) String() string {
	if name, ok := passNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PassKind(%d)", int(k))
}

// Pass is one step of a frame. Variant is meaningful for PassKernel only.
type Pass struct {
	Kind    PassKind
	Variant KernelVariant
	Source  TargetID
	Dest    TargetID
}

func (p Pass) String() string {
	if p.Kind == PassKernel {
		return fmt.Sprintf("%v[%v %v->%v]", p.Kind, p.Variant, p.Source, p.Dest)
	}
	return fmt.Sprintf("%v[->%v]", p.Kind, p.Dest)
}

// FrameCommands is the complete, backend-independent plan for one frame
type FrameCommands struct {
	Elapsed   float64
	Transform Transform
	Technique Technique

	Projection     mgl32.Mat4
	ModelView      mgl32.Mat4
	OutlineView    mgl32.Mat4 // scaled duplicate, offset technique only
	BackgroundView mgl32.Mat4

	Passes []Pass
}

// BuildFrame is the pure frame planner: the same inputs always give the
// same commands.
func BuildFrame(s FrameSettings, elapsed float64, t Transform) FrameCommands {
	mv := ModelView(s.Camera, t)
	cmds := FrameCommands{
		Elapsed:        elapsed,
		Transform:      t,
		Technique:      s.Technique,
		Projection:     s.Camera.Projection(),
		ModelView:      mv,
		OutlineView:    scene.Scaled(mv, 1+s.Margin),
		BackgroundView: s.Camera.BackgroundView(),
	}

	passes := []Pass{
		{Kind: PassClearScene, Dest: TargetScreen},
		{Kind: PassBackground, Dest: TargetScreen},
	}

	if s.Technique == TechniqueOffset {
		passes = append(passes, Pass{Kind: PassOffsetOutline, Dest: TargetScreen})
	} else {
		passes = append(passes, Pass{Kind: PassMask, Dest: TargetMask})
		src := TargetMask
		variants := s.Technique.KernelPasses()
		for i, v := range variants {
			dst := TargetOutline
			if i < len(variants)-1 {
				dst = TargetGradient
			}
			passes = append(passes, Pass{Kind: PassKernel, Variant: v, Source: src, Dest: dst})
			src = dst
		}
		passes = append(passes, Pass{Kind: PassComposite, Source: TargetOutline, Dest: TargetScreen})
	}

	passes = append(passes, Pass{Kind: PassLitObject, Dest: TargetScreen})
	cmds.Passes = passes
	return cmds
}

// Targets lists the offscreen targets a technique needs, with their formats
func Targets(t Technique) map[TargetID]PixelFormat {
	out := map[TargetID]PixelFormat{}
	if !t.UsesMask() {
		return out
	}
	out[TargetMask] = FormatUnorm8
	out[TargetOutline] = FormatUnorm8
	if t == TechniqueCanny {
		out[TargetGradient] = FormatFloat32
	}
	return out
}
