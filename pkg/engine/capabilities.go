package engine

import (
	"errors"

	"github.com/go-gl/gl/v4.1-core/gl"

	"outline/internal/logger"
	"outline/pkg/outline"
)

// Extension names that add the capabilities to older contexts
var (
	floatTextureExtensions = []string{"GL_ARB_texture_float", "GL_OES_texture_float"}
	derivativeExtensions   = []string{"GL_OES_standard_derivatives"}
)

// capabilitiesFor derives capabilities from the context version and its
// extension list. Both features are core from 3.0 on.
func capabilitiesFor(major, minor int, extensions []string) outline.Capabilities {
	has := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		has[e] = true
	}
	anyOf := func(names []string) bool {
		for _, n := range names {
			if has[n] {
				return true
			}
		}
		return false
	}

	core := major >= 3
	return outline.Capabilities{
		FloatTextures: core || anyOf(floatTextureExtensions),
		Derivatives:   core || anyOf(derivativeExtensions),
	}
}

// DetectCapabilities queries the current context. Float textures must also
// be color-renderable, which only a trial framebuffer can tell.
func DetectCapabilities(log *logger.Logger) outline.Capabilities {
	var major, minor, count int32
	gl.GetIntegerv(gl.MAJOR_VERSION, &major)
	gl.GetIntegerv(gl.MINOR_VERSION, &minor)
	gl.GetIntegerv(gl.NUM_EXTENSIONS, &count)

	extensions := make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		extensions = append(extensions, gl.GoStr(gl.GetStringi(gl.EXTENSIONS, uint32(i))))
	}

	caps := capabilitiesFor(int(major), int(minor), extensions)
	if caps.FloatTextures {
		rt, err := NewRenderTarget(1, 1, outline.FormatFloat32)
		switch {
		case errors.Is(err, ErrIncompleteTarget):
			log.Warnf("float textures are not color-renderable: %v", err)
			caps.FloatTextures = false
		case err != nil:
			log.Warnf("float target check: %v", err)
			caps.FloatTextures = false
		default:
			rt.Delete()
		}
	}

	log.Infof("GL %d.%d (%s), %d extensions, float targets %t, derivatives %t",
		major, minor, gl.GoStr(gl.GetString(gl.RENDERER)), count, caps.FloatTextures, caps.Derivatives)
	return caps
}
