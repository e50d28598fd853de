package engine

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"outline/internal/logger"
)

// Attribute locations fixed by the shader sources
const (
	attribPosition = 0
	attribNormal   = 1
)

// Program is a linked shader program with its uniform locations resolved
// once. The only way to get one is a successful NewProgram, so a draw call
// never sees an unlinked program.
type Program struct {
	name     string
	id       uint32
	uniforms map[string]int32
}

// NewProgram compiles and links a program from vertex and fragment sources
// and looks up the named uniforms. Failures are logged at ERROR together
// with the offending source.
func NewProgram(log *logger.Logger, name, vertexSource, fragmentSource string, uniforms ...string) (*Program, error) {
	vertexShader, err := compileShader(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		log.Errorf("%s vertex shader: %v\n%s", name, err, numberLines(vertexSource))
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	fragmentShader, err := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		log.Errorf("%s fragment shader: %v\n%s", name, err, numberLines(fragmentSource))
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// Shaders are no longer needed once linking has been attempted
	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(info))
		gl.DeleteProgram(program)

		info = strings.TrimRight(info, "\x00")
		log.Errorf("%s link: %s\n%s\n%s", name, info, numberLines(vertexSource), numberLines(fragmentSource))
		return nil, fmt.Errorf("%s: %w: %s", name, ErrShaderLink, info)
	}

	p := &Program{name: name, id: program, uniforms: make(map[string]int32, len(uniforms))}
	for _, u := range uniforms {
		loc := gl.GetUniformLocation(program, gl.Str(u+"\x00"))
		if loc < 0 {
			// unused uniforms are compiled out; writes to -1 are ignored by GL
			log.Debugf("%s: uniform %s is inactive", name, u)
		}
		p.uniforms[u] = loc
	}
	log.Debugf("linked program %s (%d)", name, program)
	return p, nil
}

// compileShader compiles a shader from source
func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		info := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(info))

		gl.DeleteShader(shader)

		return 0, fmt.Errorf("%w: %s", ErrShaderCompile, strings.TrimRight(info, "\x00"))
	}

	return shader, nil
}

// numberLines prefixes each source line with its number, matching the line
// numbers in driver messages
func numberLines(source string) string {
	lines := strings.Split(strings.TrimPrefix(source, "\n"), "\n")
	var b strings.Builder
	for i, l := range lines {
		fmt.Fprintf(&b, "%4d  %s\n", i+1, l)
	}
	return b.String()
}

// Name returns the program's label
func (p *Program) Name() string {
	return p.name
}

// Use makes the program current
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Uniform returns the location resolved at link time, or -1
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	return -1
}

// SetMat4 sets a matrix uniform of the current program
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Uniform(name), 1, false, &m[0])
}

// SetVec4 sets a vec4 uniform of the current program
func (p *Program) SetVec4(name string, v [4]float32) {
	gl.Uniform4f(p.Uniform(name), v[0], v[1], v[2], v[3])
}

// SetVec3 sets a vec3 uniform of the current program
func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Uniform(name), v[0], v[1], v[2])
}

// SetVec2 sets a vec2 uniform of the current program
func (p *Program) SetVec2(name string, v [2]float32) {
	gl.Uniform2f(p.Uniform(name), v[0], v[1])
}

// SetFloat sets a float uniform of the current program
func (p *Program) SetFloat(name string, v float32) {
	gl.Uniform1f(p.Uniform(name), v)
}

// SetInt sets an int or sampler uniform of the current program
func (p *Program) SetInt(name string, v int) {
	gl.Uniform1i(p.Uniform(name), int32(v))
}

// Delete releases the GL program
func (p *Program) Delete() {
	gl.DeleteProgram(p.id)
}
