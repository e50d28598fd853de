package engine

// Shader sources for the outline renderer. Kernel shaders sample with
// nearest filtering and clamp-to-edge, so a tap at uv + k*pixelSize reads
// exactly the neighbouring texel.

// Vertex shader for meshes drawn without lighting
const flatVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;

uniform mat4 projection;
uniform mat4 modelView;

void main() {
    gl_Position = projection * modelView * vec4(aPos, 1.0);
}
`

// Fragment shader writing one constant color: the mask and the offset outline
const flatFragmentShaderSource = `
#version 410 core
out vec4 FragColor;

uniform vec4 color;

void main() {
    FragColor = color;
}
`

// Vertex shader for the lit model and the floor. The light direction goes
// through the model-view, so the light rides with the object.
const litVertexShaderSource = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 projection;
uniform mat4 modelView;
uniform vec3 lightDirection;

out vec3 Normal;
out vec3 ToLight;

void main() {
    Normal = (modelView * vec4(aNormal, 0.0)).xyz;
    ToLight = (modelView * vec4(-lightDirection, 0.0)).xyz;
    gl_Position = projection * modelView * vec4(aPos, 1.0);
}
`

// Fragment shader: ambient plus one diffuse term
const litFragmentShaderSource = `
#version 410 core
in vec3 Normal;
in vec3 ToLight;
out vec4 FragColor;

uniform vec4 color;
uniform vec3 ambient;
uniform vec3 lightColor;

void main() {
    float ndotl = max(0.0, dot(normalize(Normal), normalize(ToLight)));
    FragColor = vec4(ambient * color.rgb + ndotl * lightColor * color.rgb, color.a);
}
`

// Full-screen quad vertex shader. The quad's corners are given in [0,1]
// and double as texture coordinates.
const quadVertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;

out vec2 TexCoord;

void main() {
    TexCoord = aPos;
    gl_Position = vec4(aPos * 2.0 - 1.0, 0.0, 1.0);
}
`

// Composite: the outline texture as is, blending does the rest
const compositeFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D source;

void main() {
    FragColor = texture(source, TexCoord);
}
`

// Coverage/distance kernel over the selection mask
const blurFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D source;
uniform vec2 pixelSize;
uniform vec4 color;
uniform int radius;
uniform float solid;
uniform float fuzzy;
uniform float insideFalloff;

void main() {
    float sum = 0.0;
    float dist = 1e6;
    for (int j = -radius; j <= radius; j++) {
        for (int i = -radius; i <= radius; i++) {
            float m = texture(source, TexCoord + vec2(i, j) * pixelSize).r;
            sum += m;
            if (m >= 0.5) {
                dist = min(dist, length(vec2(i, j)));
            }
        }
    }
    float n = float(2 * radius + 1);
    float coverage = sum / (n * n);

    float alpha;
    if (texture(source, TexCoord).r > 0.5) {
        alpha = min(1.0, (1.0 - coverage) / insideFalloff);
    } else {
        alpha = 1.0 - clamp((dist - solid) / fuzzy, 0.0, 1.0);
    }
    FragColor = vec4(color.rgb, alpha);
}
`

// 3x3 Sobel magnitude, largest over the color channels. The tap stride
// comes from the screen-space derivatives of the texture coordinate.
const sobelFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D source;
uniform vec4 color;

const float kx[9] = float[9](-1.0, 0.0, 1.0, -2.0, 0.0, 2.0, -1.0, 0.0, 1.0);
const float ky[9] = float[9](-1.0, -2.0, -1.0, 0.0, 0.0, 0.0, 1.0, 2.0, 1.0);

void main() {
    vec2 stride = fwidth(TexCoord);
    vec3 gx = vec3(0.0);
    vec3 gy = vec3(0.0);
    for (int j = -1; j <= 1; j++) {
        for (int i = -1; i <= 1; i++) {
            int k = (j + 1) * 3 + (i + 1);
            vec3 c = texture(source, TexCoord + vec2(i, j) * stride).rgb;
            gx += kx[k] * c;
            gy += ky[k] * c;
        }
    }
    vec3 m = sqrt(gx * gx + gy * gy);
    FragColor = vec4(color.rgb, min(1.0, max(m.r, max(m.g, m.b))));
}
`

// Canny first pass: luminance gradient as (|G|, gx, gy, 1). Needs a float
// render target, the components leave [0,1].
const cannyGradientFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D source;
uniform vec2 pixelSize;

const float kx[9] = float[9](-1.0, 0.0, 1.0, -2.0, 0.0, 2.0, -1.0, 0.0, 1.0);
const float ky[9] = float[9](-1.0, -2.0, -1.0, 0.0, 0.0, 0.0, 1.0, 2.0, 1.0);
const vec3 luma = vec3(0.3, 0.6, 0.1);

void main() {
    float gx = 0.0;
    float gy = 0.0;
    for (int j = -1; j <= 1; j++) {
        for (int i = -1; i <= 1; i++) {
            int k = (j + 1) * 3 + (i + 1);
            float l = dot(luma, texture(source, TexCoord + vec2(i, j) * pixelSize).rgb);
            gx += kx[k] * l;
            gy += ky[k] * l;
        }
    }
    FragColor = vec4(length(vec2(gx, gy)), gx, gy, 1.0);
}
`

// Canny second pass: non-maximum suppression along the quantized gradient
const cannyNMSFragmentShaderSource = `
#version 410 core
in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D source;
uniform vec2 pixelSize;
uniform vec4 color;
uniform float threshold;

void main() {
    vec4 g = texture(source, TexCoord);
    float m = g.r;
    if (m <= threshold || (g.g == 0.0 && g.b == 0.0)) {
        FragColor = vec4(color.rgb, 0.0);
        return;
    }

    float deg = degrees(atan(g.b, g.g));
    if (deg < 0.0) {
        deg += 180.0;
    }
    vec2 dir;
    if (deg < 22.5 || deg >= 157.5) {
        dir = vec2(1.0, 0.0);
    } else if (deg < 67.5) {
        dir = vec2(1.0, 1.0);
    } else if (deg < 112.5) {
        dir = vec2(0.0, 1.0);
    } else {
        dir = vec2(-1.0, 1.0);
    }

    float behind = texture(source, TexCoord - dir * pixelSize).r;
    float ahead = texture(source, TexCoord + dir * pixelSize).r;
    float alpha = (m > behind && m >= ahead) ? min(1.0, m) : 0.0;
    FragColor = vec4(color.rgb, alpha);
}
`
