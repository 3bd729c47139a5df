package renderer

const quadVertexSource = `
#version 410 core

out vec2 vUV;

void main() {
	vec2 p = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
	vUV = p;
	gl_Position = vec4(p * 2.0 - 1.0, 0.0, 1.0);
}
`

const quadFragmentSource = `
#version 410 core

in vec2 vUV;
out vec4 FragColor;

uniform sampler2D uTexture;
uniform bool uFlipY;

void main() {
	vec2 uv = uFlipY ? vec2(vUV.x, 1.0 - vUV.y) : vUV;
	FragColor = texture(uTexture, uv);
}
`

// Points are sized in world units and attenuated with view depth; uScale is
// half the drawing buffer height in pixels.
const pointsVertexSource = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform float uSize;
uniform float uScale;

out float vFogDepth;

void main() {
	vec4 mvPosition = uView * uModel * vec4(aPos, 1.0);
	gl_PointSize = uSize * (uScale / -mvPosition.z);
	vFogDepth = -mvPosition.z;
	gl_Position = uProjection * mvPosition;
}
`

const pointsFragmentSource = `
#version 410 core

in float vFogDepth;
out vec4 FragColor;

uniform sampler2D uSprite;
uniform vec3 uColor;
uniform float uOpacity;
uniform vec3 uFogColor;
uniform float uFogDensity;

void main() {
	float alpha = texture(uSprite, gl_PointCoord).a * uOpacity;
	if (alpha <= 0.0) {
		discard;
	}
	float fog = 1.0 - exp(-uFogDensity * uFogDensity * vFogDepth * vFogDepth);
	vec3 color = mix(uColor, uFogColor, clamp(fog, 0.0, 1.0));
	FragColor = vec4(color, alpha);
}
`
