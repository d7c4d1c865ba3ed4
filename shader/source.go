package shader

// The quad's shaders are written in GLSL ES 3.00 so the translator can
// validate them and emit the desktop dialect for the current context.

const VertexSource = `#version 300 es
layout(location = 0) in vec4 position;

void main() {
    gl_Position = position;
}
`

const FragmentSource = `#version 300 es
precision mediump float;
layout(location = 0) out vec4 color;

void main() {
    color = vec4(1.0, 0.0, 0.0, 1.0);
}
`

// Desktop GL sources, used as-is when the translator cannot be started.

const VertexSourceGL = `#version 330 core
layout(location = 0) in vec4 position;

void main() {
    gl_Position = position;
}
`

const FragmentSourceGL = `#version 330 core
layout(location = 0) out vec4 color;

void main() {
    color = vec4(1.0, 0.0, 0.0, 1.0);
}
`
