// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms textured, lit meshes.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader blends the two scene lights over the diffuse texture.
//
//go:embed scene.frag
var SceneFragmentShader string
