package texmat

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/naga"
)

// MaxMaterialLayers is the number of texture layer slots on a material.
// Layer 0 is the primary texture layer.
const MaxMaterialLayers = 4

// ErrLayerOutOfRange is returned when a layer index is outside
// [0, MaxMaterialLayers).
var ErrLayerOutOfRange = errors.New("texmat: material layer index out of range")

// layerShaderWGSL is the single-texture-layer program shared by every
// material copied from the template. Keeping one program across all
// texture materials lets the driver reuse the compiled pipeline; only the
// bound texture differs between copies.
const layerShaderWGSL = `
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(@builtin(vertex_index) vi: u32) -> VertexOutput {
    // Fullscreen triangle: (-1,-1), (3,-1), (-1,3)
    var out: VertexOutput;
    let x = f32(i32(vi & 1u) * 4 - 1);
    let y = f32(i32(vi & 2u) * 2 - 1);
    out.position = vec4<f32>(x, y, 0.0, 1.0);
    out.uv = vec2<f32>((x + 1.0) * 0.5, 1.0 - (y + 1.0) * 0.5);
    return out;
}

@group(0) @binding(0) var layer_tex: texture_2d<f32>;
@group(0) @binding(1) var layer_samp: sampler;

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    // Texture contents are premultiplied; the opacity uniform is folded
    // into the blend state, not the shader.
    return textureSample(layer_tex, layer_samp, in.uv);
}
`

// shaderProgram is a compiled layer shader, shared (not copied) between
// the material template and every material derived from it.
type shaderProgram struct {
	spirv []uint32
}

// compileLayerShader compiles the layer WGSL to SPIR-V words.
func compileLayerShader() (*shaderProgram, error) {
	spirvBytes, err := naga.Compile(layerShaderWGSL)
	if err != nil {
		return nil, fmt.Errorf("texmat: layer shader compilation failed: %w", err)
	}

	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return &shaderProgram{spirv: words}, nil
}

// Material is a reusable rendering configuration binding texture layers to
// a shared layer shader. Materials returned by NewTextureMaterial are
// independent copies of a process-wide template; mutating a copy never
// affects the template or other copies.
type Material struct {
	layers  [MaxMaterialLayers]Texture
	program *shaderProgram
}

// Layer returns the texture bound at the given layer slot, or nil.
func (m *Material) Layer(i int) Texture {
	if i < 0 || i >= MaxMaterialLayers {
		return nil
	}
	return m.layers[i]
}

// SetLayer binds a texture into the given layer slot.
func (m *Material) SetLayer(i int, tex Texture) error {
	if i < 0 || i >= MaxMaterialLayers {
		return fmt.Errorf("%w: %d", ErrLayerOutOfRange, i)
	}
	m.layers[i] = tex
	return nil
}

// Copy returns an independent copy of the material. The compiled shader
// program is shared, the layer bindings are copied.
func (m *Material) Copy() *Material {
	c := *m
	return &c
}

// SPIRV returns the compiled layer shader words for pipeline creation.
// All materials copied from the same template return the same slice.
func (m *Material) SPIRV() []uint32 {
	if m.program == nil {
		return nil
	}
	return m.program.spirv
}

// materialTemplate holds the process-wide template material. Once built
// it is never rebuilt and never released; its dummy white texture and
// compiled shader live for the process lifetime. Failed builds (no
// graphics context yet) are not cached; the next call retries.
var materialTemplate struct {
	mu sync.Mutex
	m  *Material
}

// NewTextureMaterial creates a material with a single texture layer.
//
// All materials are copies of one shared template whose layer 0 holds a
// dummy opaque-white 1x1 texture. Using a common template means only the
// bound texture differs between materials, so the driver can share the
// compiled shader program across all of them instead of compiling one per
// material. If src is non-nil it replaces layer 0 in the returned copy;
// the template always keeps the dummy layer.
func NewTextureMaterial(src Texture) (*Material, error) {
	template, err := textureMaterialTemplate()
	if err != nil {
		return nil, err
	}

	material := template.Copy()
	if src != nil {
		material.layers[0] = src
	}
	return material, nil
}

// textureMaterialTemplate returns the shared template, building it on
// first success.
func textureMaterialTemplate() (*Material, error) {
	materialTemplate.mu.Lock()
	defer materialTemplate.mu.Unlock()

	if materialTemplate.m != nil {
		return materialTemplate.m, nil
	}

	dummy, err := NewColorTexture(0xff, 0xff, 0xff, 0xff, FlagNone)
	if err != nil {
		return nil, fmt.Errorf("texmat: material template: %w", err)
	}

	program, err := compileLayerShader()
	if err != nil {
		dummy.Destroy()
		return nil, err
	}

	t := &Material{program: program}
	t.layers[0] = dummy
	materialTemplate.m = t
	return t, nil
}
