package webgpu

import (
	_ "embed"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
)

//go:embed shader.wgsl
var shaderSource string

// uniformSize is the byte size of the WGSL DrawUniforms struct: one
// mat4x4f plus one vec4f.
const uniformSize = 64 + 16

// CreateRenderPipeline builds a forward pipeline for one primitive. Group 0
// is the per-draw uniform buffer; textured pipelines add group 1 with the
// base color sampler and texture.
func (b *Backend) CreateRenderPipeline(label string, desc renderer.PipelineDescriptor) (renderer.Pipeline, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "forward shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: shaderSource,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("creating shader module: %w", err)
	}
	defer module.Release()

	uniformLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: label + " uniforms",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
			Buffer: wgpu.BufferBindingLayout{
				Type: wgpu.BufferBindingTypeUniform,
			},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("creating uniform layout: %w", err)
	}

	layouts := []*wgpu.BindGroupLayout{uniformLayout}
	var textureLayout *wgpu.BindGroupLayout
	if desc.Textured {
		textureLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: label + " material",
			Entries: []wgpu.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: wgpu.ShaderStageFragment,
					Sampler: wgpu.SamplerBindingLayout{
						Type: wgpu.SamplerBindingTypeFiltering,
					},
				},
				{
					Binding:    1,
					Visibility: wgpu.ShaderStageFragment,
					Texture: wgpu.TextureBindingLayout{
						SampleType:    wgpu.TextureSampleTypeFloat,
						ViewDimension: wgpu.TextureViewDimension2D,
					},
				},
			},
		})
		if err != nil {
			uniformLayout.Release()
			return nil, fmt.Errorf("creating material layout: %w", err)
		}
		layouts = append(layouts, textureLayout)
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            label,
		BindGroupLayouts: layouts,
	})
	if err != nil {
		if textureLayout != nil {
			textureLayout.Release()
		}
		uniformLayout.Release()
		return nil, fmt.Errorf("creating pipeline layout: %w", err)
	}
	defer pipelineLayout.Release()

	vsEntry, fsEntry := "vs_flat", "fs_flat"
	if desc.Textured {
		vsEntry, fsEntry = "vs_textured", "fs_textured"
	}

	primitive := wgpu.PrimitiveState{
		Topology:  topology(desc.Topology),
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  wgpu.CullModeNone,
	}
	if desc.Topology == renderer.TopologyTriangleStrip && desc.Indexed {
		primitive.StripIndexFormat = indexFormat(desc.IndexFormat)
	}

	pipeline, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vsEntry,
			Buffers:    vertexLayouts(desc.VertexLayouts),
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fsEntry,
			Targets: []wgpu.ColorTargetState{{
				Format:    b.format,
				Blend:     &wgpu.BlendStateReplace,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: primitive,
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		if textureLayout != nil {
			textureLayout.Release()
		}
		uniformLayout.Release()
		return nil, fmt.Errorf("creating render pipeline %s: %w", label, err)
	}

	return &gpuPipeline{
		pipeline:      pipeline,
		uniformLayout: uniformLayout,
		textureLayout: textureLayout,
	}, nil
}
