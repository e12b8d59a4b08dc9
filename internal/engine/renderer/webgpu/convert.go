package webgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
)

func bufferUsage(u renderer.BufferUsage) wgpu.BufferUsage {
	usage := wgpu.BufferUsageCopyDst
	if u&renderer.BufferUsageVertex != 0 {
		usage |= wgpu.BufferUsageVertex
	}
	if u&renderer.BufferUsageIndex != 0 {
		usage |= wgpu.BufferUsageIndex
	}
	return usage
}

func textureFormat(f renderer.TextureFormat) wgpu.TextureFormat {
	if f == renderer.TextureRGBA8Unorm {
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatRGBA8UnormSrgb
}

func filterMode(f renderer.FilterMode) wgpu.FilterMode {
	if f == renderer.FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

func addressMode(m renderer.AddressMode) wgpu.AddressMode {
	switch m {
	case renderer.AddressClampToEdge:
		return wgpu.AddressModeClampToEdge
	case renderer.AddressMirrorRepeat:
		return wgpu.AddressModeMirrorRepeat
	}
	return wgpu.AddressModeRepeat
}

func topology(t renderer.Topology) wgpu.PrimitiveTopology {
	if t == renderer.TopologyTriangleStrip {
		return wgpu.PrimitiveTopologyTriangleStrip
	}
	return wgpu.PrimitiveTopologyTriangleList
}

var vertexFormats = map[renderer.VertexFormat]wgpu.VertexFormat{
	renderer.VertexFloat32:   wgpu.VertexFormatFloat32,
	renderer.VertexFloat32x2: wgpu.VertexFormatFloat32x2,
	renderer.VertexFloat32x3: wgpu.VertexFormatFloat32x3,
	renderer.VertexFloat32x4: wgpu.VertexFormatFloat32x4,
	renderer.VertexUint8x2:   wgpu.VertexFormatUint8x2,
	renderer.VertexUint8x4:   wgpu.VertexFormatUint8x4,
	renderer.VertexUint16x2:  wgpu.VertexFormatUint16x2,
	renderer.VertexUint16x4:  wgpu.VertexFormatUint16x4,
	renderer.VertexUint32:    wgpu.VertexFormatUint32,
}

func vertexLayouts(layouts []renderer.VertexBufferLayout) []wgpu.VertexBufferLayout {
	out := make([]wgpu.VertexBufferLayout, 0, len(layouts))
	for _, l := range layouts {
		attrs := make([]wgpu.VertexAttribute, 0, len(l.Attributes))
		for _, a := range l.Attributes {
			attrs = append(attrs, wgpu.VertexAttribute{
				Format:         vertexFormats[a.Format],
				Offset:         a.Offset,
				ShaderLocation: a.ShaderLocation,
			})
		}
		out = append(out, wgpu.VertexBufferLayout{
			ArrayStride: l.ArrayStride,
			Attributes:  attrs,
		})
	}
	return out
}

func indexFormat(f renderer.IndexFormat) wgpu.IndexFormat {
	if f == renderer.IndexUint32 {
		return wgpu.IndexFormatUint32
	}
	return wgpu.IndexFormatUint16
}
