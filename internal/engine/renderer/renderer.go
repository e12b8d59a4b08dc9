// Package renderer defines the graphics backend interface that the scene
// loader drives. The scene data model never touches backend types directly:
// it describes resources with the descriptor types here, and a concrete
// backend (see the webgpu subpackage) creates them.
package renderer

// FilterMode selects texture filtering.
type FilterMode int

const (
	FilterNearest FilterMode = iota
	FilterLinear
)

// AddressMode selects texture coordinate wrapping.
type AddressMode int

const (
	AddressRepeat AddressMode = iota
	AddressClampToEdge
	AddressMirrorRepeat
)

// TextureFormat selects the pixel format of an uploaded texture. Color
// textures are gamma-encoded, data textures are linear.
type TextureFormat int

const (
	TextureRGBA8UnormSrgb TextureFormat = iota
	TextureRGBA8Unorm
)

// BufferUsage is a bitmask of how a GPU buffer will be bound.
type BufferUsage uint8

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
)

// VertexFormat names an element format the way WGSL vertex inputs do.
type VertexFormat string

const (
	VertexFloat32   VertexFormat = "float32"
	VertexFloat32x2 VertexFormat = "float32x2"
	VertexFloat32x3 VertexFormat = "float32x3"
	VertexFloat32x4 VertexFormat = "float32x4"
	VertexUint8x2   VertexFormat = "uint8x2"
	VertexUint8x4   VertexFormat = "uint8x4"
	VertexUint16x2  VertexFormat = "uint16x2"
	VertexUint16x4  VertexFormat = "uint16x4"
	VertexUint32    VertexFormat = "uint32"
)

// IndexFormat selects the element width of an index buffer.
type IndexFormat int

const (
	IndexUint16 IndexFormat = iota
	IndexUint32
)

// Topology selects primitive assembly.
type Topology int

const (
	TopologyTriangleList Topology = iota
	TopologyTriangleStrip
)

// VertexAttribute describes one attribute within a vertex buffer.
type VertexAttribute struct {
	Format         VertexFormat
	Offset         uint64
	ShaderLocation uint32
}

// VertexBufferLayout describes the stride and attributes of one vertex
// buffer slot.
type VertexBufferLayout struct {
	ArrayStride uint64
	Attributes  []VertexAttribute
}

// SamplerDescriptor describes a texture sampler.
type SamplerDescriptor struct {
	MagFilter FilterMode
	MinFilter FilterMode
	AddressU  AddressMode
	AddressV  AddressMode
}

// TextureDescriptor describes a 2D texture and its initial pixel data,
// tightly packed RGBA.
type TextureDescriptor struct {
	Width  uint32
	Height uint32
	Format TextureFormat
	Pixels []byte
}

// PipelineDescriptor describes a render pipeline for one primitive: vertex
// buffer layouts derived from its accessors plus assembly topology. Shader
// selection is backend business. Indexed strips must name their index
// format since strip assembly needs the primitive-restart element width.
type PipelineDescriptor struct {
	VertexLayouts []VertexBufferLayout
	Topology      Topology
	Textured      bool
	Indexed       bool
	IndexFormat   IndexFormat
}

// Buffer is an opaque handle to a created GPU buffer.
type Buffer interface {
	Release()
}

// Texture is an opaque handle to a created GPU texture.
type Texture interface {
	Release()
}

// Sampler is an opaque handle to a created GPU sampler.
type Sampler interface {
	Release()
}

// Pipeline is an opaque handle to a created render pipeline.
type Pipeline interface {
	Release()
}

// Device is the resource-creation surface of the graphics backend. The
// loader only creates resources; frame presentation belongs to the backend.
type Device interface {
	// CreateBuffer creates a GPU buffer initialized with data. The data
	// length must already satisfy the backend's alignment rules.
	CreateBuffer(label string, usage BufferUsage, data []byte) (Buffer, error)

	// CreateTexture2D creates and fills a 2D texture.
	CreateTexture2D(label string, desc TextureDescriptor) (Texture, error)

	// CreateSampler creates a texture sampler.
	CreateSampler(label string, desc SamplerDescriptor) (Sampler, error)

	// CreateRenderPipeline creates a render pipeline.
	CreateRenderPipeline(label string, desc PipelineDescriptor) (Pipeline, error)
}

// BufferAlign is the byte alignment the backend requires for buffer uploads.
// WebGPU requires write sizes to be multiples of 4.
const BufferAlign = 4
