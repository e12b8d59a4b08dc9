// document.go defines the glTF 2.0 JSON schema subset this viewer consumes.
// Optional scalar fields are pointers so that absence is distinguishable from
// a zero value; builders apply the glTF-mandated defaults in one place.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html
package glb

// Document is the root of a glTF JSON document.
type Document struct {
	Asset       Asset        `json:"asset"`
	Scene       *int         `json:"scene,omitempty"`
	Scenes      []Scene      `json:"scenes,omitempty"`
	Nodes       []Node       `json:"nodes,omitempty"`
	Meshes      []Mesh       `json:"meshes,omitempty"`
	Accessors   []Accessor   `json:"accessors,omitempty"`
	BufferViews []BufferView `json:"bufferViews,omitempty"`
	Buffers     []Buffer     `json:"buffers,omitempty"`
	Materials   []Material   `json:"materials,omitempty"`
	Textures    []Texture    `json:"textures,omitempty"`
	Images      []Image      `json:"images,omitempty"`
	Samplers    []Sampler    `json:"samplers,omitempty"`
}

// Asset holds document metadata.
type Asset struct {
	Version   string `json:"version"`
	Generator string `json:"generator,omitempty"`
}

// Scene is a set of root node indices.
type Scene struct {
	Name  string `json:"name,omitempty"`
	Nodes []int  `json:"nodes,omitempty"`
}

// Node is one entry in the transform hierarchy. The transform is either an
// explicit column-major matrix or composed from translation/rotation/scale.
type Node struct {
	Name        string       `json:"name,omitempty"`
	Children    []int        `json:"children,omitempty"`
	Mesh        *int         `json:"mesh,omitempty"`
	Camera      *int         `json:"camera,omitempty"`
	Matrix      *[16]float32 `json:"matrix,omitempty"`
	Translation *[3]float32  `json:"translation,omitempty"`
	Rotation    *[4]float32  `json:"rotation,omitempty"`
	Scale       *[3]float32  `json:"scale,omitempty"`
}

// Mesh is a named list of primitives.
type Mesh struct {
	Name       string      `json:"name,omitempty"`
	Primitives []Primitive `json:"primitives"`
}

// Primitive is one drawable geometry unit.
type Primitive struct {
	Attributes map[string]int `json:"attributes"`
	Indices    *int           `json:"indices,omitempty"`
	Material   *int           `json:"material,omitempty"`
	Mode       *int           `json:"mode,omitempty"`
}

// Accessor describes typed, strided access into a buffer view.
type Accessor struct {
	BufferView    *int      `json:"bufferView,omitempty"`
	ByteOffset    int       `json:"byteOffset,omitempty"`
	ComponentType int       `json:"componentType"`
	Count         int       `json:"count"`
	Type          string    `json:"type"`
	Min           []float32 `json:"min,omitempty"`
	Max           []float32 `json:"max,omitempty"`
}

// BufferView is a byte sub-range of a buffer.
type BufferView struct {
	Buffer     int `json:"buffer"`
	ByteOffset int `json:"byteOffset,omitempty"`
	ByteLength int `json:"byteLength"`
	ByteStride int `json:"byteStride,omitempty"`
}

// Buffer declares a binary data container. In GLB the first buffer has no URI
// and refers to the BIN chunk.
type Buffer struct {
	URI        string `json:"uri,omitempty"`
	ByteLength int    `json:"byteLength"`
}

// Material holds metallic-roughness PBR parameters. The normal, occlusion
// and emissive maps are parsed so their presence can be rejected explicitly.
type Material struct {
	Name                 string                `json:"name,omitempty"`
	PBRMetallicRoughness *PBRMetallicRoughness `json:"pbrMetallicRoughness,omitempty"`
	NormalTexture        *TextureRef           `json:"normalTexture,omitempty"`
	OcclusionTexture     *TextureRef           `json:"occlusionTexture,omitempty"`
	EmissiveTexture      *TextureRef           `json:"emissiveTexture,omitempty"`
}

// PBRMetallicRoughness is the core PBR parameter block.
type PBRMetallicRoughness struct {
	BaseColorFactor          *[4]float32 `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *TextureRef `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float32    `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float32    `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *TextureRef `json:"metallicRoughnessTexture,omitempty"`
}

// TextureRef points at a texture with a texcoord set index.
type TextureRef struct {
	Index    int `json:"index"`
	TexCoord int `json:"texCoord,omitempty"`
}

// Texture pairs a sampler with an image source.
type Texture struct {
	Sampler *int `json:"sampler,omitempty"`
	Source  *int `json:"source,omitempty"`
}

// Image declares an embedded image in a buffer view.
type Image struct {
	Name       string `json:"name,omitempty"`
	BufferView *int   `json:"bufferView,omitempty"`
	MimeType   string `json:"mimeType,omitempty"`
	URI        string `json:"uri,omitempty"`
}

// Sampler declares texture filtering and wrapping modes using GL enums.
type Sampler struct {
	MagFilter *int `json:"magFilter,omitempty"`
	MinFilter *int `json:"minFilter,omitempty"`
	WrapS     *int `json:"wrapS,omitempty"`
	WrapT     *int `json:"wrapT,omitempty"`
}

// DefaultScene returns the index of the scene to display, preferring the
// document's explicit default.
func (d *Document) DefaultScene() int {
	if d.Scene != nil {
		return *d.Scene
	}
	return 0
}
