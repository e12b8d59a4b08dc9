package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

// glTF primitive modes.
const (
	glModePoints        = 0
	glModeLines         = 1
	glModeLineLoop      = 2
	glModeLineStrip     = 3
	glModeTriangles     = 4
	glModeTriangleStrip = 5
	glModeTriangleFan   = 6
)

// Attribute shader slot assignment, fixed across all pipelines.
const (
	slotPosition = 0
	slotTexCoord = 1
)

// Primitive is one drawable geometry unit: resolved accessors, a material,
// and assembly topology. Constructing a primitive registers usage on every
// referenced buffer view; this happens strictly before any upload runs.
type Primitive struct {
	positions *Accessor
	texCoords *Accessor // optional
	indices   *Accessor // optional
	material  *Material
	topology  renderer.Topology
}

// newPrimitive builds one primitive. The topology check runs first so that
// an unsupported mode registers nothing.
func newPrimitive(e glb.Primitive, accessors []*Accessor, materials []*Material, fallback *Material) (*Primitive, error) {
	mode := glModeTriangles
	if e.Mode != nil {
		mode = *e.Mode
	}

	var topology renderer.Topology
	switch mode {
	case glModeTriangles:
		topology = renderer.TopologyTriangleList
	case glModeTriangleStrip:
		topology = renderer.TopologyTriangleStrip
	default:
		// Fans, lines and points are deliberately unsupported.
		return nil, fmt.Errorf("primitive mode %d: %w", mode, ErrUnsupportedTopology)
	}

	posIndex, ok := e.Attributes["POSITION"]
	if !ok {
		return nil, ErrMissingPositionAttribute
	}

	p := &Primitive{topology: topology, material: fallback}

	var err error
	if p.positions, err = resolveAccessor(accessors, posIndex); err != nil {
		return nil, fmt.Errorf("POSITION: %w", err)
	}
	if uvIndex, ok := e.Attributes["TEXCOORD_0"]; ok {
		if p.texCoords, err = resolveAccessor(accessors, uvIndex); err != nil {
			return nil, fmt.Errorf("TEXCOORD_0: %w", err)
		}
	}
	if e.Indices != nil {
		if p.indices, err = resolveAccessor(accessors, *e.Indices); err != nil {
			return nil, fmt.Errorf("indices: %w", err)
		}
		if _, err := p.indices.IndexFormat(); err != nil {
			return nil, err
		}
	}
	if e.Material != nil {
		if *e.Material < 0 || *e.Material >= len(materials) {
			return nil, fmt.Errorf("material %d: %w", *e.Material, ErrIndexOutOfRange)
		}
		p.material = materials[*e.Material]
	}

	// Register usage now, before any upload pass can run.
	p.positions.View().AddUsage(UsageVertex)
	if p.texCoords != nil {
		p.texCoords.View().AddUsage(UsageVertex)
	}
	if p.indices != nil {
		p.indices.View().AddUsage(UsageIndex)
	}

	return p, nil
}

// resolveAccessor bounds-checks an accessor reference.
func resolveAccessor(accessors []*Accessor, index int) (*Accessor, error) {
	if index < 0 || index >= len(accessors) {
		return nil, fmt.Errorf("accessor %d: %w", index, ErrIndexOutOfRange)
	}
	return accessors[index], nil
}

// Positions returns the POSITION accessor.
func (p *Primitive) Positions() *Accessor {
	return p.positions
}

// TexCoords returns the TEXCOORD_0 accessor, nil when absent.
func (p *Primitive) TexCoords() *Accessor {
	return p.texCoords
}

// Indices returns the index accessor, nil for non-indexed primitives.
func (p *Primitive) Indices() *Accessor {
	return p.indices
}

// Material returns the resolved material (never nil).
func (p *Primitive) Material() *Material {
	return p.material
}

// Topology returns the assembly topology.
func (p *Primitive) Topology() renderer.Topology {
	return p.topology
}

// VertexLayouts derives the backend vertex buffer layouts: slot 0 carries
// positions, slot 1 texture coordinates when present. Attribute offsets are
// applied at bind time, so each layout's attribute starts at 0.
func (p *Primitive) VertexLayouts() ([]renderer.VertexBufferLayout, error) {
	posFormat, err := p.positions.VertexFormat()
	if err != nil {
		return nil, err
	}
	layouts := []renderer.VertexBufferLayout{{
		ArrayStride: uint64(p.positions.EffectiveStride()),
		Attributes: []renderer.VertexAttribute{{
			Format:         posFormat,
			Offset:         0,
			ShaderLocation: slotPosition,
		}},
	}}

	if p.texCoords != nil {
		uvFormat, err := p.texCoords.VertexFormat()
		if err != nil {
			return nil, err
		}
		layouts = append(layouts, renderer.VertexBufferLayout{
			ArrayStride: uint64(p.texCoords.EffectiveStride()),
			Attributes: []renderer.VertexAttribute{{
				Format:         uvFormat,
				Offset:         0,
				ShaderLocation: slotTexCoord,
			}},
		})
	}

	return layouts, nil
}

// Mesh is a named list of primitives, shared read-only between nodes.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// newMeshes assembles meshes and their primitives from the document.
func newMeshes(entries []glb.Mesh, accessors []*Accessor, materials []*Material, fallback *Material) ([]*Mesh, error) {
	meshes := make([]*Mesh, len(entries))
	for i, e := range entries {
		m := &Mesh{Name: e.Name}
		for j, pe := range e.Primitives {
			p, err := newPrimitive(pe, accessors, materials, fallback)
			if err != nil {
				return nil, fmt.Errorf("mesh %d (%s) primitive %d: %w", i, e.Name, j, err)
			}
			m.Primitives = append(m.Primitives, p)
		}
		meshes[i] = m
	}
	return meshes, nil
}
