package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/math"
)

// Node is one entry in the scene hierarchy: a local transform, an optional
// mesh, and child node indices. Nodes are index-based so traversal needs no
// pointer chasing and the document's references map directly.
type Node struct {
	Name     string
	Local    math.Mat4
	Mesh     *Mesh // nil for pure transform nodes
	Children []int
}

// newNodes resolves the document's node array.
func newNodes(entries []glb.Node, meshes []*Mesh) ([]*Node, error) {
	nodes := make([]*Node, len(entries))
	for i, e := range entries {
		n := &Node{
			Name:     e.Name,
			Local:    localTransform(e),
			Children: e.Children,
		}
		for _, c := range e.Children {
			if c < 0 || c >= len(entries) {
				return nil, fmt.Errorf("node %d (%s): child %d: %w", i, e.Name, c, ErrIndexOutOfRange)
			}
		}
		if e.Mesh != nil {
			if *e.Mesh < 0 || *e.Mesh >= len(meshes) {
				return nil, fmt.Errorf("node %d (%s): mesh %d: %w", i, e.Name, *e.Mesh, ErrIndexOutOfRange)
			}
			n.Mesh = meshes[*e.Mesh]
		}
		nodes[i] = n
	}
	return nodes, nil
}

// localTransform computes a node's local matrix: the explicit column-major
// matrix when declared, otherwise translation * rotation * scale with the
// glTF defaults (identity rotation, unit scale, zero translation).
func localTransform(e glb.Node) math.Mat4 {
	if e.Matrix != nil {
		return math.Mat4(*e.Matrix)
	}

	scale := [3]float32{1, 1, 1}
	if e.Scale != nil {
		scale = *e.Scale
	}
	rotation := math.QuatIdentity()
	if e.Rotation != nil {
		rotation = math.Quat{X: e.Rotation[0], Y: e.Rotation[1], Z: e.Rotation[2], W: e.Rotation[3]}
	}
	translation := [3]float32{}
	if e.Translation != nil {
		translation = *e.Translation
	}

	t := math.Translate(translation[0], translation[1], translation[2])
	r := rotation.ToMat4()
	s := math.Scale(scale[0], scale[1], scale[2])
	return t.Mul(r).Mul(s)
}
