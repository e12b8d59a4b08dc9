package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/math"
)

// FlattenedNode is one record of the flattened hierarchy: a fully composed
// world transform and the node's mesh. It exists only as flattener output;
// the node tree itself is untouched.
type FlattenedNode struct {
	WorldTransform math.Mat4
	Mesh           *Mesh
}

// flattenStackEntry pairs a node index with its parent's world transform.
type flattenStackEntry struct {
	node   int
	parent math.Mat4
}

// flatten walks the hierarchy from the given roots in pre-order using an
// explicit stack, composing world = parent * local at each node. Every node
// yields a record, including mesh-less ones; callers filter those out for
// the renderer-facing list. The hierarchy must be a tree: revisiting a node
// fails the load instead of looping.
func flatten(nodes []*Node, roots []int, base math.Mat4) ([]FlattenedNode, error) {
	out := make([]FlattenedNode, 0, len(nodes))
	visited := make([]bool, len(nodes))

	// Roots are pushed in reverse so the stack pops them in declared order.
	stack := make([]flattenStackEntry, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		r := roots[i]
		if r < 0 || r >= len(nodes) {
			return nil, fmt.Errorf("scene root %d: %w", r, ErrIndexOutOfRange)
		}
		stack = append(stack, flattenStackEntry{node: r, parent: base})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[top.node] {
			return nil, fmt.Errorf("node %d revisited: %w", top.node, ErrCyclicNodeGraph)
		}
		visited[top.node] = true

		n := nodes[top.node]
		world := top.parent.Mul(n.Local)
		out = append(out, FlattenedNode{WorldTransform: world, Mesh: n.Mesh})

		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, flattenStackEntry{node: n.Children[i], parent: world})
		}
	}

	return out, nil
}

// filterRenderable keeps only records that carry a mesh.
func filterRenderable(all []FlattenedNode) []FlattenedNode {
	out := make([]FlattenedNode, 0, len(all))
	for _, f := range all {
		if f.Mesh != nil {
			out = append(out, f)
		}
	}
	return out
}
