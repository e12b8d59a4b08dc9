package scene

import (
	"errors"
	"testing"

	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/math"
)

func translationOf(m math.Mat4) [3]float32 {
	t := m.Translation()
	return [3]float32{t.X, t.Y, t.Z}
}

func TestFlattenComposesTranslations(t *testing.T) {
	mesh := &Mesh{Name: "leaf"}
	nodes := []*Node{
		{Local: math.Translate(1, 0, 0), Children: []int{1}},
		{Local: math.Translate(0, 1, 0), Mesh: mesh},
	}

	out, err := flatten(nodes, []int{0}, math.Identity())
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d records, want 2", len(out))
	}
	if got := translationOf(out[1].WorldTransform); got != [3]float32{1, 1, 0} {
		t.Fatalf("child world translation = %v, want (1, 1, 0)", got)
	}
	if out[1].Mesh != mesh {
		t.Fatal("child record must carry the node's mesh")
	}
}

func TestFlattenPreOrder(t *testing.T) {
	// 0
	// ├── 1
	// │   └── 3
	// └── 2
	nodes := []*Node{
		{Local: math.Translate(1, 0, 0), Children: []int{1, 2}},
		{Local: math.Translate(2, 0, 0), Children: []int{3}},
		{Local: math.Translate(4, 0, 0)},
		{Local: math.Translate(8, 0, 0)},
	}

	out, err := flatten(nodes, []int{0}, math.Identity())
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}

	// Pre-order visit 0, 1, 3, 2 identified by accumulated x translation.
	wantX := []float32{1, 3, 11, 5}
	if len(out) != len(wantX) {
		t.Fatalf("got %d records, want %d", len(out), len(wantX))
	}
	for i, want := range wantX {
		if got := out[i].WorldTransform.Translation().X; got != want {
			t.Errorf("record %d: x = %v, want %v", i, got, want)
		}
	}
}

func TestFlattenMultipleRoots(t *testing.T) {
	nodes := []*Node{
		{Local: math.Translate(1, 0, 0)},
		{Local: math.Translate(2, 0, 0)},
	}

	out, err := flatten(nodes, []int{1, 0}, math.Identity())
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if out[0].WorldTransform.Translation().X != 2 || out[1].WorldTransform.Translation().X != 1 {
		t.Fatal("roots must flatten in declared order")
	}
}

func TestFlattenBaseTransform(t *testing.T) {
	nodes := []*Node{{Local: math.Translate(0, 1, 0)}}

	out, err := flatten(nodes, []int{0}, math.Translate(0, 0, 5))
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	if got := translationOf(out[0].WorldTransform); got != [3]float32{0, 1, 5} {
		t.Fatalf("world translation = %v, want (0, 1, 5)", got)
	}
}

func TestFlattenCycle(t *testing.T) {
	cases := []struct {
		name  string
		nodes []*Node
		roots []int
	}{
		{"self loop", []*Node{{Local: math.Identity(), Children: []int{0}}}, []int{0}},
		{"two node loop", []*Node{
			{Local: math.Identity(), Children: []int{1}},
			{Local: math.Identity(), Children: []int{0}},
		}, []int{0}},
		{"diamond share", []*Node{
			{Local: math.Identity(), Children: []int{1, 2}},
			{Local: math.Identity(), Children: []int{3}},
			{Local: math.Identity(), Children: []int{3}},
			{Local: math.Identity()},
		}, []int{0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := flatten(tc.nodes, tc.roots, math.Identity())
			if !errors.Is(err, ErrCyclicNodeGraph) {
				t.Fatalf("got %v, want ErrCyclicNodeGraph", err)
			}
		})
	}
}

func TestFlattenRootOutOfRange(t *testing.T) {
	_, err := flatten([]*Node{{Local: math.Identity()}}, []int{5}, math.Identity())
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Fatalf("got %v, want ErrIndexOutOfRange", err)
	}
}

func TestFilterRenderable(t *testing.T) {
	mesh := &Mesh{}
	all := []FlattenedNode{
		{WorldTransform: math.Identity()},
		{WorldTransform: math.Translate(1, 0, 0), Mesh: mesh},
		{WorldTransform: math.Identity()},
		{WorldTransform: math.Translate(2, 0, 0), Mesh: mesh},
	}

	out := filterRenderable(all)
	if len(out) != 2 {
		t.Fatalf("got %d renderable records, want 2", len(out))
	}
	for i, f := range out {
		if f.Mesh == nil {
			t.Errorf("record %d has no mesh", i)
		}
	}
}
