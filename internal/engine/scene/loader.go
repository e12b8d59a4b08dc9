package scene

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/logger"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/math"
)

// Bounds is an axis-aligned box around the renderable geometry, in world
// space. Used by the camera to frame the scene.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

func (b *Bounds) extend(p math.Vec3) {
	if !b.valid() {
		b.Min, b.Max = p, p
		return
	}
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

func (b Bounds) valid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns half the box diagonal.
func (b Bounds) Radius() float32 {
	return b.Max.Sub(b.Min).Length() * 0.5
}

// Scene is a loaded GLB document with every GPU resource created. Nodes is
// the flattened draw list: only mesh-bearing nodes, each with its world
// transform baked in.
type Scene struct {
	ID        uuid.UUID
	Meshes    []*Mesh
	Materials []*Material
	Nodes     []FlattenedNode
	Bounds    Bounds
}

// Load reads a GLB file and builds the scene on the device. On any error
// nothing is returned and no GPU state was created beyond what the device
// already released-on-failure semantics cover: upload only starts once the
// whole document registered cleanly.
func Load(path string, dev renderer.Device) (*Scene, error) {
	c, err := glb.ParseFile(path)
	if err != nil {
		return nil, err
	}
	return LoadContainer(c, dev)
}

// LoadContainer builds a scene from an already parsed container. The load
// runs in two phases. Phase one walks the document and registers usage on
// every buffer view and every image without touching the device. Phase two
// uploads each registered resource exactly once.
func LoadContainer(c *glb.Container, dev renderer.Device) (*Scene, error) {
	session := uuid.New()
	log := logger.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("load", session.String()))

	doc := c.Document

	views, err := newBufferViews(doc.BufferViews, c.Blob)
	if err != nil {
		return nil, err
	}
	accessors, err := newAccessors(doc.Accessors, views)
	if err != nil {
		return nil, err
	}
	images, err := newImages(doc.Images, views)
	if err != nil {
		return nil, err
	}

	// Pixel decoding is CPU work independent of registration, so it runs
	// on goroutines while the rest of the document is walked. All decodes
	// must have finished before the upload phase reads the pixels.
	var wg sync.WaitGroup
	decodeErrs := make([]error, len(images))
	for i, img := range images {
		wg.Add(1)
		go func(i int, img *Image) {
			defer wg.Done()
			decodeErrs[i] = img.Decode()
		}(i, img)
	}

	samplers := newSamplers(doc.Samplers)
	fallbackSampler := defaultSampler()
	textures, err := newTextures(doc.Textures, samplers, images, fallbackSampler)
	if err != nil {
		wg.Wait()
		return nil, err
	}
	materials, err := newMaterials(doc.Materials, textures)
	if err != nil {
		wg.Wait()
		return nil, err
	}
	fallbackMaterial := DefaultMaterial()
	meshes, err := newMeshes(doc.Meshes, accessors, materials, fallbackMaterial)
	if err != nil {
		wg.Wait()
		return nil, err
	}
	nodes, err := newNodes(doc.Nodes, meshes)
	if err != nil {
		wg.Wait()
		return nil, err
	}

	roots, err := sceneRoots(doc)
	if err != nil {
		wg.Wait()
		return nil, err
	}
	flattened, err := flatten(nodes, roots, math.Identity())
	if err != nil {
		wg.Wait()
		return nil, err
	}
	renderable := filterRenderable(flattened)

	table := (&UsageTable{
		views:     views,
		images:    images,
		materials: materials,
	}).seal()

	wg.Wait()
	for i, derr := range decodeErrs {
		if derr != nil {
			return nil, fmt.Errorf("image %d: %w", i, derr)
		}
	}

	if err := table.Upload(dev); err != nil {
		return nil, err
	}

	s := &Scene{
		ID:        session,
		Meshes:    meshes,
		Materials: materials,
		Nodes:     renderable,
		Bounds:    sceneBounds(renderable),
	}
	log.Info("scene loaded",
		zap.Int("meshes", len(meshes)),
		zap.Int("materials", len(materials)),
		zap.Int("drawNodes", len(renderable)),
		zap.Int("bufferViews", len(views)),
		zap.Int("images", len(images)),
	)
	return s, nil
}

// sceneRoots returns the root node indices of the document's default scene.
// A document without scenes renders nothing rather than failing.
func sceneRoots(doc *glb.Document) ([]int, error) {
	if len(doc.Scenes) == 0 {
		return nil, nil
	}
	idx := doc.DefaultScene()
	if idx < 0 || idx >= len(doc.Scenes) {
		return nil, fmt.Errorf("scene %d: %w", idx, ErrIndexOutOfRange)
	}
	return doc.Scenes[idx].Nodes, nil
}

// sceneBounds accumulates the world-space box from each primitive's
// position min/max, transformed through its node's world matrix. Accessors
// without min/max are skipped.
func sceneBounds(nodes []FlattenedNode) Bounds {
	var b Bounds
	b.Min = math.Vec3{X: 1, Y: 1, Z: 1}
	b.Max = math.Vec3{X: -1, Y: -1, Z: -1}
	for _, n := range nodes {
		for _, p := range n.Mesh.Primitives {
			lo, hi := p.Positions().Min(), p.Positions().Max()
			if len(lo) < 3 || len(hi) < 3 {
				continue
			}
			for _, corner := range boxCorners(lo, hi) {
				w := n.WorldTransform.TransformPoint(corner)
				b.extend(math.Vec3{X: w[0], Y: w[1], Z: w[2]})
			}
		}
	}
	if !b.valid() {
		return Bounds{}
	}
	return b
}

func boxCorners(lo, hi []float32) [8][3]float32 {
	var out [8][3]float32
	for i := 0; i < 8; i++ {
		c := [3]float32{lo[0], lo[1], lo[2]}
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		out[i] = c
	}
	return out
}
