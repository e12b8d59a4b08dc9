package webgpu

import (
	"encoding/binary"
	"fmt"
	stdmath "math"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/scene"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/math"
)

// vertexBinding is one vertex buffer slot: the view's GPU buffer plus the
// accessor's byte offset into it.
type vertexBinding struct {
	buf    *wgpu.Buffer
	offset uint64
}

// indexBinding describes an index buffer bind and draw range.
type indexBinding struct {
	buf    *wgpu.Buffer
	offset uint64
	format wgpu.IndexFormat
	count  uint32
}

// drawItem is one primitive of one flattened node, fully resolved to wgpu
// objects. Built once in Prepare; the frame loop only writes the uniform
// and issues the draw.
type drawItem struct {
	pipeline      *gpuPipeline
	uniform       *wgpu.Buffer
	uniformGroup  *wgpu.BindGroup
	materialGroup *wgpu.BindGroup // nil for untextured items

	positions vertexBinding
	texCoords *vertexBinding
	index     *indexBinding

	vertexCount uint32
	model       math.Mat4
	baseColor   [4]float32
}

// Forward draws a loaded scene with a single forward pass per frame.
type Forward struct {
	backend *Backend
	clear   wgpu.Color
	items   []drawItem
}

// NewForward creates a forward renderer clearing to the given color.
func NewForward(b *Backend, clearColor [4]float64) *Forward {
	return &Forward{
		backend: b,
		clear: wgpu.Color{
			R: clearColor[0],
			G: clearColor[1],
			B: clearColor[2],
			A: clearColor[3],
		},
	}
}

// Prepare builds the draw list for a loaded scene: one pipeline, uniform
// buffer and bind group set per primitive per node.
func (f *Forward) Prepare(s *scene.Scene) error {
	f.releaseItems()
	for ni, node := range s.Nodes {
		for pi, prim := range node.Mesh.Primitives {
			item, err := f.buildItem(fmt.Sprintf("node%d/prim%d", ni, pi), node, prim)
			if err != nil {
				return err
			}
			f.items = append(f.items, item)
		}
	}
	return nil
}

func (f *Forward) buildItem(label string, node scene.FlattenedNode, prim *scene.Primitive) (drawItem, error) {
	mat := prim.Material()
	textured := mat.BaseColorTexture != nil && prim.TexCoords() != nil

	layouts, err := prim.VertexLayouts()
	if err != nil {
		return drawItem{}, err
	}
	if !textured && len(layouts) > 1 {
		// Untextured pipelines bind positions only.
		layouts = layouts[:1]
	}

	desc := renderer.PipelineDescriptor{
		VertexLayouts: layouts,
		Topology:      prim.Topology(),
		Textured:      textured,
	}
	if idx := prim.Indices(); idx != nil {
		desc.Indexed = true
		desc.IndexFormat, err = idx.IndexFormat()
		if err != nil {
			return drawItem{}, err
		}
	}

	created, err := f.backend.CreateRenderPipeline(label, desc)
	if err != nil {
		return drawItem{}, err
	}
	pipeline := created.(*gpuPipeline)

	uniform, err := f.backend.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label + " uniforms",
		Contents: make([]byte, uniformSize),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return drawItem{}, fmt.Errorf("creating uniform buffer: %w", err)
	}

	uniformGroup, err := f.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label + " uniforms",
		Layout: pipeline.uniformLayout,
		Entries: []wgpu.BindGroupEntry{{
			Binding: 0,
			Buffer:  uniform,
			Offset:  0,
			Size:    wgpu.WholeSize,
		}},
	})
	if err != nil {
		return drawItem{}, fmt.Errorf("creating uniform bind group: %w", err)
	}

	item := drawItem{
		pipeline:     pipeline,
		uniform:      uniform,
		uniformGroup: uniformGroup,
		positions: vertexBinding{
			buf:    prim.Positions().View().Buffer().(*gpuBuffer).buf,
			offset: uint64(prim.Positions().ByteOffset()),
		},
		vertexCount: uint32(prim.Positions().Count()),
		model:       node.WorldTransform,
		baseColor:   mat.BaseColorFactor,
	}

	if textured {
		item.texCoords = &vertexBinding{
			buf:    prim.TexCoords().View().Buffer().(*gpuBuffer).buf,
			offset: uint64(prim.TexCoords().ByteOffset()),
		}
		item.materialGroup, err = f.backend.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  label + " material",
			Layout: pipeline.textureLayout,
			Entries: []wgpu.BindGroupEntry{
				{
					Binding: 0,
					Sampler: mat.BaseColorTexture.Sampler.Sampler().(*gpuSampler).samp,
				},
				{
					Binding:     1,
					TextureView: mat.BaseColorTexture.Image.Texture().(*gpuTexture).view,
				},
			},
		})
		if err != nil {
			return drawItem{}, fmt.Errorf("creating material bind group: %w", err)
		}
	}

	if idx := prim.Indices(); idx != nil {
		item.index = &indexBinding{
			buf:    idx.View().Buffer().(*gpuBuffer).buf,
			offset: uint64(idx.ByteOffset()),
			format: indexFormat(desc.IndexFormat),
			count:  uint32(idx.Count()),
		}
	}

	return item, nil
}

// Draw renders one frame with the given view-projection matrix and
// presents it.
func (f *Forward) Draw(viewProj math.Mat4) error {
	surfaceTexture, err := f.backend.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquiring surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("creating surface view: %w", err)
	}
	defer func() {
		view.Release()
		surfaceTexture.Release()
	}()

	encoder, err := f.backend.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("creating command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: f.clear,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            f.backend.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})

	for i := range f.items {
		item := &f.items[i]
		mvp := viewProj.Mul(item.model)
		if err := f.backend.queue.WriteBuffer(item.uniform, 0, encodeUniforms(mvp, item.baseColor)); err != nil {
			pass.End()
			return fmt.Errorf("writing uniforms: %w", err)
		}

		pass.SetPipeline(item.pipeline.pipeline)
		pass.SetBindGroup(0, item.uniformGroup, nil)
		if item.materialGroup != nil {
			pass.SetBindGroup(1, item.materialGroup, nil)
		}
		pass.SetVertexBuffer(0, item.positions.buf, item.positions.offset, wgpu.WholeSize)
		if item.texCoords != nil {
			pass.SetVertexBuffer(1, item.texCoords.buf, item.texCoords.offset, wgpu.WholeSize)
		}
		if item.index != nil {
			pass.SetIndexBuffer(item.index.buf, item.index.format, item.index.offset, wgpu.WholeSize)
			pass.DrawIndexed(item.index.count, 1, 0, 0, 0)
		} else {
			pass.Draw(item.vertexCount, 1, 0, 0)
		}
	}
	pass.End()

	commands, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finishing frame: %w", err)
	}
	f.backend.queue.Submit(commands)
	commands.Release()

	f.backend.surface.Present()
	return nil
}

// Release drops every draw item's GPU objects.
func (f *Forward) Release() {
	f.releaseItems()
}

func (f *Forward) releaseItems() {
	for i := range f.items {
		item := &f.items[i]
		if item.materialGroup != nil {
			item.materialGroup.Release()
		}
		item.uniformGroup.Release()
		item.uniform.Release()
		item.pipeline.Release()
	}
	f.items = nil
}

// encodeUniforms lays out the DrawUniforms struct: column-major mat4x4f
// followed by the base color factor.
func encodeUniforms(mvp math.Mat4, baseColor [4]float32) []byte {
	out := make([]byte, uniformSize)
	for i, v := range mvp {
		binary.LittleEndian.PutUint32(out[i*4:], stdmath.Float32bits(v))
	}
	for i, v := range baseColor {
		binary.LittleEndian.PutUint32(out[64+i*4:], stdmath.Float32bits(v))
	}
	return out
}
