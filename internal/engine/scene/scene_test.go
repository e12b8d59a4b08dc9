package scene

import (
	"errors"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
)

// mockHandle satisfies the opaque backend resource interfaces.
type mockHandle struct{}

func (mockHandle) Release() {}

type bufferCall struct {
	label string
	usage renderer.BufferUsage
	size  int
}

type textureCall struct {
	label  string
	format renderer.TextureFormat
	width  uint32
	height uint32
}

// mockDevice records every creation call so tests can assert on call counts
// and arguments.
type mockDevice struct {
	buffers   []bufferCall
	textures  []textureCall
	samplers  []string
	pipelines []string

	failBuffers bool
}

func (d *mockDevice) CreateBuffer(label string, usage renderer.BufferUsage, data []byte) (renderer.Buffer, error) {
	if d.failBuffers {
		return nil, errors.New("mock buffer failure")
	}
	d.buffers = append(d.buffers, bufferCall{label: label, usage: usage, size: len(data)})
	return mockHandle{}, nil
}

func (d *mockDevice) CreateTexture2D(label string, desc renderer.TextureDescriptor) (renderer.Texture, error) {
	d.textures = append(d.textures, textureCall{
		label:  label,
		format: desc.Format,
		width:  desc.Width,
		height: desc.Height,
	})
	return mockHandle{}, nil
}

func (d *mockDevice) CreateSampler(label string, desc renderer.SamplerDescriptor) (renderer.Sampler, error) {
	d.samplers = append(d.samplers, label)
	return mockHandle{}, nil
}

func (d *mockDevice) CreateRenderPipeline(label string, desc renderer.PipelineDescriptor) (renderer.Pipeline, error) {
	d.pipelines = append(d.pipelines, label)
	return mockHandle{}, nil
}

func intPtr(v int) *int { return &v }
