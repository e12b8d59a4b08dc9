// Package webgpu implements the renderer backend on wgpu-native through
// cogentcore/webgpu. It owns the instance, surface, device and queue, and
// creates every GPU resource the scene loader registers.
package webgpu

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"go.uber.org/zap"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/logger"
)

// Backend holds the wgpu objects shared by every resource and frame.
type Backend struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	format    wgpu.TextureFormat
	depthView *wgpu.TextureView
	width     uint32
	height    uint32
	vsync     bool
}

var _ renderer.Device = (*Backend)(nil)

// New creates the instance, surface, adapter and device for the given
// surface descriptor. The caller must have the OS thread locked for the
// lifetime of the backend.
func New(sd *wgpu.SurfaceDescriptor, vsync bool) (*Backend, error) {
	runtime.LockOSThread()

	b := &Backend{
		instance: wgpu.CreateInstance(nil),
		vsync:    vsync,
	}
	b.surface = b.instance.CreateSurface(sd)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("requesting adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "scene device",
	})
	if err != nil {
		return nil, fmt.Errorf("requesting device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	logger.Info("graphics device ready", zap.Bool("vsync", vsync))
	return b, nil
}

// Configure sizes the swapchain and rebuilds the depth buffer. Call once
// after New and again on every resize.
func (b *Backend) Configure(width, height int) error {
	caps := b.surface.GetCapabilities(b.adapter)
	b.format = caps.Formats[0]

	presentMode := wgpu.PresentModeImmediate
	if b.vsync {
		presentMode = wgpu.PresentModeFifo
	}
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})
	b.width = uint32(width)
	b.height = uint32(height)

	if b.depthView != nil {
		b.depthView.Release()
		b.depthView = nil
	}
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: "depth",
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("creating depth texture: %w", err)
	}
	b.depthView, err = depth.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating depth view: %w", err)
	}
	depth.Release()
	return nil
}

// Aspect returns the swapchain width/height ratio.
func (b *Backend) Aspect() float32 {
	if b.height == 0 {
		return 1
	}
	return float32(b.width) / float32(b.height)
}

// Release drops every wgpu object the backend owns.
func (b *Backend) Release() {
	if b.depthView != nil {
		b.depthView.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// gpuBuffer wraps a created wgpu buffer as an opaque handle.
type gpuBuffer struct {
	buf *wgpu.Buffer
}

func (g *gpuBuffer) Release() { g.buf.Release() }

// gpuTexture holds the texture and its view for binding.
type gpuTexture struct {
	tex  *wgpu.Texture
	view *wgpu.TextureView
}

func (g *gpuTexture) Release() {
	g.view.Release()
	g.tex.Release()
}

type gpuSampler struct {
	samp *wgpu.Sampler
}

func (g *gpuSampler) Release() { g.samp.Release() }

// gpuPipeline keeps the bind group layouts alive so the frame loop can
// create bind groups against them.
type gpuPipeline struct {
	pipeline      *wgpu.RenderPipeline
	uniformLayout *wgpu.BindGroupLayout
	textureLayout *wgpu.BindGroupLayout // nil for untextured pipelines
}

func (g *gpuPipeline) Release() {
	if g.textureLayout != nil {
		g.textureLayout.Release()
	}
	g.uniformLayout.Release()
	g.pipeline.Release()
}

// CreateBuffer creates a device-local buffer initialized with data.
func (b *Backend) CreateBuffer(label string, usage renderer.BufferUsage, data []byte) (renderer.Buffer, error) {
	buf, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: data,
		Usage:    bufferUsage(usage),
	})
	if err != nil {
		return nil, fmt.Errorf("creating buffer %s: %w", label, err)
	}
	return &gpuBuffer{buf: buf}, nil
}

// CreateTexture2D creates a texture and writes the tightly packed RGBA
// pixels through the queue.
func (b *Backend) CreateTexture2D(label string, desc renderer.TextureDescriptor) (renderer.Texture, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        textureFormat(desc.Format),
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("creating texture %s: %w", label, err)
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		desc.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  desc.Width * 4,
			RowsPerImage: desc.Height,
		},
		&wgpu.Extent3D{
			Width:              desc.Width,
			Height:             desc.Height,
			DepthOrArrayLayers: 1,
		},
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("creating texture view %s: %w", label, err)
	}
	return &gpuTexture{tex: tex, view: view}, nil
}

// CreateSampler creates a texture sampler.
func (b *Backend) CreateSampler(label string, desc renderer.SamplerDescriptor) (renderer.Sampler, error) {
	samp, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  addressMode(desc.AddressU),
		AddressModeV:  addressMode(desc.AddressV),
		AddressModeW:  wgpu.AddressModeRepeat,
		MagFilter:     filterMode(desc.MagFilter),
		MinFilter:     filterMode(desc.MinFilter),
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("creating sampler %s: %w", label, err)
	}
	return &gpuSampler{samp: samp}, nil
}
