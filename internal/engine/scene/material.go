package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

// glTF sampler enums (GL values).
const (
	glFilterNearest              = 9728
	glFilterLinear               = 9729
	glFilterNearestMipmapNearest = 9984
	glFilterLinearMipmapNearest  = 9985
	glFilterNearestMipmapLinear  = 9986
	glFilterLinearMipmapLinear   = 9987

	glWrapRepeat         = 10497
	glWrapClampToEdge    = 33071
	glWrapMirroredRepeat = 33648
)

// filterModes maps glTF filter enums to backend filter modes. Mipmapping is
// out of scope, so the mipmap variants collapse to their base filter.
var filterModes = map[int]renderer.FilterMode{
	glFilterNearest:              renderer.FilterNearest,
	glFilterLinear:               renderer.FilterLinear,
	glFilterNearestMipmapNearest: renderer.FilterNearest,
	glFilterNearestMipmapLinear:  renderer.FilterNearest,
	glFilterLinearMipmapNearest:  renderer.FilterLinear,
	glFilterLinearMipmapLinear:   renderer.FilterLinear,
}

// wrapModes maps glTF wrap enums to backend address modes.
var wrapModes = map[int]renderer.AddressMode{
	glWrapRepeat:         renderer.AddressRepeat,
	glWrapClampToEdge:    renderer.AddressClampToEdge,
	glWrapMirroredRepeat: renderer.AddressMirrorRepeat,
}

// Sampler holds resolved filter and wrap modes plus the created GPU sampler.
type Sampler struct {
	magFilter renderer.FilterMode
	minFilter renderer.FilterMode
	wrapU     renderer.AddressMode
	wrapV     renderer.AddressMode

	uploaded bool
	sampler  renderer.Sampler
}

// defaultSampler covers textures that declare no sampler: linear filtering
// with repeat wrapping.
func defaultSampler() *Sampler {
	return &Sampler{
		magFilter: renderer.FilterLinear,
		minFilter: renderer.FilterLinear,
		wrapU:     renderer.AddressRepeat,
		wrapV:     renderer.AddressRepeat,
	}
}

// newSamplers resolves declared sampler entries through the enum tables.
// Unknown enum values fall back to the defaults the tables imply.
func newSamplers(entries []glb.Sampler) []*Sampler {
	samplers := make([]*Sampler, len(entries))
	for i, e := range entries {
		s := defaultSampler()
		if e.MagFilter != nil {
			if m, ok := filterModes[*e.MagFilter]; ok {
				s.magFilter = m
			}
		}
		if e.MinFilter != nil {
			if m, ok := filterModes[*e.MinFilter]; ok {
				s.minFilter = m
			}
		}
		if e.WrapS != nil {
			if m, ok := wrapModes[*e.WrapS]; ok {
				s.wrapU = m
			}
		}
		if e.WrapT != nil {
			if m, ok := wrapModes[*e.WrapT]; ok {
				s.wrapV = m
			}
		}
		samplers[i] = s
	}
	return samplers
}

// Descriptor returns the backend sampler descriptor.
func (s *Sampler) Descriptor() renderer.SamplerDescriptor {
	return renderer.SamplerDescriptor{
		MagFilter: s.magFilter,
		MinFilter: s.minFilter,
		AddressU:  s.wrapU,
		AddressV:  s.wrapV,
	}
}

// Sampler returns the created GPU sampler, nil before upload.
func (s *Sampler) Sampler() renderer.Sampler {
	return s.sampler
}

// upload creates the GPU sampler once.
func (s *Sampler) upload(dev renderer.Device, label string) error {
	if s.uploaded {
		return fmt.Errorf("sampler %s: %w", label, ErrAlreadyUploaded)
	}
	samp, err := dev.CreateSampler(label, s.Descriptor())
	if err != nil {
		return fmt.Errorf("creating sampler %s: %w", label, err)
	}
	s.sampler = samp
	s.uploaded = true
	return nil
}

// Texture pairs a sampler with an image.
type Texture struct {
	Sampler *Sampler
	Image   *Image
}

// newTextures resolves texture entries to their sampler and image. Entries
// without a sampler get the shared default sampler.
func newTextures(entries []glb.Texture, samplers []*Sampler, images []*Image, fallback *Sampler) ([]*Texture, error) {
	textures := make([]*Texture, len(entries))
	for i, e := range entries {
		t := &Texture{Sampler: fallback}
		if e.Sampler != nil {
			if *e.Sampler < 0 || *e.Sampler >= len(samplers) {
				return nil, fmt.Errorf("texture %d: sampler %d: %w", i, *e.Sampler, ErrIndexOutOfRange)
			}
			t.Sampler = samplers[*e.Sampler]
		}
		if e.Source == nil {
			return nil, fmt.Errorf("texture %d has no image source: %w", i, ErrNoImageData)
		}
		if *e.Source < 0 || *e.Source >= len(images) {
			return nil, fmt.Errorf("texture %d: source %d: %w", i, *e.Source, ErrIndexOutOfRange)
		}
		t.Image = images[*e.Source]
		textures[i] = t
	}
	return textures, nil
}

// Material holds resolved PBR factors and optional texture references.
// Absent document fields get the glTF-mandated defaults.
type Material struct {
	Name                     string
	BaseColorFactor          [4]float32
	MetallicFactor           float32
	RoughnessFactor          float32
	BaseColorTexture         *Texture
	MetallicRoughnessTexture *Texture
}

// DefaultMaterial is used by primitives that declare no material.
func DefaultMaterial() *Material {
	return &Material{
		Name:            "default",
		BaseColorFactor: [4]float32{1, 1, 1, 1},
		MetallicFactor:  1,
		RoughnessFactor: 1,
	}
}

// newMaterials builds materials with defaulted factors and tags every
// referenced image with its usage role. Normal, occlusion and emissive maps
// are explicitly unsupported and fail the load.
func newMaterials(entries []glb.Material, textures []*Texture) ([]*Material, error) {
	materials := make([]*Material, len(entries))
	for i, e := range entries {
		if e.NormalTexture != nil {
			return nil, fmt.Errorf("material %d (%s) has a normal map: %w", i, e.Name, ErrUnsupportedImageUsage)
		}
		if e.OcclusionTexture != nil {
			return nil, fmt.Errorf("material %d (%s) has an occlusion map: %w", i, e.Name, ErrUnsupportedImageUsage)
		}
		if e.EmissiveTexture != nil {
			return nil, fmt.Errorf("material %d (%s) has an emissive map: %w", i, e.Name, ErrUnsupportedImageUsage)
		}

		m := DefaultMaterial()
		m.Name = e.Name

		if pbr := e.PBRMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				m.BaseColorFactor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				m.MetallicFactor = *pbr.MetallicFactor
			}
			if pbr.RoughnessFactor != nil {
				m.RoughnessFactor = *pbr.RoughnessFactor
			}

			var err error
			if pbr.BaseColorTexture != nil {
				m.BaseColorTexture, err = resolveTexture(textures, pbr.BaseColorTexture.Index, ImageUsageBaseColor)
				if err != nil {
					return nil, fmt.Errorf("material %d (%s): %w", i, e.Name, err)
				}
			}
			if pbr.MetallicRoughnessTexture != nil {
				m.MetallicRoughnessTexture, err = resolveTexture(textures, pbr.MetallicRoughnessTexture.Index, ImageUsageMetallicRoughness)
				if err != nil {
					return nil, fmt.Errorf("material %d (%s): %w", i, e.Name, err)
				}
			}
		}

		materials[i] = m
	}
	return materials, nil
}

// resolveTexture looks up a texture reference and tags its image's role.
func resolveTexture(textures []*Texture, index int, usage ImageUsage) (*Texture, error) {
	if index < 0 || index >= len(textures) {
		return nil, fmt.Errorf("texture %d: %w", index, ErrIndexOutOfRange)
	}
	t := textures[index]
	if err := t.Image.AssignUsage(usage); err != nil {
		return nil, err
	}
	return t, nil
}
