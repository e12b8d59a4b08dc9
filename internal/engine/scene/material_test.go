package scene

import (
	"errors"
	"testing"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

func TestNewSamplersEnumMapping(t *testing.T) {
	cases := []struct {
		name  string
		entry glb.Sampler
		want  renderer.SamplerDescriptor
	}{
		{
			"empty entry uses defaults",
			glb.Sampler{},
			renderer.SamplerDescriptor{
				MagFilter: renderer.FilterLinear,
				MinFilter: renderer.FilterLinear,
				AddressU:  renderer.AddressRepeat,
				AddressV:  renderer.AddressRepeat,
			},
		},
		{
			"nearest clamp",
			glb.Sampler{
				MagFilter: intPtr(glFilterNearest),
				MinFilter: intPtr(glFilterNearest),
				WrapS:     intPtr(glWrapClampToEdge),
				WrapT:     intPtr(glWrapMirroredRepeat),
			},
			renderer.SamplerDescriptor{
				MagFilter: renderer.FilterNearest,
				MinFilter: renderer.FilterNearest,
				AddressU:  renderer.AddressClampToEdge,
				AddressV:  renderer.AddressMirrorRepeat,
			},
		},
		{
			"mipmap filters collapse to base",
			glb.Sampler{
				MagFilter: intPtr(glFilterLinearMipmapLinear),
				MinFilter: intPtr(glFilterNearestMipmapLinear),
			},
			renderer.SamplerDescriptor{
				MagFilter: renderer.FilterLinear,
				MinFilter: renderer.FilterNearest,
				AddressU:  renderer.AddressRepeat,
				AddressV:  renderer.AddressRepeat,
			},
		},
		{
			"unknown enums keep defaults",
			glb.Sampler{MagFilter: intPtr(1), WrapS: intPtr(2)},
			renderer.SamplerDescriptor{
				MagFilter: renderer.FilterLinear,
				MinFilter: renderer.FilterLinear,
				AddressU:  renderer.AddressRepeat,
				AddressV:  renderer.AddressRepeat,
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			samplers := newSamplers([]glb.Sampler{tc.entry})
			if got := samplers[0].Descriptor(); got != tc.want {
				t.Fatalf("descriptor = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSamplerUploadOnce(t *testing.T) {
	s := defaultSampler()
	dev := &mockDevice{}
	if err := s.upload(dev, "s"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if len(dev.samplers) != 1 || s.Sampler() == nil {
		t.Fatal("sampler must be created exactly once")
	}
	if err := s.upload(dev, "s"); !errors.Is(err, ErrAlreadyUploaded) {
		t.Fatalf("got %v, want ErrAlreadyUploaded", err)
	}
}

func TestNewTextures(t *testing.T) {
	images := []*Image{{name: "a"}, {name: "b"}}
	samplers := newSamplers([]glb.Sampler{{MagFilter: intPtr(glFilterNearest)}})
	fallback := defaultSampler()

	t.Run("resolves sampler and source", func(t *testing.T) {
		textures, err := newTextures([]glb.Texture{
			{Sampler: intPtr(0), Source: intPtr(1)},
			{Source: intPtr(0)},
		}, samplers, images, fallback)
		if err != nil {
			t.Fatalf("newTextures: %v", err)
		}
		if textures[0].Sampler != samplers[0] || textures[0].Image != images[1] {
			t.Fatal("texture 0 resolved wrong")
		}
		if textures[1].Sampler != fallback {
			t.Fatal("texture without sampler must use the fallback")
		}
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := newTextures([]glb.Texture{{}}, samplers, images, fallback)
		if !errors.Is(err, ErrNoImageData) {
			t.Fatalf("got %v, want ErrNoImageData", err)
		}
	})

	t.Run("source out of range", func(t *testing.T) {
		_, err := newTextures([]glb.Texture{{Source: intPtr(7)}}, samplers, images, fallback)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Fatalf("got %v, want ErrIndexOutOfRange", err)
		}
	})
}

func f32Ptr(v float32) *float32 { return &v }

func TestNewMaterialsDefaults(t *testing.T) {
	materials, err := newMaterials([]glb.Material{{Name: "plain"}}, nil)
	if err != nil {
		t.Fatalf("newMaterials: %v", err)
	}
	m := materials[0]
	if m.BaseColorFactor != [4]float32{1, 1, 1, 1} {
		t.Errorf("baseColorFactor = %v", m.BaseColorFactor)
	}
	if m.MetallicFactor != 1 || m.RoughnessFactor != 1 {
		t.Errorf("metallic = %v roughness = %v, want 1 1", m.MetallicFactor, m.RoughnessFactor)
	}
	if m.BaseColorTexture != nil || m.MetallicRoughnessTexture != nil {
		t.Error("plain material must have no textures")
	}
}

func TestNewMaterialsFactors(t *testing.T) {
	materials, err := newMaterials([]glb.Material{{
		Name: "gold",
		PBRMetallicRoughness: &glb.PBRMetallicRoughness{
			BaseColorFactor: &[4]float32{1, 0.8, 0.3, 1},
			MetallicFactor:  f32Ptr(0.9),
			RoughnessFactor: f32Ptr(0.2),
		},
	}}, nil)
	if err != nil {
		t.Fatalf("newMaterials: %v", err)
	}
	m := materials[0]
	if m.BaseColorFactor != [4]float32{1, 0.8, 0.3, 1} {
		t.Errorf("baseColorFactor = %v", m.BaseColorFactor)
	}
	if m.MetallicFactor != 0.9 || m.RoughnessFactor != 0.2 {
		t.Errorf("metallic = %v roughness = %v", m.MetallicFactor, m.RoughnessFactor)
	}
}

func TestNewMaterialsTagsImageUsage(t *testing.T) {
	images := []*Image{{name: "color"}, {name: "rough"}}
	fallback := defaultSampler()
	textures, err := newTextures([]glb.Texture{
		{Source: intPtr(0)},
		{Source: intPtr(1)},
	}, nil, images, fallback)
	if err != nil {
		t.Fatalf("newTextures: %v", err)
	}

	_, err = newMaterials([]glb.Material{{
		PBRMetallicRoughness: &glb.PBRMetallicRoughness{
			BaseColorTexture:         &glb.TextureRef{Index: 0},
			MetallicRoughnessTexture: &glb.TextureRef{Index: 1},
		},
	}}, textures)
	if err != nil {
		t.Fatalf("newMaterials: %v", err)
	}

	if images[0].Usage() != ImageUsageBaseColor {
		t.Errorf("color image usage = %s", images[0].Usage())
	}
	if images[1].Usage() != ImageUsageMetallicRoughness {
		t.Errorf("roughness image usage = %s", images[1].Usage())
	}
}

func TestNewMaterialsConflictingUsage(t *testing.T) {
	images := []*Image{{name: "shared"}}
	textures, err := newTextures([]glb.Texture{{Source: intPtr(0)}}, nil, images, defaultSampler())
	if err != nil {
		t.Fatalf("newTextures: %v", err)
	}

	_, err = newMaterials([]glb.Material{{
		PBRMetallicRoughness: &glb.PBRMetallicRoughness{
			BaseColorTexture:         &glb.TextureRef{Index: 0},
			MetallicRoughnessTexture: &glb.TextureRef{Index: 0},
		},
	}}, textures)
	if !errors.Is(err, ErrConflictingImageUsage) {
		t.Fatalf("got %v, want ErrConflictingImageUsage", err)
	}
}

func TestNewMaterialsRejectsUnsupportedMaps(t *testing.T) {
	cases := []struct {
		name  string
		entry glb.Material
	}{
		{"normal", glb.Material{NormalTexture: &glb.TextureRef{Index: 0}}},
		{"occlusion", glb.Material{OcclusionTexture: &glb.TextureRef{Index: 0}}},
		{"emissive", glb.Material{EmissiveTexture: &glb.TextureRef{Index: 0}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newMaterials([]glb.Material{tc.entry}, nil)
			if !errors.Is(err, ErrUnsupportedImageUsage) {
				t.Fatalf("got %v, want ErrUnsupportedImageUsage", err)
			}
		})
	}
}
