package scene

import (
	"bytes"
	"fmt"
	"image"

	// Register the decoders the GLB mime types require.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

// ImageUsage tags the role an image plays in a material. The role decides
// the texture format at upload: base color is gamma-encoded, metallic-
// roughness is linear data.
type ImageUsage int

const (
	ImageUsageUnset ImageUsage = iota
	ImageUsageBaseColor
	ImageUsageMetallicRoughness
	ImageUsageNormal
	ImageUsageOcclusion
	ImageUsageEmission
)

// String returns a human-readable usage name.
func (u ImageUsage) String() string {
	switch u {
	case ImageUsageUnset:
		return "Unset"
	case ImageUsageBaseColor:
		return "BaseColor"
	case ImageUsageMetallicRoughness:
		return "MetallicRoughness"
	case ImageUsageNormal:
		return "Normal"
	case ImageUsageOcclusion:
		return "Occlusion"
	case ImageUsageEmission:
		return "Emission"
	default:
		return fmt.Sprintf("ImageUsage(%d)", int(u))
	}
}

// Image is an embedded texture image. Its lifecycle is an explicit three
// step sequence: Decode reads the encoded bytes into RGBA pixels,
// AssignUsage tags the color-space role, upload creates the GPU texture.
type Image struct {
	name string
	data []byte // encoded bytes from the blob
	mime string

	rgba     *image.RGBA
	usage    ImageUsage
	uploaded bool
	texture  renderer.Texture
}

// newImages resolves every declared image's byte range from the blob.
// External URIs are out of scope for GLB loading.
func newImages(entries []glb.Image, views []*BufferView) ([]*Image, error) {
	images := make([]*Image, len(entries))
	for i, e := range entries {
		if e.BufferView == nil {
			return nil, fmt.Errorf("image %d (%s): %w", i, e.Name, ErrNoImageData)
		}
		if *e.BufferView < 0 || *e.BufferView >= len(views) {
			return nil, fmt.Errorf("image %d: bufferView %d: %w", i, *e.BufferView, ErrIndexOutOfRange)
		}
		data, err := views[*e.BufferView].bytes()
		if err != nil {
			return nil, fmt.Errorf("image %d (%s): %w", i, e.Name, err)
		}
		images[i] = &Image{
			name: e.Name,
			data: data,
			mime: e.MimeType,
		}
	}
	return images, nil
}

// Decode decodes the encoded bytes and normalizes them to tightly packed
// RGBA. Safe to call from a per-image goroutine; it touches no shared state.
func (img *Image) Decode() error {
	decoded, _, err := image.Decode(bytes.NewReader(img.data))
	if err != nil {
		return fmt.Errorf("decoding image %s (%s): %w", img.name, img.mime, err)
	}

	if rgba, ok := decoded.(*image.RGBA); ok {
		img.rgba = rgba
		return nil
	}

	// jpeg decodes to YCbCr, png may decode to NRGBA; flatten everything
	// to RGBA before upload.
	bounds := decoded.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), decoded, bounds.Min, xdraw.Src)
	img.rgba = rgba
	return nil
}

// AssignUsage tags the image with its material role. Must happen before
// upload since the pixel format depends on it. Tagging the same role twice
// is fine; a second different role is an error.
func (img *Image) AssignUsage(u ImageUsage) error {
	switch u {
	case ImageUsageBaseColor, ImageUsageMetallicRoughness:
	default:
		return fmt.Errorf("image %s tagged %s: %w", img.name, u, ErrUnsupportedImageUsage)
	}
	if img.usage != ImageUsageUnset && img.usage != u {
		return fmt.Errorf("image %s tagged %s and %s: %w", img.name, img.usage, u, ErrConflictingImageUsage)
	}
	img.usage = u
	return nil
}

// Usage returns the assigned role.
func (img *Image) Usage() ImageUsage {
	return img.usage
}

// Decoded reports whether pixels are available.
func (img *Image) Decoded() bool {
	return img.rgba != nil
}

// Uploaded reports whether the GPU texture exists.
func (img *Image) Uploaded() bool {
	return img.uploaded
}

// Texture returns the created GPU texture, nil before upload.
func (img *Image) Texture() renderer.Texture {
	return img.texture
}

// NeedsUpload reports whether a material referenced this image.
func (img *Image) NeedsUpload() bool {
	return img.usage != ImageUsageUnset && !img.uploaded
}

// upload creates the GPU texture in the format the usage tag mandates.
func (img *Image) upload(dev renderer.Device, label string) error {
	if img.uploaded {
		return fmt.Errorf("image %s: %w", label, ErrAlreadyUploaded)
	}
	if img.rgba == nil {
		return fmt.Errorf("image %s uploaded before decode: %w", label, ErrNoImageData)
	}

	var format renderer.TextureFormat
	switch img.usage {
	case ImageUsageBaseColor:
		format = renderer.TextureRGBA8UnormSrgb
	case ImageUsageMetallicRoughness:
		format = renderer.TextureRGBA8Unorm
	default:
		return fmt.Errorf("image %s uploaded with usage %s: %w", label, img.usage, ErrUnsupportedImageUsage)
	}

	bounds := img.rgba.Bounds()
	tex, err := dev.CreateTexture2D(label, renderer.TextureDescriptor{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Format: format,
		Pixels: img.rgba.Pix,
	})
	if err != nil {
		return fmt.Errorf("uploading image %s: %w", label, err)
	}

	img.texture = tex
	img.uploaded = true
	return nil
}
