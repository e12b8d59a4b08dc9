package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
)

// UsageTable is the sealed result of the registration phase: every buffer
// view, image and material the document produced, with their usage flags and
// tags accumulated. Upload is only possible through a sealed table, which
// makes the "register everything before uploading anything" ordering a
// property of the API rather than of call order.
type UsageTable struct {
	views     []*BufferView
	images    []*Image
	materials []*Material

	sealed   bool
	consumed bool
}

// seal marks registration complete. Further registration must not happen;
// the builders all run before seal is called.
func (t *UsageTable) seal() *UsageTable {
	t.sealed = true
	return t
}

// Upload issues exactly one backend creation call for every view with
// accumulated usage, every sampler referenced by a used material, and every
// tagged image. Calling Upload a second time is a contract violation.
func (t *UsageTable) Upload(dev renderer.Device) error {
	if !t.sealed {
		return ErrUsageTableNotSealed
	}
	if t.consumed {
		return fmt.Errorf("upload phase: %w", ErrAlreadyUploaded)
	}
	t.consumed = true

	for i, v := range t.views {
		if !v.NeedsUpload() {
			continue
		}
		if err := v.upload(dev, fmt.Sprintf("bufferView[%d]", i)); err != nil {
			return err
		}
	}

	for _, m := range t.materials {
		for _, tex := range []*Texture{m.BaseColorTexture, m.MetallicRoughnessTexture} {
			if tex == nil || tex.Sampler.uploaded {
				continue
			}
			if err := tex.Sampler.upload(dev, fmt.Sprintf("sampler(%s)", m.Name)); err != nil {
				return err
			}
		}
	}

	for i, img := range t.images {
		if !img.NeedsUpload() {
			continue
		}
		label := img.name
		if label == "" {
			label = fmt.Sprintf("image[%d]", i)
		}
		if err := img.upload(dev, label); err != nil {
			return err
		}
	}

	return nil
}
