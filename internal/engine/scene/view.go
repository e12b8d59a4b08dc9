package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

// UsageFlag is a bitmask of how accessors reference a buffer view.
type UsageFlag uint8

const (
	UsageVertex UsageFlag = 1 << iota
	UsageIndex
)

// bufferUsage converts to the backend bitmask.
func (u UsageFlag) bufferUsage() renderer.BufferUsage {
	var b renderer.BufferUsage
	if u&UsageVertex != 0 {
		b |= renderer.BufferUsageVertex
	}
	if u&UsageIndex != 0 {
		b |= renderer.BufferUsageIndex
	}
	return b
}

// BufferView is a zero-copy byte sub-range of the binary blob. Usage flags
// accumulate during registration; the view is uploaded at most once, after
// registration for the whole document is complete.
type BufferView struct {
	blob       *glb.Blob
	byteOffset int
	byteLength int
	byteStride int

	usage    UsageFlag
	uploaded bool
	buffer   renderer.Buffer
}

// newBufferViews constructs views over the blob for every declared view
// entry, validating each range against the blob size.
func newBufferViews(entries []glb.BufferView, blob *glb.Blob) ([]*BufferView, error) {
	views := make([]*BufferView, len(entries))
	for i, e := range entries {
		if e.ByteOffset < 0 || e.ByteLength < 0 || e.ByteOffset+e.ByteLength > blob.Len() {
			return nil, fmt.Errorf("bufferView %d: [%d, %d) with blob of %d bytes: %w",
				i, e.ByteOffset, e.ByteOffset+e.ByteLength, blob.Len(), ErrViewOutOfBounds)
		}
		views[i] = &BufferView{
			blob:       blob,
			byteOffset: e.ByteOffset,
			byteLength: e.ByteLength,
			byteStride: e.ByteStride,
		}
	}
	return views, nil
}

// AddUsage ORs a usage flag into the view's mask. Idempotent.
func (v *BufferView) AddUsage(f UsageFlag) {
	v.usage |= f
}

// Usage returns the accumulated usage mask.
func (v *BufferView) Usage() UsageFlag {
	return v.usage
}

// ByteStride returns the declared stride, 0 when tightly packed.
func (v *BufferView) ByteStride() int {
	return v.byteStride
}

// ByteLength returns the view's length in bytes.
func (v *BufferView) ByteLength() int {
	return v.byteLength
}

// NeedsUpload reports whether any accessor registered usage on this view and
// it has not been uploaded yet.
func (v *BufferView) NeedsUpload() bool {
	return v.usage != 0 && !v.uploaded
}

// Uploaded reports whether the view's GPU buffer exists.
func (v *BufferView) Uploaded() bool {
	return v.uploaded
}

// Buffer returns the created GPU buffer, nil before upload.
func (v *BufferView) Buffer() renderer.Buffer {
	return v.buffer
}

// bytes returns the view's sub-range of the blob without copying.
func (v *BufferView) bytes() ([]byte, error) {
	return v.blob.Slice(v.byteOffset, v.byteLength)
}

// upload copies the view's range into a backend buffer, padding the length
// up to the backend alignment. A second call is a contract violation and is
// rejected without touching the backend.
func (v *BufferView) upload(dev renderer.Device, label string) error {
	if v.uploaded {
		return fmt.Errorf("bufferView %s: %w", label, ErrAlreadyUploaded)
	}

	data, err := v.bytes()
	if err != nil {
		return err
	}

	padded := data
	if rem := len(data) % renderer.BufferAlign; rem != 0 {
		padded = make([]byte, len(data)+renderer.BufferAlign-rem)
		copy(padded, data)
	}

	buf, err := dev.CreateBuffer(label, v.usage.bufferUsage(), padded)
	if err != nil {
		return fmt.Errorf("uploading bufferView %s: %w", label, err)
	}

	v.buffer = buf
	v.uploaded = true
	return nil
}
