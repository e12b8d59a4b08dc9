// Package glb provides a parser for the binary glTF (GLB) container format.
// A GLB file wraps a JSON scene document and a raw binary blob in a chunked
// little-endian container.
// Reference: https://registry.khronos.org/glTF/specs/2.0/glTF-2.0.html#glb-file-format-specification
package glb

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// GLB container constants.
const (
	Magic     uint32 = 0x46546C67 // "glTF"
	Version   uint32 = 2
	ChunkJSON uint32 = 0x4E4F534A // "JSON"
	ChunkBIN  uint32 = 0x004E4942 // "BIN\0"

	headerSize      = 12
	chunkHeaderSize = 8
	chunkAlign      = 4
)

// GLB format errors.
var (
	ErrTruncatedData      = errors.New("truncated GLB data")
	ErrInvalidMagic       = errors.New("invalid GLB magic: expected 'glTF'")
	ErrUnsupportedVersion = errors.New("unsupported GLB version: expected 2")
	ErrLengthMismatch     = errors.New("GLB total length does not match data size")
	ErrExpectedJSONChunk  = errors.New("first GLB chunk is not a JSON chunk")
	ErrExpectedBINChunk   = errors.New("second GLB chunk is not a BIN chunk")
)

// Blob is the raw binary payload of a GLB file. It is owned by the load
// session and never mutated after construction.
type Blob struct {
	data []byte
}

// NewBlob wraps an existing byte slice as a blob. The caller keeps ownership
// of the slice but must not modify it afterwards.
func NewBlob(data []byte) *Blob {
	return &Blob{data: data}
}

// Len returns the blob size in bytes.
func (b *Blob) Len() int {
	return len(b.data)
}

// Bytes returns the underlying byte slice. Callers must not modify it.
func (b *Blob) Bytes() []byte {
	return b.data
}

// Slice returns the sub-range [offset, offset+length) of the blob without copying.
func (b *Blob) Slice(offset, length int) ([]byte, error) {
	if offset < 0 || length < 0 || offset+length > len(b.data) {
		return nil, fmt.Errorf("blob range [%d, %d) out of bounds (blob is %d bytes): %w",
			offset, offset+length, len(b.data), ErrTruncatedData)
	}
	return b.data[offset : offset+length], nil
}

// Container is a parsed GLB file: the decoded JSON scene document plus the
// binary blob it references.
type Container struct {
	Version      uint32
	Length       uint32 // total file length from the header
	JSONLength   uint32 // chunk 0 payload length
	BinaryLength uint32 // chunk 1 payload length
	Document     *Document
	Blob         *Blob
}

// Parse parses GLB data from a byte slice.
func Parse(data []byte) (*Container, error) {
	if len(data) < headerSize+chunkHeaderSize {
		return nil, ErrTruncatedData
	}

	magic := binary.LittleEndian.Uint32(data[0:])
	if magic != Magic {
		return nil, ErrInvalidMagic
	}

	version := binary.LittleEndian.Uint32(data[4:])
	if version != Version {
		return nil, fmt.Errorf("%w: got %d", ErrUnsupportedVersion, version)
	}

	total := binary.LittleEndian.Uint32(data[8:])
	if int(total) > len(data) {
		return nil, fmt.Errorf("%w: header says %d, have %d bytes", ErrLengthMismatch, total, len(data))
	}

	// Chunk 0 must be the JSON document.
	jsonLen := binary.LittleEndian.Uint32(data[12:])
	jsonType := binary.LittleEndian.Uint32(data[16:])
	if jsonType != ChunkJSON {
		return nil, fmt.Errorf("%w: got type 0x%08X", ErrExpectedJSONChunk, jsonType)
	}
	jsonStart := headerSize + chunkHeaderSize
	jsonEnd := jsonStart + int(jsonLen)
	if jsonEnd > len(data) {
		return nil, fmt.Errorf("JSON chunk of %d bytes exceeds file: %w", jsonLen, ErrTruncatedData)
	}

	var doc Document
	if err := json.Unmarshal(data[jsonStart:jsonEnd], &doc); err != nil {
		return nil, fmt.Errorf("parsing GLB JSON chunk: %w", err)
	}

	// Chunk 1 starts at the 4-byte-aligned offset after the JSON payload and
	// must be the binary blob.
	binHeader := align4(jsonEnd)
	if binHeader+chunkHeaderSize > len(data) {
		return nil, fmt.Errorf("missing BIN chunk header: %w", ErrTruncatedData)
	}
	binLen := binary.LittleEndian.Uint32(data[binHeader:])
	binType := binary.LittleEndian.Uint32(data[binHeader+4:])
	if binType != ChunkBIN {
		return nil, fmt.Errorf("%w: got type 0x%08X", ErrExpectedBINChunk, binType)
	}
	binStart := binHeader + chunkHeaderSize
	binEnd := binStart + int(binLen)
	if binEnd > len(data) {
		return nil, fmt.Errorf("BIN chunk of %d bytes exceeds file: %w", binLen, ErrTruncatedData)
	}

	return &Container{
		Version:      version,
		Length:       total,
		JSONLength:   jsonLen,
		BinaryLength: binLen,
		Document:     &doc,
		Blob:         &Blob{data: data[binStart:binEnd]},
	}, nil
}

// ParseFile parses a GLB file from disk.
func ParseFile(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading GLB file: %w", err)
	}
	return Parse(data)
}

// align4 rounds n up to the next multiple of 4.
func align4(n int) int {
	return (n + chunkAlign - 1) &^ (chunkAlign - 1)
}
