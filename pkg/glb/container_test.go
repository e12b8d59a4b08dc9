package glb

import (
	"encoding/binary"
	"errors"
	"testing"
)

func TestParse_MagicValidation(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{
			name:    "valid container",
			data:    makeGLB(t, `{"asset":{"version":"2.0"}}`, []byte{1, 2, 3, 4}),
			wantErr: nil,
		},
		{
			name:    "invalid magic",
			data:    corruptMagic(makeGLB(t, `{"asset":{"version":"2.0"}}`, nil)),
			wantErr: ErrInvalidMagic,
		},
		{
			name:    "empty data",
			data:    []byte{},
			wantErr: ErrTruncatedData,
		},
		{
			name:    "truncated header",
			data:    []byte{'g', 'l', 'T'},
			wantErr: ErrTruncatedData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Parse failed: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_VersionValidation(t *testing.T) {
	data := makeGLB(t, `{"asset":{"version":"2.0"}}`, nil)
	binary.LittleEndian.PutUint32(data[4:], 1)

	_, err := Parse(data)
	if !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("got error %v, want ErrUnsupportedVersion", err)
	}
}

func TestParse_ChunkOrdering(t *testing.T) {
	t.Run("first chunk not JSON", func(t *testing.T) {
		data := makeGLB(t, `{"asset":{"version":"2.0"}}`, nil)
		binary.LittleEndian.PutUint32(data[16:], ChunkBIN)

		_, err := Parse(data)
		if !errors.Is(err, ErrExpectedJSONChunk) {
			t.Errorf("got error %v, want ErrExpectedJSONChunk", err)
		}
	})

	t.Run("second chunk not BIN", func(t *testing.T) {
		doc := `{"asset":{"version":"2.0"}}`
		data := makeGLB(t, doc, []byte{1, 2, 3, 4})
		binHeader := headerSize + chunkHeaderSize + align4(len(doc))
		binary.LittleEndian.PutUint32(data[binHeader+4:], ChunkJSON)

		_, err := Parse(data)
		if !errors.Is(err, ErrExpectedBINChunk) {
			t.Errorf("got error %v, want ErrExpectedBINChunk", err)
		}
	})
}

func TestParse_RoundTrip(t *testing.T) {
	doc := `{"asset":{"version":"2.0"},"scenes":[{"nodes":[0]}]}`
	bin := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x01}
	data := makeGLB(t, doc, bin)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if c.Version != 2 {
		t.Errorf("Version = %d, want 2", c.Version)
	}
	if c.Length != uint32(len(data)) {
		t.Errorf("Length = %d, want %d", c.Length, len(data))
	}
	if c.JSONLength != uint32(len(doc)) {
		t.Errorf("JSONLength = %d, want %d", c.JSONLength, len(doc))
	}
	if c.BinaryLength != uint32(len(bin)) {
		t.Errorf("BinaryLength = %d, want %d", c.BinaryLength, len(bin))
	}
	if c.Blob.Len() != len(bin) {
		t.Errorf("Blob.Len() = %d, want %d", c.Blob.Len(), len(bin))
	}
	for i, b := range bin {
		if c.Blob.Bytes()[i] != b {
			t.Fatalf("Blob byte %d = 0x%02X, want 0x%02X", i, c.Blob.Bytes()[i], b)
		}
	}
	if len(c.Document.Scenes) != 1 {
		t.Errorf("scene count = %d, want 1", len(c.Document.Scenes))
	}
}

func TestParse_UnalignedJSONChunk(t *testing.T) {
	// A 25-byte JSON payload forces 3 bytes of padding before the BIN header.
	doc := `{"asset":{"version":"2"}}`
	if len(doc)%4 == 0 {
		t.Fatal("test document must not be 4-byte aligned")
	}
	bin := []byte{9, 8, 7}
	data := makeGLB(t, doc, bin)

	c, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if c.BinaryLength != uint32(len(bin)) {
		t.Errorf("BinaryLength = %d, want %d", c.BinaryLength, len(bin))
	}
}

func TestParse_TruncatedJSONChunk(t *testing.T) {
	data := makeGLB(t, `{"asset":{"version":"2.0"}}`, nil)
	// Claim the JSON chunk is larger than the file.
	binary.LittleEndian.PutUint32(data[12:], uint32(len(data)))
	binary.LittleEndian.PutUint32(data[8:], uint32(len(data))) // keep total length honest

	_, err := Parse(data)
	if !errors.Is(err, ErrTruncatedData) {
		t.Errorf("got error %v, want ErrTruncatedData", err)
	}
}

func TestBlob_Slice(t *testing.T) {
	blob := &Blob{data: []byte{0, 1, 2, 3, 4, 5, 6, 7}}

	got, err := blob.Slice(2, 4)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if len(got) != 4 || got[0] != 2 || got[3] != 5 {
		t.Errorf("Slice(2, 4) = %v, want [2 3 4 5]", got)
	}

	if _, err := blob.Slice(6, 4); err == nil {
		t.Error("out-of-bounds slice should fail")
	}
	if _, err := blob.Slice(-1, 2); err == nil {
		t.Error("negative offset should fail")
	}
}

func TestDocument_DefaultScene(t *testing.T) {
	one := 1
	tests := []struct {
		name string
		doc  Document
		want int
	}{
		{"explicit default", Document{Scene: &one}, 1},
		{"no default", Document{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.DefaultScene(); got != tt.want {
				t.Errorf("DefaultScene() = %d, want %d", got, tt.want)
			}
		})
	}
}

// Helper functions for creating test data

// makeGLB builds a syntactically valid GLB container around the given JSON
// document and binary payload, with correct chunk alignment.
func makeGLB(t *testing.T, jsonDoc string, bin []byte) []byte {
	t.Helper()

	jsonPadded := align4(len(jsonDoc))
	total := headerSize + chunkHeaderSize + jsonPadded + chunkHeaderSize + len(bin)
	data := make([]byte, total)

	binary.LittleEndian.PutUint32(data[0:], Magic)
	binary.LittleEndian.PutUint32(data[4:], Version)
	binary.LittleEndian.PutUint32(data[8:], uint32(total))

	binary.LittleEndian.PutUint32(data[12:], uint32(len(jsonDoc)))
	binary.LittleEndian.PutUint32(data[16:], ChunkJSON)
	copy(data[20:], jsonDoc)
	for i := headerSize + chunkHeaderSize + len(jsonDoc); i < headerSize+chunkHeaderSize+jsonPadded; i++ {
		data[i] = ' ' // JSON chunks are padded with spaces
	}

	binHeader := headerSize + chunkHeaderSize + jsonPadded
	binary.LittleEndian.PutUint32(data[binHeader:], uint32(len(bin)))
	binary.LittleEndian.PutUint32(data[binHeader+4:], ChunkBIN)
	copy(data[binHeader+chunkHeaderSize:], bin)

	return data
}

func corruptMagic(data []byte) []byte {
	copy(data[0:4], "XXXX")
	return data
}
