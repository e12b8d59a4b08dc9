package scene

import (
	"fmt"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer"
	"github.com/Twinklebear/webgpu-0-to-gltf/pkg/glb"
)

// ComponentType is a glTF accessor component type (GL enum values).
type ComponentType int

const (
	ComponentByte          ComponentType = 5120
	ComponentUnsignedByte  ComponentType = 5121
	ComponentShort         ComponentType = 5122
	ComponentUnsignedShort ComponentType = 5123
	ComponentInt           ComponentType = 5124
	ComponentUnsignedInt   ComponentType = 5125
	ComponentFloat         ComponentType = 5126
	ComponentDouble        ComponentType = 5130
)

// componentSizes maps a component type to its size in bytes.
var componentSizes = map[ComponentType]int{
	ComponentByte:          1,
	ComponentUnsignedByte:  1,
	ComponentShort:         2,
	ComponentUnsignedShort: 2,
	ComponentInt:           4,
	ComponentUnsignedInt:   4,
	ComponentFloat:         4,
	ComponentDouble:        8,
}

// ElementType is a glTF accessor element type.
type ElementType int

const (
	ElementScalar ElementType = iota
	ElementVec2
	ElementVec3
	ElementVec4
	ElementMat2
	ElementMat3
	ElementMat4
)

// elementComponents maps an element type to its component count.
var elementComponents = map[ElementType]int{
	ElementScalar: 1,
	ElementVec2:   2,
	ElementVec3:   3,
	ElementVec4:   4,
	ElementMat2:   4,
	ElementMat3:   9,
	ElementMat4:   16,
}

// elementTypeNames maps the JSON type label to the element type enum.
var elementTypeNames = map[string]ElementType{
	"SCALAR": ElementScalar,
	"VEC2":   ElementVec2,
	"VEC3":   ElementVec3,
	"VEC4":   ElementVec4,
	"MAT2":   ElementMat2,
	"MAT3":   ElementMat3,
	"MAT4":   ElementMat4,
}

// String returns the JSON label of the element type.
func (e ElementType) String() string {
	for name, et := range elementTypeNames {
		if et == e {
			return name
		}
	}
	return fmt.Sprintf("ElementType(%d)", int(e))
}

// Accessor is a typed, strided view over a buffer view. Element size, stride
// and byte length derive from the two lookup tables above and are never
// stored redundantly.
type Accessor struct {
	view          *BufferView
	count         int
	componentType ComponentType
	elementType   ElementType
	byteOffset    int

	// Min and Max carry the document's declared bounds (POSITION accessors
	// are required to declare them); used for camera framing.
	min []float32
	max []float32
}

// newAccessors builds an accessor for every document entry, resolving the
// type label and validating the (componentType, type) pair against the
// lookup tables.
func newAccessors(entries []glb.Accessor, views []*BufferView) ([]*Accessor, error) {
	accessors := make([]*Accessor, len(entries))
	for i, e := range entries {
		elemType, ok := elementTypeNames[e.Type]
		if !ok {
			return nil, fmt.Errorf("accessor %d: type %q: %w", i, e.Type, ErrUnsupportedAccessorType)
		}
		if _, ok := componentSizes[ComponentType(e.ComponentType)]; !ok {
			return nil, fmt.Errorf("accessor %d: componentType %d: %w", i, e.ComponentType, ErrUnsupportedAccessorType)
		}
		if e.BufferView == nil {
			// Sparse accessors are out of scope.
			return nil, fmt.Errorf("accessor %d has no bufferView: %w", i, ErrUnsupportedAccessorType)
		}
		if *e.BufferView < 0 || *e.BufferView >= len(views) {
			return nil, fmt.Errorf("accessor %d: bufferView %d: %w", i, *e.BufferView, ErrIndexOutOfRange)
		}
		accessors[i] = &Accessor{
			view:          views[*e.BufferView],
			count:         e.Count,
			componentType: ComponentType(e.ComponentType),
			elementType:   elemType,
			byteOffset:    e.ByteOffset,
			min:           e.Min,
			max:           e.Max,
		}
	}
	return accessors, nil
}

// View returns the underlying buffer view.
func (a *Accessor) View() *BufferView {
	return a.view
}

// Count returns the number of elements.
func (a *Accessor) Count() int {
	return a.count
}

// ByteOffset returns the accessor's offset within its view.
func (a *Accessor) ByteOffset() int {
	return a.byteOffset
}

// ElementSize returns componentSize * componentCount in bytes.
func (a *Accessor) ElementSize() int {
	return componentSizes[a.componentType] * elementComponents[a.elementType]
}

// EffectiveStride returns the distance between consecutive elements: the
// view's declared stride for interleaved data, or the tight element size.
func (a *Accessor) EffectiveStride() int {
	if s := a.view.ByteStride(); s > a.ElementSize() {
		return s
	}
	return a.ElementSize()
}

// ByteLength returns count * effectiveStride.
func (a *Accessor) ByteLength() int {
	return a.count * a.EffectiveStride()
}

// Min returns the declared minimum bounds, nil when absent.
func (a *Accessor) Min() []float32 {
	return a.min
}

// Max returns the declared maximum bounds, nil when absent.
func (a *Accessor) Max() []float32 {
	return a.max
}

// VertexFormat derives the backend vertex element format name.
func (a *Accessor) VertexFormat() (renderer.VertexFormat, error) {
	switch a.componentType {
	case ComponentFloat:
		switch a.elementType {
		case ElementScalar:
			return renderer.VertexFloat32, nil
		case ElementVec2:
			return renderer.VertexFloat32x2, nil
		case ElementVec3:
			return renderer.VertexFloat32x3, nil
		case ElementVec4:
			return renderer.VertexFloat32x4, nil
		}
	case ComponentUnsignedByte:
		switch a.elementType {
		case ElementVec2:
			return renderer.VertexUint8x2, nil
		case ElementVec4:
			return renderer.VertexUint8x4, nil
		}
	case ComponentUnsignedShort:
		switch a.elementType {
		case ElementVec2:
			return renderer.VertexUint16x2, nil
		case ElementVec4:
			return renderer.VertexUint16x4, nil
		}
	case ComponentUnsignedInt:
		if a.elementType == ElementScalar {
			return renderer.VertexUint32, nil
		}
	}
	return "", fmt.Errorf("no vertex format for componentType %d %s: %w",
		a.componentType, a.elementType, ErrUnsupportedAccessorType)
}

// IndexFormat derives the backend index element format. Only unsigned short
// and unsigned int scalars qualify.
func (a *Accessor) IndexFormat() (renderer.IndexFormat, error) {
	if a.elementType != ElementScalar {
		return 0, fmt.Errorf("index accessor must be scalar, got %s: %w", a.elementType, ErrUnsupportedAccessorType)
	}
	switch a.componentType {
	case ComponentUnsignedShort:
		return renderer.IndexUint16, nil
	case ComponentUnsignedInt:
		return renderer.IndexUint32, nil
	}
	return 0, fmt.Errorf("no index format for componentType %d: %w", a.componentType, ErrUnsupportedAccessorType)
}
