// Package scene builds a render-ready scene from a parsed GLB container:
// buffer views and accessors over the binary blob, materials and textures,
// primitives and meshes, and a flattened node list with resolved world
// transforms. Building runs in two phases: registration, which accumulates
// every resource's usage, and upload, which hands the accumulated resources
// to the graphics backend exactly once.
package scene

import "errors"

// Scene build errors. All of them abort the load; no partial scene is ever
// returned.
var (
	ErrUnsupportedAccessorType  = errors.New("unsupported accessor component/element type combination")
	ErrUnsupportedTopology      = errors.New("unsupported primitive topology: only triangle list and strip are supported")
	ErrUnsupportedImageUsage    = errors.New("unsupported image usage: only base color and metallic-roughness are supported")
	ErrConflictingImageUsage    = errors.New("image referenced with conflicting usage roles")
	ErrMissingPositionAttribute = errors.New("primitive has no POSITION attribute")
	ErrViewOutOfBounds          = errors.New("buffer view range exceeds binary blob")
	ErrIndexOutOfRange          = errors.New("document index reference out of range")
	ErrAlreadyUploaded          = errors.New("resource already uploaded")
	ErrUsageTableSealed         = errors.New("usage registration already sealed")
	ErrUsageTableNotSealed      = errors.New("upload requires a sealed usage table")
	ErrCyclicNodeGraph          = errors.New("node hierarchy contains a cycle")
	ErrNoImageData              = errors.New("image has no buffer view data")
)
