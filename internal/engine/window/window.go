// Package window handles GLFW window creation and the WebGPU surface bridge.
package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/logger"
)

func init() {
	// GLFW calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
}

// Window wraps a GLFW window configured for WebGPU rendering.
type Window struct {
	config Config
	glfwW  *glfw.Window

	onResize func(width, height int)
	onDrag   func(dx, dy float32)
	onScroll func(delta float32)

	dragging     bool
	lastX, lastY float64
}

// New creates the window. WebGPU brings its own graphics API, so no GL
// context is requested.
func New(cfg Config) (*Window, error) {
	logger.Info("initializing GLFW")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}

	w := &Window{config: cfg}
	glfwW, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	w.glfwW = glfwW

	glfwW.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if width == 0 || height == 0 {
			return
		}
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	glfwW.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft {
			return
		}
		switch action {
		case glfw.Press:
			w.dragging = true
			w.lastX, w.lastY = glfwW.GetCursorPos()
		case glfw.Release:
			w.dragging = false
		}
	})
	glfwW.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if !w.dragging {
			return
		}
		dx := float32(xpos - w.lastX)
		dy := float32(ypos - w.lastY)
		w.lastX, w.lastY = xpos, ypos
		if w.onDrag != nil {
			w.onDrag(dx, dy)
		}
	})
	glfwW.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})
	glfwW.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			glfwW.SetShouldClose(true)
		}
	})

	fbW, fbH := glfwW.GetFramebufferSize()
	logger.Info("window created",
		zap.Int("width", fbW),
		zap.Int("height", fbH),
		zap.Bool("fullscreen", cfg.Fullscreen),
	)
	return w, nil
}

// SurfaceDescriptor returns the platform surface descriptor for WebGPU.
func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.glfwW)
}

// FramebufferSize returns the drawable size in pixels, which differs from
// the window size on high-DPI displays.
func (w *Window) FramebufferSize() (int, int) {
	return w.glfwW.GetFramebufferSize()
}

// SetResizeCallback registers the framebuffer resize handler.
func (w *Window) SetResizeCallback(fn func(width, height int)) {
	w.onResize = fn
}

// SetDragCallback registers the left-button drag handler.
func (w *Window) SetDragCallback(fn func(dx, dy float32)) {
	w.onDrag = fn
}

// SetScrollCallback registers the scroll wheel handler.
func (w *Window) SetScrollCallback(fn func(delta float32)) {
	w.onScroll = fn
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.glfwW.ShouldClose()
}

// PollEvents processes pending window events.
func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Destroy closes the window and shuts GLFW down.
func (w *Window) Destroy() {
	w.glfwW.Destroy()
	glfw.Terminate()
}
