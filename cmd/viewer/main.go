// Package main is the GLB scene viewer: it loads a binary glTF file,
// uploads it to the GPU and displays it with an orbit camera.
package main

import (
	"fmt"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/Twinklebear/webgpu-0-to-gltf/internal/config"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/camera"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/renderer/webgpu"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/scene"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/engine/window"
	"github.com/Twinklebear/webgpu-0-to-gltf/internal/logger"
)

const windowTitle = "GLB Viewer"

func init() {
	runtime.LockOSThread()
}

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.Config{Level: cfg.Logging.Level, Console: true}
	if cfg.Logging.LogFile != "" {
		logCfg.File = logger.DefaultFileConfig(cfg.Logging.LogFile)
	}
	if err := logger.Init(logCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("viewer failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      windowTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	backend, err := webgpu.New(win.SurfaceDescriptor(), cfg.Graphics.VSync)
	if err != nil {
		return err
	}
	defer backend.Release()

	fbW, fbH := win.FramebufferSize()
	if err := backend.Configure(fbW, fbH); err != nil {
		return err
	}

	logger.Info("loading model", zap.String("path", cfg.Scene.Model))
	s, err := scene.Load(cfg.Scene.Model, backend)
	if err != nil {
		return fmt.Errorf("loading %s: %w", cfg.Scene.Model, err)
	}

	forward := webgpu.NewForward(backend, cfg.Scene.ClearColor)
	defer forward.Release()
	if err := forward.Prepare(s); err != nil {
		return err
	}

	cam := camera.NewOrbitCamera()
	cam.FitToBounds(s.Bounds.Min, s.Bounds.Max)

	win.SetResizeCallback(func(width, height int) {
		if err := backend.Configure(width, height); err != nil {
			logger.Error("resize failed", zap.Error(err))
		}
	})
	win.SetDragCallback(cam.HandleDrag)
	win.SetScrollCallback(cam.HandleZoom)

	for !win.ShouldClose() {
		win.PollEvents()
		if err := forward.Draw(cam.ViewProjection(backend.Aspect())); err != nil {
			return err
		}
	}
	return nil
}
