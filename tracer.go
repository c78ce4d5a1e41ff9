// Package tracer is the top-level entry point gluing the scene
// description language (internal/gmlscene) to the rendering engine
// (internal/world, internal/camera, internal/canvas): it parses and
// evaluates a scene program, assembles the world and camera the
// render builtin collected, and drives the actual render, handing
// back a canvas the caller writes out however it likes (PNG, a
// window blit, ...).
package tracer

import (
	"errors"
	"fmt"
	"image"

	"github.com/virefract/tracer/internal/camera"
	"github.com/virefract/tracer/internal/canvas"
	"github.com/virefract/tracer/internal/config"
	"github.com/virefract/tracer/internal/gmlscene"
	"github.com/virefract/tracer/internal/world"
)

// ErrNoRenderCall is returned when a scene program runs to completion
// without ever invoking the render builtin, so there is nothing to
// write out.
var ErrNoRenderCall = errors.New("tracer: scene program never called render")

// RenderMode selects between the serial and band-parallel render
// loops; both produce bit-identical canvases, so the choice is purely
// a performance knob.
type RenderMode int

const (
	Serial RenderMode = iota
	Parallel
)

// Result is what a completed render produced: the canvas, plus the
// output path and recursion depth the render used (the scene's render
// builtin values unless the config overrode them), echoed back so a
// CLI driver can act on them without re-parsing the scene.
type Result struct {
	Canvas     *canvas.Canvas
	OutputPath string
	Depth      int
}

// RenderScene parses and evaluates a gmlscene program, builds the
// world and camera its render call assembled, and renders it. mode
// selects the serial or band-parallel loop; cfg.OutputPath, when set,
// overrides the output path the scene itself requested (a CLI's
// --out flag takes precedence over the scene file's own filename
// literal, for instance).
func RenderScene(programText string, mode RenderMode, cfg config.RenderConfig) (*Result, error) {
	tokens, err := gmlscene.NewParser(programText).Parse()
	if err != nil {
		return nil, fmt.Errorf("tracer: parse scene: %w", err)
	}

	var result *Result
	state := gmlscene.NewEvalState()
	state.Render = func(args *gmlscene.RenderArgs) error {
		w := buildWorld(args)

		// The scene's own render-builtin depth argument is overridable
		// by the config the same way OutputPath is; either way it is
		// threaded into the camera so it actually bounds the render
		// loop's recursion, not just Result's reported value.
		depth := args.Depth
		if cfg.Depth > 0 {
			depth = cfg.Depth
		}
		if depth <= 0 {
			depth = world.MaxDepth
		}
		if args.Camera != nil {
			args.Camera.BandSize = cfg.BandSize
			args.Camera.Workers = cfg.Workers
			args.Camera.Depth = depth
		}

		outputPath := args.File
		if cfg.OutputPath != "" {
			outputPath = cfg.OutputPath
		}

		img, err := render(w, args.Camera, mode)
		if err != nil {
			return err
		}
		result = &Result{Canvas: img, OutputPath: outputPath, Depth: depth}
		return nil
	}

	if err := state.Eval(tokens); err != nil {
		return nil, fmt.Errorf("tracer: evaluate scene: %w", err)
	}
	if result == nil {
		return nil, ErrNoRenderCall
	}
	return result, nil
}

// buildWorld flattens the scene node the render builtin collected
// into a world.World, carrying over the lights and ambient fill color
// unchanged.
func buildWorld(args *gmlscene.RenderArgs) *world.World {
	w := world.New()
	if args.Scene != nil {
		w.Objects = args.Scene.Flatten()
	}
	w.Lights = args.Lights
	if args.AmbientLight != nil {
		w.Ambient = *args.AmbientLight
	}
	return w
}

// render dispatches to the camera's serial or parallel render loop.
func render(w *world.World, cam *camera.Camera, mode RenderMode) (*canvas.Canvas, error) {
	if cam == nil {
		return nil, errors.New("tracer: scene program never called camera")
	}
	switch mode {
	case Parallel:
		return cam.RenderParallel(w)
	default:
		return cam.Render(w)
	}
}

// RenderWorld renders an already-assembled world/camera pair directly,
// bypassing the scene language entirely. Used to render the canned
// scene from examples.go and by drivers that build a scene programmatically
// rather than from a gmlscene document.
func RenderWorld(w *world.World, cam *camera.Camera, mode RenderMode) (image.Image, error) {
	img, err := render(w, cam, mode)
	if err != nil {
		return nil, err
	}
	return img.Image(), nil
}
