package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/kjhall/pathlight/pkg/config"
	"github.com/kjhall/pathlight/pkg/core"
	"github.com/kjhall/pathlight/pkg/renderer"
	"github.com/kjhall/pathlight/pkg/scene"
)

// stageRunner is the common surface PathTracingRenderer and MCMCRenderer
// both present, letting main drive either one through the same loop.
type stageRunner interface {
	RenderStage()
	ValidateConfig() error
	Output() []core.Vec3
}

func main() {
	sceneType := flag.String("scene", "single-light", "Scene type: 'empty', 'single-light', 'emissive-mesh', 'mirror', or 'medium-corridor'")
	method := flag.String("method", "pt", "Integration method: 'pt' (independent path tracing) or 'pssmlt' (Metropolis light transport)")
	width := flag.Int("width", 400, "Image width in pixels")
	height := flag.Int("height", 225, "Image height in pixels")
	stages := flag.Int("stages", 4, "Number of render stages to run before saving")
	maxDepth := flag.Int("max-depth", 10, "Maximum path length")
	mutationStrength := flag.Float64("mutation-strength", 0.5, "PSSMLT mutation strength (only used when -method=pssmlt)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("pathlight - unidirectional path tracing and PSSMLT renderer")
		fmt.Println("Usage: pathlight [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene_type>/render_<timestamp>.png")
		return
	}

	fmt.Println("Starting pathlight...")

	var selectedScene *scene.Scene
	switch *sceneType {
	case "empty":
		selectedScene = scene.NewEmptyScene(*width, *height)
	case "single-light":
		selectedScene = scene.NewSingleLightScene(*width, *height)
	case "emissive-mesh":
		selectedScene = scene.NewEmissiveMeshScene(*width, *height)
	case "mirror":
		selectedScene = scene.NewMirrorScene(*width, *height)
	case "medium-corridor":
		selectedScene = scene.NewMediumCorridorScene(*width, *height)
	default:
		fmt.Printf("Unknown scene type: %s. Using single-light scene.\n", *sceneType)
		selectedScene = scene.NewSingleLightScene(*width, *height)
		*sceneType = "single-light"
	}

	if err := selectedScene.Preprocess(); err != nil {
		fmt.Printf("Error preparing scene: %v\n", err)
		os.Exit(1)
	}

	outputDir := filepath.Join("output", *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.MaxPathLength = *maxDepth
	cfg.MutationStrength = *mutationStrength

	var r stageRunner
	switch *method {
	case "pssmlt":
		fmt.Println("Using PSSMLT...")
		r = renderer.NewMCMCRenderer(selectedScene, cfg, nil)
	default:
		fmt.Println("Using independent path tracing...")
		r = renderer.NewPathTracingRenderer(selectedScene, cfg, nil)
	}

	if err := r.ValidateConfig(); err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()
	for i := 0; i < *stages; i++ {
		r.RenderStage()
	}
	renderTime := time.Since(startTime)
	fmt.Printf("Render completed in %v\n", renderTime)

	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	if err := savePNG(filename, r.Output(), selectedScene.Width, selectedScene.Height); err != nil {
		fmt.Printf("Error saving PNG: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Render saved as %s\n", filename)
}

// savePNG gamma-corrects the averaged radiance image and writes it to
// disk, matching the teacher's tonemap-then-encode shape in its own
// render-to-PNG path.
func savePNG(filename string, pixels []core.Vec3, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := pixels[y*width+x].Clamp(0, 1).GammaCorrect(2.2)
			img.Set(x, y, color.RGBA{
				R: uint8(c.X * 255),
				G: uint8(c.Y * 255),
				B: uint8(c.Z * 255),
				A: 255,
			})
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	return png.Encode(file, img)
}
