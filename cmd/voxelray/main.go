// Command voxelray is the CLI driver for the path tracer (spec.md §6): it
// parses a scene file, runs a tile-parallel render, and writes a PNG or PPM
// image. The core rendering packages never reference flag, os or image;
// flag is imported only here, and os/image otherwise only by the scene and
// loaders glue packages.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dorahawk/voxelray/pkg/core"
	"github.com/dorahawk/voxelray/pkg/postprocess"
	"github.com/dorahawk/voxelray/pkg/renderer"
	"github.com/dorahawk/voxelray/pkg/scene"
)

const (
	exitSuccess       = 0
	exitSceneMissing  = 2
	exitSceneParseErr = 3
)

type cliConfig struct {
	Scene     string
	Out       string
	Threads   int
	TileSize  int
	TileDebug bool
	Width     int
	Samples   int
	Quiet     bool
	Verbose   bool
}

func parseFlags() cliConfig {
	cfg := cliConfig{}
	flag.StringVar(&cfg.Scene, "scene", "objects.xml", "scene file path")
	flag.StringVar(&cfg.Out, "out", "render.png", "output image path (.png selects PNG, otherwise PPM)")
	flag.IntVar(&cfg.Threads, "threads", 0, "worker count (0 = hardware concurrency)")
	flag.IntVar(&cfg.TileSize, "tile-size", renderer.DefaultTileSize, "pixel tile edge, clamped to [1, width]")
	flag.BoolVar(&cfg.TileDebug, "tile-debug", false, "emit per-tile timing diagnostics")
	flag.IntVar(&cfg.Width, "width", 0, "override image width (0 = use scene default)")
	flag.IntVar(&cfg.Samples, "samples", 0, "override samples-per-pixel (0 = use scene default)")
	flag.BoolVar(&cfg.Quiet, "quiet", false, "suppress log output")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "emit per-tile timing alongside progress")
	flag.Parse()
	return cfg
}

func main() {
	os.Exit(run(parseFlags()))
}

func run(cli cliConfig) int {
	logger := buildLogger(cli)

	if _, err := os.Stat(cli.Scene); err != nil {
		fmt.Fprintf(os.Stderr, "scene file not found: %s\n", cli.Scene)
		return exitSceneMissing
	}

	world, err := scene.Load(cli.Scene, core.DefaultConfig(), logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to parse scene: %v\n", err)
		return exitSceneParseErr
	}

	// Explicitly-set flags override the scene file's sampling block; --width
	// keeps the scene's aspect ratio by recomputing the height.
	if cli.Width > 0 {
		cfg := &world.Config
		cfg.Height = int(float64(cli.Width) * float64(cfg.Height) / float64(cfg.Width))
		cfg.Width = cli.Width
	}
	if cli.Samples > 0 {
		world.Config.SamplesPerPixel = cli.Samples
	}

	threads := cli.Threads
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	job := &renderer.Job{
		World:    world,
		Width:    world.Config.Width,
		Height:   world.Config.Height,
		Samples:  world.Config.SamplesPerPixel,
		MaxDepth: world.Config.MaxDepth,
		TileSize: cli.TileSize,
		Threads:  threads,
		Logger:   core.NopLogger{},
	}
	if cli.TileDebug || cli.Verbose {
		job.Logger = logger
		job.OnProgress = func(_ []core.Vec3, stat renderer.TileStat, tilesDone, totalTiles int) {
			logger.Printf("tile %d/%d done in %v", tilesDone, totalTiles, stat.Duration)
		}
	}

	start := time.Now()
	bitmap, outcome := job.Run()
	logger.Printf("render finished in %v (outcome=%v)", time.Since(start), outcome)

	pixels := postprocess.ProcessBitmap(bitmap, world.Config.SamplesPerPixel)
	if err := writeImage(cli.Out, pixels, world.Config.Width, world.Config.Height); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write output image: %v\n", err)
		return exitSceneParseErr
	}

	return exitSuccess
}

func buildLogger(cli cliConfig) core.Logger {
	if cli.Quiet {
		return core.NopLogger{}
	}
	return stderrLogger{}
}

type stderrLogger struct{}

func (stderrLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func writeImage(path string, pixels []postprocess.RGB8, width, height int) error {
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		return writePNG(path, pixels, width, height)
	}
	return writePPM(path, pixels, width, height)
}

func writePNG(path string, pixels []postprocess.RGB8, width, height int) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i, p := range pixels {
		img.Set(i%width, i/width, color.RGBA{R: p.R, G: p.G, B: p.B, A: 255})
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	return png.Encode(file, img)
}

// writePPM writes a binary (P6) PPM, the fallback format for any --out
// extension other than .png (spec.md §6).
func writePPM(path string, pixels []postprocess.RGB8, width, height int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height)
	for _, p := range pixels {
		if _, err := w.Write([]byte{p.R, p.G, p.B}); err != nil {
			return err
		}
	}
	return w.Flush()
}
