package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-phong-raytracer/pkg/core"
	"github.com/df07/go-phong-raytracer/pkg/renderer"
	"github.com/df07/go-phong-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneType  string
	width      int
	height     int
	depth      int
	workers    int
	sequential bool
	output     string
	background string
	list       bool
	help       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.StringVar(&opts.sceneType, "scene", "default", "Scene: built-in ID, JSON scene name in scenes/, or path to a .json file")
	fs.IntVar(&opts.width, "width", 0, "Image width (0 = scene default)")
	fs.IntVar(&opts.height, "height", 0, "Image height (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", -1, "Maximum reflection depth (-1 = scene default)")
	fs.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.BoolVar(&opts.sequential, "sequential", false, "Render on a single goroutine")
	fs.StringVar(&opts.output, "output", "", "Output PNG path (default output/<scene>/render_<timestamp>.png)")
	fs.StringVar(&opts.background, "background", "", "Override background color as #rrggbb")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	err := fs.Parse(args)
	if opts.help {
		printHelp(errOut, fs)
	}
	return opts, err
}

func printHelp(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Phong Raytracer")
	fmt.Fprintln(out, "Usage: raytracer [options]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Built-in scenes:")
	for _, info := range scene.BuiltInScenes() {
		fmt.Fprintf(out, "  %-12s %s\n", info.ID, info.Description)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Output will be saved to output/<scene>/render_<timestamp>.png")
}

func run(ctx context.Context, opts options, out io.Writer) error {
	if opts.help {
		return nil
	}
	if opts.list {
		return listScenes(out)
	}

	fmt.Fprintln(out, "Starting Phong Raytracer...")

	selectedScene, err := createScene(opts.sceneType)
	if err != nil {
		return err
	}
	if opts.background != "" {
		background, err := core.ParseHexColor(opts.background)
		if err != nil {
			return fmt.Errorf("invalid -background: %w", err)
		}
		selectedScene.Background = background
	}

	config := buildConfig(selectedScene, opts)
	raytracer, err := renderer.NewRaytracer(selectedScene, config, renderer.NewDefaultLogger())
	if err != nil {
		return err
	}

	var img *image.RGBA
	var stats renderer.RenderStats
	if opts.sequential {
		img, stats, err = raytracer.RenderPass(ctx)
	} else {
		img, stats, err = raytracer.RenderParallel(ctx)
	}
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	filename := opts.output
	if filename == "" {
		outputDir := createOutputDir(opts.sceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.png", timestamp))
	}

	if err := savePNG(filename, img); err != nil {
		return err
	}

	fmt.Fprintf(out, "Rendered %d pixels with %d workers in %v\n", stats.TotalPixels, stats.NumWorkers, stats.Elapsed)
	fmt.Fprintf(out, "Render saved as %s\n", filename)
	return nil
}

// createScene resolves a scene name through the scene catalogue
func createScene(sceneType string) (*scene.Scene, error) {
	s, err := scene.Create(sceneType)
	if err != nil {
		return nil, fmt.Errorf("failed to create scene %q: %w", sceneType, err)
	}
	return s, nil
}

// buildConfig layers command line overrides over the scene's recommended settings
func buildConfig(s *scene.Scene, opts options) renderer.Config {
	config := renderer.MergeConfig(renderer.ConfigForScene(s), renderer.Config{
		Width:      opts.width,
		Height:     opts.height,
		NumWorkers: opts.workers,
	})
	// Zero is a meaningful depth, so the flag uses -1 for unset
	if opts.depth >= 0 {
		config.MaxDepth = opts.depth
	}
	return config
}

// createOutputDir returns output/<name> where name is the scene ID or the
// base name of a JSON scene path
func createOutputDir(sceneType string) string {
	name := strings.TrimPrefix(sceneType, "json:")
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return filepath.Join("output", name)
}

func savePNG(filename string, img image.Image) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}

	if err := png.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("error saving PNG: %w", err)
	}
	return file.Close()
}

func listScenes(out io.Writer) error {
	response, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(out, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(out, "  %-24s %s\n", info.ID, info.Description)
		}
	}
	return nil
}
