package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// errHelp signals that usage was printed and nothing should be rendered
var errHelp = errors.New("help requested")

type options struct {
	configPath string
	list       bool
	flags      config.Flags
}

func parseFlags(args []string, out io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	fs.StringVar(&opts.flags.Scene, "scene", "", "Scene to render (see -list)")
	fs.IntVar(&opts.flags.Width, "width", 0, "Image width (default: scene preference)")
	fs.IntVar(&opts.flags.Height, "height", 0, "Image height (default: from width and camera aspect)")
	fs.IntVar(&opts.flags.Samples, "samples", 0, "Samples per pixel (default: scene preference)")
	depth := fs.Int("depth", 0, "Maximum bounce depth; 0 renders black (default: scene preference)")
	fs.IntVar(&opts.flags.Workers, "workers", 0, "Number of parallel workers (0 = auto-detect CPU count)")
	seed := fs.Int64("seed", config.DefaultSeed, "Random seed")
	fs.StringVar(&opts.flags.Output, "output", "", "Output file; the extension selects the format (png, jpg, tga, webp, bmp, tiff, ppm)")
	fs.IntVar(&opts.flags.Quality, "quality", 0, "JPEG quality 1-100 (default 100)")
	fs.IntVar(&opts.flags.Supersample, "supersample", 0, "Render at N times the size and downsample (1-8)")
	fs.BoolVar(&opts.list, "list", false, "List available scenes")
	help := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	// Only explicit flags override the config file, so depth 0 and seed 0 stay expressible
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "depth":
			opts.flags.Depth = depth
		case "seed":
			opts.flags.Seed = seed
		}
	})

	if *help {
		fmt.Fprintln(out, "Sphere Path Tracer")
		fmt.Fprintln(out, "Usage: pathtracer [options]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(out)
		printScenes(out)
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Output will be saved to output/<scene>/render_<timestamp>.png unless -output is given")
		return opts, errHelp
	}

	return opts, nil
}

func printScenes(out io.Writer) {
	fmt.Fprintln(out, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(out, "  %-12s %s\n", info.ID, info.Description)
	}
}

// loadConfig reads the optional config file and applies flag overrides
func loadConfig(opts options) (config.Config, error) {
	var cfg config.Config
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	cfg.Resolve(opts.flags)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// createScene builds the configured scene and fits its camera to the output size
func createScene(cfg *config.Config) (*scene.Scene, error) {
	s, err := scene.Create(cfg.Scene)
	if err != nil {
		return nil, err
	}

	cfg.ApplySceneDefaults(s)
	s.SetCamera(geometry.MergeCameraConfig(s.CameraConfig, cfg.CameraOverride()))
	return s, nil
}

// createOutputDir makes sure the directory for the output file exists
func createOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return nil
}

// renderImage renders the scene and downsamples supersampled output
func renderImage(ctx context.Context, cfg *config.Config, s *scene.Scene, logger core.Logger) (image.Image, renderer.RenderStats, error) {
	raytracer, err := renderer.NewRaytracer(s, cfg.RenderConfig(), nil, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	fb, stats, err := raytracer.Render(ctx)
	if err != nil {
		return nil, stats, err
	}

	var img image.Image = fb
	if cfg.Supersample > 1 {
		logger.Printf("Downsampling %dx%d -> %dx%d\n", fb.Width, fb.Height, cfg.Width, cfg.Height)
		img = imageio.Downsample(fb, cfg.Width, cfg.Height)
	}
	return img, stats, nil
}

func run(ctx context.Context, args []string, out io.Writer) error {
	opts, err := parseFlags(args, out)
	if err != nil {
		return err
	}
	if opts.list {
		printScenes(out)
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	logger := renderer.NewDefaultLogger()
	logger.Printf("Starting Path Tracer...\n")

	s, err := createScene(&cfg)
	if err != nil {
		return err
	}
	logger.Printf("Using %s scene (%d objects)...\n", cfg.Scene, s.GetPrimitiveCount())

	outputPath := cfg.OutputPath(time.Now())
	if err := createOutputDir(outputPath); err != nil {
		return err
	}

	img, stats, err := renderImage(ctx, &cfg, s, logger)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("Samples: %d (%d per pixel), rays: %d, %.0f rays/sec\n",
		stats.TotalSamples, stats.SamplesPerPixel, stats.TotalRays, stats.RaysPerSecond())

	if err := imageio.Save(outputPath, img, cfg.EncodeOptions()); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", outputPath)
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errHelp) || errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
