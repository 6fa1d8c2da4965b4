package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/df07/go-montecarlo-raytracer/pkg/geometry"
	"github.com/df07/go-montecarlo-raytracer/pkg/imagesink"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
	"github.com/df07/go-montecarlo-raytracer/pkg/scene"
)

var (
	sceneName      = flag.String("scene", "default", "Built-in scene ID, discovered scene ID, or path to a .yaml scene")
	configFile     = flag.String("config", "", "YAML scene file to render; overrides -scene")
	width          = flag.Int("width", 0, "Image width in pixels (0 = scene default)")
	aspect         = flag.Float64("aspect", 0, "Aspect ratio width/height (0 = scene default)")
	spp            = flag.Int("spp", 0, "Samples per pixel (0 = scene default)")
	depth          = flag.Int("depth", 0, "Maximum bounce depth (0 = scene default)")
	workers        = flag.Int("workers", 0, "Worker count (0 = scene default, then one per CPU)")
	seed           = flag.Int64("seed", 0, "Random seed (0 = scene default, then entropy)")
	integratorName = flag.String("integrator", "", "Radiance estimator: path or normals (empty = scene default)")
	output         = flag.String("output", "", "Output path or gs://bucket/object (.png, .bmp, .tiff, .ppm)")
	traceFile      = flag.String("trace_file", "", "Write OpenTelemetry spans to this file")
	list           = flag.Bool("list", false, "List available scenes and exit")
)

// overrides holds command-line values that replace a scene's defaults when non-zero
type overrides struct {
	width      int
	aspect     float64
	spp        int
	depth      int
	workers    int
	seed       int64
	integrator string
}

// options is everything main reads from the command line
type options struct {
	list      bool
	traceFile string
	scene     string
	output    string
	overrides overrides
}

func main() {
	flag.Parse()

	name := *sceneName
	if *configFile != "" {
		name = *configFile
	}

	os.Exit(realMain(context.Background(), options{
		list:      *list,
		traceFile: *traceFile,
		scene:     name,
		output:    *output,
		overrides: overrides{
			width:      *width,
			aspect:     *aspect,
			spp:        *spp,
			depth:      *depth,
			workers:    *workers,
			seed:       *seed,
			integrator: *integratorName,
		},
	}))
}

// realMain returns the process exit code. Deferred cleanup (span export, log
// flush) runs before main exits, on failure as well as success.
func realMain(ctx context.Context, opts options) int {
	defer glog.Flush()

	if opts.list {
		if err := listScenes(os.Stdout); err != nil {
			glog.Errorf("Error listing scenes: %v", err)
			return 1
		}
		return 0
	}

	if opts.traceFile != "" {
		shutdown, err := setupTracing(opts.traceFile)
		if err != nil {
			glog.Errorf("Error setting up tracing: %v", err)
			return 1
		}
		defer shutdown(ctx)
	}

	if err := run(ctx, opts.scene, opts.overrides, opts.output); err != nil {
		glog.Errorf("Error: %v", err)
		return 1
	}
	return 0
}

func run(ctx context.Context, name string, o overrides, output string) error {
	s, err := createScene(name, o)
	if err != nil {
		return err
	}

	integ, err := integrator.New(chooseIntegrator(s, o))
	if err != nil {
		return err
	}

	r, err := renderer.New(s, integ, resolveSettings(s, o))
	if err != nil {
		return err
	}

	img, stats, err := r.Render(ctx)
	if err != nil {
		return fmt.Errorf("while rendering %s: %w", name, err)
	}
	fmt.Printf("Render completed: %v\n", stats)

	if output == "" {
		output = defaultOutputPath(name, time.Now())
	}
	if err := imagesink.Save(ctx, output, img); err != nil {
		return err
	}

	fmt.Printf("Render saved as %s\n", output)
	return nil
}

// createScene resolves the scene and applies an aspect override to its camera
func createScene(name string, o overrides) (*scene.Scene, error) {
	if name == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if o.aspect > 0 {
		return scene.Lookup(name, geometry.CameraConfig{AspectRatio: o.aspect})
	}
	return scene.Lookup(name)
}

func chooseIntegrator(s *scene.Scene, o overrides) integrator.Type {
	if o.integrator != "" {
		return integrator.Type(o.integrator)
	}
	return s.Integrator
}

// resolveSettings starts from the scene's sampling defaults and applies overrides
func resolveSettings(s *scene.Scene, o overrides) renderer.Settings {
	settings := renderer.Settings{
		ImageWidth:      s.SamplingConfig.Width,
		AspectRatio:     s.SamplingConfig.AspectRatio,
		SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
		MaxDepth:        s.SamplingConfig.MaxDepth,
		NumWorkers:      s.SamplingConfig.NumWorkers,
		Seed:            s.SamplingConfig.Seed,
	}

	if o.width > 0 {
		settings.ImageWidth = o.width
	}
	if o.aspect > 0 {
		settings.AspectRatio = o.aspect
	}
	if o.spp > 0 {
		settings.SamplesPerPixel = o.spp
	}
	if o.depth > 0 {
		settings.MaxDepth = o.depth
	}
	if o.workers > 0 {
		settings.NumWorkers = o.workers
	}
	if o.seed != 0 {
		settings.Seed = o.seed
	}
	return settings
}

// sceneSlug turns a scene ID or file path into a directory name
func sceneSlug(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.png
func defaultOutputPath(name string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join("output", sceneSlug(name), fmt.Sprintf("render_%s.png", timestamp))
}

func listScenes(w io.Writer) error {
	response, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			fmt.Fprintf(w, "  %-16s %s\n", info.ID, info.Description)
		}
	}
	return nil
}

// setupTracing installs a global tracer provider that exports spans to path
func setupTracing(path string) (func(context.Context), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("while creating trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(f), stdouttrace.WithPrettyPrint())
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("while creating trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(tp)

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			glog.Errorf("Error flushing spans: %v", err)
		}
		if err := f.Close(); err != nil {
			glog.Errorf("Error closing trace file: %v", err)
		}
	}, nil
}
