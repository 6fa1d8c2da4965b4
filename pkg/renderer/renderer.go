package renderer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/golang/glog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-montecarlo-raytracer/pkg/core"
	"github.com/df07/go-montecarlo-raytracer/pkg/integrator"
)

const tracerName = "github.com/df07/go-montecarlo-raytracer/pkg/renderer"

// Scene is what the renderer needs from a scene: geometry, sky and camera.
// Declared here to avoid importing the scene package.
type Scene interface {
	integrator.World
	GetCamera() core.Camera
}

// Renderer turns a scene into an image using a fixed pool of chunk workers
type Renderer struct {
	scene          Scene
	integrator     integrator.Integrator
	settings       Settings
	tracerProvider trace.TracerProvider
}

// Option configures a Renderer
type Option func(*Renderer)

// WithTracerProvider overrides the global OpenTelemetry tracer provider
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(r *Renderer) {
		r.tracerProvider = tp
	}
}

// New creates a renderer. The scene is shared read-only by all workers.
func New(scene Scene, integ integrator.Integrator, settings Settings, opts ...Option) (*Renderer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if scene == nil || integ == nil {
		return nil, fmt.Errorf("%w: scene and integrator are required", ErrInvalidSettings)
	}

	r := &Renderer{
		scene:          scene,
		integrator:     integ,
		settings:       settings,
		tracerProvider: otel.GetTracerProvider(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Settings returns the settings the renderer was created with
func (r *Renderer) Settings() Settings {
	return r.settings
}

// Render traces every pixel and returns the finished image. The context only
// carries tracing. A non-finite pixel estimate fails the render with
// ErrNonFiniteColor instead of writing undefined bytes.
func (r *Renderer) Render(ctx context.Context) (*Image, RenderStats, error) {
	tracer := r.tracerProvider.Tracer(tracerName)
	width, height := r.settings.ImageWidth, r.settings.ImageHeight()
	workers := r.settings.Workers()

	ctx, span := tracer.Start(ctx, "renderer.Render", trace.WithAttributes(
		attribute.Int("image.width", width),
		attribute.Int("image.height", height),
		attribute.Int("samples_per_pixel", r.settings.SamplesPerPixel),
		attribute.Int("max_depth", r.settings.MaxDepth),
		attribute.Int("workers", workers),
	))
	defer span.End()

	img := NewImage(width, height)
	chunks := partition(img.Pix, workers)
	stats := newRenderStats(chunks, workers, r.settings.SamplesPerPixel)

	baseSeed := r.settings.Seed
	if baseSeed == 0 {
		baseSeed = rand.Int63()
	}

	start := time.Now()

	var eg errgroup.Group
	for _, c := range chunks {
		c := c
		random := rand.New(rand.NewSource(baseSeed + int64(c.index)))
		eg.Go(func() error {
			return r.renderChunk(ctx, tracer, c, random)
		})
	}
	if err := eg.Wait(); err != nil {
		span.RecordError(err)
		return nil, stats, fmt.Errorf("while waiting for completion of errgroup: %w", err)
	}

	stats.Elapsed = time.Since(start)
	glog.Infof("rendered %dx%d: %v", width, height, stats)

	return img, stats, nil
}

// ErrNonFiniteColor is returned when a pixel estimate is NaN or infinite,
// which means the scene or camera is degenerate
var ErrNonFiniteColor = errors.New("non-finite pixel color")

// renderChunk fills one chunk. It owns c.pix and random exclusively.
func (r *Renderer) renderChunk(ctx context.Context, tracer trace.Tracer, c chunk, random *rand.Rand) error {
	_, span := tracer.Start(ctx, "renderer.renderChunk", trace.WithAttributes(
		attribute.Int("chunk.index", c.index),
		attribute.Int("chunk.first_pixel", c.firstPixel),
		attribute.Int("chunk.pixels", c.pixels()),
	))
	defer span.End()

	start := time.Now()
	width, height := r.settings.ImageWidth, r.settings.ImageHeight()
	camera := r.scene.GetCamera()

	for k := 0; k < c.pixels(); k++ {
		pixel := c.firstPixel + k
		row := pixel / width
		x := pixel % width
		// Row 0 is the top of the image, v grows upward
		y := height - 1 - row

		var colorAccum core.Vec3
		for s := 0; s < r.settings.SamplesPerPixel; s++ {
			u := (float64(x) + random.Float64()) / float64(width)
			v := (float64(y) + random.Float64()) / float64(height)
			ray := camera.GetRay(u, v)
			colorAccum = colorAccum.Add(r.integrator.RayColor(ray, r.scene, random, r.settings.MaxDepth))
		}

		pixelColor := colorAccum.Divide(float64(r.settings.SamplesPerPixel))
		if !pixelColor.IsFinite() {
			err := fmt.Errorf("%w at (%d, %d) in chunk %d: %v", ErrNonFiniteColor, x, row, c.index, pixelColor)
			span.RecordError(err)
			return err
		}
		writePixel(c.pix[k*bytesPerPixel:], pixelColor)
	}

	glog.V(1).Infof("chunk %d: %d pixels from %d in %v", c.index, c.pixels(), c.firstPixel, time.Since(start))
	return nil
}

// writePixel clamps to [0, 0.999], applies gamma 2.0 and stores three bytes
func writePixel(dst []byte, c core.Vec3) {
	corrected := c.Clamp(0, 0.999).Sqrt()
	dst[0] = toByte(corrected.X)
	dst[1] = toByte(corrected.Y)
	dst[2] = toByte(corrected.Z)
}

func toByte(v float64) uint8 {
	return uint8(math.Round(v * 255))
}
