package imagesink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/golang/glog"

	"github.com/df07/go-montecarlo-raytracer/pkg/renderer"
)

const gcsScheme = "gs://"

// Sink is an open destination for one encoded image. Nothing is guaranteed
// to be persisted until Close returns nil.
type Sink interface {
	io.WriteCloser
	Name() string
}

// Open returns a sink for dest, either a local path or gs://bucket/object
func Open(ctx context.Context, dest string, format Format) (Sink, error) {
	if strings.HasPrefix(dest, gcsScheme) {
		bucket, object, err := parseGCSURL(dest)
		if err != nil {
			return nil, err
		}
		return openGCS(ctx, bucket, object, format)
	}
	return openFile(dest)
}

// Save encodes img with the format implied by dest and writes it there
func Save(ctx context.Context, dest string, img *renderer.Image) error {
	format, err := FormatFromPath(dest)
	if err != nil {
		return err
	}

	sink, err := Open(ctx, dest, format)
	if err != nil {
		return err
	}
	if err := Encode(sink, img, format); err != nil {
		sink.Close()
		return err
	}
	if err := sink.Close(); err != nil {
		return fmt.Errorf("while closing %s: %w", sink.Name(), err)
	}

	glog.Infof("wrote %dx%d %s image to %s", img.Width, img.Height, format, sink.Name())
	return nil
}

type fileSink struct {
	*os.File
}

func openFile(path string) (*fileSink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("while creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("while creating output file: %w", err)
	}
	return &fileSink{File: f}, nil
}

type gcsSink struct {
	client *storage.Client
	writer *storage.Writer
	name   string
}

func openGCS(ctx context.Context, bucket, object string, format Format) (*gcsSink, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("while creating GCS client: %w", err)
	}

	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = format.ContentType()

	return &gcsSink{
		client: client,
		writer: w,
		name:   gcsScheme + bucket + "/" + object,
	}, nil
}

func (s *gcsSink) Write(p []byte) (int, error) {
	return s.writer.Write(p)
}

// Close finishes the upload and releases the client
func (s *gcsSink) Close() error {
	err := s.writer.Close()
	if cerr := s.client.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("while finishing upload: %w", err)
	}
	return nil
}

func (s *gcsSink) Name() string {
	return s.name
}

// parseGCSURL splits gs://bucket/path/to/object
func parseGCSURL(dest string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(dest, gcsScheme)
	if !ok {
		return "", "", fmt.Errorf("not a GCS URL: %q", dest)
	}
	bucket, object, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || object == "" || strings.HasSuffix(object, "/") {
		return "", "", fmt.Errorf("GCS URL must be gs://bucket/object, got %q", dest)
	}
	return bucket, object, nil
}
