package renderer

import (
	"fmt"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int           // Total number of pixels rendered
	TotalSamples   int           // Total number of camera rays traced
	Chunks         int           // Number of chunks the image was split into
	Workers        int           // Requested worker count
	MinChunkPixels int           // Smallest chunk
	MaxChunkPixels int           // Largest chunk
	Elapsed        time.Duration // Wall time of the render
}

// newRenderStats summarizes a partition before rendering starts
func newRenderStats(chunks []chunk, workers, samplesPerPixel int) RenderStats {
	stats := RenderStats{Chunks: len(chunks), Workers: workers}
	for i, c := range chunks {
		n := c.pixels()
		stats.TotalPixels += n
		if i == 0 || n < stats.MinChunkPixels {
			stats.MinChunkPixels = n
		}
		if n > stats.MaxChunkPixels {
			stats.MaxChunkPixels = n
		}
	}
	stats.TotalSamples = stats.TotalPixels * samplesPerPixel
	return stats
}

// SamplesPerSecond returns the camera-ray throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Elapsed.Seconds()
}

func (s RenderStats) String() string {
	return fmt.Sprintf("%d pixels, %d samples in %d chunks (%d-%d px) on %d workers, %v (%.0f samples/s)",
		s.TotalPixels, s.TotalSamples, s.Chunks, s.MinChunkPixels, s.MaxChunkPixels, s.Workers,
		s.Elapsed.Round(time.Millisecond), s.SamplesPerSecond())
}
