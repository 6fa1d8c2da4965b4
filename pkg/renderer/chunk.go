package renderer

// chunk is a contiguous run of whole pixels owned by exactly one worker
type chunk struct {
	index      int    // Position in the partition, also the worker number
	firstPixel int    // Absolute row-major index of the first pixel
	pix        []byte // Sub-slice of the image buffer
}

// pixels returns the number of pixels in the chunk
func (c chunk) pixels() int {
	return len(c.pix) / bytesPerPixel
}

// partition splits pix into at most workers non-overlapping chunks of
// ceil(total/workers) pixels each; the last chunk may be shorter
func partition(pix []byte, workers int) []chunk {
	totalPixels := len(pix) / bytesPerPixel
	if totalPixels == 0 || workers <= 0 {
		return nil
	}

	pixelsPerChunk := (totalPixels + workers - 1) / workers
	chunkBytes := pixelsPerChunk * bytesPerPixel

	chunks := make([]chunk, 0, workers)
	for start := 0; start < len(pix); start += chunkBytes {
		end := min(start+chunkBytes, len(pix))
		chunks = append(chunks, chunk{
			index:      len(chunks),
			firstPixel: start / bytesPerPixel,
			pix:        pix[start:end:end],
		})
	}
	return chunks
}
