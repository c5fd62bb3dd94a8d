package renderer

import (
	"math"
	"sync"

	"github.com/kjhall/pathlight/pkg/core"
)

// ImageAccumulator is a width*height grid of RGB sums with a single
// global sample count, per spec.md §4.4. Accumulate is safe for
// concurrent use so a stage's workers can all write into one shared
// accumulator rather than merging private tiles.
type ImageAccumulator struct {
	mu      sync.Mutex
	width   int
	height  int
	buffer  []core.Vec3
	samples float64
}

// NewImageAccumulator creates a zeroed accumulator for the given
// resolution.
func NewImageAccumulator(width, height int) *ImageAccumulator {
	return &ImageAccumulator{
		width:  width,
		height: height,
		buffer: make([]core.Vec3, width*height),
	}
}

// Accumulate adds c to pixel (ix, iy); out-of-bounds coordinates are
// dropped silently per spec.md §7's boundary policy.
func (a *ImageAccumulator) Accumulate(ix, iy int, c core.Vec3) {
	if ix < 0 || ix >= a.width || iy < 0 || iy >= a.height {
		return
	}
	a.mu.Lock()
	a.buffer[iy*a.width+ix] = a.buffer[iy*a.width+ix].Add(c)
	a.mu.Unlock()
}

// AddSamples increments the global sample count that Averaged divides
// by, once per path written (PathTracingRenderer) or once per
// Metropolis iteration (MCMCRenderer).
func (a *ImageAccumulator) AddSamples(n float64) {
	a.mu.Lock()
	a.samples += n
	a.mu.Unlock()
}

// Averaged returns a copy of the buffer divided by the accumulated
// sample count; a zero sample count returns the raw (zero) buffer.
func (a *ImageAccumulator) Averaged() []core.Vec3 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]core.Vec3, len(a.buffer))
	if a.samples <= 0 {
		copy(out, a.buffer)
		return out
	}
	for i, c := range a.buffer {
		out[i] = c.Multiply(1 / a.samples)
	}
	return out
}

// Width and Height report the accumulator's resolution.
func (a *ImageAccumulator) Width() int  { return a.width }
func (a *ImageAccumulator) Height() int { return a.height }

// PixelFromNormalized maps a normalized image coordinate in [0,1)^2 to
// the pixel it lands in, clamping so floor(x*width) < width exactly as
// spec.md §4.4 requires, and reports whether the coordinate is finite
// and in range.
func PixelFromNormalized(x, y float64, width, height int) (ix, iy int, ok bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return 0, 0, false
	}
	if x < 0 || x >= 1 || y < 0 || y >= 1 {
		return 0, 0, false
	}
	ix = int(x * float64(width))
	iy = int(y * float64(height))
	if ix >= width {
		ix = width - 1
	}
	if iy >= height {
		iy = height - 1
	}
	return ix, iy, true
}
