package util

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Clamp restricts a value to be between min and max
func Clamp[T cmp.Ordered](value, min, max T) T {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// FileExists checks if a file exists and is not a directory
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists checks if a directory exists
func DirExists(dirname string) bool {
	info, err := os.Stat(dirname)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// CreateDirIfNotExist creates a directory if it doesn't exist
func CreateDirIfNotExist(dir string) error {
	if DirExists(dir) {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

// FramePath returns dir/prefix-NNNN.png for frame n
func FramePath(dir, prefix string, n int) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%04d.png", prefix, n))
}

// Mean returns the arithmetic mean of data, or 0 when empty
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range data {
		sum += v
	}
	return sum / float64(len(data))
}

// CalculateMedian calculates the median value of a slice
func CalculateMedian(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	middle := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[middle-1] + sorted[middle]) / 2
	}
	return sorted[middle]
}

// LumaStats summarizes the luminance of an image in [0,1]
type LumaStats struct {
	Mean   float64
	Median float64
}

// Luma computes luminance statistics of img
func Luma(img image.Image) LumaStats {
	b := img.Bounds()
	lumas := make([]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			lumas = append(lumas, float64(g.Y)/255)
		}
	}
	return LumaStats{Mean: Mean(lumas), Median: CalculateMedian(lumas)}
}

// FrameTimer keeps a rolling average of frame durations
type FrameTimer struct {
	window  []time.Duration
	next    int
	filled  bool
	last    time.Time
	started bool
}

// NewFrameTimer averages over the most recent size frames
func NewFrameTimer(size int) *FrameTimer {
	if size < 1 {
		size = 1
	}
	return &FrameTimer{window: make([]time.Duration, size)}
}

// Mark records a frame boundary at now
func (f *FrameTimer) Mark(now time.Time) {
	if f.started {
		f.window[f.next] = now.Sub(f.last)
		f.next++
		if f.next == len(f.window) {
			f.next = 0
			f.filled = true
		}
	}
	f.last = now
	f.started = true
}

// Average returns the mean frame duration over the window
func (f *FrameTimer) Average() time.Duration {
	n := f.next
	if f.filled {
		n = len(f.window)
	}
	if n == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range f.window[:n] {
		sum += d
	}
	return sum / time.Duration(n)
}

// FPS returns frames per second from the average frame duration
func (f *FrameTimer) FPS() float64 {
	avg := f.Average()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// TimeTrack returns how long has passed since start, for deferred logging:
// defer func() { log.Debugf("pass took %s", TimeTrack(time.Now())) }()
func TimeTrack(start time.Time) time.Duration {
	return time.Since(start)
}
