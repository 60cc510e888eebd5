package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels  int           // Total number of pixels rendered
	TotalSamples int           // Total number of camera rays traced
	Tiles        int           // Number of tiles rendered
	Workers      int           // Number of parallel workers
	Duration     time.Duration // Wall time of the whole render
	NonFinite    int           // Pixels whose estimate contains NaN or Inf
}

// add accumulates the per-tile counters of other into stats
func (stats *RenderStats) add(other RenderStats) {
	stats.TotalPixels += other.TotalPixels
	stats.TotalSamples += other.TotalSamples
	stats.Tiles += other.Tiles
	stats.NonFinite += other.NonFinite
}

// AverageSamples returns the average number of samples per pixel
func (stats RenderStats) AverageSamples() float64 {
	if stats.TotalPixels == 0 {
		return 0
	}
	return float64(stats.TotalSamples) / float64(stats.TotalPixels)
}
