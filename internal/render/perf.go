package render

import (
	"sync/atomic"
	"time"
)

// PerfMonitor tracks frame timing for the window loop. All counters are
// atomic so the sketch goroutine can read statistics while the window
// goroutine records frames.
type PerfMonitor struct {
	totalFrames   atomic.Int64
	windowFrames  atomic.Int64
	lastFPS       atomic.Int64 // FPS * 1000 for precision
	lastFrameTime atomic.Int64 // nanoseconds
	maxFrameTime  atomic.Int64 // nanoseconds
	frameStart    atomic.Int64 // Unix nano of the in-flight frame
	windowStart   atomic.Int64 // Unix nano of the FPS window
	updatePeriod  time.Duration
}

// NewPerfMonitor creates a PerfMonitor recalculating FPS once per second.
func NewPerfMonitor() *PerfMonitor {
	pm := &PerfMonitor{updatePeriod: time.Second}
	pm.windowStart.Store(time.Now().UnixNano())
	return pm
}

// FrameStart marks the beginning of a frame.
func (pm *PerfMonitor) FrameStart() {
	pm.frameStart.Store(time.Now().UnixNano())
}

// FrameEnd records the completed frame and refreshes the FPS estimate
// when the measurement window has elapsed.
func (pm *PerfMonitor) FrameEnd() {
	now := time.Now().UnixNano()
	frameNanos := now - pm.frameStart.Load()

	pm.totalFrames.Add(1)
	pm.windowFrames.Add(1)
	pm.lastFrameTime.Store(frameNanos)
	for {
		currentMax := pm.maxFrameTime.Load()
		if frameNanos <= currentMax || pm.maxFrameTime.CompareAndSwap(currentMax, frameNanos) {
			break
		}
	}

	windowStart := pm.windowStart.Load()
	elapsed := time.Duration(now - windowStart)
	if elapsed >= pm.updatePeriod {
		if pm.windowStart.CompareAndSwap(windowStart, now) {
			frames := pm.windowFrames.Swap(0)
			if elapsed > 0 {
				fps := float64(frames) / elapsed.Seconds()
				pm.lastFPS.Store(int64(fps * 1000))
			}
		}
	}
}

// FPS returns the most recent frames-per-second estimate.
func (pm *PerfMonitor) FPS() float64 {
	return float64(pm.lastFPS.Load()) / 1000.0
}

// LastFrameTime returns the duration of the last recorded frame.
func (pm *PerfMonitor) LastFrameTime() time.Duration {
	return time.Duration(pm.lastFrameTime.Load())
}

// MaxFrameTime returns the longest frame recorded since the last reset.
func (pm *PerfMonitor) MaxFrameTime() time.Duration {
	return time.Duration(pm.maxFrameTime.Load())
}

// FrameCount returns the total number of frames recorded.
func (pm *PerfMonitor) FrameCount() int64 {
	return pm.totalFrames.Load()
}

// Reset clears all statistics.
func (pm *PerfMonitor) Reset() {
	pm.totalFrames.Store(0)
	pm.windowFrames.Store(0)
	pm.lastFPS.Store(0)
	pm.lastFrameTime.Store(0)
	pm.maxFrameTime.Store(0)
	pm.windowStart.Store(time.Now().UnixNano())
}
