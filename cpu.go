package mandel

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gogpu/mandel/internal/parallel"
)

// CPUDeviceName is the registry name of the host-parallel device.
const CPUDeviceName = "cpu"

func init() {
	RegisterDevice(CPUDeviceName, func() Device { return NewCPUDevice(0) })
}

// CPUDevice evaluates pixels on host threads, one 64x64 tile per work item.
//
// It is a complete device in its own right and is only used when selected
// by name. It is never substituted for a device that failed to open.
type CPUDevice struct {
	mu      sync.Mutex
	workers int
	pool    *parallel.WorkerPool
	log     *slog.Logger
}

// NewCPUDevice returns an uninitialized CPU device with the given number of
// workers. Zero or negative means GOMAXPROCS.
func NewCPUDevice(workers int) *CPUDevice {
	return &CPUDevice{workers: workers, log: Logger()}
}

// Name returns "cpu".
func (d *CPUDevice) Name() string { return CPUDeviceName }

// Init starts the worker pool.
func (d *CPUDevice) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool == nil {
		d.pool = parallel.NewWorkerPool(d.workers)
	}
	d.log.Debug("cpu device ready", "workers", d.pool.Workers())
	return nil
}

// Close stops the worker pool. The device may be initialized again.
func (d *CPUDevice) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool != nil {
		d.pool.Close()
		d.pool = nil
	}
}

// SetLogger replaces the device logger.
func (d *CPUDevice) SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	d.mu.Lock()
	d.log = l
	d.mu.Unlock()
}

// Workers returns the worker count, or 0 before Init.
func (d *CPUDevice) Workers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool == nil {
		return 0
	}
	return d.pool.Workers()
}

// Render evaluates every pixel of dst. Tiles are disjoint, so workers
// write into dst without further locking.
func (d *CPUDevice) Render(p RenderParameters, dst *Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pool == nil {
		d.pool = parallel.NewWorkerPool(d.workers)
	}

	start := time.Now()
	tiles := parallel.SplitTiles(dst.Width(), dst.Height(), parallel.TileWidth, parallel.TileHeight)
	d.pool.ForEachTile(tiles, func(t parallel.Tile) {
		for y := t.Y0; y < t.Y1; y++ {
			for x := t.X0; x < t.X1; x++ {
				dst.SetPixel(x, y, p.PixelColor(x, y))
			}
		}
	})
	d.log.Debug("cpu frame",
		"width", dst.Width(), "height", dst.Height(),
		"tiles", len(tiles), "iterations", p.MaxIterations,
		"elapsed", time.Since(start))
	return nil
}
