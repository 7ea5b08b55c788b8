package canvas

import (
	"sync"

	"github.com/wesen/tinyraster/pkg/raster"
)

type synchronized struct {
	mu  sync.Mutex
	dst raster.Canvas
}

// Synchronized wraps dst so that SetPixel may be called from several
// goroutines at once. Writes are serialized with a mutex; the order of
// writes from different goroutines is unspecified.
func Synchronized(dst raster.Canvas) raster.Canvas {
	return &synchronized{dst: dst}
}

func (s *synchronized) SetPixel(x, y int, c raster.Color) {
	s.mu.Lock()
	s.dst.SetPixel(x, y, c)
	s.mu.Unlock()
}
