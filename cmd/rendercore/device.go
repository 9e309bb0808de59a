package main

import (
	"fmt"
	"image"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/screenshot"
)

// canvasDevice adapts a painted *image.NRGBA to screenshot.GPUDevice so the
// screenshot engine's readback pipeline (row-stride padding, MapAsync
// handshake, encoder dispatch) runs unmodified against rendercore's
// software rasterizer instead of a real GPU texture. A host embedding this
// engine against wgpu or Metal would replace this file only.
type canvasDevice struct {
	queue *canvasQueue
}

func newCanvasDevice(canvas *image.NRGBA) *canvasDevice {
	return &canvasDevice{queue: &canvasQueue{canvas: canvas}}
}

func (d *canvasDevice) Queue() screenshot.GPUQueue { return d.queue }

func (d *canvasDevice) CreateMappableBuffer(size int) screenshot.MappedBuffer {
	return &canvasMappedBuffer{data: make([]byte, size)}
}

type canvasQueue struct {
	canvas *image.NRGBA
}

func (q *canvasQueue) CopyTextureToBuffer(region common.IntRect, rowStride int, dst screenshot.MappedBuffer) error {
	buf, ok := dst.(*canvasMappedBuffer)
	if !ok {
		return fmt.Errorf("rendercore: unexpected buffer type %T", dst)
	}
	rowBytes := region.Width * 4
	for y := 0; y < region.Height; y++ {
		srcY := region.Y + y
		srcStart := q.canvas.PixOffset(region.X, srcY)
		dstStart := y * rowStride
		copy(buf.data[dstStart:dstStart+rowBytes], q.canvas.Pix[srcStart:srcStart+rowBytes])
	}
	return nil
}

type canvasMappedBuffer struct {
	data []byte
}

func (b *canvasMappedBuffer) MapAsync(done chan<- error) { done <- nil }
func (b *canvasMappedBuffer) Read() []byte               { return b.data }
func (b *canvasMappedBuffer) Unmap()                     {}
