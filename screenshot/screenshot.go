// Package screenshot captures a rendered scene's pixels into an encoded
// image file: region validation against the source texture, GPU
// buffer-to-CPU readback with row-stride padding removal, and PNG/JPEG/WebP
// encoding.
package screenshot

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sync"

	"github.com/chai2010/webp"
	"go.uber.org/zap"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/utils/images"
)

// ErrorKind classifies why a capture request failed.
type ErrorKind int

const (
	ErrorNone ErrorKind = iota
	ErrorInvalidRegion
	ErrorEncodingFailed
	ErrorUnsupportedFormat
	ErrorBufferMappingFailed
	ErrorChannelError
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorInvalidRegion:
		return "invalid region"
	case ErrorEncodingFailed:
		return "encoding failed"
	case ErrorUnsupportedFormat:
		return "unsupported format"
	case ErrorBufferMappingFailed:
		return "buffer mapping failed"
	case ErrorChannelError:
		return "channel error"
	default:
		return "none"
	}
}

// CaptureError wraps an ErrorKind with the underlying cause, if any.
type CaptureError struct {
	Kind ErrorKind
	Err  error
}

func (e *CaptureError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("screenshot: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("screenshot: %s", e.Kind)
}

func (e *CaptureError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, err error) *CaptureError { return &CaptureError{Kind: kind, Err: err} }

// Request describes one pending capture: the region of the source texture
// to read back, in what format to encode it, and where the result is
// delivered.
type Request struct {
	Region  common.IntRect
	Options Options
	Result  chan<- Result
}

// Result is the outcome of processing one Request.
type Result struct {
	Data []byte
	Err  error
}

// Options configures one capture's encoding.
type Options struct {
	Format  common.ScreenshotFormat
	Quality int // 0..100, clamped; meaningless for PNG
}

// WithFormat sets the screenshot's target encoder, returning Options by
// value for chaining.
func (o Options) WithFormat(f common.ScreenshotFormat) Options { o.Format = f; return o }

// WithQuality sets and clamps the JPEG/WebP quality.
func (o Options) WithQuality(q int) Options {
	if q < 0 {
		q = 0
	}
	if q > 100 {
		q = 100
	}
	o.Quality = q
	return o
}

// GPUDevice is the minimal device surface the engine needs to read back a
// texture: queue access and buffer allocation. Implementations adapt
// whatever native GPU binding the host embeds.
type GPUDevice interface {
	Queue() GPUQueue
	CreateMappableBuffer(size int) MappedBuffer
}

// GPUQueue submits the copy from a source texture region into a
// CPU-readable buffer.
type GPUQueue interface {
	CopyTextureToBuffer(region common.IntRect, rowStride int, dst MappedBuffer) error
}

// MappedBuffer is a GPU buffer mapped for CPU reads. MapAsync delivers
// readiness on done; Read returns the mapped bytes once ready, and Unmap
// releases the mapping.
type MappedBuffer interface {
	MapAsync(done chan<- error)
	Read() []byte
	Unmap()
}

// alignUp rounds n up to the next multiple of align, used to compute the
// padded row stride most GPU APIs require for buffer-backed texture copies
// (e.g. WebGPU's COPY_BYTES_PER_ROW_ALIGNMENT of 256).
func alignUp(n, align int) int {
	if align <= 0 {
		return n
	}
	rem := n % align
	if rem == 0 {
		return n
	}
	return n + (align - rem)
}

// Engine queues capture requests against a source texture and processes
// them against a GPUDevice, one at a time, guarded against re-entrant
// processing by processing.
type Engine struct {
	Device     GPUDevice
	TextureW   int
	TextureH   int
	log        *zap.Logger
	mu         sync.Mutex
	pending    []Request
	processing bool
}

// NewEngine constructs a screenshot engine reading back from a
// textureW x textureH source texture through device.
func NewEngine(device GPUDevice, textureW, textureH int, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{Device: device, TextureW: textureW, TextureH: textureH, log: log}
}

// SubmitRequest validates req.Region against the source texture bounds and
// queues it; an invalid region delivers an error on req.Result immediately
// instead of being queued.
func (e *Engine) SubmitRequest(req Request) {
	if req.Region.X < 0 || req.Region.Y < 0 ||
		req.Region.X+req.Region.Width > e.TextureW ||
		req.Region.Y+req.Region.Height > e.TextureH ||
		req.Region.Width <= 0 || req.Region.Height <= 0 {
		if req.Result != nil {
			req.Result <- Result{Err: newError(ErrorInvalidRegion, nil)}
		}
		return
	}
	e.mu.Lock()
	e.pending = append(e.pending, req)
	e.mu.Unlock()
}

// PendingRequestCount reports how many requests are queued.
func (e *Engine) PendingRequestCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.pending)
}

// ClearPendingRequests drops all queued requests without processing them,
// delivering a channel error to each so no caller blocks forever.
func (e *Engine) ClearPendingRequests() {
	e.mu.Lock()
	dropped := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, r := range dropped {
		if r.Result != nil {
			r.Result <- Result{Err: newError(ErrorChannelError, nil)}
		}
	}
}

// ProcessPendingRequests drains the queue, reading back each request's
// region and encoding it. It is idempotent under concurrent calls: only one
// goroutine's call actually processes at a time, guarded by the processing
// flag, and a call that finds processing already true returns immediately.
func (e *Engine) ProcessPendingRequests() {
	e.mu.Lock()
	if e.processing {
		e.mu.Unlock()
		return
	}
	e.processing = true
	batch := e.pending
	e.pending = nil
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.processing = false
		e.mu.Unlock()
	}()

	for _, req := range batch {
		data, err := e.processOne(req)
		if req.Result != nil {
			req.Result <- Result{Data: data, Err: err}
		}
	}
}

func (e *Engine) processOne(req Request) ([]byte, error) {
	if e.Device == nil {
		return nil, newError(ErrorBufferMappingFailed, fmt.Errorf("no device configured"))
	}

	rowBytes := req.Region.Width * 4
	stride := alignUp(rowBytes, 256)
	size := stride * req.Region.Height

	buf := e.Device.CreateMappableBuffer(size)
	if err := e.Device.Queue().CopyTextureToBuffer(req.Region, stride, buf); err != nil {
		return nil, newError(ErrorBufferMappingFailed, err)
	}

	done := make(chan error, 1)
	buf.MapAsync(done)
	if err := <-done; err != nil {
		return nil, newError(ErrorBufferMappingFailed, err)
	}
	defer buf.Unmap()

	raw := buf.Read()
	img := unpadRows(raw, req.Region.Width, req.Region.Height, stride)

	return encode(img, req.Options)
}

// unpadRows strips the trailing alignment padding from each row of a
// buffer-backed texture readback, producing a tightly packed NRGBA image.
func unpadRows(raw []byte, width, height, stride int) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, width, height))
	rowBytes := width * 4
	for y := 0; y < height; y++ {
		srcStart := y * stride
		srcEnd := srcStart + rowBytes
		if srcEnd > len(raw) {
			break
		}
		dstStart := y * out.Stride
		copy(out.Pix[dstStart:dstStart+rowBytes], raw[srcStart:srcEnd])
	}
	return out
}

func encode(img image.Image, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	switch opts.Format {
	case common.ScreenshotFormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, newError(ErrorEncodingFailed, err)
		}
	case common.ScreenshotFormatJPEG:
		data, err := images.EncodeJPEGWithDPI(img, opts.Quality, images.DpiNoUnits, 0, 0)
		if err != nil {
			return nil, newError(ErrorEncodingFailed, err)
		}
		return data, nil
	case common.ScreenshotFormatWebP:
		if err := webp.Encode(&buf, img, &webp.Options{Lossless: opts.Quality >= 100, Quality: float32(opts.Quality)}); err != nil {
			return nil, newError(ErrorEncodingFailed, err)
		}
	default:
		return nil, newError(ErrorUnsupportedFormat, nil)
	}
	return buf.Bytes(), nil
}
