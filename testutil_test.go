package texmat

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gogpu/gputypes"
)

// fakeTexture records the parameters it was created with.
type fakeTexture struct {
	width, height  int
	format         PixelFormat
	internalFormat PixelFormat
	flags          TextureFlags
	data           []byte
	sliced         bool
	destroyed      bool
}

func (f *fakeTexture) Width() int  { return f.width }
func (f *fakeTexture) Height() int { return f.height }
func (f *fakeTexture) Format() gputypes.TextureFormat {
	return f.format.DeviceFormat()
}
func (f *fakeTexture) UpdateData(data []byte) error { f.data = data; return nil }
func (f *fakeTexture) Destroy()                     { f.destroyed = true }

// fakeContext counts construction calls and can be told to fail.
type fakeContext struct {
	npot    bool
	maxDim  uint32
	fail    error
	tex2d   int
	sliced  int
	lastTex *fakeTexture
}

func (f *fakeContext) SupportsNPOT() bool          { return f.npot }
func (f *fakeContext) MaxTextureDimension() uint32 { return f.maxDim }

func (f *fakeContext) NewTexture2D(width, height int, format PixelFormat, rowstride int, data []byte) (Texture, error) {
	f.tex2d++
	if f.fail != nil {
		return nil, f.fail
	}
	f.lastTex = &fakeTexture{width: width, height: height, format: format, data: data}
	return f.lastTex, nil
}

func (f *fakeContext) NewSlicedTexture(width, height int, flags TextureFlags, format, internalFormat PixelFormat, rowstride int, data []byte) (Texture, error) {
	f.sliced++
	if f.fail != nil {
		return nil, f.fail
	}
	f.lastTex = &fakeTexture{
		width: width, height: height,
		format: format, internalFormat: internalFormat,
		flags: flags, data: data, sliced: true,
	}
	return f.lastTex, nil
}

// useContext registers a provider yielding ctx.
func useContext(ctx Context) {
	SetContextProvider(ContextProviderFunc(func() (Context, error) {
		return ctx, nil
	}))
}

// recordingHandler captures log records for assertions.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordingHandler) messages() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	msgs := make([]string, len(h.records))
	for i, r := range h.records {
		msgs[i] = r.Message
	}
	return msgs
}

func (h *recordingHandler) hasLevel(level slog.Level) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, r := range h.records {
		if r.Level == level {
			return true
		}
	}
	return false
}
