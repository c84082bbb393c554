package texmat

import (
	"errors"
	"fmt"
	"sync"
)

// Common errors returned by texmat operations.
var (
	// ErrNoProvider is returned when a construction is attempted before
	// a ContextProvider has been registered.
	ErrNoProvider = errors.New("texmat: no context provider registered")

	// ErrNoContext is returned when the registered provider could not
	// supply a graphics context.
	ErrNoContext = errors.New("texmat: graphics context unavailable")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("texmat: invalid dimensions")

	// ErrTextureCreationFailed is returned when the backend rejects a
	// texture construction.
	ErrTextureCreationFailed = errors.New("texmat: texture creation failed")
)

// Context is what texmat needs from the active graphics backend.
//
// A Context is typically backed by the host compositor's wgpu device (see
// the wgputex sub-package). texmat acquires the context from the registered
// ContextProvider once and keeps it for the process lifetime.
type Context interface {
	// SupportsNPOT reports whether the context can create textures with
	// non-power-of-two dimensions without padding or slicing.
	SupportsNPOT() bool

	// MaxTextureDimension returns the largest supported texture extent
	// in either axis, or 0 if unknown.
	MaxTextureDimension() uint32

	// NewTexture2D creates a 2D texture bound to this context.
	// data may be nil for an uninitialized texture; otherwise it holds
	// rows of rowstride bytes each. This is the modern construction
	// entry point and reports failures as explicit errors.
	NewTexture2D(width, height int, format PixelFormat, rowstride int, data []byte) (Texture, error)

	// NewSlicedTexture creates a texture through the legacy flags-based
	// entry point, honoring the format/internal-format pair. Contexts
	// without NPOT support may split or pad the storage unless
	// FlagNoSlicing is set.
	NewSlicedTexture(width, height int, flags TextureFlags, format, internalFormat PixelFormat, rowstride int, data []byte) (Texture, error)
}

// ContextProvider is the host-side source of the active graphics context,
// usually the windowing backend.
type ContextProvider interface {
	// GraphicsContext returns the active graphics context.
	GraphicsContext() (Context, error)
}

// ContextProviderFunc adapts a function to the ContextProvider interface.
type ContextProviderFunc func() (Context, error)

// GraphicsContext calls f.
func (f ContextProviderFunc) GraphicsContext() (Context, error) { return f() }

// contextState holds the process-wide context cache. Acquisition is
// retried until a context is obtained; from then on the context and its
// capability flag are fixed, even if the host's context changes later.
type contextState struct {
	mu       sync.Mutex
	provider ContextProvider
	ctx      Context
	npot     bool
}

var ctxState contextState

// SetContextProvider registers the source of the graphics context.
// It must be called before the first construction operation. Calling it
// after the context has already been acquired has no effect beyond a
// warning: the acquired context stays memoized for the process lifetime.
func SetContextProvider(p ContextProvider) {
	ctxState.mu.Lock()
	defer ctxState.mu.Unlock()
	if ctxState.ctx != nil {
		Logger().Warn("texmat: context provider replaced after context acquisition; ignored")
		return
	}
	ctxState.provider = p
}

// acquire returns the cached graphics context, obtaining it from the
// registered provider on first success. Failed acquisitions are not
// cached; the next call retries.
func (s *contextState) acquire() (Context, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctx != nil {
		return s.ctx, s.npot, nil
	}
	if s.provider == nil {
		return nil, false, ErrNoProvider
	}

	ctx, err := s.provider.GraphicsContext()
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrNoContext, err)
	}
	if ctx == nil {
		return nil, false, ErrNoContext
	}

	s.ctx = ctx
	s.npot = ctx.SupportsNPOT()
	Logger().Info("texmat: graphics context acquired", "npot", s.npot)
	return s.ctx, s.npot, nil
}

// activeContext returns the memoized graphics context, acquiring it from
// the registered provider on first use.
func activeContext() (Context, error) {
	ctx, _, err := ctxState.acquire()
	return ctx, err
}

// supportsNPOT reports the memoized capability flag, acquiring the context
// on first use. Returns false if no context could be acquired.
func supportsNPOT() bool {
	_, npot, err := ctxState.acquire()
	return err == nil && npot
}
