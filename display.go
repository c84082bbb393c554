package texmat

import "sync"

// ScreenProvider reports the pixel dimensions of the default screen.
// It is typically backed by the windowing library (see display/glfwscreen).
type ScreenProvider interface {
	// ScreenSize returns the default screen's width and height in
	// pixels. A 0x0 result means the size is not (yet) known.
	ScreenSize() (width, height int)
}

// ScreenProviderFunc adapts a function to the ScreenProvider interface.
type ScreenProviderFunc func() (width, height int)

// ScreenSize calls f.
func (f ScreenProviderFunc) ScreenSize() (int, int) { return f() }

// screenState caches the screen dimensions. The provider is queried until
// it reports a non-zero size; that size is then fixed for the process
// lifetime and never invalidated, not even on display reconfiguration.
type screenState struct {
	mu       sync.Mutex
	provider ScreenProvider
	width    int
	height   int
}

var scrState screenState

// SetScreenProvider registers the source of the default screen dimensions.
// Without a registered provider, dimension clamping is disabled.
func SetScreenProvider(p ScreenProvider) {
	scrState.mu.Lock()
	defer scrState.mu.Unlock()
	if scrState.width != 0 {
		Logger().Warn("texmat: screen provider replaced after size was cached; ignored")
		return
	}
	scrState.provider = p
}

// size returns the cached screen dimensions, querying the provider on
// first use. Returns 0x0 while no provider has reported a usable size.
func (s *screenState) size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.width == 0 && s.provider != nil {
		w, h := s.provider.ScreenSize()
		if w > 0 && h > 0 {
			s.width, s.height = w, h
			Logger().Info("texmat: screen size cached", "width", w, "height", h)
		}
	}
	return s.width, s.height
}

// clampToScreen reduces the requested dimensions to at most twice the
// cached screen size in each axis. Values at or below the bound pass
// through unchanged; with no known screen size, no clamping occurs.
// The clamp is idempotent and monotonic.
func clampToScreen(width, height int) (int, int) {
	sw, sh := scrState.size()
	if sw == 0 {
		return width, height
	}
	return min(width, sw*2), min(height, sh*2)
}
