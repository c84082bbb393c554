package texmat

import "sync"

// resetForTest clears all process-wide caches so each test starts from an
// unconfigured state. Tests touching these caches must not run in parallel.
func resetForTest() {
	ctxState = contextState{}
	scrState = screenState{}
	strategyOnce = sync.Once{}
	strategy = nil
	materialTemplate.m = nil
	SetLogger(nil)
}
