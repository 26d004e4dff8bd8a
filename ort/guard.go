package ort

// Release-once wrappers around native handles that must be explicitly
// freed. Each guarded handle kind has its own guard tied to the one correct
// native release function; constructing a guard takes ownership, release
// nulls the handle so a second call is a no-op rather than a double-free.
// Guards are used with defer so handles are freed on every exit path.

type sessionOptionsGuard struct {
	handle uintptr
}

func newSessionOptionsGuard(handle uintptr) *sessionOptionsGuard {
	return &sessionOptionsGuard{handle: handle}
}

func (g *sessionOptionsGuard) release() {
	if g.handle == 0 {
		return
	}
	if releaseSessionOptionsFunc != nil {
		releaseSessionOptionsFunc(g.handle)
	}
	g.handle = 0
}

type typeInfoGuard struct {
	handle uintptr
}

func newTypeInfoGuard(handle uintptr) *typeInfoGuard {
	return &typeInfoGuard{handle: handle}
}

func (g *typeInfoGuard) release() {
	if g.handle == 0 {
		return
	}
	if releaseTypeInfoFunc != nil {
		releaseTypeInfoFunc(g.handle)
	}
	g.handle = 0
}

type shapeInfoGuard struct {
	handle uintptr
}

func newShapeInfoGuard(handle uintptr) *shapeInfoGuard {
	return &shapeInfoGuard{handle: handle}
}

func (g *shapeInfoGuard) release() {
	if g.handle == 0 {
		return
	}
	if releaseTensorTypeAndShapeInfoFunc != nil {
		releaseTensorTypeAndShapeInfoFunc(g.handle)
	}
	g.handle = 0
}

type memoryInfoGuard struct {
	handle uintptr
}

func newMemoryInfoGuard(handle uintptr) *memoryInfoGuard {
	return &memoryInfoGuard{handle: handle}
}

func (g *memoryInfoGuard) release() {
	if g.handle == 0 {
		return
	}
	if releaseMemoryInfoFunc != nil {
		releaseMemoryInfoFunc(g.handle)
	}
	g.handle = 0
}

// valueGuard wraps one native output-value handle. Unlike the scoped guards
// above it outlives the acquiring call: a DynamicOutput keeps it alive for
// as long as views into the value's memory may exist.
type valueGuard struct {
	handle uintptr
}

func newValueGuard(handle uintptr) *valueGuard {
	return &valueGuard{handle: handle}
}

func (g *valueGuard) release() {
	if g.handle == 0 {
		return
	}
	if releaseValueFunc != nil {
		releaseValueFunc(g.handle)
	}
	g.handle = 0
}
