package keys

// FakeHook is a test double that records registered handlers and lets tests
// fire synthetic key edges.
type FakeHook struct {
	downs map[string]func()
	ups   map[string]func()
}

// NewFakeHook creates an empty FakeHook.
func NewFakeHook() *FakeHook {
	return &FakeHook{
		downs: make(map[string]func()),
		ups:   make(map[string]func()),
	}
}

func (f *FakeHook) OnKeyDown(key string, fn func()) { f.downs[key] = fn }

func (f *FakeHook) OnKeyUp(key string, fn func()) { f.ups[key] = fn }

// Press fires the registered key-down handler, if any.
func (f *FakeHook) Press(key string) {
	if fn, ok := f.downs[key]; ok {
		fn()
	}
}

// Release fires the registered key-up handler, if any.
func (f *FakeHook) Release(key string) {
	if fn, ok := f.ups[key]; ok {
		fn()
	}
}

// Bound reports whether any handler is registered for the key.
func (f *FakeHook) Bound(key string) bool {
	_, down := f.downs[key]
	_, up := f.ups[key]
	return down || up
}
