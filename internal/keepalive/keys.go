package keepalive

import (
	"errors"
	"sort"
	"sync"

	"github.com/stigoleg/noafk/internal/platform"
)

// heldKeys tracks keys that went down and have not come back up, so a key
// can never stay pressed past the end of the session.
type heldKeys struct {
	mu    sync.Mutex
	input platform.InputDispatcher
	held  map[string]struct{}
}

func newHeldKeys(input platform.InputDispatcher) *heldKeys {
	return &heldKeys{input: input, held: make(map[string]struct{})}
}

func (h *heldKeys) press(key string) error {
	if err := h.input.KeyDown(key); err != nil {
		return err
	}
	h.mu.Lock()
	h.held[key] = struct{}{}
	h.mu.Unlock()
	return nil
}

// release keeps the key tracked when KeyUp fails so ReleaseAll retries it.
func (h *heldKeys) release(key string) error {
	if err := h.input.KeyUp(key); err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.held, key)
	h.mu.Unlock()
	return nil
}

// ReleaseAll lifts every key still down.
func (h *heldKeys) ReleaseAll() error {
	var errs []error
	for _, key := range h.Held() {
		if err := h.release(key); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Held returns the keys currently down, sorted.
func (h *heldKeys) Held() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	keys := make([]string, 0, len(h.held))
	for k := range h.held {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
