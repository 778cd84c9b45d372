// Package event is the in-process dispatcher behind the catalog's write
// notifications. Services fire product.created/updated/deleted after a
// successful write; listeners (cache invalidation, registered at boot)
// react synchronously so a subsequent read never sees a stale cache.
package event

import "sync"

// Handler receives the payload an event was fired with. Catalog write
// events carry the product id hex string.
type Handler func(payload interface{})

var (
	mu        sync.RWMutex
	listeners = map[string][]Handler{}
)

// Listen registers handler for name. Registration order is delivery order.
func Listen(name string, handler Handler) {
	mu.Lock()
	defer mu.Unlock()
	listeners[name] = append(listeners[name], handler)
}

// Fire delivers the event to every listener, synchronously, in
// registration order. The listener slice is copied under the lock so a
// handler may itself call Listen without deadlocking.
func Fire(name string, payload interface{}) {
	for _, h := range snapshot(name) {
		h(payload)
	}
}

// FireAsync delivers the event with one goroutine per listener and
// returns immediately. Used for listeners that may block on IO.
func FireAsync(name string, payload interface{}) {
	for _, h := range snapshot(name) {
		go h(payload)
	}
}

// Flush drops every registered listener. Tests call this between cases.
func Flush() {
	mu.Lock()
	defer mu.Unlock()
	listeners = map[string][]Handler{}
}

func snapshot(name string) []Handler {
	mu.RLock()
	defer mu.RUnlock()
	hs := make([]Handler, len(listeners[name]))
	copy(hs, listeners[name])
	return hs
}
