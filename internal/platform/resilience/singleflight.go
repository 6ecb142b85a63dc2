package resilience

import "sync"

// SingleFlight runs at most one fn per key at a time. Callers arriving while a
// call is in flight wait for it and share its result.
type SingleFlight[T any] struct {
	mu       sync.Mutex
	inFlight map[string]*flightCall[T]
}

type flightCall[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Do returns shared=true when the result came from another caller's run.
func (g *SingleFlight[T]) Do(key string, fn func() (T, error)) (T, error, bool) {
	g.mu.Lock()
	if g.inFlight == nil {
		g.inFlight = make(map[string]*flightCall[T])
	}
	if c, ok := g.inFlight[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.value, c.err, true
	}

	c := &flightCall[T]{done: make(chan struct{})}
	g.inFlight[key] = c
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inFlight, key)
		g.mu.Unlock()
		close(c.done)
	}()

	c.value, c.err = fn()
	return c.value, c.err, false
}
