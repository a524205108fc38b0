package testutil

import (
	"sync"
	"testing"
	"time"
)

// Gate blocks callers of Wait until Open is called. It stands in for a
// processing function that stalls, so tests can fill a queue deterministically.
type Gate struct {
	once    sync.Once
	ch      chan struct{}
	entered chan struct{}
}

// NewGate creates a closed gate. entered receives one value each time a caller
// reaches Wait; size it to the number of callers you expect.
func NewGate(expectedCallers int) *Gate {
	return &Gate{
		ch:      make(chan struct{}),
		entered: make(chan struct{}, expectedCallers),
	}
}

// Wait signals arrival and blocks until the gate is opened.
func (g *Gate) Wait() {
	select {
	case g.entered <- struct{}{}:
	default:
	}
	<-g.ch
}

// Open releases every current and future caller of Wait. Safe to call more than once.
func (g *Gate) Open() {
	g.once.Do(func() { close(g.ch) })
}

// AwaitEntered blocks until n callers have reached Wait.
func (g *Gate) AwaitEntered(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-g.entered:
		case <-time.After(TestTimeout):
			t.Fatalf("only %d of %d callers reached the gate", i, n)
		}
	}
}

// CallbackTracker records invocations of a hook from any goroutine.
type CallbackTracker struct {
	mu     sync.Mutex
	count  int
	values []interface{}
}

// NewCallbackTracker creates an empty tracker.
func NewCallbackTracker() *CallbackTracker {
	return &CallbackTracker{}
}

// Mark records one call, optionally with a value.
func (c *CallbackTracker) Mark(value ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
	if len(value) > 0 {
		c.values = append(c.values, value[0])
	}
}

// CallCount returns the number of recorded calls.
func (c *CallbackTracker) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Values returns a copy of the recorded values in call order.
func (c *CallbackTracker) Values() []interface{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]interface{}, len(c.values))
	copy(out, c.values)
	return out
}

// AssertCallCount fails the test unless exactly want calls were recorded.
func (c *CallbackTracker) AssertCallCount(t *testing.T, want int) {
	t.Helper()
	if got := c.CallCount(); got != want {
		t.Fatalf("call count = %d, want %d", got, want)
	}
}
