package analytics

import (
	"sort"
	"sync"
)

// Analytics keeps the outcome of the last calls in a fixed window, overall
// and per method.
type Analytics struct {
	window int

	mutex   sync.RWMutex
	overall *ring
	methods map[string]*ring
}

type ring struct {
	success  int
	failures int
	next     int
	outcomes []bool
}

func newRing(size int) *ring {
	return &ring{outcomes: make([]bool, size)}
}

func (r *ring) total() int {
	return r.success + r.failures
}

func (r *ring) bump(success bool) {
	if r.total() >= len(r.outcomes) {
		// push the oldest outcome off
		if r.outcomes[r.next] {
			r.success--
		} else {
			r.failures--
		}
	}

	if success {
		r.success++
	} else {
		r.failures++
	}

	r.outcomes[r.next] = success
	r.next = (r.next + 1) % len(r.outcomes)
}

func (r *ring) rate() float32 {
	if r.total() != len(r.outcomes) {
		// not enough calls yet, don't let the first ones raise an alert
		return 1
	}
	return float32(r.success) / float32(r.total())
}

func NewAnalytics(window int) *Analytics {
	if window < 1 {
		window = 1
	}
	return &Analytics{
		window:  window,
		overall: newRing(window),
		methods: make(map[string]*ring),
	}
}

// GetSuccessRate returns the success rate over the window, or 1 until the
// window has filled up.
func (a *Analytics) GetSuccessRate() float32 {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	return a.overall.rate()
}

// GetMethodSuccessRate is GetSuccessRate for the calls of one method.
func (a *Analytics) GetMethodSuccessRate(method string) float32 {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	r, ok := a.methods[method]
	if !ok {
		return 1
	}
	return r.rate()
}

// Methods returns the sorted names of the methods seen so far.
func (a *Analytics) Methods() []string {
	a.mutex.RLock()
	defer a.mutex.RUnlock()
	methods := make([]string, 0, len(a.methods))
	for m := range a.methods {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

func (a *Analytics) Success() {
	a.Record("", true)
}

func (a *Analytics) Failure() {
	a.Record("", false)
}

// Record adds the outcome of one call of method. An empty method only counts
// towards the overall rate.
func (a *Analytics) Record(method string, success bool) {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	a.overall.bump(success)
	if method == "" {
		return
	}
	r, ok := a.methods[method]
	if !ok {
		r = newRing(a.window)
		a.methods[method] = r
	}
	r.bump(success)
}
