package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// renderers holds one sync.Pool per option set. A TermRenderer must not be
// used by two goroutines at once, so renderers are checked out and returned
// rather than shared.
type renderers struct {
	mu    sync.Mutex
	pools map[string]*sync.Pool
}

var shared = &renderers{pools: make(map[string]*sync.Pool)}

func (r *renderers) pool(opts Options) *sync.Pool {
	key := opts.key()

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.pools[key]
	if !ok {
		p = &sync.Pool{}
		r.pools[key] = p
	}
	return p
}

// acquire returns an idle renderer for opts or builds a new one.
func (r *renderers) acquire(opts Options) (*glamour.TermRenderer, error) {
	if tr, ok := r.pool(opts).Get().(*glamour.TermRenderer); ok {
		return tr, nil
	}
	return newRenderer(opts)
}

func (r *renderers) release(opts Options, tr *glamour.TermRenderer) {
	if tr == nil {
		return
	}
	r.pool(opts).Put(tr)
}

func (r *renderers) reset() {
	r.mu.Lock()
	r.pools = make(map[string]*sync.Pool)
	r.mu.Unlock()
}

func (r *renderers) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pools)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	return glamour.NewTermRenderer(opts.termRendererOptions()...)
}

// ClearCache drops every pooled renderer.
func ClearCache() {
	shared.reset()
}

// CacheSize returns the number of distinct option sets seen so far.
func CacheSize() int {
	return shared.size()
}
