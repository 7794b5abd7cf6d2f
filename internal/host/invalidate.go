package host

// Invalidator receives redraw requests. Requests are idempotent and may be
// coalesced by the implementation.
type Invalidator interface {
	Invalidate()
}

// InvalidateFunc adapts a plain function to Invalidator.
type InvalidateFunc func()

func (f InvalidateFunc) Invalidate() {
	if f != nil {
		f()
	}
}

// RedrawFlag coalesces any number of requests into one pending redraw.
type RedrawFlag struct {
	pending bool
	count   int
}

func (r *RedrawFlag) Invalidate() {
	r.pending = true
	r.count++
}

// Take reports whether a redraw was requested since the last call and clears it.
func (r *RedrawFlag) Take() bool {
	p := r.pending
	r.pending = false
	return p
}

// Requests returns the total number of requests seen, coalesced or not.
func (r *RedrawFlag) Requests() int {
	return r.count
}
