package viewer

// barrier counts distinct completions and fires once all have arrived.
type barrier struct {
	done  []bool
	count int
	fired bool
}

func newBarrier(n int) *barrier {
	return &barrier{done: make([]bool, n)}
}

// mark records completion i. It returns true exactly once, on the call
// that completes the set. Repeated or out-of-range indices are ignored.
func (b *barrier) mark(i int) bool {
	if i < 0 || i >= len(b.done) || b.done[i] {
		return false
	}
	b.done[i] = true
	b.count++
	if b.count < len(b.done) || b.fired {
		return false
	}
	b.fired = true
	return true
}

func (b *barrier) complete() bool { return b.fired }
