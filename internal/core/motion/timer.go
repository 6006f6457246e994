package motion

// Timer counts down to zero and stays there.
type Timer struct {
	remaining float64
}

// NewTimer starts a countdown; negative intervals start elapsed.
func NewTimer(interval float64) Timer {
	return Timer{remaining: max(interval, 0)}
}

func (t *Timer) Step(dt float64) {
	if dt <= 0 {
		return
	}
	if dt < t.remaining {
		t.remaining -= dt
		return
	}
	t.remaining = 0
}

func (t Timer) Remaining() float64 { return t.remaining }

func (t Timer) IsElapsed() bool { return t.remaining <= 0 }
