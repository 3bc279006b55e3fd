package simulate

import "github.com/aretw0/automata/pkg/domain"

// Stepper replays the trace of a Result one snapshot at a time.
type Stepper struct {
	trace []Configuration
	pos   int
}

// NewStepper positions a Stepper on the initial snapshot of res.
func NewStepper(res *Result) *Stepper {
	return &Stepper{trace: res.Trace}
}

// Current returns a copy of the snapshot under the cursor.
func (s *Stepper) Current() Configuration {
	if len(s.trace) == 0 {
		return Configuration{}
	}
	return s.trace[s.pos].clone()
}

// Position returns the index of the current snapshot.
func (s *Stepper) Position() int { return s.pos }

// Len returns the number of snapshots.
func (s *Stepper) Len() int { return len(s.trace) }

// Next moves forward and reports whether it could.
func (s *Stepper) Next() bool {
	if s.pos+1 >= len(s.trace) {
		return false
	}
	s.pos++
	return true
}

// Prev moves backward and reports whether it could.
func (s *Stepper) Prev() bool {
	if s.pos == 0 {
		return false
	}
	s.pos--
	return true
}

// Reset rewinds to the initial snapshot.
func (s *Stepper) Reset() { s.pos = 0 }

// Done reports whether the cursor is on the last snapshot.
func (s *Stepper) Done() bool { return s.pos+1 >= len(s.trace) }

// Overlay describes the current snapshot for graph exporters: active states,
// every state visited so far and the transitions taken by the last step.
func (s *Stepper) Overlay() *domain.Overlay {
	if len(s.trace) == 0 {
		return &domain.Overlay{}
	}
	seen := make(map[domain.StateID]bool)
	overlay := &domain.Overlay{}
	for _, cfg := range s.trace[:s.pos] {
		for _, q := range cfg.States {
			if !seen[q] {
				seen[q] = true
				overlay.Visited = append(overlay.Visited, q)
			}
		}
	}
	cur := s.trace[s.pos]
	overlay.Current = append(overlay.Current, cur.States...)
	overlay.Taken = append(overlay.Taken, cur.Taken...)
	return overlay
}
