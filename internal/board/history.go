package board

import "iter"

// History is the ordered sequence of states reached in a game. Element 0
// is the initial state and the last element is the current state. It is
// never empty.
type History struct {
	states []State
}

// NewHistory creates a history holding only the initial state.
func NewHistory(initial State) *History {
	return &History{states: []State{initial}}
}

// Push appends state as the new current element.
func (h *History) Push(s State) {
	h.states = append(h.states, s)
}

// Pop removes and returns the current state. The initial state is never
// removed: popping a history of length 1 fails with ErrEmptyHistory.
func (h *History) Pop() (State, error) {
	if len(h.states) <= 1 {
		return State{}, ErrEmptyHistory
	}
	last := h.states[len(h.states)-1]
	h.states = h.states[:len(h.states)-1]
	return last, nil
}

// Current returns the last state.
func (h *History) Current() State {
	return h.states[len(h.states)-1]
}

// Initial returns the first state.
func (h *History) Initial() State {
	return h.states[0]
}

// Len returns the number of states, including the initial one.
func (h *History) Len() int {
	return len(h.states)
}

// At returns the state at index i (0 = initial).
func (h *History) At(i int) State {
	return h.states[i]
}

// States yields the states from initial to current. Each call starts a
// fresh pass; the sequence ends at the current state as of when it is
// consumed.
func (h *History) States() iter.Seq[State] {
	return func(yield func(State) bool) {
		for i := 0; i < len(h.states); i++ {
			if !yield(h.states[i]) {
				return
			}
		}
	}
}

// All yields index/state pairs from initial to current.
func (h *History) All() iter.Seq2[int, State] {
	return func(yield func(int, State) bool) {
		for i := 0; i < len(h.states); i++ {
			if !yield(i, h.states[i]) {
				return
			}
		}
	}
}

// Repetitions counts earlier occurrences of s in the history, excluding
// the current element.
func (h *History) Repetitions(s State) int {
	count := 0
	for _, st := range h.states[:len(h.states)-1] {
		if st == s {
			count++
		}
	}
	return count
}
