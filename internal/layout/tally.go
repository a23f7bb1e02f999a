package layout

// Tally counts observations and remembers the order values were first seen.
type Tally[T comparable] struct {
	counts map[T]int
	order  []T
}

// NewTally returns an empty Tally.
func NewTally[T comparable]() *Tally[T] {
	return &Tally[T]{counts: make(map[T]int)}
}

// Add records one observation of v.
func (t *Tally[T]) Add(v T) {
	if _, seen := t.counts[v]; !seen {
		t.order = append(t.order, v)
	}
	t.counts[v]++
}

// Count returns how many times v was added.
func (t *Tally[T]) Count(v T) int { return t.counts[v] }

// Len returns the number of distinct values.
func (t *Tally[T]) Len() int { return len(t.order) }

// Mode returns the most frequent value. Among values sharing the highest
// count, the one encountered first wins. ok is false for an empty tally.
func (t *Tally[T]) Mode() (v T, ok bool) {
	best := 0
	for _, candidate := range t.order {
		if n := t.counts[candidate]; n > best {
			v, best, ok = candidate, n, true
		}
	}
	return v, ok
}

// DefaultBodySize is the body size assumed for a document without lines.
const DefaultBodySize = 12

// StyleProfile is the document's dominant body text style.
type StyleProfile struct {
	BodySize  int
	BodyColor int
}

// ProfileStyle finds the most frequent size and color over lines.
func ProfileStyle(lines []Line) StyleProfile {
	sizes := NewTally[int]()
	colors := NewTally[int]()
	for _, l := range lines {
		sizes.Add(l.Size)
		colors.Add(l.Color)
	}

	profile := StyleProfile{BodySize: DefaultBodySize}
	if s, ok := sizes.Mode(); ok {
		profile.BodySize = s
	}
	if c, ok := colors.Mode(); ok {
		profile.BodyColor = c
	}
	return profile
}
