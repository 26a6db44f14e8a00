package refname

import "sort"

// Collision records two distinct source references that were given the same
// annotated name
type Collision struct {
	New  string
	Olds []string
}

// Map records every rename performed during a run.
//
// Renaming itself is stateless; the map only observes the results so a run
// can report what changed and flag names that are not unique.
type Map struct {
	forward map[string]string
	reverse map[string][]string
	order   []string
}

// NewMap creates an empty rename map
func NewMap() *Map {
	return &Map{
		forward: make(map[string]string),
		reverse: make(map[string][]string),
	}
}

// Rename computes the new name for old and records the pair
func (m *Map) Rename(old string) string {
	if n, ok := m.forward[old]; ok {
		return n
	}

	n := New(old)
	m.forward[old] = n
	m.reverse[n] = append(m.reverse[n], old)
	m.order = append(m.order, old)
	return n
}

// Lookup returns the recorded new name for old
func (m *Map) Lookup(old string) (string, bool) {
	n, ok := m.forward[old]
	return n, ok
}

// Len returns the number of distinct source references seen
func (m *Map) Len() int {
	return len(m.order)
}

// Pairs returns old/new pairs in first-seen order
func (m *Map) Pairs() [][2]string {
	pairs := make([][2]string, 0, len(m.order))
	for _, old := range m.order {
		pairs = append(pairs, [2]string{old, m.forward[old]})
	}
	return pairs
}

// Collisions returns every new name produced by more than one source name,
// sorted by new name.
//
// "K_↑" and "K_UP" both become "K_UP_0". Such names are reported, not fixed.
func (m *Map) Collisions() []Collision {
	var out []Collision
	for n, olds := range m.reverse {
		if len(olds) > 1 {
			c := Collision{New: n, Olds: append([]string(nil), olds...)}
			sort.Strings(c.Olds)
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].New < out[j].New })
	return out
}
