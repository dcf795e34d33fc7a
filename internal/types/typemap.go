package types

// Map is the arena that indexes every Type of one compilation by its id.
// Ids are assigned from 1 upward and stay stable for the lifetime of the
// compilation; 0 never names a Type. Within the compiler, Types reference
// each other through *Type pointers (Elem, Params, Return, Backing, Base,
// ...), not through ids; the id is what the reflection tables record for
// each such reference.
//
// Iteration order equals insertion order, because the tables emitted by the
// reflection emitter (C5.a) must lay out records "for each Type in insertion
// order".
type Map struct {
	byID   map[uint32]*Type
	order  []uint32
	next   uint32
	basics map[BasicKind]*Type
}

// NewMap creates an empty type map.
func NewMap() *Map {
	return &Map{byID: make(map[uint32]*Type), next: 1} // id 0 is the "no type" sentinel
}

// New allocates a Type with the next monotonic id, registers it in the map,
// and returns it. Callers fill in the variant-specific fields afterward.
func (m *Map) New(kind Kind) *Type {
	id := m.next
	m.next++
	t := &Type{ID: id, Kind: kind}
	m.byID[id] = t
	m.order = append(m.order, id)
	return t
}

// Get looks up a Type by id.
func (m *Map) Get(id uint32) (*Type, bool) {
	t, ok := m.byID[id]
	return t, ok
}

// MustGet looks up a Type by id, panicking if absent — used only where the
// caller has already established the id is valid (e.g. iterating m.Ordered()).
func (m *Map) MustGet(id uint32) *Type {
	t, ok := m.byID[id]
	if !ok {
		panic("types: unknown type id")
	}
	return t
}

// Ordered returns every Type in insertion order.
func (m *Map) Ordered() []*Type {
	out := make([]*Type, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out
}

// Len returns the number of types registered.
func (m *Map) Len() int { return len(m.order) }

// Basic interns and returns the Type for a basic kind, creating it once per
// map and reusing it thereafter so identical basic types share an id.
func (m *Map) Basic(kind BasicKind) *Type {
	if m.basics == nil {
		m.basics = make(map[BasicKind]*Type)
	}
	if t, ok := m.basics[kind]; ok {
		return t
	}
	t := m.New(KindBasic)
	t.Basic = kind
	m.basics[kind] = t
	return t
}
