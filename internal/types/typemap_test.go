package types

import "testing"

func TestMapOrderedMatchesInsertionOrder(t *testing.T) {
	m := NewMap()
	a := m.New(KindStruct)
	a.Name = "A"
	b := m.New(KindStruct)
	b.Name = "B"
	c := m.New(KindStruct)
	c.Name = "C"

	got := m.Ordered()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("Ordered() did not preserve insertion order: %v", got)
	}
}

func TestMapBasicInterns(t *testing.T) {
	m := NewMap()
	a := m.Basic(BasicI32)
	b := m.Basic(BasicI32)
	if a != b {
		t.Fatal("Basic(BasicI32) called twice must return the same *Type")
	}
	if m.Len() != 1 {
		t.Fatalf("interning a basic type twice should register it once, got Len()=%d", m.Len())
	}
}

func TestTypeSizeStructVsPointer(t *testing.T) {
	m := NewMap()
	s := m.New(KindStruct)
	s.SetLayout(16, 8)
	if s.Size(8) != 16 {
		t.Fatalf("struct Size() = %d, want 16", s.Size(8))
	}

	ptr := m.New(KindPointer)
	ptr.Elem = s
	if ptr.Size(4) != 4 || ptr.Size(8) != 8 {
		t.Fatalf("pointer Size() must equal the target pointer width, got Size(4)=%d Size(8)=%d", ptr.Size(4), ptr.Size(8))
	}
}

func TestTypeSizeSliceIsTwoPointers(t *testing.T) {
	m := NewMap()
	sl := m.New(KindSlice)
	sl.Elem = m.Basic(BasicU8)
	if got := sl.Size(8); got != 16 {
		t.Fatalf("slice Size(8) = %d, want 16 ({ptr, len})", got)
	}
}
