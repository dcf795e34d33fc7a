package types

import "testing"

func TestCompatibleIdentical(t *testing.T) {
	m := NewMap()
	i32 := m.Basic(BasicI32)
	if !Compatible(i32, i32, false) {
		t.Fatal("a type must be compatible with itself")
	}
}

func TestCompatibleLiteralWidening(t *testing.T) {
	m := NewMap()
	i32 := m.Basic(BasicI32)
	i64 := m.Basic(BasicI64)
	if !Compatible(i32, i64, true) {
		t.Fatal("a widenable i32 literal should widen to i64")
	}
	if Compatible(i64, i32, true) {
		t.Fatal("a widenable i64 should not narrow to i32")
	}
	if Compatible(i32, i64, false) {
		t.Fatal("a non-literal i32 must not implicitly widen to i64")
	}
}

func TestCompatibleFloatIntNeverWiden(t *testing.T) {
	m := NewMap()
	i32 := m.Basic(BasicI32)
	f32 := m.Basic(BasicF32)
	if Compatible(i32, f32, true) || Compatible(f32, i32, true) {
		t.Fatal("integer and float basic kinds must never be compatible")
	}
}

func TestCompatibleDistinctCoercesToBase(t *testing.T) {
	m := NewMap()
	i32 := m.Basic(BasicI32)
	distinct := m.New(KindDistinct)
	distinct.Name = "Meters"
	distinct.Base = i32

	if !Compatible(distinct, i32, false) {
		t.Fatal("a distinct type must coerce to its base type")
	}
	if !Compatible(i32, distinct, false) {
		t.Fatal("a base type must coerce to a distinct type built on it")
	}
}

func TestCommonTypePicksHigherRank(t *testing.T) {
	m := NewMap()
	i32 := m.Basic(BasicI32)
	i64 := m.Basic(BasicI64)
	if got := CommonType(i32, i64); got != i64 {
		t.Fatalf("CommonType(i32, i64) = %v, want i64", got)
	}
	if got := CommonType(i64, i32); got != i64 {
		t.Fatalf("CommonType(i64, i32) = %v, want i64", got)
	}
}
