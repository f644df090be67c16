package layout

import (
	"testing"

	"fusion/types"
)

func TestComputeEmptyRecord(t *testing.T) {
	r := Compute(nil)
	if r.Size != 0 || r.Alignment != 0 || len(r.Fields) != 0 {
		t.Fatalf("Compute(nil) = %+v, want zero value", r)
	}
}

func TestComputePadsForAlignment(t *testing.T) {
	// struct { a: i32; b: i64; c: i32 }
	r := Compute([]FieldSpec{
		{Name: "a", Type: types.I32},
		{Name: "b", Type: types.I64},
		{Name: "c", Type: types.I32},
	})

	wantOffsets := map[string]int{"a": 0, "b": 8, "c": 16}
	for name, want := range wantOffsets {
		off, ok := r.FieldOffset(name)
		if !ok {
			t.Fatalf("field %q not found in layout", name)
		}
		if off != want {
			t.Errorf("FieldOffset(%q) = %d, want %d", name, off, want)
		}
	}

	if r.Alignment != 8 {
		t.Errorf("Alignment = %d, want 8", r.Alignment)
	}
	if r.Size != 24 {
		t.Errorf("Size = %d, want 24 (20 rounded up to 8-byte alignment)", r.Size)
	}
}

func TestComputeNoPaddingNeeded(t *testing.T) {
	r := Compute([]FieldSpec{
		{Name: "x", Type: types.I64},
		{Name: "y", Type: types.I64},
	})

	if r.Size != 16 || r.Alignment != 8 {
		t.Fatalf("Compute() = {Size: %d, Alignment: %d}, want {16, 8}", r.Size, r.Alignment)
	}
}

func TestFieldTypeLookupMiss(t *testing.T) {
	r := Compute([]FieldSpec{{Name: "a", Type: types.I32}})
	if _, ok := r.FieldType("nonexistent"); ok {
		t.Error("expected FieldType to fail for an unknown field name")
	}
}

func TestBuildRecordMap(t *testing.T) {
	m := Build(nil)
	if len(m) != 0 {
		t.Fatalf("Build(nil) = %v, want empty map", m)
	}
}
