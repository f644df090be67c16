// Package layout computes C-ABI-compatible record layouts (§4.4), grounded
// on the original compute_layout/build_layout_map pair.
package layout

import "fusion/types"

// Field is one laid-out field: its byte offset within the record and its
// primitive type.
type Field struct {
	Name   string
	Offset int
	Type   types.Prim
}

// Record is the C-ABI layout of a record definition: its total size,
// alignment, and per-field offsets.
type Record struct {
	Size      int
	Alignment int
	Fields    []Field
}

// FieldOffset looks up a field's byte offset by name.
func (r *Record) FieldOffset(name string) (int, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Offset, true
		}
	}
	return 0, false
}

// FieldType looks up a field's declared type by name.
func (r *Record) FieldType(name string) (types.Prim, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return types.Void, false
}

// Compute lays out fields in declaration order (§4.4): each field's offset
// is rounded up to its own alignment, the record's alignment is the max
// field alignment, and the final size is rounded up to the record
// alignment. A record with no fields has size 0 and alignment 0 — the
// round-up at the end never runs, so there is no division by a zero
// alignment to worry about.
func Compute(fields []FieldSpec) Record {
	if len(fields) == 0 {
		return Record{}
	}

	var out Record
	offset := 0

	for _, f := range fields {
		align := types.AlignOf(f.Type)
		size := types.SizeOf(f.Type)
		if align == 0 || size == 0 {
			// void/unknown fields are skipped defensively; the parser and
			// analyzer should have already rejected them.
			continue
		}

		if align > out.Alignment {
			out.Alignment = align
		}

		offset = roundUp(offset, align)
		out.Fields = append(out.Fields, Field{Name: f.Name, Offset: offset, Type: f.Type})
		offset += size
	}

	out.Size = roundUp(offset, out.Alignment)
	return out
}

// FieldSpec is the minimal input Compute needs per field, kept separate
// from ast.FieldDef so this package doesn't depend on ast.
type FieldSpec struct {
	Name string
	Type types.Prim
}

func roundUp(offset, align int) int {
	if align == 0 {
		return offset
	}
	rem := offset % align
	if rem == 0 {
		return offset
	}
	return offset + align - rem
}
