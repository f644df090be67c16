// Package types holds the primitive type tag (§3), function-pointer
// signatures, and the typing environment (§3) shared by the semantic
// analyzer and the IR emitter.
package types

// Prim is the primitive type tag every source-level value carries.
type Prim int

const (
	Void Prim = iota
	I32
	I64
	F32
	F64
	Ptr
)

func (p Prim) String() string {
	switch p {
	case Void:
		return "void"
	case I32:
		return "i32"
	case I64:
		return "i64"
	case F32:
		return "f32"
	case F64:
		return "f64"
	case Ptr:
		return "ptr"
	default:
		return "?"
	}
}

// IsNumeric reports whether p is one of the four numeric primitives.
func (p Prim) IsNumeric() bool {
	return p == I32 || p == I64 || p == F32 || p == F64
}

// IsFloat reports whether p is a floating point primitive.
func (p Prim) IsFloat() bool {
	return p == F32 || p == F64
}

// SizeOf returns the C-ABI size in bytes of p, per §4.4's primitive table.
func SizeOf(p Prim) int {
	switch p {
	case I32, F32:
		return 4
	case I64, F64, Ptr:
		return 8
	default:
		return 0
	}
}

// AlignOf returns the C-ABI alignment in bytes of p (equal to its size, per
// §4.4).
func AlignOf(p Prim) int {
	return SizeOf(p)
}

// LookupPrim maps a type keyword/name as it appears in source to a Prim. ok
// is false for record and opaque type names, which are Ptr-shaped but are
// not primitive keywords.
func LookupPrim(name string) (Prim, bool) {
	switch name {
	case "void":
		return Void, true
	case "i32":
		return I32, true
	case "i64":
		return I64, true
	case "f32":
		return F32, true
	case "f64":
		return F64, true
	case "ptr":
		return Ptr, true
	default:
		return Void, false
	}
}

// Sig is a function-pointer signature: parameter primitive types and a
// result primitive type. It is attached to Ptr values that are known to
// originate from a function (§3, §4.5) and to external/user function
// declarations for call-site checking.
type Sig struct {
	Params []Prim
	Result Prim
}

// Equal reports whether s and other describe the same signature.
func (s Sig) Equal(other Sig) bool {
	if s.Result != other.Result || len(s.Params) != len(other.Params) {
		return false
	}

	for i, p := range s.Params {
		if p != other.Params[i] {
			return false
		}
	}

	return true
}
