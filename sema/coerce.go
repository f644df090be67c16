package sema

import "fusion/types"

// exactMatch is the strict compatibility rule used for direct extern/user
// function calls (§4.5: "no implicit conversion at this layer").
func exactMatch(declared, actual types.Prim) bool {
	return declared == actual
}

// ptrI64Compatible allows the Ptr⇄I64 pair on top of an exact match, used
// by assignment and store_field (§4.5).
func ptrI64Compatible(declared, actual types.Prim) bool {
	if declared == actual {
		return true
	}
	return (declared == types.Ptr && actual == types.I64) || (declared == types.I64 && actual == types.Ptr)
}

// numericCoercible additionally allows any numeric-to-numeric pairing, used
// for indirect calls through a resolved or inferred function-pointer
// signature (§4.5: "allow numeric coercions and the Ptr⇄I64 pair").
func numericCoercible(declared, actual types.Prim) bool {
	if ptrI64Compatible(declared, actual) {
		return true
	}
	return declared.IsNumeric() && actual.IsNumeric()
}

// castCompatible implements the `as TYPE` cast rule: numeric↔numeric or
// Ptr↔Ptr only (§4.5) — deliberately narrower than assignment, which also
// allows Ptr⇄I64.
func castCompatible(src, target types.Prim) bool {
	if src == types.Ptr && target == types.Ptr {
		return true
	}
	return src.IsNumeric() && target.IsNumeric()
}
