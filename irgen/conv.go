package irgen

import (
	ftypes "fusion/types"

	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// coerce converts val from one primitive representation to another at an
// assignment, call, or return boundary (§4.5's ptrI64Compatible/
// numericCoercible tiers, realized here as actual instructions).
func (e *Emitter) coerce(val value.Value, from, to ftypes.Prim) value.Value {
	if from == to {
		return val
	}

	switch {
	case to == ftypes.Ptr && from != ftypes.Ptr:
		i := e.coerce(val, from, ftypes.I64)
		return e.block.NewIntToPtr(i, types.I8Ptr)
	case from == ftypes.Ptr && to != ftypes.Ptr:
		i := e.block.NewPtrToInt(val, types.I64)
		return e.coerce(i, ftypes.I64, to)

	case to == ftypes.F64:
		switch from {
		case ftypes.F32:
			return e.block.NewFPExt(val, types.Double)
		default:
			return e.block.NewSIToFP(val, types.Double)
		}
	case to == ftypes.F32:
		switch from {
		case ftypes.F64:
			return e.block.NewFPTrunc(val, types.Float)
		default:
			return e.block.NewSIToFP(val, types.Float)
		}
	case to == ftypes.I64:
		switch from {
		case ftypes.F32, ftypes.F64:
			return e.block.NewFPToSI(val, types.I64)
		case ftypes.I32:
			return e.block.NewSExt(val, types.I64)
		default:
			return val
		}
	case to == ftypes.I32:
		switch from {
		case ftypes.F32, ftypes.F64:
			return e.block.NewFPToSI(val, types.I32)
		case ftypes.I64:
			return e.block.NewTrunc(val, types.I32)
		default:
			return val
		}
	default:
		return val
	}
}
