package sema

import (
	"fusion/ast"
	"fusion/types"
)

// checkCall dispatches a call expression by callee name to a built-in
// checker or, for any other name, an extern/user function call (§4.5).
func (a *Analyzer) checkCall(v *ast.Call) types.Prim {
	switch v.Callee {
	case "range":
		return a.checkRangeCall(v)
	case "from_str":
		return a.checkFromStrCall(v)
	case "get_func_ptr":
		return a.checkGetFuncPtr(v)
	case "call":
		return a.checkIndirectCall(v)
	case "print":
		return a.checkPrintCall(v)
	case "read_line":
		a.checkArity(v, 0)
		return types.Ptr
	case "to_str":
		a.checkArity(v, 1)
		if t := a.checkExpr(v.Args[0]); t != types.I64 && t != types.F64 {
			a.errorf(v, "to_str requires an i64 or f64 argument")
		}
		return types.Ptr
	case "open":
		a.checkArity(v, 2)
		a.checkArgTypes(v, types.Ptr, types.Ptr)
		return types.Ptr
	case "close":
		a.checkArity(v, 1)
		a.checkArgTypes(v, types.Ptr)
		return types.Void
	case "read_line_file":
		a.checkArity(v, 1)
		a.checkArgTypes(v, types.Ptr)
		return types.Ptr
	case "write_file":
		return a.checkWriteFileCall(v)
	case "eof_file":
		a.checkArity(v, 1)
		a.checkArgTypes(v, types.Ptr)
		return types.I64
	case "line_count_file":
		a.checkArity(v, 1)
		a.checkArgTypes(v, types.Ptr)
		return types.I64
	default:
		return a.checkDirectCall(v)
	}
}

func (a *Analyzer) checkArity(v *ast.Call, n int) {
	if len(v.Args) != n {
		a.errorf(v, "'%s' expects %d argument(s), got %d", v.Callee, n, len(v.Args))
	}
}

// checkArgTypes checks each argument against the exact expected type, up to
// the shorter of the two lists (checkArity is expected to have already
// validated the count).
func (a *Analyzer) checkArgTypes(v *ast.Call, want ...types.Prim) {
	for i := 0; i < len(v.Args) && i < len(want); i++ {
		if t := a.checkExpr(v.Args[i]); t != want[i] {
			a.errorf(v.Args[i], "'%s' argument %d must be %s", v.Callee, i+1, want[i])
		}
	}
}

// checkDirectCall type-checks a call to a declared extern or user function
// (§4.5: "arg count must match; each argument's inferred type must equal
// the declared parameter type").
func (a *Analyzer) checkDirectCall(v *ast.Call) types.Prim {
	sig, ok := a.lookupCalleeSig(v.Callee)
	if !ok {
		a.errorf(v, "unknown function: '%s'", v.Callee)
		for _, arg := range v.Args {
			a.checkExpr(arg)
		}
		return types.Void
	}

	if len(v.Args) != len(sig.Params) {
		a.errorf(v, "'%s' expects %d argument(s), got %d", v.Callee, len(sig.Params), len(v.Args))
	}

	for i, arg := range v.Args {
		t := a.checkExpr(arg)
		if i < len(sig.Params) && !exactMatch(sig.Params[i], t) {
			a.errorf(arg, "argument %d to '%s' has the wrong type", i+1, v.Callee)
		}
	}

	return sig.Result
}

// checkRangeCall implements range(n [, ty]) / range(start, end [, ty])
// (§4.5). The element type annotation itself is recovered later from the
// call node by elemTypeOf; here we only validate.
func (a *Analyzer) checkRangeCall(v *ast.Call) types.Prim {
	if len(v.Args) < 1 || len(v.Args) > 2 {
		a.errorf(v, "range expects 1 or 2 bound arguments")
	}

	for _, arg := range v.Args {
		if t := a.checkExpr(arg); t != types.I64 {
			a.errorf(arg, "range bounds must be i64")
		}
	}

	if v.HasTypeArg {
		switch v.TypeArg {
		case types.I32, types.I64, types.F32, types.F64:
		default:
			a.errorf(v, "range element type must be i32, i64, f32, or f64")
		}
	}

	return types.Ptr
}

// checkFromStrCall implements from_str(s, i64|f64) (§4.5).
func (a *Analyzer) checkFromStrCall(v *ast.Call) types.Prim {
	if len(v.Args) != 1 {
		a.errorf(v, "from_str expects exactly one argument")
		return v.TypeArg
	}

	if t := a.checkExpr(v.Args[0]); t != types.Ptr {
		a.errorf(v.Args[0], "from_str requires a pointer (string) argument")
	}

	if v.TypeArg != types.I64 && v.TypeArg != types.F64 {
		a.errorf(v, "from_str target type must be i64 or f64")
	}

	return v.TypeArg
}

// checkGetFuncPtr implements get_func_ptr(name) (§4.5): name must be a
// known user or external function; the result carries that function's
// signature for later use by call() and function-pointer propagation.
func (a *Analyzer) checkGetFuncPtr(v *ast.Call) types.Prim {
	sig, ok := a.lookupCalleeSig(v.FuncName)
	if !ok {
		a.errorf(v, "unknown function: '%s'", v.FuncName)
		return types.Ptr
	}

	v.InferredSig = sig
	v.HasInferredSig = true
	return types.Ptr
}

// checkIndirectCall implements call(target, args...) (§4.5): resolve
// target's signature from the function-pointer state machine, the global
// function tables, or a get_func_ptr argument; failing that, infer a
// signature from the actual arguments and the surrounding expected return
// type, and stash it on the call node for the emitter.
func (a *Analyzer) checkIndirectCall(v *ast.Call) types.Prim {
	if len(v.Args) < 1 {
		a.errorf(v, "call requires a target argument")
		return types.Void
	}

	target := v.Args[0]
	if t := a.checkExpr(target); t != types.Ptr {
		a.errorf(target, "call target must be a pointer")
	}

	actuals := v.Args[1:]
	argTypes := make([]types.Prim, len(actuals))
	for i, arg := range actuals {
		argTypes[i] = a.checkExpr(arg)
	}

	if sig, ok := funcSigOf(a, target); ok {
		v.InferredSig = sig
		v.HasInferredSig = true

		if len(sig.Params) != len(argTypes) {
			a.errorf(v, "indirect call expects %d argument(s), got %d", len(sig.Params), len(argTypes))
			return sig.Result
		}
		for i, pt := range sig.Params {
			if !numericCoercible(pt, argTypes[i]) {
				a.errorf(actuals[i], "argument %d is not compatible with the target's signature", i+1)
			}
		}
		return sig.Result
	}

	result := types.Void
	if a.hasExpectedReturn {
		result = a.expectedReturn
	}

	inferred := types.Sig{Params: argTypes, Result: result}
	v.InferredSig = inferred
	v.HasInferredSig = true
	return result
}

func (a *Analyzer) checkPrintCall(v *ast.Call) types.Prim {
	if len(v.Args) < 1 || len(v.Args) > 2 {
		a.errorf(v, "print expects 1 or 2 arguments")
		return types.Void
	}

	t := a.checkExpr(v.Args[0])
	if t != types.I64 && t != types.F64 && t != types.Ptr {
		a.errorf(v.Args[0], "print requires an i64, f64, or ptr argument")
	}

	if len(v.Args) == 2 {
		if st := a.checkExpr(v.Args[1]); st != types.I64 {
			a.errorf(v.Args[1], "print stream selector must be i64")
		}
	}

	return types.Void
}

// checkWriteFileCall implements write_file(h, v) where v may be i64, f64,
// or ptr (§4.5).
func (a *Analyzer) checkWriteFileCall(v *ast.Call) types.Prim {
	if len(v.Args) != 2 {
		a.errorf(v, "write_file expects 2 arguments")
		return types.Void
	}

	if t := a.checkExpr(v.Args[0]); t != types.Ptr {
		a.errorf(v.Args[0], "write_file's first argument must be a file handle")
	}

	vt := a.checkExpr(v.Args[1])
	if vt != types.I64 && vt != types.F64 && vt != types.Ptr {
		a.errorf(v.Args[1], "write_file's value must be i64, f64, or ptr")
	}

	return types.Void
}
