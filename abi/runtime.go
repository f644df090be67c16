// Package abi defines the runtime ABI constants shared between the IR
// emitter and the vendored runtime (§6): symbol names, LLVM type spellings,
// and the FFI type-kind encoding passed to rt_ffi_sig_create.
package abi

import "fusion/types"

// EntryFunc is the C-linkage symbol every compiled module exports (§6).
const EntryFunc = "fusion_main"

// Runtime function names. These must match the C declarations in
// runtimert/runtime.h exactly.
const (
	FnPrintI64     = "rt_print_i64"
	FnPrintF64     = "rt_print_f64"
	FnPrintCString = "rt_print_cstring"

	FnReadLine   = "rt_read_line"
	FnToStrI64   = "rt_to_str_i64"
	FnToStrF64   = "rt_to_str_f64"
	FnFromStrI64 = "rt_from_str_i64"
	FnFromStrF64 = "rt_from_str_f64"

	FnOpen          = "rt_open"
	FnClose         = "rt_close"
	FnReadLineFile  = "rt_read_line_file"
	FnWriteFileI64  = "rt_write_file_i64"
	FnWriteFileF64  = "rt_write_file_f64"
	FnWriteFilePtr  = "rt_write_file_ptr"
	FnEofFile       = "rt_eof_file"
	FnLineCountFile = "rt_line_count_file"

	FnPanic = "rt_panic"

	FnDlopen      = "rt_dlopen"
	FnDlsym       = "rt_dlsym"
	FnDlerrorLast = "rt_dlerror_last"

	FnFFISigCreate = "rt_ffi_sig_create"
	FnFFICall      = "rt_ffi_call"
	FnFFIErrorLast = "rt_ffi_error_last"
)

// LLVM type spellings used when declaring runtime functions in the emitted
// module (§4.6).
const (
	LLVMI32  = "i32"
	LLVMI64  = "i64"
	LLVMF32  = "float"
	LLVMF64  = "double"
	LLVMPtr  = "ptr"
	LLVMVoid = "void"
)

// FFIKind is the i32 type-tag rt_ffi_sig_create expects for each argument
// and result slot (§6).
type FFIKind int32

const (
	FFIVoid FFIKind = 0
	FFII32  FFIKind = 1
	FFII64  FFIKind = 2
	FFIF32  FFIKind = 3
	FFIF64  FFIKind = 4
	FFIPtr  FFIKind = 5
)

// FFISlotSize is the fixed per-argument slot width in rt_ffi_call's
// argument buffer, regardless of the argument's own width (§6).
const FFISlotSize = 8

// FuncSignature describes one runtime entry point's C-linkage signature,
// used to declare it in the emitted module (§4.6's "Runtime declarations").
type FuncSignature struct {
	Name       string
	ReturnType string
	ParamTypes []string
	NoReturn   bool
}

// RuntimeFunctions returns the signature of every runtime entry listed in
// §6, in table order.
func RuntimeFunctions() []FuncSignature {
	return []FuncSignature{
		{Name: FnPrintI64, ReturnType: LLVMVoid, ParamTypes: []string{LLVMI64, LLVMI64}},
		{Name: FnPrintF64, ReturnType: LLVMVoid, ParamTypes: []string{LLVMF64, LLVMI64}},
		{Name: FnPrintCString, ReturnType: LLVMVoid, ParamTypes: []string{LLVMPtr, LLVMI64}},

		{Name: FnReadLine, ReturnType: LLVMPtr},
		{Name: FnToStrI64, ReturnType: LLVMPtr, ParamTypes: []string{LLVMI64}},
		{Name: FnToStrF64, ReturnType: LLVMPtr, ParamTypes: []string{LLVMF64}},
		{Name: FnFromStrI64, ReturnType: LLVMI64, ParamTypes: []string{LLVMPtr}},
		{Name: FnFromStrF64, ReturnType: LLVMF64, ParamTypes: []string{LLVMPtr}},

		{Name: FnOpen, ReturnType: LLVMPtr, ParamTypes: []string{LLVMPtr, LLVMPtr}},
		{Name: FnClose, ReturnType: LLVMVoid, ParamTypes: []string{LLVMPtr}},
		{Name: FnReadLineFile, ReturnType: LLVMPtr, ParamTypes: []string{LLVMPtr}},
		{Name: FnWriteFileI64, ReturnType: LLVMVoid, ParamTypes: []string{LLVMPtr, LLVMI64}},
		{Name: FnWriteFileF64, ReturnType: LLVMVoid, ParamTypes: []string{LLVMPtr, LLVMF64}},
		{Name: FnWriteFilePtr, ReturnType: LLVMVoid, ParamTypes: []string{LLVMPtr, LLVMPtr}},
		{Name: FnEofFile, ReturnType: LLVMI64, ParamTypes: []string{LLVMPtr}},
		{Name: FnLineCountFile, ReturnType: LLVMI64, ParamTypes: []string{LLVMPtr}},

		{Name: FnPanic, ReturnType: LLVMVoid, ParamTypes: []string{LLVMPtr}, NoReturn: true},

		{Name: FnDlopen, ReturnType: LLVMPtr, ParamTypes: []string{LLVMPtr}},
		{Name: FnDlsym, ReturnType: LLVMPtr, ParamTypes: []string{LLVMPtr, LLVMPtr}},
		{Name: FnDlerrorLast, ReturnType: LLVMPtr},

		{Name: FnFFISigCreate, ReturnType: LLVMPtr, ParamTypes: []string{LLVMI32, LLVMI32, LLVMPtr}},
		{Name: FnFFICall, ReturnType: LLVMI32, ParamTypes: []string{LLVMPtr, LLVMPtr, LLVMPtr, LLVMPtr}},
		{Name: FnFFIErrorLast, ReturnType: LLVMPtr},
	}
}

// WriteFileFuncFor picks the rt_write_file_* overload matching a value's
// static type (§4.5 allows i64, f64, or ptr for write_file's value).
func WriteFileFuncFor(t types.Prim) string {
	switch t {
	case types.F64:
		return FnWriteFileF64
	case types.Ptr:
		return FnWriteFilePtr
	default:
		return FnWriteFileI64
	}
}

// FFIKindOf maps a primitive tag to its rt_ffi_sig_create encoding (§6).
func FFIKindOf(t types.Prim) FFIKind {
	switch t {
	case types.Void:
		return FFIVoid
	case types.I32:
		return FFII32
	case types.I64:
		return FFII64
	case types.F32:
		return FFIF32
	case types.F64:
		return FFIF64
	case types.Ptr:
		return FFIPtr
	default:
		return FFIVoid
	}
}
