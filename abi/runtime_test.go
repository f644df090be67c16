package abi

import (
	"testing"

	"fusion/types"
)

func TestFFIKindOf(t *testing.T) {
	tests := []struct {
		p    types.Prim
		want FFIKind
	}{
		{types.Void, FFIVoid},
		{types.I32, FFII32},
		{types.I64, FFII64},
		{types.F32, FFIF32},
		{types.F64, FFIF64},
		{types.Ptr, FFIPtr},
	}

	for _, tc := range tests {
		if got := FFIKindOf(tc.p); got != tc.want {
			t.Errorf("FFIKindOf(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestWriteFileFuncFor(t *testing.T) {
	tests := []struct {
		p    types.Prim
		want string
	}{
		{types.F64, FnWriteFileF64},
		{types.Ptr, FnWriteFilePtr},
		{types.I64, FnWriteFileI64},
		{types.I32, FnWriteFileI64},
	}

	for _, tc := range tests {
		if got := WriteFileFuncFor(tc.p); got != tc.want {
			t.Errorf("WriteFileFuncFor(%v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestRuntimeFunctionsCoverEveryName(t *testing.T) {
	sigs := RuntimeFunctions()

	names := make(map[string]bool, len(sigs))
	for _, s := range sigs {
		if names[s.Name] {
			t.Errorf("duplicate runtime function name %q", s.Name)
		}
		names[s.Name] = true
	}

	want := []string{
		FnPrintI64, FnPrintF64, FnPrintCString,
		FnReadLine, FnToStrI64, FnToStrF64, FnFromStrI64, FnFromStrF64,
		FnOpen, FnClose, FnReadLineFile, FnWriteFileI64, FnWriteFileF64,
		FnWriteFilePtr, FnEofFile, FnLineCountFile,
		FnPanic,
		FnDlopen, FnDlsym, FnDlerrorLast,
		FnFFISigCreate, FnFFICall, FnFFIErrorLast,
	}
	for _, name := range want {
		if !names[name] {
			t.Errorf("RuntimeFunctions() is missing %q", name)
		}
	}
}

func TestPanicSignatureIsNoReturn(t *testing.T) {
	for _, s := range RuntimeFunctions() {
		if s.Name == FnPanic {
			if !s.NoReturn {
				t.Error("rt_panic's signature should be marked NoReturn")
			}
			return
		}
	}
	t.Fatal("rt_panic not found in RuntimeFunctions()")
}
