package llc

/*
#include <stdlib.h>
#include "llvm-c/Core.h"
#include "llvm-c/Target.h"
#include "llvm-c/TargetMachine.h"
*/
import "C"
import (
	"fmt"
	"unsafe"
)

// HostTriple returns the target triple of the host system.
func HostTriple() string {
	ctriple := C.LLVMGetDefaultTargetTriple()
	defer C.LLVMDisposeMessage(ctriple)
	return C.GoString(ctriple)
}

// Target represents an LLVM output target.
type Target struct {
	c C.LLVMTargetRef
}

// GetTargetFromTriple finds the target corresponding to triple.
func GetTargetFromTriple(triple string) (Target, error) {
	ctriple := C.CString(triple)
	defer C.free(unsafe.Pointer(ctriple))

	var targetPtr C.LLVMTargetRef
	var cerr *C.char
	if C.LLVMGetTargetFromTriple(ctriple, byref(&targetPtr), byref(&cerr)) == 0 {
		return Target{c: targetPtr}, nil
	}

	msg := C.GoString(cerr)
	C.LLVMDisposeMessage(cerr)
	return Target{}, fmt.Errorf("no code generation target for %s: %s", triple, msg)
}

// initializeAllTargets initializes every target backend LLVM was built with,
// so HostTriple always resolves to a usable Target regardless of what the
// running machine's architecture turns out to be.
func initializeAllTargets() {
	C.LLVMInitializeAArch64Target()
	C.LLVMInitializeAMDGPUTarget()
	C.LLVMInitializeARMTarget()
	C.LLVMInitializeAVRTarget()
	C.LLVMInitializeBPFTarget()
	C.LLVMInitializeHexagonTarget()
	C.LLVMInitializeLanaiTarget()
	C.LLVMInitializeMSP430Target()
	C.LLVMInitializeMipsTarget()
	C.LLVMInitializeNVPTXTarget()
	C.LLVMInitializePowerPCTarget()
	C.LLVMInitializeRISCVTarget()
	C.LLVMInitializeSparcTarget()
	C.LLVMInitializeSystemZTarget()
	C.LLVMInitializeWebAssemblyTarget()
	C.LLVMInitializeX86Target()
	C.LLVMInitializeXCoreTarget()

	C.LLVMInitializeAArch64TargetInfo()
	C.LLVMInitializeAMDGPUTargetInfo()
	C.LLVMInitializeARMTargetInfo()
	C.LLVMInitializeAVRTargetInfo()
	C.LLVMInitializeBPFTargetInfo()
	C.LLVMInitializeHexagonTargetInfo()
	C.LLVMInitializeLanaiTargetInfo()
	C.LLVMInitializeMSP430TargetInfo()
	C.LLVMInitializeMipsTargetInfo()
	C.LLVMInitializeNVPTXTargetInfo()
	C.LLVMInitializePowerPCTargetInfo()
	C.LLVMInitializeRISCVTargetInfo()
	C.LLVMInitializeSparcTargetInfo()
	C.LLVMInitializeSystemZTargetInfo()
	C.LLVMInitializeWebAssemblyTargetInfo()
	C.LLVMInitializeX86TargetInfo()
	C.LLVMInitializeXCoreTargetInfo()

	C.LLVMInitializeAArch64TargetMC()
	C.LLVMInitializeAMDGPUTargetMC()
	C.LLVMInitializeARMTargetMC()
	C.LLVMInitializeAVRTargetMC()
	C.LLVMInitializeBPFTargetMC()
	C.LLVMInitializeHexagonTargetMC()
	C.LLVMInitializeLanaiTargetMC()
	C.LLVMInitializeMSP430TargetMC()
	C.LLVMInitializeMipsTargetMC()
	C.LLVMInitializeNVPTXTargetMC()
	C.LLVMInitializePowerPCTargetMC()
	C.LLVMInitializeRISCVTargetMC()
	C.LLVMInitializeSparcTargetMC()
	C.LLVMInitializeSystemZTargetMC()
	C.LLVMInitializeWebAssemblyTargetMC()
	C.LLVMInitializeX86TargetMC()
	C.LLVMInitializeXCoreTargetMC()

	C.LLVMInitializeAArch64AsmPrinter()
	C.LLVMInitializeAMDGPUAsmPrinter()
	C.LLVMInitializeARMAsmPrinter()
	C.LLVMInitializeAVRAsmPrinter()
	C.LLVMInitializeBPFAsmPrinter()
	C.LLVMInitializeHexagonAsmPrinter()
	C.LLVMInitializeLanaiAsmPrinter()
	C.LLVMInitializeMSP430AsmPrinter()
	C.LLVMInitializeMipsAsmPrinter()
	C.LLVMInitializeNVPTXAsmPrinter()
	C.LLVMInitializePowerPCAsmPrinter()
	C.LLVMInitializeRISCVAsmPrinter()
	C.LLVMInitializeSparcAsmPrinter()
	C.LLVMInitializeSystemZAsmPrinter()
	C.LLVMInitializeWebAssemblyAsmPrinter()
	C.LLVMInitializeX86AsmPrinter()
	C.LLVMInitializeXCoreAsmPrinter()
}
