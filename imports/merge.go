package imports

import (
	"fmt"

	"fusion/ast"
)

// mergeRequest applies steps 4-8 of §4.3 to a single import request: pull
// the requested records and functions out of lib into dest, splice in every
// external library/function lib itself declares, and finally close over the
// transitive helper functions the newly imported user functions call.
func (r *Resolver) mergeRequest(dest *ast.Program, req *ast.ImportRequest, lib *ast.Program) error {
	for _, name := range req.Structs {
		if err := r.mergeRecord(dest, lib, name); err != nil {
			return err
		}
	}

	var newFuncs []*ast.FuncDef
	for _, stub := range req.Funcs {
		fd, err := r.mergeFunc(dest, lib, stub)
		if err != nil {
			return err
		}
		if fd != nil {
			newFuncs = append(newFuncs, fd)
		}
	}

	if err := r.mergeExternLibraries(dest, lib); err != nil {
		return err
	}

	return r.closeHelpers(dest, lib, newFuncs)
}

// mergeRecord implements step 4: find name among lib's exported records and
// splice it into dest, applying the identical-shape-skip / differing-shape-
// reject policy.
func (r *Resolver) mergeRecord(dest, lib *ast.Program, name string) error {
	rec, ok := lib.FindRecord(name)
	if !ok || !rec.Export {
		return fmt.Errorf("library does not export struct '%s'", name)
	}

	if existing, ok := dest.FindRecord(name); ok {
		if existing.SameShape(rec) {
			return nil
		}
		return fmt.Errorf("duplicate symbol: struct '%s' redefined with a different shape", name)
	}

	dest.Records = append(dest.Records, rec)
	return nil
}

// mergeFunc implements step 5: find stub's name among lib's exported
// functions by structural signature match and splice it into dest. Returns
// the merged definition when it is newly added, so the caller can seed the
// transitive helper closure; returns nil for a harmless duplicate.
func (r *Resolver) mergeFunc(dest, lib *ast.Program, stub *ast.ExternFuncStub) (*ast.FuncDef, error) {
	fd, ok := lib.FindFunc(stub.Name)
	if !ok || !fd.Export || !fd.Sig().Equal(stub.Sig()) {
		return nil, fmt.Errorf("library does not export function '%s' with the requested signature", stub.Name)
	}

	if existing, ok := dest.FindFunc(stub.Name); ok {
		if existing.SameSignature(fd) {
			return nil, nil
		}
		return nil, fmt.Errorf("duplicate symbol: function '%s' redefined with a different signature", stub.Name)
	}

	dest.Funcs = append(dest.Funcs, fd)
	return fd, nil
}

// mergeExternLibraries implements steps 6-7: splice every external library
// and external function lib itself declares into dest, renaming libraries
// to keep their internal names unique across the whole resolution.
func (r *Resolver) mergeExternLibraries(dest, lib *ast.Program) error {
	for _, extLib := range lib.Libraries {
		name := r.libNameFor(dest, extLib.Path)
		if _, ok := dest.FindLibraryByPath(extLib.Path); !ok {
			merged := *extLib
			merged.Name = name
			dest.Libraries = append(dest.Libraries, &merged)
		}
	}

	for _, ef := range lib.Externs {
		srcLib, ok := lib.FindLibrary(ef.LibName)
		if !ok {
			return fmt.Errorf("extern fn '%s': owning library not found", ef.Name)
		}
		mappedName := r.libNameFor(dest, srcLib.Path)

		if existing, ok := dest.FindExtern(ef.Name); ok {
			existingLib, _ := dest.FindLibrary(existing.LibName)
			if existingLib == nil || existingLib.Path != srcLib.Path || !existing.SameSignature(ef) {
				return fmt.Errorf("extern fn '%s' conflicts with a previously declared function of the same name", ef.Name)
			}
			continue
		}

		merged := *ef
		merged.LibName = mappedName
		dest.Externs = append(dest.Externs, &merged)
	}

	return nil
}

// libNameFor returns the stable generated name for an external library
// path, minting a fresh `__libN` the first time the path is seen anywhere
// in this resolution. If dest already declares the path under a name of its
// own (source-given or previously minted), that name is reused rather than
// generating a second, unbound one (§4.3 step 6).
func (r *Resolver) libNameFor(dest *ast.Program, path string) string {
	if name, ok := r.pathToName[path]; ok {
		return name
	}

	if existing, ok := dest.FindLibraryByPath(path); ok {
		r.pathToName[path] = existing.Name
		return existing.Name
	}

	r.libIndex++
	name := fmt.Sprintf("__lib%d", r.libIndex)
	r.pathToName[path] = name
	return name
}

// closeHelpers implements step 8: walk each newly imported function's body,
// collect direct-call and get_func_ptr references to other user functions
// in lib, and pull in the transitive closure of those not already present
// in dest.
func (r *Resolver) closeHelpers(dest, lib *ast.Program, seeds []*ast.FuncDef) error {
	seen := make(map[string]bool)
	for _, fd := range dest.Funcs {
		seen[fd.Name] = true
	}

	var queue []string
	for _, fd := range seeds {
		queue = append(queue, collectFuncRefs(fd.Body)...)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]

		if seen[name] {
			continue
		}

		fd, ok := lib.FindFunc(name)
		if !ok {
			// not a function defined in this library (could be an extern
			// or a name the semantic analyzer will reject later); skip.
			continue
		}

		if existing, ok := dest.FindFunc(name); ok {
			if !existing.SameSignature(fd) {
				return fmt.Errorf("duplicate symbol: function '%s' redefined with a different signature", name)
			}
			seen[name] = true
			continue
		}

		dest.Funcs = append(dest.Funcs, fd)
		seen[name] = true
		queue = append(queue, collectFuncRefs(fd.Body)...)
	}

	return nil
}
