package irgen

import (
	"fusion/ast"
	ftypes "fusion/types"
)

// genFuncBody generates the body of a user function whose signature was
// already forward-declared by declareUserFuncs (§4.6: "create an entry
// block; push a fresh scope; spill each parameter to a stack slot").
func (e *Emitter) genFuncBody(fd *ast.FuncDef) {
	fn := e.userFuncs[fd.Name]
	entry := fn.NewBlock("entry")

	e.enclosingFunc = fn
	e.block = entry
	e.retType = fd.Ret.Type
	e.pushScope()

	for i, p := range fd.Params {
		slot := entry.NewAlloca(convType(p.Type))
		entry.NewStore(fn.Params[i], slot)
		e.defineLocal(p.Name, &localSlot{Addr: slot, Typ: p.Type})
	}

	for _, st := range fd.Body {
		e.genStmt(st)
	}

	if e.block.Term == nil {
		if fd.Ret.Type == ftypes.Void {
			e.block.NewRet(nil)
		} else {
			// The analyzer does not itself prove every path returns; a
			// fall-through here means the source function is missing a
			// return on some path. Mark it unreachable so the verifier
			// flags it rather than silently returning garbage.
			e.block.NewUnreachable()
		}
	}

	e.popScope()
}
