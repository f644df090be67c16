package irgen

import (
	"fusion/ast"
	ftypes "fusion/types"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// genTopLevelItem lowers one top-level let/statement/expression item, run
// sequentially at the start of the entry function (§4.6).
func (e *Emitter) genTopLevelItem(item ast.TopLevelItem) {
	switch item.Kind {
	case ast.TopLevelLet:
		e.genLet(item.Let)
	case ast.TopLevelStmt:
		e.genStmt(item.Stmt)
	case ast.TopLevelExpr:
		e.genExpr(item.Expr)
	}
}

func (e *Emitter) genStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Return:
		e.genReturn(v)
	case *ast.Let:
		e.genLet(v)
	case *ast.ExprStmt:
		e.genExpr(v.X)
	case *ast.If:
		e.genIf(v)
	case *ast.For:
		e.genFor(v)
	case *ast.Assign:
		e.genAssign(v)
	default:
		internalError("unhandled statement kind")
	}
}

func (e *Emitter) genReturn(s *ast.Return) {
	if s.Value == nil {
		e.block.NewRet(nil)
		return
	}

	val := e.genExpr(s.Value)
	val = e.coerce(val, s.Value.Type(), e.retType)
	e.block.NewRet(val)
}

// genLet lowers `let name = expr;`: allocate a slot typed to the
// initializer's semantic type, store, bind, and propagate any array-element
// or function-pointer annotation the initializer carries (§4.6).
func (e *Emitter) genLet(s *ast.Let) {
	val := e.genExpr(s.Init)
	t := s.Init.Type()

	slot := e.enclosingFunc.Blocks[0].NewAlloca(convType(t))
	e.block.NewStore(val, slot)

	ls := &localSlot{Addr: slot, Typ: t}
	e.annotateSlot(ls, s.Init)
	e.defineLocal(s.Name, ls)
}

// genCondI1 lowers a condition expression to i1, comparing against zero
// when the expression's static type is numeric (§4.6).
func (e *Emitter) genCondI1(cond ast.Expr) value.Value {
	val := e.genExpr(cond)
	if cond.Type() == ftypes.F64 || cond.Type() == ftypes.F32 {
		zero := constant.NewFloat(types.Double, 0)
		f := e.coerce(val, cond.Type(), ftypes.F64)
		return e.block.NewFCmp(enum.FPredONE, f, zero)
	}

	i := e.coerce(val, cond.Type(), ftypes.I64)
	return e.block.NewICmp(enum.IPredNE, i, constant.NewInt(types.I64, 0))
}

func (e *Emitter) genIf(s *ast.If) {
	mergeBlock := e.enclosingFunc.NewBlock(e.blockName("if.end"))

	cond := e.genCondI1(s.Cond)
	thenBlock := e.enclosingFunc.NewBlock(e.blockName("if.then"))

	var restEntry = mergeBlock
	if len(s.Elifs) > 0 || s.HasElse {
		restEntry = e.enclosingFunc.NewBlock(e.blockName("if.else"))
	}

	e.block.NewCondBr(cond, thenBlock, restEntry)

	e.block = thenBlock
	e.pushScope()
	for _, st := range s.Then {
		e.genStmt(st)
	}
	e.popScope()
	if e.block.Term == nil {
		e.block.NewBr(mergeBlock)
	}

	cur := restEntry
	for i, elif := range s.Elifs {
		e.block = cur
		econd := e.genCondI1(elif.Cond)
		elifThen := e.enclosingFunc.NewBlock(e.blockName("elif.then"))

		next := mergeBlock
		last := i == len(s.Elifs)-1
		if !last || s.HasElse {
			next = e.enclosingFunc.NewBlock(e.blockName("elif.else"))
		}

		e.block.NewCondBr(econd, elifThen, next)

		e.block = elifThen
		e.pushScope()
		for _, st := range elif.Body {
			e.genStmt(st)
		}
		e.popScope()
		if e.block.Term == nil {
			e.block.NewBr(mergeBlock)
		}

		cur = next
	}

	if s.HasElse {
		e.block = cur
		e.pushScope()
		for _, st := range s.Else {
			e.genStmt(st)
		}
		e.popScope()
		if e.block.Term == nil {
			e.block.NewBr(mergeBlock)
		}
	}

	e.block = mergeBlock
}

// genFor lowers `for name in iterable { ... }` over a length-prefixed
// array: load the length once, then walk a counter from 0 to length,
// loading each element into one loop-variable slot that is allocated once
// in the entry block and overwritten on every iteration (§4.6).
func (e *Emitter) genFor(s *ast.For) {
	base := e.genExpr(s.Iterable)
	elem, ok := e.elemTypeOf(s.Iterable)
	if !ok {
		elem = ftypes.I64
	}
	elemLLType := convType(elem)

	lenPtr := e.block.NewBitCast(base, types.NewPointer(types.I64))
	length := e.block.NewLoad(types.I64, lenPtr)

	entryBlock := e.enclosingFunc.Blocks[0]
	idxSlot := entryBlock.NewAlloca(types.I64)
	e.block.NewStore(constant.NewInt(types.I64, 0), idxSlot)
	loopVarSlot := entryBlock.NewAlloca(elemLLType)

	condBlock := e.enclosingFunc.NewBlock(e.blockName("for.cond"))
	bodyBlock := e.enclosingFunc.NewBlock(e.blockName("for.body"))
	exitBlock := e.enclosingFunc.NewBlock(e.blockName("for.exit"))

	e.block.NewBr(condBlock)

	e.block = condBlock
	idx := e.block.NewLoad(types.I64, idxSlot)
	cmp := e.block.NewICmp(enum.IPredSLT, idx, length)
	e.block.NewCondBr(cmp, bodyBlock, exitBlock)

	e.block = bodyBlock
	addr := e.computeElemAddr(base, idx, ftypes.SizeOf(elem))
	typedPtr := e.block.NewBitCast(addr, types.NewPointer(elemLLType))
	elemVal := e.block.NewLoad(elemLLType, typedPtr)
	e.block.NewStore(elemVal, loopVarSlot)

	e.pushScope()
	e.defineLocal(s.VarName, &localSlot{Addr: loopVarSlot, Typ: elem})
	for _, st := range s.Body {
		e.genStmt(st)
	}
	e.popScope()

	if e.block.Term == nil {
		nextIdx := e.block.NewAdd(idx, constant.NewInt(types.I64, 1))
		e.block.NewStore(nextIdx, idxSlot)
		e.block.NewBr(condBlock)
	}

	e.block = exitBlock
}

// genAssign lowers `target = value;` for both variable and index targets
// (§4.6).
func (e *Emitter) genAssign(s *ast.Assign) {
	rhsVal := e.genExpr(s.Value)
	rhsType := s.Value.Type()

	if s.Target.Index != nil {
		idx := s.Target.Index
		base := e.genExpr(idx.Base)
		iVal := e.genExpr(idx.Index)

		elem, ok := e.elemTypeOf(idx.Base)
		if !ok {
			elem = ftypes.I64
		}

		e.emitBoundsCheck(base, iVal)
		addr := e.computeElemAddr(base, iVal, ftypes.SizeOf(elem))
		typedPtr := e.block.NewBitCast(addr, types.NewPointer(convType(elem)))
		e.block.NewStore(e.coerce(rhsVal, rhsType, elem), typedPtr)
		return
	}

	name := s.Target.VarName
	slot, ok := e.lookupLocal(name)
	if !ok {
		internalError("undefined local '%s'", name)
		return
	}

	e.block.NewStore(e.coerce(rhsVal, rhsType, slot.Typ), slot.Addr)
	e.annotateSlot(slot, s.Value)
}
