package interp

// ctrlSignal tracks a pending break/continue/return that is propagating up
// out of a nested block, the way loop and call drivers clear it once it
// reaches the construct that should absorb it.
type ctrlSignal int

const (
	sigNone ctrlSignal = iota
	sigBreak
	sigContinue
	sigReturn
)

// maxCallDepth bounds user-function recursion so a runaway recursive
// definition fails with a diagnostic instead of exhausting the Go stack.
const maxCallDepth = 512

// Context is the live evaluation state for one Eval call: the scope stack,
// the function registry, the error channel, recursion depth, pending
// control signal, and the optional print sink.
type Context struct {
	scopes    *ScopeStack
	registry  *FunctionRegistry
	errs      *ErrorChannel
	callDepth int
	signal    ctrlSignal
	returnVal Value
	printHook func(string)
	printLog  []string
}

func newContext(registry *FunctionRegistry, errs *ErrorChannel) *Context {
	return &Context{
		scopes:   newScopeStack(),
		registry: registry,
		errs:     errs,
	}
}

// Print appends to the print log and, if set, forwards to the print hook.
// Built-ins that implement 表示-style output call this.
func (ctx *Context) Print(s string) {
	ctx.printLog = append(ctx.printLog, s)
	if ctx.printHook != nil {
		ctx.printHook(s)
	}
}

// Run executes a top-level node list (the parser's root) to completion and
// returns the final それ of the global scope.
func (ctx *Context) Run(root *Node) Value {
	ctx.execBlock(root)
	ctx.signal = sigNone
	return ctx.scopes.global().sore()
}

func (ctx *Context) execBlock(list *Node) {
	if list == nil {
		return
	}
	for _, st := range list.Children {
		ctx.execStatement(st)
		if ctx.signal != sigNone {
			return
		}
	}
}

func (ctx *Context) execStatement(st *Node) {
	switch st.Kind {
	case NIf:
		ctx.evalIf(st)
	case NKai:
		ctx.evalKai(st)
	case NFor:
		ctx.evalFor(st)
	case NBreak:
		ctx.signal = sigBreak
	case NContinue:
		ctx.signal = sigContinue
	case NReturn:
		var v Value
		if st.Left != nil {
			v = ctx.evalNode(st.Left)
		} else {
			v = ctx.scopes.top().sore()
		}
		ctx.returnVal = v
		ctx.signal = sigReturn
	case NNop, NComment:
		// no-op
	default:
		v := ctx.evalNode(st)
		ctx.scopes.top().setSore(v)
	}
}

func (ctx *Context) evalIf(st *Node) {
	cond := ctx.evalNode(st.If.Cond)
	if cond.AsBool() {
		ctx.execBlock(st.If.Then)
		return
	}
	if st.If.Else != nil {
		ctx.execBlock(st.If.Else)
	}
}

// evalKai runs a counted loop, binding 回数 in the global scope on every
// iteration (spec's reproduced-verbatim behavior: 回数 is always a global
// binding, even inside a user function body).
func (ctx *Context) evalKai(st *Node) {
	count := ctx.evalNode(st.Kai.Count).AsInt()
	for i := int64(1); i <= count; i++ {
		ctx.scopes.declareGlobal("回数", IntValue(i), VarMeta{Kind: VarNumber})
		ctx.execBlock(st.Kai.Body)
		switch ctx.signal {
		case sigBreak:
			ctx.signal = sigNone
			return
		case sigContinue:
			ctx.signal = sigNone
		case sigReturn:
			return
		}
	}
}

func (ctx *Context) evalFor(st *Node) {
	from := ctx.evalNode(st.For.From).AsInt()
	to := ctx.evalNode(st.For.To).AsInt()
	step := int64(1)
	if from > to {
		step = -1
	}
	var loopVarName string
	if st.For.LoopVar != nil {
		loopVarName = st.For.LoopVar.VarRef.Name
	}
	for i := from; (step > 0 && i <= to) || (step < 0 && i >= to); i += step {
		if loopVarName != "" {
			ctx.scopes.declareGlobal(loopVarName, IntValue(i), VarMeta{Kind: VarNumber})
		}
		ctx.execBlock(st.For.Body)
		switch ctx.signal {
		case sigBreak:
			ctx.signal = sigNone
			return
		case sigContinue:
			ctx.signal = sigNone
		case sigReturn:
			return
		}
	}
}

func (ctx *Context) evalNode(n *Node) Value {
	if n == nil {
		return Empty()
	}
	switch n.Kind {
	case NNop, NComment:
		return Empty()
	case NInt:
		return IntValue(n.IntVal)
	case NNumber:
		return FloatValue(n.FloatVal)
	case NString:
		return StringValue(n.StrVal)
	case NBool:
		return BoolValue(n.BoolVal)
	case NNodeList:
		ctx.execBlock(n)
		return ctx.scopes.top().sore()
	case NGetVarGlobal:
		return ctx.getVar(n.VarRef.Name, true)
	case NGetVarLocal:
		return ctx.getVar(n.VarRef.Name, false)
	case NLetVarGlobal:
		v := ctx.evalNode(n.Let.Value)
		ctx.setVar(n.Let.Var.Name, v)
		return v
	case NLetVarLocal:
		v := ctx.evalNode(n.Let.Value)
		ctx.scopes.top().declare(n.Let.Var.Name, v, VarMeta{Kind: kindOfValue(v)})
		return v
	case NOperator:
		return ctx.evalOperator(n)
	case NCallSysFunc:
		return ctx.callSys(n)
	case NCallUserFunc:
		return ctx.callUser(n)
	case NArrayCreate:
		vals := make([]Value, len(n.Children))
		for i, c := range n.Children {
			vals[i] = ctx.evalNode(c)
		}
		return ArrayValue(vals)
	case NArrayRef:
		return ctx.evalArrayRef(n)
	case NArrayLet:
		return ctx.evalArrayLet(n)
	default:
		return Empty()
	}
}

func (ctx *Context) getVar(name string, globalOnMiss bool) Value {
	if level, slot, ok := ctx.scopes.resolve(name); ok {
		return ctx.scopes.at(level).get(slot)
	}
	if globalOnMiss {
		_, slot := ctx.scopes.declareGlobal(name, Empty(), VarMeta{})
		return ctx.scopes.global().get(slot)
	}
	_, slot := ctx.scopes.resolveOrCreate(name)
	return ctx.scopes.top().get(slot)
}

func (ctx *Context) setVar(name string, v Value) {
	if level, slot, ok := ctx.scopes.resolve(name); ok {
		ctx.scopes.at(level).set(slot, v)
		return
	}
	ctx.scopes.declareGlobal(name, v, VarMeta{Kind: kindOfValue(v)})
}

func kindOfValue(v Value) VarKind {
	switch v.Kind {
	case VBool:
		return VarBool
	case VInt, VFloat:
		return VarNumber
	case VString:
		return VarString
	case VArray:
		return VarArray
	case VFunc:
		return VarUserFunction
	default:
		return VarEmpty
	}
}

func (ctx *Context) evalOperator(n *Node) Value {
	if n.Flag == '!' {
		return BoolValue(!ctx.evalNode(n.Left).AsBool())
	}
	left := ctx.evalNode(n.Left)
	right := ctx.evalNode(n.Right)
	v, ok := ApplyOperator(n.Flag, left, right)
	if !ok {
		ctx.errs.pushRuntime(n.Pos, "不明な演算子です。(%q)", n.Flag)
		return Empty()
	}
	return v
}

func (ctx *Context) callSys(n *Node) Value {
	info := ctx.registry.sysInfo(n.Call.RegID)
	args := make([]Value, len(n.Call.Args))
	for i, a := range n.Call.Args {
		args[i] = ctx.evalNode(a)
	}
	v, err := info.Impl(ctx, args)
	if err != nil {
		ctx.errs.pushRuntime(n.Pos, wrapCallError(info.Name, err.Error()))
		return Empty()
	}
	return v
}

// callUser implements the user-function call convention: push a local
// frame, bind parameters by name, run the body, then pop the frame and copy
// それ (or an explicit 戻 value) back to the caller.
func (ctx *Context) callUser(n *Node) Value {
	info := ctx.registry.userInfo(n.Call.RegID)
	args := make([]Value, len(n.Call.Args))
	for i, a := range n.Call.Args {
		args[i] = ctx.evalNode(a)
	}

	if ctx.callDepth >= maxCallDepth {
		ctx.errs.pushRuntime(n.Pos, wrapCallError(info.Name, "再帰呼び出しが深すぎます。"))
		return Empty()
	}

	scope := newScope(info.Name, false)
	for i, param := range info.ArgSpec {
		var v Value
		if i < len(args) {
			v = args[i]
		}
		scope.declare(param.Name, v, VarMeta{Kind: kindOfValue(v)})
	}
	ctx.scopes.push(scope)
	ctx.callDepth++

	if info.Body != nil {
		ctx.execBlock(info.Body)
	}

	var result Value
	if ctx.signal == sigReturn {
		result = ctx.returnVal
	} else {
		result = scope.sore()
	}
	// A function call absorbs any pending signal at its own boundary; the
	// parser accepts 抜/続 outside a loop, so a stray break/continue can
	// reach here and is cleared along with a return.
	ctx.signal = sigNone

	ctx.scopes.pop()
	ctx.callDepth--
	return result
}

func (ctx *Context) evalArrayRef(n *Node) Value {
	cur := ctx.evalNode(n.ArrayBase)
	for _, idxNode := range n.Indices {
		idx := int(ctx.evalNode(idxNode).AsInt())
		if cur.Kind != VArray || idx < 0 || idx >= len(cur.Array) {
			return Empty()
		}
		cur = cur.Array[idx]
	}
	return cur
}

func (ctx *Context) evalArrayLet(n *Node) Value {
	name := n.Let.Var.Name
	// getVar auto-creates an absent variable as empty; the "array write to
	// an undeclared variable" error is caught earlier, by the parser's
	// knownVars gate.
	cur := ctx.getVar(name, true)
	if cur.Kind != VArray {
		cur = ArrayValue(nil)
	}
	indices := make([]int, len(n.Let.Indices))
	for i, idxNode := range n.Let.Indices {
		indices[i] = int(ctx.evalNode(idxNode).AsInt())
	}
	val := ctx.evalNode(n.Let.Value)
	ctx.setVar(name, arraySet(cur, indices, val))
	return val
}

// arraySet returns a new array Value with the element at indices replaced,
// growing intermediate dimensions with Empty() as needed, functionally
// (never mutating a slice another Value still aliases).
func arraySet(v Value, indices []int, newVal Value) Value {
	if len(indices) == 0 {
		return newVal
	}
	idx := indices[0]
	if idx < 0 {
		idx = 0
	}
	arr := append([]Value{}, v.Array...)
	for len(arr) <= idx {
		arr = append(arr, Empty())
	}
	arr[idx] = arraySet(arr[idx], indices[1:], newVal)
	return ArrayValue(arr)
}
