package interp

// SysFuncImpl is a registered built-in function implementation. It receives
// the running Context and the already-evaluated argument vector (ordered to
// match ArgSpec) and may return a value that becomes それ.
type SysFuncImpl func(ctx *Context, args []Value) (Value, error)

// SysFuncInfo is one entry of the system's function-info vector: a
// registration for a built-in function.
type SysFuncInfo struct {
	Name    string
	ArgSpec ArgSpec
	Impl    SysFuncImpl
}

// UserFuncInfo is one entry of the system's function-info vector for a
// user-defined function: its signature plus (once parsed) its body.
type UserFuncInfo struct {
	Name    string
	ArgSpec ArgSpec
	Body    *Node // nil until the main parse pass fills it in
}

// FunctionRegistry owns both function-info vectors, addressed by
// registration id, so call nodes can store an id instead of embedding the
// body.
type FunctionRegistry struct {
	sys  []*SysFuncInfo
	user []*UserFuncInfo
}

func newFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{}
}

func (r *FunctionRegistry) registerSys(info *SysFuncInfo) int {
	r.sys = append(r.sys, info)
	return len(r.sys) - 1
}

func (r *FunctionRegistry) registerUser(info *UserFuncInfo) int {
	r.user = append(r.user, info)
	return len(r.user) - 1
}

func (r *FunctionRegistry) sysInfo(id int) *SysFuncInfo   { return r.sys[id] }
func (r *FunctionRegistry) userInfo(id int) *UserFuncInfo { return r.user[id] }
