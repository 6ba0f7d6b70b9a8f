package interp

import "fmt"

// registerBuiltins seeds the function registry with a small example
// catalog of built-ins: enough to make end-to-end arithmetic/print/loop
// scenarios runnable. A full standard-library catalog is out of core scope.
func registerBuiltins(registry *FunctionRegistry) map[string]*FuncDescriptor {
	table := map[string]*FuncDescriptor{}

	// Call sites are looked up by the tokenized word, and the tokenizer
	// strips okurigana before emitting a word (見出し語 match, per
	// stripOkurigana); the table must be keyed the same way or a
	// built-in whose name carries okurigana (足す, 引く, ...) is never found.
	add := func(name string, spec ArgSpec, impl SysFuncImpl) {
		id := registry.registerSys(&SysFuncInfo{Name: name, ArgSpec: spec, Impl: impl})
		table[stripOkurigana(name)] = &FuncDescriptor{Name: name, RegID: id, IsUser: false}
	}

	add("表示", ArgSpec{{Name: "A", Joshi: []string{"と", "を", "の"}}}, func(ctx *Context, args []Value) (Value, error) {
		v := args[0]
		ctx.Print(v.AsString())
		return v, nil
	})

	add("足す", ArgSpec{{Name: "A", Joshi: []string{"に"}}, {Name: "B", Joshi: []string{"を"}}}, func(ctx *Context, args []Value) (Value, error) {
		return Add(args[0], args[1]), nil
	})

	add("引く", ArgSpec{{Name: "A", Joshi: []string{"から"}}, {Name: "B", Joshi: []string{"を"}}}, func(ctx *Context, args []Value) (Value, error) {
		return Sub(args[0], args[1]), nil
	})

	add("掛ける", ArgSpec{{Name: "A", Joshi: []string{"に"}}, {Name: "B", Joshi: []string{"を"}}}, func(ctx *Context, args []Value) (Value, error) {
		return Mul(args[0], args[1]), nil
	})

	add("割る", ArgSpec{{Name: "A", Joshi: []string{"を"}}, {Name: "B", Joshi: []string{"で"}}}, func(ctx *Context, args []Value) (Value, error) {
		if args[1].AsFloat() == 0 {
			return Empty(), fmt.Errorf("0で割ることはできません。")
		}
		return Div(args[0], args[1]), nil
	})

	add("長さ", ArgSpec{{Name: "A", Joshi: []string{"の", "を"}}}, func(ctx *Context, args []Value) (Value, error) {
		switch args[0].Kind {
		case VArray:
			return IntValue(int64(len(args[0].Array))), nil
		default:
			return IntValue(int64(len([]rune(args[0].AsString())))), nil
		}
	})

	return table
}
