package interp

import "testing"

func parseSource(t *testing.T, src string) (*Node, *ErrorChannel) {
	t.Helper()
	registry := newFunctionRegistry()
	sysFuncs := registerBuiltins(registry)
	errs := newErrorChannel()
	tokens := Tokenize(src, 0, errs)
	root := Parse(tokens, registry, sysFuncs, errs)
	return root, errs
}

func parseSourceOK(t *testing.T, src string) *Node {
	t.Helper()
	root, errs := parseSource(t, src)
	if errs.HasErrors() {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs.asError())
	}
	return root
}

func TestParseArithmeticPrecedence(t *testing.T) {
	root := parseSourceOK(t, "1+2*3")
	if len(root.Children) != 1 {
		t.Fatalf("expected a single statement, got %d", len(root.Children))
	}
	st := root.Children[0]
	if st.Kind != NOperator || st.Flag != '+' {
		t.Fatalf("expected top-level +, got kind=%v flag=%q", st.Kind, st.Flag)
	}
	if st.Right.Kind != NOperator || st.Right.Flag != '*' {
		t.Fatalf("expected 2*3 grouped on the right, got kind=%v flag=%q", st.Right.Kind, st.Right.Flag)
	}
}

func TestParseJoshiBoundCall(t *testing.T) {
	root := parseSourceOK(t, "3に5を足す")
	if len(root.Children) != 1 {
		t.Fatalf("expected a single statement, got %d", len(root.Children))
	}
	st := root.Children[0]
	if st.Kind != NCallSysFunc {
		t.Fatalf("expected a sys-func call, got %v", st.Kind)
	}
	if st.Call.Name != "足す" {
		t.Fatalf("expected call to 足す, got %q", st.Call.Name)
	}
	if len(st.Call.Args) != 2 {
		t.Fatalf("expected 2 bound args, got %d", len(st.Call.Args))
	}
	if st.Call.Args[0].IntVal != 3 || st.Call.Args[1].IntVal != 5 {
		t.Fatalf("expected args [3,5] bound by joshi position, got %v", st.Call.Args)
	}
}

func TestParseCallMissingArgFillsImplicitSore(t *testing.T) {
	root := parseSourceOK(t, "5を足す")
	st := root.Children[0]
	if st.Kind != NCallSysFunc {
		t.Fatalf("expected a sys-func call, got %v", st.Kind)
	}
	if len(st.Call.Args) != 2 {
		t.Fatalf("expected the missing argument filled implicitly, got %d args", len(st.Call.Args))
	}
	filled := st.Call.Args[0]
	if filled.Kind != NGetVarGlobal && filled.Kind != NGetVarLocal {
		t.Fatalf("expected implicit それ get-var node, got %v", filled.Kind)
	}
}

func TestParseCallSecondMissingArgIsError(t *testing.T) {
	_, errs := parseSource(t, "足す")
	if !errs.HasErrors() {
		t.Fatal("expected a parse error naming the unbound function")
	}
}

func TestParseIfElse(t *testing.T) {
	root := parseSourceOK(t, "もしAならば1を表示 違えば2を表示")
	st := root.Children[0]
	if st.Kind != NIf {
		t.Fatalf("expected if node, got %v", st.Kind)
	}
	if st.If.Then == nil {
		t.Fatal("expected a then-branch")
	}
	if st.If.Else == nil {
		t.Fatal("expected an else-branch")
	}
}

func TestParseIfNegativeConditionWraps(t *testing.T) {
	root := parseSourceOK(t, "もしAでなければ1を表示")
	st := root.Children[0]
	if st.Kind != NIf {
		t.Fatalf("expected if node, got %v", st.Kind)
	}
	if st.If.Cond.Kind != NOperator || st.If.Cond.Flag != '!' {
		t.Fatalf("expected negated condition wrapped in unary !, got kind=%v flag=%q", st.If.Cond.Kind, st.If.Cond.Flag)
	}
}

func TestParseKaiLoop(t *testing.T) {
	root := parseSourceOK(t, "3回、表示")
	st := root.Children[0]
	if st.Kind != NKai {
		t.Fatalf("expected a kai node, got %v", st.Kind)
	}
	if st.Kai.Count == nil || st.Kai.Count.IntVal != 3 {
		t.Fatalf("expected count 3, got %v", st.Kai.Count)
	}
}

func TestParseForLoop(t *testing.T) {
	root := parseSourceOK(t, "1から10まで繰返、表示")
	st := root.Children[0]
	if st.Kind != NFor {
		t.Fatalf("expected a for node, got %v", st.Kind)
	}
	if st.For.From == nil || st.For.From.IntVal != 1 {
		t.Fatalf("expected from=1, got %v", st.For.From)
	}
	if st.For.To == nil || st.For.To.IntVal != 10 {
		t.Fatalf("expected to=10, got %v", st.For.To)
	}
}

func TestParseArrayLiteral(t *testing.T) {
	root := parseSourceOK(t, "[1,2,3]を表示")
	st := root.Children[0]
	if st.Kind != NCallSysFunc {
		t.Fatalf("expected call to 表示, got %v", st.Kind)
	}
	arg := st.Call.Args[0]
	if arg.Kind != NArrayCreate {
		t.Fatalf("expected an array-create argument, got %v", arg.Kind)
	}
	if len(arg.Children) != 3 {
		t.Fatalf("expected 3 array elements, got %d", len(arg.Children))
	}
}

func TestParseArrayRef(t *testing.T) {
	root := parseSourceOK(t, "A[0]を表示")
	st := root.Children[0]
	if st.Kind != NCallSysFunc {
		t.Fatalf("expected call to 表示, got %v", st.Kind)
	}
	arg := st.Call.Args[0]
	if arg.Kind != NArrayRef {
		t.Fatalf("expected array-ref argument, got %v", arg.Kind)
	}
	if arg.ArrayBase == nil || (arg.ArrayBase.Kind != NGetVarGlobal && arg.ArrayBase.Kind != NGetVarLocal) {
		t.Fatalf("expected a get-var base, got %v", arg.ArrayBase)
	}
	if len(arg.Indices) != 1 || arg.Indices[0].IntVal != 0 {
		t.Fatalf("expected index [0], got %v", arg.Indices)
	}
}

func TestParseArrayAssignRequiresPriorDeclaration(t *testing.T) {
	_, errs := parseSource(t, "A[0]=1")
	if !errs.HasErrors() {
		t.Fatal("expected an error assigning into an undeclared array")
	}
}

func TestParseArrayAssignAfterDeclaration(t *testing.T) {
	root := parseSourceOK(t, "変数 A\nA[0]=1")
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(root.Children))
	}
	assign := root.Children[1]
	if assign.Kind != NArrayLet {
		t.Fatalf("expected an array-let node, got %v", assign.Kind)
	}
}

func TestParseVarDeclThenAssign(t *testing.T) {
	root := parseSourceOK(t, "変数 A\nA=1")
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(root.Children))
	}
	assign := root.Children[1]
	if assign.Kind != NLetVarLocal && assign.Kind != NLetVarGlobal {
		t.Fatalf("expected a let-var node, got %v", assign.Kind)
	}
}

func TestParseRenbunChain(t *testing.T) {
	root := parseSourceOK(t, "1を表示して2を表示")
	st := root.Children[0]
	if st.Kind != NNodeList {
		t.Fatalf("expected a renbun chain node-list, got %v", st.Kind)
	}
	if len(st.Children) != 2 {
		t.Fatalf("expected 2 chained calls, got %d", len(st.Children))
	}
	if st.Children[0].Call == nil || st.Children[0].Call.Name != "表示" {
		t.Fatalf("expected first call 表示, got %v", st.Children[0].Call)
	}
	if st.Children[0].Call.Args[0].IntVal != 1 {
		t.Fatalf("expected first call bound to 1, got %v", st.Children[0].Call.Args)
	}
	if st.Children[1].Call == nil || st.Children[1].Call.Name != "表示" {
		t.Fatalf("expected second call 表示, got %v", st.Children[1].Call)
	}
	if st.Children[1].Call.Args[0].IntVal != 2 {
		t.Fatalf("expected second call bound to 2, got %v", st.Children[1].Call.Args)
	}
}

func TestParseUserFunctionDefinitionAndCall(t *testing.T) {
	src := "●(Aに,Bを)合計する\n戻す A+B\nここまで\n1に2を合計する"
	root := parseSourceOK(t, src)
	var foundCall bool
	for _, st := range root.Children {
		if st.Kind == NCallUserFunc {
			foundCall = true
			if st.Call.Name != "合計" {
				t.Fatalf("expected a call to 合計 (okurigana-stripped 合計する), got %q", st.Call.Name)
			}
			if len(st.Call.Args) != 2 {
				t.Fatalf("expected 2 args bound to the user function, got %d", len(st.Call.Args))
			}
		}
	}
	if !foundCall {
		t.Fatal("expected a user-function call statement in the parsed output")
	}
}
