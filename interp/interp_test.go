package interp

import "testing"

func evalOK(t *testing.T, src string) (Value, *Interpreter) {
	t.Helper()
	ip := New(Options{})
	v, err := ip.Eval(src)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", src, err)
	}
	return v, ip
}

func TestEvalArithmeticPrecedence(t *testing.T) {
	v, _ := evalOK(t, "1+2*3")
	if v.AsInt() != 7 {
		t.Fatalf("expected 7, got %v", v)
	}
}

func TestEvalJoshiBoundCall(t *testing.T) {
	v, _ := evalOK(t, "3に5を足す")
	if v.AsInt() != 8 {
		t.Fatalf("expected 8, got %v", v)
	}
}

func TestEvalPrintLog(t *testing.T) {
	_, ip := evalOK(t, "1を表示して2を表示")
	log := ip.PrintLog()
	if len(log) != 2 || log[0] != "1" || log[1] != "2" {
		t.Fatalf("expected [\"1\",\"2\"], got %v", log)
	}
}

func TestEvalIfElseBranching(t *testing.T) {
	_, ip := evalOK(t, "変数 A=1\nもしA==1ならば\n100を表示\n違えば\n200を表示\nここまで")
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "100" {
		t.Fatalf("expected [\"100\"], got %v", log)
	}
}

func TestEvalCountedLoopSumsCounter(t *testing.T) {
	_, ip := evalOK(t, "変数 合計=0\n3回\n合計=合計に回数を足す\nここまで\n合計を表示")
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "6" {
		t.Fatalf("expected [\"6\"], got %v", log)
	}
}

func TestEvalForLoopRange(t *testing.T) {
	_, ip := evalOK(t, "変数 合計=0\nAを1から3まで繰返\n合計=合計にAを足す\nここまで\n合計を表示")
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "6" {
		t.Fatalf("expected [\"6\"], got %v", log)
	}
}

func TestEvalArrayReadWrite(t *testing.T) {
	_, ip := evalOK(t, "変数 A\nA[0]=10\nA[0]を表示")
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "10" {
		t.Fatalf("expected [\"10\"], got %v", log)
	}
}

func TestEvalArrayWriteDoesNotAliasCopy(t *testing.T) {
	_, ip := evalOK(t, "変数 A\nA[0]=1\n変数 B=A\nA[0]=2\nB[0]を表示")
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "1" {
		t.Fatalf("expected the array copy to keep its old element, got %v", log)
	}
}

func TestEvalBreakStopsLoop(t *testing.T) {
	_, ip := evalOK(t, "5回\nもし回数==3ならば\n抜\nここまで\n回数を表示\nここまで")
	log := ip.PrintLog()
	if len(log) != 2 {
		t.Fatalf("expected 2 printed lines before break, got %v", log)
	}
	if log[0] != "1" || log[1] != "2" {
		t.Fatalf("expected [\"1\",\"2\"], got %v", log)
	}
}

func TestEvalUserFunctionCall(t *testing.T) {
	src := "●(Aに,Bを)合計する\n戻す A+B\nここまで\n1に2を合計するを表示"
	_, ip := evalOK(t, src)
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "3" {
		t.Fatalf("expected [\"3\"], got %v", log)
	}
}

func TestEvalStringInterpolation(t *testing.T) {
	_, ip := evalOK(t, `変数 A=5` + "\n" + `"値は{A}です"を表示`)
	log := ip.PrintLog()
	if len(log) != 1 || log[0] != "値は5です" {
		t.Fatalf("expected interpolated string, got %v", log)
	}
}

func TestEvalDivisionByZeroReturnsEmptyAndErrors(t *testing.T) {
	ip := New(Options{})
	v, err := ip.Eval("6を0で割る")
	if err == nil {
		t.Fatal("expected a runtime error dividing by zero")
	}
	if v.Kind != VEmpty {
		t.Fatalf("expected empty result, got %v", v)
	}
}

func TestEvalHostRegisteredFunc(t *testing.T) {
	ip := New(Options{})
	ip.RegisterFunc("二倍", ArgSpec{{Name: "A", Joshi: []string{"を"}}}, func(ctx *Context, args []Value) (Value, error) {
		return IntValue(args[0].AsInt() * 2), nil
	})
	v, err := ip.Eval("21を二倍")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.AsInt() != 42 {
		t.Fatalf("expected 42, got %v", v)
	}
}
