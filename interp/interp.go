package interp

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// Options configures a new Interpreter, passed by value to New rather than
// via functional options.
type Options struct {
	// FileName is the logical source file name used for diagnostics and as
	// the base directory for resolving 取込 include directives. Empty means
	// the current working directory and an unnamed source.
	FileName string

	// Stdout receives 表示 output when no PrintHook is set. Defaults to
	// os.Stdout.
	Stdout io.Writer

	// Debug turns on the switch that debugEnabled reports, the same switch
	// the NAKO_TRACE_NODE environment variable flips. The evaluator does not
	// read that switch, so no node-execution trace is written.
	Debug bool
}

// Interpreter is the embeddable entry point: it owns the function registry
// (built-ins plus whatever the host registers) across repeated Eval calls.
type Interpreter struct {
	opt       Options
	registry  *FunctionRegistry
	sysFuncs  map[string]*FuncDescriptor
	fileNames []string
	printHook func(string)
	printLog  []string
}

// New returns a ready-to-use Interpreter seeded with the built-in function
// catalog.
func New(options Options) *Interpreter {
	registry := newFunctionRegistry()
	sysFuncs := registerBuiltins(registry)
	if options.Stdout == nil {
		options.Stdout = os.Stdout
	}
	return &Interpreter{
		opt:      options,
		registry: registry,
		sysFuncs: sysFuncs,
	}
}

// SetFileName registers a source file name, returning its numeric file id
// for use in Position.FileID.
func (ip *Interpreter) SetFileName(name string) int {
	ip.fileNames = append(ip.fileNames, name)
	return len(ip.fileNames) - 1
}

// RegisterFunc adds a host-provided built-in, callable by name with
// joshi-driven argument binding like any system function. name is keyed by
// its okurigana-stripped form, matching how the tokenizer emits word tokens,
// so a call site naming the full dictionary form still resolves.
func (ip *Interpreter) RegisterFunc(name string, spec ArgSpec, impl SysFuncImpl) {
	id := ip.registry.registerSys(&SysFuncInfo{Name: name, ArgSpec: spec, Impl: impl})
	ip.sysFuncs[stripOkurigana(name)] = &FuncDescriptor{Name: name, RegID: id}
}

// SetPrintHook installs a sink for 表示-style output in place of
// Options.Stdout; either way, output also accumulates in PrintLog.
func (ip *Interpreter) SetPrintHook(hook func(string)) {
	ip.printHook = hook
}

// PrintLog returns every line printed since the Interpreter was created.
func (ip *Interpreter) PrintLog() []string {
	return ip.printLog
}

func (ip *Interpreter) debugEnabled() bool {
	if ip.opt.Debug {
		return true
	}
	v, _ := strconv.ParseBool(os.Getenv("NAKO_TRACE_NODE"))
	return v
}

// Tokens tokenizes source (without parsing or running it) for the CLI's
// --parse debug mode, returning the token stream and any lexical errors.
func (ip *Interpreter) Tokens(source string) ([]Token, error) {
	name := ip.opt.FileName
	if name == "" {
		name = "(eval)"
	}
	fileID := ip.SetFileName(name)
	errs := newErrorChannel()
	tokens := Tokenize(source, fileID, errs)
	return tokens, errs.asError()
}

// Eval tokenizes, resolves includes, parses, and runs source, returning the
// final それ of the global scope.
func (ip *Interpreter) Eval(source string) (Value, error) {
	errs := newErrorChannel()

	name := ip.opt.FileName
	if name == "" {
		name = "(eval)"
	}
	fileID := ip.SetFileName(name)

	tokens := Tokenize(source, fileID, errs)

	baseDir := "."
	if ip.opt.FileName != "" {
		baseDir = filepath.Dir(ip.opt.FileName)
	}
	tokens = ip.loadIncludes(tokens, baseDir, errs, map[string]bool{})

	root := Parse(tokens, ip.registry, ip.sysFuncs, errs)
	if errs.HasErrors() {
		return Empty(), errs.asError()
	}

	ctx := newContext(ip.registry, errs)
	ctx.printHook = func(s string) {
		if ip.printHook != nil {
			ip.printHook(s)
			return
		}
		fmt.Fprintln(ip.opt.Stdout, s)
	}

	result := ctx.Run(root)
	ip.printLog = append(ip.printLog, ctx.printLog...)

	if errs.HasErrors() {
		return result, errs.asError()
	}
	return result, nil
}

// loadIncludes recursively resolves 取込 directives found by
// preReadIncludes, reading referenced files relative to baseDir and
// splicing their (recursively resolved) tokens ahead of the caller's
// stream, the way included definitions are loaded before the sentences
// that use them.
func (ip *Interpreter) loadIncludes(tokens []Token, baseDir string, errs *ErrorChannel, visited map[string]bool) []Token {
	paths, rewritten := preReadIncludes(tokens)

	var prefix []Token
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(full) {
			full = filepath.Join(baseDir, full)
		}
		if visited[full] {
			continue
		}
		visited[full] = true

		data, err := os.ReadFile(full)
		if err != nil {
			errs.pushParser(Position{}, "取込「%s」の読み込みに失敗しました。", p)
			continue
		}

		fileID := ip.SetFileName(full)
		incTokens := Tokenize(string(data), fileID, errs)
		incTokens = ip.loadIncludes(incTokens, filepath.Dir(full), errs, visited)
		prefix = append(prefix, incTokens...)
	}

	return append(prefix, rewritten...)
}
