package numerics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/scanner"
)

// functions is the closed set of functions an expression may call. Each
// maps one float64 to another; nothing else is reachable from an expression.
var functions = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"log":   math.Log,
	"ln":    math.Log,
	"log10": math.Log10,
	"sqrt":  math.Sqrt,
	"abs":   math.Abs,
}

// constants is the closed set of named constants.
var constants = map[string]float64{
	"pi": math.Pi,
	"π":  math.Pi,
	"e":  math.E,
	"E":  math.E,
}

// Func is a compiled expression of the single variable x.
//
// A Func is immutable and may be evaluated concurrently from multiple
// goroutines.
type Func struct {
	src  string
	root node
}

// Compile parses src into a [Func].
//
// Expressions consist of decimal number literals, the variable x, the
// constants pi (or π) and e (or E), calls of the functions sin, cos, tan,
// asin, acos, atan, sinh, cosh, tanh, exp, log (natural logarithm), ln,
// log10, sqrt and abs, parentheses, and the operators +, -, *, / and ^ (also
// spelled **). Exponentiation is right-associative and binds tighter than
// unary minus, so -x^2 is -(x^2). Any other identifier is rejected.
//
// All errors returned by Compile are of type *[ParseError].
func Compile(src string) (*Func, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, &ParseError{Expr: src, Offset: -1, Msg: "empty expression"}
	}
	p := parser{src: src, toks: toks}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if t, ok := p.peek(); ok {
		return nil, p.errorf(t.off, "unexpected %q", t.text)
	}
	return &Func{src: src, root: root}, nil
}

// MustCompile is like [Compile] but panics if the expression cannot be
// parsed.
func MustCompile(src string) *Func {
	f, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return f
}

// Eval evaluates the expression at x. Points at which the expression is
// undefined, such as sqrt(-1), log(0) or 1/0, evaluate to NaN.
func (f *Func) Eval(x float64) float64 {
	y := f.root.eval(x)
	if math.IsInf(y, 0) {
		return math.NaN()
	}
	return y
}

// EvalAll evaluates the expression at every element of xs, storing the
// results in dst. If dst is too short, a new slice is allocated. It returns
// the slice holding the results.
func (f *Func) EvalAll(dst, xs []float64) []float64 {
	if cap(dst) < len(xs) {
		dst = make([]float64, len(xs))
	}
	dst = dst[:len(xs)]
	for i, x := range xs {
		dst[i] = f.Eval(x)
	}
	return dst
}

// String returns the source text the expression was compiled from.
func (f *Func) String() string {
	return f.src
}

type node interface {
	eval(x float64) float64
}

type (
	constNode float64
	varNode   struct{}
	negNode   struct{ arg node }
	callNode  struct {
		fn  func(float64) float64
		arg node
	}
	binaryNode struct {
		op   rune
		l, r node
	}
)

func (n constNode) eval(float64) float64 { return float64(n) }
func (varNode) eval(x float64) float64   { return x }
func (n negNode) eval(x float64) float64 { return -n.arg.eval(x) }

func (n *callNode) eval(x float64) float64 { return n.fn(n.arg.eval(x)) }

func (n *binaryNode) eval(x float64) float64 {
	a := n.l.eval(x)
	b := n.r.eval(x)
	switch n.op {
	case '+':
		return a + b
	case '-':
		return a - b
	case '*':
		return a * b
	case '/':
		return a / b
	case '^':
		return math.Pow(a, b)
	default:
		panic(fmt.Sprintf("unhandled operator %q", n.op))
	}
}

// fold replaces nodes whose operands are all constant with their value.
func fold(n node) node {
	var isConst bool
	switch n := n.(type) {
	case negNode:
		_, isConst = n.arg.(constNode)
	case *callNode:
		_, isConst = n.arg.(constNode)
	case *binaryNode:
		_, lc := n.l.(constNode)
		_, rc := n.r.(constNode)
		isConst = lc && rc
	}
	if isConst {
		return constNode(n.eval(0))
	}
	return n
}

type token struct {
	kind rune // scanner.Ident, scanner.Int, scanner.Float or an operator
	text string
	off  int
}

func tokenize(src string) ([]token, error) {
	var (
		s    scanner.Scanner
		err  error
		toks []token
	)
	s.Init(strings.NewReader(src))
	s.Mode = scanner.ScanIdents | scanner.ScanFloats
	s.Error = func(s *scanner.Scanner, msg string) {
		if err == nil {
			err = &ParseError{Expr: src, Offset: s.Pos().Offset, Msg: msg}
		}
	}
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		if err != nil {
			return nil, err
		}
		t := token{kind: tok, text: s.TokenText(), off: s.Position.Offset}
		switch tok {
		case scanner.Ident, scanner.Int, scanner.Float, '+', '-', '/', '^', '(', ')':
		case '*':
			// Two adjacent stars spell exponentiation.
			if n := len(toks); n > 0 && toks[n-1].kind == '*' && toks[n-1].off == t.off-1 {
				toks[n-1] = token{kind: '^', text: "**", off: toks[n-1].off}
				continue
			}
		default:
			return nil, &ParseError{Expr: src, Offset: t.off, Msg: fmt.Sprintf("unexpected character %q", t.text)}
		}
		toks = append(toks, t)
	}
	if err != nil {
		return nil, err
	}
	return toks, nil
}

// parser is a recursive descent parser over the grammar
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = primary [ "^" unary ]
//	primary = number | "x" | constant | function "(" expr ")" | "(" expr ")"
type parser struct {
	src  string
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

func (p *parser) accept(kinds ...rune) (token, bool) {
	t, ok := p.peek()
	if !ok {
		return token{}, false
	}
	for _, k := range kinds {
		if t.kind == k {
			p.pos++
			return t, true
		}
	}
	return token{}, false
}

func (p *parser) errorf(off int, format string, args ...any) error {
	return &ParseError{Expr: p.src, Offset: off, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseExpr() (node, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept('+', '-')
		if !ok {
			return lhs, nil
		}
		rhs, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		lhs = fold(&binaryNode{op: op.kind, l: lhs, r: rhs})
	}
}

func (p *parser) parseTerm() (node, error) {
	lhs, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.accept('*', '/')
		if !ok {
			return lhs, nil
		}
		rhs, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		lhs = fold(&binaryNode{op: op.kind, l: lhs, r: rhs})
	}
}

func (p *parser) parseUnary() (node, error) {
	if op, ok := p.accept('+', '-'); ok {
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		if op.kind == '+' {
			return arg, nil
		}
		return fold(negNode{arg: arg}), nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.accept('^'); !ok {
		return base, nil
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return fold(&binaryNode{op: '^', l: base, r: exp}), nil
}

func (p *parser) parsePrimary() (node, error) {
	t, ok := p.peek()
	if !ok {
		return nil, p.errorf(len(p.src), "unexpected end of expression")
	}
	p.pos++
	switch t.kind {
	case scanner.Int, scanner.Float:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, p.errorf(t.off, "malformed number %q", t.text)
		}
		return constNode(v), nil
	case scanner.Ident:
		return p.parseIdent(t)
	case '(':
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(')'); !ok {
			return nil, p.errorf(t.off, "unclosed parenthesis")
		}
		return inner, nil
	default:
		return nil, p.errorf(t.off, "unexpected %q", t.text)
	}
}

func (p *parser) parseIdent(t token) (node, error) {
	next, _ := p.peek()
	called := next.kind == '('

	if fn, ok := functions[t.text]; ok {
		if !called {
			return nil, p.errorf(t.off, "function %s must be called", t.text)
		}
		p.pos++
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, ok := p.accept(')'); !ok {
			return nil, p.errorf(next.off, "unclosed parenthesis in call of %s", t.text)
		}
		return fold(&callNode{fn: fn, arg: arg}), nil
	}

	var n node
	if c, ok := constants[t.text]; ok {
		n = constNode(c)
	} else if t.text == "x" {
		n = varNode{}
	} else {
		return nil, p.errorf(t.off, "unknown identifier %q", t.text)
	}
	if called {
		return nil, p.errorf(t.off, "%s is not a function", t.text)
	}
	return n, nil
}
