package paramexp

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// ═══════════════════════════════════════════════════════════════════════════
// 操作符
// ═══════════════════════════════════════════════════════════════════════════

// Operator 是 ${...} 中的操作符。
type Operator int

const (
	OpValue              Operator = iota // ${name}
	OpLength                             // ${#name}
	OpDefault                            // ${name-word} / ${name:-word}
	OpAssign                             // ${name=word} / ${name:=word}
	OpError                              // ${name?word} / ${name:?word}
	OpAlternate                          // ${name+word} / ${name:+word}
	OpTrimShortestSuffix                 // ${name%pat}
	OpTrimLongestSuffix                  // ${name%%pat}
	OpTrimShortestPrefix                 // ${name#pat}
	OpTrimLongestPrefix                  // ${name##pat}
	OpSubstring                          // ${name:start[:length]}
	OpReplaceFirst                       // ${name/pat/repl}
	OpReplaceAll                         // ${name//pat/repl}
)

var operatorNames = [...]string{
	OpValue:              "value",
	OpLength:             "length",
	OpDefault:            "default",
	OpAssign:             "assign",
	OpError:              "error",
	OpAlternate:          "alternate",
	OpTrimShortestSuffix: "trim-shortest-suffix",
	OpTrimLongestSuffix:  "trim-longest-suffix",
	OpTrimShortestPrefix: "trim-shortest-prefix",
	OpTrimLongestPrefix:  "trim-longest-prefix",
	OpSubstring:          "substring",
	OpReplaceFirst:       "replace-first",
	OpReplaceAll:         "replace-all",
}

func (op Operator) String() string {
	if op >= 0 && int(op) < len(operatorNames) {
		return operatorNames[op]
	}

	return "Operator(" + strconv.Itoa(int(op)) + ")"
}

// braceExpr 是解析后的 ${...}。
type braceExpr struct {
	src   string
	name  string
	op    Operator
	colon bool // ":" 前缀：未设置或为空时触发

	word    string // 默认值/替代值/错误消息，或修剪模式、替换模式
	repl    string
	start   int
	length  int
	hasLen  bool
	omitted bool // 操作符之后没有任何参数
}

// ═══════════════════════════════════════════════════════════════════════════
// 解析
// ═══════════════════════════════════════════════════════════════════════════

// tokenCursor 遍历 ${ 与 } 之间的单元。
type tokenCursor struct {
	toks []Token
	pos  int
}

func (c *tokenCursor) more() bool {
	return c.pos < len(c.toks)
}

func (c *tokenCursor) peek() Token {
	return c.toks[c.pos]
}

func (c *tokenCursor) next() Token {
	t := c.toks[c.pos]
	c.pos++

	return t
}

// until 读取到下一个顶层 symbol（不含）为止，返回拼接文本与是否遇到该符号。
func (c *tokenCursor) until(symbol byte) (string, bool) {
	var sb strings.Builder
	for c.more() {
		t := c.next()
		if t.Is(symbol) {
			return sb.String(), true
		}
		sb.WriteString(t.Text)
	}

	return sb.String(), false
}

func (c *tokenCursor) rest() string {
	s, _ := c.until(0)

	return s
}

func parseBrace(toks []Token) (*braceExpr, error) {
	src := "${" + rawText(toks) + "}"
	c := &tokenCursor{toks: toks}
	if !c.more() {
		return nil, parseErrorf(src, "bad substitution")
	}

	if c.peek().Is('#') && len(toks) == 2 {
		c.next()
		name := c.next()
		if name.Kind != Word || !IsName(name.Text) {
			return nil, parseErrorf(src, "invalid parameter name %q", name.Text)
		}

		return &braceExpr{src: src, name: name.Text, op: OpLength}, nil
	}

	first := c.next()
	if first.Kind != Word || !IsName(first.Text) {
		return nil, parseErrorf(src, "bad substitution")
	}

	expr := &braceExpr{src: src, name: first.Text, op: OpValue}
	if !c.more() {
		return expr, nil
	}

	mod := c.next()
	if mod.Kind != Symbol {
		return nil, parseErrorf(src, "unexpected %q after parameter name", mod.Text)
	}

	switch mod.Text[0] {
	case '%':
		expr.op = OpTrimShortestSuffix
		if c.more() && c.peek().Is('%') {
			c.next()
			expr.op = OpTrimLongestSuffix
		}
		expr.word = c.rest()
	case '#':
		expr.op = OpTrimShortestPrefix
		if c.more() && c.peek().Is('#') {
			c.next()
			expr.op = OpTrimLongestPrefix
		}
		expr.word = c.rest()
	case '/':
		if err := parseReplace(c, expr); err != nil {
			return nil, err
		}
	case ':':
		expr.colon = true
		if !c.more() {
			expr.omitted = true

			return expr, nil
		}
		if op, ok := conditionalOp(c.peek()); ok {
			c.next()
			expr.op = op
			expr.word = c.rest()

			return expr, nil
		}
		if err := parseSubstring(c, expr); err != nil {
			return nil, err
		}
	default:
		op, ok := conditionalOp(mod)
		if !ok {
			return nil, parseErrorf(src, "unknown operator %q", mod.Text)
		}
		expr.op = op
		expr.word = c.rest()
	}

	return expr, nil
}

func conditionalOp(t Token) (Operator, bool) {
	if t.Kind != Symbol {
		return 0, false
	}

	switch t.Text[0] {
	case '-':
		return OpDefault, true
	case '=':
		return OpAssign, true
	case '?':
		return OpError, true
	case '+':
		return OpAlternate, true
	}

	return 0, false
}

func parseReplace(c *tokenCursor, expr *braceExpr) error {
	expr.op = OpReplaceFirst
	if c.more() && c.peek().Is('/') {
		c.next()
		expr.op = OpReplaceAll
	}
	if !c.more() {
		expr.omitted = true

		return nil
	}

	// 省略替换串等价于空串
	expr.word, _ = c.until('/')
	expr.repl = c.rest()

	return nil
}

func parseSubstring(c *tokenCursor, expr *braceExpr) error {
	expr.op = OpSubstring

	offset, hasLen := c.until(':')
	start, err := parseBound(offset)
	if err != nil {
		return parseErrorf(expr.src, "invalid substring offset %q", offset)
	}
	expr.start = start

	if !hasLen {
		return nil
	}

	length := c.rest()
	if strings.TrimSpace(length) == "" {
		return nil
	}
	n, err := parseBound(length)
	if err != nil {
		return parseErrorf(expr.src, "invalid substring length %q", length)
	}
	expr.length = n
	expr.hasLen = true

	return nil
}

// parseBound 解析子串边界，空白两端忽略，空串视为 0。
func parseBound(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	return strconv.Atoi(s)
}

// ═══════════════════════════════════════════════════════════════════════════
// 求值
// ═══════════════════════════════════════════════════════════════════════════

// evalBrace 按操作符与参数三态求值。
func evalBrace(expr *braceExpr, env Env, strict bool) (string, error) {
	subst, state := env.Lookup(expr.name)
	if strict && state == Unset {
		return "", &NullError{Name: expr.name, Message: "parameter not set"}
	}

	// 带 ":" 时空值与未设置同样触发
	triggered := state == Unset || (expr.colon && state == SetNull)

	switch expr.op {
	case OpValue:
		return subst, nil

	case OpLength:
		return strconv.Itoa(utf8.RuneCountInString(subst)), nil

	case OpDefault:
		if triggered {
			return expr.word, nil
		}

		return subst, nil

	case OpAssign:
		if triggered {
			env[expr.name] = expr.word

			return expr.word, nil
		}

		return subst, nil

	case OpError:
		if triggered {
			return "", &NullError{Name: expr.name, Message: expr.word}
		}

		return subst, nil

	case OpAlternate:
		if triggered {
			return "", nil
		}

		return expr.word, nil

	case OpTrimShortestSuffix:
		return RemoveAffix(subst, expr.word, true, false), nil
	case OpTrimLongestSuffix:
		return RemoveAffix(subst, expr.word, true, true), nil
	case OpTrimShortestPrefix:
		return RemoveAffix(subst, expr.word, false, false), nil
	case OpTrimLongestPrefix:
		return RemoveAffix(subst, expr.word, false, true), nil

	case OpSubstring:
		if expr.omitted {
			return subst, nil
		}

		return substring(subst, expr.start, expr.length, expr.hasLen), nil

	case OpReplaceFirst, OpReplaceAll:
		if expr.omitted || expr.word == "" {
			return subst, nil
		}
		n := 1
		if expr.op == OpReplaceAll {
			n = -1
		}

		return strings.Replace(subst, expr.word, expr.repl, n), nil
	}

	return "", parseErrorf(expr.src, "unsupported operator %s", expr.op)
}

// substring 按字符截取。
//
// 截断规则：
//   - start < 0 从末尾倒数，越界时取 0
//   - start > 长度时结果为空
//   - length < 0 表示在末尾之前 -length 个字符处结束
//   - 结束位置早于 start 时结果为空
func substring(s string, start, length int, hasLen bool) string {
	runes := []rune(s)
	n := len(runes)

	if start < 0 {
		start = max(n+start, 0)
	}
	start = min(start, n)

	end := n
	if hasLen {
		if length < 0 {
			end = n + length
		} else {
			end = start + length
		}
	}
	end = min(end, n)
	if end <= start {
		return ""
	}

	return string(runes[start:end])
}
