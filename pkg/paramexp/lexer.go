package paramexp

import (
	"fmt"
	"strings"
)

// Kind 是词法单元的类别。
type Kind int

const (
	// Word 是非空白、非结构符号的最长连续字符。
	Word Kind = iota
	// Space 是空格、制表符、换行的最长连续序列，原样保留。
	Space
	// Symbol 是单个结构符号：$ { } / % # : - = ? +
	Symbol
	// Literal 是引号、转义或预替换产生的字面文本，不参与语法。
	Literal
)

func (k Kind) String() string {
	switch k {
	case Word:
		return "word"
	case Space:
		return "space"
	case Symbol:
		return "symbol"
	case Literal:
		return "literal"
	}

	return "unknown"
}

// MarshalText 以名称输出类别，便于 JSON/YAML 序列化。
func (k Kind) MarshalText() ([]byte, error) {
	if k < Word || k > Literal {
		return nil, fmt.Errorf("paramexp: invalid token kind %d", int(k))
	}

	return []byte(k.String()), nil
}

// UnmarshalText 解析 [Kind.MarshalText] 的输出。
func (k *Kind) UnmarshalText(text []byte) error {
	for c := Word; c <= Literal; c++ {
		if c.String() == string(text) {
			*k = c

			return nil
		}
	}

	return fmt.Errorf("paramexp: unknown token kind %q", text)
}

// Token 是一个词法单元。
//
// Text 为去除引号与转义后的文本，Raw 为对应的源文本。
// 依次拼接所有 Token 的 Raw 可还原输入。
type Token struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Text string `json:"text" yaml:"text"`
	Raw  string `json:"raw"  yaml:"raw"`
}

// Is 判断 t 是否为指定的结构符号。
func (t Token) Is(symbol byte) bool {
	return t.Kind == Symbol && len(t.Text) == 1 && t.Text[0] == symbol
}

const symbols = "${}/%#:-=?+"

func isSymbol(r rune) bool {
	return r < 0x80 && strings.IndexByte(symbols, byte(r)) >= 0
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}

type quoteMode int

const (
	quoteNone quoteMode = iota
	quoteSingle
	quoteDouble
)

// cell 是输入中的一个字符；lit 表示该字符来自预替换的值。
type cell struct {
	r   rune
	lit bool
}

// segment 是预替换的输出片段。
type segment struct {
	text string
	lit  bool
}

type tokenBuilder struct {
	kind Kind
	text strings.Builder
	raw  strings.Builder
}

func (b *tokenBuilder) token() Token {
	return Token{Kind: b.kind, Text: b.text.String(), Raw: b.raw.String()}
}

// Lexer 按需产生词法单元，只能单向遍历一次。
//
// 用法与 bufio.Scanner 相同：
//
//	lx := paramexp.Tokenize(text)
//	for lx.Scan() {
//	    tok := lx.Token()
//	}
//	if err := lx.Err(); err != nil { ... }
type Lexer struct {
	src     []cell
	pos     int
	mode    quoteMode
	quoting bool // false 时引号与反斜杠都是普通字符

	cur        *tokenBuilder // 正在构造的单元
	pendingRaw strings.Builder
	tok        Token
	err        error
	done       bool
}

// Tokenize 返回 text 的词法分析器。
//
// "#" 不作为注释起始；引号按 POSIX 规则去除。
func Tokenize(text string) *Lexer {
	return newLexer([]segment{{text: text}}, true)
}

func newLexer(segs []segment, quoting bool) *Lexer {
	n := 0
	for _, s := range segs {
		n += len(s.text)
	}

	src := make([]cell, 0, n)
	for _, s := range segs {
		for _, r := range s.text {
			src = append(src, cell{r: r, lit: s.lit})
		}
	}

	return &Lexer{src: src, quoting: quoting}
}

// Scan 推进到下一个单元，没有更多单元或出错时返回 false。
func (l *Lexer) Scan() bool {
	if l.done {
		return false
	}

	for l.pos < len(l.src) {
		if l.step() {
			return true
		}
		if l.err != nil {
			l.done = true

			return false
		}
	}

	l.done = true
	if l.mode != quoteNone {
		l.err = &ParseError{Reason: "unterminated quote"}

		return false
	}
	if l.cur != nil {
		l.flushPending()
		l.tok = l.cur.token()
		l.cur = nil

		return true
	}
	if l.pendingRaw.Len() > 0 {
		l.tok = Token{Kind: Literal, Raw: l.pendingRaw.String()}

		return true
	}

	return false
}

// Token 返回最近一次 Scan 产生的单元。
func (l *Lexer) Token() Token {
	return l.tok
}

// Err 返回词法错误（如未闭合的引号）。
func (l *Lexer) Err() error {
	return l.err
}

// All 读取剩余全部单元。
func (l *Lexer) All() ([]Token, error) {
	var out []Token
	for l.Scan() {
		out = append(out, l.Token())
	}

	return out, l.Err()
}

// step 消费一个字符（或一个转义对），单元完成时返回 true。
func (l *Lexer) step() bool {
	c := l.src[l.pos]
	if c.lit {
		return l.add(Literal, string(c.r), string(c.r), 1)
	}

	if l.mode == quoteSingle {
		if c.r == '\'' {
			l.mode = quoteNone
			l.skipRaw("'", false)

			return false
		}

		return l.add(Literal, string(c.r), string(c.r), 1)
	}

	switch {
	case l.quoting && c.r == '\\':
		return l.escape()
	case l.quoting && c.r == '\'' && l.mode == quoteNone:
		l.mode = quoteSingle
		l.skipRaw("'", true)

		return false
	case l.quoting && c.r == '"':
		opening := l.mode != quoteDouble
		if opening {
			l.mode = quoteDouble
		} else {
			l.mode = quoteNone
		}
		l.skipRaw(`"`, opening)

		return false
	case isSpace(c.r):
		return l.add(Space, string(c.r), string(c.r), 1)
	case isSymbol(c.r):
		return l.add(Symbol, string(c.r), string(c.r), 1)
	default:
		return l.add(Word, string(c.r), string(c.r), 1)
	}
}

func (l *Lexer) escape() bool {
	if l.pos+1 >= len(l.src) {
		// 末尾的反斜杠按字面量保留
		return l.add(Literal, `\`, `\`, 1)
	}

	next := l.src[l.pos+1]
	if next.r == '\n' && !next.lit {
		// 续行
		l.skipRaw("\\\n", true)

		return false
	}
	if l.mode == quoteDouble && !strings.ContainsRune("$`\"\\", next.r) {
		return l.add(Literal, `\`, `\`, 1)
	}

	return l.add(Literal, string(next.r), `\`+string(next.r), 2)
}

// add 把 n 个源字符并入 kind 类单元；上一个单元因此完成时返回 true。
// 结构符号总是独立成单元。
func (l *Lexer) add(kind Kind, text, raw string, n int) bool {
	emitted := false
	if l.cur != nil && (l.cur.kind != kind || kind == Symbol) {
		l.tok = l.cur.token()
		l.cur = nil
		emitted = true
	}
	if l.cur == nil {
		l.cur = &tokenBuilder{kind: kind}
	}

	l.flushPending()
	l.cur.text.WriteString(text)
	l.cur.raw.WriteString(raw)
	l.pos += n

	return emitted
}

// skipRaw 消费只出现在源文本中的字符（引号、续行）。
//
// 开引号与续行归属下一个单元；闭引号归属当前单元。
func (l *Lexer) skipRaw(raw string, leading bool) {
	if leading || l.cur == nil || l.pendingRaw.Len() > 0 {
		l.pendingRaw.WriteString(raw)
	} else {
		l.cur.raw.WriteString(raw)
	}
	l.pos += len([]rune(raw))
}

func (l *Lexer) flushPending() {
	if l.pendingRaw.Len() > 0 {
		l.cur.raw.WriteString(l.pendingRaw.String())
		l.pendingRaw.Reset()
	}
}
