package paramexp

import (
	"fmt"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 单元流
// ═══════════════════════════════════════════════════════════════════════════

// tokenStream 在 Lexer 之上提供一个单元的前瞻。
type tokenStream struct {
	lx     *Lexer
	head   Token
	hasTok bool
}

func newTokenStream(lx *Lexer) *tokenStream {
	s := &tokenStream{lx: lx}
	s.advance()

	return s
}

func (s *tokenStream) advance() {
	s.hasTok = s.lx.Scan()
	if s.hasTok {
		s.head = s.lx.Token()
	}
}

func (s *tokenStream) more() bool {
	return s.hasTok
}

func (s *tokenStream) peek() Token {
	return s.head
}

func (s *tokenStream) next() Token {
	t := s.head
	s.advance()

	return t
}

func (s *tokenStream) err() error {
	return s.lx.Err()
}

// ═══════════════════════════════════════════════════════════════════════════
// 展开
// ═══════════════════════════════════════════════════════════════════════════

// Expand 对 text 执行参数展开，使用 env 作为参数表。
//
// env 为 nil 时使用 [Environ] 快照。"=" 与 ":=" 会写入 env 本身，
// 调用方需要保留原值时应先 [Env.Clone]。
//
// 支持语法：
//   - $name / ${name} - 变量替换
//   - ${#name} - 长度
//   - ${name:-word} / ${name-word} - 默认值
//   - ${name:=word} / ${name=word} - 赋值默认值
//   - ${name:?msg} / ${name?msg} - 必填校验
//   - ${name:+word} / ${name+word} - 替代值
//   - ${name%pat} / ${name%%pat} / ${name#pat} / ${name##pat} - 修剪后缀/前缀
//   - ${name:start} / ${name:start:length} - 子串
//   - ${name/pat/repl} / ${name//pat/repl} - 替换首个/全部
//
// 不含 "$" 的输入原样返回。失败时返回 [*NullError] 或 [*ParseError]。
func Expand(text string, env Env, opts ...Option) (string, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if !strings.Contains(text, "$") {
		return text, nil
	}
	if env == nil {
		env = Environ()
	}

	quoting := !o.literalQuotes
	segs, err := presubstitute(text, env, quoting, o.strict)
	if err != nil {
		return "", err
	}

	return expandTokens(newTokenStream(newLexer(segs, quoting)), env, o.strict)
}

// ExpandEnv 使用当前进程环境变量快照展开 text。
func ExpandEnv(text string, opts ...Option) (string, error) {
	return Expand(text, nil, opts...)
}

// MustExpand 调用 [Expand] 并在失败时 panic，适合启动阶段。
func MustExpand(text string, env Env, opts ...Option) string {
	out, err := Expand(text, env, opts...)
	if err != nil {
		panic(fmt.Sprintf("paramexp: failed to expand %q: %v", text, err))
	}

	return out
}

// expandTokens 原样输出 "$" 之前的单元，遇到 "$" 交给 resolveSigil，依次拼接。
func expandTokens(ts *tokenStream, env Env, strict bool) (string, error) {
	var buf strings.Builder
	for ts.more() {
		tok := ts.next()
		if !tok.Is('$') {
			buf.WriteString(tok.Text)

			continue
		}

		out, err := resolveSigil(ts, env, strict)
		if err != nil {
			return "", err
		}
		buf.WriteString(out)
	}
	if err := ts.err(); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// resolveSigil 处理紧跟在 "$" 之后的 name 或 {...}。
//
// 未设置的 $name 在非严格模式下保留原文，而 ${name} 展开为空串。
// 后面既不是名称也不是 "{" 时，"$" 按字面量输出。
func resolveSigil(ts *tokenStream, env Env, strict bool) (string, error) {
	if !ts.more() {
		return "$", nil
	}

	tok := ts.peek()
	if tok.Is('{') {
		ts.next()
		inner, err := collectBrace(ts)
		if err != nil {
			return "", err
		}
		expr, err := parseBrace(inner)
		if err != nil {
			return "", err
		}

		return evalBrace(expr, env, strict)
	}

	if tok.Kind != Word {
		return "$", nil
	}
	n := nameLen(tok.Text)
	if n == 0 {
		return "$", nil
	}
	ts.next()

	name, rest := tok.Text[:n], tok.Text[n:]
	value, ok := env[name]
	if !ok {
		if strict {
			return "", &NullError{Name: name, Message: "parameter not set"}
		}

		return "$" + tok.Text, nil
	}

	return value + rest, nil
}

// collectBrace 读取到与 "${" 配对的 "}"，返回其间的单元。
func collectBrace(ts *tokenStream) ([]Token, error) {
	var inner []Token
	depth := 0
	for ts.more() {
		tok := ts.next()
		switch {
		case tok.Is('{'):
			depth++
		case tok.Is('}'):
			if depth == 0 {
				return inner, nil
			}
			depth--
		}
		inner = append(inner, tok)
	}
	if err := ts.err(); err != nil {
		return nil, err
	}

	return nil, parseErrorf("${"+rawText(inner), "missing closing brace")
}

func rawText(toks []Token) string {
	var sb strings.Builder
	for _, t := range toks {
		sb.WriteString(t.Raw)
	}

	return sb.String()
}
