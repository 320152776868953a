package paramexp

import "strings"

// presubstitute 对 text 做一次非递归的字面替换：$name 与 ${name}（不含操作符）
// 替换为当前值，未设置的名称保持原样。
//
// 每个 "$" 取其后最长的合法名称，因此 $pkgver 不会误命中 pkg。
// 替换结果作为字面片段返回，不会被再次扫描或参与语法分析。
// quoting 为 true 时，单引号内与反斜杠转义后的 "$" 不参与替换。
// strict 为 true 时，引用未设置的名称返回 [NullError]。
func presubstitute(text string, env Env, quoting, strict bool) ([]segment, error) {
	var (
		segs []segment
		buf  strings.Builder
		mode = quoteNone
	)
	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, segment{text: buf.String()})
			buf.Reset()
		}
	}

	for i := 0; i < len(text); {
		ch := text[i]

		switch {
		case !quoting:
			if ch == '$' {
				n, err := substituteAt(text[i:], env, strict, &segs, flush)
				if err != nil {
					return nil, err
				}
				if n > 0 {
					i += n

					continue
				}
			}
		case mode == quoteSingle:
			if ch == '\'' {
				mode = quoteNone
			}
		case ch == '\\' && i+1 < len(text):
			buf.WriteString(text[i : i+2])
			i += 2

			continue
		case ch == '\'' && mode == quoteNone:
			mode = quoteSingle
		case ch == '"':
			if mode == quoteDouble {
				mode = quoteNone
			} else {
				mode = quoteDouble
			}
		case ch == '$':
			n, err := substituteAt(text[i:], env, strict, &segs, flush)
			if err != nil {
				return nil, err
			}
			if n > 0 {
				i += n

				continue
			}
		}

		buf.WriteByte(ch)
		i++
	}
	flush()

	return segs, nil
}

// substituteAt 在 s 开头的引用已设置时追加字面片段，返回消费的字节数。
func substituteAt(s string, env Env, strict bool, segs *[]segment, flush func()) (int, error) {
	name, width := referenceAt(s)
	if width == 0 {
		return 0, nil
	}
	value, ok := env[name]
	if !ok {
		if strict {
			return 0, &NullError{Name: name, Message: "parameter not set"}
		}

		return 0, nil
	}

	flush()
	*segs = append(*segs, segment{text: value, lit: true})

	return width, nil
}

// referenceAt 解析以 "$" 开头的 $name 或 ${name}，返回名称与引用的字节宽度。
func referenceAt(s string) (string, int) {
	if len(s) < 2 {
		return "", 0
	}

	if s[1] == '{' {
		n := nameLen(s[2:])
		if n == 0 || 2+n >= len(s) || s[2+n] != '}' {
			return "", 0
		}

		return s[2 : 2+n], n + 3
	}

	n := nameLen(s[1:])
	if n == 0 {
		return "", 0
	}

	return s[1 : 1+n], n + 1
}
