package paramexp

import (
	"regexp"

	"mvdan.cc/sh/v3/pattern"
)

// Match 判断 s 是否整体匹配 shell glob 模式（区分大小写）。
//
// 支持 "*"、"?" 与 "[...]"；与文件名匹配不同，"*" 可以跨越 "/"。
// 无法解析的模式（如未闭合的 "["）按字面量比较。
func Match(pat, s string) bool {
	return compileGlob(pat).MatchString(s)
}

func compileGlob(pat string) *regexp.Regexp {
	expr, err := pattern.Regexp(pat, 0)
	if err != nil {
		expr = regexp.QuoteMeta(pat)
	}

	re, err := regexp.Compile(`(?s)^(?:` + expr + `)$`)
	if err != nil {
		return regexp.MustCompile(`^` + regexp.QuoteMeta(pat) + `$`)
	}

	return re
}
