package paramexp

// RemoveAffix 删除 value 中与 glob 模式匹配的前缀或后缀。
//
// 候选切分点为 0..N（按字符计），模式须整体匹配被删除部分：
//   - 后缀 (%, %%)：测试 value[i:]，最短匹配从尾部向前扫描，最长匹配从头部向后扫描，结果为 value[:i]
//   - 前缀 (#, ##)：测试 value[:i]，最短匹配从头部向后扫描，最长匹配从尾部向前扫描，结果为 value[i:]
//
// 没有候选匹配时原样返回 value。
func RemoveAffix(value, pat string, suffix, longest bool) string {
	re := compileGlob(pat)
	runes := []rune(value)
	n := len(runes)

	// 后缀最长与前缀最短都是从 0 开始递增
	ascending := suffix == longest
	for k := 0; k <= n; k++ {
		i := k
		if !ascending {
			i = n - k
		}

		if suffix {
			if re.MatchString(string(runes[i:])) {
				return string(runes[:i])
			}

			continue
		}
		if re.MatchString(string(runes[:i])) {
			return string(runes[i:])
		}
	}

	return value
}
