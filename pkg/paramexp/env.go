package paramexp

import (
	"maps"
	"os"
	"strings"
)

// State 是参数的三态分类。
type State int

const (
	// Unset 参数不存在。
	Unset State = iota
	// SetNull 参数存在但值为空串。
	SetNull
	// SetNotNull 参数存在且值非空。
	SetNotNull
)

func (s State) String() string {
	switch s {
	case Unset:
		return "unset"
	case SetNull:
		return "set-but-null"
	case SetNotNull:
		return "set-and-not-null"
	}

	return "unknown"
}

// Env 是参数名到值的映射，由调用方持有。
//
// "=" 与 ":=" 会直接写入传入的 Env 实例；需要隔离时请先 [Env.Clone]。
// 同一个 Env 不能被并发的展开调用共享。
type Env map[string]string

// Environ 返回当前进程环境变量的快照。
//
// 快照与真实环境互不影响，赋值操作只会写入这份数据。
func Environ() Env {
	env := make(Env)
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			env[name] = value
		}
	}

	return env
}

// Clone 返回一份独立的副本。nil 的副本是空 Env。
func (e Env) Clone() Env {
	out := make(Env, len(e))
	maps.Copy(out, e)

	return out
}

// Lookup 返回参数的当前值与三态。
func (e Env) Lookup(name string) (string, State) {
	value, ok := e[name]
	switch {
	case !ok:
		return "", Unset
	case value == "":
		return "", SetNull
	default:
		return value, SetNotNull
	}
}

// State 返回参数的三态。
func (e Env) State(name string) State {
	_, state := e.Lookup(name)

	return state
}

func isNameStart(ch rune) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') || ch == '_'
}

func isNameChar(ch rune) bool {
	return isNameStart(ch) || (ch >= '0' && ch <= '9')
}

// IsName 判断 s 是否为合法参数名：ASCII 字母、数字、下划线，且不以数字开头。
func IsName(s string) bool {
	return s != "" && nameLen(s) == len(s)
}

// nameLen 返回 s 开头最长合法参数名的字节长度。
func nameLen(s string) int {
	if s == "" || !isNameStart(rune(s[0])) {
		return 0
	}

	i := 1
	for i < len(s) && isNameChar(rune(s[i])) {
		i++
	}

	return i
}
