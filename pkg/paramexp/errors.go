package paramexp

import "fmt"

// NullError 表示 "?" / ":?" 条件触发，或严格模式下引用了未设置的参数。
type NullError struct {
	Name    string // 参数名
	Message string // 自定义消息，为空时使用默认消息
}

func (e *NullError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("paramexp: %s: parameter null or not set", e.Name)
	}

	return fmt.Sprintf("paramexp: %s: %s", e.Name, e.Message)
}

// ParseError 表示 ${...} 表达式不符合语法。
type ParseError struct {
	Expr   string // 出错的表达式原文
	Reason string
}

func (e *ParseError) Error() string {
	if e.Expr == "" {
		return "paramexp: " + e.Reason
	}

	return fmt.Sprintf("paramexp: %s: %s", e.Expr, e.Reason)
}

func parseErrorf(expr, format string, args ...any) error {
	return &ParseError{Expr: expr, Reason: fmt.Sprintf(format, args...)}
}
