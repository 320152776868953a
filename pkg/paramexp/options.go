package paramexp

// options 展开选项。
type options struct {
	strict        bool // 引用未设置的参数时返回 NullError
	literalQuotes bool // 引号与反斜杠不做 shell 处理
}

// Option 展开选项函数。
type Option func(*options)

// WithStrict 启用严格模式：任何对未设置参数的引用（$name 或 ${name...}）
// 都返回 [NullError]，而不是展开为空串或保留原文。
func WithStrict() Option {
	return func(o *options) {
		o.strict = true
	}
}

// WithStrictIf 按条件启用严格模式，便于从配置透传。
func WithStrictIf(strict bool) Option {
	return func(o *options) {
		o.strict = o.strict || strict
	}
}

// WithLiteralQuotes 关闭引号与反斜杠处理，"'"、"\"" 与 "\\" 原样保留。
//
// 适合展开 YAML/JSON 等本身带引号的配置文件。
func WithLiteralQuotes() Option {
	return func(o *options) {
		o.literalQuotes = true
	}
}
