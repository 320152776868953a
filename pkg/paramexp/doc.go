// Package paramexp 提供字符串的 Shell 参数展开。
//
// 使用调用方提供的参数表（或进程环境变量快照）展开 $name 与 ${...}，
// 实现 POSIX 参数展开语法，以及常用的子串与字面替换扩展。
// 不执行命令、不做算术展开，也不会修改真实的进程环境。
//
// # 设计参考
//
//   - POSIX 参数展开: https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html#tag_18_06_02
//   - Bash 参数展开: https://www.gnu.org/software/bash/manual/bash.html#Shell-Parameter-Expansion
//
// # 处理流程
//
//  1. 预替换 - 将 $name / ${name} 一次性替换为当前值（不递归），
//     使操作符的参数可以引用其他变量，如 ${path/$old/$new}
//  2. 词法分析 - 去除引号，按空白、结构符号与普通文本切分（见 [Tokenize]）
//  3. 展开 - 原样输出普通文本，遇到 "$" 时解析 name 或 ${...}
//
// # 语义说明
//
//  1. 参数有三态：未设置、已设置但为空、已设置且非空（见 [State]）
//  2. 带 ":" 的操作符把空值视同未设置
//  3. "=" 与 ":=" 写入传入的 [Env]，而非进程环境
//  4. 未设置的 $name 保留原文，未设置的 ${name} 展开为空串
//  5. 修剪操作使用 glob 匹配（*、?、[...]），"*" 可以跨越 "/"
//  6. 只支持一层嵌套：${a:-${b}} 中的 ${b} 在预替换阶段展开，
//     ${a:-${b:-c}} 中的内层表达式按字面量处理
//
// # 快速开始
//
//	env := paramexp.Env{"file": "archive.tar.gz"}
//	out, err := paramexp.Expand(`${file%%.*} ${file#*.}`, env)
//	// out == "archive tar.gz"
//
// 严格模式下引用未设置的参数会返回 [NullError]：
//
//	_, err := paramexp.Expand(`$MISSING`, env, paramexp.WithStrict())
//
// 展开 YAML/JSON 等本身带引号的文本时使用 [WithLiteralQuotes]，引号原样保留：
//
//	out, err := paramexp.Expand(`name: "${NAME}"`, env, paramexp.WithLiteralQuotes())
//
// 详见 [Expand] 文档。
package paramexp
