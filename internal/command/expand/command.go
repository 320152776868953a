// Package expand 提供 expand 命令：展开命令行参数或标准输入。
package expand

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command"
)

// FlagLiteralQuotes 关闭引号处理的 flag 名称。
const FlagLiteralQuotes = "literal-quotes"

// Command expand 命令
var Command = NewCommand()

// NewCommand 创建 expand 命令。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "expand",
		Usage:     "展开参数表达式，无参数时读取标准输入",
		ArgsUsage: "[text...]",
		Flags: append(command.Flags(),
			&cli.BoolFlag{
				Name:    FlagLiteralQuotes,
				Aliases: []string{"l"},
				Usage:   "引号与反斜杠按普通字符处理",
			},
		),
		Action: action,
	}
}
