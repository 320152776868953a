// Package tokens 提供 tokens 命令：输出词法单元流，用于排查表达式的切分。
package tokens

import (
	"github.com/urfave/cli/v3"
)

// 输出格式。
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Command tokens 命令
var Command = NewCommand()

// NewCommand 创建 tokens 命令。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "tokens",
		Usage:     "输出词法单元，无参数时读取标准输入",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   FormatText,
				Usage:   "输出格式: text, yaml, json",
			},
		},
		Action: action,
	}
}
