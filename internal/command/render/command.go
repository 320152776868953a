// Package render 提供 render 命令：展开整个文件，可选监听文件变化后重新渲染。
package render

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-paramexp/internal/config"
)

// flag 名称
const (
	FlagWatch       = "watch"
	FlagShellQuotes = "shell-quotes"
)

// Command render 命令
var Command = NewCommand()

// NewCommand 创建 render 命令。
func NewCommand() *cli.Command {
	return &cli.Command{
		Name:      "render",
		Usage:     "展开模板文件 (YAML/JSON/任意文本)",
		ArgsUsage: "<input>",
		Flags: append(command.Flags(),
			&cli.StringFlag{
				Name:    config.FlagOutput,
				Aliases: []string{"o"},
				Value:   command.Defaults.Render.Output,
				Usage:   "输出文件，为空时写到标准输出",
			},
			&cli.BoolFlag{
				Name:    FlagWatch,
				Aliases: []string{"w"},
				Usage:   "监听输入文件，变化后重新渲染",
			},
			&cli.DurationFlag{
				Name:  config.FlagDebounce,
				Value: command.Defaults.Render.Debounce,
				Usage: "监听模式下的防抖间隔",
			},
			&cli.BoolFlag{
				Name:  FlagShellQuotes,
				Usage: "按 shell 规则处理引号与反斜杠 (默认原样保留)",
			},
		),
		Action: action,
	}
}
