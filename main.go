package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command/expand"
	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command/render"
	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command/tokens"
	"github.com/lwmacct/251207-go-pkg-paramexp/internal/config"
)

// version 可通过 -ldflags "-X main.version=..." 注入。
var version = ""

func main() {
	app := &cli.Command{
		Name:    config.AppName,
		Usage:   "POSIX 参数展开工具",
		Version: appVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "输出调试日志",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}

			return ctx, nil
		},
		Commands: []*cli.Command{
			expand.Command,
			render.Command,
			tokens.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func appVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}

	return "dev"
}
