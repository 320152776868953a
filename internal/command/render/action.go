package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

func action(ctx context.Context, cmd *cli.Command) error {
	input := cmd.Args().First()
	if input == "" {
		return errors.New("missing input file")
	}

	cfg, env, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	opts := command.ExpandOptions(cfg)
	if !cmd.Bool(FlagShellQuotes) {
		opts = append(opts, paramexp.WithLiteralQuotes())
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	r := &renderer{
		input:  input,
		output: cfg.Render.Output,
		env:    env,
		opts:   opts,
		stdout: w,
	}
	if err := r.render(); err != nil {
		return err
	}
	if !cmd.Bool(FlagWatch) {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Watching for changes", "input", input, "debounce", cfg.Render.Debounce)

	return watch(ctx, input, cfg.Render.Debounce, func() {
		if err := r.render(); err != nil {
			slog.Error("Render failed", "input", input, "error", err)

			return
		}
		slog.Info("Rendered", "input", input, "output", r.target())
	})
}

// renderer 渲染单个文件；每次渲染使用变量表的副本，赋值不会累积。
type renderer struct {
	input  string
	output string
	env    paramexp.Env
	opts   []paramexp.Option
	stdout io.Writer
}

func (r *renderer) render() error {
	content, err := os.ReadFile(r.input)
	if err != nil {
		return fmt.Errorf("read input %s: %w", r.input, err)
	}

	env := r.env.Clone()
	out, err := paramexp.Expand(string(content), env, r.opts...)
	if err != nil {
		return fmt.Errorf("render %s: %w", r.input, command.Explain(err, env))
	}

	if r.output == "" {
		_, err = io.WriteString(r.stdout, out)

		return err
	}
	if err := os.WriteFile(r.output, []byte(out), 0o644); err != nil { //nolint:gosec // rendered output is not secret
		return fmt.Errorf("write output %s: %w", r.output, err)
	}

	return nil
}

func (r *renderer) target() string {
	if r.output == "" {
		return "stdout"
	}

	return r.output
}
