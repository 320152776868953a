package expand

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/internal/command"
	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

func action(_ context.Context, cmd *cli.Command) error {
	cfg, env, err := command.Setup(cmd)
	if err != nil {
		return err
	}

	opts := command.ExpandOptions(cfg)
	if cmd.Bool(FlagLiteralQuotes) {
		opts = append(opts, paramexp.WithLiteralQuotes())
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	// 每个参数输出一行；"=" 的赋值对后续参数可见
	if cmd.Args().Present() {
		for _, text := range cmd.Args().Slice() {
			out, err := paramexp.Expand(text, env, opts...)
			if err != nil {
				return command.Explain(err, env)
			}
			if _, err := fmt.Fprintln(w, out); err != nil {
				return err
			}
		}

		return nil
	}

	r := cmd.Root().Reader
	if r == nil {
		r = os.Stdin
	}
	input, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	out, err := paramexp.Expand(string(input), env, opts...)
	if err != nil {
		return command.Explain(err, env)
	}
	_, err = io.WriteString(w, out)

	return err
}
