package tokens

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-paramexp/pkg/paramexp"
)

func action(_ context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")
	if !cmd.Args().Present() {
		r := cmd.Root().Reader
		if r == nil {
			r = os.Stdin
		}
		input, err := io.ReadAll(r)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		text = string(input)
	}

	toks, err := paramexp.Tokenize(text).All()
	if err != nil {
		return err
	}

	w := cmd.Root().Writer
	if w == nil {
		w = os.Stdout
	}

	return write(w, cmd.String("format"), toks)
}

func write(w io.Writer, format string, toks []paramexp.Token) error {
	switch format {
	case FormatText:
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, tok := range toks {
			_, _ = fmt.Fprintf(tw, "%s\t%q\t%q\n", tok.Kind, tok.Text, tok.Raw)
		}

		return tw.Flush()
	case FormatYAML:
		enc := yamlv3.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toks); err != nil {
			return err
		}

		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(toks)
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", format)
	}
}
