package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/authcorp/libs/go/lenses"
	"github.com/authcorp/libs/go/lenses/codec"
	"github.com/authcorp/libs/go/lenses/internal/config"
	"github.com/authcorp/libs/go/lenses/internal/logging"
	"github.com/spf13/cobra"
)

type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{stdin: stdin, stdout: stdout, stderr: stderr}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lens",
		Short:         "Read and update nested values in structured documents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logging.New(cfg.Logging, a.stderr)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default ./lens.yaml or $HOME/.config/lens/lens.yaml)")
	flags.String("input-format", "", "input format: json, jsonc, yaml, cbor (default from file extension, else json)")
	flags.String("output-format", "", "output format (default: input format)")
	flags.Bool("pretty", false, "indent JSON output")
	flags.Int("indent", 0, "indentation width for JSON and YAML output")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.String("log-format", "", "log format: json, text")

	root.AddCommand(a.getCmd(), a.setCmd(), a.projectCmd(), a.convertCmd())
	return root
}

func (a *app) getCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> [file]",
		Short: "Print the value at a path",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := lenses.Of(args[0])
			if err != nil {
				return err
			}
			r, format, err := a.readDocument(args[1:])
			if err != nil {
				return err
			}
			v := l.Get(r)
			if v == nil {
				a.logger.Debug("path absent or null", "path", l.String())
			}
			return a.writeValue(v, format)
		},
	}
}

func (a *app) setCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <path> <value> [file]",
		Short: "Replace the value at a path, creating missing records",
		Long:  "Replace the value at a path. The value is parsed as YAML, so 42, true, text, [a, b] and {k: v} are all accepted.",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := lenses.Of(args[0])
			if err != nil {
				return err
			}
			value, err := codec.ParseValue(args[1])
			if err != nil {
				return err
			}
			r, format, err := a.readDocument(args[2:])
			if err != nil {
				return err
			}
			out, err := l.Set(r, value)
			if err != nil {
				return err
			}
			a.logger.Debug("set value", "path", l.String())
			return a.writeDocument(out, format)
		},
	}
}

func (a *app) projectCmd() *cobra.Command {
	var paths, values []string
	cmd := &cobra.Command{
		Use:   "project --path <path>... [--value <value>...] [file]",
		Short: "Read or write several paths as one flat tuple",
		Long: "Read several paths as one JSON array. With --value, write the values to the " +
			"paths in order instead; the number of values must match the number of paths.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ls := make([]lenses.Lens, len(paths))
			for i, p := range paths {
				l, err := lenses.Of(p)
				if err != nil {
					return err
				}
				ls[i] = l
			}
			projection := lenses.Projection(ls...)

			r, format, err := a.readDocument(args)
			if err != nil {
				return err
			}
			if len(values) == 0 {
				return a.writeValue(lenses.Values(projection, r), format)
			}

			parsed := make([]any, len(values))
			for i, v := range values {
				if parsed[i], err = codec.ParseValue(v); err != nil {
					return err
				}
			}
			out, err := projection.Set(r, parsed...)
			if err != nil {
				return err
			}
			a.logger.Debug("set projection", "lens", projection.String(), "arity", projection.Arity())
			return a.writeDocument(out, format)
		},
	}
	cmd.Flags().StringArrayVar(&paths, "path", nil, "path to project (repeatable)")
	cmd.Flags().StringArrayVar(&values, "value", nil, "value to write, one per path (repeatable)")
	_ = cmd.MarkFlagRequired("path")
	return cmd
}

func (a *app) convertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert [file]",
		Short: "Re-encode a document in the output format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			r, format, err := a.readDocument(args)
			if err != nil {
				return err
			}
			return a.writeDocument(r, format)
		},
	}
}

// readDocument decodes the file named by args[0], or stdin, and returns the record
// with its input format.
func (a *app) readDocument(args []string) (lenses.Record, string, error) {
	var (
		file string
		data []byte
		err  error
	)
	if len(args) > 0 && args[0] != "-" {
		file = args[0]
		data, err = os.ReadFile(file)
	} else {
		data, err = io.ReadAll(a.stdin)
	}
	if err != nil {
		return nil, "", fmt.Errorf("read document: %w", err)
	}

	format := a.inputFormat(file)
	c, err := codec.ForFormat(format)
	if err != nil {
		return nil, "", err
	}
	r, err := c.Decode(data)
	if err != nil {
		return nil, "", err
	}
	a.logger.Debug("decoded document", "file", file, "format", format, "keys", len(r))
	return r, format, nil
}

func (a *app) inputFormat(file string) string {
	if a.cfg.Input.Format != "" {
		return a.cfg.Input.Format
	}
	if ext := strings.TrimPrefix(filepath.Ext(file), "."); ext != "" {
		if _, err := codec.ForFormat(ext); err == nil {
			return strings.ToLower(ext)
		}
	}
	return string(codec.JSON)
}

func (a *app) outputCodec(inputFormat string) (codec.Codec, error) {
	name := a.cfg.Output.Format
	if name == "" {
		name = inputFormat
	}
	c, err := codec.ForFormat(name)
	if err != nil {
		return nil, err
	}

	indent := a.cfg.Output.Indent
	switch c := c.(type) {
	case *codec.JSONCodec:
		a.configureJSON(c, indent)
	case *codec.JSONCCodec:
		a.configureJSON(&c.JSONCodec, indent)
	case *codec.YAMLCodec:
		if indent > 0 {
			c.WithIndent(indent)
		}
	}
	return c, nil
}

func (a *app) configureJSON(c *codec.JSONCodec, indent int) {
	if !a.cfg.Output.Pretty {
		return
	}
	c.WithPretty()
	if indent > 0 {
		c.WithIndent(strings.Repeat(" ", indent))
	}
}

func (a *app) writeDocument(r lenses.Record, inputFormat string) error {
	c, err := a.outputCodec(inputFormat)
	if err != nil {
		return err
	}
	data, err := c.Encode(r)
	if err != nil {
		return err
	}
	return a.write(data, c)
}

// writeValue prints records in the output format and every other value as JSON.
func (a *app) writeValue(v any, inputFormat string) error {
	if r, ok := v.(map[string]any); ok {
		return a.writeDocument(r, inputFormat)
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}
	return a.write(data, nil)
}

func (a *app) write(data []byte, c codec.Codec) error {
	if _, binary := c.(*codec.CBORCodec); !binary && !strings.HasSuffix(string(data), "\n") {
		data = append(data, '\n')
	}
	_, err := a.stdout.Write(data)
	return err
}
