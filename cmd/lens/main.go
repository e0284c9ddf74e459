// Command lens reads and updates values inside JSON, JSONC, YAML and CBOR documents
// through lens paths.
//
//	lens get user.name people.yaml
//	lens set user.tags '[admin, ops]' people.yaml
//	lens project --path user.name --path meta.id people.json
//	lens project --path user.name --path meta.id --value ada --value 7 people.json
//	lens convert --output-format yaml people.json
//
// Documents are read from the file argument, or from standard input when it is
// omitted or "-". Results are written to standard output: records in the output
// format, other values as JSON.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/authcorp/libs/go/lenses/internal/config"
	"github.com/authcorp/libs/go/lenses/internal/logging"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdin, stdout, stderr)
	cmd := a.rootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		logger := a.logger
		if logger == nil {
			logger = logging.New(config.Default().Logging, stderr)
		}
		logger.Error("lens failed", "error", err)
		return 1
	}
	return 0
}
