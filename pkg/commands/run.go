package commands

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Run executes a single command as if it was the whole app, used in tests
func Run(cmd *cli.Command, args []string) error {
	return RunWithOutput(cmd, args, os.Stdout)
}

func RunWithOutput(cmd *cli.Command, args []string, out io.Writer) error {
	app := &cli.App{
		Name:     "statusctl",
		Writer:   out,
		Commands: []*cli.Command{cmd},
	}
	return app.Run(args)
}
