package main

import (
	"fmt"
	"os"

	"github.com/enescakir/emoji"
	"github.com/gimlet-io/project-notifier/pkg/commands/event"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:                 "statusctl",
		Usage:                "inspects and replays Github project item deliveries",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			&event.Command,
		},
	}
	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", emoji.CrossMark, err.Error())
		os.Exit(1)
	}
}
