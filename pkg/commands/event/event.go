package event

import (
	"fmt"
	"os"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/urfave/cli/v2"
)

var Command = cli.Command{
	Name:  "event",
	Usage: "Works with projects_v2_item webhook payloads",
	Subcommands: []*cli.Command{
		&eventLintCmd,
		&eventRenderCmd,
		&eventSendCmd,
	},
}

var fileFlag = &cli.StringFlag{
	Name:     "file",
	Aliases:  []string{"f"},
	Usage:    "projects_v2_item webhook payload",
	Required: true,
}

func readPayload(c *cli.Context) ([]byte, error) {
	payload, err := os.ReadFile(c.String("file"))
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s", err)
	}
	return payload, nil
}

func parseEvent(c *cli.Context) (*notifier.StatusChangeEvent, error) {
	payload, err := readPayload(c)
	if err != nil {
		return nil, err
	}
	return notifier.ParseEvent(payload)
}
