package event

import (
	"fmt"

	"github.com/enescakir/emoji"
	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/urfave/cli/v2"
)

var eventLintCmd = cli.Command{
	Name:      "lint",
	Usage:     "Validates a projects_v2_item webhook payload",
	UsageText: `statusctl event lint -f payload.json`,
	Action:    lint,
	Flags: []cli.Flag{
		fileFlag,
	},
}

func lint(c *cli.Context) error {
	payload, err := readPayload(c)
	if err != nil {
		return err
	}

	err = notifier.ValidateEvent(payload)
	if err != nil {
		return err
	}

	fmt.Fprintf(c.App.Writer, "%v %s is a valid projects_v2_item payload\n", emoji.CheckMark, c.String("file"))
	return nil
}
