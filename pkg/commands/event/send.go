package event

import (
	"fmt"

	"github.com/enescakir/emoji"
	"github.com/gimlet-io/project-notifier/cmd/notifier/config"
	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var eventSendCmd = cli.Command{
	Name:  "send",
	Usage: "Replays a payload through Github and the configured chat provider",
	UsageText: `GITHUB_TOKEN=ghp_xxx MATTERMOST_WEBHOOK_URL=https://chat.example.com/hooks/xxx \
  statusctl event send -f payload.json`,
	Action: send,
	Flags: []cli.Flag{
		fileFlag,
		&cli.StringFlag{
			Name:  "env-file",
			Usage: "dotenv file to load the configuration from",
			Value: ".env",
		},
	},
}

func send(c *cli.Context) error {
	event, err := parseEvent(c)
	if err != nil {
		return err
	}

	// a missing dotenv file is fine, the environment may hold the config
	_ = godotenv.Load(c.String("env-file"))

	cfg, err := config.Environ()
	if err != nil {
		return fmt.Errorf("invalid configuration: %s", err)
	}
	err = cfg.ValidateDelivery()
	if err != nil {
		return err
	}

	n, err := cfg.Notifier()
	if err != nil {
		return err
	}

	result := n.Notify(c.Context, event)
	if result.Outcome == notifier.Sent {
		fmt.Fprintf(c.App.Writer, "%v sent to %s: %s\n", emoji.CheckMark, result.Channel, result.Text)
	}
	return report(c.App.Writer, result)
}
