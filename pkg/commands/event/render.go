package event

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/urfave/cli/v2"
)

var eventRenderCmd = cli.Command{
	Name:  "render",
	Usage: "Prints the notification a payload would send, without contacting Github or chat",
	UsageText: `statusctl event render -f payload.json \
     --title "Ship the onboarding flow" \
     --url https://github.com/gimlet-io/gimlet/issues/42`,
	Action: render,
	Flags: []cli.Flag{
		fileFlag,
		&cli.StringFlag{
			Name:  "title",
			Usage: "title of the linked issue or pull request",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "url of the linked issue or pull request",
		},
		&cli.StringFlag{
			Name:  "kind",
			Usage: "Issue, PullRequest or DraftIssue, defaults to the payload's content_type",
		},
		&cli.StringFlag{
			Name:  "channels",
			Usage: "project number to channel mapping",
			Value: notifier.DefaultProjectChannels().String(),
		},
	},
}

// fixedContent resolves every item to the content given on the command line
type fixedContent struct {
	content *notifier.Content
}

func (f *fixedContent) ResolveContent(ctx context.Context, installationID int64, itemNodeID string) (*notifier.Content, error) {
	return f.content, nil
}

// printer dispatches by writing the message out
type printer struct {
	out io.Writer
}

func (p *printer) Dispatch(ctx context.Context, msg *notifier.Message) error {
	channel := color.New(color.FgBlue, color.Bold).SprintFunc()
	_, err := fmt.Fprintf(p.out, "%s %s\n", channel("#"+msg.Channel), msg.Text)
	return err
}

func render(c *cli.Context) error {
	event, err := parseEvent(c)
	if err != nil {
		return err
	}

	channels, err := notifier.ParseProjectChannels(c.String("channels"))
	if err != nil {
		return err
	}

	var content *notifier.Content
	if c.String("title") != "" || c.String("url") != "" || c.String("kind") != "" {
		content = &notifier.Content{
			Kind:  c.String("kind"),
			Title: c.String("title"),
			URL:   c.String("url"),
		}
	}

	n := notifier.NewNotifier(channels, &fixedContent{content: content}, &printer{out: c.App.Writer})
	result := n.Notify(c.Context, event)
	return report(c.App.Writer, result)
}

func report(out io.Writer, result notifier.Result) error {
	gray := color.New(color.FgHiBlack).SprintFunc()

	switch result.Outcome {
	case notifier.Sent:
		return nil
	case notifier.Failed:
		return result.Err
	case notifier.SkippedNoProject:
		fmt.Fprintln(out, gray("no notification: the payload carries no project field change"))
	case notifier.SkippedUnmappedProject:
		fmt.Fprintln(out, gray("no notification: the project has no channel mapped"))
	case notifier.SkippedNotStatusField:
		fmt.Fprintln(out, gray("no notification: the change is not on the Status field"))
	}
	return nil
}
