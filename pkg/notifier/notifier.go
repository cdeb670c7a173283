package notifier

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ContentResolver looks up the issue or pull request linked to a project item.
// A nil Content with a nil error means the item has no resolvable content.
type ContentResolver interface {
	ResolveContent(ctx context.Context, installationID int64, itemNodeID string) (*Content, error)
}

// Dispatcher delivers a message to a chat channel
type Dispatcher interface {
	Dispatch(ctx context.Context, msg *Message) error
}

type Outcome string

const (
	Sent                   Outcome = "sent"
	SkippedNoProject       Outcome = "skipped_no_project"
	SkippedUnmappedProject Outcome = "skipped_unmapped_project"
	SkippedNotStatusField  Outcome = "skipped_not_status_field"
	Failed                 Outcome = "failed"
)

// Result reports what Notify did with an event. Err is only set for Failed.
type Result struct {
	Outcome Outcome
	Channel string
	Text    string
	Err     error
}

// Notifier turns Status field transitions into chat messages.
// It holds no per-event state, Notify is safe for concurrent use.
type Notifier struct {
	channels   ProjectChannels
	resolver   ContentResolver
	dispatcher Dispatcher
	timeout    time.Duration
	log        *logrus.Logger
}

func NewNotifier(
	channels ProjectChannels,
	resolver ContentResolver,
	dispatcher Dispatcher,
) *Notifier {
	return &Notifier{
		channels:   channels,
		resolver:   resolver,
		dispatcher: dispatcher,
		log:        logrus.StandardLogger(),
	}
}

// WithTimeout bounds content resolution and dispatch together
func (n *Notifier) WithTimeout(timeout time.Duration) *Notifier {
	n.timeout = timeout
	return n
}

func (n *Notifier) WithLogger(log *logrus.Logger) *Notifier {
	n.log = log
	return n
}

// Notify sends a message for a Status field transition.
// Events of other fields, without a project number or of unmapped projects are skipped.
// Collaborator failures are logged and returned in the Result, never panicked or retried.
func (n *Notifier) Notify(ctx context.Context, event *StatusChangeEvent) Result {
	if event.ProjectNumber == 0 {
		return Result{Outcome: SkippedNoProject}
	}

	logger := n.log.WithFields(logrus.Fields{
		"project": event.ProjectNumber,
		"item":    event.ItemNodeID,
	})

	channel, ok := n.channels.Channel(event.ProjectNumber)
	if !ok {
		logger.Infof("no channel mapped to project %d", event.ProjectNumber)
		return Result{Outcome: SkippedUnmappedProject}
	}

	if !event.IsStatusChange() {
		return Result{Outcome: SkippedNotStatusField, Channel: channel}
	}

	if n.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.timeout)
		defer cancel()
	}

	content, err := n.resolver.ResolveContent(ctx, event.InstallationID, event.ItemNodeID)
	if err != nil {
		err = errors.Wrap(err, "cannot resolve project item content")
		logger.Errorf("%s", err)
		return Result{Outcome: Failed, Channel: channel, Err: err}
	}

	msg := &Message{
		Channel: channel,
		Text:    composeText(event, content),
	}

	err = n.dispatcher.Dispatch(ctx, msg)
	if err != nil {
		err = errors.Wrapf(err, "cannot send notification to %s", channel)
		logger.Errorf("%s", err)
		return Result{Outcome: Failed, Channel: channel, Text: msg.Text, Err: err}
	}

	logger.Debugf("status change sent to %s", channel)
	return Result{Outcome: Sent, Channel: channel, Text: msg.Text}
}
