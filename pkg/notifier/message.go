package notifier

import (
	"fmt"
	"strings"
)

const (
	UnknownStatus = "unknown status"
	UnknownTitle  = "unknown title"
)

// Content kinds as reported by the GraphQL __typename and the webhook content_type
const (
	ContentIssue       = "Issue"
	ContentPullRequest = "PullRequest"
	ContentDraftIssue  = "DraftIssue"
)

// Content is the issue or pull request behind a project item
type Content struct {
	Kind  string
	Title string
	URL   string
}

// Message is a chat notification, built and dispatched per event
type Message struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}

// statusChange is the resolved transition of a Status field
type statusChange struct {
	oldStatus string
	oldGlyph  string
	newStatus string
	newGlyph  string
}

func resolveStatusChange(from, to *StatusOption) statusChange {
	change := statusChange{
		oldStatus: UnknownStatus,
		newStatus: UnknownStatus,
	}

	var oldColor, newColor string
	if from != nil {
		if from.Name != "" {
			change.oldStatus = from.Name
		}
		oldColor = from.Color
	}
	if to != nil {
		if to.Name != "" {
			change.newStatus = to.Name
		}
		newColor = to.Color
	}

	change.oldGlyph = Glyph(oldColor)
	change.newGlyph = Glyph(newColor)
	return change
}

// text phrases a field that had no prior value as "set to", others as "changed from"
func (c statusChange) text() string {
	if c.oldStatus == UnknownStatus {
		return fmt.Sprintf("status set to %s%s", c.newGlyph, c.newStatus)
	}
	return fmt.Sprintf("status changed from %s%s to %s%s", c.oldGlyph, c.oldStatus, c.newGlyph, c.newStatus)
}

func kindLabel(kind string) string {
	switch kind {
	case ContentPullRequest:
		return "Pull request"
	case ContentDraftIssue:
		return "Draft issue"
	default:
		return "Issue"
	}
}

var (
	linkTextEscaper = strings.NewReplacer(`\`, `\\`, `[`, `\[`, `]`, `\]`)
	linkURLEscaper  = strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29")
)

// markdownLink escapes the text so titles with brackets keep the link intact
func markdownLink(text, url string) string {
	if url == "" {
		return text
	}
	return fmt.Sprintf("[%s](%s)", linkTextEscaper.Replace(text), linkURLEscaper.Replace(url))
}

func composeText(event *StatusChangeEvent, content *Content) string {
	kind := event.ContentType
	title := UnknownTitle
	url := ""
	if content != nil {
		if content.Kind != "" {
			kind = content.Kind
		}
		if content.Title != "" {
			title = content.Title
		}
		url = content.URL
	}

	change := resolveStatusChange(event.From, event.To)

	return fmt.Sprintf("%s %s %s by %s",
		kindLabel(kind),
		markdownLink(title, url),
		change.text(),
		markdownLink(event.Sender, event.SenderURL),
	)
}
