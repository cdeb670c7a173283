package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const StatusFieldName = "Status"

// StatusOption is a single select option as sent in field value changes
type StatusOption struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// StatusChangeEvent is the validated form of a projects_v2_item webhook delivery.
// ProjectNumber is zero when the delivery carries no field value change.
// From and To are nil when absent, or when the field type does not send options.
type StatusChangeEvent struct {
	Action         string
	ItemNodeID     string
	ContentType    string
	ProjectNumber  int
	FieldName      string
	FieldType      string
	From           *StatusOption
	To             *StatusOption
	Sender         string
	SenderURL      string
	Organization   string
	InstallationID int64
}

// IsStatusChange tells whether the event edits the Status field
func (e *StatusChangeEvent) IsStatusChange() bool {
	return e.FieldName == StatusFieldName
}

const projectsV2ItemSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["action", "projects_v2_item", "sender"],
  "properties": {
    "action": {"type": "string"},
    "projects_v2_item": {
      "type": "object",
      "required": ["node_id"],
      "properties": {
        "node_id": {"type": "string", "minLength": 1},
        "content_type": {"type": ["string", "null"]}
      }
    },
    "changes": {
      "type": ["object", "null"],
      "properties": {
        "field_value": {
          "type": ["object", "null"],
          "properties": {
            "field_name": {"type": "string"},
            "field_type": {"type": "string"},
            "project_number": {"type": "integer", "minimum": 0}
          }
        }
      }
    },
    "sender": {
      "type": "object",
      "required": ["login"],
      "properties": {
        "login": {"type": "string", "minLength": 1},
        "html_url": {"type": ["string", "null"]}
      }
    },
    "organization": {
      "type": ["object", "null"],
      "properties": {
        "login": {"type": "string"}
      }
    },
    "installation": {
      "type": ["object", "null"],
      "properties": {
        "id": {"type": "integer"}
      }
    }
  }
}`

var eventSchema = gojsonschema.NewStringLoader(projectsV2ItemSchema)

type projectsV2ItemPayload struct {
	Action string `json:"action"`
	Item   struct {
		NodeID      string `json:"node_id"`
		ContentType string `json:"content_type"`
	} `json:"projects_v2_item"`
	Changes struct {
		FieldValue *struct {
			FieldName     string          `json:"field_name"`
			FieldType     string          `json:"field_type"`
			ProjectNumber int             `json:"project_number"`
			From          json.RawMessage `json:"from"`
			To            json.RawMessage `json:"to"`
		} `json:"field_value"`
	} `json:"changes"`
	Sender struct {
		Login   string `json:"login"`
		HTMLURL string `json:"html_url"`
	} `json:"sender"`
	Organization struct {
		Login string `json:"login"`
	} `json:"organization"`
	Installation struct {
		ID int64 `json:"id"`
	} `json:"installation"`
}

// ValidateEvent checks a raw delivery body against the projects_v2_item schema
func ValidateEvent(payload []byte) error {
	result, err := gojsonschema.Validate(eventSchema, gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return fmt.Errorf("cannot validate payload: %s", err)
	}

	if !result.Valid() {
		errs := strings.Builder{}
		for _, desc := range result.Errors() {
			errs.WriteString(fmt.Sprintf("- %s\n", desc))
		}
		return fmt.Errorf("invalid projects_v2_item payload: \n%s", errs.String())
	}

	return nil
}

// ParseEvent validates and converts a raw projects_v2_item delivery body
func ParseEvent(payload []byte) (*StatusChangeEvent, error) {
	err := ValidateEvent(payload)
	if err != nil {
		return nil, err
	}

	var p projectsV2ItemPayload
	err = json.Unmarshal(payload, &p)
	if err != nil {
		return nil, fmt.Errorf("cannot parse payload: %w", err)
	}

	event := &StatusChangeEvent{
		Action:         p.Action,
		ItemNodeID:     p.Item.NodeID,
		ContentType:    p.Item.ContentType,
		Sender:         p.Sender.Login,
		SenderURL:      p.Sender.HTMLURL,
		Organization:   p.Organization.Login,
		InstallationID: p.Installation.ID,
	}

	if fv := p.Changes.FieldValue; fv != nil {
		event.ProjectNumber = fv.ProjectNumber
		event.FieldName = fv.FieldName
		event.FieldType = fv.FieldType

		event.From, err = parseOption(fv.From)
		if err != nil {
			return nil, fmt.Errorf("invalid changes.field_value.from: %w", err)
		}
		event.To, err = parseOption(fv.To)
		if err != nil {
			return nil, fmt.Errorf("invalid changes.field_value.to: %w", err)
		}
	}

	return event, nil
}

// parseOption decodes a field value side. Only JSON objects carry an option,
// date, number and text fields send scalars which are skipped.
func parseOption(raw json.RawMessage) (*StatusOption, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}

	var option StatusOption
	err := json.Unmarshal(raw, &option)
	if err != nil {
		return nil, err
	}
	return &option, nil
}
