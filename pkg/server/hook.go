package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gimlet-io/project-notifier/pkg/notifier"
	"github.com/google/go-github/v37/github"
	"github.com/sirupsen/logrus"
)

const (
	projectsV2ItemEvent = "projects_v2_item"
	pingEvent           = "ping"
	editedAction        = "edited"
)

// maxPayloadSize is the size Github caps deliveries at
var maxPayloadSize int64 = 25 << 20

// hook verifies and parses Github deliveries,
// acknowledges them right away
// and runs the notification in the background
func (s *Server) hook(w http.ResponseWriter, r *http.Request) {
	if s.limiter != nil {
		err := s.limiter.Allow(source(r))
		if err != nil {
			logrus.Warnf("dropping delivery: %s", err)
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPayloadSize)
	payload, err := github.ValidatePayload(r, s.webhookSecret)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logrus.Warnf("dropping delivery over %d bytes", tooLarge.Limit)
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		logrus.Warnf("invalid webhook delivery: %s", err)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	eventType := github.WebHookType(r)
	deliveryID := github.DeliveryID(r)
	webhooksReceived.WithLabelValues(eventType).Inc()

	switch eventType {
	case pingEvent:
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
		return
	case projectsV2ItemEvent:
	default:
		logrus.Debugf("ignoring %s event", eventType)
		w.WriteHeader(http.StatusOK)
		return
	}

	var envelope struct {
		Action string `json:"action"`
	}
	err = json.Unmarshal(payload, &envelope)
	if err != nil {
		logrus.Errorf("could not parse delivery %s: %s", deliveryID, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	if envelope.Action != editedAction {
		logrus.Debugf("ignoring %s action", envelope.Action)
		w.WriteHeader(http.StatusOK)
		return
	}

	event, err := notifier.ParseEvent(payload)
	if err != nil {
		logrus.Errorf("could not parse delivery %s: %s", deliveryID, err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.process(deliveryID, event)
	}()

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) process(deliveryID string, event *notifier.StatusChangeEvent) {
	start := time.Now()
	result := s.notifier.Notify(context.Background(), event)
	perf.Observe(time.Since(start).Seconds())

	notifications.WithLabelValues(string(result.Outcome)).Inc()
	if result.Outcome == notifier.Sent {
		logrus.Infof("delivery %s: status change of project %d sent to %s", deliveryID, event.ProjectNumber, result.Channel)
	}
}

func source(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
