package event

import (
	"github.com/sirupsen/logrus"
)

/*
return nil if not support
*/
type EventHandler func(e *EventRecord) *EventHandleResult

type EventHandleResult struct {
	Success           bool
	Message           string
	HandlerIdentifier string
}

var EventHandlers []EventHandler

var InvokeHandlersFunc = invokeHandlers

func invokeHandlers(record *EventRecord) []EventHandleResult {
	results := []EventHandleResult{}
	for _, handler := range EventHandlers {
		logrus.Debug("pre handle event ", record.Event)
		r := handler(record)

		if r == nil {
			continue
		}

		results = append(results, *r)

		if r.Success {
			logrus.Debug("post handle event. ", r)
		} else {
			logrus.Error("post handler error. ", r)
		}
	}
	return results
}

// LogEventHandler writes every record to the structured log.
func LogEventHandler(e *EventRecord) *EventHandleResult {
	logrus.WithFields(logrus.Fields{
		"eventId":    e.ID,
		"sourceType": e.SourceType,
		"sourceId":   e.SourceId,
		"projectId":  e.ProjectId,
		"category":   e.EventCategory,
		"creator":    e.CreatorName,
		"changes":    len(e.UpdatedProperties),
	}).Info("change event")
	return &EventHandleResult{Success: true, HandlerIdentifier: "log"}
}
