package event

import (
	"context"
	"teamboard/bizerror"
	"teamboard/common"
	"teamboard/domain"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
)

var (
	CreateEventFunc = CreateEvent
	QueryEventsFunc = QueryEvents
)

// CreateEvent appends a record to the events collection and runs the handlers.
// Callers are already inside persistence.Transaction.
func CreateEvent(ctx context.Context, sourceType string, sourceId types.ID, sourceDesc string, projectId types.ID,
	category EventCategory, updatedProperties UpdatedProperties, identity *session.Identity) (*EventRecord, error) {

	record := EventRecord{
		ID: common.NextId(common.DefaultIdWorker),
		Event: Event{
			SourceType: sourceType,
			SourceId:   sourceId,
			SourceDesc: sourceDesc,
			ProjectId:  projectId,

			EventCategory:     category,
			UpdatedProperties: updatedProperties,

			CreatorId:   identity.ID,
			CreatorName: identity.Name,
		},
		Timestamp: types.CurrentTimestamp(),
	}

	records, err := persistence.LoadCollection[EventRecord](ctx, persistence.CollectionEvents)
	if err != nil {
		return nil, err
	}
	if err := persistence.SaveCollection(ctx, persistence.CollectionEvents, append(records, record)); err != nil {
		return nil, err
	}

	InvokeHandlersFunc(&record)
	return &record, nil
}

// QueryEvents lists the records of one project, visible to its members only.
func QueryEvents(q *EventQuery, s *session.Session) ([]EventRecord, error) {
	members, err := persistence.LoadMembers(s.Ctx())
	if err != nil {
		return nil, err
	}
	if !domain.IsProjectMember(members, q.ProjectId, s.UserID()) {
		return nil, bizerror.ErrForbidden
	}
	records, err := persistence.LoadCollection[EventRecord](s.Ctx(), persistence.CollectionEvents)
	if err != nil {
		return nil, err
	}
	result := []EventRecord{}
	for _, r := range records {
		if r.ProjectId != q.ProjectId {
			continue
		}
		if q.SourceType != "" && r.SourceType != q.SourceType {
			continue
		}
		if q.SourceId != 0 && r.SourceId != q.SourceId {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}
