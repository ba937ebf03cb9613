package event

import (
	"github.com/fundwit/go-commons/types"
)

const (
	EventCategoryCreated         = "CREATED"
	EventCategoryDeleted         = "DELETED"
	EventCategoryPropertyUpdated = "PROPERTY_UPDATED"
	EventCategoryRelationUpdated = "RELATION_UPDATED"
)

const (
	SourceProject  = "PROJECT"
	SourceDivision = "DIVISION"
	SourceMember   = "MEMBER"
	SourceTask     = "TASK"
)

type EventCategory string

type Event struct {
	SourceId   types.ID `json:"sourceId"`
	SourceType string   `json:"sourceType"`
	SourceDesc string   `json:"sourceDesc"`
	ProjectId  types.ID `json:"projectId"`

	CreatorId   types.ID `json:"creatorId"`
	CreatorName string   `json:"creatorName"`

	EventCategory     EventCategory     `json:"eventCategory"` // CREATED, DELETED, PROPERTY_UPDATED, RELATION_UPDATED
	UpdatedProperties UpdatedProperties `json:"updatedProperties"`
}

type EventRecord struct {
	ID types.ID `json:"id"`
	Event

	Timestamp types.Timestamp `json:"timestamp"`
}

type UpdatedProperty struct {
	PropertyName string `json:"propertyName"`

	OldValue string `json:"oldValue"`
	NewValue string `json:"newValue"`
}

type UpdatedProperties []UpdatedProperty

// Changed appends a property change when old and new differ.
func (p UpdatedProperties) Changed(name, oldValue, newValue string) UpdatedProperties {
	if oldValue == newValue {
		return p
	}
	return append(p, UpdatedProperty{PropertyName: name, OldValue: oldValue, NewValue: newValue})
}

type EventQuery struct {
	ProjectId  types.ID `form:"projectId" binding:"required"`
	SourceType string   `form:"sourceType"`
	SourceId   types.ID `form:"sourceId"`
}
