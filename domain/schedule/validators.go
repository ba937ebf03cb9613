package schedule

import (
	"teamboard/domain"
	"teamboard/domain/daterange"
)

const (
	MsgProjectRangeInvalid      = "project start date must not be after its end date"
	MsgDivisionRangeInvalid     = "division start date must not be after its due date"
	MsgDivisionOutsideProject   = "division dates must fall within the project dates"
	MsgTaskRangeInvalid         = "task start date must not be after its due date"
	MsgTaskOutsideDivision      = "task dates must fall within the dates of the assignee's division"
	MsgTaskOutsideProject       = "task dates must fall within the project dates"
	MsgDivisionExcludesItsTasks = "division dates must still cover the tasks assigned to its members"
)

// ValidateProjectDates returns violation messages; an empty list means valid.
func ValidateProjectDates(r daterange.Range) []string {
	violations := []string{}
	if !r.Valid() {
		violations = append(violations, MsgProjectRangeInvalid)
	}
	return violations
}

func ValidateDivisionDates(p domain.Project, d domain.Division) []string {
	violations := []string{}
	if !d.Range().Valid() {
		return append(violations, MsgDivisionRangeInvalid)
	}
	if !daterange.IsChildWithinParent(p.Range(), d.Range()) {
		violations = append(violations, MsgDivisionOutsideProject)
	}
	return violations
}

// ValidateTaskDates checks a task against the division of its assignee (nil when unassigned or
// assigned at project level) and against the project.
func ValidateTaskDates(p domain.Project, division *domain.Division, t domain.Task) []string {
	violations := []string{}
	if !t.Range().Valid() {
		return append(violations, MsgTaskRangeInvalid)
	}
	if division != nil && !daterange.IsChildWithinParent(division.Range(), t.Range()) {
		violations = append(violations, MsgTaskOutsideDivision)
	}
	if !daterange.IsChildWithinParent(p.Range(), t.Range()) {
		violations = append(violations, MsgTaskOutsideProject)
	}
	return violations
}
