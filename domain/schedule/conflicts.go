package schedule

import (
	"fmt"
	"teamboard/domain"
	"teamboard/domain/daterange"

	"github.com/fundwit/go-commons/types"
)

const ResolveInstruction = "Adjust the dates of the conflicting divisions and tasks before changing the project dates."

// Conflicts lists the children of a project that would fall outside a candidate project range.
type Conflicts struct {
	DivisionConflicts []domain.Division `json:"divisionConflicts"`
	TaskConflicts     []domain.Task     `json:"taskConflicts"`
}

func (c Conflicts) Empty() bool {
	return len(c.DivisionConflicts) == 0 && len(c.TaskConflicts) == 0
}

// Messages summarizes the conflicts; it is empty when there are none.
func (c Conflicts) Messages() []string {
	messages := []string{}
	if n := len(c.DivisionConflicts); n > 0 {
		messages = append(messages, fmt.Sprintf("%d %s outside the project date range", n, plural(n, "division falls", "divisions fall")))
	}
	if n := len(c.TaskConflicts); n > 0 {
		messages = append(messages, fmt.Sprintf("%d %s outside the project date range", n, plural(n, "task falls", "tasks fall")))
	}
	if !c.Empty() {
		messages = append(messages, ResolveInstruction)
	}
	return messages
}

// DetectProjectConflicts is advisory: it never changes the entities it inspects.
func DetectProjectConflicts(projectID types.ID, candidate daterange.Range, divisions []domain.Division, tasks []domain.Task) Conflicts {
	c := Conflicts{DivisionConflicts: []domain.Division{}, TaskConflicts: []domain.Task{}}
	for _, d := range divisions {
		if d.ProjectID == projectID && !daterange.IsChildWithinParent(candidate, d.Range()) {
			c.DivisionConflicts = append(c.DivisionConflicts, d)
		}
	}
	for _, t := range tasks {
		if t.ProjectID == projectID && !daterange.IsChildWithinParent(candidate, t.Range()) {
			c.TaskConflicts = append(c.TaskConflicts, t)
		}
	}
	return c
}

// DetectDivisionConflicts finds the tasks assigned into a division that a candidate division range would exclude.
func DetectDivisionConflicts(divisionID types.ID, candidate daterange.Range, members []domain.Member, tasks []domain.Task) []domain.Task {
	r := []domain.Task{}
	for _, t := range tasks {
		if t.AssigneeID == 0 {
			continue
		}
		m, found := domain.FindMember(members, t.AssigneeID)
		if !found || m.DivisionID != divisionID {
			continue
		}
		if !daterange.IsChildWithinParent(candidate, t.Range()) {
			r = append(r, t)
		}
	}
	return r
}

// DetectMemberConflicts finds the tasks assigned to one member row that a candidate division range would
// exclude, used before the row moves into another division.
func DetectMemberConflicts(memberID types.ID, candidate daterange.Range, tasks []domain.Task) []domain.Task {
	r := []domain.Task{}
	if memberID == 0 {
		return r
	}
	for _, t := range tasks {
		if t.AssigneeID == memberID && !daterange.IsChildWithinParent(candidate, t.Range()) {
			r = append(r, t)
		}
	}
	return r
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
