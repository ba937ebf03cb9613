package namespace

import (
	"teamboard/domain"
	"teamboard/domain/membership"
	"teamboard/persistence"
	"teamboard/session"

	"github.com/fundwit/go-commons/types"
)

// EnsureCoreMembers reconciles the member rows of a project after any change to its owner, manager or
// division coordinators.
func EnsureCoreMembers(w *persistence.Workspace, projectID types.ID) {
	p, found := w.Project(projectID)
	if !found {
		return
	}
	w.Members = membership.Reconciler{Now: types.CurrentTimestamp}.Reconcile(*p, w.Divisions, w.Members)
}

func loadProject(w *persistence.Workspace, id types.ID) (*domain.Project, error) {
	p, found := w.Project(id)
	if !found {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func identityOf(s *session.Session) *session.Identity {
	return &s.Identity
}
