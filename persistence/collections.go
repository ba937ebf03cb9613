package persistence

import (
	"context"
	"teamboard/domain"

	"github.com/fundwit/go-commons/types"
)

const (
	CollectionProjects  = "projects"
	CollectionDivisions = "divisions"
	CollectionMembers   = "members"
	CollectionTasks     = "tasks"
	CollectionUsers     = "users"
	CollectionEvents    = "events"
)

func LoadCollection[T any](ctx context.Context, collection string) ([]T, error) {
	items := []T{}
	if err := ActiveStore.Read(ctx, collection, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func SaveCollection[T any](ctx context.Context, collection string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return ActiveStore.Write(ctx, collection, items)
}

// NextID allocates max(existing id)+1 within one collection.
func NextID[T any](items []T, idOf func(T) types.ID) types.ID {
	var max types.ID
	for _, item := range items {
		if id := idOf(item); id > max {
			max = id
		}
	}
	return max + 1
}

func LoadProjects(ctx context.Context) ([]domain.Project, error) {
	return LoadCollection[domain.Project](ctx, CollectionProjects)
}
func SaveProjects(ctx context.Context, projects []domain.Project) error {
	return SaveCollection(ctx, CollectionProjects, projects)
}
func LoadDivisions(ctx context.Context) ([]domain.Division, error) {
	return LoadCollection[domain.Division](ctx, CollectionDivisions)
}
func SaveDivisions(ctx context.Context, divisions []domain.Division) error {
	return SaveCollection(ctx, CollectionDivisions, divisions)
}
func LoadMembers(ctx context.Context) ([]domain.Member, error) {
	return LoadCollection[domain.Member](ctx, CollectionMembers)
}
func SaveMembers(ctx context.Context, members []domain.Member) error {
	return SaveCollection(ctx, CollectionMembers, members)
}
func LoadTasks(ctx context.Context) ([]domain.Task, error) {
	return LoadCollection[domain.Task](ctx, CollectionTasks)
}
func SaveTasks(ctx context.Context, tasks []domain.Task) error {
	return SaveCollection(ctx, CollectionTasks, tasks)
}

// Workspace is the full set of project data collections, loaded and saved together.
type Workspace struct {
	Projects  []domain.Project
	Divisions []domain.Division
	Members   []domain.Member
	Tasks     []domain.Task
}

func LoadWorkspace(ctx context.Context) (*Workspace, error) {
	var err error
	w := &Workspace{}
	if w.Projects, err = LoadProjects(ctx); err != nil {
		return nil, err
	}
	if w.Divisions, err = LoadDivisions(ctx); err != nil {
		return nil, err
	}
	if w.Members, err = LoadMembers(ctx); err != nil {
		return nil, err
	}
	if w.Tasks, err = LoadTasks(ctx); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *Workspace) Save(ctx context.Context) error {
	if err := SaveProjects(ctx, w.Projects); err != nil {
		return err
	}
	if err := SaveDivisions(ctx, w.Divisions); err != nil {
		return err
	}
	if err := SaveMembers(ctx, w.Members); err != nil {
		return err
	}
	return SaveTasks(ctx, w.Tasks)
}

func (w *Workspace) Project(id types.ID) (*domain.Project, bool) {
	for i := range w.Projects {
		if w.Projects[i].ID == id {
			return &w.Projects[i], true
		}
	}
	return nil, false
}

func (w *Workspace) Division(id types.ID) (*domain.Division, bool) {
	for i := range w.Divisions {
		if w.Divisions[i].ID == id {
			return &w.Divisions[i], true
		}
	}
	return nil, false
}

func (w *Workspace) Member(id types.ID) (*domain.Member, bool) {
	for i := range w.Members {
		if w.Members[i].ID == id {
			return &w.Members[i], true
		}
	}
	return nil, false
}

func (w *Workspace) Task(id types.ID) (*domain.Task, bool) {
	for i := range w.Tasks {
		if w.Tasks[i].ID == id {
			return &w.Tasks[i], true
		}
	}
	return nil, false
}

func (w *Workspace) NextProjectID() types.ID {
	return NextID(w.Projects, func(p domain.Project) types.ID { return p.ID })
}
func (w *Workspace) NextDivisionID() types.ID {
	return NextID(w.Divisions, func(d domain.Division) types.ID { return d.ID })
}
func (w *Workspace) NextMemberID() types.ID {
	return NextID(w.Members, func(m domain.Member) types.ID { return m.ID })
}
func (w *Workspace) NextTaskID() types.ID {
	return NextID(w.Tasks, func(t domain.Task) types.ID { return t.ID })
}

// UnassignTasks clears the assignee of every task assigned to one of the given member rows.
func (w *Workspace) UnassignTasks(memberIDs ...types.ID) {
	if len(memberIDs) == 0 {
		return
	}
	drop := map[types.ID]bool{}
	for _, id := range memberIDs {
		drop[id] = true
	}
	now := types.CurrentTimestamp()
	for i := range w.Tasks {
		if w.Tasks[i].AssigneeID != 0 && drop[w.Tasks[i].AssigneeID] {
			w.Tasks[i].AssigneeID = 0
			w.Tasks[i].UpdateTime = now
		}
	}
}

// CascadeDeleteProject removes the project together with its divisions, members and tasks.
func (w *Workspace) CascadeDeleteProject(projectID types.ID) bool {
	found := false
	projects := []domain.Project{}
	for _, p := range w.Projects {
		if p.ID == projectID {
			found = true
			continue
		}
		projects = append(projects, p)
	}
	if !found {
		return false
	}
	w.Projects = projects

	divisions := []domain.Division{}
	for _, d := range w.Divisions {
		if d.ProjectID != projectID {
			divisions = append(divisions, d)
		}
	}
	w.Divisions = divisions

	members := []domain.Member{}
	for _, m := range w.Members {
		if m.ProjectID != projectID {
			members = append(members, m)
		}
	}
	w.Members = members

	tasks := []domain.Task{}
	for _, t := range w.Tasks {
		if t.ProjectID != projectID {
			tasks = append(tasks, t)
		}
	}
	w.Tasks = tasks
	return true
}

// CascadeDeleteProject loads the collections, removes the project tree and saves them back.
func CascadeDeleteProject(ctx context.Context, projectID types.ID) (bool, error) {
	w, err := LoadWorkspace(ctx)
	if err != nil {
		return false, err
	}
	if !w.CascadeDeleteProject(projectID) {
		return false, nil
	}
	return true, w.Save(ctx)
}
