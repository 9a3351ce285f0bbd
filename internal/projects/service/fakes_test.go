package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/taskmgmt/task-management-api/internal/pagination"
	"github.com/taskmgmt/task-management-api/internal/projects/domain"
)

// memStore backs both store interfaces with maps and applies the same
// owner scoping as the SQL repositories.
type memStore struct {
	mu       sync.Mutex
	projects map[uuid.UUID]domain.Project
	tasks    map[uuid.UUID]domain.Task
	clock    time.Time
}

func newMemStore() *memStore {
	return &memStore{
		projects: map[uuid.UUID]domain.Project{},
		tasks:    map[uuid.UUID]domain.Task{},
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

type projectStore struct{ *memStore }

type taskStore struct{ *memStore }

type noTx struct{ calls int }

func (n *noTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	n.calls++
	return fn(ctx)
}

func (m *memStore) withTasks(p domain.Project) domain.Project {
	p.Tasks = []domain.Task{}
	for _, t := range m.tasks {
		if t.ProjectID == p.ID {
			t.ProjectName = p.Name
			p.Tasks = append(p.Tasks, t)
		}
	}
	return p
}

func (s projectStore) Create(_ context.Context, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.New()
	p.CreatedAt = s.tick()
	p.UpdatedAt = p.CreatedAt
	p.Tasks = []domain.Task{}
	s.projects[p.ID] = *p
	return nil
}

func (s projectStore) FindByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.OwnerID != ownerID {
		return nil, domain.ErrProjectNotFound
	}
	p = s.withTasks(p)
	return &p, nil
}

func (s projectStore) owned(ownerID string) []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			out = append(out, s.withTasks(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s projectStore) ListAll(_ context.Context, ownerID string) ([]domain.Project, error) {
	return s.owned(ownerID), nil
}

func (s projectStore) ListPage(_ context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Project], error) {
	all := s.owned(ownerID)
	return pagination.New(slice(all, page), page, int64(len(all))), nil
}

func (s projectStore) Update(_ context.Context, ownerID string, p *domain.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.projects[p.ID]
	if !ok || cur.OwnerID != ownerID {
		return domain.ErrProjectNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.UpdatedAt = s.tick()
	p.UpdatedAt = cur.UpdatedAt
	s.projects[p.ID] = cur
	return nil
}

func (s projectStore) DeleteByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrProjectNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s taskStore) ownerOf(t domain.Task) string {
	return s.projects[t.ProjectID].OwnerID
}

func (s taskStore) Create(_ context.Context, ownerID string, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[t.ProjectID]
	if !ok || p.OwnerID != ownerID {
		return domain.ErrProjectNotFound
	}
	t.ID = uuid.New()
	t.CreatedAt = s.tick()
	t.UpdatedAt = t.CreatedAt
	s.tasks[t.ID] = *t
	return nil
}

func (s taskStore) FindByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) (*domain.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || s.ownerOf(t) != ownerID {
		return nil, domain.ErrTaskNotFound
	}
	t.ProjectName = s.projects[t.ProjectID].Name
	return &t, nil
}

func (s taskStore) filter(ownerID string, projectID *uuid.UUID) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Task
	for _, t := range s.tasks {
		if s.ownerOf(t) != ownerID || (projectID != nil && t.ProjectID != *projectID) {
			continue
		}
		t.ProjectName = s.projects[t.ProjectID].Name
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s taskStore) ListAllByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	return s.filter(ownerID, nil), nil
}

func (s taskStore) ListPageByOwner(_ context.Context, ownerID string, page pagination.Request) (pagination.Page[domain.Task], error) {
	all := s.filter(ownerID, nil)
	return pagination.New(slice(all, page), page, int64(len(all))), nil
}

func (s taskStore) ListAllByProjectAndOwner(_ context.Context, projectID uuid.UUID, ownerID string) ([]domain.Task, error) {
	return s.filter(ownerID, &projectID), nil
}

func (s taskStore) ListPageByProjectAndOwner(_ context.Context, projectID uuid.UUID, ownerID string, page pagination.Request) (pagination.Page[domain.Task], error) {
	all := s.filter(ownerID, &projectID)
	return pagination.New(slice(all, page), page, int64(len(all))), nil
}

func (s taskStore) Update(_ context.Context, ownerID string, t *domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.tasks[t.ID]
	if !ok || s.ownerOf(cur) != ownerID {
		return domain.ErrTaskNotFound
	}
	cur.Name = t.Name
	cur.Description = t.Description
	cur.Status = t.Status
	cur.UpdatedAt = s.tick()
	t.UpdatedAt = cur.UpdatedAt
	s.tasks[t.ID] = cur
	return nil
}

func (s taskStore) DeleteByIDAndOwner(_ context.Context, id uuid.UUID, ownerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[id]
	if !ok || s.ownerOf(t) != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(s.tasks, id)
	return nil
}

func (s taskStore) DeleteByProjectAndOwner(_ context.Context, projectID uuid.UUID, ownerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, t := range s.tasks {
		if t.ProjectID == projectID && s.ownerOf(t) == ownerID {
			delete(s.tasks, id)
			n++
		}
	}
	return n, nil
}

func slice[T any](all []T, page pagination.Request) []T {
	start := page.Offset()
	if start >= len(all) {
		return nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end]
}

type fixture struct {
	store    *memStore
	tx       *noTx
	projects *ProjectService
	tasks    *TaskService
}

func newFixture() fixture {
	m := newMemStore()
	tx := &noTx{}
	ps, ts := projectStore{m}, taskStore{m}
	return fixture{
		store:    m,
		tx:       tx,
		projects: NewProjectService(ps, ts, tx),
		tasks:    NewTaskService(ps, ts, tx),
	}
}
