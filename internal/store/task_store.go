package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/iliyamo/todo-task-api/internal/model"
)

// TaskRepository is the storage contract for tasks. The in-memory
// implementation below is the only one today; the interface exists so a
// persistent backend can be substituted without touching service logic.
type TaskRepository interface {
	Insert(ctx context.Context, title, description string, imageURL *string) (*model.Task, error)
	Get(ctx context.Context, id int) (*model.Task, error)
	List(ctx context.Context) ([]*model.Task, error)
	Update(ctx context.Context, id int, mutate func(*model.Task)) (*model.Task, error)
	Delete(ctx context.Context, id int) (*model.Task, error)
}

// TaskStore keeps tasks in a process-local slice guarded by a mutex.
// Mutations are mutually exclusive so ids are unique and strictly
// increasing even under concurrent requests. Nothing survives a restart.
type TaskStore struct {
	mu     sync.RWMutex
	tasks  []*model.Task
	nextID int
}

var _ TaskRepository = (*TaskStore)(nil)

func NewTaskStore() *TaskStore {
	return &TaskStore{nextID: 1}
}

// Insert assigns the next id and the creation timestamp and stores the task.
func (s *TaskStore) Insert(_ context.Context, title, description string, imageURL *string) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &model.Task{
		ID:          s.nextID,
		Title:       title,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		ImageURL:    imageURL,
	}
	s.nextID++
	s.tasks = append(s.tasks, t)
	cpy := *t
	return &cpy, nil
}

// Get returns a copy of the task with the given id.
func (s *TaskStore) Get(_ context.Context, id int) (*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := s.find(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	cpy := *t
	return &cpy, nil
}

// List returns copies of all tasks ordered by creation time, newest first.
// Tasks created at the same instant keep insertion order.
func (s *TaskStore) List(_ context.Context) ([]*model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		cpy := *t
		out = append(out, &cpy)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update applies mutate to the stored task under the write lock and returns
// a copy of the result. The id and creation time are restored afterwards so
// a mutator cannot break the immutability of either.
func (s *TaskStore) Update(_ context.Context, id int, mutate func(*model.Task)) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.find(id)
	if t == nil {
		return nil, ErrTaskNotFound
	}
	origID, origCreated := t.ID, t.CreatedAt
	mutate(t)
	t.ID, t.CreatedAt = origID, origCreated
	cpy := *t
	return &cpy, nil
}

// Delete removes the task and returns the removed value so the caller can
// release any attachment it referenced.
func (s *TaskStore) Delete(_ context.Context, id int) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			cpy := *t
			return &cpy, nil
		}
	}
	return nil, ErrTaskNotFound
}

// SeedDemo inserts the sample tasks the server ships with in dev mode.
func (s *TaskStore) SeedDemo() {
	now := time.Now().UTC()
	seed := []*model.Task{
		{Title: "Buy groceries", Description: "Milk, bread, eggs", CreatedAt: now},
		{Title: "Do homework", Description: "Math and physics", CreatedAt: now.Add(-2 * time.Hour)},
		{Title: "Clean the apartment", Description: "Vacuum and mop the floors", IsCompleted: true, CreatedAt: now.Add(-24 * time.Hour)},
		{Title: "Call mom", Description: "", CreatedAt: now.Add(-30 * time.Minute)},
		{Title: "Go to the gym", Description: "Training at 18:00", CreatedAt: now},
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range seed {
		t.ID = s.nextID
		s.nextID++
		s.tasks = append(s.tasks, t)
	}
}

// find must be called with at least the read lock held.
func (s *TaskStore) find(id int) *model.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
