package service

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/iliyamo/todo-task-api/internal/model"
	"github.com/iliyamo/todo-task-api/internal/store"
)

// Uploader is the slice of the file store the services need: persist an
// attachment and release it again when its owning entity goes away.
type Uploader interface {
	Store(src io.Reader, originalName string) (string, error)
	Delete(ref string) error
}

// Attachment is an uploaded file as parsed from a multipart request,
// decoupled from any specific HTTP framework type.
type Attachment struct {
	FileName string
	Content  io.Reader
}

// TaskPatch is a partial update: only non-nil fields are applied. The
// attachment reference is never part of a patch and survives updates.
type TaskPatch struct {
	Title       *string
	Description *string
	IsCompleted *bool
}

// TaskService enforces task field rules and drives the attachment
// lifecycle against the upload store.
type TaskService struct {
	tasks  store.TaskRepository
	files  Uploader
	logger *zap.Logger
}

func NewTaskService(tasks store.TaskRepository, files Uploader, logger *zap.Logger) *TaskService {
	return &TaskService{tasks: tasks, files: files, logger: logger}
}

// Create validates the title, stores an optional attachment and inserts the
// task. An attachment that fails to upload is logged and dropped; the task
// is still created without it. There is no rollback.
func (s *TaskService) Create(ctx context.Context, title, description string, attachment *Attachment) (*model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, NewValidationError("title is required")
	}
	var imageURL *string
	if attachment != nil {
		ref, err := s.files.Store(attachment.Content, attachment.FileName)
		if err != nil {
			s.logger.Warn("storing task attachment failed, creating task without it",
				zap.String("file", attachment.FileName), zap.Error(err))
		} else {
			imageURL = &ref
		}
	}
	return s.tasks.Insert(ctx, title, description, imageURL)
}

// Get returns the task with the given id.
func (s *TaskService) Get(ctx context.Context, id int) (*model.Task, error) {
	return s.tasks.Get(ctx, id)
}

// List returns all tasks, newest first.
func (s *TaskService) List(ctx context.Context) ([]*model.Task, error) {
	return s.tasks.List(ctx)
}

// Update applies a partial patch. A present but blank title is rejected so
// the non-empty-title invariant holds for the whole task lifetime.
func (s *TaskService) Update(ctx context.Context, id int, patch TaskPatch) (*model.Task, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, NewValidationError("title is required")
	}
	return s.tasks.Update(ctx, id, func(t *model.Task) {
		if patch.Title != nil {
			t.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			t.Description = *patch.Description
		}
		if patch.IsCompleted != nil {
			t.IsCompleted = *patch.IsCompleted
		}
	})
}

// Toggle flips the completion flag.
func (s *TaskService) Toggle(ctx context.Context, id int) (*model.Task, error) {
	return s.tasks.Update(ctx, id, func(t *model.Task) {
		t.IsCompleted = !t.IsCompleted
	})
}

// Delete removes the task and, best-effort, the attachment file it
// referenced. A failed file delete is logged, not returned: the task is
// already gone.
func (s *TaskService) Delete(ctx context.Context, id int) error {
	t, err := s.tasks.Delete(ctx, id)
	if err != nil {
		return err
	}
	if t.ImageURL != nil {
		if err := s.files.Delete(*t.ImageURL); err != nil {
			s.logger.Warn("deleting task attachment failed",
				zap.Int("task_id", t.ID), zap.String("ref", *t.ImageURL), zap.Error(err))
		}
	}
	return nil
}
