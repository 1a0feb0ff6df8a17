package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/todo-task-api/internal/store"
	"go.uber.org/zap"
)

// fakeUploader records stored and deleted refs without touching the disk.
type fakeUploader struct {
	stored   []string
	deleted  []string
	storeErr error
	n        int
}

var _ Uploader = (*fakeUploader)(nil)

func (f *fakeUploader) Store(_ io.Reader, originalName string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	f.n++
	ref := fmt.Sprintf("/uploads/fake-%d%s", f.n, filepath.Ext(originalName))
	f.stored = append(f.stored, ref)
	return ref, nil
}

func (f *fakeUploader) Delete(ref string) error {
	f.deleted = append(f.deleted, ref)
	return nil
}

func newTaskService(files *fakeUploader) *TaskService {
	return NewTaskService(store.NewTaskStore(), files, zap.NewNop())
}

func TestCreateRequiresTitle(t *testing.T) {
	svc := newTaskService(&fakeUploader{})
	ctx := context.Background()

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.Create(ctx, title, "whatever", nil)
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr, "title %q must be rejected", title)
	}

	task, err := svc.Create(ctx, "  Buy milk  ", "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "", task.Description)
	assert.False(t, task.IsCompleted)
	assert.Nil(t, task.ImageURL)
}

func TestCreateStoresAttachment(t *testing.T) {
	files := &fakeUploader{}
	svc := newTaskService(files)

	task, err := svc.Create(context.Background(), "With image", "", &Attachment{
		FileName: "photo.png",
		Content:  strings.NewReader("png-bytes"),
	})
	require.NoError(t, err)
	require.NotNil(t, task.ImageURL)
	assert.Equal(t, files.stored[0], *task.ImageURL)
}

func TestCreateSurvivesUploadFailure(t *testing.T) {
	files := &fakeUploader{storeErr: errors.New("disk full")}
	svc := newTaskService(files)

	task, err := svc.Create(context.Background(), "No image after all", "", &Attachment{
		FileName: "photo.png",
		Content:  strings.NewReader("png-bytes"),
	})
	require.NoError(t, err, "upload failure must not fail the create")
	assert.Nil(t, task.ImageURL)
}

func TestToggleTwiceRestoresOriginal(t *testing.T) {
	svc := newTaskService(&fakeUploader{})
	ctx := context.Background()

	task, err := svc.Create(ctx, "Toggle me", "", nil)
	require.NoError(t, err)
	require.False(t, task.IsCompleted)

	task, err = svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, task.IsCompleted)

	task, err = svc.Toggle(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, task.IsCompleted)

	_, err = svc.Toggle(ctx, 42)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestUpdatePatchSemantics(t *testing.T) {
	files := &fakeUploader{}
	svc := newTaskService(files)
	ctx := context.Background()

	task, err := svc.Create(ctx, "Original", "desc", &Attachment{
		FileName: "a.png", Content: strings.NewReader("x"),
	})
	require.NoError(t, err)
	require.NotNil(t, task.ImageURL)

	newTitle := "Renamed"
	emptyDesc := ""
	done := true
	updated, err := svc.Update(ctx, task.ID, TaskPatch{Title: &newTitle, Description: &emptyDesc, IsCompleted: &done})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, "", updated.Description, "an explicit empty description overwrites")
	assert.True(t, updated.IsCompleted)
	require.NotNil(t, updated.ImageURL, "attachment ref survives updates")
	assert.Equal(t, *task.ImageURL, *updated.ImageURL)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)

	// Absent fields keep their values.
	updated, err = svc.Update(ctx, task.ID, TaskPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.True(t, updated.IsCompleted)

	blank := "   "
	_, err = svc.Update(ctx, task.ID, TaskPatch{Title: &blank})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Update(ctx, 42, TaskPatch{Title: &newTitle})
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

func TestDeleteReleasesAttachment(t *testing.T) {
	files := &fakeUploader{}
	svc := newTaskService(files)
	ctx := context.Background()

	withImage, err := svc.Create(ctx, "With image", "", &Attachment{
		FileName: "a.png", Content: strings.NewReader("x"),
	})
	require.NoError(t, err)
	plain, err := svc.Create(ctx, "Plain", "", nil)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, withImage.ID))
	require.Equal(t, []string{*withImage.ImageURL}, files.deleted)

	require.NoError(t, svc.Delete(ctx, plain.ID))
	assert.Len(t, files.deleted, 1, "no file delete for a task without attachment")

	assert.ErrorIs(t, svc.Delete(ctx, withImage.ID), store.ErrTaskNotFound)
}
