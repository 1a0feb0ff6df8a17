package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-task-api/internal/service"
	"github.com/iliyamo/todo-task-api/internal/store"
)

// TaskHandler bundles dependencies for the task endpoints.
type TaskHandler struct {
	Tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{Tasks: tasks}
}

// ----- DTOs -----

type createTaskReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type updateTaskReq struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	IsCompleted *bool   `json:"isCompleted"`
}

// List handles GET /api/tasks and returns all tasks, newest first.
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.Tasks.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list tasks failed"})
	}
	return c.JSON(http.StatusOK, tasks)
}

// Get handles GET /api/tasks/:id.
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Tasks.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get task failed"})
	}
	return c.JSON(http.StatusOK, t)
}

// Create handles POST /api/tasks. The Android client sends multipart form
// data (title, description, optional image file); a plain JSON body with
// title and description is accepted as well.
func (h *TaskHandler) Create(c echo.Context) error {
	var title, description string
	var attachment *service.Attachment

	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		title = c.FormValue("title")
		description = c.FormValue("description")
		if fh, err := c.FormFile("image"); err == nil && fh.Size > 0 {
			src, err := fh.Open()
			if err != nil {
				return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image"})
			}
			defer src.Close()
			attachment = &service.Attachment{FileName: fh.Filename, Content: src}
		}
	} else {
		var req createTaskReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		title, description = req.Title, req.Description
	}

	t, err := h.Tasks.Create(c.Request().Context(), title, description, attachment)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create task failed"})
	}
	c.Response().Header().Set(echo.HeaderLocation, fmt.Sprintf("/api/tasks/%d", t.ID))
	return c.JSON(http.StatusCreated, t)
}

// Update handles PUT /api/tasks/:id with a partial JSON patch. Fields left
// out of the body keep their value; the attachment reference always does.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req updateTaskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	t, err := h.Tasks.Update(c.Request().Context(), id, service.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Toggle handles PATCH /api/tasks/:id/toggle and flips the completion flag.
func (h *TaskHandler) Toggle(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	t, err := h.Tasks.Toggle(c.Request().Context(), id)
	if err != nil {
		return taskError(c, err)
	}
	return c.JSON(http.StatusOK, t)
}

// Delete handles DELETE /api/tasks/:id. The attachment file, if any, is
// removed along with the task.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Tasks.Delete(c.Request().Context(), id); err != nil {
		return taskError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// taskError maps service errors to responses shared by the mutating handlers.
func taskError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "task not found"})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "task operation failed"})
	}
}
