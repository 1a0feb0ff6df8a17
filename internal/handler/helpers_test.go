package handler_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/todo-task-api/internal/config"
	"github.com/iliyamo/todo-task-api/internal/handler"
	"github.com/iliyamo/todo-task-api/internal/router"
	"github.com/iliyamo/todo-task-api/internal/service"
	"github.com/iliyamo/todo-task-api/internal/store"
	"github.com/iliyamo/todo-task-api/internal/upload"
)

// newTestServer wires the full stack (router, handlers, services, in-memory
// stores, a temp-dir file store) the same way main does.
func newTestServer(t *testing.T) (*echo.Echo, *upload.FileStore) {
	t.Helper()
	files, err := upload.New(t.TempDir())
	require.NoError(t, err)

	cfg := config.Config{
		Env:          "test",
		JWTSecret:    "test-secret",
		AccessTTLMin: 5,
		BcryptCost:   bcrypt.MinCost,
	}
	logger := zap.NewNop()
	tasks := service.NewTaskService(store.NewTaskStore(), files, logger)
	auth := service.NewAuthService(store.NewUserStore(), files, cfg.BcryptCost, logger)

	e := echo.New()
	router.Register(e, handler.NewTaskHandler(tasks), handler.NewAuthHandler(cfg, auth), files.Dir(), cfg.JWTSecret)
	return e, files
}

// doJSON performs a request with an optional JSON body and returns the
// recorded response.
func doJSON(e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// doMultipart performs a request with multipart form fields and an optional
// file part named fileField.
func doMultipart(t *testing.T, e *echo.Echo, method, target string, fields map[string]string, fileField, fileName string, fileContent []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a recorded JSON body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
