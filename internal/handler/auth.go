package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-task-api/internal/config"
	"github.com/iliyamo/todo-task-api/internal/model"
	"github.com/iliyamo/todo-task-api/internal/service"
	"github.com/iliyamo/todo-task-api/internal/store"
	"github.com/iliyamo/todo-task-api/internal/utils"
)

// AuthHandler bundles dependencies for the auth and user endpoints.
type AuthHandler struct {
	Cfg  config.Config
	Auth *service.AuthService
}

func NewAuthHandler(cfg config.Config, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Auth: auth}
}

// ----- DTOs -----

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the public view of a user; the password hash never
// appears on the wire.
type userResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// authResponse is a userResponse with an access token alongside. The user
// fields stay at the top level so older clients that expect a bare user
// object keep working.
type authResponse struct {
	userResponse
	Token        string    `json:"token"`
	TokenExpires time.Time `json:"tokenExpires"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}
}

// Register handles POST /api/auth/register. The body is multipart form
// data: email, password, name and an optional avatar file.
func (h *AuthHandler) Register(c echo.Context) error {
	email := c.FormValue("email")
	password := c.FormValue("password")
	name := c.FormValue("name")

	var avatar *service.Attachment
	if fh, err := c.FormFile("avatar"); err == nil && fh.Size > 0 {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid avatar"})
		}
		defer src.Close()
		avatar = &service.Attachment{FileName: fh.Filename, Content: src}
	}

	u, err := h.Auth.Register(c.Request().Context(), email, password, name, avatar)
	if err != nil {
		var verr *service.ValidationError
		switch {
		case errors.As(err, &verr):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Error()})
		case errors.Is(err, store.ErrEmailExists):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "email already exists"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
		}
	}
	return h.respondWithToken(c, http.StatusCreated, u)
}

// Login handles POST /api/auth/login with a JSON body. Any credential
// mismatch yields the same generic 401.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	u, err := h.Auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return h.respondWithToken(c, http.StatusOK, u)
}

// GetUser handles GET /api/users/:id.
func (h *AuthHandler) GetUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	u, err := h.Auth.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get user failed"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// UpdateUser handles PUT /api/users/:id. The body is multipart form data:
// name and an optional replacement avatar file.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	name := c.FormValue("name")

	var avatar *service.Attachment
	if fh, err := c.FormFile("avatar"); err == nil && fh.Size > 0 {
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid avatar"})
		}
		defer src.Close()
		avatar = &service.Attachment{FileName: fh.Filename, Content: src}
	}

	u, err := h.Auth.UpdateProfile(c.Request().Context(), id, name, avatar)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update user failed"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// Me handles GET /api/users/me for a bearer-authenticated caller.
func (h *AuthHandler) Me(c echo.Context) error {
	id, ok := c.Get("user_id").(int)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	u, err := h.Auth.GetUser(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get user failed"})
	}
	return c.JSON(http.StatusOK, toUserResponse(u))
}

// respondWithToken issues an access token for u and writes the combined
// auth response.
func (h *AuthHandler) respondWithToken(c echo.Context, status int, u *model.User) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.ID, u.Email, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}
	return c.JSON(status, authResponse{
		userResponse: toUserResponse(u),
		Token:        access.Token,
		TokenExpires: access.Exp,
	})
}
