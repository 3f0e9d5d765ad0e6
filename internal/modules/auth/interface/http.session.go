package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"reservationsClient/internal/modules/auth/application/usecase"
	"reservationsClient/internal/modules/auth/domain"
	"reservationsClient/internal/shared/httputil"
)

// SessionHandler exposes the gateway's single login session.
type SessionHandler struct {
	manager *usecase.SessionManager
	errors  *httputil.ErrorMapper
}

func NewSessionHandler(manager *usecase.SessionManager) *SessionHandler {
	return &SessionHandler{
		manager: manager,
		errors: httputil.NewErrorMapper().
			WithMapping(domain.ErrMissingToken, http.StatusBadGateway, "").
			WithDefault(http.StatusBadGateway, "Login failed"),
	}
}

type loginReq struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// RegisterLoginRules adds the login form messages to v.
func RegisterLoginRules(v *httputil.RequestValidator) {
	v.Message("email", "notblank", "Email is required").
		Message("password", "required", "Password is required")
}

type sessionResp struct {
	State       domain.SessionState `json:"state"`
	User        *domain.User        `json:"user,omitempty"`
	Permissions domain.Permissions  `json:"permissions"`
	Error       string              `json:"error,omitempty"`
}

// Register mounts the session routes under g.
func (h *SessionHandler) Register(g *echo.Group) {
	g.POST("/session/login", h.Login)
	g.POST("/session/logout", h.Logout)
	g.GET("/session", h.Get)
}

func (h *SessionHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return httputil.RespondInvalid(c, err)
	}

	ctx := c.Request().Context()
	session, err := h.manager.Login(ctx, domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		info := h.errors.Map(err)
		message := h.manager.LastError()
		if message == "" {
			message = info.Message
		}
		slog.Warn("gateway login failed", slog.Int("status", info.Status), slog.Any("error", err))
		return c.JSON(info.Status, echo.Map{"error": message})
	}

	user := session.User
	return c.JSON(http.StatusOK, sessionResp{
		State:       domain.SessionAuthenticated,
		User:        &user,
		Permissions: h.manager.Permissions(ctx),
	})
}

func (h *SessionHandler) Logout(c echo.Context) error {
	if err := h.manager.Logout(c.Request().Context()); err != nil {
		slog.Error("gateway logout failed", slog.Any("error", err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *SessionHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	state := h.manager.Check(ctx)
	resp := sessionResp{
		State:       state,
		Permissions: domain.PermissionsFor(state == domain.SessionAuthenticated),
		Error:       h.manager.LastError(),
	}
	if state == domain.SessionAuthenticated {
		if user, ok := h.manager.CurrentUser(ctx); ok {
			resp.User = user
		}
	}
	return c.JSON(http.StatusOK, resp)
}

// RequireAuth rejects requests when the gateway session is not authenticated.
func (h *SessionHandler) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !h.manager.IsAuthenticated(c.Request().Context()) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
		}
		return next(c)
	}
}
