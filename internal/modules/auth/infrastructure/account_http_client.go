package infrastructure

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"reservationsClient/internal/modules/auth/application/port"
	"reservationsClient/internal/modules/auth/domain"
	"reservationsClient/internal/shared/httputil"
)

const (
	authenticatePath = "/Account/authenticate"
	fallbackLogin    = "Login failed"
)

// AccountHTTPClient implements Authenticator against the backend account endpoint.
type AccountHTTPClient struct {
	rest *httputil.RESTClient
}

func NewAccountHTTPClient(rest *httputil.RESTClient) *AccountHTTPClient {
	return &AccountHTTPClient{rest: rest}
}

func (c *AccountHTTPClient) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	payload, err := c.rest.DoJSON(ctx, httputil.Call{
		Op:             "authenticate",
		Method:         http.MethodPost,
		Path:           authenticatePath,
		Body:           domain.Credentials{Email: strings.TrimSpace(creds.Email), Password: creds.Password},
		Fallback:       fallbackLogin,
		PreferFallback: true,
	})
	if err != nil {
		return domain.Session{}, err
	}

	session, err := domain.NormalizeLoginResponse(payload)
	if err != nil {
		slog.Warn("login response rejected", slog.Any("error", err))
		return domain.Session{}, &httputil.APIError{Op: "authenticate", Message: fallbackLogin, Err: err}
	}
	return session, nil
}

var _ port.Authenticator = (*AccountHTTPClient)(nil)
