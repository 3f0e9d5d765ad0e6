package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, register func(e *echo.Echo)) *httptest.Server {
	t.Helper()
	e := echo.New()
	register(e)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return srv
}

func TestDoJSONSendsBodyAndHeaders(t *testing.T) {
	srv := newBackend(t, func(e *echo.Echo) {
		e.POST("/api/things", func(c echo.Context) error {
			var body map[string]any
			if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
				return err
			}
			return c.JSON(http.StatusCreated, map[string]any{
				"name":      body["Name"],
				"auth":      c.Request().Header.Get("Authorization"),
				"requestId": c.Request().Header.Get(RequestIDHeader),
				"ctype":     c.Request().Header.Get("Content-Type"),
				"q":         c.QueryParam("q"),
			})
		})
	})

	client := NewRESTClient(srv.URL+"/api/", time.Second, srv.Client(), nil)
	header := http.Header{}
	header.Set("Authorization", "Bearer abc")

	payload, err := client.DoJSON(context.Background(), Call{
		Op:     "create thing",
		Method: http.MethodPost,
		Path:   "/things",
		Query:  map[string][]string{"q": {"x"}},
		Header: header,
		Body:   map[string]string{"Name": "lamp"},
	})
	require.NoError(t, err)

	result, ok := payload.(map[string]any)
	require.True(t, ok)
	require.Equal(t, "lamp", result["name"])
	require.Equal(t, "Bearer abc", result["auth"])
	require.NotEmpty(t, result["requestId"])
	require.Equal(t, "application/json", result["ctype"])
	require.Equal(t, "x", result["q"])
}

func TestDoJSONMapsErrorResponses(t *testing.T) {
	srv := newBackend(t, func(e *echo.Echo) {
		e.GET("/titled", func(c echo.Context) error {
			return c.JSON(http.StatusBadRequest, map[string]any{"title": "One or more validation errors occurred."})
		})
		e.GET("/bare", func(c echo.Context) error {
			return c.NoContent(http.StatusNotFound)
		})
		e.GET("/denied", func(c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, map[string]any{"message": "Token expired"})
		})
	})
	client := NewRESTClient(srv.URL, time.Second, srv.Client(), nil)

	_, err := client.DoJSON(context.Background(), Call{Op: "titled", Method: http.MethodGet, Path: "/titled", Fallback: "Failed"})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, "One or more validation errors occurred.", apiErr.Message)
	require.Equal(t, http.StatusBadRequest, apiErr.Status)

	_, err = client.DoJSON(context.Background(), Call{Op: "bare", Method: http.MethodGet, Path: "/bare", Fallback: "Failed"})
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, "Not Found", err.Error())

	_, err = client.DoJSON(context.Background(), Call{Op: "denied", Method: http.MethodGet, Path: "/denied", Fallback: "Failed"})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, "Token expired", err.Error())
}

func TestDoJSONEmptyBodyYieldsNil(t *testing.T) {
	srv := newBackend(t, func(e *echo.Echo) {
		e.DELETE("/things/1", func(c echo.Context) error {
			return c.NoContent(http.StatusNoContent)
		})
	})
	client := NewRESTClient(srv.URL, time.Second, srv.Client(), nil)

	payload, err := client.DoJSON(context.Background(), Call{Op: "delete", Method: http.MethodDelete, Path: "/things/1"})
	require.NoError(t, err)
	require.Nil(t, payload)
}

func TestDoJSONTransportFailureUsesFallback(t *testing.T) {
	srv := newBackend(t, func(e *echo.Echo) {
		e.GET("/slow", func(c echo.Context) error {
			select {
			case <-time.After(time.Second):
			case <-c.Request().Context().Done():
			}
			return c.NoContent(http.StatusOK)
		})
	})
	client := NewRESTClient(srv.URL, 20*time.Millisecond, srv.Client(), nil)

	_, err := client.DoJSON(context.Background(), Call{Op: "slow", Method: http.MethodGet, Path: "/slow", Fallback: "Failed to fetch reservations"})
	require.Error(t, err)
	require.Equal(t, "Failed to fetch reservations", err.Error())
	require.True(t, errors.Is(err, context.DeadlineExceeded))
}
