package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/crdc/crdc/internal/platform/auth"
)

func TestRecovery_ConvertsPanicToError(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(zerolog.Nop())(func(c echo.Context) error {
		panic("boom")
	})

	err := handler(c)
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected HTTPError, got %T", err)
	}
	if he.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", he.Code)
	}
}

func TestRequestID_GeneratesWhenAbsent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rid, _ := c.Get("request_id").(string); rid == "" {
		t.Error("expected request_id to be set")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID response header")
	}
}

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rid, _ := c.Get("request_id").(string); rid != "abc-123" {
		t.Errorf("expected abc-123, got %q", rid)
	}
}

func TestActivity_RecordsAuthenticatedAPIRequest(t *testing.T) {
	var gotUser, gotType, gotDesc string
	recorder := ActivityRecorderFunc(func(_ context.Context, userName, activityType, description string) error {
		gotUser = userName
		gotType = activityType
		gotDesc = description
		return nil
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notes", nil)
	ctx := context.WithValue(req.Context(), auth.UserNameKey, "jsmith")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Activity(zerolog.Nop(), recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusCreated)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotUser != "jsmith" {
		t.Errorf("expected user jsmith, got %q", gotUser)
	}
	if gotType != "CREATE" {
		t.Errorf("expected CREATE, got %q", gotType)
	}
	if gotDesc != "POST /api/v1/notes (201)" {
		t.Errorf("unexpected description: %q", gotDesc)
	}
}

func TestActivity_SkipsNonAPIPaths(t *testing.T) {
	called := false
	recorder := ActivityRecorderFunc(func(context.Context, string, string, string) error {
		called = true
		return nil
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Activity(zerolog.Nop(), recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("expected recorder not to be called for /health")
	}
}

func TestActivity_RecorderFailureDoesNotFailRequest(t *testing.T) {
	recorder := ActivityRecorderFunc(func(context.Context, string, string, string) error {
		return fmt.Errorf("audit store down")
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/studies/active", nil)
	ctx := context.WithValue(req.Context(), auth.UserNameKey, "jsmith")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Activity(zerolog.Nop(), recorder)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Errorf("recorder failure should not surface: %v", err)
	}
}
