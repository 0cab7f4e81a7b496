package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/platform/auth"
)

type mockStudies struct {
	names map[string]string
}

func (m *mockStudies) StudyName(_ context.Context, studyID string) (string, error) {
	name, ok := m.names[studyID]
	if !ok {
		return "", fmt.Errorf("study not found: %s", studyID)
	}
	return name, nil
}

func TestStoreIsolatesSessions(t *testing.T) {
	store := NewStore(time.Hour)

	store.Select("alice", "STD_A")
	store.Select("bob", "STD_B")

	if got, _ := store.Current("alice"); got != "STD_A" {
		t.Errorf("expected STD_A for alice, got %s", got)
	}
	if got, _ := store.Current("bob"); got != "STD_B" {
		t.Errorf("expected STD_B for bob, got %s", got)
	}

	store.Clear("alice")
	if _, ok := store.Current("alice"); ok {
		t.Error("expected alice selection cleared")
	}
	if _, ok := store.Current("bob"); !ok {
		t.Error("bob selection should survive alice clear")
	}
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(10 * time.Millisecond)
	store.Select("s1", "STD_A")

	time.Sleep(20 * time.Millisecond)
	if _, ok := store.Current("s1"); ok {
		t.Error("expected expired entry to be gone")
	}
}

func newTestContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(req.Context(), auth.UserNameKey, "jsmith")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func TestSelectStudy(t *testing.T) {
	store := NewStore(time.Hour)
	h := NewHandler(store, &mockStudies{names: map[string]string{"STD_1": "Cardio Trial"}})

	c, rec := newTestContext(http.MethodPut, "/api/v1/session/study", `{"study_id":"STD_1"}`)
	if err := h.SelectStudy(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Selected || resp.StudyName != "Cardio Trial" {
		t.Errorf("unexpected response: %+v", resp)
	}

	if got, _ := store.Current("jsmith"); got != "STD_1" {
		t.Errorf("expected selection persisted for principal, got %s", got)
	}
}

func TestSelectStudyUnknown(t *testing.T) {
	h := NewHandler(NewStore(time.Hour), &mockStudies{names: map[string]string{}})

	c, _ := newTestContext(http.MethodPut, "/api/v1/session/study", `{"study_id":"STD_MISSING"}`)
	err := h.SelectStudy(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestSessionIDHeaderOverridesPrincipal(t *testing.T) {
	c, _ := newTestContext(http.MethodGet, "/api/v1/session", "")
	c.Request().Header.Set(HeaderSessionID, "tab-2")
	if got := SessionID(c); got != "tab-2" {
		t.Errorf("expected tab-2, got %s", got)
	}

	c2, _ := newTestContext(http.MethodGet, "/api/v1/session", "")
	if got := SessionID(c2); got != "jsmith" {
		t.Errorf("expected principal fallback, got %s", got)
	}
}

func TestRequireStudyWithoutSelection(t *testing.T) {
	store := NewStore(time.Hour)
	c, _ := newTestContext(http.MethodPost, "/api/v1/notes", "")

	_, err := RequireStudy(c, store)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}
