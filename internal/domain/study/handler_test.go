package study

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/platform/auth"
	"github.com/crdc/crdc/internal/platform/cache"
)

func newHandlerContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	ctx := context.WithValue(req.Context(), auth.UserNameKey, "jsmith")
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestHandlerCreate(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, cache.New(), time.Minute, &nopRecorder{})
	h := NewHandler(svc)

	body := `{"study_name":"Cardio Outcomes","study_number":"CO-01","principal_investigator":"Dr. Chen","study_type":"Clinical Trial","target_enrollment":120,"study_start_date":"2026-09-01"}`
	c, rec := newHandlerContext(http.MethodPost, "/api/v1/studies", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var st Study
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(st.StudyID, "STD_") {
		t.Errorf("unexpected study id %s", st.StudyID)
	}
	if st.TargetEnrollment != 120 {
		t.Errorf("expected target 120, got %d", st.TargetEnrollment)
	}
	if st.StudyStartDate == nil || st.StudyStartDate.Format("2006-01-02") != "2026-09-01" {
		t.Errorf("unexpected start date %v", st.StudyStartDate)
	}
}

func TestHandlerCreateBadDate(t *testing.T) {
	h := NewHandler(NewService(newMockRepo(), cache.New(), time.Minute, &nopRecorder{}))

	body := `{"study_name":"S","study_number":"N","principal_investigator":"P","study_type":"Clinical Trial","study_start_date":"09/01/2026"}`
	c, _ := newHandlerContext(http.MethodPost, "/api/v1/studies", body)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerCreateMissingFields(t *testing.T) {
	h := NewHandler(NewService(newMockRepo(), cache.New(), time.Minute, &nopRecorder{}))

	c, _ := newHandlerContext(http.MethodPost, "/api/v1/studies", `{"study_name":"Only Name"}`)
	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandlerGetNotFound(t *testing.T) {
	h := NewHandler(NewService(newMockRepo(), cache.New(), time.Minute, &nopRecorder{}))

	c, _ := newHandlerContext(http.MethodGet, "/api/v1/studies/STD_MISSING", "")
	c.SetParamNames("id")
	c.SetParamValues("STD_MISSING")

	err := h.Get(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
