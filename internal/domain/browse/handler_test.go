package browse

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
)

type mockBrowser struct {
	tables map[string]*Table
}

func (m *mockBrowser) Browse(_ context.Context, entity string) (*Table, error) {
	t, ok := m.tables[entity]
	if !ok {
		return nil, fmt.Errorf("unknown entity: %s", entity)
	}
	return t, nil
}

func newBrowseContext(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return c, rec
}

func studiesTable() *Table {
	return &Table{
		Entity:  "studies",
		Columns: []string{"study_id", "study_name"},
		Rows: [][]string{
			{"STD_20260831100000", "Cardio Outcomes"},
		},
	}
}

func TestBrowseJSON(t *testing.T) {
	h := NewHandler(&mockBrowser{tables: map[string]*Table{"studies": studiesTable()}})

	c, rec := newBrowseContext("/api/v1/browse/studies")
	c.SetParamNames("entity")
	c.SetParamValues("studies")

	if err := h.Browse(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var table Table
	if err := json.Unmarshal(rec.Body.Bytes(), &table); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if table.Entity != "studies" || len(table.Rows) != 1 {
		t.Errorf("unexpected table %+v", table)
	}
}

func TestBrowseCSVDownload(t *testing.T) {
	h := NewHandler(&mockBrowser{tables: map[string]*Table{"studies": studiesTable()}})

	c, rec := newBrowseContext("/api/v1/browse/studies?format=csv")
	c.SetParamNames("entity")
	c.SetParamValues("studies")

	if err := h.Browse(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
		t.Errorf("unexpected content type %s", ct)
	}
	disposition := rec.Header().Get(echo.HeaderContentDisposition)
	wantName := "studies_" + time.Now().Format("20060102") + ".csv"
	if !strings.Contains(disposition, wantName) {
		t.Errorf("expected filename %s in %q", wantName, disposition)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, "study_id,study_name\n") {
		t.Errorf("expected header row, got %q", body)
	}
	if !strings.Contains(body, "STD_20260831100000,Cardio Outcomes") {
		t.Errorf("expected data row in %q", body)
	}
}

func TestBrowseCSVViaAcceptHeader(t *testing.T) {
	h := NewHandler(&mockBrowser{tables: map[string]*Table{"studies": studiesTable()}})

	c, rec := newBrowseContext("/api/v1/browse/studies")
	c.Request().Header.Set(echo.HeaderAccept, "text/csv")
	c.SetParamNames("entity")
	c.SetParamValues("studies")

	if err := h.Browse(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "text/csv" {
		t.Errorf("expected CSV via accept header, got %s", ct)
	}
}

func TestBrowseUnknownEntity(t *testing.T) {
	h := NewHandler(&mockBrowser{tables: map[string]*Table{}})

	c, _ := newBrowseContext("/api/v1/browse/widgets")
	c.SetParamNames("entity")
	c.SetParamValues("widgets")

	err := h.Browse(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
