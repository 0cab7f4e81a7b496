package note

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/domain/session"
	"github.com/crdc/crdc/internal/platform/auth"
)

type Handler struct {
	service  *Service
	sessions *session.Store
}

func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/notes", h.Create)
	g.GET("/notes/search", h.Search)
}

type createRequest struct {
	NoteType     string `json:"note_type"`
	NoteTitle    string `json:"note_title"`
	NoteText     string `json:"note_text"`
	NotePriority string `json:"note_priority"`
}

func (h *Handler) Create(c echo.Context) error {
	studyID, err := session.RequireStudy(c, h.sessions)
	if err != nil {
		return err
	}

	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	createdBy := auth.UserNameFromContext(c.Request().Context())
	n, err := h.service.Create(c.Request().Context(), studyID, CreateInput{
		NoteType:     req.NoteType,
		NoteTitle:    req.NoteTitle,
		NoteText:     req.NoteText,
		NotePriority: req.NotePriority,
	}, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, n)
}

// Search handles GET /notes/search?q=...&date_from=YYYY-MM-DD. Search is
// global across studies and needs no study selection.
func (h *Handler) Search(c echo.Context) error {
	var dateFrom time.Time
	if raw := c.QueryParam("date_from"); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "date_from must be YYYY-MM-DD")
		}
		dateFrom = d
	}

	results, err := h.service.Search(c.Request().Context(), c.QueryParam("q"), dateFrom)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to search notes")
	}
	if results == nil {
		results = []*SearchResult{}
	}
	return c.JSON(http.StatusOK, results)
}
