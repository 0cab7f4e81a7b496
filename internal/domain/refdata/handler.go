package refdata

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/reference/study-types", h.StudyTypes)
	g.GET("/reference/note-types", h.NoteTypes)
}

func (h *Handler) StudyTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"study_types": h.service.StudyTypes(c.Request().Context()),
	})
}

func (h *Handler) NoteTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		"note_types": h.service.NoteTypes(c.Request().Context()),
	})
}
