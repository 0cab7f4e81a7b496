package dashboard

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
	g.GET("/dashboard/metrics", h.Metrics)
	g.GET("/dashboard/recent-notes", h.RecentNotes)
	g.GET("/dashboard/recent-findings", h.RecentFindings)
}

func (h *Handler) Metrics(c echo.Context) error {
	m, err := h.service.GetMetrics(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load metrics")
	}
	return c.JSON(http.StatusOK, m)
}

func (h *Handler) RecentNotes(c echo.Context) error {
	notes, err := h.service.RecentNotes(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load recent notes")
	}
	if notes == nil {
		notes = []*RecentNote{}
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *Handler) RecentFindings(c echo.Context) error {
	findings, err := h.service.RecentFindings(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load recent findings")
	}
	if findings == nil {
		findings = []*RecentFinding{}
	}
	return c.JSON(http.StatusOK, findings)
}
