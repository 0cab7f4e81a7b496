package reports

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
	g.GET("/reports/study-summary", h.StudySummary)
	g.GET("/reports/enrollment", h.Enrollment)
	g.GET("/reports/safety", h.Safety)
}

func (h *Handler) StudySummary(c echo.Context) error {
	rows, err := h.service.StudySummary(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build study summary")
	}
	if rows == nil {
		rows = []*StudySummaryRow{}
	}
	return c.JSON(http.StatusOK, rows)
}

func (h *Handler) Enrollment(c echo.Context) error {
	report, err := h.service.Enrollment(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build enrollment report")
	}
	return c.JSON(http.StatusOK, report)
}

func (h *Handler) Safety(c echo.Context) error {
	report, err := h.service.Safety(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build safety report")
	}
	return c.JSON(http.StatusOK, report)
}
