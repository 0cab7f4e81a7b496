package admin

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/platform/audit"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/admin/status", h.Status)
	g.GET("/admin/audit/changes", h.RecentChanges)
	g.GET("/admin/audit/activity", h.RecentActivity)
}

func (h *Handler) Status(c echo.Context) error {
	st, err := h.service.Status(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load system status")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) RecentChanges(c echo.Context) error {
	entries, err := h.service.RecentChanges(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load change log")
	}
	if entries == nil {
		entries = []audit.ChangeEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *Handler) RecentActivity(c echo.Context) error {
	entries, err := h.service.RecentActivity(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load activity log")
	}
	if entries == nil {
		entries = []audit.ActivityEntry{}
	}
	return c.JSON(http.StatusOK, entries)
}
