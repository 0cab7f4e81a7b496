package browse

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/pkg/csvexport"
)

// Browser reads one entity's newest rows.
type Browser interface {
	Browse(ctx context.Context, entity string) (*Table, error)
}

type Handler struct {
	service Browser
}

func NewHandler(service Browser) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/browse", h.ListEntities)
	g.GET("/browse/:entity", h.Browse)
}

func (h *Handler) ListEntities(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"entities": Entities()})
}

// Browse serves the newest rows of an entity. ?format=csv downloads the same
// rows as a dated CSV attachment.
func (h *Handler) Browse(c echo.Context) error {
	entity := c.Param("entity")
	table, err := h.service.Browse(c.Request().Context(), entity)
	if err != nil {
		if _, known := entities[entity]; !known {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to browse records")
	}

	wantsCSV := c.QueryParam("format") == "csv" ||
		strings.Contains(c.Request().Header.Get(echo.HeaderAccept), "text/csv")
	if wantsCSV {
		data, err := csvexport.Render(table.Columns, table.Rows)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to render export")
		}
		filename := csvexport.Filename(entity, time.Now())
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename=%q`, filename))
		return c.Blob(http.StatusOK, "text/csv", data)
	}

	return c.JSON(http.StatusOK, table)
}
