package session

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StudyLookup verifies a study exists and returns its display name.
type StudyLookup interface {
	StudyName(ctx context.Context, studyID string) (string, error)
}

type Handler struct {
	store   *Store
	studies StudyLookup
}

func NewHandler(store *Store, studies StudyLookup) *Handler {
	return &Handler{store: store, studies: studies}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.GET("/session", h.Current)
	g.PUT("/session/study", h.SelectStudy)
	g.DELETE("/session/study", h.ClearStudy)
}

type selectRequest struct {
	StudyID string `json:"study_id"`
}

type sessionResponse struct {
	StudyID   string `json:"study_id,omitempty"`
	StudyName string `json:"study_name,omitempty"`
	Selected  bool   `json:"selected"`
}

// Current reports the caller's selected study, if any.
func (h *Handler) Current(c echo.Context) error {
	studyID, ok := h.store.Current(SessionID(c))
	if !ok {
		return c.JSON(http.StatusOK, sessionResponse{Selected: false})
	}

	name, err := h.studies.StudyName(c.Request().Context(), studyID)
	if err != nil {
		// The selected study was removed underneath the session.
		h.store.Clear(SessionID(c))
		return c.JSON(http.StatusOK, sessionResponse{Selected: false})
	}

	return c.JSON(http.StatusOK, sessionResponse{
		StudyID:   studyID,
		StudyName: name,
		Selected:  true,
	})
}

// SelectStudy sets the caller's current study.
func (h *Handler) SelectStudy(c echo.Context) error {
	var req selectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.StudyID == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "study_id is required")
	}

	name, err := h.studies.StudyName(c.Request().Context(), req.StudyID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "study not found")
	}

	h.store.Select(SessionID(c), req.StudyID)
	return c.JSON(http.StatusOK, sessionResponse{
		StudyID:   req.StudyID,
		StudyName: name,
		Selected:  true,
	})
}

// ClearStudy drops the caller's current study.
func (h *Handler) ClearStudy(c echo.Context) error {
	h.store.Clear(SessionID(c))
	return c.NoContent(http.StatusNoContent)
}

// RequireStudy resolves the caller's selected study or fails with a 409
// telling the caller to select one.
func RequireStudy(c echo.Context, store *Store) (string, error) {
	studyID, ok := store.Current(SessionID(c))
	if !ok {
		return "", echo.NewHTTPError(http.StatusConflict, "select a study first")
	}
	return studyID, nil
}
