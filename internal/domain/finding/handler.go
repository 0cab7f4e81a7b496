package finding

import (
	"net/http"

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
	g.POST("/findings", h.Record)
}

type recordRequest struct {
	FindingType                string `json:"finding_type"`
	FindingDescription         string `json:"finding_description"`
	Severity                   string `json:"severity"`
	RelationshipToIntervention string `json:"relationship_to_intervention"`
	ActionTaken                string `json:"action_taken"`
	Outcome                    string `json:"outcome"`
	SAEReported                bool   `json:"sae_reported"`
}

func (h *Handler) Record(c echo.Context) error {
	studyID, err := session.RequireStudy(c, h.sessions)
	if err != nil {
		return err
	}

	var req recordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	recordedBy := auth.UserNameFromContext(c.Request().Context())
	res, err := h.service.Record(c.Request().Context(), studyID, RecordInput{
		FindingType:                req.FindingType,
		FindingDescription:         req.FindingDescription,
		Severity:                   req.Severity,
		RelationshipToIntervention: req.RelationshipToIntervention,
		ActionTaken:                req.ActionTaken,
		Outcome:                    req.Outcome,
		SAEReported:                req.SAEReported,
	}, recordedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, res)
}
