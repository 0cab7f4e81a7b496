package participant

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/domain/session"
	"github.com/crdc/crdc/internal/platform/auth"
	"github.com/crdc/crdc/pkg/pagination"
)

type Handler struct {
	service  *Service
	sessions *session.Store
}

func NewHandler(service *Service, sessions *session.Store) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/participants", h.Enroll)
	g.GET("/participants", h.ListActive)
}

type enrollRequest struct {
	ParticipantNumber    string `json:"participant_number"`
	EnrollmentDate       string `json:"enrollment_date"`
	ConsentDate          string `json:"consent_date"`
	DemographicGroup     string `json:"demographic_group"`
	InclusionCriteriaMet *bool  `json:"inclusion_criteria_met"`
	ExclusionCriteriaMet *bool  `json:"exclusion_criteria_met"`
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (h *Handler) Enroll(c echo.Context) error {
	studyID, err := session.RequireStudy(c, h.sessions)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	enrollment, err := parseDate(req.EnrollmentDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "enrollment_date must be YYYY-MM-DD")
	}
	consent, err := parseDate(req.ConsentDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "consent_date must be YYYY-MM-DD")
	}

	// Screening booleans default to the eligible answers when omitted.
	inclusion := true
	if req.InclusionCriteriaMet != nil {
		inclusion = *req.InclusionCriteriaMet
	}
	exclusion := false
	if req.ExclusionCriteriaMet != nil {
		exclusion = *req.ExclusionCriteriaMet
	}

	in := EnrollInput{
		ParticipantNumber:    req.ParticipantNumber,
		EnrollmentDate:       enrollment,
		ConsentDate:          consent,
		DemographicGroup:     req.DemographicGroup,
		InclusionCriteriaMet: inclusion,
		ExclusionCriteriaMet: exclusion,
	}

	enrolledBy := auth.UserNameFromContext(c.Request().Context())
	res, err := h.service.Enroll(c.Request().Context(), studyID, in, enrolledBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, res)
}

func (h *Handler) ListActive(c echo.Context) error {
	studyID, err := session.RequireStudy(c, h.sessions)
	if err != nil {
		return err
	}

	p := pagination.FromContext(c)
	participants, total, err := h.service.ListActive(c.Request().Context(), studyID, p.Limit, p.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list participants")
	}
	if participants == nil {
		participants = []*Participant{}
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(participants, total, p.Limit, p.Offset))
}
