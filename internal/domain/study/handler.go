package study

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/crdc/crdc/internal/platform/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/studies", h.Create)
	g.GET("/studies/active", h.ListActive)
	g.GET("/studies/:id", h.Get)
}

type createRequest struct {
	StudyName             string `json:"study_name"`
	StudyNumber           string `json:"study_number"`
	PrincipalInvestigator string `json:"principal_investigator"`
	StudyPhase            string `json:"study_phase"`
	StudyType             string `json:"study_type"`
	StudyDescription      string `json:"study_description"`
	TargetEnrollment      int    `json:"target_enrollment"`
	StudyStartDate        string `json:"study_start_date"`
}

func (h *Handler) Create(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	in := CreateStudyInput{
		StudyName:             req.StudyName,
		StudyNumber:           req.StudyNumber,
		PrincipalInvestigator: req.PrincipalInvestigator,
		StudyPhase:            req.StudyPhase,
		StudyType:             req.StudyType,
		StudyDescription:      req.StudyDescription,
		TargetEnrollment:      req.TargetEnrollment,
	}
	if req.StudyStartDate != "" {
		d, err := time.Parse("2006-01-02", req.StudyStartDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "study_start_date must be YYYY-MM-DD")
		}
		in.StudyStartDate = &d
	}

	createdBy := auth.UserNameFromContext(c.Request().Context())
	st, err := h.service.CreateStudy(c.Request().Context(), in, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusCreated, st)
}

func (h *Handler) ListActive(c echo.Context) error {
	studies, err := h.service.ListActive(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to list studies")
	}
	return c.JSON(http.StatusOK, studies)
}

func (h *Handler) Get(c echo.Context) error {
	st, err := h.service.GetStudy(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "study not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to get study")
	}
	return c.JSON(http.StatusOK, st)
}
