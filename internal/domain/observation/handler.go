package observation

import (
	"errors"
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
	g.POST("/observations", h.Record)
}

type recordRequest struct {
	ParticipantNumber string `json:"participant_number"`
	ObservationDate   string `json:"observation_date"`
	VisitNumber       int    `json:"visit_number"`
	MeasurementName   string `json:"measurement_name"`
	MeasurementValue  string `json:"measurement_value"`
	MeasurementUnit   string `json:"measurement_unit"`
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

	in := RecordInput{
		ParticipantNumber: req.ParticipantNumber,
		VisitNumber:       req.VisitNumber,
		MeasurementName:   req.MeasurementName,
		MeasurementValue:  req.MeasurementValue,
		MeasurementUnit:   req.MeasurementUnit,
	}
	if req.ObservationDate != "" {
		d, err := time.Parse("2006-01-02", req.ObservationDate)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "observation_date must be YYYY-MM-DD")
		}
		in.ObservationDate = &d
	}

	recordedBy := auth.UserNameFromContext(c.Request().Context())
	o, err := h.service.Record(c.Request().Context(), studyID, in, recordedBy)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoParticipants):
			return echo.NewHTTPError(http.StatusConflict, "enroll a participant before recording observations")
		case errors.Is(err, ErrParticipantNotFound):
			return echo.NewHTTPError(http.StatusNotFound, "participant not found in study")
		default:
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(http.StatusCreated, o)
}
