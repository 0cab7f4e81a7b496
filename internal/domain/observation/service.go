package observation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/crdc/crdc/internal/platform/audit"
	"github.com/crdc/crdc/internal/platform/ident"
)

var (
	// ErrNoParticipants means the study has nobody enrolled yet, so there
	// is no one to observe.
	ErrNoParticipants      = errors.New("study has no active participants")
	ErrParticipantNotFound = errors.New("participant not found in study")
)

// ParticipantCounter reports how many active participants a study has.
type ParticipantCounter interface {
	CountActive(ctx context.Context, studyID string) (int, error)
}

type Service struct {
	repo         Repository
	participants ParticipantCounter
	recorder     audit.ChangeRecorder
	now          func() time.Time
}

func NewService(repo Repository, participants ParticipantCounter, recorder audit.ChangeRecorder) *Service {
	return &Service{
		repo:         repo,
		participants: participants,
		recorder:     recorder,
		now:          time.Now,
	}
}

// RecordInput carries the observation form fields. The participant is named
// by number; the service resolves it to an id.
type RecordInput struct {
	ParticipantNumber string
	ObservationDate   *time.Time
	VisitNumber       int
	MeasurementName   string
	MeasurementValue  string
	MeasurementUnit   string
}

// Record captures a measurement against a participant of studyID. Studies
// with no active participants are refused with ErrNoParticipants.
func (s *Service) Record(ctx context.Context, studyID string, in RecordInput, recordedBy string) (*Observation, error) {
	count, err := s.participants.CountActive(ctx, studyID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoParticipants
	}

	if in.ParticipantNumber == "" {
		return nil, fmt.Errorf("participant_number is required")
	}
	if in.MeasurementName == "" {
		return nil, fmt.Errorf("measurement_name is required")
	}
	if in.MeasurementValue == "" {
		return nil, fmt.Errorf("measurement_value is required")
	}
	if in.VisitNumber <= 0 {
		in.VisitNumber = 1
	}

	now := s.now()
	obsDate := now.Truncate(24 * time.Hour)
	if in.ObservationDate != nil {
		obsDate = *in.ObservationDate
	}

	o := &Observation{
		ObservationID:    ident.New(ident.ObservationPrefix, now),
		StudyID:          studyID,
		ObservationDate:  obsDate,
		VisitNumber:      in.VisitNumber,
		MeasurementName:  in.MeasurementName,
		MeasurementValue: in.MeasurementValue,
		CreatedDate:      now,
	}
	if in.MeasurementUnit != "" {
		unit := in.MeasurementUnit
		o.MeasurementUnit = &unit
	}

	if err := s.repo.CreateForParticipant(ctx, o, in.ParticipantNumber); err != nil {
		return nil, err
	}

	_ = s.recorder.RecordChange(ctx, "observations", "INSERT", o.ObservationID, recordedBy)

	return o, nil
}
