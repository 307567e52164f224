package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
)

type gatheringRepository interface {
	Create(ctx context.Context, gathering *models.Gathering) error
	FindByID(ctx context.Context, id int64) (*models.Gathering, error)
	ReadByActivityID(ctx context.Context, actID int64) (*models.ResultSet, error)
	ReadByName(ctx context.Context, name string) (*models.ResultSet, error)
	ReadStudents(ctx context.Context, gatheringID int64) (*models.ResultSet, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

type gatheringParticipants interface {
	Create(ctx context.Context, link models.GatheringStudent) error
	Delete(ctx context.Context, link models.GatheringStudent) error
}

// GatheringService handles gathering use-cases.
type GatheringService struct {
	repo         gatheringRepository
	participants gatheringParticipants
	validator    *validator.Validate
	logger       *zap.Logger
}

// NewGatheringService constructs the gathering service.
func NewGatheringService(repo gatheringRepository, participants gatheringParticipants, validate *validator.Validate, logger *zap.Logger) *GatheringService {
	return &GatheringService{repo: repo, participants: participants, validator: newValidator(validate), logger: newLogger(logger)}
}

// Create adds a gathering to an activity.
func (s *GatheringService) Create(ctx context.Context, actID int64, name string) (*models.Gathering, error) {
	if err := checkID(s.validator, actID, "activity id"); err != nil {
		return nil, err
	}
	if err := s.validator.Var(name, "required,max=100"); err != nil {
		return nil, invalid(err, "invalid gathering name")
	}
	gathering := &models.Gathering{ActivityID: actID, Name: name}
	if err := s.repo.Create(ctx, gathering); err != nil {
		return nil, err
	}
	s.logger.Info("gathering created", zap.Int64("gathering_id", gathering.ID), zap.Int64("act_id", actID))
	return gathering, nil
}

// Find loads one gathering.
func (s *GatheringService) Find(ctx context.Context, id int64) (*models.Gathering, error) {
	if err := checkID(s.validator, id, "gathering id"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ReadByActivityID lists the gatherings of an activity.
func (s *GatheringService) ReadByActivityID(ctx context.Context, actID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, actID, "activity id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByActivityID(ctx, actID)
}

// ReadByName returns gatherings whose name contains name.
func (s *GatheringService) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return s.repo.ReadByName(ctx, name)
}

// ReadStudents lists the participants of a gathering.
func (s *GatheringService) ReadStudents(ctx context.Context, id int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, id, "gathering id"); err != nil {
		return nil, err
	}
	return s.repo.ReadStudents(ctx, id)
}

// UpdateName renames a gathering.
func (s *GatheringService) UpdateName(ctx context.Context, id int64, name string) error {
	if err := checkID(s.validator, id, "gathering id"); err != nil {
		return err
	}
	if err := s.validator.Var(name, "required,max=100"); err != nil {
		return invalid(err, "invalid gathering name")
	}
	return s.repo.UpdateName(ctx, id, name)
}

// Delete removes a gathering and its participant links.
func (s *GatheringService) Delete(ctx context.Context, id int64) error {
	if err := checkID(s.validator, id, "gathering id"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("gathering deleted", zap.Int64("gathering_id", id))
	return nil
}

// AddStudent registers a student as participant.
func (s *GatheringService) AddStudent(ctx context.Context, id, studentID int64) error {
	return s.participants.Create(ctx, models.GatheringStudent{GatheringID: id, StudentID: studentID})
}

// RemoveStudent drops a participant.
func (s *GatheringService) RemoveStudent(ctx context.Context, id, studentID int64) error {
	return s.participants.Delete(ctx, models.GatheringStudent{GatheringID: id, StudentID: studentID})
}
