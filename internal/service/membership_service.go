package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

type clubStudentRepository interface {
	Create(ctx context.Context, link models.ClubStudent) error
	Exists(ctx context.Context, link models.ClubStudent) (bool, error)
	ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error)
	ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error)
	List(ctx context.Context) (*models.ResultSet, error)
	Delete(ctx context.Context, link models.ClubStudent) error
}

type gatheringStudentRepository interface {
	Create(ctx context.Context, link models.GatheringStudent) error
	ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error)
	ReadByGatheringID(ctx context.Context, gatheringID int64) (*models.ResultSet, error)
	List(ctx context.Context) (*models.ResultSet, error)
	Delete(ctx context.Context, link models.GatheringStudent) error
}

// ClubStudentService manages club membership links.
type ClubStudentService struct {
	repo      clubStudentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClubStudentService constructs the club membership service.
func NewClubStudentService(repo clubStudentRepository, validate *validator.Validate, logger *zap.Logger) *ClubStudentService {
	return &ClubStudentService{repo: repo, validator: newValidator(validate), logger: newLogger(logger)}
}

// Create enrols a student in a club.
func (s *ClubStudentService) Create(ctx context.Context, link models.ClubStudent) error {
	if err := s.check(link); err != nil {
		return err
	}
	exists, err := s.repo.Exists(ctx, link)
	if err != nil {
		return err
	}
	if exists {
		s.logger.Info("student already in club", zap.Int64("club_id", link.ClubID), zap.Int64("student_id", link.StudentID))
		return appErrors.Clone(appErrors.ErrConstraint, fmt.Sprintf("student %d is already a member of club %d", link.StudentID, link.ClubID))
	}
	return s.repo.Create(ctx, link)
}

// ReadByStudentID lists the clubs a student belongs to.
func (s *ClubStudentService) ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, studentID, "student id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByStudentID(ctx, studentID)
}

// ReadByClubID lists the membership links of a club.
func (s *ClubStudentService) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByClubID(ctx, clubID)
}

// ReadAll lists every membership link.
func (s *ClubStudentService) ReadAll(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.List(ctx)
}

// Delete removes one membership link.
func (s *ClubStudentService) Delete(ctx context.Context, link models.ClubStudent) error {
	if err := s.check(link); err != nil {
		return err
	}
	return s.repo.Delete(ctx, link)
}

func (s *ClubStudentService) check(link models.ClubStudent) error {
	if err := checkID(s.validator, link.ClubID, "club id"); err != nil {
		return err
	}
	return checkID(s.validator, link.StudentID, "student id")
}

// GatheringStudentService manages gathering participation links.
type GatheringStudentService struct {
	repo      gatheringStudentRepository
	validator *validator.Validate
}

// NewGatheringStudentService constructs the participation service.
func NewGatheringStudentService(repo gatheringStudentRepository, validate *validator.Validate) *GatheringStudentService {
	return &GatheringStudentService{repo: repo, validator: newValidator(validate)}
}

// Create adds a student to a gathering.
func (s *GatheringStudentService) Create(ctx context.Context, link models.GatheringStudent) error {
	if err := s.check(link); err != nil {
		return err
	}
	return s.repo.Create(ctx, link)
}

// ReadByStudentID lists the gatherings a student attends.
func (s *GatheringStudentService) ReadByStudentID(ctx context.Context, studentID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, studentID, "student id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByStudentID(ctx, studentID)
}

// ReadByGatheringID lists the participation links of a gathering.
func (s *GatheringStudentService) ReadByGatheringID(ctx context.Context, gatheringID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, gatheringID, "gathering id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByGatheringID(ctx, gatheringID)
}

// ReadAll lists every participation link.
func (s *GatheringStudentService) ReadAll(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.List(ctx)
}

// Delete removes one participation link.
func (s *GatheringStudentService) Delete(ctx context.Context, link models.GatheringStudent) error {
	if err := s.check(link); err != nil {
		return err
	}
	return s.repo.Delete(ctx, link)
}

func (s *GatheringStudentService) check(link models.GatheringStudent) error {
	if err := checkID(s.validator, link.GatheringID, "gathering id"); err != nil {
		return err
	}
	return checkID(s.validator, link.StudentID, "student id")
}
