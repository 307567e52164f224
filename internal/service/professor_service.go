package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
)

type professorRepository interface {
	Describe(ctx context.Context) (*models.ResultSet, error)
	Create(ctx context.Context, professor *models.Professor) error
	ReadByID(ctx context.Context, id int64) (*models.ResultSet, error)
	ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error)
	List(ctx context.Context) (*models.ResultSet, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// ProfessorService handles professor use-cases.
type ProfessorService struct {
	repo      professorRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewProfessorService constructs the professor service.
func NewProfessorService(repo professorRepository, validate *validator.Validate, logger *zap.Logger) *ProfessorService {
	return &ProfessorService{repo: repo, validator: newValidator(validate), logger: newLogger(logger)}
}

// Describe returns the Professor table layout.
func (s *ProfessorService) Describe(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.Describe(ctx)
}

// Create registers a professor.
func (s *ProfessorService) Create(ctx context.Context, name string) (*models.Professor, error) {
	if err := s.validator.Var(name, "required,max=100"); err != nil {
		return nil, invalid(err, "invalid professor name")
	}
	professor := &models.Professor{Name: name}
	if err := s.repo.Create(ctx, professor); err != nil {
		return nil, err
	}
	s.logger.Info("professor created", zap.Int64("prof_id", professor.ID))
	return professor, nil
}

// ReadByID returns the professor with id.
func (s *ProfessorService) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, id, "professor id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByID(ctx, id)
}

// ReadByClubID returns the advisor of a club.
func (s *ProfessorService) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByClubID(ctx, clubID)
}

// ReadAll returns every professor.
func (s *ProfessorService) ReadAll(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.List(ctx)
}

// UpdateName renames a professor.
func (s *ProfessorService) UpdateName(ctx context.Context, id int64, name string) error {
	if err := checkID(s.validator, id, "professor id"); err != nil {
		return err
	}
	if err := s.validator.Var(name, "required,max=100"); err != nil {
		return invalid(err, "invalid professor name")
	}
	return s.repo.UpdateName(ctx, id, name)
}

// Delete removes a professor who no longer advises any club.
func (s *ProfessorService) Delete(ctx context.Context, id int64) error {
	if err := checkID(s.validator, id, "professor id"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return refused(s.logger, err, "professor delete refused", zap.Int64("prof_id", id))
	}
	s.logger.Info("professor deleted", zap.Int64("prof_id", id))
	return nil
}
