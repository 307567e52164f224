package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
)

type studentRepository interface {
	Describe(ctx context.Context) (*models.ResultSet, error)
	Create(ctx context.Context, student *models.Student) error
	ReadByField(ctx context.Context, field, value string) (*models.ResultSet, error)
	SearchByName(ctx context.Context, name string) (*models.ResultSet, error)
	List(ctx context.Context) (*models.ResultSet, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	UpdateName(ctx context.Context, id int64, name string) error
	Delete(ctx context.Context, id int64) error
}

// CreateStudentRequest holds input for registering a student.
type CreateStudentRequest struct {
	Name       string `validate:"required,max=100"`
	Department string `validate:"max=100"`
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	return &StudentService{repo: repo, validator: newValidator(validate), logger: newLogger(logger)}
}

// Describe returns the Student table layout.
func (s *StudentService) Describe(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.Describe(ctx)
}

// Create registers a new student.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid student")
	}
	student := &models.Student{Name: req.Name, Department: req.Department}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}
	s.logger.Info("student created", zap.Int64("student_id", student.ID))
	return student, nil
}

// Get loads one student.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	if err := checkID(s.validator, id, "student id"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ReadByField returns students whose field equals value.
func (s *StudentService) ReadByField(ctx context.Context, field, value string) (*models.ResultSet, error) {
	if err := s.validator.Var(field, "required"); err != nil {
		return nil, invalid(err, "field is required")
	}
	return s.repo.ReadByField(ctx, field, value)
}

// SearchByName returns students whose name contains name.
func (s *StudentService) SearchByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return s.repo.SearchByName(ctx, name)
}

// ReadAll returns every student.
func (s *StudentService) ReadAll(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.List(ctx)
}

// UpdateName renames a student.
func (s *StudentService) UpdateName(ctx context.Context, id int64, name string) error {
	if err := checkID(s.validator, id, "student id"); err != nil {
		return err
	}
	if err := s.validator.Var(name, "required,max=100"); err != nil {
		return invalid(err, "invalid student name")
	}
	return s.repo.UpdateName(ctx, id, name)
}

// Delete removes a student and every membership it holds.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if err := checkID(s.validator, id, "student id"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return nil
}
