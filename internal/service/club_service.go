package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
)

type clubRepository interface {
	Describe(ctx context.Context) (*models.ResultSet, error)
	Create(ctx context.Context, club *models.Club) error
	FindByID(ctx context.Context, id int64) (*models.Club, error)
	ReadByID(ctx context.Context, id int64) (*models.ResultSet, error)
	ReadByName(ctx context.Context, name string) (*models.ResultSet, error)
	ReadByProfessorID(ctx context.Context, profID int64) (*models.ResultSet, error)
	ReadByLocationID(ctx context.Context, locID int64) (*models.ResultSet, error)
	ReadByLocationName(ctx context.Context, name string) (*models.ResultSet, error)
	List(ctx context.Context) (*models.ResultSet, error)
	ReadInfo(ctx context.Context, id int64, joins []string) (*models.ResultSet, error)
	ReadMembers(ctx context.Context, clubID int64) (*models.ResultSet, error)
	ReadMembersByName(ctx context.Context, clubID int64, name string) (*models.ResultSet, error)
	Update(ctx context.Context, id int64, values models.Attributes) error
	Delete(ctx context.Context, id int64) error
}

type clubMembers interface {
	Create(ctx context.Context, link models.ClubStudent) error
	Delete(ctx context.Context, link models.ClubStudent) error
}

type clubActivities interface {
	Create(ctx context.Context, req CreateActivityRequest) (*models.Activity, error)
	ReadByID(ctx context.Context, id int64) (*models.ResultSet, error)
	ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error)
	ReadByTitle(ctx context.Context, title string, clubID int64) (*models.ResultSet, error)
	ReadByPeriod(ctx context.Context, req PeriodRequest) (*models.ResultSet, error)
	Update(ctx context.Context, id int64, fields map[string]string) error
	Delete(ctx context.Context, id int64) error
	BelongsTo(ctx context.Context, id, clubID int64) error
}

// CreateClubRequest holds input for founding a club. ProfessorID is optional.
type CreateClubRequest struct {
	Name        string  `validate:"required,max=100"`
	Budget      float64 `validate:"gte=0"`
	ProfessorID *int64  `validate:"omitempty,gt=0"`
}

// ClubService handles clubs together with their members and activities.
type ClubService struct {
	repo       clubRepository
	members    clubMembers
	activities clubActivities
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewClubService constructs the club service.
func NewClubService(repo clubRepository, members clubMembers, activities clubActivities, validate *validator.Validate, logger *zap.Logger) *ClubService {
	return &ClubService{
		repo:       repo,
		members:    members,
		activities: activities,
		validator:  newValidator(validate),
		logger:     newLogger(logger),
	}
}

// Describe returns the Club table layout.
func (s *ClubService) Describe(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.Describe(ctx)
}

// Create founds a club.
func (s *ClubService) Create(ctx context.Context, req CreateClubRequest) (*models.Club, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid club")
	}
	club := &models.Club{Name: req.Name, Budget: req.Budget, ProfessorID: req.ProfessorID}
	if err := s.repo.Create(ctx, club); err != nil {
		return nil, err
	}
	s.logger.Info("club created", zap.Int64("club_id", club.ID))
	return club, nil
}

// Get loads one club.
func (s *ClubService) Get(ctx context.Context, id int64) (*models.Club, error) {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ReadByID returns the club row with id.
func (s *ClubService) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByID(ctx, id)
}

// ReadByName returns clubs whose name contains name.
func (s *ClubService) ReadByName(ctx context.Context, name string) (*models.ResultSet, error) {
	return s.repo.ReadByName(ctx, name)
}

// ReadByProfessorID returns the clubs a professor advises.
func (s *ClubService) ReadByProfessorID(ctx context.Context, profID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, profID, "professor id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByProfessorID(ctx, profID)
}

// ReadByLocationID returns the clubs using a location.
func (s *ClubService) ReadByLocationID(ctx context.Context, locID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, locID, "location id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByLocationID(ctx, locID)
}

// ReadByLocationName returns clubs using a location whose name contains name.
func (s *ClubService) ReadByLocationName(ctx context.Context, name string) (*models.ResultSet, error) {
	return s.repo.ReadByLocationName(ctx, name)
}

// ReadAll returns every club.
func (s *ClubService) ReadAll(ctx context.Context) (*models.ResultSet, error) {
	return s.repo.List(ctx)
}

// ReadInfo returns the club joined with the requested tables.
func (s *ClubService) ReadInfo(ctx context.Context, id int64, joins ...string) (*models.ResultSet, error) {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadInfo(ctx, id, joins)
}

// UpdateName renames a club.
func (s *ClubService) UpdateName(ctx context.Context, id int64, name string) error {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return err
	}
	if err := s.validator.Var(name, "required,max=100"); err != nil {
		return invalid(err, "invalid club name")
	}
	return s.repo.Update(ctx, id, models.Attributes{"club_name": name})
}

// UpdateBudget sets a club's budget.
func (s *ClubService) UpdateBudget(ctx context.Context, id int64, budget float64) error {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return err
	}
	if err := s.validator.Var(budget, "gte=0"); err != nil {
		return invalid(err, "budget cannot be negative")
	}
	return s.repo.Update(ctx, id, models.Attributes{"budget": budget})
}

// UpdateProfessor assigns a new advisor to a club.
func (s *ClubService) UpdateProfessor(ctx context.Context, id, profID int64) error {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return err
	}
	if err := checkID(s.validator, profID, "professor id"); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, models.Attributes{"prof_id": profID})
}

// Delete removes a club and its memberships once it has no activities.
func (s *ClubService) Delete(ctx context.Context, id int64) error {
	if err := checkID(s.validator, id, "club id"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return refused(s.logger, err, "club delete refused", zap.Int64("club_id", id))
	}
	s.logger.Info("club deleted", zap.Int64("club_id", id))
	return nil
}

// AddMember enrols a student in the club.
func (s *ClubService) AddMember(ctx context.Context, clubID, studentID int64) error {
	return s.members.Create(ctx, models.ClubStudent{ClubID: clubID, StudentID: studentID})
}

// DeleteMember removes a student from the club.
func (s *ClubService) DeleteMember(ctx context.Context, clubID, studentID int64) error {
	return s.members.Delete(ctx, models.ClubStudent{ClubID: clubID, StudentID: studentID})
}

// ReadMembers lists the students of a club.
func (s *ClubService) ReadMembers(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadMembers(ctx, clubID)
}

// ReadMembersByName lists club members whose name contains name.
func (s *ClubService) ReadMembersByName(ctx context.Context, clubID int64, name string) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadMembersByName(ctx, clubID, name)
}

// ValidateActivityBelongsToClub fails with not_found unless the activity is
// owned by the club.
func (s *ClubService) ValidateActivityBelongsToClub(ctx context.Context, clubID, actID int64) error {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return err
	}
	return s.activities.BelongsTo(ctx, actID, clubID)
}

// CreateActivity schedules an activity for the club.
func (s *ClubService) CreateActivity(ctx context.Context, clubID int64, title, start, end string) (*models.Activity, error) {
	return s.activities.Create(ctx, CreateActivityRequest{ClubID: clubID, Title: title, StartDate: start, EndDate: end})
}

// ReadActivities lists the club's activities.
func (s *ClubService) ReadActivities(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	return s.activities.ReadByClubID(ctx, clubID)
}

// ReadActivity returns one of the club's activities.
func (s *ClubService) ReadActivity(ctx context.Context, clubID, actID int64) (*models.ResultSet, error) {
	if err := s.ValidateActivityBelongsToClub(ctx, clubID, actID); err != nil {
		return nil, err
	}
	return s.activities.ReadByID(ctx, actID)
}

// ReadActivityByTitle searches the club's activities by title.
func (s *ClubService) ReadActivityByTitle(ctx context.Context, clubID int64, title string) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.activities.ReadByTitle(ctx, title, clubID)
}

// ReadActivityByPeriod lists the club's activities overlapping from..to.
func (s *ClubService) ReadActivityByPeriod(ctx context.Context, clubID int64, from, to string) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.activities.ReadByPeriod(ctx, PeriodRequest{From: from, To: to, ClubID: clubID})
}

// UpdateActivity changes fields of one of the club's activities.
func (s *ClubService) UpdateActivity(ctx context.Context, clubID, actID int64, fields map[string]string) error {
	if err := s.ValidateActivityBelongsToClub(ctx, clubID, actID); err != nil {
		return err
	}
	return s.activities.Update(ctx, actID, fields)
}

// DeleteActivity removes one of the club's activities.
func (s *ClubService) DeleteActivity(ctx context.Context, clubID, actID int64) error {
	if err := s.ValidateActivityBelongsToClub(ctx, clubID, actID); err != nil {
		return err
	}
	return s.activities.Delete(ctx, actID)
}
