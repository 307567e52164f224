package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

type activityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	FindByID(ctx context.Context, id int64) (*models.Activity, error)
	ReadByID(ctx context.Context, id int64) (*models.ResultSet, error)
	ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error)
	ReadByTitle(ctx context.Context, title string, clubID int64) (*models.ResultSet, error)
	ReadByPeriod(ctx context.Context, period models.ActivityPeriod) (*models.ResultSet, error)
	Update(ctx context.Context, id int64, values models.Attributes) error
	Delete(ctx context.Context, id int64) error
}

// CreateActivityRequest holds input for scheduling an activity. Empty dates
// fall back to today and the open end date.
type CreateActivityRequest struct {
	ClubID    int64  `validate:"gt=0"`
	Title     string `validate:"required,max=100"`
	StartDate string `validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
}

// PeriodRequest bounds an overlap search. ClubID zero searches every club.
type PeriodRequest struct {
	From   string `validate:"required,datetime=2006-01-02"`
	To     string `validate:"required,datetime=2006-01-02"`
	ClubID int64  `validate:"gte=0"`
}

// Activity columns that may be changed after creation.
const (
	ActivityFieldTitle = "act_title"
	ActivityFieldStart = "start_date"
	ActivityFieldEnd   = "end_date"
)

var activityFieldAliases = map[string]string{
	"title":            ActivityFieldTitle,
	ActivityFieldTitle: ActivityFieldTitle,
	"start":            ActivityFieldStart,
	ActivityFieldStart: ActivityFieldStart,
	"end":              ActivityFieldEnd,
	ActivityFieldEnd:   ActivityFieldEnd,
}

// ActivityService handles activity use-cases.
type ActivityService struct {
	repo      activityRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewActivityService constructs the activity service.
func NewActivityService(repo activityRepository, validate *validator.Validate, logger *zap.Logger) *ActivityService {
	return &ActivityService{repo: repo, validator: newValidator(validate), logger: newLogger(logger)}
}

// Create schedules an activity for a club.
func (s *ActivityService) Create(ctx context.Context, req CreateActivityRequest) (*models.Activity, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid activity")
	}
	if req.StartDate != "" && req.EndDate != "" && req.StartDate > req.EndDate {
		return nil, appErrors.Clone(appErrors.ErrValidation, "activity cannot end before it starts")
	}
	activity := &models.Activity{ClubID: req.ClubID, Title: req.Title, StartDate: req.StartDate}
	if req.EndDate != "" {
		end := req.EndDate
		activity.EndDate = &end
	}
	if err := s.repo.Create(ctx, activity); err != nil {
		return nil, err
	}
	s.logger.Info("activity created", zap.Int64("act_id", activity.ID), zap.Int64("club_id", activity.ClubID))
	return activity, nil
}

// Find loads one activity.
func (s *ActivityService) Find(ctx context.Context, id int64) (*models.Activity, error) {
	if err := checkID(s.validator, id, "activity id"); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

// ReadByID returns the activity row with id.
func (s *ActivityService) ReadByID(ctx context.Context, id int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, id, "activity id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByID(ctx, id)
}

// ReadByClubID returns the activities of a club.
func (s *ActivityService) ReadByClubID(ctx context.Context, clubID int64) (*models.ResultSet, error) {
	if err := checkID(s.validator, clubID, "club id"); err != nil {
		return nil, err
	}
	return s.repo.ReadByClubID(ctx, clubID)
}

// ReadByTitle returns activities whose title contains title. clubID zero
// searches every club.
func (s *ActivityService) ReadByTitle(ctx context.Context, title string, clubID int64) (*models.ResultSet, error) {
	if err := s.validator.Var(clubID, "gte=0"); err != nil {
		return nil, invalid(err, "club id cannot be negative")
	}
	return s.repo.ReadByTitle(ctx, title, clubID)
}

// ReadByPeriod returns activities overlapping the requested period.
func (s *ActivityService) ReadByPeriod(ctx context.Context, req PeriodRequest) (*models.ResultSet, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, invalid(err, "invalid period")
	}
	if req.From > req.To {
		return nil, appErrors.Clone(appErrors.ErrValidation, "period start is after its end")
	}
	return s.repo.ReadByPeriod(ctx, models.ActivityPeriod{From: req.From, To: req.To, ClubID: req.ClubID})
}

// Update changes the given fields of one activity. Keys may use the short
// aliases title, start and end.
func (s *ActivityService) Update(ctx context.Context, id int64, fields map[string]string) error {
	if err := checkID(s.validator, id, "activity id"); err != nil {
		return err
	}
	values, err := s.normalizeFields(fields)
	if err != nil {
		return err
	}
	_, hasStart := values[ActivityFieldStart]
	_, hasEnd := values[ActivityFieldEnd]
	if hasStart || hasEnd {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		start, end := current.StartDate, models.OpenEndDate
		if current.EndDate != nil {
			end = *current.EndDate
		}
		if hasStart {
			start = values[ActivityFieldStart].(string)
		}
		if hasEnd {
			end = values[ActivityFieldEnd].(string)
		}
		if datePart(start) > datePart(end) {
			return appErrors.Clone(appErrors.ErrValidation, "activity cannot end before it starts")
		}
	}
	return s.repo.Update(ctx, id, values)
}

// Delete removes an activity without gatherings.
func (s *ActivityService) Delete(ctx context.Context, id int64) error {
	if err := checkID(s.validator, id, "activity id"); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return refused(s.logger, err, "activity delete refused", zap.Int64("act_id", id))
	}
	s.logger.Info("activity deleted", zap.Int64("act_id", id))
	return nil
}

// BelongsTo fails with not_found unless the activity is owned by clubID.
func (s *ActivityService) BelongsTo(ctx context.Context, id, clubID int64) error {
	activity, err := s.Find(ctx, id)
	if err != nil {
		return err
	}
	if activity.ClubID != clubID {
		s.logger.Info("activity belongs to another club",
			zap.Int64("act_id", id),
			zap.Int64("club_id", clubID),
			zap.Int64("owner_club_id", activity.ClubID),
		)
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("activity %d does not belong to club %d", id, clubID))
	}
	return nil
}

func (s *ActivityService) normalizeFields(fields map[string]string) (models.Attributes, error) {
	if len(fields) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no activity field to update")
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make(models.Attributes, len(fields))
	for _, key := range keys {
		column, ok := activityFieldAliases[strings.ToLower(strings.TrimSpace(key))]
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("activity field %q cannot be updated", key))
		}
		value := strings.TrimSpace(fields[key])
		switch column {
		case ActivityFieldTitle:
			if err := s.validator.Var(value, "required,max=100"); err != nil {
				return nil, invalid(err, "invalid activity title")
			}
		default:
			if err := s.validator.Var(value, "required,datetime=2006-01-02"); err != nil {
				return nil, invalid(err, fmt.Sprintf("%s must be a YYYY-MM-DD date", column))
			}
		}
		values[column] = value
	}
	return values, nil
}

// datePart trims engine timestamps such as 2024-03-01T00:00:00Z to the date.
func datePart(value string) string {
	if len(value) > len(models.DateLayout) {
		return value[:len(models.DateLayout)]
	}
	return value
}
