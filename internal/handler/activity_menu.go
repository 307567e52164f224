package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/noah-isme/sma-clubs/internal/service"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

// ActivityMenu drives the activities of one club and their gatherings.
type ActivityMenu struct {
	prompt     *Prompt
	clubs      *service.ClubService
	gatherings *service.GatheringService
}

// NewActivityMenu constructs ActivityMenu.
func NewActivityMenu(prompt *Prompt, clubs *service.ClubService, gatherings *service.GatheringService) *ActivityMenu {
	return &ActivityMenu{prompt: prompt, clubs: clubs, gatherings: gatherings}
}

// Run loops over the activities of clubID until the user goes back.
func (m *ActivityMenu) Run(ctx context.Context, clubID int64) error {
	for {
		choice, err := m.prompt.Choose(fmt.Sprintf("Activities of club %d", clubID),
			option{1, "search"},
			option{2, "add"},
			option{3, "update"},
			option{4, "delete"},
			option{5, "gathering"},
			option{6, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = m.search(ctx, clubID)
		case 2:
			err = m.add(ctx, clubID)
		case 3:
			err = m.update(ctx, clubID)
		case 4:
			var actID int64
			if actID, err = m.prompt.Int("act_id"); err == nil {
				m.prompt.Done(m.clubs.DeleteActivity(ctx, clubID, actID), "activity %d deleted", actID)
			}
		case 5:
			var actID int64
			if actID, err = m.prompt.Int("act_id"); err == nil {
				err = m.gathering(ctx, clubID, actID)
			}
		case 6:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *ActivityMenu) search(ctx context.Context, clubID int64) error {
	choice, err := m.prompt.Choose("Search activities",
		option{0, "all"},
		option{1, "act_id"},
		option{2, "title"},
		option{3, "period"},
	)
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		result, err := m.clubs.ReadActivities(ctx, clubID)
		m.prompt.Show(fmt.Sprintf("Activities of club %d", clubID), result, err)
	case 1:
		actID, err := m.prompt.Int("act_id")
		if err != nil {
			return err
		}
		result, err := m.clubs.ReadActivity(ctx, clubID, actID)
		m.prompt.Show(fmt.Sprintf("Activity %d", actID), result, err)
	case 2:
		title, err := m.prompt.Line("title contains")
		if err != nil {
			return err
		}
		result, err := m.clubs.ReadActivityByTitle(ctx, clubID, title)
		m.prompt.Show("Activities titled "+title, result, err)
	case 3:
		from, err := m.prompt.Line("from (YYYY-MM-DD)")
		if err != nil {
			return err
		}
		to, err := m.prompt.Line("to (YYYY-MM-DD)")
		if err != nil {
			return err
		}
		result, err := m.clubs.ReadActivityByPeriod(ctx, clubID, from, to)
		m.prompt.Show(fmt.Sprintf("Activities %s to %s", from, to), result, err)
	}
	return nil
}

func (m *ActivityMenu) add(ctx context.Context, clubID int64) error {
	title, err := m.prompt.Line("title")
	if err != nil {
		return err
	}
	start, err := m.prompt.Line("start date (YYYY-MM-DD, empty for today)")
	if err != nil {
		return err
	}
	end, err := m.prompt.Line("end date (YYYY-MM-DD, empty for open)")
	if err != nil {
		return err
	}
	activity, err := m.clubs.CreateActivity(ctx, clubID, title, start, end)
	if err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	m.prompt.Say("activity %d created", activity.ID)
	return nil
}

// update collects field/value pairs until "done" and applies them at once.
func (m *ActivityMenu) update(ctx context.Context, clubID int64) error {
	actID, err := m.prompt.Int("act_id")
	if err != nil {
		return err
	}
	if err := m.clubs.ValidateActivityBelongsToClub(ctx, clubID, actID); err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	fields := make(map[string]string)
	for {
		field, err := m.prompt.Line("field (title, start_date, end_date or done)")
		if err != nil {
			return err
		}
		if strings.EqualFold(field, "done") {
			break
		}
		value, err := m.prompt.Line("value")
		if err != nil {
			return err
		}
		fields[field] = value
	}
	m.prompt.Done(m.clubs.UpdateActivity(ctx, clubID, actID, fields), "activity %d updated", actID)
	return nil
}

func (m *ActivityMenu) gathering(ctx context.Context, clubID, actID int64) error {
	if err := m.clubs.ValidateActivityBelongsToClub(ctx, clubID, actID); err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	list, err := m.gatherings.ReadByActivityID(ctx, actID)
	m.prompt.Show(fmt.Sprintf("Gatherings of activity %d", actID), list, err)
	if err != nil {
		return nil
	}
	if list.Empty() {
		create, err := m.prompt.Confirm("no gatherings yet, create one?")
		if err != nil || !create {
			return err
		}
		name, err := m.prompt.Line("gathering name")
		if err != nil {
			return err
		}
		created, err := m.gatherings.Create(ctx, actID, name)
		if err != nil {
			m.prompt.Done(err, "")
			return nil
		}
		m.prompt.Say("gathering %d created", created.ID)
		return nil
	}

	gatheringID, err := m.prompt.Int("gathering_id")
	if err != nil {
		return err
	}
	g, err := m.gatherings.Find(ctx, gatheringID)
	if err == nil && g.ActivityID != actID {
		err = appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("gathering %d does not belong to activity %d", gatheringID, actID))
	}
	if err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	return m.manageGathering(ctx, g.ID)
}

func (m *ActivityMenu) manageGathering(ctx context.Context, id int64) error {
	for {
		choice, err := m.prompt.Choose(fmt.Sprintf("Gathering %d", id),
			option{1, "add member"},
			option{2, "remove member"},
			option{3, "view members"},
			option{4, "rename"},
			option{5, "delete"},
			option{6, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			var studentID int64
			if studentID, err = m.prompt.Int("student id"); err == nil {
				m.prompt.Done(m.gatherings.AddStudent(ctx, id, studentID), "student %d added", studentID)
			}
		case 2:
			var studentID int64
			if studentID, err = m.prompt.Int("student id"); err == nil {
				m.prompt.Done(m.gatherings.RemoveStudent(ctx, id, studentID), "student %d removed", studentID)
			}
		case 3:
			result, rerr := m.gatherings.ReadStudents(ctx, id)
			m.prompt.Show(fmt.Sprintf("Members of gathering %d", id), result, rerr)
		case 4:
			var name string
			if name, err = m.prompt.Line("new name"); err == nil {
				m.prompt.Done(m.gatherings.UpdateName(ctx, id, name), "gathering %d renamed", id)
			}
		case 5:
			derr := m.gatherings.Delete(ctx, id)
			m.prompt.Done(derr, "gathering %d deleted", id)
			if derr == nil {
				return nil
			}
		case 6:
			return nil
		}
		if err != nil {
			return err
		}
	}
}
