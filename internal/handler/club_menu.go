package handler

import (
	"context"
	"fmt"

	"github.com/noah-isme/sma-clubs/internal/models"
	"github.com/noah-isme/sma-clubs/internal/service"
)

// ClubMenu drives club operations and the per-club management menus.
type ClubMenu struct {
	prompt     *Prompt
	clubs      *service.ClubService
	activities *ActivityMenu
}

// NewClubMenu constructs ClubMenu.
func NewClubMenu(prompt *Prompt, clubs *service.ClubService, activities *ActivityMenu) *ClubMenu {
	return &ClubMenu{prompt: prompt, clubs: clubs, activities: activities}
}

// Run loops until the user goes back.
func (m *ClubMenu) Run(ctx context.Context) error {
	for {
		choice, err := m.prompt.Choose("Club",
			option{0, "info"},
			option{1, "search"},
			option{2, "create"},
			option{3, "delete"},
			option{4, "manage"},
			option{5, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			result, err := m.clubs.Describe(ctx)
			m.prompt.Show("Club layout", result, err)
		case 1:
			err = m.search(ctx)
		case 2:
			err = m.create(ctx)
		case 3:
			var id int64
			if id, err = m.prompt.Int("club id"); err == nil {
				m.prompt.Done(m.clubs.Delete(ctx, id), "club %d deleted", id)
			}
		case 4:
			err = m.manage(ctx)
		case 5:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *ClubMenu) search(ctx context.Context) error {
	choice, err := m.prompt.Choose("Search clubs",
		option{0, "all"},
		option{1, "club_id"},
		option{2, "club_name"},
		option{3, "prof_id"},
		option{4, "loc_id"},
		option{5, "loc_name"},
	)
	if err != nil {
		return err
	}
	var (
		result *models.ResultSet
		title  string
	)
	switch choice {
	case 0:
		title = "Clubs"
		result, err = m.clubs.ReadAll(ctx)
	case 1, 3, 4:
		labels := map[int]string{1: "club_id", 3: "prof_id", 4: "loc_id"}
		id, ierr := m.prompt.Int(labels[choice])
		if ierr != nil {
			return ierr
		}
		title = fmt.Sprintf("Clubs by %s %d", labels[choice], id)
		switch choice {
		case 1:
			result, err = m.clubs.ReadByID(ctx, id)
		case 3:
			result, err = m.clubs.ReadByProfessorID(ctx, id)
		default:
			result, err = m.clubs.ReadByLocationID(ctx, id)
		}
	case 2, 5:
		name, lerr := m.prompt.Line("name contains")
		if lerr != nil {
			return lerr
		}
		if choice == 2 {
			title = "Clubs named " + name
			result, err = m.clubs.ReadByName(ctx, name)
		} else {
			title = "Clubs at " + name
			result, err = m.clubs.ReadByLocationName(ctx, name)
		}
	}
	m.prompt.Show(title, result, err)
	return nil
}

func (m *ClubMenu) create(ctx context.Context) error {
	name, err := m.prompt.Line("club name")
	if err != nil {
		return err
	}
	budget, err := m.prompt.Float("budget")
	if err != nil {
		return err
	}
	profID, err := m.prompt.OptionalInt("advising prof_id (empty for none)")
	if err != nil {
		return err
	}
	req := service.CreateClubRequest{Name: name, Budget: budget}
	if profID != 0 {
		req.ProfessorID = &profID
	}
	club, err := m.clubs.Create(ctx, req)
	if err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	m.prompt.Say("club %d created", club.ID)
	return nil
}

func (m *ClubMenu) manage(ctx context.Context) error {
	id, err := m.prompt.Int("club id")
	if err != nil {
		return err
	}
	club, err := m.clubs.Get(ctx, id)
	if err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	for {
		choice, err := m.prompt.Choose(fmt.Sprintf("Manage club %d (%s)", club.ID, club.Name),
			option{1, "members"},
			option{2, "activities"},
			option{3, "details"},
			option{4, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = m.members(ctx, club.ID)
		case 2:
			err = m.activities.Run(ctx, club.ID)
		case 3:
			err = m.details(ctx, club.ID)
		case 4:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *ClubMenu) members(ctx context.Context, clubID int64) error {
	for {
		choice, err := m.prompt.Choose("Members",
			option{1, "search"},
			option{2, "add"},
			option{3, "delete"},
			option{4, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			err = m.searchMembers(ctx, clubID)
		case 2:
			var studentID int64
			if studentID, err = m.prompt.Int("student id"); err == nil {
				m.prompt.Done(m.clubs.AddMember(ctx, clubID, studentID), "student %d joined club %d", studentID, clubID)
			}
		case 3:
			var studentID int64
			if studentID, err = m.prompt.Int("student id"); err == nil {
				m.prompt.Done(m.clubs.DeleteMember(ctx, clubID, studentID), "student %d left club %d", studentID, clubID)
			}
		case 4:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *ClubMenu) searchMembers(ctx context.Context, clubID int64) error {
	choice, err := m.prompt.Choose("Search members", option{0, "all"}, option{1, "name"})
	if err != nil {
		return err
	}
	if choice == 0 {
		result, err := m.clubs.ReadMembers(ctx, clubID)
		m.prompt.Show(fmt.Sprintf("Members of club %d", clubID), result, err)
		return nil
	}
	name, err := m.prompt.Line("name contains")
	if err != nil {
		return err
	}
	result, err := m.clubs.ReadMembersByName(ctx, clubID, name)
	m.prompt.Show(fmt.Sprintf("Members of club %d named %s", clubID, name), result, err)
	return nil
}

func (m *ClubMenu) details(ctx context.Context, clubID int64) error {
	for {
		result, err := m.clubs.ReadInfo(ctx, clubID, models.JoinProfessor, models.JoinLocation)
		m.prompt.Show(fmt.Sprintf("Club %d details", clubID), result, err)

		choice, err := m.prompt.Choose("Update details",
			option{1, "name"},
			option{2, "budget"},
			option{3, "advising professor"},
			option{4, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 1:
			var name string
			if name, err = m.prompt.Line("new name"); err == nil {
				m.prompt.Done(m.clubs.UpdateName(ctx, clubID, name), "club %d renamed", clubID)
			}
		case 2:
			var budget float64
			if budget, err = m.prompt.Float("new budget"); err == nil {
				m.prompt.Done(m.clubs.UpdateBudget(ctx, clubID, budget), "club %d budget updated", clubID)
			}
		case 3:
			var profID int64
			if profID, err = m.prompt.Int("new prof_id"); err == nil {
				m.prompt.Done(m.clubs.UpdateProfessor(ctx, clubID, profID), "club %d advisor updated", clubID)
			}
		case 4:
			return nil
		}
		if err != nil {
			return err
		}
	}
}
