package handler

import (
	"context"

	"github.com/noah-isme/sma-clubs/internal/service"
)

// ProfessorMenu drives professor operations.
type ProfessorMenu struct {
	prompt     *Prompt
	professors *service.ProfessorService
}

// NewProfessorMenu constructs ProfessorMenu.
func NewProfessorMenu(prompt *Prompt, professors *service.ProfessorService) *ProfessorMenu {
	return &ProfessorMenu{prompt: prompt, professors: professors}
}

// Run loops until the user goes back.
func (m *ProfessorMenu) Run(ctx context.Context) error {
	for {
		choice, err := m.prompt.Choose("Professor",
			option{0, "info"},
			option{1, "search"},
			option{2, "create"},
			option{3, "delete"},
			option{4, "update name"},
			option{5, "back"},
		)
		if err != nil {
			return err
		}
		switch choice {
		case 0:
			result, err := m.professors.Describe(ctx)
			m.prompt.Show("Professor layout", result, err)
		case 1:
			err = m.search(ctx)
		case 2:
			var name string
			if name, err = m.prompt.Line("name"); err == nil {
				professor, cerr := m.professors.Create(ctx, name)
				if cerr != nil {
					m.prompt.Done(cerr, "")
				} else {
					m.prompt.Say("professor %d created", professor.ID)
				}
			}
		case 3:
			var id int64
			if id, err = m.prompt.Int("professor id"); err == nil {
				m.prompt.Done(m.professors.Delete(ctx, id), "professor %d deleted", id)
			}
		case 4:
			err = m.updateName(ctx)
		case 5:
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func (m *ProfessorMenu) search(ctx context.Context) error {
	choice, err := m.prompt.Choose("Search professors",
		option{0, "all"},
		option{1, "prof_id"},
		option{2, "club_id"},
	)
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		result, err := m.professors.ReadAll(ctx)
		m.prompt.Show("Professors", result, err)
	case 1:
		id, err := m.prompt.Int("prof_id")
		if err != nil {
			return err
		}
		result, err := m.professors.ReadByID(ctx, id)
		m.prompt.Show("Professor", result, err)
	case 2:
		id, err := m.prompt.Int("club_id")
		if err != nil {
			return err
		}
		result, err := m.professors.ReadByClubID(ctx, id)
		m.prompt.Show("Club advisor", result, err)
	}
	return nil
}

func (m *ProfessorMenu) updateName(ctx context.Context) error {
	id, err := m.prompt.Int("professor id")
	if err != nil {
		return err
	}
	name, err := m.prompt.Line("new name")
	if err != nil {
		return err
	}
	m.prompt.Done(m.professors.UpdateName(ctx, id, name), "professor %d renamed", id)
	return nil
}
