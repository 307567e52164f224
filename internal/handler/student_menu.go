package handler

import (
	"context"
	"fmt"

	"github.com/noah-isme/sma-clubs/internal/service"
)

// StudentMenu drives student operations.
type StudentMenu struct {
	prompt            *Prompt
	students          *service.StudentService
	clubStudents      *service.ClubStudentService
	gatheringStudents *service.GatheringStudentService
}

// NewStudentMenu constructs StudentMenu.
func NewStudentMenu(prompt *Prompt, students *service.StudentService, clubStudents *service.ClubStudentService, gatheringStudents *service.GatheringStudentService) *StudentMenu {
	return &StudentMenu{prompt: prompt, students: students, clubStudents: clubStudents, gatheringStudents: gatheringStudents}
}

// Run loops until the user goes back.
func (m *StudentMenu) Run(ctx context.Context) error {
	for {
		choice, err := m.prompt.Choose("Student",
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
			result, err := m.students.Describe(ctx)
			m.prompt.Show("Student layout", result, err)
		case 1:
			err = m.search(ctx)
		case 2:
			err = m.create(ctx)
		case 3:
			err = m.delete(ctx)
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

func (m *StudentMenu) search(ctx context.Context) error {
	choice, err := m.prompt.Choose("Search students",
		option{0, "all"},
		option{1, "name contains"},
		option{2, "field = value"},
		option{3, "clubs of a student"},
		option{4, "gatherings of a student"},
		option{5, "all club memberships"},
		option{6, "all gathering participations"},
	)
	if err != nil {
		return err
	}
	switch choice {
	case 0:
		result, err := m.students.ReadAll(ctx)
		m.prompt.Show("Students", result, err)
	case 1:
		name, err := m.prompt.Line("name contains")
		if err != nil {
			return err
		}
		result, err := m.students.SearchByName(ctx, name)
		m.prompt.Show("Students named "+name, result, err)
	case 2:
		field, err := m.prompt.Line("field (student_id, name, department)")
		if err != nil {
			return err
		}
		value, err := m.prompt.Line("value")
		if err != nil {
			return err
		}
		result, err := m.students.ReadByField(ctx, field, value)
		m.prompt.Show(fmt.Sprintf("Students with %s = %s", field, value), result, err)
	case 3:
		id, err := m.prompt.Int("student id")
		if err != nil {
			return err
		}
		result, err := m.clubStudents.ReadByStudentID(ctx, id)
		m.prompt.Show("Club memberships", result, err)
	case 4:
		id, err := m.prompt.Int("student id")
		if err != nil {
			return err
		}
		result, err := m.gatheringStudents.ReadByStudentID(ctx, id)
		m.prompt.Show("Gathering participations", result, err)
	case 5:
		result, err := m.clubStudents.ReadAll(ctx)
		m.prompt.Show("Club memberships", result, err)
	case 6:
		result, err := m.gatheringStudents.ReadAll(ctx)
		m.prompt.Show("Gathering participations", result, err)
	}
	return nil
}

func (m *StudentMenu) create(ctx context.Context) error {
	name, err := m.prompt.Line("name")
	if err != nil {
		return err
	}
	department, err := m.prompt.Line("department")
	if err != nil {
		return err
	}
	student, err := m.students.Create(ctx, service.CreateStudentRequest{Name: name, Department: department})
	if err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	m.prompt.Say("student %d created", student.ID)
	return nil
}

func (m *StudentMenu) delete(ctx context.Context) error {
	id, err := m.prompt.Int("student id")
	if err != nil {
		return err
	}
	m.prompt.Done(m.students.Delete(ctx, id), "student %d deleted", id)
	return nil
}

func (m *StudentMenu) updateName(ctx context.Context) error {
	id, err := m.prompt.Int("student id")
	if err != nil {
		return err
	}
	name, err := m.prompt.Line("new name")
	if err != nil {
		return err
	}
	m.prompt.Done(m.students.UpdateName(ctx, id, name), "student %d renamed", id)
	return nil
}
