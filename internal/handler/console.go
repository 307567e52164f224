package handler

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/service"
)

// Services bundles what the console drives.
type Services struct {
	Students          *service.StudentService
	Professors        *service.ProfessorService
	Clubs             *service.ClubService
	Gatherings        *service.GatheringService
	ClubStudents      *service.ClubStudentService
	GatheringStudents *service.GatheringStudentService
	Metrics           *service.MetricsService
	Export            *service.ExportService
}

// Console is the root menu of the interactive front-end.
type Console struct {
	prompt     *Prompt
	students   *StudentMenu
	professors *ProfessorMenu
	clubs      *ClubMenu
	reports    *ReportMenu
	logger     *zap.Logger
}

// NewConsole wires every menu onto in and out.
func NewConsole(in io.Reader, out io.Writer, svc Services, logger *zap.Logger) *Console {
	if logger == nil {
		logger = zap.NewNop()
	}
	prompt := NewPrompt(in, out, logger)
	activities := NewActivityMenu(prompt, svc.Clubs, svc.Gatherings)
	return &Console{
		prompt:     prompt,
		students:   NewStudentMenu(prompt, svc.Students, svc.ClubStudents, svc.GatheringStudents),
		professors: NewProfessorMenu(prompt, svc.Professors),
		clubs:      NewClubMenu(prompt, svc.Clubs, activities),
		reports:    NewReportMenu(prompt, svc.Metrics, svc.Export),
		logger:     logger,
	}
}

// Run serves the root menu until the user quits or input ends.
func (c *Console) Run(ctx context.Context) error {
	c.logger.Info("console started")
	defer c.logger.Info("console stopped")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := c.prompt.Choose("Main",
			option{1, "Club"},
			option{2, "Student"},
			option{3, "Professor"},
			option{4, "Statistics"},
			option{5, "Export last result"},
			option{0, "Quit"},
		)
		if err == nil {
			switch choice {
			case 1:
				err = c.clubs.Run(ctx)
			case 2:
				err = c.students.Run(ctx)
			case 3:
				err = c.professors.Run(ctx)
			case 4:
				c.reports.Statistics()
			case 5:
				err = c.reports.Export(ctx)
			case 0:
				return nil
			}
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
