package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
)

var (
	ErrExportNoAssignments = apperr.New(apperr.KindNotFound, "course has no assignments to export")
	ErrExportGenerateFail  = apperr.New(apperr.KindInternal, "failed to generate gradebook")
)

// ExportService gradebook export
//
// Layout:
//   - sheet "Summary": one row per enrolled student, one column per assignment
//   - one sheet per assignment: student, submitted at, grade, max points, published, feedback
type ExportService interface {
	ExportGradebook(ctx context.Context, courseCode string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

var gradebookHeader = []string{"Student", "Submitted At", "Grade", "Max Points", "Published", "Feedback"}

// ═══════════════════════════════════════════════════════════
// ExportGradebook
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportGradebook(ctx context.Context, courseCode string) (*bytes.Buffer, string, error) {
	course, err := getCourse(ctx, s.repo, courseCode)
	if err != nil {
		return nil, "", err
	}

	assignments, err := s.repo.Assignment.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list assignments failed", zap.Error(err))
		return nil, "", apperr.Classify(err)
	}
	if len(assignments) == 0 {
		return nil, "", ErrExportNoAssignments.WithField("course_code", courseCode)
	}

	submissions, err := s.repo.Submission.ListByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list course submissions failed", zap.Error(err))
		return nil, "", apperr.Classify(err)
	}
	studentIDs, err := s.repo.Enrollment.ListStudentIDsByCourse(ctx, courseCode)
	if err != nil {
		s.logger.Error("list course students failed", zap.Error(err))
		return nil, "", apperr.Classify(err)
	}

	// assignment id -> submissions; (assignment, student) -> submission
	byAssignment := make(map[int64][]model.Submission)
	byPair := make(map[string]*model.Submission)
	names := make(map[string]string)
	for i := range submissions {
		sub := submissions[i]
		byAssignment[sub.AssignmentID] = append(byAssignment[sub.AssignmentID], sub)
		byPair[pairKey(sub.AssignmentID, sub.StudentID)] = &submissions[i]
		if sub.Student != nil {
			names[sub.StudentID] = sub.Student.FullName
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── summary ──
	summary := "Summary"
	idx, _ := f.NewSheet(summary)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(summary, "A1", fmt.Sprintf("%s %s (%s)", course.CourseCode, course.CourseName, course.Teacher))
	f.SetCellValue(summary, "A2", "Student")
	f.SetColWidth(summary, "A", "A", 28)
	for i, a := range assignments {
		col := colName(2 + i)
		f.SetCellValue(summary, cell(col, 2), fmt.Sprintf("%s (/%d)", a.Title, a.MaxPoints))
		f.SetColWidth(summary, col, col, 18)
	}
	f.SetCellStyle(summary, "A2", cell(colName(1+len(assignments)), 2), headerStyle)

	for r, sid := range studentIDs {
		row := 3 + r
		name := names[sid]
		if name == "" {
			name = sid
		}
		f.SetCellValue(summary, cell("A", row), name)
		for i, a := range assignments {
			sub := byPair[pairKey(a.ID, sid)]
			f.SetCellValue(summary, cell(colName(2+i), row), summaryCell(sub))
		}
	}

	// ── one sheet per assignment ──
	for _, a := range assignments {
		sheet := sheetName(a)
		if _, err := f.NewSheet(sheet); err != nil {
			s.logger.Error("create sheet failed", zap.String("sheet", sheet), zap.Error(err))
			return nil, "", ErrExportGenerateFail.Wrap(err)
		}
		for i, h := range gradebookHeader {
			f.SetCellValue(sheet, cell(colName(1+i), 1), h)
		}
		f.SetCellStyle(sheet, "A1", cell(colName(len(gradebookHeader)), 1), headerStyle)
		f.SetColWidth(sheet, "A", "B", 22)
		f.SetColWidth(sheet, "F", "F", 40)

		for r, sub := range byAssignment[a.ID] {
			row := 2 + r
			name := sub.StudentID
			if sub.Student != nil {
				name = sub.Student.FullName
			}
			f.SetCellValue(sheet, cell("A", row), name)
			f.SetCellValue(sheet, cell("B", row), sub.SubmissionDate.Format(timeLayout))
			if sub.Grade != nil {
				f.SetCellValue(sheet, cell("C", row), *sub.Grade)
			}
			f.SetCellValue(sheet, cell("D", row), a.MaxPoints)
			f.SetCellValue(sheet, cell("E", row), yesNo(sub.Published))
			if sub.Feedback != nil {
				f.SetCellValue(sheet, cell("F", row), *sub.Feedback)
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail.Wrap(err)
	}

	return buf, fmt.Sprintf("gradebook_%s.xlsx", course.CourseCode), nil
}

// ── helpers ──

func pairKey(assignmentID int64, studentID string) string {
	return fmt.Sprintf("%d:%s", assignmentID, studentID)
}

func summaryCell(sub *model.Submission) string {
	switch {
	case sub == nil:
		return "-"
	case sub.Grade == nil:
		return "submitted"
	default:
		return fmt.Sprintf("%d", *sub.Grade)
	}
}

// sheet names are capped at 31 chars and must be unique
func sheetName(a model.Assignment) string {
	name := fmt.Sprintf("%d %s", a.ID, a.Title)
	r := []rune(name)
	if len(r) > 31 {
		r = r[:31]
	}
	return sanitizeSheet(string(r))
}

func sanitizeSheet(name string) string {
	out := []rune(name)
	for i, c := range out {
		switch c {
		case ':', '\\', '/', '?', '*', '[', ']':
			out[i] = '_'
		}
	}
	return string(out)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func colName(n int) string {
	name, _ := excelize.ColumnNumberToName(n)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
