package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"campus-lms/backend/internal/model"
	"campus-lms/backend/internal/repository"
	apperr "campus-lms/backend/pkg/errors"
)

const calendarProductID = "-//campus-lms//due dates//EN"

// CalendarService due-date calendar for a student's enrolled courses.
// One all-day VEVENT per assignment; the UID is stable so re-imports update in place.
type CalendarService interface {
	StudentCalendar(ctx context.Context, studentID string) (*bytes.Buffer, string, error)
}

type calendarService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewCalendarService creates a CalendarService
func NewCalendarService(repo *repository.Repository, logger *zap.Logger) CalendarService {
	return &calendarService{repo: repo, logger: logger, now: time.Now}
}

func (s *calendarService) StudentCalendar(ctx context.Context, studentID string) (*bytes.Buffer, string, error) {
	assignments, err := s.repo.Assignment.ListForStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list student assignments failed", zap.Error(err))
		return nil, "", apperr.Classify(err)
	}
	subs, err := s.repo.Submission.ListByStudent(ctx, studentID)
	if err != nil {
		s.logger.Error("list student submissions failed", zap.Error(err))
		return nil, "", apperr.Classify(err)
	}
	submitted := make(map[int64]bool, len(subs))
	for _, sub := range subs {
		submitted[sub.AssignmentID] = true
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetName("Assignment due dates")

	stamp := s.now().UTC()
	for i := range assignments {
		a := &assignments[i]
		status := model.StatusNotSubmitted
		if submitted[a.ID] {
			status = model.StatusSubmitted
		}

		event := cal.AddEvent(fmt.Sprintf("assignment-%d@campus-lms", a.ID))
		event.SetDtStampTime(stamp)
		event.SetAllDayStartAt(a.DueDate)
		event.SetAllDayEndAt(a.DueDate.AddDate(0, 0, 1))
		event.SetSummary(fmt.Sprintf("%s: %s due", a.CourseCode, a.Title))
		event.SetDescription(fmt.Sprintf("%s\nMax points: %d\nStatus: %s", a.Description, a.MaxPoints, status))
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "due_dates.ics", nil
}
