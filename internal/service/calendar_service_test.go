package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	ics "github.com/arran4/golang-ical"
)

func TestStudentCalendar(t *testing.T) {
	f := newFixture(nil, nil)
	f.addCourse("CS101", "Intro to CS", "Dr. Motletle")
	f.addCourse("MA201", "Linear Algebra", "Dr. Nkosi")
	f.addStudent("s1", "Thabo")
	f.enroll("s1", "CS101")
	quiz := f.addAssignment("CS101", "Quiz", 50)
	essay := f.addAssignment("CS101", "Essay", 100)
	f.addAssignment("MA201", "Matrices", 100)
	f.addSubmission(quiz, "s1")

	buf, name, err := f.svc.Calendar.StudentCalendar(context.Background(), "s1")
	if err != nil {
		t.Fatalf("calendar should build: %v", err)
	}
	if name != "due_dates.ics" {
		t.Errorf("unexpected file name %q", name)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("calendar should parse: %v", err)
	}
	events := cal.Events()
	if len(events) != 2 {
		t.Fatalf("only enrolled courses expected, got %d events", len(events))
	}

	byUID := make(map[string]*ics.VEvent, len(events))
	for _, e := range events {
		byUID[e.Id()] = e
	}
	e, ok := byUID[fmt.Sprintf("assignment-%d@campus-lms", quiz)]
	if !ok {
		t.Fatalf("quiz event missing, have %v", byUID)
	}
	if got := e.GetProperty(ics.ComponentPropertySummary).Value; got != "CS101: Quiz due" {
		t.Errorf("summary = %q", got)
	}
	if got := e.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20250401" {
		t.Errorf("all-day start = %q", got)
	}
	if got := e.GetProperty(ics.ComponentPropertyDescription).Value; !strings.Contains(got, "Status: Submitted") {
		t.Errorf("description should carry submission status, got %q", got)
	}
	if got := byUID[fmt.Sprintf("assignment-%d@campus-lms", essay)].GetProperty(ics.ComponentPropertyDescription).Value; !strings.Contains(got, "Status: Not Submitted") {
		t.Errorf("essay should be not submitted, got %q", got)
	}
}

func TestStudentCalendar_NoCourses(t *testing.T) {
	f := newFixture(nil, nil)
	f.addStudent("s1", "Thabo")

	buf, _, err := f.svc.Calendar.StudentCalendar(context.Background(), "s1")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "BEGIN:VCALENDAR") {
		t.Error("empty calendar should still be a valid VCALENDAR")
	}
	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("no events expected")
	}
}
