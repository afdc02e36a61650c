package service

import (
	"context"
	"testing"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
)

func TestSeed_Idempotent(t *testing.T) {
	f := newFixture(nil, nil)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := f.svc.Seed.Seed(ctx); err != nil {
			t.Fatalf("seed run %d failed: %v", i+1, err)
		}
	}

	if len(f.db.courses) != len(defaultCourses) {
		t.Errorf("expected %d courses, got %d", len(defaultCourses), len(f.db.courses))
	}
	if len(f.db.users) != len(defaultLecturers) {
		t.Errorf("expected %d lecturers, got %d", len(defaultLecturers), len(f.db.users))
	}
	for _, u := range f.db.users {
		if u.Role != model.RoleLecturer {
			t.Errorf("%s should be a lecturer", u.Username)
		}
	}

	resp, err := f.svc.Auth.Login(ctx, &dto.LoginRequest{Username: "kmotletle", Password: "kmotletle"})
	if err != nil {
		t.Fatalf("seeded lecturer should log in: %v", err)
	}
	courses, _ := f.svc.Course.ListForLecturer(ctx, resp.User.FullName)
	if len(courses) != 2 {
		t.Errorf("Dr. Motletle should teach 2 seeded courses, got %d", len(courses))
	}
}
