package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"campus-lms/backend/internal/dto"
	"campus-lms/backend/internal/model"
	apperr "campus-lms/backend/pkg/errors"
	"campus-lms/backend/pkg/storage"
)

func setupSubmission(t *testing.T) (*fixture, int64) {
	t.Helper()
	f := newFixture(nil, nil)
	f.addCourse("CS101", "Intro to CS", "Dr. Motletle")
	f.addStudent("s1", "Thabo")
	f.enroll("s1", "CS101")
	return f, f.addAssignment("CS101", "Essay 1", 100)
}

func TestSubmit_Success(t *testing.T) {
	f, aid := setupSubmission(t)

	resp, err := f.svc.Submission.Submit(context.Background(), "s1", &dto.SubmitRequest{
		AssignmentID: aid,
		SourcePath:   "/home/thabo/essay.pdf",
	})
	if err != nil {
		t.Fatalf("submit should succeed: %v", err)
	}
	if resp.Grade != nil || resp.Published {
		t.Error("new submission must be ungraded and unpublished")
	}
	if !f.files.has(resp.FilePath) {
		t.Errorf("file %s should be stored", resp.FilePath)
	}

	status, err := f.svc.Submission.StatusFor(context.Background(), "s1", aid)
	if err != nil {
		t.Fatal(err)
	}
	if status != model.StatusSubmitted {
		t.Errorf("expected Submitted, got %s", status)
	}
}

func TestSubmit_Twice(t *testing.T) {
	f, aid := setupSubmission(t)
	req := &dto.SubmitRequest{AssignmentID: aid, SourcePath: "essay.pdf"}

	if _, err := f.svc.Submission.Submit(context.Background(), "s1", req); err != nil {
		t.Fatal(err)
	}
	_, err := f.svc.Submission.Submit(context.Background(), "s1", req)
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Errorf("expected ErrAlreadySubmitted, got %v", err)
	}
	if len(f.db.submissions) != 1 {
		t.Errorf("expected one row, got %d", len(f.db.submissions))
	}
}

func TestSubmit_NotEnrolled(t *testing.T) {
	f, aid := setupSubmission(t)
	f.addStudent("s2", "Lerato")

	_, err := f.svc.Submission.Submit(context.Background(), "s2", &dto.SubmitRequest{AssignmentID: aid, SourcePath: "essay.pdf"})
	if !errors.Is(err, ErrNotEnrolled) {
		t.Errorf("expected ErrNotEnrolled, got %v", err)
	}
	if apperr.KindOf(err) != apperr.KindPermission {
		t.Errorf("expected permission kind, got %s", apperr.KindOf(err))
	}
	if len(f.files.saved) != 0 {
		t.Error("no file should be stored")
	}
}

func TestSubmit_UnknownAssignment(t *testing.T) {
	f, _ := setupSubmission(t)

	_, err := f.svc.Submission.Submit(context.Background(), "s1", &dto.SubmitRequest{AssignmentID: 999, SourcePath: "essay.pdf"})
	if !errors.Is(err, ErrAssignmentNotFound) {
		t.Errorf("expected ErrAssignmentNotFound, got %v", err)
	}
}

func TestSubmit_FileStoreFailure(t *testing.T) {
	f, aid := setupSubmission(t)
	f.files.failErr = errors.New("disk full")

	_, err := f.svc.Submission.Submit(context.Background(), "s1", &dto.SubmitRequest{AssignmentID: aid, SourcePath: "essay.pdf"})
	if err == nil {
		t.Fatal("expected an error")
	}
	if len(f.db.submissions) != 0 {
		t.Error("no row should be written when the file cannot be stored")
	}
}

func TestUnsubmit_ThenResubmit(t *testing.T) {
	f, aid := setupSubmission(t)
	req := &dto.SubmitRequest{AssignmentID: aid, SourcePath: "essay.pdf"}

	first, err := f.svc.Submission.Submit(context.Background(), "s1", req)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Submission.Unsubmit(context.Background(), aid, "s1"); err != nil {
		t.Fatalf("unsubmit should succeed: %v", err)
	}
	if f.files.has(first.FilePath) {
		t.Error("file should be removed with the row")
	}

	status, _ := f.svc.Submission.StatusFor(context.Background(), "s1", aid)
	if status != model.StatusNotSubmitted {
		t.Errorf("expected Not Submitted, got %s", status)
	}

	if _, err := f.svc.Submission.Submit(context.Background(), "s1", req); err != nil {
		t.Errorf("resubmit should succeed: %v", err)
	}
}

func TestUnsubmit_NothingToRemove(t *testing.T) {
	f, aid := setupSubmission(t)
	if err := f.svc.Submission.Unsubmit(context.Background(), aid, "s1"); err != nil {
		t.Errorf("unsubmit without a row should be a no-op, got %v", err)
	}
}

func TestListPublishedGrades_OnlyPublished(t *testing.T) {
	f, aid := setupSubmission(t)
	other := f.addAssignment("CS101", "Essay 2", 50)
	published := f.addSubmission(aid, "s1")
	hidden := f.addSubmission(other, "s1")

	ctx := context.Background()
	if _, err := f.svc.Grading.Grade(ctx, &dto.GradeRequest{SubmissionID: published, Score: 80, Feedback: "good"}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Grading.Grade(ctx, &dto.GradeRequest{SubmissionID: hidden, Score: 40}); err != nil {
		t.Fatal(err)
	}
	if err := f.svc.Grading.Publish(ctx, published); err != nil {
		t.Fatal(err)
	}

	grades, err := f.svc.Submission.ListPublishedGrades(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(grades) != 1 {
		t.Fatalf("expected one visible grade, got %d", len(grades))
	}
	g := grades[0]
	if g.Grade != 80 || g.MaxPoints != 100 || g.Feedback != "good" || g.AssignmentTitle != "Essay 1" {
		t.Errorf("unexpected grade: %+v", g)
	}
}

func TestSubmit_LosingRaceKeepsWinnersFile(t *testing.T) {
	f, aid := setupSubmission(t)
	root := t.TempDir()
	submissions := NewSubmissionService(f.repo, storage.New(filepath.Join(root, "store")), zap.NewNop())
	ctx := context.Background()

	src := writeFile(t, filepath.Join(root, "essay.pdf"), "final draft")
	winner, err := submissions.Submit(ctx, "s1", &dto.SubmitRequest{AssignmentID: aid, SourcePath: src})
	if err != nil {
		t.Fatal(err)
	}

	// the second caller checked before the first insert landed
	f.repo.Submission.(*mockSubmissionRepo).staleReads = true
	_, err = submissions.Submit(ctx, "s1", &dto.SubmitRequest{AssignmentID: aid, SourcePath: src})
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted from the unique pair, got %v", err)
	}

	if data, err := os.ReadFile(winner.FilePath); err != nil || string(data) != "final draft" {
		t.Errorf("winning row's file must survive: %q %v", data, err)
	}
	entries, _ := os.ReadDir(filepath.Join(root, "store"))
	if len(entries) != 1 {
		t.Errorf("only the winner's file should remain, found %d", len(entries))
	}
}

func TestSubmissionGet(t *testing.T) {
	f, aid := setupSubmission(t)
	id := f.addSubmission(aid, "s1")

	sub, err := f.svc.Submission.Get(context.Background(), id)
	if err != nil {
		t.Fatal(err)
	}
	if sub.AssignmentID != aid || sub.StudentID != "s1" || sub.StudentName != "Thabo" {
		t.Errorf("unexpected submission: %+v", sub)
	}
	if _, err := f.svc.Submission.Get(context.Background(), 999); !errors.Is(err, ErrSubmissionNotFound) {
		t.Errorf("expected ErrSubmissionNotFound, got %v", err)
	}
}
