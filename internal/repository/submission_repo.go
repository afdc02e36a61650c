package repository

import (
	"context"

	"gorm.io/gorm"

	"campus-lms/backend/internal/model"
)

// SubmissionRepository submission ledger, grading and publication data access
type SubmissionRepository interface {
	Create(ctx context.Context, submission *model.Submission) error
	GetByID(ctx context.Context, id int64) (*model.Submission, error)
	GetByAssignmentAndStudent(ctx context.Context, assignmentID int64, studentID string) (*model.Submission, error)
	DeleteByAssignmentAndStudent(ctx context.Context, assignmentID int64, studentID string) (int64, error)
	ListByAssignment(ctx context.Context, assignmentID int64) ([]model.Submission, error)
	ListByCourse(ctx context.Context, courseCode string) ([]model.Submission, error)
	ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error)
	ListPublishedByStudent(ctx context.Context, studentID string) ([]model.Submission, error)

	UpdateGrade(ctx context.Context, id int64, grade int, feedback *string) error
	// Publish flips unpublished rows among ids; already published rows keep their publish_date
	Publish(ctx context.Context, ids []int64) (int64, error)
	ListPublishableIDsByCourse(ctx context.Context, courseCode string) ([]int64, error)

	ListPendingNotificationIDs(ctx context.Context, studentID string) ([]int64, error)
	MarkNotified(ctx context.Context, studentID string, ids []int64) (int64, error)
}

type submissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates a SubmissionRepository
func NewSubmissionRepo(db *gorm.DB) SubmissionRepository {
	return &submissionRepo{db: db}
}

// ────────────────────── ledger ──────────────────────

func (r *submissionRepo) Create(ctx context.Context, submission *model.Submission) error {
	return r.db.WithContext(ctx).Create(submission).Error
}

func (r *submissionRepo) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Where("id = ?", id).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) GetByAssignmentAndStudent(ctx context.Context, assignmentID int64, studentID string) (*model.Submission, error) {
	var submission model.Submission
	err := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (r *submissionRepo) DeleteByAssignmentAndStudent(ctx context.Context, assignmentID int64, studentID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		Delete(&model.Submission{})
	return res.RowsAffected, res.Error
}

func (r *submissionRepo) ListByAssignment(ctx context.Context, assignmentID int64) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("assignment_id = ?", assignmentID).
		Order("submission_date").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) ListByCourse(ctx context.Context, courseCode string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Preload("Student").
		Joins("JOIN assignments a ON a.id = submissions.assignment_id").
		Where("a.course_code = ?", courseCode).
		Order("submissions.assignment_id, submissions.submission_date").
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) ListByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Find(&submissions).Error
	return submissions, err
}

func (r *submissionRepo) ListPublishedByStudent(ctx context.Context, studentID string) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.db.WithContext(ctx).
		Preload("Assignment").
		Where("student_id = ? AND published = ? AND grade IS NOT NULL", studentID, true).
		Order("publish_date DESC").
		Find(&submissions).Error
	return submissions, err
}

// ────────────────────── grading & publication ──────────────────────

func (r *submissionRepo) UpdateGrade(ctx context.Context, id int64, grade int, feedback *string) error {
	return r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"grade":    grade,
			"feedback": feedback,
		}).Error
}

func (r *submissionRepo) Publish(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id IN ? AND published = ? AND grade IS NOT NULL", ids, false).
		Updates(map[string]interface{}{
			"published":    true,
			"publish_date": gorm.Expr("NOW()"),
		})
	return res.RowsAffected, res.Error
}

func (r *submissionRepo) ListPublishableIDsByCourse(ctx context.Context, courseCode string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Joins("JOIN assignments a ON a.id = submissions.assignment_id").
		Where("a.course_code = ? AND submissions.grade IS NOT NULL AND submissions.published = ?", courseCode, false).
		Order("submissions.id").
		Pluck("submissions.id", &ids).Error
	return ids, err
}

// ────────────────────── notification watermark ──────────────────────

const pendingNotification = "student_id = ? AND published = ? AND grade IS NOT NULL AND (last_notified IS NULL OR last_notified < publish_date)"

func (r *submissionRepo) ListPendingNotificationIDs(ctx context.Context, studentID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where(pendingNotification, studentID, true).
		Order("id").
		Pluck("id", &ids).Error
	return ids, err
}

// MarkNotified advances last_notified on the given rows; the predicate is re-applied
func (r *submissionRepo) MarkNotified(ctx context.Context, studentID string, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&model.Submission{}).
		Where("id IN ?", ids).
		Where(pendingNotification, studentID, true).
		Update("last_notified", gorm.Expr("NOW()"))
	return res.RowsAffected, res.Error
}
