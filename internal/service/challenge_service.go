package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

// ChallengeService runs the eco-challenge review workflow: students submit,
// reviewers approve or reject exactly once, approval credits the student's
// points account in the same transaction as the status transition.
type ChallengeService struct {
	submissionRepo repository.SubmissionRepository
	userRepo       repository.UserRepository
	pointsService  *PointsService
	emailService   EmailService
	db             *gorm.DB
}

// NewChallengeService creates a new challenge service. emailService may be
// nil; review decisions are then not mailed.
func NewChallengeService(
	submissionRepo repository.SubmissionRepository,
	userRepo repository.UserRepository,
	pointsService *PointsService,
	emailService EmailService,
	db *gorm.DB,
) *ChallengeService {
	return &ChallengeService{
		submissionRepo: submissionRepo,
		userRepo:       userRepo,
		pointsService:  pointsService,
		emailService:   emailService,
		db:             db,
	}
}

// Submit creates a PENDING submission for a student. Only students may
// submit; the point value must be at least 1.
func (s *ChallengeService) Submit(studentID uint, title string, pointValue int, description, imageURL string) (*entity.ChallengeSubmission, error) {
	student, err := s.userRepo.GetByID(studentID)
	if err != nil {
		return nil, fmt.Errorf("student #%d: %w", studentID, err)
	}
	if !student.IsStudent() {
		return nil, fmt.Errorf("%w: only students can submit challenges", apperrors.ErrForbidden)
	}
	if pointValue < 1 {
		return nil, fmt.Errorf("%w: challenge point value %d", apperrors.ErrInvalidAmount, pointValue)
	}

	submission := &entity.ChallengeSubmission{
		StudentID:   student.ID,
		Title:       title,
		PointValue:  pointValue,
		Description: description,
		ImageURL:    imageURL,
		Status:      entity.SubmissionStatusPending,
		SubmittedAt: time.Now(),
	}
	if err := s.submissionRepo.Create(submission); err != nil {
		return nil, fmt.Errorf("failed to create submission: %w", err)
	}

	log.Printf("[ChallengeService.Submit] submission #%d by student #%d worth %d points",
		submission.ID, student.ID, pointValue)
	return submission, nil
}

// ListPending returns submissions awaiting review, oldest first.
func (s *ChallengeService) ListPending() ([]entity.ChallengeSubmission, error) {
	return s.submissionRepo.ListPending()
}

// Review transitions a pending submission to APPROVED or REJECTED, exactly
// once. Only teachers and institution admins may review. On approval the
// points credit commits together with the status transition: if the credit
// fails, the transition rolls back and the submission stays PENDING so the
// review can be retried.
func (s *ChallengeService) Review(submissionID, reviewerID uint, approved bool) (*entity.ChallengeSubmission, error) {
	reviewer, err := s.userRepo.GetByID(reviewerID)
	if err != nil {
		return nil, fmt.Errorf("reviewer #%d: %w", reviewerID, err)
	}
	if !reviewer.IsReviewer() {
		return nil, fmt.Errorf("%w: only teachers can review submissions", apperrors.ErrForbidden)
	}

	var submission *entity.ChallengeSubmission
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		submission, txErr = s.submissionRepo.GetByID(tx, submissionID)
		if txErr != nil {
			return fmt.Errorf("submission #%d: %w", submissionID, txErr)
		}
		if !submission.IsPending() {
			return fmt.Errorf("%w: submission #%d is %s", apperrors.ErrAlreadyReviewed, submissionID, submission.Status)
		}

		status := entity.SubmissionStatusRejected
		if approved {
			status = entity.SubmissionStatusApproved
		}
		if txErr = s.submissionRepo.MarkReviewed(tx, submissionID, status, reviewer.ID); txErr != nil {
			return txErr
		}

		if approved {
			if txErr = s.pointsService.AddInTx(tx, submission.StudentID, submission.PointValue); txErr != nil {
				return fmt.Errorf("%w: submission #%d: %v", apperrors.ErrRewardCreditFailed, submissionID, txErr)
			}
		}

		submission, txErr = s.submissionRepo.GetByID(tx, submissionID)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[ChallengeService.Review] submission #%d reviewed by user #%d: %s",
		submissionID, reviewer.ID, submission.Status)
	s.notifyStudent(submission)
	return submission, nil
}

// notifyStudent mails the review decision best-effort after the commit.
// Failures are logged, never surfaced.
func (s *ChallengeService) notifyStudent(submission *entity.ChallengeSubmission) {
	if s.emailService == nil {
		return
	}
	student, err := s.userRepo.GetByID(submission.StudentID)
	if err != nil {
		log.Printf("[ChallengeService.notifyStudent] failed to load student #%d: %v", submission.StudentID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.emailService.SendReviewDecision(ctx, student.Email, submission.Title, submission.Status, submission.PointValue); err != nil {
		log.Printf("[ChallengeService.notifyStudent] failed to mail review decision for submission #%d: %v", submission.ID, err)
	}
}
