package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// SubmissionRepository defines persistence operations for challenge
// submissions.
type SubmissionRepository interface {
	Create(submission *entity.ChallengeSubmission) error
	GetByID(tx *gorm.DB, id uint) (*entity.ChallengeSubmission, error)
	// ListPending returns pending submissions ordered by submission time
	// ascending (oldest first).
	ListPending() ([]entity.ChallengeSubmission, error)
	// MarkReviewed transitions the submission out of PENDING inside tx. The
	// update is guarded by status = PENDING; a lost race surfaces as
	// ErrAlreadyReviewed.
	MarkReviewed(tx *gorm.DB, id uint, status string, reviewerID uint) error
}
