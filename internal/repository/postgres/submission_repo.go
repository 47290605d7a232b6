package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

// SubmissionRepo implements repository.SubmissionRepository
type SubmissionRepo struct {
	db *gorm.DB
}

// NewSubmissionRepo creates a new challenge submission repository
func NewSubmissionRepo(db *gorm.DB) *SubmissionRepo {
	return &SubmissionRepo{db: db}
}

// Create inserts a new pending submission
func (r *SubmissionRepo) Create(submission *entity.ChallengeSubmission) error {
	return r.db.Create(submission).Error
}

// GetByID returns a submission by ID inside tx
func (r *SubmissionRepo) GetByID(tx *gorm.DB, id uint) (*entity.ChallengeSubmission, error) {
	var submission entity.ChallengeSubmission
	err := tx.First(&submission, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &submission, nil
}

// ListPending returns pending submissions, oldest first
func (r *SubmissionRepo) ListPending() ([]entity.ChallengeSubmission, error) {
	var submissions []entity.ChallengeSubmission
	err := r.db.Where("status = ?", entity.SubmissionStatusPending).
		Order("submitted_at ASC, id ASC").
		Find(&submissions).Error
	return submissions, err
}

// MarkReviewed transitions the submission out of PENDING inside tx. The
// status = PENDING guard makes the transition happen exactly once:
// RowsAffected == 0 means another reviewer got there first.
func (r *SubmissionRepo) MarkReviewed(tx *gorm.DB, id uint, status string, reviewerID uint) error {
	now := time.Now()
	result := tx.Model(&entity.ChallengeSubmission{}).
		Where("id = ? AND status = ?", id, entity.SubmissionStatusPending).
		Updates(map[string]interface{}{
			"status":         status,
			"reviewed_by_id": reviewerID,
			"reviewed_at":    now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark submission #%d reviewed: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: submission #%d", apperrors.ErrAlreadyReviewed, id)
	}
	return nil
}
