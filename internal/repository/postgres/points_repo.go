package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

// PointsRepo implements repository.PointsRepository
type PointsRepo struct {
	db *gorm.DB
}

// NewPointsRepo creates a new points account repository
func NewPointsRepo(db *gorm.DB) *PointsRepo {
	return &PointsRepo{db: db}
}

// Create inserts a zero-balance account. The insert carries ON CONFLICT
// (user_id) DO NOTHING so a lost creation race never raises a constraint
// error: raising one inside an open transaction would abort it and make the
// caller's follow-up re-read fail. Zero affected rows means another writer
// already owns the account.
func (r *PointsRepo) Create(tx *gorm.DB, account *entity.PointsAccount) error {
	result := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(account)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user #%d", repository.ErrDuplicateAccount, account.UserID)
	}
	return nil
}

// GetByUserID returns the account owned by the given user
func (r *PointsRepo) GetByUserID(tx *gorm.DB, userID uint) (*entity.PointsAccount, error) {
	var account entity.PointsAccount
	err := tx.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Credit atomically increments the balance
func (r *PointsRepo) Credit(tx *gorm.DB, userID uint, amount int) error {
	result := tx.Model(&entity.PointsAccount{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Debit atomically decrements the balance. The balance >= amount guard keeps
// the balance non-negative; RowsAffected == 0 means the guard rejected it.
func (r *PointsRepo) Debit(tx *gorm.DB, userID uint, amount int) error {
	result := tx.Model(&entity.PointsAccount{}).
		Where("user_id = ? AND balance >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance - ?", amount),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user #%d, amount %d", apperrors.ErrInsufficientBalance, userID, amount)
	}
	return nil
}

// Top returns the highest balances joined with user names. Ties order by
// user_id ascending so the ranking is deterministic.
func (r *PointsRepo) Top(limit int) ([]repository.LeaderboardEntry, error) {
	var entries []repository.LeaderboardEntry
	err := r.db.Model(&entity.PointsAccount{}).
		Select("points_accounts.user_id AS user_id, users.name AS name, points_accounts.balance AS points").
		Joins("JOIN users ON users.id = points_accounts.user_id").
		Order("points_accounts.balance DESC, points_accounts.user_id ASC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
