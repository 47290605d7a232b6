package repository

import (
	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
)

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// PointsRepository defines persistence operations for points accounts.
type PointsRepository interface {
	// Create inserts a zero-balance account. A concurrent insert for the same
	// user surfaces as ErrDuplicateAccount via the user_id unique constraint.
	Create(tx *gorm.DB, account *entity.PointsAccount) error
	GetByUserID(tx *gorm.DB, userID uint) (*entity.PointsAccount, error)
	// Credit atomically increments the balance. Returns ErrNotFound when no
	// account row exists.
	Credit(tx *gorm.DB, userID uint, amount int) error
	// Debit atomically decrements the balance, guarded by balance >= amount.
	// Returns ErrInsufficientBalance when the guard rejects the update.
	Debit(tx *gorm.DB, userID uint, amount int) error
	// Top returns the highest balances joined with user names, descending by
	// points; ties order by user_id ascending (deterministic across runs).
	Top(limit int) ([]LeaderboardEntry, error)
}
