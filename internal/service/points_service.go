package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

const (
	leaderboardCacheKey = "leaderboard:top"
	leaderboardCacheTTL = 30 * time.Second
)

// LeaderboardRow is one leaderboard position with the derived level.
type LeaderboardRow struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
	Level  string `json:"level"`
}

// StudentStats is a student's balance with the derived level.
type StudentStats struct {
	Points int    `json:"points"`
	Level  string `json:"level"`
}

// PointsService owns point-balance mutation: non-negative balances, lazy
// account creation and level derivation.
type PointsService struct {
	pointsRepo repository.PointsRepository
	userRepo   repository.UserRepository
	cacheRepo  repository.CacheRepository
	db         *gorm.DB
}

// NewPointsService creates a new points service. cacheRepo may be nil; the
// leaderboard then always reads from the database.
func NewPointsService(
	pointsRepo repository.PointsRepository,
	userRepo repository.UserRepository,
	cacheRepo repository.CacheRepository,
	db *gorm.DB,
) *PointsService {
	return &PointsService{
		pointsRepo: pointsRepo,
		userRepo:   userRepo,
		cacheRepo:  cacheRepo,
		db:         db,
	}
}

// GetOrCreate returns the student's points account, creating a zero-balance
// one on first access. Two concurrent calls for the same student cannot
// create two accounts: the insert is serialized on the user_id unique
// constraint, and the loser of the race re-reads the winner's row.
func (s *PointsService) GetOrCreate(userID uint) (*entity.PointsAccount, error) {
	if err := s.resolveStudent(userID); err != nil {
		return nil, err
	}
	return s.getOrCreateAccount(s.db, userID)
}

// resolveStudent checks the target of a balance operation exists and is a
// student, so a bad id surfaces as NotFound instead of a constraint error
// from the ledger tables.
func (s *PointsService) resolveStudent(userID uint) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("student #%d: %w", userID, err)
	}
	if !user.IsStudent() {
		return fmt.Errorf("%w: user #%d is not a student", apperrors.ErrForbidden, userID)
	}
	return nil
}

func (s *PointsService) getOrCreateAccount(tx *gorm.DB, userID uint) (*entity.PointsAccount, error) {
	account, err := s.pointsRepo.GetByUserID(tx, userID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	account = &entity.PointsAccount{UserID: userID, Balance: 0}
	if err := s.pointsRepo.Create(tx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			// Lost the creation race; the other writer's account is the
			// account. The insert is conflict-tolerant, so tx is still usable
			// here even when it is an open enclosing transaction.
			return s.pointsRepo.GetByUserID(tx, userID)
		}
		return nil, err
	}
	log.Printf("[PointsService.GetOrCreate] created points account for user #%d", userID)
	return account, nil
}

// Add credits amount to the student's balance and returns the updated
// account. Amounts <= 0 fail with ErrInvalidAmount; an unknown or non-student
// target fails with ErrNotFound / ErrForbidden.
func (s *PointsService) Add(userID uint, amount int) (*entity.PointsAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidAmount, amount)
	}
	if err := s.resolveStudent(userID); err != nil {
		return nil, err
	}

	var account *entity.PointsAccount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getOrCreateAccount(tx, userID); err != nil {
			return err
		}
		if err := s.pointsRepo.Credit(tx, userID, amount); err != nil {
			return err
		}
		var err error
		account, err = s.pointsRepo.GetByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard()
	log.Printf("[PointsService.Add] user #%d credited %d, balance now %d", userID, amount, account.Balance)
	return account, nil
}

// AddInTx credits amount inside a caller-owned transaction. Used by the
// challenge review so the status transition and the credit commit together.
func (s *PointsService) AddInTx(tx *gorm.DB, userID uint, amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: got %d", apperrors.ErrInvalidAmount, amount)
	}
	if _, err := s.getOrCreateAccount(tx, userID); err != nil {
		return err
	}
	return s.pointsRepo.Credit(tx, userID, amount)
}

// Deduct removes amount from the student's balance and returns the updated
// account. Fails with ErrInvalidAmount for amounts <= 0 and with
// ErrInsufficientBalance when the balance cannot cover the amount; the
// balance is untouched on failure.
func (s *PointsService) Deduct(userID uint, amount int) (*entity.PointsAccount, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: got %d", apperrors.ErrInvalidAmount, amount)
	}
	if err := s.resolveStudent(userID); err != nil {
		return nil, err
	}

	var account *entity.PointsAccount
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getOrCreateAccount(tx, userID); err != nil {
			return err
		}
		if err := s.pointsRepo.Debit(tx, userID, amount); err != nil {
			return err
		}
		var err error
		account, err = s.pointsRepo.GetByUserID(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard()
	log.Printf("[PointsService.Deduct] user #%d debited %d, balance now %d", userID, amount, account.Balance)
	return account, nil
}

// Stats returns the student's balance with the derived level, creating the
// account on first access.
func (s *PointsService) Stats(userID uint) (*StudentStats, error) {
	account, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}
	return &StudentStats{
		Points: account.Balance,
		Level:  account.Level(),
	}, nil
}

// Leaderboard returns the top-N balances with names and levels, descending
// by points. Equal balances order by account owner id ascending. Results are
// cached briefly in Redis.
func (s *PointsService) Leaderboard(limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 10
	}

	cacheKey := fmt.Sprintf("%s:%d", leaderboardCacheKey, limit)
	if s.cacheRepo != nil {
		var cached []LeaderboardRow
		if err := s.cacheRepo.GetJSON(cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	entries, err := s.pointsRepo.Top(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}

	rows := make([]LeaderboardRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, LeaderboardRow{
			Name:   e.Name,
			Points: e.Points,
			Level:  entity.LevelForPoints(e.Points),
		})
	}

	if s.cacheRepo != nil {
		if err := s.cacheRepo.SetJSON(cacheKey, rows, leaderboardCacheTTL); err != nil {
			log.Printf("[PointsService.Leaderboard] cache write failed: %v", err)
		}
	}
	return rows, nil
}

func (s *PointsService) invalidateLeaderboard() {
	if s.cacheRepo == nil {
		return
	}
	// Only the default page is invalidated eagerly; other limits expire by TTL.
	if err := s.cacheRepo.Delete(fmt.Sprintf("%s:%d", leaderboardCacheKey, 10)); err != nil {
		log.Printf("[PointsService] leaderboard cache invalidation failed: %v", err)
	}
}
