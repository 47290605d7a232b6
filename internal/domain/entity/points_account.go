package entity

import (
	"time"
)

// Levels derived from a points balance. Thresholds are inclusive lower
// bounds, evaluated highest-first.
const (
	LevelBeginner = "BEGINNER"
	LevelExplorer = "EXPLORER"
	LevelEcoHero  = "ECO_HERO"

	ExplorerThreshold = 100
	EcoHeroThreshold  = 300
)

// LevelForPoints derives the level tier for a points balance.
func LevelForPoints(points int) string {
	if points >= EcoHeroThreshold {
		return LevelEcoHero
	}
	if points >= ExplorerThreshold {
		return LevelExplorer
	}
	return LevelBeginner
}

// PointsAccount owns a student's eco-points balance. One account per student,
// created lazily on first access; the balance never goes negative.
type PointsAccount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Balance   int       `gorm:"not null;default:0" json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for GORM
func (PointsAccount) TableName() string {
	return "points_accounts"
}

// Level derives the level tier for the current balance.
func (a *PointsAccount) Level() string {
	return LevelForPoints(a.Balance)
}
