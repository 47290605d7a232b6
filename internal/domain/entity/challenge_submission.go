package entity

import (
	"time"
)

// Challenge submission statuses. PENDING is initial; APPROVED and REJECTED
// are terminal.
const (
	SubmissionStatusPending  = "PENDING"
	SubmissionStatusApproved = "APPROVED"
	SubmissionStatusRejected = "REJECTED"
)

// ChallengeSubmission is a student's real-world eco-challenge awaiting
// review. It transitions exactly once out of PENDING; approval credits the
// student's points account with PointValue.
type ChallengeSubmission struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	StudentID    uint       `gorm:"not null;index" json:"student_id"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	PointValue   int        `gorm:"not null" json:"point_value"`
	Description  string     `gorm:"size:1000;not null;default:''" json:"description"`
	ImageURL     string     `gorm:"size:500;not null;default:''" json:"image_url"`
	Status       string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submitted_at"`
	ReviewedByID *uint      `gorm:"index" json:"reviewed_by,omitempty"`
	ReviewedAt   *time.Time `gorm:"type:timestamp" json:"reviewed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName sets the table name for GORM
func (ChallengeSubmission) TableName() string {
	return "challenge_submissions"
}

// IsPending reports whether the submission still awaits review.
func (s *ChallengeSubmission) IsPending() bool {
	return s.Status == SubmissionStatusPending
}
