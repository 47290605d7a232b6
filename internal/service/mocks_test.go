package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
)

// newTestDB builds a *gorm.DB backed by sqlmock. Services only use it to open
// transactions around mocked repositories, so tests expect Begin/Commit pairs
// and nothing else.
func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

// MockUserRepo implements repository.UserRepository
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*entity.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*entity.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) GetByUsername(username string) (*entity.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *entity.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockQuizRepo implements repository.QuizRepository
type MockQuizRepo struct {
	mock.Mock
}

func (m *MockQuizRepo) Create(quiz *entity.Quiz) error {
	args := m.Called(quiz)
	return args.Error(0)
}

func (m *MockQuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) GetWithQuestions(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepo) List(limit, offset int) ([]entity.Quiz, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockQuizRepo) SaveDefinition(quiz *entity.Quiz, removedQuestionIDs, removedOptionIDs []uint) error {
	args := m.Called(quiz, removedQuestionIDs, removedOptionIDs)
	return args.Error(0)
}

func (m *MockQuizRepo) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockAttemptRepo implements repository.AttemptRepository
type MockAttemptRepo struct {
	mock.Mock
}

func (m *MockAttemptRepo) CountByStudentAndQuiz(tx *gorm.DB, studentID, quizID uint) (int64, error) {
	args := m.Called(tx, studentID, quizID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepo) Create(tx *gorm.DB, attempt *entity.QuizAttempt) error {
	args := m.Called(tx, attempt)
	return args.Error(0)
}

func (m *MockAttemptRepo) GetHistory(studentID, quizID uint) ([]entity.QuizAttempt, error) {
	args := m.Called(studentID, quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizAttempt), args.Error(1)
}

// MockPointsRepo implements repository.PointsRepository
type MockPointsRepo struct {
	mock.Mock
}

func (m *MockPointsRepo) Create(tx *gorm.DB, account *entity.PointsAccount) error {
	args := m.Called(tx, account)
	return args.Error(0)
}

func (m *MockPointsRepo) GetByUserID(tx *gorm.DB, userID uint) (*entity.PointsAccount, error) {
	args := m.Called(tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PointsAccount), args.Error(1)
}

func (m *MockPointsRepo) Credit(tx *gorm.DB, userID uint, amount int) error {
	args := m.Called(tx, userID, amount)
	return args.Error(0)
}

func (m *MockPointsRepo) Debit(tx *gorm.DB, userID uint, amount int) error {
	args := m.Called(tx, userID, amount)
	return args.Error(0)
}

func (m *MockPointsRepo) Top(limit int) ([]repository.LeaderboardEntry, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.LeaderboardEntry), args.Error(1)
}

// MockSubmissionRepo implements repository.SubmissionRepository
type MockSubmissionRepo struct {
	mock.Mock
}

func (m *MockSubmissionRepo) Create(submission *entity.ChallengeSubmission) error {
	args := m.Called(submission)
	return args.Error(0)
}

func (m *MockSubmissionRepo) GetByID(tx *gorm.DB, id uint) (*entity.ChallengeSubmission, error) {
	args := m.Called(tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ChallengeSubmission), args.Error(1)
}

func (m *MockSubmissionRepo) ListPending() ([]entity.ChallengeSubmission, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ChallengeSubmission), args.Error(1)
}

func (m *MockSubmissionRepo) MarkReviewed(tx *gorm.DB, id uint, status string, reviewerID uint) error {
	args := m.Called(tx, id, status, reviewerID)
	return args.Error(0)
}

// MockCacheRepo implements repository.CacheRepository
type MockCacheRepo struct {
	mock.Mock
}

func (m *MockCacheRepo) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepo) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepo) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

// MockEmailService implements EmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendReviewDecision(ctx context.Context, toEmail, challengeTitle, status string, pointValue int) error {
	args := m.Called(ctx, toEmail, challengeTitle, status, pointValue)
	return args.Error(0)
}
