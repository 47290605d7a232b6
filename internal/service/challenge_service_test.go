package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
)

func TestChallengeService_Submit_Success(t *testing.T) {
	db, _ := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsService := NewPointsService(new(MockPointsRepo), userRepo, nil, db)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)
	submissionRepo.On("Create", mock.AnythingOfType("*entity.ChallengeSubmission")).Return(nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	submission, err := svc.Submit(1, "Plant a tree", 50, "Planted an oak in the schoolyard", "")

	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionStatusPending, submission.Status)
	assert.Equal(t, 50, submission.PointValue)
	assert.False(t, submission.SubmittedAt.IsZero())
	assert.True(t, submission.IsPending())
}

func TestChallengeService_Submit_OnlyStudents(t *testing.T) {
	db, _ := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsService := NewPointsService(new(MockPointsRepo), userRepo, nil, db)

	userRepo.On("GetByID", uint(2)).Return(&entity.User{ID: 2, Role: entity.RoleTeacher}, nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	_, err := svc.Submit(2, "Plant a tree", 50, "", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	submissionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestChallengeService_Submit_PointValueBelowOne(t *testing.T) {
	db, _ := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsService := NewPointsService(new(MockPointsRepo), userRepo, nil, db)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	_, err := svc.Submit(1, "Plant a tree", 0, "", "")

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidAmount))
}

func TestChallengeService_Review_ApproveCreditsPoints(t *testing.T) {
	db, sqlMock := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsRepo := new(MockPointsRepo)
	pointsService := NewPointsService(pointsRepo, userRepo, nil, db)

	reviewer := &entity.User{ID: 5, Role: entity.RoleTeacher}
	pending := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, Title: "Plant a tree", PointValue: 50,
		Status: entity.SubmissionStatusPending, SubmittedAt: time.Now(),
	}
	approvedAt := time.Now()
	approved := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, Title: "Plant a tree", PointValue: 50,
		Status: entity.SubmissionStatusApproved, ReviewedByID: &reviewer.ID, ReviewedAt: &approvedAt,
	}

	userRepo.On("GetByID", uint(5)).Return(reviewer, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(pending, nil).Once()
	submissionRepo.On("MarkReviewed", mock.Anything, uint(30), entity.SubmissionStatusApproved, uint(5)).Return(nil)
	pointsRepo.On("GetByUserID", mock.Anything, uint(1)).
		Return(&entity.PointsAccount{UserID: 1, Balance: 100}, nil)
	pointsRepo.On("Credit", mock.Anything, uint(1), 50).Return(nil)
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(approved, nil).Once()

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	result, err := svc.Review(30, 5, true)

	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionStatusApproved, result.Status)
	require.NoError(t, sqlMock.ExpectationsWereMet())
	pointsRepo.AssertNumberOfCalls(t, "Credit", 1)
}

func TestChallengeService_Review_RejectDoesNotCredit(t *testing.T) {
	db, sqlMock := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsRepo := new(MockPointsRepo)
	pointsService := NewPointsService(pointsRepo, userRepo, nil, db)

	reviewer := &entity.User{ID: 5, Role: entity.RoleInstitution}
	pending := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, PointValue: 50,
		Status: entity.SubmissionStatusPending,
	}
	rejected := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, PointValue: 50,
		Status: entity.SubmissionStatusRejected,
	}

	userRepo.On("GetByID", uint(5)).Return(reviewer, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(pending, nil).Once()
	submissionRepo.On("MarkReviewed", mock.Anything, uint(30), entity.SubmissionStatusRejected, uint(5)).Return(nil)
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(rejected, nil).Once()

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	result, err := svc.Review(30, 5, false)

	require.NoError(t, err)
	assert.Equal(t, entity.SubmissionStatusRejected, result.Status)
	pointsRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestChallengeService_Review_OnlyReviewers(t *testing.T) {
	db, _ := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsService := NewPointsService(new(MockPointsRepo), userRepo, nil, db)

	userRepo.On("GetByID", uint(1)).Return(&entity.User{ID: 1, Role: entity.RoleStudent}, nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	_, err := svc.Review(30, 1, true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	submissionRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestChallengeService_Review_SecondReviewFails(t *testing.T) {
	db, sqlMock := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsRepo := new(MockPointsRepo)
	pointsService := NewPointsService(pointsRepo, userRepo, nil, db)

	reviewer := &entity.User{ID: 5, Role: entity.RoleTeacher}
	alreadyApproved := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, PointValue: 50,
		Status: entity.SubmissionStatusApproved,
	}

	userRepo.On("GetByID", uint(5)).Return(reviewer, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(alreadyApproved, nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	_, err := svc.Review(30, 5, true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyReviewed))
	submissionRepo.AssertNotCalled(t, "MarkReviewed", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	pointsRepo.AssertNotCalled(t, "Credit", mock.Anything, mock.Anything, mock.Anything)
}

func TestChallengeService_Review_CreditFailureRollsBackTransition(t *testing.T) {
	db, sqlMock := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsRepo := new(MockPointsRepo)
	pointsService := NewPointsService(pointsRepo, userRepo, nil, db)

	reviewer := &entity.User{ID: 5, Role: entity.RoleTeacher}
	pending := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, PointValue: 50,
		Status: entity.SubmissionStatusPending,
	}

	userRepo.On("GetByID", uint(5)).Return(reviewer, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(pending, nil)
	submissionRepo.On("MarkReviewed", mock.Anything, uint(30), entity.SubmissionStatusApproved, uint(5)).Return(nil)
	pointsRepo.On("GetByUserID", mock.Anything, uint(1)).Return(nil, errors.New("connection reset"))

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	_, err := svc.Review(30, 5, true)

	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRewardCreditFailed))
	require.NoError(t, sqlMock.ExpectationsWereMet(), "the status transition must roll back with the credit")
}

func TestChallengeService_Review_MailsDecisionAfterCommit(t *testing.T) {
	db, sqlMock := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsRepo := new(MockPointsRepo)
	emailService := new(MockEmailService)
	pointsService := NewPointsService(pointsRepo, userRepo, nil, db)

	reviewer := &entity.User{ID: 5, Role: entity.RoleTeacher}
	student := &entity.User{ID: 1, Role: entity.RoleStudent, Email: "dana@example.com"}
	pending := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, Title: "Plant a tree", PointValue: 50,
		Status: entity.SubmissionStatusPending,
	}
	approved := &entity.ChallengeSubmission{
		ID: 30, StudentID: 1, Title: "Plant a tree", PointValue: 50,
		Status: entity.SubmissionStatusApproved,
	}

	userRepo.On("GetByID", uint(5)).Return(reviewer, nil)
	userRepo.On("GetByID", uint(1)).Return(student, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectCommit()
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(pending, nil).Once()
	submissionRepo.On("MarkReviewed", mock.Anything, uint(30), entity.SubmissionStatusApproved, uint(5)).Return(nil)
	pointsRepo.On("GetByUserID", mock.Anything, uint(1)).
		Return(&entity.PointsAccount{UserID: 1, Balance: 0}, nil)
	pointsRepo.On("Credit", mock.Anything, uint(1), 50).Return(nil)
	submissionRepo.On("GetByID", mock.Anything, uint(30)).Return(approved, nil).Once()

	emailService.On("SendReviewDecision", mock.Anything, "dana@example.com", "Plant a tree",
		entity.SubmissionStatusApproved, 50).Return(nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, emailService, db)
	_, err := svc.Review(30, 5, true)

	require.NoError(t, err)
	emailService.AssertExpectations(t)
}

func TestChallengeService_ListPending(t *testing.T) {
	db, _ := newTestDB(t)
	submissionRepo := new(MockSubmissionRepo)
	userRepo := new(MockUserRepo)
	pointsService := NewPointsService(new(MockPointsRepo), userRepo, nil, db)

	submissionRepo.On("ListPending").Return([]entity.ChallengeSubmission{
		{ID: 1, Status: entity.SubmissionStatusPending},
		{ID: 2, Status: entity.SubmissionStatusPending},
	}, nil)

	svc := NewChallengeService(submissionRepo, userRepo, pointsService, nil, db)
	pendings, err := svc.ListPending()

	require.NoError(t, err)
	assert.Len(t, pendings, 2)
}
