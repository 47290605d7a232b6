package service

import (
	"fmt"
	"log"
	"time"

	"github.com/yourusername/ecolearn-api/internal/domain/entity"
	"github.com/yourusername/ecolearn-api/internal/domain/repository"
	apperrors "github.com/yourusername/ecolearn-api/internal/pkg/errors"
	"github.com/yourusername/ecolearn-api/pkg/auth"
)

// AuthService registers users and authenticates credentials.
type AuthService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new account with the given role. The password is hashed
// by the entity's BeforeSave hook.
func (s *AuthService) Register(username, email, password, name, role string) (*entity.User, error) {
	switch role {
	case entity.RoleStudent, entity.RoleTeacher, entity.RoleInstitution:
	default:
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}

	user := &entity.User{
		Username: username,
		Email:    email,
		Password: password,
		Name:     name,
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	log.Printf("[AuthService.Register] user #%d registered as %s", user.ID, role)
	return user, nil
}

// Login verifies credentials and issues an access token.
func (s *AuthService) Login(email, password string) (string, *entity.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	if !user.IsActive || !user.CheckPassword(password) {
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.userRepo.Update(user); err != nil {
		log.Printf("[AuthService.Login] failed to stamp last login for user #%d: %v", user.ID, err)
	}

	return token, user, nil
}
