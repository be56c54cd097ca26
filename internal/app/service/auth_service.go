package service

import (
	"context"
	"errors"
	"fmt"

	"taskdeck/internal/common"
	"taskdeck/internal/common/security"
	"taskdeck/internal/domain/model"
	"taskdeck/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo  repository.UserRepository
	tokenAuth *security.TokenAuth
}

func NewAuthService(userRepo repository.UserRepository, tokenAuth *security.TokenAuth) *AuthService {
	return &AuthService{userRepo: userRepo, tokenAuth: tokenAuth}
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req CredentialsRequest) (*RegisterResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hashedPassword,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return &RegisterResponse{Message: "user registered successfully", ID: user.ID}, nil
}

// Login answers the same generic error for an unknown username and a wrong
// password so responses carry no user-enumeration signal.
func (s *AuthService) Login(ctx context.Context, req CredentialsRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, common.ErrUnauthorized
	}

	token, err := s.tokenAuth.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &LoginResponse{Message: "login successful", Token: token}, nil
}
