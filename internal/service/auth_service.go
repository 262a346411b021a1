package service

import (
	"context"
	"errors"
	"fmt"

	"go-admin-console/internal/model"
	"go-admin-console/internal/repository"
	"go-admin-console/pkg/jwt"
	"go-admin-console/pkg/validator"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// TokenManager issues and verifies access tokens.
type TokenManager interface {
	GenerateToken(userID uuid.UUID, email string) (string, error)
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
	Authenticate(ctx context.Context, tokenString string) (*model.User, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token       string                `json:"token"`
	User        *model.User           `json:"user"`
	Permissions *model.RolePermission `json:"permissions,omitempty"`
}

type TokenValidationResponse struct {
	User        *model.User           `json:"user"`
	Permissions *model.RolePermission `json:"permissions,omitempty"`
}

type authService struct {
	userRepo    repository.UserRepository
	permissions PermissionService
	tokens      TokenManager
	dummyHash   []byte
}

func NewAuthService(userRepo repository.UserRepository, permissions PermissionService, tokens TokenManager, bcryptCost int) AuthService {
	// Compared against when the email is unknown so both failure paths cost one bcrypt round.
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)
	if err != nil {
		dummy, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcrypt.DefaultCost)
	}
	return &authService{
		userRepo:    userRepo,
		permissions: permissions,
		tokens:      tokens,
		dummyHash:   dummy,
	}
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	req.Email = model.NormalizeEmail(req.Email)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if !repository.IsNotFound(err) {
			return nil, fmt.Errorf("find user by email: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
		return nil, ErrInvalidCredentials
	}

	if !user.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	resp := &LoginResponse{Token: token, User: user}
	if p, err := s.permissions.GetByRole(ctx, user.Role); err == nil {
		resp.Permissions = p
	} else if !errors.Is(err, ErrPermissionNotFound) {
		return nil, err
	}
	return resp, nil
}

// Authenticate resolves a bearer token to the current user row.
func (s *authService) Authenticate(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, jwt.ErrInvalidToken
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	user, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	resp := &TokenValidationResponse{User: user}
	if p, err := s.permissions.GetByRole(ctx, user.Role); err == nil {
		resp.Permissions = p
	} else if !errors.Is(err, ErrPermissionNotFound) {
		return nil, err
	}
	return resp, nil
}
