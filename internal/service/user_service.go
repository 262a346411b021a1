package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go-admin-console/internal/model"
	"go-admin-console/internal/query"
	"go-admin-console/internal/repository"
	"go-admin-console/internal/ws"
	"go-admin-console/pkg/validator"

	"github.com/google/uuid"
)

var (
	ErrEmailExists = errors.New("email already exists")
)

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, req query.GridRequest) (*model.PagedUsers, error)
	Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CheckEmailAvailability(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	CheckPassword(ctx context.Context, id uuid.UUID, password string) (bool, error)
	Stats(ctx context.Context) (*model.UserStats, error)
}

type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"required,role"`
}

// UpdateUserRequest is a partial update; nil fields keep their stored value.
type UpdateUserRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=6,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,role"`
}

type userService struct {
	userRepo   repository.UserRepository
	builder    *query.Builder
	events     ws.Publisher
	bcryptCost int
}

func NewUserService(userRepo repository.UserRepository, builder *query.Builder, events ws.Publisher, bcryptCost int) UserService {
	return &userService{
		userRepo:   userRepo,
		builder:    builder,
		events:     events,
		bcryptCost: bcryptCost,
	}
}

func (s *userService) publish(eventType string, data interface{}) {
	if s.events != nil {
		s.events.Publish(eventType, data)
	}
}

func (s *userService) Create(ctx context.Context, req *CreateUserRequest) (*model.User, error) {
	req.Email = model.NormalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	taken, err := s.userRepo.EmailTaken(ctx, req.Email, uuid.Nil)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailExists
	}

	user := &model.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  model.Role(req.Role),
	}
	user.ID = uuid.New()
	if err := user.SetPassword(req.Password, s.bcryptCost); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.publish(ws.EventUserCreated, user)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, req query.GridRequest) (*model.PagedUsers, error) {
	q, err := s.builder.Build(req)
	if err != nil {
		return nil, err
	}

	rows, count, err := s.userRepo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &model.PagedUsers{Rows: rows, Count: count}, nil
}

func (s *userService) Update(ctx context.Context, id uuid.UUID, req *UpdateUserRequest) (*model.User, error) {
	if req.Email != nil {
		email := model.NormalizeEmail(*req.Email)
		req.Email = &email
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}
	if err := validator.Validate(req); err != nil {
		return nil, err
	}

	changes := make(map[string]interface{}, 4)
	if req.Name != nil {
		changes["name"] = *req.Name
	}
	if req.Email != nil {
		taken, err := s.userRepo.EmailTaken(ctx, *req.Email, id)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailExists
		}
		changes["email"] = *req.Email
	}
	if req.Password != nil {
		var hashed model.User
		if err := hashed.SetPassword(*req.Password, s.bcryptCost); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		changes["password"] = hashed.Password
	}
	if req.Role != nil {
		changes["role"] = model.Role(*req.Role)
	}

	if len(changes) > 0 {
		if err := s.userRepo.Update(ctx, id, changes); err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrUserNotFound
			}
			if repository.IsUniqueViolation(err) {
				return nil, ErrEmailExists
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(changes) > 0 {
		s.publish(ws.EventUserUpdated, user)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("delete user: %w", err)
	}
	s.publish(ws.EventUserDeleted, map[string]string{"id": id.String()})
	return nil
}

// CheckEmailAvailability reports whether no user other than excludeID owns email.
func (s *userService) CheckEmailAvailability(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	email = model.NormalizeEmail(email)
	if err := validator.Validate(&struct {
		Email string `validate:"required,email"`
	}{email}); err != nil {
		return false, err
	}

	taken, err := s.userRepo.EmailTaken(ctx, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("check email: %w", err)
	}
	return !taken, nil
}

func (s *userService) CheckPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return user.CheckPassword(password), nil
}

func (s *userService) Stats(ctx context.Context) (*model.UserStats, error) {
	counts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users by role: %w", err)
	}
	stats := &model.UserStats{}
	for role, n := range counts {
		stats.Add(role, n)
	}
	return stats, nil
}
