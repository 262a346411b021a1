package service

import (
	"context"
	"errors"
	"fmt"

	"go-admin-console/internal/cache"
	"go-admin-console/internal/model"
	"go-admin-console/internal/repository"
	"go-admin-console/internal/ws"

	"github.com/google/uuid"
)

var (
	ErrPermissionNotFound    = errors.New("permissions not found")
	ErrEmptyPermissionUpdate = errors.New("no valid permission fields to update")
	ErrInvalidRole           = errors.New("invalid role")
)

type PermissionService interface {
	List(ctx context.Context) ([]model.RolePermission, error)
	GetByRole(ctx context.Context, role model.Role) (*model.RolePermission, error)
	GetForUser(ctx context.Context, userID uuid.UUID) (*model.RolePermission, error)
	UpdateForRole(ctx context.Context, role model.Role, patch model.PermissionPatch) (*model.RolePermission, error)
	Allows(ctx context.Context, role model.Role, action model.Action) (bool, error)
}

type permissionService struct {
	permissionRepo repository.PermissionRepository
	userRepo       repository.UserRepository
	cache          *cache.PermissionCache
	events         ws.Publisher
}

func NewPermissionService(permissionRepo repository.PermissionRepository, userRepo repository.UserRepository, permissionCache *cache.PermissionCache, events ws.Publisher) PermissionService {
	return &permissionService{
		permissionRepo: permissionRepo,
		userRepo:       userRepo,
		cache:          permissionCache,
		events:         events,
	}
}

func (s *permissionService) List(ctx context.Context) ([]model.RolePermission, error) {
	permissions, err := s.permissionRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list permissions: %w", err)
	}
	if len(permissions) == 0 {
		return nil, ErrPermissionNotFound
	}
	return permissions, nil
}

func (s *permissionService) GetByRole(ctx context.Context, role model.Role) (*model.RolePermission, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if p, ok := s.cache.Get(ctx, role); ok {
		return p, nil
	}

	p, err := s.permissionRepo.FindByRole(ctx, role)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("find permissions for %q: %w", role, err)
	}
	s.cache.Set(ctx, p)
	return p, nil
}

func (s *permissionService) GetForUser(ctx context.Context, userID uuid.UUID) (*model.RolePermission, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return s.GetByRole(ctx, user.Role)
}

// UpdateForRole writes only the CRUD flags present in patch.
func (s *permissionService) UpdateForRole(ctx context.Context, role model.Role, patch model.PermissionPatch) (*model.RolePermission, error) {
	if !role.Valid() {
		return nil, ErrPermissionNotFound
	}
	columns := patch.Columns()
	if len(columns) == 0 {
		return nil, ErrEmptyPermissionUpdate
	}

	p, err := s.permissionRepo.UpdateByRole(ctx, role, columns)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrPermissionNotFound
		}
		return nil, fmt.Errorf("update permissions for %q: %w", role, err)
	}

	s.cache.Invalidate(ctx, role)
	if s.events != nil {
		s.events.Publish(ws.EventPermissionsUpdated, p)
	}
	return p, nil
}

// Allows reports whether role holds the flag for action. A role without a
// permission record is denied.
func (s *permissionService) Allows(ctx context.Context, role model.Role, action model.Action) (bool, error) {
	p, err := s.GetByRole(ctx, role)
	if err != nil {
		if errors.Is(err, ErrPermissionNotFound) || errors.Is(err, ErrInvalidRole) {
			return false, nil
		}
		return false, err
	}
	return p.Allows(action), nil
}
