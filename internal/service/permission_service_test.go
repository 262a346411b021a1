package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go-admin-console/internal/cache"
	"go-admin-console/internal/model"
	"go-admin-console/internal/ws"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mapStore map[string][]byte

func (s mapStore) Get(_ context.Context, key string) ([]byte, error) { return s[key], nil }
func (s mapStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	s[key] = value
	return nil
}
func (s mapStore) Delete(_ context.Context, key string) error {
	delete(s, key)
	return nil
}

func defaultPermission(role model.Role) *model.RolePermission {
	for _, p := range model.DefaultPermissions {
		if p.Role == role {
			p := p
			return &p
		}
	}
	return nil
}

func TestPermissionService_Allows(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPermissionRepository)
	repo.On("FindByRole", ctx, model.RoleEmployee).Return(defaultPermission(model.RoleEmployee), nil)
	repo.On("FindByRole", ctx, model.RoleAdmin).Return(defaultPermission(model.RoleAdmin), nil)
	repo.On("FindByRole", ctx, model.RoleDataManager).Return(nil, gorm.ErrRecordNotFound)

	svc := NewPermissionService(repo, new(MockUserRepository), nil, nil)

	ok, err := svc.Allows(ctx, model.RoleEmployee, model.ActionCreate)
	require.NoError(t, err)
	assert.False(t, ok, "employee must not create")

	ok, err = svc.Allows(ctx, model.RoleEmployee, model.ActionRead)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.Allows(ctx, model.RoleAdmin, model.ActionDelete)
	require.NoError(t, err)
	assert.True(t, ok, "admin may delete")

	ok, err = svc.Allows(ctx, model.RoleDataManager, model.ActionRead)
	require.NoError(t, err)
	assert.False(t, ok, "missing record denies")

	ok, err = svc.Allows(ctx, model.Role("root"), model.ActionRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPermissionService_Allows_DatabaseError(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPermissionRepository)
	repo.On("FindByRole", ctx, model.RoleAdmin).Return(nil, errors.New("connection reset"))

	_, err := NewPermissionService(repo, new(MockUserRepository), nil, nil).Allows(ctx, model.RoleAdmin, model.ActionRead)
	assert.Error(t, err)
}

func TestPermissionService_GetByRole_UsesCache(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPermissionRepository)
	repo.On("FindByRole", ctx, model.RoleAdmin).Return(defaultPermission(model.RoleAdmin), nil).Once()

	svc := NewPermissionService(repo, new(MockUserRepository), cache.NewPermissionCache(mapStore{}, time.Minute), nil)

	for i := 0; i < 3; i++ {
		p, err := svc.GetByRole(ctx, model.RoleAdmin)
		require.NoError(t, err)
		assert.True(t, p.CanDelete)
	}
	repo.AssertNumberOfCalls(t, "FindByRole", 1)
}

func TestPermissionService_List(t *testing.T) {
	ctx := context.Background()

	repo := new(MockPermissionRepository)
	repo.On("FindAll", ctx).Return(model.DefaultPermissions, nil)
	list, err := NewPermissionService(repo, new(MockUserRepository), nil, nil).List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)

	empty := new(MockPermissionRepository)
	empty.On("FindAll", ctx).Return([]model.RolePermission{}, nil)
	_, err = NewPermissionService(empty, new(MockUserRepository), nil, nil).List(ctx)
	assert.ErrorIs(t, err, ErrPermissionNotFound)
}

func TestPermissionService_GetForUser(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPermissionRepository)
	users := new(MockUserRepository)
	known, unknown := uuid.New(), uuid.New()

	users.On("FindByID", ctx, known).Return(&model.User{Role: model.RoleEmployee}, nil)
	users.On("FindByID", ctx, unknown).Return(nil, gorm.ErrRecordNotFound)
	repo.On("FindByRole", ctx, model.RoleEmployee).Return(defaultPermission(model.RoleEmployee), nil)

	svc := NewPermissionService(repo, users, nil, nil)

	p, err := svc.GetForUser(ctx, known)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployee, p.Role)

	_, err = svc.GetForUser(ctx, unknown)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPermissionService_UpdateForRole(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPermissionRepository)
	events := &recordingPublisher{}
	store := mapStore{}
	permissionCache := cache.NewPermissionCache(store, time.Minute)
	permissionCache.Set(ctx, defaultPermission(model.RoleEmployee))

	yes := true
	updated := defaultPermission(model.RoleEmployee)
	updated.CanCreate = true
	repo.On("UpdateByRole", ctx, model.RoleEmployee, map[string]interface{}{"can_create": true}).Return(updated, nil)

	svc := NewPermissionService(repo, new(MockUserRepository), permissionCache, events)

	p, err := svc.UpdateForRole(ctx, model.RoleEmployee, model.PermissionPatch{CanCreate: &yes})
	require.NoError(t, err)
	assert.True(t, p.CanCreate)
	assert.Empty(t, store, "cached record must be invalidated")
	assert.Equal(t, []string{ws.EventPermissionsUpdated}, events.types())
}

func TestPermissionService_UpdateForRole_Rejects(t *testing.T) {
	ctx := context.Background()
	repo := new(MockPermissionRepository)
	svc := NewPermissionService(repo, new(MockUserRepository), nil, nil)
	yes := true

	_, err := svc.UpdateForRole(ctx, model.RoleAdmin, model.PermissionPatch{})
	assert.ErrorIs(t, err, ErrEmptyPermissionUpdate)

	_, err = svc.UpdateForRole(ctx, model.Role("root"), model.PermissionPatch{CanRead: &yes})
	assert.ErrorIs(t, err, ErrPermissionNotFound)

	repo.On("UpdateByRole", ctx, model.RoleDataManager, mock.Anything).Return(nil, gorm.ErrRecordNotFound)
	_, err = svc.UpdateForRole(ctx, model.RoleDataManager, model.PermissionPatch{CanRead: &yes})
	assert.ErrorIs(t, err, ErrPermissionNotFound)
}
