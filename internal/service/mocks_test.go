package service

import (
	"context"
	"sync"

	"go-admin-console/internal/model"
	"go-admin-console/internal/query"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	args := m.Called(ctx, id, changes)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	args := m.Called(ctx, id, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context, q query.Query) ([]model.User, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.User), args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) CountByRole(ctx context.Context) (map[model.Role]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.Role]int64), args.Error(1)
}

// MockPermissionRepository is a mock implementation of PermissionRepository.
type MockPermissionRepository struct {
	mock.Mock
}

func (m *MockPermissionRepository) FindAll(ctx context.Context) ([]model.RolePermission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) FindByRole(ctx context.Context, role model.Role) (*model.RolePermission, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) UpdateByRole(ctx context.Context, role model.Role, columns map[string]interface{}) (*model.RolePermission, error) {
	args := m.Called(ctx, role, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RolePermission), args.Error(1)
}

func (m *MockPermissionRepository) SeedDefaults(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockInventoryRepository is a mock implementation of InventoryRepository.
type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) DecreaseStock(ctx context.Context, productID, quantity int64) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *MockInventoryRepository) IncreaseStock(ctx context.Context, productID, quantity int64) error {
	return m.Called(ctx, productID, quantity).Error(0)
}

func (m *MockInventoryRepository) LogSale(ctx context.Context, productID, quantitySold int64) error {
	return m.Called(ctx, productID, quantitySold).Error(0)
}

func (m *MockInventoryRepository) LogRestock(ctx context.Context, productID, quantityAdded int64) error {
	return m.Called(ctx, productID, quantityAdded).Error(0)
}

func (m *MockInventoryRepository) StockLevel(ctx context.Context, productID int64) (*model.StockLevel, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockLevel), args.Error(1)
}

func (m *MockInventoryRepository) record(args mock.Arguments) (model.Record, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *MockInventoryRepository) LatestSale(ctx context.Context, productID int64) (model.Record, error) {
	return m.record(m.Called(ctx, productID))
}

func (m *MockInventoryRepository) LatestRestock(ctx context.Context, productID int64) (model.Record, error) {
	return m.record(m.Called(ctx, productID))
}

func (m *MockInventoryRepository) LatestAudit(ctx context.Context, productID int64) (model.Record, error) {
	return m.record(m.Called(ctx, productID))
}

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []string
	data   []interface{}
}

func (p *recordingPublisher) Publish(eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
	p.data = append(p.data, data)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}
