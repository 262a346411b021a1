package handler

import (
	"context"

	"go-admin-console/internal/model"
	"go-admin-console/internal/query"
	"go-admin-console/internal/service"
	"go-admin-console/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeAuth resolves fixed bearer tokens to users.
type fakeAuth struct {
	mock.Mock
	tokens map[string]*model.User
}

func (f *fakeAuth) Login(ctx context.Context, req *service.LoginRequest) (*service.LoginResponse, error) {
	args := f.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResponse), args.Error(1)
}

func (f *fakeAuth) ValidateToken(ctx context.Context, token string) (*service.TokenValidationResponse, error) {
	user, err := f.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	return &service.TokenValidationResponse{User: user}, nil
}

func (f *fakeAuth) Authenticate(_ context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, jwt.ErrMissingToken
	}
	if token == "expired" {
		return nil, jwt.ErrExpiredToken
	}
	user, ok := f.tokens[token]
	if !ok {
		return nil, jwt.ErrInvalidToken
	}
	return user, nil
}

// defaultChecker grants what model.DefaultPermissions grants.
type defaultChecker struct{}

func (defaultChecker) Allows(_ context.Context, role model.Role, action model.Action) (bool, error) {
	for _, p := range model.DefaultPermissions {
		if p.Role == role {
			return p.Allows(action), nil
		}
	}
	return false, nil
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Create(ctx context.Context, req *service.CreateUserRequest) (*model.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) List(ctx context.Context, req query.GridRequest) (*model.PagedUsers, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PagedUsers), args.Error(1)
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, req *service.UpdateUserRequest) (*model.User, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserService) CheckEmailAvailability(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) CheckPassword(ctx context.Context, id uuid.UUID, password string) (bool, error) {
	args := m.Called(ctx, id, password)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserService) Stats(ctx context.Context) (*model.UserStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UserStats), args.Error(1)
}

type MockPermissionService struct {
	mock.Mock
}

func (m *MockPermissionService) List(ctx context.Context) ([]model.RolePermission, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RolePermission), args.Error(1)
}

func (m *MockPermissionService) GetByRole(ctx context.Context, role model.Role) (*model.RolePermission, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RolePermission), args.Error(1)
}

func (m *MockPermissionService) GetForUser(ctx context.Context, userID uuid.UUID) (*model.RolePermission, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RolePermission), args.Error(1)
}

func (m *MockPermissionService) UpdateForRole(ctx context.Context, role model.Role, patch model.PermissionPatch) (*model.RolePermission, error) {
	args := m.Called(ctx, role, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RolePermission), args.Error(1)
}

func (m *MockPermissionService) Allows(ctx context.Context, role model.Role, action model.Action) (bool, error) {
	return defaultChecker{}.Allows(ctx, role, action)
}

type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) DecreaseStock(ctx context.Context, req *service.StockChangeRequest) (*model.StockLevel, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockLevel), args.Error(1)
}

func (m *MockInventoryService) IncreaseStock(ctx context.Context, req *service.StockChangeRequest) (*model.StockLevel, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.StockLevel), args.Error(1)
}

func (m *MockInventoryService) LogSale(ctx context.Context, req *service.SaleRequest) (model.Record, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *MockInventoryService) LogRestock(ctx context.Context, req *service.RestockRequest) (model.Record, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Record), args.Error(1)
}

func (m *MockInventoryService) ProbeNegativeStock(ctx context.Context, req *service.NegativeStockProbeRequest) (*model.ProbeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProbeResult), args.Error(1)
}

func (m *MockInventoryService) ProbeAuditTrail(ctx context.Context, req *service.AuditProbeRequest) (*model.ProbeResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProbeResult), args.Error(1)
}
