package repository

import (
	"context"
	"fmt"

	"go-admin-console/internal/model"
	"go-admin-console/internal/query"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// UserColumns maps grid field names to users table columns.
var UserColumns = map[string]string{
	"id":         "id",
	"name":       "name",
	"email":      "email",
	"role":       "role",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// UserSearchColumns are matched by the free-text grid search.
var UserSearchColumns = []string{"name", "email"}

// UserDefaultSort orders listings newest first.
const UserDefaultSort = "created_at DESC"

var userListColumns = []string{"id", "name", "email", "role", "created_at", "updated_at"}

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error
	List(ctx context.Context, q query.Query) ([]model.User, int64, error)
	EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	CountByRole(ctx context.Context) (map[model.Role]int64, error)
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db}
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", model.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update writes only the given columns. A missing row yields gorm.ErrRecordNotFound.
func (r *userRepo) Update(ctx context.Context, id uuid.UUID, changes map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, id uuid.UUID, hashedPassword string) error {
	return r.Update(ctx, id, map[string]interface{}{"password": hashedPassword})
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// List runs the page query and the count query concurrently.
func (r *userRepo) List(ctx context.Context, q query.Query) ([]model.User, int64, error) {
	rowsSQL, rowsArgs, err := q.Select(model.User{}.TableName(), userListColumns...).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build user list query: %w", err)
	}
	countSQL, countArgs, err := q.Count(model.User{}.TableName()).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build user count query: %w", err)
	}

	var (
		users []model.User
		count int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return r.db.WithContext(gctx).Raw(rowsSQL, rowsArgs...).Scan(&users).Error
	})
	g.Go(func() error {
		return r.db.WithContext(gctx).Raw(countSQL, countArgs...).Scan(&count).Error
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, count, nil
}

func (r *userRepo) EmailTaken(ctx context.Context, email string, excludeID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("email = ? AND id <> ?", model.NormalizeEmail(email), excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepo) CountByRole(ctx context.Context) (map[model.Role]int64, error) {
	var rows []struct {
		Role  model.Role
		Count int64
	}
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Role]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}
