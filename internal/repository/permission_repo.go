package repository

import (
	"context"
	"errors"

	"go-admin-console/internal/model"

	"gorm.io/gorm"
)

type PermissionRepository interface {
	FindAll(ctx context.Context) ([]model.RolePermission, error)
	FindByRole(ctx context.Context, role model.Role) (*model.RolePermission, error)
	UpdateByRole(ctx context.Context, role model.Role, columns map[string]interface{}) (*model.RolePermission, error)
	SeedDefaults(ctx context.Context) error
}

type permissionRepo struct {
	db *gorm.DB
}

func NewPermissionRepo(db *gorm.DB) PermissionRepository {
	return &permissionRepo{db}
}

func (r *permissionRepo) FindAll(ctx context.Context) ([]model.RolePermission, error) {
	var permissions []model.RolePermission
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&permissions).Error; err != nil {
		return nil, err
	}
	return permissions, nil
}

func (r *permissionRepo) FindByRole(ctx context.Context, role model.Role) (*model.RolePermission, error) {
	var permission model.RolePermission
	if err := r.db.WithContext(ctx).Where("role = ?", role).First(&permission).Error; err != nil {
		return nil, err
	}
	return &permission, nil
}

// UpdateByRole writes the given flag columns and returns the updated row.
func (r *permissionRepo) UpdateByRole(ctx context.Context, role model.Role, columns map[string]interface{}) (*model.RolePermission, error) {
	var permission model.RolePermission
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role = ?", role).First(&permission).Error; err != nil {
			return err
		}
		if err := tx.Model(&permission).Updates(columns).Error; err != nil {
			return err
		}
		return tx.First(&permission, permission.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &permission, nil
}

// SeedDefaults creates the default permission rows if they don't exist
func (r *permissionRepo) SeedDefaults(ctx context.Context) error {
	db := r.db.WithContext(ctx)
	for _, p := range model.DefaultPermissions {
		var existing model.RolePermission
		err := db.Where("role = ?", p.Role).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			p := p
			if err := db.Create(&p).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
