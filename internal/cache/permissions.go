package cache

import (
	"context"
	"encoding/json"
	"time"

	"go-admin-console/internal/model"
)

const permissionKeyPrefix = "permissions:role:"

// PermissionCache keeps role permission records keyed by role name.
type PermissionCache struct {
	store Store
	ttl   time.Duration
}

// NewPermissionCache returns a cache over store. A nil store turns every
// lookup into a miss.
func NewPermissionCache(store Store, ttl time.Duration) *PermissionCache {
	return &PermissionCache{store: store, ttl: ttl}
}

func permissionKey(role model.Role) string {
	return permissionKeyPrefix + string(role)
}

// Get returns the cached record, or false on a miss.
func (c *PermissionCache) Get(ctx context.Context, role model.Role) (*model.RolePermission, bool) {
	if c == nil || c.store == nil {
		return nil, false
	}
	raw, err := c.store.Get(ctx, permissionKey(role))
	if err != nil || raw == nil {
		return nil, false
	}
	var p model.RolePermission
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	return &p, true
}

func (c *PermissionCache) Set(ctx context.Context, p *model.RolePermission) {
	if c == nil || c.store == nil || p == nil {
		return
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = c.store.Set(ctx, permissionKey(p.Role), raw, c.ttl)
}

func (c *PermissionCache) Invalidate(ctx context.Context, role model.Role) {
	if c == nil || c.store == nil {
		return
	}
	_ = c.store.Delete(ctx, permissionKey(role))
}
