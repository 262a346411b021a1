package model

import "time"

// Action is one of the four CRUD verbs a role may be granted.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// RolePermission holds the CRUD flags of a single role. Role is the natural key.
type RolePermission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Role      Role      `gorm:"type:varchar(50);uniqueIndex;not null" json:"role"`
	CanCreate bool      `gorm:"column:can_create;not null" json:"canCreate"`
	CanRead   bool      `gorm:"column:can_read;not null" json:"canRead"`
	CanUpdate bool      `gorm:"column:can_update;not null" json:"canUpdate"`
	CanDelete bool      `gorm:"column:can_delete;not null" json:"canDelete"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (RolePermission) TableName() string {
	return "permissions"
}

// Allows reports whether the flag for action is set.
func (p RolePermission) Allows(action Action) bool {
	switch action {
	case ActionCreate:
		return p.CanCreate
	case ActionRead:
		return p.CanRead
	case ActionUpdate:
		return p.CanUpdate
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// PermissionPatch is a partial update of the CRUD flags; nil fields are left untouched.
type PermissionPatch struct {
	CanCreate *bool `json:"canCreate"`
	CanRead   *bool `json:"canRead"`
	CanUpdate *bool `json:"canUpdate"`
	CanDelete *bool `json:"canDelete"`
}

// Columns returns the column/value pairs to write, keyed by column name.
func (p PermissionPatch) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 4)
	if p.CanCreate != nil {
		cols["can_create"] = *p.CanCreate
	}
	if p.CanRead != nil {
		cols["can_read"] = *p.CanRead
	}
	if p.CanUpdate != nil {
		cols["can_update"] = *p.CanUpdate
	}
	if p.CanDelete != nil {
		cols["can_delete"] = *p.CanDelete
	}
	return cols
}

// DefaultPermissions seeds one row per role.
var DefaultPermissions = []RolePermission{
	{Role: RoleAdmin, CanCreate: true, CanRead: true, CanUpdate: true, CanDelete: true},
	{Role: RoleDataManager, CanCreate: true, CanRead: true, CanUpdate: true, CanDelete: false},
	{Role: RoleEmployee, CanCreate: false, CanRead: true, CanUpdate: false, CanDelete: false},
}
