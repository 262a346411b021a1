package model

import "go-admin-console/pkg/validator"

// Role names the three access levels of the console.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleDataManager Role = "data manager"
	RoleEmployee    Role = "employee"
)

// Roles lists every valid role in display order.
var Roles = []Role{RoleAdmin, RoleDataManager, RoleEmployee}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

func init() {
	validator.RegisterStringRule("role", func(s string) bool { return Role(s).Valid() })
}
