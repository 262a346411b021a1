package model

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// User is a member of the admin console roster.
type User struct {
	BaseModel
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	Email    string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password string `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role     Role   `gorm:"type:varchar(50);not null;index" json:"role"`
}

func (User) TableName() string {
	return "users"
}

// NormalizeEmail is the stored form of an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetPassword hashes and sets the user's password with the given bcrypt cost.
func (u *User) SetPassword(password string, cost int) error {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// UserStats is the per-role head count shown on the dashboard.
type UserStats struct {
	AdminCount       int64 `json:"adminCount"`
	DataManagerCount int64 `json:"datamanagerCount"`
	EmployeeCount    int64 `json:"employeeCount"`
}

// Add records n users of the given role.
func (s *UserStats) Add(role Role, n int64) {
	switch role {
	case RoleAdmin:
		s.AdminCount += n
	case RoleDataManager:
		s.DataManagerCount += n
	case RoleEmployee:
		s.EmployeeCount += n
	}
}

// PagedUsers is one page of a grid listing plus the total number of matches.
type PagedUsers struct {
	Rows  []User `json:"rows"`
	Count int64  `json:"count"`
}
