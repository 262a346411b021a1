// Package seed loads the default role permissions and the demo roster.
package seed

import (
	"context"
	"errors"
	"fmt"

	"go-admin-console/internal/model"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// DemoUser is one account of the demo roster.
type DemoUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

var DemoUsers = []DemoUser{
	{"John Doe", "john@example.com", "Admin@123!", model.RoleAdmin},
	{"Jane Smith", "jane@example.com", "Manager@123!", model.RoleDataManager},
	{"Bob Johnson", "bob@example.com", "Employee@123!", model.RoleEmployee},
	{"Emily Davis", "emily@example.com", "Manager@234!", model.RoleDataManager},
	{"Daniel Garcia", "daniel@example.com", "Manager@345!", model.RoleDataManager},
	{"Sarah Wilson", "sarah@example.com", "Manager@456!", model.RoleDataManager},
	{"David Martinez", "david@example.com", "Manager@567!", model.RoleDataManager},
	{"Laura Anderson", "laura@example.com", "Manager@678!", model.RoleDataManager},
	{"James Moore", "james@example.com", "Manager@789!", model.RoleDataManager},
	{"Olivia Taylor", "olivia@example.com", "Manager@890!", model.RoleDataManager},
	{"Robert Thomas", "robert@example.com", "Manager@901!", model.RoleDataManager},
	{"Sophia Jackson", "sophia@example.com", "Manager@012!", model.RoleDataManager},
	{"William White", "william@example.com", "Manager@1234!", model.RoleDataManager},
	{"Liam Harris", "liam@example.com", "Employee@234!", model.RoleEmployee},
	{"Mia Clark", "mia@example.com", "Employee@345!", model.RoleEmployee},
	{"Noah Lewis", "noah@example.com", "Employee@456!", model.RoleEmployee},
	{"Isabella Robinson", "isabella@example.com", "Employee@567!", model.RoleEmployee},
	{"Ethan Walker", "ethan@example.com", "Employee@678!", model.RoleEmployee},
	{"Ava Young", "ava@example.com", "Employee@789!", model.RoleEmployee},
}

type userStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
}

type permissionStore interface {
	SeedDefaults(ctx context.Context) error
}

type Seeder struct {
	users       userStore
	permissions permissionStore
	bcryptCost  int
	log         zerolog.Logger
}

func New(users userStore, permissions permissionStore, bcryptCost int, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, permissions: permissions, bcryptCost: bcryptCost, log: log}
}

// Run creates the default permission rows and every demo user whose email is
// not taken yet. It returns how many users were created.
func (s *Seeder) Run(ctx context.Context, demo []DemoUser) (int, error) {
	if err := s.permissions.SeedDefaults(ctx); err != nil {
		return 0, fmt.Errorf("seed permissions: %w", err)
	}

	created := 0
	for _, d := range demo {
		_, err := s.users.FindByEmail(ctx, d.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, fmt.Errorf("look up %s: %w", d.Email, err)
		}

		user := &model.User{Name: d.Name, Email: d.Email, Role: d.Role}
		if err := user.SetPassword(d.Password, s.bcryptCost); err != nil {
			return created, fmt.Errorf("hash password for %s: %w", d.Email, err)
		}
		if err := s.users.Create(ctx, user); err != nil {
			return created, fmt.Errorf("create %s: %w", d.Email, err)
		}
		created++
		s.log.Info().Str("email", d.Email).Str("role", d.Role.String()).Msg("seeded user")
	}
	return created, nil
}
