package config

import (
	"context"
	"errors"

	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/services"

	"github.com/gofiber/fiber/v2/log"
)

// Seeder handles database seeding
type Seeder struct {
	auth *services.AuthService
	cfg  SeedConfig
}

// NewSeeder creates a new seeder instance
func NewSeeder(auth *services.AuthService, cfg SeedConfig) *Seeder {
	return &Seeder{auth: auth, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Info("🌱 Running database seeders...")

	if err := s.seedAdmin(ctx); err != nil {
		log.Warnf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Info("✅ Database seeding completed")
	return nil
}

// seedAdmin creates the bootstrap admin when SEED_ADMIN_EMAIL is set
func (s *Seeder) seedAdmin(ctx context.Context) error {
	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		return nil
	}

	admin, err := s.auth.Signup(ctx, &services.SignupInput{
		Email:    s.cfg.AdminEmail,
		Password: s.cfg.AdminPassword,
		Name:     s.cfg.AdminName,
		Role:     domain.RoleAdmin,
	})
	if errors.Is(err, domain.ErrDuplicateAccount) {
		return nil
	}
	if err != nil {
		return err
	}

	log.Infof("✅ Admin account created: %s", admin.Email)
	return nil
}
