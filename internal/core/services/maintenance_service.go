package services

import (
	"context"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"

	"github.com/gofiber/fiber/v2/log"
	"github.com/robfig/cron/v3"
)

// DefaultMaintenanceSchedule runs the OTP purge hourly
const DefaultMaintenanceSchedule = "@every 1h"

// OTPRetention is how long an expired reset code is kept before purging
const OTPRetention = 24 * time.Hour

// MaintenanceService runs scheduled housekeeping on account records
type MaintenanceService struct {
	accounts repositories.AccountRepository
	cron     *cron.Cron
	schedule string
	now      func() time.Time
}

// NewMaintenanceService creates a new maintenance service
func NewMaintenanceService(accounts repositories.AccountRepository, schedule string) *MaintenanceService {
	if schedule == "" {
		schedule = DefaultMaintenanceSchedule
	}
	return &MaintenanceService{
		accounts: accounts,
		cron:     cron.New(),
		schedule: schedule,
		now:      time.Now,
	}
}

// Start registers the jobs and starts the scheduler
func (s *MaintenanceService) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		s.PurgeExpiredOTPs(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	log.Infof("🚀 MaintenanceService started (%s)", s.schedule)
	return nil
}

// Stop waits for running jobs and stops the scheduler
func (s *MaintenanceService) Stop() {
	<-s.cron.Stop().Done()
	log.Info("🛑 MaintenanceService stopped")
}

// PurgeExpiredOTPs clears reset codes that expired more than OTPRetention ago.
// Lock state and attempt counters are left alone.
func (s *MaintenanceService) PurgeExpiredOTPs(ctx context.Context) int64 {
	n, err := s.accounts.ClearExpiredOTPs(ctx, s.now().Add(-OTPRetention))
	if err != nil {
		log.Errorf("❌ OTP purge failed: %v", err)
		return 0
	}
	if n > 0 {
		log.Infof("🧹 cleared %d expired reset codes", n)
	}
	return n
}
