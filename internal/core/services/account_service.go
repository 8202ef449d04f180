package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"

	"github.com/gofiber/fiber/v2/log"
)

// AccountService handles profile management for patients, workers and admins
type AccountService struct {
	accounts repositories.AccountRepository
	hasher   PasswordHasher
	now      func() time.Time
}

// NewAccountService creates a new account service
func NewAccountService(accounts repositories.AccountRepository, hasher PasswordHasher) *AccountService {
	return &AccountService{
		accounts: accounts,
		hasher:   hasher,
		now:      time.Now,
	}
}

// UpdateAccountInput is a partial profile update. Email, role and the
// security counters cannot be changed through it.
type UpdateAccountInput struct {
	Name           *string  `json:"name"`
	Phone          *string  `json:"phone"`
	Photo          *string  `json:"photo"`
	Gender         *string  `json:"gender"`
	Password       *string  `json:"password"`
	BloodType      *string  `json:"bloodType"`
	Specialization *string  `json:"specialization"`
	Bio            *string  `json:"bio"`
	TicketPrice    *float64 `json:"ticketPrice"`
}

// ListAccountsInput represents list input
type ListAccountsInput struct {
	Offset int
	Limit  int
	Query  string
}

// Get returns the public profile of one account of the given kind
func (s *AccountService) Get(ctx context.Context, kind domain.Kind, id string) (*domain.PublicProfile, error) {
	acc, err := s.accounts.FindByID(ctx, domain.KindSet{kind}, id)
	if err != nil {
		return nil, err
	}
	return acc.Public(), nil
}

// List lists accounts of a kind. For workers a search query restricts the
// result to approved workers matching name or specialization.
func (s *AccountService) List(ctx context.Context, kind domain.Kind, input *ListAccountsInput) ([]*domain.PublicProfile, int64, error) {
	filter := repositories.AccountFilter{Query: strings.TrimSpace(input.Query)}
	if kind == domain.KindWorker && filter.Query != "" {
		filter.ApprovedOnly = true
	}

	accs, total, err := s.accounts.List(ctx, kind, filter, input.Offset, input.Limit)
	if err != nil {
		return nil, 0, err
	}

	profiles := make([]*domain.PublicProfile, 0, len(accs))
	for _, a := range accs {
		profiles = append(profiles, a.Public())
	}
	return profiles, total, nil
}

// Update applies a partial update; a new password goes through the history
func (s *AccountService) Update(ctx context.Context, kind domain.Kind, id string, input *UpdateAccountInput) (*domain.PublicProfile, error) {
	var hash string
	if input.Password != nil && *input.Password != "" {
		if err := checkPassword(*input.Password); err != nil {
			return nil, err
		}
		h, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hash = h
	}
	if input.TicketPrice != nil && *input.TicketPrice < 0 {
		return nil, fmt.Errorf("%w: ticket price cannot be negative", domain.ErrInvalidInput)
	}

	acc, err := s.accounts.Mutate(ctx, kind, id, func(a *domain.Account) bool {
		applyProfile(a, input)
		if hash != "" {
			a.SetPassword(hash, s.now())
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	log.Infof("✏️ %s %s updated", kind, id)
	return acc.Public(), nil
}

func applyProfile(a *domain.Account, in *UpdateAccountInput) {
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Phone != nil {
		a.Phone = *in.Phone
	}
	if in.Photo != nil {
		a.Photo = *in.Photo
	}
	if in.Gender != nil {
		a.Gender = *in.Gender
	}
	if a.Patient != nil && in.BloodType != nil {
		a.Patient.BloodType = *in.BloodType
	}
	if a.Worker != nil {
		if in.Specialization != nil {
			a.Worker.Specialization = *in.Specialization
		}
		if in.Bio != nil {
			a.Worker.Bio = *in.Bio
		}
		if in.TicketPrice != nil {
			a.Worker.TicketPrice = *in.TicketPrice
		}
	}
}

// Delete removes an account
func (s *AccountService) Delete(ctx context.Context, kind domain.Kind, id string) error {
	if err := s.accounts.Delete(ctx, kind, id); err != nil {
		return err
	}
	log.Infof("🗑️ %s %s deleted", kind, id)
	return nil
}

// ApproveWorker marks a worker as approved
func (s *AccountService) ApproveWorker(ctx context.Context, id string) (*domain.PublicProfile, error) {
	acc, err := s.accounts.Mutate(ctx, domain.KindWorker, id, func(a *domain.Account) bool {
		if a.Worker == nil {
			a.Worker = &domain.WorkerDetails{}
		}
		a.Worker.ApprovalStatus = domain.ApprovalApproved
		return true
	})
	if err != nil {
		return nil, err
	}

	log.Infof("✅ worker %s approved", id)
	return acc.Public(), nil
}
