package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/lockout"
	"github.com/JUST9N1/Security-Backend/internal/pkg/otp"
	"github.com/JUST9N1/Security-Backend/internal/pkg/password"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// DefaultOTPTTL is how long a password-reset code stays valid
const DefaultOTPTTL = 10 * time.Minute

// AuthService handles authentication business logic
type AuthService struct {
	accounts repositories.AccountRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
	sender   OTPSender
	policy   *lockout.Policy
	otpTTL   time.Duration
	now      func() time.Time
	newOTP   func() (string, error)
}

// AuthOption customizes an AuthService
type AuthOption func(*AuthService)

// WithAuthClock overrides the time source
func WithAuthClock(now func() time.Time) AuthOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// WithOTPGenerator overrides how reset codes are produced
func WithOTPGenerator(gen func() (string, error)) AuthOption {
	return func(s *AuthService) {
		s.newOTP = gen
	}
}

// WithOTPTTL overrides the reset code lifetime
func WithOTPTTL(ttl time.Duration) AuthOption {
	return func(s *AuthService) {
		if ttl > 0 {
			s.otpTTL = ttl
		}
	}
}

// NewAuthService creates a new auth service
func NewAuthService(
	accounts repositories.AccountRepository,
	hasher PasswordHasher,
	tokens TokenIssuer,
	sender OTPSender,
	policy *lockout.Policy,
	opts ...AuthOption,
) *AuthService {
	if policy == nil {
		policy = lockout.Default()
	}
	s := &AuthService{
		accounts: accounts,
		hasher:   hasher,
		tokens:   tokens,
		sender:   sender,
		policy:   policy,
		otpTTL:   DefaultOTPTTL,
		now:      time.Now,
		newOTP:   func() (string, error) { return otp.Generate(otp.DefaultLength) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignupInput represents registration input
type SignupInput struct {
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	Name           string      `json:"name"`
	Role           domain.Role `json:"role"`
	Phone          string      `json:"phone"`
	Photo          string      `json:"photo"`
	Gender         string      `json:"gender"`
	BloodType      string      `json:"bloodType"`
	Specialization string      `json:"specialization"`
	Bio            string      `json:"bio"`
	TicketPrice    float64     `json:"ticketPrice"`
}

// LoginResult is returned on a successful login
type LoginResult struct {
	Token   string                `json:"token"`
	Role    domain.Role           `json:"role"`
	Account *domain.PublicProfile `json:"data"`
}

// Signup registers a new account in the table selected by its role
func (s *AuthService) Signup(ctx context.Context, input *SignupInput) (*domain.PublicProfile, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if email == "" || input.Name == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email, password and name are required", domain.ErrInvalidInput)
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}

	kind, ok := domain.KindForRole(input.Role)
	if !ok {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidInput, input.Role)
	}
	if kind == domain.KindPatient && input.Phone == "" {
		return nil, fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	}

	// 1. Duplicate check within the role's table
	_, err := s.accounts.FindByEmail(ctx, domain.KindSet{kind}, email)
	if err == nil {
		return nil, domain.ErrDuplicateAccount
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}

	// 2. Hash password
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. Build the account for its kind
	now := s.now()
	acc := &domain.Account{
		ID:     uuid.New().String(),
		Kind:   kind,
		Name:   input.Name,
		Email:  email,
		Phone:  input.Phone,
		Photo:  input.Photo,
		Gender: input.Gender,
		Role:   input.Role,
	}
	acc.SetPassword(hash, now)

	switch kind {
	case domain.KindPatient:
		acc.Patient = &domain.PatientDetails{BloodType: input.BloodType}
	case domain.KindWorker:
		acc.Worker = &domain.WorkerDetails{
			Specialization: input.Specialization,
			Bio:            input.Bio,
			TicketPrice:    input.TicketPrice,
			ApprovalStatus: domain.ApprovalPending,
		}
	}

	// 4. Persist
	if err := s.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	log.Infof("✅ %s account created: %s", acc.Kind, acc.ID)
	return acc.Public(), nil
}

// Login authenticates by email and password, driving the lockout state machine
func (s *AuthService) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || pass == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrInvalidInput)
	}

	acc, err := s.accounts.FindByEmail(ctx, domain.AllKinds, email)
	if err != nil {
		return nil, err
	}

	var outcome error
	updated, err := s.accounts.Mutate(ctx, acc.Kind, acc.ID, func(a *domain.Account) bool {
		outcome = nil
		now := s.now()

		if a.IsLocked(now) {
			outcome = &domain.AccountLockedError{Remaining: a.LockUntil.Sub(now)}
			return false
		}
		if a.HasExpiredLock(now) {
			a.LockUntil = nil
		}

		if !s.hasher.Verify(pass, a.PasswordHash) {
			a.LoginAttempts++
			if s.policy.ShouldLock(a.LoginAttempts) {
				d := s.policy.RequiredLockDuration(a.LoginAttempts)
				until := now.Add(d)
				a.LockUntil = &until
				outcome = &domain.AccountLockedError{Remaining: d}
				return true
			}
			outcome = &domain.InvalidCredentialsError{
				RemainingAttempts: s.policy.RemainingAttempts(a.LoginAttempts),
			}
			return true
		}

		a.LoginAttempts = 0
		a.LockUntil = nil
		return true
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		if errors.Is(outcome, domain.ErrAccountLocked) {
			log.Warnf("🔒 login rejected, account %s locked", updated.ID)
		}
		return nil, outcome
	}

	token, err := s.tokens.Issue(updated.ID, string(updated.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{
		Token:   token,
		Role:    updated.Role,
		Account: updated.Public(),
	}, nil
}

// GetTokenByID issues a token for an account without a password check
func (s *AuthService) GetTokenByID(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: id is required", domain.ErrInvalidInput)
	}

	acc, err := s.accounts.FindByID(ctx, domain.AllKinds, id)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(acc.ID, string(acc.Role))
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

// ForgotPassword stores a reset code on the patient and sends it by SMS
func (s *AuthService) ForgotPassword(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: phone is required", domain.ErrInvalidInput)
	}

	acc, err := s.accounts.FindByPhone(ctx, domain.KindSet{domain.KindPatient}, phone)
	if err != nil {
		return err
	}

	code, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	_, err = s.accounts.Mutate(ctx, acc.Kind, acc.ID, func(a *domain.Account) bool {
		expires := s.now().Add(s.otpTTL)
		a.ResetPasswordOTP = &code
		a.ResetPasswordExpires = &expires
		return true
	})
	if err != nil {
		return err
	}

	sent, err := s.sender.Send(ctx, acc.Phone, code)
	if err != nil {
		log.Errorf("❌ otp delivery to account %s failed: %v", acc.ID, err)
		return fmt.Errorf("%w: %v", domain.ErrDeliveryFailed, err)
	}
	if !sent {
		log.Errorf("❌ otp delivery to account %s rejected by gateway", acc.ID)
		return domain.ErrDeliveryFailed
	}

	log.Infof("📱 reset code sent for account %s", acc.ID)
	return nil
}

// ResetPassword sets a new password when the reset code matches and is unexpired
func (s *AuthService) ResetPassword(ctx context.Context, phone, code, newPassword string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" || code == "" || newPassword == "" {
		return fmt.Errorf("%w: phone, otp and password are required", domain.ErrInvalidInput)
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	acc, err := s.accounts.FindByPhone(ctx, domain.KindSet{domain.KindPatient}, phone)
	if err != nil {
		return err
	}

	var outcome error
	_, err = s.accounts.Mutate(ctx, acc.Kind, acc.ID, func(a *domain.Account) bool {
		outcome = nil
		now := s.now()

		if a.ResetPasswordOTP == nil ||
			subtle.ConstantTimeCompare([]byte(*a.ResetPasswordOTP), []byte(code)) != 1 {
			outcome = domain.ErrInvalidOTP
			return false
		}
		if a.ResetPasswordExpires == nil || a.ResetPasswordExpires.Before(now) {
			outcome = domain.ErrOTPExpired
			return false
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			outcome = fmt.Errorf("hash password: %w", err)
			return false
		}
		a.SetPassword(hash, now)
		a.ClearResetOTP()
		return true
	})
	if err != nil {
		return err
	}
	if outcome != nil {
		return outcome
	}

	log.Infof("🔑 password reset for account %s", acc.ID)
	return nil
}

// checkPassword enforces the length bounds bcrypt can hash
func checkPassword(p string) error {
	if password.ValidatePassword(p) {
		return nil
	}
	if len(p) < password.MinLength {
		return fmt.Errorf("%w: password must be at least %d characters", domain.ErrInvalidInput, password.MinLength)
	}
	return fmt.Errorf("%w: password must be at most %d bytes", domain.ErrInvalidInput, password.MaxLength)
}
