package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/JUST9N1/Security-Backend/internal/adapters/http/middleware"
	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/core/auth"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
	"github.com/JUST9N1/Security-Backend/internal/core/lockout"
	"github.com/JUST9N1/Security-Backend/internal/core/services"
	"github.com/JUST9N1/Security-Backend/internal/pkg/jwt"
)

// memAccounts is a minimal in-memory AccountRepository for handler tests
type memAccounts struct {
	mu   sync.Mutex
	rows map[string]*domain.Account
}

func newMemAccounts(accs ...*domain.Account) *memAccounts {
	m := &memAccounts{rows: map[string]*domain.Account{}}
	for _, a := range accs {
		c := *a
		m.rows[a.ID] = &c
	}
	return m
}

func (m *memAccounts) find(kinds domain.KindSet, match func(*domain.Account) bool) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range kinds {
		for _, a := range m.rows {
			if a.Kind == k && match(a) {
				c := *a
				return &c, nil
			}
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (m *memAccounts) Create(_ context.Context, acc *domain.Account) error {
	if _, err := m.find(domain.KindSet{acc.Kind}, func(a *domain.Account) bool { return a.Email == acc.Email }); err == nil {
		return domain.ErrDuplicateAccount
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *acc
	m.rows[acc.ID] = &c
	return nil
}

func (m *memAccounts) FindByID(_ context.Context, kinds domain.KindSet, id string) (*domain.Account, error) {
	return m.find(kinds, func(a *domain.Account) bool { return a.ID == id })
}

func (m *memAccounts) FindByEmail(_ context.Context, kinds domain.KindSet, email string) (*domain.Account, error) {
	return m.find(kinds, func(a *domain.Account) bool { return a.Email == email })
}

func (m *memAccounts) FindByPhone(_ context.Context, kinds domain.KindSet, phone string) (*domain.Account, error) {
	return m.find(kinds, func(a *domain.Account) bool { return a.Phone == phone })
}

func (m *memAccounts) Mutate(_ context.Context, kind domain.Kind, id string, fn func(*domain.Account) bool) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || a.Kind != kind {
		return nil, domain.ErrAccountNotFound
	}
	c := *a
	if fn(&c) {
		saved := c
		m.rows[id] = &saved
	}
	return &c, nil
}

func (m *memAccounts) Delete(_ context.Context, kind domain.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[id]; !ok || a.Kind != kind {
		return domain.ErrAccountNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memAccounts) List(_ context.Context, kind domain.Kind, _ repositories.AccountFilter, _, _ int) ([]*domain.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Account
	for _, a := range m.rows {
		if a.Kind == kind {
			c := *a
			out = append(out, &c)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memAccounts) ClearExpiredOTPs(context.Context, time.Time) (int64, error) {
	return 0, nil
}

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }
func (plainHasher) Verify(p, h string) bool       { return h == "hashed:"+p }

type stubSender struct {
	ok  bool
	err error
}

func (s stubSender) Send(context.Context, string, string) (bool, error) { return s.ok, s.err }

func patientFixture() *domain.Account {
	return &domain.Account{
		ID:           "p-1",
		Kind:         domain.KindPatient,
		Name:         "Pat",
		Email:        "pat@example.com",
		Phone:        "0800000001",
		PasswordHash: "hashed:correct-password",
		Role:         domain.RolePatient,
		Patient:      &domain.PatientDetails{},
	}
}

func newAuthService(accounts *memAccounts, sender services.OTPSender) *services.AuthService {
	return services.NewAuthService(accounts, plainHasher{}, jwt.NewManager("secret", jwt.DefaultTTL), sender, lockout.Default())
}

func send(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var raw []byte
	if body != nil {
		var err error
		raw, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	if strings.Contains(resp.Header.Get(fiber.HeaderContentType), "json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

// asCaller attaches an identity without going through token checks
func asCaller(id auth.Identity) fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.SetIdentity(c, id)
		return c.Next()
	}
}
