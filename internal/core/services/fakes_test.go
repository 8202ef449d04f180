package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/JUST9N1/Security-Backend/internal/adapters/persistence/repositories"
	"github.com/JUST9N1/Security-Backend/internal/core/domain"
)

type memAccounts struct {
	mu      sync.Mutex
	rows    map[string]*domain.Account
	writes  int
	failErr error
}

func newMemAccounts(accs ...*domain.Account) *memAccounts {
	m := &memAccounts{rows: map[string]*domain.Account{}}
	for _, a := range accs {
		m.rows[a.ID] = cloneAccount(a)
	}
	return m
}

func cloneAccount(a *domain.Account) *domain.Account {
	c := *a
	c.PasswordHistory = append([]string(nil), a.PasswordHistory...)
	if a.LockUntil != nil {
		t := *a.LockUntil
		c.LockUntil = &t
	}
	if a.ResetPasswordOTP != nil {
		s := *a.ResetPasswordOTP
		c.ResetPasswordOTP = &s
	}
	if a.ResetPasswordExpires != nil {
		t := *a.ResetPasswordExpires
		c.ResetPasswordExpires = &t
	}
	if a.Worker != nil {
		w := *a.Worker
		c.Worker = &w
	}
	if a.Patient != nil {
		p := *a.Patient
		c.Patient = &p
	}
	return &c
}

func (m *memAccounts) get(id string) *domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a, ok := m.rows[id]; ok {
		return cloneAccount(a)
	}
	return nil
}

func (m *memAccounts) Create(_ context.Context, acc *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	for _, a := range m.rows {
		if a.Kind == acc.Kind && a.Email == acc.Email {
			return domain.ErrDuplicateAccount
		}
	}
	m.rows[acc.ID] = cloneAccount(acc)
	return nil
}

func (m *memAccounts) find(kinds domain.KindSet, match func(*domain.Account) bool) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return nil, m.failErr
	}
	for _, k := range kinds {
		for _, a := range m.rows {
			if a.Kind == k && match(a) {
				return cloneAccount(a), nil
			}
		}
	}
	return nil, domain.ErrAccountNotFound
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
	if m.failErr != nil {
		return nil, m.failErr
	}
	a, ok := m.rows[id]
	if !ok || a.Kind != kind {
		return nil, domain.ErrAccountNotFound
	}
	c := cloneAccount(a)
	if fn(c) {
		m.rows[id] = cloneAccount(c)
		m.writes++
	}
	return c, nil
}

func (m *memAccounts) Delete(_ context.Context, kind domain.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.rows[id]
	if !ok || a.Kind != kind {
		return domain.ErrAccountNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memAccounts) List(_ context.Context, kind domain.Kind, filter repositories.AccountFilter, offset, limit int) ([]*domain.Account, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*domain.Account
	for _, a := range m.rows {
		if a.Kind != kind {
			continue
		}
		if filter.ApprovedOnly && (a.Worker == nil || a.Worker.ApprovalStatus != domain.ApprovalApproved) {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(filter.Query)) &&
			(a.Worker == nil || !strings.Contains(strings.ToLower(a.Worker.Specialization), strings.ToLower(filter.Query))) {
			continue
		}
		all = append(all, cloneAccount(a))
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return []*domain.Account{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *memAccounts) ClearExpiredOTPs(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return 0, m.failErr
	}
	var n int64
	for _, a := range m.rows {
		if a.ResetPasswordExpires != nil && a.ResetPasswordExpires.Before(before) {
			a.ClearResetOTP()
			n++
		}
	}
	return n, nil
}

// plainHasher avoids bcrypt cost in service tests
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Verify(p, hash string) bool { return hash == "hashed:"+p }

type stubTokens struct {
	issued []string
}

func (s *stubTokens) Issue(id, role string) (string, error) {
	tok := "token-" + id + "-" + role
	s.issued = append(s.issued, tok)
	return tok, nil
}

type stubSender struct {
	phone string
	code  string
	ok    bool
	err   error
}

func (s *stubSender) Send(_ context.Context, phone, code string) (bool, error) {
	s.phone = phone
	s.code = code
	return s.ok, s.err
}

type memBookings struct {
	mu   sync.Mutex
	rows map[string]*domain.Booking
}

func newMemBookings() *memBookings {
	return &memBookings{rows: map[string]*domain.Booking{}}
}

func (m *memBookings) Create(_ context.Context, b *domain.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *b
	m.rows[b.ID] = &c
	return nil
}

func (m *memBookings) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	c := *b
	return &c, nil
}

func (m *memBookings) UpdateStatus(_ context.Context, id, status string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	b.Status = status
	c := *b
	return &c, nil
}

func (m *memBookings) list(match func(*domain.Booking) bool) []*domain.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*domain.Booking{}
	for _, b := range m.rows {
		if match(b) {
			c := *b
			out = append(out, &c)
		}
	}
	return out
}

func (m *memBookings) ListByPatient(_ context.Context, patientID string) ([]*domain.Booking, error) {
	return m.list(func(b *domain.Booking) bool { return b.PatientID == patientID }), nil
}

func (m *memBookings) ListByWorker(_ context.Context, workerID string) ([]*domain.Booking, error) {
	return m.list(func(b *domain.Booking) bool { return b.WorkerID == workerID }), nil
}

type memReviews struct {
	rows []*domain.Review
}

func (m *memReviews) Create(_ context.Context, r *domain.Review) error {
	c := *r
	m.rows = append(m.rows, &c)
	return nil
}

func (m *memReviews) List(context.Context) ([]*domain.Review, error) {
	return m.rows, nil
}

func (m *memReviews) ListByWorker(_ context.Context, workerID string) ([]*domain.Review, error) {
	out := []*domain.Review{}
	for _, r := range m.rows {
		if r.WorkerID == workerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type stubPayments struct {
	req CheckoutRequest
	err error
}

func (s *stubPayments) CreateCheckoutSession(_ context.Context, req CheckoutRequest) (*domain.PaymentSession, error) {
	s.req = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.PaymentSession{ID: "cs_test_1", URL: "https://checkout.example/cs_test_1"}, nil
}

var errBoom = errors.New("boom")
